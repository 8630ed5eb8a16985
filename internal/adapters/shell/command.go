// Package shell runs external tools that filter text from stdin to stdout.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

// Command is an external tool invocation.
type Command struct {
	argv       []string
	dir        string
	env        map[string]string
	pathPrefix []string
	logger     ports.Logger
	tracer     ports.Tracer
}

// CommandOption configures a Command.
type CommandOption func(*Command)

// WithDir sets the working directory of the tool.
func WithDir(dir string) CommandOption {
	return func(c *Command) {
		c.dir = dir
	}
}

// WithEnv sets environment variables on top of the inherited environment.
func WithEnv(env map[string]string) CommandOption {
	return func(c *Command) {
		c.env = env
	}
}

// WithPathPrefix prepends dirs to PATH, e.g. a project's node_modules/.bin.
func WithPathPrefix(dirs ...string) CommandOption {
	return func(c *Command) {
		c.pathPrefix = append(c.pathPrefix, dirs...)
	}
}

// NewCommand creates a Command running argv.
func NewCommand(logger ports.Logger, tracer ports.Tracer, argv []string, opts ...CommandOption) *Command {
	c := &Command{
		argv:   argv,
		logger: logger,
		tracer: tracer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the tool name as configured.
func (c *Command) Name() string {
	if len(c.argv) == 0 {
		return ""
	}
	return c.argv[0]
}

// Run pipes input through the tool and returns its standard output.
// Standard error is streamed line by line to the logger.
func (c *Command) Run(ctx context.Context, input []byte, extraArgs ...string) ([]byte, error) {
	if len(c.argv) == 0 {
		return nil, zerr.Wrap(domain.ErrToolFailed, "empty command")
	}

	name := c.argv[0]
	args := append(append([]string{}, c.argv[1:]...), extraArgs...)

	ctx, span := c.tracer.Start(ctx, "tool", ports.WithAttribute("command", name))
	defer span.End()

	cmdEnv := resolveEnvironment(os.Environ(), c.pathPrefix, c.env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // tool is configured by the user
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = c.dir
	cmd.Env = cmdEnv
	cmd.Stdin = bytes.NewReader(input)

	var stdout bytes.Buffer
	stderr := &logWriter{logger: c.logger, tool: name, tee: span}
	cmd.Stdout = &stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	stderr.Flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		span.RecordError(err)
		err = zerr.With(errors.Join(domain.ErrToolFailed, err), "exit_code", exitCode)
		return nil, zerr.With(err, "command", name)
	}

	span.SetAttribute("output_bytes", stdout.Len())
	return stdout.Bytes(), nil
}

// logWriter forwards complete lines to the logger and mirrors raw output to tee.
type logWriter struct {
	logger ports.Logger
	tool   string
	tee    io.Writer

	mu  sync.Mutex
	buf []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.tee != nil {
		_, _ = w.tee.Write(p)
	}

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.emit(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) > 0 {
		w.emit(string(w.buf))
		w.buf = nil
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimSuffix(line, "\r")
	if line == "" {
		return
	}
	w.logger.Warn(line, "tool", w.tool)
}

// resolveEnvironment merges the system environment with PATH prefixes and overrides.
// Overrides win; prefixes are prepended to the resulting PATH.
func resolveEnvironment(sysEnv, pathPrefix []string, overrides map[string]string) []string {
	envMap := make(map[string]string)
	var order []string
	set := func(k, v string) {
		if _, exists := envMap[k]; !exists {
			order = append(order, k)
		}
		envMap[k] = v
	}

	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			set(k, v)
		}
	}

	for k, v := range overrides {
		set(k, v)
	}

	if len(pathPrefix) > 0 {
		path := strings.Join(pathPrefix, string(os.PathListSeparator))
		if current := envMap["PATH"]; current != "" {
			path += string(os.PathListSeparator) + current
		}
		set("PATH", path)
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
