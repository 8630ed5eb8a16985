package shell

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Transpiler = (*Transpiler)(nil)
	_ ports.Minifier   = (*Minifier)(nil)
)

// Transpiler converts one source file by piping it through a Command.
type Transpiler struct {
	cmd *Command
}

// NewTranspiler creates a Transpiler running cmd.
func NewTranspiler(cmd *Command) *Transpiler {
	return &Transpiler{cmd: cmd}
}

// Transpile returns the tool's output for src.
func (t *Transpiler) Transpile(ctx context.Context, path string, src []byte) ([]byte, error) {
	out, err := t.cmd.Run(ctx, src)
	if err != nil {
		return nil, zerr.With(err, "source", path)
	}
	return out, nil
}

// Minifier compresses a bundle by piping it through a Command.
type Minifier struct {
	cmd *Command
}

// NewMinifier creates a Minifier running cmd.
func NewMinifier(cmd *Command) *Minifier {
	return &Minifier{cmd: cmd}
}

// Minify returns the tool's output for src. Options become command line flags.
func (m *Minifier) Minify(ctx context.Context, src []byte, options map[string]any) ([]byte, error) {
	return m.cmd.Run(ctx, src, OptionFlags(options)...)
}

// OptionFlags renders options as sorted "--key=value" flags.
// A true value renders as a bare "--key" and a false or nil value is omitted.
// Maps and lists are rendered as JSON.
func OptionFlags(options map[string]any) []string {
	flags := make([]string, 0, len(options))
	for _, key := range slices.Sorted(maps.Keys(options)) {
		switch v := options[key].(type) {
		case nil:
		case bool:
			if v {
				flags = append(flags, "--"+key)
			}
		case map[string]any, []any:
			encoded, err := json.Marshal(v)
			if err != nil {
				flags = append(flags, fmt.Sprintf("--%s=%v", key, v))
				continue
			}
			flags = append(flags, "--"+key+"="+string(encoded))
		default:
			flags = append(flags, fmt.Sprintf("--%s=%v", key, v))
		}
	}
	return flags
}
