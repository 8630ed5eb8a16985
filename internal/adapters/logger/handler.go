package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/stitch/internal/ui/output"
	"go.trai.ch/stitch/internal/ui/style"
)

// toolKey names the attribute carrying the external tool an output line came from.
const toolKey = "tool"

// statusColors tints the build status messages of the coordinator.
var statusColors = map[string]lipgloss.Color{
	"identical": style.Slate,
	"created":   style.Green,
	"overwrote": style.Yellow,
	"deleted":   style.Red,
}

// PrettyHandler is a slog.Handler that writes one colored line per record.
// Warnings and errors carry an icon, build status messages are tinted by status,
// and stderr lines of external tools are prefixed with the tool name.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to the provided writer.
// opts.Level is consulted on every record, so a *slog.LevelVar can change it later.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var tool string
	parts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	collect := func(group string, attr slog.Attr) {
		if attr.Key == toolKey && group == "" {
			tool = attr.Value.String()
			return
		}
		parts = appendAttr(parts, group, attr)
	}
	for _, attr := range h.attrs {
		collect("", attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		collect(h.group, attr)
		return true
	})

	msg := r.Message
	if tool != "" {
		msg = tool + ": " + msg
	}

	icon, color := decorate(r.Level, r.Message)
	if icon != "" {
		msg = icon + " " + msg
	}
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}

	styled := h.out.String(msg).Foreground(termenv.RGBColor(string(color)))
	_, err := h.out.WriteString(styled.String() + "\n")

	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
// They are qualified with the current group, later groups do not apply to them.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := *h
	next.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(next.attrs, h.attrs)
	for _, attr := range attrs {
		attr.Key = joinKey(h.group, attr.Key)
		next.attrs = append(next.attrs, attr)
	}
	return &next
}

// WithGroup returns a new Handler that nests further attributes under name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = joinKey(h.group, name)
	return &next
}

func decorate(level slog.Level, msg string) (string, lipgloss.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, style.Red
	case level >= slog.LevelWarn:
		return style.Warning, style.Yellow
	}
	if color, ok := statusColors[msg]; ok {
		return "", color
	}
	return "", style.Slate
}

// appendAttr renders attr as key=value, flattening groups into dotted keys.
func appendAttr(parts []string, group string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}

	key := joinKey(group, attr.Key)
	if attr.Value.Kind() == slog.KindGroup {
		for _, inner := range attr.Value.Group() {
			parts = appendAttr(parts, key, inner)
		}
		return parts
	}
	return append(parts, key+"="+formatValue(attr.Value))
}

// formatValue quotes values that would otherwise be ambiguous on a key=value line.
func formatValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

func joinKey(group, key string) string {
	switch {
	case group == "":
		return key
	case key == "":
		return group
	default:
		return group + "." + key
	}
}
