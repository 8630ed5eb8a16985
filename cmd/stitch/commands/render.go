package commands

import (
	"path/filepath"
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/ui/style"
)

func renderReport(r *domain.Report) string {
	path := style.Path.Render(r.Path)
	switch r.Status {
	case domain.StatusUnchanged:
		return style.Unchanged.Render(style.Dot+" identical") + " " + path
	case domain.StatusCreated:
		return style.Created.Render(style.Check+" created") + " " + path
	case domain.StatusOverwrote:
		return style.Overwrote.Render(style.Tilde+" overwrote") + " " + path
	default:
		line := style.Failed.Render(style.Cross+" failed") + " to write " + path
		if r.Err != nil {
			line += ": " + r.Err.Error()
		}
		return line
	}
}

func renderDeleted(path string) string {
	return style.Deleted.Render(style.Warning+" deleted") + " " + style.Path.Render(path)
}

// rel shortens paths below the project root.
func (c *CLI) rel(path string) string {
	root := c.app.Root()
	if root == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
