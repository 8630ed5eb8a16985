// Package style provides shared UI styling primitives including brand colors,
// icons and status styles for consistent presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
)

// Status styles.
var (
	Unchanged = lipgloss.NewStyle().Foreground(Slate).Faint(true)
	Created   = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Overwrote = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	Failed    = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Deleted   = lipgloss.NewStyle().Foreground(Red)
	Path      = lipgloss.NewStyle().Foreground(Iris)
	Label     = lipgloss.NewStyle().Foreground(Slate).Width(12)
)
