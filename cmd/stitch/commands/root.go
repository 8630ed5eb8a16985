// Package commands implements the CLI commands for the stitch build tool.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/stitch/internal/app"
	"go.trai.ch/stitch/internal/build"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/stitch/internal/core/ports"
	"go.trai.ch/stitch/internal/ui/output"
)

// CLI represents the command line interface for stitch.
type CLI struct {
	app     *app.App
	logger  ports.Logger
	rootCmd *cobra.Command

	configs []string
	verbose bool
}

type leveler interface {
	SetLevel(level slog.Level)
}

// New creates a new CLI instance with the given app.
func New(a *app.App, logger ports.Logger) *CLI {
	c := &CLI{
		app:    a,
		logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:           "stitch",
		Short:         "Concatenate sources into a fingerprinted bundle, rebuilding only when inputs change",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.setup(cmd.OutOrStdout())
		},
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringArrayVarP(&c.configs, "config", "c", []string{app.DefaultConfigFile},
		"Configuration file (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "Log every build step")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newFilesCmd())
	rootCmd.AddCommand(c.newFingerprintCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func (c *CLI) setup(w io.Writer) {
	lipgloss.SetColorProfile(output.New(w).Profile)

	if l, ok := c.logger.(leveler); ok {
		if c.verbose {
			l.SetLevel(slog.LevelInfo)
		} else {
			l.SetLevel(slog.LevelWarn)
		}
	}
}

func (c *CLI) options(cmd *cobra.Command, overrides domain.Settings) app.Options {
	return app.Options{
		Configs:   c.configs,
		Explicit:  cmd.Flags().Changed("config"),
		Overrides: overrides,
	}
}
