package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/stitch/internal/ui/style"
)

func (c *CLI) newFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List the input files in build order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := c.app.Files(cmd.Context(), c.options(cmd, nil))
			if err != nil {
				return err
			}
			for _, path := range files {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.rel(path))
			}
			return nil
		},
	}
}

func (c *CLI) newFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the fingerprint and artifact path without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := c.app.Plan(cmd.Context(), c.options(cmd, nil))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, style.Label.Render("fingerprint")+plan.Fingerprint.String())
			_, _ = fmt.Fprintln(out, style.Label.Render("artifact")+style.Path.Render(plan.Path))
			_, _ = fmt.Fprintln(out, style.Label.Render("files")+strconv.Itoa(plan.Files.Len()))
			_, _ = fmt.Fprintln(out, style.Label.Render("fresh")+strconv.FormatBool(plan.Fresh))
			return nil
		},
	}
}

func (c *CLI) newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete every artifact following the output naming convention",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deleted, err := c.app.Clean(cmd.Context(), c.options(cmd, nil))
			for _, path := range deleted {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderDeleted(c.rel(path)))
			}
			return err
		},
	}
}
