package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the bundle of every configuration, skipping fresh ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides, err := buildOverrides(cmd)
			if err != nil {
				return err
			}

			plain, _ := cmd.Flags().GetBool("plain")

			reports, err := c.app.Build(cmd.Context(), c.options(cmd, overrides))
			out := cmd.OutOrStdout()
			for _, report := range reports {
				if report == nil {
					continue
				}
				for _, path := range report.Deleted {
					if plain {
						_, _ = fmt.Fprintln(out, "stitch deleted "+c.rel(path))
						continue
					}
					_, _ = fmt.Fprintln(out, renderDeleted(c.rel(path)))
				}
				if plain {
					_, _ = fmt.Fprintln(out, report.String())
					continue
				}
				_, _ = fmt.Fprintln(out, renderReport(report))
			}
			return err
		},
	}

	cmd.Flags().StringP("output", "o", "", "Artifact path")
	cmd.Flags().Bool("fingerprint", false, "Embed the fingerprint in the artifact name")
	cmd.Flags().Bool("no-fingerprint", false, "Write the artifact to the configured path")
	cmd.Flags().Bool("cleanup", false, "Delete superseded artifacts")
	cmd.Flags().Bool("no-cleanup", false, "Keep superseded artifacts")
	cmd.Flags().Bool("minify", false, "Run the configured minifier over the bundle")
	cmd.Flags().Bool("plain", false, "Print one unstyled line per build, for scripts")
	cmd.Flags().StringArray("set", nil, "Set any configuration key (key=value, value parsed as YAML)")
	cmd.MarkFlagsMutuallyExclusive("fingerprint", "no-fingerprint")
	cmd.MarkFlagsMutuallyExclusive("cleanup", "no-cleanup")

	return cmd
}

// buildOverrides maps the flags the user set to configuration overrides.
// Dedicated flags win over --set.
func buildOverrides(cmd *cobra.Command) (domain.Settings, error) {
	flags := cmd.Flags()
	overrides := domain.Settings{}

	pairs, _ := flags.GetStringArray("set")
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSetting, "expected key=value"), "value", pair)
		}
		var value any
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		overrides[domain.NormalizeKey(key)] = value
	}

	if flags.Changed("output") {
		v, _ := flags.GetString("output")
		overrides[domain.KeyOutput] = v
	}
	for _, name := range []string{domain.KeyFingerprint, domain.KeyCleanup, domain.KeyMinify} {
		if flags.Changed(name) {
			v, _ := flags.GetBool(name)
			overrides[name] = v
		}
		if negated := "no-" + name; flags.Lookup(negated) != nil && flags.Changed(negated) {
			v, _ := flags.GetBool(negated)
			overrides[name] = !v
		}
	}

	return domain.NormalizeSettings(overrides), nil
}
