// Package cli provides the Cobra command structure for mdscan.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdscan/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	noConfig   bool
}

// NewRootCommand creates the root mdscan command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdscan",
		Short: "A token-level scanner for Markdown with embedded HTML",
		Long: `mdscan splits Markdown, including embedded HTML, math, and frontmatter,
into a flat stream of classified tokens with positional hints.

It never builds a tree: every byte of input belongs to exactly one token, and
each token carries flags such as line-start, flanking, and run length that a
parser can use to decide block and inline structure.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flags.noConfig, "no-config", false,
		"ignore discovered config files and MDSCAN_* variables; --config still applies")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "",
		"colorize output: auto, always, never (default from config, else auto)")

	rootCmd.AddCommand(newTokensCommand(flags))
	rootCmd.AddCommand(newErrorsCommand(flags))
	rootCmd.AddCommand(newConfigCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
