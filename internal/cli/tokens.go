package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdscan/pkg/config"
)

type tokensFlags struct {
	input       inputFlags
	format      string
	noTrivia    bool
	noLanguages bool
	delimiter   string
	compact     bool
}

func newTokensCommand(global *globalFlags) *cobra.Command {
	flags := &tokensFlags{}

	cmd := &cobra.Command{
		Use:   "tokens [path|-]...",
		Short: "Print the token stream of Markdown documents",
		Long: `Scan Markdown documents and print every token with its position, kind,
verbatim text, decoded value, and flags.

Directories are walked for Markdown files. With no path, or when a path
is -, standard input is read.`,
		Example: `  mdscan tokens README.md
  mdscan tokens --no-trivia --format table docs/guide.md
  cat notes.md | mdscan tokens --format json
  mdscan tokens --exclude 'vendor/**' docs/`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json")
	cmd.Flags().BoolVar(&flags.noTrivia, "no-trivia", false, "hide whitespace and newline tokens")
	cmd.Flags().BoolVar(&flags.noLanguages, "no-languages", false, "do not annotate code fences with a language")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", "", "single character joining collapsed token values")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	flags.input.register(cmd)

	return cmd
}

func runTokens(cmd *cobra.Command, args []string, global *globalFlags, flags *tokensFlags) error {
	ctx := contextWithLogger(cmd)

	format, err := formatOverride(cmd, flags.format)
	if err != nil {
		return err
	}
	cliCfg := &config.Config{Format: format}
	if flags.noTrivia {
		showTrivia := false
		cliCfg.ShowTrivia = &showTrivia
	}
	if flags.noLanguages {
		detect := false
		cliCfg.DetectLanguages = &detect
	}
	cliCfg.Scanner.Delimiter = flags.delimiter

	loaded, err := loadConfig(ctx, global, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	docs, err := scanInputs(cmd, args, cfg, &flags.input)
	if err != nil {
		return err
	}

	rep, err := newReporter(cmd, cfg, flags.compact, false)
	if err != nil {
		return err
	}

	if _, err := rep.ReportTokens(ctx, docs); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}
	return nil
}
