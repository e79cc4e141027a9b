package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdscan/pkg/config"
)

type errorsFlags struct {
	input     inputFlags
	format    string
	strict    bool
	noContext bool
	compact   bool
}

func newErrorsCommand(global *globalFlags) *cobra.Command {
	flags := &errorsFlags{}

	cmd := &cobra.Command{
		Use:   "errors [path|-]...",
		Short: "Print scanner diagnostics for Markdown documents",
		Long: `Scan Markdown documents and print the diagnostics the scanner raised,
such as raw text or RCDATA elements left open at end of file. Directories
are walked for Markdown files; with no path, standard input is read.

With --strict the command exits with status 1 when any diagnostic is found.`,
		Example: `  mdscan errors README.md
  mdscan errors --strict docs/*.md`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runErrors(cmd, args, global, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit with status 1 when diagnostics are found")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	flags.input.register(cmd)

	return cmd
}

func runErrors(cmd *cobra.Command, args []string, global *globalFlags, flags *errorsFlags) error {
	ctx := contextWithLogger(cmd)

	format, err := formatOverride(cmd, flags.format)
	if err != nil {
		return err
	}
	cliCfg := &config.Config{Format: format}
	reportErrors := true
	cliCfg.Scanner.ReportErrors = &reportErrors

	loaded, err := loadConfig(ctx, global, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.Config

	docs, err := scanInputs(cmd, args, cfg, &flags.input)
	if err != nil {
		return err
	}

	rep, err := newReporter(cmd, cfg, flags.compact, !flags.noContext)
	if err != nil {
		return err
	}

	count, err := rep.ReportDiagnostics(ctx, docs)
	if err != nil {
		return fmt.Errorf("write diagnostics: %w", err)
	}

	if flags.strict && count > 0 {
		return ErrDiagnosticsFound
	}
	return nil
}
