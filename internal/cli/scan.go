package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdscan/internal/configloader"
	"github.com/yaklabco/mdscan/internal/logging"
	"github.com/yaklabco/mdscan/pkg/config"
	"github.com/yaklabco/mdscan/pkg/fsutil"
	"github.com/yaklabco/mdscan/pkg/reporter"
	"github.com/yaklabco/mdscan/pkg/runner"
	"github.com/yaklabco/mdscan/pkg/scanner"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

// loadConfig resolves configuration with cliCfg taking highest precedence.
func loadConfig(ctx context.Context, flags *globalFlags, cliCfg *config.Config) (*configloader.LoadResult, error) {
	logger := logging.FromContext(ctx)

	if flags.color != "" {
		cliCfg.Color = config.ColorMode(flags.color)
	}

	opts := configloader.LoadOptions{
		ExplicitPath: flags.configPath,
		CLIConfig:    cliCfg,
	}
	if flags.noConfig {
		opts.IgnoreSystemConfig = true
		opts.IgnoreUserConfig = true
		opts.IgnoreProjectConfig = true
		opts.IgnoreEnv = true
	}

	result, err := configloader.Load(ctx, opts)
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", result.LoadedFrom)
	}
	if !flags.debug && result.Config.LogLevel != "" {
		logging.SetLevel(result.Config.LogLevel)
	}

	return result, nil
}

// scannerOptions builds scanner options from the effective configuration.
func scannerOptions(ctx context.Context, cfg *config.Config) scanner.Options {
	opts := scanner.DefaultOptions()
	opts.Delimiter = cfg.DelimiterRune()
	opts.Logger = logging.FromContext(ctx)
	return opts
}

// inputFlags select and limit the documents a command scans.
type inputFlags struct {
	jobs           int
	exclude        []string
	followSymlinks bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "glob patterns to skip while walking directories")
	cmd.Flags().BoolVar(&f.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
}

// scanInputs scans every path; "-" or no paths reads stdin, directories
// are walked for Markdown files. Stdin is reported first, then files by path.
func scanInputs(cmd *cobra.Command, paths []string, cfg *config.Config, input *inputFlags) ([]*reporter.Document, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	opts := scannerOptions(ctx, cfg)

	if len(paths) == 0 {
		paths = []string{stdinPath}
	}

	var docs []*reporter.Document
	var filePaths []string
	readStdin := false
	for _, path := range paths {
		if path == stdinPath {
			readStdin = true
			continue
		}
		filePaths = append(filePaths, path)
	}

	if readStdin {
		source, err := fsutil.ReadAll(cmd.InOrStdin(), fsutil.ReadOptions{})
		if err != nil {
			return nil, errors.Join(ErrInput, err)
		}
		doc := reporter.Scan(stdinPath, string(source), opts)
		if !cfg.ReportErrors() {
			doc.Diagnostics = nil
		}
		docs = append(docs, doc)
	}

	if len(filePaths) > 0 {
		result, err := runner.Run(ctx, runner.Options{
			Paths:           filePaths,
			ExcludeGlobs:    input.exclude,
			FollowSymlinks:  input.followSymlinks,
			Jobs:            input.jobs,
			Scanner:         opts,
			DropDiagnostics: !cfg.ReportErrors(),
		})
		if err != nil {
			return nil, errors.Join(ErrInput, err)
		}
		if err := result.Err(); err != nil {
			return nil, errors.Join(ErrInput, err)
		}
		logger.Debug("discovered files", "count", result.Stats.FilesDiscovered)
		docs = append(docs, result.Documents()...)
	}

	for _, doc := range docs {
		logger.Debug("scanned document",
			logging.FieldPath, doc.Path,
			logging.FieldBytes, len(doc.Source),
			logging.FieldTokens, len(doc.Tokens),
			logging.FieldDiagnostics, len(doc.Diagnostics),
			logging.FieldDuration, doc.Duration,
		)
	}

	return docs, nil
}

// formatOverride returns the --format flag as a config value, or "" when unset.
func formatOverride(cmd *cobra.Command, value string) (config.OutputFormat, error) {
	if !cmd.Flags().Changed("format") {
		return "", nil
	}
	if _, err := reporter.ParseFormat(value); err != nil {
		return "", errors.Join(ErrUsage, err)
	}
	return config.OutputFormat(value), nil
}

// newReporter creates a reporter for cfg writing to the command's output.
func newReporter(cmd *cobra.Command, cfg *config.Config, compact, showContext bool) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, errors.Join(ErrUsage, err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:          cmd.OutOrStdout(),
		Format:          format,
		Color:           string(cfg.Color),
		ShowTrivia:      cfg.ShowTriviaTokens(),
		DetectLanguages: cfg.DetectFenceLanguages(),
		ShowContext:     showContext,
		ShowSummary:     format != reporter.FormatJSON,
		Compact:         compact,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}

// contextWithLogger ensures cmd's context carries the default logger.
func contextWithLogger(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logging.Default())
	cmd.SetContext(ctx)
	return ctx
}
