package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdscan/pkg/config"
)

// newProject returns a temp directory marked as a VCS root so discovery
// cannot escape it.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolated(newProject(t)))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatText {
		t.Errorf("expected format %q, got %q", config.FormatText, result.Config.Format)
	}
	if result.Config.DelimiterRune() != ' ' {
		t.Errorf("expected space delimiter, got %q", result.Config.DelimiterRune())
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".mdscan.yml"), `
format: json
scanner:
  delimiter: "_"
  report_errors: false
`)

	nested := filepath.Join(dir, "docs", "guide")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected format json, got %q", result.Config.Format)
	}
	if result.Config.DelimiterRune() != '_' {
		t.Errorf("expected '_' delimiter, got %q", result.Config.DelimiterRune())
	}
	if result.Config.ReportErrors() {
		t.Error("expected report_errors to be false")
	}
	if !result.Config.ShowTriviaTokens() {
		t.Error("unset show_trivia should keep its default")
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected 1 loaded file, got %d", len(result.LoadedFrom))
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for json output without diagnostics")
	}
}

func TestLoad_ExplicitOverridesProject(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".mdscan.yml"), "format: json\ncolor: never\n")
	explicit := filepath.Join(dir, "custom.yml")
	writeFile(t, explicit, "format: table\n")

	opts := isolated(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Format != config.FormatTable {
		t.Errorf("expected format table, got %q", result.Config.Format)
	}
	if result.Config.Color != config.ColorNever {
		t.Errorf("expected project color to survive, got %q", result.Config.Color)
	}
	if got := strings.Join(result.LoadedFrom, ","); !strings.HasSuffix(got, "custom.yml") {
		t.Errorf("explicit config should load last, got %v", result.LoadedFrom)
	}
}

func TestLoad_CLIConfigWins(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".mdscan.yml"), "show_trivia: true\n")

	showTrivia := false
	opts := isolated(dir)
	opts.CLIConfig = &config.Config{ShowTrivia: &showTrivia, Format: config.FormatJSON}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.ShowTriviaTokens() {
		t.Error("CLI show_trivia=false should win")
	}
	if result.Config.Format != config.FormatJSON {
		t.Errorf("expected CLI format, got %q", result.Config.Format)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad format", "format: sarif\n", "invalid format"},
		{"bad color", "color: rainbow\n", "invalid color mode"},
		{"bad delimiter", "scanner:\n  delimiter: \"--\"\n", "single character"},
		{"bad tab width", "scanner:\n  tab_width: 8\n", "tab_width is fixed"},
		{"bad log level", "log_level: loud\n", "invalid log level"},
		{"unknown key", "rules: {}\n", "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := newProject(t)
			path := filepath.Join(dir, ".mdscan.yml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(dir))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestLoad_MultipleValidationErrorsJoined(t *testing.T) {
	t.Parallel()

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".mdscan.yml"), "format: xml\ncolor: rainbow\n")

	_, err := Load(context.Background(), isolated(dir))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(err.Error(), "format") || !strings.Contains(err.Error(), "color") {
		t.Errorf("expected both fields in %q", err)
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolated(newProject(t))); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	writeFile(t, filepath.Join(xdg, "mdscan", "config.yaml"), "color: always\n")

	opts := isolated(newProject(t))
	opts.IgnoreUserConfig = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Color != config.ColorAlways {
		t.Errorf("expected user color, got %q", result.Config.Color)
	}
	if result.Paths.User == "" {
		t.Error("expected user config path to be recorded")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("MDSCAN_FORMAT", "table")
	t.Setenv("MDSCAN_SHOW_TRIVIA", "0")
	t.Setenv("MDSCAN_DELIMITER", "+")

	dir := newProject(t)
	writeFile(t, filepath.Join(dir, ".mdscan.yml"), "format: json\n")

	opts := isolated(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Format != config.FormatTable {
		t.Errorf("env should override project, got %q", result.Config.Format)
	}
	if result.Config.ShowTriviaTokens() {
		t.Error("expected show_trivia false from env")
	}
	if result.Config.DelimiterRune() != '+' {
		t.Errorf("expected '+' delimiter, got %q", result.Config.DelimiterRune())
	}
}

func TestLoadFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("MDSCAN_REPORT_ERRORS", "maybe")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "MDSCAN_REPORT_ERRORS") {
		t.Errorf("expected error naming the variable, got %v", err)
	}
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("scanner.delimiter"); got != "MDSCAN_DELIMITER" {
		t.Errorf("GetEnvVarName = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(unknown) = %q", got)
	}
	if len(ListEnvVars()) != len(envMappings) {
		t.Error("ListEnvVars should describe every mapping")
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	no := false
	merged := MergeAll(
		config.NewConfig(),
		&config.Config{Format: config.FormatJSON},
		&config.Config{Scanner: config.ScannerConfig{ReportErrors: &no}},
	)

	if merged.Format != config.FormatJSON {
		t.Errorf("expected json, got %q", merged.Format)
	}
	if merged.ReportErrors() {
		t.Error("expected report_errors false")
	}
	if merged.Color != config.ColorAuto {
		t.Errorf("expected default color, got %q", merged.Color)
	}
	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}
}

func TestMerge_DoesNotAliasOverride(t *testing.T) {
	t.Parallel()

	yes := true
	override := &config.Config{ShowTrivia: &yes}
	merged := merge(config.NewConfig(), override)
	*merged.ShowTrivia = false

	if !*override.ShowTrivia {
		t.Error("merge result shares pointer with override")
	}
}
