package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/yaklabco/mdscan/pkg/config"
)

// envVarPrefix is the prefix for all mdscan environment variables.
const envVarPrefix = "MDSCAN_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FORMAT":           {"format", envTypeString, "Output format: text, table, or json"},
	"COLOR":            {"color", envTypeString, "Color mode: auto, always, or never"},
	"LOG_LEVEL":        {"log_level", envTypeString, "Log level: debug, info, warn, or error"},
	"SHOW_TRIVIA":      {"show_trivia", envTypeBool, "Print whitespace and newline tokens: true or false"},
	"DETECT_LANGUAGES": {"detect_languages", envTypeBool, "Annotate code fences with a language: true or false"},
	"DELIMITER":        {"scanner.delimiter", envTypeString, "Single character joining collapsed token values"},
	"REPORT_ERRORS":    {"scanner.report_errors", envTypeBool, "Collect scanner diagnostics: true or false"},
}

// LoadFromEnv applies MDSCAN_* environment overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + suffix
		value, ok := os.LookupEnv(envVar)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[suffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		setStringField(cfg, mapping.field, value)
		return nil
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		setBoolField(cfg, mapping.field, b)
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

func setStringField(cfg *config.Config, field, value string) {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = config.ColorMode(value)
	case "log_level":
		cfg.LogLevel = value
	case "scanner.delimiter":
		cfg.Scanner.Delimiter = value
	}
}

func setBoolField(cfg *config.Config, field string, value bool) {
	switch field {
	case "show_trivia":
		cfg.ShowTrivia = &value
	case "detect_languages":
		cfg.DetectLanguages = &value
	case "scanner.report_errors":
		cfg.Scanner.ReportErrors = &value
	}
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// GetEnvVarName returns the environment variable for a config field, or "".
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
