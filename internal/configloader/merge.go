package configloader

import "github.com/yaklabco/mdscan/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// Zero strings and nil pointers in override leave base untouched.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override.Clone()
	}
	if override == nil {
		return base.Clone()
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.ShowTrivia != nil {
		result.ShowTrivia = copyBool(override.ShowTrivia)
	}
	if override.DetectLanguages != nil {
		result.DetectLanguages = copyBool(override.DetectLanguages)
	}

	if override.Scanner.Delimiter != "" {
		result.Scanner.Delimiter = override.Scanner.Delimiter
	}
	if override.Scanner.ReportErrors != nil {
		result.Scanner.ReportErrors = copyBool(override.Scanner.ReportErrors)
	}
	if override.Scanner.TabWidth != 0 {
		result.Scanner.TabWidth = override.Scanner.TabWidth
	}

	return result
}

func copyBool(b *bool) *bool {
	v := *b
	return &v
}

// MergeAll merges configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
