// Package langdetect resolves the language of fenced code blocks.
// The fence info string is tried first through go-enry's alias table, then
// the body is inspected (shebang, indicative patterns, classifier).
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned by Detect when no language can be determined.
const Text = "text"

// Source records how a language was determined.
type Source string

const (
	SourceNone       Source = ""
	SourceInfo       Source = "info"
	SourceShebang    Source = "shebang"
	SourcePattern    Source = "pattern"
	SourceClassifier Source = "classifier"
)

// Result is a resolved fence language.
type Result struct {
	// Language is a lowercase fence tag such as "go" or "bash". Empty when
	// nothing matched.
	Language string `json:"language,omitempty"`

	// Source is the strategy that produced Language.
	Source Source `json:"source,omitempty"`
}

// classifierCandidates bounds the classifier to languages commonly fenced in docs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Resolve determines the language of a fence from its normalized info
// string and its body. The first word of info is looked up as an alias; an
// unknown or empty info string falls back to inspecting body.
func Resolve(info string, body []byte) Result {
	if word := firstWord(info); word != "" {
		if lang, ok := enry.GetLanguageByAlias(word); ok {
			return Result{Language: normalize(lang), Source: SourceInfo}
		}
	}
	return detect(body)
}

// Detect returns the language of code content, or Text.
func Detect(content []byte) string {
	if r := detect(content); r.Language != "" {
		return r.Language
	}
	return Text
}

func detect(content []byte) Result {
	if len(bytes.TrimSpace(content)) == 0 {
		return Result{}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Result{Language: normalize(lang), Source: SourceShebang}
	}

	if lang := detectByPattern(content); lang != "" {
		return Result{Language: lang, Source: SourcePattern}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Result{Language: normalize(lang), Source: SourceClassifier}
	}

	return Result{}
}

func firstWord(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	// Attributes such as {.go} or go{title=x} carry the tag before the brace.
	parts := strings.FieldsFunc(strings.TrimPrefix(fields[0], "{."), func(r rune) bool {
		return r == '{' || r == '}'
	})
	if len(parts) == 0 {
		return ""
	}
	return strings.ToLower(parts[0])
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
