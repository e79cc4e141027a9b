package reporter

import (
	"strings"

	"github.com/yaklabco/mdscan/pkg/langdetect"
	"github.com/yaklabco/mdscan/pkg/token"
)

// fenceLanguages resolves the language of every opening fence, keyed by token
// index. The body runs from the line after the opener to the start of its
// closer, or to the end of the source for an unclosed fence.
func fenceLanguages(doc *Document) map[int]langdetect.Result {
	languages := make(map[int]langdetect.Result)
	open := -1

	resolve := func(end int) {
		opener := doc.Tokens[open]
		body := doc.Source[min(opener.EndOffset, end):end]
		body = strings.TrimPrefix(body, "\r")
		body = strings.TrimPrefix(body, "\n")
		if r := langdetect.Resolve(opener.Value, []byte(body)); r.Language != "" {
			languages[open] = r
		}
	}

	for i, tk := range doc.Tokens {
		if !tk.Kind.IsFence() {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		resolve(tk.StartOffset)
		open = -1
	}
	if open >= 0 {
		resolve(len(doc.Source))
	}

	return languages
}

func languagesFor(doc *Document, enabled bool) map[int]langdetect.Result {
	if !enabled {
		return nil
	}
	return fenceLanguages(doc)
}

// isTokenValueShown reports whether the decoded value adds information.
func isTokenValueShown(tk token.Token, source string) bool {
	return tk.HasValue && tk.Value != tk.Text(source)
}
