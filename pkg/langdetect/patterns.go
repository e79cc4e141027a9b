package langdetect

import (
	"bytes"
	"strings"
)

// pattern reports whether content is highly indicative of a language.
type pattern struct {
	lang  string
	match func(content, trimmed []byte) bool
}

// patterns are checked in order of specificity.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []pattern{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", isPython},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return containsAny(string(lower), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(content, trimmed []byte) bool {
		s := string(content)
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(strings.Contains(s, "\nFROM ") && strings.Contains(s, "\nRUN ")) ||
			(strings.Contains(s, "WORKDIR ") && strings.Contains(s, "COPY "))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := strings.ToUpper(string(trimmed))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(content, _ []byte) bool {
		return containsAny(string(content), "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(content, _ []byte) bool {
		return containsAny(string(content), "=>", "const ", "let ", "console.log")
	}},
	{"yaml", isYAML},
}

func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	for _, p := range patterns {
		if p.match(content, trimmed) {
			return p.lang
		}
	}
	return ""
}

func isPython(content, _ []byte) bool {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	// Go uses "import (".
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") &&
		(strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ")) {
		return true
	}
	return containsAny(s, "__name__", "__main__")
}

// isYAML requires at least two "key: value" lines or root list items.
func isYAML(content, _ []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
