package scanner

import "strings"

// fragmentWriter feeds the span buffer while tracking whether a collapsed
// whitespace gap is pending between fragments.
type fragmentWriter struct {
	s        *Scanner
	any      bool
	lastChar bool
	gap      bool
}

func (s *Scanner) newFragmentWriter() *fragmentWriter {
	s.spans.Clear()
	return &fragmentWriter{s: s}
}

// span appends a source range. The span buffer supplies the delimiter
// between two source ranges; after an injected char it is injected explicitly.
func (w *fragmentWriter) span(start, end int) {
	if start >= end {
		return
	}
	if w.gap && w.lastChar {
		w.s.spans.AddChar(false, w.s.delimiter, false)
	}
	w.s.spans.AddSpan(start, end)
	w.any = true
	w.lastChar = false
	w.gap = false
}

// char injects a decoded character, joined tightly unless a gap is pending.
func (w *fragmentWriter) char(r rune) {
	leftSticky := w.gap && !w.lastChar
	if w.gap && w.lastChar {
		w.s.spans.AddChar(false, w.s.delimiter, false)
	}
	w.s.spans.AddChar(leftSticky, r, false)
	w.any = true
	w.lastChar = true
	w.gap = false
}

// space records a whitespace gap. Leading gaps are dropped.
func (w *fragmentWriter) space() {
	if w.any {
		w.gap = true
	}
}

func (w *fragmentWriter) materialize() string {
	return w.s.spans.Materialize()
}

func (w *fragmentWriter) done() {
	w.s.spans.Clear()
}

// decodedContent returns [from, to) with character references decoded, or
// false when the range holds none.
func (s *Scanner) decodedContent(from, to int) (string, bool) {
	if strings.IndexByte(s.text[from:to], '&') < 0 {
		return "", false
	}

	w := s.newFragmentWriter()
	defer w.done()

	decoded := false
	segStart := from
	for i := from; i < to; {
		if s.text[i] != '&' {
			i++
			continue
		}
		value, n := s.matchEntity(i, to)
		if n == 0 {
			i++
			continue
		}
		w.span(segStart, i)
		for _, r := range value {
			w.char(r)
		}
		decoded = true
		i += n
		segStart = i
	}
	if !decoded {
		return "", false
	}
	w.span(segStart, to)
	return w.materialize(), true
}
