package scanner

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdscan/pkg/charclass"
	"github.com/yaklabco/mdscan/pkg/token"
)

const (
	maxHeadingLevel    = 6
	minFenceLength     = 3
	maxListNumberWidth = 9
)

// blockContext reports whether a line-level construct may start here:
// the token is first on its line and no code fence is open.
func (s *Scanner) blockContext() bool {
	return s.ctx.fence.n == 0 && s.atBlockStart()
}

func (s *Scanner) scanWhitespace() token.Kind {
	i := s.scanWhile(s.pos, charclass.IsWhitespaceSingleLine)
	s.pos = i

	next := s.byteAt(i)
	lineBreakNext := next == '\n' || next == '\r'
	switch {
	case s.tokenStart == s.tokenCtx.lineStart && (next < 0 || lineBreakNext):
		s.flags |= token.IsBlankLine
	case lineBreakNext:
		spaces := 0
		for j := i - 1; j >= s.tokenStart && s.text[j] == ' '; j-- {
			spaces++
		}
		if spaces >= 2 {
			s.flags |= token.HardBreakHint
		}
	}
	return token.Whitespace
}

func (s *Scanner) scanNewLine() token.Kind {
	if s.text[s.pos] == '\r' && s.byteAt(s.pos+1) == '\n' {
		s.pos += 2
	} else {
		s.pos++
	}

	if !s.ctx.lineHasContent {
		s.flags |= token.IsBlankLine
		s.flags &^= token.ContainsHTMLBlock
		s.ctx.htmlBlock = false
		s.ctx.inParagraph = false
	} else {
		s.ctx.inParagraph = !s.ctx.lineIsBlock && !s.ctx.htmlBlock &&
			s.ctx.fence.n == 0 && !s.ctx.inFrontmatter
	}

	s.ctx.lineHasContent = false
	s.ctx.lineIsBlock = false
	s.ctx.atLineStart = true
	s.ctx.precedingLineBreak = true
	s.ctx.lineStart = s.pos
	return token.NewLine
}

func (s *Scanner) scanHash() token.Kind {
	n := s.runLength(s.pos, '#')
	if n <= maxHeadingLevel && s.blockContext() && s.followedBySpaceOrEOL(s.pos+n) {
		s.pos += n
		s.flags = s.flags.WithRunLength(n)
		s.ctx.lineIsBlock = true
		return token.Hash
	}
	s.pos++
	return token.Hash
}

func (s *Scanner) scanAsterisk() token.Kind {
	if s.blockContext() {
		if end, ok := s.thematicBreakEnd(s.pos, '*'); ok {
			return s.emitThematicBreak(end)
		}
		if s.isBulletMarker() {
			s.pos++
			s.ctx.lineIsBlock = true
			return token.Asterisk
		}
	}
	return s.scanDelimiterRun('*', token.Asterisk, token.AsteriskAsterisk)
}

func (s *Scanner) scanUnderscore() token.Kind {
	if s.blockContext() {
		if end, ok := s.thematicBreakEnd(s.pos, '_'); ok {
			return s.emitThematicBreak(end)
		}
	}
	return s.scanDelimiterRun('_', token.Underscore, token.UnderscoreUnderscore)
}

// scanDash resolves '-' in priority order: frontmatter fence, setext
// underline, thematic break, list marker, plain dash.
func (s *Scanner) scanDash() token.Kind {
	n := s.runLength(s.pos, '-')

	if s.isFrontmatterFence(n) {
		s.ctx.inFrontmatter = s.tokenStart == 0
		s.ctx.lineIsBlock = true
		s.pos += n
		return token.DashDashDash
	}

	if s.blockContext() {
		if s.ctx.inParagraph && s.restIsBlank(s.pos+n) {
			s.pos += n
			s.ctx.lineIsBlock = true
			return token.SetextUnderline
		}
		if end, ok := s.thematicBreakEnd(s.pos, '-'); ok {
			return s.emitThematicBreak(end)
		}
		if s.isBulletMarker() {
			s.ctx.lineIsBlock = true
		}
	}

	s.pos++
	return token.Dash
}

// isFrontmatterFence reports whether a run of n dashes at the token start
// opens frontmatter at offset 0 or closes an open frontmatter block.
func (s *Scanner) isFrontmatterFence(n int) bool {
	if n != 3 || !s.restIsBlank(s.pos+n) {
		return false
	}
	if s.tokenStart == 0 {
		return true
	}
	return s.ctx.inFrontmatter && s.tokenStart == s.tokenCtx.lineStart
}

func (s *Scanner) scanPlus() token.Kind {
	if s.blockContext() && s.isBulletMarker() {
		s.ctx.lineIsBlock = true
	}
	s.pos++
	return token.Plus
}

func (s *Scanner) scanEquals() token.Kind {
	n := s.runLength(s.pos, '=')
	if s.ctx.inParagraph && s.blockContext() && s.restIsBlank(s.pos+n) {
		s.pos += n
		s.ctx.lineIsBlock = true
		return token.SetextUnderline
	}
	s.pos++
	return token.Equals
}

// isBulletMarker reports whether the single marker at pos is followed by a space or tab.
func (s *Scanner) isBulletMarker() bool {
	c := s.byteAt(s.pos + 1)
	return c == ' ' || c == '\t'
}

// thematicBreakEnd reports whether the line from i holds three or more ch
// separated only by spaces or tabs, returning the offset after the last ch.
func (s *Scanner) thematicBreakEnd(i int, ch byte) (int, bool) {
	count := 0
	last := i
	le := s.lineEnd(i)
	for j := i; j < le; j++ {
		switch s.text[j] {
		case ch:
			count++
			last = j + 1
		case ' ', '\t':
		default:
			return 0, false
		}
	}
	return last, count >= 3
}

// delimiterRunAt measures the run of ch around the current position.
func (s *Scanner) delimiterRunAt(ch byte) delimiterRun {
	run := delimiterRun{ch: ch, start: s.pos, end: s.pos + s.runLength(s.pos, ch)}
	for run.start > s.start && s.text[run.start-1] == ch {
		run.start--
	}

	canOpen, canClose := flanking(ch, s.runeBefore(run.start), s.runeAt(run.end))
	if canOpen {
		run.flags |= token.CanOpen
	}
	if canClose {
		run.flags |= token.CanClose
	}
	return run
}

func (s *Scanner) emitThematicBreak(end int) token.Kind {
	s.pos = end
	s.ctx.lineIsBlock = true
	return token.ThematicBreak
}

// scanDelimiterRun emits one or two ch from the current run, flagged with
// flanking hints computed over the whole run.
func (s *Scanner) scanDelimiterRun(ch byte, single, double token.Kind) token.Kind {
	run := s.ctx.delimRun
	if run.ch != ch || s.pos < run.start || s.pos >= run.end {
		run = s.delimiterRunAt(ch)
		s.ctx.delimRun = run
	}
	s.flags |= run.flags

	if run.end-s.pos >= 2 {
		s.pos += 2
		return double
	}
	s.pos++
	return single
}

// flanking applies the CommonMark left/right-flanking rules. Underscore
// additionally refuses intraword opening and closing.
func flanking(ch byte, before, after rune) (canOpen, canClose bool) {
	leftFlank := !charclass.IsWhitespace(after) &&
		(!charclass.IsPunctuation(after) || charclass.IsWhitespace(before) || charclass.IsPunctuation(before))
	rightFlank := !charclass.IsWhitespace(before) &&
		(!charclass.IsPunctuation(before) || charclass.IsWhitespace(after) || charclass.IsPunctuation(after))

	if ch == '_' {
		canOpen = leftFlank && (!rightFlank || charclass.IsPunctuation(before))
		canClose = rightFlank && (!leftFlank || charclass.IsPunctuation(after))
		return canOpen, canClose
	}
	return leftFlank, rightFlank
}

// scanBacktick emits a code fence when allowFence permits and the run is a
// valid opener or closer, otherwise an inline backtick run.
func (s *Scanner) scanBacktick(allowFence bool) token.Kind {
	n := s.runLength(s.pos, '`')
	if allowFence && n >= minFenceLength && s.atBlockStart() {
		if kind, ok := s.scanFence('`', n, token.BacktickFence); ok {
			return kind
		}
	}
	s.pos += n
	s.flags = s.flags.WithRunLength(n)
	return token.Backtick
}

func (s *Scanner) scanTilde() token.Kind {
	n := s.runLength(s.pos, '~')
	if n >= minFenceLength && s.atBlockStart() {
		if kind, ok := s.scanFence('~', n, token.TildeFence); ok {
			return kind
		}
	}
	if n >= 2 {
		return s.scanDelimiterRun('~', token.Tilde, token.TildeTilde)
	}
	s.pos++
	return token.Tilde
}

// scanFence opens a fence or closes the open one of the same character.
func (s *Scanner) scanFence(ch byte, n int, kind token.Kind) (token.Kind, bool) {
	runEnd := s.pos + n
	if open := s.ctx.fence; open.n > 0 {
		if open.char != ch || n < open.n || !s.restIsBlank(runEnd) {
			return token.Unknown, false
		}
		s.ctx.fence = fenceState{}
		s.pos = runEnd
		s.flags = s.flags.WithRunLength(n)
		s.ctx.lineIsBlock = true
		return kind, true
	}

	le := s.lineEnd(runEnd)
	if ch == '`' && strings.IndexByte(s.text[runEnd:le], '`') >= 0 {
		return token.Unknown, false
	}
	if info, ok := s.fenceInfo(runEnd, le); ok {
		s.value = info
		s.hasValue = true
	}
	s.ctx.fence = fenceState{char: ch, n: n}
	s.pos = le
	s.flags = s.flags.WithRunLength(n)
	s.ctx.lineIsBlock = true
	return kind, true
}

// scanDollar emits a math delimiter. force marks it as math unconditionally.
func (s *Scanner) scanDollar(force bool) token.Kind {
	if s.runLength(s.pos, '$') >= 2 {
		s.pos += 2
		if force || s.blockContext() {
			s.flags |= token.ContainsMath
		}
		return token.DollarDollar
	}
	s.pos++
	if force || s.inlineMathAhead(s.pos) {
		s.flags |= token.ContainsMath
	}
	return token.Dollar
}

// inlineMathAhead reports whether an opening '$' ending at i is followed by
// non-whitespace and a later unescaped '$' on the same line.
func (s *Scanner) inlineMathAhead(i int) bool {
	c := s.byteAt(i)
	if c < 0 || charclass.IsWhitespace(rune(c)) {
		return false
	}
	le := s.lineEnd(i)
	for j := i; j < le; j++ {
		switch s.text[j] {
		case '\\':
			j++
		case '$':
			return true
		}
	}
	return false
}

func (s *Scanner) scanOpenBracket() token.Kind {
	if s.blockContext() && s.definitionAhead(s.pos+1) {
		s.flags |= token.MaybeDefinition
	}
	s.pos++
	return token.OpenBracket
}

// definitionAhead reports whether the line from i holds a non-blank label
// closed by an unescaped ']' immediately followed by ':'.
func (s *Scanner) definitionAhead(i int) bool {
	le := s.lineEnd(i)
	nonBlank := false
	for j := i; j < le; j++ {
		switch s.text[j] {
		case '\\':
			j++
			nonBlank = true
		case '[':
			return false
		case ']':
			return nonBlank && s.byteAt(j+1) == ':'
		case ' ', '\t':
		default:
			nonBlank = true
		}
	}
	return false
}

// scanBackslash emits a hard-break backslash, an escaped literal, or a plain
// backslash. Escapes are not processed inside code fences.
func (s *Scanner) scanBackslash() token.Kind {
	c := s.byteAt(s.pos + 1)
	switch {
	case s.ctx.fence.n > 0:
	case c == '\n' || c == '\r':
		s.pos++
		s.flags |= token.HardBreakHint
		return token.Backslash
	case c >= 0 && charclass.IsEscapable(rune(c)):
		s.pos += 2
		s.flags |= token.IsEscaped
		s.value = string(rune(c))
		s.hasValue = true
		return token.Text
	}
	s.pos++
	return token.Backslash
}

// scanNumber emits a digit run, an ordered list marker, or continues into a
// text run when letters follow the digits.
func (s *Scanner) scanNumber() token.Kind {
	i := s.scanWhile(s.pos, charclass.IsDigit)

	if i-s.pos <= maxListNumberWidth && s.blockContext() {
		if d := s.byteAt(i); (d == '.' || d == ')') && s.followedBySpaceOrEOL(i+1) {
			n, err := strconv.Atoi(s.text[s.pos:i])
			if err == nil {
				s.flags |= token.IsOrderedListMarker
				if d == ')' {
					s.flags |= token.IsOrderedListParen
				}
				s.listStart = n
				s.ctx.listDelimiter = byte(d)
				s.ctx.lineIsBlock = true
				s.pos = i
				return token.NumericLiteral
			}
		}
	}

	s.pos = i
	if i < s.end && isTextRune(s.runeAt(i)) {
		return s.scanText()
	}
	return token.NumericLiteral
}

func (s *Scanner) scanText() token.Kind {
	s.pos = s.scanWhile(s.pos, isTextRune)
	return token.Text
}

// fenceInfo materializes the info string in [from, to): trimmed, internal
// whitespace collapsed to the delimiter, escapes and entities decoded.
func (s *Scanner) fenceInfo(from, to int) (string, bool) {
	from = s.skipSpaces(from)
	for to > from && (s.text[to-1] == ' ' || s.text[to-1] == '\t') {
		to--
	}
	if from >= to {
		return "", false
	}

	w := s.newFragmentWriter()
	defer w.done()

	segStart := from
	for i := from; i < to; {
		c := s.text[i]
		switch {
		case c == ' ' || c == '\t':
			w.span(segStart, i)
			i = s.skipSpaces(i)
			w.space()
			segStart = i
		case c == '\\' && i+1 < to && charclass.IsEscapable(rune(s.text[i+1])):
			w.span(segStart, i)
			w.char(rune(s.text[i+1]))
			i += 2
			segStart = i
		case c == '&':
			decoded, n := s.matchEntity(i, to)
			if n == 0 {
				i++
				continue
			}
			w.span(segStart, i)
			for _, r := range decoded {
				w.char(r)
			}
			i += n
			segStart = i
		default:
			i++
		}
	}
	w.span(segStart, to)
	return w.materialize(), true
}
