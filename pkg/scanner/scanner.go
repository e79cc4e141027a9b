// Package scanner implements an incremental lexical scanner for hybrid
// Markdown+HTML text.
//
// A Scanner classifies source text into a stream of typed, flagged,
// position-exact tokens, one per call to Scan. It never builds trees; flags
// such as CanOpen, MaybeDefinition or ContainsHTMLBlock are hints for a
// downstream tree builder. Token accessors are overwritten by the next Scan.
//
// A Scanner is not safe for concurrent use. Independent scanners share no
// mutable state.
package scanner

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdscan/pkg/charclass"
	"github.com/yaklabco/mdscan/pkg/spanbuf"
	"github.com/yaklabco/mdscan/pkg/token"
)

// Mode selects how '<' and '&' are interpreted.
type Mode uint8

// Scan modes.
const (
	ModeNormal Mode = iota
	ModeRawText
	ModeRCDATA
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeRawText:
		return "raw-text"
	case ModeRCDATA:
		return "rcdata"
	default:
		return "normal"
	}
}

const tabStop = 4

// fenceState records the currently open code fence.
type fenceState struct {
	char byte
	n    int
}

// scanContext is the line-level state carried between tokens.
type scanContext struct {
	atLineStart        bool
	precedingLineBreak bool
	lineStart          int

	inParagraph    bool // previous line was paragraph content
	lineHasContent bool // a non-trivia token was produced on this line
	lineIsBlock    bool // this line opened a non-paragraph block construct
	inFrontmatter  bool
	fence          fenceState

	inClosingTag  bool
	listDelimiter byte

	mode                 Mode
	rawTag               string
	embeddedUnterminated bool // embedded content already ran to the window end
	htmlBlock            bool

	delimRun delimiterRun
}

// delimiterRun caches the bounds and flanking hints of the emphasis run
// being emitted, so later tokens of the run reuse them.
type delimiterRun struct {
	ch         byte
	start, end int
	flags      token.Flags
}

// columnCache remembers the column of one offset on one line so that
// successive TokenColumn calls on a line advance instead of rescanning it.
type columnCache struct {
	lineStart int
	offset    int
	column    int
}

// Scanner is the scanning engine. The zero value is not usable; call New.
type Scanner struct {
	text  string
	start int
	end   int
	pos   int

	tokenStart int
	tok        token.Kind
	flags      token.Flags
	value      string
	hasValue   bool
	listStart  int

	ctx      scanContext
	tokenCtx scanContext

	spans     *spanbuf.Buffer
	delimiter rune
	col       columnCache
	errs      errorState
	onError   ErrorCallback
	logger    *log.Logger
}

// New creates a Scanner with no text.
func New(opts Options) *Scanner {
	delim := opts.Delimiter
	if delim == 0 {
		delim = spanbuf.DefaultDelimiter
	}
	s := &Scanner{
		spans:     spanbuf.New(delim),
		delimiter: delim,
		onError:   opts.OnError,
		logger:    opts.Logger,
	}
	s.SetText("")
	return s
}

// SetText resets all state and scans the whole of text.
func (s *Scanner) SetText(text string) {
	s.SetTextRange(text, 0, len(text))
}

// SetTextRange resets all state and scans text[start:start+length].
// Out-of-range bounds are clamped to the text.
func (s *Scanner) SetTextRange(text string, start, length int) {
	start = max(0, min(start, len(text)))
	end := len(text)
	if length >= 0 && start+length < end {
		end = start + length
	}

	s.text = text
	s.start = start
	s.end = end
	s.pos = start
	s.tokenStart = start
	s.tok = token.Unknown
	s.flags = 0
	s.value = ""
	s.hasValue = false
	s.listStart = 0
	s.ctx = scanContext{}
	s.restoreLineState(start)
	s.tokenCtx = s.ctx
	s.spans.SetSource(text)
	s.errs.reset()
	s.col = columnCache{lineStart: start, offset: start}
}

// ResetTokenState moves the scanner to pos, recomputing only the line-start
// and preceding-break context from the character before pos.
func (s *Scanner) ResetTokenState(pos int) {
	pos = max(s.start, min(pos, s.end))
	s.pos = pos
	s.tokenStart = pos
	s.ctx.inClosingTag = false
	s.ctx.listDelimiter = 0
	s.restoreLineState(pos)
	s.tokenCtx = s.ctx
}

func (s *Scanner) restoreLineState(pos int) {
	prevBreak := pos > 0 && charclass.IsLineBreak(rune(s.text[pos-1]))
	s.ctx.atLineStart = pos == 0 || prevBreak
	s.ctx.precedingLineBreak = prevBreak
	ls := pos
	for ls > 0 && !charclass.IsLineBreak(rune(s.text[ls-1])) {
		ls--
	}
	s.ctx.lineStart = ls
}

// Text returns the source text.
func (s *Scanner) Text() string { return s.text }

// Pos returns the current scan position.
func (s *Scanner) Pos() int { return s.pos }

// Token returns the kind of the current token.
func (s *Scanner) Token() token.Kind { return s.tok }

// TokenStart returns the start offset of the current token.
func (s *Scanner) TokenStart() int { return s.tokenStart }

// TokenEnd returns the end offset of the current token.
func (s *Scanner) TokenEnd() int { return s.pos }

// TokenText returns the verbatim source slice of the current token.
func (s *Scanner) TokenText() string { return s.text[s.tokenStart:s.pos] }

// TokenValue returns the decoded value, falling back to the verbatim slice.
func (s *Scanner) TokenValue() string {
	if s.hasValue {
		return s.value
	}
	return s.TokenText()
}

// HasTokenValue reports whether the current token carries a materialized value.
func (s *Scanner) HasTokenValue() bool { return s.hasValue }

// TokenFlags returns the flags of the current token.
func (s *Scanner) TokenFlags() token.Flags { return s.flags }

// OrderedListStart returns the parsed number of an ordered list marker token.
func (s *Scanner) OrderedListStart() int { return s.listStart }

// Mode returns the active scan mode.
func (s *Scanner) Mode() Mode { return s.ctx.mode }

// HTMLBlockActive reports whether the HTML block hint is active.
func (s *Scanner) HTMLBlockActive() bool { return s.ctx.htmlBlock }

// TokenColumn returns the 0-based column of the current token, expanding tabs
// to the next multiple of 4.
func (s *Scanner) TokenColumn() int {
	c := s.col
	if c.lineStart != s.tokenCtx.lineStart || c.offset > s.tokenStart {
		c = columnCache{lineStart: s.tokenCtx.lineStart, offset: s.tokenCtx.lineStart}
	}
	for c.offset < s.tokenStart {
		r, size := utf8.DecodeRuneInString(s.text[c.offset:s.tokenStart])
		if r == '\t' {
			c.column += tabStop - c.column%tabStop
		} else {
			c.column++
		}
		c.offset += size
	}
	s.col = c
	return c.column
}

// TokenRecord copies the current token.
func (s *Scanner) TokenRecord() token.Token {
	return token.Token{
		Kind:        s.tok,
		StartOffset: s.tokenStart,
		EndOffset:   s.pos,
		Flags:       s.flags,
		Value:       s.value,
		HasValue:    s.hasValue,
		ListStart:   s.listStart,
		Column:      s.TokenColumn(),
	}
}

// Scan produces the next token and returns its kind. At the end of the
// window it returns token.EndOfFile without advancing.
func (s *Scanner) Scan() token.Kind {
	s.beginToken()
	if s.pos >= s.end {
		s.ctx = s.tokenCtx
		s.tok = token.EndOfFile
		if s.ctx.mode != ModeNormal && !s.ctx.embeddedUnterminated {
			s.flags |= token.Unterminated
			s.emitError(ErrUnexpectedEndOfFile, "unexpected end of file, expected </"+s.ctx.rawTag+">")
		}
		return s.tok
	}
	s.tok = s.dispatch()
	s.finishToken()
	return s.tok
}

func (s *Scanner) beginToken() {
	s.tokenCtx = s.ctx
	s.tokenStart = s.pos
	s.flags = 0
	s.value = ""
	s.hasValue = false
	s.listStart = 0
	if s.ctx.atLineStart {
		s.flags |= token.IsAtLineStart
	}
	if s.ctx.precedingLineBreak {
		s.flags |= token.PrecedingLineBreak
	}
	if s.ctx.htmlBlock {
		s.flags |= token.ContainsHTMLBlock
	}
	s.ctx.atLineStart = false
	s.ctx.precedingLineBreak = false
}

// finishToken updates line context after a token. Tokens other than NewLine
// may span line breaks (HTML constructs, embedded content); the next token
// then starts a fresh line.
func (s *Scanner) finishToken() {
	if !s.tok.IsTrivia() {
		s.ctx.lineHasContent = true
	}
	if s.tok == token.NewLine {
		return
	}
	if idx := strings.LastIndexAny(s.text[s.tokenStart:s.pos], "\r\n"); idx >= 0 {
		s.ctx.lineStart = s.tokenStart + idx + 1
		if s.ctx.lineStart == s.pos {
			s.ctx.atLineStart = true
			s.ctx.precedingLineBreak = true
		}
	}
}

func (s *Scanner) dispatch() token.Kind {
	if s.ctx.mode != ModeNormal {
		if !s.atRawClosingTag(s.pos) {
			return s.scanEmbeddedContent()
		}
		s.exitMode()
	}

	ch := s.text[s.pos]

	if d := s.ctx.listDelimiter; d != 0 {
		s.ctx.listDelimiter = 0
		if ch == d {
			s.pos++
			if d == ')' {
				return token.CloseParen
			}
			return token.Dot
		}
	}

	if s.ctx.inClosingTag {
		switch {
		case ch == '>':
			s.ctx.inClosingTag = false
			s.pos++
			s.flags |= token.ContainsHTML
			return token.GreaterThan
		case charclass.IsLetter(rune(ch)):
			s.pos = s.scanWhile(s.pos, charclass.IsTagNameChar)
			s.flags |= token.ContainsHTML
			return token.Identifier
		case !charclass.IsWhitespace(rune(ch)):
			s.ctx.inClosingTag = false
		}
	}

	switch ch {
	case ' ', '\t', '\v', '\f':
		return s.scanWhitespace()
	case '\n', '\r':
		return s.scanNewLine()
	case '#':
		return s.scanHash()
	case '*':
		return s.scanAsterisk()
	case '_':
		return s.scanUnderscore()
	case '-':
		return s.scanDash()
	case '+':
		return s.scanPlus()
	case '=':
		return s.scanEquals()
	case '`':
		return s.scanBacktick(true)
	case '~':
		return s.scanTilde()
	case '$':
		return s.scanDollar(false)
	case '[':
		return s.scanOpenBracket()
	case ']':
		return s.single(token.CloseBracket)
	case '(':
		return s.single(token.OpenParen)
	case ')':
		return s.single(token.CloseParen)
	case '{':
		return s.single(token.OpenBrace)
	case '}':
		return s.single(token.CloseBrace)
	case '|':
		return s.single(token.Pipe)
	case '\\':
		return s.scanBackslash()
	case '>':
		return s.single(token.GreaterThan)
	case ':':
		return s.single(token.Colon)
	case '!':
		return s.single(token.Exclamation)
	case '&':
		return s.scanAmpersand()
	case '<':
		return s.scanLessThan()
	}

	if charclass.IsDigit(rune(ch)) {
		return s.scanNumber()
	}

	r, size := utf8.DecodeRuneInString(s.text[s.pos:s.end])
	if charclass.IsWhitespaceSingleLine(r) {
		return s.scanWhitespace()
	}
	if isTextRune(r) {
		return s.scanText()
	}
	s.pos += size
	return token.Unknown
}

func (s *Scanner) single(kind token.Kind) token.Kind {
	s.pos++
	return kind
}

// byteAt returns the byte at i, or -1 outside the scan window.
func (s *Scanner) byteAt(i int) int {
	if i < s.start || i >= s.end {
		return -1
	}
	return int(s.text[i])
}

// runeBefore returns the code point ending at i, or ' ' at the window start.
func (s *Scanner) runeBefore(i int) rune {
	if i <= s.start {
		return ' '
	}
	r, _ := utf8.DecodeLastRuneInString(s.text[s.start:i])
	return r
}

// runeAt returns the code point starting at i, or ' ' at the window end.
func (s *Scanner) runeAt(i int) rune {
	if i >= s.end {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(s.text[i:s.end])
	return r
}

// runLength counts consecutive ch bytes starting at i.
func (s *Scanner) runLength(i int, ch byte) int {
	n := 0
	for i+n < s.end && s.text[i+n] == ch {
		n++
	}
	return n
}

// scanWhile advances from i over code points satisfying pred.
func (s *Scanner) scanWhile(i int, pred func(rune) bool) int {
	for i < s.end {
		r, size := utf8.DecodeRuneInString(s.text[i:s.end])
		if !pred(r) {
			break
		}
		i += size
	}
	return i
}

// skipSpaces advances from i over spaces and tabs.
func (s *Scanner) skipSpaces(i int) int {
	for i < s.end && (s.text[i] == ' ' || s.text[i] == '\t') {
		i++
	}
	return i
}

// lineEnd returns the offset of the next line break at or after i, or the window end.
func (s *Scanner) lineEnd(i int) int {
	for i < s.end && s.text[i] != '\n' && s.text[i] != '\r' {
		i++
	}
	return i
}

// restIsBlank reports whether only spaces and tabs remain on the line from i.
func (s *Scanner) restIsBlank(i int) bool {
	return s.skipSpaces(i) == s.lineEnd(i)
}

// followedBySpaceOrEOL reports whether i holds a space, tab, line break, or the window end.
func (s *Scanner) followedBySpaceOrEOL(i int) bool {
	c := s.byteAt(i)
	return c < 0 || c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// atBlockStart reports whether the current token is the first content on its
// line, allowing up to three columns of indentation and blockquote markers.
func (s *Scanner) atBlockStart() bool {
	col := 0
	for i := s.tokenCtx.lineStart; i < s.tokenStart; i++ {
		switch s.text[i] {
		case ' ':
			col++
		case '\t':
			col += tabStop - col%tabStop
		case '>':
			col = 0
		default:
			return false
		}
	}
	return col < tabStop
}

// isTextRune reports whether r continues a text run.
func isTextRune(r rune) bool {
	if r < 0x20 || r == 0x7F {
		return false
	}
	if charclass.IsWhitespace(r) {
		return false
	}
	if r < utf8.RuneSelf {
		return !isSpecialByte(byte(r))
	}
	return true
}

// isSpecialByte reports whether b dispatches to a dedicated sub-scanner.
func isSpecialByte(b byte) bool {
	switch b {
	case '#', '*', '_', '-', '+', '=', '`', '~', '$',
		'[', ']', '(', ')', '{', '}', '|', '\\', '>', ':', '!', '&', '<':
		return true
	}
	return false
}
