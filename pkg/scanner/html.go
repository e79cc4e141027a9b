package scanner

import (
	"strings"

	"github.com/yaklabco/mdscan/pkg/charclass"
	"github.com/yaklabco/mdscan/pkg/token"
)

const (
	minSchemeLength = 2
	maxSchemeLength = 32
	maxDomainLabel  = 63
)

// blockTagNames are the element names that start an HTML block.
//
//nolint:gochecknoglobals // Read-only lookup table.
var blockTagNames = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true, "basefont": true,
	"blockquote": true, "body": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dialog": true, "dir": true,
	"div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "iframe": true,
	"legend": true, "li": true, "link": true, "main": true, "menu": true,
	"menuitem": true, "nav": true, "noframes": true, "ol": true, "optgroup": true,
	"option": true, "p": true, "param": true, "pre": true, "search": true,
	"section": true, "style": true, "script": true, "summary": true, "table": true,
	"tbody": true, "td": true, "textarea": true, "tfoot": true, "th": true,
	"thead": true, "title": true, "tr": true, "track": true, "ul": true,
}

// embeddedModes maps elements whose content is not markup to the mode that
// scans it.
//
//nolint:gochecknoglobals // Read-only lookup table.
var embeddedModes = map[string]Mode{
	"script":   ModeRawText,
	"style":    ModeRawText,
	"textarea": ModeRCDATA,
	"title":    ModeRCDATA,
}

// scanLessThan tries comment, CDATA, doctype, processing instruction,
// closing tag, autolink and opening tag in that order, falling back to a
// bare LessThan. Inside a code fence '<' is always literal.
func (s *Scanner) scanLessThan() token.Kind {
	if s.ctx.fence.n > 0 {
		s.pos++
		return token.LessThan
	}

	rest := s.text[s.pos:s.end]
	next := s.byteAt(s.pos + 1)
	switch {
	case strings.HasPrefix(rest, "<!--"):
		return s.scanComment()
	case strings.HasPrefix(rest, "<![CDATA["):
		return s.scanDelimitedHTML(token.HTMLCDATA, len("<![CDATA["), "]]>")
	case next == '!' && s.byteAt(s.pos+2) >= 0 && charclass.IsLetter(rune(s.byteAt(s.pos+2))):
		return s.scanDelimitedHTML(token.HTMLDoctype, len("<!"), ">")
	case next == '?':
		return s.scanDelimitedHTML(token.HTMLProcessingInstruction, len("<?"), "?>")
	case next == '/' && s.byteAt(s.pos+2) >= 0 && charclass.IsLetter(rune(s.byteAt(s.pos+2))):
		return s.scanClosingTagStart()
	}

	if s.scanAutolink() {
		return token.HTMLText
	}
	if s.scanOpeningTag() {
		return token.HTMLText
	}

	s.pos++
	return token.LessThan
}

// scanComment handles the degenerate "<!-->" and "<!--->" forms before the
// general "-->" search.
func (s *Scanner) scanComment() token.Kind {
	rest := s.text[s.pos:s.end]
	for _, empty := range []string{"<!-->", "<!--->"} {
		if strings.HasPrefix(rest, empty) {
			s.pos += len(empty)
			s.value = ""
			s.hasValue = true
			s.flags |= token.ContainsHTML
			s.markHTMLBlockStart()
			return token.HTMLComment
		}
	}
	return s.scanDelimitedHTML(token.HTMLComment, len("<!--"), "-->")
}

// scanDelimitedHTML consumes an HTML construct opened by openLen bytes and
// closed by closer. The value is the content between the delimiters. An
// unterminated construct runs to the window end and is flagged Unterminated.
func (s *Scanner) scanDelimitedHTML(kind token.Kind, openLen int, closer string) token.Kind {
	contentStart := s.pos + openLen
	idx := strings.Index(s.text[contentStart:s.end], closer)
	if idx < 0 {
		s.value = s.text[contentStart:s.end]
		s.pos = s.end
		s.flags |= token.Unterminated
	} else {
		s.value = s.text[contentStart : contentStart+idx]
		s.pos = contentStart + idx + len(closer)
	}
	s.hasValue = true
	s.flags |= token.ContainsHTML
	s.markHTMLBlockStart()
	return kind
}

// scanClosingTagStart emits "</" and arms the closing-tag context so the tag
// name and '>' scan as Identifier and GreaterThan.
func (s *Scanner) scanClosingTagStart() token.Kind {
	s.pos += len("</")
	s.flags |= token.ContainsHTML
	s.ctx.inClosingTag = true

	nameEnd := s.scanWhile(s.pos, charclass.IsTagNameChar)
	if blockTagNames[strings.ToLower(s.text[s.pos:nameEnd])] {
		s.markHTMLBlockStart()
	}
	return token.LessThanSlash
}

// markHTMLBlockStart activates the HTML block hint when the current token
// sits at block start.
func (s *Scanner) markHTMLBlockStart() {
	if !s.blockContext() {
		return
	}
	s.flags |= token.ContainsHTMLBlock
	s.ctx.htmlBlock = true
	s.ctx.lineIsBlock = true
}

// scanAutolink consumes "<scheme:...>" or "<local@domain>". The value is the
// bracketed address.
func (s *Scanner) scanAutolink() bool {
	start := s.pos + 1
	if end, ok := s.uriAutolinkEnd(start); ok {
		s.finishAutolink(start, end, token.IsAutolinkURL)
		return true
	}
	if end, ok := s.emailAutolinkEnd(start); ok {
		s.finishAutolink(start, end, token.IsAutolinkEmail)
		return true
	}
	return false
}

func (s *Scanner) finishAutolink(start, end int, flag token.Flags) {
	s.value = s.text[start:end]
	s.hasValue = true
	s.flags |= flag
	s.pos = end + 1
}

// uriAutolinkEnd returns the offset of the closing '>' of an absolute URI
// whose scheme starts at i.
func (s *Scanner) uriAutolinkEnd(i int) (int, bool) {
	if c := s.byteAt(i); c < 0 || !charclass.IsLetter(rune(c)) {
		return 0, false
	}
	j := i + 1
	for j < s.end && isSchemeChar(s.text[j]) {
		j++
	}
	if n := j - i; n < minSchemeLength || n > maxSchemeLength || s.byteAt(j) != ':' {
		return 0, false
	}
	for j++; j < s.end; j++ {
		c := s.text[j]
		switch {
		case c == '>':
			return j, true
		case c == '<' || c <= ' ' || c == 0x7F:
			return 0, false
		}
	}
	return 0, false
}

func isSchemeChar(c byte) bool {
	return isASCIIAlnum(c) || c == '+' || c == '.' || c == '-'
}

// emailAutolinkEnd returns the offset of the closing '>' of an email address
// starting at i.
func (s *Scanner) emailAutolinkEnd(i int) (int, bool) {
	j := i
	for j < s.end && isEmailLocalChar(s.text[j]) {
		j++
	}
	if j == i || s.byteAt(j) != '@' {
		return 0, false
	}
	j++

	for {
		labelStart := j
		for j < s.end && (isASCIIAlnum(s.text[j]) || s.text[j] == '-') {
			j++
		}
		n := j - labelStart
		if n == 0 || n > maxDomainLabel || s.text[labelStart] == '-' || s.text[j-1] == '-' {
			return 0, false
		}
		switch s.byteAt(j) {
		case '.':
			j++
		case '>':
			return j, true
		default:
			return 0, false
		}
	}
}

func isEmailLocalChar(c byte) bool {
	return isASCIIAlnum(c) || strings.IndexByte(".!#$%&'*+/=?^_`{|}~-", c) >= 0
}

func isASCIIAlnum(c byte) bool {
	return c < 0x80 && charclass.IsAlphanumeric(rune(c))
}

// openTag is a parsed opening tag.
type openTag struct {
	name        string
	end         int
	selfClosing bool
}

// scanOpeningTag consumes a complete opening tag as one HTMLText token,
// switching into raw text or RCDATA mode for script, style, textarea and title.
func (s *Scanner) scanOpeningTag() bool {
	tag, ok := s.parseOpenTag(s.pos)
	if !ok {
		return false
	}
	s.pos = tag.end
	s.flags |= token.ContainsHTML
	if blockTagNames[tag.name] {
		s.markHTMLBlockStart()
	}
	if mode, embedded := embeddedModes[tag.name]; embedded && !tag.selfClosing {
		s.enterMode(mode, tag.name)
	}
	return true
}

// parseOpenTag parses "<name attr=value ...>" or the self-closing form
// starting at the '<' at i. Attributes must be separated by whitespace.
func (s *Scanner) parseOpenTag(i int) (openTag, bool) {
	j := i + 1
	if c := s.byteAt(j); c < 0 || !charclass.IsLetter(rune(c)) {
		return openTag{}, false
	}
	nameEnd := s.scanWhile(j, charclass.IsTagNameChar)
	tag := openTag{name: strings.ToLower(s.text[j:nameEnd])}
	j = nameEnd

	for {
		afterSpace := s.skipTagSpace(j)
		switch {
		case s.byteAt(afterSpace) == '>':
			tag.end = afterSpace + 1
			return tag, true
		case s.byteAt(afterSpace) == '/' && s.byteAt(afterSpace+1) == '>':
			tag.end = afterSpace + 2
			tag.selfClosing = true
			return tag, true
		case afterSpace == j:
			return openTag{}, false
		}

		end, ok := s.parseAttribute(afterSpace)
		if !ok {
			return openTag{}, false
		}
		j = end
	}
}

// parseAttribute parses one attribute with an optional value starting at i.
func (s *Scanner) parseAttribute(i int) (int, bool) {
	c := s.byteAt(i)
	if c < 0 || !(charclass.IsLetter(rune(c)) || c == '_' || c == ':') {
		return 0, false
	}
	j := s.scanWhile(i+1, charclass.IsAttributeNameChar)

	eq := s.skipTagSpace(j)
	if s.byteAt(eq) != '=' {
		return j, true
	}
	v := s.skipTagSpace(eq + 1)

	switch q := s.byteAt(v); q {
	case '"', '\'':
		closeIdx := strings.IndexByte(s.text[v+1:s.end], byte(q))
		if closeIdx < 0 {
			return 0, false
		}
		return v + 1 + closeIdx + 1, true
	default:
		k := v
		for k < s.end && !isUnquotedValueTerminator(s.text[k]) {
			k++
		}
		if k == v {
			return 0, false
		}
		return k, true
	}
}

func isUnquotedValueTerminator(c byte) bool {
	return isTagSpace(c) || strings.IndexByte("\"'=<>`", c) >= 0
}

// isTagSpace reports whether c is ASCII whitespace, line breaks included.
func isTagSpace(c byte) bool {
	return c < 0x80 && charclass.IsWhitespace(rune(c))
}

// skipTagSpace advances over whitespace, including line breaks, inside a tag.
func (s *Scanner) skipTagSpace(i int) int {
	for i < s.end && isTagSpace(s.text[i]) {
		i++
	}
	return i
}

func (s *Scanner) enterMode(mode Mode, tag string) {
	s.ctx.mode = mode
	s.ctx.rawTag = tag
	s.ctx.embeddedUnterminated = false
	if s.logger != nil {
		s.logger.Debug("entering embedded content", "mode", mode, "tag", tag, "offset", s.pos)
	}
}

func (s *Scanner) exitMode() {
	if s.logger != nil {
		s.logger.Debug("leaving embedded content", "mode", s.ctx.mode, "tag", s.ctx.rawTag, "offset", s.pos)
	}
	s.ctx.mode = ModeNormal
	s.ctx.rawTag = ""
	s.ctx.embeddedUnterminated = false
}

// atRawClosingTag reports whether the closing tag of the active embedded
// element starts at i. The name matches case-insensitively and must be
// followed by whitespace, '/', '>' or the window end.
func (s *Scanner) atRawClosingTag(i int) bool {
	tag := s.ctx.rawTag
	nameStart := i + len("</")
	nameEnd := nameStart + len(tag)
	if nameEnd > s.end || s.text[i] != '<' || s.byteAt(i+1) != '/' {
		return false
	}
	if !strings.EqualFold(s.text[nameStart:nameEnd], tag) {
		return false
	}
	switch s.byteAt(nameEnd) {
	case -1, ' ', '\t', '\n', '\r', '\f', '/', '>':
		return true
	}
	return false
}

// findRawClosingTag returns the offset of the next closing tag of the active
// embedded element at or after i, or -1.
func (s *Scanner) findRawClosingTag(i int) int {
	for i < s.end {
		idx := strings.IndexByte(s.text[i:s.end], '<')
		if idx < 0 {
			return -1
		}
		i += idx
		if s.atRawClosingTag(i) {
			return i
		}
		i++
	}
	return -1
}

// scanEmbeddedContent consumes raw text or RCDATA up to the closing tag.
// RCDATA content carries its entity-decoded value.
func (s *Scanner) scanEmbeddedContent() token.Kind {
	if s.ctx.mode == ModeRawText {
		s.flags |= token.IsInRawText
	} else {
		s.flags |= token.IsInRCDATA
	}

	end := s.findRawClosingTag(s.pos)
	if end < 0 {
		s.pos = s.end
		s.flags |= token.Unterminated
		s.ctx.embeddedUnterminated = true
		s.emitError(ErrUnexpectedEndOfFile, "unexpected end of file, expected </"+s.ctx.rawTag+">")
	} else {
		s.pos = end
	}

	if s.ctx.mode == ModeRCDATA {
		if value, ok := s.decodedContent(s.tokenStart, s.pos); ok {
			s.value = value
			s.hasValue = true
		}
	}
	return token.HTMLText
}
