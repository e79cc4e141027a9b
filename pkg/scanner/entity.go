package scanner

import (
	"strconv"

	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mdscan/pkg/charclass"
	"github.com/yaklabco/mdscan/pkg/token"
)

const (
	maxEntityNameLength = 32
	maxDecimalDigits    = 7
	maxHexDigits        = 6
)

// scanAmpersand emits a decoded character reference as Text, or a bare
// Ampersand when no valid reference starts here or a code fence is open.
func (s *Scanner) scanAmpersand() token.Kind {
	if s.ctx.fence.n > 0 {
		s.pos++
		return token.Ampersand
	}
	if value, n := s.matchEntity(s.pos, s.end); n > 0 {
		s.pos += n
		s.value = value
		s.hasValue = true
		return token.Text
	}
	s.pos++
	return token.Ampersand
}

// matchEntity decodes the character reference starting at the '&' at i and
// ending before limit. It returns the decoded text and the consumed length,
// or a zero length when no reference matches.
func (s *Scanner) matchEntity(i, limit int) (string, int) {
	limit = min(limit, s.end)
	j := i + 1
	if j >= limit {
		return "", 0
	}

	if s.text[j] == '#' {
		return s.matchNumericEntity(i, limit)
	}

	nameStart := j
	for j < limit && j-nameStart < maxEntityNameLength && charclass.IsAlphanumeric(rune(s.text[j])) &&
		s.text[j] < 0x80 {
		j++
	}
	if j == nameStart || j >= limit || s.text[j] != ';' {
		return "", 0
	}
	entity, ok := util.LookUpHTML5EntityByName(s.text[nameStart:j])
	if !ok {
		return "", 0
	}
	return string(entity.Characters), j + 1 - i
}

func (s *Scanner) matchNumericEntity(i, limit int) (string, int) {
	j := i + 2
	base, maxDigits, isDigit := 10, maxDecimalDigits, charclass.IsDigit
	if j < limit && (s.text[j] == 'x' || s.text[j] == 'X') {
		j++
		base, maxDigits, isDigit = 16, maxHexDigits, charclass.IsHexDigit
	}

	digitStart := j
	for j < limit && j-digitStart < maxDigits && isDigit(rune(s.text[j])) {
		j++
	}
	if j == digitStart || j >= limit || s.text[j] != ';' {
		return "", 0
	}
	n, err := strconv.ParseInt(s.text[digitStart:j], base, 32)
	if err != nil {
		return "", 0
	}
	return string(util.ToValidRune(rune(n))), j + 1 - i
}
