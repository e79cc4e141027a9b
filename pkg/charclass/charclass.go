// Package charclass provides stateless character classification predicates
// used by the scanner.
//
// Classification is ASCII-centric. Code points outside ASCII are treated as
// identifier-like: they count as identifier, tag-name and attribute-name
// characters but never as ASCII punctuation or whitespace (except U+00A0).
package charclass

import "github.com/yuin/goldmark/util"

const (
	asciiMax = 0x7F
	nbsp     = 0xA0
)

// IsLineBreak reports whether r is '\n' or '\r'.
func IsLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// IsWhitespaceSingleLine reports whether r is whitespace that does not end a line.
func IsWhitespaceSingleLine(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', nbsp:
		return true
	}
	return false
}

// IsWhitespace reports whether r is any whitespace, line breaks included.
func IsWhitespace(r rune) bool {
	return IsWhitespaceSingleLine(r) || IsLineBreak(r)
}

// IsLetter reports whether r is an ASCII letter.
func IsLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsDigit reports whether r is an ASCII decimal digit.
func IsDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// IsHexDigit reports whether r is an ASCII hexadecimal digit.
func IsHexDigit(r rune) bool {
	return IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsAlphanumeric reports whether r is an ASCII letter or digit, or any non-ASCII code point.
func IsAlphanumeric(r rune) bool {
	return IsLetter(r) || IsDigit(r) || r > asciiMax && !IsWhitespace(r)
}

// IsIdentifierStart reports whether r can begin an identifier run.
func IsIdentifierStart(r rune) bool {
	return IsLetter(r) || r == '_' || r > asciiMax && !IsWhitespace(r)
}

// IsIdentifierPart reports whether r can continue an identifier run.
func IsIdentifierPart(r rune) bool {
	return IsIdentifierStart(r) || IsDigit(r)
}

// IsPunctuation reports whether r is ASCII punctuation.
func IsPunctuation(r rune) bool {
	return r >= 0 && r <= asciiMax && util.IsPunct(byte(r))
}

// IsEscapable reports whether a backslash before r produces a literal r.
// Every ASCII punctuation character is escapable in Markdown.
func IsEscapable(r rune) bool {
	return IsPunctuation(r)
}

// IsTagNameChar reports whether r can appear in an HTML tag name after the first letter.
func IsTagNameChar(r rune) bool {
	return IsLetter(r) || IsDigit(r) || r == '-' || r > asciiMax && !IsWhitespace(r)
}

// IsAttributeNameChar reports whether r can appear in an HTML attribute name.
func IsAttributeNameChar(r rune) bool {
	switch {
	case IsLetter(r), IsDigit(r):
		return true
	case r == '_', r == ':', r == '.', r == '-':
		return true
	}
	return r > asciiMax && !IsWhitespace(r)
}

// ToLowerASCII maps ASCII upper-case letters to lower case and leaves everything else.
func ToLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
