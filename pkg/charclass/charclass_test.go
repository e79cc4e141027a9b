package charclass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdscan/pkg/charclass"
)

func TestPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pred func(rune) bool
		yes  []rune
		no   []rune
	}{
		{"line break", charclass.IsLineBreak, []rune{'\n', '\r'}, []rune{' ', 'a', 0x2028}},
		{"single line whitespace", charclass.IsWhitespaceSingleLine, []rune{' ', '\t', '\f', 0xA0}, []rune{'\n', 'x'}},
		{"whitespace", charclass.IsWhitespace, []rune{' ', '\n', '\r', '\t'}, []rune{'-', 'é'}},
		{"letter", charclass.IsLetter, []rune{'a', 'Z'}, []rune{'0', '_', 'é'}},
		{"digit", charclass.IsDigit, []rune{'0', '9'}, []rune{'a', '٣'}},
		{"hex digit", charclass.IsHexDigit, []rune{'0', 'a', 'F'}, []rune{'g', 'G'}},
		{"alphanumeric", charclass.IsAlphanumeric, []rune{'a', '5', 'é', '日'}, []rune{'_', ' ', '*'}},
		{"identifier start", charclass.IsIdentifierStart, []rune{'a', '_', 'é'}, []rune{'1', '-'}},
		{"identifier part", charclass.IsIdentifierPart, []rune{'a', '_', '1', 'é'}, []rune{'-', ' '}},
		{"punctuation", charclass.IsPunctuation, []rune{'!', '*', '_', '~', '\\', '`'}, []rune{'a', ' ', '«'}},
		{"escapable", charclass.IsEscapable, []rune{'#', '[', '|', '$'}, []rune{'a', '\n'}},
		{"tag name", charclass.IsTagNameChar, []rune{'a', '1', '-', 'é'}, []rune{'>', ' ', '/', '_'}},
		{"attribute name", charclass.IsAttributeNameChar, []rune{'a', ':', '.', '-', '_'}, []rune{'=', '>', '"', ' ', '/'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, r := range tt.yes {
				assert.True(t, tt.pred(r), "%q", r)
			}
			for _, r := range tt.no {
				assert.False(t, tt.pred(r), "%q", r)
			}
		})
	}
}

func TestToLowerASCII(t *testing.T) {
	t.Parallel()

	assert.Equal(t, byte('a'), charclass.ToLowerASCII('A'))
	assert.Equal(t, byte('z'), charclass.ToLowerASCII('z'))
	assert.Equal(t, byte('-'), charclass.ToLowerASCII('-'))
}
