package token

import (
	"strconv"
	"strings"
)

// Flags is the packed bit set attached to every token.
// Bits 24-29 hold a 6-bit run length (fence and backtick counts, heading level).
type Flags uint32

// Token flags.
const (
	PrecedingLineBreak Flags = 1 << iota
	IsAtLineStart
	Unterminated
	ContainsHTML
	ContainsHTMLBlock
	IsInRawText
	IsInRCDATA
	CanOpen
	CanClose
	IsEscaped
	IsAutolinkEmail
	IsAutolinkURL
	IsOrderedListMarker
	IsOrderedListParen
	MaybeDefinition
	HardBreakHint
	IsBlankLine
	ContainsMath

	flagCount = iota
)

const (
	runLengthShift = 24
	runLengthMask  = Flags(0x3F) << runLengthShift

	// MaxRunLength is the largest run length the packed field can hold.
	// Longer runs saturate.
	MaxRunLength = 0x3F
)

//nolint:gochecknoglobals // Read-only lookup table.
var flagNames = [flagCount]string{
	"PrecedingLineBreak",
	"IsAtLineStart",
	"Unterminated",
	"ContainsHTML",
	"ContainsHTMLBlock",
	"IsInRawText",
	"IsInRCDATA",
	"CanOpen",
	"CanClose",
	"IsEscaped",
	"IsAutolinkEmail",
	"IsAutolinkURL",
	"IsOrderedListMarker",
	"IsOrderedListParen",
	"MaybeDefinition",
	"HardBreakHint",
	"IsBlankLine",
	"ContainsMath",
}

// Has reports whether all bits of mask are set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// RunLength returns the packed run-length field.
func (f Flags) RunLength() int {
	return int((f & runLengthMask) >> runLengthShift)
}

// WithRunLength returns f with the run-length field replaced by n, saturating at MaxRunLength.
func (f Flags) WithRunLength(n int) Flags {
	if n < 0 {
		n = 0
	}
	if n > MaxRunLength {
		n = MaxRunLength
	}
	return (f &^ runLengthMask) | Flags(n)<<runLengthShift
}

// Bits returns the packed integer view.
func (f Flags) Bits() uint32 {
	return uint32(f)
}

// Names returns the names of the set boolean flags in bit order.
func (f Flags) Names() []string {
	var names []string
	for i := range flagCount {
		if f&(1<<i) != 0 {
			names = append(names, flagNames[i])
		}
	}
	return names
}

// String renders set flags joined by '|', followed by the run length when non-zero.
func (f Flags) String() string {
	parts := f.Names()
	if n := f.RunLength(); n > 0 {
		parts = append(parts, "run="+strconv.Itoa(n))
	}
	if len(parts) == 0 {
		return "None"
	}
	return strings.Join(parts, "|")
}

// ParseFlag returns the flag with the given name.
func ParseFlag(name string) (Flags, bool) {
	for i, n := range flagNames {
		if n == name {
			return 1 << i, true
		}
	}
	return 0, false
}
