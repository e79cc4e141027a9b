package token

// Token is a copied record of one scanned token.
// Ranges are half-open byte offsets into the source text.
type Token struct {
	// Kind classifies what this token represents.
	Kind Kind

	// StartOffset is the byte index where this token begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where this token ends (exclusive).
	EndOffset int

	// Flags holds the token's flag bits and run length.
	Flags Flags

	// Value is the decoded or normalized text when it differs from the verbatim slice.
	// HasValue distinguishes an empty decoded value from no value.
	Value    string
	HasValue bool

	// ListStart is the parsed number of an ordered list marker, zero otherwise.
	ListStart int

	// Column is the 0-based visual column of StartOffset, tabs expanded to stops of 4.
	Column int
}

// Text returns the verbatim source text of this token.
func (t Token) Text(source string) string {
	if t.StartOffset < 0 || t.EndOffset > len(source) || t.StartOffset > t.EndOffset {
		return ""
	}
	return source[t.StartOffset:t.EndOffset]
}

// ValueOr returns the materialized value, falling back to the verbatim slice.
func (t Token) ValueOr(source string) string {
	if t.HasValue {
		return t.Value
	}
	return t.Text(source)
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return t.EndOffset - t.StartOffset
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return t.StartOffset == t.EndOffset
}

// ValidateTokens checks that a token slice is valid:
// - Tokens are contiguous and non-overlapping.
// - Non-terminal tokens are non-empty.
// - Tokens cover the full content range [0, contentLen).
// A trailing zero-width EndOfFile token is permitted.
func ValidateTokens(tokens []Token, contentLen int) bool {
	if n := len(tokens); n > 0 && tokens[n-1].Kind == EndOfFile && tokens[n-1].IsEmpty() {
		if tokens[n-1].StartOffset != contentLen {
			return false
		}
		tokens = tokens[:n-1]
	}

	if len(tokens) == 0 {
		return contentLen == 0
	}

	// First token must start at 0.
	if tokens[0].StartOffset != 0 {
		return false
	}

	// Last token must end at contentLen.
	if tokens[len(tokens)-1].EndOffset != contentLen {
		return false
	}

	for i := range tokens {
		if tokens[i].IsEmpty() {
			return false
		}
		if i > 0 && tokens[i].StartOffset != tokens[i-1].EndOffset {
			return false
		}
	}

	return true
}
