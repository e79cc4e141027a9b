package scanner

import "github.com/yaklabco/mdscan/pkg/token"

// Collect scans text to the end and returns every token, including the
// trailing EndOfFile, together with the committed diagnostics.
func Collect(text string, opts Options) ([]token.Token, []Diagnostic) {
	s := New(opts)
	s.SetText(text)
	return s.All(), s.Diagnostics()
}

// All scans from the current position to the end of the window and returns
// the tokens, including the trailing EndOfFile.
func (s *Scanner) All() []token.Token {
	var tokens []token.Token
	for {
		kind := s.Scan()
		tokens = append(tokens, s.TokenRecord())
		if kind == token.EndOfFile {
			return tokens
		}
	}
}
