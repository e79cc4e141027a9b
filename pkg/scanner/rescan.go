package scanner

import "github.com/yaklabco/mdscan/pkg/token"

// reScan rewinds to the start of the current token, undoing any context the
// token changed, and re-scans it with fn when it starts with expect.
// Otherwise it performs a regular Scan.
func (s *Scanner) reScan(expect byte, fn func() token.Kind) token.Kind {
	s.ctx = s.tokenCtx
	s.pos = s.tokenStart
	if s.pos >= s.end || s.text[s.pos] != expect {
		return s.Scan()
	}
	s.beginToken()
	s.tok = fn()
	s.finishToken()
	return s.tok
}

// ReScanLessThanToken re-reads the current token as a bare '<' or "</".
func (s *Scanner) ReScanLessThanToken() token.Kind {
	return s.reScan('<', func() token.Kind {
		if s.byteAt(s.pos+1) == '/' {
			return s.scanClosingTagStart()
		}
		s.pos++
		return token.LessThan
	})
}

// ReScanGreaterThanToken re-reads the current token as a blockquote marker,
// absorbing one following space or tab.
func (s *Scanner) ReScanGreaterThanToken() token.Kind {
	return s.reScan('>', func() token.Kind {
		s.pos++
		if c := s.byteAt(s.pos); c == ' ' || c == '\t' {
			s.pos++
		}
		return token.GreaterThan
	})
}

// ReScanSlashToken re-reads the current token as "/>" or '/'.
func (s *Scanner) ReScanSlashToken() token.Kind {
	return s.reScan('/', func() token.Kind {
		if s.byteAt(s.pos+1) == '>' {
			s.pos += 2
			s.flags |= token.ContainsHTML
			return token.SlashGreaterThan
		}
		s.pos++
		return token.Slash
	})
}

// ReScanBacktickToken re-reads the current token as an inline code
// delimiter run, never a fence.
func (s *Scanner) ReScanBacktickToken() token.Kind {
	return s.reScan('`', func() token.Kind {
		return s.scanBacktick(false)
	})
}

// ReScanDollarToken re-reads the current token as a math delimiter.
func (s *Scanner) ReScanDollarToken() token.Kind {
	return s.reScan('$', func() token.Kind {
		return s.scanDollar(true)
	})
}

// ReScanPipeToken re-reads the current token as a table cell separator.
func (s *Scanner) ReScanPipeToken() token.Kind {
	return s.reScan('|', func() token.Kind {
		s.pos++
		if c := s.byteAt(s.pos); c >= 0 && c != '\n' && c != '\r' {
			s.flags |= token.CanOpen
		}
		if s.tokenStart > s.tokenCtx.lineStart {
			s.flags |= token.CanClose
		}
		return token.Pipe
	})
}

// ReScanHashToken re-reads the current token as a whole '#' run, as in an
// ATX closing sequence.
func (s *Scanner) ReScanHashToken() token.Kind {
	return s.reScan('#', func() token.Kind {
		n := s.runLength(s.pos, '#')
		s.pos += n
		s.flags = s.flags.WithRunLength(n)
		return token.Hash
	})
}
