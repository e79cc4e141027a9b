package scanner

import (
	"fmt"
	"strconv"
)

// ErrorCode identifies the class of a scanner diagnostic.
type ErrorCode int

// Diagnostic codes. Only ErrUnexpectedEndOfFile is currently emitted;
// the rest are reserved.
const (
	ErrUnexpectedEndOfFile ErrorCode = iota + 1
	ErrInvalidCharacter
	ErrInvalidEscape
	ErrInvalidEntity
	ErrMalformedTag
)

// String returns the stable name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrUnexpectedEndOfFile:
		return "unexpected-end-of-file"
	case ErrInvalidCharacter:
		return "invalid-character"
	case ErrInvalidEscape:
		return "invalid-escape"
	case ErrInvalidEntity:
		return "invalid-entity"
	case ErrMalformedTag:
		return "malformed-tag"
	default:
		return "error-" + strconv.Itoa(int(c))
	}
}

// Diagnostic is one scanner error record. Start and End are byte offsets.
type Diagnostic struct {
	Start   int
	End     int
	Code    ErrorCode
	Message string
}

// Error implements error.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%d-%d: %s: %s", d.Start, d.End, d.Code, d.Message)
}

// ErrorCallback is invoked synchronously for each committed diagnostic.
type ErrorCallback func(start, end int, code ErrorCode, message string)

type diagnosticKey struct {
	start, end int
	code       ErrorCode
}

// errorState buffers diagnostics raised under speculation and de-duplicates
// committed ones for the lifetime of a source text.
type errorState struct {
	queue     []Diagnostic
	suppress  int
	seen      map[diagnosticKey]struct{}
	committed []Diagnostic
	last      Diagnostic
	hasLast   bool
}

func (e *errorState) reset() {
	e.queue = e.queue[:0]
	e.suppress = 0
	clear(e.seen)
	e.committed = nil
	e.last = Diagnostic{}
	e.hasLast = false
}

// emitError records a diagnostic covering the current token so far.
func (s *Scanner) emitError(code ErrorCode, message string) {
	d := Diagnostic{Start: s.tokenStart, End: s.pos, Code: code, Message: message}
	if s.errs.suppress > 0 {
		s.errs.queue = append(s.errs.queue, d)
		return
	}
	s.commitError(d)
}

func (s *Scanner) commitError(d Diagnostic) {
	key := diagnosticKey{start: d.Start, end: d.End, code: d.Code}
	if s.errs.seen == nil {
		s.errs.seen = make(map[diagnosticKey]struct{})
	}
	if _, dup := s.errs.seen[key]; dup {
		return
	}
	s.errs.seen[key] = struct{}{}
	s.errs.committed = append(s.errs.committed, d)
	s.errs.last = d
	s.errs.hasLast = true
	s.notify(d)
}

// notify forwards d to the host callback. A panicking callback is recovered
// so it cannot break tokenization.
func (s *Scanner) notify(d Diagnostic) {
	if s.onError == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && s.logger != nil {
			s.logger.Warn("error callback panicked", "code", d.Code, "start", d.Start, "panic", r)
		}
	}()
	s.onError(d.Start, d.End, d.Code, d.Message)
}

// flushQueued moves diagnostics queued since mark out of the speculation
// queue. Inside an enclosing speculation they stay queued for it.
func (s *Scanner) flushQueued(mark int) {
	if s.errs.suppress > 0 || mark >= len(s.errs.queue) {
		return
	}
	pending := s.errs.queue[mark:]
	s.errs.queue = s.errs.queue[:mark]
	for _, d := range pending {
		s.commitError(d)
	}
}

// Diagnostics returns the committed diagnostics in emission order.
func (s *Scanner) Diagnostics() []Diagnostic {
	return s.errs.committed
}

// LastError returns the most recently committed diagnostic.
func (s *Scanner) LastError() (Diagnostic, bool) {
	return s.errs.last, s.errs.hasLast
}

// SetErrorCallback replaces the diagnostic callback.
func (s *Scanner) SetErrorCallback(cb ErrorCallback) {
	s.onError = cb
}
