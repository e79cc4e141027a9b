package scanner

import "github.com/yaklabco/mdscan/pkg/token"

// snapshot is the restorable scanner state around a speculative scan.
type snapshot struct {
	pos        int
	tokenStart int
	tok        token.Kind
	flags      token.Flags
	value      string
	hasValue   bool
	listStart  int
	ctx        scanContext
	tokenCtx   scanContext
	queueMark  int
}

func (s *Scanner) save() snapshot {
	return snapshot{
		pos:        s.pos,
		tokenStart: s.tokenStart,
		tok:        s.tok,
		flags:      s.flags,
		value:      s.value,
		hasValue:   s.hasValue,
		listStart:  s.listStart,
		ctx:        s.ctx,
		tokenCtx:   s.tokenCtx,
		queueMark:  len(s.errs.queue),
	}
}

func (s *Scanner) restore(snap snapshot) {
	s.pos = snap.pos
	s.tokenStart = snap.tokenStart
	s.tok = snap.tok
	s.flags = snap.flags
	s.value = snap.value
	s.hasValue = snap.hasValue
	s.listStart = snap.listStart
	s.ctx = snap.ctx
	s.tokenCtx = snap.tokenCtx
	s.errs.queue = s.errs.queue[:snap.queueMark]
}

// LookAhead runs fn with diagnostics suppressed and then restores the
// scanner to its prior state whatever fn returns. Diagnostics raised by fn
// are discarded.
func (s *Scanner) LookAhead(fn func() bool) bool {
	return s.speculate(fn, false)
}

// TryScan runs fn with diagnostics suppressed. When fn returns true the new
// position is kept and queued diagnostics are committed; otherwise the
// scanner is restored and they are discarded.
func (s *Scanner) TryScan(fn func() bool) bool {
	return s.speculate(fn, true)
}

// speculate brackets fn in a suppression scope. Nested calls unwind in LIFO
// order; a committed inner scope hands its diagnostics to the enclosing one.
func (s *Scanner) speculate(fn func() bool, commit bool) (ok bool) {
	snap := s.save()
	s.errs.suppress++

	defer func() {
		s.errs.suppress--
		if ok && commit {
			s.flushQueued(snap.queueMark)
			return
		}
		s.restore(snap)
	}()

	return fn()
}
