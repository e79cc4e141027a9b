// Package spanbuf accumulates source fragments and injected characters and
// materializes them into a single string joined by a one-character delimiter.
//
// A Buffer is owned by one scanner for one source text. It is cleared, not
// reallocated, between uses; backing storage only grows.
package spanbuf

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// DefaultDelimiter joins fragments when no other delimiter is configured.
const DefaultDelimiter = ' '

// MaxFragments is the safety ceiling on logical fragments per materialization.
const MaxFragments = 1 << 20

// ErrCapacityExceeded is the panic value raised when MaxFragments is exceeded.
var ErrCapacityExceeded = errors.New("spanbuf: fragment capacity exceeded")

const noChar = -1

// fragment is either a source range or a reference into the char registry.
type fragment struct {
	start, end  int
	char        int // registry index, noChar for source ranges
	leftSticky  bool
	rightSticky bool
}

func (f fragment) isChar() bool { return f.char != noChar }

// Buffer collects fragments for one materialization at a time.
type Buffer struct {
	source    string
	delimiter string
	frags     []fragment
	count     int
	registry  []rune
}

// DebugState exposes internal counters for tests.
type DebugState struct {
	Fragments    int
	Capacity     int
	RegistrySize int
}

// New returns an empty buffer joining with delimiter.
// An invalid or zero delimiter falls back to DefaultDelimiter.
func New(delimiter rune) *Buffer {
	if delimiter == 0 || !utf8.ValidRune(delimiter) {
		delimiter = DefaultDelimiter
	}
	return &Buffer{delimiter: string(delimiter)}
}

// SetSource binds the buffer to a new source text and clears it.
func (b *Buffer) SetSource(source string) {
	b.source = source
	b.registry = b.registry[:0]
	b.Clear()
}

// Delimiter returns the join delimiter.
func (b *Buffer) Delimiter() string {
	return b.delimiter
}

// Len returns the number of logical fragments.
func (b *Buffer) Len() int {
	return b.count
}

// AddSpan appends the source range [start, end). Empty or out-of-range
// spans are ignored. A span separated from the previous source fragment by
// exactly the delimiter extends that fragment instead of adding a new one.
func (b *Buffer) AddSpan(start, end int) {
	if start < 0 || end > len(b.source) || start >= end {
		return
	}
	if b.count > 0 {
		prev := &b.frags[b.count-1]
		if !prev.isChar() && prev.end <= start && b.source[prev.end:start] == b.delimiter {
			prev.end = end
			return
		}
	}
	b.push(fragment{start: start, end: end, char: noChar, leftSticky: true, rightSticky: true})
}

// AddChar injects ch. A false leftSticky or rightSticky suppresses the
// delimiter on that side when materializing.
func (b *Buffer) AddChar(leftSticky bool, ch rune, rightSticky bool) {
	b.push(fragment{char: b.intern(ch), leftSticky: leftSticky, rightSticky: rightSticky})
}

// Clear resets the logical fragment count, retaining capacity.
func (b *Buffer) Clear() {
	b.count = 0
}

// Materialize joins the fragments into one string.
func (b *Buffer) Materialize() string {
	switch b.count {
	case 0:
		return ""
	case 1:
		f := b.frags[0]
		if !f.isChar() {
			return b.source[f.start:f.end]
		}
		return string(b.registry[f.char])
	}

	var sb strings.Builder
	for i := range b.count {
		f := b.frags[i]
		if i > 0 && b.delimited(b.frags[i-1], f) {
			sb.WriteString(b.delimiter)
		}
		if f.isChar() {
			sb.WriteRune(b.registry[f.char])
		} else {
			sb.WriteString(b.source[f.start:f.end])
		}
	}
	return sb.String()
}

// DebugState reports fragment count, backing capacity, and registry size.
func (b *Buffer) DebugState() DebugState {
	return DebugState{
		Fragments:    b.count,
		Capacity:     cap(b.frags),
		RegistrySize: len(b.registry),
	}
}

func (b *Buffer) delimited(left, right fragment) bool {
	if left.isChar() && !left.rightSticky {
		return false
	}
	if right.isChar() && !right.leftSticky {
		return false
	}
	return true
}

func (b *Buffer) push(f fragment) {
	if b.count >= MaxFragments {
		panic(ErrCapacityExceeded)
	}
	if b.count < len(b.frags) {
		b.frags[b.count] = f
	} else {
		b.frags = append(b.frags, f)
	}
	b.count++
}

func (b *Buffer) intern(ch rune) int {
	for i, r := range b.registry {
		if r == ch {
			return i
		}
	}
	b.registry = append(b.registry, ch)
	return len(b.registry) - 1
}
