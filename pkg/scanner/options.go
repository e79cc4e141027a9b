package scanner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdscan/pkg/spanbuf"
)

// Options configures a Scanner.
type Options struct {
	// Delimiter joins multi-fragment values (fence info strings).
	// Zero means spanbuf.DefaultDelimiter.
	Delimiter rune

	// OnError receives every committed diagnostic. May be nil.
	OnError ErrorCallback

	// Logger receives debug events for mode transitions and warnings for
	// recovered callback panics. Nil disables logging.
	Logger *log.Logger
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Delimiter: spanbuf.DefaultDelimiter,
	}
}
