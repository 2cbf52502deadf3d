package watch

import "time"

// Timing defaults for file watching.
const (
	MinDebounce     = 10 * time.Millisecond  // Floor for change coalescence
	DefaultDebounce = 500 * time.Millisecond // File change coalescence period
	DefaultBuffer   = 10                     // Events buffered per subscriber
)
