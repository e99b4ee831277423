package gesture

import "sync/atomic"

// Suppressor coordinates mouse-event suppression across every recognizer
// sharing a physical input surface. Touch activity anywhere sets the flag;
// the trailing click anywhere clears it. The scope is deliberately wider
// than one element: platforms replay the synthetic mouse sequence for a
// touch against the same document the touch landed on, so the flag must be
// readable by whichever recognizer that replay reaches.
type Suppressor struct {
	active atomic.Bool
}

// NewSuppressor creates an isolated coordinator. Production recognizers
// normally share DefaultSuppressor; tests construct their own.
func NewSuppressor() *Suppressor {
	return &Suppressor{}
}

var defaultSuppressor = NewSuppressor()

// DefaultSuppressor returns the process-wide coordinator used by
// recognizers that are not given one explicitly.
func DefaultSuppressor() *Suppressor {
	return defaultSuppressor
}

// MarkTouch records observed touch activity. Mouse events arriving while
// the mark is set are synthetic echoes of that activity.
func (s *Suppressor) MarkTouch() {
	s.active.Store(true)
}

// Active returns true while mouse events are suppressed.
func (s *Suppressor) Active() bool {
	return s.active.Load()
}

// Reset clears the mark. Called for every observed click, regardless of
// which recognizer sees it.
func (s *Suppressor) Reset() {
	s.active.Store(false)
}
