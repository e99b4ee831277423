package source

import (
	"context"
	"time"

	"github.com/dshills/tapstorm/internal/pointer"
)

// Sequence builds deterministic pointer streams for demos and tests. Each
// appended event advances the timeline by one frame.
type Sequence struct {
	entries []Entry
	at      time.Duration
	step    time.Duration
}

// NewSequence creates an empty sequence with a 16ms frame step.
func NewSequence() *Sequence {
	return &Sequence{step: 16 * time.Millisecond}
}

func (s *Sequence) push(ev pointer.Event) *Sequence {
	s.entries = append(s.entries, Entry{Ev: ev, At: s.at})
	s.at += s.step
	return s
}

// Tap appends a mouse press/release pair and the trailing click.
func (s *Sequence) Tap(x, y int) *Sequence {
	s.push(pointer.MouseEvent(pointer.KindPress, pointer.ButtonLeft, x, y))
	s.push(pointer.MouseEvent(pointer.KindRelease, pointer.ButtonLeft, x, y))
	return s.push(pointer.ClickEvent(x, y))
}

// TouchTap appends the full storm a touch tap produces on real platforms:
// the touch pair, the synthetic mouse replay, and the trailing click.
func (s *Sequence) TouchTap(x, y int) *Sequence {
	touch := pointer.Touch{ID: 0, Pos: pointer.Position{X: x, Y: y}}
	s.push(pointer.TouchEvent(pointer.KindPress, touch))
	s.push(pointer.TouchEvent(pointer.KindRelease, touch))
	s.push(pointer.MouseEvent(pointer.KindPress, pointer.ButtonLeft, x, y))
	s.push(pointer.MouseEvent(pointer.KindRelease, pointer.ButtonLeft, x, y))
	return s.push(pointer.ClickEvent(x, y))
}

// Drag appends a press, steps interpolated moves, the release, and the
// trailing click browsers fire even after a drag.
func (s *Sequence) Drag(fromX, fromY, toX, toY, steps int) *Sequence {
	if steps < 1 {
		steps = 1
	}
	s.push(pointer.MouseEvent(pointer.KindPress, pointer.ButtonLeft, fromX, fromY))
	for i := 1; i <= steps; i++ {
		x := fromX + (toX-fromX)*i/steps
		y := fromY + (toY-fromY)*i/steps
		s.push(pointer.MouseEvent(pointer.KindMove, pointer.ButtonLeft, x, y))
	}
	s.push(pointer.MouseEvent(pointer.KindRelease, pointer.ButtonLeft, toX, toY))
	return s.push(pointer.ClickEvent(toX, toY))
}

// MultiTouch appends a two-finger press and its release.
func (s *Sequence) MultiTouch(x0, y0, x1, y1 int) *Sequence {
	s.push(pointer.TouchEvent(pointer.KindPress,
		pointer.Touch{ID: 0, Pos: pointer.Position{X: x0, Y: y0}},
		pointer.Touch{ID: 1, Pos: pointer.Position{X: x1, Y: y1}}))
	return s.push(pointer.TouchEvent(pointer.KindRelease,
		pointer.Touch{ID: 0, Pos: pointer.Position{X: x0, Y: y0}}))
}

// CancelledTouch appends a touch press aborted by the platform.
func (s *Sequence) CancelledTouch(x, y int) *Sequence {
	s.push(pointer.TouchEvent(pointer.KindPress,
		pointer.Touch{ID: 0, Pos: pointer.Position{X: x, Y: y}}))
	return s.push(pointer.TouchEvent(pointer.KindCancel))
}

// Entries returns the accumulated trace entries.
func (s *Sequence) Entries() []Entry {
	return s.entries
}

// Trace returns the sequence as a replayable trace.
func (s *Sequence) Trace() *Trace {
	return NewTrace(s.entries...)
}

// Stream replays the sequence instantly.
func (s *Sequence) Stream(ctx context.Context, emit func(pointer.Event) error) error {
	return s.Trace().Stream(ctx, emit)
}
