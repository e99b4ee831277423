// Package pointer defines the device-neutral pointer event model shared by
// input sources and gesture recognizers.
package pointer

import "time"

// Kind identifies the type of pointer event.
type Kind uint8

const (
	// KindNone indicates no event.
	KindNone Kind = iota
	// KindPress indicates a button or touch press.
	KindPress
	// KindMove indicates pointer movement.
	KindMove
	// KindRelease indicates a button or touch release.
	KindRelease
	// KindCancel indicates the platform aborted the gesture.
	KindCancel
	// KindClick indicates a synthesized click following a press/release pair.
	KindClick
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPress:
		return "press"
	case KindMove:
		return "move"
	case KindRelease:
		return "release"
	case KindCancel:
		return "cancel"
	case KindClick:
		return "click"
	default:
		return "none"
	}
}

// Source identifies the device class that produced an event.
type Source uint8

const (
	// SourceMouse indicates a mouse or mouse-like pointing device.
	SourceMouse Source = iota
	// SourceTouch indicates a touch surface.
	SourceTouch
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceTouch:
		return "touch"
	default:
		return "mouse"
	}
}

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button.
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// IsSecondary returns true for buttons that open contextual menus rather
// than activate controls.
func (b Button) IsSecondary() bool {
	return b == ButtonRight
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// DistanceSquared returns the squared Euclidean distance between two
// positions. Slop checks compare squared values so no square root is taken.
func (p Position) DistanceSquared(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

// Touch is one active contact point on a touch surface.
type Touch struct {
	// ID identifies the contact across its press/move/release lifetime.
	ID int

	// Pos is the contact's screen coordinates.
	Pos Position
}

// Event represents a pointer input event from any device.
type Event struct {
	// Kind is the type of pointer event.
	Kind Kind

	// Source is the device class that produced the event.
	Source Source

	// Button is the mouse button involved, if any.
	Button Button

	// Pos holds direct screen coordinates when HasPos is true. Touch
	// events report coordinates through Touches instead.
	Pos Position

	// HasPos reports whether Pos carries direct coordinates.
	HasPos bool

	// Touches lists the active contacts for touch events.
	Touches []Touch

	// Time is when the event occurred.
	Time time.Time
}

// MouseEvent builds a mouse-sourced event with direct coordinates.
func MouseEvent(kind Kind, button Button, x, y int) Event {
	return Event{
		Kind:   kind,
		Source: SourceMouse,
		Button: button,
		Pos:    Position{X: x, Y: y},
		HasPos: true,
	}
}

// TouchEvent builds a touch-sourced event carrying the given contacts.
func TouchEvent(kind Kind, touches ...Touch) Event {
	return Event{
		Kind:    kind,
		Source:  SourceTouch,
		Touches: touches,
	}
}

// ClickEvent builds the synthesized click that follows a completed
// press/release pair on mouse-like devices.
func ClickEvent(x, y int) Event {
	return MouseEvent(KindClick, ButtonLeft, x, y)
}

// At returns the event's position: direct coordinates when present,
// otherwise the first active touch. Events carrying neither report the
// zero position.
func (e Event) At() Position {
	if e.HasPos {
		return e.Pos
	}
	if len(e.Touches) > 0 {
		return e.Touches[0].Pos
	}
	return Position{}
}

// TouchCount returns the number of active touch contacts.
func (e Event) TouchCount() int {
	return len(e.Touches)
}
