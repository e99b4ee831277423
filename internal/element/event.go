package element

import "github.com/dshills/tapstorm/internal/pointer"

// Event is the dispatch envelope wrapping a pointer event. Listeners share
// one envelope per dispatch, so PreventDefault and StopPropagation are
// visible to later listeners and to the dispatching caller.
type Event struct {
	pointer.Event

	// Target is the element the event was dispatched to.
	Target *Element

	// CurrentTarget is the element whose listener is currently running.
	CurrentTarget *Element

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented returns true if PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further elements in the
// dispatch path. Listeners already running on the current element still fire.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// PropagationStopped returns true if StopPropagation was called.
func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}
