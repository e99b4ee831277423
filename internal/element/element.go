// Package element provides the event-target surface gesture recognizers
// bind to: listener registration with capture/bubble dispatch, class and
// attribute primitives, and rectangle hit testing.
package element

import (
	"sync"

	"github.com/dshills/tapstorm/internal/pointer"
)

// Listener receives events dispatched to an element.
type Listener func(*Event)

// listenerEntry is one registered listener.
type listenerEntry struct {
	id      uint64
	capture bool
	fn      Listener
}

// Handle identifies a listener registration. Its zero value is inert.
type Handle struct {
	el   *Element
	kind pointer.Kind
	id   uint64
}

// Remove unregisters the listener. Removing twice, or removing while a
// dispatch is in flight, is safe.
func (h Handle) Remove() {
	if h.el == nil {
		return
	}
	h.el.removeListener(h.kind, h.id)
}

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Contains returns true if the position falls inside the rectangle.
func (r Rect) Contains(p pointer.Position) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Element is an event target with classes, attributes, and geometry.
type Element struct {
	mu        sync.Mutex
	id        string
	parent    *Element
	classes   map[string]struct{}
	attrs     map[string]string
	rect      Rect
	listeners map[pointer.Kind][]listenerEntry
	nextID    uint64
}

// New creates an element with the given identifier.
func New(id string) *Element {
	return &Element{
		id:        id,
		classes:   make(map[string]struct{}),
		attrs:     make(map[string]string),
		listeners: make(map[pointer.Kind][]listenerEntry),
	}
}

// ID returns the element's identifier.
func (e *Element) ID() string {
	return e.id
}

// AppendTo attaches the element to a parent. Events dispatched to the
// element bubble up through the parent chain.
func (e *Element) AppendTo(parent *Element) *Element {
	e.mu.Lock()
	e.parent = parent
	e.mu.Unlock()
	return e
}

// Parent returns the element's parent, or nil.
func (e *Element) Parent() *Element {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.parent
}

// On registers a listener for the given event kind. Capture listeners run
// during the capture phase (root toward target), others during bubbling.
func (e *Element) On(kind pointer.Kind, capture bool, fn Listener) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	entry := listenerEntry{id: e.nextID, capture: capture, fn: fn}
	e.listeners[kind] = append(e.listeners[kind], entry)
	return Handle{el: e, kind: kind, id: entry.id}
}

// removeListener drops a registration by id. Unknown ids are ignored.
func (e *Element) removeListener(kind pointer.Kind, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entries := e.listeners[kind]
	for i, entry := range entries {
		if entry.id == id {
			e.listeners[kind] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of listeners registered for a kind.
func (e *Element) ListenerCount(kind pointer.Kind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[kind])
}

// collect copies the listeners matching the phase so dispatch can invoke
// them without holding the lock.
func (e *Element) collect(kind pointer.Kind, capture bool) []Listener {
	e.mu.Lock()
	defer e.mu.Unlock()

	var fns []Listener
	for _, entry := range e.listeners[kind] {
		if entry.capture == capture {
			fns = append(fns, entry.fn)
		}
	}
	return fns
}

// Dispatch delivers a pointer event to the element: capture phase from the
// root down, then bubbling from the element back up. It returns the dispatch
// envelope so callers can inspect PreventDefault decisions.
func (e *Element) Dispatch(pev pointer.Event) *Event {
	ev := &Event{Event: pev, Target: e}

	// Build the root-to-target chain.
	var chain []*Element
	for el := e; el != nil; el = el.Parent() {
		chain = append([]*Element{el}, chain...)
	}

	for _, el := range chain {
		ev.CurrentTarget = el
		for _, fn := range el.collect(pev.Kind, true) {
			fn(ev)
		}
		if ev.propagationStopped {
			return ev
		}
	}

	for i := len(chain) - 1; i >= 0; i-- {
		el := chain[i]
		ev.CurrentTarget = el
		for _, fn := range el.collect(pev.Kind, false) {
			fn(ev)
		}
		if ev.propagationStopped {
			return ev
		}
	}

	return ev
}

// AddClass adds a class to the element.
func (e *Element) AddClass(name string) {
	e.mu.Lock()
	e.classes[name] = struct{}{}
	e.mu.Unlock()
}

// RemoveClass removes a class from the element.
func (e *Element) RemoveClass(name string) {
	e.mu.Lock()
	delete(e.classes, name)
	e.mu.Unlock()
}

// ToggleClass flips a class and returns true if it is now present.
func (e *Element) ToggleClass(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.classes[name]; ok {
		delete(e.classes, name)
		return false
	}
	e.classes[name] = struct{}{}
	return true
}

// HasClass returns true if the class is present.
func (e *Element) HasClass(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.classes[name]
	return ok
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	e.mu.Lock()
	e.attrs[name] = value
	e.mu.Unlock()
}

// Attr returns an attribute value and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.attrs[name]
	return v, ok
}

// RemoveAttr removes an attribute.
func (e *Element) RemoveAttr(name string) {
	e.mu.Lock()
	delete(e.attrs, name)
	e.mu.Unlock()
}

// SetDisabled marks the element disabled or enabled. Disabled elements are
// stored with a "disabled" attribute, matching form-control conventions.
func (e *Element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "disabled")
		return
	}
	e.RemoveAttr("disabled")
}

// Disabled returns true if the element is disabled.
func (e *Element) Disabled() bool {
	_, ok := e.Attr("disabled")
	return ok
}

// SetRect sets the element's screen rectangle.
func (e *Element) SetRect(r Rect) {
	e.mu.Lock()
	e.rect = r
	e.mu.Unlock()
}

// Rect returns the element's screen rectangle.
func (e *Element) Rect() Rect {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rect
}

// Contains returns true if the position falls inside the element.
func (e *Element) Contains(p pointer.Position) bool {
	return e.Rect().Contains(p)
}
