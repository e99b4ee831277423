package app

import (
	"github.com/dshills/tapstorm/internal/element"
	"github.com/dshills/tapstorm/internal/gesture"
)

// Panel is a collapsible widget opened and closed by tapping its toggle
// button. The body element carries the "open" class while the panel is
// open.
type Panel struct {
	root   *element.Element
	button *element.Element
	body   *element.Element
	rec    *gesture.Recognizer
	notify func(open bool)
}

// NewPanel builds the panel elements under parent and binds a tap
// recognizer to the toggle button. Options are passed through to the
// recognizer.
func NewPanel(parent *element.Element, id string, opts ...gesture.Option) *Panel {
	p := &Panel{
		root:   element.New(id).AppendTo(parent),
		button: element.New(id + "-toggle"),
		body:   element.New(id + "-body"),
	}
	p.button.AppendTo(p.root)
	p.body.AppendTo(p.root)
	p.rec = gesture.New(p.button, p.onTap, opts...)
	return p
}

func (p *Panel) onTap(*element.Event) {
	open := p.body.ToggleClass("open")
	if p.notify != nil {
		p.notify(open)
	}
}

// OnToggle installs a callback invoked after every toggle with the new
// state.
func (p *Panel) OnToggle(fn func(open bool)) {
	p.notify = fn
}

// Toggle flips the panel without a tap and returns the new state.
func (p *Panel) Toggle() bool {
	open := p.body.ToggleClass("open")
	if p.notify != nil {
		p.notify(open)
	}
	return open
}

// IsOpen reports whether the panel is open.
func (p *Panel) IsOpen() bool {
	return p.body.HasClass("open")
}

// Pressed reports whether a press on the toggle button is outstanding.
func (p *Panel) Pressed() bool {
	return p.rec.Pressed()
}

// SetEnabled enables or disables the toggle button.
func (p *Panel) SetEnabled(enabled bool) {
	p.rec.SetEnabled(enabled)
}

// Button returns the toggle button element for hit testing and dispatch.
func (p *Panel) Button() *element.Element {
	return p.button
}

// Body returns the panel body element.
func (p *Panel) Body() *element.Element {
	return p.body
}

// Recognizer returns the tap recognizer bound to the toggle button.
func (p *Panel) Recognizer() *gesture.Recognizer {
	return p.rec
}

// Destroy unbinds the recognizer. The elements stay in the tree.
func (p *Panel) Destroy() {
	p.rec.Destroy()
}
