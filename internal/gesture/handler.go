package gesture

import (
	"fmt"
	"reflect"

	"github.com/dshills/tapstorm/internal/element"
)

// Handler consumes the release event of a recognized tap.
type Handler func(*element.Event)

// callback is the polymorphic tap callback: a direct function, or a method
// name resolved against the recognizer's scope at invocation time.
type callback struct {
	fn     Handler
	method string
}

// invoke runs the callback. A zero callback is dropped silently; a named
// callback that fails to resolve panics, surfacing the misconfiguration at
// the call site instead of guessing a fallback.
func (c callback) invoke(scope any, ev *element.Event) {
	switch {
	case c.fn != nil:
		c.fn(ev)
	case c.method != "":
		resolve(c.method, scope)(ev)
	}
}

// Named adapts the legacy (method name, scope) handler form. The returned
// Handler resolves method against scope on every invocation, so scope
// mutations between taps are observed.
func Named(method string, scope any) Handler {
	return func(ev *element.Event) {
		resolve(method, scope)(ev)
	}
}

// resolve looks a handler up on a scope: map entries first, then methods
// found by reflection. Supported shapes are func(*element.Event) and
// func(). Anything else is a programmer error and panics.
func resolve(method string, scope any) Handler {
	if scope == nil {
		panic(fmt.Sprintf("gesture: no scope to resolve handler %q against", method))
	}

	switch s := scope.(type) {
	case map[string]Handler:
		if fn, ok := s[method]; ok {
			return fn
		}
	case map[string]func(*element.Event):
		if fn, ok := s[method]; ok {
			return fn
		}
	}

	m := reflect.ValueOf(scope).MethodByName(method)
	if !m.IsValid() {
		panic(fmt.Sprintf("gesture: scope %T does not provide handler %q", scope, method))
	}

	switch fn := m.Interface().(type) {
	case func(*element.Event):
		return fn
	case func():
		return func(*element.Event) { fn() }
	}
	panic(fmt.Sprintf("gesture: handler %q on %T has an unsupported signature", method, scope))
}
