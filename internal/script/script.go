// Package script binds tap handlers written in Lua.
//
// A Scope compiles one Lua chunk and hands out gesture handlers backed by
// its functions. Scripts either define global functions or return a table
// of them:
//
//	function on_tap(ev)
//	    print(ev.kind, ev.x, ev.y)
//	end
//
// The handler receives one table argument with the fields kind, source,
// button, x, y, target, and prevented.
//
// gopher-lua states are not goroutine-safe. Scope serializes all access
// with a mutex, so handlers built from the same scope may be invoked from
// any goroutine, one at a time.
package script

import (
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/tapstorm/internal/element"
	"github.com/dshills/tapstorm/internal/gesture"
)

// Errors for scope operations.
var (
	// ErrScopeClosed is returned when operating on a closed scope.
	ErrScopeClosed = errors.New("script: scope is closed")

	// ErrNoFunction is returned when a requested handler is missing.
	ErrNoFunction = errors.New("script: no such function")
)

// Scope wraps a Lua state holding the functions of one script.
type Scope struct {
	mu      sync.Mutex
	state   *lua.LState
	exports *lua.LTable
	closed  bool
	onErr   func(error)
}

// NewScope compiles and runs src, capturing the functions it defines. If
// the chunk returns a table, handlers are looked up there first, then in
// the globals.
func NewScope(src string) (*Scope, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLibraries(L)

	s := &Scope{state: L}

	fn, err := L.LoadString(src)
	if err != nil {
		L.Close()
		return nil, fmt.Errorf("script: compile: %w", err)
	}

	L.Push(fn)
	if err := s.protect(func() error { return L.PCall(0, lua.MultRet, nil) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("script: run: %w", err)
	}

	if L.GetTop() > 0 {
		if tbl, ok := L.Get(-1).(*lua.LTable); ok {
			s.exports = tbl
		}
		L.SetTop(0)
	}

	return s, nil
}

// LoadScope reads a script file and compiles it into a scope.
func LoadScope(path string) (*Scope, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return NewScope(string(src))
}

// openLibraries opens the side-effect-free parts of the Lua standard
// library. io, os, debug, and package stay out of reach of scripts.
func openLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	// Each opener leaves its module table on the stack. Clear them so the
	// chunk's own return values are all that remains after it runs.
	L.SetTop(0)
}

// OnError installs a sink for errors raised while a handler runs. Handlers
// have no error return, so without a sink runtime failures are dropped.
func (s *Scope) OnError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onErr = fn
}

// Has reports whether the scope defines a function under name.
func (s *Scope) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	return s.lookup(name) != nil
}

// Handler returns a gesture handler backed by the named script function.
// Missing or non-function entries fail here, not at event time.
func (s *Scope) Handler(name string) (gesture.Handler, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrScopeClosed
	}

	fn := s.lookup(name)
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoFunction, name)
	}

	return func(ev *element.Event) {
		if err := s.call(fn, ev); err != nil {
			s.mu.Lock()
			sink := s.onErr
			s.mu.Unlock()
			if sink != nil {
				sink(err)
			}
		}
	}, nil
}

// lookup finds a function by name, preferring the exports table. Callers
// must hold the mutex.
func (s *Scope) lookup(name string) *lua.LFunction {
	if s.exports != nil {
		if fn, ok := s.exports.RawGetString(name).(*lua.LFunction); ok {
			return fn
		}
	}
	if fn, ok := s.state.GetGlobal(name).(*lua.LFunction); ok {
		return fn
	}
	return nil
}

// call invokes fn with the marshalled event.
func (s *Scope) call(fn *lua.LFunction, ev *element.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrScopeClosed
	}

	s.state.Push(fn)
	s.state.Push(eventTable(s.state, ev))
	return s.protect(func() error { return s.state.PCall(1, 0, nil) })
}

// protect runs fn with panic recovery, the usual guard around PCall.
func (s *Scope) protect(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script: lua panic: %v", r)
		}
	}()
	return fn()
}

// eventTable marshals an event into the table handed to Lua handlers.
func eventTable(L *lua.LState, ev *element.Event) *lua.LTable {
	tbl := L.NewTable()
	if ev == nil {
		return tbl
	}

	pos := ev.At()
	tbl.RawSetString("kind", lua.LString(ev.Kind.String()))
	tbl.RawSetString("source", lua.LString(ev.Source.String()))
	tbl.RawSetString("button", lua.LString(ev.Button.String()))
	tbl.RawSetString("x", lua.LNumber(pos.X))
	tbl.RawSetString("y", lua.LNumber(pos.Y))
	if ev.Target != nil {
		tbl.RawSetString("target", lua.LString(ev.Target.ID()))
	}
	tbl.RawSetString("prevented", lua.LBool(ev.DefaultPrevented()))
	return tbl
}

// Global returns a global from the script environment, LNil when closed.
// Intended for inspection after handlers have run.
func (s *Scope) Global(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.state.GetGlobal(name)
}

// Close releases the Lua state. Handlers built from the scope become
// no-ops. Close is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.state.Close()
	s.closed = true
}
