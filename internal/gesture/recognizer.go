package gesture

import (
	"sync"

	"github.com/dshills/tapstorm/internal/element"
	"github.com/dshills/tapstorm/internal/pointer"
)

// Target is the element surface a recognizer binds to. *element.Element
// satisfies it; anything with listeners and a disabled state will do.
type Target interface {
	On(kind pointer.Kind, capture bool, fn element.Listener) element.Handle
	Disabled() bool
	SetDisabled(disabled bool)
}

// Recognizer turns the redundant press/move/release/cancel/click stream on
// one target into at most one handler invocation per physical tap.
//
// The gesture state is two variables: pressed, set between a qualifying
// press and its resolution, and the duplicate-press countdown, open from a
// qualifying press until expiry, slop travel, cancel, or release. A press
// arriving while the countdown is open is a duplicate report of the same
// physical gesture and is absorbed.
type Recognizer struct {
	mu sync.Mutex

	config     Config
	suppressor *Suppressor
	schedule   ScheduleFunc

	target  Target
	handles []element.Handle

	cb       callback
	scope    any
	observer TapObserver

	// Gesture state
	pressed     bool
	start       pointer.Position
	cancelTimer func()
	timerGen    uint64

	destroyed bool
}

// New creates a recognizer bound to target that invokes handler once per
// recognized tap. A nil target constructs a detached recognizer that stays
// inert until Bind.
func New(target Target, handler Handler, opts ...Option) *Recognizer {
	return newRecognizer(target, callback{fn: handler}, nil, opts)
}

// NewNamed creates a recognizer whose handler is the named method, resolved
// against scope at invocation time.
func NewNamed(target Target, method string, scope any, opts ...Option) *Recognizer {
	return newRecognizer(target, callback{method: method}, scope, opts)
}

func newRecognizer(target Target, cb callback, scope any, opts []Option) *Recognizer {
	r := &Recognizer{
		config:     DefaultConfig(),
		suppressor: DefaultSuppressor(),
		schedule:   standardSchedule,
		cb:         cb,
		scope:      scope,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Bind(target)
	return r
}

// Bind attaches a detached recognizer to a target, registering listeners
// for press, move, release, cancel, and click. Bind on an already-bound or
// destroyed recognizer is a no-op.
func (r *Recognizer) Bind(target Target) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed || target == nil || r.target != nil {
		return
	}
	r.target = target

	kinds := []pointer.Kind{
		pointer.KindPress,
		pointer.KindMove,
		pointer.KindRelease,
		pointer.KindCancel,
		pointer.KindClick,
	}
	for _, kind := range kinds {
		r.handles = append(r.handles, target.On(kind, r.config.UseCapture, r.handleEvent))
	}
}

// handleEvent is the single listener registered for every event kind. Side
// effects (handler, observer) run outside the lock so a handler may call
// back into the recognizer.
func (r *Recognizer) handleEvent(ev *element.Event) {
	r.mu.Lock()
	commit := r.transition(ev)
	r.mu.Unlock()

	if commit != nil {
		commit()
	}
}

// transition applies one event to the state machine and returns the
// side-effect closure for a recognized tap, or nil.
func (r *Recognizer) transition(ev *element.Event) func() {
	if r.destroyed || r.target == nil {
		return nil
	}
	// Disabled targets ignore every event before any other logic.
	if r.target.Disabled() {
		return nil
	}

	switch ev.Kind {
	case pointer.KindPress:
		r.pressStart(ev)
	case pointer.KindMove:
		r.move(ev)
	case pointer.KindRelease:
		return r.release(ev)
	case pointer.KindCancel:
		r.cancel()
	case pointer.KindClick:
		return r.click(ev)
	}
	return nil
}

// pressStart arms the gesture. Multi-touch starts are never taps. Touch
// presses mark the suppressor before anything else; mouse presses arriving
// while suppression holds are synthetic echoes and are dropped. A press
// inside an open countdown duplicates one already seen.
func (r *Recognizer) pressStart(ev *element.Event) {
	if ev.TouchCount() > 1 {
		return
	}

	if ev.Source == pointer.SourceTouch {
		r.suppressor.MarkTouch()
	} else if r.suppressor.Active() {
		return
	}

	if r.cancelTimer != nil {
		return
	}

	r.start = ev.At()
	r.pressed = true
	r.startTimer()
}

// move closes the duplicate-press window once travel leaves the slop
// radius. The press itself stays armed: only release, cancel, or click
// resolve it, so a drag past the slop followed by a release still commits.
func (r *Recognizer) move(ev *element.Event) {
	if r.cancelTimer == nil {
		return
	}

	slop := r.config.MaxTravel * r.config.MaxTravel
	if ev.At().DistanceSquared(r.start) > slop {
		r.stopTimer()
	}
}

// cancel aborts the gesture. No handler invocation from any state.
func (r *Recognizer) cancel() {
	r.pressed = false
	r.stopTimer()
}

// release commits the tap. Touch releases mark the suppressor before
// anything else; suppressed mouse releases are dropped. Secondary-button
// releases clear the press without committing.
func (r *Recognizer) release(ev *element.Event) func() {
	if ev.Source == pointer.SourceTouch {
		r.suppressor.MarkTouch()
	} else if r.suppressor.Active() {
		return nil
	}

	if !r.pressed {
		return nil
	}
	r.pressed = false
	r.stopTimer()

	if ev.Button.IsSecondary() {
		return nil
	}

	ev.PreventDefault()
	if r.config.StopPropagation {
		ev.StopPropagation()
	}
	return r.commit(ev)
}

// click resets the suppressor unconditionally, restoring mouse delivery for
// devices with inconsistent touch/click ordering. When the press is still
// armed and suppression was inactive as the click arrived, the click acts
// as the release for devices that deliver click alone.
func (r *Recognizer) click(ev *element.Event) func() {
	wasSuppressed := r.suppressor.Active()
	r.suppressor.Reset()

	if r.pressed && !wasSuppressed {
		r.pressed = false
		return r.commit(ev)
	}
	return nil
}

// commit captures the callback state under the lock and returns the closure
// that invokes the handler and notifies the observer.
func (r *Recognizer) commit(ev *element.Event) func() {
	cb := r.cb
	scope := r.scope
	obs := r.observer
	return func() {
		cb.invoke(scope, ev)
		if obs != nil {
			obs.TapRecognized()
		}
	}
}

// startTimer opens the duplicate-press window. Expiry clears only the
// handle: a slow but stationary press stays valid.
func (r *Recognizer) startTimer() {
	r.stopTimer()

	r.timerGen++
	gen := r.timerGen
	r.cancelTimer = r.schedule(r.config.TapTimeout, func() {
		r.timerExpired(gen)
	})
}

// stopTimer closes the window. Safe when none is open.
func (r *Recognizer) stopTimer() {
	if r.cancelTimer != nil {
		r.cancelTimer()
		r.cancelTimer = nil
	}
}

// timerExpired runs on the scheduler goroutine. An expiry racing a newer
// countdown is detected by the generation check and dropped.
func (r *Recognizer) timerExpired(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.timerGen {
		return
	}
	r.cancelTimer = nil
}

// Destroy unregisters all listeners and releases the target, handler,
// scope, and observer references. Events dispatched afterward are ignored.
// Call Destroy at most once; extra calls are no-ops.
func (r *Recognizer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.destroyed {
		return
	}
	r.destroyed = true

	for _, h := range r.handles {
		h.Remove()
	}
	r.handles = nil
	r.stopTimer()
	r.pressed = false
	r.target = nil
	r.cb = callback{}
	r.scope = nil
	r.observer = nil
}

// SetHandler atomically replaces the tap callback.
func (r *Recognizer) SetHandler(handler Handler) {
	r.mu.Lock()
	r.cb = callback{fn: handler}
	r.mu.Unlock()
}

// SetNamedHandler atomically replaces the tap callback with a method name.
// A nil scope retains the previous scope.
func (r *Recognizer) SetNamedHandler(method string, scope any) {
	r.mu.Lock()
	r.cb = callback{method: method}
	if scope != nil {
		r.scope = scope
	}
	r.mu.Unlock()
}

// SetEnabled enables or disables the bound target. Disabled targets ignore
// every pointer event.
func (r *Recognizer) SetEnabled(enabled bool) {
	r.mu.Lock()
	target := r.target
	r.mu.Unlock()

	if target != nil {
		target.SetDisabled(!enabled)
	}
}

// SetObserver attaches the analytics observer. A nil observer detaches.
func (r *Recognizer) SetObserver(obs TapObserver) {
	r.mu.Lock()
	r.observer = obs
	r.mu.Unlock()
}

// Element returns the bound target, or nil when detached or destroyed.
func (r *Recognizer) Element() Target {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

// Pressed returns true between a qualifying press and its resolution.
func (r *Recognizer) Pressed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pressed
}
