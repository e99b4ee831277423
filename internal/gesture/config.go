package gesture

import "time"

// Config configures tap recognition behavior.
type Config struct {
	// TapTimeout is the length of the duplicate-press window opened by
	// each press-start. Expiry clears the window; it does not cancel the
	// gesture. Default: 300ms.
	TapTimeout time.Duration

	// MaxTravel is the slop radius in screen units. Movement beyond it
	// while the window is open closes the window early. The comparison is
	// done in squared form, so travel of exactly MaxTravel stays inside.
	// Default: 20.
	MaxTravel int

	// StopPropagation stops recognized release events from reaching
	// enclosing elements.
	StopPropagation bool

	// UseCapture registers the recognizer's listeners for the capture
	// phase instead of bubbling.
	UseCapture bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		TapTimeout:      300 * time.Millisecond,
		MaxTravel:       20,
		StopPropagation: true,
	}
}

// ScheduleFunc starts a countdown that runs fn after d on the scheduler's
// goroutine. The returned function cancels the countdown if it has not
// fired; cancelling twice is harmless.
type ScheduleFunc func(d time.Duration, fn func()) (cancel func())

// standardSchedule backs countdowns with runtime timers.
func standardSchedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Option customizes a recognizer at construction time.
type Option func(*Recognizer)

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(r *Recognizer) { r.config = cfg }
}

// WithSuppressor injects the cross-device coordinator. Recognizers sharing
// a physical input surface must share one; isolated tests inject their own.
func WithSuppressor(s *Suppressor) Option {
	return func(r *Recognizer) {
		if s != nil {
			r.suppressor = s
		}
	}
}

// WithScope sets the scope named handlers resolve against.
func WithScope(scope any) Option {
	return func(r *Recognizer) { r.scope = scope }
}

// WithObserver attaches the analytics observer.
func WithObserver(obs TapObserver) Option {
	return func(r *Recognizer) { r.observer = obs }
}

// WithSchedule injects the countdown primitive, letting tests drive expiry
// by hand instead of waiting on real timers.
func WithSchedule(schedule ScheduleFunc) Option {
	return func(r *Recognizer) {
		if schedule != nil {
			r.schedule = schedule
		}
	}
}
