// Package gesture recognizes taps across mouse and touch input streams.
//
// Browsers and hybrid devices report a single physical tap redundantly: a
// touch sequence, a synthetic mouse sequence replayed against the same
// element, and a trailing click. The recognizer collapses that redundancy
// into exactly one handler invocation per physical gesture while rejecting
// multi-finger touches and contextual-button releases.
//
// # Architecture
//
// The package consists of several cooperating components:
//
//   - Suppressor: shared coordinator that mutes the synthetic mouse events
//     following touch activity until the trailing click clears it
//   - Recognizer: per-element state machine owning the press state, the
//     start position, and the duplicate-press countdown
//   - Handler / Named: the callback surface, either a direct function or a
//     method name resolved against a scope at invocation time
//   - TapObserver: optional analytics hook notified once per recognized tap
//
// # Usage
//
//	btn := element.New("save")
//	rec := gesture.New(btn, func(ev *element.Event) {
//	    fmt.Println("tap at", ev.At())
//	})
//	defer rec.Destroy()
//
//	// Feed platform events through the element.
//	btn.Dispatch(pointer.MouseEvent(pointer.KindPress, pointer.ButtonLeft, 4, 2))
//	btn.Dispatch(pointer.MouseEvent(pointer.KindRelease, pointer.ButtonLeft, 4, 2))
package gesture
