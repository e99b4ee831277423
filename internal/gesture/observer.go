package gesture

// TapObserver is notified once per recognized tap, after the handler runs.
// It receives no gesture details; it exists to decouple analytics from
// recognition.
type TapObserver interface {
	TapRecognized()
}

// ObserverFunc adapts a plain function to TapObserver.
type ObserverFunc func()

// TapRecognized calls the function.
func (f ObserverFunc) TapRecognized() { f() }

// NoopObserver is a TapObserver that ignores every notification.
type NoopObserver struct{}

// TapRecognized does nothing.
func (NoopObserver) TapRecognized() {}
