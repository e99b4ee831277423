package gesture

import "testing"

func TestSuppressorMarkAndReset(t *testing.T) {
	s := NewSuppressor()

	if s.Active() {
		t.Error("new suppressor reports active")
	}

	s.MarkTouch()
	if !s.Active() {
		t.Error("Active() = false after MarkTouch")
	}

	s.MarkTouch() // marking twice keeps the flag set
	if !s.Active() {
		t.Error("Active() = false after second MarkTouch")
	}

	s.Reset()
	if s.Active() {
		t.Error("Active() = true after Reset")
	}

	s.Reset() // resetting an inactive suppressor is a no-op
	if s.Active() {
		t.Error("Active() = true after double Reset")
	}
}

func TestDefaultSuppressorShared(t *testing.T) {
	a := DefaultSuppressor()
	b := DefaultSuppressor()

	if a != b {
		t.Error("DefaultSuppressor returned distinct instances")
	}

	a.MarkTouch()
	if !b.Active() {
		t.Error("mark through one reference not visible through the other")
	}
	a.Reset()
}
