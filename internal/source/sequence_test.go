package source

import (
	"context"
	"testing"
	"time"

	"github.com/dshills/tapstorm/internal/element"
	"github.com/dshills/tapstorm/internal/gesture"
	"github.com/dshills/tapstorm/internal/pointer"
)

func kindsOf(entries []Entry) []pointer.Kind {
	kinds := make([]pointer.Kind, len(entries))
	for i, e := range entries {
		kinds[i] = e.Ev.Kind
	}
	return kinds
}

func TestSequenceTouchTap(t *testing.T) {
	entries := NewSequence().TouchTap(10, 10).Entries()

	want := []pointer.Kind{
		pointer.KindPress, pointer.KindRelease,
		pointer.KindPress, pointer.KindRelease,
		pointer.KindClick,
	}
	got := kindsOf(entries)
	if len(got) != len(want) {
		t.Fatalf("TouchTap emitted %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}

	if entries[0].Ev.Source != pointer.SourceTouch || entries[1].Ev.Source != pointer.SourceTouch {
		t.Error("touch pair must carry the touch source")
	}
	if entries[2].Ev.Source != pointer.SourceMouse || entries[4].Ev.Source != pointer.SourceMouse {
		t.Error("replayed pair and click must carry the mouse source")
	}

	for i, e := range entries {
		if e.At != time.Duration(i)*16*time.Millisecond {
			t.Errorf("event %d offset = %v, want %v", i, e.At, time.Duration(i)*16*time.Millisecond)
		}
	}
}

func TestSequenceDrag(t *testing.T) {
	entries := NewSequence().Drag(10, 10, 40, 10, 3).Entries()

	want := []pointer.Kind{
		pointer.KindPress,
		pointer.KindMove, pointer.KindMove, pointer.KindMove,
		pointer.KindRelease, pointer.KindClick,
	}
	got := kindsOf(entries)
	if len(got) != len(want) {
		t.Fatalf("Drag emitted %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}

	wantX := []int{20, 30, 40}
	for i, x := range wantX {
		pos := entries[1+i].Ev.At()
		if pos.X != x || pos.Y != 10 {
			t.Errorf("move %d at %v, want {%d 10}", i, pos, x)
		}
	}
}

func TestSequenceChaining(t *testing.T) {
	entries := NewSequence().Tap(1, 1).Tap(2, 2).Entries()
	if len(entries) != 6 {
		t.Fatalf("two taps emitted %d events, want 6", len(entries))
	}
	if entries[5].At != 5*16*time.Millisecond {
		t.Errorf("last offset = %v, want %v", entries[5].At, 5*16*time.Millisecond)
	}
}

// replay drives a sequence through an element with a tap recognizer bound to
// it and reports how many taps committed.
func replay(t *testing.T, s *Sequence) (taps int, sup *gesture.Suppressor) {
	t.Helper()

	el := element.New("button")
	sup = gesture.NewSuppressor()
	rec := gesture.New(el, func(*element.Event) { taps++ }, gesture.WithSuppressor(sup))
	defer rec.Destroy()

	err := s.Stream(context.Background(), func(ev pointer.Event) error {
		el.Dispatch(ev)
		return nil
	})
	if err != nil {
		t.Fatalf("Stream() error: %v", err)
	}
	return taps, sup
}

func TestReplayTouchTapRecognizesOnce(t *testing.T) {
	taps, sup := replay(t, NewSequence().TouchTap(10, 10))

	if taps != 1 {
		t.Errorf("taps = %d, want 1 (mouse replay must be absorbed)", taps)
	}
	if sup.Active() {
		t.Error("trailing click must reset suppression")
	}
}

func TestReplayDragStillCommits(t *testing.T) {
	taps, _ := replay(t, NewSequence().Drag(10, 10, 40, 10, 3))

	if taps != 1 {
		t.Errorf("taps = %d, want 1 (travel clears only the countdown)", taps)
	}
}

func TestReplayMultiTouchIgnored(t *testing.T) {
	taps, sup := replay(t, NewSequence().MultiTouch(10, 10, 50, 50))

	if taps != 0 {
		t.Errorf("taps = %d, want 0", taps)
	}
	if !sup.Active() {
		t.Error("single-touch release still marks suppression")
	}
}

func TestReplayCancelledTouchAborts(t *testing.T) {
	taps, _ := replay(t, NewSequence().CancelledTouch(10, 10))

	if taps != 0 {
		t.Errorf("taps = %d, want 0", taps)
	}
}

func TestReplayBackToBackTaps(t *testing.T) {
	taps, _ := replay(t, NewSequence().Tap(1, 1).TouchTap(2, 2).Tap(3, 3))

	if taps != 3 {
		t.Errorf("taps = %d, want 3", taps)
	}
}
