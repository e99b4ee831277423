package source

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tapstorm/internal/pointer"
)

func TestMouseAdapterClickSequence(t *testing.T) {
	var a MouseAdapter

	out := a.Convert(tcell.NewEventMouse(4, 2, tcell.Button1, 0))
	if len(out) != 1 {
		t.Fatalf("press report produced %d events, want 1", len(out))
	}
	if out[0].Kind != pointer.KindPress || out[0].Button != pointer.ButtonLeft {
		t.Errorf("got %s/%s, want press/left", out[0].Kind, out[0].Button)
	}
	if !out[0].At().Equal(pointer.Position{X: 4, Y: 2}) {
		t.Errorf("press at %v, want {4 2}", out[0].At())
	}
	if out[0].Time.IsZero() {
		t.Error("event time not stamped")
	}

	out = a.Convert(tcell.NewEventMouse(4, 2, 0, 0))
	if len(out) != 2 {
		t.Fatalf("release report produced %d events, want release+click", len(out))
	}
	if out[0].Kind != pointer.KindRelease || out[0].Button != pointer.ButtonLeft {
		t.Errorf("got %s/%s, want release/left", out[0].Kind, out[0].Button)
	}
	if out[1].Kind != pointer.KindClick {
		t.Errorf("got %s, want synthesized click", out[1].Kind)
	}
	if !out[1].At().Equal(pointer.Position{X: 4, Y: 2}) {
		t.Errorf("click at %v, want {4 2}", out[1].At())
	}
}

func TestMouseAdapterMoves(t *testing.T) {
	var a MouseAdapter

	out := a.Convert(tcell.NewEventMouse(1, 1, 0, 0))
	if len(out) != 1 || out[0].Kind != pointer.KindMove || out[0].Button != pointer.ButtonNone {
		t.Fatalf("bare motion = %+v, want one buttonless move", out)
	}

	a.Convert(tcell.NewEventMouse(1, 1, tcell.Button1, 0))

	out = a.Convert(tcell.NewEventMouse(6, 3, tcell.Button1, 0))
	if len(out) != 1 || out[0].Kind != pointer.KindMove {
		t.Fatalf("held motion = %+v, want one move", out)
	}
	if out[0].Button != pointer.ButtonLeft {
		t.Errorf("held move button = %s, want left", out[0].Button)
	}
	if !out[0].At().Equal(pointer.Position{X: 6, Y: 3}) {
		t.Errorf("held move at %v, want {6 3}", out[0].At())
	}
}

func TestMouseAdapterSecondaryButtonNoClick(t *testing.T) {
	var a MouseAdapter

	out := a.Convert(tcell.NewEventMouse(5, 5, tcell.Button3, 0))
	if len(out) != 1 || out[0].Kind != pointer.KindPress || out[0].Button != pointer.ButtonRight {
		t.Fatalf("got %+v, want right press", out)
	}

	out = a.Convert(tcell.NewEventMouse(5, 5, 0, 0))
	if len(out) != 1 {
		t.Fatalf("right release produced %d events, want 1 (no click)", len(out))
	}
	if out[0].Kind != pointer.KindRelease || out[0].Button != pointer.ButtonRight {
		t.Errorf("got %s/%s, want release/right", out[0].Kind, out[0].Button)
	}
}

func TestMouseAdapterChord(t *testing.T) {
	var a MouseAdapter

	a.Convert(tcell.NewEventMouse(0, 0, tcell.Button1, 0))

	out := a.Convert(tcell.NewEventMouse(0, 0, tcell.Button1|tcell.Button3, 0))
	if len(out) != 1 || out[0].Kind != pointer.KindPress || out[0].Button != pointer.ButtonRight {
		t.Fatalf("chord press = %+v, want right press only", out)
	}

	out = a.Convert(tcell.NewEventMouse(0, 0, tcell.Button1, 0))
	if len(out) != 1 || out[0].Kind != pointer.KindRelease || out[0].Button != pointer.ButtonRight {
		t.Fatalf("chord release = %+v, want right release only", out)
	}

	out = a.Convert(tcell.NewEventMouse(0, 0, 0, 0))
	if len(out) != 2 || out[0].Kind != pointer.KindRelease || out[1].Kind != pointer.KindClick {
		t.Fatalf("final release = %+v, want left release+click", out)
	}
}

func TestMouseAdapterWheelReportsAsMove(t *testing.T) {
	var a MouseAdapter

	out := a.Convert(tcell.NewEventMouse(2, 2, tcell.WheelUp, 0))
	if len(out) != 1 || out[0].Kind != pointer.KindMove || out[0].Button != pointer.ButtonNone {
		t.Fatalf("wheel report = %+v, want one buttonless move", out)
	}

	out = a.Convert(tcell.NewEventMouse(2, 2, tcell.Button1, 0))
	if len(out) != 1 || out[0].Kind != pointer.KindPress {
		t.Fatalf("press after wheel = %+v, want press (wheel bits must not stick)", out)
	}
}
