package app

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/gjson"

	"github.com/dshills/tapstorm/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)

	a := New(screen, config.Default(), log.New(io.Discard))
	a.layout()
	return a
}

// buttonCenter returns a point inside the toggle button.
func buttonCenter(a *App) (int, int) {
	r := a.panel.Button().Rect()
	return r.X + r.W/2, r.Y + r.H/2
}

func TestAppMouseTapTogglesPanel(t *testing.T) {
	a := newTestApp(t)
	x, y := buttonCenter(a)

	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, 0))
	a.handleEvent(tcell.NewEventMouse(x, y, 0, 0))

	if !a.panel.IsOpen() {
		t.Error("panel closed after mouse tap, want open")
	}
	if n := a.recorder.Total(); n != 1 {
		t.Errorf("recorded taps = %d, want 1", n)
	}

	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, 0))
	a.handleEvent(tcell.NewEventMouse(x, y, 0, 0))

	if a.panel.IsOpen() {
		t.Error("panel open after second tap, want closed")
	}
	if n := a.recorder.Total(); n != 2 {
		t.Errorf("recorded taps = %d, want 2", n)
	}
}

func TestAppMouseOffButtonIgnored(t *testing.T) {
	a := newTestApp(t)

	a.handleEvent(tcell.NewEventMouse(60, 20, tcell.Button1, 0))
	a.handleEvent(tcell.NewEventMouse(60, 20, 0, 0))

	if a.panel.IsOpen() {
		t.Error("panel toggled by a tap outside the button")
	}
	if n := a.recorder.Total(); n != 0 {
		t.Errorf("recorded taps = %d, want 0", n)
	}
}

func TestAppTouchTapKey(t *testing.T) {
	a := newTestApp(t)

	if quit := a.handleEvent(tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone)); quit {
		t.Fatal("t requested quit")
	}

	if !a.panel.IsOpen() {
		t.Error("panel closed after injected touch tap, want open")
	}
	if n := a.recorder.Total(); n != 1 {
		t.Errorf("recorded taps = %d, want 1 (replay absorbed)", n)
	}
	if a.sup.Active() {
		t.Error("suppression still active after the trailing click")
	}
}

func TestAppQuitKeys(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name string
		ev   *tcell.EventKey
		quit bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.handleEvent(tt.ev); got != tt.quit {
				t.Errorf("handleEvent() = %v, want %v", got, tt.quit)
			}
		})
	}
}

func TestAppResizeRelayouts(t *testing.T) {
	a := newTestApp(t)

	if quit := a.handleEvent(tcell.NewEventResize(100, 30)); quit {
		t.Error("resize requested quit")
	}
	if r := a.panel.Button().Rect(); r.W == 0 {
		t.Error("button rect empty after resize")
	}
}

func TestAppDraw(t *testing.T) {
	a := newTestApp(t)

	a.draw()
	a.panel.Toggle()
	a.handleEvent(tcell.NewEventMouse(3, 3, tcell.Button1, 0))
	a.draw()
}

func TestAppReport(t *testing.T) {
	a := newTestApp(t)
	x, y := buttonCenter(a)

	a.handleEvent(tcell.NewEventMouse(x, y, tcell.Button1, 0))
	a.handleEvent(tcell.NewEventMouse(x, y, 0, 0))

	report, err := a.Report()
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	if !gjson.ValidBytes(report) {
		t.Fatalf("report is not valid JSON: %s", report)
	}
	if n := gjson.GetBytes(report, "total").Int(); n != 1 {
		t.Errorf("report total = %d, want 1", n)
	}
	if n := gjson.GetBytes(report, "totals.panel-toggle").Int(); n != 1 {
		t.Errorf("report totals.panel-toggle = %d, want 1", n)
	}
}
