// Package app runs the interactive tapstorm demo. It hosts a small element
// tree with one collapsible panel, feeds terminal mouse input through the
// tap recognizer, and records recognized taps.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tapstorm/internal/analytics"
	"github.com/dshills/tapstorm/internal/config"
	"github.com/dshills/tapstorm/internal/element"
	"github.com/dshills/tapstorm/internal/gesture"
	"github.com/dshills/tapstorm/internal/pointer"
	"github.com/dshills/tapstorm/internal/source"
)

// panelLabel names the recorded tap stream.
const panelLabel = "panel-toggle"

// App owns the demo's screen, element tree, and analytics.
type App struct {
	screen   tcell.Screen
	cfg      config.Config
	logger   *log.Logger
	root     *element.Element
	panel    *Panel
	sup      *gesture.Suppressor
	recorder *analytics.Recorder
	adapter  source.MouseAdapter
	status   string
}

// New wires the demo around an uninitialized screen. Run initializes and
// releases it.
func New(screen tcell.Screen, cfg config.Config, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &App{
		screen:   screen,
		cfg:      cfg,
		logger:   logger,
		root:     element.New("app"),
		sup:      gesture.NewSuppressor(),
		recorder: analytics.NewRecorder(cfg.Analytics.LogLimit),
	}

	a.panel = NewPanel(a.root, "panel",
		gesture.WithConfig(cfg.GestureConfig()),
		gesture.WithSuppressor(a.sup),
		gesture.WithObserver(analytics.Multi(
			a.recorder.Observer(panelLabel),
			gesture.ObserverFunc(func() {
				a.logger.Debug("tap recognized", "total", a.recorder.Total())
			}),
		)),
	)
	a.panel.OnToggle(func(open bool) {
		a.logger.Info("panel toggled", "open", open)
	})

	return a
}

// Run drives the event loop until the context ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("app: init screen: %w", err)
	}
	defer a.screen.Fini()

	a.screen.EnableMouse()
	a.screen.HideCursor()
	a.layout()
	a.draw()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go a.screen.ChannelEvents(events, quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.handleEvent(ev) {
				return nil
			}
			a.draw()
		}
	}
}

// handleEvent routes one terminal event. It returns true when the app
// should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.layout()
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		for _, pev := range a.adapter.Convert(ev) {
			a.dispatch(pev)
		}
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 't':
			a.injectTouchTap()
		}
	}
	return false
}

// injectTouchTap replays the event storm of a touch tap on the toggle
// button, suppression workout included.
func (a *App) injectTouchTap() {
	r := a.panel.Button().Rect()
	seq := source.NewSequence().TouchTap(r.X+r.W/2, r.Y+r.H/2)
	_ = seq.Stream(context.Background(), func(ev pointer.Event) error {
		a.dispatch(ev)
		return nil
	})
	a.status = "injected touch tap"
}

// dispatch hit-tests the event and dispatches it to the matching element.
func (a *App) dispatch(ev pointer.Event) {
	a.hit(ev.At()).Dispatch(ev)
}

// hit returns the deepest element under pos, falling back to the root.
func (a *App) hit(pos pointer.Position) *element.Element {
	if a.panel.Button().Contains(pos) {
		return a.panel.Button()
	}
	if a.panel.IsOpen() && a.panel.Body().Contains(pos) {
		return a.panel.Body()
	}
	return a.root
}

// layout recomputes element rectangles from the screen size.
func (a *App) layout() {
	w, h := a.screen.Size()
	a.root.SetRect(element.Rect{X: 0, Y: 0, W: w, H: h})
	a.panel.Button().SetRect(element.Rect{X: 2, Y: 2, W: 20, H: 3})

	bodyW := 44
	if bodyW > w-4 {
		bodyW = w - 4
	}
	a.panel.Body().SetRect(element.Rect{X: 2, Y: 6, W: bodyW, H: 7})
}

// Report returns the analytics snapshot as JSON.
func (a *App) Report() ([]byte, error) {
	return a.recorder.Snapshot()
}
