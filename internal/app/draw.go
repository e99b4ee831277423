package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// draw repaints the whole screen from the element tree state.
func (a *App) draw() {
	a.screen.Clear()

	styleText := tcell.StyleDefault
	styleHint := tcell.StyleDefault.Dim(true)

	a.drawText(2, 0, styleText.Bold(true), "tapstorm")
	a.drawText(11, 0, styleHint, "tap the button, [t] injects a touch tap, [q] quits")

	a.drawButton()
	if a.panel.IsOpen() {
		a.drawBody()
	}
	a.drawStatus()

	a.screen.Show()
}

func (a *App) drawButton() {
	r := a.panel.Button().Rect()
	style := tcell.StyleDefault
	if a.panel.Pressed() {
		style = style.Reverse(true)
	}

	a.drawBox(r.X, r.Y, r.W, r.H, style)
	label := "toggle panel"
	a.drawText(r.X+(r.W-len(label))/2, r.Y+1, style, label)
}

func (a *App) drawBody() {
	r := a.panel.Body().Rect()
	style := tcell.StyleDefault

	a.drawBox(r.X, r.Y, r.W, r.H, style)
	a.drawText(r.X+2, r.Y+1, style, "The panel is open.")
	a.drawText(r.X+2, r.Y+3, style, "A tap on the button closes it again. Touch taps")
	a.drawText(r.X+2, r.Y+4, style, "count once even with the mouse replay behind them.")
}

func (a *App) drawStatus() {
	_, h := a.screen.Size()
	suppression := "off"
	if a.sup.Active() {
		suppression = "on"
	}
	press := "idle"
	if a.panel.Pressed() {
		press = "armed"
	}

	line := fmt.Sprintf("taps %d | suppression %s | press %s", a.recorder.Total(), suppression, press)
	if a.status != "" {
		line += " | " + a.status
	}
	a.drawText(2, h-1, tcell.StyleDefault.Dim(true), line)
}

func (a *App) drawText(x, y int, style tcell.Style, text string) {
	w, h := a.screen.Size()
	if y < 0 || y >= h {
		return
	}
	col := x
	for _, r := range text {
		if col >= w {
			break
		}
		if col >= 0 {
			a.screen.SetContent(col, y, r, nil, style)
		}
		col++
	}
}

func (a *App) drawBox(x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		a.screen.SetContent(col, y, '─', nil, style)
		a.screen.SetContent(col, y+h-1, '─', nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		a.screen.SetContent(x, row, '│', nil, style)
		a.screen.SetContent(x+w-1, row, '│', nil, style)
	}
	a.screen.SetContent(x, y, '┌', nil, style)
	a.screen.SetContent(x+w-1, y, '┐', nil, style)
	a.screen.SetContent(x, y+h-1, '└', nil, style)
	a.screen.SetContent(x+w-1, y+h-1, '┘', nil, style)
}
