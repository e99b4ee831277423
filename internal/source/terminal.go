package source

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tapstorm/internal/pointer"
)

// MouseAdapter turns tcell's stateful mouse reports into edge-detected
// pointer events. tcell delivers the full button mask with every event, so
// presses and releases are the transitions between consecutive masks.
type MouseAdapter struct {
	held tcell.ButtonMask
}

var buttonBits = []struct {
	bit tcell.ButtonMask
	btn pointer.Button
}{
	{tcell.Button1, pointer.ButtonLeft},
	{tcell.Button2, pointer.ButtonMiddle},
	{tcell.Button3, pointer.ButtonRight},
}

// Convert returns the pointer events for one tcell mouse report. Releasing
// the primary button also synthesizes the trailing click terminals never
// deliver themselves. Reports with no button transition become moves.
func (a *MouseAdapter) Convert(ev *tcell.EventMouse) []pointer.Event {
	x, y := ev.Position()
	mask := ev.Buttons()

	var out []pointer.Event
	for _, bb := range buttonBits {
		wasHeld := a.held&bb.bit != 0
		isHeld := mask&bb.bit != 0
		switch {
		case isHeld && !wasHeld:
			out = append(out, a.stamp(pointer.MouseEvent(pointer.KindPress, bb.btn, x, y), ev))
		case !isHeld && wasHeld:
			out = append(out, a.stamp(pointer.MouseEvent(pointer.KindRelease, bb.btn, x, y), ev))
			if bb.btn == pointer.ButtonLeft {
				out = append(out, a.stamp(pointer.ClickEvent(x, y), ev))
			}
		}
	}

	if len(out) == 0 {
		out = append(out, a.stamp(pointer.MouseEvent(pointer.KindMove, heldButton(mask), x, y), ev))
	}

	a.held = mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	return out
}

func (a *MouseAdapter) stamp(pev pointer.Event, ev *tcell.EventMouse) pointer.Event {
	pev.Time = ev.When()
	return pev
}

// heldButton maps a button mask to the dominant held button.
func heldButton(mask tcell.ButtonMask) pointer.Button {
	switch {
	case mask&tcell.Button1 != 0:
		return pointer.ButtonLeft
	case mask&tcell.Button2 != 0:
		return pointer.ButtonMiddle
	case mask&tcell.Button3 != 0:
		return pointer.ButtonRight
	default:
		return pointer.ButtonNone
	}
}
