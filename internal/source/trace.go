package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/tapstorm/internal/pointer"
)

// ErrBadTrace indicates a trace that could not be parsed.
var ErrBadTrace = errors.New("source: malformed trace")

var kindNames = map[string]pointer.Kind{
	"press":   pointer.KindPress,
	"move":    pointer.KindMove,
	"release": pointer.KindRelease,
	"cancel":  pointer.KindCancel,
	"click":   pointer.KindClick,
}

var buttonNames = map[string]pointer.Button{
	"none":   pointer.ButtonNone,
	"left":   pointer.ButtonLeft,
	"middle": pointer.ButtonMiddle,
	"right":  pointer.ButtonRight,
}

// Entry is one trace line: a pointer event and its offset from trace start.
type Entry struct {
	Ev pointer.Event
	At time.Duration
}

// Trace is a replayable pointer event stream. Replay is instant unless
// paced.
type Trace struct {
	entries []Entry
	sleep   func(time.Duration)
}

// NewTrace builds a trace from entries.
func NewTrace(entries ...Entry) *Trace {
	return &Trace{entries: entries}
}

// ParseTrace reads a JSON-Lines trace. Each line carries kind, an optional
// source/button, coordinates (direct x/y or a touches array of [x,y]
// pairs), and the at offset in milliseconds:
//
//	{"kind":"press","source":"touch","touches":[[10,10]],"at":0}
//	{"kind":"click","button":"left","x":10,"y":10,"at":180}
//
// Blank lines are skipped. Unknown kinds or buttons fail with ErrBadTrace
// and the offending line number.
func ParseTrace(r io.Reader) (*Trace, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := parseEntry(line, lineNo)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("source: reading trace: %w", err)
	}

	return NewTrace(entries...), nil
}

func parseEntry(line string, lineNo int) (Entry, error) {
	if !gjson.Valid(line) {
		return Entry{}, fmt.Errorf("%w: line %d: invalid JSON", ErrBadTrace, lineNo)
	}

	kindStr := gjson.Get(line, "kind").String()
	kind, ok := kindNames[kindStr]
	if !ok {
		return Entry{}, fmt.Errorf("%w: line %d: unknown kind %q", ErrBadTrace, lineNo, kindStr)
	}

	var ev pointer.Event
	touches := gjson.Get(line, "touches")
	if touches.Exists() || gjson.Get(line, "source").String() == "touch" {
		var pts []pointer.Touch
		bad := false
		touches.ForEach(func(_, v gjson.Result) bool {
			pair := v.Array()
			if len(pair) != 2 {
				bad = true
				return false
			}
			pts = append(pts, pointer.Touch{
				ID:  len(pts),
				Pos: pointer.Position{X: int(pair[0].Int()), Y: int(pair[1].Int())},
			})
			return true
		})
		if bad {
			return Entry{}, fmt.Errorf("%w: line %d: touches entries must be [x,y] pairs", ErrBadTrace, lineNo)
		}
		ev = pointer.TouchEvent(kind, pts...)
	} else {
		btn := pointer.ButtonLeft
		if b := gjson.Get(line, "button"); b.Exists() {
			parsed, ok := buttonNames[b.String()]
			if !ok {
				return Entry{}, fmt.Errorf("%w: line %d: unknown button %q", ErrBadTrace, lineNo, b.String())
			}
			btn = parsed
		}
		x := int(gjson.Get(line, "x").Int())
		y := int(gjson.Get(line, "y").Int())
		ev = pointer.MouseEvent(kind, btn, x, y)
	}

	at := time.Duration(gjson.Get(line, "at").Int()) * time.Millisecond
	return Entry{Ev: ev, At: at}, nil
}

// WriteTrace renders entries in the format ParseTrace reads.
func WriteTrace(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		line, err := writeEntry(e)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("source: writing trace: %w", err)
		}
	}
	return nil
}

func writeEntry(e Entry) (string, error) {
	out := `{}`
	var err error

	if out, err = sjson.Set(out, "kind", e.Ev.Kind.String()); err != nil {
		return "", err
	}
	if e.Ev.Source == pointer.SourceTouch {
		if out, err = sjson.Set(out, "source", "touch"); err != nil {
			return "", err
		}
		for _, t := range e.Ev.Touches {
			raw := fmt.Sprintf("[%d,%d]", t.Pos.X, t.Pos.Y)
			if out, err = sjson.SetRaw(out, "touches.-1", raw); err != nil {
				return "", err
			}
		}
	} else {
		if out, err = sjson.Set(out, "button", e.Ev.Button.String()); err != nil {
			return "", err
		}
		if out, err = sjson.Set(out, "x", e.Ev.Pos.X); err != nil {
			return "", err
		}
		if out, err = sjson.Set(out, "y", e.Ev.Pos.Y); err != nil {
			return "", err
		}
	}
	if out, err = sjson.Set(out, "at", e.At.Milliseconds()); err != nil {
		return "", err
	}
	return out, nil
}

// Entries returns the trace's entries in replay order.
func (t *Trace) Entries() []Entry {
	return t.entries
}

// Pace makes Stream honor the recorded offsets using sleep. Pass nil to
// restore instant replay, the default.
func (t *Trace) Pace(sleep func(time.Duration)) {
	t.sleep = sleep
}

// Stream emits the trace's events in order.
func (t *Trace) Stream(ctx context.Context, emit func(pointer.Event) error) error {
	var prev time.Duration
	for _, e := range t.entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if t.sleep != nil && e.At > prev {
			t.sleep(e.At - prev)
		}
		prev = e.At
		if err := emit(e.Ev); err != nil {
			return err
		}
	}
	return nil
}
