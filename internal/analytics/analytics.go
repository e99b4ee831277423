// Package analytics provides TapObserver implementations: an atomic counter
// for hot paths and a recorder that renders JSON tap reports.
package analytics

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/tapstorm/internal/gesture"
)

// Counter counts recognized taps. Safe for concurrent use.
type Counter struct {
	taps atomic.Uint64
}

// TapRecognized increments the counter.
func (c *Counter) TapRecognized() {
	c.taps.Add(1)
}

// Count returns the number of taps recognized so far.
func (c *Counter) Count() uint64 {
	return c.taps.Load()
}

// Reset clears the counter.
func (c *Counter) Reset() {
	c.taps.Store(0)
}

// tapRecord is one recognized tap.
type tapRecord struct {
	label string
	at    time.Time
}

// Recorder collects recognized taps per label and renders a JSON report.
// The tap log is bounded; once full, the oldest entries are dropped while
// per-label totals keep counting.
type Recorder struct {
	mu      sync.Mutex
	clock   func() time.Time
	limit   int
	records []tapRecord
	dropped uint64
	totals  map[string]uint64
	started time.Time
}

// NewRecorder creates a recorder keeping at most limit tap records.
// A limit of zero or less keeps every record.
func NewRecorder(limit int) *Recorder {
	return &Recorder{
		clock:   time.Now,
		limit:   limit,
		totals:  make(map[string]uint64),
		started: time.Now(),
	}
}

// Observer returns the TapObserver that records taps under label. One
// recorder serves any number of recognizers, each with its own label.
func (r *Recorder) Observer(label string) gesture.TapObserver {
	return gesture.ObserverFunc(func() {
		r.record(label)
	})
}

func (r *Recorder) record(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totals[label]++
	rec := tapRecord{label: label, at: r.clock()}
	if r.limit > 0 && len(r.records) >= r.limit {
		copy(r.records, r.records[1:])
		r.records[len(r.records)-1] = rec
		r.dropped++
		return
	}
	r.records = append(r.records, rec)
}

// TapTotal returns the number of taps recorded under label.
func (r *Recorder) TapTotal(label string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.totals[label]
}

// Total returns the number of taps recorded across all labels.
func (r *Recorder) Total() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n uint64
	for _, c := range r.totals {
		n += c
	}
	return n
}

// Snapshot renders the JSON report: per-label totals plus the bounded tap
// log in recording order.
func (r *Recorder) Snapshot() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := `{}`
	var err error
	if out, err = sjson.Set(out, "generated_at", r.clock().Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}
	if out, err = sjson.Set(out, "started_at", r.started.Format(time.RFC3339Nano)); err != nil {
		return nil, err
	}

	var total uint64
	for label, count := range r.totals {
		total += count
		if out, err = sjson.Set(out, "totals."+label, count); err != nil {
			return nil, err
		}
	}
	if out, err = sjson.Set(out, "total", total); err != nil {
		return nil, err
	}
	if out, err = sjson.Set(out, "dropped", r.dropped); err != nil {
		return nil, err
	}

	if out, err = sjson.SetRaw(out, "taps", `[]`); err != nil {
		return nil, err
	}
	for _, rec := range r.records {
		entry := `{}`
		if entry, err = sjson.Set(entry, "label", rec.label); err != nil {
			return nil, err
		}
		if entry, err = sjson.Set(entry, "at", rec.at.Format(time.RFC3339Nano)); err != nil {
			return nil, err
		}
		if out, err = sjson.SetRaw(out, "taps.-1", entry); err != nil {
			return nil, err
		}
	}

	return []byte(out), nil
}

// TapTotalFromReport reads one label's total back out of a rendered report.
func TapTotalFromReport(report []byte, label string) uint64 {
	return gjson.GetBytes(report, "totals."+label).Uint()
}

// Multi fans one tap notification out to several observers. Nil entries are
// skipped.
func Multi(obs ...gesture.TapObserver) gesture.TapObserver {
	return gesture.ObserverFunc(func() {
		for _, o := range obs {
			if o != nil {
				o.TapRecognized()
			}
		}
	})
}
