// Package source provides pointer event streams: scripted sequences,
// recorded JSONL traces, and live terminal input adapted from tcell.
package source

import (
	"context"

	"github.com/dshills/tapstorm/internal/pointer"
)

// Source streams pointer events to emit until the stream ends, the context
// is cancelled, or emit returns an error.
type Source interface {
	Stream(ctx context.Context, emit func(pointer.Event) error) error
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, emit func(pointer.Event) error) error

// Stream calls the function.
func (f SourceFunc) Stream(ctx context.Context, emit func(pointer.Event) error) error {
	return f(ctx, emit)
}
