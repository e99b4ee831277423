package cli

import (
	"fmt"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/tapstorm/internal/analytics"
	"github.com/dshills/tapstorm/internal/config"
	"github.com/dshills/tapstorm/internal/element"
	"github.com/dshills/tapstorm/internal/gesture"
	"github.com/dshills/tapstorm/internal/pointer"
	"github.com/dshills/tapstorm/internal/script"
	"github.com/dshills/tapstorm/internal/source"
)

// replayOpts holds the command-line flags for the replay command.
type replayOpts struct {
	script   string // Lua script providing the tap handler
	handler  string // handler function name inside the script
	label    string // label recorded for every tap
	realtime bool   // honor the recorded timing offsets
}

func newReplayCmd(ro *rootOpts) *cobra.Command {
	opts := replayOpts{handler: "on_tap", label: "replay"}

	cmd := &cobra.Command{
		Use:   "replay <trace.jsonl>",
		Short: "Replay a recorded pointer trace through the tap recognizer",
		Long: `Replay streams a JSONL pointer trace through an element with a tap
recognizer bound to it and prints the analytics report. With --script the
taps invoke a Lua handler instead of the built-in logging one.

Trace lines look like:

  {"kind":"press","source":"touch","touches":[[10,10]],"at":0}
  {"kind":"release","source":"touch","touches":[[10,10]],"at":120}
  {"kind":"click","x":10,"y":10,"at":180}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := loadConfig(ro, logger)
			if err != nil {
				return err
			}
			return runReplay(cmd, cfg, logger, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.script, "script", "", "Lua script providing the tap handler")
	cmd.Flags().StringVar(&opts.handler, "handler", opts.handler, "handler function name in the script")
	cmd.Flags().StringVar(&opts.label, "label", opts.label, "label recorded for every tap")
	cmd.Flags().BoolVar(&opts.realtime, "realtime", false, "honor the recorded timing offsets")

	return cmd
}

func runReplay(cmd *cobra.Command, cfg config.Config, logger *charmlog.Logger, path string, opts replayOpts) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	trace, err := source.ParseTrace(f)
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	if opts.realtime {
		trace.Pace(time.Sleep)
	}

	var handler gesture.Handler = func(ev *element.Event) {
		pos := ev.At()
		logger.Debug("tap", "x", pos.X, "y", pos.Y, "source", ev.Source.String())
	}
	if opts.script != "" {
		scope, err := script.LoadScope(opts.script)
		if err != nil {
			return err
		}
		defer scope.Close()
		scope.OnError(func(err error) {
			logger.Error("script handler failed", "err", err)
		})
		if handler, err = scope.Handler(opts.handler); err != nil {
			return err
		}
	}

	recorder := analytics.NewRecorder(cfg.Analytics.LogLimit)
	target := element.New("replay-target")
	rec := gesture.New(target, handler,
		gesture.WithConfig(cfg.GestureConfig()),
		gesture.WithSuppressor(gesture.NewSuppressor()),
		gesture.WithObserver(recorder.Observer(opts.label)),
	)
	defer rec.Destroy()

	err = trace.Stream(cmd.Context(), func(ev pointer.Event) error {
		target.Dispatch(ev)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("replay finished",
		"events", len(trace.Entries()), "taps", recorder.Total())

	report, err := recorder.Snapshot()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(report))
	return nil
}
