package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/tapstorm/internal/app"
)

func newDemoCmd(ro *rootOpts) *cobra.Command {
	var report bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the interactive tap demo in the terminal",
		Long: `Demo opens a terminal UI with a panel toggled by tapping its button.
Mouse clicks tap directly; pressing t injects the full touch tap storm so
the suppression of the replayed mouse events can be watched live.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := loadConfig(ro, logger)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("create screen: %w", err)
			}

			a := app.New(screen, cfg, logger)
			if err := a.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			if report {
				out, err := a.Report()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&report, "report", false, "print the analytics report on exit")
	return cmd
}
