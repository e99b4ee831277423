package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dshills/tapstorm/internal/config"
)

var (
	version = "dev"     // semantic version (e.g., "v1.2.3")
	commit  = "unknown" // git commit SHA
	date    = "unknown" // build timestamp
)

// SetVersion sets the version information displayed by --version and the
// version command. Main calls this with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// rootOpts holds the persistent flags shared by all commands.
type rootOpts struct {
	verbose bool
	config  string
}

// Execute runs the tapstorm CLI.
func Execute(ctx context.Context) error {
	return newRootCmd(&rootOpts{}).ExecuteContext(ctx)
}

func newRootCmd(ro *rootOpts) *cobra.Command {
	root := &cobra.Command{
		Use:   "tapstorm",
		Short: "Tapstorm recognizes taps across touch and mouse input",
		Long: `Tapstorm is a cross-input tap recognizer. It absorbs the synthetic
mouse events platforms replay after touch taps, so every physical tap is
recognized exactly once. The demo command runs an interactive panel in the
terminal; replay runs recorded pointer traces through the recognizer and
prints the resulting analytics.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := charmlog.InfoLevel
			if ro.verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tapstorm %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&ro.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&ro.config, "config", "c", "", "path to a tapstorm.toml")

	root.AddCommand(newDemoCmd(ro))
	root.AddCommand(newReplayCmd(ro))
	root.AddCommand(newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tapstorm %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
		},
	}
}

// loadConfig loads the configuration named by --config and lowers the
// logger to the configured level unless --verbose already raised it.
func loadConfig(ro *rootOpts, logger *charmlog.Logger) (config.Config, error) {
	cfg, err := config.Load(ro.config)
	if err != nil {
		return config.Config{}, err
	}
	if !ro.verbose {
		if level, err := charmlog.ParseLevel(cfg.Log.Level); err == nil {
			logger.SetLevel(level)
		}
	}
	return cfg, nil
}
