package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"scratchroi-backend/lib/stateconfig"
	"scratchroi-backend/lib/telemetry"
	"scratchroi-backend/services/scrapeservice"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "scratchroi",
	Short: "scratchroi harvests scratch-off lottery data and ranks tickets by return on investment.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)

		err := telemetry.SetupFromEnv(context.Background(), "scratchroi")
		if os.IsNotExist(err) {
			slog.Warn("no telemetry.json5 found, traces and metrics are disabled")
		} else if err != nil {
			slog.Error("failed to setup telemetry", "err", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService() (*scrapeservice.Service, error) {
	states, err := stateconfig.Load()
	if err != nil {
		return nil, err
	}
	return scrapeservice.NewService(states)
}
