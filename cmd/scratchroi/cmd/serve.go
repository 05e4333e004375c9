package cmd

import (
	"github.com/spf13/cobra"

	"scratchroi-backend/lib/telemetry"
	"scratchroi-backend/lib/util/serviceutil"
	"scratchroi-backend/services/scrapeservice"
)

var port int

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 8102, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the REST api.",
	Run: func(cmd *cobra.Command, args []string) {
		telemetry.InstrumentPerfStats(serviceutil.SignalContext())

		svc, err := newService()
		if err != nil {
			serviceutil.Fatal("failed to initialize service", err)
		}
		serviceutil.StartHttpServer(port, scrapeservice.NewRouter(svc))
	},
}
