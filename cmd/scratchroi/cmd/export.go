package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOutput string
var exportState string

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "tickets_by_price.xlsx", "output xlsx path")
	exportCmd.Flags().StringVarP(&exportState, "state", "s", "", "only export one state, e.g. 'dc'")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Harvests game pages and writes the ticket workbook.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		f, err := os.Create(exportOutput)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		defer f.Close()

		if exportState != "" {
			err = svc.ExportState(cmd.Context(), exportState, f)
		} else {
			err = svc.ExportAll(cmd.Context(), f)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		fmt.Println("wrote", exportOutput)
	},
}
