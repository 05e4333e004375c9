package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"scratchroi-backend/lib/ticket"
)

var scrapeState string

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeState, "state", "s", "", "only harvest one state, e.g. 'dc'")
	rootCmd.AddCommand(scrapeCmd)
}

func fmtROI(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url...]",
	Short: "Harvests game pages and prints the evaluated tickets.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		var tickets []ticket.Ticket
		switch {
		case len(args) > 0:
			for _, url := range args {
				t, err := svc.ScrapeSingle(cmd.Context(), url)
				if err != nil {
					fmt.Fprintln(os.Stderr, err.Error())
					continue
				}
				tickets = append(tickets, t)
			}
		case scrapeState != "":
			tickets, err = svc.ScrapeState(cmd.Context(), scrapeState)
			if err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}
		default:
			tickets = svc.ScrapeAll(cmd.Context())
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Title", "Price", "State", "Current ROI", "Score", "Top Prize", "Type"})

		for _, tk := range tickets {
			t.AppendRow(table.Row{
				tk.Title,
				"$" + tk.Price,
				tk.State,
				fmtROI(tk.CurrentROI),
				fmtROI(tk.Score),
				tk.TopGrandPrize,
				strings.Join(tk.Type, ", "),
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
