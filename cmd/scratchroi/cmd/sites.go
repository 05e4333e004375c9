package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sitesCmd)
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Prints the supported lottery sites and configured states.",
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"State", "Name", "Domains", "Games List"})

		for _, state := range svc.States().ActiveStates() {
			t.AppendRow(table.Row{
				state.Key,
				state.Name,
				strings.Join(state.Domains, ", "),
				state.URLs.GamesList,
			})
		}

		t.SetStyle(table.StyleRounded)
		t.Render()

		fmt.Println("extractors:", strings.Join(svc.SupportedSites(), ", "))
	},
}
