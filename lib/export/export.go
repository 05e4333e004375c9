// Package export renders evaluated tickets into a multi-sheet xlsx
// workbook: one sheet per ticket price, an overall sheet, and the
// grand prize rankings.
package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"scratchroi-backend/lib/ranking"
	"scratchroi-backend/lib/ticket"
)

var priceSheetHeader = []any{
	"Ranking", "Title", "Price", "Game No", "Start Date",
	"Initial ROI", "Current ROI", "Score", "Type", "State",
	"URL", "Image", "Top Grand Prize", "Initial Grand Prize",
	"Current Grand Prize", "Grand Prize Left",
	"Prize Amount", "Total Prizes", "Prizes Paid", "Prizes Remaining", "Column 1",
}

var overallHeader = []any{
	"Ranking", "Title", "Price", "Game No", "Start Date", "End Date",
	"Initial ROI", "Current ROI", "Score", "Type", "State",
	"URL", "Image", "Top Grand Prize", "Initial Grand Prize",
	"Current Grand Prize", "Grand Prize Left",
}

var grandHeader = []any{
	"Grand Prize Rank", "Title", "Price", "Game No", "Start Date", "End Date",
	"Initial ROI", "Current ROI", "Score", "State",
	"URL", "Image", "Top Grand Prize", "Initial Grand Prize",
	"Current Grand Prize", "Grand Prize Left %", "Grand Prize Type",
}

func orEmpty[T any](v *T) any {
	if v == nil {
		return ""
	}
	return *v
}

func formatRanking(ranks map[string]int) string {
	if len(ranks) == 0 {
		return ""
	}
	var parts []string
	for _, key := range []string{ranking.TypeTop10, ranking.TypeNewly, ranking.TypeGrand} {
		if rank, ok := ranks[key]; ok {
			parts = append(parts, fmt.Sprintf("%s: %d", key, rank))
		}
	}
	return strings.Join(parts, ", ")
}

// formatAmount2 renders a dollar figure with thousands separators and
// two decimals, e.g. 1234.5 as "1,234.50".
func formatAmount2(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	whole, frac, _ := strings.Cut(s, ".")
	negative := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")
	var out strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	result := out.String() + "." + frac
	if negative {
		result = "-" + result
	}
	return result
}

func baseRow(t ticket.Ticket, withEndDate bool) []any {
	row := []any{
		formatRanking(t.Ranking),
		t.Title,
		"$" + t.Price,
		t.GameNo,
		t.StartDate,
	}
	if withEndDate {
		row = append(row, t.EndDate)
	}
	return append(row,
		orEmpty(t.InitialROI),
		orEmpty(t.CurrentROI),
		scoreCell(t.Score),
		strings.Join(t.Type, ", "),
		t.State,
		t.URL,
		t.Image,
		t.TopGrandPrize,
		orEmpty(t.InitialGrandPrize),
		orEmpty(t.CurrentGrandPrize),
		orEmpty(t.GrandPrizeLeft),
	)
}

func scoreCell(score *float64) string {
	if score == nil {
		return "$"
	}
	return fmt.Sprintf("$%v", *score)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		err = f.SetSheetRow(sheet, cell, &row)
		if err != nil {
			return err
		}
	}
	return nil
}

func priceSheetRows(tickets []ticket.Ticket) [][]any {
	rows := [][]any{priceSheetHeader}
	for _, t := range tickets {
		row := baseRow(t, false)
		row = append(row, "", "", "", "", "")
		rows = append(rows, row)

		if len(t.Prizes) == 0 {
			rows = append(rows, prizeRow("No prize data available", "", "", "", ""))
		}
		for _, prize := range t.Prizes {
			rows = append(rows, prizeRow(
				"$"+prize.Amount,
				prize.Total,
				prize.Paid,
				prize.Remaining,
				"$"+formatAmount2(prize.Column1),
			))
		}

		rows = append(rows, []any{""})
	}
	return rows
}

func prizeRow(amount, total, paid, remaining, column1 any) []any {
	row := make([]any, 16, 21)
	return append(row, amount, total, paid, remaining, column1)
}

// BuildWorkbook renders the tickets into a workbook. Per-price sheets
// appear in first-seen price order, followed by the combined sheet and
// the grand prize rankings.
func BuildWorkbook(tickets []ticket.Ticket) (*excelize.File, error) {
	grouped := map[string][]ticket.Ticket{}
	var priceOrder []string
	var priced []ticket.Ticket
	for _, t := range tickets {
		if t.Price == "" {
			continue
		}
		if _, seen := grouped[t.Price]; !seen {
			priceOrder = append(priceOrder, t.Price)
		}
		grouped[t.Price] = append(grouped[t.Price], t)
		priced = append(priced, t)
	}

	f := excelize.NewFile()
	first := true
	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName(f.GetSheetName(0), name)
		}
		_, err := f.NewSheet(name)
		return err
	}

	for _, price := range priceOrder {
		name := "$" + price
		if err := addSheet(name); err != nil {
			return nil, err
		}
		if err := writeRows(f, name, priceSheetRows(grouped[price])); err != nil {
			return nil, err
		}
	}

	if err := addSheet("Overall"); err != nil {
		return nil, err
	}
	overallRows := [][]any{overallHeader}
	for _, t := range priced {
		overallRows = append(overallRows, baseRow(t, true))
	}
	if err := writeRows(f, "Overall", overallRows); err != nil {
		return nil, err
	}

	if err := addSheet("Grand Prize Rankings"); err != nil {
		return nil, err
	}
	var grand []ticket.Ticket
	for _, t := range tickets {
		if _, ok := t.Ranking[ranking.TypeGrand]; ok {
			grand = append(grand, t)
		}
	}
	sort.SliceStable(grand, func(i, j int) bool {
		return grand[i].Ranking[ranking.TypeGrand] < grand[j].Ranking[ranking.TypeGrand]
	})
	grandRows := [][]any{grandHeader}
	for _, t := range grand {
		row := []any{
			t.Ranking[ranking.TypeGrand],
			t.Title,
			"$" + t.Price,
			t.GameNo,
			t.StartDate,
			t.EndDate,
			orEmpty(t.InitialROI),
			orEmpty(t.CurrentROI),
			scoreCell(t.Score),
			t.State,
			t.URL,
			t.Image,
			t.TopGrandPrize,
			orEmpty(t.InitialGrandPrize),
			orEmpty(t.CurrentGrandPrize),
			orEmpty(t.GrandPrizeLeft),
			"Grand Prize",
		}
		grandRows = append(grandRows, row)
	}
	if err := writeRows(f, "Grand Prize Rankings", grandRows); err != nil {
		return nil, err
	}

	return f, nil
}

// Write renders the tickets and streams the xlsx to w.
func Write(tickets []ticket.Ticket, w io.Writer) error {
	f, err := BuildWorkbook(tickets)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}
