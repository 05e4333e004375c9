package export

import (
	"testing"

	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/ranking"
	"scratchroi-backend/lib/ticket"
)

func roi(v float64) *float64 { return &v }

func sampleTickets() []ticket.Ticket {
	return []ticket.Ticket{
		{
			Title:     "Lucky 7s #1487",
			Price:     "5",
			GameNo:    "1487",
			StartDate: "08/01/2026",
			EndDate:   "12/31/2026",
			State:     "DC Lottery",
			URL:       "https://dclottery.com/dc-scratchers/lucky-7s",
			CurrentROI: roi(1927.01),
			Type:       []string{ranking.TypeTop10, ranking.TypeGrand},
			Ranking:    map[string]int{ranking.TypeTop10: 1, ranking.TypeGrand: 2},
			TopGrandPrize: "$50,000",
			Prizes: []ticket.Prize{
				{Amount: "50,000", Total: 5, Paid: 0, Remaining: 5, Column1: 250000},
			},
		},
		{
			Title:         "Big Money #200",
			Price:         "10",
			State:         "Texas Lottery",
			URL:           "https://www.texaslottery.com/games/200",
			Type:          []string{ranking.TypeGrand},
			Ranking:       map[string]int{ranking.TypeGrand: 1},
			TopGrandPrize: "$1,000,000",
		},
		{
			Title: "Fiver #3",
			Price: "5",
			State: "DC Lottery",
			URL:   "https://dclottery.com/dc-scratchers/fiver",
			Type:  []string{},
		},
		// no price, excluded from the priced sheets
		{Title: "Unpriced", URL: "https://dclottery.com/dc-scratchers/unpriced"},
	}
}

func TestBuildWorkbookSheets(t *testing.T) {
	f, err := BuildWorkbook(sampleTickets())
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t,
		[]string{"$5", "$10", "Overall", "Grand Prize Rankings"},
		f.GetSheetList(),
	)
}

func TestBuildWorkbookPriceSheet(t *testing.T) {
	f, err := BuildWorkbook(sampleTickets())
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("$5", "A1")
	require.NoError(t, err)
	require.Equal(t, "Ranking", header)

	title, err := f.GetCellValue("$5", "B2")
	require.NoError(t, err)
	require.Equal(t, "Lucky 7s #1487", title)

	rank, err := f.GetCellValue("$5", "A2")
	require.NoError(t, err)
	require.Equal(t, "top 10: 1, grand: 2", rank)

	// the prize sub-row sits under the ticket row, offset to the
	// prize columns
	amount, err := f.GetCellValue("$5", "Q3")
	require.NoError(t, err)
	require.Equal(t, "$50,000", amount)

	column1, err := f.GetCellValue("$5", "U3")
	require.NoError(t, err)
	require.Equal(t, "$250,000.00", column1)

	// a ticket without prize rows gets the placeholder
	placeholder, err := f.GetCellValue("$5", "Q6")
	require.NoError(t, err)
	require.Equal(t, "No prize data available", placeholder)
}

func TestBuildWorkbookOverall(t *testing.T) {
	f, err := BuildWorkbook(sampleTickets())
	require.NoError(t, err)
	defer f.Close()

	endDateHeader, err := f.GetCellValue("Overall", "F1")
	require.NoError(t, err)
	require.Equal(t, "End Date", endDateHeader)

	endDate, err := f.GetCellValue("Overall", "F2")
	require.NoError(t, err)
	require.Equal(t, "12/31/2026", endDate)

	// three priced tickets plus the header
	rows, err := f.GetRows("Overall")
	require.NoError(t, err)
	require.Len(t, rows, 4)
}

func TestBuildWorkbookGrandSheet(t *testing.T) {
	f, err := BuildWorkbook(sampleTickets())
	require.NoError(t, err)
	defer f.Close()

	// sorted ascending by grand rank: the Texas ticket is rank 1
	first, err := f.GetCellValue("Grand Prize Rankings", "B2")
	require.NoError(t, err)
	require.Equal(t, "Big Money #200", first)

	second, err := f.GetCellValue("Grand Prize Rankings", "B3")
	require.NoError(t, err)
	require.Equal(t, "Lucky 7s #1487", second)

	kind, err := f.GetCellValue("Grand Prize Rankings", "Q2")
	require.NoError(t, err)
	require.Equal(t, "Grand Prize", kind)

	rows, err := f.GetRows("Grand Prize Rankings")
	require.NoError(t, err)
	require.Len(t, rows, 3)
}
