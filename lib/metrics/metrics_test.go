package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/scrape"
)

func fixedCalculator(now time.Time) *Calculator {
	c := NewCalculator()
	c.now = func() time.Time { return now }
	return c
}

func oddsPct(v float64) scrape.Odds {
	return scrape.Odds{Display: "1:4", Probability: &v}
}

func TestComputeFullScenario(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	data := scrape.GameData{
		URL:  "https://dclottery.com/dc-scratchers/lucky-7s",
		Site: "DC Lottery",
		BasicInfo: scrape.BasicInfo{
			Title:     "Lucky 7s",
			Price:     "$5",
			GameNo:    "1487",
			StartDate: "08/01/2026",
			EndDate:   "12/31/2026",
		},
		Odds: oddsPct(25),
		Prizes: []scrape.PrizeTier{
			{Amount: "$50,000", Total: 5, Paid: 0, Remaining: 5},
			{Amount: "$100", Total: 100, Paid: 20, Remaining: 80},
			{Amount: "$10", Total: 1000, Paid: 400, Remaining: 600},
		},
		InitialPrizes: 1105,
	}

	result, err := c.Compute(context.Background(), data)
	require.NoError(t, err)

	require.Equal(t, "Lucky 7s #1487", result.Title)
	require.Equal(t, "5", result.Price)
	require.Equal(t, "DC Lottery", result.State)

	require.NotNil(t, result.InitialROI)
	require.InDelta(t, 1221.72, *result.InitialROI, 0.001)
	require.NotNil(t, result.CurrentROI)
	require.InDelta(t, 1927.01, *result.CurrentROI, 0.001)
	require.NotNil(t, result.Score)
	require.InDelta(t, 91.35, *result.Score, 0.001)

	require.Equal(t, "$50,000", result.TopGrandPrize)
	require.NotNil(t, result.InitialGrandPrize)
	require.Equal(t, 5, *result.InitialGrandPrize)
	require.NotNil(t, result.CurrentGrandPrize)
	require.Equal(t, 5, *result.CurrentGrandPrize)
	require.NotNil(t, result.GrandPrizeLeft)
	require.InDelta(t, 100, *result.GrandPrizeLeft, 0.001)

	require.InDelta(t, 250000, result.Prizes[0].Column1, 0.001)
	require.InDelta(t, 8000, result.Prizes[1].Column1, 0.001)
	require.InDelta(t, 6000, result.Prizes[2].Column1, 0.001)
}

func TestComputeExpired(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))

	_, err := c.Compute(context.Background(), scrape.GameData{
		URL:       "https://dclottery.com/dc-scratchers/old-game",
		BasicInfo: scrape.BasicInfo{EndDate: "01/15/2020"},
	})
	require.ErrorIs(t, err, ErrTicketExpired)

	// a claim deadline of today counts as expired
	_, err = c.Compute(context.Background(), scrape.GameData{
		URL:       "https://dclottery.com/dc-scratchers/current-game",
		BasicInfo: scrape.BasicInfo{EndDate: "09/01/2026"},
	})
	require.ErrorIs(t, err, ErrTicketExpired)

	// tomorrow's deadline has not passed
	_, err = c.Compute(context.Background(), scrape.GameData{
		URL:       "https://dclottery.com/dc-scratchers/expiring-game",
		BasicInfo: scrape.BasicInfo{EndDate: "09/02/2026"},
	})
	require.NoError(t, err)

	// an unparseable end date is ignored
	_, err = c.Compute(context.Background(), scrape.GameData{
		URL:       "https://dclottery.com/dc-scratchers/odd-date",
		BasicInfo: scrape.BasicInfo{EndDate: "To Be Determined"},
	})
	require.NoError(t, err)
}

func TestComputeDrainedTopTierZeroesColumn1(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	result, err := c.Compute(context.Background(), scrape.GameData{
		URL:  "https://dclottery.com/dc-scratchers/drained",
		Odds: oddsPct(25),
		BasicInfo: scrape.BasicInfo{
			Title: "Drained",
			Price: "$10",
		},
		Prizes: []scrape.PrizeTier{
			// 2 of 5 left: below the threshold and not untouched
			{Amount: "$10,000", Total: 5, Paid: 3, Remaining: 2},
			{Amount: "$50", Total: 100, Paid: 60, Remaining: 40},
		},
		InitialPrizes: 105,
	})
	require.NoError(t, err)
	require.InDelta(t, 0, result.Prizes[0].Column1, 0.001)
	require.InDelta(t, 2000, result.Prizes[1].Column1, 0.001)

	// remaining pool excludes the drained top tier: 40 prizes at 1:4
	// odds and $10 a ticket puts the buyout cost at 1600
	require.NotNil(t, result.CurrentROI)
	require.InDelta(t, 125, *result.CurrentROI, 0.001)
}

func TestComputeUntouchedTopTierCounts(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	result, err := c.Compute(context.Background(), scrape.GameData{
		URL:  "https://dclottery.com/dc-scratchers/untouched",
		Odds: oddsPct(25),
		BasicInfo: scrape.BasicInfo{
			Title: "Untouched",
			Price: "$10",
		},
		Prizes: []scrape.PrizeTier{
			// 2 left of 2: under 3 but untouched, so it still counts
			{Amount: "$10,000", Total: 2, Paid: 0, Remaining: 2},
		},
		InitialPrizes: 2,
	})
	require.NoError(t, err)
	require.InDelta(t, 20000, result.Prizes[0].Column1, 0.001)
}

func TestComputeMajorityLeftTierCounts(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	result, err := c.Compute(context.Background(), scrape.GameData{
		URL:  "https://dclottery.com/dc-scratchers/majority-left",
		Odds: oddsPct(25),
		BasicInfo: scrape.BasicInfo{
			Title: "Majority Left",
			Price: "$10",
		},
		Prizes: []scrape.PrizeTier{
			// 2 left of 3: under the count threshold but over half
			// the tier is still unclaimed, so its value stays live
			{Amount: "$10,000", Total: 3, Paid: 1, Remaining: 2},
			{Amount: "$50", Total: 100, Paid: 60, Remaining: 40},
		},
		InitialPrizes: 103,
	})
	require.NoError(t, err)
	require.InDelta(t, 20000, result.Prizes[0].Column1, 0.001)
	require.InDelta(t, 2000, result.Prizes[1].Column1, 0.001)
}

func TestComputeNoOddsProducesNoROI(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	result, err := c.Compute(context.Background(), scrape.GameData{
		URL: "https://www.kslottery.com/games/some-game",
		BasicInfo: scrape.BasicInfo{
			Title: "No Odds",
			Price: "$5",
		},
		Odds: scrape.Odds{Display: "see game rules"},
		Prizes: []scrape.PrizeTier{
			{Amount: "$1,000", Total: 10, Paid: 2, Remaining: 8},
		},
		InitialPrizes: 10,
	})
	require.NoError(t, err)
	require.Nil(t, result.InitialROI)
	require.Nil(t, result.CurrentROI)
	require.Nil(t, result.Score)
	require.Equal(t, "$1,000", result.TopGrandPrize)
}

func TestComputeMemoizes(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	data := scrape.GameData{
		URL:  "https://dclottery.com/dc-scratchers/memo",
		Odds: oddsPct(25),
		BasicInfo: scrape.BasicInfo{
			Title: "Memo",
			Price: "$5",
		},
		Prizes: []scrape.PrizeTier{
			{Amount: "$500", Total: 10, Paid: 0, Remaining: 10},
		},
		InitialPrizes: 10,
	}

	first, err := c.Compute(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, 1, c.cache.ItemCount())

	second, err := c.Compute(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, c.cache.ItemCount())

	// a different prize table is a different cache entry
	data.Prizes[0].Remaining = 9
	_, err = c.Compute(context.Background(), data)
	require.NoError(t, err)
	require.Equal(t, 2, c.cache.ItemCount())
}

func TestComputeDefaultsMissingURLAndState(t *testing.T) {
	c := fixedCalculator(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	result, err := c.Compute(context.Background(), scrape.GameData{
		BasicInfo: scrape.BasicInfo{Title: "Nameless"},
	})
	require.NoError(t, err)
	require.Equal(t, "unknown-url", result.URL)
	require.Equal(t, "Washington DC", result.State)
}
