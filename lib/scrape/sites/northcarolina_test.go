package sites

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/scrape"
)

const northCarolinaPage = `
<html><body>
<span class="title">Carolina Gold <span>#927</span></span>
<span class="price value">$20</span>
<span class="status value">Released January 7, 2026</span>
<span class="topprize value">$1,000,000</span>
<span class="odds value">1 in 3.28</span>
<table class="datatable prizes">
	<tbody>
		<tr><td>Value</td><td>Odds</td><td>Beginning</td><td>Remaining</td></tr>
		<tr><td>$1,000,000</td><td>1 in 960,000</td><td>8</td><td>3</td></tr>
		<tr><td>$100</td><td>1 in 606</td><td>15,000</td><td>7,200</td></tr>
	</tbody>
</table>
<div class="thmb"><img src="/images/carolina-gold.png"></div>
</body></html>`

func northCarolinaDoc(t *testing.T) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(northCarolinaPage))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestNorthCarolinaExtractBasicInfo(t *testing.T) {
	info := NorthCarolina{}.ExtractBasicInfo(northCarolinaDoc(t))

	require.Equal(t, "Carolina Gold", info.Title)
	require.Equal(t, "927", info.GameNo)
	require.Equal(t, "$20", info.Price)
	require.Equal(t, "January 7, 2026", info.StartDate)
	require.Equal(t, "$1,000,000", info.TopPrize)
}

func TestNorthCarolinaExtractPrizes(t *testing.T) {
	prizes := NorthCarolina{}.ExtractPrizes(northCarolinaDoc(t))

	require.Equal(t, []scrape.PrizeTier{
		{Amount: "$1,000,000", Total: 8, Paid: 5, Remaining: 3},
		{Amount: "$100", Total: 15000, Paid: 7800, Remaining: 7200},
	}, prizes)
}

func TestNorthCarolinaExtractOdds(t *testing.T) {
	odds := NorthCarolina{}.ExtractOdds(northCarolinaDoc(t))

	require.Equal(t, "1:3.28", odds.Display)
	require.NotNil(t, odds.Probability)
	require.InDelta(t, 30.4878, *odds.Probability, 0.001)
}

func TestNorthCarolinaExtractImage(t *testing.T) {
	require.Equal(t,
		"https://nclottery.com/images/carolina-gold.png",
		NorthCarolina{}.ExtractImage(northCarolinaDoc(t)),
	)
}
