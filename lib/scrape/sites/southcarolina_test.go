package sites

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/scrape"
)

const southCarolinaPage = `
<html><body>
<h1>Palmetto Cash</h1>
<span>(GAME #1570)</span>
<div class="info-block">Price: $5</div>
<div class="info-block">Start of Game: 02/03/2026</div>
<div class="info-block">Last Day to Claim: 12/31/2026</div>
<table class="instant-table">
	<tr><td>Prize Amount</td><td>Unclaimed</td><td>Unclaimed Value</td><td>Total</td><td>Total Value</td></tr>
	<tr><td>$250,000</td><td>2</td><td>$500,000</td><td>4</td><td>$1,000,000</td></tr>
	<tr><td>$500</td><td>180</td><td>$90,000</td><td>400</td><td>$200,000</td></tr>
</table>
<div class="bottom-links">Overall Odds: 1 in 4.04</div>
<img id="InstantGameUncover" src="/images/instantgames/1570.png">
</body></html>`

func southCarolinaDoc(t *testing.T) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(southCarolinaPage))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestSouthCarolinaExtractBasicInfo(t *testing.T) {
	info := SouthCarolina{}.ExtractBasicInfo(southCarolinaDoc(t))

	require.Equal(t, "Palmetto Cash", info.Title)
	require.Equal(t, "1570", info.GameNo)
	require.Equal(t, "$5", info.Price)
	require.Equal(t, "02/03/2026", info.StartDate)
	require.Equal(t, "12/31/2026", info.EndDate)
}

func TestSouthCarolinaExtractPrizes(t *testing.T) {
	prizes := SouthCarolina{}.ExtractPrizes(southCarolinaDoc(t))

	require.Equal(t, []scrape.PrizeTier{
		{Amount: "$250,000", Total: 4, Paid: 2, Remaining: 2},
		{Amount: "$500", Total: 400, Paid: 220, Remaining: 180},
	}, prizes)
}

func TestSouthCarolinaExtractOdds(t *testing.T) {
	odds := SouthCarolina{}.ExtractOdds(southCarolinaDoc(t))

	require.Equal(t, "1:4.04", odds.Display)
	require.NotNil(t, odds.Probability)
	require.InDelta(t, 24.7525, *odds.Probability, 0.001)
}

func TestSouthCarolinaExtractImage(t *testing.T) {
	require.Equal(t,
		"https://www.sceducationlottery.com/images/instantgames/1570.png",
		SouthCarolina{}.ExtractImage(southCarolinaDoc(t)),
	)
}
