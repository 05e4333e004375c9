package sites

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/scrape"
)

const virginiaPage = `
<html><body>
<h2 class="title-display">Jackpot Riches <small>#2150</small></h2>
<span class="ticket-price-display">$10</span>
<div class="top-prize-display">$1,000,000</div>
<div>
	<label>Start Date</label>
	<p>available at retailers</p>
	<h2 class="start-date-display">03/01/2026</h2>
</div>
<div>
	<label>Last Claim Date</label>
	<h2 class="start-date-display">12/01/2026</h2>
</div>
<p class="odds-display">Odds of winning: 1 in <span>4.2</span></p>
<table class="scratcher-prize-table">
	<tbody>
		<tr><td>$1,000,000</td><td>4</td><td>2</td></tr>
		<tr><td>$500</td><td>1,200</td><td>640</td></tr>
	</tbody>
</table>
<div id="interactive-scratcher-container">
	<canvas data-front-image-url="https://www.valottery.com/img/2150-front.png"></canvas>
</div>
</body></html>`

func virginiaDoc(t *testing.T) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(virginiaPage))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestVirginiaExtractBasicInfo(t *testing.T) {
	info := Virginia{}.ExtractBasicInfo(virginiaDoc(t))

	require.Equal(t, "Jackpot Riches", info.Title)
	require.Equal(t, "2150", info.GameNo)
	require.Equal(t, "$10", info.Price)
	require.Equal(t, "$1,000,000", info.TopPrize)
	// the value heading is not the label's immediate sibling
	require.Equal(t, "03/01/2026", info.StartDate)
	require.Equal(t, "12/01/2026", info.EndDate)
}

func TestVirginiaExtractPrizes(t *testing.T) {
	prizes := Virginia{}.ExtractPrizes(virginiaDoc(t))

	require.Equal(t, []scrape.PrizeTier{
		{Amount: "1,000,000", Total: 4, Paid: 2, Remaining: 2},
		{Amount: "500", Total: 1200, Paid: 560, Remaining: 640},
	}, prizes)
}

func TestVirginiaExtractOdds(t *testing.T) {
	odds := Virginia{}.ExtractOdds(virginiaDoc(t))

	require.Equal(t, "1 in 4.2", odds.Display)
	require.NotNil(t, odds.Probability)
	require.InDelta(t, 23.8095, *odds.Probability, 0.001)
}

func TestVirginiaExtractImage(t *testing.T) {
	require.Equal(t,
		"https://www.valottery.com/img/2150-front.png",
		Virginia{}.ExtractImage(virginiaDoc(t)),
	)
}
