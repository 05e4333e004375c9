package sites

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/scrape"
)

const michiganPage = `
<html>
<head><title>Cashword Bonus - Michigan Lottery</title></head>
<body>
<h1 id="landing-title">Cashword Bonus</h1>
<div class="game-info-price">Price: $10</div>
<p>Game #513</p>
<div class="instant-game-info-top-prize-value">$500,000</div>
<div class="game-info-odds">Overall Odds: 1 in 3.91</div>
<table class="payout-table">
	<tbody>
		<tr><td>$500000</td><td>2</td><td>4</td></tr>
		<tr><td>$1000</td><td>150</td><td>300</td></tr>
		<tr class="total-row"><td>Total</td><td></td><td></td></tr>
	</tbody>
</table>
<img class="game-card-logo-image" src="https://cdn.michiganlottery.com/cashword-bonus.png">
</body></html>`

func michiganDoc(t *testing.T) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(michiganPage))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestMichiganExtractBasicInfo(t *testing.T) {
	info := Michigan{}.ExtractBasicInfo(michiganDoc(t))

	require.Equal(t, "Cashword Bonus", info.Title)
	require.Equal(t, "10", info.Price)
	require.Equal(t, "513", info.GameNo)
	require.Equal(t, "$500,000", info.TopPrize)
}

func TestMichiganTitleFallsBackToPageTitle(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><head><title>Cashword Bonus - Michigan Lottery</title></head><body></body></html>`,
	))
	if err != nil {
		t.Fatal(err)
	}

	info := Michigan{}.ExtractBasicInfo(doc)
	require.Equal(t, "Cashword Bonus", info.Title)
}

func TestMichiganExtractPrizes(t *testing.T) {
	prizes := Michigan{}.ExtractPrizes(michiganDoc(t))

	require.Equal(t, []scrape.PrizeTier{
		{Amount: "$500000", Total: 4, Paid: 2, Remaining: 2},
		{Amount: "$1000", Total: 300, Paid: 150, Remaining: 150},
	}, prizes)
}

func TestMichiganExtractOdds(t *testing.T) {
	odds := Michigan{}.ExtractOdds(michiganDoc(t))

	require.Equal(t, "1:3.91", odds.Display)
	require.NotNil(t, odds.Probability)
	require.InDelta(t, 25.5754, *odds.Probability, 0.001)
}

func TestMichiganExtractImage(t *testing.T) {
	require.Equal(t,
		"https://cdn.michiganlottery.com/cashword-bonus.png",
		Michigan{}.ExtractImage(michiganDoc(t)),
	)
}
