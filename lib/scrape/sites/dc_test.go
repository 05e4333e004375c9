package sites

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/scrape"
)

const dcPage = `
<html><body>
<div class="pageheader__title"><h1> Lucky 7s </h1></div>
<div class="pageheader--game__info">
	<div class="field">
		<div class="field__label">Price</div>
		<div class="field__item">$5</div>
	</div>
	<div class="field">
		<div class="field__label">Game No</div>
		<div class="field__item">1487</div>
	</div>
	<div class="field">
		<div class="field__label">Start Date</div>
		<div class="field__item"><time datetime="2026-08-01">08/01/2026</time></div>
	</div>
	<div class="field">
		<div class="field__label">Odds</div>
		<div class="field__item">1:3.05</div>
	</div>
</div>
<div class="field--name-field-last-date-to-claim">
	<div class="field__item"><time datetime="2026-12-31">12/31/2026</time></div>
</div>
<div class="ticket-image" style='background-image: url("/sites/default/files/lucky-7s.png")'></div>
<table class="views-table">
	<tbody>
		<tr><td>$50,000</td><td>5</td><td>0</td><td>5</td></tr>
		<tr><td>$100</td><td>1,250</td><td>400</td><td>850</td></tr>
		<tr><td colspan="4">totals</td></tr>
	</tbody>
</table>
</body></html>`

func dcDoc(t *testing.T) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(dcPage))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDCExtractBasicInfo(t *testing.T) {
	info := DC{}.ExtractBasicInfo(dcDoc(t))

	require.Equal(t, "Lucky 7s", info.Title)
	require.Equal(t, "$5", info.Price)
	require.Equal(t, "1487", info.GameNo)
	require.Equal(t, "08/01/2026", info.StartDate)
	require.Equal(t, "12/31/2026", info.EndDate)
}

func TestDCExtractPrizes(t *testing.T) {
	prizes := DC{}.ExtractPrizes(dcDoc(t))

	require.Equal(t, []scrape.PrizeTier{
		{Amount: "50,000", Total: 5, Paid: 0, Remaining: 5},
		{Amount: "100", Total: 1250, Paid: 400, Remaining: 850},
	}, prizes)
}

func TestDCExtractOdds(t *testing.T) {
	odds := DC{}.ExtractOdds(dcDoc(t))

	require.Equal(t, "1:3.05", odds.Display)
	require.NotNil(t, odds.Probability)
	require.InDelta(t, 32.7869, *odds.Probability, 0.001)
}

func TestDCExtractImage(t *testing.T) {
	require.Equal(t,
		"https://dclottery.com/sites/default/files/lucky-7s.png",
		DC{}.ExtractImage(dcDoc(t)),
	)
}

func TestDCExtractOddsMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatal(err)
	}

	odds := DC{}.ExtractOdds(doc)
	require.Equal(t, "", odds.Display)
	require.Nil(t, odds.Probability)
}
