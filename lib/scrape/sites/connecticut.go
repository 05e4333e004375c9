package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type Connecticut struct{}

func (Connecticut) SiteName() string { return "Connecticut Lottery" }

func (Connecticut) CanHandle(url string) bool {
	return strings.Contains(url, "ctlottery.org")
}

var ctTopPrize = regexp.MustCompile(`Top Prize:\s*\$([0-9,]+)\s*\(([0-9]+)\)`)
var ctAmountJunk = regexp.MustCompile(`[^0-9,]`)

func (Connecticut) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	return scrape.BasicInfo{
		Title:     htmlutil.FirstText(doc, "h1", "h2", ".game-title", ".ticket-title"),
		Price:     htmlutil.FirstText(doc, ".price", ".ticket-price", ".game-price"),
		GameNo:    htmlutil.FirstText(doc, ".game-number", ".ticket-number"),
		StartDate: htmlutil.FirstText(doc, ".start-date", ".release-date"),
		EndDate:   htmlutil.FirstText(doc, ".end-date", ".claim-deadline"),
	}
}

// Connecticut carries its top prize as loose text "Top Prize: $X (N)".
// That single tier comes first, then any table rows behind it.
func (Connecticut) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier

	if groups := ctTopPrize.FindStringSubmatch(doc.Text()); len(groups) >= 3 {
		total := textutil.ParseCount(groups[2])
		prizes = append(prizes, scrape.PrizeTier{
			Amount: groups[1],
			Total:  total,
			Paid:   0,
			// the page doesn't publish claims for the banner prize
			Remaining: total,
		})
	}

	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		amount := ctAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")
		total := textutil.ParseCount(cells.Eq(1).Text())
		remaining := textutil.ParseCount(cells.Eq(2).Text())
		if amount == "" || total <= 0 {
			return
		}
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    amount,
			Total:     total,
			Paid:      total - remaining,
			Remaining: remaining,
		})
	})
	return prizes
}

func (Connecticut) ExtractOdds(doc *goquery.Document) scrape.Odds {
	return scrape.Odds{
		Display: htmlutil.FirstText(doc, ".overall-odds", ".total-odds"),
	}
}

func (Connecticut) ExtractImage(doc *goquery.Document) string {
	return htmlutil.FirstAttr(doc, "src", ".ticket-image img", ".game-image img")
}
