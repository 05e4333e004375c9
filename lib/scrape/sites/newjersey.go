package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type NewJersey struct{}

func (NewJersey) SiteName() string { return "New Jersey Lottery" }

func (NewJersey) CanHandle(url string) bool {
	return strings.Contains(url, "njlottery.com")
}

var njOddsInText = regexp.MustCompile(`(?i)1\s*in\s*([0-9]+(?:\.[0-9]+)?)`)
var njAmountJunk = regexp.MustCompile(`[^0-9,]`)

// njAbsoluteURL fixes up the scheme-relative and root-relative asset
// links the NJ portal serves.
func njAbsoluteURL(url string) string {
	return htmlutil.AbsoluteURL("https://www.njlottery.com", strings.TrimSpace(url))
}

func (NewJersey) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	return scrape.BasicInfo{
		Title:     htmlutil.FirstText(doc, "h2"),
		Price:     htmlutil.FirstText(doc, ".price", ".ticket-price", ".game-price"),
		GameNo:    htmlutil.FirstText(doc, ".game-number", ".ticket-number"),
		StartDate: htmlutil.FirstText(doc, ".start-date", ".release-date"),
		EndDate:   htmlutil.FirstText(doc, ".end-date", ".claim-deadline"),
	}
}

func (NewJersey) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		amount := njAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")
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

func (NewJersey) ExtractOdds(doc *goquery.Document) scrape.Odds {
	text := htmlutil.FirstText(doc, ".overall-odds", ".total-odds")
	groups := njOddsInText.FindStringSubmatch(text)
	if len(groups) < 2 {
		return scrape.Odds{}
	}
	display := "1:" + groups[1]
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (NewJersey) ExtractImage(doc *goquery.Document) string {
	src := htmlutil.FirstAttr(
		doc, "src",
		".ticket-image img", ".game-image img", `img[src*="content/dam/portal/images"]`,
	)
	if src != "" {
		return njAbsoluteURL(src)
	}
	return njAbsoluteURL(doc.Find(`meta[property="og:image"]`).First().AttrOr("content", ""))
}
