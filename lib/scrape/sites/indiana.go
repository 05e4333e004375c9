package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type Indiana struct{}

func (Indiana) SiteName() string { return "Indiana Lottery" }

func (Indiana) CanHandle(url string) bool {
	return strings.Contains(url, "hoosierlottery.com")
}

var inTopPrize = regexp.MustCompile(`Top Prize:\s*\$([0-9,]+)`)
var inAmountJunk = regexp.MustCompile(`[^0-9,]`)

func (Indiana) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	return scrape.BasicInfo{
		Title:     htmlutil.FirstText(doc, "h1", "h2", ".game-title", ".ticket-title"),
		Price:     htmlutil.FirstText(doc, ".price", ".ticket-price", ".game-price"),
		GameNo:    htmlutil.FirstText(doc, ".game-number", ".ticket-number"),
		StartDate: htmlutil.FirstText(doc, ".start-date", ".release-date"),
		EndDate:   htmlutil.FirstText(doc, ".end-date", ".claim-deadline"),
	}
}

// Indiana's table order is amount, unclaimed, total.
func (Indiana) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		amount := inAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")
		unclaimed := textutil.ParseCount(cells.Eq(1).Text())
		total := textutil.ParseCount(cells.Eq(2).Text())
		if amount == "" || total <= 0 {
			return
		}
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    amount,
			Total:     total,
			Paid:      total - unclaimed,
			Remaining: unclaimed,
		})
	})
	if len(prizes) > 0 {
		return prizes
	}

	if groups := inTopPrize.FindStringSubmatch(doc.Text()); len(groups) >= 2 {
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    groups[1],
			Total:     1,
			Paid:      0,
			Remaining: 1,
		})
	}
	return prizes
}

func (Indiana) ExtractOdds(doc *goquery.Document) scrape.Odds {
	return scrape.Odds{
		Display: htmlutil.FirstText(doc, ".overall-odds", ".total-odds"),
	}
}

func (Indiana) ExtractImage(doc *goquery.Document) string {
	return htmlutil.FirstAttr(doc, "src", ".ticket-image img", ".game-image img")
}
