package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

// generic covers sites whose scratcher pages use conventional class
// names for every field. These never publish a usable odds ratio in a
// stable spot, so their probability stays nil and their games never
// rank; they still show up in exports with raw prize data.
type generic struct {
	site   string
	domain string
}

func newKansas() generic {
	return generic{site: "Kansas Lottery", domain: "kslottery.com"}
}

func newKentucky() generic {
	return generic{site: "Kentucky Lottery", domain: "kylottery.com"}
}

func newLouisiana() generic {
	return generic{site: "Louisiana Lottery", domain: "louisianalottery.com"}
}

func newWestVirginia() generic {
	return generic{site: "West Virginia Lottery", domain: "wvlottery.com"}
}

func (g generic) SiteName() string { return g.site }

func (g generic) CanHandle(url string) bool {
	return strings.Contains(url, g.domain)
}

func (g generic) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	return scrape.BasicInfo{
		Title:     htmlutil.FirstText(doc, "h1", "h2", ".game-title", ".ticket-title"),
		Price:     htmlutil.FirstText(doc, ".price", ".ticket-price", ".game-price"),
		GameNo:    htmlutil.FirstText(doc, ".game-number", ".ticket-number"),
		StartDate: htmlutil.FirstText(doc, ".start-date", ".release-date"),
		EndDate:   htmlutil.FirstText(doc, ".end-date", ".claim-deadline"),
	}
}

var genericAmountJunk = regexp.MustCompile(`[^0-9,]`)

func (g generic) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		amount := genericAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")
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

func (g generic) ExtractOdds(doc *goquery.Document) scrape.Odds {
	return scrape.Odds{
		Display: htmlutil.FirstText(doc, ".overall-odds", ".total-odds"),
	}
}

func (g generic) ExtractImage(doc *goquery.Document) string {
	return htmlutil.FirstAttr(doc, "src", ".ticket-image img", ".game-image img")
}
