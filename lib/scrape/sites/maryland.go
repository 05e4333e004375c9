package sites

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type Maryland struct{}

func (Maryland) SiteName() string { return "Maryland Lottery" }

func (Maryland) CanHandle(url string) bool {
	return strings.Contains(url, "mdlottery.com")
}

func (Maryland) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	return scrape.BasicInfo{
		Title:     htmlutil.CleanText(doc.Find(".game-title h2").First().Text()),
		Price:     htmlutil.CleanText(doc.Find(".game-price .value").First().Text()),
		GameNo:    htmlutil.CleanText(doc.Find(".game-number .value").First().Text()),
		StartDate: htmlutil.CleanText(doc.Find(".game-date .value").First().Text()),
	}
}

func (Maryland) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find(".prize-table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    strings.Trim(htmlutil.CleanText(cells.Eq(0).Text()), "$ "),
			Total:     textutil.ParseCount(cells.Eq(1).Text()),
			Paid:      textutil.ParseCount(cells.Eq(2).Text()),
			Remaining: textutil.ParseCount(cells.Eq(3).Text()),
		})
	})
	return prizes
}

func (Maryland) ExtractOdds(doc *goquery.Document) scrape.Odds {
	display := htmlutil.CleanText(doc.Find(".odds-info .value").First().Text())
	if !strings.Contains(display, ":") {
		return scrape.Odds{Display: display}
	}
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (Maryland) ExtractImage(doc *goquery.Document) string {
	return doc.Find(".game-image img").First().AttrOr("src", "")
}
