package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

// DC scratcher pages lay out game facts as field__label/field__item
// sibling pairs under the page header.
type DC struct{}

func (DC) SiteName() string { return "DC Lottery" }

func (DC) CanHandle(url string) bool {
	return strings.Contains(url, "dclottery.com")
}

// dcHeaderField returns the sibling value nodes of the first header
// label containing `label`.
func dcHeaderField(doc *goquery.Document, label string) *goquery.Selection {
	return doc.Find(`.pageheader--game__info .field__label:contains("` + label + `")`).
		First().Siblings()
}

func (DC) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	return scrape.BasicInfo{
		Title:  htmlutil.CleanText(doc.Find(".pageheader__title h1").First().Text()),
		Price:  htmlutil.CleanText(dcHeaderField(doc, "Price").First().Text()),
		GameNo: htmlutil.CleanText(dcHeaderField(doc, "Game No").First().Text()),
		// the start date value nests a <time> inside the sibling item
		StartDate: htmlutil.CleanText(dcHeaderField(doc, "Start Date").Find("time").First().Text()),
		EndDate:   htmlutil.CleanText(doc.Find(".field--name-field-last-date-to-claim .field__item time").First().Text()),
	}
}

func (DC) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	firstTable(doc, "table.views-table").Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 4 {
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

func (DC) ExtractOdds(doc *goquery.Document) scrape.Odds {
	display := htmlutil.CleanText(dcHeaderField(doc, "Odds").First().Text())
	if !strings.Contains(display, ":") {
		return scrape.Odds{Display: display}
	}
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

var dcBackgroundImage = regexp.MustCompile(`(?i)background-image:\s*url\((.*?)\)`)

func (DC) ExtractImage(doc *goquery.Document) string {
	style := doc.Find(".ticket-image").First().AttrOr("style", "")
	groups := dcBackgroundImage.FindStringSubmatch(style)
	if len(groups) < 2 {
		return ""
	}
	return htmlutil.AbsoluteURL("https://dclottery.com", strings.Trim(groups[1], `"'`))
}
