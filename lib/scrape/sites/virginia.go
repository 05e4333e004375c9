package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type Virginia struct{}

func (Virginia) SiteName() string { return "Virginia Lottery" }

func (Virginia) CanHandle(url string) bool {
	return strings.Contains(url, "valottery.com")
}

var vaTitleGameNo = regexp.MustCompile(`\s*#\d+$`)
var vaGameNo = regexp.MustCompile(`#?(\d+)`)
var vaAmountJunk = regexp.MustCompile(`[^0-9.,]`)

// vaLabelDate finds the label with the given text and returns the
// date display heading that follows it.
func vaLabelDate(doc *goquery.Document, label string) string {
	return htmlutil.LabelValue(doc, "label", label, "h2.start-date-display")
}

func (Virginia) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	info := scrape.BasicInfo{}

	titleNode := doc.Find("h2.title-display").First()
	if titleNode.Length() > 0 {
		// the heading ends with the game number in a <small>, e.g. "#2150"
		info.Title = vaTitleGameNo.ReplaceAllString(htmlutil.CleanText(titleNode.Text()), "")
		small := titleNode.Find("small").First()
		if groups := vaGameNo.FindStringSubmatch(htmlutil.CleanText(small.Text())); len(groups) >= 2 {
			info.GameNo = groups[1]
		}
	}

	info.Price = htmlutil.CleanText(doc.Find(".ticket-price-display").First().Text())
	info.TopPrize = htmlutil.CleanText(doc.Find(".top-prize-display").First().Text())
	info.StartDate = vaLabelDate(doc, "Start Date")
	info.EndDate = vaLabelDate(doc, "Last Claim Date")
	if info.EndDate == "" {
		info.EndDate = vaLabelDate(doc, "End Date")
	}
	return info
}

func (Virginia) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find("table.scratcher-prize-table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		total := textutil.ParseCount(cells.Eq(1).Text())
		remaining := textutil.ParseCount(cells.Eq(2).Text())
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    vaAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), ""),
			Total:     total,
			Paid:      max(0, total-remaining),
			Remaining: remaining,
		})
	})
	return prizes
}

func (Virginia) ExtractOdds(doc *goquery.Document) scrape.Odds {
	span := doc.Find("p.odds-display span").First()
	if span.Length() == 0 {
		return scrape.Odds{}
	}
	display := "1 in " + htmlutil.CleanText(span.Text())
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (Virginia) ExtractImage(doc *goquery.Document) string {
	canvas := doc.Find("#interactive-scratcher-container canvas[data-front-image-url]").First()
	if src := canvas.AttrOr("data-front-image-url", ""); src != "" {
		return src
	}
	if src := doc.Find("#interactive-scratcher-container img").First().AttrOr("src", ""); src != "" {
		return src
	}
	return doc.Find(
		"img[src*='digital-scratcher-front-images'], img[src*='scratched'], img[src*='unscratched']",
	).First().AttrOr("src", "")
}
