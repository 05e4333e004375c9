package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type NorthCarolina struct{}

func (NorthCarolina) SiteName() string { return "North Carolina Lottery" }

func (NorthCarolina) CanHandle(url string) bool {
	return strings.Contains(url, "nclottery.com")
}

var (
	ncTitleGameNo = regexp.MustCompile(`\s*#\d+\s*$`)
	ncGameNo      = regexp.MustCompile(`#(\d+)`)
	ncReleased    = regexp.MustCompile(`(?i)Released\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`)
	ncOddsInText  = regexp.MustCompile(`(?i)1\s*in\s*([0-9]+(?:\.[0-9]+)?)`)
)

func (NorthCarolina) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	info := scrape.BasicInfo{}

	titleNode := doc.Find("span.title").First()
	if titleNode.Length() > 0 {
		info.Title = ncTitleGameNo.ReplaceAllString(htmlutil.CleanText(titleNode.Text()), "")
		gameNoText := htmlutil.CleanText(doc.Find("span.title span").First().Text())
		if groups := ncGameNo.FindStringSubmatch(gameNoText); len(groups) >= 2 {
			info.GameNo = groups[1]
		}
	}

	info.Price = htmlutil.CleanText(doc.Find("span.price.value").First().Text())
	status := htmlutil.CleanText(doc.Find("span.status.value").First().Text())
	if groups := ncReleased.FindStringSubmatch(status); len(groups) >= 2 {
		info.StartDate = groups[1]
	}
	info.TopPrize = htmlutil.CleanText(doc.Find("span.topprize.value").First().Text())
	return info
}

// The prize table's 4 columns are amount, odds, at-start, unclaimed.
// Rows whose first cell is not a dollar amount are headers or totals.
func (NorthCarolina) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find("table.datatable.prizes tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		amount := htmlutil.CleanText(cells.Eq(0).Text())
		if amount == "" || amount == "Value" || !strings.HasPrefix(amount, "$") {
			return
		}
		total := textutil.ParseCount(cells.Eq(2).Text())
		remaining := textutil.ParseCount(cells.Eq(3).Text())
		if total <= 0 {
			return
		}
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    amount,
			Total:     total,
			Paid:      max(0, total-remaining),
			Remaining: remaining,
		})
	})
	return prizes
}

func (NorthCarolina) ExtractOdds(doc *goquery.Document) scrape.Odds {
	text := htmlutil.CleanText(doc.Find("span.odds.value").First().Text())
	groups := ncOddsInText.FindStringSubmatch(text)
	if len(groups) < 2 {
		return scrape.Odds{}
	}
	return scrape.Odds{
		Display:     "1:" + groups[1],
		Probability: textutil.ParseOddsPercent(groups[0]),
	}
}

func (NorthCarolina) ExtractImage(doc *goquery.Document) string {
	return htmlutil.AbsoluteURL(
		"https://nclottery.com",
		doc.Find(".thmb img").First().AttrOr("src", ""),
	)
}
