package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

// Mississippi pages carry their facts in a key/value juxtable inside
// the game info block.
type Mississippi struct{}

func (Mississippi) SiteName() string { return "Mississippi Lottery" }

func (Mississippi) CanHandle(url string) bool {
	return strings.Contains(url, "mslottery.com")
}

var (
	msPriceJunk = regexp.MustCompile(`[^0-9.]`)
	msOddsRatio = regexp.MustCompile(`1\s*:\s*([0-9]+(?:\.[0-9]+)?)`)

	msKeyPrice  = regexp.MustCompile(`(?i)ticket\s*price`)
	msKeyPrize  = regexp.MustCompile(`(?i)top\s*prize`)
	msKeyLaunch = regexp.MustCompile(`(?i)launch`)
	msKeyGameNo = regexp.MustCompile(`(?i)game\s*number`)
)

// msInfoRows visits each 2-cell key/value row of the game info table.
func msInfoRows(doc *goquery.Document, visit func(key, value string)) {
	doc.Find(".gameinfo table.juxtable tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != 2 {
			return
		}
		visit(
			strings.ToLower(htmlutil.CleanText(cells.Eq(0).Text())),
			htmlutil.CleanText(cells.Eq(1).Text()),
		)
	})
}

func (Mississippi) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	info := scrape.BasicInfo{
		Title: htmlutil.FirstText(doc, "h1.entry-title"),
	}
	msInfoRows(doc, func(key, value string) {
		switch {
		case msKeyPrice.MatchString(key):
			info.Price = msPriceJunk.ReplaceAllString(value, "")
		case msKeyPrize.MatchString(key):
			info.TopPrize = value
		case msKeyLaunch.MatchString(key):
			info.StartDate = value
		case msKeyGameNo.MatchString(key):
			info.GameNo = value
		}
	})
	return info
}

func (Mississippi) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find(`h4:contains("Game Prize Info") + figure table, figure.wp-block-table table`).
		Find("tbody tr").
		Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 3 {
				return
			}
			amount := htmlutil.CleanText(cells.Eq(0).Text())
			total := textutil.ParseCount(cells.Eq(1).Text())
			remaining := textutil.ParseCount(cells.Eq(2).Text())
			if amount == "" || (total <= 0 && remaining <= 0) {
				return
			}
			prizes = append(prizes, scrape.PrizeTier{
				Amount:    amount,
				Total:     total,
				Paid:      max(total-remaining, 0),
				Remaining: remaining,
			})
		})
	return prizes
}

func (Mississippi) ExtractOdds(doc *goquery.Document) scrape.Odds {
	odds := scrape.Odds{}
	msInfoRows(doc, func(key, value string) {
		if key != "overall odds" || odds.Display != "" {
			return
		}
		if groups := msOddsRatio.FindStringSubmatch(value); len(groups) >= 2 {
			odds.Display = "1:" + groups[1]
			odds.Probability = textutil.ParseOddsPercent(odds.Display)
		}
	})
	return odds
}

func (Mississippi) ExtractImage(doc *goquery.Document) string {
	source := doc.Find(".flexslider picture source").First()
	if source.Length() > 0 {
		srcset := source.AttrOr("data-srcset", "")
		if srcset == "" {
			srcset = source.AttrOr("srcset", "")
		}
		if srcset != "" {
			first := strings.Split(srcset, ",")[0]
			return strings.TrimSpace(strings.Split(strings.TrimSpace(first), " ")[0])
		}
	}

	img := doc.Find(".flexslider img").First()
	if img.Length() > 0 {
		src := img.AttrOr("data-src", "")
		if src == "" {
			src = img.AttrOr("src", "")
		}
		// skip inline placeholder images
		if src != "" && !strings.Contains(src, "data:image") {
			return src
		}
	}

	fallback := doc.Find(".entry-content img").First()
	if src := fallback.AttrOr("data-src", ""); src != "" {
		return src
	}
	return fallback.AttrOr("src", "")
}
