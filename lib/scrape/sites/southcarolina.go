package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type SouthCarolina struct{}

func (SouthCarolina) SiteName() string { return "South Carolina Lottery" }

func (SouthCarolina) CanHandle(url string) bool {
	return strings.Contains(url, "sceducationlottery.com")
}

var (
	scGameNo      = regexp.MustCompile(`(?i)GAME\s*#\s*(\d+)`)
	scPrice       = regexp.MustCompile(`(?i)Price:\s*\$\s*([0-9]+)`)
	scStartOfGame = regexp.MustCompile(`(?i)Start of Game:\s*([0-9]{1,2}/[0-9]{1,2}/[0-9]{4})`)
	scLastToClaim = regexp.MustCompile(`(?i)Last Day to Claim:\s*([0-9]{1,2}/[0-9]{1,2}/[0-9]{4})`)
	scOverallOdds = regexp.MustCompile(`(?i)Overall Odds?:\s*1\s*in\s*([0-9,]+(?:\.[0-9]+)?)`)
)

func (SouthCarolina) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	info := scrape.BasicInfo{
		Title: htmlutil.FirstText(doc, "h1"),
	}

	// the game number sits beside the heading, e.g. "(GAME #1570)"
	if groups := scGameNo.FindStringSubmatch(htmlutil.FirstText(doc, "h1 + span")); len(groups) >= 2 {
		info.GameNo = groups[1]
	}

	doc.Find(".info-block").Each(func(_ int, block *goquery.Selection) {
		text := htmlutil.CleanText(block.Text())
		switch {
		case strings.Contains(text, "Price:"):
			if groups := scPrice.FindStringSubmatch(text); len(groups) >= 2 {
				info.Price = "$" + groups[1]
			}
		case strings.Contains(text, "Start of Game"):
			if groups := scStartOfGame.FindStringSubmatch(text); len(groups) >= 2 {
				info.StartDate = groups[1]
			}
		case strings.Contains(text, "Last Day to Claim"):
			if groups := scLastToClaim.FindStringSubmatch(text); len(groups) >= 2 {
				info.EndDate = groups[1]
			}
		}
	})
	return info
}

// The instant table's 5 columns are amount, unclaimed count, unclaimed
// value, total count, total value.
func (SouthCarolina) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find(".instant-table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}
		amount := htmlutil.CleanText(cells.Eq(0).Text())
		if amount == "" || strings.Contains(strings.ToLower(amount), "prize amount") {
			return
		}
		remaining := textutil.ParseCount(cells.Eq(1).Text())
		total := textutil.ParseCount(cells.Eq(3).Text())
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

func (SouthCarolina) ExtractOdds(doc *goquery.Document) scrape.Odds {
	text := htmlutil.CleanText(doc.Find(".bottom-links").First().Text())
	groups := scOverallOdds.FindStringSubmatch(text)
	if len(groups) < 2 {
		groups = scOverallOdds.FindStringSubmatch(doc.Text())
	}
	if len(groups) < 2 {
		return scrape.Odds{}
	}
	value := strings.ReplaceAll(groups[1], ",", "")
	display := "1:" + value
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (SouthCarolina) ExtractImage(doc *goquery.Document) string {
	if src := doc.Find("#InstantGameUncover").First().AttrOr("src", ""); src != "" {
		return htmlutil.AbsoluteURL("https://www.sceducationlottery.com", src)
	}
	return htmlutil.AbsoluteURL(
		"https://www.sceducationlottery.com",
		doc.Find(`img[src*="instantgames"]`).First().AttrOr("src", ""),
	)
}
