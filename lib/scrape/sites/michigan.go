package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type Michigan struct{}

func (Michigan) SiteName() string { return "Michigan Lottery" }

func (Michigan) CanHandle(url string) bool {
	return strings.Contains(url, "michiganlottery.com")
}

var (
	miPageTitle  = regexp.MustCompile(`^([^-]+)`)
	miPrice      = regexp.MustCompile(`Price:\s*\$([0-9.]+)`)
	miGameNo     = regexp.MustCompile(`(?i)Game\s*#?\s*(\d+)`)
	miOddsLabel  = regexp.MustCompile(`(?i)Overall Odds:\s*1\s*in\s*([0-9]+(?:\.[0-9]+)?)`)
	miOddsInText = regexp.MustCompile(`(?i)Overall\s+Odds[^0-9]*1\s*in\s*([0-9]+(?:\.[0-9]+)?)`)
	miAmountJunk = regexp.MustCompile(`[^0-9.]`)
)

func (Michigan) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	info := scrape.BasicInfo{}

	info.Title = htmlutil.FirstText(doc, "#landing-title")
	if info.Title == "" {
		// fall back to the page title, keeping only the game name
		if groups := miPageTitle.FindStringSubmatch(htmlutil.FirstText(doc, "title")); len(groups) >= 2 {
			info.Title = strings.TrimSpace(groups[1])
		}
	}

	if groups := miPrice.FindStringSubmatch(htmlutil.FirstText(doc, ".game-info-price")); len(groups) >= 2 {
		info.Price = groups[1]
	}
	if groups := miGameNo.FindStringSubmatch(doc.Text()); len(groups) >= 2 {
		info.GameNo = groups[1]
	}
	info.TopPrize = htmlutil.FirstText(doc, ".instant-game-info-top-prize-value")
	// Michigan does not publish start or end dates on game pages
	return info
}

// Michigan's payout table order is amount, remaining, at-start; the
// trailing total row is skipped.
func (Michigan) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find("table.payout-table tbody tr").Each(func(_ int, row *goquery.Selection) {
		if row.HasClass("total-row") {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		amount := miAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")
		remaining := textutil.ParseCount(cells.Eq(1).Text())
		start := textutil.ParseCount(cells.Eq(2).Text())
		if amount == "" || start <= 0 {
			return
		}
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    "$" + amount,
			Total:     start,
			Paid:      start - remaining,
			Remaining: remaining,
		})
	})
	return prizes
}

func (Michigan) ExtractOdds(doc *goquery.Document) scrape.Odds {
	groups := miOddsLabel.FindStringSubmatch(htmlutil.FirstText(doc, ".game-info-odds"))
	if len(groups) < 2 {
		groups = miOddsInText.FindStringSubmatch(doc.Text())
	}
	if len(groups) < 2 {
		return scrape.Odds{}
	}
	display := "1:" + groups[1]
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (Michigan) ExtractImage(doc *goquery.Document) string {
	src := doc.Find(".game-card-logo-image").First().AttrOr("src", "")
	if src != "" && !strings.Contains(strings.ToLower(src), "data:image") {
		return strings.TrimSpace(src)
	}
	src = doc.Find(".game-card-container img, .game-card-logo-image-container img").
		First().AttrOr("src", "")
	if src != "" && !strings.Contains(strings.ToLower(src), "data:image") {
		return strings.TrimSpace(src)
	}
	return doc.Find(`meta[property="og:image"]`).First().AttrOr("content", "")
}
