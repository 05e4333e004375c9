package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type Texas struct{}

func (Texas) SiteName() string { return "Texas Lottery" }

func (Texas) CanHandle(url string) bool {
	return strings.Contains(url, "texaslottery.com")
}

var (
	txGameNo     = regexp.MustCompile(`(?i)Game No\.\s*(\d+)`)
	txPriceAlt   = regexp.MustCompile(`\$(\d+)`)
	txMillion    = regexp.MustCompile(`(?i)\$(\d+)\s*Million`)
	txClaimedAs  = regexp.MustCompile(`(?i)Scratch Ticket Prizes Claimed as of\s+(\w+\s+\d{1,2},\s*\d{4})`)
	txOverallAny = regexp.MustCompile(`(?i)overall odds of winning any prize.*?1\s*in\s*([0-9]+(?:\.[0-9]+)?)`)
)

func (Texas) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	info := scrape.BasicInfo{
		Title: htmlutil.FirstText(doc, "h2"),
	}
	if groups := txGameNo.FindStringSubmatch(doc.Text()); len(groups) >= 2 {
		info.GameNo = groups[1]
	}

	// ticket price is only rendered as an image of the denomination
	if alt := doc.Find(`img[src*="scratch_price"]`).First().AttrOr("alt", ""); alt != "" {
		if groups := txPriceAlt.FindStringSubmatch(alt); len(groups) >= 2 {
			info.Price = "$" + groups[1]
		}
	}
	if info.Price == "" && txMillion.MatchString(info.Title) {
		// the "$N Million" series are all $100 tickets
		info.Price = "$100"
	}

	info.TopPrize = htmlutil.FirstText(doc, `div[style*="text-transform:uppercase"]`)

	if groups := txClaimedAs.FindStringSubmatch(doc.Text()); len(groups) >= 2 {
		info.StartDate = groups[1]
	}
	return info
}

func (Texas) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	firstTable(doc, "table.large-only").Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		amount := textutil.StripNonNumeric(cells.Eq(0).Text())
		if amount == "" {
			return
		}
		total := textutil.ParseCount(cells.Eq(1).Text())
		claimed := textutil.ParseCount(cells.Eq(2).Text())
		if total <= 0 {
			return
		}
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    amount,
			Total:     total,
			Paid:      claimed,
			Remaining: max(0, total-claimed),
		})
	})
	return prizes
}

func (Texas) ExtractOdds(doc *goquery.Document) scrape.Odds {
	groups := txOverallAny.FindStringSubmatch(doc.Text())
	if len(groups) < 2 {
		return scrape.Odds{}
	}
	display := "1 in " + groups[1]
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (Texas) ExtractImage(doc *goquery.Document) string {
	if src := doc.Find("#Front img").First().AttrOr("src", ""); src != "" {
		return htmlutil.AbsoluteURL("https://www.texaslottery.com", src)
	}
	return htmlutil.AbsoluteURL(
		"https://www.texaslottery.com",
		doc.Find(`img[src*="scratchoffs"]`).First().AttrOr("src", ""),
	)
}
