package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

// Arkansas pages are Drupal markup: field-name-* wrappers around every
// fact, with the jackpot amount baked into the page title.
type Arkansas struct{}

func (Arkansas) SiteName() string { return "Arkansas Lottery" }

func (Arkansas) CanHandle(url string) bool {
	return strings.Contains(url, "myarkansaslottery.com")
}

var (
	arJackpotTitle = regexp.MustCompile(`\$([0-9,]+)\s*Jackpot`)
	arDollarAmount = regexp.MustCompile(`\$([0-9,]+)`)
	arOddsRatio    = regexp.MustCompile(`1 in ([0-9]+(?:\.[0-9]+)?)`)
	arAmountJunk   = regexp.MustCompile(`[^0-9,.]`)
	arMarkupDate   = regexp.MustCompile(`[<>{}()\[\]]`)
)

// arDate rejects placeholder and markup-contaminated date strings.
func arDate(s string) string {
	if s == "" || s == "To Be Determined" || arMarkupDate.MatchString(s) {
		return ""
	}
	return s
}

func (Arkansas) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	info := scrape.BasicInfo{}

	title := htmlutil.FirstText(
		doc,
		".field-item h1.layout-center", "h1.layout-center", ".field-item h1",
		"h1", "h2", ".game-title", ".ticket-title",
	)
	switch {
	case title == "":
		// some pages only carry the jackpot amount in loose text
		if groups := arJackpotTitle.FindStringSubmatch(doc.Text()); len(groups) >= 2 {
			info.Title = "$" + groups[1] + " Jackpot"
		}
	default:
		if groups := arJackpotTitle.FindStringSubmatch(title); len(groups) >= 2 {
			info.Title = "$" + groups[1] + " Jackpot"
		} else if groups := arDollarAmount.FindStringSubmatch(title); len(groups) >= 2 {
			info.Title = "$" + groups[1] + " Jackpot"
		} else {
			info.Title = title
		}
	}

	price := htmlutil.FirstText(doc, ".field-name-field-ticket-price .field-item")
	if price != "" && !strings.Contains(price, "$") {
		price = "$" + price
	}
	info.Price = price

	info.GameNo = htmlutil.FirstText(
		doc,
		".field-name-field-game-number strong",
		".field-name-field-game-number .field-item",
	)
	info.StartDate = arDate(htmlutil.FirstText(doc, "p.layout-3col__col-3 span"))
	info.EndDate = arDate(htmlutil.FirstText(doc, "p.layout-3col__col-1 span"))
	return info
}

func (Arkansas) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 5 {
			return
		}
		amount := arAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")
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
	if len(prizes) > 0 {
		return prizes
	}

	// no table: fall back to the single jackpot tier from loose text
	if groups := arJackpotTitle.FindStringSubmatch(doc.Text()); len(groups) >= 2 {
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    groups[1],
			Total:     1,
			Paid:      0,
			Remaining: 1,
		})
	}
	return prizes
}

func (Arkansas) ExtractOdds(doc *goquery.Document) scrape.Odds {
	text := htmlutil.FirstText(doc, ".field-name-field-game-odds .field-item")
	groups := arOddsRatio.FindStringSubmatch(text)
	if len(groups) < 2 {
		return scrape.Odds{}
	}
	display := "1:" + groups[1]
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (Arkansas) ExtractImage(doc *goquery.Document) string {
	return htmlutil.FirstAttr(
		doc, "src",
		".field-name-field-ticket-front img", ".ticket-image img",
		".game-image img", "img[src*='game']", "img[src*='instant']",
	)
}
