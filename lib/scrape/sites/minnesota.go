package sites

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type Minnesota struct{}

func (Minnesota) SiteName() string { return "Minnesota Lottery" }

func (Minnesota) CanHandle(url string) bool {
	return strings.Contains(url, "mnlottery.com")
}

var (
	mnTopPrize   = regexp.MustCompile(`TOP PRIZE:\s*\$([0-9,]+)`)
	mnEndedOn    = regexp.MustCompile(`ended on\s+(\d{2}/\d{2}/\d{4})`)
	mnOddsInText = regexp.MustCompile(`(?i)overall ticket odds of winning are\s+1\s+in\s+([0-9]+(?:\.[0-9]+)?)`)
	mnAmountJunk = regexp.MustCompile(`[^0-9.]`)
)

// mnSmallestPrize derives the ticket price from the smallest amount in
// the prize table, which is more reliable than parsing the title.
func mnSmallestPrize(doc *goquery.Document) string {
	smallest := 0.0
	found := false
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 1 {
			return
		}
		amount := mnAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")
		if amount == "" {
			return
		}
		value, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return
		}
		if !found || value < smallest {
			smallest = value
			found = true
		}
	})
	if !found {
		return ""
	}
	return strconv.FormatFloat(smallest, 'f', -1, 64)
}

func (Minnesota) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	info := scrape.BasicInfo{
		Title: htmlutil.FirstText(doc, "h1"),
		Price: mnSmallestPrize(doc),
	}
	if groups := mnTopPrize.FindStringSubmatch(htmlutil.FirstText(doc, `h2:contains("TOP PRIZE:")`)); len(groups) >= 2 {
		info.TopPrize = strings.ReplaceAll(groups[1], ",", "")
	}
	if groups := mnEndedOn.FindStringSubmatch(htmlutil.FirstText(doc, `p:contains("This game ended on")`)); len(groups) >= 2 {
		info.EndDate = groups[1]
	}
	return info
}

// Minnesota's table order is amount, odds, quantity; the site never
// publishes claimed counts so every tier still counts as available.
func (Minnesota) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		amount := mnAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")
		quantity := textutil.ParseCount(cells.Eq(2).Text())
		if amount == "" || quantity <= 0 {
			return
		}
		prizes = append(prizes, scrape.PrizeTier{
			Amount:    "$" + amount,
			Total:     quantity,
			Paid:      0,
			Remaining: quantity,
		})
	})
	return prizes
}

func (Minnesota) ExtractOdds(doc *goquery.Document) scrape.Odds {
	groups := mnOddsInText.FindStringSubmatch(doc.Text())
	if len(groups) < 2 {
		return scrape.Odds{}
	}
	display := "1:" + groups[1]
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (Minnesota) ExtractImage(doc *goquery.Document) string {
	if src := doc.Find(`img[alt*="Scratch Ticket"], img[alt*="Scratch Game"]`).First().AttrOr("src", ""); src != "" {
		return strings.TrimSpace(src)
	}
	if src := doc.Find(`img[src*="Full-Ticket-Images"]`).First().AttrOr("src", ""); src != "" {
		return strings.TrimSpace(src)
	}

	// prefer the non-promotional figure image
	chosen := ""
	doc.Find("figure img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := img.AttrOr("src", "")
		alt := img.AttrOr("alt", "")
		if strings.Contains(src, "2nd-Chance") || strings.Contains(alt, "2nd Chance") {
			return true
		}
		if strings.Contains(alt, "Scratch") || strings.Contains(src, "Full-Ticket-Images") || src != "" {
			chosen = strings.TrimSpace(src)
			return false
		}
		return true
	})
	if chosen != "" {
		return chosen
	}

	if src := doc.Find(`meta[property="og:image"]`).First().AttrOr("content", ""); src != "" {
		return src
	}
	return doc.Find(`meta[name="twitter:image"]`).First().AttrOr("content", "")
}
