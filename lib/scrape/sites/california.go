package sites

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/htmlutil"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
)

type California struct{}

func (California) SiteName() string { return "California Lottery" }

func (California) CanHandle(url string) bool {
	return strings.Contains(url, "calottery.com")
}

var (
	caOddsValueJunk = regexp.MustCompile(`[^0-9.]`)
	caOddsInText    = regexp.MustCompile(`(?i)1\s*in\s*([0-9]+(?:\.[0-9]+)?)`)
	caOddsLoose     = regexp.MustCompile(`(?i)1\s*[:in]\s*([0-9.]+)`)
	caAmountJunk    = regexp.MustCompile(`[^0-9,]`)
	caRemainingOf   = regexp.MustCompile(`(?i)(\d[\d,]*)\s*of\s*(\d[\d,]*)`)
)

func (California) ExtractBasicInfo(doc *goquery.Document) scrape.BasicInfo {
	return scrape.BasicInfo{
		Title:     htmlutil.FirstText(doc, "h1", ".game-title", ".ticket-title"),
		Price:     htmlutil.FirstText(doc, ".price", ".scratchers-game-detail__info-price strong"),
		GameNo:    htmlutil.FirstText(doc, ".scratchers-game-detail__info-feature-item--game-number strong"),
		StartDate: htmlutil.FirstText(doc, ".start-date", ".release-date"),
		EndDate:   htmlutil.FirstText(doc, ".end-date", ".claim-deadline"),
	}
}

// California's prize table renders the remaining column as "X of Y",
// either as loose text or as two spans.
func (California) ExtractPrizes(doc *goquery.Document) []scrape.PrizeTier {
	var prizes []scrape.PrizeTier
	doc.Find(".odds-available-prizes__table tr.odds-available-prizes__table__body").
		Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 3 {
				return
			}
			amount := caAmountJunk.ReplaceAllString(htmlutil.CleanText(cells.Eq(0).Text()), "")

			remaining, total := 0, 0
			cellText := htmlutil.CleanText(cells.Eq(2).Text())
			if groups := caRemainingOf.FindStringSubmatch(cellText); len(groups) >= 3 {
				remaining = textutil.ParseCount(groups[1])
				total = textutil.ParseCount(groups[2])
			} else {
				spans := cells.Eq(2).Find("span")
				if spans.Length() >= 2 {
					remaining = textutil.ParseCount(spans.Eq(0).Text())
					total = textutil.ParseCount(spans.Eq(spans.Length() - 1).Text())
				}
			}
			if amount == "" || total <= 0 {
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

func caOdds(value string) scrape.Odds {
	display := "1:" + value
	return scrape.Odds{
		Display:     display,
		Probability: textutil.ParseOddsPercent(display),
	}
}

func (California) ExtractOdds(doc *goquery.Document) scrape.Odds {
	container := doc.Find(".scratchers-game-detail__info-feature-item--overall-odds").First()
	if container.Length() > 0 {
		strongs := container.Find("strong")
		if strongs.Length() >= 2 {
			value := caOddsValueJunk.ReplaceAllString(htmlutil.CleanText(strongs.Eq(1).Text()), "")
			if value != "" {
				return caOdds(value)
			}
		}
		if groups := caOddsInText.FindStringSubmatch(container.Text()); len(groups) >= 2 {
			return caOdds(groups[1])
		}
	}

	text := htmlutil.FirstText(doc, ".overall-odds", ".total-odds")
	if groups := caOddsLoose.FindStringSubmatch(text); len(groups) >= 2 {
		return caOdds(groups[1])
	}
	return scrape.Odds{Display: text}
}

func (California) ExtractImage(doc *goquery.Document) string {
	return doc.Find(".scratchers-game-detail__card-img").First().AttrOr("src", "")
}
