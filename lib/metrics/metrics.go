// Package metrics turns raw extracted game data into evaluated
// tickets: expected-value ratios, remaining-value score, and the grand
// prize figures the ranking engine sorts on.
package metrics

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/patrickmn/go-cache"

	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/textutil"
	"scratchroi-backend/lib/ticket"
	"scratchroi-backend/lib/timezone"
)

// ErrTicketExpired marks games whose last claim date has passed.
var ErrTicketExpired = errors.New("ticket has expired")

const dateLayout = "01/02/2006"

// Calculator evaluates game data into tickets. Results are memoized
// per (url, prize table) since the same game is often requested many
// times in one harvest.
type Calculator struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: cache.New(30*time.Minute, 10*time.Minute),
		now:   timezone.Now,
	}
}

func cacheKey(url string, prizes []scrape.PrizeTier) string {
	serialized, _ := json.Marshal(prizes)
	return fmt.Sprintf("%x", md5.Sum(append([]byte(url), serialized...)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute evaluates one game. It returns ErrTicketExpired when the
// game's end date is in the past, so callers can drop it.
func (c *Calculator) Compute(ctx context.Context, data scrape.GameData) (ticket.Ticket, error) {
	if data.URL == "" {
		data.URL = "unknown-url"
	}

	if data.EndDate != "" {
		endDate, err := time.Parse(dateLayout, data.EndDate)
		if err != nil {
			slog.WarnContext(ctx, "failed to parse end date",
				"end_date", data.EndDate, "url", data.URL)
		} else {
			// a claim deadline of today is already past: the parsed
			// date carries no time of day, so anything before
			// tomorrow's midnight has expired
			today := c.now()
			tomorrowStart := time.Date(today.Year(), today.Month(), today.Day()+1, 0, 0, 0, 0, time.UTC)
			if endDate.Before(tomorrowStart) {
				return ticket.Ticket{}, ErrTicketExpired
			}
		}
	}

	key := cacheKey(data.URL, data.Prizes)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(ticket.Ticket), nil
	}

	// When the top tier is nearly drained its remaining prizes no
	// longer count toward the remaining pool.
	remainingPrizes := 0
	firstIncluded := false
	if len(data.Prizes) > 0 {
		first := data.Prizes[0]
		firstIncluded = first.Remaining >= 3 || first.Remaining == first.Total
		for i, prize := range data.Prizes {
			if i == 0 && !firstIncluded {
				continue
			}
			remainingPrizes += prize.Remaining
		}
	}

	prizes := make([]ticket.Prize, len(data.Prizes))
	sumProduct := 0.0
	sumOfAllCost := 0.0
	for i, prize := range data.Prizes {
		amount := textutil.ParseMoney(prize.Amount)
		sumProduct += amount * float64(prize.Total)

		ratio := 0.0
		if prize.Total != 0 {
			ratio = float64(prize.Remaining) / float64(prize.Total)
		}
		column1 := 0.0
		if prize.Remaining >= 3 || prize.Remaining == prize.Total || ratio > 0.5 {
			column1 = round2(amount * float64(prize.Remaining))
		}
		prizes[i] = ticket.Prize{
			Amount:    prize.Amount,
			Total:     prize.Total,
			Paid:      prize.Paid,
			Remaining: prize.Remaining,
			Column1:   column1,
		}

		if i != 0 || firstIncluded {
			sumOfAllCost += column1
		}
	}

	price := textutil.StripNonNumeric(data.Price)
	ticketPrice := textutil.ParseMoney(price)

	probability := 0.0
	if data.Odds.Probability != nil {
		probability = *data.Odds.Probability
	}

	var initialROI *float64
	if probability > 0 && ticketPrice > 0 {
		denominator := (float64(data.InitialPrizes) / (probability / 100)) * ticketPrice
		if denominator > 0 {
			if ratio := sumProduct / denominator; ratio != 0 {
				initialROI = ptr(round2(ratio * 100))
			}
		}
	}

	var costToBuyAllRemaining, totalRemainingTickets *float64
	if probability > 0 {
		totalRemainingTickets = ptr(math.Round(float64(remainingPrizes) / (probability / 100)))
		if ticketPrice > 0 {
			costToBuyAllRemaining = ptr(math.Round((float64(remainingPrizes) / (probability / 100)) * ticketPrice))
		}
	}

	var score *float64
	if totalRemainingTickets != nil && *totalRemainingTickets != 0 && costToBuyAllRemaining != nil {
		score = ptr(round2((sumOfAllCost - *costToBuyAllRemaining) / *totalRemainingTickets))
	}

	var currentROI *float64
	if costToBuyAllRemaining != nil && *costToBuyAllRemaining > 0 {
		currentROI = ptr(round2((sumOfAllCost / *costToBuyAllRemaining) * 100))
	}

	topGrandPrize := ""
	var initialGrandPrize, currentGrandPrize *int
	var grandPrizeLeft *float64
	highestAmount := 0.0
	for _, prize := range data.Prizes {
		amount := textutil.ParseMoney(prize.Amount)
		if amount > highestAmount {
			highestAmount = amount
			topGrandPrize = "$" + textutil.FormatMoney(amount)
			initialGrandPrize = ptr(prize.Total)
			currentGrandPrize = ptr(prize.Remaining)
		}
	}
	if initialGrandPrize != nil && *initialGrandPrize > 0 {
		grandPrizeLeft = ptr((float64(*currentGrandPrize) / float64(*initialGrandPrize)) * 100)
	}

	state := data.Site
	if state == "" {
		state = "Washington DC"
	}

	result := ticket.Ticket{
		Title:             data.Title + " #" + data.GameNo,
		Image:             data.Image,
		Price:             price,
		GameNo:            data.GameNo,
		StartDate:         data.StartDate,
		EndDate:           data.EndDate,
		Prizes:            prizes,
		InitialROI:        initialROI,
		Score:             score,
		CurrentROI:        currentROI,
		URL:               data.URL,
		Ranking:           nil,
		Type:              []string{},
		State:             state,
		TopGrandPrize:     topGrandPrize,
		InitialGrandPrize: initialGrandPrize,
		CurrentGrandPrize: currentGrandPrize,
		GrandPrizeLeft:    grandPrizeLeft,
	}

	c.cache.SetDefault(key, result)
	return result, nil
}

func ptr[T any](v T) *T { return &v }
