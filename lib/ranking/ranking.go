// Package ranking assigns tickets to the three published lists: the
// top 10 by current ROI, games newly released this month, and the top
// 10 grand prizes.
package ranking

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"scratchroi-backend/lib/textutil"
	"scratchroi-backend/lib/ticket"
	"scratchroi-backend/lib/timezone"
)

const dateLayout = "01/02/2006"

const (
	TypeTop10 = "top 10"
	TypeNewly = "newly"
	TypeGrand = "grand"
)

// Engine ranks tickets. The clock is injectable so the "released this
// month" cutoff can be pinned in tests.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: timezone.Now}
}

func sortByROIDesc(tickets []ticket.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return *tickets[i].CurrentROI > *tickets[j].CurrentROI
	})
}

// grandLess orders by top prize amount, then ticket price, then the
// share of grand prizes still unclaimed, all descending.
func grandLess(a, b ticket.Ticket) bool {
	amountA := textutil.ParseMoney(a.TopGrandPrize)
	amountB := textutil.ParseMoney(b.TopGrandPrize)
	if amountA != amountB {
		return amountA > amountB
	}
	priceA := textutil.ParseMoney(a.Price)
	priceB := textutil.ParseMoney(b.Price)
	if priceA != priceB {
		return priceA > priceB
	}
	leftA, leftB := 0.0, 0.0
	if a.GrandPrizeLeft != nil {
		leftA = *a.GrandPrizeLeft
	}
	if b.GrandPrizeLeft != nil {
		leftB = *b.GrandPrizeLeft
	}
	return leftA > leftB
}

func take(tickets []ticket.Ticket, n int) []ticket.Ticket {
	if len(tickets) > n {
		return tickets[:n]
	}
	return tickets
}

// RankAll computes the three lists and stamps every ticket's Type and
// Ranking in place. Tickets without a URL are never tagged since the
// lists are keyed by URL.
func (e *Engine) RankAll(tickets []ticket.Ticket) []ticket.Ticket {
	valid := lo.Filter(tickets, func(t ticket.Ticket, _ int) bool {
		return t.CurrentROI != nil
	})

	top10 := make([]ticket.Ticket, len(valid))
	copy(top10, valid)
	sortByROIDesc(top10)
	top10 = take(top10, 10)

	monthStart := time.Date(e.now().Year(), e.now().Month(), 1, 0, 0, 0, 0, time.UTC)
	newly := lo.Filter(valid, func(t ticket.Ticket, _ int) bool {
		if t.StartDate == "" {
			return false
		}
		date, err := time.Parse(dateLayout, t.StartDate)
		if err != nil {
			return false
		}
		return !date.Before(monthStart)
	})
	sortByROIDesc(newly)

	grand := lo.Filter(tickets, func(t ticket.Ticket, _ int) bool {
		return t.HasGrandPrize()
	})
	sort.SliceStable(grand, func(i, j int) bool {
		return grandLess(grand[i], grand[j])
	})
	grand = take(grand, 10)

	// positions are assigned after dropping url-less tickets, so the
	// published ranks stay dense
	positions := func(list []ticket.Ticket) map[string]int {
		ranks := map[string]int{}
		rank := 0
		for _, t := range list {
			if t.URL == "" {
				continue
			}
			rank++
			// a url appearing twice in one view keeps its best
			// (first) position, not its last
			if _, seen := ranks[t.URL]; !seen {
				ranks[t.URL] = rank
			}
		}
		return ranks
	}
	top10Ranks := positions(top10)
	newlyRanks := positions(newly)
	grandRanks := positions(grand)

	for i := range tickets {
		tickets[i].Type = []string{}
		tickets[i].Ranking = map[string]int{}
		if tickets[i].URL == "" {
			continue
		}
		if rank, ok := top10Ranks[tickets[i].URL]; ok {
			tickets[i].Type = append(tickets[i].Type, TypeTop10)
			tickets[i].Ranking[TypeTop10] = rank
		}
		if rank, ok := newlyRanks[tickets[i].URL]; ok {
			tickets[i].Type = append(tickets[i].Type, TypeNewly)
			tickets[i].Ranking[TypeNewly] = rank
		}
		if rank, ok := grandRanks[tickets[i].URL]; ok {
			tickets[i].Type = append(tickets[i].Type, TypeGrand)
			tickets[i].Ranking[TypeGrand] = rank
		}
	}
	return tickets
}
