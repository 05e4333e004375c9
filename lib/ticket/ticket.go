// Package ticket defines the normalized scratch-off ticket record
// produced by the metrics calculator and consumed by the ranking
// engine, the REST surface, and the xlsx export.
package ticket

// Prize is one prize tier of a ticket. Column1 is the dollar value
// still unclaimed in the tier, zeroed when the tier is nearly drained.
type Prize struct {
	Amount    string  `json:"amount"`
	Total     int     `json:"total"`
	Paid      int     `json:"paid"`
	Remaining int     `json:"remaining"`
	Column1   float64 `json:"column1"`
}

// Ticket is a fully evaluated scratch-off game. Pointer fields are
// null in JSON when the underlying figure could not be computed, and
// the ranking engine only considers tickets where they are set.
type Ticket struct {
	Title     string  `json:"title"`
	Image     string  `json:"image"`
	Price     string  `json:"price"`
	GameNo    string  `json:"game_no"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Prizes    []Prize `json:"prizes"`

	InitialROI *float64 `json:"initial_ROI"`
	Score      *float64 `json:"score"`
	CurrentROI *float64 `json:"current_ROI"`

	URL     string         `json:"url"`
	Ranking map[string]int `json:"ranking"`
	Type    []string       `json:"type"`
	State   string         `json:"state"`

	TopGrandPrize     string   `json:"top_grand_prize"`
	InitialGrandPrize *int     `json:"initial_grand_prize"`
	CurrentGrandPrize *int     `json:"current_grand_prize"`
	GrandPrizeLeft    *float64 `json:"grand_prize_left"`
}

// HasGrandPrize reports whether a grand prize tier was identified.
func (t Ticket) HasGrandPrize() bool {
	return t.TopGrandPrize != ""
}
