package scrape

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("scratchroi.lib.scrape")

// PrizeTier is one row of a game's prize table. Amount stays a string
// since sites render it in wildly different shapes ("$1,000,000",
// "$500 (Taxes Paid)", "TICKET").
type PrizeTier struct {
	Amount    string `json:"amount"`
	Total     int    `json:"total"`
	Paid      int    `json:"paid"`
	Remaining int    `json:"remaining"`
}

// BasicInfo carries the header facts of a game page. Fields a site
// does not publish stay "".
type BasicInfo struct {
	Title     string `json:"title"`
	Price     string `json:"price"`
	GameNo    string `json:"game_no"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TopPrize  string `json:"top_prize"`
}

// Odds is the overall odds statement of a game. Probability is the
// derived win chance in percent, nil when the page carries no usable
// ratio.
type Odds struct {
	Display     string   `json:"odds"`
	Probability *float64 `json:"probability"`
}

// GameData is the raw merged output of one extracted game page.
type GameData struct {
	URL string `json:"url"`
	// Site is the human readable state name of the extractor that
	// produced this record.
	Site string `json:"site"`
	BasicInfo
	Odds
	Image  string      `json:"image"`
	Prizes []PrizeTier `json:"prizes"`
	// InitialPrizes is the sum of Total across all tiers.
	InitialPrizes int `json:"initial_prizes"`
}

// Extractor pulls structured game data out of one state site's HTML.
// Extraction never fails: a selector that doesn't match yields the
// zero value for that field and the rest of the page still parses.
type Extractor interface {
	// SiteName returns the state name, e.g. "Texas".
	SiteName() string
	// CanHandle reports whether this extractor understands the url.
	CanHandle(url string) bool
	ExtractBasicInfo(doc *goquery.Document) BasicInfo
	ExtractPrizes(doc *goquery.Document) []PrizeTier
	ExtractOdds(doc *goquery.Document) Odds
	ExtractImage(doc *goquery.Document) string
}

var ErrUnsupportedSite = errors.New("no extractor registered for url")

// Registry dispatches urls to extractors in registration order.
type Registry struct {
	extractors []Extractor
}

func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// Select returns the first registered extractor whose CanHandle
// matches. Registration order is the tiebreak when domains overlap.
func (r *Registry) Select(url string) (Extractor, error) {
	for _, e := range r.extractors {
		if e.CanHandle(url) {
			return e, nil
		}
	}
	return nil, ErrUnsupportedSite
}

// Sites returns the site names in registration order.
func (r *Registry) Sites() []string {
	names := make([]string, 0, len(r.extractors))
	for _, e := range r.extractors {
		names = append(names, e.SiteName())
	}
	return names
}

// Extract dispatches the document to the matching extractor and merges
// its partial outputs into one GameData record.
func (r *Registry) Extract(ctx context.Context, url string, doc *goquery.Document) (GameData, error) {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	extractor, err := r.Select(url)
	if err != nil {
		return GameData{}, err
	}
	span.SetAttributes(attribute.String("site", extractor.SiteName()))

	data := GameData{
		URL:       url,
		Site:      extractor.SiteName(),
		BasicInfo: extractor.ExtractBasicInfo(doc),
		Odds:      extractor.ExtractOdds(doc),
		Image:     extractor.ExtractImage(doc),
		Prizes:    extractor.ExtractPrizes(doc),
	}
	for _, tier := range data.Prizes {
		data.InitialPrizes += tier.Total
	}

	slog.DebugContext(
		ctx, "extracted game page",
		"site", data.Site,
		"title", data.Title,
		"tiers", len(data.Prizes),
	)
	return data, nil
}
