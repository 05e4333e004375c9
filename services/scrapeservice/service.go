// Package scrapeservice ties the harvest pipeline together: fetch the
// configured game pages, extract them, evaluate metrics, rank, and
// serve the results over REST or as an xlsx workbook.
package scrapeservice

import (
	"context"
	_ "embed"
	"errors"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"scratchroi-backend/lib/configutil"
	"scratchroi-backend/lib/export"
	"scratchroi-backend/lib/fetch"
	"scratchroi-backend/lib/metrics"
	"scratchroi-backend/lib/ranking"
	"scratchroi-backend/lib/scrape"
	"scratchroi-backend/lib/scrape/sites"
	"scratchroi-backend/lib/stateconfig"
	"scratchroi-backend/lib/ticket"
)

var tracer = otel.Tracer("scratchroi.services.scrapeservice")

//go:embed urls.json5
var defaultURLs []byte

type urlsConfig struct {
	URLs []string `json:"urls"`
}

type Service struct {
	states     *stateconfig.Service
	fetcher    *fetch.Fetcher
	registry   *scrape.Registry
	calculator *metrics.Calculator
	engine     *ranking.Engine
	urls       []string
}

func NewService(states *stateconfig.Service) (*Service, error) {
	fetcher, err := fetch.NewFetcher(states.Settings())
	if err != nil {
		return nil, err
	}
	config, err := configutil.ReadWithDefault[urlsConfig](defaultURLs, "urls.json5")
	if err != nil {
		return nil, err
	}
	return &Service{
		states:     states,
		fetcher:    fetcher,
		registry:   sites.NewRegistry(),
		calculator: metrics.NewCalculator(),
		engine:     ranking.NewEngine(),
		urls:       config.URLs,
	}, nil
}

func (s *Service) States() *stateconfig.Service {
	return s.states
}

func (s *Service) SupportedSites() []string {
	return s.registry.Sites()
}

// IsURLSupported reports whether some extractor can handle the url.
func (s *Service) IsURLSupported(url string) bool {
	_, err := s.registry.Select(url)
	return err == nil
}

// scrapeURLs runs the full pipeline over the given pages: fetch,
// extract, evaluate. Expired games and per-page failures are dropped,
// the rest survive.
func (s *Service) scrapeURLs(ctx context.Context, urls []string) []ticket.Ticket {
	ctx, span := tracer.Start(ctx, "scrapeURLs")
	defer span.End()
	span.SetAttributes(attribute.Int("url_count", len(urls)))

	pages, err := s.fetcher.FetchAll(ctx, urls)
	if err != nil {
		slog.WarnContext(ctx, "some pages failed to fetch", "err", err)
	}

	var tickets []ticket.Ticket
	for _, page := range pages {
		data, err := s.registry.Extract(ctx, page.URL, page.Doc)
		if err != nil {
			slog.ErrorContext(ctx, "failed to extract page", "url", page.URL, "err", err)
			continue
		}
		t, err := s.calculator.Compute(ctx, data)
		if errors.Is(err, metrics.ErrTicketExpired) {
			slog.DebugContext(ctx, "skipping expired game", "url", page.URL)
			continue
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to evaluate game", "url", page.URL, "err", err)
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets
}

// ScrapeAll harvests the whole configured url list and ranks the
// results.
func (s *Service) ScrapeAll(ctx context.Context) []ticket.Ticket {
	ctx, span := tracer.Start(ctx, "ScrapeAll")
	defer span.End()

	return s.engine.RankAll(s.scrapeURLs(ctx, s.urls))
}

var ErrUnknownState = errors.New("unknown or inactive state")

// ScrapeState harvests only the configured urls belonging to one
// state.
func (s *Service) ScrapeState(ctx context.Context, stateKey string) ([]ticket.Ticket, error) {
	ctx, span := tracer.Start(ctx, "ScrapeState")
	defer span.End()
	span.SetAttributes(attribute.String("state", stateKey))

	if !s.states.IsStateActive(stateKey) {
		return nil, ErrUnknownState
	}

	var urls []string
	for _, url := range s.urls {
		if s.states.StateKeyFromURL(url) == stateKey {
			urls = append(urls, url)
		}
	}
	return s.engine.RankAll(s.scrapeURLs(ctx, urls)), nil
}

// ScrapeSingle harvests one game page. It fails closed on urls no
// extractor understands and on expired games.
func (s *Service) ScrapeSingle(ctx context.Context, url string) (ticket.Ticket, error) {
	ctx, span := tracer.Start(ctx, "ScrapeSingle")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	if _, err := s.registry.Select(url); err != nil {
		return ticket.Ticket{}, err
	}

	page, err := s.fetcher.FetchOne(ctx, url)
	if err != nil {
		return ticket.Ticket{}, err
	}
	data, err := s.registry.Extract(ctx, page.URL, page.Doc)
	if err != nil {
		return ticket.Ticket{}, err
	}
	return s.calculator.Compute(ctx, data)
}

// ExportAll harvests everything and streams the workbook to w.
func (s *Service) ExportAll(ctx context.Context, w io.Writer) error {
	return export.Write(s.ScrapeAll(ctx), w)
}

// ExportState harvests one state and streams the workbook to w.
func (s *Service) ExportState(ctx context.Context, stateKey string, w io.Writer) error {
	tickets, err := s.ScrapeState(ctx, stateKey)
	if err != nil {
		return err
	}
	return export.Write(tickets, w)
}
