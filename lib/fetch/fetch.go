// Package fetch downloads lottery game pages in parallel batches.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http/cookiejar"
	"os"
	"sync"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"scratchroi-backend/lib/restyutil"
	"scratchroi-backend/lib/stateconfig"
	"scratchroi-backend/lib/telemetry"
)

var tracer = otel.Tracer("scratchroi.lib.fetch")

// Page is one successfully downloaded and parsed game page.
type Page struct {
	URL string
	Doc *goquery.Document
}

type Fetcher struct {
	client    *resty.Client
	batchSize int
	delay     time.Duration
}

// NewFetcher builds a fetcher from the harvest settings. Lottery sites
// sit behind Cloudflare, so the transport carries the bypass and a
// desktop browser user agent.
func NewFetcher(settings stateconfig.Settings) (*Fetcher, error) {
	client := resty.New()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", settings.UserAgent)
	client.SetTimeout(time.Second * time.Duration(settings.DefaultTimeout))
	client.SetRetryCount(settings.RetryAttempts)
	client.SetRetryWaitTime(time.Second)

	telemetry.InstrumentResty(client, "fetch/http")
	if dir := os.Getenv("SCRATCHROI_HTTP_DEBUG_DIR"); dir != "" {
		restyutil.InstrumentClient(client, tracer, restyutil.NewFilesystemOutput(dir))
	}

	batchSize := settings.MaxConcurrentRequests
	if batchSize <= 0 {
		batchSize = 10
	}

	return &Fetcher{
		client:    client,
		batchSize: batchSize,
		delay:     time.Duration(settings.DelayBetweenRequests) * time.Microsecond,
	}, nil
}

// FetchOne downloads and parses a single page.
func (f *Fetcher) FetchOne(ctx context.Context, url string) (Page, error) {
	ctx, span := tracer.Start(ctx, "FetchOne")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return Page{}, err
	}
	if res.StatusCode() >= 400 {
		return Page{}, fmt.Errorf("fetch %s: status %d", url, res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return Page{}, err
	}
	return Page{URL: url, Doc: doc}, nil
}

// FetchAll downloads every URL in fixed-size batches, pausing between
// batches. A failed URL is logged and skipped, so the returned pages
// can be shorter than the input. The joined error reports everything
// that failed.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) ([]Page, error) {
	ctx, span := tracer.Start(ctx, "FetchAll")
	defer span.End()
	span.SetAttributes(attribute.Int("url_count", len(urls)))

	var pages []Page
	var errList []error
	var lock sync.Mutex

	for start := 0; start < len(urls); start += f.batchSize {
		if start > 0 && f.delay > 0 {
			time.Sleep(f.delay)
		}

		end := min(start+f.batchSize, len(urls))
		var wg sync.WaitGroup
		for _, url := range urls[start:end] {
			url := url
			wg.Add(1)
			go func() {
				defer wg.Done()

				page, err := f.FetchOne(ctx, url)
				if err != nil {
					slog.ErrorContext(ctx, "failed to fetch page", "url", url, "err", err)
					lock.Lock()
					errList = append(errList, fmt.Errorf("%s: %w", url, err))
					lock.Unlock()
					return
				}

				lock.Lock()
				pages = append(pages, page)
				lock.Unlock()
			}()
		}
		wg.Wait()
	}

	return pages, errors.Join(errList...)
}
