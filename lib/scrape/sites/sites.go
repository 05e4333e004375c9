// Package sites holds one extractor per supported lottery site. Each
// file mirrors the markup of one state's scratcher pages; selector
// misses degrade to zero values so a partial page still yields a
// usable record.
package sites

import (
	"github.com/PuerkitoBio/goquery"

	"scratchroi-backend/lib/scrape"
)

// NewRegistry returns the full extractor set. Order matters: the
// dispatcher picks the first CanHandle match.
func NewRegistry() *scrape.Registry {
	return scrape.NewRegistry(
		DC{},
		Maryland{},
		Virginia{},
		Arkansas{},
		California{},
		Connecticut{},
		Indiana{},
		newKansas(),
		newKentucky(),
		newLouisiana(),
		Mississippi{},
		Michigan{},
		Minnesota{},
		NewJersey{},
		NorthCarolina{},
		SouthCarolina{},
		Texas{},
		newWestVirginia(),
	)
}

// firstTable walks preferred table selectors and falls back to the
// first table on the page. Game pages often carry several tables and
// only the first one is the prize breakdown.
func firstTable(doc *goquery.Document, selectors ...string) *goquery.Selection {
	for _, s := range selectors {
		table := doc.Find(s).First()
		if table.Length() > 0 {
			return table
		}
	}
	return doc.Find("table").First()
}
