package sites

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/scrape"
)

func TestRegistryDispatch(t *testing.T) {
	registry := NewRegistry()

	testCases := []struct {
		url  string
		site string
	}{
		{"https://dclottery.com/dc-scratchers/lucky-7s", "DC Lottery"},
		{"https://www.mdlottery.com/games/scratch-offs/cash", "Maryland Lottery"},
		{"https://www.valottery.com/games/scratch-off-games/jackpot", "Virginia Lottery"},
		{"https://www.texaslottery.com/export/sites/lottery/Games/Scratch_Offs/500", "Texas Lottery"},
		{"https://www.kslottery.com/Games/Scratch-Games/holiday", "Kansas Lottery"},
		{"https://www.sceducationlottery.com/Games/Scratch-Offs/1570", "South Carolina Lottery"},
	}
	for _, tc := range testCases {
		extractor, err := registry.Select(tc.url)
		require.NoError(t, err, tc.url)
		require.Equal(t, tc.site, extractor.SiteName(), tc.url)
	}
}

func TestRegistryUnsupported(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Select("https://www.flalottery.com/scratch-offs/gold-rush")
	require.ErrorIs(t, err, scrape.ErrUnsupportedSite)
}

func TestRegistryExtract(t *testing.T) {
	registry := NewRegistry()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(dcPage))
	if err != nil {
		t.Fatal(err)
	}

	data, err := registry.Extract(context.Background(), "https://dclottery.com/dc-scratchers/lucky-7s", doc)
	require.NoError(t, err)

	require.Equal(t, "DC Lottery", data.Site)
	require.Equal(t, "Lucky 7s", data.Title)
	require.Equal(t, 1255, data.InitialPrizes)
	require.Len(t, data.Prizes, 2)
}

func TestRegistryExtractUnsupported(t *testing.T) {
	registry := NewRegistry()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html></html>"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = registry.Extract(context.Background(), "https://example.com/not-a-lottery", doc)
	require.ErrorIs(t, err, scrape.ErrUnsupportedSite)
}

func TestRegistrySiteCount(t *testing.T) {
	require.Len(t, NewRegistry().Sites(), 18)
}
