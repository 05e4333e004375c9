package scrapeservice

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"scratchroi-backend/lib/stateconfig"
	"scratchroi-backend/lib/telemetry"
)

func newTestService(t *testing.T) *Service {
	t.Cleanup(telemetry.SetupForTesting("test:services/scrapeservice"))
	gin.SetMode(gin.TestMode)

	states, err := stateconfig.Load()
	if err != nil {
		t.Fatal(err)
	}
	svc, err := NewService(states)
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func TestSupportedSites(t *testing.T) {
	svc := newTestService(t)

	require.Len(t, svc.SupportedSites(), 18)
	require.True(t, svc.IsURLSupported("https://dclottery.com/dc-scratchers/lucky-7s"))
	require.False(t, svc.IsURLSupported("https://www.flalottery.com/scratch-offs/gold"))
}

func TestSupportedSitesRoute(t *testing.T) {
	router := NewRouter(newTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/supported-sites", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		SupportedSites []string `json:"supported_sites"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Len(t, body.SupportedSites, 18)
	require.Contains(t, body.SupportedSites, "Texas Lottery")
}

func TestScrapeSingleRejectsUnsupportedURL(t *testing.T) {
	router := NewRouter(newTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/scrape-single?url=https://www.flalottery.com/scratch-offs/gold", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "not supported")
}

func TestScrapeSingleRequiresURL(t *testing.T) {
	router := NewRouter(newTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/scrape-single", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScrapeStateRejectsUnknownState(t *testing.T) {
	router := NewRouter(newTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/scrape-state/florida", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateURLRoute(t *testing.T) {
	router := NewRouter(newTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost, "/api/validate-url",
		strings.NewReader(`{"url": "https://www.valottery.com/games/scratch-off-games/jewel"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"key":"virginia"`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(
		http.MethodPost, "/api/validate-url",
		strings.NewReader(`{"url": "https://example.com/nope"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatesRoute(t *testing.T) {
	router := NewRouter(newTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/states", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Stats stateconfig.Stats `json:"stats"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, 15, body.Stats.ActiveStates)
}

func TestStatesURLsRoute(t *testing.T) {
	router := NewRouter(newTestService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/states/urls", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		URLs map[string]stateconfig.GamesListEntry `json:"urls"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, stateconfig.GamesListEntry{
		URL:      "https://www.valottery.com/games/scratch-off-games",
		Name:     "Virginia Lottery",
		StateKey: "virginia",
	}, body.URLs["virginia"])
}
