package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluginpulse/pluginpulse/internal/adapters/inbound/httpapi"
	"github.com/pluginpulse/pluginpulse/internal/adapters/outbound/cache"
	"github.com/pluginpulse/pluginpulse/internal/application"
	"github.com/pluginpulse/pluginpulse/internal/domain"
)

type stubRegistry struct {
	searchErr error
	infoErr   error
}

func (s *stubRegistry) Search(ctx context.Context, q domain.SearchQuery) ([]domain.PluginInfo, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return []domain.PluginInfo{
		{
			Slug: "good-seo", Name: "Good SEO", Rating: 4.5, NumRatings: 900,
			ActiveInstalls: 100000, LastUpdated: time.Now().AddDate(0, 0, -10).Format("2006-01-02"),
			Tested: "6.8",
		},
		{Slug: "stale-widget", Name: "Stale Widget", ActiveInstallsText: "10+", LastUpdated: "2021-08-01"},
	}, nil
}

func (s *stubRegistry) Info(ctx context.Context, slug string) (*domain.PluginInfo, error) {
	if s.infoErr != nil {
		return nil, s.infoErr
	}
	if slug != "good-seo" {
		return nil, domain.ErrPluginNotFound
	}
	return &domain.PluginInfo{
		Slug: "good-seo", Name: "Good SEO", Rating: 4.5, NumRatings: 900,
		ActiveInstalls: 100000, LastUpdated: time.Now().AddDate(0, 0, -10).Format("2006-01-02"),
		Tested: "6.8",
	}, nil
}

func newTestServer(registry domain.RegistryClient) *httptest.Server {
	cfg := domain.DefaultConfig()
	store := cache.NewMemory()
	srv := httpapi.New(
		application.NewSearchService(registry, store, cfg),
		application.NewScoreService(registry, store, cfg),
	)
	return httptest.NewServer(srv.Handler())
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestList(t *testing.T) {
	srv := newTestServer(&stubRegistry{})
	defer srv.Close()

	var body struct {
		Plugins []struct {
			Slug           string `json:"slug"`
			HealthScore    int    `json:"health_score"`
			UsabilityScore int    `json:"usability_score"`
			HealthGrade    string `json:"health_grade"`
			ActiveInstalls string `json:"active_installs"`
		} `json:"plugins"`
		Cached bool `json:"cached"`
	}
	status := getJSON(t, srv.URL+"/api/v1/plugins?search=seo", &body)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Plugins, 2)
	assert.Equal(t, "good-seo", body.Plugins[0].Slug)
	assert.GreaterOrEqual(t, body.Plugins[0].HealthScore, 80)
	assert.NotEmpty(t, body.Plugins[0].HealthGrade)
	assert.False(t, body.Cached)

	// Second request hits the cache.
	status = getJSON(t, srv.URL+"/api/v1/plugins?search=seo", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, body.Cached)
}

func TestList_FilterSortParams(t *testing.T) {
	srv := newTestServer(&stubRegistry{})
	defer srv.Close()

	var body struct {
		Plugins []struct {
			Slug string `json:"slug"`
		} `json:"plugins"`
	}
	status := getJSON(t, srv.URL+"/api/v1/plugins?search=seo&sort=health&min_health=40", &body)

	assert.Equal(t, http.StatusOK, status)
	require.Len(t, body.Plugins, 1)
	assert.Equal(t, "good-seo", body.Plugins[0].Slug)
}

func TestList_BadParams(t *testing.T) {
	srv := newTestServer(&stubRegistry{})
	defer srv.Close()

	var body struct {
		Error string `json:"error"`
	}
	status := getJSON(t, srv.URL+"/api/v1/plugins?search=seo&per_page=lots", &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Error, "per_page")

	status = getJSON(t, srv.URL+"/api/v1/plugins?search=seo&sort=velocity", &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Error, "unknown sort key")
}

func TestList_UpstreamDownIsSoftFailure(t *testing.T) {
	srv := newTestServer(&stubRegistry{searchErr: domain.ErrUpstreamUnavailable})
	defer srv.Close()

	var body struct {
		Plugins []any  `json:"plugins"`
		Notice  string `json:"notice"`
	}
	status := getJSON(t, srv.URL+"/api/v1/plugins?search=seo", &body)

	assert.Equal(t, http.StatusOK, status, "unavailability is a notice, not an HTTP failure")
	assert.Empty(t, body.Plugins)
	assert.Contains(t, body.Notice, "unreachable")
}

func TestList_MalformedUpstreamIsBadGateway(t *testing.T) {
	srv := newTestServer(&stubRegistry{searchErr: domain.ErrUpstreamMalformed})
	defer srv.Close()

	var body struct {
		Error string `json:"error"`
	}
	status := getJSON(t, srv.URL+"/api/v1/plugins?search=seo", &body)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.NotEmpty(t, body.Error)
}

func TestPlugin(t *testing.T) {
	srv := newTestServer(&stubRegistry{})
	defer srv.Close()

	var body struct {
		Plugin struct {
			Slug        string          `json:"slug"`
			HealthScore int             `json:"health_score"`
			Signals     []domain.Signal `json:"signals"`
		} `json:"plugin"`
	}
	status := getJSON(t, srv.URL+"/api/v1/plugins/good-seo", &body)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "good-seo", body.Plugin.Slug)
	assert.NotEmpty(t, body.Plugin.Signals, "single-plugin view always includes the breakdown")
}

func TestPlugin_NotFound(t *testing.T) {
	srv := newTestServer(&stubRegistry{})
	defer srv.Close()

	var body struct {
		Error string `json:"error"`
	}
	status := getJSON(t, srv.URL+"/api/v1/plugins/no-such-plugin", &body)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(&stubRegistry{})
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/plugins", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubRegistry{})
	defer srv.Close()

	var body map[string]string
	status := getJSON(t, srv.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}
