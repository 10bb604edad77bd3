package scoring_test

import (
	"testing"
	"time"

	"github.com/pluginpulse/pluginpulse/internal/domain"
	"github.com/pluginpulse/pluginpulse/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d int) string {
	return now.AddDate(0, 0, -d).Format("2006-01-02")
}

func healthyPlugin() domain.PluginInfo {
	return domain.PluginInfo{
		Slug:               "good-seo",
		Name:               "Good SEO",
		Rating:             4.5,
		NumRatings:         900,
		ActiveInstallsText: "100,000+",
		LastUpdated:        daysAgo(10),
		Tested:             scoring.DefaultWPVersion,
		RequiresPHP:        "7.4",
	}
}

func TestHealth_HighBand(t *testing.T) {
	score := scoring.Health(healthyPlugin(), now)
	assert.GreaterOrEqual(t, score, 80, "well-maintained plugin should land in the high band")
	assert.LessOrEqual(t, score, 100)
}

func TestHealth_LowBand(t *testing.T) {
	p := domain.PluginInfo{
		Slug:               "stale-widget",
		Name:               "Stale Widget",
		ActiveInstallsText: "10+",
		LastUpdated:        now.AddDate(-5, 0, 0).Format("2006-01-02"),
	}
	score := scoring.Health(p, now)
	assert.LessOrEqual(t, score, 30, "abandoned unrated plugin should land in the low band")
	assert.GreaterOrEqual(t, score, 0)
}

func TestHealth_Deterministic(t *testing.T) {
	p := healthyPlugin()
	first := scoring.Health(p, now)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, scoring.Health(p, now))
	}
}

func TestScore_EmptyRecordIsNeutral(t *testing.T) {
	result := scoring.Scorer{}.Score(domain.PluginInfo{Slug: "mystery"}, now)
	assert.Equal(t, scoring.NeutralScore, result.Health)
	assert.Equal(t, scoring.NeutralScore, result.Usability)
	for _, sig := range result.Signals {
		assert.False(t, sig.Available, "signal %s should be unavailable", sig.Name)
	}
}

func TestHealthSignals_MissingFieldsExcluded(t *testing.T) {
	p := domain.PluginInfo{
		Slug:        "partial",
		LastUpdated: daysAgo(5),
	}
	signals := scoring.HealthSignals(p, now, nil, "")
	require.Len(t, signals, 4)

	byName := make(map[string]domain.Signal)
	for _, s := range signals {
		byName[s.Name] = s
	}
	assert.False(t, byName["rating"].Available)
	assert.False(t, byName["installs"].Available)
	assert.False(t, byName["compatibility"].Available)
	require.True(t, byName["recency"].Available)
	assert.Equal(t, 1.0, byName["recency"].Value)

	// Only the recency signal is usable, so it decides the score alone.
	assert.Equal(t, 100, scoring.Health(p, now))
}

func TestHealthSignals_ValuesBounded(t *testing.T) {
	records := []domain.PluginInfo{
		healthyPlugin(),
		{Slug: "a"},
		{Slug: "b", Rating: 5, NumRatings: 1 << 30, ActiveInstalls: 1 << 30, LastUpdated: daysAgo(0), Tested: "99.9"},
		{Slug: "c", Rating: 0.1, NumRatings: 1, ActiveInstallsText: "garbage", LastUpdated: "not a date", Tested: "abc"},
	}
	for _, p := range records {
		for _, s := range scoring.HealthSignals(p, now, nil, "") {
			assert.GreaterOrEqual(t, s.Value, 0.0, "%s/%s", p.Slug, s.Name)
			assert.LessOrEqual(t, s.Value, 1.0, "%s/%s", p.Slug, s.Name)
		}
		h := scoring.Health(p, now)
		assert.GreaterOrEqual(t, h, 0)
		assert.LessOrEqual(t, h, 100)
		u := scoring.Usability(p)
		assert.GreaterOrEqual(t, u, 0)
		assert.LessOrEqual(t, u, 100)
	}
}

func TestHealth_OutdatedTestedVersionScoresLower(t *testing.T) {
	fresh := healthyPlugin()
	stale := healthyPlugin()
	stale.Tested = "5.9"

	assert.Greater(t, scoring.Health(fresh, now), scoring.Health(stale, now))
}

func TestHealth_RecencyDecay(t *testing.T) {
	recent := healthyPlugin()
	aging := healthyPlugin()
	aging.LastUpdated = daysAgo(400)
	dead := healthyPlugin()
	dead.LastUpdated = daysAgo(900)

	assert.Greater(t, scoring.Health(recent, now), scoring.Health(aging, now))
	assert.Greater(t, scoring.Health(aging, now), scoring.Health(dead, now))
}

func TestUsability_RatingDominates(t *testing.T) {
	loved := domain.PluginInfo{Slug: "loved", Rating: 4.8, NumRatings: 2000, ActiveInstalls: 50000}
	hated := domain.PluginInfo{Slug: "hated", Rating: 1.5, NumRatings: 2000, ActiveInstalls: 50000}

	assert.Greater(t, scoring.Usability(loved), scoring.Usability(hated))
	assert.GreaterOrEqual(t, scoring.Usability(loved), 80)
}

func TestScorer_WeightOverrides(t *testing.T) {
	p := healthyPlugin()
	p.LastUpdated = daysAgo(900) // recency bottoms out

	defaults := scoring.Scorer{}.Score(p, now)
	recencyHeavy := scoring.Scorer{
		HealthWeights: map[string]float64{"recency": 0.9, "rating": 0.04, "installs": 0.03, "compatibility": 0.03},
	}.Score(p, now)

	assert.Less(t, recencyHeavy.Health, defaults.Health,
		"weighting the dead recency signal up should drag the score down")
	// Usability weights untouched, so that score is unchanged.
	assert.Equal(t, defaults.Usability, recencyHeavy.Usability)
}

func TestScorer_BreakdownCoversBothScores(t *testing.T) {
	result := scoring.NewScorer(domain.DefaultConfig()).Score(healthyPlugin(), now)
	require.Len(t, result.Signals, 7)

	names := make([]string, 0, len(result.Signals))
	for _, s := range result.Signals {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "health.recency")
	assert.Contains(t, names, "health.compatibility")
	assert.Contains(t, names, "usability.reviews")
}

func TestGradeBands(t *testing.T) {
	assert.Equal(t, "A+", domain.GradeFor(95))
	assert.Equal(t, "A", domain.GradeFor(80))
	assert.Equal(t, "B", domain.GradeFor(70))
	assert.Equal(t, "C", domain.GradeFor(60))
	assert.Equal(t, "D", domain.GradeFor(50))
	assert.Equal(t, "F", domain.GradeFor(30))
}
