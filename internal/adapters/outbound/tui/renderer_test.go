package tui_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/pluginpulse/pluginpulse/internal/adapters/outbound/tui"
	"github.com/pluginpulse/pluginpulse/internal/domain"
)

func sample() domain.ScoredPlugin {
	return domain.ScoredPlugin{
		Plugin: domain.PluginInfo{
			Slug: "good-seo", Name: "Good SEO", Author: "Example Co",
			Rating: 4.5, NumRatings: 900, ActiveInstallsText: "100,000+",
			LastUpdated: "2026-07-22",
		},
		Score: domain.ScoreResult{
			Slug: "good-seo", Health: 90, Usability: 84,
			Signals: []domain.Signal{
				{Name: "health.rating", Value: 0.9, Weight: 0.25, Available: true, Detail: "4.5/5 from 900 ratings"},
				{Name: "health.compatibility", Weight: 0.20, Detail: "compatibility unknown"},
			},
		},
	}
}

func TestRenderList(t *testing.T) {
	out := tui.RenderList([]domain.ScoredPlugin{sample()}, "", false)

	assert.Contains(t, out, "Good SEO")
	assert.Contains(t, out, "A+")
	assert.Contains(t, out, "100,000+")
	assert.Contains(t, out, "pluginpulse")
}

func TestRenderList_EmptyWithNotice(t *testing.T) {
	out := tui.RenderList(nil, "plugin directory unreachable", true)

	assert.Contains(t, out, "No plugins found")
	assert.Contains(t, out, "unreachable")
	assert.Contains(t, out, "stale")
}

func TestRenderList_TruncatesLongNamesOnRunes(t *testing.T) {
	sp := sample()
	sp.Plugin.Name = strings.Repeat("ä", 40)

	out := tui.RenderList([]domain.ScoredPlugin{sp}, "", false)

	assert.True(t, utf8.ValidString(out), "truncation must not split a rune")
	assert.Contains(t, out, strings.Repeat("ä", 29)+"…")
	assert.NotContains(t, out, strings.Repeat("ä", 30))
}

func TestRenderScorecard(t *testing.T) {
	out := tui.RenderScorecard(sample())

	assert.Contains(t, out, "good-seo")
	assert.Contains(t, out, "health.rating")
	assert.Contains(t, out, "90")
	assert.Contains(t, out, "n/a", "unavailable signals are shown as n/a")
}
