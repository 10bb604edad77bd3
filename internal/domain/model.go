package domain

import (
	"strconv"
	"strings"
	"time"
)

// PluginInfo is an immutable snapshot of one plugin's WordPress.org metadata
// at fetch time. Optional fields stay zero-valued when upstream omits them;
// scoring treats those signals as unavailable rather than as zero.
type PluginInfo struct {
	Slug               string  `json:"slug"`
	Name               string  `json:"name"`
	Author             string  `json:"author,omitempty"`
	Version            string  `json:"version,omitempty"`
	Rating             float64 `json:"rating"`      // 0-5, one decimal
	NumRatings         int     `json:"num_ratings"` // non-negative
	ActiveInstalls     int     `json:"active_installs"`
	ActiveInstallsText string  `json:"active_installs_text,omitempty"` // bucketed, e.g. "1,000,000+"
	LastUpdated        string  `json:"last_updated,omitempty"`         // loose upstream date string
	Tested             string  `json:"tested,omitempty"`               // WordPress version, may be absent
	RequiresPHP        string  `json:"requires_php,omitempty"`         // PHP version, may be absent
	ShortDescription   string  `json:"short_description,omitempty"`
}

// Installs returns the active install count, preferring the numeric field and
// falling back to the bucketed text form ("1,000,000+"). The second return is
// false when neither is usable.
func (p PluginInfo) Installs() (int, bool) {
	if p.ActiveInstalls > 0 {
		return p.ActiveInstalls, true
	}
	s := strings.TrimSpace(p.ActiveInstallsText)
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// updatedLayouts covers the date formats the Plugin API has been observed to
// return; the format is not guaranteed upstream.
var updatedLayouts = []string{
	"2006-01-02 3:04pm MST",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// UpdatedAt parses the loose last-updated string. The second return is false
// when the field is absent or unparseable.
func (p PluginInfo) UpdatedAt() (time.Time, bool) {
	s := strings.TrimSpace(p.LastUpdated)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range updatedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Signal is one normalized scoring input. Value is in [0,1]; Available is
// false when the underlying metadata field is missing or unparseable, in
// which case the signal is excluded from the weighted average.
type Signal struct {
	Name      string  `json:"name"`
	Value     float64 `json:"value"`
	Weight    float64 `json:"weight"`
	Available bool    `json:"available"`
	Detail    string  `json:"detail,omitempty"`
}

// ScoreResult holds the derived health and usability scores for one plugin,
// with the per-signal breakdown that produced them.
type ScoreResult struct {
	Slug      string   `json:"slug"`
	Health    int      `json:"health_score"`    // 0-100
	Usability int      `json:"usability_score"` // 0-100
	Signals   []Signal `json:"signals,omitempty"`
}

func (r ScoreResult) HealthGrade() string    { return GradeFor(r.Health) }
func (r ScoreResult) UsabilityGrade() string { return GradeFor(r.Usability) }

// ScoredPlugin pairs a metadata snapshot with its derived scores. It is the
// unit that gets cached and served; scores are never persisted apart from
// their source record.
type ScoredPlugin struct {
	Plugin PluginInfo  `json:"plugin"`
	Score  ScoreResult `json:"score"`
}

func GradeFor(score int) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func BadgeColor(score int) string {
	switch {
	case score >= 90:
		return "brightgreen"
	case score >= 80:
		return "green"
	case score >= 70:
		return "yellow"
	case score >= 60:
		return "orange"
	case score >= 50:
		return "red"
	default:
		return "critical"
	}
}
