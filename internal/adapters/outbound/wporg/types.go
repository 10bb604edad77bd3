package wporg

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// searchResponse is the query_plugins payload subset this tool consumes.
type searchResponse struct {
	Info struct {
		Page    int `json:"page"`
		Pages   int `json:"pages"`
		Results int `json:"results"`
	} `json:"info"`
	Plugins []pluginRecord `json:"plugins"`
}

// pluginRecord mirrors one upstream plugin object. Only minimal shape is
// assumed; anything else missing degrades the derived score instead of
// failing the fetch.
type pluginRecord struct {
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	Version          string    `json:"version"`
	Author           string    `json:"author"`
	Rating           float64   `json:"rating"` // percent, 0-100
	NumRatings       int       `json:"num_ratings"`
	ActiveInstalls   flexCount `json:"active_installs"`
	LastUpdated      string    `json:"last_updated"`
	Tested           string    `json:"tested"`
	RequiresPHP      flexText  `json:"requires_php"`
	ShortDescription string    `json:"short_description"`

	// plugin_information reports unknown slugs as an error body.
	Error string `json:"error,omitempty"`
}

// flexCount accepts install counts as a JSON number or as the bucketed
// display string ("1,000,000+"), both of which upstream has been seen to emit.
type flexCount struct {
	N    int
	Text string
}

func (f *flexCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f.Text = s
		trimmed := strings.ReplaceAll(strings.TrimSuffix(strings.TrimSpace(s), "+"), ",", "")
		if n, err := strconv.Atoi(trimmed); err == nil {
			f.N = n
		}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.N = n
	return nil
}

// flexText tolerates fields that are sometimes `false` instead of a string
// (requires_php does this for old plugins).
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" || string(data) == "false" {
		*f = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexText(s)
	return nil
}

// valid is the minimal shape check: a record without a slug cannot be keyed,
// cached or scored and gets discarded.
func (r pluginRecord) valid() bool {
	return strings.TrimSpace(r.Slug) != ""
}

// toDomain normalizes one upstream record into the immutable snapshot the
// rest of the system works with.
func (r pluginRecord) toDomain() domain.PluginInfo {
	return domain.PluginInfo{
		Slug:               strings.TrimSpace(r.Slug),
		Name:               strings.TrimSpace(r.Name),
		Author:             stripTags(r.Author),
		Version:            r.Version,
		Rating:             percentToStars(r.Rating),
		NumRatings:         maxInt(r.NumRatings, 0),
		ActiveInstalls:     maxInt(r.ActiveInstalls.N, 0),
		ActiveInstallsText: r.ActiveInstalls.Text,
		LastUpdated:        r.LastUpdated,
		Tested:             r.Tested,
		RequiresPHP:        string(r.RequiresPHP),
		ShortDescription:   r.ShortDescription,
	}
}

// percentToStars converts the upstream 0-100 percent rating to the 0-5 one
// decimal scale the UI shows.
func percentToStars(percent float64) float64 {
	if percent <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return math.Round(percent/20*10) / 10
}

// stripTags removes the anchor markup upstream wraps author names in.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
