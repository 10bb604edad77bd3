package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// NeutralScore is returned when a record carries zero usable signals.
// A sparse record is unknown quality, not bad quality.
const NeutralScore = 50

// DefaultWPVersion is the WordPress release compatibility is judged against
// when none is configured.
const DefaultWPVersion = "6.8"

const (
	maxRating = 5.0

	// Install counts span eight orders of magnitude, so volume is scored on
	// a log10 scale capped at 10 million active installs.
	installsLogCap = 7.0

	// Review counts cap at 10 thousand; beyond that more reviews say
	// nothing new about usability.
	reviewsLogCap = 4.0

	// Recency: full credit within 90 days, linear decay to zero at two years.
	recencyFullDays = 90
	recencyZeroDays = 730

	// Each WordPress release behind the current one costs 15% of the
	// compatibility signal.
	releasePenalty = 0.15
)

func ratingSignal(p domain.PluginInfo, weight float64) domain.Signal {
	s := domain.Signal{Name: "rating", Weight: weight}
	if p.NumRatings <= 0 || p.Rating <= 0 {
		s.Detail = "no ratings"
		return s
	}
	s.Available = true
	s.Value = clamp01(p.Rating / maxRating)
	s.Detail = fmt.Sprintf("%.1f/5 from %d ratings", p.Rating, p.NumRatings)
	return s
}

func installsSignal(p domain.PluginInfo, weight float64) domain.Signal {
	s := domain.Signal{Name: "installs", Weight: weight}
	n, ok := p.Installs()
	if !ok {
		s.Detail = "install count unavailable"
		return s
	}
	s.Available = true
	s.Value = clamp01(math.Log10(float64(n)) / installsLogCap)
	s.Detail = fmt.Sprintf("%d+ active installs", n)
	return s
}

func reviewsSignal(p domain.PluginInfo, weight float64) domain.Signal {
	s := domain.Signal{Name: "reviews", Weight: weight}
	if p.NumRatings <= 0 {
		s.Detail = "no reviews"
		return s
	}
	s.Available = true
	s.Value = clamp01(math.Log10(float64(p.NumRatings)) / reviewsLogCap)
	s.Detail = fmt.Sprintf("%d reviews", p.NumRatings)
	return s
}

func recencySignal(p domain.PluginInfo, now time.Time, weight float64) domain.Signal {
	s := domain.Signal{Name: "recency", Weight: weight}
	updated, ok := p.UpdatedAt()
	if !ok {
		s.Detail = "last-updated date unavailable"
		return s
	}
	s.Available = true
	days := now.Sub(updated).Hours() / 24
	switch {
	case days <= recencyFullDays:
		s.Value = 1.0
	case days >= recencyZeroDays:
		s.Value = 0.0
	default:
		s.Value = 1.0 - (days-recencyFullDays)/(recencyZeroDays-recencyFullDays)
	}
	s.Detail = fmt.Sprintf("last updated %.0f days ago", days)
	return s
}

func compatSignal(p domain.PluginInfo, wpVersion string, weight float64) domain.Signal {
	s := domain.Signal{Name: "compatibility", Weight: weight}
	if wpVersion == "" {
		wpVersion = DefaultWPVersion
	}

	wpVal, wpOK := testedValue(p.Tested, wpVersion)
	phpVal, phpOK := requiresPHPValue(p.RequiresPHP)

	switch {
	case wpOK && phpOK:
		s.Available = true
		s.Value = clamp01(0.85*wpVal + 0.15*phpVal)
		s.Detail = fmt.Sprintf("tested up to %s, requires PHP %s", p.Tested, p.RequiresPHP)
	case wpOK:
		s.Available = true
		s.Value = clamp01(wpVal)
		s.Detail = fmt.Sprintf("tested up to %s", p.Tested)
	case phpOK:
		s.Available = true
		s.Value = clamp01(phpVal)
		s.Detail = fmt.Sprintf("requires PHP %s (no tested-up-to version)", p.RequiresPHP)
	default:
		s.Detail = "compatibility unknown"
	}
	return s
}

// testedValue rates a tested-up-to version against the current WordPress
// release: current or newer is full credit, each release behind costs
// releasePenalty.
func testedValue(tested, current string) (float64, bool) {
	tMaj, tMin, ok := parseVersion(tested)
	if !ok {
		return 0, false
	}
	cMaj, cMin, ok := parseVersion(current)
	if !ok {
		return 0, false
	}
	behind := (cMaj*10 + cMin) - (tMaj*10 + tMin)
	if behind <= 0 {
		return 1.0, true
	}
	v := 1.0 - releasePenalty*float64(behind)
	if v < 0 {
		v = 0
	}
	return v, true
}

func requiresPHPValue(requires string) (float64, bool) {
	maj, _, ok := parseVersion(requires)
	if !ok {
		return 0, false
	}
	switch {
	case maj >= 8:
		return 1.0, true
	case maj == 7:
		return 0.8, true
	default:
		return 0.4, true
	}
}

// parseVersion extracts major and minor from a loose version string like
// "6.8", "6.8.1" or "7.4+". Patch levels and suffixes are ignored.
func parseVersion(v string) (major, minor int, ok bool) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "+")
	if v == "" {
		return 0, 0, false
	}
	parts := strings.Split(v, ".")
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return 0, 0, false
	}
	if len(parts) > 1 {
		if m, err := strconv.Atoi(parts[1]); err == nil && m >= 0 {
			minor = m
		}
	}
	return major, minor, true
}

// compute collapses signals into a 0-100 score. Unavailable signals are
// excluded and the remaining weights renormalized, so sparse records are not
// penalized for what upstream never reported. Zero available signals yield
// NeutralScore.
func compute(signals []domain.Signal) int {
	var weighted, totalWeight float64
	for _, s := range signals {
		if !s.Available {
			continue
		}
		weighted += s.Value * s.Weight
		totalWeight += s.Weight
	}
	if totalWeight == 0 {
		return NeutralScore
	}
	score := int(math.Round(weighted / totalWeight * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func effectiveWeight(overrides map[string]float64, name string, def float64) float64 {
	if w, ok := overrides[name]; ok {
		return w
	}
	return def
}
