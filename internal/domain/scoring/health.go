package scoring

import (
	"time"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// Default health signal weights. Recency carries the most weight: an
// abandoned plugin with great historical ratings is still a liability.
const (
	healthRatingWeight   = 0.25
	healthInstallsWeight = 0.25
	healthRecencyWeight  = 0.30
	healthCompatWeight   = 0.20
)

// HealthSignals normalizes the maintenance-quality signals for one record at
// the given reference time. Pure: same record and time always yield the same
// signals.
func HealthSignals(p domain.PluginInfo, now time.Time, overrides map[string]float64, wpVersion string) []domain.Signal {
	return []domain.Signal{
		ratingSignal(p, effectiveWeight(overrides, "rating", healthRatingWeight)),
		installsSignal(p, effectiveWeight(overrides, "installs", healthInstallsWeight)),
		recencySignal(p, now, effectiveWeight(overrides, "recency", healthRecencyWeight)),
		compatSignal(p, wpVersion, effectiveWeight(overrides, "compatibility", healthCompatWeight)),
	}
}

// Health computes the 0-100 health score with default weights.
func Health(p domain.PluginInfo, now time.Time) int {
	return compute(HealthSignals(p, now, nil, ""))
}
