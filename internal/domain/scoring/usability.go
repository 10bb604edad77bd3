package scoring

import (
	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// Default usability signal weights. User ratings dominate; review and install
// volume mostly tell us how much to trust the average.
const (
	usabilityRatingWeight   = 0.50
	usabilityReviewsWeight  = 0.30
	usabilityInstallsWeight = 0.20
)

// UsabilitySignals normalizes the user-satisfaction signals for one record.
func UsabilitySignals(p domain.PluginInfo, overrides map[string]float64) []domain.Signal {
	return []domain.Signal{
		ratingSignal(p, effectiveWeight(overrides, "rating", usabilityRatingWeight)),
		reviewsSignal(p, effectiveWeight(overrides, "reviews", usabilityReviewsWeight)),
		installsSignal(p, effectiveWeight(overrides, "installs", usabilityInstallsWeight)),
	}
}

// Usability computes the 0-100 usability score with default weights.
func Usability(p domain.PluginInfo) int {
	return compute(UsabilitySignals(p, nil))
}
