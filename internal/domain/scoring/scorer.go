package scoring

import (
	"time"

	"github.com/pluginpulse/pluginpulse/internal/domain"
)

// Scorer computes both scores for a record. The zero value uses default
// weights and the built-in current WordPress version.
type Scorer struct {
	HealthWeights    map[string]float64
	UsabilityWeights map[string]float64
	WPVersion        string
}

// NewScorer builds a Scorer from config overrides.
func NewScorer(cfg domain.Config) Scorer {
	return Scorer{
		HealthWeights:    cfg.Weights.Health,
		UsabilityWeights: cfg.Weights.Usability,
		WPVersion:        cfg.WPVersion,
	}
}

// Score derives both scores and the combined signal breakdown for one record
// at the given reference time. Never fails: missing fields degrade precision,
// a fully empty record scores NeutralScore.
func (s Scorer) Score(p domain.PluginInfo, now time.Time) domain.ScoreResult {
	healthSignals := HealthSignals(p, now, s.HealthWeights, s.WPVersion)
	usabilitySignals := UsabilitySignals(p, s.UsabilityWeights)

	breakdown := make([]domain.Signal, 0, len(healthSignals)+len(usabilitySignals))
	for _, sig := range healthSignals {
		sig.Name = "health." + sig.Name
		breakdown = append(breakdown, sig)
	}
	for _, sig := range usabilitySignals {
		sig.Name = "usability." + sig.Name
		breakdown = append(breakdown, sig)
	}

	return domain.ScoreResult{
		Slug:      p.Slug,
		Health:    compute(healthSignals),
		Usability: compute(usabilitySignals),
		Signals:   breakdown,
	}
}
