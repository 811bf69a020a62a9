package adaptive

import "github.com/dabin/mathmission/internal/models"

// Band is an inclusive difficulty range constraining catalog selection.
type Band struct {
	Min int
	Max int
}

// ColdStartBand is served when a user has too little recent history to
// estimate from.
var ColdStartBand = Band{Min: 2, Max: 4}

// minScoredSamples is how many scored answers the estimator needs
// before trusting the average.
const minScoredSamples = 3

// EstimateBand maps recent performance to a recommended difficulty
// band. Missing or sparse data degrades to the cold-start band; this
// never fails.
func EstimateBand(stats models.ScoreStats) Band {
	if stats.Count < minScoredSamples {
		return ColdStartBand
	}
	switch {
	case stats.Average >= 90:
		return Band{Min: 4, Max: 7}
	case stats.Average >= 75:
		return Band{Min: 3, Max: 6}
	case stats.Average >= 60:
		return Band{Min: 2, Max: 5}
	default:
		return Band{Min: 1, Max: 4}
	}
}

// AverageDifficulty is the midpoint of the band.
func (b Band) AverageDifficulty() float64 {
	return float64(b.Min+b.Max) / 2
}

// TargetScore sets the expected score inversely to difficulty: harder
// bands get a more forgiving target.
func (b Band) TargetScore() int {
	avg := b.AverageDifficulty()
	switch {
	case avg <= 3:
		return 85
	case avg <= 5:
		return 80
	case avg <= 7:
		return 75
	default:
		return 70
	}
}

// tierNames maps band envelopes to display tiers, checked in order.
var tierNames = []struct {
	min, max int
	name     string
}{
	{1, 3, "Foundation"},
	{2, 4, "Basic"},
	{3, 5, "Standard"},
	{4, 6, "Advanced"},
	{5, 7, "Expert"},
	{6, 10, "Master"},
}

// Tier returns a display name for the band, falling back to Basic when
// no envelope contains it.
func (b Band) Tier() string {
	for _, t := range tierNames {
		if b.Min >= t.min && b.Max <= t.max {
			return t.name
		}
	}
	return "Basic"
}
