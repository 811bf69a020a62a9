package adaptive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dabin/mathmission/internal/adaptive"
	"github.com/dabin/mathmission/internal/models"
)

func TestEstimateBand_ColdStart(t *testing.T) {
	band := adaptive.EstimateBand(models.ScoreStats{Count: 0})
	assert.Equal(t, adaptive.ColdStartBand, band)

	// Two samples are still too few, even with a perfect average.
	band = adaptive.EstimateBand(models.ScoreStats{Count: 2, Average: 100})
	assert.Equal(t, adaptive.ColdStartBand, band)
}

func TestEstimateBand_Thresholds(t *testing.T) {
	cases := []struct {
		name    string
		average float64
		want    adaptive.Band
	}{
		{"excellent", 92, adaptive.Band{Min: 4, Max: 7}},
		{"excellent boundary", 90, adaptive.Band{Min: 4, Max: 7}},
		{"good", 80, adaptive.Band{Min: 3, Max: 6}},
		{"good boundary", 75, adaptive.Band{Min: 3, Max: 6}},
		{"fair", 65, adaptive.Band{Min: 2, Max: 5}},
		{"fair boundary", 60, adaptive.Band{Min: 2, Max: 5}},
		{"struggling", 45, adaptive.Band{Min: 1, Max: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			band := adaptive.EstimateBand(models.ScoreStats{Count: 5, Average: tc.average})
			assert.Equal(t, tc.want, band)
		})
	}
}

func TestBand_TargetScore(t *testing.T) {
	// Easier bands demand higher scores.
	assert.Equal(t, 85, adaptive.Band{Min: 1, Max: 4}.TargetScore())
	assert.Equal(t, 85, adaptive.Band{Min: 2, Max: 4}.TargetScore())
	assert.Equal(t, 80, adaptive.Band{Min: 3, Max: 6}.TargetScore())
	assert.Equal(t, 80, adaptive.Band{Min: 2, Max: 5}.TargetScore())
	assert.Equal(t, 75, adaptive.Band{Min: 4, Max: 7}.TargetScore())
	assert.Equal(t, 70, adaptive.Band{Min: 6, Max: 10}.TargetScore())
}

func TestBand_AverageDifficulty(t *testing.T) {
	assert.Equal(t, 3.0, adaptive.Band{Min: 2, Max: 4}.AverageDifficulty())
	assert.Equal(t, 5.5, adaptive.Band{Min: 4, Max: 7}.AverageDifficulty())
}

func TestBand_Tier(t *testing.T) {
	assert.Equal(t, "Basic", adaptive.ColdStartBand.Tier())
	assert.Equal(t, "Foundation", adaptive.Band{Min: 1, Max: 3}.Tier())
	assert.Equal(t, "Standard", adaptive.Band{Min: 3, Max: 5}.Tier())
	assert.Equal(t, "Expert", adaptive.Band{Min: 5, Max: 7}.Tier())
	// An envelope nothing contains falls back to Basic.
	assert.Equal(t, "Basic", adaptive.Band{Min: 1, Max: 10}.Tier())
}
