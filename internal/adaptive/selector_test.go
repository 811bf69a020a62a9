package adaptive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dabin/mathmission/internal/adaptive"
	"github.com/dabin/mathmission/internal/models"
)

func problem(id int64, topic string) models.Problem {
	return models.Problem{ID: id, Topic: topic, Difficulty: 3}
}

func topics(problems []models.Problem) map[string]int {
	out := map[string]int{}
	for _, p := range problems {
		out[p.Topic]++
	}
	return out
}

func TestSelect_SmallPoolPassesThrough(t *testing.T) {
	pool := []models.Problem{problem(1, "series"), problem(2, "series")}

	selected := adaptive.Select(pool, nil, 5)
	assert.Equal(t, pool, selected)
}

func TestSelect_ZeroCount(t *testing.T) {
	pool := []models.Problem{problem(1, "series")}
	assert.Nil(t, adaptive.Select(pool, nil, 0))
}

func TestSelect_PrefersWeakTopics(t *testing.T) {
	pool := []models.Problem{
		problem(1, "series"),
		problem(2, "series"),
		problem(3, "induction"),
		problem(4, "induction"),
		problem(5, "sequences"),
		problem(6, "sequences"),
	}
	performance := map[string]float64{
		"series":    90, // strong, no boost
		"induction": 40, // weak, strong boost
		"sequences": 65, // weak, mild boost
	}

	selected := adaptive.Select(pool, performance, 4)
	require.Len(t, selected, 4)

	counts := topics(selected)
	assert.Equal(t, 2, counts["induction"], "weakest topic should fill its cap first")
	assert.Equal(t, 2, counts["sequences"], "second weakest fills next")
	assert.Zero(t, counts["series"], "strong topic loses to boosted ones")
}

func TestSelect_TopicCap(t *testing.T) {
	pool := []models.Problem{
		problem(1, "series"),
		problem(2, "series"),
		problem(3, "series"),
		problem(4, "series"),
		problem(5, "induction"),
		problem(6, "sequences"),
	}

	selected := adaptive.Select(pool, nil, 4)
	require.Len(t, selected, 4)

	counts := topics(selected)
	assert.Equal(t, 2, counts["series"], "no topic may exceed the cap while alternatives exist")
	assert.Equal(t, 1, counts["induction"])
	assert.Equal(t, 1, counts["sequences"])
}

func TestSelect_BackfillPastCap(t *testing.T) {
	// Only one topic in the pool: the cap must give way so the mission
	// still fills.
	pool := []models.Problem{
		problem(1, "series"),
		problem(2, "series"),
		problem(3, "series"),
		problem(4, "series"),
		problem(5, "series"),
	}

	selected := adaptive.Select(pool, nil, 4)
	require.Len(t, selected, 4)
	// Backfill follows pool order.
	assert.Equal(t, int64(1), selected[0].ID)
	assert.Equal(t, int64(2), selected[1].ID)
	assert.Equal(t, int64(3), selected[2].ID)
	assert.Equal(t, int64(4), selected[3].ID)
}

func TestSelect_EqualWeightsKeepPoolOrder(t *testing.T) {
	pool := []models.Problem{
		problem(10, "series"),
		problem(20, "induction"),
		problem(30, "sequences"),
		problem(40, "limits"),
	}

	selected := adaptive.Select(pool, nil, 3)
	require.Len(t, selected, 3)
	assert.Equal(t, int64(10), selected[0].ID)
	assert.Equal(t, int64(20), selected[1].ID)
	assert.Equal(t, int64(30), selected[2].ID)
}
