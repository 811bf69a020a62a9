package adaptive

import (
	"sort"

	"github.com/dabin/mathmission/internal/models"
)

// topicCap bounds how many problems of one topic a first selection
// pass may take, to keep missions from collapsing onto a single topic.
const topicCap = 2

// weakTopicThreshold is the per-topic average below which a candidate
// gets a remediation boost.
const weakTopicThreshold = 70.0

// Select picks up to count problems from the candidate pool, biased
// toward the user's weak topics while capping topic repetition.
//
// topicPerformance maps topic to the user's rolling average score;
// topics absent from the map are treated as performing well and get no
// boost. The pool is expected to already satisfy the hard filters
// (difficulty band, topic set, recent-problem exclusion).
func Select(pool []models.Problem, topicPerformance map[string]float64, count int) []models.Problem {
	if count <= 0 {
		return nil
	}
	if len(pool) <= count {
		return pool
	}

	type weighted struct {
		problem models.Problem
		weight  float64
		poolIdx int
	}
	candidates := make([]weighted, len(pool))
	for i, p := range pool {
		w := 1.0
		if perf, ok := topicPerformance[p.Topic]; ok && perf < weakTopicThreshold {
			w += (weakTopicThreshold - perf) / 100
		}
		candidates[i] = weighted{problem: p, weight: w, poolIdx: i}
	}

	// Stable: equal weights keep their pool order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})

	selected := make([]models.Problem, 0, count)
	topicCount := map[string]int{}
	var skipped []weighted

	for _, c := range candidates {
		if len(selected) >= count {
			break
		}
		if topicCount[c.problem.Topic] >= topicCap {
			skipped = append(skipped, c)
			continue
		}
		selected = append(selected, c.problem)
		topicCount[c.problem.Topic]++
	}

	// Backfill past the topic cap so a thin pool still fills the mission.
	if len(selected) < count {
		sort.SliceStable(skipped, func(i, j int) bool {
			return skipped[i].poolIdx < skipped[j].poolIdx
		})
		for _, c := range skipped {
			if len(selected) >= count {
				break
			}
			selected = append(selected, c.problem)
		}
	}

	return selected
}
