package jobs

import (
	"math"
	"sort"
	"time"
)

const (
	baselineWeight = 0.7
	recencyWeight  = 0.3
	decayDays      = 30.0
)

// WeightedScore combines the baseline score with posting recency. Recency
// decays linearly from 100 at age zero to 0 at 30 days and floors there.
// The result is rounded to two decimals and is never persisted, so it
// always reflects the record's current age.
func WeightedScore(baselineScore int, postedAt, now time.Time) float64 {
	recency := 0.0
	if !postedAt.IsZero() {
		daysOld := now.Sub(postedAt).Hours() / 24
		if daysOld < 0 {
			daysOld = 0
		}
		recency = math.Max(0, 100-daysOld*100/decayDays)
	}
	weighted := float64(baselineScore)*baselineWeight + recency*recencyWeight
	return math.Round(weighted*100) / 100
}

// RankByWeightedScore fills WeightedScore on each record and sorts
// descending. Equal scores fall back to ID ascending so listings are
// deterministic across runs.
func RankByWeightedScore(records []JobRecord, now time.Time) {
	for i := range records {
		records[i].WeightedScore = WeightedScore(records[i].BaselineScore, records[i].PostedAt, now)
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].WeightedScore != records[j].WeightedScore {
			return records[i].WeightedScore > records[j].WeightedScore
		}
		return records[i].ID < records[j].ID
	})
}
