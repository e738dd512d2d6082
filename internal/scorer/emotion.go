package scorer

import (
	"fmt"
	"math"

	"opportunity-insights-go/internal/types"
)

const (
	defaultEmotionWeight = 0.5
	healthScale          = 50.0
)

// a week's emotion percentages should add up to 100 within this margin
const distributionTolerance = 5.0

var emotionWeights = map[types.Emotion]float64{
	types.EmotionExcitement:   1.5,
	types.EmotionSatisfaction: 1.2,
	types.EmotionCuriosity:    0.8,
	types.EmotionNeutral:      0.5,
	types.EmotionWorry:        0.3,
	types.EmotionConfusion:    0.3,
}

// EmotionWeight returns the health weight of an emotion label; labels outside
// the table weigh 0.5.
func EmotionWeight(e types.Emotion) float64 {
	if w, ok := emotionWeights[types.ParseEmotion(string(e))]; ok {
		return w
	}
	return defaultEmotionWeight
}

// EmotionHealthScore sums percentage/100 * weight * 50 over all rows. The
// result is not clamped: 75 is reachable with excitement at 100%, and skewed
// input may go beyond it. An empty table scores 0.
func EmotionHealthScore(rows []types.EmotionRecord) float64 {
	total := 0.0
	for _, r := range rows {
		total += r.Percentage / 100 * EmotionWeight(r.Emotion) * healthScale
	}
	return total
}

// PercentageSum adds up the percentage column.
func PercentageSum(rows []types.EmotionRecord) float64 {
	s := 0.0
	for _, r := range rows {
		s += r.Percentage
	}
	return s
}

// CheckDistribution flags an emotion table whose percentages do not add up to
// roughly 100. Scoring still proceeds on whatever values are present.
func CheckDistribution(rows []types.EmotionRecord) (types.Warning, bool) {
	sum := PercentageSum(rows)
	if math.Abs(sum-100) <= distributionTolerance {
		return types.Warning{}, false
	}
	return types.Warning{
		Kind:    types.WarnDegenerateScore,
		Subject: "emotion_distribution",
		Message: fmt.Sprintf("emotion percentages sum to %.1f instead of ~100 (%d rows)", sum, len(rows)),
	}, true
}
