// Package classifier maps continuous scores to discrete labels.
//
// Every tier is closed at its lower bound: a score of exactly 30, 40, 50 or
// 60 belongs to the higher tier.
package classifier

import (
	"math"

	"opportunity-insights-go/internal/scorer"
	"opportunity-insights-go/internal/types"
)

type HealthTier string

const (
	TierEuphoric        HealthTier = "strongly positive / euphoric"
	TierEnthusiastic    HealthTier = "positive / enthusiastic"
	TierNeutralPositive HealthTier = "neutral-leaning-positive"
	TierNeutral         HealthTier = "neutral"
	TierNegative        HealthTier = "negative"
)

const (
	RecommendEnterMarket = "enter market"
	RecommendObserve     = "observe"
)

// HealthyThreshold is the single decision line shared by the health flag and
// the market-entry recommendation.
const HealthyThreshold = 40.0

// PriceWorryThreshold is unrelated to HealthyThreshold: price sensitivity is
// flagged only strictly above 50% worry on price.
const PriceWorryThreshold = 50.0

var tiers = []struct {
	floor float64
	tier  HealthTier
}{
	{60, TierEuphoric},
	{50, TierEnthusiastic},
	{HealthyThreshold, TierNeutralPositive},
	{30, TierNeutral},
}

// Tier evaluates the thresholds highest-first. NaN falls through to negative.
func Tier(score float64) HealthTier {
	for _, t := range tiers {
		if score >= t.floor {
			return t.tier
		}
	}
	return TierNegative
}

func IsHealthy(score float64) bool {
	return score >= HealthyThreshold
}

func MarketRecommendation(score float64) string {
	if IsHealthy(score) {
		return RecommendEnterMarket
	}
	return RecommendObserve
}

// IsPriceSensitive reports whether worry about price is strictly above 50%.
func IsPriceSensitive(priceWorryPct float64) bool {
	return priceWorryPct > PriceWorryThreshold
}

var (
	positiveEmotions = map[types.Emotion]bool{
		types.EmotionExcitement:   true,
		types.EmotionSatisfaction: true,
		types.EmotionCuriosity:    true,
	}
	negativeEmotions = map[types.Emotion]bool{
		types.EmotionWorry:     true,
		types.EmotionConfusion: true,
	}
)

// ClassifyHealth scores an emotion table and labels it. An empty table scores
// 0 and lands in the negative tier.
func ClassifyHealth(rows []types.EmotionRecord) (float64, HealthTier, types.HealthDetails) {
	score := scorer.EmotionHealthScore(rows)
	pos, neg := 0.0, 0.0
	for _, r := range rows {
		e := types.ParseEmotion(string(r.Emotion))
		switch {
		case positiveEmotions[e]:
			pos += r.Percentage
		case negativeEmotions[e]:
			neg += r.Percentage
		}
	}
	tier := Tier(score)
	details := types.HealthDetails{
		TotalScore:     round1(score),
		Status:         string(tier),
		PositivePct:    round1(pos),
		NegativePct:    round1(neg),
		IsHealthy:      IsHealthy(score),
		Recommendation: MarketRecommendation(score),
	}
	return score, tier, details
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
