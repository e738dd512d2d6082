package classifier

import (
	"math"
	"testing"

	"opportunity-insights-go/internal/types"
)

func TestTierBoundariesCloseAtLowerBound(t *testing.T) {
	cases := []struct {
		score float64
		want  HealthTier
	}{
		{-5, TierNegative},
		{0, TierNegative},
		{29.999, TierNegative},
		{30, TierNeutral},
		{39.999, TierNeutral},
		{40, TierNeutralPositive},
		{49.999, TierNeutralPositive},
		{50, TierEnthusiastic},
		{59.999, TierEnthusiastic},
		{60, TierEuphoric},
		{75, TierEuphoric},
		{math.NaN(), TierNegative},
	}
	for _, c := range cases {
		if got := Tier(c.score); got != c.want {
			t.Fatalf("Tier(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestTierIsMonotonic(t *testing.T) {
	rank := map[HealthTier]int{TierNegative: 0, TierNeutral: 1, TierNeutralPositive: 2, TierEnthusiastic: 3, TierEuphoric: 4}
	prev := rank[Tier(-10)]
	for s := -10.0; s <= 90; s += 0.25 {
		r := rank[Tier(s)]
		if r < prev {
			t.Fatalf("tier decreased at %v", s)
		}
		prev = r
	}
}

func TestHealthyAndRecommendationShareThreshold(t *testing.T) {
	if IsHealthy(39.9) || MarketRecommendation(39.9) != RecommendObserve {
		t.Fatalf("39.9 must not be healthy")
	}
	if !IsHealthy(40) || MarketRecommendation(40) != RecommendEnterMarket {
		t.Fatalf("40 must be healthy")
	}
}

func TestPriceSensitivityIsStrict(t *testing.T) {
	if IsPriceSensitive(50) {
		t.Fatalf("exactly 50 must not be sensitive")
	}
	if !IsPriceSensitive(50.01) {
		t.Fatalf("50.01 must be sensitive")
	}
}

func TestClassifyHealthExcitedOnly(t *testing.T) {
	score, tier, details := ClassifyHealth([]types.EmotionRecord{{Emotion: "excited", Percentage: 100}})
	if score != 75 || tier != TierEuphoric {
		t.Fatalf("got %v %q", score, tier)
	}
	if !details.IsHealthy || details.Recommendation != RecommendEnterMarket || details.PositivePct != 100 {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestClassifyHealthEmptyTable(t *testing.T) {
	score, tier, details := ClassifyHealth(nil)
	if score != 0 || tier != TierNegative {
		t.Fatalf("got %v %q", score, tier)
	}
	if details.IsHealthy || details.Status != "negative" || details.Recommendation != RecommendObserve {
		t.Fatalf("unexpected details: %+v", details)
	}
}

func TestClassifyHealthSplitsPositiveAndNegative(t *testing.T) {
	rows := []types.EmotionRecord{
		{Emotion: types.EmotionExcitement, Percentage: 30},
		{Emotion: types.EmotionCuriosity, Percentage: 20},
		{Emotion: types.EmotionSatisfaction, Percentage: 10},
		{Emotion: types.EmotionNeutral, Percentage: 15},
		{Emotion: types.EmotionWorry, Percentage: 15},
		{Emotion: types.EmotionConfusion, Percentage: 10},
	}
	_, _, d := ClassifyHealth(rows)
	if d.PositivePct != 60 || d.NegativePct != 25 {
		t.Fatalf("unexpected split: %+v", d)
	}
	// 22.5 + 8 + 6 + 3.75 + 2.25 + 1.5 = 44
	if d.TotalScore != 44 || d.Status != string(TierNeutralPositive) {
		t.Fatalf("unexpected score: %+v", d)
	}
}

func TestClassifyQuadrant(t *testing.T) {
	cases := []struct {
		intensity, potential float64
		want                 string
	}{
		{5, 5, QuadrantHighPriority},
		{4.9, 5, QuadrantPotential},
		{5, 4.9, QuadrantWatch},
		{1, 1, QuadrantLowPriority},
	}
	for _, c := range cases {
		if got := ClassifyQuadrant(c.intensity, c.potential); got != c.want {
			t.Fatalf("ClassifyQuadrant(%v,%v) = %s, want %s", c.intensity, c.potential, got, c.want)
		}
	}
}

func TestEmotionLevel(t *testing.T) {
	for score, want := range map[float64]string{0: "poor", 20: "fair", 35: "good", 44.9: "good", 45: "excellent"} {
		if got := EmotionLevel(score); got != want {
			t.Fatalf("EmotionLevel(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestOpportunities(t *testing.T) {
	ops := Opportunities([]types.ProductRecord{{ProductID: "a", EmotionScore: 42, TotalScore: 80}})
	if len(ops) != 1 || ops[0].Quadrant != QuadrantHighPriority || ops[0].EmotionLevel != "good" {
		t.Fatalf("unexpected: %+v", ops)
	}
}
