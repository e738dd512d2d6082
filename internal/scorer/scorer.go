// Package scorer computes the composite ranking score of each product and the
// emotion health score of a week's emotion distribution.
package scorer

import (
	"math"
	"strings"

	"opportunity-insights-go/internal/types"
)

// Sub-score weights of total_score.
const (
	viewsWeight      = 0.15
	engagementWeight = 0.15
	trendWeight      = 0.10
	demandWeight     = 0.60
)

const (
	defaultViewBenchmark = 500_000.0
	engagementCeilingPct = 10.0
	demandRevenueCeiling = 100_000.0
	maxSubScore          = 100.0
	maxEmotionScore      = 50.0
)

// views needed on each platform for a full views sub-score
var viewBenchmarks = map[string]float64{
	"tiktok":        1_000_000,
	"instagram":     500_000,
	"youtube":       100_000,
	"pinterest":     50_000,
	"google trends": 500_000,
}

// ComputeScores returns a scored copy of products. total_score is always
// recomputed from the four sub-scores; any value present in the input is
// discarded. Sub-scores and derived metrics supplied by the row (non-zero)
// are kept, missing ones are derived from the raw metrics.
func ComputeScores(products []types.ProductRecord) []types.ProductRecord {
	out := make([]types.ProductRecord, len(products))
	for i, p := range products {
		out[i] = score(p)
	}
	return out
}

func score(p types.ProductRecord) types.ProductRecord {
	if p.EngagementRate == 0 && p.Views > 0 && p.Likes > 0 {
		p.EngagementRate = round2(p.Likes / p.Views * 100)
	}
	if p.RevenueEstimate == 0 {
		p.RevenueEstimate = round2(p.SalesVolume * p.PriceAvg)
	}
	if p.ROIEstimate == 0 && p.ProfitMargin > 0 && p.ProfitMargin < 100 {
		p.ROIEstimate = round2(p.ProfitMargin / (100 - p.ProfitMargin) * 100)
	}
	if p.EmotionScore == 0 {
		p.EmotionScore = round2(math.Min(maxEmotionScore, (p.SentimentPositivePct+0.5*p.SentimentNeutralPct)/100*maxEmotionScore))
	}

	if p.ViewsScore == 0 {
		p.ViewsScore = round2(capped(p.Views / viewBenchmark(p.Platform) * 100))
	}
	if p.EngagementScore == 0 {
		p.EngagementScore = round2(capped(p.EngagementRate / engagementCeilingPct * 100))
	}
	if p.TrendScore == 0 {
		p.TrendScore = round2(math.Max(0, capped(50+p.GrowthRate)))
	}
	if p.DemandScore == 0 {
		p.DemandScore = round2(capped(p.RevenueEstimate / demandRevenueCeiling * 100))
	}
	p.TotalScore = TotalScore(p.ViewsScore, p.EngagementScore, p.TrendScore, p.DemandScore)
	return p
}

// TotalScore is the weighted composite of the four sub-scores.
func TotalScore(views, engagement, trend, demand float64) float64 {
	return round2(views*viewsWeight + engagement*engagementWeight + trend*trendWeight + demand*demandWeight)
}

func viewBenchmark(platform string) float64 {
	if b, ok := viewBenchmarks[strings.ToLower(strings.TrimSpace(platform))]; ok {
		return b
	}
	return defaultViewBenchmark
}

func capped(v float64) float64 {
	return math.Min(maxSubScore, v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
