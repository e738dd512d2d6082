package actionable

import (
	"math"

	"opportunity-insights-go/internal/aggregator"
	"opportunity-insights-go/internal/types"
)

// ComputeKPIs rolls the product table up into the headline figures.
func ComputeKPIs(products []types.ProductRecord) types.KPIs {
	col := func(fn func(types.ProductRecord) float64) []float64 { return aggregator.Column(products, fn) }
	sum := func(xs []float64) float64 {
		s := 0.0
		for _, x := range xs {
			s += x
		}
		return s
	}
	return types.KPIs{
		TotalMentions:     int64(sum(col(func(p types.ProductRecord) float64 { return p.Views }))),
		AvgEmotionScore:   roundTo(aggregator.Mean(col(func(p types.ProductRecord) float64 { return p.EmotionScore })), 1),
		AvgGrowthRate:     roundTo(aggregator.Mean(col(func(p types.ProductRecord) float64 { return p.GrowthRate })), 1),
		TotalRevenue:      int64(sum(col(func(p types.ProductRecord) float64 { return p.RevenueEstimate }))),
		AvgConversionRate: roundTo(aggregator.Mean(col(func(p types.ProductRecord) float64 { return p.ConversionRate })), 2),
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
