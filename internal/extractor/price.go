package extractor

import (
	"fmt"

	"opportunity-insights-go/internal/aggregator"
	"opportunity-insights-go/internal/classifier"
	"opportunity-insights-go/internal/types"
)

const pricingNotBlocker = "price is not the main blocker; keep the current pricing strategy"

// AnalyzePriceSensitivity reads the (price, worry) cell of the topic table.
// Above 50% the dataset is flagged and the best-scoring price bucket is
// proposed as the next product line. A missing cell counts as 0%.
func AnalyzePriceSensitivity(products []types.ProductRecord, topics []types.TopicEmotionRecord) types.PriceSensitivity {
	ps := types.PriceSensitivity{
		Distribution: aggregator.Distribution(products),
		AvgPrice:     aggregator.Mean(aggregator.Column(products, func(p types.ProductRecord) float64 { return p.PriceAvg })),
	}
	if cell, ok := findCell(topics, types.TopicPrice, types.EmotionWorry); ok {
		ps.PriceWorryPct = cell.Percentage
		ps.PriceWorryCount = cell.Count
	}

	buckets, _ := aggregator.PriceBucketStats(products)
	if best, ok := aggregator.BestGroup(buckets); ok {
		ps.BestPriceRange = best.Key
	}

	ps.IsSensitive = classifier.IsPriceSensitive(ps.PriceWorryPct)
	switch {
	case !ps.IsSensitive:
		ps.Recommendation = pricingNotBlocker
	case ps.BestPriceRange == "":
		ps.Recommendation = "buyers are price-sensitive but no price range has scored products yet"
	default:
		ps.Recommendation = fmt.Sprintf("launch a %s-price product line next; buyers accept that range best", ps.BestPriceRange)
	}
	return ps
}
