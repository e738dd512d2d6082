package actionable

import (
	"fmt"
	"sort"

	"opportunity-insights-go/internal/aggregator"
	"opportunity-insights-go/internal/classifier"
	"opportunity-insights-go/internal/types"
)

const (
	titleEmotion  = "Emotion discovery"
	titleSales    = "Sales discovery"
	titleStrategy = "Strategic recommendation"
	notAvailable  = "N/A"
)

// Summarize builds the executive summary of a scored product table. Each of
// the three recommendation slots is taken from overrides when that slot is
// non-empty there. The output depends only on the inputs.
func (n *Narrator) Summarize(products []types.ProductRecord, overrides *types.Overrides) types.ExecutiveSummary {
	f := facts(products)
	return types.ExecutiveSummary{
		CoreGoal: fill(n.pb.CoreGoal, map[string]string{
			"products":     fmt.Sprintf("%d", f.count),
			"avg_score":    fmt.Sprintf("%.1f", f.avgScore),
			"top_category": f.topCategory,
		}),
		Insights: []types.InsightBlock{
			{Title: titleEmotion, Points: emotionPoints(f)},
			{Title: titleSales, Points: salesPoints(f)},
			{Title: titleStrategy, Points: n.strategyPoints(f)},
		},
		Recommendations: applyOverrides(defaultRecommendations(f), overrides),
	}
}

type summaryFacts struct {
	count             int
	avgScore          float64
	avgPositive       float64
	avgNegative       float64
	avgEmotion        float64
	avgPrice          float64
	maxROI            float64
	topCategory       string
	topCategoryGrowth float64
	topPlatform       string
	topPlatformRev    float64
	topEmotionProduct string
	topEmotionScore   float64
	bestPriceRange    string
	emotionLeaders    int
}

func facts(products []types.ProductRecord) summaryFacts {
	col := func(fn func(types.ProductRecord) float64) []float64 { return aggregator.Column(products, fn) }
	f := summaryFacts{
		count:          len(products),
		avgScore:       aggregator.Mean(col(func(p types.ProductRecord) float64 { return p.TotalScore })),
		avgPositive:    aggregator.Mean(col(func(p types.ProductRecord) float64 { return p.SentimentPositivePct })),
		avgNegative:    aggregator.Mean(col(func(p types.ProductRecord) float64 { return p.SentimentNegativePct })),
		avgEmotion:     aggregator.Mean(col(func(p types.ProductRecord) float64 { return p.EmotionScore })),
		avgPrice:       aggregator.Mean(col(func(p types.ProductRecord) float64 { return p.PriceAvg })),
		topCategory:    notAvailable,
		topPlatform:    notAvailable,
		bestPriceRange: notAvailable,
	}

	if best, ok := aggregator.BestGroup(aggregator.GroupAggregate(products, aggregator.ByCategory)); ok {
		f.topCategory = best.Key
		f.topCategoryGrowth = best.MeanGrowthRate
	}

	platforms := aggregator.GroupAggregate(products, aggregator.ByPlatform)
	sort.SliceStable(platforms, func(i, j int) bool { return platforms[i].RevenueSum > platforms[j].RevenueSum })
	if len(platforms) > 0 {
		f.topPlatform = platforms[0].Key
		f.topPlatformRev = platforms[0].RevenueSum
	}

	buckets, _ := aggregator.PriceBucketStats(products)
	if best, ok := aggregator.BestGroup(buckets); ok {
		f.bestPriceRange = best.Key
	}

	for i, p := range products {
		if i == 0 || p.EmotionScore > f.topEmotionScore {
			f.topEmotionProduct = p.ProductName
			f.topEmotionScore = p.EmotionScore
		}
		if i == 0 || p.ROIEstimate > f.maxROI {
			f.maxROI = p.ROIEstimate
		}
		if p.EmotionScore > classifier.HealthyThreshold {
			f.emotionLeaders++
		}
	}
	if f.topEmotionProduct == "" {
		f.topEmotionProduct = notAvailable
	}
	return f
}

func emotionPoints(f summaryFacts) []string {
	lead := "Positive emotions account for"
	if f.avgPositive > 50 {
		lead = "Positive emotions dominate at"
	}
	return []string{
		fmt.Sprintf("%s %.0f%% of mentions", lead, f.avgPositive),
		fmt.Sprintf("Strongest emotion: %q with an emotion score of %.1f", f.topEmotionProduct, f.topEmotionScore),
		fmt.Sprintf("Average emotion score %.1f/50 (%s)", f.avgEmotion, classifier.EmotionLevel(f.avgEmotion)),
		fmt.Sprintf("Worry and confusion make up %.0f%% of mentions, mostly about price and quality", f.avgNegative),
	}
}

func salesPoints(f summaryFacts) []string {
	return []string{
		fmt.Sprintf("%s leads with estimated revenue of %s", f.topPlatform, Money(f.topPlatformRev)),
		fmt.Sprintf("Hot category: %s, averaging %.1f%% growth", f.topCategory, f.topCategoryGrowth),
		fmt.Sprintf("Average price %s", Money(f.avgPrice)),
	}
}

func (n *Narrator) strategyPoints(f summaryFacts) []string {
	return []string{
		fmt.Sprintf("Fast entry: %d products score above %.0f on emotion", f.emotionLeaders, classifier.HealthyThreshold),
		fmt.Sprintf("Small-batch testing: from selection to launch within %d weeks, in %d phases", n.pb.TotalWeeks, len(n.pb.Phases)),
		fmt.Sprintf("Budget control: %s in total, released phase by phase", n.pb.TotalBudget),
	}
}

func defaultRecommendations(f summaryFacts) []string {
	return []string{
		fmt.Sprintf("Test products with an emotion score above %.0f first; expected ROI can reach %s or more", classifier.HealthyThreshold, Percent(f.maxROI)),
		fmt.Sprintf("Launch an entry line in the %s price range to widen market coverage", f.bestPriceRange),
		fmt.Sprintf("Invest more in %s, which leads estimated revenue", f.topPlatform),
	}
}

func applyOverrides(recs []string, o *types.Overrides) []string {
	if o == nil {
		return recs
	}
	for i := range recs {
		if i < len(o.Recommendations) && o.Recommendations[i] != "" {
			recs[i] = o.Recommendations[i]
		}
	}
	return recs
}
