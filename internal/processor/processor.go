// Package processor runs one synchronous analysis pass over a weekly dataset:
// score, aggregate, classify, extract and narrate. It performs no I/O; the
// same dataset always yields the same report.
package processor

import (
	"opportunity-insights-go/internal/actionable"
	"opportunity-insights-go/internal/aggregator"
	"opportunity-insights-go/internal/classifier"
	"opportunity-insights-go/internal/extractor"
	"opportunity-insights-go/internal/scorer"
	"opportunity-insights-go/internal/types"
)

const DefaultTopN = 3

type Options struct {
	TopN     int
	Narrator *actionable.Narrator
}

type column struct {
	name    string
	present func(types.ProductRecord) bool
}

// A product column counts as present when at least one row carries a value.
// An empty product slice has no rows to judge and is not checked.
var requiredProductColumns = []column{
	{"product_id", func(p types.ProductRecord) bool { return p.ProductID != "" }},
	{"product_name", func(p types.ProductRecord) bool { return p.ProductName != "" }},
	{"product_category", func(p types.ProductRecord) bool { return p.ProductCategory != "" }},
}

// Analyze builds the full report for ds. It returns *types.MissingDataError
// when a required product column is absent; data-quality problems that do
// not block scoring, including an empty product table, are listed in
// Report.Warnings instead.
func Analyze(ds types.WeeklyDataset, opts Options) (types.Report, error) {
	if err := validateProducts(ds.Products); err != nil {
		return types.Report{}, err
	}
	if opts.TopN == 0 {
		opts.TopN = DefaultTopN
	}
	narrator := opts.Narrator
	if narrator == nil {
		narrator = actionable.New(actionable.DefaultPlaybook())
	}

	products := scorer.ComputeScores(ds.Products)
	warnings := []types.Warning{}
	if len(products) == 0 {
		warnings = append(warnings, types.Warning{
			Kind:    types.WarnEmptyGroup,
			Subject: "products",
			Message: "product table has no rows",
		})
	}

	buckets, emptyBuckets := aggregator.PriceBucketStats(products)
	warnings = append(warnings, emptyBuckets...)
	if w, bad := scorer.CheckDistribution(ds.Emotions); bad {
		warnings = append(warnings, w)
	}

	_, _, health := classifier.ClassifyHealth(ds.Emotions)
	priceSensitivity := extractor.AnalyzePriceSensitivity(products, ds.Topics)
	recs := extractor.RankRecommendations(products, opts.TopN)
	cards := actionable.StrategicCards(products, priceSensitivity)

	return types.Report{
		Week:               ds.Week,
		ProductCount:       len(products),
		Products:           products,
		Categories:         aggregator.GroupAggregate(products, aggregator.ByCategory),
		PlatformGroups:     aggregator.GroupAggregate(products, aggregator.ByPlatform),
		PriceBuckets:       buckets,
		Health:             health,
		TopicInsights:      extractor.ExtractTopicInsights(ds.Topics),
		PriceSensitivity:   priceSensitivity,
		PlatformComparison: aggregator.ComparePlatforms(ds.Platforms),
		Recommendations:    recs,
		ActionPlans:        narrator.BuildActionPlan(products, recs),
		Opportunities:      classifier.Opportunities(products),
		StrategicCards:     cards,
		PriorityMatrix:     actionable.BuildPriorityMatrix(cards),
		KPIs:               actionable.ComputeKPIs(products),
		Summary:            narrator.Summarize(products, ds.Overrides),
		Warnings:           warnings,
	}, nil
}

func validateProducts(products []types.ProductRecord) error {
	if len(products) == 0 {
		return nil
	}
	for _, col := range requiredProductColumns {
		found := false
		for _, p := range products {
			if col.present(p) {
				found = true
				break
			}
		}
		if !found {
			return &types.MissingDataError{Table: "products", Column: col.name}
		}
	}
	return nil
}
