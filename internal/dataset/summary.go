package dataset

import (
	"context"
	"math"

	"opportunity-insights-go/internal/aggregator"
	"opportunity-insights-go/internal/scorer"
	"opportunity-insights-go/internal/types"
)

type WeekSummary struct {
	Week              int                     `json:"week"`
	TotalProducts     int                     `json:"total_products"`
	ByTrackType       map[types.TrackType]int `json:"by_track_type"`
	AvgTotalScore     float64                 `json:"avg_score"`
	AvgEngagementRate float64                 `json:"avg_engagement_rate"`
}

// Summarize gives the headline counts of a week. Scores are recomputed the
// same way a full analysis pass does.
func Summarize(ds types.WeeklyDataset) WeekSummary {
	products := scorer.ComputeScores(ds.Products)
	byTrack := map[types.TrackType]int{
		types.TrackPrimary:   0,
		types.TrackSecondary: 0,
		types.TrackWatch:     0,
	}
	for _, p := range products {
		byTrack[p.TrackType]++
	}
	return WeekSummary{
		Week:              ds.Week,
		TotalProducts:     len(products),
		ByTrackType:       byTrack,
		AvgTotalScore:     round2(aggregator.Mean(aggregator.Column(products, func(p types.ProductRecord) float64 { return p.TotalScore }))),
		AvgEngagementRate: round2(aggregator.Mean(aggregator.Column(products, func(p types.ProductRecord) float64 { return p.EngagementRate }))),
	}
}

// SummarizeWeek loads a week and summarizes it.
func (l *Loader) SummarizeWeek(ctx context.Context, week int) (WeekSummary, error) {
	ds, err := l.LoadWeek(ctx, week)
	if err != nil {
		return WeekSummary{}, err
	}
	s := Summarize(ds)
	l.log.WithField("week", week).WithField("total_products", s.TotalProducts).Debug("week summarized")
	return s, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
