package dataset

import (
	"strconv"
	"strings"

	"opportunity-insights-go/internal/types"
)

const (
	TableProducts  = "products"
	TableEmotions  = "emotions"
	TableTopics    = "topics"
	TablePlatforms = "platforms"
	TableSummary   = "summary"
)

func require(t Table, cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return &types.MissingDataError{Table: t.Name, Column: c}
		}
	}
	return nil
}

// ParseProducts maps the product table. product_id, product_name and
// product_category are required; every other column defaults to its zero
// value.
func ParseProducts(t Table) ([]types.ProductRecord, error) {
	if err := require(t, "product_id", "product_name", "product_category"); err != nil {
		return nil, err
	}
	out := make([]types.ProductRecord, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, types.ProductRecord{
			ProductID:            t.Cell(r, "product_id"),
			ProductName:          t.Cell(r, "product_name"),
			ProductCategory:      t.Cell(r, "product_category"),
			ProductSubcategory:   t.Cell(r, "product_subcategory"),
			TrackType:            types.ParseTrackType(t.Cell(r, "track_type")),
			Platform:             t.Cell(r, "platform"),
			Views:                t.Float(r, "views"),
			Likes:                t.Float(r, "likes"),
			EngagementRate:       t.Float(r, "engagement_rate"),
			PriceAvg:             t.Float(r, "price_avg"),
			PriceMin:             t.Float(r, "price_min"),
			PriceMax:             t.Float(r, "price_max"),
			SalesVolume:          t.Float(r, "sales_volume"),
			ConversionRate:       t.Float(r, "conversion_rate"),
			ProfitMargin:         t.Float(r, "profit_margin"),
			SentimentPositivePct: t.Float(r, "sentiment_positive_pct"),
			SentimentNeutralPct:  t.Float(r, "sentiment_neutral_pct"),
			SentimentNegativePct: t.Float(r, "sentiment_negative_pct"),
			TargetAudience:       t.Cell(r, "target_audience"),
			MarketPotential:      t.Cell(r, "market_potential"),
			CompetitionLevel:     t.Cell(r, "competition_level"),
			ActionPriority:       t.Cell(r, "action_priority"),
			ViewsScore:           t.Float(r, "views_score"),
			EngagementScore:      t.Float(r, "engagement_score"),
			TrendScore:           t.Float(r, "trend_score"),
			DemandScore:          t.Float(r, "demand_score"),
			EmotionScore:         t.Float(r, "emotion_score"),
			GrowthRate:           t.Float(r, "growth_rate"),
			ROIEstimate:          t.Float(r, "roi_estimate"),
			RevenueEstimate:      t.Float(r, "revenue_estimate"),
			TotalScore:           t.Float(r, "total_score"),
		})
	}
	return out, nil
}

func ParseEmotions(t Table) ([]types.EmotionRecord, error) {
	if err := require(t, "emotion", "percentage"); err != nil {
		return nil, err
	}
	out := make([]types.EmotionRecord, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, types.EmotionRecord{
			Emotion:        types.ParseEmotion(t.Cell(r, "emotion")),
			Percentage:     t.Float(r, "percentage"),
			Count:          t.Int(r, "count"),
			Keywords:       t.List(r, "keywords"),
			SampleComments: t.List(r, "sample_comments"),
		})
	}
	return out, nil
}

func ParseTopics(t Table) ([]types.TopicEmotionRecord, error) {
	if err := require(t, "topic", "emotion", "percentage"); err != nil {
		return nil, err
	}
	out := make([]types.TopicEmotionRecord, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, types.TopicEmotionRecord{
			Topic:      types.NormalizeTopic(t.Cell(r, "topic")),
			Emotion:    types.ParseEmotion(t.Cell(r, "emotion")),
			Percentage: t.Float(r, "percentage"),
			Count:      t.Int(r, "count"),
			Keywords:   t.List(r, "keywords"),
		})
	}
	return out, nil
}

func ParsePlatforms(t Table) ([]types.PlatformRecord, error) {
	if err := require(t, "platform"); err != nil {
		return nil, err
	}
	out := make([]types.PlatformRecord, 0, len(t.Rows))
	for _, r := range t.Rows {
		out = append(out, types.PlatformRecord{
			Platform:          t.Cell(r, "platform"),
			PlatformType:      types.ParsePlatformType(t.Cell(r, "platform_type")),
			GrowthRate:        t.Float(r, "growth_rate"),
			AvgEngagementRate: t.Float(r, "avg_engagement_rate"),
			ProductCount:      t.Int(r, "product_count"),
			TotalViews:        t.Float(r, "total_views"),
		})
	}
	return out, nil
}

// ParseOverrides reads recommendation_1..3 from the first summary row. It
// returns nil when none of them is set.
func ParseOverrides(t Table) *types.Overrides {
	if len(t.Rows) == 0 {
		return nil
	}
	row := t.Rows[0]
	recs := make([]string, 3)
	set := false
	for i := range recs {
		recs[i] = t.Cell(row, "recommendation_"+strconv.Itoa(i+1))
		if recs[i] != "" && !strings.EqualFold(recs[i], "nan") {
			set = true
		} else {
			recs[i] = ""
		}
	}
	if !set {
		return nil
	}
	return &types.Overrides{Recommendations: recs}
}
