package extractor

import (
	"fmt"
	"sort"
	"strings"

	"opportunity-insights-go/internal/types"
)

const (
	reasonSeparator = "; "
	fallbackReason  = "overall strong performance"
)

// reason rules, evaluated in order; every rule that fires contributes
var reasonRules = []struct {
	applies func(types.ProductRecord) bool
	text    func(types.ProductRecord) string
}{
	{
		applies: func(p types.ProductRecord) bool { return p.EmotionScore > 40 },
		text: func(p types.ProductRecord) string {
			return fmt.Sprintf("emotion score %.1f, buyer feedback is positive", p.EmotionScore)
		},
	},
	{
		applies: func(p types.ProductRecord) bool { return p.GrowthRate > 30 },
		text: func(p types.ProductRecord) string {
			return fmt.Sprintf("growth rate %.1f%%, strong market demand", p.GrowthRate)
		},
	},
	{
		applies: func(p types.ProductRecord) bool { return p.ROIEstimate > 50 },
		text: func(p types.ProductRecord) string {
			return fmt.Sprintf("expected ROI %.1f%%, high profit potential", p.ROIEstimate)
		},
	},
	{
		applies: func(p types.ProductRecord) bool { return p.TrackType == types.TrackPrimary },
		text:    func(types.ProductRecord) string { return "fits the primary track for fast market entry" },
	},
}

// RankRecommendations returns the topN products by total_score, highest
// first, with 1-based priorities. Equal scores keep their input order.
func RankRecommendations(products []types.ProductRecord, topN int) []types.Recommendation {
	if topN <= 0 {
		return []types.Recommendation{}
	}
	ranked := make([]types.ProductRecord, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].TotalScore > ranked[j].TotalScore })
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	out := make([]types.Recommendation, 0, len(ranked))
	for i, p := range ranked {
		out = append(out, types.Recommendation{
			Priority:           i + 1,
			ProductID:          p.ProductID,
			ProductName:        p.ProductName,
			ProductCategory:    p.ProductCategory,
			ProductSubcategory: p.ProductSubcategory,
			TrackType:          p.TrackType,
			TotalScore:         p.TotalScore,
			EmotionScore:       p.EmotionScore,
			GrowthRate:         p.GrowthRate,
			PriceAvg:           p.PriceAvg,
			SalesVolume:        p.SalesVolume,
			RevenueEstimate:    p.RevenueEstimate,
			ROIEstimate:        p.ROIEstimate,
			ConversionRate:     p.ConversionRate,
			TargetAudience:     p.TargetAudience,
			Reason:             Reason(p),
		})
	}
	return out
}

// Reason joins the text of every rule that fires, in rule order.
func Reason(p types.ProductRecord) string {
	var reasons []string
	for _, r := range reasonRules {
		if r.applies(p) {
			reasons = append(reasons, r.text(p))
		}
	}
	if len(reasons) == 0 {
		return fallbackReason
	}
	return strings.Join(reasons, reasonSeparator)
}
