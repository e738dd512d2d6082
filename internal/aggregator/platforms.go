package aggregator

import (
	"fmt"

	"opportunity-insights-go/internal/types"
)

const notAvailable = "N/A"

// ComparePlatforms picks the fastest-growing platform overall, the most
// engaging social platform and the fastest-growing marketplace. Each slot
// falls back to N/A when its candidate set is empty; ties keep the first row.
func ComparePlatforms(platforms []types.PlatformRecord) types.PlatformComparison {
	cmp := types.PlatformComparison{
		TopGrowth:       types.PlatformHighlight{Platform: notAvailable},
		TopEngagement:   types.PlatformHighlight{Platform: notAvailable},
		EcommerceLeader: types.PlatformHighlight{Platform: notAvailable},
	}

	if p, ok := argmax(platforms, nil, func(p types.PlatformRecord) float64 { return p.GrowthRate }); ok {
		cmp.TopGrowth = types.PlatformHighlight{
			Platform: p.Platform,
			Value:    p.GrowthRate,
			Insight:  fmt.Sprintf("%s leads all platforms with %.1f%% growth", p.Platform, p.GrowthRate),
		}
	}

	social := func(p types.PlatformRecord) bool { return p.PlatformType == types.PlatformSocial }
	if p, ok := argmax(platforms, social, func(p types.PlatformRecord) float64 { return p.AvgEngagementRate }); ok {
		cmp.TopEngagement = types.PlatformHighlight{
			Platform: p.Platform,
			Value:    p.AvgEngagementRate,
			Insight:  fmt.Sprintf("%s has the highest engagement rate", p.Platform),
		}
	}

	ecommerce := func(p types.PlatformRecord) bool { return p.PlatformType == types.PlatformEcommerce }
	if p, ok := argmax(platforms, ecommerce, func(p types.PlatformRecord) float64 { return p.GrowthRate }); ok {
		cmp.EcommerceLeader = types.PlatformHighlight{Platform: p.Platform, Value: p.GrowthRate}
	}
	return cmp
}

func argmax(rows []types.PlatformRecord, keep func(types.PlatformRecord) bool, val func(types.PlatformRecord) float64) (types.PlatformRecord, bool) {
	var best types.PlatformRecord
	found := false
	for _, r := range rows {
		if keep != nil && !keep(r) {
			continue
		}
		if !found || val(r) > val(best) {
			best = r
			found = true
		}
	}
	return best, found
}
