package actionable

import (
	"fmt"
	"sort"
	"strings"

	"opportunity-insights-go/internal/types"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var priorityRank = map[string]int{PriorityHigh: 0, PriorityMedium: 1, PriorityLow: 2}

const (
	lowEmotionLine        = 35.0
	brandEmotionLine      = 40.0
	highPotentialMinimum  = 3
	lowCompetitionMinimum = 2
)

// StrategicCards evaluates the strategy rules against the week's data and
// returns the cards that apply, high priority first. Cards of equal priority
// keep rule order.
func StrategicCards(products []types.ProductRecord, ps types.PriceSensitivity) []types.StrategicCard {
	f := facts(products)
	highPotential, lowCompetition := 0, 0
	for _, p := range products {
		if strings.EqualFold(p.MarketPotential, "high") {
			highPotential++
		}
		if strings.EqualFold(p.CompetitionLevel, "low") {
			lowCompetition++
		}
	}

	cards := []types.StrategicCard{}
	if f.count > 0 && f.avgEmotion < lowEmotionLine {
		cards = append(cards, types.StrategicCard{
			Category:       "emotion optimisation",
			Priority:       PriorityHigh,
			Issue:          fmt.Sprintf("emotion score is low (%.1f/50)", f.avgEmotion),
			Recommendation: "improve product copy and customer communication now",
			Actions: []string{
				"Analyse negative comments to find the main pain points",
				"Rework product pages to stress quality guarantees",
				"Provide more detailed usage instructions",
				"Speed up customer-service responses",
			},
			ExpectedImpact: "emotion score up by 5-8 points",
			Timeline:       "2-4 weeks",
		})
	}
	if ps.IsSensitive {
		cards = append(cards, types.StrategicCard{
			Category:       "pricing strategy",
			Priority:       PriorityMedium,
			Issue:          fmt.Sprintf("%.1f%% of price mentions express worry", ps.PriceWorryPct),
			Recommendation: "offer tiered pricing options",
			Actions: []string{
				"Launch an entry-level product 20-30% cheaper",
				"Offer bundles (buy 2 get 1, combo discounts)",
				"Add instalment payment options",
				"Stress value for money and long-term value",
			},
			ExpectedImpact: "conversion rate up by 15-25%",
			Timeline:       "1-2 weeks",
		})
	}
	if f.topPlatform != notAvailable {
		cards = append(cards, types.StrategicCard{
			Category:       "channel optimisation",
			Priority:       PriorityHigh,
			Issue:          fmt.Sprintf("%s performs best; other platforms have room to grow", f.topPlatform),
			Recommendation: fmt.Sprintf("invest more in %s while tuning the other platforms", f.topPlatform),
			Actions: []string{
				fmt.Sprintf("Add more SKUs on %s", f.topPlatform),
				fmt.Sprintf("Replicate what works on %s elsewhere", f.topPlatform),
				"Optimise titles and keywords (SEO)",
				"Run more cross-platform promotions",
			},
			ExpectedImpact: "total revenue up by 30-40%",
			Timeline:       "4-6 weeks",
		})
	}
	if f.topCategory != notAvailable {
		cards = append(cards, types.StrategicCard{
			Category:       "product development",
			Priority:       PriorityHigh,
			Issue:          fmt.Sprintf("strong demand in the %s category", f.topCategory),
			Recommendation: fmt.Sprintf("focus development on %s products", f.topCategory),
			Actions: []string{
				fmt.Sprintf("Research niche needs within %s", f.topCategory),
				"Design 3-5 new prototypes",
				"Run a small batch test (100-200 units)",
				"Iterate quickly on feedback",
			},
			ExpectedImpact: "new monthly revenue of $5,000-$8,000",
			Timeline:       "6-8 weeks",
		})
	}
	if f.avgEmotion > brandEmotionLine {
		cards = append(cards, types.StrategicCard{
			Category:       "brand building",
			Priority:       PriorityMedium,
			Issue:          "product quality is widely recognised",
			Recommendation: "build a brand premium and lift market positioning",
			Actions: []string{
				"Write the brand story and value proposition",
				"Apply for relevant quality certifications",
				"Collect and showcase customer reviews",
				"Test a 10-15% price increase",
			},
			ExpectedImpact: "profit margin up by 20-30%",
			Timeline:       "8-12 weeks",
		})
	}
	if highPotential > highPotentialMinimum {
		cards = append(cards, types.StrategicCard{
			Category:       "market expansion",
			Priority:       PriorityHigh,
			Issue:          fmt.Sprintf("%d high-potential product opportunities found", highPotential),
			Recommendation: "enter the high-potential niches quickly",
			Actions: []string{
				"Develop the top 3 high-potential products first",
				"Budget $2,000-$3,000 per product",
				"Target launch within 8 weeks",
				"Prepare the marketing plan",
			},
			ExpectedImpact: "new monthly revenue of $10,000-$15,000",
			Timeline:       "8-10 weeks",
		})
	}
	if lowCompetition > lowCompetitionMinimum {
		cards = append(cards, types.StrategicCard{
			Category:       "competitive strategy",
			Priority:       PriorityMedium,
			Issue:          fmt.Sprintf("%d low-competition opportunities found", lowCompetition),
			Recommendation: "claim the low-competition niches first",
			Actions: []string{
				"Enter the low-competition niches quickly",
				"Build first-mover brand awareness",
				"Optimise SEO to rank at the top of search",
				"Raise barriers (unique designs, patents)",
			},
			ExpectedImpact: "30-50% market share",
			Timeline:       "6-8 weeks",
		})
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return rank(cards[i].Priority) < rank(cards[j].Priority)
	})
	return cards
}

func rank(priority string) int {
	if r, ok := priorityRank[priority]; ok {
		return r
	}
	return len(priorityRank)
}

// BuildPriorityMatrix groups cards by priority.
func BuildPriorityMatrix(cards []types.StrategicCard) types.PriorityMatrix {
	m := types.PriorityMatrix{
		DoNow:         []types.StrategicCard{},
		PlanNext:      []types.StrategicCard{},
		ConsiderLater: []types.StrategicCard{},
	}
	for _, c := range cards {
		switch c.Priority {
		case PriorityHigh:
			m.DoNow = append(m.DoNow, c)
		case PriorityMedium:
			m.PlanNext = append(m.PlanNext, c)
		default:
			m.ConsiderLater = append(m.ConsiderLater, c)
		}
	}
	return m
}
