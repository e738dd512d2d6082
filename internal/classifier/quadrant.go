package classifier

import "opportunity-insights-go/internal/types"

const (
	QuadrantHighPriority = "high priority"
	QuadrantPotential    = "potential"
	QuadrantWatch        = "watch"
	QuadrantLowPriority  = "low priority"
)

// quadrant axes run 0-10 and split at the midpoint
const quadrantSplit = 5.0

// ClassifyQuadrant places an entity on the intensity/potential grid.
func ClassifyQuadrant(intensity, potential float64) string {
	hiIntensity := intensity >= quadrantSplit
	hiPotential := potential >= quadrantSplit
	switch {
	case hiIntensity && hiPotential:
		return QuadrantHighPriority
	case hiPotential:
		return QuadrantPotential
	case hiIntensity:
		return QuadrantWatch
	default:
		return QuadrantLowPriority
	}
}

// EmotionLevel buckets a product emotion_score (0-50) for the gauge.
func EmotionLevel(emotionScore float64) string {
	switch {
	case emotionScore < 20:
		return "poor"
	case emotionScore < 35:
		return "fair"
	case emotionScore < 45:
		return "good"
	default:
		return "excellent"
	}
}

// Opportunities classifies every scored product. Intensity is emotion_score
// rescaled from 0-50, potential is total_score rescaled from 0-100.
func Opportunities(products []types.ProductRecord) []types.ProductOpportunity {
	out := make([]types.ProductOpportunity, 0, len(products))
	for _, p := range products {
		out = append(out, types.ProductOpportunity{
			ProductID:    p.ProductID,
			ProductName:  p.ProductName,
			Quadrant:     ClassifyQuadrant(p.EmotionScore/5, p.TotalScore/10),
			EmotionLevel: EmotionLevel(p.EmotionScore),
		})
	}
	return out
}
