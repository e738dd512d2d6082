// Package actionable turns scores and insights into narrative output: the
// executive summary, per-product action plans and strategic cards. Every
// string comes from a fixed template or the playbook; nothing is generated
// freely and inputs are never modified.
package actionable

import (
	"opportunity-insights-go/internal/types"
)

// Narrator renders output from a playbook.
type Narrator struct {
	pb Playbook
}

func New(pb Playbook) *Narrator {
	return &Narrator{pb: pb}
}

// BuildActionPlan produces the three-phase plan for each recommended product,
// in recommendation order. Only the product name, revenue and ROI vary; the
// figures come from the matching product row, or from the recommendation
// when products has no row with its id.
func (n *Narrator) BuildActionPlan(products []types.ProductRecord, recs []types.Recommendation) []types.ActionPlan {
	byID := make(map[string]types.ProductRecord, len(products))
	for _, p := range products {
		if _, dup := byID[p.ProductID]; !dup {
			byID[p.ProductID] = p
		}
	}
	plans := make([]types.ActionPlan, 0, len(recs))
	for i, rec := range recs {
		revenue, roi := rec.RevenueEstimate, rec.ROIEstimate
		if p, ok := byID[rec.ProductID]; ok {
			revenue, roi = p.RevenueEstimate, p.ROIEstimate
		}
		vars := map[string]string{
			"product": rec.ProductName,
			"revenue": Money(revenue),
			"roi":     Percent(roi),
		}
		phases := make([]types.PhasePlan, 0, len(n.pb.Phases))
		for _, ph := range n.pb.Phases {
			tasks := make([]string, 0, len(ph.Tasks))
			for _, task := range ph.Tasks {
				tasks = append(tasks, fill(task, vars))
			}
			phases = append(phases, types.PhasePlan{
				Phase:           ph.Phase,
				Tasks:           tasks,
				Budget:          ph.Budget,
				ExpectedOutcome: fill(ph.ExpectedOutcome, vars),
			})
		}
		plans = append(plans, types.ActionPlan{
			Priority:    i + 1,
			ProductName: rec.ProductName,
			TrackType:   rec.TrackType,
			Phases:      phases,
		})
	}
	return plans
}
