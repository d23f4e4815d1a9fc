// Package cost computes monthly cost totals and line-by-line breakdowns
// from selection state. Everything here is a pure function recomputed
// from scratch on every call; there is no running sum to drift out of
// step with the state it was derived from.
package cost

import (
	"github.com/joss/aicost/internal/catalog"
	"github.com/joss/aicost/internal/selection"
)

// Totals is the grand total split by category.
type Totals struct {
	API   float64 // per-usage model cost
	Plan  float64 // subscription cost, yearly prices normalized to /12
	Total float64
}

// ModelLine is one model row in the breakdown.
type ModelLine struct {
	Model      catalog.Model
	Selection  selection.ModelSelection
	InputCost  float64
	OutputCost float64
	Total      float64
}

// PlanLine is one plan row in the breakdown.
type PlanLine struct {
	Plan      catalog.Plan
	Selection selection.PlanSelection
	UnitPrice float64 // effective monthly price for the billing cycle
	Total     float64
}

// ServiceCost is the per-service section of the breakdown.
type ServiceCost struct {
	Service  catalog.Summary
	Models   []ModelLine
	Plans    []PlanLine
	Subtotal float64
}

// modelCost returns input and output cost for a model selection.
// Prices are per 1000 units, so the divisor is exactly 1000.
func modelCost(m *catalog.Model, sel selection.ModelSelection) (in, out float64) {
	in = float64(sel.InputTokens) * m.InputPrice / 1000
	out = float64(sel.OutputTokens) * m.OutputPrice / 1000
	return in, out
}

// planUnitPrice returns the effective monthly price for one plan unit.
func planUnitPrice(p *catalog.Plan, cycle selection.BillingCycle) float64 {
	if cycle == selection.Yearly {
		return p.YearlyPrice / 12
	}
	return p.MonthlyPrice
}

// Compute returns the cost totals for a selection list. Callers
// conventionally pass the active subset; inactive selections contribute
// nothing either way. Selections referencing ids missing from their
// embedded service are skipped.
func Compute(sels []selection.ServiceSelection) Totals {
	var t Totals
	for i := range sels {
		svc := &sels[i].Service
		for _, ms := range sels[i].SelectedModels {
			m := svc.Model(ms.ID)
			if m == nil {
				continue
			}
			in, out := modelCost(m, ms)
			t.API += in + out
		}
		for _, ps := range sels[i].SelectedPlans {
			p := svc.Plan(ps.ID)
			if p == nil {
				continue
			}
			t.Plan += planUnitPrice(p, ps.BillingCycle) * float64(ps.Quantity)
		}
	}
	t.Total = t.API + t.Plan
	return t
}

// Breakdown returns per-service line items. Model lines appear only for
// selections with non-zero usage; plan lines always (a stored plan entry
// always has quantity >= 1). No rounding is applied; formatting to two
// decimals is the renderer's business.
func Breakdown(sels []selection.ServiceSelection) []ServiceCost {
	var out []ServiceCost
	for i := range sels {
		svc := &sels[i].Service
		sc := ServiceCost{Service: svc.Summary()}

		for _, ms := range sels[i].SelectedModels {
			if ms.InputTokens == 0 && ms.OutputTokens == 0 {
				continue
			}
			m := svc.Model(ms.ID)
			if m == nil {
				continue
			}
			in, outCost := modelCost(m, ms)
			sc.Models = append(sc.Models, ModelLine{
				Model:      *m,
				Selection:  ms,
				InputCost:  in,
				OutputCost: outCost,
				Total:      in + outCost,
			})
			sc.Subtotal += in + outCost
		}

		for _, ps := range sels[i].SelectedPlans {
			p := svc.Plan(ps.ID)
			if p == nil {
				continue
			}
			unit := planUnitPrice(p, ps.BillingCycle)
			line := unit * float64(ps.Quantity)
			sc.Plans = append(sc.Plans, PlanLine{
				Plan:      *p,
				Selection: ps,
				UnitPrice: unit,
				Total:     line,
			})
			sc.Subtotal += line
		}

		if len(sc.Models) > 0 || len(sc.Plans) > 0 {
			out = append(out, sc)
		}
	}
	return out
}
