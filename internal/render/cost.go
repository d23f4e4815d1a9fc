package render

import (
	"strings"

	"github.com/fatih/color"

	"github.com/joss/aicost/internal/cost"
)

// Breakdown renders the full cost breakdown with grand totals.
func (r *Renderer) Breakdown(services []cost.ServiceCost, totals cost.Totals) {
	if len(services) == 0 {
		r.Empty("No active selections")
		return
	}

	if r.pretty {
		r.Println("%s", color.CyanString("Cost Breakdown"))
	} else {
		r.Println("Cost breakdown")
	}
	r.Println("%s", strings.Repeat("─", 72))

	for _, sc := range services {
		name := sc.Service.Name
		if r.pretty {
			name = color.New(color.Bold).Sprint(name)
		}
		r.Println("%s", name)

		if len(sc.Models) > 0 {
			r.Item("%-18s %10s %10s %10s %10s %10s", "MODEL", "IN TOK", "OUT TOK", "IN COST", "OUT COST", "TOTAL")
			for _, ml := range sc.Models {
				r.Item("%-18s %10d %10d %10s %10s %10s",
					ml.Model.Name,
					ml.Selection.InputTokens,
					ml.Selection.OutputTokens,
					Money(ml.InputCost),
					Money(ml.OutputCost),
					Money(ml.Total))
			}
		}

		if len(sc.Plans) > 0 {
			r.Item("%-18s %10s %10s %10s %21s", "PLAN", "CYCLE", "QTY", "UNIT/MO", "TOTAL")
			for _, pl := range sc.Plans {
				r.Item("%-18s %10s %10d %10s %21s",
					pl.Plan.Name,
					string(pl.Selection.BillingCycle),
					pl.Selection.Quantity,
					Money(pl.UnitPrice),
					Money(pl.Total))
			}
		}

		r.Item("subtotal: %s", Money(sc.Subtotal))
		r.Line()
	}

	r.Println("%s", strings.Repeat("─", 72))
	r.Println("API cost:   %s", Money(totals.API))
	r.Println("Plan cost:  %s", Money(totals.Plan))
	total := Money(totals.Total)
	if r.pretty {
		total = color.GreenString(total)
	}
	r.Println("Total:      %s", total)
}
