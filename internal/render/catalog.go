package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/joss/aicost/internal/catalog"
	aistrings "github.com/joss/aicost/internal/strings"
)

// Renderer handles catalog output formatting.
type Renderer struct {
	*Writer
	pretty bool
}

// New creates a renderer writing to stdout.
func New(pretty bool) *Renderer {
	return &Renderer{Writer: Stdout(), pretty: pretty}
}

// Services renders the service list.
func (r *Renderer) Services(services []catalog.Summary) {
	if len(services) == 0 {
		r.Empty("No services found")
		return
	}

	if r.pretty {
		r.Println("%s", color.CyanString("AI Services (%d)", len(services)))
		r.Println("%s", strings.Repeat("─", 60))
	} else {
		r.Header("AI services (%d)", len(services))
	}

	for _, s := range services {
		name := s.Name
		if r.pretty {
			name = color.New(color.Bold).Sprint(s.Name)
		}
		r.Println("%-24s %-12s %s", name, s.Provider,
			aistrings.Truncate(s.Description, 50))
		r.Nested("id: %s", s.ID)
	}
}

// Service renders full service detail with pricing tables.
func (r *Renderer) Service(svc *catalog.Service) {
	title := fmt.Sprintf("%s (%s)", svc.Name, svc.Provider)
	if r.pretty {
		title = color.CyanString(title)
	}
	r.Println("%s", title)
	r.Println("%s", strings.Repeat("─", 60))
	r.Println("%s", aistrings.WordWrap(svc.Description, 60))

	if svc.ModelPricingURL != "" {
		r.Item("model pricing: %s", svc.ModelPricingURL)
	}
	if svc.PlanPricingURL != "" {
		r.Item("plan pricing:  %s", svc.PlanPricingURL)
	}

	if len(svc.Models) > 0 {
		r.Section("models")
		r.Item("%-20s %12s %12s %10s", "NAME", "IN /1K", "OUT /1K", "CONTEXT")
		for _, m := range svc.Models {
			r.Item("%-20s %12s %12s %10d", m.Name,
				fmt.Sprintf("$%g", m.InputPrice),
				fmt.Sprintf("$%g", m.OutputPrice),
				m.ContextWindow)
		}
	}

	if len(svc.Plans) > 0 {
		r.Section("plans")
		r.Item("%-20s %12s %12s", "NAME", "MONTHLY", "YEARLY")
		for _, p := range svc.Plans {
			yearly := "—"
			if p.YearlyPrice > 0 {
				yearly = Money(p.YearlyPrice)
			}
			r.Item("%-20s %12s %12s", p.Name, Money(p.MonthlyPrice), yearly)
		}
	}
}
