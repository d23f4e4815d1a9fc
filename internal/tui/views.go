package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joss/aicost/internal/catalog"
	"github.com/joss/aicost/internal/cost"
	"github.com/joss/aicost/internal/selection"
	aistrings "github.com/joss/aicost/internal/strings"
)

// filteredServices applies the search box as a case-insensitive prefix
// match on service name or provider.
func (m Model) filteredServices() []catalog.Summary {
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		return m.services
	}
	var out []catalog.Summary
	for _, s := range m.services {
		if aistrings.HasPrefixFold(s.Name, query) || aistrings.HasPrefixFold(s.Provider, query) {
			out = append(out, s)
		}
	}
	return out
}

// bdLine is one removable line in the breakdown view.
type bdLine struct {
	kind      rowKind
	serviceID string
	modelID   string
	planID    string
	cycle     selection.BillingCycle
	text      string
}

// breakdownLines flattens the active breakdown into cursorable lines.
// Recomputed on every call so the view can never drift from the store.
func (m Model) breakdownLines() []bdLine {
	var lines []bdLine
	for _, sc := range cost.Breakdown(m.cfg.Store.Active()) {
		for _, ml := range sc.Models {
			lines = append(lines, bdLine{
				kind:      rowModel,
				serviceID: sc.Service.ID,
				modelID:   ml.Selection.ID,
				text: fmt.Sprintf("%-12s %-18s in:%-10d out:%-10d $%.2f",
					sc.Service.Name, ml.Model.Name,
					ml.Selection.InputTokens, ml.Selection.OutputTokens, ml.Total),
			})
		}
		for _, pl := range sc.Plans {
			lines = append(lines, bdLine{
				kind:      rowPlan,
				serviceID: sc.Service.ID,
				planID:    pl.Selection.ID,
				cycle:     pl.Selection.BillingCycle,
				text: fmt.Sprintf("%-12s %-18s %-7s x%-3d $%.2f/mo      $%.2f",
					sc.Service.Name, pl.Plan.Name,
					string(pl.Selection.BillingCycle), pl.Selection.Quantity,
					pl.UnitPrice, pl.Total),
			})
		}
	}
	return lines
}

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}
	if !m.ready {
		return fmt.Sprintf("\n  %s Loading...", m.spinner.View())
	}

	switch m.view {
	case ViewDetail:
		return m.viewDetail()
	case ViewBreakdown:
		return m.viewBreakdown()
	case ViewShare:
		return m.viewShare()
	case ViewHelp:
		return m.viewHelp()
	default:
		return m.viewList()
	}
}

// statusBar shows the running totals, recomputed fresh on every render.
func (m Model) statusBar() string {
	totals := cost.Compute(m.cfg.Store.Active())
	bar := fmt.Sprintf("API: $%.2f │ Plans: $%.2f │ Total: $%.2f",
		totals.API, totals.Plan, totals.Total)
	return statusBarStyle.Render(bar)
}

func (m Model) header(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString("  " + m.statusBar() + "\n")
	if m.errText != "" {
		b.WriteString("  " + errorStyle.Render(m.errText) + "\n")
	}
	if m.toast != "" {
		b.WriteString("  " + m.toast + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewList() string {
	var b strings.Builder
	b.WriteString(m.header("◇ aicost — AI Service Comparison"))

	b.WriteString("  " + m.search.View() + "\n\n")

	if m.loadingList {
		b.WriteString(fmt.Sprintf("  %s Loading services...\n", m.spinner.View()))
	} else {
		filtered := m.filteredServices()
		if len(filtered) == 0 {
			b.WriteString(infoStyle.Render("  No services match\n"))
		}
		for i, s := range filtered {
			cursor := "  "
			style := infoStyle
			if i == m.listIdx {
				cursor = "▶ "
				style = activeStyle
			}
			marker := " "
			if sel, ok := m.cfg.Store.Get(s.ID); ok && sel.IsActive() {
				marker = selectedStyle.Render("●")
			}
			line := fmt.Sprintf("%s%s %-20s %-12s %s",
				cursor, marker,
				aistrings.Truncate(s.Name, 20),
				aistrings.Truncate(s.Provider, 12),
				aistrings.Truncate(s.Description, 44))
			b.WriteString(style.Render(line) + "\n")
		}
	}

	b.WriteString(helpStyle.Render("\n  enter: open │ /: search │ b: breakdown │ s: share │ ?: help │ q: quit"))
	return b.String()
}

func (m Model) viewDetail() string {
	var b strings.Builder

	if m.loadingDetail || m.current == nil {
		b.WriteString(m.header("◇ aicost"))
		b.WriteString(fmt.Sprintf("  %s Loading service...\n", m.spinner.View()))
		b.WriteString(helpStyle.Render("\n  esc: back"))
		return b.String()
	}

	svc := m.current
	b.WriteString(m.header(fmt.Sprintf("◇ %s — %s", svc.Name, svc.Provider)))
	b.WriteString(infoStyle.Render("  "+aistrings.WordWrap(svc.Description, max(20, m.width-4))) + "\n\n")

	sel, _ := m.cfg.Store.Get(svc.ID)

	modelHeader := false
	planHeader := false
	for i, row := range m.rows {
		cursor := "  "
		style := infoStyle
		if i == m.rowIdx {
			cursor = "▶ "
			style = activeStyle
		}

		switch row.kind {
		case rowModel:
			if !modelHeader {
				b.WriteString(titleStyle.Render("Models") + "\n")
				modelHeader = true
			}
			mdl := svc.Model(row.modelID)
			if mdl == nil {
				continue
			}
			b.WriteString(m.renderModelRow(cursor, style, mdl, sel, i))
		case rowPlan:
			if !planHeader {
				if modelHeader {
					b.WriteString("\n")
				}
				b.WriteString(titleStyle.Render("Plans") + "\n")
				planHeader = true
			}
			p := svc.Plan(row.planID)
			if p == nil {
				continue
			}
			b.WriteString(m.renderPlanRow(cursor, style, p, row.cycle, sel))
		}
	}

	help := "space: toggle model │ i/o: edit tokens │ +/-: plan qty │ b: breakdown │ s: share │ esc: back"
	if m.editing {
		help = "enter: apply │ esc: cancel"
	}
	b.WriteString(helpStyle.Render("\n  " + help))
	return b.String()
}

func (m Model) renderModelRow(cursor string, style lipgloss.Style, mdl *catalog.Model, sel selection.ServiceSelection, rowIdx int) string {
	check := "[ ]"
	input, output := 0, 0
	for _, ms := range sel.SelectedModels {
		if ms.ID == mdl.ID {
			check = "[x]"
			input, output = ms.InputTokens, ms.OutputTokens
		}
	}

	line := fmt.Sprintf("%s%s %-18s $%g/$%g per 1K  ctx %d", cursor, check, mdl.Name,
		mdl.InputPrice, mdl.OutputPrice, mdl.ContextWindow)
	out := style.Render(line) + "\n"

	if check == "[x]" {
		usage := fmt.Sprintf("      in: %d  out: %d", input, output)
		if m.editing && rowIdx == m.rowIdx {
			usage = fmt.Sprintf("      %s tokens: %s", string(m.editKind), m.tokenInput.View())
		}
		out += selectedStyle.Render(usage) + "\n"
	}
	return out
}

func (m Model) renderPlanRow(cursor string, style lipgloss.Style, p *catalog.Plan, cycle selection.BillingCycle, sel selection.ServiceSelection) string {
	qty := 0
	for _, ps := range sel.SelectedPlans {
		if ps.ID == p.ID && ps.BillingCycle == cycle {
			qty = ps.Quantity
		}
	}

	price := p.MonthlyPrice
	unit := "/mo"
	if cycle == selection.Yearly {
		price = p.YearlyPrice
		unit = "/yr"
	}

	qtyStr := "  -  "
	if qty > 0 {
		qtyStr = fmt.Sprintf("x %-3d", qty)
	}
	line := fmt.Sprintf("%s%-14s %-8s $%g%s  %s", cursor, p.Name, string(cycle), price, unit, qtyStr)
	if qty > 0 {
		return style.Render(line) + selectedStyle.Render(" ●") + "\n"
	}
	return style.Render(line) + "\n"
}

func (m Model) viewBreakdown() string {
	var b strings.Builder
	b.WriteString(m.header("◇ Cost Breakdown"))

	lines := m.breakdownLines()
	if len(lines) == 0 {
		b.WriteString(infoStyle.Render("  No active selections\n"))
	}
	for i, line := range lines {
		cursor := "  "
		style := infoStyle
		if i == m.bdIdx {
			cursor = "▶ "
			style = activeStyle
		}
		b.WriteString(style.Render(cursor+line.text) + "\n")
	}

	totals := cost.Compute(m.cfg.Store.Active())
	b.WriteString("\n" + totalStyle.Render(fmt.Sprintf("  Total: $%.2f/mo", totals.Total)) + "\n")

	b.WriteString(helpStyle.Render("\n  x: remove line │ s: share │ esc: back"))
	return b.String()
}

func (m Model) viewShare() string {
	var b strings.Builder
	b.WriteString(m.header("◇ Share"))

	b.WriteString(infoStyle.Render("  Anyone opening this URL sees your current selection:\n\n"))
	width := max(24, m.width-8)
	b.WriteString(boxStyle.Width(width).Render(aistrings.Truncate(m.shareURL, width*3)) + "\n")

	b.WriteString(helpStyle.Render("\n  c: copy to clipboard │ esc: close"))
	return b.String()
}

func (m Model) viewHelp() string {
	help := `
  aicost — compare AI service costs

  LIST
    j/k       Navigate services
    /         Search (prefix match on name or provider)
    enter     Open service detail

  DETAIL
    j/k       Navigate models and plans
    space     Toggle model selection
    i / o     Edit input / output token count
    + / -     Change plan quantity for the highlighted cycle

  EVERYWHERE
    b         Cost breakdown (x removes a line)
    s         Share current selection as URL
    ?         Toggle help
    q         Back / quit
`
	return titleStyle.Render("Help") + "\n" + infoStyle.Render(help) +
		helpStyle.Render("\n  press any key to return")
}
