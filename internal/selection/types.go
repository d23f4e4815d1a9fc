// Package selection holds the in-memory selection state: which services
// the user has opened and which models and plans are selected at what
// quantities. All mutation goes through a reducer so the state container
// can be constructed per session and tested in isolation.
package selection

import "github.com/joss/aicost/internal/catalog"

// BillingCycle selects between a plan's monthly and yearly price.
type BillingCycle string

const (
	Monthly BillingCycle = "monthly"
	Yearly  BillingCycle = "yearly"
)

// Valid reports whether the cycle is one of the two known values.
func (c BillingCycle) Valid() bool {
	return c == Monthly || c == Yearly
}

// TokenKind names which usage counter of a model selection to edit.
type TokenKind string

const (
	InputTokens  TokenKind = "input"
	OutputTokens TokenKind = "output"
)

// ModelSelection is a selected model with its expected monthly usage.
type ModelSelection struct {
	ID           string `json:"id"`
	InputTokens  int    `json:"inputTokens"`
	OutputTokens int    `json:"outputTokens"`
}

// PlanSelection is a selected plan. At most one entry exists per
// (plan id, billing cycle) pair; Quantity is always at least 1.
type PlanSelection struct {
	ID           string       `json:"id"`
	Quantity     int          `json:"quantity"`
	BillingCycle BillingCycle `json:"billingCycle"`
}

// ServiceSelection groups everything selected under one service. The
// embedded Service carries the pricing data totals are computed from.
type ServiceSelection struct {
	Service        catalog.Service  `json:"service"`
	SelectedModels []ModelSelection `json:"selectedModels"`
	SelectedPlans  []PlanSelection  `json:"selectedPlans"`
}

// IsActive reports whether the selection counts toward totals: at least
// one model with non-zero usage, or any plan entry.
func (s *ServiceSelection) IsActive() bool {
	if len(s.SelectedPlans) > 0 {
		return true
	}
	for _, m := range s.SelectedModels {
		if m.InputTokens > 0 || m.OutputTokens > 0 {
			return true
		}
	}
	return false
}

func (s *ServiceSelection) clone() ServiceSelection {
	out := ServiceSelection{Service: s.Service}
	out.SelectedModels = append([]ModelSelection(nil), s.SelectedModels...)
	out.SelectedPlans = append([]PlanSelection(nil), s.SelectedPlans...)
	return out
}
