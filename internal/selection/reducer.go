package selection

import "github.com/joss/aicost/internal/catalog"

// Action is a discrete state transition applied by Reduce.
type Action interface {
	isAction()
}

// SetAll replaces the whole selection list. Used when hydrating from a
// share token.
type SetAll struct {
	Selections []ServiceSelection
}

// UpsertService replaces the selection with the same service id, or
// appends it if absent.
type UpsertService struct {
	Selection ServiceSelection
}

// AddServiceIfAbsent appends an empty selection for the service unless
// one already exists. Re-opening a service is a no-op, never a duplicate.
type AddServiceIfAbsent struct {
	Service catalog.Service
}

// ToggleModel adds the model with zeroed usage, or removes it if it is
// already selected.
type ToggleModel struct {
	ServiceID string
	ModelID   string
}

// SetTokenCount updates one usage counter of a selected model. A no-op
// when the model is not selected; callers toggle it on first.
type SetTokenCount struct {
	ServiceID string
	ModelID   string
	Kind      TokenKind
	Value     int
}

// ChangePlanQuantity adjusts a plan entry's quantity by Delta, keyed by
// (plan id, billing cycle). The quantity floors at 0 and a zero entry is
// removed rather than kept.
type ChangePlanQuantity struct {
	ServiceID string
	PlanID    string
	Delta     int
	Cycle     BillingCycle
}

// RemoveModel removes a model line directly (breakdown view).
type RemoveModel struct {
	ServiceID string
	ModelID   string
}

// RemovePlan removes a plan line directly (breakdown view).
type RemovePlan struct {
	ServiceID string
	PlanID    string
	Cycle     BillingCycle
}

func (SetAll) isAction()             {}
func (UpsertService) isAction()      {}
func (AddServiceIfAbsent) isAction() {}
func (ToggleModel) isAction()        {}
func (SetTokenCount) isAction()      {}
func (ChangePlanQuantity) isAction() {}
func (RemoveModel) isAction()        {}
func (RemovePlan) isAction()         {}

// Reduce applies an action to a selection list and returns the new list.
// It is pure and total: the input is never mutated, unknown service or
// model ids make the action a no-op, and no action can fail.
func Reduce(state []ServiceSelection, action Action) []ServiceSelection {
	switch a := action.(type) {
	case SetAll:
		return cloneAll(a.Selections)

	case UpsertService:
		out := cloneAll(state)
		for i := range out {
			if out[i].Service.ID == a.Selection.Service.ID {
				out[i] = a.Selection.clone()
				return out
			}
		}
		return append(out, a.Selection.clone())

	case AddServiceIfAbsent:
		for i := range state {
			if state[i].Service.ID == a.Service.ID {
				return cloneAll(state)
			}
		}
		out := cloneAll(state)
		return append(out, ServiceSelection{Service: a.Service})

	case ToggleModel:
		return mapService(state, a.ServiceID, func(sel *ServiceSelection) {
			for i, m := range sel.SelectedModels {
				if m.ID == a.ModelID {
					sel.SelectedModels = append(sel.SelectedModels[:i], sel.SelectedModels[i+1:]...)
					return
				}
			}
			sel.SelectedModels = append(sel.SelectedModels, ModelSelection{ID: a.ModelID})
		})

	case SetTokenCount:
		return mapService(state, a.ServiceID, func(sel *ServiceSelection) {
			value := a.Value
			if value < 0 {
				value = 0
			}
			for i := range sel.SelectedModels {
				if sel.SelectedModels[i].ID != a.ModelID {
					continue
				}
				if a.Kind == OutputTokens {
					sel.SelectedModels[i].OutputTokens = value
				} else {
					sel.SelectedModels[i].InputTokens = value
				}
				return
			}
		})

	case ChangePlanQuantity:
		return mapService(state, a.ServiceID, func(sel *ServiceSelection) {
			sel.SelectedPlans = changePlanQuantity(sel.SelectedPlans, a.PlanID, a.Delta, a.Cycle)
		})

	case RemoveModel:
		return mapService(state, a.ServiceID, func(sel *ServiceSelection) {
			kept := sel.SelectedModels[:0]
			for _, m := range sel.SelectedModels {
				if m.ID != a.ModelID {
					kept = append(kept, m)
				}
			}
			sel.SelectedModels = kept
		})

	case RemovePlan:
		return mapService(state, a.ServiceID, func(sel *ServiceSelection) {
			kept := sel.SelectedPlans[:0]
			for _, p := range sel.SelectedPlans {
				if !(p.ID == a.PlanID && p.BillingCycle == a.Cycle) {
					kept = append(kept, p)
				}
			}
			sel.SelectedPlans = kept
		})
	}

	return cloneAll(state)
}

func changePlanQuantity(plans []PlanSelection, planID string, delta int, cycle BillingCycle) []PlanSelection {
	for i, p := range plans {
		if p.ID != planID || p.BillingCycle != cycle {
			continue
		}
		newQty := p.Quantity + delta
		if newQty <= 0 {
			return append(plans[:i], plans[i+1:]...)
		}
		plans[i].Quantity = newQty
		return plans
	}
	if delta > 0 {
		// First increment always creates the entry with quantity 1,
		// whatever the delta's magnitude.
		return append(plans, PlanSelection{ID: planID, Quantity: 1, BillingCycle: cycle})
	}
	return plans
}

// mapService applies fn to the selection with the given service id.
// Unknown ids leave the state unchanged (modulo copying).
func mapService(state []ServiceSelection, serviceID string, fn func(*ServiceSelection)) []ServiceSelection {
	out := cloneAll(state)
	for i := range out {
		if out[i].Service.ID == serviceID {
			fn(&out[i])
			break
		}
	}
	return out
}

func cloneAll(state []ServiceSelection) []ServiceSelection {
	out := make([]ServiceSelection, len(state))
	for i := range state {
		out[i] = state[i].clone()
	}
	return out
}
