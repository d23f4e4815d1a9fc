package selection

import "github.com/joss/aicost/internal/catalog"

// Store is the session-local selection state container. It is not an
// ambient singleton: callers construct one per session and pass it where
// it is needed. All mutation funnels through Dispatch on a single
// goroutine (the UI event loop), so the store carries no lock.
type Store struct {
	selections []ServiceSelection
}

// NewStore creates an empty selection store.
func NewStore() *Store {
	return &Store{}
}

// Dispatch applies an action through the reducer.
func (s *Store) Dispatch(action Action) {
	s.selections = Reduce(s.selections, action)
}

// Selections returns a copy of the full selection list, including
// services the user opened but selected nothing in.
func (s *Store) Selections() []ServiceSelection {
	return cloneAll(s.selections)
}

// Active returns a copy of the selections that count toward totals.
func (s *Store) Active() []ServiceSelection {
	var out []ServiceSelection
	for i := range s.selections {
		if s.selections[i].IsActive() {
			out = append(out, s.selections[i].clone())
		}
	}
	return out
}

// HasActive reports whether any selection counts toward totals. Share
// is disabled when this is false.
func (s *Store) HasActive() bool {
	for i := range s.selections {
		if s.selections[i].IsActive() {
			return true
		}
	}
	return false
}

// Get returns a copy of the selection for a service, if present.
func (s *Store) Get(serviceID string) (ServiceSelection, bool) {
	for i := range s.selections {
		if s.selections[i].Service.ID == serviceID {
			return s.selections[i].clone(), true
		}
	}
	return ServiceSelection{}, false
}

// Convenience dispatchers mirroring the action set.

func (s *Store) SetAll(list []ServiceSelection) {
	s.Dispatch(SetAll{Selections: list})
}

func (s *Store) UpsertService(sel ServiceSelection) {
	s.Dispatch(UpsertService{Selection: sel})
}

func (s *Store) AddServiceIfAbsent(svc catalog.Service) {
	s.Dispatch(AddServiceIfAbsent{Service: svc})
}

func (s *Store) ToggleModel(serviceID, modelID string) {
	s.Dispatch(ToggleModel{ServiceID: serviceID, ModelID: modelID})
}

func (s *Store) SetTokenCount(serviceID, modelID string, kind TokenKind, value int) {
	s.Dispatch(SetTokenCount{ServiceID: serviceID, ModelID: modelID, Kind: kind, Value: value})
}

func (s *Store) ChangePlanQuantity(serviceID, planID string, delta int, cycle BillingCycle) {
	s.Dispatch(ChangePlanQuantity{ServiceID: serviceID, PlanID: planID, Delta: delta, Cycle: cycle})
}

func (s *Store) RemoveModel(serviceID, modelID string) {
	s.Dispatch(RemoveModel{ServiceID: serviceID, ModelID: modelID})
}

func (s *Store) RemovePlan(serviceID, planID string, cycle BillingCycle) {
	s.Dispatch(RemovePlan{ServiceID: serviceID, PlanID: planID, Cycle: cycle})
}
