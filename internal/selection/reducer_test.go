package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/aicost/internal/catalog"
)

func testService(id string) catalog.Service {
	return catalog.Service{
		ID:       id,
		Name:     "Service " + id,
		Provider: "Provider",
		Models: []catalog.Model{
			{ID: "m1", Name: "Model One", InputPrice: 0.03, OutputPrice: 0.06, ContextWindow: 8192},
			{ID: "m2", Name: "Model Two", InputPrice: 0.001, OutputPrice: 0.002, ContextWindow: 4096},
		},
		Plans: []catalog.Plan{
			{ID: "p1", Name: "Basic", MonthlyPrice: 20, YearlyPrice: 200},
			{ID: "p2", Name: "Pro", MonthlyPrice: 50, YearlyPrice: 500},
		},
	}
}

func TestAddServiceIfAbsentDedup(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))
	s.AddServiceIfAbsent(testService("svc"))

	assert.Len(t, s.Selections(), 1)
}

func TestToggleModel(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))

	s.ToggleModel("svc", "m1")
	sel, ok := s.Get("svc")
	require.True(t, ok)
	require.Len(t, sel.SelectedModels, 1)
	assert.Equal(t, "m1", sel.SelectedModels[0].ID)
	assert.Equal(t, 0, sel.SelectedModels[0].InputTokens)
	assert.Equal(t, 0, sel.SelectedModels[0].OutputTokens)

	// Toggling again removes it.
	s.ToggleModel("svc", "m1")
	sel, _ = s.Get("svc")
	assert.Empty(t, sel.SelectedModels)
}

func TestSetTokenCount(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))
	s.ToggleModel("svc", "m1")

	s.SetTokenCount("svc", "m1", InputTokens, 10000)
	s.SetTokenCount("svc", "m1", OutputTokens, 2000)

	sel, _ := s.Get("svc")
	assert.Equal(t, 10000, sel.SelectedModels[0].InputTokens)
	assert.Equal(t, 2000, sel.SelectedModels[0].OutputTokens)
}

func TestSetTokenCountNegativeCoerced(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))
	s.ToggleModel("svc", "m1")
	s.SetTokenCount("svc", "m1", InputTokens, 500)

	s.SetTokenCount("svc", "m1", InputTokens, -3)

	sel, _ := s.Get("svc")
	assert.Equal(t, 0, sel.SelectedModels[0].InputTokens)
}

func TestSetTokenCountMissingModelNoop(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))

	// Model was never toggled on; the edit must not create it.
	s.SetTokenCount("svc", "m1", InputTokens, 10000)

	sel, _ := s.Get("svc")
	assert.Empty(t, sel.SelectedModels)
}

func TestChangePlanQuantityFloor(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))
	s.ChangePlanQuantity("svc", "p1", 1, Monthly)

	sel, _ := s.Get("svc")
	require.Len(t, sel.SelectedPlans, 1)
	assert.Equal(t, 1, sel.SelectedPlans[0].Quantity)

	// Decrementing to zero removes the entry rather than storing 0.
	s.ChangePlanQuantity("svc", "p1", -1, Monthly)
	sel, _ = s.Get("svc")
	assert.Empty(t, sel.SelectedPlans)

	// Decrementing an absent entry stays a no-op.
	s.ChangePlanQuantity("svc", "p1", -1, Monthly)
	sel, _ = s.Get("svc")
	assert.Empty(t, sel.SelectedPlans)
}

func TestChangePlanQuantityFirstIncrementAlwaysOne(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))

	// The first positive delta creates the entry with quantity 1,
	// whatever its magnitude.
	s.ChangePlanQuantity("svc", "p1", 5, Monthly)

	sel, _ := s.Get("svc")
	require.Len(t, sel.SelectedPlans, 1)
	assert.Equal(t, 1, sel.SelectedPlans[0].Quantity)

	// Subsequent deltas apply fully.
	s.ChangePlanQuantity("svc", "p1", 3, Monthly)
	sel, _ = s.Get("svc")
	assert.Equal(t, 4, sel.SelectedPlans[0].Quantity)
}

func TestChangePlanQuantityLargeNegativeRemoves(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))
	s.ChangePlanQuantity("svc", "p1", 1, Monthly)
	s.ChangePlanQuantity("svc", "p1", 1, Monthly)

	s.ChangePlanQuantity("svc", "p1", -10, Monthly)

	sel, _ := s.Get("svc")
	assert.Empty(t, sel.SelectedPlans)
}

func TestPerCycleIndependence(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))

	s.ChangePlanQuantity("svc", "p1", 1, Monthly)
	s.ChangePlanQuantity("svc", "p1", 1, Monthly)
	s.ChangePlanQuantity("svc", "p1", 1, Yearly)

	sel, _ := s.Get("svc")
	require.Len(t, sel.SelectedPlans, 2)

	var monthly, yearly *PlanSelection
	for i := range sel.SelectedPlans {
		switch sel.SelectedPlans[i].BillingCycle {
		case Monthly:
			monthly = &sel.SelectedPlans[i]
		case Yearly:
			yearly = &sel.SelectedPlans[i]
		}
	}
	require.NotNil(t, monthly)
	require.NotNil(t, yearly)
	assert.Equal(t, 2, monthly.Quantity)
	assert.Equal(t, 1, yearly.Quantity)

	// Removing one cycle leaves the other untouched.
	s.RemovePlan("svc", "p1", Monthly)
	sel, _ = s.Get("svc")
	require.Len(t, sel.SelectedPlans, 1)
	assert.Equal(t, Yearly, sel.SelectedPlans[0].BillingCycle)
	assert.Equal(t, 1, sel.SelectedPlans[0].Quantity)
}

func TestRemoveModel(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))
	s.ToggleModel("svc", "m1")
	s.ToggleModel("svc", "m2")

	s.RemoveModel("svc", "m1")

	sel, _ := s.Get("svc")
	require.Len(t, sel.SelectedModels, 1)
	assert.Equal(t, "m2", sel.SelectedModels[0].ID)
}

func TestUnknownServiceNoop(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))

	s.ToggleModel("nope", "m1")
	s.SetTokenCount("nope", "m1", InputTokens, 100)
	s.ChangePlanQuantity("nope", "p1", 1, Monthly)
	s.RemoveModel("nope", "m1")
	s.RemovePlan("nope", "p1", Monthly)

	sel, _ := s.Get("svc")
	assert.Empty(t, sel.SelectedModels)
	assert.Empty(t, sel.SelectedPlans)
	assert.Len(t, s.Selections(), 1)
}

func TestUpsertService(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("svc"))

	replacement := ServiceSelection{
		Service:        testService("svc"),
		SelectedModels: []ModelSelection{{ID: "m1", InputTokens: 42}},
	}
	s.UpsertService(replacement)

	require.Len(t, s.Selections(), 1)
	sel, _ := s.Get("svc")
	require.Len(t, sel.SelectedModels, 1)
	assert.Equal(t, 42, sel.SelectedModels[0].InputTokens)

	// Upsert of a new id appends.
	s.UpsertService(ServiceSelection{Service: testService("other")})
	assert.Len(t, s.Selections(), 2)
}

func TestSetAll(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("old"))

	s.SetAll([]ServiceSelection{
		{Service: testService("a")},
		{Service: testService("b")},
	})

	sels := s.Selections()
	require.Len(t, sels, 2)
	assert.Equal(t, "a", sels[0].Service.ID)
	assert.Equal(t, "b", sels[1].Service.ID)
}

func TestActiveFilter(t *testing.T) {
	s := NewStore()
	s.AddServiceIfAbsent(testService("idle"))
	s.AddServiceIfAbsent(testService("tokens"))
	s.AddServiceIfAbsent(testService("plans"))
	s.AddServiceIfAbsent(testService("zeroed"))

	s.ToggleModel("tokens", "m1")
	s.SetTokenCount("tokens", "m1", InputTokens, 1)

	s.ChangePlanQuantity("plans", "p1", 1, Monthly)

	// Toggled on but all-zero usage is not active.
	s.ToggleModel("zeroed", "m1")

	active := s.Active()
	require.Len(t, active, 2)
	ids := []string{active[0].Service.ID, active[1].Service.ID}
	assert.ElementsMatch(t, []string{"tokens", "plans"}, ids)

	assert.True(t, s.HasActive())

	// The idle service stays in the full list even though inactive.
	assert.Len(t, s.Selections(), 4)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	state := []ServiceSelection{{
		Service:        testService("svc"),
		SelectedModels: []ModelSelection{{ID: "m1", InputTokens: 5}},
		SelectedPlans:  []PlanSelection{{ID: "p1", Quantity: 2, BillingCycle: Monthly}},
	}}

	_ = Reduce(state, ToggleModel{ServiceID: "svc", ModelID: "m1"})
	_ = Reduce(state, ChangePlanQuantity{ServiceID: "svc", PlanID: "p1", Delta: -2, Cycle: Monthly})
	_ = Reduce(state, SetTokenCount{ServiceID: "svc", ModelID: "m1", Kind: InputTokens, Value: 99})

	require.Len(t, state[0].SelectedModels, 1)
	assert.Equal(t, 5, state[0].SelectedModels[0].InputTokens)
	require.Len(t, state[0].SelectedPlans, 1)
	assert.Equal(t, 2, state[0].SelectedPlans[0].Quantity)
}
