package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeedAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx))

	services, err := store.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 3)

	// Ordered by name: ChatGPT, Claude, Gemini.
	assert.Equal(t, "ChatGPT", services[0].Name)
	assert.Equal(t, "Claude", services[1].Name)
	assert.Equal(t, "Gemini", services[2].Name)
	assert.Equal(t, "OpenAI", services[0].Provider)

	// Summaries carry no pricing data; that lives on the detail fetch.
	assert.NotEmpty(t, services[0].Description)
}

func TestSeedIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Seed(ctx))
	require.NoError(t, store.Seed(ctx))

	services, err := store.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 3)
}

func TestGetService(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	svc, err := store.GetService(ctx, "openai")
	require.NoError(t, err)

	assert.Equal(t, "ChatGPT", svc.Name)
	assert.Equal(t, "OpenAI", svc.Provider)
	require.Len(t, svc.Models, 2)
	require.Len(t, svc.Plans, 3)

	gpt4 := svc.Model("gpt-4")
	require.NotNil(t, gpt4)
	assert.InDelta(t, 0.03, gpt4.InputPrice, 1e-9)
	assert.InDelta(t, 0.06, gpt4.OutputPrice, 1e-9)
	assert.Equal(t, 8192, gpt4.ContextWindow)

	basic := svc.Plan("basic")
	require.NotNil(t, basic)
	assert.InDelta(t, 20.0, basic.MonthlyPrice, 1e-9)
	assert.InDelta(t, 200.0, basic.YearlyPrice, 1e-9)
}

func TestGetServiceNotFound(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	_, err := store.GetService(ctx, "nope")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestPutServiceReplaces(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	svc := Service{
		ID: "svc", Name: "Svc", Provider: "Prov",
		Models: []Model{{ID: "m1", Name: "M1", InputPrice: 0.01, OutputPrice: 0.02}},
		Plans:  []Plan{{ID: "p1", Name: "P1", MonthlyPrice: 10}},
	}
	require.NoError(t, store.PutService(ctx, &svc))

	// Replace with a different model set; the old model must not linger.
	svc.Models = []Model{{ID: "m2", Name: "M2", InputPrice: 0.05, OutputPrice: 0.1}}
	svc.Plans = nil
	require.NoError(t, store.PutService(ctx, &svc))

	got, err := store.GetService(ctx, "svc")
	require.NoError(t, err)
	require.Len(t, got.Models, 1)
	assert.Equal(t, "m2", got.Models[0].ID)
	assert.Empty(t, got.Plans)

	services, err := store.ListServices(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 1)
}

func TestServiceHelpers(t *testing.T) {
	svc := builtin[0]

	assert.NotNil(t, svc.Model("gpt-4"))
	assert.Nil(t, svc.Model("missing"))
	assert.NotNil(t, svc.Plan("pro"))
	assert.Nil(t, svc.Plan("missing"))

	sm := svc.Summary()
	assert.Equal(t, svc.ID, sm.ID)
	assert.Equal(t, svc.Provider, sm.Provider)
}
