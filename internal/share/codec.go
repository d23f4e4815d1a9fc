// Package share serializes selection state into a URL-safe token and
// back. Only ids and user-entered quantities travel in the token; on
// decode every service is re-resolved against the live catalog so a
// shared link always reflects current prices, never a stale snapshot.
package share

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/joss/aicost/internal/catalog"
	"github.com/joss/aicost/internal/selection"
)

// Resolver looks up services in the live catalog during decode.
// catalog.Store satisfies it.
type Resolver interface {
	GetService(ctx context.Context, id string) (*catalog.Service, error)
}

// Wire schema. One entry per active service selection.
type encodedModel struct {
	ID     string `json:"id"`
	Input  int    `json:"input"`
	Output int    `json:"output"`
}

type encodedPlan struct {
	ID       string                 `json:"id"`
	Quantity int                    `json:"quantity"`
	Cycle    selection.BillingCycle `json:"cycle"`
}

type encodedService struct {
	ID     string         `json:"id"`
	Models []encodedModel `json:"models"`
	Plans  []encodedPlan  `json:"plans"`
}

// Encode serializes the active subset of the given selections into a
// URL-query-safe token: minimal JSON, percent-encoded. The decoder
// reverses exactly this transform; no other scheme is emitted.
func Encode(sels []selection.ServiceSelection) (string, error) {
	state := make([]encodedService, 0, len(sels))
	for i := range sels {
		if !sels[i].IsActive() {
			continue
		}
		es := encodedService{
			ID:     sels[i].Service.ID,
			Models: make([]encodedModel, 0, len(sels[i].SelectedModels)),
			Plans:  make([]encodedPlan, 0, len(sels[i].SelectedPlans)),
		}
		for _, m := range sels[i].SelectedModels {
			es.Models = append(es.Models, encodedModel{ID: m.ID, Input: m.InputTokens, Output: m.OutputTokens})
		}
		for _, p := range sels[i].SelectedPlans {
			es.Plans = append(es.Plans, encodedPlan{ID: p.ID, Quantity: p.Quantity, Cycle: p.BillingCycle})
		}
		state = append(state, es)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal state: %w", err)
	}
	return url.QueryEscape(string(data)), nil
}

// Decode reverses Encode and rehydrates the result against the live
// catalog. Entries whose service id no longer resolves are dropped, as
// are model and plan ids unknown to the resolved service; a partially
// restored state beats a failed one. A malformed token returns an error
// callers treat as "no state".
func Decode(ctx context.Context, token string, resolver Resolver) ([]selection.ServiceSelection, error) {
	raw, err := url.QueryUnescape(token)
	if err != nil {
		return nil, fmt.Errorf("unescape token: %w", err)
	}

	var state []encodedService
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	var out []selection.ServiceSelection
	for _, es := range state {
		svc, err := resolver.GetService(ctx, es.ID)
		if err != nil || svc == nil {
			continue
		}

		sel := selection.ServiceSelection{Service: *svc}
		for _, m := range es.Models {
			if svc.Model(m.ID) == nil {
				continue
			}
			in, outTok := m.Input, m.Output
			if in < 0 {
				in = 0
			}
			if outTok < 0 {
				outTok = 0
			}
			sel.SelectedModels = append(sel.SelectedModels, selection.ModelSelection{
				ID: m.ID, InputTokens: in, OutputTokens: outTok,
			})
		}
		for _, p := range es.Plans {
			if svc.Plan(p.ID) == nil || p.Quantity <= 0 || !p.Cycle.Valid() {
				continue
			}
			sel.SelectedPlans = append(sel.SelectedPlans, selection.PlanSelection{
				ID: p.ID, Quantity: p.Quantity, BillingCycle: p.Cycle,
			})
		}
		out = append(out, sel)
	}
	return out, nil
}
