// Package selftest checks that the local aicost installation is usable:
// the data directory, the catalog database, and the share pipeline.
package selftest

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joss/aicost/internal/catalog"
	"github.com/joss/aicost/internal/selection"
	"github.com/joss/aicost/internal/share"
)

// ComponentStatus represents health of a single component
type ComponentStatus struct {
	Status  string `json:"status"` // ok, degraded, error
	Latency int64  `json:"latency_ms,omitempty"`
	Detail  string `json:"detail,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Report represents overall installation health
type Report struct {
	Status     string                     `json:"status"` // healthy, degraded, unhealthy
	Components map[string]ComponentStatus `json:"components"`
	Timestamp  string                     `json:"timestamp"`
}

// Run performs a full installation check against the given data dir.
func Run(ctx context.Context, dataDir string) *Report {
	report := &Report{
		Status:     "healthy",
		Components: make(map[string]ComponentStatus),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	checks := []struct {
		name  string
		check func(context.Context) ComponentStatus
	}{
		{"data_dir", func(ctx context.Context) ComponentStatus { return checkDataDir(dataDir) }},
		{"catalog", func(ctx context.Context) ComponentStatus { return checkCatalog(ctx, dataDir) }},
		{"share_codec", checkShareCodec},
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, c := range checks {
		wg.Add(1)
		go func(name string, check func(context.Context) ComponentStatus) {
			defer wg.Done()
			result := check(ctx)
			mu.Lock()
			report.Components[name] = result
			if result.Status == "error" {
				report.Status = "unhealthy"
			} else if result.Status == "degraded" && report.Status == "healthy" {
				report.Status = "degraded"
			}
			mu.Unlock()
		}(c.name, c.check)
	}
	wg.Wait()

	return report
}

func checkDataDir(dataDir string) ComponentStatus {
	start := time.Now()

	info, err := os.Stat(dataDir)
	if os.IsNotExist(err) {
		// First run; the directory is created on open.
		return ComponentStatus{Status: "ok", Latency: time.Since(start).Milliseconds(), Detail: "will be created"}
	}
	if err != nil {
		return ComponentStatus{Status: "error", Latency: time.Since(start).Milliseconds(), Error: err.Error()}
	}
	if !info.IsDir() {
		return ComponentStatus{Status: "error", Latency: time.Since(start).Milliseconds(), Error: dataDir + " is not a directory"}
	}
	return ComponentStatus{Status: "ok", Latency: time.Since(start).Milliseconds()}
}

func checkCatalog(ctx context.Context, dataDir string) ComponentStatus {
	start := time.Now()

	store, err := catalog.Open(dataDir)
	if err != nil {
		return ComponentStatus{Status: "error", Latency: time.Since(start).Milliseconds(), Error: err.Error()}
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	services, err := store.ListServices(ctx)
	if err != nil {
		return ComponentStatus{Status: "error", Latency: time.Since(start).Milliseconds(), Error: err.Error()}
	}
	if len(services) == 0 {
		return ComponentStatus{
			Status:  "degraded",
			Latency: time.Since(start).Milliseconds(),
			Detail:  "catalog is empty, run \"aicost catalog seed\"",
		}
	}
	return ComponentStatus{
		Status:  "ok",
		Latency: time.Since(start).Milliseconds(),
		Detail:  fmt.Sprintf("%d service(s)", len(services)),
	}
}

// checkShareCodec round-trips a known selection through the encoder to
// prove the share pipeline is intact.
func checkShareCodec(ctx context.Context) ComponentStatus {
	start := time.Now()

	probe := catalog.Service{
		ID:     "probe",
		Name:   "Probe",
		Models: []catalog.Model{{ID: "m", Name: "M", InputPrice: 0.001, OutputPrice: 0.002}},
	}
	sel := selection.ServiceSelection{
		Service:        probe,
		SelectedModels: []selection.ModelSelection{{ID: "m", InputTokens: 100}},
	}

	token, err := share.Encode([]selection.ServiceSelection{sel})
	if err != nil {
		return ComponentStatus{Status: "error", Latency: time.Since(start).Milliseconds(), Error: err.Error()}
	}

	decoded, err := share.Decode(ctx, token, probeResolver{svc: &probe})
	if err != nil {
		return ComponentStatus{Status: "error", Latency: time.Since(start).Milliseconds(), Error: err.Error()}
	}
	if len(decoded) != 1 || len(decoded[0].SelectedModels) != 1 {
		return ComponentStatus{Status: "error", Latency: time.Since(start).Milliseconds(), Error: "round trip lost the selection"}
	}
	return ComponentStatus{Status: "ok", Latency: time.Since(start).Milliseconds()}
}

type probeResolver struct {
	svc *catalog.Service
}

func (r probeResolver) GetService(ctx context.Context, id string) (*catalog.Service, error) {
	if r.svc != nil && r.svc.ID == id {
		return r.svc, nil
	}
	return nil, &catalog.NotFoundError{Entity: "service", ID: id}
}
