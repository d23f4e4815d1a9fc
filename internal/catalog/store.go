package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Reader is the read-only query surface the rest of the application
// depends on. The TUI and CLI never mutate the catalog through it.
type Reader interface {
	ListServices(ctx context.Context) ([]Summary, error)
	GetService(ctx context.Context, id string) (*Service, error)
}

// Store is the SQLite-backed catalog.
type Store struct {
	db   *sql.DB
	path string
}

// Verify Store implements Reader
var _ Reader = (*Store)(nil)

// Open opens (creating if needed) the catalog database under dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalog.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS providers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ai_services (
		id TEXT PRIMARY KEY,
		provider_id TEXT NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		logo_path TEXT NOT NULL DEFAULT '',
		plan_pricing_url TEXT NOT NULL DEFAULT '',
		model_pricing_url TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (provider_id) REFERENCES providers(id)
	);

	CREATE INDEX IF NOT EXISTS idx_services_name ON ai_services(name);

	CREATE TABLE IF NOT EXISTS ai_models (
		id TEXT PRIMARY KEY,
		service_id TEXT NOT NULL,
		name TEXT NOT NULL,
		input_price REAL NOT NULL DEFAULT 0,
		output_price REAL NOT NULL DEFAULT 0,
		context_window INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (service_id) REFERENCES ai_services(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_models_service ON ai_models(service_id);

	CREATE TABLE IF NOT EXISTS ai_plans (
		id TEXT PRIMARY KEY,
		service_id TEXT NOT NULL,
		name TEXT NOT NULL,
		monthly_price REAL NOT NULL DEFAULT 0,
		yearly_price REAL NOT NULL DEFAULT 0,
		FOREIGN KEY (service_id) REFERENCES ai_services(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_plans_service ON ai_plans(service_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ListServices returns summaries for every service, ordered by name.
func (s *Store) ListServices(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sv.id, sv.name, p.name, sv.description, sv.logo_path,
		       sv.plan_pricing_url, sv.model_pricing_url
		FROM ai_services sv
		JOIN providers p ON p.id = sv.provider_id
		ORDER BY sv.name
	`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Name, &sm.Provider, &sm.Description,
			&sm.LogoPath, &sm.PlanPricingURL, &sm.ModelPricingURL); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		summaries = append(summaries, sm)
	}
	return summaries, rows.Err()
}

// GetService returns the full service with models and plans, or a
// NotFoundError if no service has the given id.
func (s *Store) GetService(ctx context.Context, id string) (*Service, error) {
	var svc Service
	err := s.db.QueryRowContext(ctx, `
		SELECT sv.id, sv.name, p.name, sv.description, sv.logo_path,
		       sv.plan_pricing_url, sv.model_pricing_url
		FROM ai_services sv
		JOIN providers p ON p.id = sv.provider_id
		WHERE sv.id = ?
	`, id).Scan(&svc.ID, &svc.Name, &svc.Provider, &svc.Description,
		&svc.LogoPath, &svc.PlanPricingURL, &svc.ModelPricingURL)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Entity: "service", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}

	svc.Models, err = s.serviceModels(ctx, id)
	if err != nil {
		return nil, err
	}
	svc.Plans, err = s.servicePlans(ctx, id)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (s *Store) serviceModels(ctx context.Context, serviceID string) ([]Model, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, input_price, output_price, context_window
		FROM ai_models WHERE service_id = ? ORDER BY name
	`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	var models []Model
	for rows.Next() {
		var m Model
		if err := rows.Scan(&m.ID, &m.Name, &m.InputPrice, &m.OutputPrice, &m.ContextWindow); err != nil {
			return nil, fmt.Errorf("scan model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}

func (s *Store) servicePlans(ctx context.Context, serviceID string) ([]Plan, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, monthly_price, yearly_price
		FROM ai_plans WHERE service_id = ? ORDER BY monthly_price
	`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.MonthlyPrice, &p.YearlyPrice); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// PutService inserts or replaces a service with its models and plans.
// The provider row is keyed by the lowercased provider name.
func (s *Store) PutService(ctx context.Context, svc *Service) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	providerID := providerKey(svc.Provider)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO providers (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name
	`, providerID, svc.Provider); err != nil {
		return fmt.Errorf("upsert provider: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ai_services (id, provider_id, name, description, logo_path, plan_pricing_url, model_pricing_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			provider_id = excluded.provider_id,
			name = excluded.name,
			description = excluded.description,
			logo_path = excluded.logo_path,
			plan_pricing_url = excluded.plan_pricing_url,
			model_pricing_url = excluded.model_pricing_url
	`, svc.ID, providerID, svc.Name, svc.Description, svc.LogoPath,
		svc.PlanPricingURL, svc.ModelPricingURL); err != nil {
		return fmt.Errorf("upsert service: %w", err)
	}

	// Replace the dependent rows wholesale so removed models/plans do
	// not linger across imports.
	if _, err := tx.ExecContext(ctx, `DELETE FROM ai_models WHERE service_id = ?`, svc.ID); err != nil {
		return fmt.Errorf("clear models: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM ai_plans WHERE service_id = ?`, svc.ID); err != nil {
		return fmt.Errorf("clear plans: %w", err)
	}

	for _, m := range svc.Models {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ai_models (id, service_id, name, input_price, output_price, context_window)
			VALUES (?, ?, ?, ?, ?, ?)
		`, m.ID, svc.ID, m.Name, m.InputPrice, m.OutputPrice, m.ContextWindow); err != nil {
			return fmt.Errorf("insert model %s: %w", m.ID, err)
		}
	}
	for _, p := range svc.Plans {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO ai_plans (id, service_id, name, monthly_price, yearly_price)
			VALUES (?, ?, ?, ?, ?)
		`, p.ID, svc.ID, p.Name, p.MonthlyPrice, p.YearlyPrice); err != nil {
			return fmt.Errorf("insert plan %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// Clear drops every service, model, plan and provider row.
func (s *Store) Clear(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"ai_models", "ai_plans", "ai_services", "providers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

// Dump loads every service with its models and plans, for export.
func (s *Store) Dump(ctx context.Context) ([]Service, error) {
	summaries, err := s.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	services := make([]Service, 0, len(summaries))
	for _, sm := range summaries {
		svc, err := s.GetService(ctx, sm.ID)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, nil
}
