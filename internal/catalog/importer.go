package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/oklog/ulid/v2"

	"github.com/joss/aicost/internal/logging"
)

// Importer bulk-loads catalog files into a store.
type Importer struct {
	store *Store
	log   *logging.Logger
}

// NewImporter creates an importer writing to the given store.
func NewImporter(store *Store) *Importer {
	return &Importer{store: store, log: logging.New("catalog.importer")}
}

// importFile is the on-disk shape: a single service or a list of them.
type importFile struct {
	Services []Service `json:"services"`
}

// ImportGlob loads every catalog JSON file matching the doublestar
// pattern (e.g. "catalogs/**/*.json"). Malformed files are skipped with
// a warning; a file that fails to load does not abort the rest.
// Returns the number of services imported.
func (im *Importer) ImportGlob(ctx context.Context, pattern string) (int, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return 0, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return 0, fmt.Errorf("no files match %q", pattern)
	}

	imported := 0
	for _, path := range matches {
		n, err := im.importOne(ctx, path)
		if err != nil {
			im.log.Warn("import_skipped", map[string]interface{}{"file": path, "reason": err.Error()})
			continue
		}
		imported += n
	}
	return imported, nil
}

func (im *Importer) importOne(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read: %w", err)
	}

	services, err := parseImport(data)
	if err != nil {
		return 0, err
	}

	for i := range services {
		assignIDs(&services[i])
		if err := im.store.PutService(ctx, &services[i]); err != nil {
			return 0, fmt.Errorf("store %s: %w", services[i].Name, err)
		}
		im.log.Info("service_imported", map[string]interface{}{
			"id": services[i].ID, "name": services[i].Name, "file": path,
		})
	}
	return len(services), nil
}

func parseImport(data []byte) ([]Service, error) {
	// Accept {"services": [...]}, a bare list, or a single object.
	var file importFile
	if err := json.Unmarshal(data, &file); err == nil && len(file.Services) > 0 {
		return file.Services, nil
	}
	var list []Service
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}
	var one Service
	if err := json.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if one.Name == "" {
		return nil, fmt.Errorf("parse: no services found")
	}
	return []Service{one}, nil
}

// assignIDs fills in missing ids with fresh ULIDs so hand-written
// catalog files may omit them.
func assignIDs(svc *Service) {
	if svc.ID == "" {
		svc.ID = ulid.Make().String()
	}
	for i := range svc.Models {
		if svc.Models[i].ID == "" {
			svc.Models[i].ID = ulid.Make().String()
		}
	}
	for i := range svc.Plans {
		if svc.Plans[i].ID == "" {
			svc.Plans[i].ID = ulid.Make().String()
		}
	}
}
