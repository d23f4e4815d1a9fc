// Package backup archives the catalog to a portable tar.gz so a tuned
// pricing database can move between machines or survive a reseed.
package backup

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joss/aicost/internal/catalog"
)

const archiveVersion = "1.0"

// Metadata describes the contents of an archive.
type Metadata struct {
	Version   string            `json:"version"`
	CreatedAt time.Time         `json:"created_at"`
	Services  int               `json:"services"`
	Models    int               `json:"models"`
	Plans     int               `json:"plans"`
	Checksums map[string]string `json:"checksums"`
}

// Manager handles catalog export and restore.
type Manager struct {
	store *catalog.Store
}

// NewManager creates a manager bound to a catalog store.
func NewManager(store *catalog.Store) *Manager {
	return &Manager{store: store}
}

// Export writes the whole catalog to a tar.gz archive at outputPath.
func (m *Manager) Export(ctx context.Context, outputPath string) (*Metadata, error) {
	services, err := m.store.Dump(ctx)
	if err != nil {
		return nil, fmt.Errorf("dump catalog: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("creating archive: %w", err)
	}
	defer file.Close()

	gzw := gzip.NewWriter(file)
	defer gzw.Close()
	tw := tar.NewWriter(gzw)
	defer tw.Close()

	data, err := json.MarshalIndent(services, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal services: %w", err)
	}

	meta := &Metadata{
		Version:   archiveVersion,
		CreatedAt: time.Now().UTC(),
		Services:  len(services),
		Checksums: map[string]string{"services.json": checksum(data)},
	}
	for _, svc := range services {
		meta.Models += len(svc.Models)
		meta.Plans += len(svc.Plans)
	}

	if err := addToTar(tw, "services.json", data); err != nil {
		return nil, fmt.Errorf("adding services: %w", err)
	}

	metaJSON, _ := json.MarshalIndent(meta, "", "  ")
	if err := addToTar(tw, "metadata.json", metaJSON); err != nil {
		return nil, fmt.Errorf("adding metadata: %w", err)
	}

	return meta, nil
}

// Restore loads an archive back into the store. Unless merge is set the
// existing catalog is cleared first, so the result matches the archive
// exactly.
func (m *Manager) Restore(ctx context.Context, inputPath string, merge bool) (*Metadata, error) {
	meta, files, err := readArchive(inputPath)
	if err != nil {
		return nil, err
	}

	data, ok := files["services.json"]
	if !ok {
		return nil, fmt.Errorf("archive has no services.json")
	}
	if want := meta.Checksums["services.json"]; want != "" && want != checksum(data) {
		return nil, fmt.Errorf("archive corrupt: services.json checksum mismatch")
	}

	var services []catalog.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return nil, fmt.Errorf("parsing services: %w", err)
	}

	if !merge {
		if err := m.store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clearing catalog: %w", err)
		}
	}
	for i := range services {
		if err := m.store.PutService(ctx, &services[i]); err != nil {
			return nil, fmt.Errorf("restoring %s: %w", services[i].Name, err)
		}
	}
	return meta, nil
}

// Inspect reads an archive's metadata without touching any store.
func Inspect(inputPath string) (*Metadata, error) {
	meta, _, err := readArchive(inputPath)
	return meta, err
}

func readArchive(inputPath string) (*Metadata, map[string][]byte, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	gzr, err := gzip.NewReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	var meta *Metadata
	files := make(map[string][]byte)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading tar: %w", err)
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", header.Name, err)
		}

		if header.Name == "metadata.json" {
			meta = &Metadata{}
			if err := json.Unmarshal(data, meta); err != nil {
				return nil, nil, fmt.Errorf("parsing metadata: %w", err)
			}
		} else {
			files[header.Name] = data
		}
	}

	if meta == nil {
		return nil, nil, fmt.Errorf("archive missing metadata")
	}
	return meta, files, nil
}

func addToTar(tw *tar.Writer, name string, data []byte) error {
	header := &tar.Header{
		Name:    name,
		Mode:    0644,
		Size:    int64(len(data)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(header); err != nil {
		return err
	}
	_, err := tw.Write(data)
	return err
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
