// Package csvfile is a store.Backend over a local CSV file. It backs the
// export/import commands and test fixtures; the live system of record is
// the sheets backend.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/schema"
	"github.com/mkawano/eyewear-stock/internal/store"
)

type Backend struct {
	path string
}

func New(path string) *Backend {
	return &Backend{path: path}
}

func (b *Backend) FetchAll(ctx context.Context) (*model.Table, error) {
	f, err := os.Open(b.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", store.ErrBackendUnavailable, b.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // hand-edited files may be ragged
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", store.ErrBackendUnavailable, b.path, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", store.ErrBackendUnavailable, b.path)
	}

	headers := clip(all[0])
	rows := make([][]string, 0, len(all)-1)
	for _, row := range all[1:] {
		rows = append(rows, clip(row))
	}
	t := model.NewTable(headers, rows)
	schema.Normalize(t)
	return t, nil
}

// WriteAll replaces the file through a rename so a crash mid-write never
// leaves a half-written table behind.
func (b *Backend) WriteAll(ctx context.Context, t *model.Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(b.path), "inventory-*.csv")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", store.ErrBackendUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Headers); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write header: %v", store.ErrBackendRejected, err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: write row: %v", store.ErrBackendRejected, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flush: %v", store.ErrBackendUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", store.ErrBackendUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("%w: rename: %v", store.ErrBackendUnavailable, err)
	}
	return nil
}

func clip(row []string) []string {
	if len(row) > model.MaxColumns {
		return row[:model.MaxColumns]
	}
	return row
}
