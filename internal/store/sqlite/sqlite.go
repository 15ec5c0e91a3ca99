// Package sqlite is a store.Backend over a local SQLite database. Unlike
// the sheets backend it supports row-level writes and carries a version
// counter, so concurrent sessions get a conflict error instead of silent
// last-write-wins.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/schema"
	"github.com/mkawano/eyewear-stock/internal/store"
)

const ddl = `
CREATE TABLE IF NOT EXISTS inventory_meta (
	id      INTEGER PRIMARY KEY CHECK (id = 1),
	version INTEGER NOT NULL,
	headers TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS inventory_rows (
	pos   INTEGER PRIMARY KEY,
	cells TEXT NOT NULL
);`

// Backend stores the table as JSON-encoded rows plus a header/version row.
// fetchedVersion is the version this session last read; WriteAll and
// WriteRecord refuse to overwrite a newer one.
type Backend struct {
	db *sqlx.DB

	mu             sync.Mutex
	fetchedVersion int64
}

func New(path string) (*Backend, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", store.ErrBackendUnavailable, path, err)
	}
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init schema: %v", store.ErrBackendUnavailable, err)
	}
	return &Backend{db: db}, nil
}

func (b *Backend) Close() error { return b.db.Close() }

type metaRow struct {
	Version int64  `db:"version"`
	Headers string `db:"headers"`
}

func (b *Backend) FetchAll(ctx context.Context) (*model.Table, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var meta metaRow
	err := b.db.GetContext(ctx, &meta, `SELECT version, headers FROM inventory_meta WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: database holds no inventory table", store.ErrBackendUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read meta: %v", store.ErrBackendUnavailable, err)
	}

	var headers []string
	if err := json.Unmarshal([]byte(meta.Headers), &headers); err != nil {
		return nil, fmt.Errorf("%w: decode headers: %v", store.ErrBackendUnavailable, err)
	}

	var encoded []string
	if err := b.db.SelectContext(ctx, &encoded,
		`SELECT cells FROM inventory_rows ORDER BY pos`); err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", store.ErrBackendUnavailable, err)
	}
	rows := make([][]string, len(encoded))
	for i, e := range encoded {
		if err := json.Unmarshal([]byte(e), &rows[i]); err != nil {
			return nil, fmt.Errorf("%w: decode row %d: %v", store.ErrBackendUnavailable, i, err)
		}
	}

	b.fetchedVersion = meta.Version
	t := model.NewTable(headers, rows)
	schema.Normalize(t)
	return t, nil
}

// WriteAll replaces the whole table, guarded by the version counter.
func (b *Backend) WriteAll(ctx context.Context, t *model.Table) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", store.ErrBackendUnavailable, err)
	}
	defer tx.Rollback()

	next, err := b.checkVersion(ctx, tx)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_rows`); err != nil {
		return fmt.Errorf("%w: clear rows: %v", store.ErrBackendRejected, err)
	}
	for i, row := range t.Rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("%w: encode row %d: %v", store.ErrBackendRejected, i, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inventory_rows (pos, cells) VALUES (?, ?)`, i, cells); err != nil {
			return fmt.Errorf("%w: insert row %d: %v", store.ErrBackendRejected, i, err)
		}
	}

	headers, err := json.Marshal(t.Headers)
	if err != nil {
		return fmt.Errorf("%w: encode headers: %v", store.ErrBackendRejected, err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO inventory_meta (id, version, headers) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET version = excluded.version, headers = excluded.headers`,
		next, headers); err != nil {
		return fmt.Errorf("%w: update meta: %v", store.ErrBackendRejected, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", store.ErrBackendUnavailable, err)
	}
	b.fetchedVersion = next
	return nil
}

// WriteRecord updates a single row in place. Implements store.RecordWriter.
func (b *Backend) WriteRecord(ctx context.Context, index int, row []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", store.ErrBackendUnavailable, err)
	}
	defer tx.Rollback()

	next, err := b.checkVersion(ctx, tx)
	if err != nil {
		return err
	}

	cells, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: encode row: %v", store.ErrBackendRejected, err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE inventory_rows SET cells = ? WHERE pos = ?`, cells, index)
	if err != nil {
		return fmt.Errorf("%w: update row: %v", store.ErrBackendRejected, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: row %d does not exist", store.ErrBackendRejected, index)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE inventory_meta SET version = ? WHERE id = 1`, next); err != nil {
		return fmt.Errorf("%w: update meta: %v", store.ErrBackendRejected, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", store.ErrBackendUnavailable, err)
	}
	b.fetchedVersion = next
	return nil
}

// checkVersion compares the stored version against what this session last
// fetched and returns the next version to write. A fresh database (no meta
// row yet) counts as version zero so the first seed write goes through.
func (b *Backend) checkVersion(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	var current int64
	err := tx.GetContext(ctx, &current, `SELECT version FROM inventory_meta WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		current = 0
	} else if err != nil {
		return 0, fmt.Errorf("%w: read version: %v", store.ErrBackendUnavailable, err)
	}
	if current != b.fetchedVersion {
		return 0, fmt.Errorf("%w: stored version %d, session fetched %d",
			store.ErrConflict, current, b.fetchedVersion)
	}
	return current + 1, nil
}
