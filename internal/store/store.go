// Package store defines the backing-store contract shared by all
// persistence adapters. The backing store is a bulk rectangular dataset:
// reads fetch the whole table, writes overwrite the whole table.
package store

import (
	"context"
	"errors"

	"github.com/mkawano/eyewear-stock/internal/model"
)

// Error kinds callers are expected to distinguish with errors.Is. Adapters
// wrap these with backend-specific detail.
var (
	// ErrBackendUnavailable covers network, auth and transient failures on
	// fetch or write. Reads may fall back to a previously cached snapshot.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrBackendRejected means the transport succeeded but the backend
	// refused the payload (quota, malformed row count). The remote data is
	// assumed unchanged.
	ErrBackendRejected = errors.New("backend rejected write")

	// ErrConflict is raised by version-checking backends when the remote
	// table changed since this session last fetched it. Backends without a
	// version token never return it; those sessions run last-write-wins.
	ErrConflict = errors.New("concurrent update detected")
)

// Backend is the bulk read/write interface to the system of record.
//
// WriteAll overwrites the entire remote dataset. The remote API gives no
// atomicity guarantee: a failed write may leave the backend in the old or
// the new state. Adapters cannot do better than that, which is why callers
// never reflect a mutation locally until WriteAll has returned nil.
type Backend interface {
	FetchAll(ctx context.Context) (*model.Table, error)
	WriteAll(ctx context.Context, t *model.Table) error
}

// RecordWriter is implemented by backends capable of row-level writes.
// Callers holding one may narrow a single-record mutation to one row
// instead of rewriting the whole table.
type RecordWriter interface {
	WriteRecord(ctx context.Context, index int, row []string) error
}
