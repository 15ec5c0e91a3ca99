package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/mkawano/eyewear-stock/internal/model"
)

// ErrNotFound means the referenced record does not exist in the snapshot.
var ErrNotFound = errors.New("record not found")

// Ref addresses one record, either by ID (first match wins on duplicates)
// or by row index.
type Ref struct {
	id    string
	index int
}

// ByID addresses the first record whose ID matches.
func ByID(id string) Ref { return Ref{id: strings.TrimSpace(id), index: -1} }

// ByIndex addresses a record by its row position in the table.
func ByIndex(i int) Ref { return Ref{index: i} }

// ID returns the ID this Ref addresses, or "" for index refs.
func (r Ref) ID() string { return r.id }

// Index returns the row index, or -1 for ID refs.
func (r Ref) Index() int { return r.index }

// UseCase applies single-record state transitions and persists them.
// Every mutation works on a private copy of the table; the session's
// snapshot only reflects the change after the backend write succeeds.
type UseCase interface {
	// SetFlag moves the record to flag. When flag is Sold, year/month are
	// taken as given or default to the current date when zero; any other
	// flag clears both. Any flag may move to any other flag.
	SetFlag(ctx context.Context, ref Ref, flag model.StatusFlag, year, month int) (model.InventoryRecord, error)

	// Transfer moves the record between the two stores, recording
	// provenance and today's date. The status flag is untouched.
	Transfer(ctx context.Context, ref Ref, from, to model.Store) (model.InventoryRecord, error)

	// SetNote sets the free-text annotation verbatim.
	SetNote(ctx context.Context, ref Ref, note string) (model.InventoryRecord, error)
}
