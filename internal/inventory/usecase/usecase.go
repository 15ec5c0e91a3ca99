package usecase

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mkawano/eyewear-stock/internal/cache"
	"github.com/mkawano/eyewear-stock/internal/inventory"
	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/schema"
	"github.com/mkawano/eyewear-stock/internal/store"
)

const transferDateLayout = "2006-01-02"

type inventoryUseCase struct {
	backend store.Backend
	cache   *cache.Snapshot
	logger  *zap.Logger
	now     func() time.Time

	// writeMu enforces at most one in-flight backend write per session.
	writeMu sync.Mutex
}

// Option configures the use case.
type Option func(*inventoryUseCase)

// WithClock swaps the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(uc *inventoryUseCase) { uc.now = now }
}

func NewInventoryUseCase(backend store.Backend, snap *cache.Snapshot, log *zap.Logger, opts ...Option) inventory.UseCase {
	uc := &inventoryUseCase{
		backend: backend,
		cache:   snap,
		logger:  log,
		now:     time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

func (uc *inventoryUseCase) SetFlag(ctx context.Context, ref inventory.Ref, flag model.StatusFlag, year, month int) (model.InventoryRecord, error) {
	return uc.mutate(ctx, ref, func(s *schema.Schema, row []string) error {
		s.Set(row, schema.ColFlag, flag.Symbol())
		if flag == model.FlagSold {
			today := uc.now()
			if year == 0 {
				year = today.Year()
			}
			if month == 0 {
				month = int(today.Month())
			}
			s.Set(row, schema.ColSoldYear, strconv.Itoa(year))
			s.Set(row, schema.ColSoldMonth, strconv.Itoa(month))
		} else {
			s.Set(row, schema.ColSoldYear, "")
			s.Set(row, schema.ColSoldMonth, "")
		}
		return nil
	})
}

func (uc *inventoryUseCase) Transfer(ctx context.Context, ref inventory.Ref, from, to model.Store) (model.InventoryRecord, error) {
	if !from.Valid() || !to.Valid() {
		return model.InventoryRecord{}, fmt.Errorf("unknown store in transfer %q -> %q", from, to)
	}
	if from == to {
		return model.InventoryRecord{}, fmt.Errorf("transfer source and destination are both %q", from)
	}
	return uc.mutate(ctx, ref, func(s *schema.Schema, row []string) error {
		s.Set(row, schema.ColStore, string(to))
		s.Set(row, schema.ColTransferFrom, string(from))
		s.Set(row, schema.ColTransferTo, string(to))
		s.Set(row, schema.ColTransferDate, uc.now().Format(transferDateLayout))
		return nil
	})
}

func (uc *inventoryUseCase) SetNote(ctx context.Context, ref inventory.Ref, note string) (model.InventoryRecord, error) {
	return uc.mutate(ctx, ref, func(s *schema.Schema, row []string) error {
		s.Set(row, schema.ColNote, note)
		return nil
	})
}

// mutate runs the shared transition cycle: locate the record, apply the
// change to a working copy, persist, then install the copy as the session
// snapshot. A failed persist discards the copy so the snapshot keeps the
// pre-mutation state. No retries; the caller decides whether to repeat the
// user action.
func (uc *inventoryUseCase) mutate(ctx context.Context, ref inventory.Ref, apply func(*schema.Schema, []string) error) (model.InventoryRecord, error) {
	uc.writeMu.Lock()
	defer uc.writeMu.Unlock()

	t, err := uc.cache.Get(ctx)
	if err != nil {
		return model.InventoryRecord{}, err
	}
	s, err := schema.New(t.Headers)
	if err != nil {
		return model.InventoryRecord{}, err
	}

	idx, err := resolve(s, t, ref)
	if err != nil {
		return model.InventoryRecord{}, err
	}

	working := t.Clone()
	row := working.Rows[idx]
	if err := apply(s, row); err != nil {
		return model.InventoryRecord{}, err
	}

	if err := uc.persist(ctx, working, idx, row); err != nil {
		uc.logger.Error("mutation persist failed",
			zap.Int("row", idx), zap.Error(err))
		return model.InventoryRecord{}, err
	}

	uc.cache.Replace(working)
	rec := s.Record(idx, row)
	uc.logger.Info("record updated",
		zap.String("id", rec.ID),
		zap.Int("row", idx),
		zap.String("flag", rec.Flag.Label()))
	return rec, nil
}

// persist narrows to a row-level write when the backend supports it,
// otherwise rewrites the whole table.
func (uc *inventoryUseCase) persist(ctx context.Context, working *model.Table, idx int, row []string) error {
	if rw, ok := uc.backend.(store.RecordWriter); ok {
		return rw.WriteRecord(ctx, idx, row)
	}
	return uc.backend.WriteAll(ctx, working)
}

func resolve(s *schema.Schema, t *model.Table, ref inventory.Ref) (int, error) {
	if ref.ID() != "" {
		idx := s.FindByID(t, ref.ID())
		if idx < 0 {
			return 0, fmt.Errorf("%w: id %q", inventory.ErrNotFound, ref.ID())
		}
		return idx, nil
	}
	idx := ref.Index()
	if idx < 0 || idx >= t.Len() {
		return 0, fmt.Errorf("%w: row %d", inventory.ErrNotFound, idx)
	}
	return idx, nil
}
