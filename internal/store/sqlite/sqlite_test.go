package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/store"
)

func testTable() *model.Table {
	return model.NewTable(
		[]string{"ID", "ブランド", "売上フラグ", "備考"},
		[][]string{
			{"1", "Acme", "", ""},
			{"2", "Zenit", "〇", "memo"},
		},
	)
}

func open(t *testing.T, path string) *Backend {
	t.Helper()
	b, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestSeedAndRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.db")
	b := open(t, path)
	ctx := context.Background()

	if err := b.WriteAll(ctx, testTable()); err != nil {
		t.Fatalf("seed WriteAll: %v", err)
	}
	got, err := b.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if !reflect.DeepEqual(got.Rows, testTable().Rows) {
		t.Errorf("rows = %v", got.Rows)
	}
}

func TestEmptyDatabaseIsUnavailable(t *testing.T) {
	b := open(t, filepath.Join(t.TempDir(), "empty.db"))
	if _, err := b.FetchAll(context.Background()); !errors.Is(err, store.ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestWriteRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.db")
	b := open(t, path)
	ctx := context.Background()

	if err := b.WriteAll(ctx, testTable()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := b.WriteRecord(ctx, 0, []string{"1", "Acme", "〇", "sold today"}); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	got, err := b.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if got.Rows[0][2] != "〇" || got.Rows[0][3] != "sold today" {
		t.Errorf("row 0 = %v", got.Rows[0])
	}
	if got.Rows[1][3] != "memo" {
		t.Errorf("row 1 changed: %v", got.Rows[1])
	}

	if err := b.WriteRecord(ctx, 99, []string{"x"}); !errors.Is(err, store.ErrBackendRejected) {
		t.Errorf("out-of-range write err = %v, want ErrBackendRejected", err)
	}
}

func TestConcurrentSessionConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.db")
	ctx := context.Background()

	a := open(t, path)
	if err := a.WriteAll(ctx, testTable()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Second session fetches, first session writes again underneath it.
	b := open(t, path)
	tab, err := b.FetchAll(ctx)
	if err != nil {
		t.Fatalf("session b fetch: %v", err)
	}
	if err := a.WriteAll(ctx, testTable()); err != nil {
		t.Fatalf("session a second write: %v", err)
	}

	if err := b.WriteAll(ctx, tab); !errors.Is(err, store.ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// After re-fetching the newer version the write goes through.
	if _, err := b.FetchAll(ctx); err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if err := b.WriteAll(ctx, tab); err != nil {
		t.Errorf("write after refetch: %v", err)
	}
}

func TestStaleSessionCannotWriteBlind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.db")
	ctx := context.Background()

	a := open(t, path)
	if err := a.WriteAll(ctx, testTable()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// A fresh session that never fetched must not clobber existing data.
	b := open(t, path)
	if err := b.WriteAll(ctx, testTable()); !errors.Is(err, store.ErrConflict) {
		t.Errorf("blind write err = %v, want ErrConflict", err)
	}
}
