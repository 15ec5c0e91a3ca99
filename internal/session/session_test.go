package session

import (
	"context"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/query"
	"github.com/mkawano/eyewear-stock/internal/schema"
)

type fakeBackend struct {
	table   *model.Table
	fetches int
}

func (f *fakeBackend) FetchAll(ctx context.Context) (*model.Table, error) {
	f.fetches++
	return f.table.Clone(), nil
}

func (f *fakeBackend) WriteAll(ctx context.Context, t *model.Table) error {
	f.table = t.Clone()
	return nil
}

func testBackend() *fakeBackend {
	headers := []string{schema.ColID, schema.ColBrand, schema.ColFlag}
	return &fakeBackend{table: model.NewTable(headers, [][]string{
		{"1", "Zenit", ""},
		{"2", " Acme ", ""},
		{"3", "Acme", "〇"},
		{"4", "", ""},
	})}
}

func TestAllBrands(t *testing.T) {
	fb := testBackend()
	got := AllBrands(fb.table)
	want := []string{"Acme", "Zenit"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllBrands = %v, want %v", got, want)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	fb := testBackend()
	a := New(fb, zap.NewNop(), time.Minute)
	b := New(fb, zap.NewNop(), time.Minute)

	if a.ID == b.ID {
		t.Error("sessions must get distinct IDs")
	}
	a.AddFavorite("Acme")
	if b.Favorites()["Acme"] {
		t.Error("favorites must not leak across sessions")
	}
}

func TestSearchAppliesSessionAllowList(t *testing.T) {
	fb := testBackend()
	s := New(fb, zap.NewNop(), time.Minute)
	ctx := context.Background()

	s.SetAllowed([]string{"Zenit"})
	res, err := s.Search(ctx, query.Filter{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Records) != 1 || res.Records[0].ID != "1" {
		t.Errorf("allow-list search matched %d records", len(res.Records))
	}

	s.AllowAll()
	res, err = s.Search(ctx, query.Filter{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.TotalMatches != 3 { // three in-stock rows
		t.Errorf("TotalMatches = %d, want 3", res.TotalMatches)
	}
}

func TestSearchFavoritesFirst(t *testing.T) {
	fb := testBackend()
	s := New(fb, zap.NewNop(), time.Minute)

	s.AddFavorite("Acme")
	res, err := s.Search(context.Background(), query.Filter{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Records) == 0 || res.Records[0].Brand != "Acme" {
		t.Errorf("favorite brand should sort first, got %+v", res.Records)
	}

	s.RemoveFavorite("Acme")
	if len(s.Favorites()) != 0 {
		t.Error("RemoveFavorite should clear the set")
	}
}

func TestTableCachesBetweenCalls(t *testing.T) {
	fb := testBackend()
	s := New(fb, zap.NewNop(), time.Minute)
	ctx := context.Background()

	if _, err := s.Table(ctx); err != nil {
		t.Fatalf("Table: %v", err)
	}
	if _, err := s.Table(ctx); err != nil {
		t.Fatalf("Table: %v", err)
	}
	if fb.fetches != 1 {
		t.Errorf("fetches = %d, want 1 within TTL", fb.fetches)
	}
}
