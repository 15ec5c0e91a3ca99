package schema

import (
	"errors"
	"testing"

	"github.com/mkawano/eyewear-stock/internal/model"
)

func headers() []string {
	return []string{
		ColID, ColBrand, ColModel, ColColor, ColStore,
		ColWholesale, ColRetail, ColFlag, ColSoldYear, ColSoldMonth,
		ColTransferFrom, ColTransferTo, ColTransferDate, ColNote, ColIntakeDate,
	}
}

func TestNewTrimsHeaders(t *testing.T) {
	s, err := New([]string{" ID ", ColFlag, " ブランド"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !s.Has(ColID) || !s.Has(ColBrand) {
		t.Error("trimmed headers should resolve")
	}
}

func TestNewRequiresCoreColumns(t *testing.T) {
	if _, err := New([]string{ColBrand, ColModel}); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("missing ID/flag columns should be ErrSchemaMismatch, got %v", err)
	}
	if _, err := New([]string{ColID, ColBrand}); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("missing flag column should be ErrSchemaMismatch, got %v", err)
	}
}

func TestRecordParsing(t *testing.T) {
	s, err := New(headers())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	row := []string{
		"1234", "Acme", "RX5368", "マットブラック", "ニコメ",
		"8000", "¥19,800", "〇", "2024", "3",
		"マトイ", "ニコメ", "2024-02-10", "展示品", "2023-11-01",
	}
	rec := s.Record(7, row)

	if rec.Index != 7 || rec.ID != "1234" || rec.Brand != "Acme" {
		t.Errorf("unexpected identity fields: %+v", rec)
	}
	if rec.Flag != model.FlagSold || rec.SoldYear != 2024 || rec.SoldMonth != 3 {
		t.Errorf("unexpected sale fields: %+v", rec)
	}
	if rec.Store != model.StoreNikome {
		t.Errorf("store = %q", rec.Store)
	}
	if rec.RetailInclTax.Format() != "¥19,800" {
		t.Errorf("retail = %q", rec.RetailInclTax.Format())
	}
	if rec.TransferFrom != "マトイ" || rec.TransferDate != "2024-02-10" {
		t.Errorf("unexpected transfer fields: %+v", rec)
	}
}

func TestSetSkipsMissingColumn(t *testing.T) {
	s, err := New([]string{ColID, ColFlag})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	row := []string{"1", ""}
	s.Set(row, ColNote, "memo") // column absent, must not panic
	s.Set(row, ColFlag, "〇")
	if row[1] != "〇" {
		t.Errorf("flag cell = %q", row[1])
	}
}

func TestFindByIDFirstMatchWins(t *testing.T) {
	s, err := New([]string{ColID, ColFlag, ColNote})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tab := model.NewTable([]string{ColID, ColFlag, ColNote}, [][]string{
		{"10", "", "first"},
		{"20", "", ""},
		{"10", "", "duplicate"},
	})
	if got := s.FindByID(tab, " 10 "); got != 0 {
		t.Errorf("FindByID = %d, want 0 (first match)", got)
	}
	if got := s.FindByID(tab, "99"); got != -1 {
		t.Errorf("FindByID missing = %d, want -1", got)
	}
}
