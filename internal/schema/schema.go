// Package schema maps raw table rows to typed inventory records and back.
// It is the only place that knows column names; everything above it works
// with model.InventoryRecord or with named cells through Get/Set.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mkawano/eyewear-stock/internal/model"
)

// Declared column headers, exactly as they appear in the sheet.
const (
	ColID           = "ID"
	ColBrand        = "ブランド"
	ColModel        = "モデル"
	ColColor        = "カラー"
	ColStore        = "店舗"
	ColWholesale    = "下代"
	ColRetail       = "上代（税込）"
	ColFlag         = "売上フラグ"
	ColSoldYear     = "売上年"
	ColSoldMonth    = "売上月"
	ColTransferFrom = "移動元"
	ColTransferTo   = "移動先"
	ColTransferDate = "移動日"
	ColNote         = "備考"
	ColIntakeDate   = "入荷年月日"
)

// ErrSchemaMismatch reports a declared column missing from fetched data.
// Optional columns degrade the features that need them; ID and 売上フラグ are
// required and their absence makes the whole dataset unusable.
var ErrSchemaMismatch = errors.New("schema mismatch")

// Schema resolves column names to positions for one fetched table.
type Schema struct {
	idx map[string]int
}

// New builds a Schema from a header row. Headers are matched after
// trimming; duplicates keep the first position. Returns ErrSchemaMismatch
// when ID or the status flag column is absent.
func New(headers []string) (*Schema, error) {
	s := &Schema{idx: make(map[string]int, len(headers))}
	for i, h := range headers {
		name := strings.TrimSpace(h)
		if _, dup := s.idx[name]; !dup {
			s.idx[name] = i
		}
	}
	for _, required := range []string{ColID, ColFlag} {
		if _, ok := s.idx[required]; !ok {
			return nil, fmt.Errorf("%w: required column %q missing", ErrSchemaMismatch, required)
		}
	}
	return s, nil
}

// Has reports whether the column exists in the fetched data.
func (s *Schema) Has(col string) bool {
	_, ok := s.idx[col]
	return ok
}

// Get returns the trimmed cell value for col, or "" when the column or the
// cell is absent.
func (s *Schema) Get(row []string, col string) string {
	i, ok := s.idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Set writes a cell value. Missing columns are skipped silently: optional
// features degrade instead of failing the write.
func (s *Schema) Set(row []string, col, val string) {
	if i, ok := s.idx[col]; ok && i < len(row) {
		row[i] = val
	}
}

// Record parses one row into a typed record. idx is the row's position in
// the table, kept so mutations can address the row later.
func (s *Schema) Record(idx int, row []string) model.InventoryRecord {
	return model.InventoryRecord{
		Index:         idx,
		ID:            s.Get(row, ColID),
		Brand:         s.Get(row, ColBrand),
		Model:         s.Get(row, ColModel),
		Color:         s.Get(row, ColColor),
		Store:         model.Store(s.Get(row, ColStore)),
		Wholesale:     model.ParsePrice(s.Get(row, ColWholesale)),
		RetailInclTax: model.ParsePrice(s.Get(row, ColRetail)),
		Flag:          model.ParseFlag(s.Get(row, ColFlag)),
		SoldYear:      model.ParseYearMonth(s.Get(row, ColSoldYear)),
		SoldMonth:     model.ParseYearMonth(s.Get(row, ColSoldMonth)),
		TransferFrom:  s.Get(row, ColTransferFrom),
		TransferTo:    s.Get(row, ColTransferTo),
		TransferDate:  s.Get(row, ColTransferDate),
		Note:          s.Get(row, ColNote),
		IntakeDate:    s.Get(row, ColIntakeDate),
	}
}

// Records parses every row of the table.
func (s *Schema) Records(t *model.Table) []model.InventoryRecord {
	out := make([]model.InventoryRecord, t.Len())
	for i, row := range t.Rows {
		out[i] = s.Record(i, row)
	}
	return out
}

// FindByID returns the index of the first row whose ID matches exactly
// after trimming, or -1. Duplicate IDs are tolerated, first match wins.
func (s *Schema) FindByID(t *model.Table, id string) int {
	want := strings.TrimSpace(id)
	for i, row := range t.Rows {
		if s.Get(row, ColID) == want {
			return i
		}
	}
	return -1
}

// Normalize trims all header cells in place. Adapters call this right
// after a fetch so lookups never trip on stray whitespace.
func Normalize(t *model.Table) {
	for i, h := range t.Headers {
		t.Headers[i] = strings.TrimSpace(h)
	}
}
