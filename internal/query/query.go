// Package query filters and orders inventory records. It performs no I/O
// and never mutates the snapshot: Search is a pure function of the table,
// the filter and the session's favorites.
package query

import (
	"strings"

	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/schema"
)

// ResultLimit caps how many records a search returns. Matches beyond the
// limit are counted but not materialized for the caller.
const ResultLimit = 200

// StoreFilter selects which location(s) to search.
type StoreFilter string

const (
	StoreBoth   StoreFilter = "両方"
	StoreNikome StoreFilter = StoreFilter(model.StoreNikome)
	StoreMatoi  StoreFilter = StoreFilter(model.StoreMatoi)
)

// Filter is one search request. Zero value: in-stock items of both stores,
// all brands, no text filters.
type Filter struct {
	// ShowAll includes sold/staff/returned/discarded items. Default shows
	// only in-stock.
	ShowAll bool
	Store   StoreFilter
	// AllowedBrands restricts to these brands; empty means no restriction.
	AllowedBrands map[string]bool
	// Substring filters, case-insensitive, applied conjunctively.
	IDContains    string
	ModelContains string
	ColorContains string
}

// Result is a bounded, ordered slice of matches. TotalMatches counts every
// match before truncation; Truncated tells the caller some were cut.
type Result struct {
	Records      []model.InventoryRecord
	TotalMatches int
	Truncated    bool
	// InStockTotal is the table-wide in-stock count, independent of the
	// filter, for the result summary line.
	InStockTotal int
}

// Search evaluates f over the table. Records whose brand is in favorites
// sort before all others; within each partition the table's own order is
// kept. Returns schema.ErrSchemaMismatch when the ID or flag column is
// missing from the data.
func Search(t *model.Table, f Filter, favorites map[string]bool) (Result, error) {
	s, err := schema.New(t.Headers)
	if err != nil {
		return Result{}, err
	}

	var res Result
	var favs, rest []model.InventoryRecord
	for _, rec := range s.Records(t) {
		if rec.Flag == model.FlagInStock {
			res.InStockTotal++
		}
		if !matches(rec, f) {
			continue
		}
		res.TotalMatches++
		if favorites[rec.Brand] {
			favs = append(favs, rec)
		} else {
			rest = append(rest, rec)
		}
	}

	res.Records = append(favs, rest...)
	if len(res.Records) > ResultLimit {
		res.Records = res.Records[:ResultLimit]
		res.Truncated = true
	}
	return res, nil
}

func matches(rec model.InventoryRecord, f Filter) bool {
	if !f.ShowAll && rec.Flag != model.FlagInStock {
		return false
	}
	if f.Store != "" && f.Store != StoreBoth && string(rec.Store) != string(f.Store) {
		return false
	}
	if len(f.AllowedBrands) > 0 && !f.AllowedBrands[rec.Brand] {
		return false
	}
	return containsFold(rec.ID, f.IDContains) &&
		containsFold(rec.Model, f.ModelContains) &&
		containsFold(rec.Color, f.ColorContains)
}

// containsFold is a case-insensitive substring test; an empty needle
// matches everything.
func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
