// Package dashboard computes the aggregate views shown on the dashboard
// tab. All functions are pure reads over a snapshot.
package dashboard

import (
	"sort"

	"github.com/mkawano/eyewear-stock/internal/model"
	"github.com/mkawano/eyewear-stock/internal/schema"
)

// Summary is the headline counters row.
type Summary struct {
	Total     int
	InStock   int
	Sold      int
	StaffUse  int
	Returned  int
	Discarded int
}

// BrandCount pairs a brand with its in-stock count, for the top-N chart.
type BrandCount struct {
	Brand string
	Count int
}

// Build parses the table once for all the aggregate helpers below.
func Build(t *model.Table) ([]model.InventoryRecord, error) {
	s, err := schema.New(t.Headers)
	if err != nil {
		return nil, err
	}
	return s.Records(t), nil
}

// Summarize counts records per status flag.
func Summarize(recs []model.InventoryRecord) Summary {
	var sum Summary
	sum.Total = len(recs)
	for _, r := range recs {
		switch r.Flag {
		case model.FlagSold:
			sum.Sold++
		case model.FlagStaffUse:
			sum.StaffUse++
		case model.FlagReturned:
			sum.Returned++
		case model.FlagDiscarded:
			sum.Discarded++
		default:
			sum.InStock++
		}
	}
	return sum
}

// StockByStore counts in-stock items per store.
func StockByStore(recs []model.InventoryRecord) map[model.Store]int {
	out := make(map[model.Store]int)
	for _, r := range recs {
		if r.Flag == model.FlagInStock && r.Store.Valid() {
			out[r.Store]++
		}
	}
	return out
}

// SoldByStore counts sold items per store.
func SoldByStore(recs []model.InventoryRecord) map[model.Store]int {
	out := make(map[model.Store]int)
	for _, r := range recs {
		if r.Flag == model.FlagSold && r.Store.Valid() {
			out[r.Store]++
		}
	}
	return out
}

// TopBrands returns the n brands with the most in-stock items, descending.
// Ties break alphabetically so the chart is stable between reloads.
func TopBrands(recs []model.InventoryRecord, n int) []BrandCount {
	counts := make(map[string]int)
	for _, r := range recs {
		if r.Flag == model.FlagInStock && r.Brand != "" {
			counts[r.Brand]++
		}
	}
	out := make([]BrandCount, 0, len(counts))
	for b, c := range counts {
		out = append(out, BrandCount{Brand: b, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Brand < out[j].Brand
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlySold counts sold items per month for one year. Index 0 is
// January.
func MonthlySold(recs []model.InventoryRecord, year int) [12]int {
	var out [12]int
	for _, r := range recs {
		if r.Flag == model.FlagSold && r.SoldYear == year &&
			r.SoldMonth >= 1 && r.SoldMonth <= 12 {
			out[r.SoldMonth-1]++
		}
	}
	return out
}

// TransferHistory lists records that have been transferred, newest first.
// When the transfer date column is missing from the sheet the history is
// simply empty; the rest of the dashboard still works.
func TransferHistory(t *model.Table) ([]model.InventoryRecord, error) {
	s, err := schema.New(t.Headers)
	if err != nil {
		return nil, err
	}
	if !s.Has(schema.ColTransferDate) {
		return nil, nil
	}
	var out []model.InventoryRecord
	for _, r := range s.Records(t) {
		if r.TransferDate != "" {
			out = append(out, r)
		}
	}
	// Dates are YYYY-MM-DD so string order is date order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TransferDate > out[j].TransferDate
	})
	return out, nil
}
