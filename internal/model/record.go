package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// StatusFlag is the lifecycle marker of an inventory item, stored in the
// spreadsheet as a single symbol. An empty cell means the item is in stock.
type StatusFlag string

const (
	FlagInStock   StatusFlag = ""
	FlagSold      StatusFlag = "〇"
	FlagStaffUse  StatusFlag = "△"
	FlagReturned  StatusFlag = "▲"
	FlagDiscarded StatusFlag = "×"
)

var flagLabels = map[StatusFlag]string{
	FlagInStock:   "在庫あり",
	FlagSold:      "売上済み",
	FlagStaffUse:  "スタッフ用",
	FlagReturned:  "返品",
	FlagDiscarded: "破棄",
}

// ParseFlag maps a raw cell value to a StatusFlag. Unknown or blank values
// fall back to FlagInStock rather than erroring, matching how the sheet is
// actually maintained by hand.
func ParseFlag(raw string) StatusFlag {
	switch f := StatusFlag(strings.TrimSpace(raw)); f {
	case FlagSold, FlagStaffUse, FlagReturned, FlagDiscarded:
		return f
	default:
		return FlagInStock
	}
}

// Label returns the human-readable Japanese label for the flag.
func (f StatusFlag) Label() string {
	if l, ok := flagLabels[f]; ok {
		return l
	}
	return flagLabels[FlagInStock]
}

// Symbol returns the value persisted to the backing store.
func (f StatusFlag) Symbol() string { return string(f) }

// Store is one of the two physical shop locations. Values are compared
// exactly as they appear in the sheet's 店舗 column.
type Store string

const (
	StoreNikome Store = "ニコメ"
	StoreMatoi  Store = "マトイ"
)

// Stores lists the two locations in display order.
var Stores = []Store{StoreNikome, StoreMatoi}

// Other returns the opposite location.
func (s Store) Other() Store {
	if s == StoreNikome {
		return StoreMatoi
	}
	return StoreNikome
}

// Valid reports whether s is one of the two known locations.
func (s Store) Valid() bool { return s == StoreNikome || s == StoreMatoi }

// Price is an optional monetary value. Spreadsheet cells carry prices as
// text with stray whitespace, currency marks or nothing at all, so a price
// either coerces cleanly or renders as the unavailable sentinel. Coercion
// failure is never an error.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
}

// PriceUnavailable is what an uncoercible or absent price renders as.
const PriceUnavailable = "―"

// ParsePrice coerces a raw cell to a Price.
func ParsePrice(raw string) Price {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "¥")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Price{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}
	}
	return Price{Amount: d, Valid: true}
}

// Format renders the price as "¥1,234" or the unavailable sentinel.
func (p Price) Format() string {
	if !p.Valid {
		return PriceUnavailable
	}
	n := p.Amount.Round(0).String()
	neg := strings.HasPrefix(n, "-")
	n = strings.TrimPrefix(n, "-")
	var b strings.Builder
	for i, r := range n {
		if i > 0 && (len(n)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	out := "¥" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}

// InventoryRecord is one physical item as parsed from a table row. Index is
// the row's position in the table it was read from; duplicate IDs are
// tolerated and lookups take the first match.
type InventoryRecord struct {
	Index         int
	ID            string
	Brand         string
	Model         string
	Color         string
	Store         Store
	Wholesale     Price
	RetailInclTax Price
	Flag          StatusFlag
	SoldYear      int // 0 = empty
	SoldMonth     int // 0 = empty
	TransferFrom  string
	TransferTo    string
	TransferDate  string
	Note          string
	IntakeDate    string
}

// ParseYearMonth coerces a year/month cell. Sheets hand back values like
// "2024", "2024.0" or blanks; anything uncoercible counts as empty.
func ParseYearMonth(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}
