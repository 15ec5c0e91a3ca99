package model

import "testing"

func TestParseFlag(t *testing.T) {
	cases := []struct {
		raw  string
		want StatusFlag
	}{
		{"", FlagInStock},
		{"  ", FlagInStock},
		{"〇", FlagSold},
		{" 〇 ", FlagSold},
		{"△", FlagStaffUse},
		{"▲", FlagReturned},
		{"×", FlagDiscarded},
		{"garbage", FlagInStock}, // permissive fallback
		{"O", FlagInStock},       // latin O is not the sold symbol
	}
	for _, c := range cases {
		if got := ParseFlag(c.raw); got != c.want {
			t.Errorf("ParseFlag(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw   string
		valid bool
		out   string
	}{
		{"12800", true, "¥12,800"},
		{"¥12,800", true, "¥12,800"},
		{" 980 ", true, "¥980"},
		{"1234567", true, "¥1,234,567"},
		{"", false, PriceUnavailable},
		{"n/a", false, PriceUnavailable},
		{"未定", false, PriceUnavailable},
	}
	for _, c := range cases {
		p := ParsePrice(c.raw)
		if p.Valid != c.valid {
			t.Errorf("ParsePrice(%q).Valid = %v, want %v", c.raw, p.Valid, c.valid)
		}
		if got := p.Format(); got != c.out {
			t.Errorf("ParsePrice(%q).Format() = %q, want %q", c.raw, got, c.out)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"2024", 2024},
		{"2024.0", 2024}, // sheets render integers as floats
		{"3", 3},
		{"", 0},
		{"nan", 0},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := ParseYearMonth(c.raw); got != c.want {
			t.Errorf("ParseYearMonth(%q) = %d, want %d", c.raw, got, c.want)
		}
	}
}

func TestStoreOther(t *testing.T) {
	if StoreNikome.Other() != StoreMatoi {
		t.Error("opposite of ニコメ should be マトイ")
	}
	if StoreMatoi.Other() != StoreNikome {
		t.Error("opposite of マトイ should be ニコメ")
	}
	if Store("somewhere").Valid() {
		t.Error("unknown store should not be valid")
	}
}

func TestTableCloneIsDeep(t *testing.T) {
	orig := NewTable([]string{"ID", "備考"}, [][]string{{"1", "a"}, {"2", "b"}})
	c := orig.Clone()
	c.Rows[0][1] = "changed"
	if orig.Rows[0][1] != "a" {
		t.Error("mutating a clone must not touch the original")
	}
}

func TestNewTablePadsRaggedRows(t *testing.T) {
	tab := NewTable([]string{"ID", "ブランド", "備考"}, [][]string{{"1"}, {"2", "Acme", "x", "extra"}})
	for i, row := range tab.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d cells, want 3", i, len(row))
		}
	}
	if tab.Rows[0][2] != "" {
		t.Error("short rows should pad with empty strings")
	}
}
