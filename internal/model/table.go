package model

// MaxColumns bounds how many leading columns are read from the backing
// store. The declared schema is positional; trailing columns beyond this
// are ignored at the adapter boundary.
const MaxColumns = 15

// Table is the full rectangular dataset as fetched from the backing store:
// one header row plus data rows of raw cell strings. Columns the schema does
// not recognize are carried here untouched so a read-mutate-write cycle
// round-trips them byte for byte.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable builds a rectangular table from raw rows. Every row is padded or
// clipped to the header width so downstream code never sees a ragged row.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{Headers: headers, Rows: make([][]string, len(rows))}
	w := len(headers)
	for i, r := range rows {
		row := make([]string, w)
		copy(row, r)
		t.Rows[i] = row
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Clone returns a deep copy. Mutations work on a clone so a failed persist
// leaves the cached table untouched.
func (t *Table) Clone() *Table {
	c := &Table{
		Headers: make([]string, len(t.Headers)),
		Rows:    make([][]string, len(t.Rows)),
	}
	copy(c.Headers, t.Headers)
	for i, r := range t.Rows {
		row := make([]string, len(r))
		copy(row, r)
		c.Rows[i] = row
	}
	return c
}
