package dataset

// Dataset is an in-memory tabular relation: an ordered list of named columns
// with one cell per column per row. Cells are kept as raw strings the way the
// loaders produced them; consumers coerce values on demand. A Dataset is
// loaded once per session and never mutated afterwards.
type Dataset struct {
	Name    string     // source file or sheet name
	Columns []string   // ordered column names
	Rows    [][]string // each row has exactly len(Columns) cells
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of the named column, or -1 when the
// column is not part of the schema.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists in the schema.
func (d *Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Column returns the cell values of the named column in row order.
// The second return value is false when the column does not exist.
func (d *Dataset) Column(name string) ([]string, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// Head returns up to n leading rows, for previews and prompt samples.
func (d *Dataset) Head(n int) [][]string {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}
