package trends

import (
	"fmt"
	"sort"
)

// DefaultIndexName is the column name ResetIndex uses for an unnamed index.
const DefaultIndexName = "index"

// fallbackIndexName is used for an unnamed index when "index" is taken.
const fallbackIndexName = "level_0"

// Row maps column name to cell value.
type Row map[string]Value

// ResultSet is a table returned by one trends call. Columns are unique and
// ordered; Index, when present, carries one label per row.
type ResultSet struct {
	Columns   []string
	Rows      []Row
	IndexName string
	Index     []Value
}

// NewResultSet creates an empty table with the given column order.
func NewResultSet(columns ...string) (*ResultSet, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, dup := seen[col]; dup {
			return nil, fmt.Errorf("duplicate column %q", col)
		}
		seen[col] = struct{}{}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &ResultSet{Columns: cols}, nil
}

// Append adds a row given positionally in column order.
func (rs *ResultSet) Append(values ...Value) error {
	if len(values) != len(rs.Columns) {
		return fmt.Errorf("row has %d values, want %d", len(values), len(rs.Columns))
	}
	row := make(Row, len(values))
	for i, col := range rs.Columns {
		row[col] = values[i]
	}
	rs.Rows = append(rs.Rows, row)
	return nil
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// HasColumn reports whether col is one of the columns.
func (rs *ResultSet) HasColumn(col string) bool {
	for _, c := range rs.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Value returns the cell at row i, column col. Out-of-range lookups are missing.
func (rs *ResultSet) Value(i int, col string) Value {
	if i < 0 || i >= len(rs.Rows) {
		return MissingValue()
	}
	return rs.Rows[i][col]
}

// indexLabel returns the index label of row i, or its position when the table
// carries no labels.
func (rs *ResultSet) indexLabel(i int) Value {
	if len(rs.Index) == len(rs.Rows) {
		return rs.Index[i]
	}
	return NumberValue(float64(i))
}

// ResetIndex moves the index into a leading column and leaves a positional
// index behind. The column is named after the index, or "index" if unnamed
// ("level_0" when an "index" column already exists).
func (rs *ResultSet) ResetIndex() (*ResultSet, error) {
	name := rs.IndexName
	if name == "" {
		name = DefaultIndexName
		if rs.HasColumn(name) {
			name = fallbackIndexName
		}
	}
	if rs.HasColumn(name) {
		return nil, fmt.Errorf("cannot insert %s, already exists", name)
	}

	out := &ResultSet{
		Columns: append([]string{name}, rs.Columns...),
		Rows:    make([]Row, len(rs.Rows)),
	}
	for i, row := range rs.Rows {
		r := make(Row, len(row)+1)
		for k, v := range row {
			r[k] = v
		}
		r[name] = rs.indexLabel(i)
		out.Rows[i] = r
	}
	return out, nil
}

// Select projects the table onto the named columns, keeping the index.
func (rs *ResultSet) Select(columns ...string) (*ResultSet, error) {
	for _, col := range columns {
		if !rs.HasColumn(col) {
			return nil, fmt.Errorf("%w: column %q", ErrKeywordNotFound, col)
		}
	}
	out, err := NewResultSet(columns...)
	if err != nil {
		return nil, err
	}
	out.IndexName = rs.IndexName
	out.Index = rs.Index
	out.Rows = make([]Row, len(rs.Rows))
	for i, row := range rs.Rows {
		r := make(Row, len(columns))
		for _, col := range columns {
			r[col] = row[col]
		}
		out.Rows[i] = r
	}
	return out, nil
}

// SortByDesc orders rows by the numeric value of col, largest first. The sort
// is stable, so ties keep their original order, and rows whose value is not a
// number go last.
func (rs *ResultSet) SortByDesc(col string) (*ResultSet, error) {
	if !rs.HasColumn(col) {
		return nil, fmt.Errorf("%w: column %q", ErrKeywordNotFound, col)
	}

	order := make([]int, len(rs.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		va, okA := rs.Rows[order[a]][col].Float()
		vb, okB := rs.Rows[order[b]][col].Float()
		if okA != okB {
			return okA
		}
		return okA && va > vb
	})

	out := &ResultSet{
		Columns:   append([]string(nil), rs.Columns...),
		Rows:      make([]Row, len(rs.Rows)),
		IndexName: rs.IndexName,
	}
	if len(rs.Index) == len(rs.Rows) {
		out.Index = make([]Value, len(rs.Rows))
	}
	for pos, src := range order {
		out.Rows[pos] = rs.Rows[src]
		if out.Index != nil {
			out.Index[pos] = rs.Index[src]
		}
	}
	return out, nil
}
