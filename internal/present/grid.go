package present

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"trends-desk/pkg/trends"
)

// Formatter renders cell values for display in the user's locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter creates a formatter for the given locale
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format renders numbers with locale grouping and everything else verbatim.
func (f *Formatter) Format(v trends.Value) string {
	if n, ok := v.Float(); ok {
		return f.printer.Sprint(number.Decimal(n, number.MaxFractionDigits(4)))
	}
	return v.String()
}

// Grid is the display form of a ResultSet: a header per column and one line
// of pre-formatted text per row, both in the set's original order.
type Grid struct {
	headers []string
	cells   [][]string
}

// NewGrid formats rs with f.
func NewGrid(rs *trends.ResultSet, f *Formatter) *Grid {
	g := &Grid{}
	if rs == nil {
		return g
	}
	g.headers = append(g.headers, rs.Columns...)
	g.cells = make([][]string, len(rs.Rows))
	for i, row := range rs.Rows {
		line := make([]string, len(rs.Columns))
		for j, col := range rs.Columns {
			line[j] = f.Format(row[col])
		}
		g.cells[i] = line
	}
	return g
}

// Size returns the number of data rows and columns.
func (g *Grid) Size() (rows, cols int) {
	return len(g.cells), len(g.headers)
}

// Header returns the title of column col.
func (g *Grid) Header(col int) string {
	if col < 0 || col >= len(g.headers) {
		return ""
	}
	return g.headers[col]
}

// Cell returns the formatted text at row, col.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.cells) || col < 0 || col >= len(g.headers) {
		return ""
	}
	return g.cells[row][col]
}
