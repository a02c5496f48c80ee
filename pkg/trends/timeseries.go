package trends

import (
	"fmt"
	"math"
	"time"
)

// PartialColumn flags rows whose period has not closed yet. It is not a series.
const PartialColumn = "isPartial"

// TimeSeries is a ResultSet indexed by date, one numeric column per keyword.
type TimeSeries struct {
	*ResultSet
	times []time.Time
}

// NewTimeSeries validates that every index label of rs is a point in time.
// A table without an index falls back to a "date" column.
func NewTimeSeries(rs *ResultSet) (*TimeSeries, error) {
	if rs == nil {
		return nil, ErrNoData
	}

	labels := rs.Index
	if len(labels) != len(rs.Rows) && rs.HasColumn("date") {
		labels = make([]Value, len(rs.Rows))
		for i := range rs.Rows {
			labels[i] = rs.Rows[i]["date"]
		}
		trimmed, err := rs.Select(withoutColumn(rs.Columns, "date")...)
		if err != nil {
			return nil, err
		}
		rs = trimmed
		rs.IndexName = "date"
		rs.Index = labels
	}
	if len(labels) != len(rs.Rows) {
		return nil, fmt.Errorf("time series has %d index labels for %d rows", len(labels), len(rs.Rows))
	}

	times := make([]time.Time, len(labels))
	for i, label := range labels {
		t, ok := label.AsTime()
		if !ok {
			return nil, fmt.Errorf("index label %q at row %d is not a date", label.String(), i)
		}
		times[i] = t
	}
	return &TimeSeries{ResultSet: rs, times: times}, nil
}

// Times returns the date of each row.
func (ts *TimeSeries) Times() []time.Time {
	return ts.times
}

// KeywordColumns lists the numeric series in column order.
func (ts *TimeSeries) KeywordColumns() []string {
	var cols []string
	for _, col := range ts.Columns {
		if col == PartialColumn {
			continue
		}
		for _, row := range ts.Rows {
			if row[col].Kind() == KindNumber {
				cols = append(cols, col)
				break
			}
		}
	}
	return cols
}

// Values returns the series for col; non-numeric cells become NaN.
func (ts *TimeSeries) Values(col string) []float64 {
	out := make([]float64, len(ts.Rows))
	for i, row := range ts.Rows {
		if v, ok := row[col].Float(); ok {
			out[i] = v
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func withoutColumn(columns []string, drop string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		if c != drop {
			out = append(out, c)
		}
	}
	return out
}
