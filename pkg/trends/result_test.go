package trends

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionTable(t *testing.T) *ResultSet {
	t.Helper()
	rs, err := NewResultSet("geoCode", "cats")
	require.NoError(t, err)
	rs.IndexName = "geoName"
	for _, r := range []struct {
		name, code string
		v          Value
	}{
		{"Austria", "AT", NumberValue(40)},
		{"Brazil", "BR", NumberValue(75)},
		{"Chile", "CL", MissingValue()},
		{"Denmark", "DK", NumberValue(40)},
		{"Egypt", "EG", NumberValue(100)},
	} {
		require.NoError(t, rs.Append(StringValue(r.code), r.v))
		rs.Index = append(rs.Index, StringValue(r.name))
	}
	return rs
}

func TestNewResultSet_RejectsDuplicateColumns(t *testing.T) {
	_, err := NewResultSet("a", "b", "a")
	assert.Error(t, err)
}

func TestResultSet_AppendArity(t *testing.T) {
	rs, err := NewResultSet("a", "b")
	require.NoError(t, err)
	assert.Error(t, rs.Append(StringValue("only one")))
	assert.NoError(t, rs.Append(StringValue("x"), NumberValue(1)))
	assert.Equal(t, 1, rs.Len())
	assert.Equal(t, "x", rs.Value(0, "a").String())
	assert.True(t, rs.Value(5, "a").IsMissing())
}

func TestSortByDesc_StableWithMissingLast(t *testing.T) {
	sorted, err := regionTable(t).SortByDesc("cats")
	require.NoError(t, err)

	var names []string
	for _, label := range sorted.Index {
		names = append(names, label.String())
	}
	assert.Equal(t, []string{"Egypt", "Brazil", "Austria", "Denmark", "Chile"}, names)
	assert.Equal(t, "EG", sorted.Value(0, "geoCode").String())
}

func TestSortByDesc_UnknownColumn(t *testing.T) {
	_, err := regionTable(t).SortByDesc("dogs")
	assert.True(t, errors.Is(err, ErrKeywordNotFound))
}

func TestResetIndex_NamedIndexBecomesFirstColumn(t *testing.T) {
	out, err := regionTable(t).ResetIndex()
	require.NoError(t, err)
	assert.Equal(t, []string{"geoName", "geoCode", "cats"}, out.Columns)
	assert.Equal(t, "Austria", out.Value(0, "geoName").String())
	assert.Nil(t, out.Index)
}

func TestResetIndex_PositionalIndex(t *testing.T) {
	rs, err := NewResultSet("query", "value")
	require.NoError(t, err)
	require.NoError(t, rs.Append(StringValue("cat food"), NumberValue(100)))
	require.NoError(t, rs.Append(StringValue("cat toys"), NumberValue(60)))

	out, err := rs.ResetIndex()
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "query", "value"}, out.Columns)
	assert.Equal(t, "0", out.Value(0, "index").String())
	assert.Equal(t, "1", out.Value(1, "index").String())
}

func TestResetIndex_FallsBackToLevel0(t *testing.T) {
	rs, err := NewResultSet("index", "title")
	require.NoError(t, err)
	require.NoError(t, rs.Append(NumberValue(7), StringValue("storm")))

	out, err := rs.ResetIndex()
	require.NoError(t, err)
	assert.Equal(t, []string{"level_0", "index", "title"}, out.Columns)
	assert.Equal(t, "0", out.Value(0, "level_0").String())
	assert.Equal(t, "7", out.Value(0, "index").String())
}

func TestResetIndex_Collision(t *testing.T) {
	rs, err := NewResultSet("index", "level_0")
	require.NoError(t, err)
	_, err = rs.ResetIndex()
	assert.Error(t, err)

	named, err := NewResultSet("geoName", "cats")
	require.NoError(t, err)
	named.IndexName = "cats"
	_, err = named.ResetIndex()
	assert.Error(t, err)
}

func TestSelect_KeepsIndexAndOrder(t *testing.T) {
	out, err := regionTable(t).Select("cats")
	require.NoError(t, err)
	assert.Equal(t, []string{"cats"}, out.Columns)
	assert.Len(t, out.Index, 5)
	_, hasCode := out.Rows[0]["geoCode"]
	assert.False(t, hasCode)
}

func TestNewTimeSeries(t *testing.T) {
	rs, err := NewResultSet("cats", " dogs", PartialColumn)
	require.NoError(t, err)
	rs.IndexName = "date"
	require.NoError(t, rs.Append(NumberValue(10), NumberValue(20), BoolValue(false)))
	require.NoError(t, rs.Append(NumberValue(15), MissingValue(), BoolValue(true)))
	rs.Index = []Value{StringValue("2024-01-07"), NumberValue(float64(time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC).UnixMilli()))}

	ts, err := NewTimeSeries(rs)
	require.NoError(t, err)
	assert.Equal(t, []string{"cats", " dogs"}, ts.KeywordColumns())
	assert.True(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC).Equal(ts.Times()[0]))
	assert.True(t, time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC).Equal(ts.Times()[1]))

	dogs := ts.Values(" dogs")
	assert.Equal(t, 20.0, dogs[0])
	assert.True(t, math.IsNaN(dogs[1]))
}

func TestNewTimeSeries_DateColumnFallback(t *testing.T) {
	rs, err := NewResultSet("date", "cats")
	require.NoError(t, err)
	require.NoError(t, rs.Append(StringValue("2024-02-01"), NumberValue(3)))

	ts, err := NewTimeSeries(rs)
	require.NoError(t, err)
	assert.Equal(t, []string{"cats"}, ts.Columns)
	assert.Equal(t, 2024, ts.Times()[0].Year())
}

func TestNewTimeSeries_BadLabel(t *testing.T) {
	rs, err := NewResultSet("cats")
	require.NoError(t, err)
	require.NoError(t, rs.Append(NumberValue(1)))
	rs.Index = []Value{StringValue("last tuesday")}

	_, err = NewTimeSeries(rs)
	assert.Error(t, err)
}

func TestNewQuery_DefaultsTimeframe(t *testing.T) {
	q := NewQuery([]string{"cats", " dogs"}, "")
	assert.Equal(t, DefaultTimeframe, q.Timeframe())
	assert.Equal(t, "cats", q.First())
	assert.Equal(t, "", NewQuery(nil, "today 5-y").First())
}

func TestQuery_Immutable(t *testing.T) {
	input := []string{"cats", "dogs"}
	q := NewQuery(input, "")
	input[0] = "changed"
	assert.Equal(t, []string{"cats", "dogs"}, q.Keywords())

	got := q.Keywords()
	got[1] = "changed"
	assert.Equal(t, []string{"cats", "dogs"}, q.Keywords())

	p := BuildPayload(q, PayloadOptions{})
	p.Keywords()[0] = "changed"
	assert.Equal(t, []string{"cats", "dogs"}, p.Params()["kw"])
}

func TestPayloadParams_PreservesKeywords(t *testing.T) {
	p := BuildPayload(NewQuery([]string{"cats", " dogs", ""}, "today 12-m"), PayloadOptions{Language: "en-US", TZOffset: 360})
	params := p.Params()
	assert.Equal(t, []string{"cats", " dogs", ""}, params["kw"])
	assert.Equal(t, "today 12-m", params.Get("timeframe"))
	assert.Equal(t, "en-US", params.Get("hl"))
	assert.Equal(t, "360", params.Get("tz"))
	assert.Equal(t, "0", params.Get("cat"))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "", MissingValue().String())
	assert.Equal(t, "42", NumberValue(42).String())
	assert.Equal(t, "0.5", NumberValue(0.5).String())
	assert.Equal(t, "True", BoolValue(true).String())
	assert.Equal(t, "2024-03-01", TimeValue(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)).String())
}
