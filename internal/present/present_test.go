package present

import (
	"math"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/text/language"

	"trends-desk/pkg/trends"
)

func threeByTwo(t *testing.T) *trends.ResultSet {
	t.Helper()
	rs, err := trends.NewResultSet("title", "value")
	require.NoError(t, err)
	require.NoError(t, rs.Append(trends.StringValue("cat food"), trends.NumberValue(100)))
	require.NoError(t, rs.Append(trends.StringValue("cat toys"), trends.NumberValue(62)))
	require.NoError(t, rs.Append(trends.StringValue("kitten"), trends.MissingValue()))
	return rs
}

func TestGrid_PreservesOrder(t *testing.T) {
	grid := NewGrid(threeByTwo(t), NewFormatter(language.AmericanEnglish))

	rows, cols := grid.Size()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, "title", grid.Header(0))
	assert.Equal(t, "value", grid.Header(1))
	assert.Equal(t, "cat food", grid.Cell(0, 0))
	assert.Equal(t, "62", grid.Cell(1, 1))
	assert.Equal(t, "kitten", grid.Cell(2, 0))
	assert.Equal(t, "", grid.Cell(2, 1))
	assert.Equal(t, "", grid.Cell(3, 0))
}

func TestGrid_EmptyResultSet(t *testing.T) {
	rs, err := trends.NewResultSet("title", "value")
	require.NoError(t, err)

	grid := NewGrid(rs, NewFormatter(language.AmericanEnglish))
	rows, cols := grid.Size()
	assert.Zero(t, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, "value", grid.Header(1))
}

func TestFormatter_LocaleGrouping(t *testing.T) {
	us := NewFormatter(language.AmericanEnglish)
	assert.Equal(t, "12,345", us.Format(trends.NumberValue(12345)))
	assert.Equal(t, "0.5", us.Format(trends.NumberValue(0.5)))
	assert.Equal(t, "GB", us.Format(trends.StringValue("GB")))

	de := NewFormatter(language.German)
	assert.Equal(t, "12.345", de.Format(trends.NumberValue(12345)))
}

func TestPresenter_TableWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	p := NewPresenter(a, DefaultOptions(), NewFormatter(language.AmericanEnglish))
	w := p.tableWindow(NewGrid(threeByTwo(t), p.formatter))
	defer w.Close()

	assert.Equal(t, tableWindowTitle, w.Title())
	table, ok := w.Content().(*widget.Table)
	require.True(t, ok)
	rows, cols := table.Length()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	assert.True(t, table.ShowHeaderRow)
	assert.False(t, table.ShowHeaderColumn)
}

func TestPresenter_TableWindowsAreIndependent(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	p := NewPresenter(a, DefaultOptions(), NewFormatter(language.AmericanEnglish))
	first := p.tableWindow(NewGrid(threeByTwo(t), p.formatter))
	empty, err := trends.NewResultSet("geoName")
	require.NoError(t, err)
	second := p.tableWindow(NewGrid(empty, p.formatter))

	second.Close()
	rows, _ := first.Content().(*widget.Table).Length()
	assert.Equal(t, 3, rows)
	first.Close()
}

func timeSeries(t *testing.T, points int) *trends.TimeSeries {
	t.Helper()
	rs, err := trends.NewResultSet("cats", " dogs", trends.PartialColumn)
	require.NoError(t, err)
	rs.IndexName = "date"
	start := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	for i := 0; i < points; i++ {
		require.NoError(t, rs.Append(trends.NumberValue(float64(10+i)), trends.NumberValue(float64(50-i)), trends.BoolValue(false)))
		rs.Index = append(rs.Index, trends.TimeValue(start.AddDate(0, 0, 7*i)))
	}
	ts, err := trends.NewTimeSeries(rs)
	require.NoError(t, err)
	return ts
}

func TestRenderTimeSeries(t *testing.T) {
	img, err := RenderTimeSeries(timeSeries(t, 12), "Interest Over Time", 640, 480)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestRenderTimeSeries_SinglePoint(t *testing.T) {
	_, err := RenderTimeSeries(timeSeries(t, 1), "Interest Over Time", 320, 240)
	assert.NoError(t, err)
}

func TestBuildChart_OneLinePerKeyword(t *testing.T) {
	rs, err := trends.NewResultSet("cats", trends.PartialColumn, " dogs", "birds")
	require.NoError(t, err)
	rs.IndexName = "date"
	start := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, rs.Append(
			trends.NumberValue(float64(10+i)),
			trends.BoolValue(i == 3),
			trends.NumberValue(float64(50-i)),
			trends.NumberValue(math.NaN()),
		))
		rs.Index = append(rs.Index, trends.TimeValue(start.AddDate(0, 0, 7*i)))
	}
	ts, err := trends.NewTimeSeries(rs)
	require.NoError(t, err)

	ch, err := buildChart(ts, "Interest Over Time", 1200, 800)
	require.NoError(t, err)

	assert.Equal(t, "Interest Over Time", ch.Title)
	assert.Equal(t, "Date", ch.XAxis.Name)
	assert.Equal(t, "Interest", ch.YAxis.Name)
	assert.Equal(t, 1200, ch.Width)
	assert.Equal(t, 800, ch.Height)

	var names []string
	for _, s := range ch.Series {
		line, ok := s.(chart.TimeSeries)
		require.True(t, ok)
		names = append(names, line.Name)
		assert.Len(t, line.XValues, 4)
	}
	assert.Equal(t, []string{"cats", " dogs"}, names)
	assert.Len(t, ch.Elements, 1, "legend")

	dogs := ch.Series[1].(chart.TimeSeries)
	assert.Equal(t, []float64{50, 49, 48, 47}, dogs.YValues)
	assert.True(t, dogs.XValues[0].Equal(start))
}

func TestBuildChart_FlatSeriesGetsRange(t *testing.T) {
	rs, err := trends.NewResultSet("cats")
	require.NoError(t, err)
	require.NoError(t, rs.Append(trends.NumberValue(10)))
	require.NoError(t, rs.Append(trends.NumberValue(10)))
	rs.Index = []trends.Value{trends.StringValue("2024-01-07"), trends.StringValue("2024-01-14")}
	ts, err := trends.NewTimeSeries(rs)
	require.NoError(t, err)

	ch, err := buildChart(ts, "flat", 320, 240)
	require.NoError(t, err)
	require.NotNil(t, ch.YAxis.Range)
	assert.Equal(t, 9.0, ch.YAxis.Range.GetMin())
	assert.Equal(t, 11.0, ch.YAxis.Range.GetMax())
}

func TestRenderTimeSeries_NoData(t *testing.T) {
	_, err := RenderTimeSeries(timeSeries(t, 0), "Interest Over Time", 320, 240)
	assert.ErrorIs(t, err, trends.ErrNoData)

	_, err = RenderTimeSeries(nil, "Interest Over Time", 320, 240)
	assert.ErrorIs(t, err, trends.ErrNoData)
}
