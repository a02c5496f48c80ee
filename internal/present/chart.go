package present

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"trends-desk/pkg/trends"
)

const (
	xAxisLabel = "Date"
	yAxisLabel = "Interest"
)

// RenderTimeSeries draws one line per keyword column of ts, dates along the
// x-axis and interest on the y-axis, with a legend naming each keyword.
func RenderTimeSeries(ts *trends.TimeSeries, title string, width, height int) (image.Image, error) {
	ch, err := buildChart(ts, title, width, height)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}
	return img, nil
}

// buildChart lays out the chart without rendering it. Columns with no
// plottable point get no line.
func buildChart(ts *trends.TimeSeries, title string, width, height int) (chart.Chart, error) {
	if ts == nil {
		return chart.Chart{}, trends.ErrNoData
	}

	times := ts.Times()
	var series []chart.Series
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, col := range ts.KeywordColumns() {
		xs, ys := dropGaps(times, ts.Values(col))
		if len(xs) == 0 {
			continue
		}
		for _, y := range ys {
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
		// go-chart needs two x values to build a range
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(time.Second))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.TimeSeries{
			Name:    col,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.GetDefaultColor(len(series)),
			},
		})
	}
	if len(series) == 0 {
		return chart.Chart{}, fmt.Errorf("%w: no numeric data to plot", trends.ErrNoData)
	}

	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:           xAxisLabel,
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis:  chart.YAxis{Name: yAxisLabel},
		Series: series,
	}
	// a flat series still needs a non-zero y range
	if minY == maxY {
		ch.YAxis.Range = &chart.ContinuousRange{Min: minY - 1, Max: maxY + 1}
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch, nil
}

func dropGaps(times []time.Time, values []float64) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || i >= len(times) {
			continue
		}
		xs = append(xs, times[i])
		ys = append(ys, v)
	}
	return xs, ys
}
