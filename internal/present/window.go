package present

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"trends-desk/pkg/logger"
	"trends-desk/pkg/trends"
)

const tableWindowTitle = "Data Display"

// Options size the windows the presenter opens.
type Options struct {
	ColumnWidth float32
	TableWidth  float32
	TableHeight float32
	ChartWidth  int
	ChartHeight int
}

// DefaultOptions returns the stock window geometry.
func DefaultOptions() Options {
	return Options{
		ColumnWidth: 100,
		TableWidth:  600,
		TableHeight: 400,
		ChartWidth:  1200,
		ChartHeight: 800,
	}
}

// Presenter opens a new, independent window for every result it is given.
// Its methods may be called from any goroutine.
type Presenter struct {
	app       fyne.App
	opts      Options
	formatter *Formatter
	log       *logger.Logger
}

// NewPresenter creates a new presenter opening windows on app
func NewPresenter(app fyne.App, opts Options, formatter *Formatter) *Presenter {
	return &Presenter{
		app:       app,
		opts:      opts,
		formatter: formatter,
		log:       logger.GetLogger().WithField("component", "presenter"),
	}
}

// DisplayTable shows rs in a scrollable grid. An empty set shows headers only.
func (p *Presenter) DisplayTable(rs *trends.ResultSet) {
	grid := NewGrid(rs, p.formatter)
	rows, cols := grid.Size()
	p.log.WithFields(map[string]interface{}{"rows": rows, "columns": cols}).Debug("Opening table window")

	fyne.Do(func() {
		p.tableWindow(grid).Show()
	})
}

// DisplayTimeSeries renders ts as a line chart in its own window.
func (p *Presenter) DisplayTimeSeries(ts *trends.TimeSeries, title string) error {
	img, err := RenderTimeSeries(ts, title, p.opts.ChartWidth, p.opts.ChartHeight)
	if err != nil {
		return err
	}

	fyne.Do(func() {
		w := p.app.NewWindow(title)
		chartImage := canvas.NewImageFromImage(img)
		chartImage.FillMode = canvas.ImageFillContain
		chartImage.SetMinSize(fyne.NewSize(float32(p.opts.ChartWidth)/2, float32(p.opts.ChartHeight)/2))
		w.SetContent(chartImage)
		w.Resize(fyne.NewSize(float32(p.opts.ChartWidth), float32(p.opts.ChartHeight)))
		w.Show()
	})
	return nil
}

func (p *Presenter) tableWindow(grid *Grid) fyne.Window {
	w := p.app.NewWindow(tableWindowTitle)
	w.SetContent(p.newTable(grid))
	w.Resize(fyne.NewSize(p.opts.TableWidth, p.opts.TableHeight))
	return w
}

// newTable builds a grid widget with a sticky header row. widget.Table scrolls
// on both axes when the content outgrows the window.
func (p *Presenter) newTable(grid *Grid) *widget.Table {
	table := widget.NewTableWithHeaders(
		func() (int, int) { return grid.Size() },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(grid.Cell(id.Row, id.Col))
		},
	)
	table.ShowHeaderColumn = false
	table.CreateHeader = func() fyne.CanvasObject {
		l := widget.NewLabel("")
		l.TextStyle = fyne.TextStyle{Bold: true}
		return l
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		o.(*widget.Label).SetText(grid.Header(id.Col))
	}

	_, cols := grid.Size()
	for col := 0; col < cols; col++ {
		table.SetColumnWidth(col, p.opts.ColumnWidth)
	}
	return table
}
