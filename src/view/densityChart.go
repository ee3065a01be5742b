package view

import (
	"errors"
	"fmt"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"io"
	"lifecube/src/universe"
	"os"
)

//ErrNoGenerations is returned when a chart is rendered before the first generation was reported
var ErrNoGenerations = errors.New("no generations recorded")

//DensityChart records the density of every generation and renders it as a line chart
type DensityChart struct {
	u           universe.Universe
	generations []float64
	densities   []float64
	Width       int
	Height      int
}

func NewDensityChart() *DensityChart {
	return &DensityChart{Width: 800, Height: 300}
}

func (dc *DensityChart) Refresh() {}

func (dc *DensityChart) GenerationAdvanced(generation int, density float64) {
	dc.generations = append(dc.generations, float64(generation))
	dc.densities = append(dc.densities, density)
}

func (dc *DensityChart) Register(u universe.Universe) {
	dc.u = u
}

//Start drops the samples of a previous run
func (dc *DensityChart) Start() {
	dc.generations = dc.generations[:0]
	dc.densities = dc.densities[:0]
}

//Len returns the number of recorded generations
func (dc *DensityChart) Len() int {
	return len(dc.generations)
}

//Render writes the chart as PNG
func (dc *DensityChart) Render(w io.Writer) error {
	if len(dc.generations) == 0 {
		return ErrNoGenerations
	}
	xs, ys := dc.generations, dc.densities
	//a continuous series needs two points to draw a line
	if len(xs) == 1 {
		xs = []float64{0, xs[0]}
		ys = []float64{ys[0], ys[0]}
	}
	//a flat series has a zero data range, which the chart refuses to render
	top := 1.0
	for _, d := range ys {
		if d > top {
			top = d
		}
	}
	title := "density"
	if dc.u != nil {
		o := dc.u.Options()
		title = fmt.Sprintf("%s %v, %d^3", o.Template, dc.u.Rules(), o.Size)
	}
	graph := chart.Chart{
		Title:  title,
		Width:  dc.Width,
		Height: dc.Height,
		XAxis: chart.XAxis{
			Name:  "generation",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "density %",
			Style: chart.Style{FontSize: 10.0},
			Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "density",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 0, G: 200, B: 0, A: 255}, StrokeWidth: 3.0},
			},
		},
	}
	return graph.Render(chart.PNG, w)
}

//Save renders the chart into the PNG file at path
func (dc *DensityChart) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dc.Render(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render density chart: %w", err)
	}
	return f.Close()
}
