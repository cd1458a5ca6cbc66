// Package report renders run statistics to image files
package report

import (
	"errors"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/routega/genetic/tracking"
)

// Chart size
const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// ErrNoSamples is returned when there is nothing to draw
var ErrNoSamples = errors.New("no samples to plot")

// Convergence builds a chart of best and mean pool cost over steps
func Convergence(samples []tracking.Sample, title string) (*plot.Plot, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Step"
	p.Y.Label.Text = "Route cost"

	bestPts := make(plotter.XYs, len(samples))
	meanPts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		bestPts[i].X = float64(s.Step)
		bestPts[i].Y = float64(s.Best)
		meanPts[i].X = float64(s.Step)
		meanPts[i].Y = s.Mean
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return nil, err
	}
	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return nil, err
	}
	meanLine.Color = color.RGBA{R: 200, G: 120, B: 0, A: 255}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true

	return p, nil
}

// SaveConvergence writes the convergence chart to path; the extension picks the format
func SaveConvergence(samples []tracking.Sample, title, path string) error {
	p, err := Convergence(samples, title)
	if err != nil {
		return err
	}
	return p.Save(chartWidth, chartHeight, path)
}

// WriteConvergencePNG streams the convergence chart as PNG
func WriteConvergencePNG(w io.Writer, samples []tracking.Sample, title string) error {
	p, err := Convergence(samples, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
