// Package figure renders the coursework comparison plots as PNG files.
package figure

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when a figure would have nothing to draw.
var ErrNoData = errors.New("figure: no data to plot")

// Palette is the line colour cycle shared by all figures.
var Palette = []color.Color{
	rgb(0x0B1F3B), // deep navy
	rgb(0xE69F00), // solar orange
	rgb(0x56B4E9), // sky blue
	rgb(0x009E73), // teal
	rgb(0xD55E00), // vermillion
	rgb(0xF0C66D), // amber
	rgb(0x4E5A61), // slate grey
}

var (
	gridColor = rgb(0xB7B7B7)
	peakColor = color.NRGBA{A: 128}
)

const (
	figureWidth = 7 * vg.Inch
	lineWidth   = 1.3
)

// goldenRatio sets the figure aspect
var goldenRatio = (1 + math.Sqrt(5)) / 2

func rgb(hex uint32) color.Color {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

// FigurePath returns <dir>/<title>.png, creating dir if needed.
func FigurePath(dir, title string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating figure directory: %w", err)
	}
	return filepath.Join(dir, title+".png"), nil
}

// newPlot sets up the common styling: horizontal dotted grid only, legend in
// the upper right.
func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(8)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(1), vg.Points(2)}
	p.Add(grid)

	return p
}

// xys pairs x and y, dropping samples where either is NaN or infinite
func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(x))
	for i := range x {
		if i >= len(y) {
			break
		}
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) || math.IsInf(x[i], 0) || math.IsInf(y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	return pts
}

func addLine(p *plot.Plot, label string, pts plotter.XYs, i int) (float64, error) {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return 0, fmt.Errorf("series %q: %w", label, err)
	}
	line.LineStyle.Color = Palette[i%len(Palette)]
	line.LineStyle.Width = vg.Points(lineWidth)
	p.Add(line)
	p.Legend.Add(label, line)

	_, _, _, yMax := plotter.XYRange(pts)
	return yMax, nil
}

func save(p *plot.Plot, path string) error {
	if err := p.Save(figureWidth, vg.Length(float64(figureWidth)/goldenRatio), path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// SpectralSeries is one spectral irradiance curve.
type SpectralSeries struct {
	Label      string
	Wavelength []float64 // nm
	Irradiance []float64 // W/m²/nm
	// Peak, when set, draws a dashed vertical marker at that wavelength
	Peak *float64
}

// SpectraOptions holds the figure texts.
type SpectraOptions struct {
	Title  string
	YLabel string
}

// Spectra draws spectral irradiance against wavelength for every series.
func Spectra(path string, opts SpectraOptions, series []SpectralSeries) error {
	if len(series) == 0 {
		return ErrNoData
	}

	yLabel := opts.YLabel
	if yLabel == "" {
		yLabel = "Global to perpendicular plane (W/m²/nm)"
	}
	p := newPlot(opts.Title, "Wavelength (nm)", yLabel)

	yMax := 0.0
	var peaks []float64
	for i, s := range series {
		pts := xys(s.Wavelength, s.Irradiance)
		if len(pts) == 0 {
			return fmt.Errorf("series %q: %w", s.Label, ErrNoData)
		}
		top, err := addLine(p, s.Label, pts, i)
		if err != nil {
			return err
		}
		yMax = math.Max(yMax, top)
		if s.Peak != nil {
			peaks = append(peaks, *s.Peak)
		}
	}

	for _, wl := range peaks {
		marker, err := plotter.NewLine(plotter.XYs{{X: wl, Y: 0}, {X: wl, Y: yMax}})
		if err != nil {
			return fmt.Errorf("peak marker at %g nm: %w", wl, err)
		}
		marker.LineStyle.Color = peakColor
		marker.LineStyle.Width = vg.Points(1.2)
		marker.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(marker)
	}

	return save(p, path)
}

// TimedSeries is one quantity sampled over time.
type TimedSeries struct {
	Label  string
	Times  []time.Time
	Values []float64
}

// TimeSeriesOptions holds the figure texts.
type TimeSeriesOptions struct {
	Title      string
	YLabel     string
	TimeFormat string // time.Format layout for the x ticks; defaults to "Jan 02"
}

// TimeSeries draws every series against time.
func TimeSeries(path string, opts TimeSeriesOptions, series []TimedSeries) error {
	if len(series) == 0 {
		return ErrNoData
	}

	format := opts.TimeFormat
	if format == "" {
		format = "Jan 02"
	}
	p := newPlot(opts.Title, "Time (UTC)", opts.YLabel)
	p.X.Tick.Marker = plot.TimeTicks{
		Format: format,
		Time: func(t float64) time.Time {
			return time.Unix(int64(t), 0).UTC()
		},
	}

	for i, s := range series {
		x := make([]float64, len(s.Times))
		for j, t := range s.Times {
			x[j] = float64(t.Unix())
		}
		pts := xys(x, s.Values)
		if len(pts) == 0 {
			return fmt.Errorf("series %q: %w", s.Label, ErrNoData)
		}
		if _, err := addLine(p, s.Label, pts, i); err != nil {
			return err
		}
	}

	return save(p, path)
}
