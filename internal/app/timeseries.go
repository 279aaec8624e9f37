package app

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pvlab/pvassignments/internal/dataset"
	"github.com/pvlab/pvassignments/internal/figure"
	"github.com/pvlab/pvassignments/pkg/config"
	"github.com/pvlab/pvassignments/pkg/poa"
	"github.com/pvlab/pvassignments/pkg/solar"
)

const (
	headRows             = 5
	defaultIntervalHours = 1.0
)

// runTimeSeries applies every panel to the hourly weather dataset and compares
// the result with a clear-sky reference.
func (a *App) runTimeSeries(ctx context.Context, cfg *config.ConfigData, report *Report) error {
	path := filepath.Join(cfg.DataDir, cfg.Weather.File)
	w, err := dataset.LoadWeather(path, cfg.Weather.Columns)
	if err != nil {
		return err
	}
	a.logger.Infow("loaded weather dataset", "path", path, "samples", w.Len(), "interval", w.Interval())
	for column, n := range w.Missing {
		a.logger.Warnw("missing values in weather dataset", "column", column, "count", n)
	}
	a.logHead(w.Head(headRows))

	if w.Len() == 0 {
		return fmt.Errorf("%s: no samples", path)
	}

	measured := poa.Series{DHI: w.DHI, DNI: w.DNI}
	if w.HasSunPosition() {
		measured.SunAzimuth, measured.SunZenith = w.SunAzimuth, w.SunZenith
	} else {
		a.logger.Debugw("computing sun positions", "site", cfg.Site.Name)
		measured.SunAzimuth, measured.SunZenith = solar.Positions(w.Times, cfg.Site.Latitude, cfg.Site.Longitude)
	}

	sky := clearSkySeries(w.Times, measured.SunZenith, cfg.Site.Altitude)
	sky.SunAzimuth, sky.SunZenith = measured.SunAzimuth, measured.SunZenith

	report.ClearSkyIndex = math.NaN()
	if w.HasGHI() {
		report.ClearSkyIndex = clearSkyIndex(w.GHI, sky.GHI)
		a.logger.Infow("clear-sky index", "site", cfg.Site.Name, "index", fmt.Sprintf("%.3f", report.ClearSkyIndex))
	}

	hours := w.Interval().Hours()
	if hours <= 0 {
		hours = defaultIntervalHours
	}
	var series []figure.TimedSeries
	for _, pd := range cfg.Panels {
		if err := ctx.Err(); err != nil {
			return err
		}

		panel := pd.Panel()
		result, err := poa.ComputeGPOASeries(panel, measured)
		if err != nil {
			return fmt.Errorf("panel %s: %w", pd.Name, err)
		}
		reference, err := poa.ComputeGPOASeries(panel, sky.Series)
		if err != nil {
			return fmt.Errorf("panel %s clear-sky reference: %w", pd.Name, err)
		}

		summary := summarize(result, measured.SunZenith, hours)
		summary.ClearSkyKWh = insolation(reference.GPOA, hours)
		report.Panels[pd.Name] = summary

		a.logger.Infow("plane-of-array time series",
			"panel", pd.Name,
			"orientation", panel.String(),
			"samples", summary.Samples,
			"missing", summary.Missing,
			"insolation_kwh_m2", fmt.Sprintf("%.1f", summary.InsolationKWh),
			"clear_sky_kwh_m2", fmt.Sprintf("%.1f", summary.ClearSkyKWh),
			"mean_daylight_gpoa_w_m2", fmt.Sprintf("%.1f", summary.MeanDaylightGPOA),
			"peak_gpoa_w_m2", fmt.Sprintf("%.1f", summary.PeakGPOA),
		)

		series = append(series, figure.TimedSeries{
			Label:  pd.Name,
			Times:  w.Times,
			Values: result.GPOA,
		})
	}

	figPath, err := figure.FigurePath(cfg.FigureDir, "Part 2-2")
	if err != nil {
		return err
	}
	opts := figure.TimeSeriesOptions{
		Title:  fmt.Sprintf("Plane-of-array irradiance - %s", cfg.Site.Name),
		YLabel: "GPOA (W/m²)",
	}
	if err := figure.TimeSeries(figPath, opts, series); err != nil {
		return err
	}
	report.Figures = append(report.Figures, figPath)
	a.logger.Infow("saved figure", "path", figPath)

	return nil
}

func (a *App) logHead(w *dataset.Weather) {
	for i := 0; i < w.Len(); i++ {
		kv := []interface{}{"row", i, "time", w.Times[i].Format(time.RFC3339), "dni", w.DNI[i], "dhi", w.DHI[i]}
		if w.HasGHI() {
			kv = append(kv, "ghi", w.GHI[i])
		}
		a.logger.Infow("weather sample", kv...)
	}
}

// clearSky is a poa.Series of clear-sky DNI/DHI plus the matching GHI
type clearSky struct {
	poa.Series
	GHI []float64
}

func clearSkySeries(times []time.Time, zeniths []float64, altitude float64) clearSky {
	cs := clearSky{
		Series: poa.Series{
			DHI: make([]float64, len(times)),
			DNI: make([]float64, len(times)),
		},
		GHI: make([]float64, len(times)),
	}
	for i, t := range times {
		irr := solar.ClearSkyAt(zeniths[i], t.UTC().YearDay(), altitude)
		cs.DNI[i], cs.DHI[i], cs.GHI[i] = irr.DNI, irr.DHI, irr.GHI
	}
	return cs
}

// finite returns the elements of values that are not NaN, along with the
// matching elements of each of the aligned slices in others.
func finite(values []float64, others ...[]float64) ([]float64, [][]float64) {
	kept := make([]float64, 0, len(values))
	keptOthers := make([][]float64, len(others))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		kept = append(kept, v)
		for j, o := range others {
			keptOthers[j] = append(keptOthers[j], o[i])
		}
	}
	return kept, keptOthers
}

// insolation integrates irradiance samples (W/m²) taken every hours into kWh/m².
// Missing samples contribute nothing.
func insolation(gpoa []float64, hours float64) float64 {
	kept, _ := finite(gpoa)
	return floats.Sum(kept) * hours / 1000
}

// clearSkyIndex is total measured GHI over total clear-sky GHI, both summed
// over the samples where the measurement exists and the clear sky is lit.
func clearSkyIndex(measured, reference []float64) float64 {
	var m, c float64
	for i := range measured {
		if math.IsNaN(measured[i]) || !(reference[i] > 0) {
			continue
		}
		m += measured[i]
		c += reference[i]
	}
	if c == 0 {
		return math.NaN()
	}
	return m / c
}

func summarize(r poa.SeriesResult, zeniths []float64, hours float64) *PanelSummary {
	s := &PanelSummary{
		Series:           r,
		Samples:          r.Len(),
		InsolationKWh:    insolation(r.GPOA, hours),
		MeanDaylightGPOA: math.NaN(),
	}

	kept, others := finite(r.GPOA, zeniths)
	s.Missing = r.Len() - len(kept)
	if len(kept) > 0 {
		s.PeakGPOA = floats.Max(kept)
	}

	var daylight []float64
	for i, z := range others[0] {
		if z < 90 {
			daylight = append(daylight, kept[i])
		}
	}
	s.DaylightSampleSize = len(daylight)
	if len(daylight) > 0 {
		s.MeanDaylightGPOA = stat.Mean(daylight, nil)
	}
	return s
}
