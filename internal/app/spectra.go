package app

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pvlab/pvassignments/internal/dataset"
	"github.com/pvlab/pvassignments/internal/figure"
	"github.com/pvlab/pvassignments/pkg/config"
	"github.com/pvlab/pvassignments/pkg/spectrum"
)

// defaultWaterVaporCM is the precipitable water of the files without a _WP suffix
const defaultWaterVaporCM = 1.42

func (a *App) loadSpectrum(cfg *config.ConfigData, airMass, waterVapor, label string) (spectrum.Spectrum, error) {
	path := filepath.Join(cfg.DataDir, dataset.SpectrumFileName(airMass, waterVapor))
	a.logger.Debugw("loading spectrum", "path", path, "label", label)
	return dataset.LoadSpectrum(path, cfg.Spectrum.Sheet, cfg.Spectrum.WavelengthColumn, label)
}

// analyseSpectra integrates and finds the peak of every column of every
// spectrum, records the results and returns the plot series.
func (a *App) analyseSpectra(cfg *config.ConfigData, report *Report, spectra []spectrum.Spectrum, columns []string, markPeaks bool) ([]figure.SpectralSeries, error) {
	var series []figure.SpectralSeries
	for _, s := range spectra {
		for _, column := range columns {
			label := spectrum.SeriesLabel(s.Label, column)

			values, err := s.Column(column)
			if err != nil {
				return nil, err
			}
			broadband := spectrum.BroadbandIrradiance(values, cfg.Spectrum.BinWidthNM)
			report.Broadband[label] = broadband

			peak, err := spectrum.PeakWavelength(s, column)
			if err != nil {
				return nil, err
			}
			report.Peaks[label] = peak

			a.logger.Infow("spectral irradiance",
				"series", label,
				"broadband_w_m2", fmt.Sprintf("%.2f", broadband),
				"peak_wavelength_nm", peak.Wavelength,
				"peak_irradiance_w_m2_nm", peak.Irradiance,
			)

			ss := figure.SpectralSeries{
				Label:      label,
				Wavelength: s.Wavelength,
				Irradiance: values,
			}
			if markPeaks {
				wl := peak.Wavelength
				ss.Peak = &wl
			}
			series = append(series, ss)
		}
	}
	return series, nil
}

func (a *App) plotSpectra(cfg *config.ConfigData, report *Report, fileTitle, title string, series []figure.SpectralSeries) error {
	path, err := figure.FigurePath(cfg.FigureDir, fileTitle)
	if err != nil {
		return err
	}
	if err := figure.Spectra(path, figure.SpectraOptions{Title: title}, series); err != nil {
		return err
	}
	report.Figures = append(report.Figures, path)
	a.logger.Infow("saved figure", "path", path)
	return nil
}

// runSpectraAirMass compares the global irradiance on a sun-facing plane for
// each configured air mass.
func (a *App) runSpectraAirMass(cfg *config.ConfigData, report *Report) error {
	var spectra []spectrum.Spectrum
	for _, am := range cfg.Spectrum.AirMasses {
		s, err := a.loadSpectrum(cfg, am, "", "AM "+am)
		if err != nil {
			return err
		}
		spectra = append(spectra, s)
	}

	series, err := a.analyseSpectra(cfg, report, spectra, []string{spectrum.ColumnGlobalPerpendicular}, true)
	if err != nil {
		return err
	}
	return a.plotSpectra(cfg, report, "Part 1-1", "Spectral irradiance for different air masses", series)
}

// runSpectraHorizontal splits the AM 1.5 horizontal irradiance into direct and
// diffuse parts and reports the diffuse fraction.
func (a *App) runSpectraHorizontal(cfg *config.ConfigData, report *Report) error {
	s, err := a.loadSpectrum(cfg, "1.5", "", "AM 1.5")
	if err != nil {
		return err
	}

	columns := []string{
		spectrum.ColumnDirectHorizontal,
		spectrum.ColumnDiffuseHorizontal,
		spectrum.ColumnGlobalHorizontal,
	}
	series, err := a.analyseSpectra(cfg, report, []spectrum.Spectrum{s}, columns, false)
	if err != nil {
		return err
	}

	diffuse := report.Broadband[spectrum.SeriesLabel(s.Label, spectrum.ColumnDiffuseHorizontal)]
	global := report.Broadband[spectrum.SeriesLabel(s.Label, spectrum.ColumnGlobalHorizontal)]
	report.DiffuseFraction = spectrum.DiffuseFraction(diffuse, global)
	a.logger.Infow("diffuse fraction", "series", s.Label, "fraction", fmt.Sprintf("%.2f", report.DiffuseFraction))

	return a.plotSpectra(cfg, report, "Part 1-2", "Spectral irradiance - Horizontal plane", series)
}

// runSpectraWaterVapor compares AM 1.5 spectra across precipitable water
// contents, including the default file.
func (a *App) runSpectraWaterVapor(cfg *config.ConfigData, report *Report) error {
	seq, err := waterVaporSequence(cfg.Spectrum.WaterVapors)
	if err != nil {
		return err
	}

	var spectra []spectrum.Spectrum
	for _, wv := range seq {
		s, err := a.loadSpectrum(cfg, "1.5", wv.name, fmt.Sprintf("AM 1.5 - Water Vapor %.2f", wv.cm))
		if err != nil {
			return err
		}
		spectra = append(spectra, s)
	}

	series, err := a.analyseSpectra(cfg, report, spectra, []string{spectrum.ColumnGlobalPerpendicular}, false)
	if err != nil {
		return err
	}
	return a.plotSpectra(cfg, report, "Part 1-3", "Spectral irradiance for different water vapor contents", series)
}

type waterVapor struct {
	name string // file suffix; empty for the default file
	cm   float64
}

// waterVaporSequence returns the configured contents plus the default one,
// sorted ascending.
func waterVaporSequence(configured []string) ([]waterVapor, error) {
	seq := []waterVapor{{name: "", cm: defaultWaterVaporCM}}
	for _, name := range configured {
		cm, err := strconv.ParseFloat(name, 64)
		if err != nil {
			return nil, fmt.Errorf("water vapor %q: %w", name, err)
		}
		if cm == defaultWaterVaporCM {
			continue
		}
		seq = append(seq, waterVapor{name: name, cm: cm})
	}
	sort.Slice(seq, func(i, j int) bool { return seq[i].cm < seq[j].cm })
	return seq, nil
}
