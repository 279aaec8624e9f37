// Package spectrum analyses tabulated spectral irradiance, such as SMARTS
// output for a range of air masses and water vapour contents.
package spectrum

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// DefaultBinWidthNM is the wavelength step assumed when integrating a spectrum.
const DefaultBinWidthNM = 10.0

// Column headings used in the SMARTS spectral irradiance workbooks. Note the
// double space in some of them; it is part of the published headings.
const (
	ColumnWavelength          = "Wavelength (nm)"
	ColumnGlobalPerpendicular = "Global to perpendicular plane  (W/m2/nm)"
	ColumnDirectHorizontal    = "Direct to horizontal plane (W/m2/nm)"
	ColumnDiffuseHorizontal   = "Diffuse to horizontal plane (W/m2/nm)"
	ColumnGlobalHorizontal    = "Global to horizontal plane  (W/m2/nm)"
)

var (
	// ErrUnknownColumn is returned when a spectrum has no column of the requested name
	ErrUnknownColumn = errors.New("spectrum: unknown column")
	// ErrEmptySpectrum is returned when a column holds no samples
	ErrEmptySpectrum = errors.New("spectrum: no samples")
)

// Spectrum is one table of spectral irradiance values sampled at Wavelength.
type Spectrum struct {
	Label      string
	Wavelength []float64
	Columns    map[string][]float64
}

// Peak is the maximum of a spectral irradiance column.
type Peak struct {
	Wavelength float64 // nm
	Irradiance float64 // W/m²/nm
}

// Column returns the values of the named column.
func (s Spectrum) Column(name string) ([]float64, error) {
	values, ok := s.Columns[name]
	if !ok {
		return nil, fmt.Errorf("%w %q in %q", ErrUnknownColumn, name, s.Label)
	}
	return values, nil
}

// ColumnNames returns the irradiance column names in sorted order.
func (s Spectrum) ColumnNames() []string {
	names := make([]string, 0, len(s.Columns))
	for name := range s.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BroadbandIrradiance integrates spectral irradiance (W/m²/nm) into broadband
// irradiance (W/m²) as a sum of equal-width bins.
func BroadbandIrradiance(values []float64, binWidthNM float64) float64 {
	return floats.Sum(values) * binWidthNM
}

// Broadband integrates the named column of s.
func (s Spectrum) Broadband(column string, binWidthNM float64) (float64, error) {
	values, err := s.Column(column)
	if err != nil {
		return 0, err
	}
	return BroadbandIrradiance(values, binWidthNM), nil
}

// PeakWavelength finds the wavelength with the highest irradiance in column.
// The first maximum wins when several samples share it.
func PeakWavelength(s Spectrum, column string) (Peak, error) {
	values, err := s.Column(column)
	if err != nil {
		return Peak{}, err
	}
	if len(values) == 0 {
		return Peak{}, fmt.Errorf("%w in column %q of %q", ErrEmptySpectrum, column, s.Label)
	}
	if len(values) != len(s.Wavelength) {
		return Peak{}, fmt.Errorf("column %q of %q has %d samples for %d wavelengths",
			column, s.Label, len(values), len(s.Wavelength))
	}

	i := floats.MaxIdx(values)
	return Peak{
		Wavelength: s.Wavelength[i],
		Irradiance: values[i],
	}, nil
}

// DiffuseFraction is the share of global irradiance that arrives diffuse.
func DiffuseFraction(diffuse, global float64) float64 {
	if global == 0 {
		return 0
	}
	return diffuse / global
}

// SeriesLabel names one column of one spectrum in reports and plot legends.
func SeriesLabel(label, column string) string {
	return fmt.Sprintf("%s - %s", label, column)
}
