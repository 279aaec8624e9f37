// Package dataset reads the coursework datasets: SMARTS spectral irradiance
// workbooks and hourly irradiance CSV files.
package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pvlab/pvassignments/pkg/spectrum"
)

// ErrDuplicateColumn is returned when a workbook repeats a column heading
var ErrDuplicateColumn = errors.New("duplicate column")

// SpectrumFileName returns the workbook name for an air mass and water vapour
// content, e.g. Spectrum_AM1_5.xlsx or Spectrum_AM1_5_WP0_71.xlsx. An empty
// waterVapor selects the default 1.42 cm file.
func SpectrumFileName(airMass, waterVapor string) string {
	name := "Spectrum_AM" + strings.ReplaceAll(airMass, ".", "_")
	if waterVapor != "" {
		name += "_WP" + strings.ReplaceAll(waterVapor, ".", "_")
	}
	return name + ".xlsx"
}

// LoadSpectrum opens the workbook at path and reads it with ReadSpectrum.
func LoadSpectrum(path, sheet, wavelengthColumn, label string) (spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return spectrum.Spectrum{}, err
	}
	defer f.Close()

	s, err := ReadSpectrum(f, sheet, wavelengthColumn, label)
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ReadSpectrum reads one sheet of an xlsx workbook. The first row holds the
// column headings; wavelengthColumn becomes the wavelength axis and every other
// named column an irradiance column.
func ReadSpectrum(r io.Reader, sheet, wavelengthColumn, label string) (spectrum.Spectrum, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return spectrum.Spectrum{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return spectrum.Spectrum{}, fmt.Errorf("sheet %q: %w", sheet, ErrNoRows)
	}

	header := rows[0]
	wlIdx := -1
	for i, h := range header {
		if h == wavelengthColumn {
			wlIdx = i
			break
		}
	}
	if wlIdx < 0 {
		return spectrum.Spectrum{}, fmt.Errorf("sheet %q: %w %q", sheet, ErrMissingColumn, wavelengthColumn)
	}

	s := spectrum.Spectrum{
		Label:   label,
		Columns: make(map[string][]float64),
	}
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		if h == "" {
			continue
		}
		if seen[h] {
			return spectrum.Spectrum{}, fmt.Errorf("sheet %q column %d: %w %q", sheet, i+1, ErrDuplicateColumn, h)
		}
		seen[h] = true
		if i != wlIdx {
			s.Columns[h] = nil
		}
	}

	for rowNum, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		for i, h := range header {
			if h == "" {
				continue
			}
			var cell string
			if i < len(row) {
				cell = strings.TrimSpace(row[i])
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				// rowNum is relative to the data rows; report the sheet row
				return spectrum.Spectrum{}, fmt.Errorf("sheet %q row %d column %q: invalid number %q",
					sheet, rowNum+2, h, cell)
			}
			if i == wlIdx {
				s.Wavelength = append(s.Wavelength, v)
			} else {
				s.Columns[h] = append(s.Columns[h], v)
			}
		}
	}

	return s, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
