package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pvlab/pvassignments/pkg/config"
)

var (
	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("missing column")
	// ErrNoRows is returned for a dataset with no header row
	ErrNoRows = errors.New("no rows")
)

// Weather is an hourly irradiance time series held as aligned columns.
type Weather struct {
	Times      []time.Time
	DNI        []float64
	DHI        []float64
	GHI        []float64 // nil when the file has no GHI column
	SunAzimuth []float64 // nil unless the file carries sun positions
	SunZenith  []float64

	// Missing counts the empty or NaN cells read as NaN, per column name
	Missing map[string]int
}

// Len returns the number of samples.
func (w *Weather) Len() int {
	return len(w.Times)
}

// HasSunPosition reports whether the file supplied both sun position columns.
func (w *Weather) HasSunPosition() bool {
	return w.SunAzimuth != nil && w.SunZenith != nil
}

// HasGHI reports whether the file supplied global horizontal irradiance.
func (w *Weather) HasGHI() bool {
	return w.GHI != nil
}

// Head returns a copy of the first n samples.
func (w *Weather) Head(n int) *Weather {
	if n > w.Len() {
		n = w.Len()
	}
	head := func(s []float64) []float64 {
		if s == nil {
			return nil
		}
		return append([]float64(nil), s[:n]...)
	}
	return &Weather{
		Times:      append([]time.Time(nil), w.Times[:n]...),
		DNI:        head(w.DNI),
		DHI:        head(w.DHI),
		GHI:        head(w.GHI),
		SunAzimuth: head(w.SunAzimuth),
		SunZenith:  head(w.SunZenith),
		Missing:    map[string]int{},
	}
}

// Interval returns the spacing between the first two samples, or zero for
// fewer than two samples.
func (w *Weather) Interval() time.Duration {
	if w.Len() < 2 {
		return 0
	}
	return w.Times[1].Sub(w.Times[0])
}

// LoadWeather opens the CSV file at path and reads it with ReadWeather.
func LoadWeather(path string, cols config.WeatherColumns) (*Weather, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w, err := ReadWeather(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// ReadWeather reads an hourly irradiance CSV. Times without a zone are taken as
// UTC. Empty numeric cells become NaN so that one bad hour does not discard
// the whole series.
func ReadWeather(r io.Reader, cols config.WeatherColumns) (*Weather, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	lookup := func(name string, required bool) (int, error) {
		if name == "" && !required {
			return -1, nil
		}
		i, ok := index[name]
		if !ok {
			if required {
				return -1, fmt.Errorf("%w %q", ErrMissingColumn, name)
			}
			return -1, nil
		}
		return i, nil
	}

	timeIdx, err := lookup(cols.Time, true)
	if err != nil {
		return nil, err
	}
	dniIdx, err := lookup(cols.DNI, true)
	if err != nil {
		return nil, err
	}
	dhiIdx, err := lookup(cols.DHI, true)
	if err != nil {
		return nil, err
	}
	ghiIdx, _ := lookup(cols.GHI, false)
	azIdx, _ := lookup(cols.SunAzimuth, false)
	zenIdx, _ := lookup(cols.SunZenith, false)
	withSun := azIdx >= 0 && zenIdx >= 0

	w := &Weather{Missing: make(map[string]int)}
	if ghiIdx >= 0 {
		w.GHI = []float64{}
	}
	if withSun {
		w.SunAzimuth = []float64{}
		w.SunZenith = []float64{}
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		ts, err := parseTime(record[timeIdx], cols.TimeLayout)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		w.Times = append(w.Times, ts)

		value := func(idx int, name string) (float64, error) {
			v, missing, err := parseValue(record[idx])
			if err != nil {
				return 0, fmt.Errorf("line %d column %q: %w", line, name, err)
			}
			if missing {
				w.Missing[name]++
			}
			return v, nil
		}

		dni, err := value(dniIdx, cols.DNI)
		if err != nil {
			return nil, err
		}
		dhi, err := value(dhiIdx, cols.DHI)
		if err != nil {
			return nil, err
		}
		w.DNI = append(w.DNI, dni)
		w.DHI = append(w.DHI, dhi)

		if ghiIdx >= 0 {
			ghi, err := value(ghiIdx, cols.GHI)
			if err != nil {
				return nil, err
			}
			w.GHI = append(w.GHI, ghi)
		}
		if withSun {
			az, err := value(azIdx, cols.SunAzimuth)
			if err != nil {
				return nil, err
			}
			zen, err := value(zenIdx, cols.SunZenith)
			if err != nil {
				return nil, err
			}
			w.SunAzimuth = append(w.SunAzimuth, az)
			w.SunZenith = append(w.SunZenith, zen)
		}
	}

	return w, nil
}

func parseTime(s, layout string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err == nil {
		return t, nil
	}
	if t, rfcErr := time.Parse(time.RFC3339, s); rfcErr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: %w", s, err)
}

// parseValue reads a numeric cell; empty and NaN cells are reported as missing
func parseValue(s string) (v float64, missing bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), true, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid number %q", s)
	}
	return v, false, nil
}
