package dataset

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/pvlab/pvassignments/pkg/config"
)

const risoeCSV = `time,GHI,DNI,DHI
2024-06-21 03:00:00,12.5,40.1,8.2
2024-06-21 04:00:00,88.0,310.4,35.7
2024-06-21 05:00:00,,420.0,60.3
2024-06-21 06:00:00,301.9,NaN,71.0
`

func TestReadWeather(t *testing.T) {
	w, err := ReadWeather(strings.NewReader(risoeCSV), config.DefaultWeatherColumns())
	assert.NilError(t, err)

	assert.Equal(t, w.Len(), 4)
	assert.Check(t, w.Times[0].Equal(time.Date(2024, 6, 21, 3, 0, 0, 0, time.UTC)))
	assert.Equal(t, w.Interval(), time.Hour)
	assert.DeepEqual(t, w.DHI, []float64{8.2, 35.7, 60.3, 71.0})
	assert.Equal(t, w.DNI[1], 310.4)
	assert.Check(t, math.IsNaN(w.DNI[3]))
	assert.Check(t, math.IsNaN(w.GHI[2]))
	assert.Check(t, w.HasGHI())
	assert.Check(t, !w.HasSunPosition())
	assert.DeepEqual(t, w.Missing, map[string]int{"GHI": 1, "DNI": 1})
}

func TestReadWeatherWithSunPosition(t *testing.T) {
	csv := "timestamp;dni;dhi;azi;zen\n" +
		"2024-06-21T11:00:00Z;800;110;-5.2;32.5\n" +
		"2024-06-21T12:00:00Z;790;115;18.9;33.4\n"
	cols := config.WeatherColumns{
		Time:       "timestamp",
		TimeLayout: time.RFC3339,
		DNI:        "dni",
		DHI:        "dhi",
		SunAzimuth: "azi",
		SunZenith:  "zen",
	}

	w, err := ReadWeather(strings.NewReader(strings.ReplaceAll(csv, ";", ",")), cols)
	assert.NilError(t, err)
	assert.Check(t, w.HasSunPosition())
	assert.Check(t, !w.HasGHI())
	assert.DeepEqual(t, w.SunAzimuth, []float64{-5.2, 18.9})
	assert.DeepEqual(t, w.SunZenith, []float64{32.5, 33.4})
}

func TestReadWeatherErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{name: "empty", body: "", errMsg: "no rows"},
		{name: "missing DHI", body: "time,GHI,DNI\n", errMsg: `missing column "DHI"`},
		{name: "bad time", body: "time,DNI,DHI\nyesterday,1,2\n", errMsg: "line 2"},
		{name: "bad number", body: "time,DNI,DHI\n2024-01-01 00:00:00,1,abc\n", errMsg: `column "DHI"`},
		{name: "ragged row", body: "time,DNI,DHI\n2024-01-01 00:00:00,1\n", errMsg: "line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadWeather(strings.NewReader(tt.body), config.DefaultWeatherColumns())
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}

	_, err := ReadWeather(strings.NewReader("time,DNI\n"), config.DefaultWeatherColumns())
	assert.Check(t, errors.Is(err, ErrMissingColumn))
}

func TestWeatherHead(t *testing.T) {
	w, err := ReadWeather(strings.NewReader(risoeCSV), config.DefaultWeatherColumns())
	assert.NilError(t, err)

	head := w.Head(2)
	assert.Equal(t, head.Len(), 2)
	assert.Check(t, is.Len(head.GHI, 2))
	assert.Check(t, head.SunAzimuth == nil)

	head.DNI[0] = -1
	assert.Equal(t, w.DNI[0], 40.1)

	assert.Equal(t, w.Head(100).Len(), 4)
}

func TestLoadWeather(t *testing.T) {
	path := filepath.Join(t.TempDir(), "risoe.csv")
	assert.NilError(t, os.WriteFile(path, []byte(risoeCSV), 0o644))

	w, err := LoadWeather(path, config.DefaultWeatherColumns())
	assert.NilError(t, err)
	assert.Equal(t, w.Len(), 4)
}
