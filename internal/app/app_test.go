package app

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/pvlab/pvassignments/internal/dataset"
	"github.com/pvlab/pvassignments/pkg/config"
	"github.com/pvlab/pvassignments/pkg/poa"
	"github.com/pvlab/pvassignments/pkg/spectrum"
)

// staticProvider serves a fixed configuration.
type staticProvider struct {
	cfg config.ConfigData
	err error
}

func (p *staticProvider) LoadConfig() (*config.ConfigData, error) {
	if p.err != nil {
		return nil, p.err
	}
	cfg := p.cfg
	return &cfg, nil
}

func (p *staticProvider) GetSpectrum() (*config.SpectrumData, error) { return &p.cfg.Spectrum, p.err }
func (p *staticProvider) GetSite() (*config.SiteData, error)         { return &p.cfg.Site, p.err }
func (p *staticProvider) GetPanels() ([]config.PanelData, error)     { return p.cfg.Panels, p.err }
func (p *staticProvider) Close() error                               { return nil }

func newTestApp(cfg config.ConfigData) *App {
	return New(&staticProvider{cfg: cfg}, zap.NewNop().Sugar())
}

func TestParseParts(t *testing.T) {
	tests := []struct {
		in       string
		expected []Part
		err      bool
	}{
		{in: "", expected: []Part{PartSpectraAirMass, PartSpectraHorizontal, PartSpectraWaterVapor, PartScenario, PartTimeSeries}},
		{in: "all", expected: []Part{PartSpectraAirMass, PartSpectraHorizontal, PartSpectraWaterVapor, PartScenario, PartTimeSeries}},
		{in: "1", expected: []Part{PartSpectraAirMass, PartSpectraHorizontal, PartSpectraWaterVapor}},
		{in: "2", expected: []Part{PartScenario, PartTimeSeries}},
		{in: "2-1", expected: []Part{PartScenario}},
		{in: "1-3", expected: []Part{PartSpectraWaterVapor}},
		{in: "3", err: true},
		{in: "2-3", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			parts, err := ParseParts(tt.in)
			if tt.err {
				assert.ErrorContains(t, err, "unknown part")
				return
			}
			assert.NilError(t, err)
			assert.DeepEqual(t, parts, tt.expected)
		})
	}
}

func TestWaterVaporSequence(t *testing.T) {
	seq, err := waterVaporSequence([]string{"2.13", "0", "0.71", "1.42"})
	assert.NilError(t, err)

	expected := []waterVapor{
		{name: "0", cm: 0},
		{name: "0.71", cm: 0.71},
		{name: "", cm: 1.42},
		{name: "2.13", cm: 2.13},
	}
	assert.Assert(t, is.Len(seq, len(expected)))
	for i := range expected {
		assert.Check(t, seq[i] == expected[i], "entry %d = %+v, expected %+v", i, seq[i], expected[i])
	}

	_, err = waterVaporSequence([]string{"wet"})
	assert.ErrorContains(t, err, "wet")
}

func TestRunScenario(t *testing.T) {
	cfg := config.Defaults()
	cfg.Panels = append(cfg.Panels, config.PanelData{Name: "east-41", Azimuth: -63, Tilt: 41, GroundReflectance: 0.2})

	report, err := newTestApp(cfg).Run(context.Background(), []Part{PartScenario})
	assert.NilError(t, err)
	assert.Assert(t, is.Len(report.Scenario, 2))

	tests := []struct {
		panel                               string
		aoi, direct, diffuse, ground, total float64
	}{
		// The sun sits behind the west-facing panel
		{panel: "west-41", aoi: 95.6549, direct: 0, diffuse: 105.2826, ground: 2.9435, total: 108.2261},
		{panel: "east-41", aoi: 24.1886, direct: 547.3211, diffuse: 105.2826, ground: 16.3687, total: 668.9724},
	}
	for _, tt := range tests {
		c, ok := report.Scenario[tt.panel]
		assert.Assert(t, ok, "no scenario result for %s", tt.panel)
		assert.Check(t, closeTo(c.AOI, tt.aoi, 1e-3), "%s AOI = %v", tt.panel, c.AOI)
		assert.Check(t, closeTo(c.Direct, tt.direct, 1e-3), "%s direct = %v", tt.panel, c.Direct)
		assert.Check(t, closeTo(c.Diffuse, tt.diffuse, 1e-3), "%s diffuse = %v", tt.panel, c.Diffuse)
		assert.Check(t, closeTo(c.Ground, tt.ground, 1e-3), "%s ground = %v", tt.panel, c.Ground)
		assert.Check(t, closeTo(c.Total(), tt.total, 1e-3), "%s total = %v", tt.panel, c.Total())
	}
}

func TestRunConfigError(t *testing.T) {
	a := New(&staticProvider{err: errors.New("boom")}, zap.NewNop().Sugar())
	_, err := a.Run(context.Background(), []Part{PartScenario})
	assert.ErrorContains(t, err, "loading configuration: boom")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestApp(config.Defaults()).Run(ctx, []Part{PartScenario})
	assert.Check(t, errors.Is(err, context.Canceled))
	assert.Check(t, is.Len(report.Scenario, 0))
}

func TestRunMissingSpectrum(t *testing.T) {
	cfg := config.Defaults()
	cfg.DataDir = t.TempDir()
	cfg.FigureDir = t.TempDir()

	_, err := newTestApp(cfg).Run(context.Background(), []Part{PartSpectraAirMass})
	assert.Check(t, errors.Is(err, os.ErrNotExist))
	assert.ErrorContains(t, err, "part 1-1")
}

// writeSpectrum writes a small SMARTS-style workbook with every value scaled
// by scale.
func writeSpectrum(t *testing.T, path, sheet string, scale float64) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	assert.NilError(t, f.SetSheetName("Sheet1", sheet))

	rows := [][]interface{}{
		{spectrum.ColumnWavelength, spectrum.ColumnGlobalPerpendicular, spectrum.ColumnDirectHorizontal, spectrum.ColumnDiffuseHorizontal, spectrum.ColumnGlobalHorizontal},
		{400, 1.0 * scale, 0.6 * scale, 0.3 * scale, 0.9 * scale},
		{410, 2.0 * scale, 1.2 * scale, 0.4 * scale, 1.6 * scale},
		{420, 1.5 * scale, 1.0 * scale, 0.2 * scale, 1.2 * scale},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NilError(t, err)
		r := row
		assert.NilError(t, f.SetSheetRow(sheet, cell, &r))
	}
	assert.NilError(t, f.SaveAs(path))
}

const weatherCSV = `time,GHI,DNI,DHI
2024-06-21 04:00:00,60.0,150.0,40.0
2024-06-21 07:00:00,420.0,520.0,110.0
2024-06-21 10:00:00,780.0,690.0,150.0
2024-06-21 13:00:00,760.0,640.0,160.0
2024-06-21 16:00:00,,420.0,
2024-06-21 19:00:00,70.0,90.0,45.0
2024-06-21 22:00:00,0.0,0.0,0.0
`

func TestRunAllParts(t *testing.T) {
	dataDir := t.TempDir()
	figureDir := filepath.Join(t.TempDir(), "figures")

	cfg := config.Defaults()
	cfg.DataDir = dataDir
	cfg.FigureDir = figureDir
	cfg.Spectrum.AirMasses = []string{"1.5", "3"}
	cfg.Spectrum.WaterVapors = []string{"0.71"}
	cfg.Weather.File = "risoe.csv"
	cfg.Panels = []config.PanelData{
		{Name: "west-41", Azimuth: 63, Tilt: 41, GroundReflectance: 0.2},
		{Name: "south-30", Azimuth: 0, Tilt: 30, GroundReflectance: 0.25},
	}

	sheet := cfg.Spectrum.Sheet
	writeSpectrum(t, filepath.Join(dataDir, dataset.SpectrumFileName("1.5", "")), sheet, 1)
	writeSpectrum(t, filepath.Join(dataDir, dataset.SpectrumFileName("3", "")), sheet, 0.5)
	writeSpectrum(t, filepath.Join(dataDir, dataset.SpectrumFileName("1.5", "0.71")), sheet, 1.1)
	assert.NilError(t, os.WriteFile(filepath.Join(dataDir, cfg.Weather.File), []byte(weatherCSV), 0o644))

	parts, err := ParseParts("all")
	assert.NilError(t, err)
	report, err := newTestApp(cfg).Run(context.Background(), parts)
	assert.NilError(t, err)

	// Part 1
	perpendicular := func(label string) float64 {
		return report.Broadband[spectrum.SeriesLabel(label, spectrum.ColumnGlobalPerpendicular)]
	}
	assert.Check(t, closeTo(perpendicular("AM 1.5"), 45, 1e-9))
	assert.Check(t, closeTo(perpendicular("AM 3"), 22.5, 1e-9))
	assert.Check(t, closeTo(perpendicular("AM 1.5 - Water Vapor 0.71"), 49.5, 1e-9))
	assert.Check(t, closeTo(perpendicular("AM 1.5 - Water Vapor 1.42"), 45, 1e-9))
	assert.Equal(t, report.Peaks[spectrum.SeriesLabel("AM 3", spectrum.ColumnGlobalPerpendicular)].Wavelength, 410.0)
	assert.Check(t, closeTo(report.DiffuseFraction, 9.0/37.0, 1e-9))

	// Part 2
	assert.Assert(t, is.Len(report.Scenario, 2))
	assert.Assert(t, is.Len(report.Panels, 2))
	for name, s := range report.Panels {
		assert.Equal(t, s.Samples, 7, name)
		assert.Equal(t, s.Missing, 1, name)
		assert.Check(t, s.InsolationKWh > 0, "%s insolation = %v", name, s.InsolationKWh)
		assert.Check(t, s.ClearSkyKWh > 0, "%s clear-sky insolation = %v", name, s.ClearSkyKWh)
		assert.Check(t, s.PeakGPOA >= s.MeanDaylightGPOA, name)
		assert.Check(t, s.DaylightSampleSize > 0 && s.DaylightSampleSize < s.Samples, name)
		for i, v := range s.Series.Direct {
			assert.Check(t, math.IsNaN(v) || v >= 0, "%s direct[%d] = %v", name, i, v)
		}
	}
	assert.Check(t, !math.IsNaN(report.ClearSkyIndex))
	assert.Check(t, report.ClearSkyIndex > 0)

	assert.Equal(t, len(report.Figures), 4)
	for _, title := range []string{"Part 1-1", "Part 1-2", "Part 1-3", "Part 2-2"} {
		_, err := os.Stat(filepath.Join(figureDir, title+".png"))
		assert.NilError(t, err, title)
	}
}

func TestSummarize(t *testing.T) {
	r := poa.SeriesResult{
		AOI:     []float64{0, 0, 0, 0},
		Direct:  []float64{0, 0, 0, 0},
		Diffuse: []float64{0, 0, 0, 0},
		Ground:  []float64{0, 0, 0, 0},
		GPOA:    []float64{100, math.NaN(), 300, 5},
	}
	zeniths := []float64{60, 50, 40, 95}

	s := summarize(r, zeniths, 1)
	assert.Equal(t, s.Samples, 4)
	assert.Equal(t, s.Missing, 1)
	assert.Equal(t, s.DaylightSampleSize, 2)
	assert.Check(t, closeTo(s.InsolationKWh, 0.405, 1e-12))
	assert.Check(t, closeTo(s.MeanDaylightGPOA, 200, 1e-12))
	assert.Equal(t, s.PeakGPOA, 300.0)

	empty := summarize(poa.SeriesResult{}, nil, 1)
	assert.Check(t, math.IsNaN(empty.MeanDaylightGPOA))
	assert.Equal(t, empty.InsolationKWh, 0.0)
}

func TestClearSkyIndex(t *testing.T) {
	got := clearSkyIndex([]float64{50, math.NaN(), 400, 10}, []float64{100, 300, 500, 0})
	assert.Check(t, closeTo(got, 450.0/600.0, 1e-12))

	assert.Check(t, math.IsNaN(clearSkyIndex([]float64{1}, []float64{0})))

	got = clearSkyIndex([]float64{50, 80, 400}, []float64{100, math.NaN(), 500})
	assert.Check(t, closeTo(got, 450.0/600.0, 1e-12), "index = %v", got)
}

const weatherWithSunCSV = `time,GHI,DNI,DHI,sun_azimuth,sun_zenith
2024-06-21 09:00:00,610.0,620.0,130.0,-60.5,45.2
2024-06-21 10:00:00,700.0,680.0,140.0,-42.0,
2024-06-21 11:00:00,760.0,700.0,145.0,-18.3,33.6
`

func TestRunTimeSeriesMissingSunZenith(t *testing.T) {
	dataDir := t.TempDir()
	cfg := config.Defaults()
	cfg.DataDir = dataDir
	cfg.FigureDir = filepath.Join(t.TempDir(), "figures")
	cfg.Weather.File = "risoe-sun.csv"
	assert.NilError(t, os.WriteFile(filepath.Join(dataDir, cfg.Weather.File), []byte(weatherWithSunCSV), 0o644))

	report, err := newTestApp(cfg).Run(context.Background(), []Part{PartTimeSeries})
	assert.NilError(t, err)

	assert.Check(t, !math.IsNaN(report.ClearSkyIndex), "clear-sky index = %v", report.ClearSkyIndex)
	assert.Check(t, report.ClearSkyIndex > 0)

	s := report.Panels["west-41"]
	assert.Assert(t, s != nil)
	assert.Equal(t, s.Samples, 3)
	assert.Equal(t, s.Missing, 1)
	assert.Check(t, !math.IsNaN(s.ClearSkyKWh) && s.ClearSkyKWh > 0, "clear-sky insolation = %v", s.ClearSkyKWh)
	assert.Check(t, !math.IsNaN(s.InsolationKWh))
}

func closeTo(got, expected, epsilon float64) bool {
	return math.Abs(got-expected) <= epsilon
}
