// Package config loads the settings of a coursework run: where the datasets
// live, which spectra to compare, the site and the panels under study.
package config

import (
	"github.com/pvlab/pvassignments/pkg/poa"
	"github.com/pvlab/pvassignments/pkg/spectrum"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSpectrum() (*SpectrumData, error)
	GetSite() (*SiteData, error)
	GetPanels() ([]PanelData, error)

	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	DataDir   string       `json:"data_dir" validate:"required"`
	FigureDir string       `json:"figure_dir" validate:"required"`
	Spectrum  SpectrumData `json:"spectrum"`
	Site      SiteData     `json:"site"`
	Weather   WeatherData  `json:"weather"`
	Panels    []PanelData  `json:"panels" validate:"required,min=1,dive"`
	Scenario  ScenarioData `json:"scenario"`
}

// SpectrumData configures the spectral irradiance part of the run
type SpectrumData struct {
	Sheet            string   `json:"sheet" validate:"required"`
	WavelengthColumn string   `json:"wavelength_column" validate:"required"`
	BinWidthNM       float64  `json:"bin_width_nm" validate:"gt=0"`
	AirMasses        []string `json:"air_masses" validate:"required,min=1,dive,numeric"`
	WaterVapors      []string `json:"water_vapors" validate:"dive,numeric"`
}

// SiteData holds the location of the weather dataset
type SiteData struct {
	Name      string  `json:"name" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// WeatherData points at the hourly irradiance CSV and its column names
type WeatherData struct {
	File    string                 `json:"file" validate:"required"`
	Columns WeatherColumns `json:"columns"`
}

// PanelData describes one panel orientation under study
type PanelData struct {
	Name              string  `json:"name" validate:"required"`
	Azimuth           float64 `json:"azimuth"`
	Tilt              float64 `json:"tilt"`
	GroundReflectance float64 `json:"ground_reflectance" validate:"gte=0"`
}

// Panel builds the model for this configuration.
func (p PanelData) Panel() poa.Panel {
	return poa.NewPanel(p.Azimuth, p.Tilt, poa.WithGroundReflectance(p.GroundReflectance))
}

// ScenarioData is the single-sample worked example of part 2
type ScenarioData struct {
	SunAzimuth float64 `json:"sun_azimuth"`
	SunZenith  float64 `json:"sun_zenith"`
	DNI        float64 `json:"dni"`
	DHI        float64 `json:"dhi"`
}

// Geometry returns the scenario as a model input.
func (s ScenarioData) Geometry() poa.Geometry {
	return poa.Geometry{
		DHI:        s.DHI,
		DNI:        s.DNI,
		SunAzimuth: s.SunAzimuth,
		SunZenith:  s.SunZenith,
	}
}

// Defaults returns the coursework configuration: the SMARTS
// spectra for four air masses, the Risø 2024 hourly dataset and the panel of
// the worked example.
func Defaults() ConfigData {
	return ConfigData{
		DataDir:   "data",
		FigureDir: "figures",
		Spectrum: SpectrumData{
			Sheet:            "Spectral irradiance",
			WavelengthColumn: spectrum.ColumnWavelength,
			BinWidthNM:       spectrum.DefaultBinWidthNM,
			AirMasses:        []string{"1.5", "3", "4.5", "6"},
			WaterVapors:      []string{"0", "0.71", "2.13"},
		},
		Site: SiteData{
			Name:      "Risø",
			Latitude:  55.6986,
			Longitude: 12.1043,
			Altitude:  14,
		},
		Weather: WeatherData{
			File:    "34552_risoe_1h_irradiance_2024_v2.csv",
			Columns: DefaultWeatherColumns(),
		},
		Panels: []PanelData{
			{Name: "west-41", Azimuth: 63, Tilt: 41, GroundReflectance: poa.DefaultGroundReflectance},
		},
		Scenario: ScenarioData{
			SunAzimuth: -76,
			SunZenith:  63,
			DNI:        600,
			DHI:        120,
		},
	}
}
