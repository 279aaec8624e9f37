package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig reads the YAML file, fills omitted settings from Defaults, applies
// environment overrides and validates the result.
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := parseYAML(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", y.filename, err)
	}

	applyEnv(config)

	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("validating %s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

func parseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig ConfigYAML
	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, err
	}

	// Convert to our internal format, starting from the defaults
	config := Defaults()

	if yamlConfig.DataDir != "" {
		config.DataDir = yamlConfig.DataDir
	}
	if yamlConfig.FigureDir != "" {
		config.FigureDir = yamlConfig.FigureDir
	}

	// Convert spectrum
	s := yamlConfig.Spectrum
	if s.Sheet != "" {
		config.Spectrum.Sheet = s.Sheet
	}
	if s.WavelengthColumn != "" {
		config.Spectrum.WavelengthColumn = s.WavelengthColumn
	}
	if s.BinWidthNM != nil {
		config.Spectrum.BinWidthNM = *s.BinWidthNM
	}
	if s.AirMasses != nil {
		config.Spectrum.AirMasses = s.AirMasses
	}
	if s.WaterVapors != nil {
		config.Spectrum.WaterVapors = s.WaterVapors
	}

	// Convert site
	site := yamlConfig.Site
	if site.Name != "" {
		config.Site.Name = site.Name
	}
	mergeFloats(
		floatField{site.Latitude, &config.Site.Latitude},
		floatField{site.Longitude, &config.Site.Longitude},
		floatField{site.Altitude, &config.Site.Altitude},
	)

	// Convert weather
	w := yamlConfig.Weather
	if w.File != "" {
		config.Weather.File = w.File
	}
	cols := &config.Weather.Columns
	for _, c := range []struct {
		src string
		dst *string
	}{
		{w.Columns.Time, &cols.Time},
		{w.Columns.TimeLayout, &cols.TimeLayout},
		{w.Columns.DNI, &cols.DNI},
		{w.Columns.DHI, &cols.DHI},
		{w.Columns.GHI, &cols.GHI},
		{w.Columns.SunAzimuth, &cols.SunAzimuth},
		{w.Columns.SunZenith, &cols.SunZenith},
	} {
		if c.src != "" {
			*c.dst = c.src
		}
	}

	// Convert panels
	if yamlConfig.Panels != nil {
		config.Panels = make([]PanelData, len(yamlConfig.Panels))
		for i, panel := range yamlConfig.Panels {
			config.Panels[i] = PanelData{
				Name:              panel.Name,
				Azimuth:           panel.Azimuth,
				Tilt:              panel.Tilt,
				GroundReflectance: Defaults().Panels[0].GroundReflectance,
			}
			if panel.GroundReflectance != nil {
				config.Panels[i].GroundReflectance = *panel.GroundReflectance
			}
		}
	}

	// Convert scenario
	sc := yamlConfig.Scenario
	mergeFloats(
		floatField{sc.SunAzimuth, &config.Scenario.SunAzimuth},
		floatField{sc.SunZenith, &config.Scenario.SunZenith},
		floatField{sc.DNI, &config.Scenario.DNI},
		floatField{sc.DHI, &config.Scenario.DHI},
	)

	return &config, nil
}

// floatField pairs an optional YAML value with the setting it overrides.
type floatField struct {
	src *float64
	dst *float64
}

func mergeFloats(fields ...floatField) {
	for _, f := range fields {
		if f.src != nil {
			*f.dst = *f.src
		}
	}
}

// GetSpectrum returns the spectral analysis settings
func (y *YAMLProvider) GetSpectrum() (*SpectrumData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Spectrum, nil
}

// GetSite returns the site of the weather dataset
func (y *YAMLProvider) GetSite() (*SiteData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Site, nil
}

// GetPanels returns the panels under study
func (y *YAMLProvider) GetPanels() ([]PanelData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return y.config.Panels, nil
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags for parsing the file format
type ConfigYAML struct {
	DataDir   string        `yaml:"data-dir,omitempty"`
	FigureDir string        `yaml:"figure-dir,omitempty"`
	Spectrum  SpectrumYAML  `yaml:"spectrum,omitempty"`
	Site      SiteYAML      `yaml:"site,omitempty"`
	Weather   WeatherYAML   `yaml:"weather,omitempty"`
	Panels    []PanelYAML   `yaml:"panels,omitempty"`
	Scenario  ScenarioYAML  `yaml:"scenario,omitempty"`
}

type SpectrumYAML struct {
	Sheet            string   `yaml:"sheet,omitempty"`
	WavelengthColumn string   `yaml:"wavelength-column,omitempty"`
	BinWidthNM       *float64 `yaml:"bin-width-nm,omitempty"`
	AirMasses        []string `yaml:"air-masses,omitempty"`
	WaterVapors      []string `yaml:"water-vapors,omitempty"`
}

type SiteYAML struct {
	Name      string   `yaml:"name,omitempty"`
	Latitude  *float64 `yaml:"latitude,omitempty"`
	Longitude *float64 `yaml:"longitude,omitempty"`
	Altitude  *float64 `yaml:"altitude,omitempty"`
}

type WeatherYAML struct {
	File    string             `yaml:"file,omitempty"`
	Columns WeatherColumnsYAML `yaml:"columns,omitempty"`
}

type WeatherColumnsYAML struct {
	Time       string `yaml:"time,omitempty"`
	TimeLayout string `yaml:"time-layout,omitempty"`
	DNI        string `yaml:"dni,omitempty"`
	DHI        string `yaml:"dhi,omitempty"`
	GHI        string `yaml:"ghi,omitempty"`
	SunAzimuth string `yaml:"sun-azimuth,omitempty"`
	SunZenith  string `yaml:"sun-zenith,omitempty"`
}

type PanelYAML struct {
	Name              string   `yaml:"name"`
	Azimuth           float64  `yaml:"azimuth"`
	Tilt              float64  `yaml:"tilt"`
	GroundReflectance *float64 `yaml:"ground-reflectance,omitempty"`
}

type ScenarioYAML struct {
	SunAzimuth *float64 `yaml:"sun-azimuth,omitempty"`
	SunZenith  *float64 `yaml:"sun-zenith,omitempty"`
	DNI        *float64 `yaml:"dni,omitempty"`
	DHI        *float64 `yaml:"dhi,omitempty"`
}
