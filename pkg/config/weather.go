package config

// WeatherColumns names the CSV columns of an hourly irradiance dataset. GHI and
// the two sun position columns are optional; leave them empty or point them at
// columns the file does not have.
type WeatherColumns struct {
	Time       string `json:"time" validate:"required"`
	TimeLayout string `json:"time_layout" validate:"required"`
	DNI        string `json:"dni" validate:"required"`
	DHI        string `json:"dhi" validate:"required"`
	GHI        string `json:"ghi"`
	SunAzimuth string `json:"sun_azimuth"`
	SunZenith  string `json:"sun_zenith"`
}

// DefaultWeatherColumns returns the column names of the Risø hourly irradiance
// export.
func DefaultWeatherColumns() WeatherColumns {
	return WeatherColumns{
		Time:       "time",
		TimeLayout: "2006-01-02 15:04:05",
		DNI:        "DNI",
		DHI:        "DHI",
		GHI:        "GHI",
		SunAzimuth: "sun_azimuth",
		SunZenith:  "sun_zenith",
	}
}
