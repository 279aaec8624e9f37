// Package solar provides sun position and clear-sky irradiance estimates used as
// inputs and references for plane-of-array calculations.
package solar

import (
	"math"
	"time"
)

// Constants
const (
	solarConstant = 1361.0 // Solar constant in W/m², the average solar energy at the top of Earth's atmosphere

	linkeTurbidity = 2.0   // Linke turbidity factor, typical for clear skies (range: 2-6)
	dniScale       = 0.7   // Normalization constant for DNI
	extinction     = 0.027 // Atmospheric extinction coefficient
	scaleHeight    = 8000.0
)

// Irradiance is a decomposition of solar irradiance in W/m².
type Irradiance struct {
	GHI float64 // Global horizontal
	DNI float64 // Direct normal
	DHI float64 // Diffuse horizontal
}

// degToRad converts an angle from degrees to radians for trigonometric calculations
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// AirMass returns the Kasten-Young relative optical air mass for a sun at
// zenith degrees. It is +Inf once the sun reaches the horizon.
func AirMass(zenith float64) float64 {
	if zenith >= 90 {
		return math.Inf(1)
	}
	return 1.0 / (math.Cos(degToRad(zenith)) + 0.50572*math.Pow(96.07995-zenith, -1.6364))
}

// extraterrestrial returns the solar energy at the top of the atmosphere in W/m²,
// adjusted for Earth-Sun distance variation throughout the year
func extraterrestrial(dayOfYear int) float64 {
	return solarConstant * (1 + 0.033*math.Cos(degToRad(360.0*(float64(dayOfYear)-3)/365.0)))
}

// ClearSkyAt estimates clear-sky irradiance for a sun at zenith degrees on the
// given day of the year at altitude meters. It follows the simplified
// Ineichen-Perez form: an exponential beam attenuation over the Kasten-Young
// air mass and a seasonally varying diffuse share. It is zero below the
// horizon and for a NaN zenith.
func ClearSkyAt(zenith float64, dayOfYear int, altitude float64) Irradiance {
	// An unknown sun position gives no reference
	if zenith >= 90 || math.IsNaN(zenith) {
		return Irradiance{}
	}

	g0 := extraterrestrial(dayOfYear)
	am := AirMass(zenith)
	cosZ := math.Cos(degToRad(zenith))

	dni := g0 * dniScale * math.Exp(-extinction*am*linkeTurbidity*math.Exp(-altitude/scaleHeight))

	// Diffuse share peaks in early summer
	fh := 0.1 + 0.05*math.Sin(math.Pi*float64(dayOfYear-100)/365.0)
	dhi := fh * g0 * cosZ

	return Irradiance{
		GHI: dni*cosZ + dhi,
		DNI: dni,
		DHI: dhi,
	}
}

// ClearSky estimates clear-sky irradiance at a site at time t.
func ClearSky(t time.Time, latitude, longitude, altitude float64) Irradiance {
	pos := Position(t, latitude, longitude)
	return ClearSkyAt(pos.Zenith, t.UTC().YearDay(), altitude)
}
