package poa

import (
	"math"

	"github.com/soniakeys/unit"
)

// Geometry is one irradiance sample together with the sun position it was
// measured at.
type Geometry struct {
	DHI        float64 // Diffuse horizontal irradiance, W/m²
	DNI        float64 // Direct normal irradiance, W/m²
	SunAzimuth float64 // Degrees, same convention as the panel azimuth
	SunZenith  float64 // Degrees from vertical
}

// Components is the plane-of-array irradiance split into its three additive
// terms, in W/m², plus the angle of incidence they were derived from.
type Components struct {
	AOI     float64
	Direct  float64
	Diffuse float64
	Ground  float64
}

// Total returns the global plane-of-array irradiance (GPOA).
func (c Components) Total() float64 {
	return c.Direct + c.Diffuse + c.Ground
}

// AngleOfIncidence returns the angle in degrees between the sun vector and the
// normal of a panel with the given azimuth and tilt.
func AngleOfIncidence(panelAzimuth, panelTilt, sunAzimuth, sunZenith float64) float64 {
	zenith := unit.AngleFromDeg(sunZenith)
	tilt := unit.AngleFromDeg(panelTilt)
	relAzimuth := unit.AngleFromDeg(sunAzimuth - panelAzimuth)

	cosAOI := zenith.Cos()*tilt.Cos() + zenith.Sin()*tilt.Sin()*relAzimuth.Cos()

	// Rounding can push the cosine just past ±1 when the sun is on (or directly
	// behind) the panel normal.
	cosAOI = math.Max(-1, math.Min(1, cosAOI))

	return unit.Angle(math.Acos(cosAOI)).Deg()
}

// skyViewFactor is the fraction of the sky dome seen by a panel tilted tilt degrees.
func skyViewFactor(tilt unit.Angle) float64 {
	return (1 + tilt.Cos()) / 2
}

// groundViewFactor is the complement of skyViewFactor.
func groundViewFactor(tilt unit.Angle) float64 {
	return (1 - tilt.Cos()) / 2
}

// Decompose computes the direct, diffuse and ground-reflected irradiance on the
// panel for a single sample. No input is validated; physically meaningless
// inputs produce mathematically consistent results.
func Decompose(p Panel, g Geometry) Components {
	aoi := AngleOfIncidence(p.azimuth, p.tilt, g.SunAzimuth, g.SunZenith)
	tilt := unit.AngleFromDeg(p.tilt)

	// Beam irradiance is floored at zero once the sun is behind the panel plane
	direct := math.Max(g.DNI*unit.AngleFromDeg(aoi).Cos(), 0)
	diffuse := g.DHI * skyViewFactor(tilt)
	ground := (g.DHI + direct) * p.groundReflectance * groundViewFactor(tilt)

	return Components{
		AOI:     aoi,
		Direct:  direct,
		Diffuse: diffuse,
		Ground:  ground,
	}
}

// ComputeGPOA returns the global plane-of-array irradiance in W/m² for panel p.
func ComputeGPOA(p Panel, dhi, dni, sunAzimuth, sunZenith float64) float64 {
	return Decompose(p, Geometry{
		DHI:        dhi,
		DNI:        dni,
		SunAzimuth: sunAzimuth,
		SunZenith:  sunZenith,
	}).Total()
}

// GPOA is the method form of ComputeGPOA.
func (p Panel) GPOA(g Geometry) float64 {
	return Decompose(p, g).Total()
}
