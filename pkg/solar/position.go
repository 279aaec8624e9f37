package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	msolar "github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// SunPosition is the apparent position of the sun seen from a site.
type SunPosition struct {
	// Azimuth in degrees measured westward from south: south = 0, west = +90,
	// east = -90, north = ±180. This matches the panel azimuth convention.
	Azimuth float64
	// Zenith in degrees from vertical; values above 90 mean the sun is down.
	Zenith float64
}

// Elevation returns the sun's altitude above the horizon in degrees.
func (p SunPosition) Elevation() float64 {
	return 90 - p.Zenith
}

// Up reports whether the sun is above the horizon.
func (p SunPosition) Up() bool {
	return p.Zenith < 90
}

// Position computes the geometric sun position for an observer at latitude and
// longitude (degrees, east positive) at time t. Atmospheric refraction is not
// applied.
func Position(t time.Time, latitude, longitude float64) SunPosition {
	jd := julian.TimeToJD(t.UTC())

	// The TT/UT difference (about a minute) is well below the resolution of
	// hourly irradiance data, so jd serves as the ephemeris day too.
	α, δ := msolar.ApparentEquatorial(jd)
	st := sidereal.Apparent(jd)

	// Meeus counts longitude positive westward
	φ := unit.AngleFromDeg(latitude)
	ψ := unit.AngleFromDeg(-longitude)
	A, h := coord.EqToHz(α, δ, φ, ψ, st)

	return SunPosition{
		Azimuth: normalizeAzimuth(A.Deg()),
		Zenith:  90 - h.Deg(),
	}
}

// Positions computes Position for every time in times and returns aligned
// azimuth and zenith slices.
func Positions(times []time.Time, latitude, longitude float64) (azimuths, zeniths []float64) {
	azimuths = make([]float64, len(times))
	zeniths = make([]float64, len(times))
	for i, t := range times {
		p := Position(t, latitude, longitude)
		azimuths[i] = p.Azimuth
		zeniths[i] = p.Zenith
	}
	return azimuths, zeniths
}

// normalizeAzimuth maps an angle in degrees onto (-180, 180]
func normalizeAzimuth(deg float64) float64 {
	a := math.Mod(deg, 360)
	switch {
	case a > 180:
		a -= 360
	case a <= -180:
		a += 360
	}
	return a
}
