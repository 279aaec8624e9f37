package poa

import "fmt"

// Warning describes a physically implausible input. Warnings never stop a
// calculation.
type Warning struct {
	Field string
	Value float64
	Want  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s=%g outside %s", w.Field, w.Value, w.Want)
}

// Check reports implausible panel or sample values. The model itself never
// calls Check; callers that want validation run it and decide what to do.
func (p Panel) Check(g Geometry) []Warning {
	var warnings []Warning

	add := func(field string, v, lo, hi float64) {
		if v < lo || v > hi {
			warnings = append(warnings, Warning{
				Field: field,
				Value: v,
				Want:  fmt.Sprintf("[%g, %g]", lo, hi),
			})
		}
	}

	add("tilt", p.tilt, 0, 90)
	add("azimuth", p.azimuth, -180, 180)
	add("ground_reflectance", p.groundReflectance, 0, 1)
	add("sun_zenith", g.SunZenith, 0, 180)
	add("sun_azimuth", g.SunAzimuth, -180, 180)

	if g.DHI < 0 {
		warnings = append(warnings, Warning{Field: "dhi", Value: g.DHI, Want: ">= 0"})
	}
	if g.DNI < 0 {
		warnings = append(warnings, Warning{Field: "dni", Value: g.DNI, Want: ">= 0"})
	}

	return warnings
}
