// Package poa models the irradiance reaching a fixed, tilted solar panel
// (plane-of-array irradiance) using the isotropic sky model.
//
// Angles are given in degrees. Azimuths use the south convention:
// south = 0°, east = -90°, west = +90°, north = ±180°.
package poa

import "fmt"

// DefaultGroundReflectance is the albedo used when none is given.
const DefaultGroundReflectance = 0.2

// Panel is the fixed orientation of one solar panel. It is a value type with no
// mutable state, so a single Panel can be shared across goroutines and reused
// for every sample of a time series. A different orientation needs a new Panel.
type Panel struct {
	azimuth           float64
	tilt              float64
	groundReflectance float64
}

// PanelOption customizes a Panel at construction time
type PanelOption func(*Panel)

// WithGroundReflectance sets the ground albedo in front of the panel.
// Values outside [0, 1] are accepted; see Panel.Check.
func WithGroundReflectance(rho float64) PanelOption {
	return func(p *Panel) {
		p.groundReflectance = rho
	}
}

// NewPanel creates a panel facing azimuth (degrees, south = 0) tilted tilt
// degrees from horizontal.
func NewPanel(azimuth, tilt float64, opts ...PanelOption) Panel {
	p := Panel{
		azimuth:           azimuth,
		tilt:              tilt,
		groundReflectance: DefaultGroundReflectance,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Azimuth returns the panel azimuth in degrees.
func (p Panel) Azimuth() float64 { return p.azimuth }

// Tilt returns the panel tilt in degrees.
func (p Panel) Tilt() float64 { return p.tilt }

// GroundReflectance returns the ground albedo (ρg).
func (p Panel) GroundReflectance() float64 { return p.groundReflectance }

func (p Panel) String() string {
	return fmt.Sprintf("panel(azimuth=%.1f°, tilt=%.1f°, ρg=%.2f)", p.azimuth, p.tilt, p.groundReflectance)
}
