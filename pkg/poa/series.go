package poa

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrMisalignedSeries is returned when the slices of a Series differ in length.
var ErrMisalignedSeries = errors.New("poa: series slices have different lengths")

// Series is an aligned batch of samples, e.g. one year of hourly weather data.
// Element i of every slice belongs to the same instant.
type Series struct {
	DHI        []float64
	DNI        []float64
	SunAzimuth []float64
	SunZenith  []float64
}

// Len returns the number of samples, or -1 if the slices are not aligned.
func (s Series) Len() int {
	n := len(s.DHI)
	if len(s.DNI) != n || len(s.SunAzimuth) != n || len(s.SunZenith) != n {
		return -1
	}
	return n
}

// At returns sample i as a Geometry.
func (s Series) At(i int) Geometry {
	return Geometry{
		DHI:        s.DHI[i],
		DNI:        s.DNI[i],
		SunAzimuth: s.SunAzimuth[i],
		SunZenith:  s.SunZenith[i],
	}
}

// SeriesResult holds the per-sample output of ComputeGPOASeries.
type SeriesResult struct {
	AOI     []float64
	Direct  []float64
	Diffuse []float64
	Ground  []float64
	GPOA    []float64
}

// Len returns the number of samples in the result.
func (r SeriesResult) Len() int {
	return len(r.GPOA)
}

// At returns the components of sample i.
func (r SeriesResult) At(i int) Components {
	return Components{
		AOI:     r.AOI[i],
		Direct:  r.Direct[i],
		Diffuse: r.Diffuse[i],
		Ground:  r.Ground[i],
	}
}

// ComputeGPOASeries evaluates the panel model for every sample of s. Each
// element is computed exactly as Decompose would compute it on its own.
func ComputeGPOASeries(p Panel, s Series) (SeriesResult, error) {
	n := s.Len()
	if n < 0 {
		return SeriesResult{}, fmt.Errorf("%w: dhi=%d dni=%d sun_azimuth=%d sun_zenith=%d",
			ErrMisalignedSeries, len(s.DHI), len(s.DNI), len(s.SunAzimuth), len(s.SunZenith))
	}

	r := SeriesResult{
		AOI:     make([]float64, n),
		Direct:  make([]float64, n),
		Diffuse: make([]float64, n),
		Ground:  make([]float64, n),
		GPOA:    make([]float64, n),
	}

	for i := 0; i < n; i++ {
		c := Decompose(p, s.At(i))
		r.AOI[i] = c.AOI
		r.Direct[i] = c.Direct
		r.Diffuse[i] = c.Diffuse
		r.Ground[i] = c.Ground
	}

	// GPOA = direct + diffuse + ground, summed in the same order as Components.Total
	floats.AddTo(r.GPOA, r.Direct, r.Diffuse)
	floats.Add(r.GPOA, r.Ground)

	return r, nil
}
