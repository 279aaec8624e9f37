package app

import (
	"math"

	"github.com/pvlab/pvassignments/pkg/poa"
	"github.com/pvlab/pvassignments/pkg/spectrum"
)

// Report collects the numbers each part computes. Maps are keyed by the
// labels used in the logs: spectrum.SeriesLabel for spectral results and the
// configured panel name for panel results.
type Report struct {
	Broadband       map[string]float64       // W/m²
	Peaks           map[string]spectrum.Peak // nm, W/m²/nm
	DiffuseFraction float64
	Figures         []string

	Scenario map[string]poa.Components
	Panels   map[string]*PanelSummary

	// ClearSkyIndex is measured over clear-sky GHI for the dataset, NaN
	// when the dataset has no GHI column.
	ClearSkyIndex float64
}

// PanelSummary is the time-series result for one panel.
type PanelSummary struct {
	Series poa.SeriesResult

	Samples            int
	Missing            int     // samples with a NaN GPOA
	InsolationKWh      float64 // kWh/m² over the dataset
	ClearSkyKWh        float64 // kWh/m² for the clear-sky reference
	MeanDaylightGPOA   float64 // W/m², samples with the sun up
	PeakGPOA           float64 // W/m²
	DaylightSampleSize int
}

func newReport() *Report {
	return &Report{
		Broadband: make(map[string]float64),
		Peaks:     make(map[string]spectrum.Peak),
		Scenario:  make(map[string]poa.Components),
		Panels:    make(map[string]*PanelSummary),

		ClearSkyIndex: math.NaN(),
	}
}
