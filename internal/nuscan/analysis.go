// Public domain.

// Package nuscan iterates a point source likelihood fit over candidate
// sky positions, producing per-position test statistics and best-fit
// parameters.
//
// Two scan strategies implement the Analysis interface: MapScan, which
// tests every pixel of a sphere pixelization, and PointScan, which tests
// an explicit list of coordinates.  All diagnostics go to an explicitly
// passed logger with the analysis lifetime; there is no package state.
package nuscan

import (
	"errors"

	"github.com/soniakeys/nuscan/internal/nufit"
	"github.com/soniakeys/nuscan/internal/nulike"
)

// Analysis is a reproducible point source analysis.
type Analysis interface {
	// LoadConfig replaces the analysis configuration from a YAML file,
	// validating it before any fit runs.
	LoadConfig(path string) error
	// WriteConfig persists the configuration the analysis ran with.
	WriteConfig(path string) error
	// ApplyCuts filters the loaded events by the configured per-band
	// minimum energies.  Must run before PerformScan.
	ApplyCuts() error
	// PerformScan fits every candidate position and returns the filled
	// result arrays.
	PerformScan() (*Results, error)
}

// FitInvoker abstracts the fitter so the scan only depends on the
// function being minimized and the quantities returned.
type FitInvoker interface {
	Fit(obj nulike.Objective) (nufit.Result, error)
}

// Results holds the per-candidate outputs of one scan, in fixed-size
// arrays indexed by candidate position.  All entries are zero until
// their position is evaluated, so a skipped candidate (no events in its
// source band) is indistinguishable from a best fit of exactly zero;
// Failed distinguishes fits that were attempted but did not converge.
//
// Ns and NsErr have one column per configured period, aligned with
// Periods.  Time-integrated fits store their single signal count in
// column 0.
type Results struct {
	RA, Dec  []float64   // candidate coordinates, radians
	TS       []float64   // test statistic, ≥ 0
	Ns       [][]float64 // best fit signal counts per period
	NsErr    [][]float64
	Gamma    []float64 // best fit spectral index
	GammaErr []float64
	Failed   []bool // fit attempted but did not converge
	Periods  []string
}

func newResults(ra, dec []float64, periods []string) *Results {
	n := len(ra)
	r := &Results{
		RA: ra, Dec: dec,
		TS:       make([]float64, n),
		Ns:       make([][]float64, n),
		NsErr:    make([][]float64, n),
		Gamma:    make([]float64, n),
		GammaErr: make([]float64, n),
		Failed:   make([]bool, n),
		Periods:  periods,
	}
	for i := range r.Ns {
		r.Ns[i] = make([]float64, len(periods))
		r.NsErr[i] = make([]float64, len(periods))
	}
	return r
}

// ErrNoCandidates reports a scan invoked before candidate positions
// were generated or provided.
var ErrNoCandidates = errors.New("nuscan: no candidate positions")

var (
	_ Analysis = (*MapScan)(nil)
	_ Analysis = (*PointScan)(nil)
)
