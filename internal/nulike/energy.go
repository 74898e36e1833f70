// Public domain.

package nulike

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Supported reconstructed energy range of the marginalized energy
// likelihood, as log10(E/GeV).  Queries outside the range clamp to the
// edge bins, on both the signal and background paths.
const (
	LogEMin = 2 // 100 GeV
	LogEMax = 9 // 1e9 GeV

	// dividers over [LogEMin, LogEMax], giving nDividers-1 bins
	nDividers = 50

	// density returned for bins the reference simulation left empty,
	// per unit log10(E).  keeps log likelihoods finite on sparse samples.
	DensityFloor = 1e-12
)

// MarginalEnergy is the marginalized energy likelihood: an empirical
// density over reconstructed energy for a hypothesized spectral index,
// built from a large reference sample simulated under a known index.
//
// A query for index γ importance-reweights reference event i by
// E_i^(γ_ref−γ) and histograms log10(E) of the reweighted sample.
// This marginalizes the detector energy response empirically, with no
// analytic response model.
//
// MarginalEnergy itself is immutable after construction and safe to
// share across scan workers.  Histograms are built and memoized on
// EnergyEval contexts, one per fit, so no call-order state lives here.
type MarginalEnergy struct {
	simIndex float64
	logE     []float64 // sorted ascending, clamped into divider range
	dividers []float64
}

// NewMarginalEnergy builds a marginalized energy likelihood from a
// reference sample of reconstructed energies in GeV, simulated with
// spectral index simIndex.
//
// Reference energies outside the supported range are clamped to the edge
// bins, the same policy applied to queries.
func NewMarginalEnergy(energy []float64, simIndex float64) (*MarginalEnergy, error) {
	if len(energy) == 0 {
		return nil, fmt.Errorf("nulike: empty reference energy sample")
	}
	if simIndex <= 0 {
		return nil, fmt.Errorf("nulike: reference index %g out of range", simIndex)
	}
	m := &MarginalEnergy{
		simIndex: simIndex,
		logE:     make([]float64, len(energy)),
		dividers: make([]float64, nDividers),
	}
	floats.Span(m.dividers, LogEMin, LogEMax)
	hi := math.Nextafter(LogEMax, LogEMin) // top divider is exclusive
	for i, e := range energy {
		if e <= 0 {
			return nil, fmt.Errorf("nulike: reference energy %g not positive", e)
		}
		le := math.Log10(e)
		if le < LogEMin {
			le = LogEMin
		} else if le > hi {
			le = hi
		}
		m.logE[i] = le
	}
	sort.Float64s(m.logE)
	return m, nil
}

// Eval returns a fresh evaluation context with its own histogram cache.
// Each fit invocation gets its own context, so memoized histograms never
// leak between candidate positions or between workers.
func (m *MarginalEnergy) Eval() *EnergyEval {
	return &EnergyEval{m: m, hists: make(map[int64][]float64)}
}

// EnergyEval evaluates one MarginalEnergy during a single fit.
// Not safe for concurrent use; workers hold private contexts.
type EnergyEval struct {
	m     *MarginalEnergy
	hists map[int64][]float64
}

// histogram keys are the index quantized to 1e-3.  the minimizer revisits
// indices far coarser than that, so the cache saves the rebuild without
// changing any returned density meaningfully.
func histKey(gamma float64) int64 {
	return int64(math.Round(gamma * 1e3))
}

func (e *EnergyEval) hist(gamma float64) []float64 {
	key := histKey(gamma)
	if h, ok := e.hists[key]; ok {
		return h
	}
	m := e.m
	w := make([]float64, len(m.logE))
	d := m.simIndex - gamma
	var tot float64
	for i, le := range m.logE {
		// E^(simIndex−γ) from log10(E)
		w[i] = math.Pow(10, le*d)
		tot += w[i]
	}
	h := stat.Histogram(make([]float64, len(m.dividers)-1), m.dividers, m.logE, w)
	for i := range h {
		h[i] /= tot * (m.dividers[i+1] - m.dividers[i])
		if h[i] < DensityFloor {
			h[i] = DensityFloor
		}
	}
	e.hists[key] = h
	return h
}

// Density returns the probability density in log10(E) of reconstructed
// energy E in GeV under spectral index gamma.
//
// Queries below 100 GeV or above 1e9 GeV clamp to the nearest edge bin.
// Empty bins return DensityFloor, never zero or NaN.
func (e *EnergyEval) Density(E, gamma float64) float64 {
	h := e.hist(gamma)
	d := e.m.dividers
	w := (d[len(d)-1] - d[0]) / float64(len(h))
	i := int((math.Log10(E) - d[0]) / w)
	if i < 0 {
		i = 0
	} else if i >= len(h) {
		i = len(h) - 1
	}
	return h[i]
}

// SimIndex returns the spectral index of the reference simulation.
func (m *MarginalEnergy) SimIndex() float64 { return m.simIndex }
