// Public domain.

// Package nulike implements the unbinned point source likelihood:
// per-event spatial and energy probability densities and their
// combination into a signal/background mixture over the fit parameters
// (signal count ns, spectral index γ).
//
// The method follows Braun et al., 2008, Methods for point source
// analysis in high energy neutrino telescopes, Astroparticle Physics
// 29(4).
package nulike

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/coord"

	"github.com/soniakeys/nuscan/internal/nuastro"
)

// BgIndex is the spectral index of the atmospheric background spectrum,
// a domain constant.
const BgIndex = 3.7

// ErrNoEvents reports that no events survive the declination band
// selection around a candidate source.  The likelihood is undefined for
// zero events (ns/N divides by zero); callers skip the fit and leave the
// candidate at its zero default instead of treating this as a failure.
var ErrNoEvents = errors.New("nulike: no events in source band")

// Objective is the view of a likelihood the fitter drives.
//
// Ns components are the expected signal event counts, one component for
// a time-integrated likelihood, one per detector period for a
// period-resolved one.  Each component k is bounded to [0, NsMax(k)].
type Objective interface {
	// NumNs is the number of signal count parameters.
	NumNs() int
	// NsMax is the upper bound of signal count component k.
	NsMax(k int) float64
	// N is the total number of events entering the likelihood.
	N() int
	// LogL is the total log likelihood at the given parameters.
	// len(ns) must equal NumNs.
	LogL(ns []float64, gamma float64) float64
	// NullLogL is the background-only log likelihood, LogL(0, BgIndex).
	NullLogL() float64
}

// PointSource is the time-integrated mixture likelihood for one source
// hypothesis over a fixed event set.
//
// Per event,
//
//	S_i(γ) = spatial(x_i, x_src) · energy(E_i, γ)
//	B_i    = energy(E_i, BgIndex) / band
//
// with band the 5σ declination band width in radians, so background is
// normalized over the same angular region the signal kernel occupies.
// The total is
//
//	logL(ns, γ) = Σ_i log( ns/N·S_i(γ) + (1−ns/N)·B_i )
//
// Spatial and background terms do not depend on the fit parameters and
// are computed once at construction; only the signal energy term is
// re-evaluated, through a per-fit EnergyEval context.
type PointSource struct {
	src     coord.Equa
	eval    *EnergyEval
	energy  []float64 // selected event energies
	spatial []float64 // per-event spatial density, fixed per candidate
	bg      []float64 // per-event background density, fixed per candidate
}

// NewPointSource builds the mixture likelihood for source position src
// from parallel event arrays (radians, radians, GeV).
//
// Only events within the 5σ declination band of the source enter the
// likelihood.  If none do, the error is ErrNoEvents and no likelihood is
// returned.
func NewPointSource(src coord.Equa, ra, dec, energy []float64,
	spatial SpatialGaussian, me *MarginalEnergy) (*PointSource, error) {

	if len(ra) != len(dec) || len(ra) != len(energy) {
		return nil, fmt.Errorf(
			"nulike: inconsistent event arrays ra %d dec %d energy %d",
			len(ra), len(dec), len(energy))
	}
	band := spatial.BandWidth().Rad()
	p := &PointSource{src: src, eval: me.Eval()}
	for i := range ra {
		if math.Abs(dec[i]-src.Dec.Rad()) > band {
			continue
		}
		evt := nuastro.Equa(ra[i], dec[i])
		p.energy = append(p.energy, energy[i])
		p.spatial = append(p.spatial, spatial.Density(evt, src))
		p.bg = append(p.bg, p.eval.Density(energy[i], BgIndex)/band)
	}
	if len(p.energy) == 0 {
		return nil, ErrNoEvents
	}
	return p, nil
}

// N returns the number of events entering the likelihood.
func (p *PointSource) N() int { return len(p.energy) }

// NumNs returns 1: a time-integrated likelihood has a single signal
// count parameter.
func (p *PointSource) NumNs() int { return 1 }

// NsMax bounds ns by the event count, keeping the signal fraction
// ns/N within [0, 1].
func (p *PointSource) NsMax(int) float64 { return float64(len(p.energy)) }

// LogL evaluates the mixture log likelihood at signal count ns[0] and
// spectral index gamma.
func (p *PointSource) LogL(ns []float64, gamma float64) float64 {
	x := ns[0] / float64(len(p.energy))
	var ll float64
	for i, e := range p.energy {
		s := p.spatial[i] * p.eval.Density(e, gamma)
		ll += math.Log(x*s + (1-x)*p.bg[i])
	}
	return ll
}

// NullLogL evaluates the background-only hypothesis.
func (p *PointSource) NullLogL() float64 {
	return p.LogL([]float64{0}, BgIndex)
}
