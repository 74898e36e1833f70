// Public domain.

package nulike

import (
	"fmt"

	"github.com/soniakeys/coord"
)

// PeriodEvents is one detector period's contribution to a time-dependent
// likelihood: its selected events and the marginalized energy likelihood
// built from that period's reference simulation.  Different detector
// configurations have different energy response, so the energy model is
// per period; the spatial model is shared.
type PeriodEvents struct {
	Name            string
	RA, Dec, Energy []float64
	MarginalEnergy  *MarginalEnergy
}

// TimeDependent is the time-dependent mixture likelihood: events
// partitioned by detector operating period, one energy likelihood
// context per period, a shared spatial model and a shared spectral
// index.
//
// The signal count is either resolved per period (one ns parameter for
// each period with events in the source band) or shared, a single ns
// split across periods in proportion to their event counts.  The choice
// is the sharedNs argument, exposed to the fitter through NumNs, not
// hardcoded.
type TimeDependent struct {
	ps       []*PointSource
	names    []string // period names aligned with ps
	sharedNs bool
	n        int
}

// NewTimeDependent builds the time-dependent likelihood for source
// position src.  Periods whose events all fall outside the source band
// contribute nothing and are dropped; if every period is empty the error
// is ErrNoEvents.
func NewTimeDependent(src coord.Equa, periods []PeriodEvents,
	spatial SpatialGaussian, sharedNs bool) (*TimeDependent, error) {

	t := &TimeDependent{sharedNs: sharedNs}
	for _, pe := range periods {
		if pe.MarginalEnergy == nil {
			return nil, fmt.Errorf("nulike: period %s has no energy model", pe.Name)
		}
		ps, err := NewPointSource(src, pe.RA, pe.Dec, pe.Energy,
			spatial, pe.MarginalEnergy)
		if err == ErrNoEvents {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("nulike: period %s: %w", pe.Name, err)
		}
		t.ps = append(t.ps, ps)
		t.names = append(t.names, pe.Name)
		t.n += ps.N()
	}
	if t.n == 0 {
		return nil, ErrNoEvents
	}
	return t, nil
}

// N returns the total number of events entering the likelihood.
func (t *TimeDependent) N() int { return t.n }

// PeriodNames returns the names of the periods that contribute events,
// aligned with the per-period ns components when the signal count is
// period-resolved.
func (t *TimeDependent) PeriodNames() []string { return t.names }

// NumNs returns the number of signal count parameters: one per
// contributing period, or one total when the count is shared.
func (t *TimeDependent) NumNs() int {
	if t.sharedNs {
		return 1
	}
	return len(t.ps)
}

// NsMax bounds component k by its period's event count, or by the total
// count in shared mode.
func (t *TimeDependent) NsMax(k int) float64 {
	if t.sharedNs {
		return float64(t.n)
	}
	return t.ps[k].NsMax(0)
}

// LogL sums the per-period mixture log likelihoods at a shared spectral
// index.  In shared mode the single ns is split across periods by their
// share of the total event count.
func (t *TimeDependent) LogL(ns []float64, gamma float64) float64 {
	var ll float64
	if t.sharedNs {
		for _, p := range t.ps {
			nsp := ns[0] * float64(p.N()) / float64(t.n)
			ll += p.LogL([]float64{nsp}, gamma)
		}
		return ll
	}
	for k, p := range t.ps {
		ll += p.LogL(ns[k:k+1], gamma)
	}
	return ll
}

// NullLogL evaluates the background-only hypothesis.
func (t *TimeDependent) NullLogL() float64 {
	var ll float64
	for _, p := range t.ps {
		ll += p.NullLogL()
	}
	return ll
}
