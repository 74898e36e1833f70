// Public domain.

package nusim

import (
	"math"

	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/nuscan/internal/nuastro"
	"github.com/soniakeys/nuscan/internal/nucat"
)

// PowerLaw draws one energy from E^(−index) over [emin, emax] by
// inverting the cumulative distribution.
func PowerLaw(rnd *xrand.Rand, index, emin, emax float64) float64 {
	u := rnd.Float64()
	g := 1 - index
	if math.Abs(g) < 1e-12 {
		// index 1 degenerates to log-uniform
		return emin * math.Exp(u*math.Log(emax/emin))
	}
	lo := math.Pow(emin, g)
	hi := math.Pow(emax, g)
	return math.Pow(lo+u*(hi-lo), 1/g)
}

// GenerateSample simulates a reference energy sample of n events per
// period under the given spectral index, for building marginalized
// energy likelihoods.
func GenerateSample(rnd *xrand.Rand, periods []string, n int, index float64) *Sample {
	s := &Sample{Index: index, Energy: make(map[string][]float64, len(periods))}
	for _, p := range periods {
		e := make([]float64, n)
		for i := range e {
			e[i] = PowerLaw(rnd, index, 1e2, 1e9)
		}
		s.Energy[p] = e
	}
	return s
}

// GenerateBackground simulates a background-only catalog: n events per
// period, uniform in right ascension, uniform on the sphere in
// declination, energies following the atmospheric background spectrum.
func GenerateBackground(rnd *xrand.Rand, periods []string, n int,
	bgIndex float64, angErr unit.Angle) *nucat.Catalog {

	c := &nucat.Catalog{Periods: make([]nucat.Period, len(periods))}
	for pi, name := range periods {
		p := nucat.Period{
			Name:   name,
			RA:     make([]float64, n),
			Dec:    make([]float64, n),
			AngErr: make([]unit.Angle, n),
			Energy: make([]float64, n),
			MJD:    make([]float64, n),
		}
		for i := 0; i < n; i++ {
			p.RA[i] = rnd.Float64() * 2 * math.Pi
			p.Dec[i] = math.Asin(2*rnd.Float64() - 1)
			p.AngErr[i] = angErr
			p.Energy[i] = PowerLaw(rnd, bgIndex, 1e2, 1e9)
			p.MJD[i] = 56043 + rnd.Float64()*365
		}
		c.Periods[pi] = p
	}
	return c
}

// InjectSource appends n signal-like events clustered within radius of
// src to the named period, with energies following E^(−index).
func InjectSource(rnd *xrand.Rand, c *nucat.Catalog, period string,
	src coord.Equa, n int, index float64, radius, angErr unit.Angle) {

	p := c.Period(period)
	if p == nil {
		return
	}
	for i := 0; i < n; i++ {
		// uniform in solid angle within the cone
		cr := 1 - rnd.Float64()*(1-math.Cos(radius.Rad()))
		r := math.Acos(cr)
		evt := offset(src, r, rnd.Float64()*2*math.Pi)
		p.RA = append(p.RA, evt.RA.Rad())
		p.Dec = append(p.Dec, evt.Dec.Rad())
		p.AngErr = append(p.AngErr, angErr)
		p.Energy = append(p.Energy, PowerLaw(rnd, index, 1e2, 1e9))
		p.MJD = append(p.MJD, 56043+rnd.Float64()*365)
	}
}

// offset returns the direction at great circle distance r from s along
// bearing b.
func offset(s coord.Equa, r, b float64) coord.Equa {
	sd, cd := s.Dec.Sincos()
	sr, cr := math.Sincos(r)
	sb, cb := math.Sincos(b)
	dec := math.Asin(sd*cr + cd*sr*cb)
	ra := s.RA.Rad() + math.Atan2(sb*sr*cd, cr-sd*math.Sin(dec))
	return nuastro.Equa(ra, dec)
}
