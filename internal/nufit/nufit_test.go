// Public domain.

package nufit_test

import (
	"math"
	"testing"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/nuscan/internal/nuastro"
	"github.com/soniakeys/nuscan/internal/nufit"
	"github.com/soniakeys/nuscan/internal/nulike"
	"github.com/soniakeys/nuscan/internal/nusim"
)

// quad is a smooth stand-in objective with a known optimum, so the fit
// machinery can be checked independently of the likelihood code.
type quad struct {
	nsOpt []float64
	gOpt  float64
}

func (q quad) NumNs() int        { return len(q.nsOpt) }
func (q quad) NsMax(int) float64 { return 10 }
func (q quad) N() int            { return 100 }
func (q quad) NullLogL() float64 { return q.LogL(make([]float64, len(q.nsOpt)), nulike.BgIndex) }
func (q quad) LogL(ns []float64, gamma float64) float64 {
	ll := -(gamma - q.gOpt) * (gamma - q.gOpt)
	for k, n := range ns {
		ll -= (n - q.nsOpt[k]) * (n - q.nsOpt[k])
	}
	return ll
}

func TestFitQuadratic(t *testing.T) {
	f := nufit.New()
	r, err := f.Fit(quad{nsOpt: []float64{3}, gOpt: 2.5})
	require.NoError(t, err)
	require.Len(t, r.Ns, 1)
	assert.InDelta(t, 3, r.Ns[0], 1e-3)
	assert.InDelta(t, 2.5, r.Gamma, 1e-3)
	assert.InDelta(t, 0, r.LogL, 1e-6)

	// TS = 2·(0 − (−(3² + (3.7−2.5)²)))
	assert.InDelta(t, 2*(9+1.2*1.2), r.TS, 1e-2)

	// Hessian of −logL is 2I at the optimum, so both errors are √½.
	assert.InDelta(t, math.Sqrt(.5), r.NsErr[0], 1e-3)
	assert.InDelta(t, math.Sqrt(.5), r.GammaErr, 1e-3)
}

func TestFitTwoComponents(t *testing.T) {
	f := nufit.New()
	r, err := f.Fit(quad{nsOpt: []float64{2, 4}, gOpt: 3})
	require.NoError(t, err)
	require.Len(t, r.Ns, 2)
	require.Len(t, r.NsErr, 2)
	assert.InDelta(t, 2, r.Ns[0], 1e-3)
	assert.InDelta(t, 4, r.Ns[1], 1e-3)
	assert.InDelta(t, 3, r.Gamma, 1e-3)
}

// pinned has its unconstrained optimum at ns = −1, so the constrained
// best fit sits on the ns = 0 boundary and the test statistic is 0.
type pinned struct{ quad }

func (p pinned) LogL(ns []float64, gamma float64) float64 {
	return -(ns[0] + 1) * (ns[0] + 1)
}
func (p pinned) NullLogL() float64 { return p.LogL([]float64{0}, nulike.BgIndex) }

func TestFitPinnedAtZero(t *testing.T) {
	f := nufit.New()
	r, err := f.Fit(pinned{quad{nsOpt: []float64{0}, gOpt: 2}})
	require.NoError(t, err)
	assert.InDelta(t, 0, r.Ns[0], 1e-3)
	assert.Equal(t, 0.0, r.TS)
}

func TestFitRejectsEmptyObjective(t *testing.T) {
	_, err := nufit.New().Fit(empty{})
	require.Error(t, err)
}

type empty struct{ quad }

func (empty) N() int { return 0 }

// likelihood fixture: background events spread over the source band plus
// an optional cluster at the source position.
func fixture(t *testing.T, nSig int) nulike.Objective {
	t.Helper()
	rnd := xrand.New(&xrand.PCGSource{})
	rnd.Seed(3)

	src := nuastro.Equa(2, .3)
	spatial := nulike.SpatialGaussian{Sigma: unit.AngleFromDeg(1)}
	band := spatial.BandWidth().Rad()

	var ra, dec, energy []float64
	for i := 0; i < 300; i++ {
		ra = append(ra, rnd.Float64()*2*math.Pi)
		dec = append(dec, src.Dec.Rad()+(rnd.Float64()*2-1)*band)
		energy = append(energy, nusim.PowerLaw(rnd, nulike.BgIndex, 1e2, 1e9))
	}
	for i := 0; i < nSig; i++ {
		ra = append(ra, src.RA.Rad())
		dec = append(dec, src.Dec.Rad())
		energy = append(energy, nusim.PowerLaw(rnd, 2, 1e2, 1e9))
	}

	var ref []float64
	for i := 0; i < 20000; i++ {
		ref = append(ref, nusim.PowerLaw(rnd, 1.5, 1e2, 1e9))
	}
	me, err := nulike.NewMarginalEnergy(ref, 1.5)
	require.NoError(t, err)

	obj, err := nulike.NewPointSource(src, ra, dec, energy, spatial, me)
	require.NoError(t, err)
	return obj
}

func TestFitBackgroundOnly(t *testing.T) {
	r, err := nufit.New().Fit(fixture(t, 0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.TS, 0.0)
	assert.Less(t, r.TS, 30.0)
}

func TestFitInjectedCluster(t *testing.T) {
	r, err := nufit.New().Fit(fixture(t, 40))
	require.NoError(t, err)
	assert.Greater(t, r.TS, 25.0)
	assert.Greater(t, r.Ns[0], 10.0)
	assert.Less(t, r.Gamma, nulike.BgIndex)
}

func TestFitReproducible(t *testing.T) {
	r1, err := nufit.New().Fit(fixture(t, 40))
	require.NoError(t, err)
	r2, err := nufit.New().Fit(fixture(t, 40))
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
