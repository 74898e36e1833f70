// Public domain.

package nuastro_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/nuscan/internal/nuastro"
)

func TestSeparation(t *testing.T) {
	// poles are π/2 from the equator
	pole := nuastro.Equa(0, math.Pi/2)
	eq := nuastro.Equa(1.3, 0)
	assert.InDelta(t, math.Pi/2, nuastro.Separation(pole, eq), 1e-12)

	// a degree of right ascension on the equator is a degree of arc
	a := nuastro.Equa(0, 0)
	b := nuastro.Equa(math.Pi/180, 0)
	assert.InDelta(t, math.Pi/180, nuastro.Separation(a, b), 1e-12)

	// symmetric to rounding: cos(α1−α2) and cos(α2−α1) can differ in
	// the last bit
	c := nuastro.Equa(4.2, -.7)
	d := nuastro.Equa(1.1, .2)
	assert.InDelta(t, nuastro.Separation(c, d), nuastro.Separation(d, c), 1e-14)
}

// Rounding can push the law-of-cosines cosine just outside [-1, 1] for
// coincident or antipodal directions.  That must be corrected silently,
// returning 0 or π, never NaN.
func TestSeparationClamp(t *testing.T) {
	for _, s := range [][2]float64{
		{0, 0},
		{2.1, .3},
		{5.9, -1.2},
		{math.Pi, math.Pi / 2},
	} {
		p := nuastro.Equa(s[0], s[1])
		r := nuastro.Separation(p, p)
		require.False(t, math.IsNaN(r))
		assert.Equal(t, 0.0, r)

		anti := nuastro.Equa(s[0]+math.Pi, -s[1])
		r = nuastro.Separation(p, anti)
		require.False(t, math.IsNaN(r))
		assert.InDelta(t, math.Pi, r, 1e-7)
	}
}

// cross-check the law of cosines against the dot product form on a
// spread of direction pairs.
func TestSeparationUnitVector(t *testing.T) {
	for ra1 := 0.; ra1 < 6; ra1 += 1.1 {
		for dec1 := -1.4; dec1 < 1.5; dec1 += .7 {
			a := nuastro.Equa(ra1, dec1)
			b := nuastro.Equa(2*ra1, -dec1/2)
			ua, ub := nuastro.Unit(a), nuastro.Unit(b)
			want := math.Acos(math.Max(-1, math.Min(1, ua.Dot(&ub))))
			assert.InDelta(t, want, nuastro.Separation(a, b), 1e-12)
		}
	}
}

func TestEqua(t *testing.T) {
	// right ascension normalizes into [0, 2π)
	e := nuastro.Equa(-math.Pi/2, .4)
	assert.InDelta(t, 3*math.Pi/2, e.RA.Rad(), 1e-12)
	assert.InDelta(t, .4, e.Dec.Rad(), 1e-12)

	e = nuastro.Equa(5*math.Pi, 0)
	assert.InDelta(t, math.Pi, e.RA.Rad(), 1e-12)
}

func TestEquaFromSpherical(t *testing.T) {
	// north pole
	eq := nuastro.EquaFromSpherical(0, 0)
	assert.InDelta(t, math.Pi/2, eq.Dec.Rad(), 1e-12)

	// equator, longitude wraps into [0, 2π)
	eq = nuastro.EquaFromSpherical(math.Pi/2, 3*math.Pi)
	assert.InDelta(t, 0, eq.Dec.Rad(), 1e-12)
	assert.InDelta(t, math.Pi, eq.RA.Rad(), 1e-12)
	assert.True(t, eq.RA.Rad() >= 0 && eq.RA.Rad() < 2*math.Pi)

	eq = nuastro.EquaFromSpherical(math.Pi, -math.Pi/2)
	assert.InDelta(t, -math.Pi/2, eq.Dec.Rad(), 1e-12)
	assert.True(t, eq.RA.Rad() >= 0 && eq.RA.Rad() < 2*math.Pi)
}
