// Public domain.

package nulike_test

import (
	"math"
	"testing"

	"github.com/soniakeys/unit"
	"github.com/stretchr/testify/assert"

	"github.com/soniakeys/nuscan/internal/nuastro"
	"github.com/soniakeys/nuscan/internal/nulike"
)

func TestSpatialNonNegative(t *testing.T) {
	g := nulike.SpatialGaussian{Sigma: unit.AngleFromDeg(1)}
	src := nuastro.Equa(1, .3)
	for ra := 0.; ra < 2*math.Pi; ra += .5 {
		for dec := -1.5; dec <= 1.5; dec += .3 {
			d := g.Density(nuastro.Equa(ra, dec), src)
			assert.GreaterOrEqual(t, d, 0.0)
			assert.False(t, math.IsNaN(d))
		}
	}
}

func TestSpatialPeak(t *testing.T) {
	g := nulike.SpatialGaussian{Sigma: unit.AngleFromDeg(1)}
	src := nuastro.Equa(2, -.4)
	s := g.Sigma.Rad()
	assert.InDelta(t, 1/(2*math.Pi*s*s), g.Density(src, src), 1e-9)

	// one sigma out, density falls by exp(-1/2)
	evt := nuastro.Equa(2, -.4+s)
	assert.InDelta(t, math.Exp(-.5)/(2*math.Pi*s*s), g.Density(evt, src), 1e-6)
}

// integrate the kernel over the sphere on a fine ring grid around a
// polar source; the result must be 1 within tolerance for σ well below
// the sphere scale.
func TestSpatialIntegral(t *testing.T) {
	for _, sigDeg := range []float64{.5, 1, 2} {
		g := nulike.SpatialGaussian{Sigma: unit.AngleFromDeg(sigDeg)}
		src := nuastro.Equa(0, math.Pi/2)
		const dr = 1e-4
		var sum float64
		for r := dr / 2; r < math.Pi; r += dr {
			evt := nuastro.Equa(0, math.Pi/2-r)
			sum += g.Density(evt, src) * 2 * math.Pi * math.Sin(r) * dr
		}
		assert.InDelta(t, 1, sum, 1e-3, "sigma %g deg", sigDeg)
	}
}

func TestBandWidth(t *testing.T) {
	g := nulike.SpatialGaussian{Sigma: unit.AngleFromDeg(1)}
	assert.InDelta(t, 5, g.BandWidth().Deg(), 1e-12)
}
