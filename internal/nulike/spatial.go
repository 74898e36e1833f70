// Public domain.

package nulike

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/nuscan/internal/nuastro"
)

// SpatialGaussian is the spatial part of the point source likelihood:
// a circular Gaussian on the sphere with the detector angular resolution
// as its width.
//
// Sigma must be > 0.  The likelihood configuration validates this before
// any scan runs.
type SpatialGaussian struct {
	Sigma unit.Angle
}

// Density evaluates the probability density per unit solid angle of an
// event direction given a candidate source direction.
//
//	f(r) = 1/(2πσ²) · exp(−r²/(2σ²))
//
// with r the great circle separation of the two directions.  Pure
// function of its inputs and the configured σ.
func (g SpatialGaussian) Density(evt, src coord.Equa) float64 {
	r := nuastro.Separation(evt, src)
	s := g.Sigma.Rad()
	return math.Exp(-.5*(r/s)*(r/s)) / (2 * math.Pi * s * s)
}

// BandWidth returns the declination band half-width over which the
// background density is normalized, 5σ.  It is derived from the
// resolution, never configured independently.
func (g SpatialGaussian) BandWidth() unit.Angle {
	return unit.AngleFromDeg(5 * g.Sigma.Deg())
}
