// Public domain.

// Package nuastro, spherical astronomy helpers shared by the nuscan
// likelihood and scan packages.
package nuastro

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/unit"
)

// Separation computes the great circle separation of two equatorial
// directions, in radians.
//
// The spherical law of cosines is used directly.  The intermediate cosine
// is clamped to [-1, 1] before the inverse cosine: for nearly identical or
// nearly antipodal directions floating point rounding can push it just
// outside the valid domain.  That is an expected artifact, not a data
// error, so it is corrected silently.
func Separation(a, b coord.Equa) float64 {
	sda, cda := a.Dec.Sincos()
	sdb, cdb := b.Dec.Sincos()
	cr := math.Cos(a.RA.Rad()-b.RA.Rad())*cda*cdb + sda*sdb
	if cr > 1 {
		cr = 1
	} else if cr < -1 {
		cr = -1
	}
	return math.Acos(cr)
}

// Unit returns the unit vector of an equatorial direction.
func Unit(s coord.Equa) coord.Cart {
	sd, cd := s.Dec.Sincos()
	sr, cr := s.RA.Sincos()
	return coord.Cart{X: cr * cd, Y: sr * cd, Z: sd}
}

// Equa builds an equatorial direction from right ascension and
// declination in radians.  RA is normalized to [0, 2π).
func Equa(ra, dec float64) coord.Equa {
	return coord.Equa{RA: unit.RAFromRad(ra), Dec: unit.Angle(dec)}
}

// EquaFromSpherical converts spherical coordinates as returned by a sky
// pixelization, colatitude θ measured from the north pole and longitude φ,
// to equatorial ra, dec.
func EquaFromSpherical(colat, lon float64) coord.Equa {
	return Equa(lon, math.Pi/2-colat)
}
