// Public domain.

// Package skygrid generates spatially complete sets of test directions
// from a HEALPix-style ring scheme pixelization of the sphere.
//
// Only the pieces the scan needs are implemented: the pixel count for a
// resolution parameter and the spherical coordinates of pixel centers.
package skygrid

import (
	"fmt"
	"math"
)

// Npix returns the number of pixels for resolution parameter nside.
func Npix(nside int) int {
	return 12 * nside * nside
}

// Resol returns the approximate pixel resolution in radians for nside,
// the square root of the per-pixel solid angle.
func Resol(nside int) float64 {
	return math.Sqrt(4 * math.Pi / float64(Npix(nside)))
}

// PixCenter returns the center of pixel p in spherical coordinates,
// colatitude θ in [0, π] measured from the north pole and longitude
// φ in [0, 2π), following the ring ordering scheme.
//
// Valid for any nside ≥ 1 and 0 ≤ p < Npix(nside); anything else is a
// caller bug and returns an error naming the bad argument.
func PixCenter(nside, p int) (colat, lon float64, err error) {
	if nside < 1 {
		return 0, 0, fmt.Errorf("skygrid: nside %d out of range", nside)
	}
	npix := Npix(nside)
	if p < 0 || p >= npix {
		return 0, 0, fmt.Errorf("skygrid: pixel %d out of range for nside %d", p, nside)
	}
	ns := float64(nside)
	ncap := 2 * nside * (nside - 1) // pixels in the north polar cap
	switch {
	case p < ncap:
		// north polar cap: ring i has 4i pixels, i from 1.
		i := int((1 + math.Sqrt(1+2*float64(p))) / 2)
		j := p - 2*i*(i-1)
		z := 1 - float64(i*i)/(3*ns*ns)
		colat = math.Acos(z)
		lon = math.Pi / (2 * float64(i)) * (float64(j) + .5)
	case p < npix-ncap:
		// equatorial belt: rings of constant 4*nside pixels.
		q := p - ncap
		i := q/(4*nside) + nside // ring index counted from the pole
		j := q % (4 * nside)
		z := 4./3. - 2*float64(i)/(3*ns)
		colat = math.Acos(z)
		// odd and even rings are offset by half a pixel width
		s := float64((i - nside + 1) % 2)
		lon = math.Pi / (2 * ns) * (float64(j) + s/2)
	default:
		// south polar cap mirrors the north cap.
		pp := npix - 1 - p
		i := int((1 + math.Sqrt(1+2*float64(pp))) / 2)
		j := pp - 2*i*(i-1)
		z := 1 - float64(i*i)/(3*ns*ns)
		colat = math.Acos(-z)
		lon = math.Pi / (2 * float64(i)) * (float64(j) + .5)
	}
	return colat, lon, nil
}
