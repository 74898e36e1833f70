// Public domain.

package nuscan

import (
	"github.com/soniakeys/unit"

	"github.com/soniakeys/nuscan/internal/nucat"
)

// band identifies the declination band containing dec, with the
// north/south boundary at ±bound (radians).  The three bands partition
// the sky: northern dec > +bound, southern dec < −bound, equatorial
// in between.
func band(dec, bound float64) int {
	switch {
	case dec > bound:
		return bandNorthern
	case dec < -bound:
		return bandSouthern
	}
	return bandEquator
}

const (
	bandNorthern = iota
	bandEquator
	bandSouthern
)

// cutPeriod retains the events of p whose reconstructed energy exceeds
// the minimum energy of the band containing their declination.  Each
// event is tested against exactly one threshold; the three band
// conditions are independent, never combined into one mask.
func cutPeriod(p *nucat.Period, cuts *CutsConfig, bound unit.Angle) nucat.Period {
	emin := [3]float64{
		bandNorthern: cuts.Northern.Emin,
		bandEquator:  cuts.Equator.Emin,
		bandSouthern: cuts.Southern.Emin,
	}
	b := bound.Rad()
	out := nucat.Period{Name: p.Name}
	for i, e := range p.Energy {
		if e <= emin[band(p.Dec[i], b)] {
			continue
		}
		out.RA = append(out.RA, p.RA[i])
		out.Dec = append(out.Dec, p.Dec[i])
		out.AngErr = append(out.AngErr, p.AngErr[i])
		out.Energy = append(out.Energy, e)
		out.MJD = append(out.MJD, p.MJD[i])
	}
	return out
}
