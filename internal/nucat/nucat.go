// Public domain.

// Package nucat defines the neutrino event catalog read by nuscan.
//
// A catalog holds reconstructed events grouped by detector operating
// period, as parallel arrays.  Events are immutable once loaded; the
// likelihood and scan code only ever borrows the slices.
package nucat

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/soniakeys/unit"
)

// Efn is the default catalog file name.
const Efn = "nuscan.events"

// Period holds the events of one detector operating period.
//
// RA, Dec are reconstructed equatorial coordinates in radians,
// 0 ≤ ra < 2π, -π/2 ≤ dec ≤ π/2.  Energy is reconstructed energy in GeV.
// MJD is the arrival time.  The parallel arrays must be of equal length.
type Period struct {
	Name   string
	RA     []float64
	Dec    []float64
	AngErr []unit.Angle
	Energy []float64
	MJD    []float64
}

// Len returns the number of events in the period.
func (p *Period) Len() int { return len(p.Energy) }

// Validate checks the parallel arrays for consistent length.
func (p *Period) Validate() error {
	n := len(p.Energy)
	if len(p.RA) != n || len(p.Dec) != n || len(p.AngErr) != n ||
		len(p.MJD) != n {
		return fmt.Errorf(
			"nucat: period %s: inconsistent array lengths ra %d dec %d angerr %d energy %d mjd %d",
			p.Name, len(p.RA), len(p.Dec), len(p.AngErr), n, len(p.MJD))
	}
	return nil
}

// Catalog is a full event catalog, one Period per detector configuration.
type Catalog struct {
	Periods []Period
}

// Len returns the total event count over all periods.
func (c *Catalog) Len() (n int) {
	for i := range c.Periods {
		n += c.Periods[i].Len()
	}
	return
}

// Period returns the named period, or nil if the catalog has no such
// period.
func (c *Catalog) Period(name string) *Period {
	for i := range c.Periods {
		if c.Periods[i].Name == name {
			return &c.Periods[i]
		}
	}
	return nil
}

// Names returns the list of period names present, in catalog order.
func (c *Catalog) Names() []string {
	ns := make([]string, len(c.Periods))
	for i := range c.Periods {
		ns[i] = c.Periods[i].Name
	}
	return ns
}

// Validate checks all periods.
func (c *Catalog) Validate() error {
	if len(c.Periods) == 0 {
		return fmt.Errorf("nucat: catalog has no periods")
	}
	for i := range c.Periods {
		if err := c.Periods[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile gob encodes the catalog to the named file.
func (c *Catalog) WriteFile(fn string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(c)
}

// ReadFile reads a catalog written by WriteFile and validates it.
func ReadFile(fn string) (c Catalog, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return
	}
	defer f.Close()
	if err = gob.NewDecoder(f).Decode(&c); err != nil {
		return
	}
	err = c.Validate()
	return
}
