// Public domain.

// Package nusim defines the reference energy sample used to build
// marginalized energy likelihoods.
//
// The sample is a large set of reconstructed energies simulated under a
// known reference spectral index, one set per detector period since
// different detector configurations have different energy response.
// The file is created by the mknu command.
package nusim

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Sfn is the default reference sample file name.
const Sfn = "nuscan.sample"

// Sample holds the simulated reference energies.
//
// Index is the spectral index the simulation was generated with.
// Energy maps period name to reconstructed energies in GeV.
type Sample struct {
	Index  float64
	Energy map[string][]float64
}

// Validate checks the sample for usability before any fit runs.
func (s *Sample) Validate() error {
	if s.Index <= 0 {
		return fmt.Errorf("nusim: reference index %g out of range", s.Index)
	}
	if len(s.Energy) == 0 {
		return fmt.Errorf("nusim: sample has no periods")
	}
	for p, e := range s.Energy {
		if len(e) == 0 {
			return fmt.Errorf("nusim: period %s has an empty sample", p)
		}
	}
	return nil
}

// Pooled returns the energies of the named periods concatenated, for
// time-integrated likelihoods that do not resolve detector periods.
// Periods missing from the sample are an error.
func (s *Sample) Pooled(periods []string) ([]float64, error) {
	var pool []float64
	for _, p := range periods {
		e, ok := s.Energy[p]
		if !ok {
			return nil, fmt.Errorf("nusim: no reference sample for period %s", p)
		}
		pool = append(pool, e...)
	}
	return pool, nil
}

// WriteFile gob encodes the sample to the named file.
func (s *Sample) WriteFile(fn string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(s)
}

// ReadFile reads a sample written by WriteFile and validates it.
func ReadFile(fn string) (s Sample, err error) {
	f, err := os.Open(fn)
	if err != nil {
		return
	}
	defer f.Close()
	if err = gob.NewDecoder(f).Decode(&s); err != nil {
		return
	}
	err = s.Validate()
	return
}
