/*
Command mknu builds the data files nuscan reads: a reference energy
sample and a synthetic event catalog.

The reference sample is a simulation of reconstructed energies under a
known spectral index, one set per detector period.  Nuscan reweights it
to build the marginalized energy likelihood for any hypothesized index.
A real analysis would substitute a sample from full detector simulation;
mknu draws from the spectrum directly, which is adequate for validation
and testing.

The synthetic catalog is background only by default: uniform in right
ascension, uniform on the sphere in declination, energies from the
atmospheric background spectrum.  The inject options add a cluster of
signal-like events around a chosen position, for checking that the scan
recovers an excess where and only where one was put in.

	mknu -periods IC86_I,IC86_II -n 1000 -repeatable
	mknu -n 1000 -inject-n 50 -inject-ra 45 -inject-dec 30

With -repeatable the generator is seeded with a constant, so repeated
runs produce identical files.

Public domain.
*/
package main
