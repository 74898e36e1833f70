/*
Command nuscan computes a statistical test for whether points on the sky
are astrophysical neutrino sources, given a catalog of reconstructed
neutrino events.

# Contents

Version 0.2

	Program overview
	Command line usage
	Configuration file
	File formats
	Algorithm outline

# Program overview

Input is an event catalog of reconstructed neutrino events (direction,
angular uncertainty, reconstructed energy, arrival time, detector
period), a reference sample of simulated reconstructed energies, and a
YAML analysis configuration.  Output is one row per candidate sky
position with a test statistic, best fit signal counts, and a best fit
spectral index.

The method is the unbinned likelihood of Braun et al., 2008, Methods for
point source analysis in high energy neutrino telescopes, Astroparticle
Physics 29(4):  each event is treated as drawn from either a point
source signal density or an atmospheric background density, and the
expected signal count ns and source spectral index gamma are fit by
maximum likelihood at each candidate position.  The test statistic is
twice the log likelihood ratio of the best fit against the
background-only hypothesis; larger values indicate stronger evidence for
a point source.

Sample run:

	mknu -periods IC86_I,IC86_II -n 1000 -repeatable
	nuscan -c scan.yaml

producing output like

	nuscan version 0.2 Go source.
	   Pix       RA      Dec        TS   Gamma     +/-  ns IC86_I     +/-  ns IC86_II    +/-
	     0   45.000   41.810     0.012   3.211   1.402       0.113   0.871       0.000  0.642
	     1  135.000   41.810     0.000   3.700   0.000       0.000   0.000       0.000  0.000
	...

Command line usage

	nuscan -c <config-file> [options]   scan for point sources
	nuscan -h                           display help
	nuscan -v                           display version and copyright

Options:

	-c <config-file>   analysis configuration, YAML (required)
	-e <event-file>    event catalog (default nuscan.events)
	-s <sample-file>   reference energy sample (default nuscan.sample)
	-w <config-file>   write the configuration used back out
	-q                 log warnings only
	-d                 log debug detail

Diagnostics go to standard error; result rows go to standard output.

# Configuration file

The configuration is YAML with four sections.

	sources:
	    nside: 8
	data:
	    periods: [IC86_I, IC86_II]
	    cuts:
	        northern: {emin: 100}
	        equator:  {emin: 1000}
	        southern: {emin: 10000}
	likelihood:
	    sigma_deg: 1.0
	policy:
	    timedep_below_dec_deg: 10
	    band_boundary_deg: 10
	    shared_ns: false

Sources are either a sky pixelization (nside, or an explicit npix) or
explicit coordinate lists ras/decs in radians; exactly one mode is
active.  Cuts give a minimum reconstructed energy per declination band;
an event is kept only if its energy exceeds the threshold of the band
containing its declination.  The policy section controls which
candidates use the time-dependent, per-period likelihood and where the
cut bands divide; defaults are +-10 degrees.

Missing or malformed configuration fails before any fit runs, with the
offending field named.

# File formats

The event catalog and reference sample are gob encoded files written by
the mknu command (and by anything else using the nucat and nusim
packages).  The catalog holds per-period parallel arrays of right
ascension, declination, angular uncertainty, reconstructed energy and
arrival time.  The reference sample holds per-period reconstructed
energies simulated under a known spectral index.

# Algorithm outline

For each candidate position, events within a declination band of five
times the angular resolution are selected.  If none survive, the
candidate is skipped and keeps a test statistic of zero; the fit is
never attempted.  Otherwise the per-event signal density is the product
of a spatial Gaussian in the great circle separation and a marginalized
energy density for the hypothesized spectral index, the background
density is the energy density at the fixed atmospheric index normalized
over the band, and the mixture log likelihood is maximized over ns and
gamma with a derivative-free minimizer.  Candidates at low declination
use a time-dependent likelihood with one energy model and optionally one
ns per detector period.

The scan over candidates is parallel; every fit is self-contained and
deterministic, so identical inputs give identical results.

-------------
Public domain.
*/
package main
