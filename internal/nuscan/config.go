// Public domain.

package nuscan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the analysis configuration.  The YAML structure is
//
//	sources:
//	    nside: 8            # pixelization resolution, or
//	    npix: 768           # explicit pixel count, or
//	    ras: [...]          # explicit candidate coordinates, radians
//	    decs: [...]
//	data:
//	    periods: [IC86_I, IC86_II]
//	    cuts:
//	        northern: {emin: 100}
//	        equator:  {emin: 1000}
//	        southern: {emin: 10000}
//	likelihood:
//	    sigma_deg: 1.0
//	policy:
//	    timedep_below_dec_deg: 10
//	    band_boundary_deg: 10
//	    shared_ns: false
//
// Exactly one candidate mode is active: a pixelization (nside, or npix
// with nside derived) or an explicit coordinate list.  Missing or
// malformed fields fail at Validate, before any fit runs.
type Config struct {
	Sources    SourcesConfig    `yaml:"sources"`
	Data       DataConfig       `yaml:"data"`
	Likelihood LikelihoodConfig `yaml:"likelihood"`
	Policy     PolicyConfig     `yaml:"policy"`
}

// SourcesConfig selects the candidate positions.
type SourcesConfig struct {
	Nside int       `yaml:"nside,omitempty"`
	Npix  int       `yaml:"npix,omitempty"`
	RAs   []float64 `yaml:"ras,omitempty,flow"`
	Decs  []float64 `yaml:"decs,omitempty,flow"`
}

// DataConfig selects periods and the per-band energy cuts.
type DataConfig struct {
	Periods []string    `yaml:"periods,flow"`
	Cuts    *CutsConfig `yaml:"cuts"`
}

// CutsConfig holds one minimum energy per declination band.  All three
// bands are required; the bands are disjoint and each event is tested
// only against the threshold of the band containing its declination.
type CutsConfig struct {
	Northern *EminCut `yaml:"northern"`
	Equator  *EminCut `yaml:"equator"`
	Southern *EminCut `yaml:"southern"`
}

// EminCut is a minimum reconstructed energy in GeV.
type EminCut struct {
	Emin float64 `yaml:"emin"`
}

// LikelihoodConfig holds the fixed likelihood model parameters.
type LikelihoodConfig struct {
	// detector angular resolution σ, degrees.  required, > 0.
	SigmaDeg float64 `yaml:"sigma_deg"`
}

// PolicyConfig maps declination to analysis policy.  Boundaries are
// degrees; nil fields take the documented defaults rather than failing.
type PolicyConfig struct {
	// candidates at or below this declination use the time-dependent
	// likelihood; above it the time-integrated one.  default +10.
	TimeDepBelowDecDeg *float64 `yaml:"timedep_below_dec_deg,omitempty"`
	// boundary between the northern/southern and equatorial cut bands.
	// default ±10.
	BandBoundaryDeg *float64 `yaml:"band_boundary_deg,omitempty"`
	// fit a single signal count shared across periods instead of one
	// per period.
	SharedNs bool `yaml:"shared_ns"`
}

const (
	defaultTimeDepBelowDecDeg = 10
	defaultBandBoundaryDeg    = 10
)

// TimeDepBoundary returns the policy boundary declination in degrees.
func (p *PolicyConfig) TimeDepBoundary() float64 {
	if p.TimeDepBelowDecDeg != nil {
		return *p.TimeDepBelowDecDeg
	}
	return defaultTimeDepBelowDecDeg
}

// BandBoundary returns the cut band boundary declination in degrees.
func (p *PolicyConfig) BandBoundary() float64 {
	if p.BandBoundaryDeg != nil {
		return *p.BandBoundaryDeg
	}
	return defaultBandBoundaryDeg
}

// LoadConfig reads and validates a YAML analysis configuration.
func LoadConfig(path string) (Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("nuscan: config %s: %w", path, err)
	}
	return c, c.Validate()
}

// WriteFile writes the configuration used by an analysis back out,
// so a scan is reproducible from its own output.
func (c *Config) WriteFile(path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0666)
}

// Validate checks the configuration for completeness.  It fails fast on
// the first problem, naming the missing or malformed field.
func (c *Config) Validate() error {
	if len(c.Data.Periods) == 0 {
		return fmt.Errorf("nuscan: config missing data.periods")
	}
	cuts := c.Data.Cuts
	if cuts == nil {
		return fmt.Errorf("nuscan: config missing data.cuts")
	}
	for _, b := range []struct {
		name string
		cut  *EminCut
	}{
		{"data.cuts.northern", cuts.Northern},
		{"data.cuts.equator", cuts.Equator},
		{"data.cuts.southern", cuts.Southern},
	} {
		if b.cut == nil {
			return fmt.Errorf("nuscan: config missing %s", b.name)
		}
		if b.cut.Emin <= 0 {
			return fmt.Errorf("nuscan: config %s.emin must be > 0, have %g",
				b.name, b.cut.Emin)
		}
	}
	if c.Likelihood.SigmaDeg <= 0 {
		return fmt.Errorf(
			"nuscan: config likelihood.sigma_deg must be > 0, have %g",
			c.Likelihood.SigmaDeg)
	}
	s := &c.Sources
	pix := s.Nside > 0 || s.Npix > 0
	list := len(s.RAs) > 0 || len(s.Decs) > 0
	switch {
	case pix && list:
		return fmt.Errorf(
			"nuscan: config sources: nside/npix and ras/decs are mutually exclusive")
	case !pix && !list:
		return fmt.Errorf(
			"nuscan: config missing sources: need nside, npix or ras/decs")
	case list && len(s.RAs) != len(s.Decs):
		return fmt.Errorf(
			"nuscan: config sources: ras length %d != decs length %d",
			len(s.RAs), len(s.Decs))
	}
	return nil
}
