// Public domain.

package nuscan

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/nuscan/internal/nuastro"
	"github.com/soniakeys/nuscan/internal/nucat"
	"github.com/soniakeys/nuscan/internal/nufit"
	"github.com/soniakeys/nuscan/internal/nulike"
	"github.com/soniakeys/nuscan/internal/nusim"
	"github.com/soniakeys/nuscan/internal/skygrid"
)

// engine is the state shared by the scan strategies: configuration,
// borrowed immutable inputs, the diagnostics sink and the candidate
// coordinates.  Everything a single fit mutates is private to its
// worker.
type engine struct {
	cfg    Config
	events *nucat.Catalog
	sample *nusim.Sample
	log    zerolog.Logger
	fitter FitInvoker

	cut     []nucat.Period // post-cut events, config period order
	ra, dec []float64      // candidate coordinates
}

func newEngine(cfg Config, events *nucat.Catalog, sample *nusim.Sample,
	log zerolog.Logger) (engine, error) {

	e := engine{cfg: cfg, events: events, sample: sample, log: log,
		fitter: nufit.New()}
	if err := events.Validate(); err != nil {
		return e, err
	}
	if err := sample.Validate(); err != nil {
		return e, err
	}
	// period bookkeeping fails fast, before any fit runs.
	for _, name := range cfg.Data.Periods {
		if events.Period(name) == nil {
			return e, fmt.Errorf("nuscan: catalog has no period %s", name)
		}
		if _, ok := sample.Energy[name]; !ok {
			return e, fmt.Errorf("nuscan: reference sample has no period %s", name)
		}
	}
	return e, nil
}

// SetFitter replaces the fitter.  Useful for instrumenting scans; the
// default is nufit.New().
func (e *engine) SetFitter(f FitInvoker) { e.fitter = f }

// LoadConfig replaces the analysis configuration.
func (e *engine) LoadConfig(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// WriteConfig persists the configuration the analysis ran with.
func (e *engine) WriteConfig(path string) error {
	return e.cfg.WriteFile(path)
}

// ApplyCuts filters the loaded catalog by the configured per-band
// minimum energies, keeping only the configured periods.
func (e *engine) ApplyCuts() error {
	cuts := e.cfg.Data.Cuts
	if cuts == nil {
		return fmt.Errorf("nuscan: config missing data.cuts")
	}
	bound := unit.AngleFromDeg(e.cfg.Policy.BandBoundary())
	e.cut = e.cut[:0]
	for _, name := range e.cfg.Data.Periods {
		p := e.events.Period(name)
		if p == nil {
			return fmt.Errorf("nuscan: catalog has no period %s", name)
		}
		cp := cutPeriod(p, cuts, bound)
		e.log.Info().Str("period", name).
			Int("events", p.Len()).Int("retained", cp.Len()).
			Msg("applied energy cuts")
		e.cut = append(e.cut, cp)
	}
	return nil
}

// PerformScan fits every candidate position and returns the filled
// result arrays.  The scan is parallel over candidates; each candidate
// index is evaluated exactly once and owns its slots in the output.
func (e *engine) PerformScan() (*Results, error) {
	if len(e.ra) == 0 {
		return nil, ErrNoCandidates
	}
	if e.cut == nil {
		if err := e.ApplyCuts(); err != nil {
			return nil, err
		}
	}
	mes := make([]*nulike.MarginalEnergy, len(e.cfg.Data.Periods))
	for i, name := range e.cfg.Data.Periods {
		me, err := nulike.NewMarginalEnergy(e.sample.Energy[name], e.sample.Index)
		if err != nil {
			return nil, fmt.Errorf("nuscan: period %s: %w", name, err)
		}
		mes[i] = me
	}
	// time-integrated candidates pool the reference simulations of all
	// configured periods into one energy model.
	pool, err := e.sample.Pooled(e.cfg.Data.Periods)
	if err != nil {
		return nil, err
	}
	pooled, err := nulike.NewMarginalEnergy(pool, e.sample.Index)
	if err != nil {
		return nil, err
	}

	res := newResults(e.ra, e.dec, e.cfg.Data.Periods)
	spatial := nulike.SpatialGaussian{
		Sigma: unit.AngleFromDeg(e.cfg.Likelihood.SigmaDeg)}
	boundary := unit.AngleFromDeg(e.cfg.Policy.TimeDepBoundary()).Rad()

	e.log.Info().Int("candidates", len(e.ra)).
		Strs("periods", e.cfg.Data.Periods).
		Float64("sigma_deg", e.cfg.Likelihood.SigmaDeg).
		Msg("performing scan")

	var skipped, failed atomic.Int64
	maxWorkers := runtime.GOMAXPROCS(0)
	idxCh := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range idxCh {
				switch e.testSource(c, res, spatial, boundary, mes, pooled) {
				case testSkipped:
					skipped.Add(1)
				case testFailed:
					failed.Add(1)
				}
			}
		}()
	}
	for c := range e.ra {
		idxCh <- c
	}
	close(idxCh)
	wg.Wait()

	e.log.Info().Int("candidates", len(e.ra)).
		Int64("skipped", skipped.Load()).
		Int64("failed", failed.Load()).
		Msg("scan complete")
	return res, nil
}

const (
	testOK = iota
	testSkipped
	testFailed
)

// testSource evaluates one candidate position, writing only that
// candidate's result slots.  A candidate with no events in its source
// band is skipped before the fitter is ever invoked and keeps its zero
// defaults; a fit that does not converge is flagged in Failed, never
// recorded as a plausible result.
func (e *engine) testSource(c int, res *Results, spatial nulike.SpatialGaussian,
	boundary float64, mes []*nulike.MarginalEnergy,
	pooled *nulike.MarginalEnergy) int {

	src := nuastro.Equa(e.ra[c], e.dec[c])

	var obj nulike.Objective
	var names []string // ns components to period columns; nil means column 0
	var err error
	if src.Dec.Rad() <= boundary {
		pes := make([]nulike.PeriodEvents, len(e.cut))
		for i := range e.cut {
			p := &e.cut[i]
			pes[i] = nulike.PeriodEvents{
				Name: p.Name, RA: p.RA, Dec: p.Dec, Energy: p.Energy,
				MarginalEnergy: mes[i],
			}
		}
		var td *nulike.TimeDependent
		td, err = nulike.NewTimeDependent(src, pes, spatial,
			e.cfg.Policy.SharedNs)
		if err == nil {
			obj = td
			if !e.cfg.Policy.SharedNs {
				names = td.PeriodNames()
			}
		}
	} else {
		var ra, dec, energy []float64
		for i := range e.cut {
			ra = append(ra, e.cut[i].RA...)
			dec = append(dec, e.cut[i].Dec...)
			energy = append(energy, e.cut[i].Energy...)
		}
		obj, err = nulike.NewPointSource(src, ra, dec, energy, spatial, pooled)
	}
	if errors.Is(err, nulike.ErrNoEvents) {
		e.log.Debug().Int("pix", c).Msg("no events in source band, fit skipped")
		return testSkipped
	}
	if err != nil {
		e.log.Warn().Int("pix", c).Err(err).Msg("likelihood setup failed")
		res.Failed[c] = true
		return testFailed
	}

	r, err := e.fitter.Fit(obj)
	if err != nil {
		e.log.Warn().Int("pix", c).Err(err).Msg("fit did not converge")
		res.Failed[c] = true
		return testFailed
	}
	res.TS[c] = r.TS
	res.Gamma[c] = r.Gamma
	res.GammaErr[c] = r.GammaErr
	if names == nil {
		res.Ns[c][0] = r.Ns[0]
		res.NsErr[c][0] = r.NsErr[0]
		return testOK
	}
	for k, name := range names {
		for col, pname := range res.Periods {
			if pname == name {
				res.Ns[c][col] = r.Ns[k]
				res.NsErr[c][col] = r.NsErr[k]
				break
			}
		}
	}
	return testOK
}

// MapScan scans every pixel of a sphere pixelization, or an explicit
// coordinate list carried in the configuration.
type MapScan struct {
	engine
}

// NewMapScan builds a map scan from a validated configuration, an event
// catalog and a reference sample.  The logger is the analysis
// diagnostics sink; it lives for the duration of the analysis and is
// passed on to everything the scan invokes.
func NewMapScan(cfg Config, events *nucat.Catalog, sample *nusim.Sample,
	log zerolog.Logger) (*MapScan, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e, err := newEngine(cfg, events, sample, log)
	if err != nil {
		return nil, err
	}
	return &MapScan{e}, nil
}

// GenerateSources fills the candidate coordinates from the configured
// pixelization, or takes the explicit coordinates if the configuration
// carries them.
func (m *MapScan) GenerateSources() error {
	s := &m.cfg.Sources
	switch {
	case s.Nside > 0:
		if s.Npix > 0 && s.Npix != skygrid.Npix(s.Nside) {
			m.log.Warn().Int("npix", s.Npix).Int("nside", s.Nside).
				Msg("overwriting npix from nside")
		}
		s.Npix = skygrid.Npix(s.Nside)
	case s.Npix > 0:
		nside := int(math.Round(math.Sqrt(float64(s.Npix) / 12)))
		if skygrid.Npix(nside) != s.Npix {
			return fmt.Errorf("nuscan: npix %d is not a pixelization size", s.Npix)
		}
		s.Nside = nside
	default:
		// explicit coordinates from the config.
		m.log.Info().Int("candidates", len(s.RAs)).
			Msg("using provided ra and dec")
		m.ra = s.RAs
		m.dec = s.Decs
		return nil
	}
	m.log.Info().Int("nside", s.Nside).Int("npix", s.Npix).
		Float64("resolution_deg", skygrid.Resol(s.Nside)*180/math.Pi).
		Msg("generating sources")
	m.ra = make([]float64, s.Npix)
	m.dec = make([]float64, s.Npix)
	for p := 0; p < s.Npix; p++ {
		colat, lon, err := skygrid.PixCenter(s.Nside, p)
		if err != nil {
			return err
		}
		eq := nuastro.EquaFromSpherical(colat, lon)
		m.ra[p], m.dec[p] = eq.RA.Rad(), eq.Dec.Rad()
	}
	return nil
}

// PerformScan generates candidates if GenerateSources has not run, then
// runs the scan.
func (m *MapScan) PerformScan() (*Results, error) {
	if len(m.ra) == 0 {
		if err := m.GenerateSources(); err != nil {
			return nil, err
		}
	}
	return m.engine.PerformScan()
}

// PointScan scans an explicit, caller-supplied coordinate list.
type PointScan struct {
	engine
}

// NewPointScan builds a point list scan.  ra and dec are parallel
// arrays of candidate coordinates in radians.
func NewPointScan(cfg Config, events *nucat.Catalog, sample *nusim.Sample,
	ra, dec []float64, log zerolog.Logger) (*PointScan, error) {

	if len(ra) == 0 || len(ra) != len(dec) {
		return nil, fmt.Errorf(
			"nuscan: point list needs equal, non-empty ra/dec, have %d/%d",
			len(ra), len(dec))
	}
	// record the coordinates in the configuration so WriteConfig
	// reproduces the analysis.
	cfg.Sources = SourcesConfig{RAs: ra, Decs: dec}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e, err := newEngine(cfg, events, sample, log)
	if err != nil {
		return nil, err
	}
	e.ra, e.dec = ra, dec
	return &PointScan{e}, nil
}
