// Public domain.

// Package nufit drives a numerical minimizer over a point source
// likelihood to obtain best-fit parameters, their uncertainties and the
// test statistic.
//
// The minimizer is a black box: nufit defines only the objective
// (−logL, with quadratic penalties holding the parameters in their
// physical bounds) and consumes converged parameter values and status.
package nufit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/soniakeys/nuscan/internal/nulike"
)

// penalty slope for parameters outside their bounds.  steep enough that
// the simplex returns to the feasible region within a few steps.
const penalty = 1e8

// Fitter holds the fit bounds and starting point.  The zero value is not
// usable; call New.
type Fitter struct {
	GammaMin, GammaMax float64 // spectral index bounds
	Gamma0             float64 // starting index
	Ns0                float64 // starting signal count per component
}

// New returns a Fitter with the standard bounds: γ in [1, 4], started
// at 2, signal counts started at 1.
func New() *Fitter {
	return &Fitter{GammaMin: 1, GammaMax: 4, Gamma0: 2, Ns0: 1}
}

// Result holds one converged fit.
//
// Ns and NsErr have one entry per signal count component of the
// objective (one for time-integrated likelihoods, one per period for
// period-resolved ones).  TS is the test statistic
//
//	TS = 2·(logL(ns*, γ*) − logL(0, γ_bg))
//
// clamped at 0 against round-off; it is non-negative by construction
// since the null hypothesis lies inside the search domain.  Parameter
// errors are taken from the inverse Hessian of −logL at the optimum;
// when the Hessian is not positive definite (typically a best fit pinned
// at ns = 0) the errors are reported as 0, never fabricated.
type Result struct {
	Ns       []float64
	NsErr    []float64
	Gamma    float64
	GammaErr float64
	LogL     float64
	TS       float64
}

// Fit maximizes the likelihood subject to 0 ≤ ns_k ≤ NsMax(k) and
// GammaMin ≤ γ ≤ GammaMax.
//
// A non-converged minimization returns a non-nil error and no Result;
// it must not be conflated with a valid low test statistic.  Objectives
// with zero events are the caller's responsibility to never pass here.
func (f *Fitter) Fit(obj nulike.Objective) (Result, error) {
	if obj.N() == 0 {
		return Result{}, fmt.Errorf("nufit: objective has no events")
	}
	k := obj.NumNs()
	dim := k + 1

	// x = [ns_0 … ns_k-1, γ].  the objective clamps into bounds and adds
	// a quadratic penalty so the minimizer itself stays unconstrained.
	fn := func(x []float64) float64 {
		ns := make([]float64, k)
		var pen float64
		for i := 0; i < k; i++ {
			ns[i], pen = clamp(x[i], 0, obj.NsMax(i), pen)
		}
		var gamma float64
		gamma, pen = clamp(x[k], f.GammaMin, f.GammaMax, pen)
		return -obj.LogL(ns, gamma) + pen
	}

	x0 := make([]float64, dim)
	for i := 0; i < k; i++ {
		x0[i] = math.Min(f.Ns0, obj.NsMax(i))
	}
	x0[k] = f.Gamma0

	res, err := optimize.Minimize(optimize.Problem{Func: fn}, x0, nil,
		&optimize.NelderMead{})
	if err != nil {
		return Result{}, fmt.Errorf("nufit: fit did not converge: %w", err)
	}
	if res.Status == optimize.Failure {
		return Result{}, fmt.Errorf("nufit: fit did not converge: %s", res.Status)
	}

	r := Result{Ns: make([]float64, k), NsErr: make([]float64, k)}
	for i := 0; i < k; i++ {
		r.Ns[i], _ = clamp(res.X[i], 0, obj.NsMax(i), 0)
	}
	r.Gamma, _ = clamp(res.X[k], f.GammaMin, f.GammaMax, 0)

	r.LogL = obj.LogL(r.Ns, r.Gamma)
	if ts := 2 * (r.LogL - obj.NullLogL()); ts > 0 {
		r.TS = ts
	}

	// standard errors from the covariance estimate at the optimum.
	hess := mat.NewSymDense(dim, nil)
	fd.Hessian(hess, fn, res.X, nil)
	var chol mat.Cholesky
	if chol.Factorize(hess) {
		var cov mat.SymDense
		if chol.InverseTo(&cov) == nil {
			for i := 0; i < k; i++ {
				r.NsErr[i] = sqrtNonNeg(cov.At(i, i))
			}
			r.GammaErr = sqrtNonNeg(cov.At(k, k))
		}
	}
	return r, nil
}

func clamp(x, lo, hi, pen float64) (float64, float64) {
	if x < lo {
		d := lo - x
		return lo, pen + penalty*d*d
	}
	if x > hi {
		d := x - hi
		return hi, pen + penalty*d*d
	}
	return x, pen
}

func sqrtNonNeg(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}
