// Package equilibrium implements the element/species indexers and the
// outer iteration that drives MatrixAssembler + LinearSolver to a
// converged composition (§4.2, §4.4).
package equilibrium

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/impulse-rocketry/libpropelleval/assemble"
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/internal/rlog"
	"github.com/impulse-rocketry/libpropelleval/linsolve"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// Tuning constants (§4.4).
const (
	ConcTol      = 1e-8
	LogConcTol   = -18.420681 // ln(1e-8)
	ConvTol      = 5e-6
	IterationMax = 100
	InitialTHPSP = 3800.0
)

// Options carries the per-run inputs to Solve beyond the Case itself.
type Options struct {
	Problem assemble.Problem
	P       float64 // atm
	T       float64 // K; fixed value for TP, initial guess for HP/SP (0 => InitialTHPSP)
	Target  float64 // H (J/g) for HP, S (J/(g*K)) for SP; ignored for TP
	Log     *logrus.Entry
}

// Solve drives the outer iteration of §4.4 to a converged equilibrium
// state, populating c.Product, c.Iter and c.Properties.
func Solve(c *caseio.Case, db *thermo.DB, pdb *propellant.DB, opt Options) error {
	log := rlog.Or(opt.Log)

	if err := ListElements(c, pdb); err != nil {
		return err
	}
	firstPass := !c.Product.SpeciesListed
	if err := ListProducts(c, db); err != nil {
		return err
	}
	if firstPass {
		// first equilibrium pass: condensed species deferred (§4.4.1)
		c.Product.CondSpecies = nil
		c.Product.NCond = nil
	}
	BuildElementGasStoich(c, db)

	T := opt.T
	if opt.Problem != assemble.TP && T == 0 {
		T = InitialTHPSP
	}

	reinsertedGas := false
	zeroedGas := make(map[int]bool)

restart:
	for {
		iter := 0
		for iter < IterationMax {
			E, Nc, roff, _ := assemble.RowsFor(c, opt.Problem)
			M := assemble.Common(c, db, T, roff)
			rhs := assemble.EquilibriumRHS(c, db, opt.Problem, T, opt.P, opt.Target)

			sol, err := linsolve.Solve(M, rhs)
			if err != nil {
				recovered := recoverSingular(c, db, zeroedGas, &reinsertedGas)
				if !recovered {
					return &SingularError{Recovered: false}
				}
				log.Debugf("equilibrium: singular matrix, recovered (reinsertedGas=%v)", reinsertedGas)
				continue restart
			}

			d := computeDeltas(c, db, sol, T, opt.P, E, Nc, roff)
			lambda := dampingFactor(c, d)
			applyUpdate(c, d, lambda, roff, &T, zeroedGas)

			if convergedStep(c, d, roff) {
				changed := manageCondensed(c, db, sol, T)
				if changed {
					log.Debugf("equilibrium: condensed set changed, restarting")
					continue restart
				}
				c.Product.IsEquilibrium = true
				finalize(c, db, T, opt.P)
				return nil
			}
			iter++
		}
		return &NoConvergenceError{Stage: StageEquilibrium}
	}
}

// deltas holds the per-iteration Newton corrections (§3 IterationInfo,
// §4.4.c).
type deltas struct {
	Pi     []float64 // E
	DNk    []float64 // Nc
	DLnN   float64
	DLnT   float64
	DLnNj  []float64 // Ng
	LnN    float64
	N      float64
}

func computeDeltas(c *caseio.Case, db *thermo.DB, sol []float64, T, P float64, E, Nc, roff int) deltas {
	d := deltas{
		Pi:    append([]float64(nil), sol[:E]...),
		DNk:   append([]float64(nil), sol[E:E+Nc]...),
		DLnN:  sol[E+Nc],
		DLnNj: make([]float64, len(c.Product.GasSpecies)),
	}
	if roff == 2 {
		d.DLnT = sol[E+Nc+1]
	}
	n := c.Product.NGasTotal()
	for k, nk := range c.Product.NGas {
		var mu float64
		if nk > 0 {
			mu = db.ChemPotential(c.Product.GasSpecies[k], T, nk, n, P)
		}
		var piSum float64
		for j := range d.Pi {
			piSum += d.Pi[j] * c.Product.A[j][k]
		}
		h := 0.0
		if roff == 2 {
			h = db.Enthalpy0(c.Product.GasSpecies[k], T)
		}
		d.DLnNj[k] = -mu + piSum + d.DLnN + h*d.DLnT
	}
	return d
}

// dampingFactor implements §4.4.d.
func dampingFactor(c *caseio.Case, d deltas) float64 {
	lambda1 := math.Max(math.Abs(d.DLnT), math.Abs(d.DLnN))
	lambda2 := math.Inf(1)
	n := c.Product.NGasTotal()
	lnN := math.Log(n)
	for k, dv := range d.DLnNj {
		if dv <= 0 {
			continue
		}
		nk := c.Product.NGas[k]
		var lnRatio float64
		if nk > 0 {
			lnRatio = math.Log(nk / n)
		} else {
			lnRatio = LogConcTol - 1
		}
		if lnRatio <= LogConcTol {
			lnNk := c.Product.LnNGas[k]
			denom := dv - d.DLnN
			if denom != 0 {
				bound := math.Abs((-lnNk + lnN - 9.2103404) / denom)
				if bound < lambda2 {
					lambda2 = bound
				}
			}
		} else if dv > lambda1 {
			lambda1 = dv
		}
	}
	if lambda1 > 0 {
		lambda1 = 2.0 / (5.0 * lambda1)
	} else {
		lambda1 = 1
	}
	if lambda2 > 1 {
		lambda2 = 1
	}
	return math.Min(1, math.Min(lambda1, lambda2))
}

// applyUpdate implements §4.4.e.
func applyUpdate(c *caseio.Case, d deltas, lambda float64, roff int, T *float64, zeroedGas map[int]bool) {
	n := c.Product.NGasTotal()
	lnN := math.Log(n)
	for k := range c.Product.NGas {
		lnNk := c.Product.LnNGas[k] + lambda*d.DLnNj[k]
		if lnNk-lnN <= LogConcTol {
			c.Product.NGas[k] = 0
			c.Product.LnNGas[k] = lnNk
			zeroedGas[k] = true
		} else {
			c.Product.NGas[k] = math.Exp(lnNk)
			c.Product.LnNGas[k] = lnNk
		}
	}
	for k := range c.Product.NCond {
		c.Product.NCond[k] += lambda * d.DNk[k]
		if c.Product.NCond[k] < 0 {
			c.Product.NCond[k] = 0
		}
	}
	if roff == 2 {
		*T = *T * math.Exp(lambda*d.DLnT)
	}
	lnN += lambda * d.DLnN
	c.Iter.LnN = lnN
	c.Iter.N = math.Exp(lnN)
	c.Iter.SumN = c.Product.NTotal()
	c.Iter.DLnN = d.DLnN
	c.Iter.DLnT = d.DLnT
	c.Iter.DLnNj = d.DLnNj
	c.Iter.DNk = d.DNk
}

// convergedStep implements §4.4.f.
func convergedStep(c *caseio.Case, d deltas, roff int) bool {
	sumN := c.Product.NTotal()
	if sumN == 0 {
		return false
	}
	for k, nk := range c.Product.NGas {
		if nk*math.Abs(d.DLnNj[k])/sumN > ConvTol {
			return false
		}
	}
	for _, dn := range d.DNk {
		if math.Abs(dn)/sumN > ConvTol {
			return false
		}
	}
	n := c.Product.NGasTotal()
	if n*math.Abs(d.DLnN)/sumN > ConvTol {
		return false
	}
	if roff == 2 && math.Abs(d.DLnT) > 1e-4 {
		return false
	}
	return true
}
