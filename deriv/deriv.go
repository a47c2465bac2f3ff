// Package deriv implements the DerivativeSolver (§4.5): given a
// converged equilibrium Case, it reuses MatrixAssembler's common
// block with two alternate right-hand sides (temperature and
// pressure) to recover the thermodynamic derivatives and the
// equilibrium heat capacities and sound speed.
package deriv

import (
	"math"

	"github.com/impulse-rocketry/libpropelleval/assemble"
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/linsolve"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// Solve populates c.Properties.DLnVDLnP, DLnVDLnT, Cp, Cv, Gamma and
// SoundSpeed from the Case's already-converged composition at (T, P).
// The Case must have IsEquilibrium set (i.e. equilibrium.Solve has
// already run).
func Solve(c *caseio.Case, db *thermo.DB, T, P float64) error {
	E, Nc, _, _ := assemble.RowsFor(c, assemble.TP)
	M := assemble.Common(c, db, T, 1)

	tRHS := assemble.TDerivRHS(c, db, T)
	tSol, err := linsolve.Solve(M, tRHS)
	if err != nil {
		return err
	}
	dlnVdlnT := 1 + tSol[E+Nc]

	pRHS := assemble.PDerivRHS(c)
	pSol, err := linsolve.Solve(M, pRHS)
	if err != nil {
		return err
	}
	dlnVdlnP := pSol[E+Nc] - 1

	n := c.Product.NGasTotal()

	var cpFrozen float64
	for k, nk := range c.Product.NGas {
		if nk <= 0 {
			continue
		}
		cpFrozen += nk * db.Cp0(c.Product.GasSpecies[k], T)
	}
	for i, nc := range c.Product.NCond {
		if nc <= 0 {
			continue
		}
		cpFrozen += nc * db.Cp0(c.Product.CondSpecies[i], T)
	}

	// Equilibrium shift term: dot the T-derivative solution (pi, dnk,
	// dlnn) against the same coefficients used to build TDerivRHS
	// (RP-1311 §6.4).
	var piShift float64
	for j := 0; j < E; j++ {
		var sum float64
		for k, nk := range c.Product.NGas {
			sum += c.Product.A[j][k] * nk * db.Enthalpy0(c.Product.GasSpecies[k], T)
		}
		piShift += tSol[j] * sum
	}
	var condShift float64
	for i := range c.Product.NCond {
		condShift += tSol[E+i] * db.Enthalpy0(c.Product.CondSpecies[i], T)
	}
	var lnNShift float64
	for k, nk := range c.Product.NGas {
		if nk <= 0 {
			continue
		}
		lnNShift += nk * db.Enthalpy0(c.Product.GasSpecies[k], T)
	}
	lnNShift *= tSol[E+Nc]

	// Reaction term sum_k n_k*(H0_k/RT)^2.
	var hSquared float64
	for k, nk := range c.Product.NGas {
		if nk <= 0 {
			continue
		}
		h := db.Enthalpy0(c.Product.GasSpecies[k], T)
		hSquared += nk * h * h
	}

	cpEqOverR := cpFrozen + piShift + condShift + lnNShift + hSquared
	cp := cpEqOverR * thermo.R

	cv := cp + n*thermo.R*dlnVdlnT*dlnVdlnT/dlnVdlnP
	gamma := -(cp / cv) / dlnVdlnP
	soundSpeed := math.Sqrt(1000 * n * thermo.R * T * gamma)

	c.Properties.DLnVDLnT = dlnVdlnT
	c.Properties.DLnVDLnP = dlnVdlnP
	c.Properties.Cp = cp
	c.Properties.Cv = cv
	c.Properties.Gamma = gamma
	c.Properties.SoundSpeed = soundSpeed
	return nil
}
