package assemble

import (
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// EquilibriumRHS builds the right-hand side of the equilibrium system
// for the given problem (§4.3): element-balance residuals, condensed
// chemical-potential residuals, the total-moles identity residual
// and, for HP/SP, the energy/entropy constraint residual.
//
// target carries H (J/g, divided by R*T inside) for HP or S
// (J/(g*K), divided by R inside) for SP; it is ignored for TP.
func EquilibriumRHS(c *caseio.Case, db *thermo.DB, prob Problem, T, P, target float64) []float64 {
	E, Nc, roff, n := RowsFor(c, prob)
	rhs := make([]float64, n)
	gasN := c.Product.NGas

	mu := make([]float64, len(gasN))
	for k, nk := range gasN {
		if nk <= 0 {
			continue
		}
		mu[k] = db.ChemPotential(c.Product.GasSpecies[k], T, nk, c.Product.NGasTotal(), P)
	}

	for j := 0; j < E; j++ {
		el := c.Product.Elements[j]
		var gasSum, condSum, muSum float64
		for k, nk := range gasN {
			gasSum += c.Product.A[j][k] * nk
			muSum += c.Product.A[j][k] * nk * mu[k]
		}
		for i, nc := range c.Product.NCond {
			condSum += ElementCondensedCoef(c, db, j, i) * nc
		}
		bj := c.Composition.ElementBalance[el]
		rhs[j] = bj - gasSum - condSum + muSum
	}
	for i := range c.Product.NCond {
		rhs[E+i] = db.Gibbs0(c.Product.CondSpecies[i], T)
	}
	var lnNRes float64
	for k, nk := range gasN {
		lnNRes += nk * mu[k]
	}
	rhs[E+Nc] = lnNRes

	if roff == 2 {
		rhs[E+Nc+1] = energyOrEntropyResidual(c, db, prob, T, P, target)
	}
	return rhs
}

// energyOrEntropyResidual returns the RHS term for the energy
// (HP) or entropy (SP) constraint row: the (dimensionless) difference
// between the target and the current state's enthalpy/entropy.
func energyOrEntropyResidual(c *caseio.Case, db *thermo.DB, prob Problem, T, P, target float64) float64 {
	gasN := c.Product.NGas
	switch prob {
	case HP:
		var hCur float64
		for k, nk := range gasN {
			hCur += nk * db.Enthalpy0(c.Product.GasSpecies[k], T)
		}
		for i, nc := range c.Product.NCond {
			hCur += nc * db.Enthalpy0(c.Product.CondSpecies[i], T)
		}
		targetDimless := target / (thermo.R * T)
		return targetDimless - hCur
	case SP:
		n := c.Product.NGasTotal()
		var sCur float64
		for k, nk := range gasN {
			if nk <= 0 {
				continue
			}
			const barPerAtm = 1.01325
			sCur += nk * (db.Entropy0(c.Product.GasSpecies[k], T) - logRatio(nk, n) - logf(P*barPerAtm))
		}
		for i, nc := range c.Product.NCond {
			sCur += nc * db.Entropy0(c.Product.CondSpecies[i], T)
		}
		targetDimless := target / thermo.R
		return targetDimless - sCur
	default:
		return 0
	}
}

// TDerivRHS builds the rightmost column for the T-derivative system
// (§4.5): rhs_element_j = -sum_k Ajk*nk*H0_k; rhs_condensed_i =
// -H0_cond_i; rhs_lnN = -sum_k nk*H0_k.
func TDerivRHS(c *caseio.Case, db *thermo.DB, T float64) []float64 {
	E, Nc, _, n := RowsFor(c, TP)
	rhs := make([]float64, n)
	gasN := c.Product.NGas
	for j := 0; j < E; j++ {
		var sum float64
		for k, nk := range gasN {
			sum += c.Product.A[j][k] * nk * db.Enthalpy0(c.Product.GasSpecies[k], T)
		}
		rhs[j] = -sum
	}
	for i := range c.Product.NCond {
		rhs[E+i] = -db.Enthalpy0(c.Product.CondSpecies[i], T)
	}
	var lnN float64
	for k, nk := range gasN {
		lnN += nk * db.Enthalpy0(c.Product.GasSpecies[k], T)
	}
	rhs[E+Nc] = -lnN
	return rhs
}

// PDerivRHS builds the rightmost column for the P-derivative system
// (§4.5): rhs_element_j = +sum_k Ajk*nk; rhs_cond = 0; rhs_lnN =
// sum_k nk.
func PDerivRHS(c *caseio.Case) []float64 {
	E, Nc, _, n := RowsFor(c, TP)
	rhs := make([]float64, n)
	gasN := c.Product.NGas
	for j := 0; j < E; j++ {
		var sum float64
		for k, nk := range gasN {
			sum += c.Product.A[j][k] * nk
		}
		rhs[j] = sum
	}
	_ = Nc // condensed rows stay zero
	var lnN float64
	for _, nk := range gasN {
		lnN += nk
	}
	rhs[E+Nc] = lnN
	return rhs
}
