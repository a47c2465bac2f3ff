package equilibrium

import (
	"github.com/impulse-rocketry/libpropelleval/thermo"

	"github.com/impulse-rocketry/libpropelleval/caseio"
)

// finalize computes the bulk thermodynamic properties from the
// converged state (§4.4.4) in kJ/kg and kJ/(kg*K), then leaves T/P in
// place for DerivativeSolver, which the caller runs afterwards (for
// example propelleval.ComputeEquilibrium).
func finalize(c *caseio.Case, db *thermo.DB, T, P float64) {
	n := c.Product.NGasTotal()
	var h, s float64
	for k, nk := range c.Product.NGas {
		if nk <= 0 {
			continue
		}
		spIdx := c.Product.GasSpecies[k]
		h += nk * db.Enthalpy0(spIdx, T)
		const barPerAtm = 1.01325
		s += nk * (db.Entropy0(spIdx, T) - logRatio(nk, n) - logf(P*barPerAtm))
	}
	for i, nc := range c.Product.NCond {
		if nc <= 0 {
			continue
		}
		spIdx := c.Product.CondSpecies[i]
		h += nc * db.Enthalpy0(spIdx, T)
		s += nc * db.Entropy0(spIdx, T)
	}

	// h, s are dimensionless molar sums per gram of mixture; R*T turns
	// h into J/g, which is numerically identical to kJ/kg.
	c.Properties.T = T
	c.Properties.P = P
	c.Properties.H = h * thermo.R * T
	c.Properties.S = s * thermo.R
	c.Properties.G = c.Properties.H - T*c.Properties.S
	c.Properties.U = c.Properties.H - thermo.R*T*n
	total := n + sumCond(c.Product.NCond)
	if total > 0 {
		c.Properties.M = 1.0 / total
	}
}

func sumCond(nc []float64) float64 {
	var s float64
	for _, v := range nc {
		s += v
	}
	return s
}
