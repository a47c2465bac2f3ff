// Package assemble builds the reduced Gordon-McBride matrix shared by
// TP/HP/SP equilibrium solving and by the two derivative systems
// (§4.3). Unknowns are ordered pi_j (one per element), then Delta n_k
// (one per active condensed species), then Delta ln n, then — for
// HP/SP only — Delta ln T. The two derivative solves use the TP-sized
// system (no Delta ln T unknown).
package assemble

import (
	"github.com/cpmech/gosl/la"

	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// Problem selects which per-problem right-hand side Equilibrium
// builds.
type Problem int

const (
	TP Problem = iota
	HP
	SP
)

// RowsFor returns E, Nc, roff and the total system size for a case
// and problem (roff=1 for TP, 2 for HP/SP).
func RowsFor(c *caseio.Case, prob Problem) (E, Nc, roff, n int) {
	E = len(c.Product.Elements)
	Nc = len(c.Product.CondSpecies)
	roff = 1
	if prob != TP {
		roff = 2
	}
	return E, Nc, roff, E + Nc + roff
}

// BuildElementGasStoich fills c.Product.A[j][k]: the stoichiometric
// coefficient of element j (c.Product.Elements[j]) in gas species k
// (c.Product.GasSpecies[k]), per §4.2.
func BuildElementGasStoich(c *caseio.Case, db *thermo.DB) {
	E := len(c.Product.Elements)
	Ng := len(c.Product.GasSpecies)
	c.Product.A = la.MatAlloc(E, Ng)
	for j, el := range c.Product.Elements {
		for k, spIdx := range c.Product.GasSpecies {
			sp := db.Species[spIdx]
			c.Product.A[j][k] = coefOf(sp, el)
		}
	}
}

func coefOf(sp thermo.Species, el int) float64 {
	for _, ec := range sp.Formula {
		if ec.Element == el {
			return ec.Coef
		}
	}
	return 0
}

// ElementCondensedCoef returns the stoichiometric coefficient of
// element index j (into c.Product.Elements) in the condensed species
// at local index i (into c.Product.CondSpecies).
func ElementCondensedCoef(c *caseio.Case, db *thermo.DB, j, i int) float64 {
	el := c.Product.Elements[j]
	sp := db.Species[c.Product.CondSpecies[i]]
	return coefOf(sp, el)
}

// Common builds the (E+Nc+roff)-square common block (§4.3): the
// upper-left E x E block, element<->condensed coupling, the
// element<->ln-n column/row, and — when roff==2 — the element/cond/ln-n
// coupling to Delta ln T via species enthalpies H0_k(T), used by the
// HP/SP equilibrium system. The derivative solves (§4.5) reuse the
// roff==1 block unchanged. The condensed-condensed block, the
// condensed<->ln-n entries and the ln-n diagonal are zero.
func Common(c *caseio.Case, db *thermo.DB, T float64, roff int) [][]float64 {
	E, Nc, _, n := RowsFor(c, problemForRoff(roff))
	M := la.MatAlloc(n, n)

	gasN := c.Product.NGas

	for j := 0; j < E; j++ {
		for i := 0; i < E; i++ {
			var sum float64
			for k, nk := range gasN {
				sum += c.Product.A[j][k] * c.Product.A[i][k] * nk
			}
			M[j][i] = sum
		}
		for i := 0; i < Nc; i++ {
			v := ElementCondensedCoef(c, db, j, i)
			M[j][E+i] = v
			M[E+i][j] = v
		}
		var colLnN float64
		for k, nk := range gasN {
			colLnN += c.Product.A[j][k] * nk
		}
		M[j][E+Nc] = colLnN
		M[E+Nc][j] = colLnN
	}
	// sum_k n_k - n, which is zero because n is NGasTotal() itself.
	M[E+Nc][E+Nc] = 0

	if roff == 2 {
		tCol := E + Nc + 1
		for j := 0; j < E; j++ {
			var v float64
			for k, nk := range gasN {
				v += c.Product.A[j][k] * nk * db.Enthalpy0(c.Product.GasSpecies[k], T)
			}
			M[j][tCol] = v
			M[tCol][j] = v
		}
		for i := 0; i < Nc; i++ {
			v := db.Enthalpy0(c.Product.CondSpecies[i], T)
			M[E+i][tCol] = v
			M[tCol][E+i] = v
		}
		var lnNT, diag float64
		for k, nk := range gasN {
			h := db.Enthalpy0(c.Product.GasSpecies[k], T)
			lnNT += nk * h
			diag += nk*h*h + nk*db.Cp0(c.Product.GasSpecies[k], T)
		}
		M[E+Nc][tCol] = lnNT
		M[tCol][E+Nc] = lnNT
		M[tCol][tCol] = diag
	}
	return M
}

func problemForRoff(roff int) Problem {
	if roff == 1 {
		return TP
	}
	return HP
}
