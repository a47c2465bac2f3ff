package equilibrium

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/impulse-rocketry/libpropelleval/assemble"
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// coOxidationSystem is a small, well-behaved CO/O2/CO2 gas system: one
// reactant supplying carbon and oxygen, three candidate gas species,
// no condensed phase.
func coOxidationSystem() (*caseio.Case, *thermo.DB, *propellant.DB) {
	source := propellant.Reactant{
		Name: "CO2-source",
		Formula: []propellant.ElementCoef{
			{Element: 6, Coef: 1}, // C
			{Element: 8, Coef: 2}, // O
		},
		Heat: -8940, // J/g, roughly CO2's formation heat per gram
	}
	pdb := propellant.NewDB([]propellant.Reactant{source})

	co := thermo.Species{
		Name: "CO", Phase: thermo.Gas,
		Formula:   []thermo.ElementCoef{{Element: 6, Coef: 1}, {Element: 8, Coef: 1}},
		Intervals: []thermo.Interval{{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 3.5, 0, 0, 0, 0}, B: [2]float64{-13300, 3.5}}},
	}
	co2 := thermo.Species{
		Name: "CO2", Phase: thermo.Gas,
		Formula:   []thermo.ElementCoef{{Element: 6, Coef: 1}, {Element: 8, Coef: 2}},
		Intervals: []thermo.Interval{{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 4.5, 0, 0, 0, 0}, B: [2]float64{-47300, 2.0}}},
	}
	o2 := thermo.Species{
		Name: "O2", Phase: thermo.Gas,
		Formula:   []thermo.ElementCoef{{Element: 8, Coef: 2}},
		Intervals: []thermo.Interval{{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 3.5, 0, 0, 0, 0}, B: [2]float64{0, 5.0}}},
	}
	db := thermo.NewDB([]thermo.Species{co, co2, o2})

	c := &caseio.Case{
		Composition: caseio.Composition{
			Components: []caseio.Component{{ReactantIndex: 0, Moles: 1}},
		},
	}
	return c, db, pdb
}

func Test_solve_tp_conserves_elements(tst *testing.T) {
	chk.PrintTitle("TP equilibrium solve conserves the element balance")

	c, db, pdb := coOxidationSystem()
	c.Composition.Resolve(pdb)

	opt := Options{Problem: assemble.TP, P: 10, T: 3000}
	if err := Solve(c, db, pdb, opt); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if !c.Product.IsEquilibrium {
		tst.Fatal("expected IsEquilibrium=true")
	}

	for j, el := range c.Product.Elements {
		var gasSum float64
		for k, nk := range c.Product.NGas {
			gasSum += c.Product.A[j][k] * nk
		}
		want := c.Composition.ElementBalance[el]
		chk.Float64(tst, "element balance conserved", 1e-6, gasSum, want)
	}

	// sanity: none of the mole numbers should have gone negative.
	for k, nk := range c.Product.NGas {
		if nk < 0 {
			tst.Fatalf("species %d has negative moles: %v", k, nk)
		}
	}
}
