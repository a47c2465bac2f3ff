package equilibrium

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

func keroseneAndOxygen() (*caseio.Case, *propellant.DB) {
	rp1 := propellant.Reactant{
		Name: "RP-1",
		Formula: []propellant.ElementCoef{
			{Element: 6, Coef: 1}, // C
			{Element: 1, Coef: 2}, // H
		},
	}
	lox := propellant.Reactant{
		Name:    "O2(L)",
		Formula: []propellant.ElementCoef{{Element: 8, Coef: 2}},
	}
	pdb := propellant.NewDB([]propellant.Reactant{rp1, lox})
	c := &caseio.Case{
		Composition: caseio.Composition{
			Components: []caseio.Component{
				{ReactantIndex: 0, Moles: 1},
				{ReactantIndex: 1, Moles: 1.5},
			},
		},
	}
	return c, pdb
}

func Test_list_elements_is_idempotent(tst *testing.T) {
	chk.PrintTitle("ListElements collects distinct atomic numbers once")

	c, pdb := keroseneAndOxygen()
	if err := ListElements(c, pdb); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.IntAssert(len(c.Product.Elements), 3) // C, H, O
	if !c.Product.ElementsListed {
		tst.Fatal("expected ElementsListed=true")
	}

	saved := c.Product.Elements
	if err := ListElements(c, pdb); err != nil {
		tst.Fatalf("unexpected error on second call: %v", err)
	}
	chk.IntAssert(len(c.Product.Elements), len(saved))
}

func Test_list_products_seeds_gas_moles(tst *testing.T) {
	chk.PrintTitle("ListProducts seeds n=0.1/Ng per active gas species")

	c, pdb := keroseneAndOxygen()
	if err := ListElements(c, pdb); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	co := thermo.Species{Name: "CO", Phase: thermo.Gas, Formula: []thermo.ElementCoef{{Element: 6, Coef: 1}, {Element: 8, Coef: 1}}}
	h2o := thermo.Species{Name: "H2O", Phase: thermo.Gas, Formula: []thermo.ElementCoef{{Element: 1, Coef: 2}, {Element: 8, Coef: 1}}}
	carbon := thermo.Species{Name: "C(gr)", Phase: thermo.Condensed, Formula: []thermo.ElementCoef{{Element: 6, Coef: 1}}}
	n2 := thermo.Species{Name: "N2", Phase: thermo.Gas, Formula: []thermo.ElementCoef{{Element: 7, Coef: 2}}} // not covered: excluded
	db := thermo.NewDB([]thermo.Species{co, h2o, carbon, n2})

	if err := ListProducts(c, db); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.IntAssert(len(c.Product.GasSpecies), 2)
	chk.IntAssert(len(c.Product.CondSpecies), 1)
	chk.Float64(tst, "NGas[0]", 1e-15, c.Product.NGas[0], 0.05)
	chk.Float64(tst, "NCond[0]", 1e-15, c.Product.NCond[0], 0.0)
	if !c.Product.SpeciesListed {
		tst.Fatal("expected SpeciesListed=true")
	}
}
