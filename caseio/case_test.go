package caseio

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/impulse-rocketry/libpropelleval/propellant"
)

func rp1AndLox() *propellant.DB {
	rp1 := propellant.Reactant{
		Name: "RP-1",
		Formula: []propellant.ElementCoef{
			{Element: 6, Coef: 1}, // C
			{Element: 1, Coef: 2}, // H
		},
		Heat: -24.7,
	}
	lox := propellant.Reactant{
		Name:    "O2(L)",
		Formula: []propellant.ElementCoef{{Element: 8, Coef: 2}},
		Heat:    -12.97,
	}
	return propellant.NewDB([]propellant.Reactant{rp1, lox})
}

func Test_resolve_computes_mass_and_balance(tst *testing.T) {
	chk.PrintTitle("Composition.Resolve computes TotalMass and per-element balance")

	pdb := rp1AndLox()
	c := Composition{
		Components: []Component{
			{ReactantIndex: 0, Moles: 1},
			{ReactantIndex: 1, Moles: 1},
		},
	}
	c.Resolve(pdb)

	rp1Weight := pdb.Reactants[0].Weight()
	loxWeight := pdb.Reactants[1].Weight()
	wantMass := rp1Weight + loxWeight
	chk.Float64(tst, "TotalMass", 1e-9, c.TotalMass, wantMass)

	wantC := 1.0 / wantMass
	chk.Float64(tst, "carbon balance", 1e-12, c.ElementBalance[6], wantC)

	wantO := 2.0 / wantMass
	chk.Float64(tst, "oxygen balance", 1e-12, c.ElementBalance[8], wantO)
}

func Test_heat_of_formation_is_mass_weighted(tst *testing.T) {
	chk.PrintTitle("HeatOfFormation mass-weights each reactant's heat")

	pdb := rp1AndLox()
	c := Composition{
		Components: []Component{
			{ReactantIndex: 0, Moles: 1},
			{ReactantIndex: 1, Moles: 1},
		},
	}
	c.Resolve(pdb)

	rp1 := pdb.Reactants[0]
	lox := pdb.Reactants[1]
	want := (rp1.Weight()*rp1.Heat + lox.Weight()*lox.Heat) / c.TotalMass
	chk.Float64(tst, "HeatOfFormation", 1e-9, c.HeatOfFormation(pdb), want)
}
