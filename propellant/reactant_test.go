package propellant

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/impulse-rocketry/libpropelleval/thermo"
)

func Test_weight_sums_formula(tst *testing.T) {
	chk.PrintTitle("reactant weight from formula")

	h2, _ := thermo.AtomicNumber("H")
	o, _ := thermo.AtomicNumber("O")
	water := Reactant{
		Name: "H2O(L)",
		Formula: []ElementCoef{
			{Element: h2, Coef: 2},
			{Element: o, Coef: 1},
		},
	}
	want := 2*thermo.AtomicWeight(h2) + thermo.AtomicWeight(o)
	chk.Float64(tst, "Weight", 1e-9, water.Weight(), want)
}

func Test_has_element(tst *testing.T) {
	chk.PrintTitle("HasElement looks up nonzero coefficients only")

	c, _ := thermo.AtomicNumber("C")
	n, _ := thermo.AtomicNumber("N")
	r := Reactant{Formula: []ElementCoef{{Element: c, Coef: 1}, {Element: n, Coef: 0}}}
	if !r.HasElement(c) {
		tst.Fatal("expected HasElement(C) to be true")
	}
	if r.HasElement(n) {
		tst.Fatal("expected HasElement(N) to be false: coefficient is zero")
	}
}

func Test_db_find(tst *testing.T) {
	chk.PrintTitle("DB.Find resolves by name, -1 when absent")

	db := NewDB([]Reactant{
		{Name: "RP-1"},
		{Name: "O2(L)"},
	})
	if db.Find("O2(L)") != 1 {
		tst.Fatal("expected O2(L) at index 1")
	}
	if db.Find("N2H4") != -1 {
		tst.Fatal("expected -1 for unknown reactant")
	}
}
