package equilibrium

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

func Test_remove_condensed_evicts_nonpositive(tst *testing.T) {
	chk.PrintTitle("removeCondensed evicts species with NCond <= 0")

	carbon := thermo.Species{Name: "C(gr)", Phase: thermo.Condensed, Formula: []thermo.ElementCoef{{Element: 6, Coef: 1}}}
	db := thermo.NewDB([]thermo.Species{carbon})

	c := &caseio.Case{}
	c.Product.CondSpecies = []int{0}
	c.Product.NCond = []float64{-1e-9}

	changed := removeCondensed(c, db, 3000.0)
	if !changed {
		tst.Fatal("expected removeCondensed to report a change")
	}
	chk.IntAssert(len(c.Product.CondSpecies), 0)
}

func Test_include_condensed_picks_most_negative_potential(tst *testing.T) {
	chk.PrintTitle("includeCondensed adds the species with the most negative (G0-pi.a)")

	// decoy: Gibbs0 = 0 at any T, so Gibbs0 - pi.a = -10 at pi = 10.
	decoy := thermo.Species{
		Name: "C(L)", Phase: thermo.Condensed,
		Formula:   []thermo.ElementCoef{{Element: 6, Coef: 1}},
		Intervals: []thermo.Interval{{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 0, 0, 0, 0, 0}, B: [2]float64{0, 0}}},
	}
	// carbon: Gibbs0(1000) = 1 - ln(1000) ~ -5.91, so Gibbs0 - pi.a ~ -15.91.
	carbon := thermo.Species{
		Name: "C(gr)", Phase: thermo.Condensed,
		Formula:   []thermo.ElementCoef{{Element: 6, Coef: 1}},
		Intervals: []thermo.Interval{{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 1, 0, 0, 0, 0}, B: [2]float64{0, 0}}},
	}
	db := thermo.NewDB([]thermo.Species{decoy, carbon})

	c := &caseio.Case{}
	c.Product.Elements = []int{6}

	// pi such that Gibbs0 - pi.a is negative for both: the more
	// negative one (carbon) should be added.
	sol := []float64{10.0}
	added := includeCondensed(c, db, sol, 1000.0)
	if !added {
		tst.Fatal("expected includeCondensed to add a species")
	}
	chk.IntAssert(len(c.Product.CondSpecies), 1)
	chk.IntAssert(c.Product.CondSpecies[0], db.Find("C(gr)"))
}

func Test_contains_int(tst *testing.T) {
	chk.PrintTitle("containsInt membership check")

	xs := []int{3, 7, 11}
	if !containsInt(xs, 7) {
		tst.Fatal("expected 7 to be present")
	}
	if containsInt(xs, 8) {
		tst.Fatal("expected 8 to be absent")
	}
}

func Test_stage_string(tst *testing.T) {
	chk.PrintTitle("Stage.String() names every enumerator")

	chk.String(tst, StageEquilibrium.String(), "equilibrium")
	chk.String(tst, StageThroat.String(), "throat")
	chk.String(tst, StageExit.String(), "exit")
	chk.String(tst, StageTemperature.String(), "temperature")
}
