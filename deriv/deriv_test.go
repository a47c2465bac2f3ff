package deriv

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

func coCombustionCase() (*caseio.Case, *thermo.DB) {
	co := thermo.Species{
		Name: "CO", Phase: thermo.Gas,
		Formula: []thermo.ElementCoef{{Element: 6, Coef: 1}, {Element: 8, Coef: 1}},
		Intervals: []thermo.Interval{
			{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 3.5, 0, 0, 0, 0}, B: [2]float64{-14000, 3}},
		},
	}
	co2 := thermo.Species{
		Name: "CO2", Phase: thermo.Gas,
		Formula: []thermo.ElementCoef{{Element: 6, Coef: 1}, {Element: 8, Coef: 2}},
		Intervals: []thermo.Interval{
			{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 4.5, 0, 0, 0, 0}, B: [2]float64{-48000, 2}},
		},
	}
	db := thermo.NewDB([]thermo.Species{co, co2})

	c := &caseio.Case{}
	c.Product.Elements = []int{6, 8}
	c.Product.GasSpecies = []int{db.Find("CO"), db.Find("CO2")}
	c.Product.NGas = []float64{0.02, 0.01}
	c.Product.A = [][]float64{
		{1, 1}, // carbon in CO, CO2
		{1, 2}, // oxygen in CO, CO2
	}
	return c, db
}

func Test_solve_produces_physically_sane_derivatives(tst *testing.T) {
	chk.PrintTitle("DerivativeSolver yields a sound, positive Cp and real sound speed")

	c, db := coCombustionCase()
	if err := Solve(c, db, 3000.0, 10.0); err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	if c.Properties.Cp <= 0 {
		tst.Fatalf("expected positive Cp, got %v", c.Properties.Cp)
	}
	if c.Properties.DLnVDLnP >= 0 {
		tst.Fatalf("expected (d ln V/d ln P)_T < 0, got %v", c.Properties.DLnVDLnP)
	}
	if math.IsNaN(c.Properties.SoundSpeed) || c.Properties.SoundSpeed <= 0 {
		tst.Fatalf("expected a finite positive sound speed, got %v", c.Properties.SoundSpeed)
	}
	if c.Properties.Gamma <= 1 {
		tst.Fatalf("expected gamma_s > 1, got %v", c.Properties.Gamma)
	}
}
