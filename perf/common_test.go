package perf

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/impulse-rocketry/libpropelleval/product"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

func singleSpeciesProduct() (*product.Product, *thermo.DB) {
	n2 := thermo.Species{
		Name: "N2", Phase: thermo.Gas,
		Formula: []thermo.ElementCoef{{Element: 7, Coef: 2}},
		Intervals: []thermo.Interval{
			{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 3.5, 0, 0, 0, 0}, B: [2]float64{0, 4}},
		},
	}
	db := thermo.NewDB([]thermo.Species{n2})
	p := &product.Product{
		GasSpecies: []int{0},
		NGas:       []float64{0.0357}, // ~1/28 mol per gram
	}
	return p, db
}

func Test_clone_product_is_independent(tst *testing.T) {
	chk.PrintTitle("cloneProduct deep-copies slice fields")

	p, _ := singleSpeciesProduct()
	p.A = [][]float64{{1}}
	cp := cloneProduct(*p)
	cp.NGas[0] = 99
	cp.A[0][0] = 99

	chk.Float64(tst, "original NGas untouched", 1e-15, p.NGas[0], 0.0357)
	chk.Float64(tst, "original A untouched", 1e-15, p.A[0][0], 1.0)
}

func Test_newton_temp_for_entropy_converges(tst *testing.T) {
	chk.PrintTitle("newtonTempForEntropy finds T matching its own entropy at T0")

	p, db := singleSpeciesProduct()
	T0 := 2500.0
	target := frozenEntropy(p, db, T0, 10.0)

	got := newtonTempForEntropy(p, db, target, 10.0, 2000.0)
	chk.Float64(tst, "recovered T", 1e-3, got, T0)
}
