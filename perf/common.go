package perf

import (
	"math"

	"github.com/impulse-rocketry/libpropelleval/product"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

const barPerAtm = 1.01325

// cloneProduct deep-copies a converged Product so a trial state (new
// T, P) can be explored without disturbing the source case, e.g. when
// seeding the frozen throat/exit states from the chamber's converged
// composition.
func cloneProduct(p product.Product) product.Product {
	cp := p
	cp.GasSpecies = append([]int(nil), p.GasSpecies...)
	cp.CondSpecies = append([]int(nil), p.CondSpecies...)
	cp.NGas = append([]float64(nil), p.NGas...)
	cp.LnNGas = append([]float64(nil), p.LnNGas...)
	cp.NCond = append([]float64(nil), p.NCond...)
	cp.Elements = append([]int(nil), p.Elements...)
	cp.A = make([][]float64, len(p.A))
	for i, row := range p.A {
		cp.A[i] = append([]float64(nil), row...)
	}
	return cp
}

// frozenCp returns the frozen-composition mixture heat capacity in
// kJ/(kg*K) at temperature T (§4.6: Cp = sum n*Cp0 * R).
func frozenCp(p *product.Product, db *thermo.DB, T float64) float64 {
	var sum float64
	for k, nk := range p.NGas {
		if nk <= 0 {
			continue
		}
		sum += nk * db.Cp0(p.GasSpecies[k], T)
	}
	for i, nc := range p.NCond {
		if nc <= 0 {
			continue
		}
		sum += nc * db.Cp0(p.CondSpecies[i], T)
	}
	return sum * thermo.R
}

// frozenEnthalpy returns the frozen-composition mixture enthalpy in
// kJ/kg at temperature T (pressure-independent for an ideal-gas/pure-
// condensed mixture).
func frozenEnthalpy(p *product.Product, db *thermo.DB, T float64) float64 {
	var sum float64
	for k, nk := range p.NGas {
		if nk <= 0 {
			continue
		}
		sum += nk * db.Enthalpy0(p.GasSpecies[k], T)
	}
	for i, nc := range p.NCond {
		if nc <= 0 {
			continue
		}
		sum += nc * db.Enthalpy0(p.CondSpecies[i], T)
	}
	return sum * thermo.R * T
}

// frozenEntropy returns the frozen-composition mixture entropy in
// kJ/(kg*K) at temperature T and pressure P (atm).
func frozenEntropy(p *product.Product, db *thermo.DB, T, P float64) float64 {
	n := p.NGasTotal()
	var sum float64
	for k, nk := range p.NGas {
		if nk <= 0 {
			continue
		}
		sum += nk * (db.Entropy0(p.GasSpecies[k], T) - math.Log(nk/n) - math.Log(P*barPerAtm))
	}
	for i, nc := range p.NCond {
		if nc <= 0 {
			continue
		}
		sum += nc * db.Entropy0(p.CondSpecies[i], T)
	}
	return sum * thermo.R
}

// newtonTempForEntropy solves S(T,P) = target by Newton iteration on
// ln T with step (target-S)/Cp (§4.6), up to TempIterationMax steps.
// It always returns its best estimate; the outer throat/exit loop
// treats non-convergence as non-fatal (§4.7).
func newtonTempForEntropy(p *product.Product, db *thermo.DB, target, P, T0 float64) float64 {
	T := T0
	for i := 0; i < TempIterationMax; i++ {
		s := frozenEntropy(p, db, T, P)
		cp := frozenCp(p, db, T)
		if cp == 0 {
			break
		}
		dlnT := (target - s) / cp
		T *= math.Exp(dlnT)
		if math.Abs(dlnT) < 1e-8 {
			break
		}
	}
	return T
}
