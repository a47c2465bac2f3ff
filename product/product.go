// Package product holds the mutable per-Case state the solvers act
// on: Product (candidate species + current composition),
// IterationInfo (scalar bookkeeping for the outer iteration) and
// Properties (the converged thermodynamic state), per spec §3.
package product

import "math"

// MaxElements bounds the distinct atomic numbers a propellant
// formulation may touch (§3).
const MaxElements = 15

// MaxSpecies bounds the candidate species in either phase partition
// (§3): Ng+Nc <= 400 each state, i.e. each partition independently.
const MaxSpecies = 400

// Product is the fixed-capacity (dynamically sized here, per §9's
// reimplementation note) aggregate of candidate species and their
// current mole numbers.
type Product struct {
	Elements []int // atomic numbers present, len <= MaxElements

	GasSpecies  []int // candidate gas species indexes into thermo.DB
	CondSpecies []int // candidate condensed species indexes into thermo.DB

	A []([]float64) // [len(Elements)][len(GasSpecies)] stoich of element j in gas species k

	NGas   []float64 // n[GAS][k], parallel to GasSpecies
	LnNGas []float64 // ln(n[GAS][k]); only meaningful where NGas[k] > 0
	NCond  []float64 // n[CONDENSED][k], parallel to CondSpecies

	ElementsListed bool
	SpeciesListed  bool
	IsEquilibrium  bool
}

// ElementIndex returns the position of atomic number el in Elements,
// or -1.
func (p *Product) ElementIndex(el int) int {
	for i, e := range p.Elements {
		if e == el {
			return i
		}
	}
	return -1
}

// NGasTotal returns n = sum_k NGas[k] (moles of gas per gram).
func (p *Product) NGasTotal() float64 {
	var n float64
	for _, v := range p.NGas {
		n += v
	}
	return n
}

// NTotal returns n + sum_k NCond[k] (total moles per gram, all
// phases).
func (p *Product) NTotal() float64 {
	n := p.NGasTotal()
	for _, v := range p.NCond {
		n += v
	}
	return n
}

// SyncLnNGas recomputes LnNGas[k] = ln(NGas[k]) for every active gas
// species (NGas[k] > 0); zeroed species keep their previous ln value,
// which callers must not read.
func (p *Product) SyncLnNGas() {
	if len(p.LnNGas) != len(p.NGas) {
		p.LnNGas = make([]float64, len(p.NGas))
	}
	for k, n := range p.NGas {
		if n > 0 {
			p.LnNGas[k] = math.Log(n)
		}
	}
}

// RemoveCondensed evicts the condensed species at index k by swapping
// it to the tail and shrinking the slices by one (§4.4.g.i).
func (p *Product) RemoveCondensed(k int) {
	last := len(p.CondSpecies) - 1
	p.CondSpecies[k], p.CondSpecies[last] = p.CondSpecies[last], p.CondSpecies[k]
	p.NCond[k], p.NCond[last] = p.NCond[last], p.NCond[k]
	p.CondSpecies = p.CondSpecies[:last]
	p.NCond = p.NCond[:last]
}

// IterationInfo holds the scalar bookkeeping and per-iteration deltas
// of the outer equilibrium loop (§3).
type IterationInfo struct {
	N     float64 // moles of gas per gram = NGasTotal()
	LnN   float64
	SumN  float64 // N + condensed moles
	DLnN  float64
	DLnT  float64
	DLnNj []float64 // per-gas-species delta ln n, this iteration
	DNk   []float64 // per-condensed delta n, this iteration
}

// Properties is the converged thermodynamic state (§3).
type Properties struct {
	P float64 // atm
	T float64 // K

	H float64 // kJ/kg
	U float64 // kJ/kg
	G float64 // kJ/kg
	S float64 // kJ/kg*K
	M float64 // g/mol

	DLnVDLnP float64 // (d ln V / d ln P)_T
	DLnVDLnT float64 // (d ln V / d ln T)_P
	Cp       float64 // kJ/(kg*K)
	Cv       float64 // kJ/(kg*K)
	Gamma    float64 // isentropic exponent
	SoundSpeed float64 // m/s
}
