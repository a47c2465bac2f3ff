// Package propellant implements the read-only PropellantDB lookup of
// reactant (propellant ingredient) records: atomic composition, heat
// of formation, and density (§4.2's PropellantDB component, §6 record
// format).
package propellant

import "github.com/impulse-rocketry/libpropelleval/thermo"

// MaxFormulaElements bounds the (element, stoich-coef) pairs a
// reactant record carries (§3).
const MaxFormulaElements = 6

// ElementCoef is one (atomic number, stoichiometric coefficient) pair.
type ElementCoef struct {
	Element int
	Coef    float64
}

// Reactant is one propellant ingredient record.
type Reactant struct {
	Name    string
	Formula []ElementCoef // len <= MaxFormulaElements
	Heat    float64       // J/g
	Density float64       // g/cm^3
}

// Weight returns the reactant's molecular weight (g/mol), derived
// from its formula (§3: reactants do not store M directly).
func (r Reactant) Weight() float64 {
	var m float64
	for _, ec := range r.Formula {
		m += ec.Coef * thermo.AtomicWeight(ec.Element)
	}
	return m
}

// HasElement reports whether el appears with nonzero coefficient.
func (r Reactant) HasElement(el int) bool {
	for _, ec := range r.Formula {
		if ec.Element == el && ec.Coef != 0 {
			return true
		}
	}
	return false
}

// DB is a read-only, load-once table of reactant records.
type DB struct {
	Reactants []Reactant
	index     map[string]int
}

// NewDB wraps an already-parsed reactant slice, building the name
// index.
func NewDB(reactants []Reactant) *DB {
	db := &DB{Reactants: reactants, index: make(map[string]int, len(reactants))}
	for i, r := range reactants {
		db.index[r.Name] = i
	}
	return db
}

// Find returns the index of the named reactant, or -1.
func (db *DB) Find(name string) int {
	if i, ok := db.index[name]; ok {
		return i
	}
	return -1
}
