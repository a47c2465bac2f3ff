// Package caseio defines Case, the value-owning aggregate a caller
// builds to describe one combustion-chamber evaluation: a propellant
// composition plus a problem type, pressure, and (for HP/SP) target.
// ThermoDB and PropellantDB are shared and read-only; Case owns its
// Product, IterationInfo and Properties exclusively (§3 Ownership,
// §9's "model a Case as a value-owning aggregate").
package caseio

import (
	"github.com/impulse-rocketry/libpropelleval/product"
	"github.com/impulse-rocketry/libpropelleval/propellant"
)

// Component is one (reactant, mole-quantity) entry of a Composition.
type Component struct {
	ReactantIndex int
	Moles         float64
}

// Composition is a propellant formulation: a list of reactant
// components plus the derived total mass and per-element balance
// (§3).
type Composition struct {
	Components []Component

	// derived, filled by Resolve
	TotalMass      float64         // m = sum coef_i * M_i
	ElementBalance map[int]float64 // bj = moles of element j per gram of propellant
}

// Resolve computes TotalMass and ElementBalance from the propellant
// database.
func (c *Composition) Resolve(pdb *propellant.DB) {
	c.TotalMass = 0
	c.ElementBalance = make(map[int]float64)
	for _, comp := range c.Components {
		r := pdb.Reactants[comp.ReactantIndex]
		c.TotalMass += comp.Moles * r.Weight()
	}
	for _, comp := range c.Components {
		r := pdb.Reactants[comp.ReactantIndex]
		for _, ec := range r.Formula {
			if ec.Coef == 0 {
				continue
			}
			c.ElementBalance[ec.Element] += comp.Moles * ec.Coef / c.TotalMass
		}
	}
}

// HeatOfFormation returns the reactants' mass-weighted heat of
// formation, H_reactants, in J/g -- the enthalpy target for HP
// problems.
func (c *Composition) HeatOfFormation(pdb *propellant.DB) float64 {
	var massWeighted float64
	for _, comp := range c.Components {
		r := pdb.Reactants[comp.ReactantIndex]
		massWeighted += comp.Moles * r.Weight() * r.Heat
	}
	return massWeighted / c.TotalMass
}

// Case is the per-evaluation aggregate a caller owns.
type Case struct {
	Composition Composition

	Product    product.Product
	Iter       product.IterationInfo
	Properties product.Properties
}
