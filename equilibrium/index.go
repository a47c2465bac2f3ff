package equilibrium

import (
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/product"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// ListElements scans the propellant composition and fills
// c.Product.Elements with every distinct atomic number touched by a
// nonzero coefficient (§4.2 list_elements). Idempotent: a second call
// is a no-op once Elements is populated.
func ListElements(c *caseio.Case, pdb *propellant.DB) error {
	if c.Product.ElementsListed {
		return nil
	}
	for _, comp := range c.Composition.Components {
		r := pdb.Reactants[comp.ReactantIndex]
		for _, ec := range r.Formula {
			if ec.Coef == 0 {
				continue
			}
			if c.Product.ElementIndex(ec.Element) >= 0 {
				continue
			}
			if len(c.Product.Elements) >= product.MaxElements {
				return &CapacityExceededError{Kind: CapacityElements, Limit: product.MaxElements, Got: len(c.Product.Elements) + 1}
			}
			c.Product.Elements = append(c.Product.Elements, ec.Element)
		}
	}
	c.Product.ElementsListed = true
	return nil
}

// ListProducts scans the thermo database and fills c.Product's
// GasSpecies/CondSpecies with every species whose formula is
// entirely covered by c.Product.Elements (§4.2 list_products). On
// first listing it seeds mole numbers per §4.2's side effects: n =
// sum n = 0.1; gas nj = 0.1/Ng; ln nj = ln(nj); condensed nj = 0.
func ListProducts(c *caseio.Case, db *thermo.DB) error {
	if c.Product.SpeciesListed {
		return nil
	}
	var gas, cond []int
	for idx, sp := range db.Species {
		if !formulaCoveredBy(sp.Formula, c.Product.Elements) {
			continue
		}
		switch sp.Phase {
		case thermo.Gas:
			gas = append(gas, idx)
		default:
			cond = append(cond, idx)
		}
	}
	if len(gas) > product.MaxSpecies {
		return &CapacityExceededError{Kind: CapacitySpecies, Limit: product.MaxSpecies, Got: len(gas)}
	}
	if len(cond) > product.MaxSpecies {
		return &CapacityExceededError{Kind: CapacitySpecies, Limit: product.MaxSpecies, Got: len(cond)}
	}

	c.Product.GasSpecies = gas
	c.Product.CondSpecies = cond
	c.Product.NCond = make([]float64, len(cond))

	ng := len(gas)
	c.Product.NGas = make([]float64, ng)
	c.Product.LnNGas = make([]float64, ng)
	if ng > 0 {
		n0 := 0.1 / float64(ng)
		for k := range c.Product.NGas {
			c.Product.NGas[k] = n0
			c.Product.LnNGas[k] = logf(n0)
		}
	}
	c.Product.SpeciesListed = true
	return nil
}

func formulaCoveredBy(formula []thermo.ElementCoef, elements []int) bool {
	for _, ec := range formula {
		if ec.Coef == 0 {
			continue
		}
		found := false
		for _, e := range elements {
			if e == ec.Element {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
