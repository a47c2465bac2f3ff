package equilibrium

import (
	"math"

	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// manageCondensed implements §4.4.g: remove_condensed then
// include_condensed. Returns true if the active condensed set
// changed (caller must reassemble and restart the iteration).
func manageCondensed(c *caseio.Case, db *thermo.DB, sol []float64, T float64) bool {
	changed := removeCondensed(c, db, T)
	if includeCondensed(c, db, sol, T) {
		changed = true
	}
	return changed
}

func removeCondensed(c *caseio.Case, db *thermo.DB, T float64) bool {
	changed := false

	for k := len(c.Product.NCond) - 1; k >= 0; k-- {
		if c.Product.NCond[k] <= 0 {
			c.Product.RemoveCondensed(k)
			changed = true
		}
	}

	for k := 0; k < len(c.Product.CondSpecies); k++ {
		sp := db.Species[c.Product.CondSpecies[k]]
		if sp.TemperatureCheck(T) {
			continue
		}
		alt := findAlternatePhase(db, sp, T)
		if alt < 0 {
			continue
		}
		transT := sp.TransitionTemperature(T)
		if math.Abs(T-transT) > 50 {
			c.Product.CondSpecies[k] = alt
			changed = true
		} else if !containsInt(c.Product.CondSpecies, alt) {
			c.Product.CondSpecies = append(c.Product.CondSpecies, alt)
			c.Product.NCond = append(c.Product.NCond, 0)
			changed = true
		}
	}
	return changed
}

func includeCondensed(c *caseio.Case, db *thermo.DB, sol []float64, T float64) bool {
	best := -1
	var bestVal float64
	for idx := range db.Species {
		if db.Species[idx].Phase != thermo.Condensed {
			continue
		}
		if !formulaCoveredBy(db.Species[idx].Formula, c.Product.Elements) {
			continue
		}
		if containsInt(c.Product.CondSpecies, idx) {
			continue
		}
		if !db.Species[idx].TemperatureCheck(T) {
			continue
		}
		var piSum float64
		for j, el := range c.Product.Elements {
			piSum += sol[j] * coefOf(db.Species[idx], el)
		}
		val := db.Gibbs0(idx, T) - piSum
		if best < 0 || val < bestVal {
			best = idx
			bestVal = val
		}
	}
	if best >= 0 && bestVal < 0 {
		c.Product.CondSpecies = append(c.Product.CondSpecies, best)
		c.Product.NCond = append(c.Product.NCond, 0)
		return true
	}
	return false
}

func findAlternatePhase(db *thermo.DB, sp thermo.Species, T float64) int {
	for idx := range db.Species {
		cand := db.Species[idx]
		if cand.Phase != thermo.Condensed || cand.Name == sp.Name {
			continue
		}
		if !cand.SameFormula(sp) {
			continue
		}
		if cand.TemperatureCheck(T) {
			return idx
		}
	}
	return -1
}

// coefOf returns the stoichiometric coefficient of element el in sp's
// formula, or 0 if sp does not contain it (mirrors assemble's unexported
// helper of the same name -- condensed-phase management needs it
// against a not-yet-active candidate species, which ElementCondensedCoef,
// indexed into c.Product.CondSpecies, cannot express).
func coefOf(sp thermo.Species, el int) float64 {
	for _, ec := range sp.Formula {
		if ec.Element == el {
			return ec.Coef
		}
	}
	return 0
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
