package equilibrium

import (
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// recoverSingular implements §4.4.b: on a singular system, first try
// removing a zero-valued active condensed species; if none is
// removable, re-seed any previously-zeroed gas species to 1e-6 once;
// if already reinserted, recovery fails.
func recoverSingular(c *caseio.Case, db *thermo.DB, zeroedGas map[int]bool, reinserted *bool) bool {
	for k := len(c.Product.NCond) - 1; k >= 0; k-- {
		if c.Product.NCond[k] <= 0 {
			c.Product.RemoveCondensed(k)
			return true
		}
	}
	if !*reinserted && len(zeroedGas) > 0 {
		for k := range zeroedGas {
			c.Product.NGas[k] = 1e-6
			c.Product.LnNGas[k] = logf(1e-6)
			delete(zeroedGas, k)
		}
		*reinserted = true
		return true
	}
	return false
}
