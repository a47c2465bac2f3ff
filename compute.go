// Package propelleval is the thin top-level entry point cmd/propelleval
// and other callers use: it sequences equilibrium.Solve and
// deriv.Solve so a caller gets both the converged composition and its
// thermodynamic derivatives from one call.
package propelleval

import (
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/deriv"
	"github.com/impulse-rocketry/libpropelleval/equilibrium"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// ComputeEquilibrium solves the given case to equilibrium and then
// populates its thermodynamic derivatives (§4.4, §4.5).
func ComputeEquilibrium(db *thermo.DB, pdb *propellant.DB, c *caseio.Case, opt equilibrium.Options) error {
	if err := equilibrium.Solve(c, db, pdb, opt); err != nil {
		return err
	}
	return deriv.Solve(c, db, c.Properties.T, opt.P)
}
