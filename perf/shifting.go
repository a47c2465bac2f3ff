package perf

import (
	"math"

	"github.com/impulse-rocketry/libpropelleval/assemble"
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/deriv"
	"github.com/impulse-rocketry/libpropelleval/equilibrium"
	"github.com/impulse-rocketry/libpropelleval/internal/rlog"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// equilibriumCase is the Case type these helpers re-solve in place.
type equilibriumCase = caseio.Case

// solveSP re-solves the given case at pressure P under problem type
// SP with the target entropy Sc, then runs the derivative solve so
// Cp, Cv, Gamma and SoundSpeed are populated for the caller.
func solveSP(db *thermo.DB, pdb *propellant.DB, c *equilibriumCase, Sc, P float64) error {
	T0 := c.Properties.T
	if err := equilibrium.Solve(c, db, pdb, equilibrium.Options{
		Problem: assemble.SP,
		P:       P,
		T:       T0,
		Target:  Sc,
		Log:     rlog.Or(nil),
	}); err != nil {
		return err
	}
	return deriv.Solve(c, db, c.Properties.T, P)
}

// ComputeShifting runs the shifting-equilibrium performance evaluation
// of §4.6: identical outer loop structure to ComputeFrozen, but every
// trial throat/exit state re-solves a full SP equilibrium at the
// chamber's entropy instead of holding the chamber composition fixed.
func ComputeShifting(db *thermo.DB, pdb *propellant.DB, c3 *Case3, ec ExitCondition) (*Result, error) {
	log := rlog.Or(nil)

	target := c3.Chamber.Composition.HeatOfFormation(pdb)
	if err := equilibrium.Solve(&c3.Chamber, db, pdb, equilibrium.Options{
		Problem: assemble.HP,
		P:       c3.Pc,
		Target:  target,
		Log:     log,
	}); err != nil {
		return nil, &NoEquilibriumError{Stage: "chamber", Err: err}
	}
	if err := deriv.Solve(&c3.Chamber, db, c3.Chamber.Properties.T, c3.Pc); err != nil {
		return nil, &NoEquilibriumError{Stage: "chamber", Err: err}
	}

	Hc := c3.Chamber.Properties.H
	Sc := c3.Chamber.Properties.S

	var warnings []string

	c3.Throat.Composition = c3.Chamber.Composition
	Tt, Pt, ut, nt, converged, err := shiftingTrialLoop(db, pdb, &c3.Throat, Hc, Sc, c3.Pc, throatSeed{gamma: c3.Chamber.Properties.Gamma})
	if err != nil {
		return nil, &NoEquilibriumError{Stage: "throat", Err: err}
	}
	if !converged {
		warnings = append(warnings, "throat: velocity/sound-speed match did not converge, using last iterate")
		log.Warn("perf: shifting throat loop did not converge")
	}
	atRef := 1000 * thermo.R * Tt * nt / (Pt * ut)

	if ec.Kind != Pressure && ec.Value <= 1.0 {
		return nil, &AreaRatioOutOfRangeError{AreaRatio: ec.Value}
	}

	c3.Exit.Composition = c3.Chamber.Composition
	Te, Pe, ue, ne, converged, err := shiftingExitLoop(db, pdb, &c3.Exit, Hc, Sc, c3.Pc, ec, atRef, c3.Throat.Properties.Gamma)
	if err != nil {
		return nil, &NoEquilibriumError{Stage: "exit", Err: err}
	}
	if !converged {
		warnings = append(warnings, "exit: area-ratio/pressure match did not converge, using last iterate")
		log.Warn("perf: shifting exit loop did not converge")
	}

	areaPerMdot := 1000 * thermo.R * Te * ne / (Pe * ue)
	cStar := c3.Pc * atRef
	cf := ue / cStar
	ivac := ue + Pe*areaPerMdot

	return &Result{
		Isp:         ue,
		AreaPerMdot: areaPerMdot,
		CStar:       cStar,
		Cf:          cf,
		Ivac:        ivac,
		AeAt:        areaPerMdot / atRef,
		Warnings:    warnings,
	}, nil
}

type throatSeed struct{ gamma float64 }

// shiftingTrialLoop finds the throat state: at each trial pressure the
// equilibrium composition is fully re-solved (problem type SP,
// entropy = Sc) before the sound-speed match is checked.
func shiftingTrialLoop(db *thermo.DB, pdb *propellant.DB, c *equilibriumCase, Hc, Sc, Pc float64, seed throatSeed) (T, P, u, n float64, converged bool, err error) {
	gamma := seed.gamma
	if gamma == 0 {
		gamma = 1.2
	}
	pcPt := math.Pow((gamma+1)/2, gamma/(gamma-1))
	T = 0
	for i := 0; i < PcPtIterationMax; i++ {
		P = Pc / pcPt
		if err = solveSP(db, pdb, c, Sc, P); err != nil {
			return 0, 0, 0, 0, false, err
		}
		T = c.Properties.T
		n = c.Product.NGasTotal()
		gamma = c.Properties.Gamma
		a := c.Properties.SoundSpeed
		Hx := c.Properties.H
		u = math.Sqrt(2000 * math.Max(Hc-Hx, 0))
		if u == 0 {
			break
		}
		if math.Abs(u*u-a*a)/(u*u) <= velocityTol {
			converged = true
			break
		}
		pcPt = pcPt / (1 + (u*u-a*a)/(1000*(gamma+1)*n*thermo.R*T))
	}
	return T, P, u, n, converged, nil
}

// shiftingExitLoop mirrors shiftingTrialLoop but drives toward the
// requested exit condition (pressure or area ratio) rather than the
// sonic condition.
func shiftingExitLoop(db *thermo.DB, pdb *propellant.DB, c *equilibriumCase, Hc, Sc, Pc float64, ec ExitCondition, atRef, gamma float64) (T, P, u, n float64, converged bool, err error) {
	if ec.Kind == Pressure {
		P = ec.Value
		if err = solveSP(db, pdb, c, Sc, P); err != nil {
			return 0, 0, 0, 0, false, err
		}
		T = c.Properties.T
		n = c.Product.NGasTotal()
		Hx := c.Properties.H
		u = math.Sqrt(2000 * math.Max(Hc-Hx, 0))
		return T, P, u, n, true, nil
	}

	pcPtLn := math.Log(math.Pow((gamma+1)/2, gamma/(gamma-1)))
	logPcPe := initialLogPcPe(ec.Kind, ec.Value, gamma, pcPtLn)
	lnArTarget := math.Log(ec.Value)

	for i := 0; i < PcPeIterationMax; i++ {
		P = Pc / math.Exp(logPcPe)
		if err = solveSP(db, pdb, c, Sc, P); err != nil {
			return 0, 0, 0, 0, false, err
		}
		T = c.Properties.T
		n = c.Product.NGasTotal()
		a := c.Properties.SoundSpeed
		Hx := c.Properties.H
		u = math.Sqrt(2000 * math.Max(Hc-Hx, 0))
		if u == 0 || u*u == a*a {
			continue
		}
		areaPerMdot := 1000 * thermo.R * T * n / (P * u)
		arCurrent := areaPerMdot / atRef
		if arCurrent <= 0 {
			continue
		}
		lnArCurrent := math.Log(arCurrent)
		if math.Abs(lnArTarget-lnArCurrent) < 1e-5 {
			converged = true
			break
		}
		logPcPe += gamma * u * u / (u*u - a*a) * (lnArTarget - lnArCurrent)
	}
	return T, P, u, n, converged, nil
}
