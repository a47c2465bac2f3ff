package perf

import (
	"math"

	"github.com/impulse-rocketry/libpropelleval/assemble"
	"github.com/impulse-rocketry/libpropelleval/equilibrium"
	"github.com/impulse-rocketry/libpropelleval/internal/rlog"
	"github.com/impulse-rocketry/libpropelleval/product"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

// ComputeFrozen runs the frozen-composition performance evaluation of
// §4.6: the chamber equilibrium composition is held fixed through the
// throat and exit expansions (only T and P vary).
func ComputeFrozen(db *thermo.DB, pdb *propellant.DB, c3 *Case3, ec ExitCondition) (*Result, error) {
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

	pChamber := &c3.Chamber.Product
	Tc := c3.Chamber.Properties.T
	Hc := c3.Chamber.Properties.H
	Sc := c3.Chamber.Properties.S
	n := pChamber.NGasTotal()

	cpFrozen := frozenCp(pChamber, db, Tc)
	cvFrozen := cpFrozen - n*thermo.R
	gamma := cpFrozen / cvFrozen
	c3.Chamber.Properties.DLnVDLnT = 1
	c3.Chamber.Properties.DLnVDLnP = -1
	c3.Chamber.Properties.Cp = cpFrozen
	c3.Chamber.Properties.Cv = cvFrozen
	c3.Chamber.Properties.Gamma = gamma

	var warnings []string

	c3.Throat.Composition = c3.Chamber.Composition
	c3.Throat.Product = cloneProduct(*pChamber)
	pThroat := &c3.Throat.Product

	Tt, Pt, ut, at, converged := throatLoop(pThroat, db, gamma, Hc, Sc, n, c3.Pc, Tc)
	if !converged {
		warnings = append(warnings, "throat: velocity/sound-speed match did not converge, using last iterate")
		log.Warn("perf: frozen throat loop did not converge")
	}
	c3.Throat.Properties.T = Tt
	c3.Throat.Properties.P = Pt
	c3.Throat.Properties.Gamma = gamma
	c3.Throat.Properties.SoundSpeed = at

	atRef := 1000 * thermo.R * Tt * n / (Pt * ut)

	c3.Exit.Composition = c3.Chamber.Composition
	c3.Exit.Product = cloneProduct(*pChamber)
	pExit := &c3.Exit.Product

	if ec.Kind != Pressure && ec.Value <= 1.0 {
		return nil, &AreaRatioOutOfRangeError{AreaRatio: ec.Value}
	}

	Te, Pe, ue, converged, err := exitLoop(pExit, db, gamma, Hc, Sc, n, c3.Pc, Tt, ec, atRef)
	if err != nil {
		return nil, err
	}
	if !converged {
		warnings = append(warnings, "exit: area-ratio/pressure match did not converge, using last iterate")
		log.Warn("perf: frozen exit loop did not converge")
	}
	c3.Exit.Properties.T = Te
	c3.Exit.Properties.P = Pe
	c3.Exit.Properties.Gamma = gamma

	areaPerMdot := 1000 * thermo.R * Te * n / (Pe * ue)
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

// throatLoop implements §4.6's throat iteration: guess pc/pt from the
// isentropic choked-flow relation, solve T by entropy conservation,
// then relax pc/pt until flow speed matches local sound speed.
func throatLoop(p *product.Product, db *thermo.DB, gamma, Hc, Sc, n, Pc, T0 float64) (T, P, u, a float64, converged bool) {
	pcPt := math.Pow((gamma+1)/2, gamma/(gamma-1))
	T = T0
	for i := 0; i < PcPtIterationMax; i++ {
		P = Pc / pcPt
		T = newtonTempForEntropy(p, db, Sc, P, T)
		a = math.Sqrt(1000 * n * thermo.R * T * gamma)
		Hx := frozenEnthalpy(p, db, T)
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
	return T, P, u, a, converged
}

// exitLoop implements §4.6's exit iteration: for a pressure-specified
// exit it solves T directly; for an area-ratio-specified exit it
// inverts the area ratio using the empirical seed fits plus the
// relaxation update of §4.6.
func exitLoop(p *product.Product, db *thermo.DB, gamma, Hc, Sc, n, Pc, Tguess float64, ec ExitCondition, atRef float64) (T, P, u float64, converged bool, err error) {
	T = Tguess

	if ec.Kind == Pressure {
		P = ec.Value
		T = newtonTempForEntropy(p, db, Sc, P, T)
		Hx := frozenEnthalpy(p, db, T)
		u = math.Sqrt(2000 * math.Max(Hc-Hx, 0))
		return T, P, u, true, nil
	}

	pcPtLn := math.Log(math.Pow((gamma+1)/2, gamma/(gamma-1)))
	logPcPe := initialLogPcPe(ec.Kind, ec.Value, gamma, pcPtLn)
	lnArTarget := math.Log(ec.Value)

	for i := 0; i < PcPeIterationMax; i++ {
		P = Pc / math.Exp(logPcPe)
		T = newtonTempForEntropy(p, db, Sc, P, T)
		a := math.Sqrt(1000 * n * thermo.R * T * gamma)
		Hx := frozenEnthalpy(p, db, T)
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
	return T, P, u, converged, nil
}

// initialLogPcPe seeds the exit pressure-ratio iteration from the
// empirical fits of §4.6. The subsonic branch mirrors the supersonic
// one in shape (monotone in AR, anchored at the throat) since the
// spec leaves its exact form to match the supersonic fit "by analogy".
func initialLogPcPe(kind ExitConditionKind, ar, gamma, lnPcPt float64) float64 {
	switch kind {
	case SupersonicAreaRatio:
		if ar > 1 && ar < 2 {
			return lnPcPt + math.Sqrt(3.294*ar*ar+1.535*math.Log(ar))
		}
		return gamma + 1.4*math.Log(ar)
	case SubsonicAreaRatio:
		return lnPcPt / ar
	default:
		return lnPcPt
	}
}
