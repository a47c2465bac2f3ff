// Package perf implements the PerformanceSolver (§4.6-4.7): frozen and
// shifting-equilibrium nozzle expansion from a converged chamber state
// to a throat and an exit condition, reusing equilibrium.Solve and
// deriv.Solve for the shifting case and a fixed-composition Newton
// solve for the frozen case.
package perf

import "github.com/impulse-rocketry/libpropelleval/caseio"

// Tuning constants (§4.6).
const (
	PcPtIterationMax = 5
	PcPeIterationMax = 6
	TempIterationMax = 8
	velocityTol      = 4e-5
)

// ExitConditionKind selects how the exit state is specified.
type ExitConditionKind int

const (
	Pressure ExitConditionKind = iota
	SupersonicAreaRatio
	SubsonicAreaRatio
)

// ExitCondition carries the user-specified exit target: an absolute
// pressure (atm) for Pressure, or an area ratio Ae/At otherwise.
type ExitCondition struct {
	Kind  ExitConditionKind
	Value float64
}

// Case3 bundles the three nested cases a performance run owns: the
// chamber (solved HP at Pc), the throat, and the exit, plus the
// chamber pressure that drives both expansions.
type Case3 struct {
	Chamber caseio.Case
	Throat  caseio.Case
	Exit    caseio.Case
	Pc      float64 // atm
}

// Result is the caller-facing performance report (§3).
type Result struct {
	Isp        float64 // m/s, exit flow speed
	AreaPerMdot float64 // A/mdot at exit, m^2*s/kg-equivalent (1000*R*T*n/(P*Isp))
	CStar      float64 // Pc * (A/mdot)_throat
	Cf         float64 // Isp / CStar
	Ivac       float64 // Isp + Pe*(A/mdot)_exit
	AeAt       float64 // area ratio achieved (1 at the throat)
	Warnings   []string
}
