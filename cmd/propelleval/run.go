package main

import (
	"encoding/json"
	"fmt"

	"github.com/cpmech/gosl/io"

	"github.com/impulse-rocketry/libpropelleval/assemble"
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/perf"
	"github.com/impulse-rocketry/libpropelleval/propellant"
)

// RunInput is the JSON run-description format: which databases to
// load, the problem to solve, and the propellant composition.
type RunInput struct {
	ThermoDB     string `json:"thermo_db"`
	PropellantDB string `json:"propellant_db"`

	Problem      string  `json:"problem"` // "TP", "HP" or "SP"
	PressureAtm  float64 `json:"pressure_atm"`
	TemperatureK float64 `json:"temperature_k,omitempty"`
	Target       float64 `json:"target,omitempty"` // entropy (J/(g*K)) for SP; HP derives its own from the composition
	ExitKind     string  `json:"exit_kind,omitempty"` // "pressure", "supersonic" or "subsonic"
	ExitValue    float64 `json:"exit_value,omitempty"`

	Components []RunComponent `json:"components"`
}

// RunComponent names one propellant reactant and its quantity.
type RunComponent struct {
	Reactant string  `json:"reactant"`
	Moles    float64 `json:"moles"`
}

// readRunInput reads and decodes a run-description file (gosl/io's
// ReadFile + encoding/json, the pattern ReadMat uses in inp/mat.go).
func readRunInput(path string) (*RunInput, error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, err
	}
	in := new(RunInput)
	if err := json.Unmarshal(b, in); err != nil {
		return nil, err
	}
	return in, nil
}

// problemFrom maps the JSON problem string to assemble.Problem.
func problemFrom(s string) (assemble.Problem, error) {
	switch s {
	case "TP":
		return assemble.TP, nil
	case "HP":
		return assemble.HP, nil
	case "SP":
		return assemble.SP, nil
	default:
		return 0, fmt.Errorf("propelleval: unknown problem type %q", s)
	}
}

// buildCase resolves the JSON components against the propellant
// database into a caseio.Case ready for Solve.
func buildCase(in *RunInput, pdb *propellant.DB) (*caseio.Case, error) {
	c := &caseio.Case{}
	for _, comp := range in.Components {
		idx := pdb.Find(comp.Reactant)
		if idx < 0 {
			return nil, fmt.Errorf("propelleval: unknown reactant %q", comp.Reactant)
		}
		c.Composition.Components = append(c.Composition.Components, caseio.Component{
			ReactantIndex: idx,
			Moles:         comp.Moles,
		})
	}
	c.Composition.Resolve(pdb)
	return c, nil
}

// buildCase3 resolves the JSON components into the chamber case of a
// performance run, carrying the chamber pressure alongside it.
func buildCase3(in *RunInput, pdb *propellant.DB) (*perf.Case3, error) {
	chamber, err := buildCase(in, pdb)
	if err != nil {
		return nil, err
	}
	return &perf.Case3{Chamber: *chamber, Pc: in.PressureAtm}, nil
}

// buildExitCondition maps the JSON exit fields to a perf.ExitCondition.
func buildExitCondition(in *RunInput) (perf.ExitCondition, error) {
	switch in.ExitKind {
	case "", "pressure":
		return perf.ExitCondition{Kind: perf.Pressure, Value: in.ExitValue}, nil
	case "supersonic":
		return perf.ExitCondition{Kind: perf.SupersonicAreaRatio, Value: in.ExitValue}, nil
	case "subsonic":
		return perf.ExitCondition{Kind: perf.SubsonicAreaRatio, Value: in.ExitValue}, nil
	default:
		return perf.ExitCondition{}, fmt.Errorf("propelleval: unknown exit_kind %q", in.ExitKind)
	}
}
