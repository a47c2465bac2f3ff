package main

import (
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"

	"github.com/impulse-rocketry/libpropelleval/perf"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

func newFrozenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frozen",
		Short: "Run a frozen-composition nozzle performance evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerformance(requireRunFile(), false)
		},
	}
}

func newShiftingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shifting",
		Short: "Run a shifting-equilibrium nozzle performance evaluation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerformance(requireRunFile(), true)
		},
	}
}

func runPerformance(path string, shifting bool) error {
	in, err := readRunInput(path)
	if err != nil {
		return err
	}
	db, err := thermo.Load(in.ThermoDB)
	if err != nil {
		return err
	}
	pdb, err := propellant.Load(in.PropellantDB)
	if err != nil {
		return err
	}
	c3, err := buildCase3(in, pdb)
	if err != nil {
		return err
	}
	ec, err := buildExitCondition(in)
	if err != nil {
		return err
	}

	var res *perf.Result
	if shifting {
		res, err = perf.ComputeShifting(db, pdb, c3, ec)
	} else {
		res, err = perf.ComputeFrozen(db, pdb, c3, ec)
	}
	if err != nil {
		return err
	}

	printPerformance(res)
	return nil
}

func printPerformance(r *perf.Result) {
	io.Pf("\n%v\n", io.ArgsTable("PERFORMANCE",
		"specific impulse [m/s]", "Isp", r.Isp,
		"area per mass flow at exit", "A/mdot", r.AreaPerMdot,
		"characteristic velocity [m/s]", "C*", r.CStar,
		"thrust coefficient", "Cf", r.Cf,
		"vacuum specific impulse [m/s]", "Ivac", r.Ivac,
		"area ratio Ae/At", "AeAt", r.AeAt,
	))
	for _, w := range r.Warnings {
		io.PfYel("warning: %s\n", w)
	}
}
