package main

import (
	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"

	propelleval "github.com/impulse-rocketry/libpropelleval"
	"github.com/impulse-rocketry/libpropelleval/assemble"
	"github.com/impulse-rocketry/libpropelleval/caseio"
	"github.com/impulse-rocketry/libpropelleval/equilibrium"
	"github.com/impulse-rocketry/libpropelleval/propellant"
	"github.com/impulse-rocketry/libpropelleval/thermo"
)

func newEquilibriumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equilibrium",
		Short: "Solve a TP/HP/SP equilibrium composition and print its thermodynamic state",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readRunInput(requireRunFile())
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
			c, err := buildCase(in, pdb)
			if err != nil {
				return err
			}
			problem, err := problemFrom(in.Problem)
			if err != nil {
				return err
			}

			target := in.Target
			if problem == assemble.HP {
				target = c.Composition.HeatOfFormation(pdb)
			}

			opt := equilibrium.Options{
				Problem: problem,
				P:       in.PressureAtm,
				T:       in.TemperatureK,
				Target:  target,
				Log:     log,
			}
			if err := propelleval.ComputeEquilibrium(db, pdb, c, opt); err != nil {
				return err
			}

			printProperties(c)
			return nil
		},
	}
}

func printProperties(c *caseio.Case) {
	p := c.Properties
	io.Pf("\n%v\n", io.ArgsTable("EQUILIBRIUM STATE",
		"temperature [K]", "T", p.T,
		"pressure [atm]", "P", p.P,
		"enthalpy [kJ/kg]", "H", p.H,
		"entropy [kJ/(kg*K)]", "S", p.S,
		"mean molecular weight [g/mol]", "M", p.M,
		"gamma_s", "gamma", p.Gamma,
		"sound speed [m/s]", "a", p.SoundSpeed,
	))
}
