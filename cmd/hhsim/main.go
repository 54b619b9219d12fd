// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// hhsim simulates a Hodgkin-Huxley neuron under injected current, logs a
// summary of the run and optionally saves a plot of the trajectory.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"tend":     "sim.tend",
	"input":    "sim.input",
	"onset":    "sim.onset",
	"offset":   "sim.offset",
	"timeout":  "sim.timeout",
	"maxsteps": "sim.maxsteps",
	"reltol":   "sim.reltol",
	"abstol":   "sim.abstol",
	"out":      "sim.out",
	"all":      "sim.all",
	"steady":   "hh.steady",
}

// newRootCmd returns the hhsim command, logging to logw.  Running it
// without a subcommand is the same as hhsim run.
func newRootCmd(logw io.Writer) *cobra.Command {
	v := newViper()
	var cfgFile, logLevel string

	root := &cobra.Command{
		Use:           "hhsim",
		Short:         "Hodgkin-Huxley neuron simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the neuron and report the result",
		Args:  cobra.NoArgs,
	}
	runE := func(cmd *cobra.Command, _ []string) error {
		lg, err := newLogger(logw, logLevel)
		if err != nil {
			return err
		}
		cf, err := loadConfig(v, cfgFile)
		if err != nil {
			return err
		}
		_, err = run(cmd.Context(), cf, lg)
		return err
	}
	root.RunE = runE
	runCmd.RunE = runE
	root.AddCommand(runCmd)

	var def Config
	def.Defaults()
	fs := root.PersistentFlags()
	fs.StringVar(&cfgFile, "config", "", "YAML, JSON or TOML config file with hh and sim sections")
	fs.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	fs.Float64("tend", def.Sim.TEnd, "end time of the simulation, in seconds")
	fs.Float64("input", def.Sim.Input, "injected current, in amperes")
	fs.Float64("onset", def.Sim.Onset, "time at which the input turns on")
	fs.Float64("offset", def.Sim.Offset, "time at which the input turns off (0 = stays on, else must be > onset)")
	fs.Duration("timeout", def.Sim.Timeout, "wall clock limit on the simulation (0 = none)")
	fs.Int("maxsteps", def.Sim.MaxSteps, "maximum number of integration steps")
	fs.Float64("reltol", def.Sim.RelTol, "relative error tolerance")
	fs.Float64("abstol", def.Sim.AbsTol, "absolute error tolerance")
	fs.String("out", def.Sim.Out, "save a plot to this file (png, svg, pdf)")
	fs.Bool("all", def.Sim.All, "plot all state variables instead of just Vm")
	fs.Bool("steady", def.HH.Steady, "start the gates at their steady state")
	for fl, key := range flagKeys {
		mustBind(v, key, fl, root)
	}
	return root
}

func mustBind(v *viper.Viper, key, flag string, cmd *cobra.Command) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	lg := log.New(w)
	lg.SetTimeFormat("")
	lg.SetLevel(lvl)
	return lg, nil
}
