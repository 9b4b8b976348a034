/*
Copyright © 2026 the GalvanicCorrosionEngine authors.
This file is part of GalvanicCorrosionEngine.

GalvanicCorrosionEngine is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GalvanicCorrosionEngine is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GalvanicCorrosionEngine.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package gceutil contains the command line interface of the galvanic
// corrosion engine.
package gceutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	gce "github.com/sap8b/GalvanicCorrosionEngine"
	"github.com/sap8b/GalvanicCorrosionEngine/sweep"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the engine.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "MaterialsFile",
			usage: `
              MaterialsFile is the path to a TOML file with [[Material]] entries
              that are added to, or replace, the preset metals. It can include
              environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum severity of logged messages: one of
              debug, info, warning or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Anode",
			usage: `
              Anode is the name of the less noble material of the galvanic pair.`,
			shorthand:  "a",
			defaultVal: "Zinc",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), equilibriumCmd.Flags()},
		},
		{
			name: "Cathode",
			usage: `
              Cathode is the name of the more noble material of the galvanic pair.`,
			shorthand:  "c",
			defaultVal: "Mild Steel",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), equilibriumCmd.Flags()},
		},
		{
			name: "TemperatureCelsius",
			usage: `
              TemperatureCelsius is the air temperature [°C].`,
			defaultVal: 25.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), equilibriumCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "RelativeHumidity",
			usage: `
              RelativeHumidity is the relative humidity of the air, between 0 and 1.`,
			defaultVal: 0.8,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), equilibriumCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "ChlorideConcentration",
			usage: `
              ChlorideConcentration is the chloride concentration of the
              electrolyte film [mol/L].`,
			defaultVal: 0.5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), equilibriumCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "DurationSeconds",
			usage: `
              DurationSeconds is the simulated time span [s].`,
			defaultVal: 3600.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "TimeSteps",
			usage: `
              TimeSteps is the number of integration steps. If 0, 1000 steps
              are used.`,
			shorthand:  "n",
			defaultVal: 360,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "Alpha",
			usage: `
              Alpha is the charge transfer coefficient, between 0 and 1 exclusive.
              If 0, 0.5 is used.`,
			defaultVal: gce.DefaultAlpha,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), equilibriumCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "RelaxationRate",
			usage: `
              RelaxationRate is the factor relating the net current density
              to the rate of change of the mixed potential [V·m²/(A·s)].`,
			defaultVal: gce.DefaultRelaxationRate,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "Tolerance",
			usage: `
              Tolerance is the convergence tolerance of the equilibrium
              potential search.`,
			defaultVal: 1e-10,
			flagsets:   []*pflag.FlagSet{equilibriumCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the CSV file where results are written.
              It can include environment variables.`,
			shorthand:  "o",
			defaultVal: "corrosion_results.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "XLSXFile",
			usage: `
              XLSXFile is the path to an Excel workbook where results and a
              summary are additionally written. If empty, no workbook is written.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path to a PNG image where the potential and
              corrosion rate are plotted. If empty, no plot is made.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies additional output columns as a map of
              {"name":"expression"}. Expressions can use Time, MixedPotential,
              CorrosionRate, other output variables and the functions exp, abs
              and mmToUm.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can include
              environment variables. If LogFile is left blank when running a
              simulation, the logfile will be saved in the same location as the
              OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "Sweep.Anodes",
			usage: `
              Sweep.Anodes lists the anode materials of the sweep.`,
			defaultVal: []string{"Zinc", "Mild Steel"},
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.Cathodes",
			usage: `
              Sweep.Cathodes lists the cathode materials of the sweep.`,
			defaultVal: []string{"Mild Steel", "Nickel"},
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.Temperatures",
			usage: `
              Sweep.Temperatures lists the temperatures [°C] of the sweep as a
              JSON array. If empty, TemperatureCelsius is used.`,
			defaultVal: []float64{5, 25, 45},
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.Workers",
			usage: `
              Sweep.Workers is the number of simulations run concurrently.
              If 0, one per processor.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GCE")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				set.Float64(option.name, option.defaultVal.(float64), option.usage)
			case map[string]string, []float64:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				set.String(option.name, strings.TrimSpace(b.String()), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(equilibriumCmd)
	Root.AddCommand(materialsCmd)
	Root.AddCommand(sweepCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("gce: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "gce",
	Short: "A galvanic corrosion simulator.",
	Long: `gce simulates the galvanic corrosion of a pair of dissimilar metals in
an atmospheric electrolyte film, using Butler-Volmer kinetics for both
electrodes. Use the subcommands specified below to access the model
functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GCE_var' where 'var' is the
name of the variable to be set, with any '.' replaced by '_'.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of the engine.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("GalvanicCorrosionEngine v%s\n", gce.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd is a command that runs a single simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation.",
	Long: `run simulates the mixed potential and anode corrosion rate of the
galvanic pair over time, writes the time series to OutputFile and optionally
to XLSXFile and PlotFile, and prints a summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry(Cfg)
		if err != nil {
			return err
		}
		p, err := simulationParams(Cfg, reg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile("OutputFile", Cfg.GetString("OutputFile"), true)
		if err != nil {
			return err
		}
		xlsxFile, err := checkOutputFile("XLSXFile", Cfg.GetString("XLSXFile"), false)
		if err != nil {
			return err
		}
		plotFile, err := checkOutputFile("PlotFile", Cfg.GetString("PlotFile"), false)
		if err != nil {
			return err
		}
		outputVars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}

		logger, closeLog, err := newLogger(cmd.OutOrStdout(),
			checkLogFile(Cfg.GetString("LogFile"), outputFile), Cfg.GetString("LogLevel"))
		if err != nil {
			return err
		}
		defer closeLog()

		_, err = Run(cmd.OutOrStdout(), logger, p, outputFile, xlsxFile, plotFile, checkOutputVars(outputVars))
		return err
	},
	DisableAutoGenTag: true,
}

// equilibriumCmd is a command that calculates the steady-state potential.
var equilibriumCmd = &cobra.Command{
	Use:   "equilibrium",
	Short: "Calculate the steady-state mixed potential.",
	Long: `equilibrium calculates the mixed potential at which the anodic and
cathodic currents of the galvanic pair balance, and the corrosion rate of the
anode at that potential.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry(Cfg)
		if err != nil {
			return err
		}
		pair, err := reg.Pair(Cfg.GetString("Anode"), Cfg.GetString("Cathode"))
		if err != nil {
			return err
		}
		env, err := conditions(Cfg)
		if err != nil {
			return err
		}
		return Equilibrium(cmd.OutOrStdout(), pair, env, Cfg.GetFloat64("Alpha"), Cfg.GetFloat64("Tolerance"))
	},
	DisableAutoGenTag: true,
}

// materialsCmd is a command that lists the available materials.
var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "List the available materials.",
	Long: `materials lists the preset metals and any materials loaded from
MaterialsFile, ordered from least to most noble.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry(Cfg)
		if err != nil {
			return err
		}
		return ListMaterials(cmd.OutOrStdout(), reg)
	},
	DisableAutoGenTag: true,
}

// sweepCmd is a command that runs a batch of simulations.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a batch of simulations.",
	Long: `sweep runs a simulation for every combination of Sweep.Anodes,
Sweep.Cathodes and Sweep.Temperatures, and prints the average corrosion rate
of each, ordered from highest to lowest. Combinations that are not valid
galvanic pairs are reported as errors.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry(Cfg)
		if err != nil {
			return err
		}
		base, err := sweepBase(Cfg)
		if err != nil {
			return err
		}
		temps, err := toFloat64SliceE(Cfg.Get("Sweep.Temperatures"))
		if err != nil {
			return fmt.Errorf("gce: reading 'Sweep.Temperatures': %v", err)
		}
		cases := sweep.Grid(base,
			expandStringSlice(Cfg.GetStringSlice("Sweep.Anodes")),
			expandStringSlice(Cfg.GetStringSlice("Sweep.Cathodes")), temps)

		logger, closeLog, err := newLogger(cmd.OutOrStdout(), Cfg.GetString("LogFile"), Cfg.GetString("LogLevel"))
		if err != nil {
			return err
		}
		defer closeLog()

		return Sweep(context.Background(), cmd.OutOrStdout(), logger, reg, cases, Cfg.GetInt("Sweep.Workers"))
	},
	DisableAutoGenTag: true,
}
