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

package gceutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	gce "github.com/sap8b/GalvanicCorrosionEngine"
	"github.com/sap8b/GalvanicCorrosionEngine/atmosphere"
	"github.com/sap8b/GalvanicCorrosionEngine/materials"
	"github.com/sap8b/GalvanicCorrosionEngine/sweep"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) map[string]string {
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o
}

// expandStringSlice expands the environment variables in a slice of strings.
func expandStringSlice(s []string) []string {
	for i := 0; i < len(s); i++ {
		s[i] = os.ExpandEnv(s[i])
	}
	return s
}

// checkOutputFile makes sure that the output file is specified if it is
// required and that its directory exists, and expands any environment
// variables. name is the configuration variable the path came from.
func checkOutputFile(name, f string, required bool) (string, error) {
	if f == "" {
		if required {
			return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: %s="results.csv")`, name)
		}
		return "", nil
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("gce: the %s directory doesn't exist: %v", name, err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}

// newLogger returns a logger writing to w and, if logFile is not empty,
// to a newly created file at that path. The returned function closes the
// file.
func newLogger(w io.Writer, logFile, level string) (*logrus.Logger, func() error, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("gce: invalid LogLevel: %v", err)
	}
	logger := logrus.New()
	logger.Level = lvl
	logger.Out = w
	if logFile == "" {
		return logger, func() error { return nil }, nil
	}
	f, err := os.Create(os.ExpandEnv(logFile))
	if err != nil {
		return nil, nil, fmt.Errorf("gce: problem creating log file: %v", err)
	}
	logger.Out = io.MultiWriter(w, f)
	return logger, f.Close, nil
}

// registry returns the preset materials plus any loaded from the
// MaterialsFile configuration variable.
func registry(cfg *viper.Viper) (*materials.Registry, error) {
	reg := materials.Default()
	if f := cfg.GetString("MaterialsFile"); f != "" {
		if _, err := reg.LoadTOMLFile(f); err != nil {
			return nil, fmt.Errorf("gce: loading MaterialsFile: %w", err)
		}
	}
	return reg, nil
}

// conditions reads the atmospheric conditions from cfg.
func conditions(cfg *viper.Viper) (atmosphere.Conditions, error) {
	c := atmosphere.Conditions{
		TemperatureCelsius:    cfg.GetFloat64("TemperatureCelsius"),
		RelativeHumidity:      cfg.GetFloat64("RelativeHumidity"),
		ChlorideConcentration: cfg.GetFloat64("ChlorideConcentration"),
	}
	return c, c.Validate()
}

// simulationParams reads the parameters of a single simulation from cfg,
// looking up the materials in reg.
func simulationParams(cfg *viper.Viper, reg *materials.Registry) (*gce.SimulationParameters, error) {
	pair, err := reg.Pair(cfg.GetString("Anode"), cfg.GetString("Cathode"))
	if err != nil {
		return nil, err
	}
	env, err := conditions(cfg)
	if err != nil {
		return nil, err
	}
	p := &gce.SimulationParameters{
		Pair:            pair,
		Environment:     env,
		DurationSeconds: cfg.GetFloat64("DurationSeconds"),
		TimeSteps:       cfg.GetInt("TimeSteps"),
		Alpha:           cfg.GetFloat64("Alpha"),
		RelaxationRate:  cfg.GetFloat64("RelaxationRate"),
	}
	return p, p.Validate()
}

// sweepBase reads the settings shared by all cases of a sweep from cfg.
func sweepBase(cfg *viper.Viper) (sweep.Case, error) {
	env := atmosphere.Conditions{
		TemperatureCelsius:    cfg.GetFloat64("TemperatureCelsius"),
		RelativeHumidity:      cfg.GetFloat64("RelativeHumidity"),
		ChlorideConcentration: cfg.GetFloat64("ChlorideConcentration"),
	}
	c := sweep.Case{
		Conditions:      env,
		DurationSeconds: cfg.GetFloat64("DurationSeconds"),
		TimeSteps:       cfg.GetInt("TimeSteps"),
		Alpha:           cfg.GetFloat64("Alpha"),
		RelaxationRate:  cfg.GetFloat64("RelaxationRate"),
	}
	if !(c.DurationSeconds > 0) {
		return c, fmt.Errorf("%w: DurationSeconds=%g but should be >0", gce.ErrInvalidParameters, c.DurationSeconds)
	}
	return c, nil
}

// toFloat64SliceE converts a list of numbers from a configuration file or
// a JSON array from the command line to a []float64.
func toFloat64SliceE(s interface{}) ([]float64, error) {
	switch v := s.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		o := make([]float64, len(v))
		for i, val := range v {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, err
			}
			o[i] = f
		}
		return o, nil
	case string:
		var o []float64
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid type %T for list of numbers", s)
	}
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("gce: parsing %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("gce: invalid type for %s: %#v", varName, i)
	}
}
