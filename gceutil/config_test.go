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
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lnashier/viper"
	"github.com/sap8b/GalvanicCorrosionEngine/atmosphere"
	"github.com/sap8b/GalvanicCorrosionEngine/materials"
)

func TestCheckLogFile(t *testing.T) {
	if got := checkLogFile("", filepath.Join("out", "results.csv")); got != filepath.Join("out", "results.log") {
		t.Errorf("default log file = %s", got)
	}
	if got := checkLogFile("run.log", "results.csv"); got != "run.log" {
		t.Errorf("log file = %s, want run.log", got)
	}
}

func TestCheckOutputFile(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)
	os.Setenv("GCE_TEST_DIR", dir)
	defer os.Unsetenv("GCE_TEST_DIR")

	if _, err := checkOutputFile("OutputFile", "", true); err == nil {
		t.Error("expected an error for a missing required file")
	}
	if f, err := checkOutputFile("PlotFile", "", false); err != nil || f != "" {
		t.Errorf("optional file: %q, %v", f, err)
	}
	f, err := checkOutputFile("OutputFile", "$GCE_TEST_DIR/results.csv", true)
	if err != nil {
		t.Fatal(err)
	}
	if f != filepath.Join(dir, "results.csv") {
		t.Errorf("expanded path = %s", f)
	}
	if _, err := checkOutputFile("OutputFile", filepath.Join(dir, "x", "results.csv"), true); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestCheckOutputVars(t *testing.T) {
	os.Setenv("GCE_TEST_SCALE", "1000")
	defer os.Unsetenv("GCE_TEST_SCALE")
	got := checkOutputVars(map[string]string{"X": "CorrosionRate *\r\n$GCE_TEST_SCALE +\n1"})
	want := map[string]string{"X": "CorrosionRate * 1000 + 1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%v != %v", got, want)
	}
}

func TestToFloat64SliceE(t *testing.T) {
	for _, test := range []struct {
		in   interface{}
		want []float64
	}{
		{in: []float64{1, 2}, want: []float64{1, 2}},
		{in: []interface{}{int64(5), 25.5}, want: []float64{5, 25.5}},
		{in: "[1.5, 2]", want: []float64{1.5, 2}},
		{in: "", want: nil},
	} {
		got, err := toFloat64SliceE(test.in)
		if err != nil {
			t.Errorf("%#v: %v", test.in, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%#v: got %v, want %v", test.in, got, test.want)
		}
	}
	for _, bad := range []interface{}{"[1,", []interface{}{"x"}, 3} {
		if _, err := toFloat64SliceE(bad); err == nil {
			t.Errorf("%#v: expected an error", bad)
		}
	}
}

func TestGetStringMapString(t *testing.T) {
	cfg := viper.New()
	want := map[string]string{"A": "Time", "B": "abs(MixedPotential)"}

	cfg.Set("json", `{"A":"Time","B":"abs(MixedPotential)"}`)
	cfg.Set("map", map[string]interface{}{"A": "Time", "B": "abs(MixedPotential)"})
	for _, name := range []string{"json", "map"} {
		got, err := GetStringMapString(name, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: %v != %v", name, got, want)
		}
	}
	if got, err := GetStringMapString("unset", cfg); err != nil || len(got) != 0 {
		t.Errorf("unset: %v, %v", got, err)
	}
	cfg.Set("bad", `{"A":`)
	if _, err := GetStringMapString("bad", cfg); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestNewLogger(t *testing.T) {
	if _, _, err := newLogger(ioutil.Discard, "", "loud"); err == nil {
		t.Error("expected an error for an invalid level")
	}

	dir := tempDir(t)
	defer os.RemoveAll(dir)
	logFile := filepath.Join(dir, "run.log")
	var buf bytes.Buffer
	logger, closeLog, err := newLogger(&buf, logFile, "warning")
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if err := closeLog(); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	for name, out := range map[string]string{"writer": buf.String(), "file": string(b)} {
		if !strings.Contains(out, "shown") || strings.Contains(out, "hidden") {
			t.Errorf("%s output: %q", name, out)
		}
	}
}

func TestSimulationParams(t *testing.T) {
	cfg := viper.New()
	cfg.Set("Anode", "aluminium")
	cfg.Set("Cathode", "Copper")
	cfg.Set("TemperatureCelsius", 10.0)
	cfg.Set("RelativeHumidity", 0.5)
	cfg.Set("ChlorideConcentration", 0.1)
	cfg.Set("DurationSeconds", 60.0)
	cfg.Set("TimeSteps", 6)
	cfg.Set("Alpha", 0.4)
	cfg.Set("RelaxationRate", 0.001)

	p, err := simulationParams(cfg, materials.Default())
	if err != nil {
		t.Fatal(err)
	}
	if p.Pair.Anode.Name != "Aluminium" || p.Pair.Cathode.Name != "Copper" {
		t.Errorf("pair = %s", p.Pair)
	}
	wantEnv := atmosphere.Conditions{TemperatureCelsius: 10, RelativeHumidity: 0.5, ChlorideConcentration: 0.1}
	if p.Environment != wantEnv {
		t.Errorf("environment = %v, want %v", p.Environment, wantEnv)
	}
	if p.DurationSeconds != 60 || p.TimeSteps != 6 || p.Alpha != 0.4 || p.RelaxationRate != 0.001 {
		t.Errorf("parameters = %+v", p)
	}

	cfg.Set("RelativeHumidity", 1.5)
	if _, err := simulationParams(cfg, materials.Default()); !errors.Is(err, atmosphere.ErrInvalidConditions) {
		t.Errorf("error %v, want %v", err, atmosphere.ErrInvalidConditions)
	}
}
