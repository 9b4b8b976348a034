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

package gce

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
)

func zincSteelParams(t *testing.T) *SimulationParameters {
	t.Helper()
	pair, err := NewGalvanicPair(zinc, mildSteel)
	if err != nil {
		t.Fatal(err)
	}
	return &SimulationParameters{
		Pair:            pair,
		Environment:     roomTemperature,
		DurationSeconds: 3600,
		TimeSteps:       360,
	}
}

func TestNewGalvanicPair(t *testing.T) {
	p, err := NewGalvanicPair(zinc, mildSteel)
	if err != nil {
		t.Fatal(err)
	}
	if absDifferent(p.GalvanicVoltage(), 0.32, 1e-12) {
		t.Errorf("voltage = %g, want 0.32", p.GalvanicVoltage())
	}
	if _, err := NewGalvanicPair(mildSteel, zinc); !errors.Is(err, ErrInvalidPair) {
		t.Errorf("reversed pair: err = %v, want ErrInvalidPair", err)
	}
	if _, err := NewGalvanicPair(zinc, zinc); !errors.Is(err, ErrInvalidPair) {
		t.Errorf("same material: err = %v, want ErrInvalidPair", err)
	}
	bad := copper
	bad.Density = 0
	if _, err := NewGalvanicPair(zinc, bad); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("invalid cathode: err = %v, want ErrInvalidMaterial", err)
	}
	if s := p.String(); s != "Zinc (anode) / Mild Steel (cathode)" {
		t.Errorf("String() = %q", s)
	}
}

func TestEngineZincSteel(t *testing.T) {
	p := zincSteelParams(t)
	var e Engine
	r, err := e.Run(p)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 361 || len(r.MixedPotentials) != 361 || len(r.CorrosionRates) != 361 {
		t.Fatalf("lengths = %d, %d, %d; want 361", len(r.TimePoints), len(r.MixedPotentials), len(r.CorrosionRates))
	}
	if r.TimePoints[0] != 0 {
		t.Errorf("first time = %g, want 0", r.TimePoints[0])
	}
	if absDifferent(r.MixedPotentials[0], -0.60, 1e-12) {
		t.Errorf("E(0) = %g, want -0.60", r.MixedPotentials[0])
	}
	if absDifferent(r.TimePoints[360], 3600, 1e-9) {
		t.Errorf("final time = %g, want 3600", r.TimePoints[360])
	}
	for i, rate := range r.CorrosionRates {
		if rate < 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
			t.Errorf("rate[%d] = %g", i, rate)
		}
		if i > 0 && r.TimePoints[i] <= r.TimePoints[i-1] {
			t.Errorf("time not increasing at %d", i)
		}
	}

	eq, err := EquilibriumPotential(p.Pair, p.Environment, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !(r.FinalPotential() < -0.6) {
		t.Errorf("final potential %g should have fallen below -0.6", r.FinalPotential())
	}
	if absDifferent(r.FinalPotential(), eq, 1e-3) {
		t.Errorf("final potential %g should approach equilibrium %g", r.FinalPotential(), eq)
	}
	if r.PeakCorrosionRate() < r.AverageCorrosionRate() {
		t.Errorf("peak %g < average %g", r.PeakCorrosionRate(), r.AverageCorrosionRate())
	}

	r2, err := e.Run(p)
	if err != nil {
		t.Fatal(err)
	}
	if r.AverageCorrosionRate() != r2.AverageCorrosionRate() {
		t.Errorf("average rate not deterministic: %g vs %g", r.AverageCorrosionRate(), r2.AverageCorrosionRate())
	}
	if diff := pretty.Diff(r, r2); len(diff) > 0 {
		t.Errorf("results differ: %v", diff)
	}
}

func TestEngineDefaults(t *testing.T) {
	p := zincSteelParams(t)
	p.TimeSteps = 0
	p.DurationSeconds = 10
	r, err := (&Engine{}).Run(p)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != DefaultTimeSteps+1 {
		t.Errorf("len = %d, want %d", r.Len(), DefaultTimeSteps+1)
	}

	// A faster relaxation reaches lower potentials sooner.
	fast := *p
	fast.RelaxationRate = 0.1
	rf, err := (&Engine{}).Run(&fast)
	if err != nil {
		t.Fatal(err)
	}
	if !(rf.FinalPotential() < r.FinalPotential()) {
		t.Errorf("fast relaxation final potential %g should be below %g", rf.FinalPotential(), r.FinalPotential())
	}
}

func TestEngineInvalidParameters(t *testing.T) {
	var e Engine
	p := zincSteelParams(t)
	for name, mod := range map[string]func(*SimulationParameters){
		"no pair":      func(p *SimulationParameters) { p.Pair = nil },
		"no env":       func(p *SimulationParameters) { p.Environment = nil },
		"zero length":  func(p *SimulationParameters) { p.DurationSeconds = 0 },
		"inf length":   func(p *SimulationParameters) { p.DurationSeconds = math.Inf(1) },
		"neg steps":    func(p *SimulationParameters) { p.TimeSteps = -1 },
		"bad alpha":    func(p *SimulationParameters) { p.Alpha = 1.2 },
		"neg relaxing": func(p *SimulationParameters) { p.RelaxationRate = -0.01 },
	} {
		pp := *p
		mod(&pp)
		if _, err := e.Run(&pp); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("%s: err = %v, want ErrInvalidParameters", name, err)
		}
	}
	if _, err := e.Run(nil); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("nil: err = %v, want ErrInvalidParameters", err)
	}

	reversed := *p
	reversed.Pair = &GalvanicPair{Anode: p.Pair.Cathode, Cathode: p.Pair.Anode}
	_, err := e.Run(&reversed)
	if !errors.Is(err, ErrInvalidParameters) || !errors.Is(err, ErrInvalidPair) {
		t.Errorf("reversed pair literal: err = %v, want ErrInvalidParameters and ErrInvalidPair", err)
	}
}

func TestEngineNonFinite(t *testing.T) {
	// Magnesium against copper with a huge relaxation rate and step
	// overshoots until the exponentials overflow.
	pair, err := NewGalvanicPair(magnesium, copper)
	if err != nil {
		t.Fatal(err)
	}
	p := &SimulationParameters{
		Pair:            pair,
		Environment:     roomTemperature,
		DurationSeconds: 1e6,
		TimeSteps:       10,
		RelaxationRate:  1e3,
	}
	_, err = (&Engine{}).Run(p)
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("err = %v, want ErrNonFinite", err)
	}
	var ce *ComputationError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want a *ComputationError", err)
	}
	if ce.Step < 1 || ce.Step > 10 {
		t.Errorf("failing step = %d", ce.Step)
	}
}

func TestEngineLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.Out = &buf
	logger.Level = logrus.DebugLevel

	p := zincSteelParams(t)
	p.TimeSteps = 20
	e := Engine{Logger: logger}
	if _, err := e.Run(p); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"starting simulation", "simulation complete", "progress", "time step", "anode=Zinc"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q", want)
		}
	}
	if n := strings.Count(out, "gce: time step"); n != 21 {
		t.Errorf("%d time step messages, want 21", n)
	}
}

func TestEngineAddedManipulators(t *testing.T) {
	var initRuns, steps, cleanups int
	e := Engine{
		AddInit: []StepManipulator{func(s *Simulation) error {
			initRuns++
			if s.Anode == nil || s.Cathode == nil {
				t.Error("models should be built before added init functions run")
			}
			return nil
		}},
		AddRun: []StepManipulator{func(s *Simulation) error {
			steps++
			return nil
		}},
		AddCleanup: []StepManipulator{func(s *Simulation) error {
			cleanups++
			if s.Result.Len() != 11 {
				t.Errorf("result has %d points at cleanup, want 11", s.Result.Len())
			}
			return nil
		}},
	}
	p := zincSteelParams(t)
	p.TimeSteps = 10
	if _, err := e.Run(p); err != nil {
		t.Fatal(err)
	}
	if initRuns != 1 || steps != 11 || cleanups != 1 {
		t.Errorf("init=%d steps=%d cleanup=%d; want 1, 11, 1", initRuns, steps, cleanups)
	}

	stop := errors.New("stop")
	e = Engine{AddRun: []StepManipulator{func(s *Simulation) error {
		if s.Step == 3 {
			return stop
		}
		return nil
	}}}
	if _, err := e.Run(p); !errors.Is(err, stop) {
		t.Errorf("err = %v, want %v", err, stop)
	}
}

func TestRunPeriodically(t *testing.T) {
	var times []float64
	f := RunPeriodically(10, func(s *Simulation) error {
		times = append(times, s.Time)
		return nil
	})
	s := new(Simulation)
	for i := 0; i <= 30; i++ {
		s.Time = float64(i) * 2.5
		if err := f(s); err != nil {
			t.Fatal(err)
		}
	}
	want := []float64{0, 10, 20, 30, 40, 50, 60, 70}
	if diff := pretty.Diff(times, want); len(diff) > 0 {
		t.Errorf("run times differ: %v", diff)
	}

	// Accumulated step times fall slightly short of multiples of the period.
	var steps []int
	f = RunPeriodically(1, func(s *Simulation) error {
		steps = append(steps, s.Step)
		return nil
	})
	s = new(Simulation)
	for i := 0; i <= 100; i++ {
		s.Step = i
		if err := f(s); err != nil {
			t.Fatal(err)
		}
		s.Time += 0.1
	}
	if diff := pretty.Diff(steps, []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100}); len(diff) > 0 {
		t.Errorf("run steps differ: %v", diff)
	}
}

func TestSimulationRunUninitialized(t *testing.T) {
	s := &Simulation{Params: &SimulationParameters{DurationSeconds: 1}}
	if err := s.Run(); err == nil {
		t.Error("expected an error")
	}
}

func TestSimulationResultEmpty(t *testing.T) {
	var r SimulationResult
	if r.AverageCorrosionRate() != 0 {
		t.Errorf("average = %g, want 0", r.AverageCorrosionRate())
	}
	if r.PeakCorrosionRate() != 0 {
		t.Errorf("peak = %g, want 0", r.PeakCorrosionRate())
	}
	if !math.IsNaN(r.FinalPotential()) {
		t.Errorf("final potential = %g, want NaN", r.FinalPotential())
	}
}

func TestSimulationResultStats(t *testing.T) {
	r := SimulationResult{
		TimePoints:      []float64{0, 1, 2},
		MixedPotentials: []float64{-0.6, -0.62, -0.63},
		CorrosionRates:  []float64{1, 4, 1},
	}
	if r.AverageCorrosionRate() != 2 {
		t.Errorf("average = %g, want 2", r.AverageCorrosionRate())
	}
	if r.PeakCorrosionRate() != 4 {
		t.Errorf("peak = %g, want 4", r.PeakCorrosionRate())
	}
	if r.FinalPotential() != -0.63 {
		t.Errorf("final = %g, want -0.63", r.FinalPotential())
	}
}

func TestEquilibriumPotential(t *testing.T) {
	for _, pair := range [][2]Material{{zinc, mildSteel}, {magnesium, copper}, {zinc, copper}} {
		p, err := NewGalvanicPair(pair[0], pair[1])
		if err != nil {
			t.Fatal(err)
		}
		e, err := EquilibriumPotential(p, roomTemperature, 0.5, 0)
		if err != nil {
			t.Fatalf("%v: %v", p, err)
		}
		if !(e > pair[0].StandardPotential && e < pair[1].StandardPotential) {
			t.Errorf("%v: equilibrium %g outside (%g, %g)", p, e,
				pair[0].StandardPotential, pair[1].StandardPotential)
		}
		a, _ := NewKineticsModel(pair[0], roomTemperature, 0.5)
		c, _ := NewKineticsModel(pair[1], roomTemperature, 0.5)
		ia, ic := a.CurrentDensity(e), c.CurrentDensity(e)
		if imbalance := (ia + ic) / (math.Abs(ia) + math.Abs(ic)); math.Abs(imbalance) >= 1e-10 {
			t.Errorf("%v: current imbalance %g at equilibrium", p, imbalance)
		}
	}
	if _, err := EquilibriumPotential(nil, roomTemperature, 0.5, 0); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("err = %v, want ErrInvalidParameters", err)
	}
}
