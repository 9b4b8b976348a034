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
	"fmt"
	"math"
	"time"

	"github.com/sap8b/GalvanicCorrosionEngine/numerics/ode"
	"github.com/sirupsen/logrus"
)

// StepManipulator is a function that operates on the state of a simulation.
type StepManipulator func(s *Simulation) error

// Simulation holds the current state of a galvanic corrosion run.
// InitFuncs are run once before integration, RunFuncs are run once for
// every integrated time point (including the initial condition), and
// CleanupFuncs are run once after integration has finished.
type Simulation struct {
	Params *SimulationParameters

	// Kinetics models of the two electrodes. Set by BuildModels.
	Anode, Cathode *KineticsModel

	// InitialPotential is the mixed potential at t = 0 [V].
	InitialPotential float64

	// State at the current time point.
	Step          int
	Time          float64 // [s]
	Potential     float64 // [V]
	CorrosionRate float64 // [mm/year]

	Result *SimulationResult

	InitFuncs, RunFuncs, CleanupFuncs []StepManipulator

	solver *ode.Solver
}

// Init runs the initialization functions.
func (s *Simulation) Init() error {
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Run integrates the mixed potential over the simulation period, running
// RunFuncs at every time point. BuildModels must have been run first.
func (s *Simulation) Run() error {
	if s.solver == nil {
		return fmt.Errorf("gce: simulation has not been initialized")
	}
	return s.solver.IntegrateFunc(0, s.Params.DurationSeconds, s.InitialPotential,
		s.Params.timeSteps(), func(i int, p ode.Point) error {
			s.Step, s.Time, s.Potential = i, p.T, p.Y
			s.CorrosionRate = s.Anode.CorrosionRate(p.Y)
			for _, f := range s.RunFuncs {
				if err := f(s); err != nil {
					return err
				}
			}
			return nil
		})
}

// Cleanup runs the cleanup functions.
func (s *Simulation) Cleanup() error {
	for _, f := range s.CleanupFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// BuildModels creates the electrode kinetics models and the potential
// evolution equation
//
//	dE/dt = −c · (i_anode(E) + i_cathode(E))
//
// starting from the mean of the two standard potentials.
func BuildModels() StepManipulator {
	return func(s *Simulation) error {
		p := s.Params
		var err error
		if s.Anode, err = NewKineticsModel(p.Pair.Anode, p.Environment, p.Alpha); err != nil {
			return fmt.Errorf("gce: anode kinetics: %w", err)
		}
		if s.Cathode, err = NewKineticsModel(p.Pair.Cathode, p.Environment, p.Alpha); err != nil {
			return fmt.Errorf("gce: cathode kinetics: %w", err)
		}
		c := p.relaxationRate()
		anode, cathode := s.Anode, s.Cathode
		s.solver = ode.New(func(_, e float64) float64 {
			return -c * (anode.CurrentDensity(e) + cathode.CurrentDensity(e))
		})
		s.InitialPotential = (p.Pair.Anode.StandardPotential + p.Pair.Cathode.StandardPotential) / 2

		n := p.timeSteps() + 1
		s.Result = &SimulationResult{
			TimePoints:      make([]float64, 0, n),
			MixedPotentials: make([]float64, 0, n),
			CorrosionRates:  make([]float64, 0, n),
		}
		return nil
	}
}

// CheckFinite stops the simulation with a *ComputationError as soon as the
// potential or corrosion rate becomes infinite or NaN.
func CheckFinite() StepManipulator {
	return func(s *Simulation) error {
		if isFinite(s.Potential) && isFinite(s.CorrosionRate) {
			return nil
		}
		return &ComputationError{
			Step:      s.Step,
			Time:      s.Time,
			Potential: s.Potential,
			Err:       ErrNonFinite,
		}
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RecordPoint appends the current state to the simulation result.
func RecordPoint() StepManipulator {
	return func(s *Simulation) error {
		r := s.Result
		r.TimePoints = append(r.TimePoints, s.Time)
		r.MixedPotentials = append(r.MixedPotentials, s.Potential)
		r.CorrosionRates = append(r.CorrosionRates, s.CorrosionRate)
		return nil
	}
}

// Log writes simulation status messages to logger at debug level.
func Log(logger logrus.FieldLogger) StepManipulator {
	startTime := time.Now()
	stepTime := time.Now()

	return func(s *Simulation) error {
		logger.WithFields(logrus.Fields{
			"step":      s.Step,
			"time_s":    s.Time,
			"potential": s.Potential,
			"rate":      s.CorrosionRate,
			"walltime":  time.Since(startTime).Seconds(),
			"Δwalltime": time.Since(stepTime).Seconds(),
		}).Debug("gce: time step")
		stepTime = time.Now()
		return nil
	}
}

// periodTolerance is the relative rounding error in accumulated
// simulation time that RunPeriodically ignores.
const periodTolerance = 1e-9

// RunPeriodically runs f at most once every period of simulated time
// [s], starting with the first time point.
func RunPeriodically(period float64, f StepManipulator) StepManipulator {
	last := math.Inf(-1)
	return func(s *Simulation) error {
		if s.Time-last < period*(1-periodTolerance) {
			return nil
		}
		last = s.Time
		return f(s)
	}
}
