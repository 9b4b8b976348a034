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
	"io/ioutil"
	"time"

	"github.com/sirupsen/logrus"
)

// progressIntervals is the number of progress messages logged per run.
const progressIntervals = 10

// Engine runs galvanic corrosion simulations. The zero value is ready to
// use and logs nothing. An Engine may be used for several runs, including
// concurrently, as long as the added manipulators are themselves safe for
// that.
type Engine struct {
	// Logger receives run status messages. If nil, messages are discarded.
	Logger logrus.FieldLogger

	// AddInit, AddRun and AddCleanup are run after the default
	// initialization, per-step and cleanup functions, respectively.
	AddInit, AddRun, AddCleanup []StepManipulator
}

func (e *Engine) logger() logrus.FieldLogger {
	if e.Logger != nil {
		return e.Logger
	}
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

// Run simulates the evolution of the mixed potential of the galvanic pair
// in p and returns the potential and anode corrosion rate time series.
// If a non-finite value arises the run stops and the returned error wraps
// a *ComputationError.
func (e *Engine) Run(p *SimulationParameters) (*SimulationResult, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log := e.logger().WithFields(logrus.Fields{
		"anode":    p.Pair.Anode.Name,
		"cathode":  p.Pair.Cathode.Name,
		"duration": p.DurationSeconds,
		"steps":    p.timeSteps(),
	})
	startTime := time.Now()
	log.Info("gce: starting simulation")

	s := &Simulation{
		Params:    p,
		InitFuncs: append([]StepManipulator{BuildModels()}, e.AddInit...),
		RunFuncs: append([]StepManipulator{
			CheckFinite(),
			RecordPoint(),
			Log(log),
			RunPeriodically(p.DurationSeconds/progressIntervals, logProgress(log)),
		}, e.AddRun...),
		CleanupFuncs: e.AddCleanup,
	}

	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("gce: problem initializing simulation: %w", err)
	}
	if err := s.Run(); err != nil {
		return nil, fmt.Errorf("gce: problem running simulation: %w", err)
	}
	if err := s.Cleanup(); err != nil {
		return nil, fmt.Errorf("gce: problem finishing simulation: %w", err)
	}

	log.WithFields(logrus.Fields{
		"points":       s.Result.Len(),
		"average_rate": s.Result.AverageCorrosionRate(),
		"walltime":     time.Since(startTime).Seconds(),
	}).Info("gce: simulation complete")
	return s.Result, nil
}

func logProgress(log logrus.FieldLogger) StepManipulator {
	return func(s *Simulation) error {
		log.WithFields(logrus.Fields{
			"time_s":    s.Time,
			"potential": s.Potential,
			"rate":      s.CorrosionRate,
		}).Info("gce: progress")
		return nil
	}
}
