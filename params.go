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

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultTimeSteps is the number of integration steps used when
	// SimulationParameters.TimeSteps is zero.
	DefaultTimeSteps = 1000

	// DefaultRelaxationRate is the proportionality constant between net
	// current density and the rate of change of the mixed potential
	// [V·m²/(A·s)] used when SimulationParameters.RelaxationRate is zero.
	DefaultRelaxationRate = 0.01
)

// SimulationParameters configures a single simulation run.
type SimulationParameters struct {
	Pair        *GalvanicPair
	Environment Environment

	// DurationSeconds is the simulated time span [s].
	DurationSeconds float64

	// TimeSteps is the number of fixed integration steps. Zero means
	// DefaultTimeSteps.
	TimeSteps int

	// Alpha is the anodic charge-transfer coefficient used for both
	// electrodes. Zero means DefaultAlpha.
	Alpha float64

	// RelaxationRate scales the net current into dE/dt. Zero means
	// DefaultRelaxationRate.
	RelaxationRate float64
}

// Validate checks that the parameters describe a runnable simulation.
func (p *SimulationParameters) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil parameters", ErrInvalidParameters)
	}
	if p.Pair == nil {
		return fmt.Errorf("%w: no galvanic pair specified", ErrInvalidParameters)
	}
	if err := p.Pair.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	if err := checkEnvironment(p.Environment); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if !(p.DurationSeconds > 0) || math.IsInf(p.DurationSeconds, 0) {
		return fmt.Errorf("%w: DurationSeconds=%g but should be > 0", ErrInvalidParameters, p.DurationSeconds)
	}
	if p.TimeSteps < 0 {
		return fmt.Errorf("%w: TimeSteps=%d but should be > 0", ErrInvalidParameters, p.TimeSteps)
	}
	if p.Alpha != 0 && !(p.Alpha > 0 && p.Alpha < 1) {
		return fmt.Errorf("%w: %v", ErrInvalidParameters, fmt.Errorf("%w: got %g", ErrInvalidAlpha, p.Alpha))
	}
	if p.RelaxationRate < 0 || math.IsNaN(p.RelaxationRate) || math.IsInf(p.RelaxationRate, 0) {
		return fmt.Errorf("%w: RelaxationRate=%g but should be >= 0", ErrInvalidParameters, p.RelaxationRate)
	}
	return nil
}

func (p *SimulationParameters) timeSteps() int {
	if p.TimeSteps == 0 {
		return DefaultTimeSteps
	}
	return p.TimeSteps
}

func (p *SimulationParameters) relaxationRate() float64 {
	if p.RelaxationRate == 0 {
		return DefaultRelaxationRate
	}
	return p.RelaxationRate
}

// SimulationResult holds the time series produced by a simulation. All
// three slices have the same length.
type SimulationResult struct {
	TimePoints      []float64 `desc:"Simulation time" units:"s"`
	MixedPotentials []float64 `desc:"Mixed electrode potential vs. SHE" units:"V"`
	CorrosionRates  []float64 `desc:"Anode corrosion rate" units:"mm/year"`
}

// Len returns the number of time points in the result.
func (r *SimulationResult) Len() int { return len(r.TimePoints) }

// AverageCorrosionRate returns the arithmetic mean of the corrosion rate
// series [mm/year], or zero if the result is empty.
func (r *SimulationResult) AverageCorrosionRate() float64 {
	if len(r.CorrosionRates) == 0 {
		return 0
	}
	return floats.Sum(r.CorrosionRates) / float64(len(r.CorrosionRates))
}

// PeakCorrosionRate returns the largest corrosion rate in the result
// [mm/year], or zero if the result is empty.
func (r *SimulationResult) PeakCorrosionRate() float64 {
	if len(r.CorrosionRates) == 0 {
		return 0
	}
	return floats.Max(r.CorrosionRates)
}

// FinalPotential returns the last mixed potential of the result [V], or
// NaN if the result is empty.
func (r *SimulationResult) FinalPotential() float64 {
	if len(r.MixedPotentials) == 0 {
		return math.NaN()
	}
	return r.MixedPotentials[len(r.MixedPotentials)-1]
}
