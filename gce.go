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

// Package gce models galvanic corrosion between two dissimilar metals that
// are in electrical contact within a common electrolyte. It couples
// Butler–Volmer electrode kinetics with a fixed-step Runge–Kutta integrator
// to produce a time series of the mixed electrode potential and the
// corresponding corrosion rate of the anode.
package gce

import (
	"errors"
	"fmt"
)

// Version gives the version number.
const Version = "1.0.0"

// Physical constants.
const (
	// Faraday is the Faraday constant [C/mol].
	Faraday = 96485.3321

	// GasConstant is the universal gas constant [J/(mol·K)].
	GasConstant = 8.314462618
)

// Unit conversions used when expressing corrosion rates in mm/year.
const (
	secondsPerYear = 3.156e7
	mmPerMeter     = 1000.
)

// Errors returned by this package. Callers should compare with errors.Is;
// most are wrapped with additional context.
var (
	// ErrInvalidMaterial is returned when a material's electrochemical
	// constants are out of their physical range.
	ErrInvalidMaterial = errors.New("gce: invalid material")

	// ErrInvalidEnvironment is returned when an environment is missing or
	// reports a non-positive absolute temperature.
	ErrInvalidEnvironment = errors.New("gce: invalid environment")

	// ErrInvalidAlpha is returned when a charge-transfer coefficient is not
	// strictly between 0 and 1.
	ErrInvalidAlpha = errors.New("gce: charge-transfer coefficient must be in (0, 1)")

	// ErrInvalidPair is returned when the cathode of a galvanic pair is not
	// more noble than the anode.
	ErrInvalidPair = errors.New("gce: cathode must have a higher standard potential than the anode")

	// ErrInvalidParameters is returned for simulation parameters that
	// cannot describe a run.
	ErrInvalidParameters = errors.New("gce: invalid simulation parameters")

	// ErrNonFinite is returned when the integration produces an infinite or
	// NaN potential or corrosion rate.
	ErrNonFinite = errors.New("gce: non-finite value in simulation")
)

// ComputationError reports the point of a simulation at which a numeric
// failure was detected.
type ComputationError struct {
	Step      int     // index of the offending time point
	Time      float64 // [s]
	Potential float64 // [V]
	Err       error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%v at step %d (t=%g s, E=%g V)", e.Err, e.Step, e.Time, e.Potential)
}

func (e *ComputationError) Unwrap() error { return e.Err }
