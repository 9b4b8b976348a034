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

// Package ode integrates scalar first-order ordinary differential equations
// of the form dy/dt = f(t, y) with the classic fourth-order Runge–Kutta
// method and a fixed step size.
package ode

import (
	"errors"
	"fmt"
)

// ErrInvalidSteps is returned when an integration is requested with a
// non-positive number of steps.
var ErrInvalidSteps = errors.New("ode: number of steps must be positive")

// Func is the right-hand side of dy/dt = f(t, y).
type Func func(t, y float64) float64

// Point is a single (t, y) pair of an integrated trajectory.
type Point struct {
	T, Y float64
}

// Solver is a fixed-step RK4 integrator for a single equation.
// It holds no state between calls.
type Solver struct {
	f Func
}

// New returns a solver for dy/dt = f(t, y).
func New(f Func) *Solver {
	return &Solver{f: f}
}

// Step advances y from t to t+h using one classic RK4 step.
func (s *Solver) Step(t, y, h float64) float64 {
	k1 := s.f(t, y)
	k2 := s.f(t+h/2, y+h/2*k1)
	k3 := s.f(t+h/2, y+h/2*k2)
	k4 := s.f(t+h, y+h*k3)
	return y + h/6*(k1+2*k2+2*k3+k4)
}

// Integrate integrates from (t0, y0) to tEnd in steps equal steps and
// returns all steps+1 points of the trajectory, starting with (t0, y0).
func (s *Solver) Integrate(t0, tEnd, y0 float64, steps int) ([]Point, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	out := make([]Point, 0, steps+1)
	err := s.IntegrateFunc(t0, tEnd, y0, steps, func(_ int, p Point) error {
		out = append(out, p)
		return nil
	})
	return out, err
}

// IntegrateFunc is like Integrate but hands each point to fn, in order,
// instead of collecting them. i is the index of the point, with i == 0
// being the initial condition. If fn returns an error the integration
// stops and that error is returned.
//
// Time is advanced by repeated addition of the step size, so the final
// time may differ from tEnd by accumulated rounding.
func (s *Solver) IntegrateFunc(t0, tEnd, y0 float64, steps int, fn func(i int, p Point) error) error {
	if steps <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSteps, steps)
	}
	h := (tEnd - t0) / float64(steps)
	t, y := t0, y0
	if err := fn(0, Point{T: t, Y: y}); err != nil {
		return err
	}
	for i := 1; i <= steps; i++ {
		y = s.Step(t, y, h)
		t += h
		if err := fn(i, Point{T: t, Y: y}); err != nil {
			return err
		}
	}
	return nil
}
