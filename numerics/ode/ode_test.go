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

package ode

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestStepConstantSlope(t *testing.T) {
	s := New(func(t, y float64) float64 { return 2 })
	y := s.Step(0, 1, 0.5)
	if !floats.EqualWithinAbsOrRel(y, 2, 1e-14, 1e-14) {
		t.Errorf("y = %g, want 2", y)
	}
}

func TestIntegrateShape(t *testing.T) {
	s := New(func(t, y float64) float64 { return -y })
	pts, err := s.Integrate(0, 1, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 11 {
		t.Fatalf("got %d points, want 11", len(pts))
	}
	if pts[0].T != 0 || pts[0].Y != 1 {
		t.Errorf("first point = %+v, want {0 1}", pts[0])
	}
	if !floats.EqualWithinAbsOrRel(pts[10].T, 1, 1e-12, 1e-12) {
		t.Errorf("final time = %g, want 1", pts[10].T)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].T <= pts[i-1].T {
			t.Errorf("time not increasing at %d: %g <= %g", i, pts[i].T, pts[i-1].T)
		}
	}
}

func TestIntegrateExponentialDecay(t *testing.T) {
	s := New(func(t, y float64) float64 { return -y })
	pts, err := s.Integrate(0, 1, 1, 100)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Exp(-1)
	if got := pts[len(pts)-1].Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("y(1) = %.12g, want %.12g", got, want)
	}
}

func TestIntegrateTimeDependent(t *testing.T) {
	// dy/dt = 3t² has the cubic solution y = t³, which RK4 integrates exactly.
	s := New(func(t, y float64) float64 { return 3 * t * t })
	pts, err := s.Integrate(0, 2, 0, 8)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range pts {
		if !floats.EqualWithinAbsOrRel(p.Y, p.T*p.T*p.T, 1e-12, 1e-12) {
			t.Errorf("y(%g) = %g, want %g", p.T, p.Y, p.T*p.T*p.T)
		}
	}
}

func TestIntegrateInvalidSteps(t *testing.T) {
	s := New(func(t, y float64) float64 { return 0 })
	for _, steps := range []int{0, -3} {
		if _, err := s.Integrate(0, 1, 0, steps); !errors.Is(err, ErrInvalidSteps) {
			t.Errorf("steps=%d: err = %v, want ErrInvalidSteps", steps, err)
		}
	}
}

func TestIntegrateFuncStops(t *testing.T) {
	s := New(func(t, y float64) float64 { return 1 })
	stop := errors.New("stop")
	var n int
	err := s.IntegrateFunc(0, 10, 0, 10, func(i int, p Point) error {
		if i != n {
			t.Errorf("index %d, want %d", i, n)
		}
		n++
		if i == 4 {
			return stop
		}
		return nil
	})
	if err != stop {
		t.Errorf("err = %v, want %v", err, stop)
	}
	if n != 5 {
		t.Errorf("visited %d points, want 5", n)
	}
}

func TestIntegrateDeterministic(t *testing.T) {
	f := func(t, y float64) float64 { return math.Sin(t) - y*y }
	a, err := New(f).Integrate(0, 5, 0.3, 50)
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(f).Integrate(0, 5, 0.3, 50)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
