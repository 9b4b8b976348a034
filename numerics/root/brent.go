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

// Package root finds roots of scalar functions.
package root

import (
	"errors"
	"fmt"
	"math"
)

// DefaultTolerance is the convergence tolerance used when a non-positive
// tolerance is given to Brent.
const DefaultTolerance = 1e-10

// MaxIterations is the iteration budget of Brent.
const MaxIterations = 100

var (
	// ErrInvalidBracket is returned when f has the same sign at both ends
	// of the search interval.
	ErrInvalidBracket = errors.New("root: f(a) and f(b) must have opposite signs")

	// ErrNoConvergence is returned when the iteration budget is exhausted.
	ErrNoConvergence = errors.New("root: Brent's method did not converge")
)

// Brent finds x in [a, b] such that |f(x)| < tol using Brent's method,
// which combines inverse quadratic interpolation, the secant method and
// bisection. f(a) and f(b) must have opposite signs. If either is exactly
// zero that endpoint is returned.
func Brent(f func(float64) float64, a, b, tol float64) (float64, error) {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	fa, fb := f(a), f(b)
	switch {
	case fa == 0:
		return a, nil
	case fb == 0:
		return b, nil
	case fa*fb > 0:
		return math.NaN(), fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrInvalidBracket, a, fa, b, fb)
	}
	// b is always the best estimate so far.
	if math.Abs(fa) < math.Abs(fb) {
		a, b, fa, fb = b, a, fb, fa
	}

	c, fc := a, fa
	var d float64
	mflag := true

	for i := 0; i < MaxIterations; i++ {
		if math.Abs(fb) < tol {
			return b, nil
		}

		var s float64
		if math.Abs(fa-fc) > tol && math.Abs(fb-fc) > tol {
			// inverse quadratic interpolation
			s = a*fb*fc/((fa-fb)*(fa-fc)) +
				b*fa*fc/((fb-fa)*(fb-fc)) +
				c*fa*fb/((fc-fa)*(fc-fb))
		} else {
			// secant
			s = b - fb*(b-a)/(fb-fa)
		}

		if !between(s, (3*a+b)/4, b) ||
			(mflag && math.Abs(s-b) >= math.Abs(b-c)/2) ||
			(!mflag && math.Abs(s-b) >= math.Abs(c-d)/2) ||
			(mflag && math.Abs(b-c) < tol) ||
			(!mflag && math.Abs(c-d) < tol) {
			s = (a + b) / 2
			mflag = true
		} else {
			mflag = false
		}

		fs := f(s)
		d = c
		c, fc = b, fb

		if fa*fs < 0 {
			b, fb = s, fs
		} else {
			a, fa = s, fs
		}
		if math.Abs(fa) < math.Abs(fb) {
			a, b, fa, fb = b, a, fb, fa
		}
	}
	return b, fmt.Errorf("%w after %d iterations (x=%g, f(x)=%g)", ErrNoConvergence, MaxIterations, b, fb)
}

// between reports whether x lies between lo and hi, in either order.
func between(x, lo, hi float64) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	return x >= lo && x <= hi
}
