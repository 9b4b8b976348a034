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

	"github.com/sap8b/GalvanicCorrosionEngine/numerics/root"
)

// EquilibriumPotential returns the steady-state mixed potential [V] of
// the pair, at which the anodic and cathodic current densities cancel.
// The net current is negative at the anode's standard potential and
// positive at the cathode's, so the root is always bracketed by them.
//
// The root is found on the current imbalance
//
//	(i_anode + i_cathode) / (|i_anode| + |i_cathode|)
//
// which lies in [-1, 1] whatever the magnitude of the exchange currents.
// tol is the tolerance on that imbalance; if it is not positive the root
// finder default is used.
func EquilibriumPotential(pair *GalvanicPair, env Environment, alpha, tol float64) (float64, error) {
	if pair == nil {
		return 0, fmt.Errorf("%w: no galvanic pair specified", ErrInvalidParameters)
	}
	anode, err := NewKineticsModel(pair.Anode, env, alpha)
	if err != nil {
		return 0, fmt.Errorf("gce: anode kinetics: %w", err)
	}
	cathode, err := NewKineticsModel(pair.Cathode, env, alpha)
	if err != nil {
		return 0, fmt.Errorf("gce: cathode kinetics: %w", err)
	}
	imbalance := func(e float64) float64 {
		ia, ic := anode.CurrentDensity(e), cathode.CurrentDensity(e)
		return (ia + ic) / (math.Abs(ia) + math.Abs(ic))
	}
	e, err := root.Brent(imbalance, pair.Anode.StandardPotential, pair.Cathode.StandardPotential, tol)
	if err != nil {
		return e, fmt.Errorf("gce: equilibrium potential of %v: %w", pair, err)
	}
	return e, nil
}
