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

	"github.com/ctessum/unit"
)

// DefaultAlpha is the anodic charge-transfer coefficient used when none
// is specified.
const DefaultAlpha = 0.5

// CorrosionModel is an interface for models that convert an electrode
// potential into a corrosion rate.
type CorrosionModel interface {
	// CorrosionRate returns the corrosion rate [mm/year] at the given
	// potential [V vs. SHE].
	CorrosionRate(potential float64) float64
}

// KineticsModel computes current densities with the Butler–Volmer equation
//
//	i = i₀ · ( exp(α·F·η / R·T) − exp(−(1−α)·F·η / R·T) )
//
// where η = E − E₀ is the overpotential of a single material in a single
// environment. It holds no mutable state, so it is safe for concurrent use.
//
// The exponential terms are not clamped: for overpotentials of more than a few
// volts the current density overflows to ±Inf and the corrosion rate to +Inf.
type KineticsModel struct {
	material Material
	env      Environment
	alpha    float64
}

// NewKineticsModel returns a kinetics model for material m in environment
// env. alpha is the anodic charge-transfer coefficient; if it is zero,
// DefaultAlpha is used.
func NewKineticsModel(m Material, env Environment, alpha float64) (*KineticsModel, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := checkEnvironment(env); err != nil {
		return nil, err
	}
	if alpha == 0 {
		alpha = DefaultAlpha
	}
	if !(alpha > 0 && alpha < 1) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidAlpha, alpha)
	}
	return &KineticsModel{material: m, env: env, alpha: alpha}, nil
}

// Material returns the material whose kinetics are modelled.
func (km *KineticsModel) Material() Material { return km.material }

// Alpha returns the anodic charge-transfer coefficient.
func (km *KineticsModel) Alpha() float64 { return km.alpha }

// CurrentDensity returns the net current density [A/m²] at the given
// electrode potential [V vs. SHE]. Positive values are anodic.
func (km *KineticsModel) CurrentDensity(potential float64) float64 {
	eta := potential - km.material.StandardPotential
	f := Faraday / (GasConstant * km.env.TemperatureKelvin())

	return km.material.ExchangeCurrentDensity *
		(math.Exp(km.alpha*f*eta) - math.Exp(-(1-km.alpha)*f*eta))
}

// CorrosionRate converts the magnitude of the current density at the given
// potential into a linear material loss rate [mm/year] using Faraday's law:
//
//	rate = |i| · M / (n · F · ρ) · seconds per year · 1000
func (km *KineticsModel) CorrosionRate(potential float64) float64 {
	m := km.material
	return math.Abs(km.CurrentDensity(potential)) * m.MolarMass /
		(float64(m.ElectronsTransferred) * Faraday * m.Density) *
		secondsPerYear * mmPerMeter
}

// CorrosionRateUnit returns the corrosion rate at the given potential as
// a dimensioned SI quantity [m/s]. Moles are treated as dimensionless.
func (km *KineticsModel) CorrosionRateUnit(potential float64) (*unit.Unit, error) {
	m := km.material
	i := unit.New(math.Abs(km.CurrentDensity(potential)),
		unit.Dimensions{unit.CurrentDim: 1, unit.LengthDim: -2})
	molarMass := unit.New(m.MolarMass, unit.Kilogram)
	charge := unit.New(float64(m.ElectronsTransferred)*Faraday,
		unit.Dimensions{unit.CurrentDim: 1, unit.TimeDim: 1})
	density := unit.New(m.Density, unit.KilogramPerMeter3)

	rate := unit.Div(unit.Mul(i, molarMass), charge, density)
	if err := rate.Check(unit.MeterPerSecond); err != nil {
		return nil, fmt.Errorf("gce: %s corrosion rate: %v", m.Name, err)
	}
	return rate, nil
}
