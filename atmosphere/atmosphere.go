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

// Package atmosphere describes atmospheric exposure conditions as an
// electrochemical environment for galvanic corrosion simulations.
package atmosphere

import (
	"errors"
	"fmt"
	"math"
)

const absoluteZero = 273.15 // [°C]

// ErrInvalidConditions is returned by Validate for conditions outside
// their physical range.
var ErrInvalidConditions = errors.New("atmosphere: invalid conditions")

// Conditions holds ambient atmospheric conditions. It implements
// gce.Environment.
type Conditions struct {
	TemperatureCelsius    float64 `desc:"Ambient temperature" units:"°C"`
	RelativeHumidity      float64 `desc:"Relative humidity" units:"fraction"`
	ChlorideConcentration float64 `desc:"Chloride ion concentration" units:"mol/L"`
}

// TemperatureKelvin returns the absolute temperature [K].
func (c Conditions) TemperatureKelvin() float64 {
	return c.TemperatureCelsius + absoluteZero
}

// PH returns an approximate electrolyte pH: neutral water shifted by the
// chloride concentration.
func (c Conditions) PH() float64 {
	return 7 - math.Log10(1+c.ChlorideConcentration)
}

// IonicConductivity returns an empirical electrolyte conductivity [S/m]
// driven by humidity and chloride concentration.
func (c Conditions) IonicConductivity() float64 {
	return c.RelativeHumidity * (0.01 + 0.5*c.ChlorideConcentration)
}

// Validate checks that the conditions are physically meaningful.
func (c Conditions) Validate() error {
	switch {
	case !(c.TemperatureKelvin() > 0):
		return fmt.Errorf("%w: temperature %g °C is at or below absolute zero",
			ErrInvalidConditions, c.TemperatureCelsius)
	case !(c.RelativeHumidity >= 0 && c.RelativeHumidity <= 1):
		return fmt.Errorf("%w: relative humidity %g should be between 0 and 1",
			ErrInvalidConditions, c.RelativeHumidity)
	case !(c.ChlorideConcentration >= 0):
		return fmt.Errorf("%w: chloride concentration %g should be >= 0",
			ErrInvalidConditions, c.ChlorideConcentration)
	}
	return nil
}

func (c Conditions) String() string {
	return fmt.Sprintf("T=%g°C, RH=%g%%, [Cl⁻]=%g mol/L",
		c.TemperatureCelsius, c.RelativeHumidity*100, c.ChlorideConcentration)
}
