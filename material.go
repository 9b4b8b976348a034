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

import "fmt"

// Material describes a metal or alloy that can take part in galvanic
// corrosion. Materials are values and are never modified after creation.
type Material struct {
	// Name is the display name of the material, e.g. "Zinc".
	Name string

	StandardPotential      float64 `desc:"Standard electrode potential vs. SHE" units:"V"`
	ExchangeCurrentDensity float64 `desc:"Exchange current density of the anodic reaction" units:"A/m²"`
	MolarMass              float64 `desc:"Molar mass" units:"kg/mol"`
	ElectronsTransferred   int     `desc:"Electrons transferred per dissolved atom" units:"-"`
	Density                float64 `desc:"Bulk density" units:"kg/m³"`
}

// Validate checks that the material constants are physically meaningful.
func (m Material) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: material has no name", ErrInvalidMaterial)
	case m.ElectronsTransferred < 1:
		return fmt.Errorf("%w: %s: ElectronsTransferred=%d but should be >= 1",
			ErrInvalidMaterial, m.Name, m.ElectronsTransferred)
	case !(m.ExchangeCurrentDensity > 0):
		return fmt.Errorf("%w: %s: ExchangeCurrentDensity=%g but should be > 0",
			ErrInvalidMaterial, m.Name, m.ExchangeCurrentDensity)
	case !(m.MolarMass > 0):
		return fmt.Errorf("%w: %s: MolarMass=%g but should be > 0",
			ErrInvalidMaterial, m.Name, m.MolarMass)
	case !(m.Density > 0):
		return fmt.Errorf("%w: %s: Density=%g but should be > 0",
			ErrInvalidMaterial, m.Name, m.Density)
	}
	return nil
}

// Environment is the electrochemical environment surrounding a galvanic
// couple. Only the temperature is used by the kinetics model.
type Environment interface {
	// TemperatureKelvin returns the absolute temperature [K].
	TemperatureKelvin() float64

	// PH returns the pH of the electrolyte.
	PH() float64

	// IonicConductivity returns the electrolyte conductivity [S/m].
	IonicConductivity() float64
}

func checkEnvironment(env Environment) error {
	if env == nil {
		return fmt.Errorf("%w: no environment specified", ErrInvalidEnvironment)
	}
	if t := env.TemperatureKelvin(); !(t > 0) {
		return fmt.Errorf("%w: temperature=%g K but should be > 0", ErrInvalidEnvironment, t)
	}
	return nil
}
