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

// GalvanicPair is an anode and a cathode in electrical contact. The cathode
// always has the higher standard potential.
type GalvanicPair struct {
	Anode, Cathode Material
}

// NewGalvanicPair returns a galvanic pair after checking that both
// materials are valid and that the cathode is the more noble of the two.
func NewGalvanicPair(anode, cathode Material) (*GalvanicPair, error) {
	p := &GalvanicPair{Anode: anode, Cathode: cathode}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks a pair that may have been built without NewGalvanicPair.
func (p *GalvanicPair) Validate() error {
	if err := p.Anode.Validate(); err != nil {
		return fmt.Errorf("gce: anode: %w", err)
	}
	if err := p.Cathode.Validate(); err != nil {
		return fmt.Errorf("gce: cathode: %w", err)
	}
	if !(p.Cathode.StandardPotential > p.Anode.StandardPotential) {
		return fmt.Errorf("%w: %s (%g V) / %s (%g V)", ErrInvalidPair,
			p.Anode.Name, p.Anode.StandardPotential, p.Cathode.Name, p.Cathode.StandardPotential)
	}
	return nil
}

// GalvanicVoltage returns the open-circuit driving voltage of the pair [V].
func (p *GalvanicPair) GalvanicVoltage() float64 {
	return p.Cathode.StandardPotential - p.Anode.StandardPotential
}

func (p *GalvanicPair) String() string {
	return fmt.Sprintf("%s (anode) / %s (cathode)", p.Anode.Name, p.Cathode.Name)
}
