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

package materials

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	gce "github.com/sap8b/GalvanicCorrosionEngine"
)

// materialFile is the layout of a TOML materials file:
//
//	[[Material]]
//	Name = "Titanium"
//	StandardPotential = -1.63
//	ExchangeCurrentDensity = 1e-6
//	MolarMass = 0.04787
//	ElectronsTransferred = 2
//	Density = 4506.0
type materialFile struct {
	Material []gce.Material
}

// LoadTOML reads materials from rd and registers them, replacing any
// existing materials with the same names. Nothing is registered if any
// entry is invalid. It returns the materials read.
func (r *Registry) LoadTOML(rd io.Reader) ([]gce.Material, error) {
	var f materialFile
	md, err := toml.DecodeReader(rd, &f)
	if err != nil {
		return nil, fmt.Errorf("materials: decoding TOML: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("materials: unknown fields in TOML: %v", undecoded)
	}
	for i, m := range f.Material {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("materials: entry %d: %w", i+1, err)
		}
	}
	for _, m := range f.Material {
		if err := r.Register(m); err != nil {
			return nil, err
		}
	}
	return f.Material, nil
}

// LoadTOMLFile is like LoadTOML but reads from the named file.
func (r *Registry) LoadTOMLFile(path string) ([]gce.Material, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("materials: %v", err)
	}
	defer f.Close()
	return r.LoadTOML(f)
}
