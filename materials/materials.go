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

// Package materials holds a registry of electrochemical material
// properties, preloaded with common structural metals.
package materials

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	gce "github.com/sap8b/GalvanicCorrosionEngine"
)

// ErrUnknownMaterial is returned when a material name is not registered.
var ErrUnknownMaterial = errors.New("materials: unknown material")

// Preset metals. Standard potentials are vs. SHE.
var (
	Zinc = gce.Material{Name: "Zinc", StandardPotential: -0.76, ExchangeCurrentDensity: 1e-3,
		MolarMass: 0.06538, ElectronsTransferred: 2, Density: 7133}
	MildSteel = gce.Material{Name: "Mild Steel", StandardPotential: -0.44, ExchangeCurrentDensity: 1e-4,
		MolarMass: 0.05585, ElectronsTransferred: 2, Density: 7874}
	Aluminium = gce.Material{Name: "Aluminium", StandardPotential: -1.66, ExchangeCurrentDensity: 1e-6,
		MolarMass: 0.02698, ElectronsTransferred: 3, Density: 2700}
	Copper = gce.Material{Name: "Copper", StandardPotential: 0.34, ExchangeCurrentDensity: 1e-3,
		MolarMass: 0.06355, ElectronsTransferred: 2, Density: 8960}
	Nickel = gce.Material{Name: "Nickel", StandardPotential: -0.25, ExchangeCurrentDensity: 1e-5,
		MolarMass: 0.05869, ElectronsTransferred: 2, Density: 8908}
	Magnesium = gce.Material{Name: "Magnesium", StandardPotential: -2.37, ExchangeCurrentDensity: 1e-5,
		MolarMass: 0.02430, ElectronsTransferred: 2, Density: 1738}
)

// Presets returns the preset metals, ordered from least to most noble.
func Presets() []gce.Material {
	return []gce.Material{Magnesium, Aluminium, Zinc, MildSteel, Nickel, Copper}
}

// Registry maps case-insensitive names to materials. The zero value is an
// empty registry. It is safe for concurrent use.
type Registry struct {
	mu sync.RWMutex
	m  map[string]gce.Material
}

// NewRegistry returns a registry holding the given materials.
func NewRegistry(m ...gce.Material) (*Registry, error) {
	r := new(Registry)
	for _, mm := range m {
		if err := r.Register(mm); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Default returns a new registry preloaded with the preset metals.
func Default() *Registry {
	r, err := NewRegistry(Presets()...)
	if err != nil {
		panic(err)
	}
	return r
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Register adds m to the registry, replacing any material with the same
// name.
func (r *Registry) Register(m gce.Material) error {
	if err := m.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = make(map[string]gce.Material)
	}
	r.m[key(m.Name)] = m
	return nil
}

// TryGet returns the material registered as name and whether it was found.
func (r *Registry) TryGet(name string) (gce.Material, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.m[key(name)]
	return m, ok
}

// Get returns the material registered as name.
func (r *Registry) Get(name string) (gce.Material, error) {
	m, ok := r.TryGet(name)
	if !ok {
		return gce.Material{}, fmt.Errorf("%w: '%s'", ErrUnknownMaterial, name)
	}
	return m, nil
}

// Names returns the display names of all registered materials in
// alphabetical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.m))
	for _, m := range r.m {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}

// Materials returns all registered materials ordered by increasing
// standard potential.
func (r *Registry) Materials() []gce.Material {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]gce.Material, 0, len(r.m))
	for _, m := range r.m {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StandardPotential == out[j].StandardPotential {
			return out[i].Name < out[j].Name
		}
		return out[i].StandardPotential < out[j].StandardPotential
	})
	return out
}

// Pair looks up both materials and returns them as a galvanic pair.
func (r *Registry) Pair(anode, cathode string) (*gce.GalvanicPair, error) {
	a, err := r.Get(anode)
	if err != nil {
		return nil, err
	}
	c, err := r.Get(cathode)
	if err != nil {
		return nil, err
	}
	return gce.NewGalvanicPair(a, c)
}
