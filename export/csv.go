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

// Package export writes simulation results to CSV, Excel and PNG files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	gce "github.com/sap8b/GalvanicCorrosionEngine"
)

// Header holds the names of the standard result columns.
var Header = []string{"Time_s", "MixedPotential_V", "CorrosionRate_mmPerYear"}

// Column is an additional named column of values, one per time point.
type Column struct {
	Name   string
	Values []float64
}

// Columns converts derived output variables into columns sorted by name.
func Columns(derived map[string][]float64) []Column {
	names := make([]string, 0, len(derived))
	for k := range derived {
		names = append(names, k)
	}
	sort.Strings(names)
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Values: derived[n]}
	}
	return cols
}

func checkColumns(r *gce.SimulationResult, extra []Column) error {
	if r == nil {
		return fmt.Errorf("export: nil result")
	}
	n := r.Len()
	if len(r.MixedPotentials) != n || len(r.CorrosionRates) != n {
		return fmt.Errorf("export: result series have different lengths (%d, %d, %d)",
			n, len(r.MixedPotentials), len(r.CorrosionRates))
	}
	for _, c := range extra {
		if len(c.Values) != n {
			return fmt.Errorf("export: column '%s' has %d values but the result has %d time points",
				c.Name, len(c.Values), n)
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes r to w as CSV with one row per time point, followed by
// any extra columns. Numbers are written in the shortest form that
// reads back to the same value.
func WriteCSV(w io.Writer, r *gce.SimulationResult, extra ...Column) error {
	if err := checkColumns(r, extra); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := append(append([]string{}, Header...), columnNames(extra)...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: writing CSV: %v", err)
	}
	row := make([]string, len(header))
	for i := 0; i < r.Len(); i++ {
		row[0] = formatFloat(r.TimePoints[i])
		row[1] = formatFloat(r.MixedPotentials[i])
		row[2] = formatFloat(r.CorrosionRates[i])
		for j, c := range extra {
			row[3+j] = formatFloat(c.Values[i])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing CSV: %v", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: writing CSV: %v", err)
	}
	return nil
}

// WriteCSVFile writes r as CSV to the file at path, replacing any
// existing file.
func WriteCSVFile(path string, r *gce.SimulationResult, extra ...Column) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, r, extra...) })
}

func columnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(os.ExpandEnv(path))
	if err != nil {
		return fmt.Errorf("export: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %v", err)
	}
	return nil
}
