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

package export

import (
	"fmt"
	"io"

	gce "github.com/sap8b/GalvanicCorrosionEngine"
	"github.com/tealeg/xlsx"
)

// Sheet names used by WriteXLSX.
const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"
)

// SummaryRow is a label and value shown on the summary sheet.
type SummaryRow struct {
	Label string
	Value interface{} // float64, int or string
}

// Summary returns the standard summary statistics of r.
func Summary(r *gce.SimulationResult) []SummaryRow {
	return []SummaryRow{
		{"Time points", r.Len()},
		{"Average corrosion rate (mm/year)", r.AverageCorrosionRate()},
		{"Peak corrosion rate (mm/year)", r.PeakCorrosionRate()},
		{"Final mixed potential (V)", r.FinalPotential()},
	}
}

// WriteXLSX writes r to w as an Excel workbook. The Results sheet holds
// the same table as WriteCSV; the Summary sheet holds info followed by
// the summary statistics of r.
func WriteXLSX(w io.Writer, r *gce.SimulationResult, info []SummaryRow, extra ...Column) error {
	if err := checkColumns(r, extra); err != nil {
		return err
	}
	file := xlsx.NewFile()

	results, err := file.AddSheet(ResultsSheet)
	if err != nil {
		return fmt.Errorf("export: %v", err)
	}
	row := results.AddRow()
	for _, h := range Header {
		row.AddCell().SetString(h)
	}
	for _, c := range extra {
		row.AddCell().SetString(c.Name)
	}
	for i := 0; i < r.Len(); i++ {
		row = results.AddRow()
		row.AddCell().SetFloat(r.TimePoints[i])
		row.AddCell().SetFloat(r.MixedPotentials[i])
		row.AddCell().SetFloat(r.CorrosionRates[i])
		for _, c := range extra {
			row.AddCell().SetFloat(c.Values[i])
		}
	}

	summary, err := file.AddSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("export: %v", err)
	}
	for _, s := range append(append([]SummaryRow{}, info...), Summary(r)...) {
		row = summary.AddRow()
		row.AddCell().SetString(s.Label)
		cell := row.AddCell()
		switch v := s.Value.(type) {
		case float64:
			cell.SetFloat(v)
		case int:
			cell.SetInt(v)
		default:
			cell.SetString(fmt.Sprint(v))
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("export: writing workbook: %v", err)
	}
	return nil
}

// WriteXLSXFile writes r as an Excel workbook to the file at path.
func WriteXLSXFile(path string, r *gce.SimulationResult, info []SummaryRow, extra ...Column) error {
	return writeFile(path, func(w io.Writer) error { return WriteXLSX(w, r, info, extra...) })
}
