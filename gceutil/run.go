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

package gceutil

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	gce "github.com/sap8b/GalvanicCorrosionEngine"
	"github.com/sap8b/GalvanicCorrosionEngine/atmosphere"
	"github.com/sap8b/GalvanicCorrosionEngine/export"
	"github.com/sap8b/GalvanicCorrosionEngine/materials"
	"github.com/sap8b/GalvanicCorrosionEngine/sweep"
	"github.com/sirupsen/logrus"
)

// Run runs a simulation with parameters p and prints a summary to w.
//
// OutputFile is the path where the results are written as CSV.
// XLSXFile and PlotFile, if not empty, are paths where the results are
// additionally written as an Excel workbook and a PNG plot.
//
// OutputVariables specifies additional output columns as a map from
// column name to expression. It may be empty.
func Run(w io.Writer, logger logrus.FieldLogger, p *gce.SimulationParameters,
	OutputFile, XLSXFile, PlotFile string, OutputVariables map[string]string) (*gce.SimulationResult, error) {

	e := &gce.Engine{Logger: logger}

	var o *gce.Outputter
	if len(OutputVariables) > 0 {
		var err error
		logger.Info("gce: parsing output variable expressions")
		o, err = gce.NewOutputter(OutputVariables, nil)
		if err != nil {
			return nil, err
		}
		e.AddInit = append(e.AddInit, o.CheckOutputVars())
	}

	fmt.Fprintf(w, "Galvanic pair : %s\n", p.Pair)
	fmt.Fprintf(w, "Galvanic voltage : %.3f V\n", p.Pair.GalvanicVoltage())
	fmt.Fprintf(w, "Environment  : %v\n\n", p.Environment)

	r, err := e.Run(p)
	if err != nil {
		return nil, err
	}

	var extra []export.Column
	if o != nil {
		derived, err := o.Results(r)
		if err != nil {
			return nil, err
		}
		extra = export.Columns(derived)
	}

	fmt.Fprintf(w, "Simulation complete: %d time steps over %g s\n", r.Len(), p.DurationSeconds)
	fmt.Fprintf(w, "Average corrosion rate : %.4f mm/year\n\n", r.AverageCorrosionRate())

	if err := export.WriteCSVFile(OutputFile, r, extra...); err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Results exported to : %s\n", OutputFile)

	if XLSXFile != "" {
		info := []export.SummaryRow{
			{Label: "Anode", Value: p.Pair.Anode.Name},
			{Label: "Cathode", Value: p.Pair.Cathode.Name},
			{Label: "Galvanic voltage (V)", Value: p.Pair.GalvanicVoltage()},
			{Label: "Environment", Value: fmt.Sprint(p.Environment)},
			{Label: "Duration (s)", Value: p.DurationSeconds},
		}
		if err := export.WriteXLSXFile(XLSXFile, r, info, extra...); err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "Workbook exported to : %s\n", XLSXFile)
	}
	if PlotFile != "" {
		if err := export.PlotFile(PlotFile, r, p.Pair.String()); err != nil {
			return nil, err
		}
		fmt.Fprintf(w, "Plot exported to : %s\n", PlotFile)
	}
	return r, nil
}

// Equilibrium finds the steady-state mixed potential of pair and prints
// it to w along with the anode corrosion rate at that potential.
// alpha and tol of 0 select the default values.
func Equilibrium(w io.Writer, pair *gce.GalvanicPair, env atmosphere.Conditions, alpha, tol float64) error {
	e, err := gce.EquilibriumPotential(pair, env, alpha, tol)
	if err != nil {
		return err
	}
	anode, err := gce.NewKineticsModel(pair.Anode, env, alpha)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Galvanic pair : %s\n", pair)
	fmt.Fprintf(w, "Environment  : %v\n", env)
	fmt.Fprintf(w, "Equilibrium potential : %.4f V\n", e)
	recession, err := anode.CorrosionRateUnit(e)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Corrosion current density : %.4g A/m²\n", anode.CurrentDensity(e))
	fmt.Fprintf(w, "Surface recession rate : %.4g m/s\n", recession.Value())
	_, err = fmt.Fprintf(w, "Corrosion rate : %.4f mm/year\n", anode.CorrosionRate(e))
	return err
}

// ListMaterials writes the materials in reg to w as a table.
func ListMaterials(w io.Writer, reg *materials.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Name\tE° (V)\ti0 (A/m²)\tM (kg/mol)\tn\tρ (kg/m³)")
	for _, m := range reg.Materials() {
		fmt.Fprintf(tw, "%s\t%.3f\t%g\t%g\t%d\t%g\n", m.Name, m.StandardPotential,
			m.ExchangeCurrentDensity, m.MolarMass, m.ElectronsTransferred, m.Density)
	}
	return tw.Flush()
}

// Sweep runs cases using the given number of concurrent workers and
// writes a table of the outcomes to w.
func Sweep(ctx context.Context, w io.Writer, logger logrus.FieldLogger, reg *materials.Registry, cases []sweep.Case, workers int) error {
	if len(cases) == 0 {
		return fmt.Errorf("gce: the sweep has no cases; check Sweep.Anodes and Sweep.Cathodes")
	}
	r := sweep.NewRunner(reg, &gce.Engine{Logger: logger}, workers, logger)
	out, err := r.Run(ctx, cases)
	if err != nil {
		return err
	}
	return sweep.WriteTable(w, out, sweep.Summarize(out))
}
