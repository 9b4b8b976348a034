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
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure dimensions of Plot.
const (
	figWidth  = 6 * vg.Inch
	figHeight = 6 * vg.Inch
)

// Plot draws the mixed potential (top) and corrosion rate (bottom) of r
// against time and writes the figure to w as a PNG image.
func Plot(w io.Writer, r *gce.SimulationResult, title string) error {
	if err := checkColumns(r, nil); err != nil {
		return err
	}
	if r.Len() == 0 {
		return fmt.Errorf("export: cannot plot an empty result")
	}

	potential, err := linePlot(r.TimePoints, r.MixedPotentials, "Mixed potential (V vs. SHE)")
	if err != nil {
		return err
	}
	potential.Title.Text = title
	rate, err := linePlot(r.TimePoints, r.CorrosionRates, "Corrosion rate (mm/year)")
	if err != nil {
		return err
	}
	rate.X.Label.Text = "Time (s)"

	img := vgimg.New(figWidth, figHeight)
	dc := draw.New(img)
	top, bottom := splitVertical(dc, figHeight/2)
	potential.Draw(top)
	rate.Draw(bottom)

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("export: writing PNG: %v", err)
	}
	return nil
}

// PlotFile is like Plot but writes to the file at path.
func PlotFile(path string, r *gce.SimulationResult, title string) error {
	return writeFile(path, func(w io.Writer) error { return Plot(w, r, title) })
}

func linePlot(x, y []float64, yLabel string) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, fmt.Errorf("export: %v", err)
	}
	p.Y.Label.Text = yLabel
	xy := make(plotter.XYs, len(x))
	for i := range x {
		xy[i].X = x[i]
		xy[i].Y = y[i]
	}
	l, err := plotter.NewLine(xy)
	if err != nil {
		return nil, fmt.Errorf("export: %v", err)
	}
	p.Add(l, plotter.NewGrid())
	return p, nil
}

// splitVertical splits c at height y from the bottom.
func splitVertical(c draw.Canvas, y vg.Length) (top, bottom draw.Canvas) {
	return draw.Crop(c, 0, 0, y, 0), draw.Crop(c, 0, 0, 0, c.Min.Y-c.Max.Y+y)
}
