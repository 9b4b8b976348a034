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

package sweep

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/GaryBoone/GoStats/stats"
)

// Stats summarizes the average corrosion rates [mm/year] of the
// successful cases of a sweep.
type Stats struct {
	Cases, Failed int

	Mean, StdDev, Min, Max float64

	// Worst is the case with the highest average corrosion rate.
	Worst Case
}

// Summarize computes statistics over outcomes. StdDev is zero when fewer
// than two cases succeeded.
func Summarize(outcomes []Outcome) Stats {
	s := Stats{Cases: len(outcomes)}
	rates := make([]float64, 0, len(outcomes))
	var worst float64
	for _, o := range outcomes {
		if o.Err != nil {
			s.Failed++
			continue
		}
		rate := o.Result.AverageCorrosionRate()
		if len(rates) == 0 || rate > worst {
			worst = rate
			s.Worst = o.Case
		}
		rates = append(rates, rate)
	}
	if len(rates) == 0 {
		return s
	}
	s.Mean = stats.StatsMean(rates)
	s.Min = stats.StatsMin(rates)
	s.Max = stats.StatsMax(rates)
	if len(rates) > 1 {
		s.StdDev = stats.StatsSampleStandardDeviation(rates)
	}
	return s
}

// WriteTable writes one line per outcome, ordered by decreasing average
// corrosion rate with failed cases last, followed by the summary s.
func WriteTable(w io.Writer, outcomes []Outcome, s Stats) error {
	sorted := append([]Outcome{}, outcomes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := sorted[i], sorted[j]
		if (oi.Err == nil) != (oj.Err == nil) {
			return oi.Err == nil
		}
		if oi.Err != nil {
			return false
		}
		return oi.Result.AverageCorrosionRate() > oj.Result.AverageCorrosionRate()
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Anode\tCathode\tT (°C)\tAverage rate (mm/year)\tFinal potential (V)")
	for _, o := range sorted {
		if o.Err != nil {
			fmt.Fprintf(tw, "%s\t%s\t%g\terror: %v\t\n", o.Case.Anode, o.Case.Cathode,
				o.Case.Conditions.TemperatureCelsius, o.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%g\t%.4f\t%.4f\n", o.Case.Anode, o.Case.Cathode,
			o.Case.Conditions.TemperatureCelsius, o.Result.AverageCorrosionRate(), o.Result.FinalPotential())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d cases, %d failed. Average rate: mean %.4f, std. dev. %.4f, min %.4f, max %.4f mm/year\n",
		s.Cases, s.Failed, s.Mean, s.StdDev, s.Min, s.Max)
	return err
}
