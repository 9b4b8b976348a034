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

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"
)

// Names of the model variables that output expressions can refer to.
const (
	TimeVar           = "Time"
	MixedPotentialVar = "MixedPotential"
	CorrosionRateVar  = "CorrosionRate"
)

// maxExpressionLength limits the length of an output expression after
// the user-defined variables it refers to have been expanded.
const maxExpressionLength = 1 << 16

// OutputOptions returns the names, descriptions and units of the model
// variables available to output expressions.
func OutputOptions() (names []string, descriptions []string, units []string) {
	return []string{TimeVar, MixedPotentialVar, CorrosionRateVar},
		[]string{"Simulation time", "Mixed electrode potential vs. SHE", "Anode corrosion rate"},
		[]string{"s", "V", "mm/year"}
}

// Outputter calculates derived time series from simulation results.
//
// outputVariables maps the names of the variables for which data
// should be returned to expressions that define how the
// requested data should be calculated. These expressions can utilize the
// model variables listed by OutputOptions, other user-defined variables,
// and functions.
//
// modelVariables is automatically generated based on the model variables that
// are required to calculate the requested output variables.
type Outputter struct {
	outputVariables map[string]string
	modelVariables  []string
	outputFunctions map[string]govaluate.ExpressionFunction
	expressions     map[string]*govaluate.EvaluableExpression
}

// NewOutputter initializes a new Outputter and adds a set of default
// output functions. Default functions include:
//
// 'exp(x)' which applies the exponential function e^x.
//
// 'abs(x)' which returns the absolute value of x.
//
// 'mmToUm(x)' which converts a length or rate from millimeters to micrometers.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	defaultOutputFuncs := map[string]govaluate.ExpressionFunction{
		"exp": unaryFunc("exp", math.Exp),
		"abs": unaryFunc("abs", math.Abs),
		"mmToUm": unaryFunc("mmToUm", func(x float64) float64 {
			return x * 1000
		}),
	}
	for key, val := range outputFunctions {
		defaultOutputFuncs[key] = val
	}

	o := Outputter{
		outputVariables: make(map[string]string, len(outputVariables)),
		outputFunctions: defaultOutputFuncs,
	}
	for k, v := range outputVariables {
		o.outputVariables[k] = v
	}
	if err := checkOutputNames(o.outputVariables); err != nil {
		return nil, err
	}
	if err := o.checkForDerivatives(); err != nil {
		return nil, err
	}
	o.expressions = make(map[string]*govaluate.EvaluableExpression, len(o.outputVariables))
	for key, val := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(val, o.outputFunctions)
		if err != nil {
			return nil, fmt.Errorf("gce: output variable '%s': %v", key, err)
		}
		o.expressions[key] = expression
	}
	return &o, nil
}

func unaryFunc(name string, f func(float64) float64) govaluate.ExpressionFunction {
	return func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("gce: got %d arguments for function '%s', but needs 1", len(arg), name)
		}
		x, ok := arg[0].(float64)
		if !ok {
			return nil, fmt.Errorf("gce: function '%s' needs a number but got %v", name, arg[0])
		}
		return f(x), nil
	}
}

// Names returns the sorted names of the output variables.
func (o *Outputter) Names() []string {
	names := make([]string, 0, len(o.outputVariables))
	for k := range o.outputVariables {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Expression returns the fully expanded expression for output variable
// name.
func (o *Outputter) Expression(name string) string { return o.outputVariables[name] }

// removeDuplicates removes all duplicated strings from a slice, returning a
// slice that contains only unique strings.
func removeDuplicates(s []string) []string {
	result := make([]string, 0, len(s))
	seen := make(map[string]struct{})
	for _, val := range s {
		if _, ok := seen[val]; !ok {
			result = append(result, val)
			seen[val] = struct{}{}
		}
	}
	return result
}

// checkForDerivatives identifies the unique model variables that are
// required to calculate the requested output variables. Any user-defined
// output variable showing up in another expression is replaced by its
// own fully expanded expression, so every expression ends up in terms of
// model variables only. Circular definitions are reported as errors.
func (o *Outputter) checkForDerivatives() error {
	deps := make(map[string][]string, len(o.outputVariables))
	for key, val := range o.outputVariables {
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(val, o.outputFunctions)
		if err != nil {
			return fmt.Errorf("gce: output variable '%s': %v", key, err)
		}
		for _, v := range removeDuplicates(expression.Vars()) {
			if _, ok := o.outputVariables[v]; ok && !isModelVar(v) {
				deps[key] = append(deps[key], v)
			}
		}
	}

	expanded := make(map[string]string, len(o.outputVariables))
	visiting := make(map[string]bool)
	var expand func(name string, path []string) error
	expand = func(name string, path []string) error {
		if _, ok := expanded[name]; ok {
			return nil
		}
		path = append(path, name)
		if visiting[name] {
			return fmt.Errorf("gce: output variables are defined circularly: %s", strings.Join(path, " -> "))
		}
		visiting[name] = true
		def := o.outputVariables[name]
		for _, dep := range deps[name] {
			if err := expand(dep, path); err != nil {
				return err
			}
			// Only replace whole variable names: 'Rate' is not a standalone
			// variable where it appears as 'CorrosionRate'.
			re := regexp.MustCompile(`\b` + regexp.QuoteMeta(dep) + `\b`)
			def = re.ReplaceAllLiteralString(def, "("+expanded[dep]+")")
			if len(def) > maxExpressionLength {
				return fmt.Errorf("gce: output variable '%s' is nested too deeply", name)
			}
		}
		visiting[name] = false
		expanded[name] = def
		return nil
	}
	names := o.Names()
	for _, name := range names {
		if err := expand(name, nil); err != nil {
			return err
		}
	}

	o.modelVariables = make([]string, 0, len(o.outputVariables))
	for _, name := range names {
		o.outputVariables[name] = expanded[name]
		expression, err := govaluate.NewEvaluableExpressionWithFunctions(expanded[name], o.outputFunctions)
		if err != nil {
			return fmt.Errorf("gce: output variable '%s': %v", name, err)
		}
		o.modelVariables = append(o.modelVariables, expression.Vars()...)
	}
	o.modelVariables = removeDuplicates(o.modelVariables)
	sort.Strings(o.modelVariables)
	return nil
}

func isModelVar(name string) bool {
	switch name {
	case TimeVar, MixedPotentialVar, CorrosionRateVar:
		return true
	}
	return false
}

// checkModelVars checks whether the unique input variables required to
// calculate the user-requested output variables are available in the model.
func checkModelVars(g ...string) error {
	names, _, _ := OutputOptions()
	available := make(map[string]struct{}, len(names))
	for _, n := range names {
		available[n] = struct{}{}
	}
	for _, v := range g {
		if _, ok := available[v]; !ok {
			return fmt.Errorf("gce: undefined variable name '%s'", v)
		}
	}
	return nil
}

var outputNameRegexp = regexp.MustCompile(`^[A-Za-z]\w*$`)

// checkOutputNames checks that output variable names are identifiers.
func checkOutputNames(o map[string]string) error {
	for key := range o {
		if !outputNameRegexp.MatchString(key) {
			return fmt.Errorf("gce: output variable name '%s' includes unsupported characters", key)
		}
	}
	return nil
}

// CheckOutputVars ensures the output variables can be calculated.
func (o *Outputter) CheckOutputVars() StepManipulator {
	return func(*Simulation) error {
		return checkModelVars(o.modelVariables...)
	}
}

// Results evaluates every output variable at every time point of r.
func (o *Outputter) Results(r *SimulationResult) (map[string][]float64, error) {
	if err := checkModelVars(o.modelVariables...); err != nil {
		return nil, err
	}
	out := make(map[string][]float64, len(o.expressions))
	for name := range o.expressions {
		out[name] = make([]float64, r.Len())
	}
	params := make(map[string]interface{}, 3)
	for i := 0; i < r.Len(); i++ {
		params[TimeVar] = r.TimePoints[i]
		params[MixedPotentialVar] = r.MixedPotentials[i]
		params[CorrosionRateVar] = r.CorrosionRates[i]
		for name, expression := range o.expressions {
			v, err := expression.Evaluate(params)
			if err != nil {
				return nil, fmt.Errorf("gce: evaluating output variable '%s': %v", name, err)
			}
			f, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("gce: output variable '%s' evaluates to %T, not a number", name, v)
			}
			out[name][i] = f
		}
	}
	return out, nil
}
