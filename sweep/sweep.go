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

// Package sweep runs many independent galvanic corrosion simulations
// concurrently, for example every combination of a set of anodes,
// cathodes and temperatures.
package sweep

import (
	"context"
	"fmt"
	"io/ioutil"
	"runtime"
	"strings"

	"github.com/ctessum/requestcache"
	gce "github.com/sap8b/GalvanicCorrosionEngine"
	"github.com/sap8b/GalvanicCorrosionEngine/atmosphere"
	"github.com/sap8b/GalvanicCorrosionEngine/internal/hash"
	"github.com/sap8b/GalvanicCorrosionEngine/materials"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// cacheSize is the number of finished runs a Runner keeps in memory.
const cacheSize = 1000

// Case describes a single simulation of a sweep.
type Case struct {
	Anode, Cathode  string
	Conditions      atmosphere.Conditions
	DurationSeconds float64
	TimeSteps       int
	Alpha           float64
	RelaxationRate  float64
}

// Grid returns a case for every combination of anode, cathode and
// temperature [°C], with the other settings copied from base.
// Combinations where the anode and cathode are the same are skipped.
func Grid(base Case, anodes, cathodes []string, temperatures []float64) []Case {
	if len(temperatures) == 0 {
		temperatures = []float64{base.Conditions.TemperatureCelsius}
	}
	var cases []Case
	for _, a := range anodes {
		for _, c := range cathodes {
			if strings.EqualFold(a, c) {
				continue
			}
			for _, t := range temperatures {
				cc := base
				cc.Anode, cc.Cathode = a, c
				cc.Conditions.TemperatureCelsius = t
				cases = append(cases, cc)
			}
		}
	}
	return cases
}

// Outcome is the result of one case. Either Result or Err is set.
// Results may be shared between identical cases and must not be modified.
type Outcome struct {
	Case   Case
	Result *gce.SimulationResult
	Err    error
}

// Runner runs sweeps of simulations. Identical cases, within a sweep or
// across sweeps, are only simulated once.
type Runner struct {
	registry *materials.Registry
	engine   *gce.Engine
	workers  int
	log      logrus.FieldLogger
	cache    *requestcache.Cache
}

// NewRunner returns a runner that looks up materials in reg and runs
// simulations with engine, using the given number of concurrent workers.
// If workers < 1, one worker per processor is used. reg, engine and
// logger may be nil, in which case defaults are used.
func NewRunner(reg *materials.Registry, engine *gce.Engine, workers int, logger logrus.FieldLogger) *Runner {
	if reg == nil {
		reg = materials.Default()
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(-1)
	}
	if engine == nil {
		engine = new(gce.Engine)
	}
	if logger == nil {
		l := logrus.New()
		l.Out = ioutil.Discard
		logger = l
	}
	r := &Runner{registry: reg, engine: engine, workers: workers, log: logger}
	r.cache = requestcache.NewCache(r.simulate, workers,
		requestcache.Deduplicate(), requestcache.Memory(cacheSize))
	return r
}

// Requests returns the number of requests received by the
// de-duplication layer, the memory cache and the simulator, respectively.
func (r *Runner) Requests() []int { return r.cache.Requests() }

// request is the cache payload of a case. Its materials are looked up
// when the request is made, and Err holds the lookup failure if any.
type request struct {
	Case Case
	Pair *gce.GalvanicPair
	Err  error
}

func (r *Runner) resolve(c Case) request {
	pair, err := r.registry.Pair(c.Anode, c.Cathode)
	return request{Case: c, Pair: pair, Err: err}
}

// key identifies the simulation of req by its resolved materials, so a
// material replaced in the registry is not served from the cache.
// Material names are compared case-insensitively.
func (req request) key() string {
	req.Case.Anode = strings.ToLower(strings.TrimSpace(req.Case.Anode))
	req.Case.Cathode = strings.ToLower(strings.TrimSpace(req.Case.Cathode))
	return hash.Key(req)
}

// simulation is the cached payload of a single case. Failures are
// carried in the payload rather than returned to the cache, because
// duplicate requests waiting on a failed request are never released.
type simulation struct {
	result *gce.SimulationResult
	err    error
}

// simulate is the requestcache processor for a single Case.
func (r *Runner) simulate(ctx context.Context, payload interface{}) (interface{}, error) {
	req := payload.(request)
	c := req.Case
	if err := c.Conditions.Validate(); err != nil {
		return simulation{err: err}, nil
	}
	if req.Err != nil {
		return simulation{err: req.Err}, nil
	}
	res, err := r.engine.Run(&gce.SimulationParameters{
		Pair:            req.Pair,
		Environment:     c.Conditions,
		DurationSeconds: c.DurationSeconds,
		TimeSteps:       c.TimeSteps,
		Alpha:           c.Alpha,
		RelaxationRate:  c.RelaxationRate,
	})
	return simulation{result: res, err: err}, nil
}

// Run simulates every case and returns the outcomes in the same order.
// A case that fails does not stop the others; its error is recorded in
// its Outcome. Cancellation of ctx is checked before each simulation is
// started, and a cancelled sweep returns ctx's error.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Outcome, error) {
	out := make([]Outcome, len(cases))
	indices := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(indices)
		for i := range cases {
			select {
			case indices <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < r.workers; w++ {
		g.Go(func() error {
			for i := range indices {
				if err := ctx.Err(); err != nil {
					return err
				}
				c := cases[i]
				req := r.resolve(c)
				res, err := r.cache.NewRequest(ctx, req, req.key()).Result()
				if err != nil {
					return err
				}
				sim := res.(simulation)
				out[i] = Outcome{Case: c, Result: sim.result, Err: sim.err}
				r.logOutcome(out[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}
	return out, nil
}

func (r *Runner) logOutcome(o Outcome) {
	log := r.log.WithFields(logrus.Fields{
		"anode":       o.Case.Anode,
		"cathode":     o.Case.Cathode,
		"temperature": o.Case.Conditions.TemperatureCelsius,
	})
	if o.Err != nil {
		log.WithError(o.Err).Warn("sweep: case failed")
		return
	}
	log.WithField("average_rate", o.Result.AverageCorrosionRate()).Info("sweep: case complete")
}
