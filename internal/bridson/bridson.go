// Package bridson implements fast, approximately uniform, non maximal Poisson
// disk sampling.
//
// Based on Bridson, Robert. "Fast Poisson disk sampling in arbitrary
// dimensions." SIGGRAPH Sketches (2007).
package bridson

import (
	"math"

	"github.com/unixpickle/essentials"

	"github.com/voidshard/poissondisk/internal/geom"
	"github.com/voidshard/poissondisk/internal/grid"
)

// Tries is how many candidates we draw around an active sample before we
// give up on it.
const Tries = 30

// Stats counts what the engine has done so far
type Stats struct {
	Throws   int
	Accepted int
	Retired  int // active samples that ran out of tries
}

// Engine grows a sampling outwards from active samples.
type Engine struct {
	grid   *grid.Grid
	rng    geom.Source
	active []int // sample indices that may still spawn neighbours
	seeded bool
	stats  Stats
}

// New creates an engine over g.
func New(g *grid.Grid, rng geom.Source) *Engine {
	return &Engine{grid: g, rng: rng}
}

// Stats returns a copy of the engine's counters
func (e *Engine) Stats() Stats {
	return e.stats
}

// Next returns the next sample or nil once the engine is exhausted.
func (e *Engine) Next() geom.Point {
	if !e.seeded {
		e.seeded = true
		if len(e.active) == 0 {
			if p := e.seed(); p != nil {
				return p
			}
			return nil
		}
	}

	r := e.grid.Radius()
	metric := e.grid.Metric()

	for len(e.active) > 0 {
		i := e.rng.IntN(len(e.active))
		centre := e.grid.Samples()[e.active[i]]

		for t := 0; t < Tries; t++ {
			e.stats.Throws++
			p := annulus(e.rng, centre, r, 2*r)
			if !metric.Contains(p) {
				if metric.Boundary != geom.Periodic {
					continue
				}
				p = wrap(p)
			}
			if e.grid.Free(p) {
				return e.accept(p)
			}
		}

		essentials.UnorderedDelete(&e.active, i)
		e.stats.Retired++
	}

	return nil
}

// seed places the very first sample uniformly at random.
func (e *Engine) seed() geom.Point {
	dim := e.grid.Metric().Dim
	for t := 0; t < Tries; t++ {
		e.stats.Throws++
		p := make(geom.Point, dim)
		for i := range p {
			p[i] = e.rng.Float64()
		}
		if e.grid.Free(p) {
			return e.accept(p)
		}
	}
	return nil
}

// accept records p as a sample & makes it active
func (e *Engine) accept(p geom.Point) geom.Point {
	idx := e.grid.Insert(p)
	e.active = append(e.active, idx)
	e.stats.Accepted++
	return p
}

// Restrict forces p into the sampling. Restricted samples inside the domain
// become active so the sampling grows around them.
func (e *Engine) Restrict(p geom.Point) {
	idx := e.grid.Insert(p)
	if e.grid.Metric().Contains(e.grid.Samples()[idx]) {
		e.active = append(e.active, idx)
	}
}

// SizeHint returns bounds on how many more samples Next can return.
func (e *Engine) SizeHint() (int, int) {
	if e.seeded && len(e.active) == 0 {
		return 0, 0
	}
	upper := e.grid.TopLevel() - e.grid.Occupancy()
	if upper < 0 {
		upper = 0
	}
	return 0, upper
}

// annulus returns a uniformly random point whose distance from centre lies
// in [min, max). Candidates are drawn from the enclosing cube and rejected
// until one lands in the shell.
func annulus(rng geom.Source, centre geom.Point, min, max float64) geom.Point {
	dim := len(centre)
	offset := make(geom.Point, dim)
	for {
		len2 := 0.0
		for i := range offset {
			offset[i] = (rng.Float64()*2 - 1) * max
			len2 += offset[i] * offset[i]
		}
		if len2 >= min*min && len2 < max*max {
			break
		}
	}

	p := make(geom.Point, dim)
	for i := range p {
		p[i] = centre[i] + offset[i]
	}
	return p
}

// wrap folds p back into [0,1)^dim
func wrap(p geom.Point) geom.Point {
	for i, v := range p {
		v = math.Mod(v, 1)
		if v < 0 {
			v++
		}
		if v >= 1 {
			v = 0
		}
		p[i] = v
	}
	return p
}
