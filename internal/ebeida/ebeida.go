// Package ebeida implements maximal Poisson disk sampling by cell subdivision.
//
// Based on Ebeida, Mohamed S., et al. "A Simple Algorithm for Maximal
// Poisson-Disk Sampling in High Dimensions." Computer Graphics Forum 31.2 (2012).
package ebeida

import (
	"math"

	"github.com/voidshard/poissondisk/internal/active"
	"github.com/voidshard/poissondisk/internal/geom"
	"github.com/voidshard/poissondisk/internal/grid"
)

// MaxDepth is the hard limit on subdivision regardless of the floor.
const MaxDepth = 40

// Stats counts what the engine has done so far
type Stats struct {
	Steps        int // active cells processed
	Throws       int // darts thrown
	Accepted     int // darts that became samples
	Subdivisions int // cells split into children
	Rejected     int // cells retired without a sample
	Deepest      int // deepest level any cell was created at
}

// Engine turns active cells into samples.
type Engine struct {
	grid     *grid.Grid
	set      *active.Set
	rng      geom.Source
	throws   int
	maxDepth int
	stats    Stats

	neighbours []int
}

// DepthFor returns the deepest level we'll subdivide to given a grid and
// the smallest cell side we care about, as a fraction of the radius.
func DepthFor(g *grid.Grid, floor float64) int {
	smallest := floor * g.Radius()
	depth := int(math.Ceil(math.Log2(g.Side() / smallest)))
	if depth < 0 {
		return 0
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// New creates an engine over g with every top level cell active.
// throws is the number of darts a cell gets before it is subdivided, cells
// at maxDepth are retired instead of subdivided.
func New(g *grid.Grid, rng geom.Source, throws, maxDepth int) *Engine {
	e := &Engine{
		grid:     g,
		set:      active.New(g.Metric().Dim),
		rng:      rng,
		throws:   throws,
		maxDepth: maxDepth,
	}
	for _, c := range g.Roots() {
		e.set.Insert(c.ID, c.Depth)
	}
	return e
}

// Grid returns the grid the engine works on
func (e *Engine) Grid() *grid.Grid {
	return e.grid
}

// Stats returns a copy of the engine's counters
func (e *Engine) Stats() Stats {
	return e.stats
}

// Active returns how many cells are still in play
func (e *Engine) Active() int {
	return e.set.Len()
}

// Done returns true once no cell can take another sample.
func (e *Engine) Done() bool {
	return e.set.Empty()
}

// Next runs steps until a sample is accepted, returning it, or until the
// active set runs dry, returning nil.
func (e *Engine) Next() geom.Point {
	for !e.set.Empty() {
		if p := e.Step(); p != nil {
			return p
		}
	}
	return nil
}

// Step processes a single active cell chosen by volume. It returns the
// accepted sample or nil if the cell was retired or subdivided.
func (e *Engine) Step() geom.Point {
	id := e.set.Pick(e.rng)
	if id < 0 {
		return nil
	}
	c := e.grid.Cell(id)
	e.stats.Steps++

	// a sample anywhere in our top level cell is closer than radius to
	// every point in it
	if e.grid.TopLevelOccupied(c) {
		e.retire(c)
		return nil
	}

	e.neighbours = e.grid.Neighbours(c.Box, e.neighbours[:0])
	if e.grid.Covered(c.Box, e.neighbours) {
		e.retire(c)
		return nil
	}

	for i := 0; i < e.throws; i++ {
		e.stats.Throws++
		p := c.Box.Random(e.rng)
		if e.grid.FreeAgainst(p, e.neighbours) {
			e.grid.Occupy(c, p)
			e.set.Remove(c.ID)
			e.stats.Accepted++
			return p
		}
	}

	if c.Depth >= e.maxDepth {
		e.retire(c)
		return nil
	}

	e.set.Remove(c.ID)
	e.stats.Subdivisions++
	for _, child := range e.grid.Subdivide(c) {
		if child.Depth > e.stats.Deepest {
			e.stats.Deepest = child.Depth
		}
		// anything within radius of the child is within radius of the
		// parent, so the parent's neighbours are enough here
		if e.grid.Covered(child.Box, e.neighbours) {
			child.Status = grid.Rejected
			e.stats.Rejected++
			continue
		}
		e.set.Insert(child.ID, child.Depth)
	}

	return nil
}

// retire marks c as never able to take a sample
func (e *Engine) retire(c *grid.Cell) {
	c.Status = grid.Rejected
	e.set.Remove(c.ID)
	e.stats.Rejected++
}

// Restrict forces p into the sampling. Cells it covers are retired lazily
// as they are picked.
func (e *Engine) Restrict(p geom.Point) {
	e.grid.Insert(p)
}

// SizeHint returns bounds on how many more samples Next can return.
// The upper bound is the number of empty top level cells (each holds at most
// one sample); no useful lower bound exists while cells remain active since
// they may all turn out to be covered.
func (e *Engine) SizeHint() (int, int) {
	if e.set.Empty() {
		return 0, 0
	}
	upper := e.grid.TopLevel() - e.grid.Occupancy()
	if upper < 0 {
		upper = 0
	}
	return 0, upper
}
