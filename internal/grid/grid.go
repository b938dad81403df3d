package grid

import (
	"math"

	"github.com/golang/geo/r1"

	"github.com/voidshard/poissondisk/internal/encoding"
	"github.com/voidshard/poissondisk/internal/geom"
)

// Status of a cell
type Status int

const (
	// Active cells may still receive a sample
	Active Status = iota

	// Occupied cells hold exactly one sample
	Occupied

	// Rejected cells can never hold a sample (covered, or too small to bother)
	Rejected

	// Split cells were subdivided, their children carry on
	Split
)

// String returns a readable status
func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Occupied:
		return "occupied"
	case Rejected:
		return "rejected"
	case Split:
		return "split"
	}
	return "unknown"
}

// Cell is a cube of space at some subdivision depth.
// At depth k each axis of the unit cube is cut into Per()*2^k equal parts and
// Coords gives our position along each axis.
type Cell struct {
	ID     int
	Depth  int
	Coords []int
	Box    geom.Box
	Status Status
	Sample int // index into Samples() if Occupied, otherwise -1
}

// Grid is a sparse hierarchical grid over the unit cube.
//
// Top level cells have a diagonal no longer than the radius so each holds at
// most one sample; every sample is recorded against the top level cell that
// contains it. Deeper cells are only ever created by Subdivide.
type Grid struct {
	metric geom.Metric
	radius float64
	r2     float64
	per    int

	cells []*Cell        // arena, Cell.ID is the index
	index map[string]int // packed (depth, coords) -> arena index

	samples  []geom.Point
	occupied map[string]int // packed top level coords -> sample index
	extra    []int          // samples not owned by a top level cell

	// scratch space for neighbour walks
	key    []byte
	lo, hi []int
	at     []int
	wrap   []int
}

// CellsPerAxis returns how many top level cells we cut each axis into so that
// a cell's diagonal does not exceed radius.
func CellsPerAxis(dim int, radius float64) int {
	return int(math.Ceil(math.Sqrt(float64(dim)) / radius))
}

// New creates an empty grid. No cells exist until Roots or Subdivide is called.
func New(metric geom.Metric, radius float64) *Grid {
	d := metric.Dim
	return &Grid{
		metric:   metric,
		radius:   radius,
		r2:       radius * radius,
		per:      CellsPerAxis(d, radius),
		index:    map[string]int{},
		occupied: map[string]int{},
		lo:       make([]int, d),
		hi:       make([]int, d),
		at:       make([]int, d),
		wrap:     make([]int, d),
	}
}

// Metric returns the metric the grid measures with
func (g *Grid) Metric() geom.Metric {
	return g.metric
}

// Radius returns the minimum distance between samples
func (g *Grid) Radius() float64 {
	return g.radius
}

// Per returns the number of top level cells along each axis
func (g *Grid) Per() int {
	return g.per
}

// Side returns the side length of a top level cell
func (g *Grid) Side() float64 {
	return 1 / float64(g.per)
}

// TopLevel returns the number of top level cells
func (g *Grid) TopLevel() int {
	n := 1
	for i := 0; i < g.metric.Dim; i++ {
		n *= g.per
	}
	return n
}

// Len returns how many cells have been materialized
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cell returns a cell by ID
func (g *Grid) Cell(id int) *Cell {
	if id < 0 || id >= len(g.cells) {
		return nil
	}
	return g.cells[id]
}

// Lookup finds a materialized cell by depth & coordinates.
func (g *Grid) Lookup(depth int, coords []int) (*Cell, bool) {
	g.key = encoding.AppendKey(g.key, depth, coords)
	id, ok := g.index[string(g.key)]
	if !ok {
		return nil, false
	}
	return g.cells[id], true
}

// Samples returns every sample the grid holds, in insertion order.
func (g *Grid) Samples() []geom.Point {
	return g.samples
}

// Occupancy returns the number of top level cells holding a sample
func (g *Grid) Occupancy() int {
	return len(g.occupied)
}

// materialize registers a new cell in the arena
func (g *Grid) materialize(depth int, coords []int) *Cell {
	c := &Cell{
		ID:     len(g.cells),
		Depth:  depth,
		Coords: coords,
		Box:    geom.CellBox(coords, g.per<<depth),
		Status: Active,
		Sample: -1,
	}
	g.cells = append(g.cells, c)
	g.index[encoding.Key(depth, coords)] = c.ID
	return c
}

// Roots materializes (if needed) & returns every top level cell in row major
// order (first axis fastest).
func (g *Grid) Roots() []*Cell {
	d := g.metric.Dim
	out := make([]*Cell, 0, g.TopLevel())

	at := make([]int, d)
	for {
		c, ok := g.Lookup(0, at)
		if !ok {
			c = g.materialize(0, append([]int(nil), at...))
		}
		out = append(out, c)

		i := 0
		for ; i < d; i++ {
			at[i]++
			if at[i] < g.per {
				break
			}
			at[i] = 0
		}
		if i == d {
			break
		}
	}

	return out
}

// Subdivide splits c into 2^dim children of half the side length which
// exactly cover c. c is marked Split. Children are returned in a fixed order:
// bit i of the child's position selects the upper half of axis i.
func (g *Grid) Subdivide(c *Cell) []*Cell {
	d := g.metric.Dim
	count := 1 << d
	children := make([]*Cell, 0, count)

	for bits := 0; bits < count; bits++ {
		coords := make([]int, d)
		for i := 0; i < d; i++ {
			coords[i] = c.Coords[i]*2 + (bits>>i)&1
		}
		child, ok := g.Lookup(c.Depth+1, coords)
		if !ok {
			child = g.materialize(c.Depth+1, coords)
		}
		children = append(children, child)
	}

	c.Status = Split
	return children
}

// topLevel returns the top level coords holding p, clamped into the grid.
func (g *Grid) topLevel(p geom.Point) []int {
	coords := make([]int, g.metric.Dim)
	for i, v := range p {
		n := int(math.Floor(v * float64(g.per)))
		if n < 0 {
			n = 0
		} else if n >= g.per {
			n = g.per - 1
		}
		coords[i] = n
	}
	return coords
}

// TopLevelOccupied returns if the top level cell containing c has a sample.
func (g *Grid) TopLevelOccupied(c *Cell) bool {
	for i, v := range c.Coords {
		g.at[i] = v >> c.Depth
	}
	g.key = encoding.AppendKey(g.key, 0, g.at)
	_, ok := g.occupied[string(g.key)]
	return ok
}

// normalize returns p with coordinates wrapped into [0,1) for periodic grids.
func (g *Grid) normalize(p geom.Point) geom.Point {
	if g.metric.Boundary != geom.Periodic {
		return p
	}
	out := make(geom.Point, len(p))
	for i, v := range p {
		v = math.Mod(v, 1)
		if v < 0 {
			v++
		}
		if v >= 1 {
			v = 0
		}
		out[i] = v
	}
	return out
}

// Insert records a sample, returning its index. A sample inside the domain
// whose top level cell is free occupies that cell; anything else (outside the
// domain, or forced on top of another sample) is kept aside and checked
// against every future query.
func (g *Grid) Insert(p geom.Point) int {
	p = g.normalize(p)
	idx := len(g.samples)
	g.samples = append(g.samples, p)

	if !g.metric.Contains(p) {
		g.extra = append(g.extra, idx)
		return idx
	}

	key := encoding.Key(0, g.topLevel(p))
	if _, taken := g.occupied[key]; taken {
		g.extra = append(g.extra, idx)
		return idx
	}
	g.occupied[key] = idx
	return idx
}

// Occupy inserts p as the sample of cell c.
func (g *Grid) Occupy(c *Cell, p geom.Point) int {
	idx := g.Insert(p)
	c.Status = Occupied
	c.Sample = idx
	return idx
}

// Neighbours appends to dst the index of every sample that may lie within
// radius of box: samples of occupied top level cells whose boxes come within
// radius of box, plus every sample kept aside by Insert.
func (g *Grid) Neighbours(box geom.Box, dst []int) []int {
	d := g.metric.Dim
	per := float64(g.per)

	for i, iv := range box {
		lo := int(math.Floor((iv.Lo - g.radius) * per))
		hi := int(math.Floor((iv.Hi + g.radius) * per))
		if g.metric.Boundary == geom.Periodic {
			if hi-lo+1 >= g.per {
				// the whole ring, don't visit anything twice
				lo, hi = 0, g.per-1
			}
		} else {
			if lo < 0 {
				lo = 0
			}
			if hi > g.per-1 {
				hi = g.per - 1
			}
			if lo > hi {
				return append(dst, g.extra...)
			}
		}
		g.lo[i], g.hi[i] = lo, hi
	}

	copy(g.at, g.lo)
	for {
		for i := 0; i < d; i++ {
			g.wrap[i], _ = g.metric.Wrap(g.at[i], g.per)
		}
		g.key = encoding.AppendKey(g.key, 0, g.wrap)
		if idx, ok := g.occupied[string(g.key)]; ok {
			if g.metric.BoxDist2(box, geom.CellBox(g.wrap, g.per)) < g.r2 {
				dst = append(dst, idx)
			}
		}

		i := 0
		for ; i < d; i++ {
			g.at[i]++
			if g.at[i] <= g.hi[i] {
				break
			}
			g.at[i] = g.lo[i]
		}
		if i == d {
			break
		}
	}

	return append(dst, g.extra...)
}

// FreeAgainst returns true if p is at least radius from every listed sample.
func (g *Grid) FreeAgainst(p geom.Point, neighbours []int) bool {
	for _, idx := range neighbours {
		if g.metric.Dist2(g.samples[idx], p) < g.r2 {
			return false
		}
	}
	return true
}

// Free returns true if p could be added without breaking the minimum distance.
func (g *Grid) Free(p geom.Point) bool {
	p = g.normalize(p)
	box := make(geom.Box, len(p))
	for i, v := range p {
		box[i] = r1.Interval{Lo: v, Hi: v}
	}
	return g.FreeAgainst(p, g.Neighbours(box, nil))
}

// Covered returns true if a single listed sample's disk swallows all of box,
// meaning no point of box can ever be accepted.
func (g *Grid) Covered(box geom.Box, neighbours []int) bool {
	for _, idx := range neighbours {
		if g.metric.MaxDist2(box, g.samples[idx]) < g.r2 {
			return true
		}
	}
	return false
}
