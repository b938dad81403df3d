// Package voronoi builds voronoi diagrams over 2D samplings of the unit
// square, for rendering & meshing.
package voronoi

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/poissondisk/internal/analysis"
)

// Voronoi wraps a Diagram with lookups by site
type Voronoi struct {
	diagram  Diagram
	periodic bool
	bySite   [][]int // site -> indexes of its cells in diagram
	adjacent [][]int // site -> sites sharing an edge with it
}

// New builds the voronoi diagram of the given sites, which should lie in
// the unit square. If periodic the square is treated as a torus: copies of
// the sites surround it & any part of a site's region that crosses an edge
// comes back in on the opposite side as another Cell of the same site.
func New(sites []model2d.Coord, periodic bool) (*Voronoi, error) {
	if len(sites) == 0 {
		return nil, errors.New("voronoi diagram requires at least one site")
	}

	neighbours := sites
	if periodic {
		// Tile keeps sites in order, copy i belongs to site i % len(sites)
		neighbours = analysis.Tile(sites)
	}

	v := &Voronoi{
		diagram:  buildCells(model2d.Coord{}, model2d.Coord{X: 1, Y: 1}, neighbours, neighbours, len(sites)),
		periodic: periodic,
		bySite:   make([][]int, len(sites)),
	}
	v.diagram.Repair(1e-8)

	for i, c := range v.diagram {
		v.bySite[c.Site] = append(v.bySite[c.Site], i)
	}
	v.link()
	return v, nil
}

// Diagram returns every cell. Use Cells to find those of one site.
func (v *Voronoi) Diagram() Diagram {
	return v.diagram
}

// Sites returns how many sites the diagram was built from
func (v *Voronoi) Sites() int {
	return len(v.bySite)
}

// Cells returns the cells making up site i's region or nil.
// Only periodic diagrams have more than one cell per site.
func (v *Voronoi) Cells(i int) []*Cell {
	if i < 0 || i >= len(v.bySite) {
		return nil
	}
	out := make([]*Cell, len(v.bySite[i]))
	for j, idx := range v.bySite[i] {
		out[j] = v.diagram[idx]
	}
	return out
}

// Area returns the area of site i's region
func (v *Voronoi) Area(i int) float64 {
	area := 0.0
	for _, c := range v.Cells(i) {
		area += c.Area()
	}
	return area
}

// Neighbours returns the indexes of sites whose regions share an edge with
// site i's, in ascending order.
func (v *Voronoi) Neighbours(i int) []int {
	if i < 0 || i >= len(v.adjacent) {
		return nil
	}
	return append([]int{}, v.adjacent[i]...)
}

// link records which sites share each edge. Periodic diagrams also match
// edges lying on opposite sides of the square.
func (v *Voronoi) link() {
	shared := map[[4]int64][]int{}
	for _, c := range v.diagram {
		for _, e := range c.Edges {
			key := v.edgeKey(e)
			shared[key] = append(shared[key], c.Site)
		}
	}

	found := make([]map[int]bool, len(v.bySite))
	for i := range found {
		found[i] = map[int]bool{}
	}
	for _, owners := range shared {
		for _, a := range owners {
			for _, b := range owners {
				if a != b {
					found[a][b] = true
				}
			}
		}
	}

	v.adjacent = make([][]int, len(found))
	for i, sites := range found {
		v.adjacent[i] = make([]int, 0, len(sites))
		for j := range sites {
			v.adjacent[i] = append(v.adjacent[i], j)
		}
		sort.Ints(v.adjacent[i])
	}
}

// SaveSTL writes the triangulated diagram to path
func (v *Voronoi) SaveSTL(path string) error {
	return errors.Wrapf(v.diagram.Mesh().SaveGroupedSTL(path), "writing %s", path)
}

// Render writes the diagram to a PNG at path, size pixels square.
func (v *Voronoi) Render(path string, size int) error {
	return errors.Wrapf(v.diagram.Render(path, float64(size)), "writing %s", path)
}

// keyScale is the grid edge coordinates are snapped to when matching
const keyScale = 1e7

// edgeKey returns the same key for a segment whichever way round it is.
// Coordinates are snapped so the far side of a periodic square matches the
// near side.
func (v *Voronoi) edgeKey(s *model2d.Segment) [4]int64 {
	snap := func(x float64) int64 {
		q := int64(math.Round(x * keyScale))
		if v.periodic && q == keyScale {
			return 0
		}
		return q
	}
	a := [2]int64{snap(s[0].X), snap(s[0].Y)}
	b := [2]int64{snap(s[1].X), snap(s[1].Y)}
	if b[0] < a[0] || (b[0] == a[0] && b[1] < a[1]) {
		a, b = b, a
	}
	return [4]int64{a[0], a[1], b[0], b[1]}
}
