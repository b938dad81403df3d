package voronoi

import (
	"image/color"
	"math"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
	"github.com/unixpickle/model3d/model3d"
)

// Cell is the part of the unit square closer to Center than to any other
// site. In a periodic diagram a site's region may wrap over an edge of the
// square, in which case it is made of more than one Cell sharing a Site.
type Cell struct {
	Site   int
	Center model2d.Coord
	Edges  []*model2d.Segment
}

// Area of the cell. Cells are convex so we fan out from the mean of the
// corners, which is inside the cell even when Center isn't.
func (c *Cell) Area() float64 {
	vs := c.Vertices()
	if len(vs) < 3 {
		return 0
	}
	mid := model2d.Coord{}
	for _, v := range vs {
		mid = mid.Add(v)
	}
	mid = mid.Scale(1 / float64(len(vs)))

	area := 0.0
	for _, e := range c.Edges {
		a := e[0].Sub(mid)
		b := e[1].Sub(mid)
		area += math.Abs(a.X*b.Y-a.Y*b.X) / 2
	}
	return area
}

// Vertices returns the distinct corners of the cell
func (c *Cell) Vertices() []model2d.Coord {
	seen := map[model2d.Coord]bool{}
	out := []model2d.Coord{}
	for _, e := range c.Edges {
		for _, p := range e {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// Diagram is a set of cells, at least one per site
type Diagram []*Cell

// bisectors is how many of the nearest other sites constrain each cell.
// In a maximal sampling every point is within radius of a site, so sites
// sharing an edge are within 2*radius of each other & there are only so
// many of those.
const bisectors = 32

// minArea is the area below which a clipped cell is considered empty
const minArea = 1e-12

// buildCells computes the voronoi cells of centers clipped to [min, max].
// neighbours holds every site that may border a cell. centers[i] belongs to
// site i % sites & cells that clip away to nothing are dropped.
//
// The resulting cells may be slightly misaligned, i.e. adjacent edges'
// coordinates may differ due to rounding errors. See Diagram.Repair().
func buildCells(min, max model2d.Coord, centers, neighbours []model2d.Coord, sites int) Diagram {
	tree := model2d.NewCoordTree(neighbours)
	k := bisectors + 1
	if k > len(neighbours) {
		k = len(neighbours)
	}

	cells := make(Diagram, 0, len(centers))
	for i, c := range centers {
		constraints := model2d.NewConvexPolytopeRect(min, max)
		for _, c1 := range tree.KNN(k, c) {
			if c == c1 {
				continue
			}
			mp := c.Mid(c1)
			normal := c1.Sub(c).Normalize()
			constraints = addConstraint(constraints, normal, normal.Dot(mp))
		}
		cell := &Cell{
			Site:   i % sites,
			Center: centers[i%sites],
			Edges:  uniqueSegments(constraints.Mesh().SegmentSlice()),
		}
		if cell.Area() < minArea {
			continue
		}
		cells = append(cells, cell)
	}
	return cells
}

// addConstraint appends normal.x <= max unless an equal constraint exists.
// Coincident constraints make the polytope mesh emit overlapping edges.
func addConstraint(c model2d.ConvexPolytope, normal model2d.Coord, max float64) model2d.ConvexPolytope {
	const eps = 1e-9
	for _, l := range c {
		if math.Abs(l.Max-max) < eps && l.Normal.Dist(normal) < eps {
			return c
		}
	}
	return append(c, &model2d.LinearConstraint{Normal: normal, Max: max})
}

// uniqueSegments drops segments repeated (either way round) in segs
func uniqueSegments(segs []*model2d.Segment) []*model2d.Segment {
	seen := map[[2]model2d.Coord]bool{}
	out := segs[:0]
	for _, s := range segs {
		a, b := s[0], s[1]
		if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
			a, b = b, a
		}
		key := [2]model2d.Coord{a, b}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// Repair merges nearly identical coordinates to make a
// well-connected graph.
func (d Diagram) Repair(epsilon float64) {
	coordSlice := d.Coords()
	if len(coordSlice) == 0 {
		return
	}
	coordSet := map[model2d.Coord]bool{}
	for _, c := range coordSlice {
		coordSet[c] = true
	}
	tree := model2d.NewCoordTree(coordSlice)

	mapping := map[model2d.Coord]model2d.Coord{}
	for _, c := range coordSlice {
		if !coordSet[c] {
			continue
		}
		for _, n := range neighborsInDistance(tree, c, epsilon) {
			if coordSet[n] {
				coordSet[n] = false
				mapping[n] = c
			}
		}
	}

	for _, cell := range d {
		for i := 0; i < len(cell.Edges); i++ {
			edge := cell.Edges[i]
			for j, c := range edge {
				edge[j] = mapping[c]
			}
			if edge[0] == edge[1] {
				// this was almost a singular edge
				essentials.UnorderedDelete(&cell.Edges, i)
				i--
			}
		}
	}
}

// Coords returns every distinct vertex in the diagram
func (d Diagram) Coords() []model2d.Coord {
	coordSet := map[model2d.Coord]bool{}
	coordSlice := []model2d.Coord{}
	for _, cell := range d {
		for _, s := range cell.Edges {
			for _, p := range s {
				if !coordSet[p] {
					coordSet[p] = true
					coordSlice = append(coordSlice, p)
				}
			}
		}
	}
	return coordSlice
}

// Render draws cell outlines & centres to a PNG at path. scale is pixels
// per unit.
func (d Diagram) Render(path string, scale float64) error {
	mesh2d := model2d.NewMesh()
	for _, cell := range d {
		mesh2d.AddMesh(model2d.NewMeshSegments(cell.Edges))
	}

	pointsSolid := model2d.JoinedSolid{}
	drawn := map[int]bool{}
	for _, cell := range d {
		if drawn[cell.Site] {
			continue
		}
		drawn[cell.Site] = true
		pointsSolid = append(pointsSolid, &model2d.Circle{
			Center: cell.Center,
			Radius: 2 / scale,
		})
	}

	bg := model2d.NewRect(model2d.Coord{}, model2d.Coord{X: 1, Y: 1})
	return model2d.RasterizeColor(path, []interface{}{
		bg,
		model2d.IntersectedSolid{pointsSolid.Optimize(), bg},
		mesh2d,
	}, []color.Color{
		color.Gray{Y: 0xff},
		color.RGBA{B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, A: 0xff},
	}, scale)
}

// Mesh triangulates every cell into a flat 3D mesh (z = 0).
func (d Diagram) Mesh() *model3d.Mesh {
	mesh := model3d.NewMesh()
	for _, cell := range d {
		mesh2d := model2d.NewMeshSegments(cell.Edges)
		for _, t := range model2d.TriangulateMesh(mesh2d) {
			t3d := &model3d.Triangle{}
			for i, c := range t {
				t3d[i] = model3d.XYZ(c.X, c.Y, 0)
			}
			mesh.Add(t3d)
		}
	}
	return mesh
}

func neighborsInDistance(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; true; k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			return neighbors
		}
		if neighbors[len(neighbors)-1].Dist(c) > epsilon {
			return neighbors[:len(neighbors)-1]
		}
	}
	panic("unreachable")
}
