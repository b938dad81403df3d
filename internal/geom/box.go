package geom

import (
	"math"

	"github.com/golang/geo/r1"
)

// Box is an axis aligned box, one interval per axis. Boxes are half open in
// the sense that random points are drawn from [Lo, Hi).
type Box []r1.Interval

// CellBox returns the box of the cell with the given integer coordinates when
// each axis is split into `per` equal parts.
func CellBox(coords []int, per int) Box {
	b := make(Box, len(coords))
	for i, c := range coords {
		// dividing (rather than multiplying by a side length) keeps the
		// last cell's upper edge at exactly 1
		b[i] = r1.Interval{
			Lo: float64(c) / float64(per),
			Hi: float64(c+1) / float64(per),
		}
	}
	return b
}

// Side returns the length of the first axis; cells are cubes.
func (b Box) Side() float64 {
	if len(b) == 0 {
		return 0
	}
	return b[0].Length()
}

// Volume of the box.
func (b Box) Volume() float64 {
	v := 1.0
	for _, iv := range b {
		v *= iv.Length()
	}
	return v
}

// Center of the box.
func (b Box) Center() Point {
	p := make(Point, len(b))
	for i, iv := range b {
		p[i] = iv.Center()
	}
	return p
}

// Contains returns if p is inside the half open box.
func (b Box) Contains(p Point) bool {
	for i, iv := range b {
		if p[i] < iv.Lo || p[i] >= iv.Hi {
			return false
		}
	}
	return true
}

// Random returns a uniformly random point in [Lo, Hi) on each axis.
func (b Box) Random(rng Source) Point {
	p := make(Point, len(b))
	for i, iv := range b {
		v := iv.Lo + rng.Float64()*iv.Length()
		if v >= iv.Hi {
			// rounding can land us on the open edge
			v = math.Nextafter(iv.Hi, iv.Lo)
		}
		p[i] = v
	}
	return p
}
