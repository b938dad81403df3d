package geom

import (
	"math"

	"github.com/golang/geo/r1"
)

// Boundary decides how distances behave at the edges of the unit cube.
type Boundary int

const (
	// Bounded treats space beyond the unit cube as empty, samples near an edge
	// place no restriction on the far side.
	Bounded Boundary = iota

	// Periodic wraps every axis so the cube tiles (a torus).
	Periodic
)

// String returns a human readable boundary name
func (b Boundary) String() string {
	switch b {
	case Bounded:
		return "bounded"
	case Periodic:
		return "periodic"
	}
	return "unknown"
}

// Source is the randomness we need from the outside world.
type Source interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64

	// IntN returns a uniform value in [0, n)
	IntN(n int) int
}

// Point is a location in n dimensional space.
type Point []float64

// Metric computes distances in the unit cube for a given dimension & boundary.
type Metric struct {
	Dim      int
	Boundary Boundary
}

// NewMetric returns a Metric for dim dimensions.
func NewMetric(dim int, b Boundary) Metric {
	return Metric{Dim: dim, Boundary: b}
}

// delta returns the distance between a and b along a single axis.
func (m Metric) delta(a, b float64) float64 {
	d := math.Abs(a - b)
	if m.Boundary == Periodic {
		d = math.Mod(d, 1)
		if d > 0.5 {
			d = 1 - d
		}
	}
	return d
}

// Dist2 returns the squared distance between a and b.
func (m Metric) Dist2(a, b Point) float64 {
	sum := 0.0
	for i := 0; i < m.Dim; i++ {
		d := m.delta(a[i], b[i])
		sum += d * d
	}
	return sum
}

// Dist returns the distance between a and b.
func (m Metric) Dist(a, b Point) float64 {
	return math.Sqrt(m.Dist2(a, b))
}

// Contains returns if p sits inside [0,1)^dim
func (m Metric) Contains(p Point) bool {
	if len(p) != m.Dim {
		return false
	}
	for _, v := range p {
		if v < 0 || v >= 1 || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Wrap maps a grid index onto [0, n) for periodic metrics. For bounded metrics
// an index outside [0, n) is reported as not ok.
func (m Metric) Wrap(i, n int) (int, bool) {
	if m.Boundary == Periodic {
		i %= n
		if i < 0 {
			i += n
		}
		return i, true
	}
	return i, i >= 0 && i < n
}

// minAxis returns the smallest axis distance from x to any point in iv.
func (m Metric) minAxis(iv r1.Interval, x float64) float64 {
	if m.Boundary == Periodic {
		// slide x into [Lo, Lo+1) so containment is a plain compare
		x = iv.Lo + math.Mod(math.Mod(x-iv.Lo, 1)+1, 1)
		if iv.Contains(x) {
			return 0
		}
		return math.Min(m.delta(iv.Lo, x), m.delta(iv.Hi, x))
	}
	if iv.Contains(x) {
		return 0
	}
	return math.Min(math.Abs(iv.Lo-x), math.Abs(iv.Hi-x))
}

// maxAxis returns the largest axis distance from x to any point in iv.
func (m Metric) maxAxis(iv r1.Interval, x float64) float64 {
	if m.Boundary == Periodic {
		// the furthest point on a circle of length 1 is the antipode
		anti := x + 0.5
		anti = iv.Lo + math.Mod(math.Mod(anti-iv.Lo, 1)+1, 1)
		if iv.Contains(anti) {
			return 0.5
		}
	}
	return math.Max(m.delta(iv.Lo, x), m.delta(iv.Hi, x))
}

// gapAxis returns the smallest distance between two intervals along one axis.
func (m Metric) gapAxis(a, b r1.Interval) float64 {
	gap := func(a, b r1.Interval) float64 {
		return math.Max(0, math.Max(b.Lo-a.Hi, a.Lo-b.Hi))
	}
	if m.Boundary != Periodic {
		return gap(a, b)
	}
	best := gap(a, b)
	for _, shift := range []float64{-1, 1} {
		moved := r1.Interval{Lo: b.Lo + shift, Hi: b.Hi + shift}
		best = math.Min(best, gap(a, moved))
	}
	return best
}

// MinDist2 returns the squared distance from p to the nearest point of box.
func (m Metric) MinDist2(box Box, p Point) float64 {
	sum := 0.0
	for i, iv := range box {
		d := m.minAxis(iv, p[i])
		sum += d * d
	}
	return sum
}

// MaxDist2 returns the squared distance from p to the furthest point of box.
// Squared distance is a sum of independent per axis terms, so the maximum is
// the sum of per axis maximums.
func (m Metric) MaxDist2(box Box, p Point) float64 {
	sum := 0.0
	for i, iv := range box {
		d := m.maxAxis(iv, p[i])
		sum += d * d
	}
	return sum
}

// BoxDist2 returns the squared distance between the closest points of a and b.
func (m Metric) BoxDist2(a, b Box) float64 {
	sum := 0.0
	for i := range a {
		d := m.gapAxis(a[i], b[i])
		sum += d * d
	}
	return sum
}

// BallVolume returns the volume of a dim dimensional ball of radius r.
func BallVolume(dim int, r float64) float64 {
	n := float64(dim)
	return math.Pow(math.Pi, n/2) / math.Gamma(n/2+1) * math.Pow(r, n)
}
