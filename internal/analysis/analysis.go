// Package analysis measures how good a sampling is: how closely packed it is,
// how even the spacing is & how much of the domain it leaves uncovered.
package analysis

import (
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/unixpickle/model3d/model2d"
	"gonum.org/v1/gonum/stat"

	"github.com/voidshard/poissondisk/internal/geom"
)

// Report holds measurements of one sampling
type Report struct {
	Samples int

	// MinDistance is the closest any two samples are (+Inf with < 2 samples)
	MinDistance float64

	// distance from each sample to its nearest neighbour
	NearestMean   float64
	NearestStdDev float64

	// Density is the fraction of the unit cube covered by disks of half the
	// radius, how tightly the disks are packed.
	Density float64

	// Coverage is the fraction of raster cells whose centre lies within
	// radius of a sample, 1 for a maximal sampling (2D only, else 0).
	Coverage float64 `json:",omitempty"`

	// area of each sample's voronoi region & how many regions border it
	// (2D only, see poissondisk.Analyse)
	CellAreaMean   float64 `json:",omitempty"`
	CellAreaStdDev float64 `json:",omitempty"`
	NeighboursMean float64 `json:",omitempty"`
}

// Analyse measures points, which were sampled with the given metric & radius.
// resolution is the number of raster cells per axis used for Coverage.
func Analyse(points []geom.Point, metric geom.Metric, radius float64, resolution int) *Report {
	r := &Report{
		Samples:     len(points),
		MinDistance: math.Inf(1),
		Density:     float64(len(points)) * geom.BallVolume(metric.Dim, radius/2),
	}

	nearest := NearestDistances(points, metric)
	for _, d := range nearest {
		if d < r.MinDistance {
			r.MinDistance = d
		}
	}
	if len(nearest) > 0 {
		r.NearestMean = stat.Mean(nearest, nil)
	}
	if len(nearest) > 1 {
		r.NearestStdDev = stat.StdDev(nearest, nil)
	}

	if metric.Dim == 2 && resolution > 0 {
		r.Coverage = Coverage(points, metric, radius, resolution)
	}

	return r
}

// NearestDistances returns, for each point, the distance to the closest
// other point. Returns nil with fewer than 2 points.
func NearestDistances(points []geom.Point, metric geom.Metric) []float64 {
	if len(points) < 2 {
		return nil
	}
	if metric.Dim == 2 {
		return nearestPlanar(points, metric)
	}

	out := make([]float64, len(points))
	for i := range out {
		out[i] = math.Inf(1)
	}
	for i, a := range points {
		for j := i + 1; j < len(points); j++ {
			d := metric.Dist(a, points[j])
			out[i] = math.Min(out[i], d)
			out[j] = math.Min(out[j], d)
		}
	}
	return out
}

// nearestPlanar answers NearestDistances with a kd-tree. Periodic samplings
// put the 8 neighbouring copies of the unit square in the tree too.
func nearestPlanar(points []geom.Point, metric geom.Metric) []float64 {
	coords := make([]model2d.Coord, 0, len(points))
	for _, p := range points {
		coords = append(coords, model2d.Coord{X: p[0], Y: p[1]})
	}

	all := coords
	if metric.Boundary == geom.Periodic {
		all = Tile(coords)
	}
	tree := model2d.NewCoordTree(all)

	out := make([]float64, len(coords))
	for i, c := range coords {
		// the closest is always c itself
		knn := tree.KNN(2, c)
		out[i] = knn[1].Dist(c)
	}
	return out
}

// Tile returns coords followed by their copies shifted into the 8 squares
// surrounding the unit square.
func Tile(coords []model2d.Coord) []model2d.Coord {
	out := make([]model2d.Coord, 0, len(coords)*9)
	out = append(out, coords...)
	for dx := -1.0; dx <= 1; dx++ {
		for dy := -1.0; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			shift := model2d.Coord{X: dx, Y: dy}
			for _, c := range coords {
				out = append(out, c.Add(shift))
			}
		}
	}
	return out
}

// Coverage rasterizes the unit square at resolution x resolution & returns
// the fraction of raster cells whose centre is within radius of a point.
func Coverage(points []geom.Point, metric geom.Metric, radius float64, resolution int) float64 {
	bm := bitmap.New(resolution * resolution)
	step := 1 / float64(resolution)
	reach := int(math.Ceil(radius*float64(resolution))) + 1
	r2 := radius * radius

	centre := make(geom.Point, 2)
	for _, p := range points {
		px := int(math.Floor(p[0] * float64(resolution)))
		py := int(math.Floor(p[1] * float64(resolution)))

		for y := py - reach; y <= py+reach; y++ {
			wy, okY := metric.Wrap(y, resolution)
			if !okY {
				continue
			}
			for x := px - reach; x <= px+reach; x++ {
				wx, okX := metric.Wrap(x, resolution)
				if !okX {
					continue
				}
				idx := wy*resolution + wx
				if bm.Get(idx) {
					continue
				}
				centre[0] = (float64(wx) + 0.5) * step
				centre[1] = (float64(wy) + 0.5) * step
				if metric.Dist2(p, centre) < r2 {
					bm.Set(idx, true)
				}
			}
		}
	}

	set := 0
	for i := 0; i < resolution*resolution; i++ {
		if bm.Get(i) {
			set++
		}
	}
	return float64(set) / float64(resolution*resolution)
}
