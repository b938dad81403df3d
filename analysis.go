package poissondisk

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/voidshard/poissondisk/internal/analysis"
	"github.com/voidshard/poissondisk/internal/geom"
)

// CoverageResolution is the raster size (per axis) Analyse measures 2D
// coverage at.
const CoverageResolution = 512

// Report holds measurements of a sampling, see Analyse
type Report = analysis.Report

// Analyse measures samples generated with cfg: spacing between neighbours,
// packing density &, for 2D, how much of the square is within Radius of a
// sample along with the sizes of the samples' voronoi regions.
func Analyse(samples []Sample, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	points := make([]geom.Point, len(samples))
	for i, s := range samples {
		if len(s) != cfg.Dimension {
			return nil, errors.Wrapf(ErrDimensionMismatch, "sample %d has %d coordinates, want %d", i, len(s), cfg.Dimension)
		}
		points[i] = geom.Point(s)
	}
	r := analysis.Analyse(points, cfg.metric(), cfg.Radius, CoverageResolution)
	if cfg.Dimension != 2 || len(samples) == 0 {
		return r, nil
	}

	v, err := voronoiOf(samples, cfg.Boundary)
	if err != nil {
		return nil, err
	}
	areas := make([]float64, v.Sites())
	neighbours := make([]float64, v.Sites())
	for i := range areas {
		areas[i] = v.Area(i)
		neighbours[i] = float64(len(v.Neighbours(i)))
	}
	r.CellAreaMean = stat.Mean(areas, nil)
	r.NeighboursMean = stat.Mean(neighbours, nil)
	if len(areas) > 1 {
		r.CellAreaStdDev = stat.StdDev(areas, nil)
	}
	return r, nil
}
