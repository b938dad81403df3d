package analysis_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/poissondisk/internal/analysis"
	"github.com/voidshard/poissondisk/internal/ebeida"
	"github.com/voidshard/poissondisk/internal/geom"
	"github.com/voidshard/poissondisk/internal/grid"
)

func sample(t *testing.T, metric geom.Metric, radius float64) []geom.Point {
	g := grid.New(metric, radius)
	e := ebeida.New(g, rand.New(rand.NewPCG(3, 4)), 1<<metric.Dim, ebeida.DepthFor(g, 1e-5))
	for e.Next() != nil {
	}
	require.NotEmpty(t, g.Samples())
	return g.Samples()
}

func TestNearestDistances(t *testing.T) {
	points := []geom.Point{{0.1, 0.5}, {0.3, 0.5}, {0.95, 0.5}}

	bounded := analysis.NearestDistances(points, geom.NewMetric(2, geom.Bounded))
	require.Len(t, bounded, 3)
	assert.InDelta(t, 0.2, bounded[0], 1e-12)
	assert.InDelta(t, 0.2, bounded[1], 1e-12)
	assert.InDelta(t, 0.65, bounded[2], 1e-12)

	// 0.95 is 0.15 from 0.1 going round the edge
	periodic := analysis.NearestDistances(points, geom.NewMetric(2, geom.Periodic))
	require.Len(t, periodic, 3)
	assert.InDelta(t, 0.15, periodic[0], 1e-12)
	assert.InDelta(t, 0.2, periodic[1], 1e-12)
	assert.InDelta(t, 0.15, periodic[2], 1e-12)

	assert.Nil(t, analysis.NearestDistances(points[:1], geom.NewMetric(2, geom.Bounded)))
}

func TestNearestDistancesMatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	points := make([]geom.Point, 200)
	for i := range points {
		points[i] = geom.Point{rng.Float64(), rng.Float64()}
	}

	for _, b := range []geom.Boundary{geom.Bounded, geom.Periodic} {
		metric := geom.NewMetric(2, b)
		got := analysis.NearestDistances(points, metric)
		for i, a := range points {
			want := math.Inf(1)
			for j, o := range points {
				if i != j {
					want = math.Min(want, metric.Dist(a, o))
				}
			}
			assert.InDelta(t, want, got[i], 1e-9)
		}
	}
}

func TestTile(t *testing.T) {
	assert.Empty(t, analysis.Tile(nil))

	tiles := analysis.Tile([]model2d.Coord{{X: 0.25, Y: 0.75}})
	require.Len(t, tiles, 9)
	assert.Equal(t, model2d.Coord{X: 0.25, Y: 0.75}, tiles[0])
	assert.Contains(t, tiles, model2d.Coord{X: -0.75, Y: -0.25})
	assert.Contains(t, tiles, model2d.Coord{X: 1.25, Y: 1.75})
}

func TestCoverage(t *testing.T) {
	metric := geom.NewMetric(2, geom.Bounded)
	assert.Equal(t, 0.0, analysis.Coverage(nil, metric, 0.1, 50))

	// a single disk of radius 0.1 covers about pi/100 of the square
	one := analysis.Coverage([]geom.Point{{0.5, 0.5}}, metric, 0.1, 400)
	assert.InDelta(t, math.Pi/100, one, 0.002)

	// and wraps round the edges when periodic
	corner := analysis.Coverage([]geom.Point{{0, 0}}, geom.NewMetric(2, geom.Periodic), 0.1, 400)
	assert.InDelta(t, math.Pi/100, corner, 0.002)
}

func TestAnalyseMaximalSampling(t *testing.T) {
	for _, b := range []geom.Boundary{geom.Bounded, geom.Periodic} {
		t.Run(b.String(), func(t *testing.T) {
			const radius = 0.05
			metric := geom.NewMetric(2, b)
			points := sample(t, metric, radius)

			r := analysis.Analyse(points, metric, radius, 256)
			assert.Equal(t, len(points), r.Samples)
			assert.GreaterOrEqual(t, r.MinDistance, radius)
			assert.GreaterOrEqual(t, r.NearestMean, r.MinDistance)
			assert.Less(t, r.NearestMean, 2*radius)
			assert.Greater(t, r.NearestStdDev, 0.0)
			assert.Equal(t, 1.0, r.Coverage)

			// maximal samplings pack somewhere short of the best packing
			assert.Greater(t, r.Density, 0.4)
			assert.Less(t, r.Density, 0.91)
		})
	}
}

func TestAnalyseHigherDimension(t *testing.T) {
	const radius = 0.2
	metric := geom.NewMetric(3, geom.Periodic)
	points := sample(t, metric, radius)

	r := analysis.Analyse(points, metric, radius, 64)
	assert.GreaterOrEqual(t, r.MinDistance, radius)
	assert.Zero(t, r.Coverage)
}
