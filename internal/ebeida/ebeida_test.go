package ebeida_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidshard/poissondisk/internal/ebeida"
	"github.com/voidshard/poissondisk/internal/geom"
	"github.com/voidshard/poissondisk/internal/grid"
)

func newEngine(dim int, boundary geom.Boundary, radius float64, seed uint64) *ebeida.Engine {
	g := grid.New(geom.NewMetric(dim, boundary), radius)
	return ebeida.New(g, rand.New(rand.NewPCG(seed, seed+1)), 1<<dim, ebeida.DepthFor(g, 1e-5))
}

func drain(e *ebeida.Engine) []geom.Point {
	out := []geom.Point{}
	for p := e.Next(); p != nil; p = e.Next() {
		out = append(out, p)
	}
	return out
}

func TestDepthFor(t *testing.T) {
	g := grid.New(geom.NewMetric(2, geom.Bounded), 0.1)
	// side 1/15, floor 1e-6 -> log2(1/15 / 1e-6) ~ 16.02
	assert.Equal(t, 17, ebeida.DepthFor(g, 1e-5))
	assert.Equal(t, 0, ebeida.DepthFor(g, 1))
	assert.Equal(t, ebeida.MaxDepth, ebeida.DepthFor(g, 1e-20))
}

func TestMinimumDistance(t *testing.T) {
	for _, boundary := range []geom.Boundary{geom.Bounded, geom.Periodic} {
		t.Run(boundary.String(), func(t *testing.T) {
			const radius = 0.1
			e := newEngine(2, boundary, radius, 42)
			metric := e.Grid().Metric()

			points := drain(e)
			require.True(t, e.Done())
			assert.GreaterOrEqual(t, len(points), 50)
			assert.LessOrEqual(t, len(points), 110)

			for i, a := range points {
				assert.True(t, metric.Contains(a), "%v outside domain", a)
				for _, b := range points[i+1:] {
					assert.GreaterOrEqual(t, metric.Dist(a, b), radius)
				}
			}
		})
	}
}

func TestMaximal(t *testing.T) {
	cases := []struct {
		dim    int
		radius float64
		b      geom.Boundary
	}{
		{2, 0.1, geom.Bounded},
		{2, 0.1, geom.Periodic},
		{3, 0.2, geom.Periodic},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%dd/%s", tc.dim, tc.b), func(t *testing.T) {
			e := newEngine(tc.dim, tc.b, tc.radius, 7)
			drain(e)
			require.True(t, e.Done())

			pick := rand.New(rand.NewPCG(100, 200))
			for i := 0; i < 20000; i++ {
				p := make(geom.Point, tc.dim)
				for j := range p {
					p[j] = pick.Float64()
				}
				require.False(t, e.Grid().Free(p), "%v could still take a sample", p)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	a := drain(newEngine(3, geom.Bounded, 0.25, 5))
	b := drain(newEngine(3, geom.Bounded, 0.25, 5))
	assert.Equal(t, a, b)

	c := drain(newEngine(3, geom.Bounded, 0.25, 6))
	assert.NotEqual(t, a, c)
}

func TestExhaustedStaysExhausted(t *testing.T) {
	e := newEngine(1, geom.Bounded, 0.3, 1)
	points := drain(e)
	assert.NotEmpty(t, points)
	assert.Nil(t, e.Next())
	assert.Nil(t, e.Next())

	lo, hi := e.SizeHint()
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)
}

func TestSizeHint(t *testing.T) {
	e := newEngine(2, geom.Bounded, 0.1, 3)
	lo, hi := e.SizeHint()
	assert.Equal(t, 0, lo)
	assert.Equal(t, e.Grid().TopLevel(), hi)

	taken := 0
	for i := 0; i < 10; i++ {
		require.NotNil(t, e.Next())
		taken++
		_, next := e.SizeHint()
		assert.Equal(t, hi-taken, next)
	}

	rest := drain(e)
	assert.LessOrEqual(t, len(rest), hi-taken)
}

func TestStats(t *testing.T) {
	e := newEngine(2, geom.Bounded, 0.1, 11)
	points := drain(e)
	s := e.Stats()

	assert.Equal(t, len(points), s.Accepted)
	assert.GreaterOrEqual(t, s.Throws, s.Accepted)
	assert.Greater(t, s.Steps, 0)
	assert.Greater(t, s.Rejected, 0)
	assert.LessOrEqual(t, s.Deepest, ebeida.DepthFor(e.Grid(), 1e-5))
}

func TestRestrict(t *testing.T) {
	for _, boundary := range []geom.Boundary{geom.Bounded, geom.Periodic} {
		t.Run(boundary.String(), func(t *testing.T) {
			const radius = 0.1
			e := newEngine(2, boundary, radius, 13)
			forced := geom.Point{0.02, 0.5}
			e.Restrict(forced)

			metric := e.Grid().Metric()
			for _, p := range drain(e) {
				assert.GreaterOrEqual(t, metric.Dist(forced, p), radius)
			}
		})
	}
}

func TestHigherDimensions(t *testing.T) {
	const radius = 0.3
	e := newEngine(4, geom.Periodic, radius, 21)
	metric := e.Grid().Metric()
	points := drain(e)
	require.NotEmpty(t, points)
	for i, a := range points {
		for _, b := range points[i+1:] {
			assert.GreaterOrEqual(t, metric.Dist(a, b), radius)
		}
	}
}

func BenchmarkEngine2D(b *testing.B) {
	for i := 0; i < b.N; i++ {
		drain(newEngine(2, geom.Bounded, 0.02, uint64(i)))
	}
}
