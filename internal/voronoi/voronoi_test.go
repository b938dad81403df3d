package voronoi_test

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model2d"

	"github.com/voidshard/poissondisk/internal/ebeida"
	"github.com/voidshard/poissondisk/internal/geom"
	"github.com/voidshard/poissondisk/internal/grid"
	"github.com/voidshard/poissondisk/internal/voronoi"
)

var quadrants = []model2d.Coord{
	{X: 0.25, Y: 0.25},
	{X: 0.75, Y: 0.25},
	{X: 0.25, Y: 0.75},
	{X: 0.75, Y: 0.75},
}

func sites(t *testing.T, b geom.Boundary) []model2d.Coord {
	g := grid.New(geom.NewMetric(2, b), 0.08)
	e := ebeida.New(g, rand.New(rand.NewPCG(5, 6)), 4, ebeida.DepthFor(g, 1e-5))
	for e.Next() != nil {
	}

	out := make([]model2d.Coord, 0, len(g.Samples()))
	for _, p := range g.Samples() {
		out = append(out, model2d.Coord{X: p[0], Y: p[1]})
	}
	require.NotEmpty(t, out)
	return out
}

func TestQuadrants(t *testing.T) {
	for _, periodic := range []bool{false, true} {
		v, err := voronoi.New(quadrants, periodic)
		require.NoError(t, err)
		require.Len(t, v.Diagram(), 4)
		require.Equal(t, 4, v.Sites())

		for i := range quadrants {
			cells := v.Cells(i)
			require.Len(t, cells, 1)
			assert.Equal(t, i, cells[0].Site)
			assert.Equal(t, quadrants[i], cells[0].Center)
			assert.Len(t, cells[0].Vertices(), 4)
			assert.InDelta(t, 0.25, v.Area(i), 1e-9)
		}
		assert.Nil(t, v.Cells(-1))
		assert.Nil(t, v.Cells(4))

		assert.Equal(t, []int{1, 2}, v.Neighbours(0))
		assert.Equal(t, []int{0, 3}, v.Neighbours(1))
		assert.Equal(t, []int{1, 2}, v.Neighbours(3))
		assert.Nil(t, v.Neighbours(4))
	}
}

func TestAreasCoverSquare(t *testing.T) {
	for _, b := range []geom.Boundary{geom.Bounded, geom.Periodic} {
		t.Run(b.String(), func(t *testing.T) {
			ss := sites(t, b)
			v, err := voronoi.New(ss, b == geom.Periodic)
			require.NoError(t, err)

			total := 0.0
			for _, c := range v.Diagram() {
				area := c.Area()
				assert.Greater(t, area, 0.0)
				total += area
			}
			assert.InDelta(t, 1, total, 1e-6)

			bySite := 0.0
			for i := range ss {
				assert.Greater(t, v.Area(i), 0.0)
				assert.NotEmpty(t, v.Neighbours(i))
				bySite += v.Area(i)
			}
			assert.InDelta(t, 1, bySite, 1e-6)
		})
	}
}

func TestPeriodicRegionsWrap(t *testing.T) {
	ss := []model2d.Coord{{X: 0.02, Y: 0.5}, {X: 0.5, Y: 0.5}}

	bounded, err := voronoi.New(ss, false)
	require.NoError(t, err)
	assert.Len(t, bounded.Cells(0), 1)
	assert.InDelta(t, 0.26, bounded.Area(0), 1e-9)
	assert.InDelta(t, 0.74, bounded.Area(1), 1e-9)

	// site 0's strip crosses x = 0 & comes back in on the right
	periodic, err := voronoi.New(ss, true)
	require.NoError(t, err)
	assert.Len(t, periodic.Cells(0), 2)
	assert.Len(t, periodic.Cells(1), 1)
	assert.InDelta(t, 0.5, periodic.Area(0), 1e-9)
	assert.InDelta(t, 0.5, periodic.Area(1), 1e-9)
	assert.Equal(t, []int{1}, periodic.Neighbours(0))
	assert.Equal(t, []int{0}, periodic.Neighbours(1))
}

func TestSingleSite(t *testing.T) {
	for _, periodic := range []bool{false, true} {
		v, err := voronoi.New([]model2d.Coord{{X: 0.3, Y: 0.6}}, periodic)
		require.NoError(t, err)
		assert.InDelta(t, 1, v.Area(0), 1e-9)
		assert.Empty(t, v.Neighbours(0))
	}
}

func TestNoSites(t *testing.T) {
	_, err := voronoi.New(nil, false)
	assert.Error(t, err)
}

func TestOutputs(t *testing.T) {
	v, err := voronoi.New(sites(t, geom.Periodic), true)
	require.NoError(t, err)

	mesh := v.Diagram().Mesh()
	assert.NotEmpty(t, mesh.TriangleSlice())

	dir := t.TempDir()
	png := filepath.Join(dir, "voronoi.png")
	stl := filepath.Join(dir, "voronoi.stl")
	require.NoError(t, v.Render(png, 128))
	require.NoError(t, v.SaveSTL(stl))

	for _, fpath := range []string{png, stl} {
		info, err := os.Stat(fpath)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}
