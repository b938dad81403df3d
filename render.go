package poissondisk

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/image/colornames"

	"github.com/voidshard/poissondisk/internal/voronoi"
)

// ColourScheme defines how a rendered sampling should look.
type ColourScheme struct {
	Background color.Color
	Samples    color.Color
	Disks      color.Color // nil to skip drawing disks

	// SampleSize is the radius of the dot drawn for each sample, in pixels
	SampleSize float64
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.White,
		Samples:    colornames.Black,
		Disks:      colornames.Lightsteelblue,
		SampleSize: 1.5,
	}
}

// Image draws a 2D sampling onto a size x size image. Each sample gets a disk
// of half the radius so the disks just touch where samples are as close as
// allowed. Periodic samplings also draw the parts of disks that wrap around
// the edges.
func Image(samples []Sample, radius float64, b Boundary, size int, scheme *ColourScheme) (image.Image, error) {
	if err := planar(samples); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, errors.Errorf("invalid image size %d", size)
	}
	if scheme == nil {
		scheme = DefaultScheme()
	}

	ctx := gg.NewContext(size, size)
	ctx.SetColor(scheme.Background)
	ctx.Clear()

	scale := float64(size)

	// offsets we draw each shape at, the 3x3 images of the unit square if
	// we're periodic
	offsets := [][2]float64{{0, 0}}
	if b == Periodic {
		offsets = offsets[:0]
		for dx := -1.0; dx <= 1; dx++ {
			for dy := -1.0; dy <= 1; dy++ {
				offsets = append(offsets, [2]float64{dx, dy})
			}
		}
	}

	if scheme.Disks != nil {
		ctx.SetColor(scheme.Disks)
		for _, s := range samples {
			for _, o := range offsets {
				ctx.DrawCircle((s[0]+o[0])*scale, (s[1]+o[1])*scale, radius/2*scale)
				ctx.Fill()
			}
		}
	}

	ctx.SetColor(scheme.Samples)
	for _, s := range samples {
		ctx.DrawCircle(s[0]*scale, s[1]*scale, scheme.SampleSize)
		ctx.Fill()
	}

	return ctx.Image(), nil
}

// SavePNG renders a 2D sampling (see Image) & writes it to fpath.
func SavePNG(fpath string, samples []Sample, radius float64, b Boundary, size int, scheme *ColourScheme) error {
	im, err := Image(samples, radius, b, size, scheme)
	if err != nil {
		return err
	}
	return savePNG(fpath, im)
}

// voronoiOf builds the voronoi diagram of a 2D sampling
func voronoiOf(samples []Sample, b Boundary) (*voronoi.Voronoi, error) {
	if err := planar(samples); err != nil {
		return nil, err
	}
	sites := make([]model2d.Coord, len(samples))
	for i, s := range samples {
		sites[i] = model2d.Coord{X: s[0], Y: s[1]}
	}
	return voronoi.New(sites, b == Periodic)
}

// SaveVoronoi renders the voronoi diagram of a 2D sampling to a PNG,
// size pixels square.
func SaveVoronoi(fpath string, samples []Sample, b Boundary, size int) error {
	v, err := voronoiOf(samples, b)
	if err != nil {
		return err
	}
	return v.Render(fpath, size)
}

// SaveVoronoiSTL triangulates the voronoi diagram of a 2D sampling & writes
// it as an STL mesh (flat, z = 0).
func SaveVoronoiSTL(fpath string, samples []Sample, b Boundary) error {
	v, err := voronoiOf(samples, b)
	if err != nil {
		return err
	}
	return v.SaveSTL(fpath)
}
