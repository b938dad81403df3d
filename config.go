package poissondisk

import (
	"log/slog"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/voidshard/poissondisk/internal/ebeida"
	"github.com/voidshard/poissondisk/internal/geom"
	"github.com/voidshard/poissondisk/internal/grid"
)

const (
	// MaxDimension is the highest dimension we'll sample in
	MaxDimension = 16

	// MaxTopLevelCells caps the number of top level grid cells, which are all
	// created up front.
	MaxTopLevelCells = 1 << 22

	// DefaultFloor is the smallest cell side (as a fraction of the radius)
	// we'll subdivide down to before giving up on a region.
	DefaultFloor = 1e-5
)

// Boundary decides how distances behave at the edges of the unit cube.
type Boundary = geom.Boundary

const (
	// Bounded treats the unit cube as all there is
	Bounded = geom.Bounded

	// Periodic wraps every axis, samples near one edge keep samples away
	// from the opposite edge.
	Periodic = geom.Periodic
)

// ParseBoundary reads a boundary by name (as written by Boundary.String)
func ParseBoundary(in string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "", "bounded":
		return Bounded, nil
	case "periodic", "torus":
		return Periodic, nil
	}
	return Bounded, errors.Wrapf(ErrUnknownBoundary, "%q", in)
}

// Algorithm picks how samples are generated
type Algorithm int

const (
	// Ebeida produces maximal samplings by throwing darts into a shrinking
	// set of grid cells.
	Ebeida Algorithm = iota

	// Bridson grows samples outward from existing ones. Faster, but leaves
	// gaps so the result is not maximal.
	Bridson
)

// String returns a human readable algorithm name
func (a Algorithm) String() string {
	switch a {
	case Ebeida:
		return "ebeida"
	case Bridson:
		return "bridson"
	}
	return "unknown"
}

// ParseAlgorithm reads an algorithm by name (as written by Algorithm.String)
func ParseAlgorithm(in string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "", "ebeida":
		return Ebeida, nil
	case "bridson":
		return Bridson, nil
	}
	return Ebeida, errors.Wrapf(ErrUnknownAlgorithm, "%q", in)
}

// Config holds everything needed to generate a sampling.
// It's read once by New, changing it afterwards has no effect on existing
// Generators.
type Config struct {
	// Dimension of the unit cube we sample in, required
	Dimension int

	// Radius is the minimum distance between any two samples, required.
	// Must be in (0, 1).
	Radius float64

	// Boundary defaults to Bounded
	Boundary Boundary

	// Algorithm defaults to Ebeida
	Algorithm Algorithm

	// Throws is how many darts a cell gets before it is subdivided.
	// 0 implies 2^Dimension. Only used by Ebeida.
	Throws int

	// Floor is the smallest cell side, as a fraction of Radius, that we
	// subdivide down to. 0 implies DefaultFloor. Only used by Ebeida.
	Floor float64

	// Logger for debug output, slog.Default() if not given
	Logger *slog.Logger
}

// DefaultConfig returns a Config using the recommended tuning for the
// given dimension & radius.
func DefaultConfig(dim int, radius float64) Config {
	return Config{
		Dimension: dim,
		Radius:    radius,
		Boundary:  Bounded,
		Algorithm: Ebeida,
		Throws:    1 << dim,
		Floor:     DefaultFloor,
	}
}

// Validate returns an error if the Config cannot be used. Zero Throws / Floor
// are fine, they mean "use the default".
func (c Config) Validate() error {
	if c.Dimension < 1 || c.Dimension > MaxDimension {
		return errors.Wrapf(ErrInvalidDimension, "%d not in [1, %d]", c.Dimension, MaxDimension)
	}
	if math.IsNaN(c.Radius) || c.Radius <= 0 || c.Radius >= 1 {
		return errors.Wrapf(ErrInvalidRadius, "%v not in (0, 1)", c.Radius)
	}
	if c.Boundary != Bounded && c.Boundary != Periodic {
		return errors.Wrapf(ErrUnknownBoundary, "%d", c.Boundary)
	}
	if c.Algorithm != Ebeida && c.Algorithm != Bridson {
		return errors.Wrapf(ErrUnknownAlgorithm, "%d", c.Algorithm)
	}
	if c.Throws < 0 {
		return errors.Wrapf(ErrInvalidThrows, "%d", c.Throws)
	}
	if math.IsNaN(c.Floor) || c.Floor < 0 || c.Floor > 1 {
		return errors.Wrapf(ErrInvalidFloor, "%v not in [0, 1]", c.Floor)
	}

	per := float64(grid.CellsPerAxis(c.Dimension, c.Radius))
	if math.Pow(per, float64(c.Dimension)) > MaxTopLevelCells {
		return errors.Wrapf(
			ErrGridTooLarge,
			"radius %v in %d dimensions needs %v^%d top level cells",
			c.Radius, c.Dimension, per, c.Dimension,
		)
	}

	return nil
}

// withDefaults fills in zero values
func (c Config) withDefaults() Config {
	if c.Throws == 0 {
		c.Throws = 1 << c.Dimension
	}
	if c.Floor == 0 {
		c.Floor = DefaultFloor
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// metric returns the distance function for the config
func (c Config) metric() geom.Metric {
	return geom.NewMetric(c.Dimension, c.Boundary)
}

// maxDepth returns how deep Ebeida is allowed to subdivide
func (c Config) maxDepth(g *grid.Grid) int {
	return ebeida.DepthFor(g, c.Floor)
}
