package poissondisk

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidDimension implies the dimension is outside [1, MaxDimension]
	ErrInvalidDimension = errors.New("poissondisk: invalid dimension")

	// ErrInvalidRadius implies the radius is not in (0, 1)
	ErrInvalidRadius = errors.New("poissondisk: invalid radius")

	// ErrInvalidThrows implies a negative number of throws per cell
	ErrInvalidThrows = errors.New("poissondisk: invalid throws")

	// ErrInvalidFloor implies the subdivision floor is not in [0, 1]
	ErrInvalidFloor = errors.New("poissondisk: invalid floor")

	// ErrUnknownBoundary is returned for boundaries other than Bounded / Periodic
	ErrUnknownBoundary = errors.New("poissondisk: unknown boundary")

	// ErrUnknownAlgorithm is returned for algorithms we don't implement
	ErrUnknownAlgorithm = errors.New("poissondisk: unknown algorithm")

	// ErrGridTooLarge implies the radius is too small for the dimension, we'd
	// need more than MaxTopLevelCells cells just to start.
	ErrGridTooLarge = errors.New("poissondisk: grid too large")

	// ErrDimensionMismatch is returned when a sample doesn't match the
	// configured dimension
	ErrDimensionMismatch = errors.New("poissondisk: dimension mismatch")

	// ErrNotPlanar is returned by things that only make sense in 2D
	ErrNotPlanar = errors.New("poissondisk: samples are not 2 dimensional")

	// ErrInvalidCount implies a requested sample count below 1
	ErrInvalidCount = errors.New("poissondisk: invalid sample count")

	// ErrInvalidRelative implies a relative radius outside (0, 1]
	ErrInvalidRelative = errors.New("poissondisk: invalid relative radius")

	// ErrUnsupportedDimension is returned when we have no constants to
	// estimate a radius in the given dimension
	ErrUnsupportedDimension = errors.New("poissondisk: unsupported dimension")
)
