package poissondisk

import (
	"math"

	"github.com/pkg/errors"
)

// densest known sphere packings in dimensions 2 through 8
var packingDensities = [...]float64{
	math.Pi * math.Sqrt(3) / 6,
	math.Pi * math.Sqrt2 / 6,
	math.Pi * math.Pi / 16,
	math.Pi * math.Pi * math.Sqrt2 / 30,
	math.Pi * math.Pi * math.Pi * math.Sqrt(3) / 144,
	math.Pi * math.Pi * math.Pi / 105,
	math.Pi * math.Pi * math.Pi * math.Pi / 384,
}

// fitted constants for the boundary correction in dimensions 2 through 4
var (
	boundaryAlpha = [...]float64{1.0997, 2.2119, 4.1114}
	boundaryBeta  = [...]float64{-0.4999, -0.3538, -0.3056}
)

// RadiusForSamples returns a radius (minimum distance) that should give
// roughly count samples when generating a maximal sampling with relative = 1.
// Smaller relative values in (0, 1] shrink the radius, giving more samples.
//
// Periodic samplings are supported in 2 to 8 dimensions, Bounded ones in 2
// to 4 since the edges need correcting for.
//
// Based on Gamito, Manuel N., and Steve C. Maddock. "Accurate
// multidimensional Poisson-disk sampling." ACM Transactions on Graphics
// (TOG) 29.1 (2009).
func RadiusForSamples(count int, relative float64, dim int, b Boundary) (float64, error) {
	if count < 1 {
		return 0, errors.Wrapf(ErrInvalidCount, "%d", count)
	}
	if math.IsNaN(relative) || relative <= 0 || relative > 1 {
		return 0, errors.Wrapf(ErrInvalidRelative, "%v not in (0, 1]", relative)
	}

	n := float64(count)
	switch b {
	case Periodic:
		if dim < 2 || dim > 8 {
			return 0, errors.Wrapf(ErrUnsupportedDimension, "periodic supports 2-8, got %d", dim)
		}
	case Bounded:
		if dim < 2 || dim > 4 {
			return 0, errors.Wrapf(ErrUnsupportedDimension, "bounded supports 2-4, got %d", dim)
		}
		n = interiorCount(count, dim)
	default:
		return 0, errors.Wrapf(ErrUnknownBoundary, "%d", b)
	}

	d := float64(dim)
	// the largest half-distance that packs n disks into the unit volume
	maxHalf := packingDensities[dim-2] * math.Gamma(d/2+1) / math.Pow(math.Pi, d/2)
	half := math.Pow(maxHalf/n, 1/d)

	return 2 * half * relative, nil
}

// interiorCount estimates how many samples a periodic sampling would need
// to match the density of count samples in a bounded one, by solving
// n + alpha*n^(beta+1) = count with a few Newton steps.
func interiorCount(count, dim int) float64 {
	alpha := boundaryAlpha[dim-2]
	beta := boundaryBeta[dim-2]
	target := float64(count)

	n := 1.0
	for i := 0; i < 5; i++ {
		n -= (n + alpha*math.Pow(n, beta+1) - target) / (1 + alpha*(beta+1)*math.Pow(n, beta))
		if n < 1 {
			return 1
		}
	}
	return math.Floor(n)
}

// RelativeRadius maps relative in (0, 1] onto a radius, where 1 is the
// largest radius that still makes sense for dim dimensions (the furthest two
// points can be on the periodic unit cube, capped just below 1).
func RelativeRadius(relative float64, dim int) (float64, error) {
	if math.IsNaN(relative) || relative <= 0 || relative > 1 {
		return 0, errors.Wrapf(ErrInvalidRelative, "%v not in (0, 1]", relative)
	}
	if dim < 1 || dim > MaxDimension {
		return 0, errors.Wrapf(ErrInvalidDimension, "%d not in [1, %d]", dim, MaxDimension)
	}
	largest := math.Min(math.Sqrt(float64(dim))/2, math.Nextafter(1, 0))
	return relative * largest, nil
}
