package poissondisk

// Sample is a point in the unit cube, each coordinate in [0, 1).
// Samples handed out are copies, changing one doesn't affect the sampling.
type Sample []float64

// clone returns a copy of s
func (s Sample) clone() Sample {
	if s == nil {
		return nil
	}
	return append(Sample(nil), s...)
}

// Stats holds generic stats about a Sequence
type Stats struct {
	// Samples returned by Next so far
	Samples int

	// Restricted samples given via Restrict
	Restricted int

	// Throws is the number of candidate points tried
	Throws int

	// Subdivisions is how many cells were split (Ebeida only)
	Subdivisions int `json:",omitempty"`

	// Rejected counts cells (Ebeida) or active samples (Bridson) that were
	// given up on.
	Rejected int

	// Cells materialized in the grid, top level cells included
	Cells int

	// Deepest subdivision level reached (Ebeida only)
	Deepest int `json:",omitempty"`

	// Done is true once the Sequence is exhausted
	Done bool
}
