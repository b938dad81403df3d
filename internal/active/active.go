package active

import (
	"math"

	"github.com/unixpickle/essentials"
)

// Source is the randomness a Set needs to pick cells.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Set holds the ids of cells that may still receive a sample.
//
// Cells are bucketed by depth. A cell at depth k has volume 2^(-dim*k)
// relative to a top level cell, so picking a bucket in proportion to
// len(bucket) * 2^(-dim*k) and then a cell uniformly inside it picks cells
// in proportion to their volume without a global weighted structure.
type Set struct {
	dim     int
	buckets [][]int

	// per id bookkeeping, ids are small dense ints (grid arena indices)
	slot  []int
	depth []int
	size  int
}

// New returns an empty Set for cells of the given dimension.
func New(dim int) *Set {
	return &Set{dim: dim}
}

// weight of one cell at depth k
func (s *Set) weight(depth int) float64 {
	return math.Ldexp(1, -s.dim*depth)
}

// grow makes sure id has bookkeeping space
func (s *Set) grow(id int) {
	for len(s.slot) <= id {
		s.slot = append(s.slot, -1)
		s.depth = append(s.depth, 0)
	}
}

// Insert adds cell id living at the given depth. Inserting an id twice is a no-op.
func (s *Set) Insert(id, depth int) {
	s.grow(id)
	if s.slot[id] >= 0 {
		return
	}
	for len(s.buckets) <= depth {
		s.buckets = append(s.buckets, nil)
	}
	s.slot[id] = len(s.buckets[depth])
	s.depth[id] = depth
	s.buckets[depth] = append(s.buckets[depth], id)
	s.size++
}

// Remove drops cell id, returning false if it was not in the set.
func (s *Set) Remove(id int) bool {
	if !s.Has(id) {
		return false
	}

	depth := s.depth[id]
	at := s.slot[id]
	bucket := s.buckets[depth]
	essentials.UnorderedDelete(&bucket, at)
	if at < len(bucket) {
		// the last id was swapped into our old slot
		s.slot[bucket[at]] = at
	}
	s.buckets[depth] = bucket

	s.slot[id] = -1
	s.size--
	return true
}

// Has returns if id is in the set
func (s *Set) Has(id int) bool {
	return id >= 0 && id < len(s.slot) && s.slot[id] >= 0
}

// Len returns the number of cells in the set
func (s *Set) Len() int {
	return s.size
}

// Empty returns true when no cells remain
func (s *Set) Empty() bool {
	return s.size == 0
}

// Volume returns the summed volume of all cells given the volume of a top
// level cell.
func (s *Set) Volume(base float64) float64 {
	total := 0.0
	for k, bucket := range s.buckets {
		total += float64(len(bucket)) * s.weight(k)
	}
	return total * base
}

// Pick returns a cell id chosen with probability proportional to its volume.
// Returns -1 if the set is empty. The cell stays in the set.
func (s *Set) Pick(rng Source) int {
	if s.size == 0 {
		return -1
	}

	total := s.Volume(1)
	target := rng.Float64() * total

	chosen := -1
	for k, bucket := range s.buckets {
		if len(bucket) == 0 {
			continue
		}
		chosen = k
		target -= float64(len(bucket)) * s.weight(k)
		if target < 0 {
			break
		}
	}
	// if rounding walked us off the end we keep the last non empty bucket

	bucket := s.buckets[chosen]
	return bucket[rng.IntN(len(bucket))]
}
