package poissondisk

import (
	"iter"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/voidshard/poissondisk/internal/bridson"
	"github.com/voidshard/poissondisk/internal/ebeida"
	"github.com/voidshard/poissondisk/internal/geom"
	"github.com/voidshard/poissondisk/internal/grid"
)

// engine is what a Sequence pulls samples from
type engine interface {
	Next() geom.Point
	Restrict(p geom.Point)
	SizeHint() (int, int)
}

// Sequence lazily produces the samples of one sampling.
// It's single use, once exhausted it stays exhausted. Stopping early is fine
// and leaves a valid (but not maximal) sampling.
// A Sequence is not safe for concurrent use.
type Sequence struct {
	cfg    Config
	grid   *grid.Grid
	engine engine
	log    *slog.Logger

	count      int
	restricted int
	done       bool
}

// Next returns the next sample, or nil once there are no more.
func (s *Sequence) Next() Sample {
	if s.done {
		return nil
	}

	p := s.engine.Next()
	if p == nil {
		s.done = true
		s.logSummary()
		return nil
	}

	s.count++
	return Sample(p).clone()
}

// All returns an iterator over the remaining samples.
func (s *Sequence) All() iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		for smp := s.Next(); smp != nil; smp = s.Next() {
			if !yield(smp) {
				return
			}
		}
	}
}

// Collect drains the sequence, returning every remaining sample.
func (s *Sequence) Collect() []Sample {
	out := []Sample{}
	for smp := range s.All() {
		out = append(out, smp)
	}
	return out
}

// Done returns true once Next has returned nil
func (s *Sequence) Done() bool {
	return s.done
}

// Restrict adds smp to the sampling as if it were already there; future
// samples keep at least Radius away from it. smp may lie outside the unit
// cube (it then only matters if it's within Radius of the cube) and it need
// not keep the minimum distance itself.
// Restricted samples are never returned by Next.
func (s *Sequence) Restrict(smp Sample) error {
	if len(smp) != s.cfg.Dimension {
		return errors.Wrapf(ErrDimensionMismatch, "got %d want %d", len(smp), s.cfg.Dimension)
	}
	s.engine.Restrict(geom.Point(smp.clone()))
	s.restricted++
	return nil
}

// StaysLegal returns if adding smp would keep every sample at least Radius
// from every other.
func (s *Sequence) StaysLegal(smp Sample) bool {
	if len(smp) != s.cfg.Dimension {
		return false
	}
	return s.grid.Free(geom.Point(smp))
}

// SizeHint returns lower & upper bounds on the number of samples Next has
// left to give.
func (s *Sequence) SizeHint() (int, int) {
	if s.done {
		return 0, 0
	}
	return s.engine.SizeHint()
}

// Config returns the config the sequence was made with
func (s *Sequence) Config() Config {
	return s.cfg
}

// Stats returns generic stats about the sequence so far
func (s *Sequence) Stats() Stats {
	st := Stats{
		Samples:    s.count,
		Restricted: s.restricted,
		Cells:      s.grid.Len(),
		Done:       s.done,
	}

	switch e := s.engine.(type) {
	case *ebeida.Engine:
		es := e.Stats()
		st.Throws = es.Throws
		st.Subdivisions = es.Subdivisions
		st.Rejected = es.Rejected
		st.Deepest = es.Deepest
	case *bridson.Engine:
		bs := e.Stats()
		st.Throws = bs.Throws
		st.Rejected = bs.Retired
	}

	return st
}

// logSummary writes what we did at debug level
func (s *Sequence) logSummary() {
	st := s.Stats()
	s.log.Debug(
		"poisson disk sampling exhausted",
		slog.String("algorithm", s.cfg.Algorithm.String()),
		slog.String("boundary", s.cfg.Boundary.String()),
		slog.Int("dimension", s.cfg.Dimension),
		slog.Float64("radius", s.cfg.Radius),
		slog.Int("samples", st.Samples),
		slog.Int("throws", st.Throws),
		slog.Int("subdivisions", st.Subdivisions),
		slog.Int("rejected", st.Rejected),
		slog.Int("cells", st.Cells),
		slog.Int("deepest", st.Deepest),
	)
}
