// Package poissondisk generates Poisson disk samplings: points in the unit
// cube no closer together than a minimum distance, packed in as tightly as
// that allows.
//
// A Generator checks a Config once & then hands out Sequences which lazily
// produce samples on demand.
//
//	gen, err := poissondisk.New(poissondisk.DefaultConfig(2, 0.05))
//	if err != nil {
//		panic(err)
//	}
//	for s := range gen.Sequence(rand.New(rand.NewPCG(1, 2))).All() {
//		fmt.Println(s)
//	}
package poissondisk

import (
	"github.com/voidshard/poissondisk/internal/bridson"
	"github.com/voidshard/poissondisk/internal/ebeida"
	"github.com/voidshard/poissondisk/internal/grid"
)

// Generator creates Sequences for a validated Config
type Generator struct {
	cfg Config
}

// New validates the config & returns a Generator.
// All config errors are reported here, Sequences never fail.
func New(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg.withDefaults()}, nil
}

// Config returns the config in use, with defaults filled in
func (g *Generator) Config() Config {
	return g.cfg
}

// Sequence returns a new, empty, sampling that pulls randomness from rng.
// Each Sequence has its own grid so any number of them may exist at once.
func (g *Generator) Sequence(rng Rand) *Sequence {
	gr := grid.New(g.cfg.metric(), g.cfg.Radius)

	var e engine
	switch g.cfg.Algorithm {
	case Bridson:
		e = bridson.New(gr, rng)
	default:
		e = ebeida.New(gr, rng, g.cfg.Throws, g.cfg.maxDepth(gr))
	}

	return &Sequence{
		cfg:    g.cfg,
		grid:   gr,
		engine: e,
		log:    g.cfg.Logger,
	}
}

// Generate returns a complete sampling.
func (g *Generator) Generate(rng Rand) []Sample {
	return g.Sequence(rng).Collect()
}
