package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/voidshard/poissondisk"
)

// ErrUnsupportedFormat is returned for config files that aren't yaml or json
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// options is everything a run needs, read from a config file and / or flags.
type options struct {
	Dimension int     `koanf:"dimension"`
	Radius    float64 `koanf:"radius"`
	Count     int     `koanf:"count"`    // if set, radius is derived from it
	Relative  float64 `koanf:"relative"` // used with count
	Boundary  string  `koanf:"boundary"`
	Algorithm string  `koanf:"algorithm"`
	Throws    int     `koanf:"throws"`
	Floor     float64 `koanf:"floor"`
	Seed      uint64  `koanf:"seed"`
	Max       int     `koanf:"max"` // stop after this many samples, 0 is no limit

	Out    string `koanf:"out"`
	Format string `koanf:"format"`
	Size   int    `koanf:"size"` // pixels, for image formats
}

// defaultOptions returns the options used when nothing is given
func defaultOptions() *options {
	return &options{
		Dimension: 2,
		Radius:    0.05,
		Relative:  1,
		Boundary:  poissondisk.Bounded.String(),
		Algorithm: poissondisk.Ebeida.String(),
		Out:       "-",
		Format:    formatJSON,
		Size:      1024,
	}
}

// loadOptions reads a yaml or json file over the top of defaultOptions
func loadOptions(fpath string) (*options, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(fpath)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", fpath)
	}

	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", fpath)
	}

	k := koanf.New(".")
	if len(data) > 0 {
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", fpath)
		}
	}

	opts := defaultOptions()
	if err := k.UnmarshalWithConf("", opts, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", fpath)
	}
	return opts, nil
}

// config turns options into a library Config
func (o *options) config() (poissondisk.Config, error) {
	b, err := poissondisk.ParseBoundary(o.Boundary)
	if err != nil {
		return poissondisk.Config{}, err
	}
	a, err := poissondisk.ParseAlgorithm(o.Algorithm)
	if err != nil {
		return poissondisk.Config{}, err
	}

	radius := o.Radius
	if o.Count > 0 {
		radius, err = poissondisk.RadiusForSamples(o.Count, o.Relative, o.Dimension, b)
		if err != nil {
			return poissondisk.Config{}, err
		}
	}

	cfg := poissondisk.Config{
		Dimension: o.Dimension,
		Radius:    radius,
		Boundary:  b,
		Algorithm: a,
		Throws:    o.Throws,
		Floor:     o.Floor,
	}
	return cfg, cfg.Validate()
}
