package poissondisk

import (
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Document is a sampling with enough information to make sense of it later.
type Document struct {
	ID        uuid.UUID
	Dimension int
	Radius    float64
	Boundary  string
	Algorithm string
	Seed      []uint64 `json:",omitempty"` // whatever seeded the Rand, if known
	Stats     *Stats   `json:",omitempty"`
	Samples   []Sample
}

// NewDocument wraps samples generated with cfg in a Document with a fresh ID.
func NewDocument(cfg Config, samples []Sample) *Document {
	return &Document{
		ID:        uuid.New(),
		Dimension: cfg.Dimension,
		Radius:    cfg.Radius,
		Boundary:  cfg.Boundary.String(),
		Algorithm: cfg.Algorithm.String(),
		Samples:   samples,
	}
}

// Config returns a Config matching the one the document was made with.
// Tuning (throws, floor) is not recorded so defaults are used.
func (d *Document) Config() (Config, error) {
	b, err := ParseBoundary(d.Boundary)
	if err != nil {
		return Config{}, err
	}
	a, err := ParseAlgorithm(d.Algorithm)
	if err != nil {
		return Config{}, err
	}
	cfg := DefaultConfig(d.Dimension, d.Radius)
	cfg.Boundary = b
	cfg.Algorithm = a
	return cfg, cfg.Validate()
}

// JSON returns the document as json.
func (d *Document) JSON() ([]byte, error) {
	return json.Marshal(d)
}

// SaveJSON writes a json file to the given path.
func (d *Document) SaveJSON(fpath string) error {
	data, err := d.JSON()
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	return errors.Wrapf(os.WriteFile(fpath, data, 0644), "writing %s", fpath)
}

// LoadJSON reads a document written by SaveJSON.
func LoadJSON(fpath string) (*Document, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", fpath)
	}
	d := &Document{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", fpath)
	}
	for i, s := range d.Samples {
		if len(s) != d.Dimension {
			return nil, errors.Wrapf(ErrDimensionMismatch, "sample %d has %d coordinates, want %d", i, len(s), d.Dimension)
		}
	}
	return d, nil
}
