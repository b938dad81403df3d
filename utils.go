package poissondisk

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// savePNG to disk
func savePNG(fpath string, in image.Image) error {
	buff := new(bytes.Buffer)
	err := png.Encode(buff, in)
	if err != nil {
		return errors.Wrap(err, "encoding png")
	}
	return errors.Wrapf(os.WriteFile(fpath, buff.Bytes(), 0644), "writing %s", fpath)
}

// planar returns ErrNotPlanar unless every sample is 2D
func planar(samples []Sample) error {
	for i, s := range samples {
		if len(s) != 2 {
			return errors.Wrapf(ErrNotPlanar, "sample %d has %d coordinates", i, len(s))
		}
	}
	return nil
}
