package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/voidshard/poissondisk"
)

const (
	formatJSON    = "json"
	formatPNG     = "png"
	formatPlot    = "plot"
	formatHTML    = "html"
	formatVoronoi = "voronoi"
	formatSTL     = "stl"
)

// formats lists every output format we understand
var formats = []string{formatJSON, formatPNG, formatPlot, formatHTML, formatVoronoi, formatSTL}

// ErrUnknownFormat is returned for an output format not in formats
var ErrUnknownFormat = errors.New("unknown output format")

// result is a finished run
type result struct {
	cfg     poissondisk.Config
	seed    uint64
	samples []poissondisk.Sample
	stats   poissondisk.Stats
}

// write saves r in the given format. Only json may be written to stdout ("-").
func write(r *result, format, out string, size int, stdout io.Writer) error {
	if out == "-" && format != formatJSON {
		return errors.Errorf("format %s needs an output file", format)
	}

	switch format {
	case formatJSON:
		doc := poissondisk.NewDocument(r.cfg, r.samples)
		doc.Seed = []uint64{r.seed}
		doc.Stats = &r.stats
		if out != "-" {
			return doc.SaveJSON(out)
		}
		data, err := doc.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	case formatPNG:
		return poissondisk.SavePNG(out, r.samples, r.cfg.Radius, r.cfg.Boundary, size, nil)
	case formatPlot:
		return savePlot(out, r, size)
	case formatHTML:
		return saveHTML(out, r, size)
	case formatVoronoi:
		return poissondisk.SaveVoronoi(out, r.samples, r.cfg.Boundary, size)
	case formatSTL:
		return poissondisk.SaveVoronoiSTL(out, r.samples, r.cfg.Boundary)
	}

	return errors.Wrapf(ErrUnknownFormat, "%q (want one of %v)", format, formats)
}

// planar checks the run is 2D, the chart formats draw the first two axes only
// of anything else which would be misleading.
func planar(r *result) error {
	if r.cfg.Dimension != 2 {
		return errors.Wrapf(poissondisk.ErrNotPlanar, "dimension %d", r.cfg.Dimension)
	}
	return nil
}

// savePlot writes a scatter plot (png, svg or pdf by file extension)
func savePlot(out string, r *result, size int) error {
	if err := planar(r); err != nil {
		return err
	}

	xys := make(plotter.XYs, len(r.samples))
	for i, s := range r.samples {
		xys[i] = plotter.XY{X: s[0], Y: s[1]}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s sampling, radius %.4g, %d samples", r.cfg.Algorithm, r.cfg.Radius, len(r.samples))
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "building scatter")
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)

	inches := vg.Length(size) / 96 * vg.Inch
	return errors.Wrapf(p.Save(inches, inches, out), "writing %s", out)
}

// saveHTML writes an interactive scatter chart
func saveHTML(out string, r *result, size int) error {
	if err := planar(r); err != nil {
		return err
	}

	data := make([]opts.ScatterData, 0, len(r.samples))
	for _, s := range r.samples {
		data = append(data, opts.ScatterData{Value: []interface{}{s[0], s[1]}})
	}

	px := fmt.Sprintf("%dpx", size)
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Poisson disk sampling", Width: px, Height: px}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Poisson disk sampling",
			Subtitle: fmt.Sprintf("%s %s radius=%.4g samples=%d seed=%d", r.cfg.Algorithm, r.cfg.Boundary, r.cfg.Radius, len(r.samples), r.seed),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: 0, Max: 1, Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1, Name: "y"}),
	)
	scatter.AddSeries("samples", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return errors.Wrap(err, "rendering chart")
	}
	return errors.Wrapf(os.WriteFile(out, buf.Bytes(), 0644), "writing %s", out)
}
