// poissondisk generates Poisson disk samplings from the command line.
//
// Usage:
//
//	poissondisk [flags]
//
// Settings may be given in a yaml / json file (--config) with flags taking
// precedence. Output is json on stdout unless --out & --format say otherwise.
//
// Examples:
//
//	poissondisk -r 0.02 --format png --out samples.png
//	poissondisk --count 500 --boundary periodic --format voronoi --out cells.png
//	poissondisk -d 3 -r 0.1 --seed 7 > samples.json
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/voidshard/poissondisk"
)

// Version may be set via -ldflags "-X main.Version=..."
var Version = "0.1.0-dev"

func main() {
	if err := createApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "poissondisk:", err)
		os.Exit(1)
	}
}

// createApp builds the CLI, writing results to stdout & logs to stderr
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "poissondisk",
		Usage:   "generate Poisson disk samplings of the unit cube",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "yaml or json file of settings"},
			&cli.IntFlag{Name: "dimension", Aliases: []string{"d"}, Usage: "dimension of the unit cube", Value: 2},
			&cli.FloatFlag{Name: "radius", Aliases: []string{"r"}, Usage: "minimum distance between samples", Value: 0.05},
			&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Usage: "roughly how many samples to aim for, overrides radius"},
			&cli.FloatFlag{Name: "relative", Usage: "relative radius in (0, 1] used with --count", Value: 1},
			&cli.StringFlag{Name: "boundary", Aliases: []string{"b"}, Usage: "bounded or periodic", Value: "bounded"},
			&cli.StringFlag{Name: "algorithm", Aliases: []string{"a"}, Usage: "ebeida (maximal) or bridson (fast)", Value: "ebeida"},
			&cli.IntFlag{Name: "throws", Usage: "darts per cell before subdividing, 0 for 2^dimension"},
			&cli.FloatFlag{Name: "floor", Usage: "smallest cell side as a fraction of radius, 0 for the default"},
			&cli.Uint64Flag{Name: "seed", Aliases: []string{"s"}, Usage: "random seed, 0 picks one from the clock"},
			&cli.IntFlag{Name: "max", Usage: "stop after this many samples, 0 for no limit"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file, - for stdout", Value: "-"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: fmt.Sprintf("one of %v", formats), Value: formatJSON},
			&cli.IntFlag{Name: "size", Usage: "image size in pixels", Value: 1024},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cmd.Bool("verbose") {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

			return run(ctx, opts, logger, stdout)
		},
	}
}

// resolveOptions reads the config file (if any) then applies any flags the
// user set explicitly.
func resolveOptions(cmd *cli.Command) (*options, error) {
	opts := defaultOptions()
	if fpath := cmd.String("config"); fpath != "" {
		loaded, err := loadOptions(fpath)
		if err != nil {
			return nil, err
		}
		opts = loaded
	}

	if cmd.IsSet("dimension") {
		opts.Dimension = int(cmd.Int("dimension"))
	}
	if cmd.IsSet("radius") {
		opts.Radius = cmd.Float("radius")
	}
	if cmd.IsSet("count") {
		opts.Count = int(cmd.Int("count"))
	}
	if cmd.IsSet("relative") {
		opts.Relative = cmd.Float("relative")
	}
	if cmd.IsSet("boundary") {
		opts.Boundary = cmd.String("boundary")
	}
	if cmd.IsSet("algorithm") {
		opts.Algorithm = cmd.String("algorithm")
	}
	if cmd.IsSet("throws") {
		opts.Throws = int(cmd.Int("throws"))
	}
	if cmd.IsSet("floor") {
		opts.Floor = cmd.Float("floor")
	}
	if cmd.IsSet("seed") {
		opts.Seed = cmd.Uint64("seed")
	}
	if cmd.IsSet("max") {
		opts.Max = int(cmd.Int("max"))
	}
	if cmd.IsSet("out") {
		opts.Out = cmd.String("out")
	}
	if cmd.IsSet("format") {
		opts.Format = cmd.String("format")
	}
	if cmd.IsSet("size") {
		opts.Size = int(cmd.Int("size"))
	}

	return opts, nil
}

// run generates a sampling & writes it out
func run(ctx context.Context, opts *options, logger *slog.Logger, stdout io.Writer) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}
	cfg.Logger = logger

	gen, err := poissondisk.New(cfg)
	if err != nil {
		return err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	start := time.Now()
	seq := gen.Sequence(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
	samples := []poissondisk.Sample{}
	for s := range seq.All() {
		samples = append(samples, s)
		if opts.Max > 0 && len(samples) >= opts.Max {
			break
		}
		if len(samples)%4096 == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
	}

	stats := seq.Stats()
	logger.Info(
		"generated sampling",
		slog.Int("samples", len(samples)),
		slog.Float64("radius", cfg.Radius),
		slog.Uint64("seed", seed),
		slog.Bool("complete", stats.Done),
		slog.Duration("took", time.Since(start)),
	)

	return write(&result{cfg: gen.Config(), seed: seed, samples: samples, stats: stats}, opts.Format, opts.Out, opts.Size, stdout)
}
