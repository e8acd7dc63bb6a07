// mandel renders the Mandelbrot set as ASCII art on standard output and reports how long it took.
//
// With no flags it draws the classic 80x40 frame over re [-2, 1], im [-1.5, 1.5] with 256 iterations.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	mandel "github.com/marben/ascii_mandel"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("run: %v", err)
	}
}

type options struct {
	cfg   mandel.Config
	label string
}

func parseFlags(args []string) (options, error) {
	def := mandel.DefaultConfig()

	fs := flag.NewFlagSet("mandel", flag.ContinueOnError)
	width := fs.Int("width", def.Width, "frame width in characters")
	height := fs.Int("height", def.Height, "frame height in lines")
	maxIter := fs.Int("maxiter", def.MaxIter, "iteration budget per point")
	region := fs.String("region", "default", "region to draw: "+strings.Join(mandel.RegionNames(), ", "))
	workers := fs.Int("workers", def.Workers, "parallel workers, 1 computes sequentially")
	tileRows := fs.Int("tilerows", def.TileRows, "rows per tile handed to a worker")
	label := fs.String("label", "Go", "label printed in front of the timing line")
	verbose := fs.Bool("v", false, "log worker progress to stderr")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	r, err := mandel.RegionByName(*region)
	if err != nil {
		return options{}, err
	}

	cfg := mandel.Config{
		Width:    *width,
		Height:   *height,
		MaxIter:  *maxIter,
		Region:   r,
		Workers:  *workers,
		TileRows: *tileRows,
	}
	if *verbose {
		cfg.Logf = log.Printf
	}
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}
	return options{cfg: cfg, label: *label}, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	start := time.Now()
	frame, err := mandel.LocalProvider{}.GetFrame(ctx, opts.cfg)
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	if err := mandel.WriteLines(out, frame.Lines); err != nil {
		return err
	}

	// The timing line covers printing the frame as well.
	if _, err := fmt.Fprintf(out, "\n%s\n", mandel.TimingLine(opts.label, time.Since(start))); err != nil {
		return fmt.Errorf("write timing: %w", err)
	}
	return nil
}
