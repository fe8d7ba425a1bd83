// SPDX-License-Identifier: EPL-2.0

// Command smfquant snaps every note of a Standard MIDI File to a quantize grid
// and writes the result to a new file.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/dawcore/config"
	"github.com/ik5/dawcore/sequencer"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "smfquant:", err)
		os.Exit(1)
	}
}

func run(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("smfquant", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: smfquant [flags] <in.mid> <out.mid>")
		fs.PrintDefaults()
	}

	cfgPath := fs.String("config", "", "YAML config file")
	grid := fs.String("grid", "", "quantize grid: off, beat, half, quarter, eighth, triplet (default from config)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("expected input and output files, got %d arguments", fs.NArg())
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			return err
		}
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.Log.Level}))

	q := cfg.Transport.Quantize
	if *grid != "" {
		var err error
		if q, err = sequencer.ParseQuantize(*grid); err != nil {
			return err
		}
	}

	return quantizeFile(fs.Arg(0), fs.Arg(1), q, logger)
}

func quantizeFile(inPath, outPath string, q sequencer.Quantize, logger *slog.Logger) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	tl, info, err := sequencer.ReadSMF(in)
	if err != nil {
		return err
	}

	tl.SetQuantize(q)
	for i := range tl.TrackCount() {
		tl.SelectAll(i)
	}
	moved := tl.QuantizeSelected()
	tl.DeselectAll()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := sequencer.WriteSMF(out, tl, info); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	logger.Info("quantized",
		"input", inPath,
		"output", outPath,
		"grid", q,
		"tracks", tl.TrackCount(),
		"notes", moved,
		"bpm", info.BPM,
	)
	return nil
}
