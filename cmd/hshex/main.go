package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/svanichkin/hshex"
)

const usage = "usage: hshex [-seed N] [-report text|yaml|none] [-v] INPUT OUTPUT STRENGTH\n"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	input, output string
	strength      int
	seed          uint64
	report        hshex.ReportFormat
	noReport      bool
	verbose       bool
}

// parseArgs returns a usage error for anything the core should never see.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("hshex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed (default: current time)")
	report := fs.String("report", "text", "histogram report format: text, yaml or none")
	fs.BoolVar(&opts.verbose, "v", false, "log progress to stderr")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	seeded := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seeded = true
		}
	})
	if !seeded {
		opts.seed = uint64(time.Now().UnixNano())
	}

	if fs.NArg() != 3 {
		fs.Usage()
		return opts, fmt.Errorf("expected 3 arguments, got %d", fs.NArg())
	}
	opts.input, opts.output = fs.Arg(0), fs.Arg(1)

	strength, err := strconv.Atoi(fs.Arg(2))
	if err != nil || strength < 0 {
		return opts, fmt.Errorf("noise strength must be a non-negative integer, got %q", fs.Arg(2))
	}
	opts.strength = strength

	if *report == "none" {
		opts.noReport = true
		return opts, nil
	}
	if opts.report, err = hshex.ParseReportFormat(*report); err != nil {
		return opts, err
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	// Errors from the hshex package carry their own "hshex: " prefix.
	logger := log.New(stderr, "", 0)

	opts, err := parseArgs(args, stderr)
	if err == flag.ErrHelp {
		return 0
	}
	if errors.Is(err, hshex.ErrInvalidArgument) {
		logger.Print(err)
		return 2
	}
	if err != nil {
		logger.Printf("hshex: %v", err)
		return 2
	}

	if err := process(opts, stdout, logger); err != nil {
		logger.Print(err)
		return 1
	}
	return 0
}

func process(opts options, stdout io.Writer, logger *log.Logger) error {
	start := time.Now()

	img, err := hshex.Load(opts.input)
	if err != nil {
		return err
	}
	if opts.verbose {
		logger.Printf("hshex: loaded %s (%dx%d) in %s", opts.input, img.Width(), img.Height(), time.Since(start))
	}

	noisy, err := hshex.ApplyNoise(img, opts.strength, hshex.NewRand(opts.seed))
	if err != nil {
		return err
	}

	if !opts.noReport {
		if err := hshex.WriteReport(stdout, hshex.ComputeHistogram(noisy), opts.report); err != nil {
			return err
		}
	}

	if err := hshex.Save(opts.output, noisy); err != nil {
		return err
	}
	if opts.verbose {
		logger.Printf("hshex: wrote %s (strength=%d, seed=%d) in %s", opts.output, opts.strength, opts.seed, time.Since(start))
	}
	return nil
}
