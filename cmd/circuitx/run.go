package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	circuit "github.com/wizenheimer/circuitx"
	"github.com/wizenheimer/circuitx/circuitbits"
	"github.com/wizenheimer/circuitx/circuitio"
)

// runOptions mirrors circuit.Config, plus the stats width string (kept
// unparsed until run time so "" vs "default" vs an explicit width are
// distinguishable).
type runOptions struct {
	trace       string
	stats       string
	verifyNaive bool
}

// resolveConfig builds a circuit.Config from flags, falling back to the
// TRACE environment variable when no --trace flag was given.
func (o *runOptions) resolveConfig() circuit.Config {
	mode := circuit.TraceMode(o.trace)
	if mode == circuit.TraceNone {
		mode = circuit.TraceMode(os.Getenv("TRACE"))
	}
	return circuit.Config{TraceMode: mode, VerifyNaive: o.verifyNaive}
}

func runOnce(stdout, stderr io.Writer, stdin io.Reader, opts *runOptions) error {
	layer, err := circuitio.ReadLayer(stdin)
	if err != nil {
		return err
	}

	cfg := opts.resolveConfig()

	verifier := circuit.NewCrossVerifier(layer)
	var tracer *circuit.Tracer
	if cfg.TraceMode != circuit.TraceNone {
		tracer = verifier.EnableTracing()
	}

	var count int
	var crossings []circuit.Crossing

	switch cfg.TraceMode {
	case circuit.TraceModeList, circuit.TraceJSONP:
		crossings, err = verifier.WireCrossings()
		if err != nil {
			return err
		}
		count = len(crossings)
	default:
		count, err = verifier.CountCrossings()
		if err != nil {
			return err
		}
	}

	switch cfg.TraceMode {
	case circuit.TraceModeList:
		if err := circuitio.WriteList(stdout, crossings); err != nil {
			return err
		}
	case circuit.TraceJSONP:
		if err := circuitio.WriteJSONP(stdout, layer, tracer.Events()); err != nil {
			return err
		}
	default:
		if err := circuitio.WriteCount(stdout, count); err != nil {
			return err
		}
	}

	if cfg.VerifyNaive {
		if ref := circuit.ReferenceCrossingCount(layer); ref != count {
			return fmt.Errorf("%w: sweep=%d reference=%d", errNaiveMismatch, count, ref)
		}
	}

	if opts.stats != "" {
		width, err := parseStatsWidth(opts.stats)
		if err != nil {
			return err
		}
		printStats(stderr, layer, width)
	}

	return nil
}

func parseStatsWidth(raw string) (float64, error) {
	if raw == "default" {
		return circuitbits.DefaultBandWidth, nil
	}
	width, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("circuitx: invalid --stats width %q: %w", raw, err)
	}
	return width, nil
}

func printStats(w io.Writer, layer *circuit.WireLayer, width float64) {
	bi := circuitbits.Build(layer, width)
	fmt.Fprintf(w, "bands (width=%g):\n", width)
	for _, r := range bi.Report() {
		fmt.Fprintf(w, "  [%d] from %g: %d wire(s)\n", r.Band, r.Low, r.Count)
	}
}
