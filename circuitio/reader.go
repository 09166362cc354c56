// Package circuitio provides the textual reader and writers around the
// circuit package's core. These are the "narrow adapters" the core
// specification treats as external collaborators: circuitio never
// touches an OrderedIndex or a CrossVerifier directly, only WireLayer,
// Wire and the trace/crossing types they expose.
package circuitio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wizenheimer/circuitx"
)

// ErrInputSyntax is returned by ReadLayer when a command line is
// malformed: the wrong number of fields, an unrecognized verb, or a
// coordinate that doesn't parse as a number.
var ErrInputSyntax = fmt.Errorf("circuitio: malformed input line")

// ReadLayer reads a sequence of whitespace-separated commands from r
// until a "done" command:
//
//	wire <name> <x1> <y1> <x2> <y2>
//	...
//	done
//
// Coordinates are parsed as floating point. Wire-level failures (a
// duplicate name, invalid geometry) propagate from WireLayer.Add
// unchanged. If r is exhausted before a single non-blank line is seen,
// ReadLayer returns io.EOF unwrapped, so a caller reading a stream of
// back-to-back layers (circuitx watch) can tell a clean end-of-stream
// from a block that was cut off mid-way, which instead fails
// ErrInputSyntax.
func ReadLayer(r io.Reader) (*circuit.WireLayer, error) {
	layer := circuit.NewWireLayer()

	sawLine := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		sawLine = true

		switch fields[0] {
		case "done":
			return layer, nil

		case "wire":
			if len(fields) != 6 {
				return nil, fmt.Errorf("%w: %q", ErrInputSyntax, scanner.Text())
			}
			coords := make([]float64, 4)
			for i, tok := range fields[2:6] {
				v, err := strconv.ParseFloat(tok, 64)
				if err != nil {
					return nil, fmt.Errorf("%w: %q: %v", ErrInputSyntax, scanner.Text(), err)
				}
				coords[i] = v
			}
			if err := layer.Add(fields[1], coords[0], coords[1], coords[2], coords[3]); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("%w: unrecognized command %q", ErrInputSyntax, fields[0])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("circuitio: reading input: %w", err)
	}
	if !sawLine {
		return nil, io.EOF
	}
	// Reaching EOF without a "done" line after some input is itself a
	// syntax error: the grammar requires an explicit terminator.
	return nil, fmt.Errorf("%w: missing \"done\" terminator", ErrInputSyntax)
}
