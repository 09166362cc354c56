package circuitio

import (
	"fmt"
	"io"

	"github.com/wizenheimer/circuitx"
)

// WriteCount writes the default output format: a single decimal line.
func WriteCount(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, "%d\n", n)
	return err
}

// WriteList writes the TRACE=list output format: one "name_a name_b"
// line per crossing, in the order the crossings were emitted by the
// sweep.
func WriteList(w io.Writer, crossings []circuit.Crossing) error {
	for _, c := range crossings {
		if _, err := fmt.Fprintf(w, "%s %s\n", c[0], c[1]); err != nil {
			return err
		}
	}
	return nil
}
