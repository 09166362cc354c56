package main

import (
	"bufio"
	"errors"
	"io"

	"github.com/spf13/cobra"

	circuit "github.com/wizenheimer/circuitx"
	"github.com/wizenheimer/circuitx/circuitcache"
	"github.com/wizenheimer/circuitx/circuitio"
)

// watchCacheSize bounds how many distinct layers a watch run remembers.
// A watch loop re-submitting the same handful of layers (a build tool
// re-emitting an unchanged netlist on every save) never needs more.
const watchCacheSize = 64

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Read repeated layers (one per \"wire...done\" block) and report each count, reusing cached results for unchanged layers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.OutOrStdout(), cmd.InOrStdin())
		},
	}
}

// byteReader hands out at most one byte per Read, so the scanner inside
// ReadLayer stops right after a block's "done" line and leaves the next
// block unread.
type byteReader struct{ r io.Reader }

func (b byteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return b.r.Read(p[:1])
}

func runWatch(stdout io.Writer, stdin io.Reader) error {
	cache, err := circuitcache.New(watchCacheSize)
	if err != nil {
		return err
	}

	stdin = byteReader{bufio.NewReader(stdin)}
	for {
		layer, err := circuitio.ReadLayer(stdin)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		key, err := circuitcache.Key(layer)
		if err != nil {
			return err
		}

		if result, ok := cache.Get(key); ok {
			if err := circuitio.WriteCount(stdout, result.Count); err != nil {
				return err
			}
			continue
		}

		count, err := circuit.NewCrossVerifier(layer).CountCrossings()
		if err != nil {
			return err
		}
		cache.Put(key, circuitcache.Result{Count: count})

		if err := circuitio.WriteCount(stdout, count); err != nil {
			return err
		}
	}
}
