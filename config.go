package circuit

// TraceMode selects a run's output format: the crossing count
// (TraceNone), one line per crossing pair (TraceModeList), or the JSONP
// trace (TraceJSONP). The list and JSONP formats replace the count.
type TraceMode string

const (
	TraceNone     TraceMode = ""
	TraceModeList TraceMode = "list"
	TraceJSONP    TraceMode = "jsonp"
)

// Config gathers the knobs external callers (chiefly cmd/circuitx) use
// to drive a run: which trace format to emit, whether to additionally
// cross-check the sweep against the O(N²) reference checker, and the
// band width circuitbits uses for --stats reporting. It carries no
// defaults of its own beyond the zero value (no trace, no verification,
// DefaultBandWidth left to circuitbits): plain data plus a separate
// DefaultXxx() helper rather than a constructor.
type Config struct {
	TraceMode      TraceMode
	VerifyNaive    bool
	StatsBandWidth float64
}

// DefaultConfig returns the zero-configuration behavior: no trace, no
// naive verification, band width left for circuitbits to default.
func DefaultConfig() Config {
	return Config{}
}
