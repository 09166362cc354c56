package circuit

import (
	"fmt"
	"log/slog"
	"sort"
)

// Event phases. At equal x, adds run before queries, which run before
// deletes — so a vertical wire coincident with a horizontal's left
// endpoint sees it (add-before-query), and one coincident with its
// right endpoint also sees it (query-before-delete).
const (
	AddPhase = iota
	QueryPhase
	DeletePhase
)

// ErrAlreadyRun is returned by CountCrossings or WireCrossings when the
// verifier has already produced a result once.
var ErrAlreadyRun = fmt.Errorf("circuit: verifier already run")

type eventKind int8

const (
	kindAdd eventKind = iota
	kindQuery
	kindDelete
)

type event struct {
	x      float64
	phase  int
	wireID int64
	kind   eventKind
	wire   Wire
}

// indexOps is the subset of OrderedIndex's contract CrossVerifier needs.
// *OrderedIndex and *Tracer both satisfy it, which lets the verifier run
// identically whether or not tracing is enabled.
type indexOps interface {
	Insert(OrderKey) error
	Remove(OrderKey) error
	List(lo, hi OrderKey) []OrderKey
	Count(lo, hi OrderKey) int
}

// sinkOps is the subset of ResultSink's contract CrossVerifier needs.
type sinkOps interface {
	Add(w1, w2 Wire)
}

// CrossVerifier is the sweep-line driver: it builds events from a
// WireLayer, sorts them once, and replays them as a sequence of
// OrderedIndex operations, emitting crossings to a ResultSink.
//
// A CrossVerifier may produce a result at most once; a second call to
// CountCrossings or WireCrossings fails with ErrAlreadyRun.
type CrossVerifier struct {
	events    []event
	wireByID  map[int64]Wire
	performed bool
	logger    *slog.Logger

	rawIndex *OrderedIndex
	rawSink  *ResultSink
	index    indexOps
	sink     sinkOps
	tracer   *Tracer
}

// NewCrossVerifier builds the sweep's event list from layer (sorted once,
// up front) and returns a verifier ready to run.
func NewCrossVerifier(layer *WireLayer) *CrossVerifier {
	rawIndex := NewOrderedIndex()
	rawSink := NewResultSink()

	v := &CrossVerifier{
		wireByID: make(map[int64]Wire, layer.Len()),
		logger:   slog.Default(),
		rawIndex: rawIndex,
		rawSink:  rawSink,
		index:    rawIndex,
		sink:     rawSink,
	}
	v.buildEvents(layer)
	return v
}

// WithLogger installs a custom logger and returns the verifier for
// chaining. Must be called before Count/WireCrossings.
func (v *CrossVerifier) WithLogger(logger *slog.Logger) *CrossVerifier {
	v.logger = logger
	v.rawIndex.WithLogger(logger)
	return v
}

// EnableTracing wraps the verifier's index and sink in a Tracer and
// returns it; subsequent index/sink operations are recorded. Must be
// called before Count/WireCrossings and must not alter their results.
func (v *CrossVerifier) EnableTracing() *Tracer {
	tracer := NewTracer(v.rawIndex, v.rawSink, v.wireName)
	v.index = tracer
	v.sink = tracer
	v.tracer = tracer
	return tracer
}

func (v *CrossVerifier) wireName(id int64) string {
	if w, ok := v.wireByID[id]; ok {
		return w.Name()
	}
	return ""
}

func (v *CrossVerifier) buildEvents(layer *WireLayer) {
	for _, w := range layer.Wires() {
		v.wireByID[w.ID()] = w

		if w.IsHorizontal() {
			v.events = append(v.events,
				event{x: w.X1(), phase: AddPhase, wireID: w.ID(), kind: kindAdd, wire: w},
				event{x: w.X2(), phase: DeletePhase, wireID: w.ID(), kind: kindDelete, wire: w},
			)
		} else {
			v.events = append(v.events,
				event{x: w.X1(), phase: QueryPhase, wireID: w.ID(), kind: kindQuery, wire: w},
			)
		}
	}

	sort.Slice(v.events, func(i, j int) bool {
		a, b := v.events[i], v.events[j]
		if a.x != b.x {
			return a.x < b.x
		}
		if a.phase != b.phase {
			return a.phase < b.phase
		}
		return a.wireID < b.wireID
	})
}

// CountCrossings returns the number of crossing (horizontal, vertical)
// pairs in the layer. May be called at most once per verifier.
func (v *CrossVerifier) CountCrossings() (int, error) {
	if v.performed {
		return 0, ErrAlreadyRun
	}
	v.performed = true

	v.logger.Info("sweep starting", slog.Int("events", len(v.events)))
	n, err := v.compute(true)
	if err != nil {
		return 0, err
	}
	v.logger.Info("sweep finished", slog.Int("crossings", n))
	return n, nil
}

// WireCrossings returns every crossing pair. May be called at most once
// per verifier (including as an alternative to CountCrossings).
func (v *CrossVerifier) WireCrossings() ([]Crossing, error) {
	if v.performed {
		return nil, ErrAlreadyRun
	}
	v.performed = true

	v.logger.Info("sweep starting", slog.Int("events", len(v.events)))
	if _, err := v.compute(false); err != nil {
		return nil, err
	}
	result := v.rawSink.Crossings()
	v.logger.Info("sweep finished", slog.Int("crossings", len(result)))
	return result, nil
}

// compute replays the event list. With countOnly set, query events add
// to a running total via Count (O(log N), no enumeration); otherwise
// they enumerate via List and hand each match to the sink.
func (v *CrossVerifier) compute(countOnly bool) (int, error) {
	count := 0

	for _, ev := range v.events {
		if v.tracer != nil {
			v.tracer.Sweep(ev.x)
		}

		switch ev.kind {
		case kindAdd:
			key := ExactKey(ev.wire.Y1(), ev.wire.ID())
			if err := v.index.Insert(key); err != nil {
				return 0, fmt.Errorf("circuit: sweep add %s: %w", ev.wire.Name(), err)
			}

		case kindDelete:
			key := ExactKey(ev.wire.Y1(), ev.wire.ID())
			if err := v.index.Remove(key); err != nil {
				return 0, fmt.Errorf("circuit: sweep delete %s: %w", ev.wire.Name(), err)
			}

		case kindQuery:
			lo := LowSentinel(ev.wire.Y1())
			hi := HighSentinel(ev.wire.Y2())
			if countOnly {
				count += v.index.Count(lo, hi)
				continue
			}
			for _, k := range v.index.List(lo, hi) {
				if hw, ok := v.wireByID[k.ID()]; ok {
					v.sink.Add(ev.wire, hw)
				}
			}
		}
	}

	return count, nil
}
