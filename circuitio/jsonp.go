package circuitio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wizenheimer/circuitx"
)

type wireJSON struct {
	ID string     `json:"id"`
	X  [2]float64 `json:"x"`
	Y  [2]float64 `json:"y"`
}

type layerJSON struct {
	Wires []wireJSON `json:"wires"`
}

func layerToJSON(layer *circuit.WireLayer) layerJSON {
	wires := layer.Wires()
	out := layerJSON{Wires: make([]wireJSON, len(wires))}
	for i, w := range wires {
		out.Wires[i] = wireJSON{
			ID: w.Name(),
			X:  [2]float64{w.X1(), w.X2()},
			Y:  [2]float64{w.Y1(), w.Y2()},
		}
	}
	return out
}

// traceEventToJSON renders one circuit.TraceEvent using the exact shape
// the external visualizer expects, which varies by event type — in
// particular a "list" event carries either "ids" or "count", never both.
func traceEventToJSON(ev circuit.TraceEvent) map[string]any {
	switch ev.Type {
	case circuit.TraceSweep:
		return map[string]any{"type": "sweep", "x": ev.X}
	case circuit.TraceAdd:
		return map[string]any{"type": "add", "id": ev.ID}
	case circuit.TraceDelete:
		return map[string]any{"type": "delete", "id": ev.ID}
	case circuit.TraceCrossing:
		return map[string]any{"type": "crossing", "id1": ev.ID1, "id2": ev.ID2}
	case circuit.TraceList:
		m := map[string]any{"type": "list", "from": ev.From, "to": ev.To}
		if ev.Count != nil {
			m["count"] = *ev.Count
		} else {
			m["ids"] = ev.IDs
		}
		return m
	default:
		return map[string]any{"type": ev.Type}
	}
}

// WriteJSONP writes the TRACE=jsonp output format: a single
// "onJsonp(<json>);" line wrapping {"layer": ..., "trace": ...}.
func WriteJSONP(w io.Writer, layer *circuit.WireLayer, trace []circuit.TraceEvent) error {
	events := make([]map[string]any, len(trace))
	for i, ev := range trace {
		events[i] = traceEventToJSON(ev)
	}

	payload := map[string]any{
		"layer": layerToJSON(layer),
		"trace": events,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("circuitio: encoding trace: %w", err)
	}

	_, err = fmt.Fprintf(w, "onJsonp(%s);\n", data)
	return err
}
