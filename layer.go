package circuit

import "fmt"

// ErrDuplicateName is returned by WireLayer.Add when a name is already
// present in the layer.
var ErrDuplicateName = fmt.Errorf("circuit: duplicate wire name")

// WireLayer is the layout of one layer of wires in a chip: a mapping
// from unique name to Wire. A layer is built once from input and is
// read-only thereafter — nothing mutates a Wire once it is stored.
type WireLayer struct {
	byName map[string]Wire
	order  []string // insertion order, since map iteration order is not stable
}

// NewWireLayer creates an empty layer.
func NewWireLayer() *WireLayer {
	return &WireLayer{byName: make(map[string]Wire)}
}

// Add constructs a wire from the given endpoints and stores it under name.
// It fails with ErrDuplicateName if name is already present, or with
// whatever error New returns if the geometry is invalid.
func (l *WireLayer) Add(name string, x1, y1, x2, y2 float64) error {
	if _, exists := l.byName[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	w, err := New(name, x1, y1, x2, y2)
	if err != nil {
		return err
	}

	l.byName[name] = w
	l.order = append(l.order, name)
	return nil
}

// Get returns the wire stored under name, if any.
func (l *WireLayer) Get(name string) (Wire, bool) {
	w, ok := l.byName[name]
	return w, ok
}

// Len returns the number of wires in the layer.
func (l *WireLayer) Len() int { return len(l.order) }

// Wires returns the stored wires in insertion order.
func (l *WireLayer) Wires() []Wire {
	wires := make([]Wire, 0, len(l.order))
	for _, name := range l.order {
		wires = append(wires, l.byName[name])
	}
	return wires
}
