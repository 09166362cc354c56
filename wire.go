package circuit

import (
	"fmt"
	"sync/atomic"
)

// ErrInvalidGeometry is returned by New when the requested endpoints are
// neither horizontal nor vertical (or degenerate: a single point).
var ErrInvalidGeometry = fmt.Errorf("wire: endpoints are neither horizontal nor vertical")

// nextWireID is the process-wide monotonic counter backing wire identity.
// It is used only for tie-breaking inside OrderKey, never for persistence,
// and must never reuse a value for the life of the process.
var nextWireID atomic.Int64

// Wire is an immutable horizontal or vertical segment on one layer of a
// chip. Wires are created once by WireLayer and never mutated thereafter.
type Wire struct {
	name   string
	x1, y1 float64
	x2, y2 float64
	id     int64
}

// New constructs a Wire, normalizing endpoints so X1 ≤ X2 and Y1 ≤ Y2.
// It fails with ErrInvalidGeometry unless exactly one of the coordinate
// pairs is constant, i.e. (x1 == x2) XOR (y1 == y2).
func New(name string, x1, y1, x2, y2 float64) (Wire, error) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}

	horizontal := y1 == y2
	vertical := x1 == x2
	if horizontal == vertical {
		// Either both hold (degenerate point) or neither does (diagonal).
		return Wire{}, fmt.Errorf("%w: %s (%g,%g)-(%g,%g)", ErrInvalidGeometry, name, x1, y1, x2, y2)
	}

	return Wire{
		name: name,
		x1:   x1, y1: y1,
		x2: x2, y2: y2,
		id: nextWireID.Add(1),
	}, nil
}

// Name returns the wire's user-visible name.
func (w Wire) Name() string { return w.name }

// ID returns the wire's process-wide identity, used only for tie-breaking.
func (w Wire) ID() int64 { return w.id }

// X1, Y1, X2, Y2 return the normalized endpoints (X1 ≤ X2, Y1 ≤ Y2).
func (w Wire) X1() float64 { return w.x1 }
func (w Wire) Y1() float64 { return w.y1 }
func (w Wire) X2() float64 { return w.x2 }
func (w Wire) Y2() float64 { return w.y2 }

// IsHorizontal reports whether the wire's endpoints share a Y coordinate.
func (w Wire) IsHorizontal() bool { return w.y1 == w.y2 }

// IsVertical reports whether the wire's endpoints share an X coordinate.
func (w Wire) IsVertical() bool { return w.x1 == w.x2 }

// Intersects reports whether w and other cross at a single point.
//
// It is not used by CrossVerifier's sweep — the sweep derives the same
// answer from the OrderedIndex without ever calling this method — and
// exists only for the O(N²) reference checker and the CLI's
// --verify-naive flag. Two wires of the same orientation never cross by
// this definition; collinear overlap is explicitly not supported.
//
// The condition is h.x1 ≤ v.x1 ≤ h.x2 AND v.y1 ≤ h.y1 ≤ v.y2: the
// vertical's x must fall within the horizontal's span, and the
// horizontal's y must fall within the vertical's span.
func (w Wire) Intersects(other Wire) bool {
	if w.IsHorizontal() == other.IsHorizontal() {
		return false
	}

	h, v := w, other
	if v.IsHorizontal() {
		h, v = other, w
	}

	return h.x1 <= v.x1 && v.x1 <= h.x2 && v.y1 <= h.y1 && h.y1 <= v.y2
}

func (w Wire) String() string {
	return fmt.Sprintf("<wire %s (%g,%g)-(%g,%g)>", w.name, w.x1, w.y1, w.x2, w.y2)
}
