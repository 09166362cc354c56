// Package circuitcache memoizes repeated CrossVerifier runs against the
// same serialized layer. It sits entirely outside the core's contract —
// a CLI-level optimization for the common case of re-running against
// piped input that hasn't changed (a watch loop, a re-submitted file) —
// and is never consulted by circuit itself.
package circuitcache

import (
	"encoding/json"
	"fmt"
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru/v2"

	circuit "github.com/wizenheimer/circuitx"
)

// Result is the memoized outcome of one CrossVerifier run.
type Result struct {
	Count     int
	Crossings []circuit.Crossing
}

// wireRecord is the stable, order-independent shape a layer is hashed
// from: field order and map iteration order must never leak into the
// key, so wires are sorted by name before hashing.
type wireRecord struct {
	Name string  `json:"name"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

// Cache is an LRU of layer-content-hash to verifier Result. It counts
// the Get calls that found an entry (see Hits) so tests can tell a
// cached lookup from a miss.
type Cache struct {
	lru  *lru.Cache[uint64, Result]
	hits int
}

// New returns a Cache holding at most size entries.
func New(size int) (*Cache, error) {
	l, err := lru.New[uint64, Result](size)
	if err != nil {
		return nil, fmt.Errorf("circuitcache: %w", err)
	}
	return &Cache{lru: l}, nil
}

// Key returns the content hash circuitcache uses to identify a layer.
// Two layers with the same wires (any order, any names-to-id binding)
// hash identically: wire identity (the process-wide counter) never
// enters the key, only the geometry and name a caller supplied.
func Key(layer *circuit.WireLayer) (uint64, error) {
	wires := layer.Wires()
	records := make([]wireRecord, len(wires))
	for i, w := range wires {
		records[i] = wireRecord{Name: w.Name(), X1: w.X1(), Y1: w.Y1(), X2: w.X2(), Y2: w.Y2()}
	}
	sortRecords(records)

	data, err := json.Marshal(records)
	if err != nil {
		return 0, fmt.Errorf("circuitcache: hashing layer: %w", err)
	}

	h := fnv.New64a()
	h.Write(data)
	return h.Sum64(), nil
}

func sortRecords(records []wireRecord) {
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && records[j].Name < records[j-1].Name; j-- {
			records[j], records[j-1] = records[j-1], records[j]
		}
	}
}

// Get returns the memoized Result for key, if present.
func (c *Cache) Get(key uint64) (Result, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits++
	}
	return v, ok
}

// Put stores a Result under key, evicting the least-recently-used entry
// if the cache is at capacity.
func (c *Cache) Put(key uint64, result Result) {
	c.lru.Add(key, result)
}

// Hits reports how many Get calls found a memoized entry, for tests
// that assert a second run skipped the sweep entirely.
func (c *Cache) Hits() int { return c.hits }

// Len reports the number of entries currently cached.
func (c *Cache) Len() int { return c.lru.Len() }
