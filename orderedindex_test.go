package circuit

import (
	"errors"
	"math/rand"
	"sort"
	"testing"
)

func TestOrderedIndex_EmptyTree(t *testing.T) {
	idx := NewOrderedIndex()
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	if idx.Height() != -1 {
		t.Errorf("Height() = %d, want -1", idx.Height())
	}
	if got := idx.List(LowSentinel(0), HighSentinel(100)); len(got) != 0 {
		t.Errorf("List() on empty tree = %v, want empty", got)
	}
	if got := idx.Count(LowSentinel(0), HighSentinel(100)); got != 0 {
		t.Errorf("Count() on empty tree = %d, want 0", got)
	}
}

func TestOrderedIndex_InsertDuplicate(t *testing.T) {
	idx := NewOrderedIndex()
	k := ExactKey(5, 1)
	if err := idx.Insert(k); err != nil {
		t.Fatal(err)
	}
	if err := idx.Insert(k); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("Insert() duplicate error = %v, want ErrDuplicateKey", err)
	}
}

func TestOrderedIndex_RemoveMissing(t *testing.T) {
	idx := NewOrderedIndex()
	if err := idx.Remove(ExactKey(5, 1)); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("Remove() error = %v, want ErrMissingKey", err)
	}
}

func TestOrderedIndex_ListAscending(t *testing.T) {
	idx := NewOrderedIndex()
	coords := []float64{5, 1, 9, 3, 7, 2, 8, 4, 6, 0}
	for i, c := range coords {
		if err := idx.Insert(ExactKey(c, int64(i))); err != nil {
			t.Fatal(err)
		}
	}

	got := idx.List(LowSentinel(-1000), HighSentinel(1000))
	if len(got) != len(coords) {
		t.Fatalf("List() len = %d, want %d", len(got), len(coords))
	}
	for i := 1; i < len(got); i++ {
		if !got[i-1].Less(got[i]) {
			t.Fatalf("List() not strictly ascending at index %d: %v >= %v", i, got[i-1], got[i])
		}
	}
}

func TestOrderedIndex_EmptyRangeReturnsNothing(t *testing.T) {
	idx := NewOrderedIndex()
	for i := 0; i < 5; i++ {
		if err := idx.Insert(ExactKey(float64(i), int64(i))); err != nil {
			t.Fatal(err)
		}
	}

	// hi < lo: empty range, no error.
	if got := idx.List(HighSentinel(10), LowSentinel(0)); len(got) != 0 {
		t.Errorf("List() with hi<lo = %v, want empty", got)
	}
	if got := idx.Count(HighSentinel(10), LowSentinel(0)); got != 0 {
		t.Errorf("Count() with hi<lo = %d, want 0", got)
	}

	// Entirely outside the tree.
	if got := idx.List(LowSentinel(100), HighSentinel(200)); len(got) != 0 {
		t.Errorf("List() outside tree = %v, want empty", got)
	}
}

func TestOrderedIndex_CountMatchesListLength(t *testing.T) {
	idx := NewOrderedIndex()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		c := float64(rng.Intn(1000))
		if err := idx.Insert(ExactKey(c, int64(i))); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 50; i++ {
		lo := float64(rng.Intn(1000))
		hi := lo + float64(rng.Intn(200))
		count := idx.Count(LowSentinel(lo), HighSentinel(hi))
		list := idx.List(LowSentinel(lo), HighSentinel(hi))
		if count != len(list) {
			t.Fatalf("Count(%g,%g) = %d, List length = %d", lo, hi, count, len(list))
		}
	}
}

func TestOrderedIndex_EndpointInclusivity(t *testing.T) {
	idx := NewOrderedIndex()
	if err := idx.Insert(ExactKey(10, 1)); err != nil {
		t.Fatal(err)
	}

	if got := idx.Count(LowSentinel(10), HighSentinel(10)); got != 1 {
		t.Errorf("Count at exact coord boundary = %d, want 1", got)
	}
	if got := idx.Count(LowSentinel(5), HighSentinel(10)); got != 1 {
		t.Errorf("Count with hi == key coord = %d, want 1", got)
	}
	if got := idx.Count(LowSentinel(10), HighSentinel(15)); got != 1 {
		t.Errorf("Count with lo == key coord = %d, want 1", got)
	}
}

func TestOrderedIndex_IdempotentReconstruction(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		idx := NewOrderedIndex()
		n := 50
		keys := make([]OrderKey, n)
		seen := make(map[float64]bool)
		for i := 0; i < n; i++ {
			var c float64
			for {
				c = float64(rng.Intn(10000))
				if !seen[c] {
					seen[c] = true
					break
				}
			}
			keys[i] = ExactKey(c, int64(i))
			if err := idx.Insert(keys[i]); err != nil {
				t.Fatal(err)
			}
			checkInvariants(t, idx)
		}

		rng.Shuffle(n, func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		for _, k := range keys {
			if err := idx.Remove(k); err != nil {
				t.Fatal(err)
			}
			checkInvariants(t, idx)
		}

		if idx.Len() != 0 {
			t.Fatalf("Len() = %d after removing everything, want 0", idx.Len())
		}
		if idx.Height() != -1 {
			t.Fatalf("Height() = %d after removing everything, want -1", idx.Height())
		}
	}
}

func TestOrderedIndex_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	idx := NewOrderedIndex()
	present := make(map[int64]float64)
	const universe = 1000

	for i := 0; i < 10000; i++ {
		op := rng.Intn(4)
		switch op {
		case 0: // insert
			id := int64(rng.Intn(universe))
			c := float64(rng.Intn(universe))
			if _, exists := present[id]; exists {
				continue
			}
			if err := idx.Insert(ExactKey(c, id)); err != nil {
				t.Fatalf("unexpected Insert error: %v", err)
			}
			present[id] = c

		case 1: // delete
			if len(present) == 0 {
				continue
			}
			for id, c := range present {
				if err := idx.Remove(ExactKey(c, id)); err != nil {
					t.Fatalf("unexpected Remove error: %v", err)
				}
				delete(present, id)
				break
			}

		case 2: // list
			lo := float64(rng.Intn(universe))
			hi := lo + float64(rng.Intn(universe))
			got := idx.List(LowSentinel(lo), HighSentinel(hi))
			for i := 1; i < len(got); i++ {
				if !got[i-1].Less(got[i]) {
					t.Fatalf("List() not ascending: %v then %v", got[i-1], got[i])
				}
			}

		case 3: // count
			lo := float64(rng.Intn(universe))
			hi := lo + float64(rng.Intn(universe))
			count := idx.Count(LowSentinel(lo), HighSentinel(hi))
			list := idx.List(LowSentinel(lo), HighSentinel(hi))
			if count != len(list) {
				t.Fatalf("Count/List disagree: %d vs %d", count, len(list))
			}
		}

		if i%200 == 0 {
			checkInvariants(t, idx)
		}
	}

	checkInvariants(t, idx)
	if idx.Len() != len(present) {
		t.Fatalf("Len() = %d, want %d", idx.Len(), len(present))
	}
}

// checkInvariants walks the whole tree and verifies BST order, AVL
// balance, height correctness, size correctness, and parent-link
// consistency, failing the test with a precise description on the
// first violation found.
func checkInvariants(t *testing.T, idx *OrderedIndex) {
	t.Helper()
	walk(t, idx.root, nil)
}

func walk(t *testing.T, n, parent *node) (minKey, maxKey *OrderKey) {
	t.Helper()
	if n == nil {
		return nil, nil
	}

	if n.parent != parent {
		t.Fatalf("parent-link inconsistency at key %v", n.key)
	}

	lh, rh := nodeHeight(n.left), nodeHeight(n.right)
	if bf := rh - lh; bf > 1 || bf < -1 {
		t.Fatalf("AVL balance violated at key %v: bf=%d", n.key, bf)
	}
	if wantHeight := 1 + max(lh, rh); n.height != wantHeight {
		t.Fatalf("height wrong at key %v: got %d want %d", n.key, n.height, wantHeight)
	}
	if wantSize := 1 + nodeSize(n.left) + nodeSize(n.right); n.size != wantSize {
		t.Fatalf("size wrong at key %v: got %d want %d", n.key, n.size, wantSize)
	}

	lmin, lmax := walk(t, n.left, n)
	rmin, rmax := walk(t, n.right, n)

	if lmax != nil && !lmax.Less(n.key) {
		t.Fatalf("BST order violated: left subtree max %v not less than %v", *lmax, n.key)
	}
	if rmin != nil && !n.key.Less(*rmin) {
		t.Fatalf("BST order violated: right subtree min %v not greater than %v", *rmin, n.key)
	}

	min, max := n.key, n.key
	if lmin != nil {
		min = *lmin
	}
	if rmax != nil {
		max = *rmax
	}
	return &min, &max
}

func TestOrderedIndex_ManualRotationCases(t *testing.T) {
	// LL case: descending inserts force a single right rotation.
	idx := NewOrderedIndex()
	for _, c := range []float64{30, 20, 10} {
		if err := idx.Insert(ExactKey(c, int64(c))); err != nil {
			t.Fatal(err)
		}
	}
	checkInvariants(t, idx)
	if idx.Height() != 1 {
		t.Fatalf("Height() = %d after LL rebalance, want 1", idx.Height())
	}

	// RR case: ascending inserts force a single left rotation.
	idx = NewOrderedIndex()
	for _, c := range []float64{10, 20, 30} {
		if err := idx.Insert(ExactKey(c, int64(c))); err != nil {
			t.Fatal(err)
		}
	}
	checkInvariants(t, idx)
	if idx.Height() != 1 {
		t.Fatalf("Height() = %d after RR rebalance, want 1", idx.Height())
	}

	// LR case.
	idx = NewOrderedIndex()
	for _, c := range []float64{30, 10, 20} {
		if err := idx.Insert(ExactKey(c, int64(c))); err != nil {
			t.Fatal(err)
		}
	}
	checkInvariants(t, idx)

	// RL case.
	idx = NewOrderedIndex()
	for _, c := range []float64{10, 30, 20} {
		if err := idx.Insert(ExactKey(c, int64(c))); err != nil {
			t.Fatal(err)
		}
	}
	checkInvariants(t, idx)
}

func TestOrderedIndex_DeleteTwoChildNode(t *testing.T) {
	idx := NewOrderedIndex()
	coords := []float64{50, 30, 70, 20, 40, 60, 80}
	for _, c := range coords {
		if err := idx.Insert(ExactKey(c, int64(c))); err != nil {
			t.Fatal(err)
		}
	}
	checkInvariants(t, idx)

	if err := idx.Remove(ExactKey(50, 50)); err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, idx)

	got := idx.List(LowSentinel(-1), HighSentinel(1000))
	var gotCoords []float64
	for _, k := range got {
		gotCoords = append(gotCoords, k.Coord())
	}
	want := []float64{20, 30, 40, 60, 70, 80}
	sort.Float64s(want)
	if len(gotCoords) != len(want) {
		t.Fatalf("remaining coords = %v, want %v", gotCoords, want)
	}
	for i := range want {
		if gotCoords[i] != want[i] {
			t.Fatalf("remaining coords = %v, want %v", gotCoords, want)
		}
	}
}
