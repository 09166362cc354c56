// Package circuitbits reports coarse wire-density statistics without
// walking the AVL tree. It builds a roaring.Bitmap per coordinate band,
// the same membership-plus-cardinality shape document-level bitmaps
// give a term-document index, repurposed here to bucket wires instead
// of documents. Consulted only by the CLI's --stats reporting path;
// the sweep and the tree never see it.
package circuitbits

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring"

	circuit "github.com/wizenheimer/circuitx"
)

// DefaultBandWidth is the coordinate span one band covers when the
// caller does not request a specific width.
const DefaultBandWidth = 10.0

// BandIndex buckets a layer's wires into coordinate bands: a horizontal
// wire is bucketed by the bands its Y value falls in, a vertical wire
// by the bands its X value falls in. Each band holds a roaring bitmap of
// the wire IDs touching it, so a band's population is a cardinality
// check, not an enumeration.
type BandIndex struct {
	width    float64
	bands    map[int64]*roaring.Bitmap
	idToName map[uint32]string
}

// Build constructs a BandIndex over layer using the given band width.
// A non-positive width falls back to DefaultBandWidth.
func Build(layer *circuit.WireLayer, width float64) *BandIndex {
	if width <= 0 {
		width = DefaultBandWidth
	}

	bi := &BandIndex{
		width:    width,
		bands:    make(map[int64]*roaring.Bitmap),
		idToName: make(map[uint32]string),
	}

	for _, w := range layer.Wires() {
		coord := w.Y1()
		if w.IsVertical() {
			coord = w.X1()
		}
		band := bandOf(coord, width)

		bm, ok := bi.bands[band]
		if !ok {
			bm = roaring.NewBitmap()
			bi.bands[band] = bm
		}
		id := uint32(w.ID())
		bm.Add(id)
		bi.idToName[id] = w.Name()
	}

	return bi
}

func bandOf(coord, width float64) int64 {
	return int64(math.Floor(coord / width))
}

// BandReport is one line of the --stats output: a band's lower bound
// and the number of wires touching it.
type BandReport struct {
	Band  int64
	Low   float64
	Count uint64
}

// Report returns one BandReport per populated band, ordered by band
// index ascending.
func (bi *BandIndex) Report() []BandReport {
	bands := make([]int64, 0, len(bi.bands))
	for b := range bi.bands {
		bands = append(bands, b)
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i] < bands[j] })

	reports := make([]BandReport, len(bands))
	for i, b := range bands {
		reports[i] = BandReport{
			Band:  b,
			Low:   float64(b) * bi.width,
			Count: bi.bands[b].GetCardinality(),
		}
	}
	return reports
}

// TotalWires returns the number of distinct wires across every band.
// Each wire falls in exactly one band, so this is the sum of the
// per-band cardinalities.
func (bi *BandIndex) TotalWires() uint64 {
	var total uint64
	for _, bm := range bi.bands {
		total += bm.GetCardinality()
	}
	return total
}

// Names returns the wire names touching band b, sorted, for a verbose
// --stats rendering.
func (bi *BandIndex) Names(b int64) []string {
	bm, ok := bi.bands[b]
	if !ok {
		return nil
	}
	names := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		names = append(names, bi.idToName[it.Next()])
	}
	sort.Strings(names)
	return names
}
