// Package grid provides a uniform lat/long grid index over a bounding box,
// supporting nearest-neighbor and bounded-radius spatial queries at scale.
// It backs both the node grid (nearest-node lookups) and the tower grid
// (coverage preprocessing's per-edge tower lookups) used by pkg/graph.
package grid

import (
	"errors"
	"math"
	"sort"

	"github.com/azybler/covroute/pkg/geo"
)

// ErrOutsideBoundingBox is returned by queries whose point falls outside
// the grid's bounding box.
var ErrOutsideBoundingBox = errors.New("grid: point outside bounding box")

// LatLoner is implemented by anything a Grid can index.
type LatLoner interface {
	Lat() float64
	Lon() float64
}

// Grid is a uniform side*side grid over a bounding box, backed by an
// offset array into a caller-owned, grid-permuted slice of items.
type Grid[T LatLoner] struct {
	bbox    BoundingBox
	side    int
	offsets []int // len side*side + 1
}

// New builds a Grid over items, sorting items in place by cell index and
// constructing the offset array. side is the grid's side length (S); the
// grid has S*S cells.
func New[T LatLoner](items []T, side int) *Grid[T] {
	g := &Grid[T]{side: side, offsets: make([]int, side*side+1)}

	g.bbox = NewBoundingBox()
	for _, it := range items {
		g.bbox.Extend(it.Lat(), it.Lon())
	}

	keys := make([]int, len(items))
	for i, it := range items {
		idx, ok := g.CoordToIndex(it.Lat(), it.Lon())
		if !ok {
			panic("grid: item not within its own bounding box")
		}
		keys[i] = idx
	}
	sort.Stable(&byCellKey[T]{keys: keys, items: items})

	current := 0
	for i, key := range keys {
		if key != current {
			for o := current + 1; o <= key; o++ {
				g.offsets[o] = i
			}
			current = key
		}
	}
	for o := current + 1; o < len(g.offsets); o++ {
		g.offsets[o] = len(items)
	}

	return g
}

// byCellKey sorts items and their precomputed cell keys together.
type byCellKey[T LatLoner] struct {
	keys  []int
	items []T
}

func (b *byCellKey[T]) Len() int      { return len(b.keys) }
func (b *byCellKey[T]) Swap(i, j int) { b.keys[i], b.keys[j] = b.keys[j], b.keys[i]; b.items[i], b.items[j] = b.items[j], b.items[i] }
func (b *byCellKey[T]) Less(i, j int) bool { return b.keys[i] < b.keys[j] }

// CoordToIndex returns the cell index for (lat, lon), or false if the point
// is outside the grid's bounding box.
func (g *Grid[T]) CoordToIndex(lat, lon float64) (int, bool) {
	if !g.bbox.Contains(lat, lon) {
		return 0, false
	}
	rowWidth := (g.bbox.LatMax() - g.bbox.LatMin()) / float64(g.side)
	colWidth := (g.bbox.LonMax() - g.bbox.LonMin()) / float64(g.side)

	x := g.side - 1
	if rowWidth > 0 {
		x = int((lat - g.bbox.LatMin()) / rowWidth)
	} else {
		x = 0
	}
	y := g.side - 1
	if colWidth > 0 {
		y = int((lon - g.bbox.LonMin()) / colWidth)
	} else {
		y = 0
	}
	if x >= g.side {
		x = g.side - 1
	}
	if y >= g.side {
		y = g.side - 1
	}
	return y*g.side + x, true
}

// BoundingBox returns the grid's bounding box.
func (g *Grid[T]) BoundingBox() BoundingBox { return g.bbox }

// cellRange returns the [start, end) slice range within items for cell c.
func (g *Grid[T]) cellRange(c int) (int, int) {
	return g.offsets[c], g.offsets[c+1]
}

// cellSizeMeters returns the smaller of the grid's cell width/height in
// meters, measured by haversine distance along the bounding box's edges.
func (g *Grid[T]) cellSizeMeters() float64 {
	width := geo.Haversine(g.bbox.LatMax(), g.bbox.LonMax(), g.bbox.LatMin(), g.bbox.LonMax()) / float64(g.side)
	height := geo.Haversine(g.bbox.LatMax(), g.bbox.LonMax(), g.bbox.LatMax(), g.bbox.LonMin()) / float64(g.side)
	return math.Min(width, height)
}

// NearestNeighbor returns the index into items and the item itself closest
// to (lat, lon) by haversine distance. items must be the same,
// grid-permuted slice passed to New. Fails if the point is outside the
// bounding box or the grid holds no items.
func (g *Grid[T]) NearestNeighbor(lat, lon float64, items []T) (int, T, error) {
	var zero T
	center, ok := g.CoordToIndex(lat, lon)
	if !ok {
		return 0, zero, ErrOutsideBoundingBox
	}

	cellSize := g.cellSizeMeters()
	bestDist := math.Inf(1)
	bestIndex := -1

	maxRadius := 2 * g.side
	for radius := 0; radius <= maxRadius; radius++ {
		if (float64(radius)-1)*cellSize > bestDist {
			break
		}
		for _, cell := range RingCells(center, g.side, radius) {
			start, end := g.cellRange(cell)
			for i := start; i < end; i++ {
				d := geo.Haversine(lat, lon, items[i].Lat(), items[i].Lon())
				if d < bestDist {
					bestDist = d
					bestIndex = i
				}
			}
		}
	}

	if bestIndex < 0 {
		return 0, zero, ErrOutsideBoundingBox
	}
	return bestIndex, items[bestIndex], nil
}

// AdjacentWithinRadius calls yield with successive (non-copied) slices of
// items from every cell within maxDist of (lat, lon), expanding ring by
// ring until no farther ring could contain a closer cell. It stops early
// if yield returns false. Returns false if the point is outside the
// bounding box.
func (g *Grid[T]) AdjacentWithinRadius(lat, lon, maxDist float64, items []T, yield func([]T) bool) bool {
	center, ok := g.CoordToIndex(lat, lon)
	if !ok {
		return false
	}

	cellSize := g.cellSizeMeters()
	maxRadius := 2 * g.side
	for radius := 0; radius <= maxRadius; radius++ {
		if (float64(radius)-1)*cellSize > maxDist {
			break
		}
		for _, cell := range RingCells(center, g.side, radius) {
			start, end := g.cellRange(cell)
			if start == end {
				continue
			}
			if !yield(items[start:end]) {
				return true
			}
		}
	}
	return true
}
