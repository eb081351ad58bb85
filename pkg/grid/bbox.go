package grid

import "github.com/paulmach/orb"

// BoundingBox is the tight hull over a set of points, stored as an
// orb.Bound with orb's [lon, lat] (X, Y) point convention.
type BoundingBox struct {
	bound orb.Bound
	empty bool
}

// NewBoundingBox returns an empty bounding box (Extend must be called
// before Contains returns anything meaningful).
func NewBoundingBox() BoundingBox {
	return BoundingBox{empty: true}
}

// Extend grows the box to include (lat, lon).
func (b *BoundingBox) Extend(lat, lon float64) {
	p := orb.Point{lon, lat}
	if b.empty {
		b.bound = orb.Bound{Min: p, Max: p}
		b.empty = false
		return
	}
	if p[0] < b.bound.Min[0] {
		b.bound.Min[0] = p[0]
	}
	if p[1] < b.bound.Min[1] {
		b.bound.Min[1] = p[1]
	}
	if p[0] > b.bound.Max[0] {
		b.bound.Max[0] = p[0]
	}
	if p[1] > b.bound.Max[1] {
		b.bound.Max[1] = p[1]
	}
}

// Contains reports whether (lat, lon) falls within the closed box on both
// axes.
func (b BoundingBox) Contains(lat, lon float64) bool {
	if b.empty {
		return false
	}
	return b.bound.Min[1] <= lat && lat <= b.bound.Max[1] &&
		b.bound.Min[0] <= lon && lon <= b.bound.Max[0]
}

// LatMin, LatMax, LonMin, LonMax expose the four scalars making up the box.
func (b BoundingBox) LatMin() float64 { return b.bound.Min[1] }
func (b BoundingBox) LatMax() float64 { return b.bound.Max[1] }
func (b BoundingBox) LonMin() float64 { return b.bound.Min[0] }
func (b BoundingBox) LonMax() float64 { return b.bound.Max[0] }
