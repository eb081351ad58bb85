package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Project maps a spherical (lat, lon) in degrees to a local planar point by
// scaling radians by the earth radius, using lat0 (typically a nearby
// tower's latitude, in degrees) as the reference latitude for longitude
// scaling. Short segments near lat0 are not materially distorted.
func Project(lat, lon, lat0 float64) orb.Point {
	latRad := lat * degreesToRadians
	lonRad := lon * degreesToRadians
	lat0Rad := lat0 * degreesToRadians

	x := EarthRadiusMeters * latRad
	y := EarthRadiusMeters * math.Cos(lat0Rad) * lonRad

	if math.IsNaN(x) || math.IsInf(x, 0) {
		panic("geo: projected x is not finite")
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		panic("geo: projected y is not finite")
	}
	return orb.Point{x, y}
}

// Intersect intersects the segment ab with the disk of radius r centered at
// center, treating all three points as already-projected planar coordinates.
// It returns the parameter interval along ab that lies inside the disk;
// fully-inside segments yield [0,1], non-intersecting or tangent segments
// yield an empty section.
func Intersect(a, b, center orb.Point, r float64) SegmentSection {
	vx, vy := a[0]-center[0], a[1]-center[1]
	ux, uy := b[0]-a[0], b[1]-a[1]

	alpha := ux*ux + uy*uy
	beta := ux*vx + uy*vy
	gamma := vx*vx + vy*vy - r*r

	discriminant := beta*beta - alpha*gamma
	if discriminant <= 0 {
		return SegmentSection{}
	}

	root := math.Sqrt(discriminant)
	t1 := (-beta + root) / alpha
	t2 := (-beta - root) / alpha
	if math.IsNaN(t1) || math.IsNaN(t2) {
		panic("geo: intersection parameter is NaN")
	}

	return newSegmentSection(t1, t2)
}

// SegmentSection is a closed interval [Start, End] within [0, 1],
// representing a fraction of a segment's length.
type SegmentSection struct {
	Start float64
	End   float64
}

func newSegmentSection(a, b float64) SegmentSection {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return SegmentSection{Start: clamp01(lo), End: clamp01(hi)}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// IsEmpty reports whether the section has no length.
func (s SegmentSection) IsEmpty() bool { return s.Length() <= 0 }

// IsFull reports whether the section spans the whole [0,1] range.
func (s SegmentSection) IsFull() bool { return s.Length() >= 1 }

// Length returns End - Start.
func (s SegmentSection) Length() float64 { return s.End - s.Start }

// IsOverlapping reports whether the two closed intervals share any point.
func (s SegmentSection) IsOverlapping(other SegmentSection) bool {
	if s.Start < other.Start {
		return s.End >= other.Start
	}
	return other.End >= s.Start
}

// Merge returns the smallest section enclosing both s and other.
func (s SegmentSection) Merge(other SegmentSection) SegmentSection {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return SegmentSection{Start: start, End: end}
}

// UnionLength computes the total fraction of [0,1] covered by the union of
// the given sections: sort by start, fold left merging overlapping runs,
// sum the resulting disjoint sections' lengths. The result always lies in
// [0, 1].
func UnionLength(sections []SegmentSection) float64 {
	nonEmpty := make([]SegmentSection, 0, len(sections))
	for _, s := range sections {
		if !s.IsEmpty() {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) == 0 {
		return 0
	}

	sortSections(nonEmpty)

	total := 0.0
	acc := nonEmpty[0]
	for _, s := range nonEmpty[1:] {
		if acc.IsOverlapping(s) {
			acc = acc.Merge(s)
			continue
		}
		total += acc.Length()
		acc = s
	}
	total += acc.Length()

	if total < 0 {
		total = 0
	}
	if total > 1 {
		total = 1
	}
	return total
}

func sortSections(sections []SegmentSection) {
	// Small insertion sort: per-edge tower lists are short (bounded by the
	// lookup radius), so this avoids pulling in sort.Slice's reflection
	// overhead on the hot coverage-build path.
	for i := 1; i < len(sections); i++ {
		for j := i; j > 0 && sections[j].Start < sections[j-1].Start; j-- {
			sections[j], sections[j-1] = sections[j-1], sections[j]
		}
	}
}
