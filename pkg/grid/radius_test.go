package grid

import "testing"

func TestRingCellsCenterOnly(t *testing.T) {
	got := RingCells(20, 6, 0)
	if len(got) != 1 || got[0] != 20 {
		t.Fatalf("RingCells radius 0 = %v, want [20]", got)
	}
}

func TestRingCellsRadius1(t *testing.T) {
	got := RingCells(20, 6, 1)
	want := []int{13, 14, 15, 19, 21, 25, 26, 27}
	if !intSliceEqual(got, want) {
		t.Fatalf("RingCells(20, 6, 1) = %v, want %v", got, want)
	}
}

func TestRingCellsNoDuplicatesNoOutOfRange(t *testing.T) {
	size := 6
	seen := make(map[int]bool)
	for radius := 0; radius < size; radius++ {
		for _, c := range RingCells(35, size, radius) {
			if c < 0 || c >= size*size {
				t.Fatalf("cell %d out of range for size %d", c, size)
			}
			if seen[c] {
				t.Fatalf("cell %d yielded more than once across radii", c)
			}
			seen[c] = true
		}
	}
}

func TestRingCellsMatchesChebyshevDefinition(t *testing.T) {
	size := 5
	center := 12 // (x=2, y=2), the grid's center cell
	cy, cx := center/size, center%size

	for radius := 0; radius < size; radius++ {
		got := RingCells(center, size, radius)
		var want []int
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if chebyshev(x-cx, y-cy) == radius {
					want = append(want, y*size+x)
				}
			}
		}
		if !intSliceEqual(got, want) {
			t.Fatalf("radius %d: RingCells = %v, want %v", radius, got, want)
		}
	}
}

func chebyshev(dx, dy int) int {
	ax, ay := absInt(dx), absInt(dy)
	if ax > ay {
		return ax
	}
	return ay
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
