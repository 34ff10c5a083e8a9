package random

import (
	"sort"
	"testing"
)

// sequence returns values from a pre-set list, wrapping around.
type sequence struct {
	values []int
	idx    int
}

func (s *sequence) IntN(n int) int {
	v := s.values[s.idx%len(s.values)] % n
	s.idx++
	return v
}

func (s *sequence) Bool() bool { return s.IntN(2) == 1 }

func TestNew_IsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d: %d != %d for the same seed", i, x, y)
		}
	}
}

func TestShuffle_IsPermutation(t *testing.T) {
	items := make([]int, 78)
	for i := range items {
		items[i] = i
	}

	got := Shuffle(New(7), items)
	if len(got) != len(items) {
		t.Fatalf("Shuffle returned %d items, want %d", len(got), len(items))
	}

	sorted := append([]int(nil), got...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			t.Fatalf("Shuffle lost or duplicated items: %v", sorted)
		}
	}

	for i, v := range items {
		if v != i {
			t.Fatal("Shuffle modified its input")
		}
	}
}

func TestShuffle_ZerosKeepsRotation(t *testing.T) {
	// j=0 at every step rotates the first element to the back.
	got := Shuffle[int](&sequence{values: []int{0}}, []int{1, 2, 3, 4})
	want := []int{2, 3, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Shuffle = %v, want %v", got, want)
		}
	}
}

func TestShuffle_Empty(t *testing.T) {
	if got := Shuffle[string](New(1), nil); len(got) != 0 {
		t.Errorf("Shuffle(nil) = %v", got)
	}
}

func TestBool_ProducesBothValues(t *testing.T) {
	src := New(3)
	var heads, tails int
	for i := 0; i < 200; i++ {
		if src.Bool() {
			heads++
		} else {
			tails++
		}
	}
	if heads == 0 || tails == 0 {
		t.Errorf("Bool() produced heads=%d tails=%d", heads, tails)
	}
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed() failed: %v", err)
	}
	b, _ := NewSeed()
	if a == b {
		t.Error("NewSeed() returned the same value twice")
	}
}
