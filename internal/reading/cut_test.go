package reading

import (
	"slices"
	"testing"
)

func TestCut_ThreeEqualStacks(t *testing.T) {
	got := Cut([]int{1, 2, 3, 4, 5, 6}, 1)
	want := []int{3, 4, 1, 2, 5, 6}
	if !slices.Equal(got, want) {
		t.Errorf("Cut([1..6], 1) = %v, want %v", got, want)
	}
}

func TestCut(t *testing.T) {
	tests := []struct {
		name   string
		pile   []int
		chosen int
		want   []int
	}{
		{"first stack is identity", []int{1, 2, 3, 4, 5, 6}, 0, []int{1, 2, 3, 4, 5, 6}},
		{"last stack takes remainder", []int{1, 2, 3, 4, 5, 6, 7}, 2, []int{5, 6, 7, 1, 2, 3, 4}},
		{"index clamped high", []int{1, 2, 3, 4, 5, 6}, 9, []int{5, 6, 1, 2, 3, 4}},
		{"index clamped low", []int{1, 2, 3, 4, 5, 6}, -3, []int{1, 2, 3, 4, 5, 6}},
		{"two cards", []int{1, 2}, 1, []int{2, 1}},
		{"two cards, empty third stack", []int{1, 2}, 2, []int{1, 2}},
		{"one card", []int{1}, 1, []int{1}},
		{"empty pile", nil, 1, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cut(tt.pile, tt.chosen)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Cut(%v, %d) = %v, want %v", tt.pile, tt.chosen, got, tt.want)
			}
		})
	}
}

func TestCut_IsPermutationWithChosenStackFirst(t *testing.T) {
	for n := 0; n <= 80; n++ {
		pile := make([]int, n)
		for i := range pile {
			pile[i] = i
		}
		stacks := Stacks(pile)
		for chosen := 0; chosen < 3; chosen++ {
			got := Cut(pile, chosen)
			if len(got) != n {
				t.Fatalf("n=%d chosen=%d: got %d cards", n, chosen, len(got))
			}
			sorted := slices.Clone(got)
			slices.Sort(sorted)
			if !slices.Equal(sorted, pile) {
				t.Fatalf("n=%d chosen=%d: not a permutation: %v", n, chosen, got)
			}
			head := stacks[chosen]
			if !slices.Equal(got[:len(head)], head) {
				t.Fatalf("n=%d chosen=%d: head %v, want %v", n, chosen, got[:len(head)], head)
			}
		}
	}
}

func TestCut_DoesNotModifyInput(t *testing.T) {
	pile := []int{1, 2, 3, 4, 5, 6}
	Cut(pile, 2)
	if !slices.Equal(pile, []int{1, 2, 3, 4, 5, 6}) {
		t.Errorf("Cut modified its input: %v", pile)
	}
}
