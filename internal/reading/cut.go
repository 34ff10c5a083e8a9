package reading

// Stacks divides pile into three contiguous stacks. The first two hold
// max(1, n/3) cards each and the third takes the rest, so short piles yield
// empty trailing stacks.
func Stacks[T any](pile []T) [3][]T {
	var stacks [3][]T
	if len(pile) == 0 {
		return stacks
	}
	size := max(1, len(pile)/3)
	first := min(size, len(pile))
	second := min(2*size, len(pile))
	stacks[0] = pile[:first]
	stacks[1] = pile[first:second]
	stacks[2] = pile[second:]
	return stacks
}

// Cut moves the chosen stack to the top of the pile and keeps the other two
// stacks in their original order. chosen is clamped into [0, 2]. The input
// slice is not modified.
func Cut[T any](pile []T, chosen int) []T {
	chosen = min(max(chosen, 0), 2)
	stacks := Stacks(pile)

	out := make([]T, 0, len(pile))
	out = append(out, stacks[chosen]...)
	for i, stack := range stacks {
		if i != chosen {
			out = append(out, stack...)
		}
	}
	return out
}
