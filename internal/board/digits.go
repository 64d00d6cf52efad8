package board

// DigitSet is a bit set over the digits 1-9. The zero value is the empty set.
type DigitSet uint16

func (s DigitSet) Has(d int) bool {
	if d < 1 || d > 9 {
		return false
	}
	return s&(1<<uint(d)) != 0
}

func (s DigitSet) Add(d int) DigitSet {
	if d < 1 || d > 9 {
		return s
	}
	return s | 1<<uint(d)
}

func (s DigitSet) Remove(d int) DigitSet {
	if d < 1 || d > 9 {
		return s
	}
	return s &^ (1 << uint(d))
}

func (s DigitSet) Toggle(d int) DigitSet {
	if d < 1 || d > 9 {
		return s
	}
	return s ^ 1<<uint(d)
}

func (s DigitSet) Count() int {
	n := 0
	for d := 1; d <= 9; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Digits returns the members in ascending order.
func (s DigitSet) Digits() []int {
	out := make([]int, 0, 9)
	for d := 1; d <= 9; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}
