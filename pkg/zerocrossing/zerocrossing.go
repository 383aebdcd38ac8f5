// Package zerocrossing turns a waveform into a sparse impulse train of its
// negative-to-non-negative transitions.
package zerocrossing

// IsCrossing reports whether a transition from cur to next is a zero crossing.
func IsCrossing(cur, next int16) bool {
	return cur < 0 && next >= 0
}

// Extract returns an impulse train of the same length as segment, which
// has 1 at index i iff segment[i] < 0 and segment[i+1] >= 0.
//
// The last element is always 0.
func Extract(segment []int16) []int32 {
	result := make([]int32, len(segment))
	for i := 0; i+1 < len(segment); i++ {
		if IsCrossing(segment[i], segment[i+1]) {
			result[i] = 1
		}
	}
	return result
}

// Positions returns the indexes Extract would mark with 1, in ascending order.
func Positions(segment []int16) []int {
	var result []int
	for i := 0; i+1 < len(segment); i++ {
		if IsCrossing(segment[i], segment[i+1]) {
			result = append(result, i)
		}
	}
	return result
}

// Impulses builds an impulse train of the given length with 1 at every
// position; positions outside of [0, length) are skipped and counted.
func Impulses(length int, positions []int) ([]int32, int) {
	result := make([]int32, length)
	skipped := 0
	for _, pos := range positions {
		if pos < 0 || pos >= length {
			skipped++
			continue
		}
		result[pos] = 1
	}
	return result, skipped
}
