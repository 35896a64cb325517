package trackdata

import (
	"fmt"
	"math"
)

// Sequence orders segments recorded in arbitrary order into one travel order by
// greedily chaining the end of each segment to the start of the nearest unused one.
// This is a nearest-neighbour tour, not an optimal one.
//
// The first segment is the one hardest to reach: the one whose nearest incoming segment
// end is furthest away. That puts the one unavoidable long jump before the start of the
// tour instead of in the middle of it.
//
// Each segment has a precomputed nearest successor (never itself unless it is the only
// segment). When that successor has already been used, the tour continues with the
// unused segment nearest to the current end. Ties go to the lowest index. The result
// holds every input segment exactly once.
func Sequence(segments []Segment) ([]Segment, error) {
	n := len(segments)
	if n == 0 {
		return nil, fmt.Errorf("sequencing segments: %w", ErrEmptyInput)
	}
	for i, s := range segments {
		if len(s.Points) == 0 {
			return nil, fmt.Errorf("sequencing segment %d: %w", i, ErrEmptySegment)
		}
	}

	// cost[i][j] is the jump from the end of i to the start of j
	cost := make([][]float64, n)
	for i := range segments {
		cost[i] = make([]float64, n)
		for j := range segments {
			cost[i][j] = Distance(segments[i].End(), segments[j].Start())
		}
	}

	next := make([]int, n)
	for i := range segments {
		next[i] = nearestIndex(cost[i], func(j int) bool { return j != i || n == 1 })
	}

	start := startIndex(cost)
	debugf("sequence: starting with segment %d of %d\n", start, n)

	consumed := make([]bool, n)
	order := make([]Segment, 0, n)
	current := start
	for {
		consumed[current] = true
		order = append(order, segments[current])
		if len(order) == n {
			break
		}
		successor := next[current]
		if consumed[successor] {
			successor = nearestIndex(cost[current], func(j int) bool { return !consumed[j] })
			debugf("sequence: successor of %d already used, jumping to %d\n", current, successor)
		}
		current = successor
	}
	return order, nil
}

// nearestIndex is the index of the smallest cost among the allowed ones, or -1.
func nearestIndex(costs []float64, allowed func(j int) bool) int {
	best := -1
	min := math.Inf(1)
	for j, c := range costs {
		if !allowed(j) {
			continue
		}
		if best < 0 || c < min {
			best, min = j, c
		}
	}
	return best
}

// startIndex picks the segment whose cheapest incoming jump from another segment is
// the most expensive.
func startIndex(cost [][]float64) int {
	n := len(cost)
	if n == 1 {
		return 0
	}
	best := 0
	max := math.Inf(-1)
	for j := 0; j < n; j++ {
		incoming := math.Inf(1)
		for i := 0; i < n; i++ {
			if i != j && cost[i][j] < incoming {
				incoming = cost[i][j]
			}
		}
		if incoming > max {
			best, max = j, incoming
		}
	}
	return best
}
