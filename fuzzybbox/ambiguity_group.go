package fuzzybbox

import (
	"math"
	"sort"
)

// AmbiguityGroup is a maximal set of columns of a single row whose IoU values
// cannot be told apart given their standard deviations.
type AmbiguityGroup struct {
	Row int
	// Columns in ascending order
	Columns []int
	// Ranked holds Columns ordered from the most preferred to the least preferred one
	Ranked []int
	// Permuted is true when resolving the group moved at least one value to another column
	Permuted bool
}

// isClose checks whether two IoU values are statistically indistinguishable.
// Zero bound never counts as close, so zero threshStd (or zero deviations) disables grouping.
func isClose(iouA, iouB, stdA, stdB, threshStd float64) bool {
	bound := threshStd * maxFloat64(stdA, stdB)
	if !(bound > 0) {
		return false
	}
	return math.Abs(iouA-iouB) <= bound
}

// candidateColumns returns columns which are eligible for grouping: large enough IoU and
// comparable (non-NaN, non-negative deviation) data.
func candidateColumns(iouRow, stdRow, refRow []float64, threshIoU float64) []int {
	candidates := make([]int, 0)
	for j := range iouRow {
		if anyNaN(iouRow[j], stdRow[j], refRow[j]) || stdRow[j] < 0 {
			continue
		}
		if iouRow[j] >= threshIoU {
			candidates = append(candidates, j)
		}
	}
	return candidates
}

// findGroups splits candidate columns into connected components of "isClose" relation.
// Only components with two or more columns are returned.
func findGroups(iouRow, stdRow, refRow []float64, threshIoU, threshStd float64) [][]int {
	candidates := candidateColumns(iouRow, stdRow, refRow, threshIoU)
	if len(candidates) < 2 {
		return nil
	}
	visited := make([]bool, len(candidates))
	groups := make([][]int, 0)
	for seed := range candidates {
		if visited[seed] {
			continue
		}
		visited[seed] = true
		component := []int{candidates[seed]}
		queue := []int{seed}
		// Expand component until no more neighbours could be reached
		for len(queue) > 0 {
			p := queue[0]
			queue = queue[1:]
			cp := candidates[p]
			for q := range candidates {
				if visited[q] {
					continue
				}
				cq := candidates[q]
				if isClose(iouRow[cp], iouRow[cq], stdRow[cp], stdRow[cq], threshStd) {
					visited[q] = true
					component = append(component, cq)
					queue = append(queue, q)
				}
			}
		}
		if len(component) < 2 {
			continue
		}
		sort.Ints(component)
		groups = append(groups, component)
	}
	return groups
}

// rankColumns orders group columns from the most preferred one (lowest reference,
// then highest score) to the least preferred one.
func rankColumns(columns []int, refRow []float64, score func(j int) float64) []int {
	h := make(rankHeap, 0, len(columns))
	for _, j := range columns {
		h.Push(&rankCandidate{
			column:    j,
			reference: refRow[j],
			score:     score(j),
		})
	}
	ranked := make([]int, 0, len(columns))
	for h.Len() > 0 {
		ranked = append(ranked, h.Pop().column)
	}
	return ranked
}

// resolveGroup hands out IoU magnitudes of the group to its columns by rank:
// the most preferred column receives the largest value, the next one the second largest and so on.
// row is modified in place, permRow (identity on entry) receives source columns.
// Returns true if any value moved.
func resolveGroup(row []float64, permRow []int, ranked []int) bool {
	// Sources are sorted by value descending. Stable sort on rank order keeps equal
	// values at their own columns, so ties never count as permutation.
	sources := make([]int, len(ranked))
	copy(sources, ranked)
	sort.SliceStable(sources, func(a, b int) bool {
		return row[sources[a]] > row[sources[b]]
	})
	values := make([]float64, len(sources))
	for r, src := range sources {
		values[r] = row[src]
	}
	permuted := false
	for r, dst := range ranked {
		row[dst] = values[r]
		permRow[dst] = sources[r]
		if sources[r] != dst {
			permuted = true
		}
	}
	return permuted
}
