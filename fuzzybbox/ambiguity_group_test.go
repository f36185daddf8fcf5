package fuzzybbox

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func constRow(n int, v float64) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = v
	}
	return row
}

func TestFindGroupsTransitive(t *testing.T) {
	// 0 is close to 1, 1 is close to 2, but 0 is not close to 2
	row := []float64{0.875, 0.8125, 0.75, 0.1}
	groups := findGroups(row, constRow(4, 0.0625), constRow(4, 0), 0.7, 1.0)
	assert.Equal(t, [][]int{{0, 1, 2}}, groups)
}

func TestFindGroupsSeparate(t *testing.T) {
	row := []float64{0.9375, 0.875, 0.75, 0.6875}
	groups := findGroups(row, constRow(4, 0.0625), constRow(4, 0), 0.5, 1.0)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, groups)
}

func TestFindGroupsThreshold(t *testing.T) {
	row := []float64{0.9375, 0.875, 0.75, 0.6875}
	groups := findGroups(row, constRow(4, 0.0625), constRow(4, 0), 0.8, 1.0)
	assert.Equal(t, [][]int{{0, 1}}, groups)

	groups = findGroups(row, constRow(4, 0.0625), constRow(4, 0), 1.0, 1.0)
	assert.Empty(t, groups)
}

func TestFindGroupsNaN(t *testing.T) {
	row := []float64{0.875, math.NaN(), 0.875, 0.875, 0.875}
	std := []float64{0.0625, 0.0625, 0.0625, math.NaN(), 0.0625}
	ref := []float64{0, 0, 0, 0, math.NaN()}
	groups := findGroups(row, std, ref, 0.5, 1.0)
	assert.Equal(t, [][]int{{0, 2}}, groups)
}

func TestRankColumns(t *testing.T) {
	ref := []float64{0.3, 0.1, 0.1, 0.2}
	scores := []float64{0.5, 0.4, 0.9, 0.5}
	ranked := rankColumns([]int{0, 1, 2, 3}, ref, func(j int) float64 { return scores[j] })
	assert.Equal(t, []int{2, 1, 3, 0}, ranked)

	// Full tie falls back to column order, NaN confidence loses
	ranked = rankColumns([]int{1, 3, 5}, constRow(6, 0.5), func(j int) float64 {
		if j == 1 {
			return math.NaN()
		}
		return 0.7
	})
	assert.Equal(t, []int{3, 5, 1}, ranked)
}

func TestResolveGroup(t *testing.T) {
	row := []float64{0.8, 0.9, 0.85}
	perm := []int{0, 1, 2}
	permuted := resolveGroup(row, perm, []int{2, 0, 1})
	assert.True(t, permuted)
	assert.Equal(t, []float64{0.85, 0.8, 0.9}, row)
	assert.Equal(t, []int{2, 0, 1}, perm)
}

func TestResolveGroupAlreadyOrdered(t *testing.T) {
	row := []float64{0.9, 0.85, 0.85}
	perm := []int{0, 1, 2}
	// Ranking agrees with magnitudes and tie between 1 and 2 keeps values in place
	permuted := resolveGroup(row, perm, []int{0, 2, 1})
	assert.False(t, permuted)
	assert.Equal(t, []float64{0.9, 0.85, 0.85}, row)
	assert.Equal(t, []int{0, 1, 2}, perm)
}
