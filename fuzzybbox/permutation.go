package fuzzybbox

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// PermutationMap records column reassignment applied to every row during disambiguation.
// PermutationMap[i][j] = k means that value now stored at (i, j) was taken from (i, k).
// Rows untouched by disambiguation hold identity permutation.
type PermutationMap [][]int

// IdentityPermutation creates permutation map which changes nothing
func IdentityPermutation(rows, cols int) PermutationMap {
	perm := make(PermutationMap, rows)
	for i := range perm {
		perm[i] = make([]int, cols)
		for j := range perm[i] {
			perm[i][j] = j
		}
	}
	return perm
}

// Dims returns number of rows and columns covered by permutation
func (perm PermutationMap) Dims() (int, int) {
	if len(perm) == 0 {
		return 0, 0
	}
	return len(perm), len(perm[0])
}

// Row returns copy of permutation for i-th row
func (perm PermutationMap) Row(i int) []int {
	row := make([]int, len(perm[i]))
	copy(row, perm[i])
	return row
}

// IsIdentity reports whether no column has been reassigned
func (perm PermutationMap) IsIdentity() bool {
	for i := range perm {
		if !isIdentityRow(perm[i]) {
			return false
		}
	}
	return true
}

func isIdentityRow(row []int) bool {
	for j, k := range row {
		if j != k {
			return false
		}
	}
	return true
}

// ApplyRow reorders values of i-th row the same way disambiguation reordered IoU values.
// Input slice is not modified.
func (perm PermutationMap) ApplyRow(i int, values []float64) ([]float64, error) {
	if i < 0 || i >= len(perm) {
		return nil, errors.Wrapf(ErrShapeMismatch, "row %d is out of range [0, %d)", i, len(perm))
	}
	if len(values) != len(perm[i]) {
		return nil, errors.Wrapf(ErrShapeMismatch, "row %d: expected %d values, got %d", i, len(perm[i]), len(values))
	}
	permuted := make([]float64, len(values))
	for j, k := range perm[i] {
		permuted[j] = values[k]
	}
	return permuted, nil
}

// Apply propagates permutation to another matrix of the same shape, e.g. per-entry detection scores.
// Returns new matrix; m is left untouched.
func (perm PermutationMap) Apply(m mat.Matrix) (*mat.Dense, error) {
	rows, cols := perm.Dims()
	r, c := m.Dims()
	if r != rows || c != cols {
		return nil, errors.Wrapf(ErrShapeMismatch, "permutation is %dx%d, matrix is %dx%d", rows, cols, r, c)
	}
	permuted := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		dst := permuted.RawRowView(i)
		for j, k := range perm[i] {
			dst[j] = m.At(i, k)
		}
	}
	return permuted, nil
}

// Inverse returns permutation which undoes perm
func (perm PermutationMap) Inverse() PermutationMap {
	inverse := make(PermutationMap, len(perm))
	for i := range perm {
		inverse[i] = make([]int, len(perm[i]))
		for j, k := range perm[i] {
			inverse[i][k] = j
		}
	}
	return inverse
}
