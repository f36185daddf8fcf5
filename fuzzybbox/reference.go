package fuzzybbox

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ReferenceFromProbabilities converts matrix of match probabilities into reference
// cost matrix (1 - p), so that the most probable match is the most preferred one.
func ReferenceFromProbabilities(probabilities mat.Matrix) *mat.Dense {
	rows, cols := probabilities.Dims()
	reference := mat.NewDense(rows, cols, nil)
	reference.Apply(func(_, _ int, v float64) float64 {
		return 1 - v
	}, probabilities)
	return reference
}

// MinMaxScores rescales raw confidences into [0, 1]. Constant input yields zeros.
// Input slice is not modified.
func MinMaxScores(scores []float64) []float64 {
	result := make([]float64, len(scores))
	copy(result, scores)
	if len(result) == 0 {
		return result
	}

	min := floats.Min(result)
	max := floats.Max(result)

	if max != min {
		floats.AddConst(-min, result)
		floats.Scale(1.0/(max-min), result)
	} else {
		floats.Scale(0, result)
	}
	return result
}
