package fuzzybbox

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultThreshIoU is minimal IoU for entry to be considered ambiguous
	DefaultThreshIoU = 0.8
	// DefaultThreshStd is closeness threshold measured in standard deviations
	DefaultThreshStd = 0.5
)

// Disambiguator resolves ambiguous entries of IoU matrix.
// Ambiguity is resolved within each row across candidate columns: columns whose
// IoU values are indistinguishable under their standard deviation get their
// values reassigned according to reference ranking (lower is better) and
// confidence scores (higher is better).
type Disambiguator struct {
	// Minimal IoU for entry to take part in ambiguity groups, [0, 1]
	threshIoU float64
	// Closeness threshold in units of standard deviation, >= 0
	threshStd float64
	options
}

// Result is outcome of disambiguation
type Result struct {
	// Corrected is new matrix; input matrix is never modified
	Corrected *mat.Dense
	// Permutation describes which column every corrected value came from
	Permutation PermutationMap
	// WasAmbiguous is true if at least one row had an ambiguity group of two or more columns
	WasAmbiguous bool
	// Permuted is true if at least one ambiguity group moved values between columns
	Permuted bool
	// Groups found, ordered by row and then by first column
	Groups []AmbiguityGroup
}

// NewDefaultDisambiguator creates default instance of Disambiguator.
// Default values: threshIoU=0.8, threshStd=0.5
func NewDefaultDisambiguator() *Disambiguator {
	return &Disambiguator{
		threshIoU: DefaultThreshIoU,
		threshStd: DefaultThreshStd,
		options:   defaultOptions(),
	}
}

// NewDisambiguator creates new instance of Disambiguator with specified thresholds.
// threshIoU must lie in [0, 1] and threshStd must be finite and non-negative.
func NewDisambiguator(threshIoU, threshStd float64, opts ...Option) (*Disambiguator, error) {
	if err := validateThresholds(threshIoU, threshStd); err != nil {
		return nil, err
	}
	return &Disambiguator{
		threshIoU: threshIoU,
		threshStd: threshStd,
		options:   newOptions(opts...),
	}, nil
}

// ThreshIoU returns IoU threshold
func (d *Disambiguator) ThreshIoU() float64 {
	return d.threshIoU
}

// ThreshStd returns closeness threshold
func (d *Disambiguator) ThreshStd() float64 {
	return d.threshStd
}

func validateThresholds(threshIoU, threshStd float64) error {
	if math.IsNaN(threshIoU) || threshIoU < 0 || threshIoU > 1 {
		return errors.Wrapf(ErrInvalidThreshold, "thresh_iou = %v, expected value in [0, 1]", threshIoU)
	}
	if math.IsNaN(threshStd) || math.IsInf(threshStd, 0) || threshStd < 0 {
		return errors.Wrapf(ErrInvalidThreshold, "thresh_std = %v, expected finite non-negative value", threshStd)
	}
	return nil
}

// DisambiguateIoUs is functional form of Disambiguator.Disambiguate.
// ious, iousStd and reference must be N×M, scores must have M elements (confidence of every column).
// Returns corrected matrix, applied permutation and whether any ambiguity was found.
func DisambiguateIoUs(ious, iousStd, reference mat.Matrix, scores []float64, threshIoU, threshStd float64, opts ...Option) (*mat.Dense, PermutationMap, bool, error) {
	d, err := NewDisambiguator(threshIoU, threshStd, opts...)
	if err != nil {
		return nil, nil, false, err
	}
	result, err := d.Disambiguate(ious, iousStd, reference, scores)
	if err != nil {
		return nil, nil, false, err
	}
	return result.Corrected, result.Permutation, result.WasAmbiguous, nil
}

// Disambiguate resolves ambiguous entries using per-column confidence scores (M elements)
func (d *Disambiguator) Disambiguate(ious, iousStd, reference mat.Matrix, scores []float64) (*Result, error) {
	n, m, err := checkShapes(ious, iousStd, reference)
	if err != nil {
		return nil, err
	}
	if len(scores) != m {
		return nil, errors.Wrapf(ErrShapeMismatch, "scores has %d elements, expected %d (columns of ious)", len(scores), m)
	}
	return d.run(ious, iousStd, reference, n, m, func(_, j int) float64 {
		return scores[j]
	}), nil
}

// DisambiguateWithScoreMatrix resolves ambiguous entries using per-entry confidence scores (N×M)
func (d *Disambiguator) DisambiguateWithScoreMatrix(ious, iousStd, reference, scores mat.Matrix) (*Result, error) {
	n, m, err := checkShapes(ious, iousStd, reference)
	if err != nil {
		return nil, err
	}
	if scores == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "scores matrix is nil")
	}
	if r, c := scores.Dims(); r != n || c != m {
		return nil, errors.Wrapf(ErrShapeMismatch, "scores is %dx%d, expected %dx%d", r, c, n, m)
	}
	return d.run(ious, iousStd, reference, n, m, scores.At), nil
}

func checkShapes(ious, iousStd, reference mat.Matrix) (int, int, error) {
	if ious == nil || iousStd == nil || reference == nil {
		return 0, 0, errors.Wrap(ErrShapeMismatch, "nil input matrix")
	}
	n, m := ious.Dims()
	if r, c := iousStd.Dims(); r != n || c != m {
		return 0, 0, errors.Wrapf(ErrShapeMismatch, "ious_std is %dx%d, expected %dx%d", r, c, n, m)
	}
	if r, c := reference.Dims(); r != n || c != m {
		return 0, 0, errors.Wrapf(ErrShapeMismatch, "reference is %dx%d, expected %dx%d", r, c, n, m)
	}
	return n, m, nil
}

// run does the actual work. Shapes must be checked already.
func (d *Disambiguator) run(ious, iousStd, reference mat.Matrix, n, m int, score func(i, j int) float64) *Result {
	corrected := mat.DenseCopyOf(ious)
	result := &Result{
		Corrected:   corrected,
		Permutation: IdentityPermutation(n, m),
		Groups:      make([]AmbiguityGroup, 0),
	}
	if d.threshStd == 0 || m < 2 {
		return result
	}

	rowGroups := make([][]AmbiguityGroup, n)
	forEachRow(n, d.workers, func(i int) {
		row := corrected.RawRowView(i)
		stdRow := mat.Row(nil, i, iousStd)
		refRow := mat.Row(nil, i, reference)
		groups := findGroups(row, stdRow, refRow, d.threshIoU, d.threshStd)
		if len(groups) == 0 {
			return
		}
		rowGroups[i] = make([]AmbiguityGroup, 0, len(groups))
		for _, columns := range groups {
			ranked := rankColumns(columns, refRow, func(j int) float64 {
				return score(i, j)
			})
			permuted := resolveGroup(row, result.Permutation[i], ranked)
			rowGroups[i] = append(rowGroups[i], AmbiguityGroup{
				Row:      i,
				Columns:  columns,
				Ranked:   ranked,
				Permuted: permuted,
			})
		}
	})

	for i := range rowGroups {
		for _, group := range rowGroups[i] {
			result.WasAmbiguous = true
			result.Permuted = result.Permuted || group.Permuted
			result.Groups = append(result.Groups, group)
			d.logger.Debug().
				Int("row", group.Row).
				Ints("columns", group.Columns).
				Ints("ranked", group.Ranked).
				Bool("permuted", group.Permuted).
				Msg("ambiguity group resolved")
		}
	}
	if result.WasAmbiguous {
		d.logger.Info().
			Int("groups", len(result.Groups)).
			Bool("permuted", result.Permuted).
			Msg("ambiguous ious matrix")
	}
	return result
}
