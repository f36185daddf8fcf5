package fuzzybbox

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// ComputeOverlap calculates N×M matrix of IoU values between boxesA (rows) and boxesB (columns).
// Returned matrix is freshly allocated. Degenerate boxes produce zero rows/columns.
// Returns nil if any of sets is empty (gonum does not allow zero-sized matrices).
func ComputeOverlap(boxesA, boxesB []Box, opts ...Option) *mat.Dense {
	if len(boxesA) == 0 || len(boxesB) == 0 {
		return nil
	}
	o := newOptions(opts...)
	warnDegenerate(o.logger, "a", boxesA)
	warnDegenerate(o.logger, "b", boxesB)

	overlaps := mat.NewDense(len(boxesA), len(boxesB), nil)
	forEachRow(len(boxesA), o.workers, func(i int) {
		row := overlaps.RawRowView(i)
		boxA := boxesA[i]
		for j := range boxesB {
			row[j] = IoU(boxA, boxesB[j])
		}
	})
	return overlaps
}

// ValidateBoxes returns error wrapping ErrInvalidBox if some of boxes are degenerate.
// Overlap kernel accepts such boxes anyway, so this is for callers wanting to report bad input.
func ValidateBoxes(boxes []Box) error {
	bad := degenerateIndices(boxes)
	if len(bad) == 0 {
		return nil
	}
	return errors.Wrapf(ErrInvalidBox, "non-positive extent at indices %v", bad)
}

func degenerateIndices(boxes []Box) []int {
	var bad []int
	for i := range boxes {
		if boxes[i].IsDegenerate() {
			bad = append(bad, i)
		}
	}
	return bad
}

func warnDegenerate(logger zerolog.Logger, set string, boxes []Box) {
	if logger.GetLevel() > zerolog.WarnLevel {
		return
	}
	for _, i := range degenerateIndices(boxes) {
		logger.Warn().
			Str("set", set).
			Int("index", i).
			Stringer("box", boxes[i]).
			Msg("degenerate box treated as zero-area")
	}
}
