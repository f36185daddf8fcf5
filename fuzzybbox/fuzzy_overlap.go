package fuzzybbox

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// FuzzyBox is a bounding box with Gaussian uncertainty of every coordinate.
// Sigma holds standard deviations for X1, Y1, X2, Y2 respectively.
type FuzzyBox struct {
	Box
	Sigma [4]float64
}

// NewFuzzyBox creates fuzzy box with the same standard deviation for every coordinate
func NewFuzzyBox(box Box, sigma float64) FuzzyBox {
	return FuzzyBox{
		Box:   box,
		Sigma: [4]float64{sigma, sigma, sigma, sigma},
	}
}

func (fb FuzzyBox) validate() error {
	for k, s := range fb.Sigma {
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return errors.Wrapf(ErrInvalidBox, "sigma[%d] = %v", k, s)
		}
	}
	return nil
}

func (fb FuzzyBox) sample(rng *rand.Rand) Box {
	return Box{
		X1: fb.X1 + rng.NormFloat64()*fb.Sigma[0],
		Y1: fb.Y1 + rng.NormFloat64()*fb.Sigma[1],
		X2: fb.X2 + rng.NormFloat64()*fb.Sigma[2],
		Y2: fb.Y2 + rng.NormFloat64()*fb.Sigma[3],
	}
}

// ComputeFuzzyOverlap estimates IoU between uncertain boxes by Monte Carlo sampling.
// Every box is jittered samples times; for each pair (i, j) the IoU of the jittered
// copies is reduced to its mean and standard deviation.
// Both returned matrices are N×M. The std matrix is the uncertainty input of Disambiguator.
// Results are reproducible for the same seed (see WithSeed) regardless of workers count.
func ComputeFuzzyOverlap(boxesA, boxesB []FuzzyBox, samples int, opts ...Option) (mean *mat.Dense, std *mat.Dense, err error) {
	if samples < 2 {
		return nil, nil, errors.Wrapf(ErrInvalidSampleCount, "need at least 2 samples, got %d", samples)
	}
	if len(boxesA) == 0 || len(boxesB) == 0 {
		return nil, nil, errors.Wrapf(ErrShapeMismatch, "empty box set: %d x %d", len(boxesA), len(boxesB))
	}
	for i := range boxesA {
		if err := boxesA[i].validate(); err != nil {
			return nil, nil, errors.Wrapf(err, "box a[%d]", i)
		}
	}
	for j := range boxesB {
		if err := boxesB[j].validate(); err != nil {
			return nil, nil, errors.Wrapf(err, "box b[%d]", j)
		}
	}
	o := newOptions(opts...)

	// Draw every sample up front so the random stream does not depend on scheduling
	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	sampledA := drawSamples(rng, boxesA, samples)
	sampledB := drawSamples(rng, boxesB, samples)

	n, m := len(boxesA), len(boxesB)
	mean = mat.NewDense(n, m, nil)
	std = mat.NewDense(n, m, nil)
	forEachRow(n, o.workers, func(i int) {
		values := make([]float64, samples)
		meanRow := mean.RawRowView(i)
		stdRow := std.RawRowView(i)
		for j := 0; j < m; j++ {
			for s := 0; s < samples; s++ {
				values[s] = IoU(sampledA[s][i], sampledB[s][j])
			}
			mu, sd := stat.MeanStdDev(values, nil)
			meanRow[j] = clamp01(mu)
			stdRow[j] = maxFloat64(sd, 0)
		}
	})
	o.logger.Debug().
		Int("rows", n).
		Int("cols", m).
		Int("samples", samples).
		Uint64("seed", o.seed).
		Msg("fuzzy overlap estimated")
	return mean, std, nil
}

func drawSamples(rng *rand.Rand, boxes []FuzzyBox, samples int) [][]Box {
	sampled := make([][]Box, samples)
	for s := range sampled {
		sampled[s] = make([]Box, len(boxes))
		for i := range boxes {
			sampled[s][i] = boxes[i].sample(rng)
		}
	}
	return sampled
}
