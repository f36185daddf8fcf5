package fuzzybbox

import "github.com/pkg/errors"

var (
	// ErrShapeMismatch is returned when input matrices (or score vector) disagree in dimensions
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrInvalidThreshold is returned when threshold is NaN or lies outside its valid range
	ErrInvalidThreshold = errors.New("invalid threshold")
	// ErrInvalidBox marks boxes with non-positive extent or invalid uncertainty.
	// Overlap kernel treats such boxes as zero-area and never fails on them.
	ErrInvalidBox = errors.New("invalid box")
	// ErrInvalidSampleCount is returned when Monte Carlo estimation is asked for less than two samples
	ErrInvalidSampleCount = errors.New("invalid sample count")
)
