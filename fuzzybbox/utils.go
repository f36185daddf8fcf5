package fuzzybbox

import "math"

// IoU calculates Intersection over Union between two boxes.
// Degenerate boxes (see Box.IsDegenerate) overlap nothing, so result is 0 for them.
func IoU(b1, b2 Box) float64 {
	if b1.IsDegenerate() || b2.IsDegenerate() {
		return 0.0
	}
	xA := maxFloat64(b1.X1, b2.X1)
	yA := maxFloat64(b1.Y1, b2.Y1)
	xB := minFloat64(b1.X2, b2.X2)
	yB := minFloat64(b1.Y2, b2.Y2)

	interArea := maxFloat64(0, xB-xA) * maxFloat64(0, yB-yA)
	if interArea <= 0 {
		return 0.0
	}

	// Both areas are positive here, so union is never below interArea
	iouVal := interArea / (b1.Area() + b2.Area() - interArea)
	return clamp01(iouVal)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func maxFloat64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// anyNaN reports whether any of values is NaN
func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}
