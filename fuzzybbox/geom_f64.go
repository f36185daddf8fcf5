package fuzzybbox

import (
	"fmt"
	"image"
	"math"
)

// Box is an axis-aligned bounding box given by its top-left (X1, Y1) and
// bottom-right (X2, Y2) corners. A valid box has X1 < X2 and Y1 < Y2.
type Box struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// NewBox creates box from corner coordinates
func NewBox(x1, y1, x2, y2 float64) Box {
	return Box{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// NewBoxXYWH creates box from top-left corner and its size
func NewBoxXYWH(x, y, width, height float64) Box {
	return Box{
		X1: x,
		Y1: y,
		X2: x + width,
		Y2: y + height,
	}
}

// NewBoxFrom creates box from image.Rectangle
func NewBoxFrom(rect image.Rectangle) Box {
	return Box{
		X1: float64(rect.Min.X),
		Y1: float64(rect.Min.Y),
		X2: float64(rect.Max.X),
		Y2: float64(rect.Max.Y),
	}
}

// Width returns horizontal extent. Could be negative for invalid boxes.
func (b Box) Width() float64 {
	return b.X2 - b.X1
}

// Height returns vertical extent. Could be negative for invalid boxes.
func (b Box) Height() float64 {
	return b.Y2 - b.Y1
}

// Area returns box area. Degenerate boxes have zero area.
func (b Box) Area() float64 {
	if b.IsDegenerate() {
		return 0
	}
	return b.Width() * b.Height()
}

// IsDegenerate reports whether box has non-positive extent or NaN coordinates
func (b Box) IsDegenerate() bool {
	if math.IsNaN(b.X1) || math.IsNaN(b.Y1) || math.IsNaN(b.X2) || math.IsNaN(b.Y2) {
		return true
	}
	return b.X2 <= b.X1 || b.Y2 <= b.Y1
}

func (b Box) String() string {
	return fmt.Sprintf("(%.3f, %.3f)-(%.3f, %.3f)", b.X1, b.Y1, b.X2, b.Y2)
}
