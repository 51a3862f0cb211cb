package geometry

import (
	"image"
	"math"
)

// Point represents a 2D coordinate in float space.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned bounding box in float coordinates.
type Box struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewBox constructs a Box from min/max coordinates ensuring ordering.
func NewBox(x1, y1, x2, y2 float64) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
}

// Width returns the box width.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box height.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Area returns the box area.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// Center returns the center point of the box.
func (b Box) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Diagonal returns the length of the box diagonal.
func (b Box) Diagonal() float64 {
	return math.Hypot(b.Width(), b.Height())
}

// Valid reports whether the box has finite coordinates and positive extent
// on both axes.
func (b Box) Valid() bool {
	for _, v := range []float64{b.MinX, b.MinY, b.MaxX, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.Width() > 0 && b.Height() > 0
}

// Overlaps reports whether two boxes overlap on both axes.
func (b Box) Overlaps(o Box) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX && b.MinY < o.MaxY && b.MaxY > o.MinY
}

// GapX returns the horizontal gap between two boxes, 0 when their
// x-projections overlap.
func (b Box) GapX(o Box) float64 {
	if b.MinX > o.MaxX {
		return b.MinX - o.MaxX
	}
	if o.MinX > b.MaxX {
		return o.MinX - b.MaxX
	}
	return 0
}

// GapY returns the vertical gap between two boxes, 0 when their
// y-projections overlap.
func (b Box) GapY(o Box) float64 {
	if b.MinY > o.MaxY {
		return b.MinY - o.MaxY
	}
	if o.MinY > b.MaxY {
		return o.MinY - b.MaxY
	}
	return 0
}

// Distance returns the shortest distance between two boxes, 0 when they
// overlap or touch.
func (b Box) Distance(o Box) float64 {
	return math.Hypot(b.GapX(o), b.GapY(o))
}

// IoU computes Intersection over Union for two boxes.
func IoU(a, b Box) float64 {
	left := math.Max(a.MinX, b.MinX)
	top := math.Max(a.MinY, b.MinY)
	right := math.Min(a.MaxX, b.MaxX)
	bottom := math.Min(a.MaxY, b.MaxY)

	if left >= right || top >= bottom {
		return 0.0
	}

	intersection := (right - left) * (bottom - top)
	union := a.Area() + b.Area() - intersection
	if union <= 0 {
		return 0.0
	}
	return intersection / union
}

// Union returns the smallest box enclosing both a and b.
func Union(a, b Box) Box {
	return Box{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

// BoundingBox returns the axis-aligned bounding box enclosing all boxes.
func BoundingBox(boxes []Box) Box {
	if len(boxes) == 0 {
		return Box{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out = Union(out, b)
	}
	return out
}

// ToRect converts a Box to an image.Rectangle, clamped to image bounds.
func (b Box) ToRect(bounds image.Rectangle) image.Rectangle {
	x1 := clampInt(int(math.Floor(b.MinX)), bounds.Min.X, bounds.Max.X)
	y1 := clampInt(int(math.Floor(b.MinY)), bounds.Min.Y, bounds.Max.Y)
	x2 := clampInt(int(math.Ceil(b.MaxX)), bounds.Min.X, bounds.Max.X)
	y2 := clampInt(int(math.Ceil(b.MaxY)), bounds.Min.Y, bounds.Max.Y)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return image.Rect(x1, y1, x2, y2)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Compare orders two floats totally. NaN on either side compares equal so
// that sorting degenerate geometry stays deterministic.
func Compare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
