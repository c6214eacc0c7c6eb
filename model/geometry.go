package model

import (
	"fmt"
	"math"
)

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents an axis-aligned bounding box on a page. Coordinates follow
// the PDF convention: Y grows upward, so TopY >= BottomY for a valid box.
type BBox struct {
	Page    int // 0-based page index
	LeftX   float64
	BottomY float64
	RightX  float64
	TopY    float64
}

// NewBBox creates a bounding box from its edges
func NewBBox(page int, left, bottom, right, top float64) BBox {
	return BBox{Page: page, LeftX: left, BottomY: bottom, RightX: right, TopY: top}
}

// NewBBoxFromPoints creates a bounding box spanning two corner points
func NewBBoxFromPoints(page int, p1, p2 Point) BBox {
	return BBox{
		Page:    page,
		LeftX:   math.Min(p1.X, p2.X),
		BottomY: math.Min(p1.Y, p2.Y),
		RightX:  math.Max(p1.X, p2.X),
		TopY:    math.Max(p1.Y, p2.Y),
	}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.RightX - b.LeftX
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.TopY - b.BottomY
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.LeftX + b.RightX) / 2,
		Y: (b.BottomY + b.TopY) / 2,
	}
}

// Contains checks if a point is inside the bounding box
func (b BBox) Contains(p Point) bool {
	return p.X >= b.LeftX && p.X <= b.RightX &&
		p.Y >= b.BottomY && p.Y <= b.TopY
}

// Intersects checks if two bounding boxes intersect. Touching edges count.
func (b BBox) Intersects(other BBox) bool {
	return !(b.RightX < other.LeftX ||
		b.LeftX > other.RightX ||
		b.TopY < other.BottomY ||
		b.BottomY > other.TopY)
}

// Intersection returns the intersection of two bounding boxes
func (b BBox) Intersection(other BBox) BBox {
	if !b.Intersects(other) {
		return BBox{Page: b.Page}
	}

	return BBox{
		Page:    b.Page,
		LeftX:   math.Max(b.LeftX, other.LeftX),
		BottomY: math.Max(b.BottomY, other.BottomY),
		RightX:  math.Min(b.RightX, other.RightX),
		TopY:    math.Min(b.TopY, other.TopY),
	}
}

// Union returns the smallest box containing both boxes. The page index of
// the receiver is kept.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		Page:    b.Page,
		LeftX:   math.Min(b.LeftX, other.LeftX),
		BottomY: math.Min(b.BottomY, other.BottomY),
		RightX:  math.Max(b.RightX, other.RightX),
		TopY:    math.Max(b.TopY, other.TopY),
	}
}

// UnionAll returns the union of all boxes, or the zero box if there are none
func UnionAll(boxes ...BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}
	result := boxes[0]
	for _, b := range boxes[1:] {
		result = result.Union(b)
	}
	return result
}

// HorizontalOverlap returns the length of the shared horizontal extent, or 0
// when the boxes do not overlap horizontally
func (b BBox) HorizontalOverlap(other BBox) float64 {
	overlap := math.Min(b.RightX, other.RightX) - math.Max(b.LeftX, other.LeftX)
	if overlap < 0 {
		return 0
	}
	return overlap
}

// OverlapsHorizontally reports whether the horizontal extents share any point
func (b BBox) OverlapsHorizontally(other BBox) bool {
	return b.LeftX <= other.RightX && other.LeftX <= b.RightX
}

// VerticalGap returns the empty vertical distance between the boxes, or 0
// when their vertical extents overlap or touch
func (b BBox) VerticalGap(other BBox) float64 {
	if b.BottomY >= other.TopY {
		return b.BottomY - other.TopY
	}
	if other.BottomY >= b.TopY {
		return other.BottomY - b.TopY
	}
	return 0
}

// Area returns the area of the bounding box
func (b BBox) Area() float64 {
	return b.Width() * b.Height()
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		Page:    b.Page,
		LeftX:   b.LeftX - margin,
		BottomY: b.BottomY - margin,
		RightX:  b.RightX + margin,
		TopY:    b.TopY + margin,
	}
}

// OverlapRatio calculates the overlap ratio with another box
// Returns value between 0 and 1
func (b BBox) OverlapRatio(other BBox) float64 {
	if !b.Intersects(other) {
		return 0
	}

	intersection := b.Intersection(other)
	minArea := math.Min(b.Area(), other.Area())

	if minArea == 0 {
		return 0
	}

	return intersection.Area() / minArea
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Validate returns ErrInvalidBBox when an edge pair is inverted or a
// coordinate is not a finite number. Degenerate (zero width or height) boxes
// are valid; rules and thin line art have them.
func (b BBox) Validate() error {
	for _, v := range []float64{b.LeftX, b.BottomY, b.RightX, b.TopY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite coordinate in %s", ErrInvalidBBox, b)
		}
	}
	if b.LeftX > b.RightX {
		return fmt.Errorf("%w: left %.2f > right %.2f", ErrInvalidBBox, b.LeftX, b.RightX)
	}
	if b.BottomY > b.TopY {
		return fmt.Errorf("%w: bottom %.2f > top %.2f", ErrInvalidBBox, b.BottomY, b.TopY)
	}
	if b.Page < 0 {
		return fmt.Errorf("%w: negative page index %d", ErrInvalidBBox, b.Page)
	}
	return nil
}

// String formats the box as (left,bottom,right,top)
func (b BBox) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", b.LeftX, b.BottomY, b.RightX, b.TopY)
}
