package layout

import (
	"fmt"

	"github.com/MeKo-Tech/readorder/internal/geometry"
)

// Label is the coarse semantic classification attached to a detected
// layout element by the upstream detector.
type Label int

const (
	// LabelRegular marks ordinary flowing text blocks.
	LabelRegular Label = iota
	// LabelCrossLayout marks elements spanning multiple column-equivalent
	// regions, e.g. a title above two columns.
	LabelCrossLayout
	// LabelHorizontalTitle marks horizontally oriented titles.
	LabelHorizontalTitle
	// LabelVerticalTitle marks vertically oriented titles.
	LabelVerticalTitle
	// LabelVision marks figures, tables and other visual elements.
	LabelVision
)

var labelNames = map[Label]string{
	LabelRegular:         "regular",
	LabelCrossLayout:     "cross_layout",
	LabelHorizontalTitle: "horizontal_title",
	LabelVerticalTitle:   "vertical_title",
	LabelVision:          "vision",
}

func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("label(%d)", int(l))
}

// ParseLabel converts a label name into a Label.
func ParseLabel(s string) (Label, error) {
	for l, name := range labelNames {
		if name == s {
			return l, nil
		}
	}
	return LabelRegular, fmt.Errorf("unknown layout label %q", s)
}

// Priority returns the reinsertion rank of the label. Lower ranks are
// placed earlier and may only anchor on occupants of equal or higher rank.
func (l Label) Priority() int {
	switch l {
	case LabelCrossLayout:
		return 0
	case LabelHorizontalTitle, LabelVerticalTitle:
		return 1
	case LabelVision:
		return 2
	default:
		return 3
	}
}

// Element is the geometry capability every layout element must provide.
// The core never constructs elements; it only orders what the upstream
// detector hands it.
type Element interface {
	// ID returns the unique identifier of the element.
	ID() int

	// Bounds returns the axis-aligned bounding box.
	Bounds() geometry.Box

	// Center returns the center point.
	Center() geometry.Point

	// IoU computes Intersection over Union with another element.
	IoU(other Element) float64

	// ShouldMask reports whether the element is mask-eligible
	// (titles, figures, tables).
	ShouldMask() bool

	// Label returns the semantic classification.
	Label() Label
}

// Block is a plain Element implementation backed by a box. It is what the
// CLI, server and tests feed into the orderer.
type Block struct {
	Num      int
	Box      geometry.Box
	Kind     Label
	Maskable bool
}

// NewBlock constructs a Block from corner coordinates.
func NewBlock(id int, x1, y1, x2, y2 float64, label Label) Block {
	return Block{Num: id, Box: geometry.NewBox(x1, y1, x2, y2), Kind: label}
}

func (b Block) ID() int                { return b.Num }
func (b Block) Bounds() geometry.Box   { return b.Box }
func (b Block) Center() geometry.Point { return b.Box.Center() }
func (b Block) ShouldMask() bool       { return b.Maskable }
func (b Block) Label() Label           { return b.Kind }

func (b Block) IoU(other Element) float64 {
	return geometry.IoU(b.Box, other.Bounds())
}
