// Package page defines the JSON document model consumed by the CLI and the
// HTTP API: one page rectangle plus the detected layout elements.
package page

import (
	"encoding/json"
	"fmt"

	"github.com/MeKo-Tech/readorder/internal/geometry"
	"github.com/MeKo-Tech/readorder/internal/layout"
)

// Document is the serializable representation of a detected page.
type Document struct {
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Elements []ElementJSON `json:"elements"`
}

// ElementJSON is one detected layout element.
type ElementJSON struct {
	ID    int     `json:"id"`
	Box   BoxJSON `json:"box"`
	Label string  `json:"label,omitempty"`
	Mask  bool    `json:"mask,omitempty"`
}

// BoxJSON is an axis-aligned bounding box in page coordinates.
type BoxJSON struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// OrderResult pairs a computed ordering with the document it was computed
// for.
type OrderResult struct {
	Order []int `json:"order"`
	Count int   `json:"count"`
}

// FromJSON parses a page document.
func FromJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing page document: %w", err)
	}
	return doc, nil
}

// ToJSON serializes a page document with indentation.
func (d Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Rect returns the page rectangle.
func (d Document) Rect() geometry.Box {
	return geometry.Box{MinX: 0, MinY: 0, MaxX: d.Width, MaxY: d.Height}
}

// Validate performs sanity checks on the document: positive page size,
// ordered boxes, unique ids and known labels.
func (d Document) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid page dimensions %gx%g", d.Width, d.Height)
	}
	seen := make(map[int]struct{}, len(d.Elements))
	for i, e := range d.Elements {
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("element %d has duplicate id %d", i, e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.Box.X2 < e.Box.X1 || e.Box.Y2 < e.Box.Y1 {
			return fmt.Errorf("element %d has inverted box", i)
		}
		if e.Label != "" {
			if _, err := layout.ParseLabel(e.Label); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	}
	return nil
}

// Blocks converts the document elements into layout blocks. Elements with
// an empty label default to regular text.
func (d Document) Blocks() ([]layout.Block, error) {
	blocks := make([]layout.Block, 0, len(d.Elements))
	for i, e := range d.Elements {
		label := layout.LabelRegular
		if e.Label != "" {
			var err error
			label, err = layout.ParseLabel(e.Label)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
		b := layout.NewBlock(e.ID, e.Box.X1, e.Box.Y1, e.Box.X2, e.Box.Y2, label)
		b.Maskable = e.Mask
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// AsElements converts blocks into the layout.Element interface slice the
// orderer consumes.
func AsElements(blocks []layout.Block) []layout.Element {
	elements := make([]layout.Element, len(blocks))
	for i, b := range blocks {
		elements[i] = b
	}
	return elements
}
