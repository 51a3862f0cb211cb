// Package render draws reading-order overlays: element boxes color-coded
// by label and a polyline tracing the computed order through their centers.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/readorder/internal/geometry"
	"github.com/MeKo-Tech/readorder/internal/layout"
)

// Options controls how the overlay is drawn.
type Options struct {
	Thickness  int
	LineColor  color.Color
	Background color.Color
}

// DefaultOptions returns the default overlay styling.
func DefaultOptions() Options {
	return Options{
		Thickness:  2,
		LineColor:  color.RGBA{0, 0, 255, 255},
		Background: color.White,
	}
}

// labelColor maps a semantic label to its overlay color.
func labelColor(l layout.Label) color.Color {
	switch l {
	case layout.LabelCrossLayout:
		return color.RGBA{255, 0, 0, 255}
	case layout.LabelHorizontalTitle, layout.LabelVerticalTitle:
		return color.RGBA{255, 165, 0, 255}
	case layout.LabelVision:
		return color.RGBA{0, 128, 0, 255}
	default:
		return color.RGBA{80, 80, 80, 255}
	}
}

// Overlay renders the blocks and their computed order onto the underlay
// image. A nil underlay produces a blank page of the given size.
func Overlay(width, height float64, blocks []layout.Block, order []int, underlay image.Image, opt Options) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid page size %gx%g", width, height)
	}
	if opt.Thickness < 1 {
		opt.Thickness = 1
	}
	if opt.LineColor == nil {
		opt.LineColor = DefaultOptions().LineColor
	}
	if opt.Background == nil {
		opt.Background = DefaultOptions().Background
	}

	dst := newCanvas(width, height, underlay, opt.Background)
	bounds := dst.Bounds()

	byID := make(map[int]layout.Block, len(blocks))
	for _, b := range blocks {
		byID[b.Num] = b
		drawRect(dst, b.Box.ToRect(bounds), labelColor(b.Kind), opt.Thickness)
	}

	var prev geometry.Point
	hasPrev := false
	for _, id := range order {
		b, ok := byID[id]
		if !ok {
			continue
		}
		c := b.Center()
		if hasPrev {
			drawLine(dst, prev, c, opt.LineColor)
		}
		prev = c
		hasPrev = true
	}

	return dst, nil
}

func newCanvas(width, height float64, underlay image.Image, background color.Color) *image.RGBA {
	if underlay != nil {
		b := underlay.Bounds()
		dst := image.NewRGBA(b)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				dst.Set(x, y, underlay.At(x, y))
			}
		}
		return dst
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(width)), int(math.Ceil(height))))
	for y := dst.Bounds().Min.Y; y < dst.Bounds().Max.Y; y++ {
		for x := dst.Bounds().Min.X; x < dst.Bounds().Max.X; x++ {
			dst.Set(x, y, background)
		}
	}
	return dst
}

// drawRect draws an axis-aligned rectangle outline into dst.
func drawRect(dst *image.RGBA, rect image.Rectangle, col color.Color, thickness int) {
	rect = rect.Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	for t := 0; t < thickness; t++ {
		yTop := rect.Min.Y + t
		yBot := rect.Max.Y - 1 - t
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.Set(x, yTop, col)
			dst.Set(x, yBot, col)
		}
	}
	for t := 0; t < thickness; t++ {
		xLeft := rect.Min.X + t
		xRight := rect.Max.X - 1 - t
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			dst.Set(xLeft, y, col)
			dst.Set(xRight, y, col)
		}
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(dst *image.RGBA, a, b geometry.Point, col color.Color) {
	x0, y0 := int(math.Round(a.X)), int(math.Round(a.Y))
	x1, y1 := int(math.Round(b.X)), int(math.Round(b.Y))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		dst.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LoadUnderlay opens a page image to draw the overlay onto.
func LoadUnderlay(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening underlay image: %w", err)
	}
	return img, nil
}

// Save writes the rendered overlay; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving overlay image: %w", err)
	}
	return nil
}
