package layout

import (
	"sort"

	"github.com/MeKo-Tech/readorder/internal/geometry"
)

const (
	// wideWidthFactor marks elements wider than this multiple of the median
	// width as cross-layout candidates.
	wideWidthFactor = 1.3

	// wideOverlapMin is the number of other elements a wide element must
	// overlap before it is masked.
	wideOverlapMin = 2

	// centralDistanceRatio bounds the page-center distance, normalized by
	// the page diagonal, for the isolated-visual rule.
	centralDistanceRatio = 0.2
)

// Partition holds the masked/regular split produced ahead of cutting.
// Relative input order is preserved within each group.
type Partition struct {
	Regular []Element
	Masked  []Element
}

// partitionElements splits elements into regular flowing blocks and masked
// structural blocks (titles, figures, tables, wide cross-column spans,
// isolated central visuals). isolation is the minimum distance to the
// nearest non-maskable element for the isolated-visual rule.
func partitionElements(elements []Element, page geometry.Box, isolation float64) Partition {
	var p Partition
	if len(elements) == 0 {
		return p
	}

	median := medianWidth(elements)
	for _, e := range elements {
		if shouldMaskElement(e, elements, median, page, isolation) {
			p.Masked = append(p.Masked, e)
		} else {
			p.Regular = append(p.Regular, e)
		}
	}
	return p
}

func shouldMaskElement(e Element, all []Element, median float64, page geometry.Box, isolation float64) bool {
	if e.ShouldMask() {
		return true
	}
	if e.Bounds().Width() > wideWidthFactor*median && countOverlaps(e, all) >= wideOverlapMin {
		return true
	}
	return isCentralIsolated(e, all, page, isolation)
}

// countOverlaps counts how many other elements the given element overlaps
// with on both axes.
func countOverlaps(e Element, all []Element) int {
	count := 0
	b := e.Bounds()
	for _, other := range all {
		if other.ID() == e.ID() {
			continue
		}
		if b.Overlaps(other.Bounds()) {
			count++
		}
	}
	return count
}

// isCentralIsolated reports whether a mask-eligible element sits near the
// page center with no non-maskable neighbor within the isolation distance.
func isCentralIsolated(e Element, all []Element, page geometry.Box, isolation float64) bool {
	if !e.ShouldMask() {
		return false
	}
	diagonal := page.Diagonal()
	if diagonal <= 0 {
		return false
	}

	c := e.Center()
	pc := page.Center()
	dx, dy := c.X-pc.X, c.Y-pc.Y
	if (dx*dx+dy*dy) > (centralDistanceRatio*diagonal)*(centralDistanceRatio*diagonal) {
		return false
	}

	b := e.Bounds()
	for _, other := range all {
		if other.ID() == e.ID() || other.ShouldMask() {
			continue
		}
		if b.Distance(other.Bounds()) <= isolation {
			return false
		}
	}
	return true
}

// medianWidth computes the median element width; even counts average the
// two middle values.
func medianWidth(elements []Element) float64 {
	if len(elements) == 0 {
		return 0
	}
	widths := make([]float64, len(elements))
	for i, e := range elements {
		widths[i] = e.Bounds().Width()
	}
	sort.Slice(widths, func(i, j int) bool {
		return geometry.Compare(widths[i], widths[j]) < 0
	})

	n := len(widths)
	if n%2 == 1 {
		return widths[n/2]
	}
	return (widths[n/2-1] + widths[n/2]) / 2
}
