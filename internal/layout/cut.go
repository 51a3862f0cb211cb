package layout

import (
	"sort"

	"github.com/MeKo-Tech/readorder/internal/geometry"
)

// densityRatioThreshold biases regions dominated by cross-layout elements
// toward column separation.
const densityRatioThreshold = 0.9

type cutFrame struct {
	elements []Element
	rect     geometry.Box
}

// cutOrder orders regular elements by recursively splitting the region at
// empty projection gaps. An explicit work stack replaces call recursion so
// degenerate inputs with thousands of singleton cuts cannot exhaust the
// goroutine stack.
func (o *Orderer) cutOrder(elements []Element, rect geometry.Box) []int {
	order := make([]int, 0, len(elements))
	stack := []cutFrame{{elements: elements, rect: rect}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch len(frame.elements) {
		case 0:
			continue
		case 1:
			order = append(order, frame.elements[0].ID())
			continue
		}

		if first, second, ok := o.trySplit(frame); ok {
			// LIFO: push the second half first so the top/left half is
			// processed next.
			stack = append(stack, second, first)
			continue
		}

		o.tracer.FallbackSort(len(frame.elements))
		order = append(order, o.sortByPosition(frame.elements)...)
	}

	return order
}

// trySplit attempts a cut on the density-preferred axis, then the other.
// A split leaving one side empty makes no progress and counts as no cut.
func (o *Orderer) trySplit(frame cutFrame) (cutFrame, cutFrame, bool) {
	axes := [2]Axis{AxisHorizontal, AxisVertical}
	if densityRatio(frame.elements) > densityRatioThreshold {
		axes = [2]Axis{AxisVertical, AxisHorizontal}
	}

	for _, axis := range axes {
		coord, ok := o.findCut(frame.elements, frame.rect, axis)
		if !ok {
			continue
		}
		first, second := splitAt(frame.elements, coord, axis)
		if len(first.elements) == 0 || len(second.elements) == 0 {
			continue
		}
		first.rect, second.rect = shrinkRect(frame.rect, coord, axis)
		o.tracer.Cut(axis, coord, len(first.elements), len(second.elements))
		return first, second, true
	}

	return cutFrame{}, cutFrame{}, false
}

// findCut builds a projection histogram over the rectangle's range on the
// given axis and converts the largest qualifying gap back to a coordinate.
func (o *Orderer) findCut(elements []Element, rect geometry.Box, axis Axis) (float64, bool) {
	minCoord, maxCoord := rect.MinY, rect.MaxY
	if axis == AxisVertical {
		minCoord, maxCoord = rect.MinX, rect.MaxX
	}

	bins := int((maxCoord - minCoord) * o.cfg.HistogramResolutionScale)
	if bins <= 0 {
		return 0, false
	}

	histogram := buildHistogram(elements, minCoord, maxCoord, bins, axis)
	minGapBins := int(o.cfg.MinCutThreshold * o.cfg.HistogramResolutionScale)

	binIndex, ok := findLargestGap(histogram, minGapBins)
	if !ok {
		return 0, false
	}
	return minCoord + (float64(binIndex)/float64(bins))*(maxCoord-minCoord), true
}

// splitAt divides elements strictly by center position relative to the cut
// coordinate.
func splitAt(elements []Element, coord float64, axis Axis) (cutFrame, cutFrame) {
	var first, second cutFrame
	for _, e := range elements {
		c := e.Center().Y
		if axis == AxisVertical {
			c = e.Center().X
		}
		if c < coord {
			first.elements = append(first.elements, e)
		} else {
			second.elements = append(second.elements, e)
		}
	}
	return first, second
}

func shrinkRect(rect geometry.Box, coord float64, axis Axis) (geometry.Box, geometry.Box) {
	first, second := rect, rect
	if axis == AxisVertical {
		first.MaxX = coord
		second.MinX = coord
	} else {
		first.MaxY = coord
		second.MinY = coord
	}
	return first, second
}

// densityRatio is the aggregate aspect-ratio weight of cross-layout
// elements over all others. Zero-height elements are excluded from both
// sums; an empty denominator yields 1.0 by convention.
func densityRatio(elements []Element) float64 {
	var cross, others float64
	for _, e := range elements {
		b := e.Bounds()
		if b.Height() == 0 {
			continue
		}
		ratio := b.Width() / b.Height()
		if e.Label() == LabelCrossLayout {
			cross += ratio
		} else {
			others += ratio
		}
	}
	if others == 0 {
		return 1.0
	}
	return cross / others
}

// sortByPosition is the stable fallback when no axis yields a cut: rows
// top-to-bottom, left-to-right within a row.
func (o *Orderer) sortByPosition(elements []Element) []int {
	sorted := make([]Element, len(elements))
	copy(sorted, elements)

	tolerance := o.cfg.SameRowTolerance
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareReadingPosition(sorted[i], sorted[j], tolerance) < 0
	})

	order := make([]int, len(sorted))
	for i, e := range sorted {
		order[i] = e.ID()
	}
	return order
}

// compareReadingPosition orders two elements top-to-bottom, falling back to
// left-to-right when their vertical centers are within the row tolerance.
// NaN coordinates compare equal, keeping the sort deterministic.
func compareReadingPosition(a, b Element, tolerance float64) int {
	ca, cb := a.Center(), b.Center()
	diff := ca.Y - cb.Y
	if diff < tolerance && diff > -tolerance {
		return geometry.Compare(ca.X, cb.X)
	}
	return geometry.Compare(ca.Y, cb.Y)
}
