package layout

import "math"

// buildHistogram projects element extents along the given axis onto bins
// covering [minCoord, maxCoord]. Each element increments every bin its span
// touches. AxisHorizontal projects y-extents (row occupancy), AxisVertical
// projects x-extents (column occupancy).
func buildHistogram(elements []Element, minCoord, maxCoord float64, bins int, axis Axis) []int {
	histogram := make([]int, bins)
	binSize := (maxCoord - minCoord) / float64(bins)

	for _, e := range elements {
		b := e.Bounds()
		lo, hi := b.MinY, b.MaxY
		if axis == AxisVertical {
			lo, hi = b.MinX, b.MaxX
		}

		start := int(math.Max(math.Floor((lo-minCoord)/binSize), 0))
		end := int(math.Min(math.Ceil((hi-minCoord)/binSize), float64(bins)))

		for bin := start; bin < end; bin++ {
			histogram[bin]++
		}
	}

	return histogram
}

// findLargestGap scans the histogram for the longest run of zero-count bins
// of at least minGapBins length. A later run replaces the current maximum
// only when strictly longer, so the earliest run wins ties. Returns the bin
// index at the run's center, and false when no run qualifies.
func findLargestGap(histogram []int, minGapBins int) (int, bool) {
	maxGapSize := 0
	maxGapCenter := 0
	found := false

	gapSize := 0
	gapStart := -1

	endGap := func() {
		if gapSize >= minGapBins && gapSize > maxGapSize {
			maxGapSize = gapSize
			maxGapCenter = gapStart + gapSize/2
			found = true
		}
		gapSize = 0
		gapStart = -1
	}

	for i, count := range histogram {
		if count == 0 {
			if gapStart < 0 {
				gapStart = i
			}
			gapSize++
			continue
		}
		endGap()
	}
	endGap()

	return maxGapCenter, found
}
