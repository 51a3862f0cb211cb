package layout

import (
	"math"
	"sort"

	"github.com/MeKo-Tech/readorder/internal/geometry"
)

const (
	// nonOverlapCost is the flat penalty for anchors not overlapping the
	// masked element.
	nonOverlapCost = 100.0

	// abovePenaltyFactor scales the vertical gap when an anchor lies above
	// the masked element.
	abovePenaltyFactor = 10.0

	// spanningWidthRatio marks fallback elements wider than this share of
	// the regular elements' page width as column spanning.
	spanningWidthRatio = 0.6
)

// mergeMasked folds masked elements back into the regular order. Masked
// elements are processed by ascending priority so structurally important
// elements anchor before less important ones are placed.
func (o *Orderer) mergeMasked(order []int, regular, masked []Element) []int {
	result := make([]int, len(order))
	copy(result, order)
	if len(masked) == 0 {
		return result
	}

	byID := make(map[int]Element, len(regular)+len(masked))
	for _, e := range regular {
		byID[e.ID()] = e
	}
	for _, e := range masked {
		byID[e.ID()] = e
	}

	queue := make([]Element, len(masked))
	copy(queue, masked)
	tolerance := o.cfg.SameRowTolerance
	sort.SliceStable(queue, func(i, j int) bool {
		pi, pj := queue[i].Label().Priority(), queue[j].Label().Priority()
		if pi != pj {
			return pi < pj
		}
		return compareReadingPosition(queue[i], queue[j], tolerance) < 0
	})

	for _, m := range queue {
		position, distance, ok := o.bestAnchor(m, result, byID)
		if ok {
			o.tracer.Insert(m.ID(), result[position], position, distance)
			result = insertAt(result, position, m.ID())
			continue
		}
		position = o.fallbackPosition(m, result, regular, byID)
		o.tracer.Append(m.ID(), position)
		result = insertAt(result, position, m.ID())
	}

	return result
}

// bestAnchor scans the current sequence for the eligible anchor with the
// smallest weighted distance. Components are evaluated in fixed order and a
// candidate is abandoned as soon as its partial sum exceeds the best total.
func (o *Orderer) bestAnchor(m Element, result []int, byID map[int]Element) (int, float64, bool) {
	w1, w2, w3, w4 := distanceWeights(m)
	priority := m.Label().Priority()

	best := math.Inf(1)
	bestPos := -1

	for pos, id := range result {
		anchor, ok := byID[id]
		if !ok || anchor.Label().Priority() < priority {
			continue
		}

		total := w1 * overlapCost(m, anchor)
		if total > best {
			continue
		}
		total += w2 * boundaryGap(m, anchor)
		if total > best {
			continue
		}
		total += w3 * verticalContinuity(m, anchor)
		if total > best {
			continue
		}
		total += w4 * anchor.Bounds().MinX

		if total < best {
			best = total
			bestPos = pos
		}
	}

	return bestPos, best, bestPos >= 0
}

// distanceWeights derives the four component weights from the masked
// element's larger dimension and its per-label multipliers.
func distanceWeights(m Element) (w1, w2, w3, w4 float64) {
	b := m.Bounds()
	d := math.Max(b.Width(), b.Height())
	if d <= 0 || math.IsNaN(d) {
		d = 1
	}

	m1, m2, m3, m4 := 1.0, 1.0, 1.0, 0.1
	switch m.Label() {
	case LabelCrossLayout:
		m1, m2, m3, m4 = 1, 1, 0.1, 1
	case LabelHorizontalTitle, LabelVerticalTitle:
		if b.Width() > b.Height() {
			m1, m2, m3, m4 = 1, 0.1, 0.1, 1
		} else {
			m1, m2, m3, m4 = 0.2, 0.1, 1, 1
		}
	}

	return d * d * m1, d * m2, m3, m4 / d
}

// overlapCost is zero when the boxes overlap on both axes, a flat penalty
// otherwise.
func overlapCost(m, anchor Element) float64 {
	if m.Bounds().Overlaps(anchor.Bounds()) {
		return 0
	}
	return nonOverlapCost
}

// boundaryGap measures boundary proximity: cross-layout elements pay for
// both axis gaps, everything else for the nearer one.
func boundaryGap(m, anchor Element) float64 {
	mb, ab := m.Bounds(), anchor.Bounds()
	gx, gy := mb.GapX(ab), mb.GapY(ab)
	if m.Label() == LabelCrossLayout {
		return gx + gy
	}
	return math.Min(gx, gy)
}

// verticalContinuity keeps reading order flowing downward. Anchors below or
// overlapping the masked element are cheap; anchors above it cost ten times
// their vertical gap. Cross-layout elements pay nothing at all for anchors
// below them, so a page-wide header happily claims the first block beneath
// it no matter how far down the column continues.
func verticalContinuity(m, anchor Element) float64 {
	mb, ab := m.Bounds(), anchor.Bounds()
	if ab.MaxY <= mb.MinY {
		// Anchor strictly above the masked element.
		return abovePenaltyFactor * (mb.MinY - ab.MaxY)
	}
	if m.Label() == LabelCrossLayout {
		return 0
	}
	return math.Max(0, ab.MinY-mb.MaxY)
}

// fallbackPosition places a masked element when no eligible anchor exists.
// Wide spanning elements insert purely by vertical position; narrower ones
// insert before the first same-column occupant below them. Defaults to
// appending at the end.
func (o *Orderer) fallbackPosition(m Element, result []int, regular []Element, byID map[int]Element) int {
	mb := m.Bounds()
	mc := m.Center()
	spanning := mb.Width() > spanningWidthRatio*regularPageWidth(regular)

	for i, id := range result {
		occupant, ok := byID[id]
		if !ok {
			continue
		}
		if occupant.Center().Y <= mc.Y {
			continue
		}
		if spanning {
			return i
		}
		leftDiff := occupant.Bounds().MinX - mb.MinX
		if leftDiff < o.cfg.SameColumnTolerance && leftDiff > -o.cfg.SameColumnTolerance {
			return i
		}
	}
	return len(result)
}

// regularPageWidth is the horizontal extent spanned by the regular
// elements.
func regularPageWidth(regular []Element) float64 {
	if len(regular) == 0 {
		return 0
	}
	boxes := make([]geometry.Box, len(regular))
	for i, e := range regular {
		boxes[i] = e.Bounds()
	}
	return geometry.BoundingBox(boxes).Width()
}

func insertAt(ids []int, position int, id int) []int {
	ids = append(ids, 0)
	copy(ids[position+1:], ids[position:])
	ids[position] = id
	return ids
}
