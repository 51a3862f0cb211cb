package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeMaskedNoMaskedElements(t *testing.T) {
	o := NewOrderer(DefaultConfig())
	regular := []Element{NewBlock(0, 0, 0, 100, 50, LabelRegular)}

	result := o.mergeMasked([]int{0}, regular, nil)
	assert.Equal(t, []int{0}, result)
}

func TestMergeMaskedInsertsBeforeOverlappedElement(t *testing.T) {
	regular := blockElements(
		NewBlock(0, 0, 0, 200, 50, LabelRegular),
		NewBlock(1, 0, 100, 200, 150, LabelRegular),
		NewBlock(2, 0, 200, 200, 250, LabelRegular),
	)
	figure := NewBlock(10, 50, 110, 150, 140, LabelVision)
	figure.Maskable = true

	o := NewOrderer(DefaultConfig())
	result := o.mergeMasked([]int{0, 1, 2}, regular, []Element{figure})

	assert.Equal(t, []int{0, 10, 1, 2}, result)
}

func TestMergeMaskedCrossTitleComesFirst(t *testing.T) {
	// A cross-layout title spanning 80% of the page width above two text
	// columns anchors on the top-left column block.
	title := NewBlock(0, 50, 20, 450, 60, LabelCrossLayout)
	title.Maskable = true
	regular := blockElements(
		NewBlock(1, 0, 100, 240, 200, LabelRegular),
		NewBlock(2, 0, 220, 240, 320, LabelRegular),
		NewBlock(3, 260, 100, 500, 200, LabelRegular),
		NewBlock(4, 260, 220, 500, 320, LabelRegular),
	)

	o := NewOrderer(DefaultConfig())
	result := o.mergeMasked([]int{1, 2, 3, 4}, regular, []Element{title})

	assert.Equal(t, []int{0, 1, 2, 3, 4}, result)
}

func TestMergeMaskedPriorityConstrainsAnchors(t *testing.T) {
	// The vision element overlaps the title, but a priority-2 element may
	// not anchor on a priority-1 occupant; it falls through to the regular
	// block below.
	regular := blockElements(NewBlock(0, 0, 200, 100, 250, LabelRegular))

	title := NewBlock(1, 0, 0, 100, 50, LabelHorizontalTitle)
	title.Maskable = true
	figure := NewBlock(2, 10, 10, 90, 40, LabelVision)
	figure.Maskable = true

	o := NewOrderer(DefaultConfig())
	result := o.mergeMasked([]int{0}, regular, []Element{figure, title})

	assert.Equal(t, []int{1, 2, 0}, result)
}

func TestMergeMaskedProcessesByPriorityThenPosition(t *testing.T) {
	// Input order of masked elements must not matter: cross-layout first,
	// then titles, visions last; equal priorities go top to bottom.
	regular := blockElements(NewBlock(0, 0, 500, 400, 550, LabelRegular))

	vision := NewBlock(1, 0, 300, 100, 380, LabelVision)
	vision.Maskable = true
	cross := NewBlock(2, 0, 0, 400, 40, LabelCrossLayout)
	cross.Maskable = true
	title := NewBlock(3, 0, 100, 200, 140, LabelHorizontalTitle)
	title.Maskable = true

	o := NewOrderer(DefaultConfig())
	result := o.mergeMasked([]int{0}, regular, []Element{vision, cross, title})

	assert.Equal(t, []int{2, 3, 1, 0}, result)
}

func TestMergeMaskedSingleMaskedOnlyPage(t *testing.T) {
	figure := NewBlock(5, 100, 100, 300, 300, LabelVision)
	figure.Maskable = true

	o := NewOrderer(DefaultConfig())
	result := o.mergeMasked(nil, nil, []Element{figure})

	assert.Equal(t, []int{5}, result)
}

func TestDistanceWeights(t *testing.T) {
	cross := NewBlock(0, 0, 0, 200, 100, LabelCrossLayout) // d=200
	w1, w2, w3, w4 := distanceWeights(cross)
	assert.InDelta(t, 200.0*200.0, w1, 1e-9)
	assert.InDelta(t, 200.0, w2, 1e-9)
	assert.InDelta(t, 0.1, w3, 1e-9)
	assert.InDelta(t, 1.0/200.0, w4, 1e-9)

	horizontalTitle := NewBlock(1, 0, 0, 200, 50, LabelHorizontalTitle)
	w1, w2, w3, w4 = distanceWeights(horizontalTitle)
	assert.InDelta(t, 200.0*200.0, w1, 1e-9)
	assert.InDelta(t, 0.1*200.0, w2, 1e-9)
	assert.InDelta(t, 0.1, w3, 1e-9)
	assert.InDelta(t, 1.0/200.0, w4, 1e-9)

	verticalTitle := NewBlock(2, 0, 0, 50, 200, LabelVerticalTitle)
	w1, w2, w3, w4 = distanceWeights(verticalTitle)
	assert.InDelta(t, 0.2*200.0*200.0, w1, 1e-9)
	assert.InDelta(t, 0.1*200.0, w2, 1e-9)
	assert.InDelta(t, 1.0, w3, 1e-9)
	assert.InDelta(t, 1.0/200.0, w4, 1e-9)

	vision := NewBlock(3, 0, 0, 100, 100, LabelVision)
	w1, w2, w3, w4 = distanceWeights(vision)
	assert.InDelta(t, 100.0*100.0, w1, 1e-9)
	assert.InDelta(t, 100.0, w2, 1e-9)
	assert.InDelta(t, 1.0, w3, 1e-9)
	assert.InDelta(t, 0.1/100.0, w4, 1e-9)

	// Degenerate geometry falls back to a unit dimension.
	degenerate := NewBlock(4, 0, 0, 0, 0, LabelVision)
	w1, _, _, w4 = distanceWeights(degenerate)
	assert.False(t, math.IsInf(w4, 1))
	assert.InDelta(t, 1.0, w1, 1e-9)
}

func TestOverlapCost(t *testing.T) {
	a := NewBlock(0, 0, 0, 100, 100, LabelRegular)
	b := NewBlock(1, 50, 50, 150, 150, LabelRegular)
	c := NewBlock(2, 200, 0, 300, 100, LabelRegular)

	assert.InDelta(t, 0.0, overlapCost(a, b), 1e-9)
	assert.InDelta(t, 100.0, overlapCost(a, c), 1e-9)
}

func TestBoundaryGap(t *testing.T) {
	m := NewBlock(0, 0, 0, 100, 100, LabelVision)
	anchor := NewBlock(1, 150, 180, 250, 280, LabelRegular)

	// Non-cross elements pay the nearer axis gap.
	assert.InDelta(t, 50.0, boundaryGap(m, anchor), 1e-9)

	// Cross-layout elements pay both.
	cross := NewBlock(2, 0, 0, 100, 100, LabelCrossLayout)
	assert.InDelta(t, 130.0, boundaryGap(cross, anchor), 1e-9)
}

func TestVerticalContinuity(t *testing.T) {
	m := NewBlock(0, 0, 100, 100, 200, LabelVision)

	below := NewBlock(1, 0, 250, 100, 300, LabelRegular)
	assert.InDelta(t, 50.0, verticalContinuity(m, below), 1e-9)

	above := NewBlock(2, 0, 0, 100, 60, LabelRegular)
	assert.InDelta(t, 400.0, verticalContinuity(m, above), 1e-9)

	overlapping := NewBlock(3, 0, 150, 100, 250, LabelRegular)
	assert.InDelta(t, 0.0, verticalContinuity(m, overlapping), 1e-9)

	// Cross-layout elements pay nothing for anchors below them.
	cross := NewBlock(4, 0, 100, 400, 200, LabelCrossLayout)
	assert.InDelta(t, 0.0, verticalContinuity(cross, below), 1e-9)
	assert.InDelta(t, 400.0, verticalContinuity(cross, above), 1e-9)
}

func TestBestAnchorMatchesBruteForce(t *testing.T) {
	// The early-exit pruning must not change which anchor wins.
	regular := blockElements(
		NewBlock(0, 0, 0, 200, 50, LabelRegular),
		NewBlock(1, 0, 100, 200, 150, LabelRegular),
		NewBlock(2, 250, 0, 450, 50, LabelRegular),
		NewBlock(3, 250, 100, 450, 150, LabelRegular),
	)
	byID := make(map[int]Element)
	for _, e := range regular {
		byID[e.ID()] = e
	}
	result := []int{0, 1, 2, 3}

	o := NewOrderer(DefaultConfig())
	masked := []Element{
		NewBlock(10, 20, 60, 180, 90, LabelVision),
		NewBlock(11, 0, 0, 440, 40, LabelCrossLayout),
		NewBlock(12, 260, 160, 420, 200, LabelHorizontalTitle),
	}

	for _, m := range masked {
		pos, dist, ok := o.bestAnchor(m, result, byID)
		assert.True(t, ok)

		bestPos, best := -1, math.Inf(1)
		w1, w2, w3, w4 := distanceWeights(m)
		for i, id := range result {
			anchor := byID[id]
			if anchor.Label().Priority() < m.Label().Priority() {
				continue
			}
			total := w1*overlapCost(m, anchor) +
				w2*boundaryGap(m, anchor) +
				w3*verticalContinuity(m, anchor) +
				w4*anchor.Bounds().MinX
			if total < best {
				best = total
				bestPos = i
			}
		}
		assert.Equal(t, bestPos, pos, "element %d", m.ID())
		assert.InDelta(t, best, dist, 1e-9, "element %d", m.ID())
	}
}

func TestFallbackPositionSpanningElement(t *testing.T) {
	regular := blockElements(
		NewBlock(0, 0, 0, 240, 100, LabelRegular),
		NewBlock(1, 260, 0, 500, 100, LabelRegular),
		NewBlock(2, 0, 200, 240, 300, LabelRegular),
	)
	byID := make(map[int]Element)
	for _, e := range regular {
		byID[e.ID()] = e
	}

	// Wider than 60% of the 500px regular extent: insert purely by
	// vertical position, before the first occupant below.
	wide := NewBlock(10, 50, 120, 450, 160, LabelRegular)

	o := NewOrderer(DefaultConfig())
	pos := o.fallbackPosition(wide, []int{0, 1, 2}, regular, byID)
	assert.Equal(t, 2, pos)
}

func TestFallbackPositionSameColumn(t *testing.T) {
	regular := blockElements(
		NewBlock(0, 0, 0, 240, 100, LabelRegular),
		NewBlock(1, 260, 0, 500, 100, LabelRegular),
		NewBlock(2, 260, 200, 500, 300, LabelRegular),
	)
	byID := make(map[int]Element)
	for _, e := range regular {
		byID[e.ID()] = e
	}

	// Narrow element in the right column: inserts before the first
	// same-column occupant whose center lies below it.
	narrow := NewBlock(10, 270, 120, 400, 160, LabelRegular)

	o := NewOrderer(DefaultConfig())
	pos := o.fallbackPosition(narrow, []int{0, 1, 2}, regular, byID)
	assert.Equal(t, 2, pos)
}

func TestFallbackPositionAppendsWhenNothingBelow(t *testing.T) {
	regular := blockElements(NewBlock(0, 0, 0, 240, 100, LabelRegular))
	byID := map[int]Element{0: regular[0]}

	bottom := NewBlock(10, 0, 400, 100, 450, LabelRegular)

	o := NewOrderer(DefaultConfig())
	pos := o.fallbackPosition(bottom, []int{0}, regular, byID)
	assert.Equal(t, 1, pos)
}

func TestInsertAt(t *testing.T) {
	assert.Equal(t, []int{9, 1, 2}, insertAt([]int{1, 2}, 0, 9))
	assert.Equal(t, []int{1, 9, 2}, insertAt([]int{1, 2}, 1, 9))
	assert.Equal(t, []int{1, 2, 9}, insertAt([]int{1, 2}, 2, 9))
}
