package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeKo-Tech/readorder/internal/geometry"
)

func testPage() geometry.Box {
	return geometry.NewBox(0, 0, 1000, 1000)
}

func elementIDs(elements []Element) []int {
	ids := make([]int, len(elements))
	for i, e := range elements {
		ids[i] = e.ID()
	}
	return ids
}

func TestPartitionEmptyInput(t *testing.T) {
	p := partitionElements(nil, testPage(), 50)
	assert.Empty(t, p.Regular)
	assert.Empty(t, p.Masked)
}

func TestPartitionMasksFlaggedElements(t *testing.T) {
	title := NewBlock(0, 100, 0, 900, 50, LabelHorizontalTitle)
	title.Maskable = true
	body := NewBlock(1, 100, 100, 900, 200, LabelRegular)

	p := partitionElements([]Element{title, body}, testPage(), 50)

	assert.Len(t, p.Masked, 1)
	assert.Equal(t, 0, p.Masked[0].ID())
	assert.Len(t, p.Regular, 1)
	assert.Equal(t, 1, p.Regular[0].ID())
}

func TestPartitionMasksWideOverlappingElements(t *testing.T) {
	// A wide element embedded among narrower ones, overlapping two of them.
	wide := NewBlock(0, 0, 90, 1000, 210, LabelRegular)
	elements := []Element{
		wide,
		NewBlock(1, 0, 100, 300, 200, LabelRegular),
		NewBlock(2, 350, 100, 650, 200, LabelRegular),
		NewBlock(3, 0, 300, 300, 400, LabelRegular),
		NewBlock(4, 350, 300, 650, 400, LabelRegular),
	}

	p := partitionElements(elements, testPage(), 50)

	assert.Len(t, p.Masked, 1)
	assert.Equal(t, 0, p.Masked[0].ID())
	assert.Len(t, p.Regular, 4)
}

func TestPartitionWideWithoutOverlapsStaysRegular(t *testing.T) {
	wide := NewBlock(0, 0, 0, 1000, 50, LabelRegular)
	elements := []Element{
		wide,
		NewBlock(1, 0, 100, 300, 200, LabelRegular),
		NewBlock(2, 350, 100, 650, 200, LabelRegular),
	}

	p := partitionElements(elements, testPage(), 50)

	assert.Empty(t, p.Masked)
	assert.Len(t, p.Regular, 3)
}

func TestPartitionPreservesRelativeOrder(t *testing.T) {
	a := NewBlock(0, 0, 0, 100, 50, LabelRegular)
	b := NewBlock(1, 0, 100, 100, 150, LabelVision)
	b.Maskable = true
	c := NewBlock(2, 0, 200, 100, 250, LabelRegular)
	d := NewBlock(3, 0, 300, 100, 350, LabelVision)
	d.Maskable = true

	p := partitionElements([]Element{a, b, c, d}, testPage(), 50)

	assert.Equal(t, []int{0, 2}, elementIDs(p.Regular))
	assert.Equal(t, []int{1, 3}, elementIDs(p.Masked))
}

func TestPartitionIsDisjointAndExhaustive(t *testing.T) {
	elements := []Element{
		NewBlock(0, 0, 0, 100, 50, LabelRegular),
		NewBlock(1, 0, 100, 900, 160, LabelCrossLayout),
		NewBlock(2, 0, 200, 100, 250, LabelRegular),
	}

	p := partitionElements(elements, testPage(), 50)

	seen := make(map[int]int)
	for _, e := range p.Regular {
		seen[e.ID()]++
	}
	for _, e := range p.Masked {
		seen[e.ID()]++
	}
	assert.Len(t, seen, len(elements))
	for id, count := range seen {
		assert.Equal(t, 1, count, "element %d assigned to both groups", id)
	}
}

func TestMedianWidth(t *testing.T) {
	odd := []Element{
		NewBlock(0, 0, 0, 10, 10, LabelRegular),
		NewBlock(1, 0, 0, 30, 10, LabelRegular),
		NewBlock(2, 0, 0, 20, 10, LabelRegular),
	}
	assert.InDelta(t, 20.0, medianWidth(odd), 1e-9)

	// Even counts average the two middle values.
	even := append(odd, NewBlock(3, 0, 0, 40, 10, LabelRegular))
	assert.InDelta(t, 25.0, medianWidth(even), 1e-9)

	assert.InDelta(t, 0.0, medianWidth(nil), 1e-9)
}

func TestCountOverlaps(t *testing.T) {
	a := NewBlock(0, 0, 0, 100, 100, LabelRegular)
	b := NewBlock(1, 50, 50, 150, 150, LabelRegular)
	c := NewBlock(2, 90, 90, 120, 120, LabelRegular)
	far := NewBlock(3, 500, 500, 600, 600, LabelRegular)
	all := []Element{a, b, c, far}

	assert.Equal(t, 2, countOverlaps(a, all))
	assert.Equal(t, 0, countOverlaps(far, all))
}

func TestIsCentralIsolated(t *testing.T) {
	page := testPage()

	// Flagged figure at page center, nearest text far away.
	figure := NewBlock(0, 450, 450, 550, 550, LabelVision)
	figure.Maskable = true
	farText := NewBlock(1, 0, 0, 100, 30, LabelRegular)

	assert.True(t, isCentralIsolated(figure, []Element{figure, farText}, page, 50))

	// A close non-maskable neighbor breaks isolation.
	nearText := NewBlock(2, 560, 450, 700, 550, LabelRegular)
	assert.False(t, isCentralIsolated(figure, []Element{figure, nearText}, page, 50))

	// Off-center elements are never central.
	corner := NewBlock(3, 0, 0, 100, 100, LabelVision)
	corner.Maskable = true
	assert.False(t, isCentralIsolated(corner, []Element{corner, farText}, page, 50))

	// The rule only applies to mask-eligible elements.
	unflagged := NewBlock(4, 450, 450, 550, 550, LabelVision)
	assert.False(t, isCentralIsolated(unflagged, []Element{unflagged, farText}, page, 50))
}
