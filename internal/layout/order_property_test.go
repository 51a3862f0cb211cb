package layout

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/MeKo-Tech/readorder/internal/geometry"
)

// genBlock generates a random block within a 1000x1000 page. IDs are
// assigned by the consuming property.
func genBlock() gopter.Gen {
	return gopter.CombineGens(
		gen.Float64Range(0, 900),
		gen.Float64Range(0, 900),
		gen.Float64Range(5, 100),
		gen.Float64Range(5, 100),
		gen.IntRange(0, 4),
		gen.Bool(),
	).Map(func(vals []interface{}) Block {
		x, ok := vals[0].(float64)
		if !ok {
			panic("expected float64")
		}
		y, ok := vals[1].(float64)
		if !ok {
			panic("expected float64")
		}
		w, ok := vals[2].(float64)
		if !ok {
			panic("expected float64")
		}
		h, ok := vals[3].(float64)
		if !ok {
			panic("expected float64")
		}
		label, ok := vals[4].(int)
		if !ok {
			panic("expected int")
		}
		mask, ok := vals[5].(bool)
		if !ok {
			panic("expected bool")
		}
		b := NewBlock(0, x, y, x+w, y+h, Label(label))
		b.Maskable = mask
		return b
	})
}

// genBlocks generates 20 blocks with sequential ids.
func genBlocks() gopter.Gen {
	return gen.SliceOfN(20, genBlock()).Map(func(blocks []Block) []Element {
		elements := make([]Element, len(blocks))
		for i, b := range blocks {
			b.Num = i
			elements[i] = b
		}
		return elements
	})
}

// TestComputeOrder_Permutation verifies the output contains every input id
// exactly once.
func TestComputeOrder_Permutation(t *testing.T) {
	properties := gopter.NewProperties(nil)
	page := geometry.NewBox(0, 0, 1000, 1000)

	properties.Property("output is a permutation of input ids", prop.ForAll(
		func(elements []Element) bool {
			o := NewOrderer(DefaultConfig())
			order := o.ComputeOrder(elements, page)

			if len(order) != len(elements) {
				return false
			}
			seen := make(map[int]bool, len(order))
			for _, id := range order {
				if seen[id] {
					return false
				}
				seen[id] = true
			}
			for _, e := range elements {
				if !seen[e.ID()] {
					return false
				}
			}
			return true
		},
		genBlocks(),
	))

	properties.TestingRun(t)
}

// TestComputeOrder_Deterministic verifies repeated calls agree.
func TestComputeOrder_Deterministic(t *testing.T) {
	properties := gopter.NewProperties(nil)
	page := geometry.NewBox(0, 0, 1000, 1000)

	properties.Property("identical inputs produce identical orders", prop.ForAll(
		func(elements []Element) bool {
			o := NewOrderer(DefaultConfig())
			first := o.ComputeOrder(elements, page)
			second := o.ComputeOrder(elements, page)

			if len(first) != len(second) {
				return false
			}
			for i := range first {
				if first[i] != second[i] {
					return false
				}
			}
			return true
		},
		genBlocks(),
	))

	properties.TestingRun(t)
}

// TestPartition_DisjointExhaustive verifies every element lands in exactly
// one partition group.
func TestPartition_DisjointExhaustive(t *testing.T) {
	properties := gopter.NewProperties(nil)
	page := geometry.NewBox(0, 0, 1000, 1000)

	properties.Property("partition covers each element exactly once", prop.ForAll(
		func(elements []Element) bool {
			p := partitionElements(elements, page, DefaultConfig().IsolationDistance)

			if len(p.Regular)+len(p.Masked) != len(elements) {
				return false
			}
			seen := make(map[int]int, len(elements))
			for _, e := range p.Regular {
				seen[e.ID()]++
			}
			for _, e := range p.Masked {
				seen[e.ID()]++
			}
			for _, count := range seen {
				if count != 1 {
					return false
				}
			}
			return len(seen) == len(elements)
		},
		genBlocks(),
	))

	properties.TestingRun(t)
}

// TestCutOrder_Permutation verifies the recursive cutter alone never drops
// or duplicates elements.
func TestCutOrder_Permutation(t *testing.T) {
	properties := gopter.NewProperties(nil)
	page := geometry.NewBox(0, 0, 1000, 1000)

	properties.Property("cut ordering preserves all ids", prop.ForAll(
		func(elements []Element) bool {
			o := NewOrderer(DefaultConfig())
			order := o.cutOrder(elements, page)

			if len(order) != len(elements) {
				return false
			}
			seen := make(map[int]bool, len(order))
			for _, id := range order {
				seen[id] = true
			}
			return len(seen) == len(elements)
		},
		genBlocks(),
	))

	properties.TestingRun(t)
}

// TestSortByPosition_Permutation verifies the positional fallback keeps
// every id exactly once.
func TestSortByPosition_Permutation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("positional sort preserves all ids", prop.ForAll(
		func(elements []Element) bool {
			o := NewOrderer(DefaultConfig())
			order := o.sortByPosition(elements)

			if len(order) != len(elements) {
				return false
			}
			seen := make(map[int]bool, len(order))
			for _, id := range order {
				seen[id] = true
			}
			return len(seen) == len(elements)
		},
		genBlocks(),
	))

	properties.TestingRun(t)
}
