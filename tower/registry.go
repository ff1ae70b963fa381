// Package tower tracks the blocks that have landed, in the order they landed.
package tower

import (
	"iter"

	"github.com/kamstrup/intmap"
	"github.com/plus3/stacker/block"
)

// Registry is the ordered set of landed blocks.
type Registry struct {
	order []*block.Block
	index *intmap.Map[block.ID, int]
}

func NewRegistry() *Registry {
	return &Registry{
		index: intmap.New[block.ID, int](64),
	}
}

// Add appends b unless it is already present.
func (r *Registry) Add(b *block.Block) {
	if _, ok := r.index.Get(b.ID); ok {
		return
	}
	r.index.Put(b.ID, len(r.order))
	r.order = append(r.order, b)
}

// Remove drops b, keeping the landing order of the rest. Absent blocks are ignored.
func (r *Registry) Remove(b *block.Block) {
	i, ok := r.index.Get(b.ID)
	if !ok {
		return
	}
	r.index.Del(b.ID)

	copy(r.order[i:], r.order[i+1:])
	r.order[len(r.order)-1] = nil
	r.order = r.order[:len(r.order)-1]

	for j := i; j < len(r.order); j++ {
		r.index.Put(r.order[j].ID, j)
	}
}

func (r *Registry) Contains(b *block.Block) bool {
	_, ok := r.index.Get(b.ID)
	return ok
}

func (r *Registry) Len() int {
	return len(r.order)
}

// All iterates in landing order.
func (r *Registry) All() iter.Seq[*block.Block] {
	return func(yield func(*block.Block) bool) {
		for _, b := range r.order {
			if !yield(b) {
				return
			}
		}
	}
}

// Highest returns the block with the greatest Height other than exclude. Only
// heights above zero qualify, so a tower of blocks resting at the origin plane
// yields nothing.
func (r *Registry) Highest(exclude *block.Block) (*block.Block, bool) {
	var best *block.Block
	bestHeight := 0.0
	for _, b := range r.order {
		if b == exclude {
			continue
		}
		if b.Height > bestHeight {
			best = b
			bestHeight = b.Height
		}
	}
	return best, best != nil
}
