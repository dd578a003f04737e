// Package ast defines the expression arena produced by the parser and the
// printers that render it.
package ast

import (
	"fmt"
	"iter"

	"github.com/ardnew/impral/lang/token"
)

// BlockRef is an index of a node in a [Block].
type BlockRef uint32

// Span is the byte range [Start, End) of source text a node was parsed from.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end"   yaml:"end"`
}

// Block is an append-only arena of expression nodes with an optional entry
// node.
//
// Emplacing a [*Value] whose literal equals one already in the block returns
// the existing reference, so each distinct literal is stored once.
type Block struct {
	items  []Expression
	spans  []Span
	entry  BlockRef
	hasEnt bool
	values map[token.Key]BlockRef
}

// NewBlock returns an empty block.
func NewBlock() *Block {
	return &Block{values: make(map[token.Key]BlockRef)}
}

// Emplace appends e and returns its reference.
func (b *Block) Emplace(e Expression, span Span) BlockRef {
	if v, ok := e.(*Value); ok {
		if b.values == nil {
			b.values = make(map[token.Key]BlockRef)
		}

		key := v.Literal.Key()
		if ref, ok := b.values[key]; ok {
			return ref
		}

		ref := b.push(e, span)
		b.values[key] = ref

		return ref
	}

	return b.push(e, span)
}

func (b *Block) push(e Expression, span Span) BlockRef {
	b.items = append(b.items, e)
	b.spans = append(b.spans, span)

	return BlockRef(len(b.items) - 1)
}

// Get returns the node at r, or nil when r is out of range.
// The returned node may be modified in place while the block is being built.
func (b *Block) Get(r BlockRef) Expression {
	if int(r) >= len(b.items) {
		return nil
	}

	return b.items[r]
}

// Span returns the source span of the node at r.
func (b *Block) Span(r BlockRef) Span {
	if int(r) >= len(b.spans) {
		return Span{}
	}

	return b.spans[r]
}

// Extend widens the span of the node at r to end at end.
func (b *Block) Extend(r BlockRef, end int) {
	if int(r) < len(b.spans) && end > b.spans[r].End {
		b.spans[r].End = end
	}
}

// Len returns the number of nodes in the block.
func (b *Block) Len() int { return len(b.items) }

// IsEmpty reports whether the block holds no nodes.
func (b *Block) IsEmpty() bool { return len(b.items) == 0 }

// Entry returns the root node of the parsed program, if parsing completed.
func (b *Block) Entry() (BlockRef, bool) { return b.entry, b.hasEnt }

// SetEntry marks r as the root node.
func (b *Block) SetEntry(r BlockRef) {
	b.entry = r
	b.hasEnt = true
}

// Last returns the most recently appended node.
func (b *Block) Last() (BlockRef, bool) {
	if len(b.items) == 0 {
		return 0, false
	}

	return BlockRef(len(b.items) - 1), true
}

// Root returns the entry node, or the last node when no entry is set.
func (b *Block) Root() (BlockRef, bool) {
	if b.hasEnt {
		return b.entry, true
	}

	return b.Last()
}

// All returns an iterator over the nodes of the block in arena order.
func (b *Block) All() iter.Seq2[BlockRef, Expression] {
	return func(yield func(BlockRef, Expression) bool) {
		for i, e := range b.items {
			if !yield(BlockRef(i), e) {
				return
			}
		}
	}
}

// Counts returns the number of value nodes (including empty placeholders)
// and the number of all other nodes.
func (b *Block) Counts() (values, exprs int) {
	for _, e := range b.items {
		switch e.(type) {
		case *Empty, *Value:
			values++
		default:
			exprs++
		}
	}

	return values, exprs
}

// Validate reports the first node holding a reference outside the block.
func (b *Block) Validate() error {
	n := len(b.items)

	for i, e := range b.items {
		for _, r := range e.Refs() {
			if int(r) >= n {
				return fmt.Errorf("node #%d (%s) references #%d of %d nodes", i, e.Kind(), r, n)
			}
		}
	}

	if b.hasEnt && int(b.entry) >= n {
		return fmt.Errorf("entry #%d out of %d nodes", b.entry, n)
	}

	return nil
}
