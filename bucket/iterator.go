package bucket

import "cmp"

// Iterator addresses one element as a (block, slot) pair. Obtain
// iterators from the container; the zero Iterator is not meaningful.
//
// An iterator stays valid until the element it names is erased or the
// container is cleared, rebuilt (ShrinkToFit, CopyFrom, MoveFrom), or
// destroyed. Operations on other elements never invalidate it.
type Iterator[T any] struct {
	b   *block[T]
	idx int
}

// Next steps to the logical successor: along the active chain within
// the block, then onto the next block's first element. Advancing the
// end iterator is a precondition violation and panics.
func (it *Iterator[T]) Next() {
	if it.idx != it.b.lastIndex {
		it.idx = it.b.nextOf[it.idx]
		return
	}
	it.b = it.b.next
	it.idx = it.b.firstIndex
}

// Prev steps to the logical predecessor; from End that is the last
// element. Retreating from the first element is a precondition
// violation and panics.
func (it *Iterator[T]) Prev() {
	if it.idx != it.b.firstIndex {
		it.idx = it.b.prevOf[it.idx]
		return
	}
	it.b = it.b.prev
	it.idx = it.b.lastIndex
}

// Advance moves the iterator n logical steps; negative n retreats.
// When the iterator sits on the boundary slot of its block for the
// travel direction and the remaining distance covers that whole block,
// the block is hopped in one step. The result is always identical to n
// repeated single steps.
func (it *Iterator[T]) Advance(n int) {
	for n > 0 {
		if it.idx == it.b.firstIndex && n >= it.b.size && it.b.size > 0 {
			n -= it.b.size
			it.b = it.b.next
			it.idx = it.b.firstIndex
			continue
		}
		it.Next()
		n--
	}
	for n < 0 {
		if it.idx == it.b.lastIndex && -n >= it.b.size && it.b.size > 0 {
			n += it.b.size
			it.b = it.b.prev
			it.idx = it.b.lastIndex
			continue
		}
		it.Prev()
		n++
	}
}

// Valid reports whether the iterator references an element; it is
// false exactly at End.
func (it Iterator[T]) Valid() bool {
	return it.b != nil && !it.b.isSentinel()
}

// Equal reports whether two iterators address the same position.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.b == other.b && it.idx == other.idx
}

// Compare orders two positions of the same container by logical
// insertion order: within one block by slot insertion id, across
// blocks by block creation id. End sorts after every element. The
// result is -1, 0, or +1 and is always consistent with Next traversal
// order. Comparing iterators of different containers is meaningless.
func (it Iterator[T]) Compare(other Iterator[T]) int {
	if it.b == other.b {
		if it.idx == other.idx {
			return 0
		}
		return cmp.Compare(it.b.idOf[it.idx], it.b.idOf[other.idx])
	}
	return cmp.Compare(it.b.id, other.b.id)
}

// Less reports whether it precedes other in logical insertion order.
func (it Iterator[T]) Less(other Iterator[T]) bool {
	return it.Compare(other) < 0
}

// Value returns a copy of the element.
func (it Iterator[T]) Value() T { return it.b.data[it.idx] }

// Ptr returns the element's address. The pointee may be read and
// mutated; the address stays stable until the element is erased.
func (it Iterator[T]) Ptr() *T { return &it.b.data[it.idx] }

// Set overwrites the element in place.
func (it Iterator[T]) Set(v T) { it.b.data[it.idx] = v }
