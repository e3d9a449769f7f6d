package bucket

import "math"

// sentinelID marks the permanent tail block. math.MaxUint64 makes the
// end iterator compare greater than every real position without a
// special case in the ordering.
const sentinelID = math.MaxUint64

// block is one fixed-capacity storage unit. Its capacity slot indices
// form a single circular doubly-linked chain with two arcs: the active
// arc from firstIndex to lastIndex holds the size live elements in
// insertion order, and the remainder between lastIndex and firstIndex
// is the reservoir of erased slots awaiting reuse. Slots that have
// never held an element are not part of the circle at all; they are
// claimed in ascending index order, so the next one is always at index
// size whenever the reservoir is empty.
type block[T any] struct {
	id  uint64
	ctx *sharedContext

	// Block-list links, creation order, terminated by the sentinel.
	next *block[T]
	prev *block[T]

	// Incomplete-list links. nil while the block is full; a member's
	// nextIncomplete chain terminates at the sentinel.
	nextIncomplete *block[T]
	prevIncomplete *block[T]

	data   []T
	nextOf []int
	prevOf []int
	idOf   []uint64

	size       int
	firstIndex int
	lastIndex  int
}

// newBlock allocates an empty block and stamps its creation id.
func newBlock[T any](ctx *sharedContext) *block[T] {
	capacity := ctx.blockCapacity
	return &block[T]{
		id:     ctx.issueID(),
		ctx:    ctx,
		data:   make([]T, capacity),
		nextOf: make([]int, capacity),
		prevOf: make([]int, capacity),
		idOf:   make([]uint64, capacity),
	}
}

// newSentinel allocates the permanent empty tail block. It carries no
// slot storage and never holds elements or joins the incomplete list.
func newSentinel[T any](ctx *sharedContext) *block[T] {
	return &block[T]{id: sentinelID, ctx: ctx}
}

func (b *block[T]) isSentinel() bool { return b.id == sentinelID }

func (b *block[T]) isFull() bool { return b.size == b.ctx.blockCapacity }

func (b *block[T]) isEmpty() bool { return b.size == 0 }

// prepareInsert picks the slot the next element will occupy without
// linking it: slot 0 for an empty block, otherwise the reservoir head
// if one exists, otherwise the lowest never-used index (exactly size,
// because the circle spans size+reservoir slots). Must not be called
// on a full block.
func (b *block[T]) prepareInsert() int {
	if b.size == 0 {
		b.firstIndex = 0
		b.lastIndex = 0
		return 0
	}
	if b.nextOf[b.lastIndex] == b.firstIndex {
		return b.size
	}
	return b.nextOf[b.lastIndex]
}

// completeInsert makes slot the new tail of the active chain and stamps
// its insertion id. A never-used slot sits outside the circle and is
// spliced in between lastIndex and firstIndex here; the circle closing
// directly from lastIndex to firstIndex is exactly the condition under
// which prepareInsert hands such a slot out. A recycled slot was
// already left in tail position by erase, so only the tail marker
// moves. The slot index alone cannot tell the two apart: a recycled
// index may coincide with size.
func (b *block[T]) completeInsert(slot int) {
	if b.nextOf[b.lastIndex] == b.firstIndex {
		b.nextOf[b.lastIndex] = slot
		b.prevOf[b.firstIndex] = slot
		b.nextOf[slot] = b.firstIndex
		b.prevOf[slot] = b.lastIndex
	}
	b.idOf[slot] = b.ctx.issueID()
	b.lastIndex = slot
	b.size++
}

// erase retires slot from the active arc. Chain endpoints just move
// past a boundary slot; an interior slot is unlinked and respliced
// immediately after lastIndex, making it the reservoir head the next
// prepareInsert will hand out. The element value is zeroed so it stops
// pinning whatever it referenced.
func (b *block[T]) erase(slot int) {
	var zero T
	b.data[slot] = zero
	switch slot {
	case b.firstIndex:
		b.firstIndex = b.nextOf[b.firstIndex]
	case b.lastIndex:
		b.lastIndex = b.prevOf[b.lastIndex]
	default:
		b.nextOf[b.prevOf[slot]] = b.nextOf[slot]
		b.prevOf[b.nextOf[slot]] = b.prevOf[slot]
		b.nextOf[slot] = b.nextOf[b.lastIndex]
		b.prevOf[slot] = b.lastIndex
		b.prevOf[b.nextOf[b.lastIndex]] = slot
		b.nextOf[b.lastIndex] = slot
	}
	b.size--
}

// reservoirLen counts the recycled slots currently parked between
// lastIndex and firstIndex.
func (b *block[T]) reservoirLen() int {
	if b.size == 0 {
		return 0
	}
	n := 0
	for slot := b.nextOf[b.lastIndex]; slot != b.firstIndex; slot = b.nextOf[slot] {
		n++
	}
	return n
}
