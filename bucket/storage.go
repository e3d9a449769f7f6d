package bucket

import (
	"math"
	"unsafe"
)

// Storage is a stable-reference container: elements live in
// fixed-capacity blocks linked in creation order, and inserting or
// erasing one element never moves another. Insertion and erasure are
// amortized O(1).
//
// Storage is not safe for concurrent use; callers sharing one across
// goroutines must serialize access externally.
type Storage[T any] struct {
	ctx            *sharedContext
	first          *block[T]
	sentinel       *block[T]
	incompleteHead *block[T]
	dataSize       int
	blockCount     int
}

// New returns an empty container with DefaultBlockCapacity slots per
// block.
func New[T any]() *Storage[T] {
	return newStorage[T](DefaultBlockCapacity)
}

// NewWithBlockCapacity returns an empty container whose blocks hold
// capacity elements each. Returns ErrZeroBlockCapacity when capacity
// is below one.
func NewWithBlockCapacity[T any](capacity int) (*Storage[T], error) {
	if capacity < 1 {
		return nil, ErrZeroBlockCapacity
	}
	return newStorage[T](capacity), nil
}

func newStorage[T any](capacity int) *Storage[T] {
	ctx := &sharedContext{blockCapacity: capacity}
	sentinel := newSentinel[T](ctx)
	return &Storage[T]{
		ctx:            ctx,
		first:          sentinel,
		sentinel:       sentinel,
		incompleteHead: sentinel,
	}
}

// Insert places v into the container and returns an iterator to it.
// Iterators and element pointers obtained earlier remain valid.
func (s *Storage[T]) Insert(v T) Iterator[T] {
	target, _ := s.insertTarget()
	slot := target.prepareInsert()
	target.data[slot] = v
	s.commitInsert(target, slot)
	return Iterator[T]{b: target, idx: slot}
}

// InsertFunc inserts the value produced by ctor. When ctor fails the
// error is returned unchanged and the container is left exactly as it
// was: a block freshly allocated for this insertion is unlinked and
// released, never left empty in the block list. ctor runs between slot
// selection and chain commitment and must not operate on the container
// itself.
func (s *Storage[T]) InsertFunc(ctor func() (T, error)) (Iterator[T], error) {
	target, allocated := s.insertTarget()
	slot := target.prepareInsert()
	v, err := ctor()
	if err != nil {
		if allocated {
			s.releaseBlock(target)
			debugLogf("block unwound after failed construction")
		}
		return Iterator[T]{}, err
	}
	target.data[slot] = v
	s.commitInsert(target, slot)
	return Iterator[T]{b: target, idx: slot}, nil
}

// insertTarget returns the block the next element goes into, allocating
// a fresh one when every block is full. The bool reports whether this
// call allocated.
func (s *Storage[T]) insertTarget() (*block[T], bool) {
	if !s.incompleteHead.isSentinel() {
		return s.incompleteHead, false
	}
	b := newBlock[T](s.ctx)
	b.next = s.sentinel
	b.prev = s.sentinel.prev
	if s.sentinel.prev != nil {
		s.sentinel.prev.next = b
	}
	s.sentinel.prev = b
	if s.first == s.sentinel {
		s.first = b
	}
	s.blockCount++
	s.pushIncomplete(b)
	debugLogf("block %d allocated (capacity %d)", b.id, s.ctx.blockCapacity)
	return b, true
}

func (s *Storage[T]) commitInsert(target *block[T], slot int) {
	target.completeInsert(slot)
	if target.isFull() {
		s.removeIncomplete(target)
	}
	s.dataSize++
	if debugChecks {
		s.mustValidate()
	}
}

// Erase removes the element it references and returns an iterator to
// its logical successor. The successor is computed before any chain is
// rewritten. Iterators to other elements stay valid; it itself is
// invalidated. it must reference a live element of this container.
func (s *Storage[T]) Erase(it Iterator[T]) Iterator[T] {
	next := it
	next.Next()
	b := it.b
	wasFull := b.isFull()
	b.erase(it.idx)
	switch {
	case b.isEmpty():
		s.releaseBlock(b)
	case wasFull:
		s.pushIncomplete(b)
	}
	s.dataSize--
	if debugChecks {
		s.mustValidate()
	}
	return next
}

// releaseBlock unlinks an empty block from both lists and drops it.
func (s *Storage[T]) releaseBlock(b *block[T]) {
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		s.first = b.next
	}
	b.next.prev = b.prev
	if b.nextIncomplete != nil {
		s.removeIncomplete(b)
	}
	b.next = nil
	b.prev = nil
	s.blockCount--
	debugLogf("block %d released", b.id)
}

// pushIncomplete puts b at the front of the incomplete list.
func (s *Storage[T]) pushIncomplete(b *block[T]) {
	b.nextIncomplete = s.incompleteHead
	b.prevIncomplete = nil
	s.incompleteHead.prevIncomplete = b
	s.incompleteHead = b
}

// removeIncomplete unlinks b from the incomplete list, either because
// it filled up or because it is about to be released.
func (s *Storage[T]) removeIncomplete(b *block[T]) {
	if b.prevIncomplete != nil {
		b.prevIncomplete.nextIncomplete = b.nextIncomplete
	} else {
		s.incompleteHead = b.nextIncomplete
	}
	b.nextIncomplete.prevIncomplete = b.prevIncomplete
	b.nextIncomplete = nil
	b.prevIncomplete = nil
}

// Clear removes every element and releases every block. The container
// stays usable; sequence ids keep ascending from where they were.
// Calling Clear on an empty container is a no-op.
func (s *Storage[T]) Clear() {
	b := s.first
	for !b.isSentinel() {
		next := b.next
		b.next = nil
		b.prev = nil
		b.nextIncomplete = nil
		b.prevIncomplete = nil
		b = next
	}
	s.sentinel.prev = nil
	s.sentinel.prevIncomplete = nil
	s.first = s.sentinel
	s.incompleteHead = s.sentinel
	s.dataSize = 0
	s.blockCount = 0
}

// ShrinkToFit rebuilds the container into the fewest blocks that hold
// its elements, re-inserting them in logical order. Unlike Insert and
// Erase it does NOT preserve stability: every iterator and element
// pointer obtained before the call is invalidated, and sequence ids
// are issued fresh.
func (s *Storage[T]) ShrinkToFit() {
	fresh := newStorage[T](s.ctx.blockCapacity)
	for it := s.Begin(); !it.Equal(s.End()); it.Next() {
		fresh.Insert(it.Value())
	}
	*s = *fresh
}

// Swap exchanges the entire contents of s and other in O(1). No
// element is copied or moved; iterators remain valid and now belong to
// the container that received their blocks.
func (s *Storage[T]) Swap(other *Storage[T]) {
	*s, *other = *other, *s
}

// Clone returns a deep copy. Block ids, slot ids, and chain layout are
// preserved, so iterator order over the copy matches the original. The
// copy shares no state with the original, and its id counter continues
// from the same watermark so ids it issues later stay above everything
// it inherited.
func (s *Storage[T]) Clone() *Storage[T] {
	ctxCopy := *s.ctx
	c := &Storage[T]{
		ctx:        &ctxCopy,
		dataSize:   s.dataSize,
		blockCount: s.blockCount,
	}
	c.sentinel = newSentinel[T](c.ctx)
	c.first = c.sentinel
	c.incompleteHead = c.sentinel

	// Copy back to front: each clone is prepended to the block list,
	// and non-full clones are pushed onto the incomplete list, which
	// leaves both lists in creation order.
	for src := s.sentinel.prev; src != nil; src = src.prev {
		b := cloneBlock(src, c.ctx)
		b.next = c.first
		c.first.prev = b
		c.first = b
		if !b.isFull() {
			c.pushIncomplete(b)
		}
	}
	return c
}

func cloneBlock[T any](src *block[T], ctx *sharedContext) *block[T] {
	b := &block[T]{
		id:         src.id,
		ctx:        ctx,
		data:       make([]T, len(src.data)),
		nextOf:     append([]int(nil), src.nextOf...),
		prevOf:     append([]int(nil), src.prevOf...),
		idOf:       append([]uint64(nil), src.idOf...),
		size:       src.size,
		firstIndex: src.firstIndex,
		lastIndex:  src.lastIndex,
	}
	// Only live slots carry values; erased slots stay zero so the copy
	// never aliases anything the source already dropped.
	for i, slot := 0, src.firstIndex; i < src.size; i++ {
		b.data[slot] = src.data[slot]
		slot = src.nextOf[slot]
	}
	return b
}

// CopyFrom replaces the contents of s with a deep copy of src, as by
// Clone. Copying a container onto itself is a no-op.
func (s *Storage[T]) CopyFrom(src *Storage[T]) {
	if s == src {
		return
	}
	*s = *src.Clone()
}

// MoveFrom transfers the entire contents of src into s in O(1),
// dropping whatever s held. src is left valid and empty, equivalent to
// a freshly constructed container with the same block capacity, and
// remains fully usable. Moving a container onto itself is a no-op.
func (s *Storage[T]) MoveFrom(src *Storage[T]) {
	if s == src {
		return
	}
	capacity := src.ctx.blockCapacity
	*s = *src
	*src = *newStorage[T](capacity)
}

// Size reports the number of live elements.
func (s *Storage[T]) Size() int { return s.dataSize }

// Empty reports whether the container holds no elements.
func (s *Storage[T]) Empty() bool { return s.dataSize == 0 }

// Capacity reports how many elements the current blocks can hold:
// block capacity times block count.
func (s *Storage[T]) Capacity() int { return s.ctx.blockCapacity * s.blockCount }

// BlockCapacity reports the number of slots per block.
func (s *Storage[T]) BlockCapacity() int { return s.ctx.blockCapacity }

// Blocks reports the number of blocks currently allocated, excluding
// the sentinel.
func (s *Storage[T]) Blocks() int { return s.blockCount }

// MaxSize reports the theoretical element limit imposed by the address
// space. Zero-sized element types are bounded only by the int range.
func (s *Storage[T]) MaxSize() int {
	var zero T
	elem := unsafe.Sizeof(zero)
	if elem == 0 {
		return math.MaxInt
	}
	return int(uintptr(math.MaxInt) / elem)
}

// Begin returns an iterator to the first element in logical order, or
// End when the container is empty.
func (s *Storage[T]) Begin() Iterator[T] {
	return Iterator[T]{b: s.first, idx: s.first.firstIndex}
}

// End returns the past-the-end iterator. It addresses the permanent
// sentinel block and never becomes invalid while the container lives.
func (s *Storage[T]) End() Iterator[T] {
	return Iterator[T]{b: s.sentinel}
}

// Range calls fn with a pointer to each element in logical order until
// fn returns false. Elements may be mutated through the pointer; the
// container must not be structurally modified during the walk.
func (s *Storage[T]) Range(fn func(p *T) bool) {
	for b := s.first; !b.isSentinel(); b = b.next {
		for i, slot := 0, b.firstIndex; i < b.size; i++ {
			if !fn(&b.data[slot]) {
				return
			}
			slot = b.nextOf[slot]
		}
	}
}
