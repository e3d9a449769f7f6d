// Package bucket provides a stable-reference container: a generic
// collection whose elements never move once inserted.
//
// # Overview
//
// Storage[T] organizes elements into fixed-capacity blocks linked in
// creation order. Each block manages its slots with index-based linked
// lists inside one circular index space: the active arc holds live
// elements in insertion order, and the arc between the chain tail and
// head is a reservoir of erased slots recycled before any fresh slot
// is claimed. This gives two guarantees ordinary slices cannot:
//
//   - inserting or erasing one element never invalidates pointers or
//     iterators to other elements;
//   - insertion and erasure are amortized O(1).
//
// A permanent, always-empty sentinel block terminates the block list
// and doubles as the End position. A second, disjoint list threads the
// blocks that still have free slots, so every insertion finds its
// target block in O(1).
//
// # Quick Start
//
//	s := bucket.New[string]()
//	it := s.Insert("alpha")
//	s.Insert("beta")
//
//	for cur := s.Begin(); !cur.Equal(s.End()); cur.Next() {
//	    fmt.Println(cur.Value())
//	}
//
//	s.Erase(it) // "beta" is untouched, its iterators stay valid
//
// Block capacity balances locality against waste; pick it explicitly
// for tight control:
//
//	s, err := bucket.NewWithBlockCapacity[Record](128)
//
// # Iterators and Ordering
//
// Iterator[T] is a bidirectional cursor. Next and Prev follow logical
// order: within a block, the order elements were inserted; across
// blocks, block creation order. Compare and Less implement the same
// order as a total relation by comparing slot insertion ids within a
// block and block creation ids across blocks. Both id kinds are drawn
// from one per-container sequence counter, so the comparison never
// disagrees with traversal.
//
// Erase returns the iterator to the logical successor, supporting the
// usual erase-while-iterating loop:
//
//	for cur := s.Begin(); !cur.Equal(s.End()); {
//	    if drop(cur.Value()) {
//	        cur = s.Erase(cur)
//	    } else {
//	        cur.Next()
//	    }
//	}
//
// Advancing past End, retreating before Begin, or using an iterator
// whose element was erased are precondition violations; they panic or
// corrupt the walk rather than returning errors.
//
// # Stability Contract
//
// Insert and Erase never move other elements: a Ptr obtained for one
// element stays valid until exactly that element is erased. Clear,
// ShrinkToFit, CopyFrom, and MoveFrom invalidate every iterator and
// pointer; ShrinkToFit documents this as its trade-off for compacting
// sparse blocks. Clone preserves ids and layout, so positions in the
// copy mirror the original, but iterators themselves always belong to
// the container that created them.
//
// # Failure Handling
//
// Construction with a non-positive block capacity returns
// ErrZeroBlockCapacity. InsertFunc runs a caller-supplied constructor
// between slot selection and chain commitment; when the constructor
// fails, the error is propagated unchanged and the container is left
// exactly as it was, including unwinding a block freshly allocated for
// that insertion.
//
// # Validation and Inspection
//
// Validate checks every structural invariant (block-list integrity,
// slot-chain closure, incomplete-list membership, counts) and returns
// a *ValidationError describing the first violation. Stats,
// BlockStats, and Snapshot report occupancy; DumpStructure renders the
// chain layout for humans. Setting the BUCKETKIT_LOG_OPS environment
// variable traces block allocation and release to stderr.
//
// # Concurrency
//
// Storage is not safe for concurrent use. All structural state is
// mutated in place without synchronization; callers sharing a
// container across goroutines must serialize access externally.
package bucket
