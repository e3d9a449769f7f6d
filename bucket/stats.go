package bucket

// Stats aggregates container-wide occupancy counters, gathered in one
// O(elements + blocks) walk.
type Stats struct {
	Size             int     // live elements
	Blocks           int     // real blocks (sentinel excluded)
	BlockCapacity    int     // slots per block
	Capacity         int     // Blocks * BlockCapacity
	FullBlocks       int     // blocks with no free slot
	IncompleteBlocks int     // blocks with at least one free slot
	ReservoirSlots   int     // erased slots parked for reuse
	NeverUsedSlots   int     // slots no element has ever occupied
	Occupancy        float64 // Size as a percentage of Capacity (0 when empty)
	NextID           uint64  // sequence id watermark
}

// BlockStats describes one block, reported in creation order.
type BlockStats struct {
	ID         uint64
	Size       int
	Reservoir  int
	NeverUsed  int
	First      int
	Last       int
	Full       bool
	Incomplete bool
}

// SlotState classifies one slot of a block snapshot.
type SlotState int

const (
	SlotNeverUsed SlotState = iota // outside the circular chain
	SlotActive                     // holds a live element
	SlotReservoir                  // erased, parked for reuse
)

// BlockSnapshot captures a block's complete slot layout for inspection
// tooling: the state of every slot, the active arc in chain order, the
// reservoir arc in chain order, and the per-slot insertion ids (only
// meaningful at active slots).
type BlockSnapshot struct {
	ID        uint64
	Size      int
	First     int
	Last      int
	Slots     []SlotState
	Active    []int
	Reservoir []int
	IDs       []uint64
}

// Stats reports aggregate occupancy counters.
func (s *Storage[T]) Stats() Stats {
	st := Stats{
		Size:          s.dataSize,
		Blocks:        s.blockCount,
		BlockCapacity: s.ctx.blockCapacity,
		Capacity:      s.blockCount * s.ctx.blockCapacity,
		NextID:        s.ctx.nextID,
	}
	for b := s.first; !b.isSentinel(); b = b.next {
		if b.isFull() {
			st.FullBlocks++
		} else {
			st.IncompleteBlocks++
		}
		r := b.reservoirLen()
		st.ReservoirSlots += r
		st.NeverUsedSlots += s.ctx.blockCapacity - b.size - r
	}
	if st.Capacity > 0 {
		st.Occupancy = float64(st.Size) * 100.0 / float64(st.Capacity)
	}
	return st
}

// BlockStats reports per-block occupancy rows in creation order.
func (s *Storage[T]) BlockStats() []BlockStats {
	rows := make([]BlockStats, 0, s.blockCount)
	for b := s.first; !b.isSentinel(); b = b.next {
		r := b.reservoirLen()
		rows = append(rows, BlockStats{
			ID:         b.id,
			Size:       b.size,
			Reservoir:  r,
			NeverUsed:  s.ctx.blockCapacity - b.size - r,
			First:      b.firstIndex,
			Last:       b.lastIndex,
			Full:       b.isFull(),
			Incomplete: b.nextIncomplete != nil,
		})
	}
	return rows
}

// Snapshot captures the slot layout of every block in creation order.
func (s *Storage[T]) Snapshot() []BlockSnapshot {
	snaps := make([]BlockSnapshot, 0, s.blockCount)
	for b := s.first; !b.isSentinel(); b = b.next {
		snap := BlockSnapshot{
			ID:    b.id,
			Size:  b.size,
			First: b.firstIndex,
			Last:  b.lastIndex,
			Slots: make([]SlotState, len(b.data)),
			IDs:   append([]uint64(nil), b.idOf...),
		}
		for i, slot := 0, b.firstIndex; i < b.size; i++ {
			snap.Slots[slot] = SlotActive
			snap.Active = append(snap.Active, slot)
			slot = b.nextOf[slot]
		}
		if b.size > 0 {
			for slot := b.nextOf[b.lastIndex]; slot != b.firstIndex; slot = b.nextOf[slot] {
				snap.Slots[slot] = SlotReservoir
				snap.Reservoir = append(snap.Reservoir, slot)
			}
		}
		snaps = append(snaps, snap)
	}
	return snaps
}
