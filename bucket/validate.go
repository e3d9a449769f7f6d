package bucket

import "fmt"

// ValidationError describes one violated structural invariant.
type ValidationError struct {
	Type    string         // error category (e.g. "BlockList", "SlotChain")
	Message string         // human-readable description
	Block   int            // creation-order position of the offending block, -1 if N/A
	Details map[string]any // additional context
}

func (e *ValidationError) Error() string {
	if e.Block >= 0 {
		return fmt.Sprintf("%s at block %d: %s", e.Type, e.Block, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Validate checks every structural invariant and returns the first
// violation as a *ValidationError, or nil when the container is sound.
// It never mutates the container; cost is O(elements + blocks).
//
// Checks performed (in order):
//  1. Block list: sentinel placement, mutual links, ascending creation
//     ids, no retained empty block, length matches the block count.
//  2. Slot chains: per block, the circular index space closes, prevOf
//     mirrors nextOf, the active arc is exactly size slots ending at
//     lastIndex, and insertion ids ascend along it.
//  3. Incomplete list: members are exactly the non-full blocks, links
//     are mutual, the chain terminates at the sentinel, full blocks
//     carry no links.
//  4. Counts: dataSize equals the sum of block sizes.
func (s *Storage[T]) Validate() error {
	if err := s.validateBlockList(); err != nil {
		return err
	}
	if err := s.validateChains(); err != nil {
		return err
	}
	if err := s.validateIncompleteList(); err != nil {
		return err
	}
	return s.validateCounts()
}

func (s *Storage[T]) mustValidate() {
	if err := s.Validate(); err != nil {
		panic(err)
	}
}

func (s *Storage[T]) validateBlockList() error {
	if s.sentinel == nil || !s.sentinel.isSentinel() {
		return &ValidationError{Type: "BlockList", Message: "sentinel missing", Block: -1}
	}
	if s.sentinel.next != nil {
		return &ValidationError{Type: "BlockList", Message: "sentinel is not the list tail", Block: -1}
	}
	if s.sentinel.size != 0 || s.sentinel.data != nil {
		return &ValidationError{Type: "BlockList", Message: "sentinel holds elements", Block: -1}
	}
	var (
		prev   *block[T]
		lastID uint64
		pos    int
	)
	for b := s.first; b != s.sentinel; b = b.next {
		if b == nil {
			return &ValidationError{Type: "BlockList", Message: "nil link before the sentinel", Block: pos}
		}
		if pos >= s.blockCount {
			return &ValidationError{
				Type:    "BlockList",
				Message: fmt.Sprintf("more blocks linked than blockCount %d", s.blockCount),
				Block:   pos,
			}
		}
		if b.prev != prev {
			return &ValidationError{
				Type:    "BlockList",
				Message: "prev link does not mirror next link",
				Block:   pos,
				Details: map[string]any{"id": b.id},
			}
		}
		if b.isEmpty() {
			return &ValidationError{
				Type:    "BlockList",
				Message: "empty block retained in the list",
				Block:   pos,
				Details: map[string]any{"id": b.id},
			}
		}
		if pos > 0 && b.id <= lastID {
			return &ValidationError{
				Type:    "BlockList",
				Message: fmt.Sprintf("creation ids not ascending: %d after %d", b.id, lastID),
				Block:   pos,
			}
		}
		lastID = b.id
		prev = b
		pos++
	}
	if s.sentinel.prev != prev {
		return &ValidationError{Type: "BlockList", Message: "sentinel prev link does not mirror the last block", Block: -1}
	}
	if pos != s.blockCount {
		return &ValidationError{
			Type:    "BlockList",
			Message: fmt.Sprintf("blockCount is %d but %d blocks are linked", s.blockCount, pos),
			Block:   -1,
		}
	}
	return nil
}

func (s *Storage[T]) validateChains() error {
	pos := 0
	for b := s.first; b != s.sentinel && b != nil; b = b.next {
		if err := validateBlockChain(b, pos); err != nil {
			return err
		}
		pos++
	}
	return nil
}

// validateBlockChain walks the block's full circular index space once:
// the active arc first (checking id ascent and the lastIndex endpoint),
// then the reservoir arc back to firstIndex, checking the prevOf mirror
// and slot distinctness throughout.
func validateBlockChain[T any](b *block[T], pos int) error {
	capacity := len(b.data)
	if b.firstIndex < 0 || b.firstIndex >= capacity || b.lastIndex < 0 || b.lastIndex >= capacity {
		return &ValidationError{
			Type:    "SlotChain",
			Message: fmt.Sprintf("chain endpoints out of range: first=%d last=%d", b.firstIndex, b.lastIndex),
			Block:   pos,
		}
	}
	seen := make([]bool, capacity)
	slot := b.firstIndex
	steps := 0
	var lastID uint64
	for {
		if seen[slot] {
			return &ValidationError{
				Type:    "SlotChain",
				Message: fmt.Sprintf("slot %d linked twice in the circle", slot),
				Block:   pos,
			}
		}
		seen[slot] = true
		if steps < b.size {
			id := b.idOf[slot]
			if steps > 0 && id <= lastID {
				return &ValidationError{
					Type:    "SlotChain",
					Message: fmt.Sprintf("insertion ids not ascending along the active arc at slot %d", slot),
					Block:   pos,
					Details: map[string]any{"id": id, "previous": lastID},
				}
			}
			lastID = id
			if steps == b.size-1 && slot != b.lastIndex {
				return &ValidationError{
					Type:    "SlotChain",
					Message: fmt.Sprintf("active arc ends at slot %d, lastIndex is %d", slot, b.lastIndex),
					Block:   pos,
				}
			}
		}
		next := b.nextOf[slot]
		if next < 0 || next >= capacity {
			return &ValidationError{
				Type:    "SlotChain",
				Message: fmt.Sprintf("nextOf[%d]=%d out of range", slot, next),
				Block:   pos,
			}
		}
		if b.prevOf[next] != slot {
			return &ValidationError{
				Type:    "SlotChain",
				Message: fmt.Sprintf("prevOf[%d]=%d does not mirror nextOf[%d]", next, b.prevOf[next], slot),
				Block:   pos,
			}
		}
		steps++
		if next == b.firstIndex {
			break
		}
		slot = next
	}
	if steps < b.size {
		return &ValidationError{
			Type:    "SlotChain",
			Message: fmt.Sprintf("circle spans %d slots, below size %d", steps, b.size),
			Block:   pos,
		}
	}
	return nil
}

func (s *Storage[T]) validateIncompleteList() error {
	members := make(map[*block[T]]bool)
	var prev *block[T]
	steps := 0
	for b := s.incompleteHead; b != s.sentinel; b = b.nextIncomplete {
		if b == nil {
			return &ValidationError{Type: "IncompleteList", Message: "nil link before the sentinel", Block: -1}
		}
		if steps > s.blockCount {
			return &ValidationError{Type: "IncompleteList", Message: "list is longer than the block count", Block: -1}
		}
		if members[b] {
			return &ValidationError{
				Type:    "IncompleteList",
				Message: "block linked twice",
				Block:   -1,
				Details: map[string]any{"id": b.id},
			}
		}
		members[b] = true
		if b.isFull() {
			return &ValidationError{
				Type:    "IncompleteList",
				Message: "full block linked as incomplete",
				Block:   -1,
				Details: map[string]any{"id": b.id},
			}
		}
		if b.prevIncomplete != prev {
			return &ValidationError{
				Type:    "IncompleteList",
				Message: "prevIncomplete link does not mirror nextIncomplete",
				Block:   -1,
				Details: map[string]any{"id": b.id},
			}
		}
		prev = b
		steps++
	}
	if s.sentinel.prevIncomplete != prev {
		return &ValidationError{Type: "IncompleteList", Message: "sentinel back link does not mirror the last member", Block: -1}
	}
	pos := 0
	for b := s.first; b != s.sentinel && b != nil; b = b.next {
		if b.isFull() {
			if b.nextIncomplete != nil || b.prevIncomplete != nil {
				return &ValidationError{
					Type:    "IncompleteList",
					Message: "full block carries incomplete links",
					Block:   pos,
					Details: map[string]any{"id": b.id},
				}
			}
		} else if !members[b] {
			return &ValidationError{
				Type:    "IncompleteList",
				Message: "non-full block missing from the incomplete list",
				Block:   pos,
				Details: map[string]any{"id": b.id},
			}
		}
		pos++
	}
	return nil
}

func (s *Storage[T]) validateCounts() error {
	total := 0
	for b := s.first; b != s.sentinel && b != nil; b = b.next {
		total += b.size
	}
	if total != s.dataSize {
		return &ValidationError{
			Type:    "Counts",
			Message: fmt.Sprintf("dataSize is %d but block sizes sum to %d", s.dataSize, total),
			Block:   -1,
		}
	}
	return nil
}
