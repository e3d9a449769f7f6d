package bucket

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStats_EmptyContainer(t *testing.T) {
	s := New[int]()
	st := s.Stats()
	require.Zero(t, st.Size)
	require.Zero(t, st.Blocks)
	require.Zero(t, st.Capacity)
	require.Zero(t, st.Occupancy)
	require.Equal(t, DefaultBlockCapacity, st.BlockCapacity)
}

func TestStats_CountsSlotsByState(t *testing.T) {
	s, err := NewWithBlockCapacity[int](4)
	require.NoError(t, err)

	var its []Iterator[int]
	for i := 0; i < 10; i++ {
		its = append(its, s.Insert(i))
	}
	s.Erase(its[1])

	st := s.Stats()
	require.Equal(t, 9, st.Size)
	require.Equal(t, 3, st.Blocks)
	require.Equal(t, 4, st.BlockCapacity)
	require.Equal(t, 12, st.Capacity)
	require.Equal(t, 1, st.FullBlocks)
	require.Equal(t, 2, st.IncompleteBlocks)
	require.Equal(t, 1, st.ReservoirSlots)
	require.Equal(t, 2, st.NeverUsedSlots)
	require.InDelta(t, 75.0, st.Occupancy, 0.001)

	// 3 block ids + 10 slot ids drawn from one sequence
	require.Equal(t, uint64(13), st.NextID)
}

func TestBlockStats_RowsInCreationOrder(t *testing.T) {
	s, err := NewWithBlockCapacity[int](2)
	require.NoError(t, err)

	var its []Iterator[int]
	for i := 0; i < 4; i++ {
		its = append(its, s.Insert(i))
	}
	s.Erase(its[3])

	rows := s.BlockStats()
	require.Len(t, rows, 2)
	require.Less(t, rows[0].ID, rows[1].ID)

	require.True(t, rows[0].Full)
	require.False(t, rows[0].Incomplete)
	require.Equal(t, 2, rows[0].Size)
	require.Zero(t, rows[0].Reservoir)

	require.False(t, rows[1].Full)
	require.True(t, rows[1].Incomplete)
	require.Equal(t, 1, rows[1].Size)
	require.Equal(t, 1, rows[1].Reservoir)
	require.Zero(t, rows[1].NeverUsed)
}

func TestSnapshot_ClassifiesEverySlot(t *testing.T) {
	s, err := NewWithBlockCapacity[int](4)
	require.NoError(t, err)

	var its []Iterator[int]
	for i := 0; i < 3; i++ {
		its = append(its, s.Insert(i))
	}
	s.Erase(its[1])

	snaps := s.Snapshot()
	require.Len(t, snaps, 1)
	snap := snaps[0]
	require.Equal(t, 2, snap.Size)
	require.Equal(t, []SlotState{SlotActive, SlotReservoir, SlotActive, SlotNeverUsed}, snap.Slots)
	require.Equal(t, []int{0, 2}, snap.Active)
	require.Equal(t, []int{1}, snap.Reservoir)
	require.Equal(t, 0, snap.First)
	require.Equal(t, 2, snap.Last)
}

func TestDumpStructure_RendersChains(t *testing.T) {
	s, err := NewWithBlockCapacity[string](2)
	require.NoError(t, err)
	a := s.Insert("a")
	s.Insert("b")
	s.Insert("c")
	s.Erase(a)

	var buf bytes.Buffer
	require.NoError(t, s.DumpStructure(&buf))
	out := buf.String()
	require.Contains(t, out, "storage: size=2 blocks=2 capacity=4 (block capacity 2)")
	require.Contains(t, out, "block 0 (id 0, incomplete)")
	require.Contains(t, out, "block 1 (id 3, incomplete)")
	require.Contains(t, out, "active:")
	require.Contains(t, out, "reservoir: 0")
}
