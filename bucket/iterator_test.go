package bucket

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator_ForwardTraversalSpansBlocks(t *testing.T) {
	s, err := NewWithBlockCapacity[int](3)
	require.NoError(t, err)
	for i := 0; i < 7; i++ {
		s.Insert(i)
	}
	require.Equal(t, 3, s.Blocks())
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, collect(s))
}

func TestIterator_PrevReversesForwardOrder(t *testing.T) {
	s, err := NewWithBlockCapacity[int](3)
	require.NoError(t, err)

	var its []Iterator[int]
	for i := 0; i < 7; i++ {
		its = append(its, s.Insert(i))
	}
	s.Erase(its[1])
	s.Erase(its[4])
	s.Insert(7) // recycles a slot, lands mid-sequence

	forward := collect(s)
	var backward []int
	for it := s.End(); !it.Equal(s.Begin()); {
		it.Prev()
		backward = append(backward, it.Value())
	}
	require.Len(t, backward, len(forward))
	for i, v := range forward {
		require.Equal(t, v, backward[len(backward)-1-i])
	}
}

func TestIterator_NextFromLastElementReachesEnd(t *testing.T) {
	s, err := NewWithBlockCapacity[int](2)
	require.NoError(t, err)
	it := s.Insert(1)

	it.Next()
	require.True(t, it.Equal(s.End()))
	require.False(t, it.Valid())

	// and Prev from End comes straight back
	it.Prev()
	require.Equal(t, 1, it.Value())
	require.True(t, it.Valid())
}

func TestIterator_AdvanceMatchesRepeatedSteps(t *testing.T) {
	s, err := NewWithBlockCapacity[int](4)
	require.NoError(t, err)

	var its []Iterator[int]
	for i := 0; i < 13; i++ {
		its = append(its, s.Insert(i))
	}
	// uneven block sizes and recycled slots
	for _, i := range []int{1, 6, 7, 11} {
		s.Erase(its[i])
	}
	n := s.Size()

	for dist := 0; dist <= n; dist++ {
		jump := s.Begin()
		jump.Advance(dist)
		step := s.Begin()
		for bi := 0; bi < dist; bi++ {
			step.Next()
		}
		require.True(t, jump.Equal(step), "forward distance %d", dist)
	}
	for dist := 0; dist <= n; dist++ {
		jump := s.End()
		jump.Advance(-dist)
		step := s.End()
		for bi := 0; bi < dist; bi++ {
			step.Prev()
		}
		require.True(t, jump.Equal(step), "backward distance %d", dist)
	}
}

func TestIterator_AdvanceHopsWholeBlocks(t *testing.T) {
	s, err := NewWithBlockCapacity[int](4)
	require.NoError(t, err)
	for i := 0; i < 12; i++ {
		s.Insert(i)
	}

	it := s.Begin()
	it.Advance(8)
	require.Equal(t, 8, it.Value())

	it.Advance(-8)
	require.True(t, it.Equal(s.Begin()))

	it.Advance(12)
	require.True(t, it.Equal(s.End()))

	it.Advance(-1)
	require.Equal(t, 11, it.Value())

	it.Advance(0)
	require.Equal(t, 11, it.Value())
}

func TestIterator_Valid(t *testing.T) {
	s := New[int]()
	require.False(t, s.End().Valid())
	require.False(t, s.Begin().Valid(), "begin of an empty container is end")

	it := s.Insert(1)
	require.True(t, it.Valid())
	require.True(t, s.Begin().Valid())

	var zero Iterator[int]
	require.False(t, zero.Valid())
}

func TestIterator_OrderingMatchesTraversal(t *testing.T) {
	s, err := NewWithBlockCapacity[string](2)
	require.NoError(t, err)

	a := s.Insert("A")
	b := s.Insert("B")
	c := s.Insert("C")
	s.Erase(b)
	d := s.Insert("D") // recycled slot in the first block

	// logical order is A, D, C even though D was inserted last
	require.True(t, a.Less(d))
	require.True(t, d.Less(c))
	require.True(t, a.Less(c))
	require.False(t, c.Less(d))
	require.False(t, d.Less(a))

	require.Equal(t, 0, a.Compare(a))
	require.Equal(t, -1, a.Compare(d))
	require.Equal(t, 1, c.Compare(d))

	// End sorts after every element
	for _, it := range []Iterator[string]{a, d, c} {
		require.True(t, it.Less(s.End()))
		require.False(t, s.End().Less(it))
	}
	require.Equal(t, 0, s.End().Compare(s.End()))
}

func TestIterator_OrderingConsistentWithWalk(t *testing.T) {
	s, err := NewWithBlockCapacity[int](3)
	require.NoError(t, err)

	var its []Iterator[int]
	for i := 0; i < 11; i++ {
		its = append(its, s.Insert(i))
	}
	for _, i := range []int{2, 3, 7} {
		s.Erase(its[i])
	}
	s.Insert(11)
	s.Insert(12)

	prev := s.Begin()
	it := s.Begin()
	for it.Next(); !it.Equal(s.End()); it.Next() {
		require.True(t, prev.Less(it))
		require.Equal(t, -1, prev.Compare(it))
		require.Equal(t, 1, it.Compare(prev))
		prev.Next()
	}
}

func TestIterator_PtrAndSetMutateInPlace(t *testing.T) {
	s := New[string]()
	it := s.Insert("old")

	p := it.Ptr()
	it.Set("new")
	require.Equal(t, "new", *p)

	*p = "newer"
	require.Equal(t, "newer", it.Value())
	require.Same(t, p, it.Ptr())
}
