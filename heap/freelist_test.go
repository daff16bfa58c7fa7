package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
)

// Test_ClassOf pins the class partition: {16}, (16,32], (32,64], ...,
// (2048,4096], (4096,inf).
func Test_ClassOf(t *testing.T) {
	cases := []struct {
		size, class int
	}{
		{16, 0},
		{17, 1}, {24, 1}, {32, 1},
		{33, 2}, {64, 2},
		{65, 3}, {128, 3},
		{2048, 7},
		{2049, 8}, {4096, 8},
		{4097, 9}, {1 << 20, 9}, {1 << 28, 9},
	}
	for _, c := range cases {
		assert.Equal(t, c.class, classOf(c.size), "classOf(%d)", c.size)
	}
}

// Test_FreeListSortedInsert frees same-class blocks out of size order and
// verifies the list comes back ascending.
func Test_FreeListSortedInsert(t *testing.T) {
	h := newTestHeap(t, nil)

	// Blocks of 48, 64, and 40 bytes, each separated by a live block so
	// nothing coalesces. All three land in class 2 (33..64).
	sizes := []int{40, 56, 26}
	refs := make([]Ref, len(sizes))
	for i, n := range sizes {
		ref, _, err := h.Alloc(n)
		require.NoError(t, err)
		refs[i] = ref
		_, _, err = h.Alloc(24) // separator
		require.NoError(t, err)
	}

	for _, ref := range refs {
		require.NoError(t, h.Free(ref))
	}

	var got []int
	for bp := h.listHead(2); bp != 0; bp = h.linkNext(bp) {
		got = append(got, h.blockSize(bp))
	}
	require.Equal(t, []int{40, 48, 64}, got)
	require.Empty(t, h.Check("sorted-insert"))
}

// Test_FreeListBestFitWithinClass verifies the sorted scan picks the
// tightest member, not the head-most or largest.
func Test_FreeListBestFitWithinClass(t *testing.T) {
	h := newTestHeap(t, nil)

	sizes := []int{56, 26, 40}
	refs := make([]Ref, len(sizes))
	for i, n := range sizes {
		ref, _, err := h.Alloc(n)
		require.NoError(t, err)
		refs[i] = ref
		_, _, err = h.Alloc(24)
		require.NoError(t, err)
	}
	for _, ref := range refs {
		require.NoError(t, h.Free(ref))
	}

	// Request a 48-byte block: exact match is refs[2]'s former slot.
	got, _, err := h.Alloc(40)
	require.NoError(t, err)
	require.Equal(t, refs[2], got)
	require.Empty(t, h.Check("best-fit-within-class"))
}

// Test_FreeListRemoveMiddle exercises the middle-node splice by
// reallocating the median of three sorted members.
func Test_FreeListRemoveMiddle(t *testing.T) {
	h := newTestHeap(t, nil)

	sizes := []int{26, 40, 56}
	refs := make([]Ref, len(sizes))
	for i, n := range sizes {
		ref, _, err := h.Alloc(n)
		require.NoError(t, err)
		refs[i] = ref
		_, _, err = h.Alloc(24)
		require.NoError(t, err)
	}
	for _, ref := range refs {
		require.NoError(t, h.Free(ref))
	}

	// The list is [40 48 64]; a 48-byte request takes the middle member.
	got, _, err := h.Alloc(40)
	require.NoError(t, err)
	require.Equal(t, refs[1], got)

	var remaining []int
	for bp := h.listHead(2); bp != 0; bp = h.linkNext(bp) {
		remaining = append(remaining, h.blockSize(bp))
	}
	require.Equal(t, []int{40, 64}, remaining)
	require.Empty(t, h.Check("remove-middle"))
}

// Test_FreeListHeadTable verifies heads live at the region base and empty
// classes stay zero.
func Test_FreeListHeadTable(t *testing.T) {
	h := newTestHeap(t, nil)

	// Fresh heap: only the initial chunk's block is free, in class 8.
	for class := 0; class < format.NumClasses; class++ {
		head := h.listHead(class)
		if class == classOf(h.cfg.GrowthChunk) {
			require.NotZero(t, head)
			require.Equal(t, firstBlockOff, head)
		} else {
			require.Zero(t, head, "class %d should be empty", class)
		}
	}
}
