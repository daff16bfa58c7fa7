package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_ReallocPreservesPrefix grows a block past the initial chunk and
// verifies the old payload survives the copy byte-for-byte.
func Test_ReallocPreservesPrefix(t *testing.T) {
	h := newTestHeap(t, nil)

	ref, payload, err := h.Alloc(4000)
	require.NoError(t, err)
	for i := range payload {
		payload[i] = byte(i * 7)
	}

	newRef, newPayload, err := h.Realloc(ref, 8000)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, newRef)
	require.GreaterOrEqual(t, len(newPayload), 8000)

	for i := 0; i < 4000; i++ {
		require.Equal(t, byte(i*7), newPayload[i], "payload diverges at byte %d", i)
	}
	require.Empty(t, h.Check("realloc-grow"))
}

// Test_ReallocShrink copies only the new, smaller payload size.
func Test_ReallocShrink(t *testing.T) {
	h := newTestHeap(t, nil)

	ref, payload, err := h.Alloc(256)
	require.NoError(t, err)
	for i := range payload {
		payload[i] = 0xC3
	}

	newRef, newPayload, err := h.Realloc(ref, 64)
	require.NoError(t, err)
	for i := 0; i < 64; i++ {
		require.Equal(t, byte(0xC3), newPayload[i])
	}
	require.NotEqual(t, ref, newRef, "resize always relocates")
	require.Empty(t, h.Check("realloc-shrink"))
}

// Test_ReallocZeroFrees verifies a zero size behaves as Free.
func Test_ReallocZeroFrees(t *testing.T) {
	h := newTestHeap(t, nil)

	ref, _, err := h.Alloc(128)
	require.NoError(t, err)

	newRef, payload, err := h.Realloc(ref, 0)
	require.NoError(t, err)
	require.Equal(t, NilRef, newRef)
	require.Nil(t, payload)
	require.False(t, h.allocated(int(ref)))
	require.Equal(t, 1, h.Stats().FreeCalls)
}

// Test_ReallocNilAllocates verifies a nil ref behaves as a fresh Alloc.
func Test_ReallocNilAllocates(t *testing.T) {
	h := newTestHeap(t, nil)

	ref, payload, err := h.Realloc(NilRef, 96)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	require.GreaterOrEqual(t, len(payload), 96)
	require.Empty(t, h.Check("realloc-nil"))
}

// Test_ReallocBadRef rejects stale and garbage references.
func Test_ReallocBadRef(t *testing.T) {
	h := newTestHeap(t, nil)

	_, _, err := h.Realloc(Ref(3), 64) // misaligned
	require.ErrorIs(t, err, ErrBadRef)

	_, _, err = h.Realloc(Ref(1<<20), 64) // out of range
	require.ErrorIs(t, err, ErrBadRef)
}

// Test_CallocZeroFills dirties a block, frees it, and verifies a zeroed
// allocation reusing the space comes back fully cleared.
func Test_CallocZeroFills(t *testing.T) {
	h := newTestHeap(t, nil)

	ref, payload, err := h.Alloc(256)
	require.NoError(t, err)
	for i := range payload {
		payload[i] = 0xFF
	}
	require.NoError(t, h.Free(ref))

	ref2, zeroed, err := h.Calloc(32, 8)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref2)
	require.GreaterOrEqual(t, len(zeroed), 256)
	for i, b := range zeroed {
		require.Zero(t, b, "byte %d not zeroed", i)
	}
}

// Test_CallocOverflow pins the deterministic overflow policy: a wrapping
// count*size product is rejected, never silently truncated.
func Test_CallocOverflow(t *testing.T) {
	h := newTestHeap(t, nil)

	const huge = 1 << 62
	_, _, err := h.Calloc(huge, huge)
	require.ErrorIs(t, err, ErrSizeOverflow)

	_, _, err = h.Calloc(1<<40, 1<<40)
	require.ErrorIs(t, err, ErrSizeOverflow)

	// Oversized but non-wrapping products fail as overflow too: they can
	// never fit a 32-bit offset heap.
	_, _, err = h.Calloc(1, maxHeapSize)
	require.ErrorIs(t, err, ErrSizeOverflow)
}

// Test_CallocZeroCount yields the nil ref like a zero-size Alloc.
func Test_CallocZeroCount(t *testing.T) {
	h := newTestHeap(t, nil)

	ref, payload, err := h.Calloc(0, 64)
	require.NoError(t, err)
	require.Equal(t, NilRef, ref)
	require.Nil(t, payload)
}

// Test_FreeDoubleFreeDetected documents the cheap stale-ref detector:
// releasing the same ref twice fails with ErrBadRef instead of corrupting
// the index. This is a debug aid, not a guarantee — a ref reissued in
// between still aliases.
func Test_FreeDoubleFreeDetected(t *testing.T) {
	h := newTestHeap(t, nil)

	refs := allocRow(t, h, 2, 64)
	require.NoError(t, h.Free(refs[0]))
	require.ErrorIs(t, h.Free(refs[0]), ErrBadRef)
	require.Empty(t, h.Check("double-free"))
}

// Test_FreeNilNoop verifies Free(NilRef) does nothing.
func Test_FreeNilNoop(t *testing.T) {
	h := newTestHeap(t, nil)

	require.NoError(t, h.Free(NilRef))
	require.Zero(t, h.Stats().FreeCalls)
}
