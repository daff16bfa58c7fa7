package heap

import (
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Free releases a block for reuse and coalesces it with free neighbors.
// A NilRef is a no-op. References that cannot be a live allocated block —
// out of range, misaligned, or already free — fail with ErrBadRef; this is
// a cheap misuse detector, not full double-free protection, and a stale
// ref that has since been handed out again is still undefined behavior.
func (h *Heap) Free(ref Ref) error {
	if h.closed {
		return ErrClosed
	}
	if ref == NilRef {
		return nil
	}
	h.stats.FreeCalls++

	bp := int(ref)
	if err := h.validRef(bp); err != nil {
		return err
	}

	size := h.blockSize(bp)
	h.writeTags(bp, size, false)
	h.stats.BytesFreed += int64(size)

	h.insertFree(bp, size)
	h.coalesce(bp)
	return nil
}

// Realloc resizes a block by allocating anew, copying the smaller of the
// old and new payload sizes, and freeing the old block. No in-place growth
// is attempted, so the returned reference is always fresh. A zero size
// behaves as Free; a NilRef behaves as Alloc.
func (h *Heap) Realloc(ref Ref, size int) (Ref, []byte, error) {
	if h.closed {
		return NilRef, nil, ErrClosed
	}
	if size <= 0 {
		return NilRef, nil, h.Free(ref)
	}
	if ref == NilRef {
		return h.Alloc(size)
	}

	if err := h.validRef(int(ref)); err != nil {
		return NilRef, nil, err
	}

	newRef, payload, err := h.Alloc(size)
	if err != nil {
		return NilRef, nil, err
	}

	// Offsets are stable across the Alloc above even if it grew the region.
	old := h.payload(int(ref))
	copy(payload, old)

	if err := h.Free(ref); err != nil {
		return NilRef, nil, err
	}
	return newRef, payload, nil
}

// Calloc allocates a zero-filled block for count elements of size bytes
// each. The multiplication is overflow-checked and fails with
// ErrSizeOverflow rather than sizing the block from a wrapped product.
// The entire usable payload is zeroed, not just count*size bytes.
func (h *Heap) Calloc(count, size int) (Ref, []byte, error) {
	if h.closed {
		return NilRef, nil, ErrClosed
	}
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok || total > maxHeapSize-2*format.WordSize {
		return NilRef, nil, ErrSizeOverflow
	}

	ref, payload, err := h.Alloc(total)
	if err != nil || ref == NilRef {
		return ref, payload, err
	}
	clear(payload)
	return ref, payload, nil
}
