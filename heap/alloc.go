package heap

import "github.com/joshuapare/heapkit/internal/format"

// Alloc allocates a block with at least size usable bytes and returns its
// reference and payload slice. The payload is 8-byte aligned and its
// capacity is a multiple of 8.
//
// A request of zero (or negative) size yields NilRef with no error: the
// allocator never produces a zero-size live block. A request too large for
// a 32-bit offset heap fails with ErrSizeOverflow before any sizing
// arithmetic can wrap. Otherwise the only failure mode is ErrOutOfMemory,
// raised when the backing reservation cannot cover a required growth; a
// single growth attempt is made, never retried.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	if h.closed {
		return NilRef, nil, ErrClosed
	}
	h.stats.AllocCalls++

	if size <= 0 {
		return NilRef, nil, nil
	}
	if size > maxHeapSize-2*format.WordSize {
		return NilRef, nil, ErrSizeOverflow
	}

	asize := adjustSize(size)

	bp := h.findFit(asize)
	grew := false
	if bp == 0 {
		n := asize
		if n < h.cfg.GrowthChunk {
			n = h.cfg.GrowthChunk
		}
		var err error
		bp, err = h.extend(n)
		if err != nil {
			return NilRef, nil, ErrOutOfMemory
		}
		grew = true
	}

	bp = h.place(bp, asize)
	if grew {
		h.stats.AllocSlowPath++
	} else {
		h.stats.AllocFastPath++
	}
	h.stats.BytesAllocated += int64(h.blockSize(bp))

	return Ref(bp), h.payload(bp), nil
}

// adjustSize converts a requested payload size into a block size: add the
// tag pair, round up to alignment, floor at the minimum block size. size
// must already be capped below maxHeapSize so the arithmetic cannot wrap.
func adjustSize(size int) int {
	asize := format.Align8(size + 2*format.WordSize)
	if asize < format.MinBlockSize {
		asize = format.MinBlockSize
	}
	return asize
}

// findFit locates a free block of at least asize bytes, or 0 if none
// exists. Classes are searched upward from the request's own class; each
// list is ascending by size, so the first entry that fits is the best fit
// that class holds. The final class is open-ended and scanned explicitly,
// since its entries share no finite upper bound.
func (h *Heap) findFit(asize int) int {
	for class := classOf(asize); class < format.NumClasses-1; class++ {
		for bp := h.listHead(class); bp != 0; bp = h.linkNext(bp) {
			if h.blockSize(bp) >= asize {
				return bp
			}
		}
	}
	for bp := h.listHead(format.NumClasses - 1); bp != 0; bp = h.linkNext(bp) {
		if h.blockSize(bp) >= asize {
			return bp
		}
	}
	return 0
}

// place carves asize bytes out of a free block. The remainder becomes a
// new free block when it can stand on its own; otherwise the whole block
// is handed out and the slack stays internal. Splitting never changes a
// neighbor's allocation state, so no coalescing is needed here.
func (h *Heap) place(bp, asize int) int {
	size := h.blockSize(bp)
	h.removeFree(bp, size)

	rem := size - asize
	if rem < format.MinBlockSize {
		h.writeTags(bp, size, true)
		return bp
	}

	h.stats.SplitCount++
	h.writeTags(bp, asize, true)
	tail := bp + asize
	h.writeTags(tail, rem, false)
	h.insertFree(tail, rem)
	return bp
}
