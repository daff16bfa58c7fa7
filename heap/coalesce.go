package heap

// coalesce merges a just-freed block with free physical neighbors and
// returns the merged block's position. The block must already be linked
// into its class list; the prologue and epilogue sentinels are permanently
// allocated, so both neighbor reads are always in bounds.
//
// Coalescing runs immediately every time a block becomes free, whether
// from Free or from heap growth. No two adjacent free blocks survive past
// a public-call boundary.
func (h *Heap) coalesce(bp int) int {
	prevAllocated := h.allocated(h.prevPhysical(bp))
	nextAllocated := h.allocated(h.nextPhysical(bp))
	size := h.blockSize(bp)

	switch {
	case prevAllocated && nextAllocated:
		return bp

	case prevAllocated && !nextAllocated:
		next := h.nextPhysical(bp)
		nextSize := h.blockSize(next)
		h.stats.CoalesceForward++
		h.removeFree(bp, size)
		h.removeFree(next, nextSize)
		size += nextSize
		h.writeTags(bp, size, false)

	case !prevAllocated && nextAllocated:
		prev := h.prevPhysical(bp)
		prevSize := h.blockSize(prev)
		h.stats.CoalesceBackward++
		h.removeFree(bp, size)
		h.removeFree(prev, prevSize)
		size += prevSize
		bp = prev
		h.writeTags(bp, size, false)

	default:
		prev := h.prevPhysical(bp)
		next := h.nextPhysical(bp)
		prevSize := h.blockSize(prev)
		nextSize := h.blockSize(next)
		h.stats.CoalesceForward++
		h.stats.CoalesceBackward++
		h.removeFree(bp, size)
		h.removeFree(prev, prevSize)
		h.removeFree(next, nextSize)
		size += prevSize + nextSize
		bp = prev
		h.writeTags(bp, size, false)
	}

	h.insertFree(bp, size)
	return bp
}
