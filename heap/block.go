package heap

import "github.com/joshuapare/heapkit/internal/format"

// Block-level address arithmetic. A block position bp is always the payload
// offset; the header sits at bp-4 and the footer at bp+size-8. All of these
// read the stored size, so they are only meaningful on well-formed blocks.

func (h *Heap) headerOff(bp int) int {
	return bp - format.WordSize
}

func (h *Heap) footerOff(bp int) int {
	return bp + h.blockSize(bp) - 2*format.WordSize
}

// blockSize returns the total block size, header and footer included.
func (h *Heap) blockSize(bp int) int {
	return format.TagSize(format.ReadU32(h.data, bp-format.WordSize))
}

func (h *Heap) allocated(bp int) bool {
	return format.TagAllocated(format.ReadU32(h.data, bp-format.WordSize))
}

// nextPhysical returns the payload offset of the physically following block.
func (h *Heap) nextPhysical(bp int) int {
	return bp + h.blockSize(bp)
}

// prevPhysical returns the payload offset of the physically preceding
// block, located through that block's footer.
func (h *Heap) prevPhysical(bp int) int {
	return bp - format.TagSize(format.ReadU32(h.data, bp-2*format.WordSize))
}

// writeTags stamps an identical boundary tag into the header and footer.
func (h *Heap) writeTags(bp, size int, allocated bool) {
	tag := format.PackTag(size, allocated)
	format.PutU32(h.data, bp-format.WordSize, tag)
	format.PutU32(h.data, bp+size-2*format.WordSize, tag)
}
