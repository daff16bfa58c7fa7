package heap

import "github.com/joshuapare/heapkit/internal/format"

// Segregated free-list index. Each size class has one head slot in the
// table at the region base, pointing at a doubly-linked list of free
// blocks kept in ascending size order. Links are 32-bit payload offsets
// with 0 meaning none, which is what lets two of them share the 8-byte
// payload of a minimum-size block.

// classOf returns the size class for a block size: the smallest k with
// size <= 16<<k, clamped to the open-ended last class.
func classOf(size int) int {
	k := 0
	for k < format.NumClasses-1 && size > format.MinBlockSize<<k {
		k++
	}
	return k
}

func (h *Heap) listHead(class int) int {
	return int(format.ReadU32(h.data, class*format.LinkSize))
}

func (h *Heap) setListHead(class, bp int) {
	format.PutU32(h.data, class*format.LinkSize, uint32(bp))
}

// linkPrev and linkNext read a free block's list links from the first
// 8 payload bytes. Only valid while the block is free.
func (h *Heap) linkPrev(bp int) int {
	return int(format.ReadU32(h.data, bp))
}

func (h *Heap) linkNext(bp int) int {
	return int(format.ReadU32(h.data, bp+format.LinkSize))
}

func (h *Heap) setLinkPrev(bp, target int) {
	format.PutU32(h.data, bp, uint32(target))
}

func (h *Heap) setLinkNext(bp, target int) {
	format.PutU32(h.data, bp+format.LinkSize, uint32(target))
}

// insertFree splices a free block into its class list at the position that
// keeps the list ascending by size. The block's boundary tags must already
// be written; size is its total size.
func (h *Heap) insertFree(bp, size int) {
	class := classOf(size)
	next := h.listHead(class)

	if next == 0 {
		// Empty list.
		h.setLinkPrev(bp, 0)
		h.setLinkNext(bp, 0)
		h.setListHead(class, bp)
		return
	}

	if size <= h.blockSize(next) {
		// New head.
		h.setLinkPrev(bp, 0)
		h.setLinkNext(bp, next)
		h.setLinkPrev(next, bp)
		h.setListHead(class, bp)
		return
	}

	prev := next
	next = h.linkNext(next)
	for next != 0 && size > h.blockSize(next) {
		prev = next
		next = h.linkNext(next)
	}

	h.setLinkPrev(bp, prev)
	h.setLinkNext(bp, next)
	h.setLinkNext(prev, bp)
	if next != 0 {
		h.setLinkPrev(next, bp)
	}
}

// removeFree splices a free block out of its class list. The block must be
// a current list member; size is its total size.
func (h *Heap) removeFree(bp, size int) {
	prev := h.linkPrev(bp)
	next := h.linkNext(bp)

	if prev == 0 {
		h.setListHead(classOf(size), next)
	} else {
		h.setLinkNext(prev, next)
	}
	if next != 0 {
		h.setLinkPrev(next, prev)
	}
}
