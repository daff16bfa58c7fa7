package heap

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/internal/format"
)

// extend grows the region by at least n bytes and returns the position of
// the resulting free block. The old epilogue header becomes the new
// block's header, a fresh epilogue is written at the new end, and the
// block is indexed and coalesced immediately — a free tail left by an
// earlier growth merges right away.
func (h *Heap) extend(n int) (int, error) {
	asize := format.Align8(n)
	h.stats.GrowCalls++

	oldEnd := len(h.data)
	if _, err := h.ar.Grow(asize); err != nil {
		return 0, fmt.Errorf("heap: extend %d bytes: %w", asize, err)
	}
	h.data = h.ar.Bytes()
	h.stats.GrowBytes += int64(asize)

	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] grow #%d: +%d bytes, region now %d bytes\n",
			h.stats.GrowCalls, asize, len(h.data))
	}

	bp := oldEnd
	h.writeTags(bp, asize, false)
	format.PutU32(h.data, len(h.data)-format.WordSize, format.PackTag(0, true))

	h.insertFree(bp, asize)
	return h.coalesce(bp), nil
}
