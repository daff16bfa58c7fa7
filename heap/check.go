package heap

import (
	"fmt"
	"strings"

	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Violation kinds reported by Check.
const (
	KindBoundaryTag = "BoundaryTag" // header and footer disagree
	KindAlignment   = "Alignment"   // payload not 8-byte aligned
	KindBounds      = "Bounds"      // block or link outside the region
	KindSentinel    = "Sentinel"    // prologue/epilogue malformed or missing
	KindCoalescing  = "Coalescing"  // adjacent free blocks survived
	KindFreeList    = "FreeList"    // list membership, order, or linkage wrong
)

// Violation describes one invariant breach found by Check.
type Violation struct {
	Tag     string // caller-supplied location tag
	Kind    string // violation category, one of the Kind constants
	Message string
	Offset  int // payload offset of the offending block, -1 if not block-specific
}

func (v Violation) String() string {
	if v.Offset >= 0 {
		return fmt.Sprintf("%s: %s at offset %d: %s", v.Tag, v.Kind, v.Offset, v.Message)
	}
	return fmt.Sprintf("%s: %s: %s", v.Tag, v.Kind, v.Message)
}

// Check walks the physical block chain and every free list, collecting all
// invariant violations it can find. It reports rather than terminates: a
// corrupted heap yields a non-empty slice, never a panic or exit, so the
// checker is usable inside an automated harness. A nil result means the
// heap is consistent.
//
// The tag is a caller-supplied location marker echoed into every
// violation, so a test exercising many call sites can tell them apart.
func (h *Heap) Check(tag string) []Violation {
	var vs []Violation
	add := func(kind string, off int, msg string, args ...any) {
		vs = append(vs, Violation{Tag: tag, Kind: kind, Message: fmt.Sprintf(msg, args...), Offset: off})
	}

	if h.closed {
		add(KindBounds, -1, "heap is closed")
		return vs
	}

	h.checkPhysical(add)
	h.checkLists(add)
	return vs
}

// Verify wraps Check into a single error, joining every violation found.
func (h *Heap) Verify(tag string) error {
	vs := h.Check(tag)
	if len(vs) == 0 {
		return nil
	}
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.String()
	}
	return fmt.Errorf("heap: %d violation(s): %s", len(vs), strings.Join(msgs, "; "))
}

type addFunc func(kind string, off int, msg string, args ...any)

// checkPhysical walks blocks from the prologue to the epilogue, verifying
// tag agreement, alignment, and bounds for every block on the way.
func (h *Heap) checkPhysical(add addFunc) {
	if len(h.data) < bootstrapSize {
		add(KindBounds, -1, "region smaller than bootstrap layout (%d bytes)", len(h.data))
		return
	}
	if h.blockSize(prologueOff) != 2*format.WordSize || !h.allocated(prologueOff) {
		add(KindSentinel, prologueOff, "prologue block malformed")
	}

	bp := prologueOff
	for {
		if !buf.Has(h.data, bp-format.WordSize, format.WordSize) {
			add(KindBounds, bp, "walk ran past region end without epilogue")
			return
		}
		size := h.blockSize(bp)
		if size == 0 {
			if !h.allocated(bp) {
				add(KindSentinel, bp, "epilogue header not marked allocated")
			}
			if bp != len(h.data) {
				add(KindSentinel, bp, "epilogue not at region end (%d != %d)", bp, len(h.data))
			}
			return
		}

		if !format.Aligned(bp) {
			add(KindAlignment, bp, "payload offset not 8-byte aligned")
		}
		if !format.Aligned(size) {
			add(KindAlignment, bp, "block size %d not a multiple of 8", size)
		}
		if size < format.MinBlockSize && bp != prologueOff {
			add(KindBounds, bp, "block size %d below minimum", size)
		}
		if !buf.Has(h.data, bp-format.WordSize, size) {
			add(KindBounds, bp, "block of size %d extends past region end", size)
			return
		}

		hdr := format.ReadU32(h.data, h.headerOff(bp))
		ftr := format.ReadU32(h.data, h.footerOff(bp))
		if hdr != ftr {
			add(KindBoundaryTag, bp, "header %#x != footer %#x", hdr, ftr)
			// A bad footer poisons backward traversal only; keep walking
			// forward off the header.
		}

		next := h.nextPhysical(bp)
		if next <= bp {
			add(KindBounds, bp, "walk stalled at size %d", size)
			return
		}
		bp = next
	}
}

// checkLists walks every size class list, verifying that members are free,
// belong to the class, appear in ascending size order with symmetric
// links, and have no free physical neighbor.
func (h *Heap) checkLists(add addFunc) {
	maxNodes := len(h.data)/format.MinBlockSize + 1

	for class := 0; class < format.NumClasses; class++ {
		prev := 0
		lastSize := 0
		count := 0

		for bp := h.listHead(class); bp != 0; bp = h.linkNext(bp) {
			count++
			if count > maxNodes {
				add(KindFreeList, bp, "class %d list does not terminate", class)
				break
			}
			if bp < firstBlockOff || !format.Aligned(bp) || !buf.Has(h.data, bp-format.WordSize, format.MinBlockSize) {
				add(KindBounds, bp, "class %d link points outside the heap", class)
				break
			}

			size := h.blockSize(bp)
			if h.allocated(bp) {
				add(KindFreeList, bp, "allocated block linked into class %d", class)
				break
			}
			if classOf(size) != class {
				add(KindFreeList, bp, "size %d belongs to class %d, found in class %d",
					size, classOf(size), class)
			}
			if size < lastSize {
				add(KindFreeList, bp, "class %d not ascending: size %d after %d", class, size, lastSize)
			}
			if h.linkPrev(bp) != prev {
				add(KindFreeList, bp, "back-link %d, expected %d", h.linkPrev(bp), prev)
			}

			if !buf.Has(h.data, bp-format.WordSize, size) {
				add(KindBounds, bp, "free block of size %d extends past region end", size)
				break
			}

			// Neighbor positions come from stored tags; validate them
			// before dereferencing in case a tag is corrupt.
			prevPhys := h.prevPhysical(bp)
			if prevPhys < prologueOff || prevPhys >= bp ||
				!buf.Has(h.data, prevPhys-format.WordSize, format.WordSize) {
				add(KindBounds, bp, "preceding footer encodes invalid position %d", prevPhys)
			} else if !h.allocated(prevPhys) {
				add(KindCoalescing, bp, "free block has a free preceding neighbor")
			}
			nextPhys := h.nextPhysical(bp)
			if !buf.Has(h.data, nextPhys-format.WordSize, format.WordSize) {
				add(KindBounds, bp, "following header at %d is out of range", nextPhys)
			} else if !h.allocated(nextPhys) {
				add(KindCoalescing, bp, "free block has a free following neighbor")
			}

			prev = bp
			lastSize = size
		}
	}
}
