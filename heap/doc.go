// Package heap implements a general-purpose dynamic memory allocator over a
// single growable byte region.
//
// # Overview
//
// The allocator manages blocks carved out of one contiguous region using
// boundary tags and segregated free lists. It provides the classic
// allocate/free/resize/zero-allocate contract:
//
//   - Alloc(size): Allocate a block with at least size usable bytes
//   - Free(ref): Release a block for reuse
//   - Realloc(ref, size): Resize by allocate-copy-free
//   - Calloc(count, size): Overflow-checked, zero-filled allocation
//   - Check(tag): Walk the region and report invariant violations
//
// # Block layout
//
// Every block is 8-byte aligned and self-describing: a 4-byte header word
// and an identical 4-byte footer word each pack (size | allocated). The
// footer lets the allocator inspect the preceding neighbor without any
// out-of-band metadata. Free blocks store two 32-bit list links in the
// first 8 payload bytes, so the minimum block size is 16.
//
// # References
//
// A Ref is the block payload's offset from the region base, with 0 acting
// as the nil reference. Relative offsets rather than raw pointers keep two
// links plus both tags inside a 16-byte block; the cost is that the region
// base must never move, which the backing arena guarantees by reserving
// its full capacity up front.
//
// # Size classes
//
// Free blocks are indexed by ten segregated lists:
//
//	Class 0: exactly 16 bytes
//	Class 1: 17 -   32 bytes
//	Class 2: 33 -   64 bytes
//	...
//	Class 8: 2049 - 4096 bytes
//	Class 9: 4097+ bytes (open-ended)
//
// Each list is kept in ascending size order, so the first fit found within
// a class is also the best fit that class can offer.
//
// # Growth
//
// When no free block satisfies a request, the heap grows by at least
// Config.GrowthChunk bytes, formats the extension as one free block, and
// immediately coalesces it with any trailing free space. The region only
// ever grows; payload addresses are stable until freed.
//
// # Thread safety
//
// Heap instances are not thread-safe. Callers serving concurrent
// goroutines must serialize every call externally.
//
// # Usage example
//
//	h, err := heap.New(nil)
//	if err != nil {
//		return err
//	}
//	defer h.Close()
//
//	ref, payload, err := h.Alloc(256)
//	if err != nil {
//		return err
//	}
//	copy(payload, record)
//
//	// Later, release the block
//	err = h.Free(ref)
package heap
