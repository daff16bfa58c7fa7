// Package arena provides the growable backing store underneath a heap
// region.
//
// The heap's intra-block links are 32-bit offsets relative to the region
// base, so the base address must never move once the first byte is handed
// out. On unix the arena therefore reserves the full capacity up front as
// an inaccessible anonymous mapping and commits pages in place as the heap
// grows. On other platforms it falls back to one eagerly allocated slice.
//
// The arena only ever grows; nothing is returned to the operating system
// before Close.
package arena

import "errors"

var (
	// ErrExhausted indicates a grow request past the reserved capacity.
	ErrExhausted = errors.New("arena: reservation exhausted")

	// ErrClosed indicates use of an arena after Close.
	ErrClosed = errors.New("arena: closed")
)
