package heap

import "errors"

var (
	// ErrOutOfMemory indicates that no free block large enough was found and
	// growing the backing store failed.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrBadRef indicates an invalid, out-of-bounds, or non-live block reference.
	ErrBadRef = errors.New("heap: bad block reference")

	// ErrSizeOverflow indicates a zeroed-allocation size whose count*size
	// product overflows.
	ErrSizeOverflow = errors.New("heap: allocation size overflows")

	// ErrInit indicates that reserving or formatting the initial region failed.
	ErrInit = errors.New("heap: initialization failed")

	// ErrClosed indicates use of a heap after Close.
	ErrClosed = errors.New("heap: closed")
)
