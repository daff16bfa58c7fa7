//go:build !unix

package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Arena is a fixed-base, monotonically growing byte region backed by one
// eagerly allocated slice when page-level reservation is unavailable.
type Arena struct {
	mem    []byte
	size   int
	closed bool
}

// Reserve allocates capacity bytes up front and returns an arena over it.
// capacity must be positive.
func Reserve(capacity int) (*Arena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("arena: invalid capacity %d", capacity)
	}
	return &Arena{mem: make([]byte, capacity)}, nil
}

// Grow extends the usable region by n bytes and returns the offset of the
// extension's first byte. Fails with ErrExhausted when the reservation
// cannot cover the request; the arena is unchanged on failure.
func (a *Arena) Grow(n int) (int, error) {
	if a.closed {
		return 0, ErrClosed
	}
	if n <= 0 {
		return 0, fmt.Errorf("arena: invalid grow size %d", n)
	}
	newSize, ok := buf.AddOverflowSafe(a.size, n)
	if !ok || newSize > len(a.mem) {
		return 0, ErrExhausted
	}
	off := a.size
	a.size = newSize
	return off, nil
}

// Bytes returns the usable region. The slice header changes with Grow but
// the underlying base address never does.
func (a *Arena) Bytes() []byte {
	return a.mem[:a.size]
}

// Size returns the number of usable bytes handed out so far.
func (a *Arena) Size() int {
	return a.size
}

// Cap returns the reserved capacity.
func (a *Arena) Cap() int {
	return len(a.mem)
}

// Close releases the arena. Every slice obtained from Bytes becomes invalid.
func (a *Arena) Close() error {
	a.closed = true
	a.mem = nil
	return nil
}
