//go:build unix

package arena

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Arena is a fixed-base, monotonically growing byte region.
//
// The full capacity is reserved as PROT_NONE so the kernel assigns one
// stable address range without charging memory; Grow flips pages to
// read-write in place.
type Arena struct {
	mem       []byte // full reservation
	size      int    // logical bytes handed out via Grow
	committed int    // page-aligned read-write watermark
	closed    bool
}

// Reserve maps capacity bytes of inaccessible anonymous memory and returns
// an arena over it. capacity must be positive.
func Reserve(capacity int) (*Arena, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("arena: invalid capacity %d", capacity)
	}
	mem, err := unix.Mmap(-1, 0, capacity, unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", capacity, err)
	}
	return &Arena{mem: mem}, nil
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
	if newSize > a.committed {
		newCommitted := pageAlign(newSize)
		if newCommitted > len(a.mem) {
			newCommitted = len(a.mem)
		}
		if err := unix.Mprotect(a.mem[a.committed:newCommitted], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("arena: commit %d bytes: %w", newCommitted-a.committed, err)
		}
		a.committed = newCommitted
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

// Close unmaps the reservation. The arena and every slice obtained from
// Bytes become invalid.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	mem := a.mem
	a.mem = nil
	return unix.Munmap(mem)
}

func pageAlign(n int) int {
	page := os.Getpagesize()
	return (n + page - 1) &^ (page - 1)
}
