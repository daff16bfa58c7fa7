package heap

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/internal/arena"
	"github.com/joshuapare/heapkit/internal/buf"
	"github.com/joshuapare/heapkit/internal/format"
)

// Runtime debug flag for allocation logging - controlled by HEAPKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAPKIT_LOG_ALLOC") != ""

// Ref is a stable reference to a block: the payload's offset from the
// region base. NilRef is the null reference; the list-head table occupies
// offset 0, so no payload ever lands there.
type Ref = uint32

// NilRef is the null block reference.
const NilRef Ref = 0

// Region prefix layout: list-head table, one pad word, then the prologue
// block (an 8-byte allocated header/footer pair) and the epilogue header.
// The prologue and epilogue bound physical traversal from both ends.
const (
	padOff         = format.TableSize
	prologueHdrOff = padOff + format.WordSize
	prologueOff    = prologueHdrOff + format.WordSize
	bootstrapSize  = prologueOff + 2*format.WordSize
	firstBlockOff  = bootstrapSize
)

// maxHeapSize caps the reservation so every offset and size stays
// int32-safe. Block links are uint32, but keeping the region under 2GB
// avoids sign traps in intermediate arithmetic.
const maxHeapSize = 0x7FFFFFF8

// Config controls heap sizing.
type Config struct {
	// MaxHeap is the backing reservation in bytes. The heap can never grow
	// past it; requests beyond it fail with ErrOutOfMemory.
	MaxHeap int

	// GrowthChunk is the minimum extension size in bytes. Growing by at
	// least a fixed chunk amortizes backing-store calls even when the
	// immediate need is smaller.
	GrowthChunk int
}

// DefaultConfig is used when New receives a nil config.
var DefaultConfig = Config{
	MaxHeap:     1 << 30,
	GrowthChunk: 1 << 12,
}

// Heap is one independent allocator instance: a fixed-base region, its
// list-head table, and the current bounds. All operations are synchronous
// and single-threaded by contract.
type Heap struct {
	cfg    Config
	ar     *arena.Arena
	data   []byte // current region; refreshed after every growth
	stats  Stats
	closed bool
}

// New reserves a backing region, installs the list-head table and sentinel
// blocks, and performs the initial growth. A nil config selects
// DefaultConfig.
func New(cfg *Config) (*Heap, error) {
	c := DefaultConfig
	if cfg != nil {
		c = *cfg
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	ar, err := arena.Reserve(c.MaxHeap)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	h := &Heap{cfg: c, ar: ar}
	if _, err := ar.Grow(bootstrapSize); err != nil {
		ar.Close()
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	h.data = ar.Bytes()

	// Fresh pages are zero, so the list-head table is already empty.
	// Install the prologue pair and the initial epilogue header.
	format.PutU32(h.data, prologueHdrOff, format.PackTag(2*format.WordSize, true))
	format.PutU32(h.data, prologueOff, format.PackTag(2*format.WordSize, true))
	format.PutU32(h.data, prologueOff+format.WordSize, format.PackTag(0, true))

	if _, err := h.extend(c.GrowthChunk); err != nil {
		ar.Close()
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}
	return h, nil
}

func (c Config) validate() error {
	if c.MaxHeap < bootstrapSize+format.MinBlockSize || c.MaxHeap > maxHeapSize {
		return fmt.Errorf("%w: invalid MaxHeap %d", ErrInit, c.MaxHeap)
	}
	if c.GrowthChunk < format.MinBlockSize || !format.Aligned(c.GrowthChunk) {
		return fmt.Errorf("%w: invalid GrowthChunk %d", ErrInit, c.GrowthChunk)
	}
	return nil
}

// Close releases the backing region. Every Ref and payload slice obtained
// from this heap becomes invalid.
func (h *Heap) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.data = nil
	return h.ar.Close()
}

// Size returns the current region size in bytes.
func (h *Heap) Size() int {
	return len(h.data)
}

// Stats returns a snapshot of the allocator counters.
func (h *Heap) Stats() Stats {
	return h.stats
}

// Bytes returns the payload slice of a live allocated block.
func (h *Heap) Bytes(ref Ref) ([]byte, error) {
	if h.closed {
		return nil, ErrClosed
	}
	bp := int(ref)
	if err := h.validRef(bp); err != nil {
		return nil, err
	}
	return h.payload(bp), nil
}

// UsableSize returns the payload capacity of a live allocated block. It is
// at least the size requested at allocation and a multiple of 8.
func (h *Heap) UsableSize(ref Ref) (int, error) {
	if h.closed {
		return 0, ErrClosed
	}
	bp := int(ref)
	if err := h.validRef(bp); err != nil {
		return 0, err
	}
	return h.blockSize(bp) - 2*format.WordSize, nil
}

// validRef rejects references that cannot be a live allocated block:
// out of range, misaligned, undersized, or marked free. This catches stray
// and stale refs cheaply; it is not a full liveness check.
func (h *Heap) validRef(bp int) error {
	if bp < firstBlockOff || !format.Aligned(bp) || !buf.Has(h.data, bp-format.WordSize, format.WordSize) {
		return ErrBadRef
	}
	size := h.blockSize(bp)
	if size < format.MinBlockSize || !buf.Has(h.data, bp-format.WordSize, size) {
		return ErrBadRef
	}
	if !h.allocated(bp) {
		return ErrBadRef
	}
	return nil
}

func (h *Heap) payload(bp int) []byte {
	return h.data[bp : bp+h.blockSize(bp)-2*format.WordSize]
}
