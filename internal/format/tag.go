package format

// Boundary tag encoding.
//
// A tag is one little-endian uint32 packing a block's total size with its
// allocation state. Sizes are multiples of 8, so the low three bits are
// free; bit 0 holds the allocated flag. Header and footer of a block carry
// bit-identical tags.

const (
	allocatedBit = 0x1
	sizeMask     = ^uint32(AlignmentMask)
)

// PackTag packs a block size and allocation state into a boundary tag.
// size must be a multiple of 8.
func PackTag(size int, allocated bool) uint32 {
	tag := uint32(size) & sizeMask
	if allocated {
		tag |= allocatedBit
	}
	return tag
}

// TagSize extracts the total block size from a boundary tag.
func TagSize(tag uint32) int {
	return int(tag & sizeMask)
}

// TagAllocated reports whether a boundary tag marks the block allocated.
func TagAllocated(tag uint32) bool {
	return tag&allocatedBit != 0
}
