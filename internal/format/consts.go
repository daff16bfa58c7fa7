package format

// Layout constants for the heap region.
//
// A block is a contiguous 8-byte-aligned range: a 4-byte boundary tag
// (header), the payload, and a second identical boundary tag (footer).
// Free blocks carry two 4-byte list links in the first 8 payload bytes,
// which is what pins the minimum block size at 16.
const (
	// WordSize is the boundary tag size in bytes.
	WordSize = 4

	// Alignment is the required alignment of every block payload.
	Alignment = 8

	// AlignmentMask selects the sub-alignment bits of a size or offset.
	AlignmentMask = Alignment - 1

	// LinkSize is the size of one free-list link (a 32-bit offset).
	LinkSize = 4

	// MinBlockSize is the smallest legal block: header + two links + footer.
	MinBlockSize = WordSize + 2*LinkSize + WordSize

	// NumClasses is the number of segregated free-list size classes:
	// {16}, (16,32], (32,64], ... (2048,4096], (4096,inf).
	NumClasses = 10

	// TableSize is the byte length of the list-head table at the region base.
	TableSize = NumClasses * LinkSize
)
