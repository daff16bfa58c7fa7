package heap

// Stats holds allocator counters for testing and instrumentation.
type Stats struct {
	AllocCalls    int   // Total Alloc() calls
	AllocFastPath int   // Allocations satisfied from the free index
	AllocSlowPath int   // Allocations that required growth
	FreeCalls     int   // Total Free() calls
	GrowCalls     int   // Number of region extensions
	GrowBytes     int64 // Total bytes added by extensions

	BytesAllocated int64 // Total block bytes handed out (tags included)
	BytesFreed     int64 // Total block bytes released

	SplitCount       int // Placements that produced a remainder block
	CoalesceForward  int // Merges absorbing the following block
	CoalesceBackward int // Merges absorbing the preceding block
}
