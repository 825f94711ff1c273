package effectrt

import "sync/atomic"

// runtimeStats follows the Stats/Statistics structs of the allocators
// this package was adapted from (RegionStats, RefCountStatistics,
// StackOptimizerStatistics, no longer part of this tree): plain atomic
// counters updated on the hot path, readable without locking out the
// mutators that bump them.
var runtimeStats struct {
	segmentsAllocated int64
	segmentsFreed     int64
	shifts            int64
	resumes           int64
	clones            int64
	heapObjectsLive   int64
	heapObjectsFreed  int64
}

// RuntimeStats is a point-in-time snapshot of effectrt's internal
// counters, for tests asserting leak-freedom (property 2) and for
// diagnostics.
type RuntimeStats struct {
	SegmentsAllocated int64
	SegmentsFreed     int64
	Shifts            int64
	Resumes           int64
	Clones            int64
	HeapObjectsLive   int64
	HeapObjectsFreed  int64
}

// Stats returns a snapshot of the process-wide runtime counters.
func Stats() RuntimeStats {
	return RuntimeStats{
		SegmentsAllocated: atomic.LoadInt64(&runtimeStats.segmentsAllocated),
		SegmentsFreed:     atomic.LoadInt64(&runtimeStats.segmentsFreed),
		Shifts:            atomic.LoadInt64(&runtimeStats.shifts),
		Resumes:           atomic.LoadInt64(&runtimeStats.resumes),
		Clones:            atomic.LoadInt64(&runtimeStats.clones),
		HeapObjectsLive:   atomic.LoadInt64(&runtimeStats.heapObjectsLive),
		HeapObjectsFreed:  atomic.LoadInt64(&runtimeStats.heapObjectsFreed),
	}
}

// Balanced reports whether every segment allocation has a matching free
// and every live heap object has been freed, the leak-freedom property
// (§8 property 2) a terminating, non-capturing program must satisfy.
func (s RuntimeStats) Balanced() bool {
	return s.SegmentsAllocated == s.SegmentsFreed && s.HeapObjectsLive == s.HeapObjectsFreed
}
