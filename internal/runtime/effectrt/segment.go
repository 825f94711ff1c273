package effectrt

import (
	"sync/atomic"

	"github.com/orizon-lang/orizon/internal/errors"
)

// SegmentConfig controls how stack segments are reserved and how they
// behave when a bump allocation would run past their current capacity.
type SegmentConfig struct {
	// InitialSize is the backing reservation handed to newMemory. The
	// reference implementation this package is modeled on reserves 2^28
	// bytes per segment so per-call bumps never need to check limits;
	// effectrt defaults much smaller since segments here grow on demand.
	InitialSize uintptr
	// FixedCapacity disables grow-and-copy: an allocation that would
	// exceed limit faults immediately instead of relocating the segment.
	// Set this to reproduce the spec's stated baseline behavior.
	FixedCapacity bool
}

// DefaultSegmentConfig is used by newMemory when no SegmentConfig is
// supplied explicitly.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{InitialSize: 64 * 1024, FixedCapacity: false}
}

// frameEntry is the runtime's bookkeeping record for one pushed
// activation frame: its share/erase callbacks and the byte range of its
// locals within the segment. The code generator's real frame-header
// contract (three pointer-sized slots, immediately below the locals) is
// honored logically by this record rather than by literally packing Go
// func values into the byte buffer, since a Go func value cannot be
// bit-packed the way a native code generator's function pointer can.
type frameEntry struct {
	header     FrameHeader
	base       uintptr
	localsSize uintptr
}

// Segment is a contiguous stack region: base <= sp <= limit. Frames grow
// upward from base; sp points one past the topmost frame's locals.
type Segment struct {
	backing []byte
	base    uintptr
	sp      uintptr
	limit   uintptr
	frames  []frameEntry
	config  SegmentConfig
}

// newMemory allocates a fresh segment per cfg. A zero-value SegmentConfig
// falls back to DefaultSegmentConfig's InitialSize.
func newMemory(cfg SegmentConfig) *Segment {
	if cfg.InitialSize == 0 {
		cfg.InitialSize = DefaultSegmentConfig().InitialSize
	}

	backing := allocSegmentMemory(cfg.InitialSize)
	atomic.AddInt64(&runtimeStats.segmentsAllocated, 1)

	return &Segment{
		backing: backing,
		base:    0,
		sp:      0,
		limit:   uintptr(len(backing)),
		config:  cfg,
	}
}

// used reports the number of live bytes between base and sp.
func (s *Segment) used() uintptr {
	return s.sp - s.base
}

// stackAllocate reserves n bytes above the current sp and returns the
// offset at which the new region begins (the base of the newly allocated
// region). Growth beyond limit triggers grow-and-copy unless
// FixedCapacity is set, in which case it faults.
func (s *Segment) stackAllocate(n uintptr) uintptr {
	if s.sp+n > s.limit {
		if s.config.FixedCapacity {
			panic(errors.SegmentExhausted(n, s.limit-s.sp))
		}

		s.grow(n)
	}

	before := s.sp
	s.sp += n

	return before
}

// stackDeallocate shrinks sp by n and returns the new sp.
func (s *Segment) stackDeallocate(n uintptr) uintptr {
	if n > s.used() {
		panic(errors.InvalidSize(n, "effectrt.stackDeallocate"))
	}

	s.sp -= n

	return s.sp
}

// grow doubles the segment's backing reservation (or enough to satisfy
// the pending allocation, whichever is larger) and relocates the used
// prefix into it. Bare pointers returned by getVarPointer before a grow
// are invalidated; callers must re-resolve references rather than hold
// raw pointers across a stackAllocate.
func (s *Segment) grow(atLeast uintptr) {
	newSize := uintptr(len(s.backing)) * 2
	if newSize < s.sp+atLeast {
		newSize = s.sp + atLeast
	}

	grown := allocSegmentMemory(newSize)
	copy(grown, s.backing[:s.sp])
	freeSegmentMemory(s.backing)

	s.backing = grown
	s.limit = uintptr(len(grown))
}

// cellPointer returns a pointer into the segment's live region at the
// given offset, bounds-checked against the used portion.
func (s *Segment) cellPointer(offset uintptr) []byte {
	if offset >= s.used() {
		panic(errors.IndexOutOfBounds(offset, uintptr(s.used())))
	}

	return s.backing[offset:]
}

// copyMemory allocates a block of identical total size and duplicates
// the live prefix [0, sp) byte-for-byte, producing a segment whose
// sp/base/limit are translated to the new backing store. Frames and cell
// overlays copied this way are independent of the source from the
// moment copyMemory returns.
func copyMemory(src *Segment) *Segment {
	atomic.AddInt64(&runtimeStats.segmentsAllocated, 1)

	dst := &Segment{
		backing: allocSegmentMemory(uintptr(len(src.backing))),
		base:    src.base,
		sp:      src.sp,
		limit:   src.limit,
		config:  src.config,
		frames:  append([]frameEntry(nil), src.frames...),
	}
	copy(dst.backing, src.backing[:src.sp])

	return dst
}

// free releases a segment's backing store. Called once a segment's
// owning StackValue is reclaimed (underflowStack or eraseStack).
func (s *Segment) free() {
	freeSegmentMemory(s.backing)
	s.backing = nil
	atomic.AddInt64(&runtimeStats.segmentsFreed, 1)
}
