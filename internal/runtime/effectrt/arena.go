package effectrt

import "github.com/orizon-lang/orizon/internal/errors"

// ArenaBackend selects which of the two realizations from the design
// notes backs a prompt's mutable cells.
type ArenaBackend int

const (
	// ArenaBackendOverlay overlays reference cells directly on the
	// frame segment itself: a reference simply records where in the
	// segment its cell sits. This is the canonical choice.
	ArenaBackendOverlay ArenaBackend = iota
	// ArenaBackendSeparate gives each meta-stack node its own arena
	// segment, independent of the frame segment; references then carry
	// an offset into that separate region instead.
	ArenaBackendSeparate
)

// ArenaConfig controls arena allocation for resetWithArena.
type ArenaConfig struct {
	Backend     ArenaBackend
	InitialSize uintptr
}

// DefaultArenaConfig returns the canonical overlay backend.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{Backend: ArenaBackendOverlay}
}

func (c ArenaConfig) toSegmentConfig() SegmentConfig {
	cfg := DefaultSegmentConfig()
	if c.InitialSize > 0 {
		cfg.InitialSize = c.InitialSize
	}

	return cfg
}

// regionFor returns the segment a node's reference cells are allocated
// from under the active arena backend.
func (s *StackValue) regionFor() *Segment {
	if s.arena != nil {
		return s.arena
	}

	return s.mem
}

// findPrompt walks stack's live meta-stack from the top looking for the
// node bearing prompt. Returns nil if none is found; callers translate
// that into a dangling-reference fault.
func findPrompt(stack *MetaStack, prompt int64) *StackValue {
	for node := stack.top; node != nil; node = node.rest {
		if node.prompt == prompt {
			return node
		}
	}

	return nil
}

// dangling is the fault path getVarPointer (reference.go) takes when
// findPrompt misses: it distinguishes "prompt not found" (the prompt's node was freed) from
// the reference-offset-out-of-bounds case Segment.cellPointer already
// reports.
func dangling(prompt int64, offset int32) {
	panic(errors.DanglingReference(prompt, offset))
}
