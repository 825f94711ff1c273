package effectrt

import (
	"sync/atomic"

	"github.com/orizon-lang/orizon/internal/errors"
)

// StackValue is one node of the meta-stack: a segment of activation
// records, the prompt it was installed under, and a link to the rest of
// the chain. rest == nil terminates a captured (detached) prefix; it
// also terminates the live meta-stack at its global bottom node (the
// two cases are distinguished by whether the node is reachable from a
// MetaStack.top or only from a value the program is holding onto).
type StackValue struct {
	mem    *Segment
	arena  *Segment // non-nil only under ArenaBackendSeparate
	rest   *StackValue
	prompt int64
	rc     int64
}

// MetaStack holds the single mutable pointer to the top of the live
// meta-stack. Everything reachable from top is "live"; anything else is
// a captured prefix reached only through a Positive/Negative value the
// program holds.
type MetaStack struct {
	top *StackValue
}

// currentPrompt reads the prompt of stack's top node.
func currentPrompt(stack *MetaStack) int64 {
	return stack.top.prompt
}

// reset allocates a fresh segment and a fresh prompt, pushes a new node
// on top of stack, and returns stack (whose top is the new node),
// installing a prompt boundary that a later shift can unwind to.
func reset(stack *MetaStack, cfg SegmentConfig) *MetaStack {
	return resetWithArena(stack, cfg, ArenaConfig{Backend: ArenaBackendOverlay})
}

// resetWithArena is reset generalized over the arena backend selection
// (Supplement 3): ArenaBackendOverlay overlays reference cells on mem
// itself (the canonical choice); ArenaBackendSeparate gives the
// node its own arena segment.
func resetWithArena(stack *MetaStack, cfg SegmentConfig, arenaCfg ArenaConfig) *MetaStack {
	node := &StackValue{
		mem:    newMemory(cfg),
		prompt: freshPrompt(),
		rest:   stack.top,
	}

	if arenaCfg.Backend == ArenaBackendSeparate {
		node.arena = newMemory(arenaCfg.toSegmentConfig())
	}

	stack.top = node

	return stack
}

// underflowStack frees the top segment and node and installs the
// predecessor as the new top. Only the program node built by
// withEmptyStack carries a sentinel frame (whose return, topLevel, calls
// this for the program and global nodes); reset pushes no sentinel
// frame, so a node installed by reset is underflowed only by an
// explicit call (Underflow) once its frames are done.
func underflowStack(stack *MetaStack) *MetaStack {
	old := stack.top
	stack.top = old.rest
	old.mem.free()
	old.mem = nil

	if old.arena != nil {
		old.arena.free()
		old.arena = nil
	}

	old.rest = nil

	return stack
}

// shift unwinds the live meta-stack to the node bearing prompt,
// detaching everything from the top down to and including that node as
// a captured prefix, and returns the prefix head (the old top).
//
// Control conceptually returns from shift to the caller of the reset
// that installed prompt: the prompt-bearing node's original rest becomes
// the new top, and the prompt-bearing node itself terminates the
// captured prefix (its rest is set to nil). Resuming the prefix later
// splices it back on top of wherever the program has gotten to by then.
func shift(stack *MetaStack, prompt int64) *StackValue {
	capturedHead := stack.top
	node := stack.top

	for node != nil {
		if node.prompt == prompt {
			stack.top = node.rest
			node.rest = nil
			atomic.AddInt64(&runtimeStats.shifts, 1)

			return capturedHead
		}

		node = node.rest
	}

	panic(errors.PromptNotFound(prompt))
}

// resume splices a captured prefix back atop stack's current top. If
// prefix is shared (rc > 0) it is first cloned via uniqueStack so the
// splice is not observed by other aliases of the same captured
// continuation. Returns stack, whose top is now the prefix head.
func resume(prefix *StackValue, stack *MetaStack) *MetaStack {
	if prefix.rc > 0 {
		prefix = uniqueStack(prefix)
	}

	tail := prefix
	for tail.rest != nil {
		tail = tail.rest
	}

	tail.rest = stack.top
	stack.top = prefix
	atomic.AddInt64(&runtimeStats.resumes, 1)

	return stack
}

// shareStack increments a captured prefix's owner count.
func shareStack(s *StackValue) {
	if s == nil {
		return
	}

	s.rc++
}

// eraseStack drops one owner of a captured prefix. When the last owner
// drops, every segment in the prefix is walked top-down, its frames
// erased (propagating drops into the heap objects they hold), and freed;
// the walk terminates at rest == nil without native recursion, so a
// 1,000-segment prefix reclaims in O(segment count) stack depth, not
// O(segment count) native call depth.
//
// eraseStack must never be called on the live meta-stack's head, only
// on captured prefixes obtained from shift or held by a Positive value.
func eraseStack(s *StackValue) {
	if s == nil {
		return
	}

	if s.rc > 0 {
		s.rc--
		return
	}

	if s.rc < 0 {
		panic(errors.NegativeRefCount("stack value", s.rc))
	}

	node := s
	for node != nil {
		next := node.rest
		eraseFrames(node.mem)
		node.mem.free()
		node.mem = nil

		if node.arena != nil {
			node.arena.free()
			node.arena = nil
		}

		node = next
	}
}
