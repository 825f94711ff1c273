package effectrt

import "testing"

func freshTestStack() *MetaStack {
	return &MetaStack{top: &StackValue{mem: newMemory(DefaultSegmentConfig()), prompt: 0}}
}

func TestPromptMonotonicity(t *testing.T) {
	var last int64

	for i := 0; i < 100; i++ {
		p := freshPrompt()
		if p <= last {
			t.Fatalf("freshPrompt not strictly increasing: %d then %d", last, p)
		}

		last = p
	}
}

// TestIdentityContinuation is scenario S1: install a prompt, immediately
// shift it. The captured prefix is exactly the topmost node, and the
// new top is its predecessor.
func TestIdentityContinuation(t *testing.T) {
	stack := freshTestStack()
	base := stack.top

	reset(stack, DefaultSegmentConfig())
	p := currentPrompt(stack)
	resetNode := stack.top

	prefix := shift(stack, p)

	if prefix != resetNode {
		t.Fatal("expected captured prefix to be exactly the reset node")
	}

	if prefix.rest != nil {
		t.Fatal("expected captured prefix to terminate with rest == nil")
	}

	if stack.top != base {
		t.Fatal("expected new top to be the reset node's predecessor")
	}

	// Resuming on the same top restores the structure.
	resume(prefix, stack)

	if stack.top != resetNode || stack.top.rest != base {
		t.Fatal("resume did not restore the pre-shift structure")
	}
}

// TestNestedPromptsShiftDetachesBoth is scenario S5: shifting to the
// outer of two nested prompts detaches both segments, and resuming
// re-splices both, with references bound to the inner prompt still
// resolvable.
func TestNestedPromptsShiftDetachesBoth(t *testing.T) {
	stack := freshTestStack()
	base := stack.top

	reset(stack, DefaultSegmentConfig())
	outer := currentPrompt(stack)
	outerNode := stack.top

	reset(stack, DefaultSegmentConfig())
	inner := currentPrompt(stack)
	innerNode := stack.top

	ref := AllocateReference(stack)
	WriteInt64(ref, stack, 7)

	prefix := shift(stack, outer)

	if prefix != innerNode || prefix.rest != outerNode || outerNode.rest != nil {
		t.Fatal("expected both inner and outer nodes in the captured prefix")
	}

	if stack.top != base {
		t.Fatal("expected new top to be the pre-reset base")
	}

	resume(prefix, stack)

	if stack.top != innerNode || innerNode.rest != outerNode || outerNode.rest != base {
		t.Fatal("resume did not re-splice both segments")
	}

	if got := ReadInt64(ref, stack); got != 7 {
		t.Fatalf("expected reference bound to inner prompt %d to still resolve to 7, got %d", inner, got)
	}
}

func TestShiftUnknownPromptPanics(t *testing.T) {
	stack := freshTestStack()

	defer func() {
		if recover() == nil {
			t.Fatal("expected shift to a nonexistent prompt to panic")
		}
	}()

	shift(stack, 999999)
}

// TestShareEraseStackRoundTripIsNoop is the round-trip law:
// shareStack(s); eraseStack(s) should leave s's observable state
// unchanged (still live, rc back to its original value).
func TestShareEraseStackRoundTripIsNoop(t *testing.T) {
	s := &StackValue{mem: newMemory(DefaultSegmentConfig()), prompt: 1}
	defer s.mem.free()

	before := s.rc
	shareStack(s)
	eraseStack(s)

	if s.rc != before {
		t.Fatalf("share/erase round trip changed rc: %d -> %d", before, s.rc)
	}

	if s.mem == nil {
		t.Fatal("share/erase round trip should not have reclaimed the segment")
	}
}

func TestEraseStackReclaimsSoleOwner(t *testing.T) {
	s := &StackValue{mem: newMemory(DefaultSegmentConfig()), prompt: 1}

	eraseStack(s) // rc == 0: sole owner, must reclaim

	if s.mem != nil {
		t.Fatal("expected segment to be freed when the sole owner erases")
	}
}

// TestResetThenUnderflowIsIdentity is the round-trip law: reset followed
// by an immediate underflow leaves the meta-stack top unchanged in
// observable structure.
func TestResetThenUnderflowIsIdentity(t *testing.T) {
	stack := freshTestStack()
	base := stack.top

	reset(stack, DefaultSegmentConfig())
	underflowStack(stack)

	if stack.top != base {
		t.Fatal("reset immediately followed by underflow should restore the original top")
	}
}

func TestDeepPrefixEraseReclaimsEverySegment(t *testing.T) {
	const depth = 1000

	var head, tail *StackValue

	for i := 0; i < depth; i++ {
		node := &StackValue{mem: newMemory(SegmentConfig{InitialSize: 256}), prompt: int64(i + 1)}
		if head == nil {
			head = node
		} else {
			tail.rest = node
		}

		tail = node
	}

	before := Stats()

	eraseStack(head)

	after := Stats()
	if after.SegmentsFreed-before.SegmentsFreed != depth {
		t.Fatalf("expected %d segments freed, got %d", depth, after.SegmentsFreed-before.SegmentsFreed)
	}
}
