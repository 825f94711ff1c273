package effectrt

import "testing"

// TestRunLeavesEmptyStack is scenario S6: a program that returns normally
// through the sentinel frame leaves no live meta-stack nodes behind.
func TestRunLeavesEmptyStack(t *testing.T) {
	var stack *MetaStack

	f := func(evidence int64, s *MetaStack) {
		stack = s
		topLevel(s)
	}

	run(f, DefaultSegmentConfig())

	if stack.top != nil {
		t.Fatal("expected an empty meta-stack after a clean run")
	}
}

func TestRunIntPassesArgument(t *testing.T) {
	var got int64

	f := func(evidence int64, x int64, s *MetaStack) {
		got = x
		topLevel(s)
	}

	run_Int(f, 42, DefaultSegmentConfig())

	if got != 42 {
		t.Fatalf("expected argument 42, got %d", got)
	}
}

func TestRunPosPassesArgument(t *testing.T) {
	want := Positive{Tag: 7}

	var got Positive

	f := func(evidence int64, x Positive, s *MetaStack) {
		got = x
		topLevel(s)
	}

	run_Pos(f, want, DefaultSegmentConfig())

	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestWithEmptyStackInstallsSentinelFrame(t *testing.T) {
	stack := withEmptyStack(DefaultSegmentConfig())

	header, ok := popFrame(stack)
	if !ok {
		t.Fatal("expected a sentinel frame on the program node")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected the sentinel sharer to fault when invoked")
		}
	}()

	header.Sharer(nil)
}

func TestSentinelEraserFaults(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected the sentinel eraser to fault when invoked")
		}
	}()

	sentinelErase(nil)
}

func TestTopLevelFaultsOnNonEmptyStack(t *testing.T) {
	stack := withEmptyStack(DefaultSegmentConfig())
	popFrame(stack) // discard the sentinel frame, as the calling convention would

	// Leave an extra node live so topLevel's two underflows don't reach nil.
	reset(stack, DefaultSegmentConfig())

	defer func() {
		if recover() == nil {
			t.Fatal("expected topLevel to fault on a non-empty resulting stack")
		}
	}()

	topLevel(stack)
}
