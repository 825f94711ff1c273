package effectrt

import "testing"

func TestShareEraseFramesWalkTopDown(t *testing.T) {
	seg := newMemory(SegmentConfig{InitialSize: 256})
	defer seg.free()

	var order []int

	for i := 0; i < 3; i++ {
		idx := i
		seg.frames = append(seg.frames, frameEntry{
			header: FrameHeader{
				Sharer: func(locals []byte) { order = append(order, idx) },
			},
			base:       seg.stackAllocate(8),
			localsSize: 8,
		})
	}

	shareFrames(seg)

	want := []int{2, 1, 0}
	if len(order) != len(want) {
		t.Fatalf("expected %d sharer invocations, got %d", len(want), len(order))
	}

	for i, v := range want {
		if order[i] != v {
			t.Fatalf("expected top-down walk order %v, got %v", want, order)
		}
	}
}

// TestFrameWalkTotality is property 7: a segment with a large number of
// frames must still have its sharer/eraser walk terminate, and every
// frame must be visited exactly once.
func TestFrameWalkTotality(t *testing.T) {
	seg := newMemory(SegmentConfig{InitialSize: 1 << 20})
	defer seg.free()

	const n = 10000

	visited := 0

	for i := 0; i < n; i++ {
		seg.frames = append(seg.frames, frameEntry{
			header:     FrameHeader{Eraser: func(locals []byte) { visited++ }},
			base:       seg.stackAllocate(8),
			localsSize: 8,
		})
	}

	eraseFrames(seg)

	if visited != n {
		t.Fatalf("expected every one of %d frames visited, got %d", n, visited)
	}
}

func TestPushPopFrame(t *testing.T) {
	stack := &MetaStack{top: &StackValue{mem: newMemory(DefaultSegmentConfig())}}
	defer stack.top.mem.free()

	pushFrame(stack, FrameHeader{}, 16)

	if stack.top.mem.used() != 16 {
		t.Fatalf("expected 16 used bytes after push, got %d", stack.top.mem.used())
	}

	_, ok := popFrame(stack)
	if !ok {
		t.Fatal("expected popFrame to find the pushed frame")
	}

	if stack.top.mem.used() != 0 {
		t.Fatalf("expected 0 used bytes after pop, got %d", stack.top.mem.used())
	}

	if _, ok := popFrame(stack); ok {
		t.Fatal("expected popFrame on an empty segment to report false")
	}
}
