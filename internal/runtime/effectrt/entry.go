package effectrt

import "github.com/orizon-lang/orizon/internal/errors"

// Program is the shape a compiled entry point takes: the code generator
// emits it as the first vtable slot of a Negative value. evidence is
// always 0 at the top level ("here").
type Program func(evidence int64, stack *MetaStack)

// ProgramInt and ProgramPos are Program's counterparts for an entry
// point that takes a single scalar or Positive argument, matching
// run_Int/run_Pos.
type ProgramInt func(evidence int64, arg int64, stack *MetaStack)
type ProgramPos func(evidence int64, arg Positive, stack *MetaStack)

// sentinelShare and sentinelErase back the bottom-of-segment sentinel
// frame withEmptyStack installs. The equivalent callbacks are documented
// as "should never be called"; effectrt resolves that open question by
// making a call into them a hard fault rather than a silent no-op (see
// DESIGN.md, "Open Question decisions", #2). A call here means a frame
// walk ran past the last real frame, which is the class of corruption
// that must terminate the process.
func sentinelShare(locals []byte) {
	panic(errors.InvariantViolation("sentinelShare", "top-level sentinel frame should never be shared"))
}

func sentinelErase(locals []byte) {
	panic(errors.InvariantViolation("sentinelErase", "top-level sentinel frame should never be erased"))
}

// withEmptyStack builds the two-node base every program runs on: a
// global node (prompt 0, no parent) and, on top of it, a program node
// under a fresh prompt carrying the sentinel frame. The program node is
// returned as the stack user code pushes its own frames onto.
func withEmptyStack(cfg SegmentConfig) *MetaStack {
	stack := &MetaStack{}

	global := &StackValue{mem: newMemory(cfg), prompt: 0}
	stack.top = global

	reset(stack, cfg)
	pushFrame(stack, FrameHeader{
		Return: topLevel,
		Sharer: sentinelShare,
		Eraser: sentinelErase,
	}, 0)

	return stack
}

// topLevel is installed as the sentinel frame's return address: control
// tail-calls here once the program's last real frame has returned and
// that return has already popped the sentinel frame header itself
// (the generic "pop header, tail-call its return address" discipline
// from §4.2 runs before Return is invoked, not after). topLevel
// underflows the program node and the global node in turn and asserts
// the resulting meta-stack is empty: a clean run leaves no live nodes.
func topLevel(stack *MetaStack) {
	underflowStack(stack) // program node
	underflowStack(stack) // global node

	if stack.top != nil {
		panic(errors.InvariantViolation("topLevel", "expected an empty meta-stack after program exit"))
	}
}

// run builds an empty stack and tail-calls f with evidence 0.
func run(f Program, cfg SegmentConfig) {
	stack := withEmptyStack(cfg)
	f(0, stack)
}

// run_Int is run for an entry point that takes one scalar argument.
func run_Int(f ProgramInt, x int64, cfg SegmentConfig) {
	stack := withEmptyStack(cfg)
	f(0, x, stack)
}

// run_Pos is run for an entry point that takes one Positive argument.
func run_Pos(f ProgramPos, x Positive, cfg SegmentConfig) {
	stack := withEmptyStack(cfg)
	f(0, x, stack)
}
