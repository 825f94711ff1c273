package effectrt

// This file is the package's public surface for callers outside
// effectrt: chiefly generated code, but also the demo command and
// anything else driving the runtime from another package. The
// lower-case functions it wraps stay unexported because the package's
// own tests construct MetaStack/StackValue values directly and call
// them without qualification; these wrappers are a thin, allocation-free
// pass-through, not a second implementation.

// Reset installs a fresh prompt boundary on stack using the overlay
// arena backend and returns stack.
func Reset(stack *MetaStack, cfg SegmentConfig) *MetaStack {
	return reset(stack, cfg)
}

// ResetWithArena is Reset generalized over the arena backend.
func ResetWithArena(stack *MetaStack, cfg SegmentConfig, arenaCfg ArenaConfig) *MetaStack {
	return resetWithArena(stack, cfg, arenaCfg)
}

// Underflow frees stack's top segment and installs its predecessor as
// the new top.
func Underflow(stack *MetaStack) *MetaStack {
	return underflowStack(stack)
}

// Shift captures stack's prefix up to and including the node bearing
// prompt, detaching it from the live meta-stack.
func Shift(stack *MetaStack, prompt int64) *StackValue {
	return shift(stack, prompt)
}

// Resume splices a captured prefix back atop stack.
func Resume(prefix *StackValue, stack *MetaStack) *MetaStack {
	return resume(prefix, stack)
}

// ShareStack increments a captured prefix's owner count.
func ShareStack(s *StackValue) {
	shareStack(s)
}

// EraseStack drops one owner of a captured prefix.
func EraseStack(s *StackValue) {
	eraseStack(s)
}

// CurrentPrompt reads stack's top prompt.
func CurrentPrompt(stack *MetaStack) int64 {
	return currentPrompt(stack)
}

// PushFrame reserves a frame's locals and records its header.
func PushFrame(stack *MetaStack, header FrameHeader, localsSize uintptr) {
	pushFrame(stack, header, localsSize)
}

// PopFrame removes stack's topmost frame and returns its header.
func PopFrame(stack *MetaStack) (FrameHeader, bool) {
	return popFrame(stack)
}

// Run builds an empty meta-stack and tail-calls f with evidence 0.
func Run(f Program, cfg SegmentConfig) {
	run(f, cfg)
}

// RunInt is Run for an entry point taking one scalar argument.
func RunInt(f ProgramInt, x int64, cfg SegmentConfig) {
	run_Int(f, x, cfg)
}

// RunPos is Run for an entry point taking one Positive argument.
func RunPos(f ProgramPos, x Positive, cfg SegmentConfig) {
	run_Pos(f, x, cfg)
}

// ReturnToTopLevel pops stack's current frame and tail-calls its return
// address, the same discipline generated code follows on a normal
// return. A caller with no frame left to pop is a no-op.
func ReturnToTopLevel(stack *MetaStack) {
	header, ok := popFrame(stack)
	if ok {
		header.Return(stack)
	}
}
