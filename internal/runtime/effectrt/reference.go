package effectrt

import "unsafe"

// Reference is a (prompt, offset) handle resolving to a mutable cell.
// The two 32-bit fields pack into a single 64-bit word per the
// bit-level layout the code generator depends on; Pack/Unpack expose
// that representation directly for generated code that wants the raw
// word instead of the struct.
type Reference struct {
	Prompt int32
	Offset int32
}

// Pack encodes r as the 64-bit word the code generator's calling
// convention carries references as: prompt in the high 32 bits, offset
// in the low 32 bits.
func (r Reference) Pack() uint64 {
	return uint64(uint32(r.Prompt))<<32 | uint64(uint32(r.Offset))
}

// UnpackReference decodes a 64-bit word produced by Reference.Pack.
func UnpackReference(word uint64) Reference {
	return Reference{
		Prompt: int32(uint32(word >> 32)),
		Offset: int32(uint32(word)),
	}
}

// newReference allocates a size-byte cell at the top of stack's current
// prompt region (its segment under ArenaBackendOverlay, its separate
// arena under ArenaBackendSeparate) and returns a handle to it. The
// cell's initial contents are zero.
func newReference(stack *MetaStack, size uintptr) Reference {
	region := stack.top.regionFor()
	base := region.stackAllocate(size)
	clear(region.backing[base : base+size])

	return Reference{Prompt: int32(stack.top.prompt), Offset: int32(base)}
}

// getVarPointer resolves ref against stack's live meta-stack: it walks
// from the top until it finds the node bearing ref.Prompt, then returns
// a pointer to that node's cell at ref.Offset. A reference is
// dereferenceable exactly while some meta-stack node bears its prompt;
// once that node is freed, resolution faults as a dangling reference.
func getVarPointer(ref Reference, stack *MetaStack) unsafe.Pointer {
	node := findPrompt(stack, int64(ref.Prompt))
	if node == nil {
		dangling(int64(ref.Prompt), ref.Offset)
	}

	cell := node.regionFor().cellPointer(uintptr(ref.Offset))

	return unsafe.Pointer(&cell[0])
}

// AllocateReference reserves an 8-byte cell and returns its reference,
// the common case for a single scalar or pointer-sized local.
func AllocateReference(stack *MetaStack) Reference {
	return newReference(stack, 8)
}

// ReadInt64 reads an 8-byte cell as an int64.
func ReadInt64(ref Reference, stack *MetaStack) int64 {
	ptr := (*int64)(getVarPointer(ref, stack))
	return *ptr
}

// WriteInt64 writes v into an 8-byte cell.
func WriteInt64(ref Reference, stack *MetaStack, v int64) {
	ptr := (*int64)(getVarPointer(ref, stack))
	*ptr = v
}
