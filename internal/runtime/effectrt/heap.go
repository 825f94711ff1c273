package effectrt

import (
	"sync/atomic"
	"unsafe"

	"github.com/orizon-lang/orizon/internal/errors"
)

// Eraser walks a heap object's environment and releases whatever it
// transitively owns. It is supplied by the code generator: it knows the
// static shape of the payload the way a frame's sharer/eraser knows the
// shape of its locals (see FrameHeader).
type Eraser func(env unsafe.Pointer)

// HeapObject is the header+environment block backing a Positive
// constructor's field or a Negative value's captured environment.
//
// rc follows an inverted convention: rc == 0 means exactly one owner, so
// construction needs no increment and the common single-owner drop needs
// no decrement. rc counts additional owners beyond that first one.
// Callers must not erase a HeapObject more times than it was shared plus
// one; doing so is a precondition violation (S4) and is reported as an
// invariant fault rather than silently corrupting memory further.
type HeapObject struct {
	eraser Eraser
	env    []byte
	rc     int64
	freed  bool
}

// NewObject allocates a header+environment block of envSize bytes with
// rc == 0 (one owner, uninitialized payload).
func NewObject(eraser Eraser, envSize int) *HeapObject {
	if envSize < 0 {
		panic(errors.InvalidSize(uintptr(envSize), "effectrt.NewObject"))
	}

	obj := &HeapObject{eraser: eraser}
	if envSize > 0 {
		obj.env = make([]byte, envSize)
	}

	atomic.AddInt64(&runtimeStats.heapObjectsLive, 1)

	return obj
}

// ObjectEnvironment returns a pointer to the start of obj's payload, or
// nil for a null or zero-field object.
func ObjectEnvironment(obj *HeapObject) unsafe.Pointer {
	if obj == nil || len(obj.env) == 0 {
		return nil
	}

	return unsafe.Pointer(&obj.env[0])
}

// ShareObject increments obj's owner count. Null-safe.
func ShareObject(obj *HeapObject) {
	if obj == nil {
		return
	}

	atomic.AddInt64(&obj.rc, 1)
}

// EraseObject drops one owner of obj. When the last owner drops (rc was
// already 0), the eraser runs and the payload is released. Null-safe.
func EraseObject(obj *HeapObject) {
	if obj == nil {
		return
	}

	if obj.freed {
		panic(errors.InvariantViolation("EraseObject", "erase called on an already-freed heap object"))
	}

	rc := atomic.LoadInt64(&obj.rc)
	if rc < 0 {
		panic(errors.NegativeRefCount("heap object", rc))
	}

	if rc == 0 {
		obj.freed = true

		if obj.eraser != nil {
			obj.eraser(ObjectEnvironment(obj))
		}

		obj.env = nil
		atomic.AddInt64(&runtimeStats.heapObjectsFreed, 1)

		return
	}

	atomic.AddInt64(&obj.rc, -1)
}

// RefCount reports obj's current owner-count encoding (0 means sole
// owner), chiefly for tests asserting the rc non-negativity invariant.
func RefCount(obj *HeapObject) int64 {
	if obj == nil {
		return 0
	}

	return atomic.LoadInt64(&obj.rc)
}

// Positive is a variant of a source-local sum type: a tag plus an
// optional heap object for its fields. A nil Obj is valid for a
// zero-field constructor.
type Positive struct {
	Tag int64
	Obj *HeapObject
}

// Negative is a codata value dispatched through a virtual method table;
// VTable is opaque to the runtime and interpreted by generated method
// stubs.
type Negative struct {
	VTable unsafe.Pointer
	Obj    *HeapObject
}

// SharePositive shares the heap object backing a Positive value.
func SharePositive(v Positive) { ShareObject(v.Obj) }

// ErasePositive erases the heap object backing a Positive value.
func ErasePositive(v Positive) { EraseObject(v.Obj) }

// ShareNegative shares the heap object backing a Negative value's
// environment.
func ShareNegative(v Negative) { ShareObject(v.Obj) }

// EraseNegative erases the heap object backing a Negative value's
// environment.
func EraseNegative(v Negative) { EraseObject(v.Obj) }
