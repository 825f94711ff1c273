//go:build unix

package effectrt

import (
	"golang.org/x/sys/unix"
)

// allocSegmentMemory reserves an anonymous, private mapping for a stack
// segment, the technique the region allocator this package was adapted
// from (no longer part of this tree) only mentioned in a comment and
// never wired up. Falling back to a plain byte slice would work too, but
// mmap keeps segment reservations off the Go heap the same way the
// generated code's own stacks are meant to be off the native call stack.
func allocSegmentMemory(size uintptr) []byte {
	if size == 0 {
		size = 1
	}

	mem, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		panic(err)
	}

	return mem
}

// freeSegmentMemory releases a mapping obtained from allocSegmentMemory.
func freeSegmentMemory(mem []byte) {
	if len(mem) == 0 {
		return
	}

	_ = unix.Munmap(mem)
}
