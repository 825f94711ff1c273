// Package main narrates a handful of effectrt scenarios end to end:
// installing a prompt, shifting out of it, resuming a captured
// continuation once and twice, nesting prompts, and exiting cleanly.
package main

import (
	"fmt"

	"github.com/orizon-lang/orizon/internal/runtime/effectrt"
)

func main() {
	fmt.Println("Orizon effect runtime demo")
	fmt.Println("==========================")

	demoIdentityShift()
	demoMultiShot()
	demoNestedPrompts()
	demoCleanExit()

	fmt.Printf("\nfinal stats: %+v\n", effectrt.Stats())
}

// demoIdentityShift installs a prompt and immediately shifts it: the
// captured prefix is exactly the node reset pushed, and resuming it
// restores the structure.
func demoIdentityShift() {
	fmt.Println("\n1. identity shift")

	prog := func(evidence int64, stack *effectrt.MetaStack) {
		effectrt.Reset(stack, effectrt.DefaultSegmentConfig())

		prefix := effectrt.Shift(stack, effectrt.CurrentPrompt(stack))
		fmt.Println("   captured the reset frame, stack unwound beneath it")

		effectrt.Resume(prefix, stack)
		fmt.Println("   resumed: structure restored")

		effectrt.Underflow(stack)
		effectrt.ReturnToTopLevel(stack)
	}

	effectrt.Run(prog, effectrt.DefaultSegmentConfig())
}

// demoMultiShot captures a continuation, shares it, and resumes it
// twice: a write made by the first resumption is invisible to the
// second, which observes the pre-capture value.
func demoMultiShot() {
	fmt.Println("\n2. multi-shot independence")

	prog := func(evidence int64, stack *effectrt.MetaStack) {
		effectrt.Reset(stack, effectrt.DefaultSegmentConfig())
		p := effectrt.CurrentPrompt(stack)

		ref := effectrt.AllocateReference(stack)
		effectrt.WriteInt64(ref, stack, 1)

		k := effectrt.Shift(stack, p)
		effectrt.ShareStack(k)

		first := effectrt.Resume(k, stack)
		effectrt.WriteInt64(ref, first, 2)
		fmt.Printf("   first resumption wrote 2, reads back %d\n", effectrt.ReadInt64(ref, first))

		second := effectrt.Resume(k, first)
		fmt.Printf("   second resumption still reads %d\n", effectrt.ReadInt64(ref, second))

		effectrt.Underflow(second) // k
		effectrt.Underflow(second) // the clone first resumed into
		effectrt.ReturnToTopLevel(second)
	}

	effectrt.Run(prog, effectrt.DefaultSegmentConfig())
}

// demoNestedPrompts shifts to the outer of two nested prompts,
// detaching both segments in one capture, and shows that a reference
// bound to the inner prompt still resolves once both are resumed.
func demoNestedPrompts() {
	fmt.Println("\n3. nested prompts")

	prog := func(evidence int64, stack *effectrt.MetaStack) {
		effectrt.Reset(stack, effectrt.DefaultSegmentConfig())
		outer := effectrt.CurrentPrompt(stack)

		effectrt.Reset(stack, effectrt.DefaultSegmentConfig())

		ref := effectrt.AllocateReference(stack)
		effectrt.WriteInt64(ref, stack, 7)

		prefix := effectrt.Shift(stack, outer)
		fmt.Println("   captured both the inner and outer frames")

		resumed := effectrt.Resume(prefix, stack)
		fmt.Printf("   resumed: inner reference still reads %d\n", effectrt.ReadInt64(ref, resumed))

		effectrt.Underflow(resumed) // inner node
		effectrt.Underflow(resumed) // outer node
		effectrt.ReturnToTopLevel(resumed)
	}

	effectrt.Run(prog, effectrt.DefaultSegmentConfig())
}

// demoCleanExit runs a program that does nothing but return through
// the sentinel frame, and reports the empty meta-stack topLevel leaves
// behind.
func demoCleanExit() {
	fmt.Println("\n4. clean exit")

	effectrt.Run(func(evidence int64, stack *effectrt.MetaStack) {
		effectrt.ReturnToTopLevel(stack)
	}, effectrt.DefaultSegmentConfig())

	fmt.Println("   program returned through the sentinel frame with no live nodes left")
}
