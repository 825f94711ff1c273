package effectrt

import (
	"fmt"
	"os"
)

// Fault reports an unrecoverable RTS error and terminates the process.
// Every invariant violation this package can detect (negative refcount,
// prompt not found, dangling reference, segment exhaustion) is fatal per
// the error taxonomy: the runtime never attempts to recover from one,
// since recovering would mean continuing to execute a meta-stack whose
// invariants are already broken.
//
// Call sites in this package raise these conditions with panic(err)
// rather than calling Fault directly, so a host embedding effectrt (the
// test suite, the demo command) can choose to recover and report instead
// of exiting the process outright. A host that wants a fault to end the
// process calls Fault from its top-level recover handler;
// cmd/orizon-effect-demo installs no such handler, so a fault there
// surfaces as an ordinary Go panic.
func Fault(err error) {
	fmt.Fprintf(os.Stderr, "effectrt: fatal: %v\n", err)
	os.Exit(1)
}
