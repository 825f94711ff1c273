package effectrt

import "sync/atomic"

// globalPromptCounter is the process-wide monotonic source of prompt
// identifiers. It is the one genuine piece of global state in effectrt;
// everything else hangs off a MetaStack's top pointer. Prompt 0 is
// reserved for the global (bottom) node installed by withEmptyStack and
// is never handed out by freshPrompt.
var globalPromptCounter int64

// freshPrompt mints a process-unique, strictly increasing prompt. The
// machine is single-threaded, so the atomic add is for documentation of
// intent rather than real contention; it costs nothing to keep correct
// if effectrt is ever embedded in a multi-threaded host.
func freshPrompt() int64 {
	return atomic.AddInt64(&globalPromptCounter, 1)
}
