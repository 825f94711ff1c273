// Package effectrt is the runtime substrate for Orizon's compiled
// effect-handler backend: a segmented meta-stack of activation records,
// a reference-counted value heap, and a prompt-indexed arena system,
// integrated so that capturing a delimited continuation detaches its
// stack segments, and resuming a shared capture deep-copies those
// segments and their arenas and adjusts every reachable refcount in one
// atomic-feeling step.
//
// The package has no dependency on Orizon's parser, type checker, or
// lifting passes (those live upstream and emit the activation-record
// layout and calling convention this package specifies). effectrt is
// linked into their generated output; it never reads source text.
package effectrt
