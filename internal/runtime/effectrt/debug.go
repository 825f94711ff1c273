package effectrt

import (
	"fmt"
	"strings"
)

// DumpString renders stack's live chain top-to-bottom: one line per
// node with its prompt and segment usage. It is a plain fmt-formatted
// report in the style of the region-allocator inspector it was adapted
// from (no longer part of this tree), and exists purely for development-time
// diagnosis of nested-prompt scenarios (S5-style); nothing in the hot
// path calls it.
func (s *MetaStack) DumpString() string {
	var b strings.Builder

	depth := 0

	for node := s.top; node != nil; node = node.rest {
		fmt.Fprintf(&b, "#%d prompt=%d used=%d/%d frames=%d rc=%d\n",
			depth, node.prompt, node.mem.used(), len(node.mem.backing), len(node.mem.frames), node.rc)
		depth++
	}

	return b.String()
}
