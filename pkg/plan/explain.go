// Plan rendering for EXPLAIN output and debugging.

package plan

import (
	"fmt"
	"strings"
)

// Explain renders the plan graph rooted at root as an indented tree, one
// node per line with kind, id, output variable, columns, and any
// kind-specific detail. Shared dependencies (a union folding the same
// accumulator twice) are printed once and referenced afterwards.
func Explain(root Node) string {
	var b strings.Builder
	seen := make(map[int64]bool)
	explainNode(&b, root, 0, seen)
	return b.String()
}

func explainNode(b *strings.Builder, n Node, depth int, seen map[int64]bool) {
	indent := strings.Repeat("  ", depth)
	if n == nil {
		fmt.Fprintf(b, "%s- <nil>\n", indent)
		return
	}
	if seen[n.ID()] {
		fmt.Fprintf(b, "%s- %s#%d (shared)\n", indent, n.Kind(), n.ID())
		return
	}
	seen[n.ID()] = true

	fmt.Fprintf(b, "%s- %s#%d outputVar=%s", indent, n.Kind(), n.ID(), n.OutputVar())
	if cols := n.ColNames(); len(cols) > 0 {
		fmt.Fprintf(b, " cols=[%s]", strings.Join(cols, ", "))
	}
	if desc := n.Description(); desc != "" {
		fmt.Fprintf(b, " {%s}", desc)
	}
	b.WriteByte('\n')

	for _, dep := range n.Dependencies() {
		explainNode(b, dep, depth+1, seen)
	}
}
