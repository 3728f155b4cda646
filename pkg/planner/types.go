// Package planner compiles bounded-length relationship patterns into
// executable plan subgraphs: fetch, filter, projection, join, and union
// nodes wired so a separate runtime can walk the graph hop by hop.
//
// Inputs arrive from the pattern resolver fully parsed: edge-type ids
// already looked up, filter expressions in label/label-attribute form.
// The compiler never touches live data.
package planner

import (
	"errors"

	"github.com/whitewum/nebula-graph/pkg/expression"
	"github.com/whitewum/nebula-graph/pkg/plan"
)

// ErrInvalidPattern reports a pattern fragment the compiler cannot plan:
// an empty edge-type set, a malformed hop range, or a range beyond the
// configured traversal cap. These are upstream validation gaps, so the
// compile aborts rather than producing a partial plan.
var ErrInvalidPattern = errors.New("invalid relationship pattern")

// StepRange bounds a variable-length pattern to [Min, Max] hops,
// inclusive on both ends.
type StepRange struct {
	Min int
	Max int
}

// EdgeInfo describes one relationship element of a pattern: which edge
// types to follow, in which direction, over how many hops, and an
// optional filter over edge attributes. A nil Range means exactly one
// hop.
type EdgeInfo struct {
	Direction plan.Direction
	EdgeTypes []int64
	Range     *StepRange
	Filter    expression.Expression
}

// NodeInfo describes the anchor vertex of a pattern element: an optional
// filter over vertex attributes, applied to the frontier of the first
// hop only.
type NodeInfo struct {
	Filter expression.Expression
}
