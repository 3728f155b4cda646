// Fixed expression shapes used while assembling path fragments. All of
// these are pure constructors parameterized by column names; they hold no
// shared state.

package planner

import (
	"github.com/whitewum/nebula-graph/pkg/expression"
)

// Reserved column names in expansion datasets. The fetch projection always
// carries the four positional edge keys ahead of the schema fields; every
// assembled fragment exposes a single "path" column so all hop counts
// union into a uniform schema.
const (
	colVid  = "_vid"
	colSrc  = "_src"
	colType = "_type"
	colRank = "_rank"
	colDst  = "_dst"
	colPath = "path"
)

// buildPathExpr assembles a one-hop path value from the vertex and edge
// produced by the enclosing fetch stage.
func buildPathExpr() expression.Expression {
	return expression.NewPathBuild(expression.NewVertex(), expression.NewEdge())
}

// buildVertexPathExpr assembles a zero-hop path value: the vertex alone.
func buildVertexPathExpr() expression.Expression {
	return expression.NewPathBuild(expression.NewVertex())
}

// mergePathColumnsExpr concatenates two path columns into one longer path.
func mergePathColumnsExpr(lcol, rcol string) expression.Expression {
	return expression.NewPathBuild(
		expression.NewInputProperty(lcol),
		expression.NewInputProperty(rcol),
	)
}

// pathDstVidExpr yields the destination vertex id of the last edge in a
// path column, i.e. the frontier for the next hop.
func pathDstVidExpr(col string) expression.Expression {
	return expression.NewFunctionCall("none_direct_dst", expression.NewInputProperty(col))
}

// pathSrcVidExpr yields the source vertex id of the first edge in a path
// column.
func pathSrcVidExpr(col string) expression.Expression {
	return expression.NewFunctionCall("none_direct_src", expression.NewInputProperty(col))
}

// hasSameEdgeFilterExpr rejects paths in which any edge appears twice.
// Vertices may repeat; only edge uniqueness is enforced.
func hasSameEdgeFilterExpr(col string) expression.Expression {
	return expression.NewNot(
		expression.NewFunctionCall("hasSameEdgeInPath", expression.NewInputProperty(col)),
	)
}

// pathLengthAtLeastExpr compares the number of relationships in a path
// column against a minimum hop count.
func pathLengthAtLeastExpr(col string, minHop int) expression.Expression {
	return expression.NewRelational(
		expression.OpGE,
		expression.NewFunctionCall("length",
			expression.NewFunctionCall("relationships", expression.NewInputProperty(col))),
		expression.NewConstant(int64(minHop)),
	)
}
