// Concrete query plan nodes. Constructors allocate into the Context arena
// and wire dependency references; schema (column names) is set by the
// planner once the node's role in the fragment is known.

package plan

import (
	"fmt"
	"strings"

	"github.com/whitewum/nebula-graph/pkg/expression"
)

// VertexProp selects which properties of a tag a fetch stage returns.
type VertexProp struct {
	TagID int64
	Props []string
}

// EdgeProp selects which properties of an edge type a neighbor fetch
// returns. A negative Type addresses the reversed direction of the edge.
type EdgeProp struct {
	Type  int64
	Props []string
}

// Start is the inert entry node a plan hangs from when there is no
// upstream fragment to splice into.
type Start struct {
	baseNode
}

// NewStart allocates a start node.
func NewStart(ctx *Context) *Start {
	n := &Start{baseNode: newBaseNode(KindStart)}
	ctx.register(n)
	return n
}

// GetVertices fetches vertices by id from storage.
type GetVertices struct {
	baseNode
	spaceID int64
	src     expression.Expression
}

// NewGetVertices allocates a vertex fetch reading its ids from input.
func NewGetVertices(ctx *Context, input Node, spaceID int64) *GetVertices {
	n := &GetVertices{baseNode: newBaseNode(KindGetVertices, input), spaceID: spaceID}
	ctx.register(n)
	return n
}

func (n *GetVertices) SpaceID() int64 { return n.spaceID }
func (n *GetVertices) Src() expression.Expression { return n.src }
func (n *GetVertices) SetSrc(src expression.Expression) {
	n.src = src
}

// Description implements Node.
func (n *GetVertices) Description() string {
	if n.src == nil {
		return fmt.Sprintf("space=%d", n.spaceID)
	}
	return fmt.Sprintf("space=%d, src=%s", n.spaceID, n.src)
}

// GetNeighbors fetches the one-hop neighborhood of a set of vertex ids.
// The edge-prop specifications decide which edge types and directions the
// storage layer returns.
type GetNeighbors struct {
	baseNode
	spaceID     int64
	src         expression.Expression
	vertexProps []VertexProp
	edgeProps   []EdgeProp
	direction   Direction
}

// NewGetNeighbors allocates a neighbor fetch reading its frontier from
// input.
func NewGetNeighbors(ctx *Context, input Node, spaceID int64) *GetNeighbors {
	n := &GetNeighbors{baseNode: newBaseNode(KindGetNeighbors, input), spaceID: spaceID}
	ctx.register(n)
	return n
}

func (n *GetNeighbors) SpaceID() int64 { return n.spaceID }
func (n *GetNeighbors) Src() expression.Expression { return n.src }
func (n *GetNeighbors) SetSrc(src expression.Expression)     { n.src = src }
func (n *GetNeighbors) VertexProps() []VertexProp { return n.vertexProps }
func (n *GetNeighbors) SetVertexProps(props []VertexProp)    { n.vertexProps = props }
func (n *GetNeighbors) EdgeProps() []EdgeProp { return n.edgeProps }
func (n *GetNeighbors) SetEdgeProps(props []EdgeProp)        { n.edgeProps = props }
func (n *GetNeighbors) EdgeDirection() Direction { return n.direction }
func (n *GetNeighbors) SetEdgeDirection(direction Direction) { n.direction = direction }

// Description implements Node.
func (n *GetNeighbors) Description() string {
	types := make([]string, len(n.edgeProps))
	for i, ep := range n.edgeProps {
		types[i] = fmt.Sprintf("%d", ep.Type)
	}
	return fmt.Sprintf("space=%d, direction=%s, edgeTypes=[%s]",
		n.spaceID, n.direction, strings.Join(types, ", "))
}

// Filter drops rows for which the condition does not hold.
type Filter struct {
	baseNode
	condition expression.Expression
}

// NewFilter allocates a filter over input with the given condition.
func NewFilter(ctx *Context, input Node, condition expression.Expression) *Filter {
	n := &Filter{baseNode: newBaseNode(KindFilter, input), condition: condition}
	ctx.register(n)
	return n
}

func (n *Filter) Condition() expression.Expression { return n.condition }

// Description implements Node.
func (n *Filter) Description() string {
	if n.condition == nil {
		return ""
	}
	return "condition=" + n.condition.String()
}

// Column is one projected output column.
type Column struct {
	Expr  expression.Expression
	Alias string
}

// Project evaluates a column list against each input row.
type Project struct {
	baseNode
	columns []Column
}

// NewProject allocates a projection of columns over input.
func NewProject(ctx *Context, input Node, columns []Column) *Project {
	n := &Project{baseNode: newBaseNode(KindProject, input), columns: columns}
	ctx.register(n)
	return n
}

func (n *Project) Columns() []Column { return n.columns }

// Description implements Node.
func (n *Project) Description() string {
	parts := make([]string, len(n.columns))
	for i, c := range n.columns {
		if c.Alias != "" {
			parts[i] = c.Expr.String() + " AS " + c.Alias
		} else {
			parts[i] = c.Expr.String()
		}
	}
	return "columns=[" + strings.Join(parts, ", ") + "]"
}

// Dedup removes duplicate rows from its input.
type Dedup struct {
	baseNode
}

// NewDedup allocates a row deduplication over input.
func NewDedup(ctx *Context, input Node) *Dedup {
	n := &Dedup{baseNode: newBaseNode(KindDedup, input)}
	ctx.register(n)
	return n
}

// Union concatenates the result sets of its two inputs. Both inputs must
// produce the same column names.
type Union struct {
	baseNode
}

// NewUnion allocates a union of left and right.
func NewUnion(ctx *Context, left, right Node) *Union {
	n := &Union{baseNode: newBaseNode(KindUnion, left, right)}
	ctx.register(n)
	return n
}

func (n *Union) Left() Node { return n.deps[0] }
func (n *Union) Right() Node { return n.deps[1] }

// InnerJoin joins the result sets of two runtime variables on equal key
// values.
type InnerJoin struct {
	baseNode
	leftVar   string
	rightVar  string
	hashKeys  []expression.Expression
	probeKeys []expression.Expression
}

// NewInnerJoin allocates an inner join of left and right, keyed on
// hashKeys (evaluated against left rows) and probeKeys (against right
// rows).
func NewInnerJoin(ctx *Context, left, right Node, hashKeys, probeKeys []expression.Expression) *InnerJoin {
	n := &InnerJoin{
		baseNode:  newBaseNode(KindInnerJoin, left, right),
		hashKeys:  hashKeys,
		probeKeys: probeKeys,
	}
	ctx.register(n)
	n.leftVar = left.OutputVar()
	n.rightVar = right.OutputVar()
	return n
}

func (n *InnerJoin) Left() Node { return n.deps[0] }
func (n *InnerJoin) Right() Node { return n.deps[1] }
func (n *InnerJoin) LeftVar() string { return n.leftVar }
func (n *InnerJoin) RightVar() string { return n.rightVar }
func (n *InnerJoin) HashKeys() []expression.Expression { return n.hashKeys }
func (n *InnerJoin) ProbeKeys() []expression.Expression { return n.probeKeys }

// Description implements Node.
func (n *InnerJoin) Description() string {
	hash := make([]string, len(n.hashKeys))
	for i, k := range n.hashKeys {
		hash[i] = k.String()
	}
	probe := make([]string, len(n.probeKeys))
	for i, k := range n.probeKeys {
		probe[i] = k.String()
	}
	return fmt.Sprintf("hashKeys=[%s], probeKeys=[%s]",
		strings.Join(hash, ", "), strings.Join(probe, ", "))
}

// PassThrough forwards its input unchanged. It exists to give a fragment a
// stable output-variable name, typically as the accumulator of an
// expansion loop.
type PassThrough struct {
	baseNode
}

// NewPassThrough allocates a pass-through over input.
func NewPassThrough(ctx *Context, input Node) *PassThrough {
	n := &PassThrough{baseNode: newBaseNode(KindPassThrough, input)}
	ctx.register(n)
	return n
}
