// Package plan defines the dataflow plan graph produced by query
// compilation: a per-query arena that owns every node and expression, the
// node kinds the runtime knows how to execute, and the SubPlan fragments
// the planner splices together.
//
// Nodes reference their dependencies by identity; the arena (Context) owns
// all lifetime. Nothing is ever freed individually; when a compile is
// abandoned the whole context is dropped.
package plan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/whitewum/nebula-graph/pkg/expression"
)

// Kind identifies what a plan node does at runtime.
type Kind int

const (
	KindUnknown Kind = iota
	KindStart
	KindGetVertices
	KindGetNeighbors
	KindFilter
	KindProject
	KindDedup
	KindUnion
	KindInnerJoin
	KindPassThrough
	KindProduceSemiShortestPath
	KindBFSShortestPath
	KindConjunctPath
	KindProduceAllPaths
	KindCartesianProduct
)

// String returns the node kind's display name.
func (k Kind) String() string {
	switch k {
	case KindStart:
		return "Start"
	case KindGetVertices:
		return "GetVertices"
	case KindGetNeighbors:
		return "GetNeighbors"
	case KindFilter:
		return "Filter"
	case KindProject:
		return "Project"
	case KindDedup:
		return "Dedup"
	case KindUnion:
		return "Union"
	case KindInnerJoin:
		return "InnerJoin"
	case KindPassThrough:
		return "PassThrough"
	case KindProduceSemiShortestPath:
		return "ProduceSemiShortestPath"
	case KindBFSShortestPath:
		return "BFSShortestPath"
	case KindConjunctPath:
		return "ConjunctPath"
	case KindProduceAllPaths:
		return "ProduceAllPaths"
	case KindCartesianProduct:
		return "CartesianProduct"
	default:
		return "Unknown"
	}
}

// Direction selects which edges a traversal step follows.
type Direction int

const (
	DirectionOut Direction = iota
	DirectionIn
	DirectionBoth
)

// String returns the direction's display name.
func (d Direction) String() string {
	switch d {
	case DirectionOut:
		return "outgoing"
	case DirectionIn:
		return "incoming"
	case DirectionBoth:
		return "both"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Node is a single operator in the plan graph. A node is immutable once
// another node depends on it, except for the output-variable alias set
// during pass-through wiring.
type Node interface {
	ID() int64
	Kind() Kind
	OutputVar() string
	SetOutputVar(name string)
	InputVar() string
	SetInputVar(name string)
	ColNames() []string
	SetColNames(names []string)
	Dependencies() []Node
	// Description returns kind-specific detail for plan rendering; it may
	// be empty.
	Description() string
}

// Context is the per-query arena. It owns every node and finalized
// expression created during one compile and assigns their identities.
// A Context is not safe for concurrent use; each compile gets its own.
type Context struct {
	queryID   string
	varSuffix string
	nodes     []Node
	exprs     []expression.Expression
	nextID    int64
	symbols   map[string][]string
}

// NewContext returns an empty arena for one query compile.
func NewContext() *Context {
	id := uuid.NewString()
	return &Context{
		queryID:   id,
		varSuffix: id[:8],
		symbols:   make(map[string][]string),
	}
}

// QueryID returns the uuid assigned to this compile. Generated runtime
// variable names carry a prefix of it so two plans never collide in a
// shared runtime variable table.
func (c *Context) QueryID() string { return c.queryID }

// Save moves an expression into arena ownership and returns it, so
// creation sites can chain the call.
func (c *Context) Save(expr expression.Expression) expression.Expression {
	c.exprs = append(c.exprs, expr)
	return expr
}

// NodeCount reports how many nodes have been allocated so far.
func (c *Context) NodeCount() int { return len(c.nodes) }

// ColNamesOf returns the column names registered for a runtime variable.
func (c *Context) ColNamesOf(varName string) ([]string, bool) {
	cols, ok := c.symbols[varName]
	return cols, ok
}

func (c *Context) register(n Node) {
	n.(interface{ attach(*Context, int64) }).attach(c, c.nextID)
	c.nextID++
	c.nodes = append(c.nodes, n)
}

func (c *Context) registerVariable(name string, colNames []string) {
	if name == "" {
		return
	}
	c.symbols[name] = colNames
}

// SubPlan identifies the entry (Root) and exit (Tail) of a plan fragment.
// Tail is reachable from Root over dependency edges, or they are the same
// node for single-node fragments.
type SubPlan struct {
	Root Node
	Tail Node
}

// baseNode carries the state shared by every plan node.
type baseNode struct {
	ctx       *Context
	id        int64
	kind      Kind
	outputVar string
	inputVar  string
	colNames  []string
	deps      []Node
}

func newBaseNode(kind Kind, deps ...Node) baseNode {
	return baseNode{kind: kind, deps: deps}
}

// attach is called exactly once by Context.register.
func (n *baseNode) attach(ctx *Context, id int64) {
	n.ctx = ctx
	n.id = id
	n.outputVar = fmt.Sprintf("__%s_%d_%s", n.kind, id, ctx.varSuffix)
	if len(n.deps) > 0 && n.deps[0] != nil {
		n.inputVar = n.deps[0].OutputVar()
	}
}

func (n *baseNode) ID() int64 { return n.id }
func (n *baseNode) Kind() Kind { return n.kind }
func (n *baseNode) OutputVar() string { return n.outputVar }

// SetOutputVar aliases the node's result slot. Pass-through wiring uses
// this to hand an accumulator its upstream variable name.
func (n *baseNode) SetOutputVar(name string) {
	n.outputVar = name
	n.ctx.registerVariable(name, n.colNames)
}

func (n *baseNode) InputVar() string { return n.inputVar }
func (n *baseNode) SetInputVar(name string) { n.inputVar = name }

func (n *baseNode) ColNames() []string { return n.colNames }

// SetColNames fixes the node's output schema and records it in the
// context's symbol table.
func (n *baseNode) SetColNames(names []string) {
	n.colNames = names
	n.ctx.registerVariable(n.outputVar, names)
}

func (n *baseNode) Dependencies() []Node { return n.deps }
func (n *baseNode) Description() string { return "" }
