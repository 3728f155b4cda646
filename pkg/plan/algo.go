// Algorithmic plan nodes. These are descriptors only: the planner creates
// one when a pattern calls for a whole-path strategy, a later stage wires
// it downstream of the expansion subplan, and the matching runtime
// executor implements the algorithm. No traversal runs at compile time.

package plan

import (
	"fmt"
	"strings"
)

// ProduceSemiShortestPath asks the runtime for single-source shortest
// path halves, later conjuncted with the opposite search front.
type ProduceSemiShortestPath struct {
	baseNode
}

// NewProduceSemiShortestPath allocates a semi-shortest-path descriptor.
func NewProduceSemiShortestPath(ctx *Context, input Node) *ProduceSemiShortestPath {
	n := &ProduceSemiShortestPath{baseNode: newBaseNode(KindProduceSemiShortestPath, input)}
	ctx.register(n)
	return n
}

// BFSShortestPath asks the runtime for an unweighted shortest path by
// breadth-first search.
type BFSShortestPath struct {
	baseNode
}

// NewBFSShortestPath allocates a BFS shortest-path descriptor.
func NewBFSShortestPath(ctx *Context, input Node) *BFSShortestPath {
	n := &BFSShortestPath{baseNode: newBaseNode(KindBFSShortestPath, input)}
	ctx.register(n)
	return n
}

// PathStrategy tags how a ConjunctPath combines its two search fronts.
type PathStrategy int

const (
	StrategyBiBFS PathStrategy = iota
	StrategyBiDijkstra
	StrategyFloyd
	StrategyAllPaths
)

// String returns the strategy's display name.
func (s PathStrategy) String() string {
	switch s {
	case StrategyBiBFS:
		return "BiBFS"
	case StrategyBiDijkstra:
		return "BiDijkstra"
	case StrategyFloyd:
		return "Floyd"
	case StrategyAllPaths:
		return "AllPaths"
	default:
		return fmt.Sprintf("PathStrategy(%d)", int(s))
	}
}

// ConjunctPath stitches two independently expanded search fronts (for
// example forward from source and backward from destination) into whole
// paths.
type ConjunctPath struct {
	baseNode
	strategy       PathStrategy
	steps          int
	conditionalVar string
	noLoop         bool
}

// NewConjunctPath allocates a conjunct-path descriptor over the left and
// right search fronts, bounded by steps.
func NewConjunctPath(ctx *Context, left, right Node, strategy PathStrategy, steps int) *ConjunctPath {
	n := &ConjunctPath{
		baseNode: newBaseNode(KindConjunctPath, left, right),
		strategy: strategy,
		steps:    steps,
	}
	ctx.register(n)
	return n
}

func (n *ConjunctPath) Left() Node { return n.deps[0] }
func (n *ConjunctPath) Right() Node { return n.deps[1] }
func (n *ConjunctPath) Strategy() PathStrategy { return n.strategy }
func (n *ConjunctPath) Steps() int { return n.steps }

// ConditionalVar names the runtime variable the executor consults to
// decide whether another round is needed.
func (n *ConjunctPath) ConditionalVar() string { return n.conditionalVar }

// SetConditionalVar sets the round-control variable name. Only valid
// before the node is finalized into a plan.
func (n *ConjunctPath) SetConditionalVar(name string) { n.conditionalVar = name }

func (n *ConjunctPath) NoLoop() bool { return n.noLoop }

// SetNoLoop toggles loop avoidance. Only valid before finalization.
func (n *ConjunctPath) SetNoLoop(noLoop bool) { n.noLoop = noLoop }

// Description implements Node.
func (n *ConjunctPath) Description() string {
	return fmt.Sprintf("strategy=%s, steps=%d, noLoop=%t", n.strategy, n.steps, n.noLoop)
}

// ProduceAllPaths asks the runtime to enumerate every path between the
// search fronts.
type ProduceAllPaths struct {
	baseNode
	noLoop bool
}

// NewProduceAllPaths allocates an all-paths descriptor.
func NewProduceAllPaths(ctx *Context, input Node) *ProduceAllPaths {
	n := &ProduceAllPaths{baseNode: newBaseNode(KindProduceAllPaths, input)}
	ctx.register(n)
	return n
}

func (n *ProduceAllPaths) NoLoop() bool { return n.noLoop }

// SetNoLoop toggles loop avoidance. Only valid before finalization.
func (n *ProduceAllPaths) SetNoLoop(noLoop bool) { n.noLoop = noLoop }

// Description implements Node.
func (n *ProduceAllPaths) Description() string {
	return fmt.Sprintf("noLoop=%t", n.noLoop)
}

// CartesianProduct crosses the result sets of several pattern branches.
// Input variables are appended as branches are planned; the node keeps
// each branch's column list so a later stage can reconcile the combined
// schema.
type CartesianProduct struct {
	baseNode
	inputVars   []string
	allColNames [][]string
}

// NewCartesianProduct allocates a cartesian-product descriptor.
func NewCartesianProduct(ctx *Context, input Node) *CartesianProduct {
	n := &CartesianProduct{baseNode: newBaseNode(KindCartesianProduct, input)}
	ctx.register(n)
	return n
}

// AddVar appends one branch's runtime variable. The variable must be
// non-empty and must already carry registered column names.
func (n *CartesianProduct) AddVar(varName string) error {
	if varName == "" {
		return fmt.Errorf("cartesian product input variable must not be empty")
	}
	cols, ok := n.ctx.ColNamesOf(varName)
	if !ok {
		return fmt.Errorf("cartesian product input variable %q has no registered columns", varName)
	}
	n.inputVars = append(n.inputVars, varName)
	n.allColNames = append(n.allColNames, cols)
	return nil
}

func (n *CartesianProduct) InputVars() []string { return n.inputVars }
func (n *CartesianProduct) AllColNames() [][]string { return n.allColNames }

// Description implements Node.
func (n *CartesianProduct) Description() string {
	return "inputVars=[" + strings.Join(n.inputVars, ", ") + "]"
}
