// Variable-length edge expansion.
//
// A pattern like (v)-[e:T*m..n]-() unrolls into a static plan shape: one
// fetch/filter/project chain per hop, stitched together with inner joins
// keyed on adjacency, folded into a running union of "paths of exactly k
// hops" for every k in range, and post-filtered by minimum path length.
// The maximum is structural: the loop simply never builds a longer
// fragment.

package planner

import (
	"fmt"

	"github.com/whitewum/nebula-graph/pkg/expression"
	"github.com/whitewum/nebula-graph/pkg/plan"
	"github.com/whitewum/nebula-graph/pkg/schema"
)

// defaultMaxSteps caps hop ranges when the caller does not supply a limit
// of its own. Patterns beyond the cap are rejected, never truncated.
const defaultMaxSteps = 100

// Expand compiles one relationship element of a pattern into a plan
// subgraph. An Expand is single-use and bound to one plan context.
type Expand struct {
	ctx         *plan.Context
	catalog     schema.Catalog
	spaceID     int64
	dependency  plan.Node
	inputVar    string
	reversely   bool
	initialExpr expression.Expression
	maxSteps    int
}

// Option configures an Expand.
type Option func(*Expand)

// WithReversely marks the pattern as being expanded backward, from
// destination to source. This inverts the outgoing/incoming edge-type
// mapping; it never affects bidirectional steps.
func WithReversely(reversely bool) Option {
	return func(e *Expand) { e.reversely = reversely }
}

// WithInitialExpr sets the expression extracting the starting vertex ids
// from the dependency's output. It is consumed by the first hop;
// subsequent hops read the frontier from the running path column.
func WithInitialExpr(expr expression.Expression) Option {
	return func(e *Expand) { e.initialExpr = expr }
}

// WithMaxSteps overrides the traversal-step cap, typically from the
// planner configuration.
func WithMaxSteps(maxSteps int) Option {
	return func(e *Expand) { e.maxSteps = maxSteps }
}

// NewExpand returns a compiler for one relationship element. dependency
// is the upstream plan node the expansion splices onto; inputVar names
// the runtime variable it reads.
func NewExpand(ctx *plan.Context, catalog schema.Catalog, spaceID int64,
	dependency plan.Node, inputVar string, opts ...Option) *Expand {
	e := &Expand{
		ctx:        ctx,
		catalog:    catalog,
		spaceID:    spaceID,
		dependency: dependency,
		inputVar:   inputVar,
		maxSteps:   defaultMaxSteps,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DoExpand builds the full expansion subplan for (node)-[edge]-(): the
// unrolled hops, the per-length union, and the minimum-length post
// filter. On error no usable plan is returned; the caller discards the
// context.
func (e *Expand) DoExpand(node *NodeInfo, edge *EdgeInfo) (plan.SubPlan, error) {
	if err := e.validate(edge); err != nil {
		return plan.SubPlan{}, err
	}
	if node == nil {
		node = &NodeInfo{}
	}
	sub, err := e.expandSteps(node, edge)
	if err != nil {
		return plan.SubPlan{}, err
	}
	root := e.filterByPathLength(edge, sub.Root)
	return plan.SubPlan{Root: root, Tail: sub.Tail}, nil
}

func (e *Expand) validate(edge *EdgeInfo) error {
	if e.dependency == nil {
		return fmt.Errorf("%w: expansion requires a dependency node", ErrInvalidPattern)
	}
	if edge == nil || len(edge.EdgeTypes) == 0 {
		return fmt.Errorf("%w: empty edge type set", ErrInvalidPattern)
	}
	if edge.Range == nil {
		return nil
	}
	r := edge.Range
	if r.Min < 0 {
		return fmt.Errorf("%w: negative min hop %d", ErrInvalidPattern, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%w: hop range [%d, %d] is inverted", ErrInvalidPattern, r.Min, r.Max)
	}
	if r.Max > e.maxSteps {
		return fmt.Errorf("%w: max hop %d exceeds traversal cap %d", ErrInvalidPattern, r.Max, e.maxSteps)
	}
	return nil
}

// expandSteps unrolls the hop range. The loop threads an explicit
// (accumulator, unionRoot) pair: the accumulator is the pass-through
// naming the longest fragment built so far, the union root folds every
// per-length fragment into one result.
func (e *Expand) expandSteps(node *NodeInfo, edge *EdgeInfo) (plan.SubPlan, error) {
	minHop, maxHop := 1, 1
	if edge.Range != nil {
		minHop, maxHop = edge.Range.Min, edge.Range.Max
	}

	var sub plan.SubPlan
	var startIndex int
	var err error

	if minHop == 0 {
		// Zero hops: the start vertex is itself a result.
		startIndex = 0
		sub, err = e.appendFetchVertexPlan(node.Filter)
		if err != nil {
			return plan.SubPlan{}, err
		}
		// Longer hops exist, so the zero-hop branch needs a stable
		// variable name to merge under.
		if maxHop > 0 {
			sub.Root = e.passThrough(sub.Root)
		}
	} else {
		startIndex = 1
		sub, err = e.expandStep(edge, e.dependency, e.inputVar, node.Filter)
		if err != nil {
			return plan.SubPlan{}, err
		}
		sub.Root = e.passThrough(sub.Root)
	}

	accumulator := sub.Root
	unionRoot := sub.Root
	for i := startIndex; i < maxHop; i++ {
		// Vertex filters bind to the pattern's anchor only, so later
		// hops expand without one.
		curr, err := e.expandStep(edge, accumulator, accumulator.OutputVar(), nil)
		if err != nil {
			return plan.SubPlan{}, err
		}
		accumulator, unionRoot, err = e.collectData(accumulator, curr.Root, unionRoot)
		if err != nil {
			return plan.SubPlan{}, err
		}
	}
	return plan.SubPlan{Root: unionRoot, Tail: sub.Tail}, nil
}

// expandStep builds the one-hop subplan:
// Project(dst vid) -> Dedup -> GetNeighbors -> [Filter] -> [Filter] -> Project(path).
// The returned tail is the frontier-extraction projector so later stages
// can splice ahead of it.
func (e *Expand) expandStep(edge *EdgeInfo, dep plan.Node, inputVar string,
	nodeFilter expression.Expression) (plan.SubPlan, error) {
	curr := e.extractAndDedupVidColumn(dep, inputVar)

	gn := plan.NewGetNeighbors(e.ctx, curr.Root, e.spaceID)
	gn.SetSrc(e.ctx.Save(expression.NewInputProperty(colVid)))
	// No vertex properties at this stage; the path carries ids until a
	// later stage resolves them.
	gn.SetVertexProps(nil)
	edgeProps, err := e.genEdgeProps(edge)
	if err != nil {
		return plan.SubPlan{}, err
	}
	gn.SetEdgeProps(edgeProps)
	gn.SetEdgeDirection(edge.Direction)

	root := plan.Node(gn)

	if nodeFilter != nil {
		condition, err := expression.RewriteLabelsToVertex(nodeFilter)
		if err != nil {
			return plan.SubPlan{}, err
		}
		filter := plan.NewFilter(e.ctx, root, e.ctx.Save(condition))
		filter.SetColNames(root.ColNames())
		root = filter
	}

	if edge.Filter != nil {
		condition, err := expression.RewriteLabelsToEdge(edge.Filter)
		if err != nil {
			return plan.SubPlan{}, err
		}
		filter := plan.NewFilter(e.ctx, root, e.ctx.Save(condition))
		filter.SetColNames(root.ColNames())
		root = filter
	}

	project := plan.NewProject(e.ctx, root, []plan.Column{
		{Expr: e.ctx.Save(buildPathExpr()), Alias: colPath},
	})
	project.SetColNames([]string{colPath})

	return plan.SubPlan{Root: project, Tail: curr.Tail}, nil
}

// genEdgeProps builds the fetch projection for every requested edge type.
// Each spec carries the four positional edge keys plus the type's schema
// fields. Outgoing steps use the positive type id and incoming ones the
// negated id, swapped when expanding reversely; bidirectional steps emit
// both ids as two separate specs so neither direction's edges are lost.
func (e *Expand) genEdgeProps(edge *EdgeInfo) ([]plan.EdgeProp, error) {
	var edgeProps []plan.EdgeProp
	for _, edgeType := range edge.EdgeTypes {
		edgeSchema, err := e.catalog.EdgeSchema(e.spaceID, edgeType)
		if err != nil {
			return nil, err
		}

		switch edge.Direction {
		case plan.DirectionOut:
			if e.reversely {
				edgeType = -edgeType
			}
		case plan.DirectionIn:
			if !e.reversely {
				edgeType = -edgeType
			}
		case plan.DirectionBoth:
			edgeProps = append(edgeProps, plan.EdgeProp{
				Type:  -edgeType,
				Props: edgePropNames(edgeSchema),
			})
		}
		edgeProps = append(edgeProps, plan.EdgeProp{
			Type:  edgeType,
			Props: edgePropNames(edgeSchema),
		})
	}
	return edgeProps, nil
}

func edgePropNames(edgeSchema *schema.EdgeSchema) []string {
	props := []string{colSrc, colType, colRank, colDst}
	return append(props, edgeSchema.Fields...)
}

// collectData merges a newly expanded one-hop fragment into the running
// result: join the accumulator's paths with the fragment's on adjacency,
// concatenate the two path columns, drop merged paths reusing an edge,
// wrap the survivors in a fresh accumulator, and union it with the
// per-length results collected so far. Returns the new accumulator and
// union root.
func (e *Expand) collectData(left, right, unionNode plan.Node) (plan.Node, plan.Node, error) {
	join := e.innerJoinSegments(left, right)
	lpath := fmt.Sprintf("%s_%d", colPath, 0)
	rpath := fmt.Sprintf("%s_%d", colPath, 1)
	join.SetColNames([]string{lpath, rpath})

	project := plan.NewProject(e.ctx, join, []plan.Column{
		{Expr: e.ctx.Save(mergePathColumnsExpr(lpath, rpath)), Alias: colPath},
	})
	project.SetColNames([]string{colPath})

	filter := plan.NewFilter(e.ctx, project, e.ctx.Save(hasSameEdgeFilterExpr(colPath)))
	filter.SetColNames(project.ColNames())

	passThrough := plan.NewPassThrough(e.ctx, filter)
	passThrough.SetOutputVar(filter.OutputVar())
	passThrough.SetColNames([]string{colPath})

	union := plan.NewUnion(e.ctx, passThrough, unionNode)
	union.SetColNames([]string{colPath})

	return passThrough, union, nil
}

// innerJoinSegments joins two path fragments on adjacency: the left
// fragment's last destination vid against the right fragment's first
// source vid. The upstream extract/dedup step guarantees the key columns
// line up.
func (e *Expand) innerJoinSegments(left, right plan.Node) *plan.InnerJoin {
	hashKeys := []expression.Expression{e.ctx.Save(pathDstVidExpr(colPath))}
	probeKeys := []expression.Expression{e.ctx.Save(pathSrcVidExpr(colPath))}
	return plan.NewInnerJoin(e.ctx, left, right, hashKeys, probeKeys)
}

// filterByPathLength enforces the declared minimum hop count over the
// assembled result. The maximum needs no filter: the driver never builds
// a longer fragment.
func (e *Expand) filterByPathLength(edge *EdgeInfo, input plan.Node) plan.Node {
	minHop := 1
	if edge.Range != nil {
		minHop = edge.Range.Min
	}
	filter := plan.NewFilter(e.ctx, input,
		e.ctx.Save(pathLengthAtLeastExpr(colPath, minHop)))
	filter.SetColNames(input.ColNames())
	return filter
}

// passThrough wraps root in a pass-through node aliased to root's output
// variable, giving the fragment a stable accumulator name.
func (e *Expand) passThrough(root plan.Node) plan.Node {
	passThrough := plan.NewPassThrough(e.ctx, root)
	passThrough.SetOutputVar(root.OutputVar())
	passThrough.SetColNames(root.ColNames())
	return passThrough
}
