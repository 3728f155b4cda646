// Shared fragment builders: frontier extraction and the zero-hop
// fetch-vertex branch.

package planner

import (
	"github.com/whitewum/nebula-graph/pkg/expression"
	"github.com/whitewum/nebula-graph/pkg/plan"
)

// extractAndDedupVidColumn projects the frontier's destination-vertex-id
// column out of the upstream dataset and deduplicates it, so each vertex
// is fetched once per hop no matter how many paths reach it.
func (e *Expand) extractAndDedupVidColumn(dep plan.Node, inputVar string) plan.SubPlan {
	vidExpr := e.takeInitialExpr()

	project := plan.NewProject(e.ctx, dep, []plan.Column{
		{Expr: vidExpr, Alias: colVid},
	})
	project.SetInputVar(inputVar)
	project.SetColNames([]string{colVid})

	dedup := plan.NewDedup(e.ctx, project)
	dedup.SetColNames([]string{colVid})

	return plan.SubPlan{Root: dedup, Tail: project}
}

// takeInitialExpr hands out the caller-supplied start-vid expression
// exactly once. Later hops read the frontier from the running path
// column instead.
func (e *Expand) takeInitialExpr() expression.Expression {
	if e.initialExpr != nil {
		expr := e.initialExpr
		e.initialExpr = nil
		return e.ctx.Save(expr)
	}
	return e.ctx.Save(pathDstVidExpr(colPath))
}

// appendFetchVertexPlan builds the zero-hop branch: fetch the start
// vertex itself and project it as a single-element path, applying the
// anchor's vertex filter if any.
func (e *Expand) appendFetchVertexPlan(nodeFilter expression.Expression) (plan.SubPlan, error) {
	curr := e.extractAndDedupVidColumn(e.dependency, e.inputVar)

	gv := plan.NewGetVertices(e.ctx, curr.Root, e.spaceID)
	gv.SetSrc(e.ctx.Save(expression.NewInputProperty(colVid)))

	root := plan.Node(gv)

	if nodeFilter != nil {
		condition, err := expression.RewriteLabelsToVertex(nodeFilter)
		if err != nil {
			return plan.SubPlan{}, err
		}
		filter := plan.NewFilter(e.ctx, root, e.ctx.Save(condition))
		filter.SetColNames(root.ColNames())
		root = filter
	}

	project := plan.NewProject(e.ctx, root, []plan.Column{
		{Expr: e.ctx.Save(buildVertexPathExpr()), Alias: colPath},
	})
	project.SetColNames([]string{colPath})

	return plan.SubPlan{Root: project, Tail: curr.Tail}, nil
}
