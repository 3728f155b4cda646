package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitewum/nebula-graph/pkg/expression"
)

func TestConjunctPath(t *testing.T) {
	ctx := NewContext()
	left := NewStart(ctx)
	right := NewStart(ctx)

	cp := NewConjunctPath(ctx, left, right, StrategyBiBFS, 5)
	assert.Equal(t, KindConjunctPath, cp.Kind())
	assert.Equal(t, StrategyBiBFS, cp.Strategy())
	assert.Equal(t, 5, cp.Steps())
	assert.Same(t, left, cp.Left())
	assert.Same(t, right, cp.Right())
	assert.False(t, cp.NoLoop())

	cp.SetNoLoop(true)
	cp.SetConditionalVar("__round")
	assert.True(t, cp.NoLoop())
	assert.Equal(t, "__round", cp.ConditionalVar())
	assert.Contains(t, cp.Description(), "strategy=BiBFS")
}

func TestPathStrategyStrings(t *testing.T) {
	assert.Equal(t, "BiBFS", StrategyBiBFS.String())
	assert.Equal(t, "BiDijkstra", StrategyBiDijkstra.String())
	assert.Equal(t, "Floyd", StrategyFloyd.String())
	assert.Equal(t, "AllPaths", StrategyAllPaths.String())
}

func TestProduceAllPathsNoLoop(t *testing.T) {
	ctx := NewContext()
	ap := NewProduceAllPaths(ctx, NewStart(ctx))
	assert.False(t, ap.NoLoop())
	ap.SetNoLoop(true)
	assert.True(t, ap.NoLoop())
}

func TestShortestPathDescriptors(t *testing.T) {
	ctx := NewContext()
	input := NewStart(ctx)
	assert.Equal(t, KindProduceSemiShortestPath, NewProduceSemiShortestPath(ctx, input).Kind())
	assert.Equal(t, KindBFSShortestPath, NewBFSShortestPath(ctx, input).Kind())
}

func TestCartesianProductAddVar(t *testing.T) {
	ctx := NewContext()
	branchA := NewProject(ctx, NewStart(ctx), []Column{
		{Expr: expression.NewInputProperty("path"), Alias: "path"},
	})
	branchA.SetColNames([]string{"path"})
	branchB := NewProject(ctx, NewStart(ctx), []Column{
		{Expr: expression.NewInputProperty("v"), Alias: "v"},
	})
	branchB.SetColNames([]string{"v"})

	cp := NewCartesianProduct(ctx, branchA)

	t.Run("rejects empty variable", func(t *testing.T) {
		require.Error(t, cp.AddVar(""))
	})

	t.Run("rejects unregistered variable", func(t *testing.T) {
		require.Error(t, cp.AddVar("__missing"))
	})

	t.Run("records variables with their columns", func(t *testing.T) {
		require.NoError(t, cp.AddVar(branchA.OutputVar()))
		require.NoError(t, cp.AddVar(branchB.OutputVar()))

		assert.Equal(t, []string{branchA.OutputVar(), branchB.OutputVar()}, cp.InputVars())
		assert.Equal(t, [][]string{{"path"}, {"v"}}, cp.AllColNames())
	})
}
