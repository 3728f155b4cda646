package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteLabelsToVertex(t *testing.T) {
	t.Run("label attribute becomes vertex attribute", func(t *testing.T) {
		filter := NewRelational(OpGE, NewLabelAttribute("v", "age"), NewConstant(int64(21)))

		rewritten, err := RewriteLabelsToVertex(filter)
		require.NoError(t, err)
		assert.Equal(t, "(vertex.age >= 21)", rewritten.String())
	})

	t.Run("bare label becomes vertex value", func(t *testing.T) {
		filter := NewFunctionCall("hasLabel", NewLabel("v"), NewConstant("Person"))

		rewritten, err := RewriteLabelsToVertex(filter)
		require.NoError(t, err)
		assert.Equal(t, "hasLabel(vertex, Person)", rewritten.String())
	})

	t.Run("nested references are all rewritten", func(t *testing.T) {
		filter := NewNot(NewRelational(OpEQ,
			NewLabelAttribute("v", "name"),
			NewLabelAttribute("v", "nickname")))

		rewritten, err := RewriteLabelsToVertex(filter)
		require.NoError(t, err)
		assert.Equal(t, "!((vertex.name == vertex.nickname))", rewritten.String())
		assert.NotContains(t, rewritten.String(), "v.")
	})

	t.Run("runtime reference is a contract violation", func(t *testing.T) {
		filter := NewRelational(OpEQ, NewInputProperty("path"), NewConstant(int64(1)))

		_, err := RewriteLabelsToVertex(filter)
		require.ErrorIs(t, err, ErrBadReference)
	})
}

func TestRewriteLabelsToEdge(t *testing.T) {
	t.Run("label attribute becomes edge attribute", func(t *testing.T) {
		filter := NewRelational(OpGT, NewLabelAttribute("e", "likeness"), NewConstant(int64(90)))

		rewritten, err := RewriteLabelsToEdge(filter)
		require.NoError(t, err)
		assert.Equal(t, "(edge.likeness > 90)", rewritten.String())
	})

	t.Run("bare label is a contract violation", func(t *testing.T) {
		filter := NewFunctionCall("type", NewLabel("e"))

		_, err := RewriteLabelsToEdge(filter)
		require.ErrorIs(t, err, ErrBadReference)
	})
}

func TestRewriteIsPure(t *testing.T) {
	filter := NewRelational(OpGE, NewLabelAttribute("v", "age"), NewConstant(int64(21)))
	before := filter.String()

	rewritten, err := RewriteLabelsToVertex(filter)
	require.NoError(t, err)

	// The input tree is untouched and shares nothing with the output.
	assert.Equal(t, before, filter.String())
	assert.IsType(t, &LabelAttribute{}, filter.Left())
	assert.NotSame(t, filter.Right(), rewritten.(*Relational).Right())
}
