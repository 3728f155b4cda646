package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalog(t *testing.T) {
	catalog := NewMemoryCatalog()

	t.Run("rejects nil schema", func(t *testing.T) {
		require.Error(t, catalog.PutEdgeSchema(1, nil))
	})

	t.Run("round trips ordered fields", func(t *testing.T) {
		err := catalog.PutEdgeSchema(1, &EdgeSchema{
			Type:   3,
			Name:   "knows",
			Fields: []string{"duration", "since", "weight"},
		})
		require.NoError(t, err)

		got, err := catalog.EdgeSchema(1, 3)
		require.NoError(t, err)
		assert.Equal(t, "knows", got.Name)
		assert.Equal(t, []string{"duration", "since", "weight"}, got.Fields)
	})

	t.Run("spaces are isolated", func(t *testing.T) {
		_, err := catalog.EdgeSchema(2, 3)
		require.ErrorIs(t, err, ErrEdgeSchemaNotFound)
	})

	t.Run("unknown edge type", func(t *testing.T) {
		_, err := catalog.EdgeSchema(1, 99)
		require.ErrorIs(t, err, ErrEdgeSchemaNotFound)
	})

	t.Run("replaces existing schema", func(t *testing.T) {
		require.NoError(t, catalog.PutEdgeSchema(1, &EdgeSchema{Type: 3, Name: "knows", Fields: []string{"duration"}}))
		got, err := catalog.EdgeSchema(1, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"duration"}, got.Fields)
	})
}
