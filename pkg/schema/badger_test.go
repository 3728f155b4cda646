package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerCatalogInMemory(t *testing.T) {
	catalog, err := OpenBadgerCatalog("")
	require.NoError(t, err)
	defer catalog.Close()

	require.NoError(t, catalog.PutEdgeSchema(1, &EdgeSchema{
		Type:   2,
		Name:   "likes",
		Fields: []string{"likeness"},
	}))

	got, err := catalog.EdgeSchema(1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Type)
	assert.Equal(t, "likes", got.Name)
	assert.Equal(t, []string{"likeness"}, got.Fields)

	_, err = catalog.EdgeSchema(1, 9)
	require.ErrorIs(t, err, ErrEdgeSchemaNotFound)

	_, err = catalog.EdgeSchema(5, 2)
	require.ErrorIs(t, err, ErrEdgeSchemaNotFound)
}

func TestBadgerCatalogPersists(t *testing.T) {
	dir := t.TempDir()

	catalog, err := OpenBadgerCatalog(dir)
	require.NoError(t, err)
	require.NoError(t, catalog.PutEdgeSchema(7, &EdgeSchema{
		Type:   4,
		Name:   "serves",
		Fields: []string{"start_year", "end_year"},
	}))
	require.NoError(t, catalog.Close())

	reopened, err := OpenBadgerCatalog(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.EdgeSchema(7, 4)
	require.NoError(t, err)
	assert.Equal(t, "serves", got.Name)
	assert.Equal(t, []string{"start_year", "end_year"}, got.Fields)
}

func TestBadgerCatalogRejectsNil(t *testing.T) {
	catalog, err := OpenBadgerCatalog("")
	require.NoError(t, err)
	defer catalog.Close()

	require.Error(t, catalog.PutEdgeSchema(1, nil))
}
