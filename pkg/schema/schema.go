// Package schema provides the catalog the planner consults while building
// fetch projections: the ordered property-field list of every edge type in
// a graph space.
//
// Two catalogs are provided: MemoryCatalog for embedding and tests, and
// BadgerCatalog (badger.go) for a persistent catalog on disk.
package schema

import (
	"errors"
	"fmt"
	"sync"
)

// ErrEdgeSchemaNotFound reports a lookup for an unknown (space, edge type)
// pair.
var ErrEdgeSchemaNotFound = errors.New("edge schema not found")

// EdgeSchema describes one edge type: its numeric id, display name, and
// ordered property field names.
type EdgeSchema struct {
	Type   int64    `json:"type" yaml:"type"`
	Name   string   `json:"name" yaml:"name"`
	Fields []string `json:"fields" yaml:"fields"`
}

// Catalog resolves edge schemas by space id and edge-type id.
type Catalog interface {
	EdgeSchema(spaceID, edgeType int64) (*EdgeSchema, error)
}

type edgeKey struct {
	spaceID  int64
	edgeType int64
}

// MemoryCatalog is a thread-safe in-memory Catalog.
type MemoryCatalog struct {
	mu    sync.RWMutex
	edges map[edgeKey]*EdgeSchema
}

// NewMemoryCatalog returns an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{edges: make(map[edgeKey]*EdgeSchema)}
}

// PutEdgeSchema registers or replaces an edge schema in a space.
func (c *MemoryCatalog) PutEdgeSchema(spaceID int64, schema *EdgeSchema) error {
	if schema == nil {
		return fmt.Errorf("edge schema must not be nil")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.edges[edgeKey{spaceID: spaceID, edgeType: schema.Type}] = schema
	return nil
}

// EdgeSchema implements Catalog.
func (c *MemoryCatalog) EdgeSchema(spaceID, edgeType int64) (*EdgeSchema, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	schema, ok := c.edges[edgeKey{spaceID: spaceID, edgeType: edgeType}]
	if !ok {
		return nil, fmt.Errorf("%w: space %d, edge type %d", ErrEdgeSchemaNotFound, spaceID, edgeType)
	}
	return schema, nil
}
