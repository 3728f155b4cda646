// BadgerCatalog persists the edge-schema catalog with BadgerDB.
//
// Key structure uses a single-byte prefix followed by the big-endian space
// id and edge-type id; values are JSON-encoded EdgeSchema records.

package schema

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes for catalog storage organization.
const (
	prefixEdgeSchema = byte(0x01) // edge schema: prefix + spaceID + edgeType -> JSON(EdgeSchema)
)

// BadgerCatalog is a persistent Catalog backed by BadgerDB.
type BadgerCatalog struct {
	db *badger.DB
}

// OpenBadgerCatalog opens (or creates) a catalog at dir. An empty dir
// opens an in-memory catalog, used in tests.
func OpenBadgerCatalog(dir string) (*BadgerCatalog, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open schema catalog: %w", err)
	}
	return &BadgerCatalog{db: db}, nil
}

// Close releases the underlying database.
func (c *BadgerCatalog) Close() error {
	return c.db.Close()
}

// PutEdgeSchema stores or replaces an edge schema in a space.
func (c *BadgerCatalog) PutEdgeSchema(spaceID int64, schema *EdgeSchema) error {
	if schema == nil {
		return fmt.Errorf("edge schema must not be nil")
	}
	value, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode edge schema: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(edgeSchemaKey(spaceID, schema.Type), value)
	})
}

// EdgeSchema implements Catalog.
func (c *BadgerCatalog) EdgeSchema(spaceID, edgeType int64) (*EdgeSchema, error) {
	var schema EdgeSchema
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(edgeSchemaKey(spaceID, edgeType))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &schema)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: space %d, edge type %d", ErrEdgeSchemaNotFound, spaceID, edgeType)
	}
	if err != nil {
		return nil, fmt.Errorf("load edge schema: %w", err)
	}
	return &schema, nil
}

func edgeSchemaKey(spaceID, edgeType int64) []byte {
	key := make([]byte, 1+8+8)
	key[0] = prefixEdgeSchema
	binary.BigEndian.PutUint64(key[1:9], uint64(spaceID))
	binary.BigEndian.PutUint64(key[9:17], uint64(edgeType))
	return key
}
