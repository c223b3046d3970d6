// Package txn implements the entity scan transaction: a read-only cursor
// over an entity's tuple ids in ascending order, plus the ranged and
// predicate-filtered variants spec.md §4.6 requires, under a policy that
// allows concurrent readers but excludes readers while a write is open —
// the same lock stratification the teacher's engine/tx.go applies to its
// own read/write transactions, simplified here to a single
// sync.RWMutex since Cottontail's scope (spec.md §1) excludes
// multi-statement or cross-entity transactions.
package txn

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/column"
	"github.com/gabuzi/cottontaildb/value"
)

// Entity is one open entity: its catalogue definition plus one open
// column.Column per column.
type Entity struct {
	def     *catalogue.EntityDef
	columns map[string]*column.Column
	mu      sync.RWMutex
}

// Open opens (creating column files as needed) every column of def under
// dir.
func Open(dir string, def *catalogue.EntityDef, pageSize int) (*Entity, error) {
	e := &Entity{def: def, columns: make(map[string]*column.Column, len(def.Columns))}

	for _, col := range def.Columns {
		path := filepath.Join(dir, col.Name+".ctl")

		c, err := column.Open(path, col, pageSize)
		if err != nil {
			c, err = column.Create(path, col, pageSize)
			if err != nil {
				return nil, fmt.Errorf("txn: open entity %s: column %s: %w", def.QualifiedName(), col.Name, err)
			}
		}
		e.columns[col.Name] = c
	}
	return e, nil
}

// Close closes every column file.
func (e *Entity) Close() error {
	for _, c := range e.columns {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

// RowCount returns the entity's row count, taken from its first column
// (every column of an entity is appended to in lockstep, so they agree).
func (e *Entity) RowCount() int64 {
	for _, c := range e.columns {
		return c.RowCount()
	}
	return 0
}

// Append writes one row across every column of the entity in lockstep and
// returns its tuple id. The caller must hold a write scope (see Scope).
func (e *Entity) Append(ctx context.Context, values map[string]value.Value) (int64, error) {
	var rowID int64
	for _, col := range e.def.Columns {
		v := values[col.Name]
		id, err := e.columns[col.Name].Append(ctx, v)
		if err != nil {
			return 0, err
		}
		rowID = id
	}
	return rowID, nil
}

// Delete tombstones rowID across every column.
func (e *Entity) Delete(rowID int64) {
	for _, c := range e.columns {
		c.Delete(rowID)
	}
}
