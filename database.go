// Package cottontail is a column-oriented, embeddable database for mixed
// boolean/similarity queries: Open returns a Database handle wiring the
// catalogue, per-entity paged column storage, query binder, logical
// planner, and task executor behind a single entry point, the way the
// teacher's root package wires its own store/index/logger/options
// together behind vecgo.New.
package cottontail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabuzi/cottontaildb/bind"
	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/distance"
	"github.com/gabuzi/cottontaildb/exec"
	"github.com/gabuzi/cottontaildb/plan"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/txn"
	"github.com/gabuzi/cottontaildb/value"
	"github.com/gabuzi/cottontaildb/wire"
)

// Database is an open Cottontail instance: one catalogue, one distance
// kernel registry, and one open txn.Entity per schema.entity that has
// been touched, lazily opened on first reference.
type Database struct {
	dir       string
	opts      *options
	catalogue *catalogue.Catalogue
	kernels   *distance.Registry

	mu       sync.Mutex
	entities map[string]*txn.Entity
}

// Open opens (creating dir if needed) a Database rooted at dir.
func Open(ctx context.Context, dir string, opts ...Option) (*Database, error) {
	o := applyOptions(opts)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cottontail: create %s: %w", dir, err)
	}
	db := &Database{
		dir:       dir,
		opts:      o,
		catalogue: catalogue.New(),
		kernels:   distance.NewRegistry(),
		entities:  make(map[string]*txn.Entity),
	}
	o.logger.Info("database opened", "dir", dir, "page_size", o.pageSize)
	return db, nil
}

// Close closes every open entity.
func (db *Database) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for name, e := range db.entities {
		if err := e.Close(); err != nil {
			return fmt.Errorf("cottontail: close entity %s: %w", name, err)
		}
	}
	return nil
}

// CreateSchema registers a new schema in the catalogue.
func (db *Database) CreateSchema(name string) { db.catalogue.CreateSchema(name) }

// CreateEntity registers a new entity under schema and opens its backing
// column storage under dir/schema/entity.
func (db *Database) CreateEntity(schemaName, entityName string, columns []catalogue.ColumnDef) error {
	if err := db.catalogue.CreateEntity(schemaName, entityName, columns); err != nil {
		return err
	}
	_, err := db.openEntity(schemaName, entityName)
	return err
}

func (db *Database) openEntity(schemaName, entityName string) (*txn.Entity, error) {
	key := schemaName + "." + entityName

	db.mu.Lock()
	defer db.mu.Unlock()
	if e, ok := db.entities[key]; ok {
		return e, nil
	}

	def, err := db.catalogue.Entity(schemaName, entityName)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(db.dir, schemaName, entityName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cottontail: create %s: %w", dir, err)
	}
	e, err := txn.Open(dir, def, db.opts.pageSize)
	if err != nil {
		return nil, err
	}
	db.entities[key] = e
	return e, nil
}

// Insert appends one row to schemaName.entityName, opening the entity if
// it isn't already.
func (db *Database) Insert(ctx context.Context, schemaName, entityName string, values map[string]value.Value) (int64, error) {
	e, err := db.openEntity(schemaName, entityName)
	if err != nil {
		return 0, err
	}
	scope := txn.Enter(e, true)
	defer scope.Release()
	return e.Append(ctx, values)
}

// Query binds and executes q, returning its result set. Execution splits
// the scan (and, for a kNN predicate, the sub-scan) into the database's
// configured kNN worker degree (WithKnnWorkers), per spec.md §5.
func (db *Database) Query(ctx context.Context, q *wire.Query) (*record.RecordSet, error) {
	log := db.opts.logger.WithQuery(q.ID).WithEntity(q.Schema + "." + q.Entity)

	e, err := db.openEntity(q.Schema, q.Entity)
	if err != nil {
		log.LogError(q.ID, err)
		return nil, err
	}

	var node plan.Node
	func() {
		scope := txn.Enter(e, false)
		defer scope.Release()
		node, err = bind.Bind(db.catalogue, db.kernels, q, e.RowCount())
	}()
	if err != nil {
		log.LogError(q.ID, err)
		return nil, err
	}
	log.LogPlan(q.ID, q.Schema+"."+q.Entity, countNodes(node))

	rs, err := exec.Execute(ctx, node, e, db.opts.knnWorkers)
	if err != nil {
		log.LogError(q.ID, err)
		return nil, err
	}
	return rs, nil
}

func countNodes(n plan.Node) int {
	c := 0
	for n != nil {
		c++
		n = n.Input()
	}
	return c
}
