// Package catalogue holds Cottontail's in-memory schema metadata: the set
// of schemas, the entities within each schema, and the column definitions
// of each entity. Catalogue persistence is out of scope (populated
// programmatically, not loaded from disk) — only the lookups the binder
// needs are implemented here.
package catalogue

import (
	"fmt"
	"sync"

	"github.com/gabuzi/cottontaildb/value"
)

// ColumnDef describes one column of an entity: its fully-qualified name
// (schema.entity.column), its logical element kind, its logical size (1
// for a scalar, the fixed vector length otherwise), and whether it may
// hold NULL.
type ColumnDef struct {
	Schema      string
	Entity      string
	Name        string
	Kind        value.Kind
	Vector      bool
	LogicalSize int
	Nullable    bool
}

// QualifiedName returns the column's "schema.entity.column" reference.
func (c ColumnDef) QualifiedName() string {
	return fmt.Sprintf("%s.%s.%s", c.Schema, c.Entity, c.Name)
}

// EntityDef is a named, ordered set of columns.
type EntityDef struct {
	Schema  string
	Name    string
	Columns []ColumnDef
}

// Column looks up one column of this entity by name.
func (e *EntityDef) Column(name string) (ColumnDef, bool) {
	for _, c := range e.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDef{}, false
}

// QualifiedName returns the entity's "schema.entity" reference.
func (e *EntityDef) QualifiedName() string { return e.Schema + "." + e.Name }

type schema struct {
	name     string
	entities map[string]*EntityDef
}

// Catalogue is the in-memory schema/entity/column registry the binder
// validates queries against.
type Catalogue struct {
	mu      sync.RWMutex
	schemas map[string]*schema
}

// New returns an empty Catalogue.
func New() *Catalogue {
	return &Catalogue{schemas: make(map[string]*schema)}
}

// CreateSchema registers a new, empty schema. It is a no-op (not an error)
// if the schema already exists.
func (c *Catalogue) CreateSchema(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.schemas[name]; !ok {
		c.schemas[name] = &schema{name: name, entities: make(map[string]*EntityDef)}
	}
}

// CreateEntity registers a new entity with the given columns under schema.
// It returns an error if the schema doesn't exist or the entity already
// does.
func (c *Catalogue) CreateEntity(schemaName, entityName string, columns []ColumnDef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.schemas[schemaName]
	if !ok {
		return fmt.Errorf("catalogue: unknown schema %q", schemaName)
	}
	if _, exists := s.entities[entityName]; exists {
		return fmt.Errorf("catalogue: entity %q already exists in schema %q", entityName, schemaName)
	}

	for i := range columns {
		columns[i].Schema = schemaName
		columns[i].Entity = entityName
	}

	s.entities[entityName] = &EntityDef{Schema: schemaName, Name: entityName, Columns: columns}
	return nil
}

// AddColumn appends a column to an already-registered entity.
func (c *Catalogue) AddColumn(schemaName, entityName string, col ColumnDef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, err := c.entityLocked(schemaName, entityName)
	if err != nil {
		return err
	}
	col.Schema, col.Entity = schemaName, entityName
	e.Columns = append(e.Columns, col)
	return nil
}

// Schema reports whether a schema is registered under name, returning an
// error when it is not.
func (c *Catalogue) Schema(name string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.schemas[name]
	if !ok {
		return false, fmt.Errorf("catalogue: unknown schema %q", name)
	}
	return true, nil
}

// Entity resolves an entity by schema and name.
func (c *Catalogue) Entity(schemaName, entityName string) (*EntityDef, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entityLocked(schemaName, entityName)
}

func (c *Catalogue) entityLocked(schemaName, entityName string) (*EntityDef, error) {
	s, ok := c.schemas[schemaName]
	if !ok {
		return nil, fmt.Errorf("catalogue: unknown schema %q", schemaName)
	}
	e, ok := s.entities[entityName]
	if !ok {
		return nil, fmt.Errorf("catalogue: unknown entity %q in schema %q", entityName, schemaName)
	}
	return e, nil
}

// Column resolves a single column by schema, entity, and column name.
func (c *Catalogue) Column(schemaName, entityName, columnName string) (ColumnDef, error) {
	e, err := c.Entity(schemaName, entityName)
	if err != nil {
		return ColumnDef{}, err
	}
	col, ok := e.Column(columnName)
	if !ok {
		return ColumnDef{}, fmt.Errorf("catalogue: unknown column %q on entity %q", columnName, e.QualifiedName())
	}
	return col, nil
}
