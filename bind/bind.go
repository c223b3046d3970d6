// Package bind implements Cottontail's query binder: mapping a wire.Query
// onto a validated logical plan, spec.md §2's "validates the request
// against the catalogue" and §6's request shape. Binding never touches
// storage; it only resolves names against the catalogue and assembles the
// naive, unoptimized plan tree. Package plan's Split/CombineKnnFilter rules
// can rewrite that tree; Database.Query executes it as bound.
package bind

import (
	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/cterr"
	"github.com/gabuzi/cottontaildb/distance"
	"github.com/gabuzi/cottontaildb/plan"
	"github.com/gabuzi/cottontaildb/value"
	"github.com/gabuzi/cottontaildb/wire"
)

// Bind resolves q against cat and assembles a logical plan rooted at a
// FullEntityScan. Range and sample scans are a planner concern, not a
// binder one (spec.md's wire query has no range/sample field) — Split and
// the sampled-scan path are applied after binding, by callers that want
// them, over the FullEntityScan Bind always produces.
//
// rowCount is the entity's current row count; the binder doesn't open
// storage itself, so the caller (normally the Database) supplies it.
func Bind(cat *catalogue.Catalogue, registry *distance.Registry, q *wire.Query, rowCount int64) (plan.Node, error) {
	if q.Schema == "" || q.Entity == "" {
		return nil, &cterr.SyntaxError{Detail: "query is missing schema or entity"}
	}

	entity, err := cat.Entity(q.Schema, q.Entity)
	if err != nil {
		return nil, &cterr.BindError{Reference: q.Schema + "." + q.Entity, Reason: "unknown entity"}
	}

	var knnCol *catalogue.ColumnDef
	if q.Knn != nil {
		col, ok := entity.Column(q.Knn.Column)
		if !ok {
			return nil, &cterr.BindError{Reference: entity.QualifiedName() + "." + q.Knn.Column, Reason: "unknown column"}
		}
		knnCol = &col
	}

	fetchCols, err := fetchColumns(entity, q, knnCol)
	if err != nil {
		return nil, err
	}
	colIndex := make(map[string]int, len(fetchCols))
	for i, c := range fetchCols {
		colIndex[c.Name] = i
	}

	var node plan.Node = plan.NewFullEntityScan(entity, rowCount)
	node = plan.NewFetchColumns(node, fetchCols)

	if q.Filter != nil {
		pred, err := bindFilter(entity, colIndex, q.Filter)
		if err != nil {
			return nil, err
		}
		node = plan.NewFilterPredicate(node, pred, 1.0)
	}

	if q.Knn != nil {
		node, err = bindKnn(node, *knnCol, registry, q.Knn)
		if err != nil {
			return nil, err
		}
	}

	node = plan.NewProjection(node, projectionKind(q.Projection.Kind), q.Projection.Fields)

	if q.Limit >= 0 || q.Skip > 0 {
		node = plan.NewLimit(node, q.Limit, q.Skip)
	}

	return node, nil
}

// fetchColumns is the union of every column a downstream stage references
// (filter atoms, the kNN column, the projection's fields), in the entity's
// declared column order — the superset FetchColumns must carry so that
// every later stage finds the column it needs regardless of stage order.
func fetchColumns(entity *catalogue.EntityDef, q *wire.Query, knnCol *catalogue.ColumnDef) ([]catalogue.ColumnDef, error) {
	needed := make(map[string]bool)
	collectFilterColumns(q.Filter, needed)
	if knnCol != nil {
		needed[knnCol.Name] = true
	}
	for _, f := range q.Projection.Fields {
		needed[f] = true
	}
	if len(needed) == 0 {
		// No explicit reference (e.g. a bare COUNT(*)): fetch nothing but
		// the implicit tuple id, which every Record carries regardless.
		return nil, nil
	}

	cols := make([]catalogue.ColumnDef, 0, len(needed))
	for _, c := range entity.Columns {
		if needed[c.Name] {
			cols = append(cols, c)
		}
	}
	if len(cols) != len(needed) {
		for name := range needed {
			if _, ok := entity.Column(name); !ok {
				return nil, &cterr.BindError{Reference: entity.QualifiedName() + "." + name, Reason: "unknown column"}
			}
		}
	}
	return cols, nil
}

func collectFilterColumns(node *wire.FilterNode, into map[string]bool) {
	if node == nil {
		return
	}
	if node.Combinator != "" {
		for _, child := range node.Children {
			collectFilterColumns(child, into)
		}
		return
	}
	into[node.Column] = true
}

func projectionKind(k wire.ProjectionKind) plan.ProjectionKind {
	switch k {
	case wire.ProjectCount:
		return plan.ProjectCount
	case wire.ProjectExists:
		return plan.ProjectExists
	case wire.ProjectMin:
		return plan.ProjectMin
	case wire.ProjectMax:
		return plan.ProjectMax
	case wire.ProjectSum:
		return plan.ProjectSum
	case wire.ProjectMean:
		return plan.ProjectMean
	case wire.ProjectDistinct:
		return plan.ProjectDistinct
	default:
		return plan.ProjectColumns
	}
}

// bindKnn validates spec against col and wraps input with a KnnPredicate
// carrying every one of spec's query vectors: a kNN predicate with m
// queries is one plan node with m independent heaps (spec.md §4.8), not m
// separate plans.
func bindKnn(input plan.Node, col catalogue.ColumnDef, registry *distance.Registry, spec *wire.KnnSpec) (plan.Node, error) {
	if !col.Vector {
		return nil, &cterr.TypeError{Column: col.QualifiedName(), Expected: "vector", Actual: "scalar"}
	}
	if len(spec.Queries) == 0 {
		return nil, &cterr.SyntaxError{Detail: "kNN predicate requires at least one query vector"}
	}

	kernel, err := registry.Lookup(spec.Distance)
	if err != nil {
		return nil, &cterr.BindError{Reference: spec.Distance, Reason: "unknown distance kernel"}
	}

	weights := make([]value.Value, len(spec.Queries))
	for i, q := range spec.Queries {
		if q.LogicalSize() != col.LogicalSize {
			return nil, &cterr.SizeError{Column: col.QualifiedName(), Expected: col.LogicalSize, Actual: q.LogicalSize()}
		}
		weights[i] = value.Null()
		if i < len(spec.Weights) {
			if spec.Weights[i].LogicalSize() != col.LogicalSize {
				return nil, &cterr.SizeError{Column: col.QualifiedName() + ".weights", Expected: col.LogicalSize, Actual: spec.Weights[i].LogicalSize()}
			}
			weights[i] = spec.Weights[i]
		}
	}

	return plan.NewKnnPredicate(input, col, spec.Queries, spec.K, kernel, weights), nil
}

func bindFilter(entity *catalogue.EntityDef, colIndex map[string]int, node *wire.FilterNode) (boundPredicate, error) {
	if node.Combinator != "" {
		children := make([]boundPredicate, 0, len(node.Children))
		for _, child := range node.Children {
			bp, err := bindFilter(entity, colIndex, child)
			if err != nil {
				return nil, err
			}
			children = append(children, bp)
		}
		return &combinator{op: node.Combinator, children: children}, nil
	}

	if _, ok := entity.Column(node.Column); !ok {
		return nil, &cterr.BindError{Reference: entity.QualifiedName() + "." + node.Column, Reason: "unknown column"}
	}
	idx, ok := colIndex[node.Column]
	if !ok {
		idx = -1
	}

	return &comparisonAtom{
		column: node.Column,
		index:  idx,
		op:     string(node.Op),
		lit:    node.Literal,
		lits:   node.Literals,
	}, nil
}
