// Package plan implements Cottontail's logical plan: a linear pipeline of
// operator nodes (each with at most one input) carrying a cost triple
// (disk, CPU/memory, bytes) the planner's rules use to choose between
// equivalent rewrites, per spec.md §4.7.
package plan

import (
	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/distance"
	"github.com/gabuzi/cottontaildb/record"
	"github.com/gabuzi/cottontaildb/value"
)

// Cost is a logical plan node's estimated cost: disk page reads, CPU/
// in-memory work (an abstract unit, not wall-clock time), and output bytes
// produced.
type Cost struct {
	Disk  float64
	CPU   float64
	Bytes float64
}

// Add combines two costs, used when a node's cost includes its input's.
func (c Cost) Add(o Cost) Cost {
	return Cost{Disk: c.Disk + o.Disk, CPU: c.CPU + o.CPU, Bytes: c.Bytes + o.Bytes}
}

// Kind tags a plan node's operator type.
type Kind uint8

const (
	KindFullEntityScan Kind = iota
	KindRangedEntityScan
	KindSampledEntityScan
	KindFetchColumns
	KindFilterPredicate
	KindKnnPredicate
	KindProjection
	KindLimit
)

// Node is one logical plan operator. Every node but a scan has exactly one
// Input; a scan's Input is nil.
type Node interface {
	Kind() Kind
	Input() Node
	Cost() Cost
	// Entity is the schema/entity a plan ultimately scans, threaded through
	// every node so the executor can resolve column stores without walking
	// back to the root scan node each time.
	Entity() *catalogue.EntityDef
}

type base struct {
	input  Node
	entity *catalogue.EntityDef
}

func (b base) Input() Node                      { return b.input }
func (b base) Entity() *catalogue.EntityDef      { return b.entity }

// rowsAt estimates the row count a node produces, walking scan nodes and
// assuming filters/projections/limits pass the estimate through unless
// they narrow it explicitly (Limit does; FilterPredicate applies a
// selectivity estimate elsewhere since true selectivity isn't known
// without statistics Cottontail doesn't maintain, per spec.md §9).
func rowsAt(n Node) float64 {
	switch t := n.(type) {
	case *FullEntityScan:
		return float64(t.RowCount)
	case *RangedEntityScan:
		return float64(t.End - t.Start)
	case *SampledEntityScan:
		return float64(t.Size)
	case *Limit:
		in := rowsAt(t.input)
		if t.N >= 0 && float64(t.N) < in {
			return float64(t.N)
		}
		return in
	default:
		if n.Input() != nil {
			return rowsAt(n.Input())
		}
		return 0
	}
}

const (
	// diskPageCostPerRow approximates one column fetch touching a fraction
	// of a page per row; the planner's absolute units don't need to match
	// real page counts, only rank alternative plans consistently.
	diskPageCostPerRow = 0.02
	cpuCostPerRow       = 1.0
)

// --- FullEntityScan ---

type FullEntityScan struct {
	base
	RowCount int64
}

// NewFullEntityScan constructs a scan of every row of entity.
func NewFullEntityScan(entity *catalogue.EntityDef, rowCount int64) *FullEntityScan {
	return &FullEntityScan{base: base{entity: entity}, RowCount: rowCount}
}

func (n *FullEntityScan) Kind() Kind { return KindFullEntityScan }
func (n *FullEntityScan) Cost() Cost {
	rows := float64(n.RowCount)
	return Cost{Disk: rows * diskPageCostPerRow, CPU: rows * cpuCostPerRow, Bytes: 0}
}

// --- RangedEntityScan ---

type RangedEntityScan struct {
	base
	Start, End int64
}

// NewRangedEntityScan constructs a scan of [start, end) rows of entity.
func NewRangedEntityScan(entity *catalogue.EntityDef, start, end int64) *RangedEntityScan {
	return &RangedEntityScan{base: base{entity: entity}, Start: start, End: end}
}

func (n *RangedEntityScan) Kind() Kind { return KindRangedEntityScan }
func (n *RangedEntityScan) Cost() Cost {
	rows := float64(n.End - n.Start)
	return Cost{Disk: rows * diskPageCostPerRow, CPU: rows * cpuCostPerRow, Bytes: 0}
}

// --- SampledEntityScan ---

type SampledEntityScan struct {
	base
	Size int
	Seed int64
}

// NewSampledEntityScan constructs a seed-reproducible sample of size rows
// of entity.
func NewSampledEntityScan(entity *catalogue.EntityDef, size int, seed int64) *SampledEntityScan {
	return &SampledEntityScan{base: base{entity: entity}, Size: size, Seed: seed}
}

func (n *SampledEntityScan) Kind() Kind { return KindSampledEntityScan }
func (n *SampledEntityScan) Cost() Cost {
	rows := float64(n.Size)
	// Sampling pays the same per-row disk cost as a full scan, plus a
	// small constant for the index shuffle that picks which rows to visit.
	return Cost{Disk: rows*diskPageCostPerRow + 0.5, CPU: rows * cpuCostPerRow, Bytes: 0}
}

// --- FetchColumns ---

type FetchColumns struct {
	base
	Columns []catalogue.ColumnDef
}

// NewFetchColumns wraps input with a column fetch over columns.
func NewFetchColumns(input Node, columns []catalogue.ColumnDef) *FetchColumns {
	return &FetchColumns{base: base{input: input, entity: input.Entity()}, Columns: columns}
}

func (n *FetchColumns) Kind() Kind { return KindFetchColumns }
func (n *FetchColumns) Cost() Cost {
	rows := rowsAt(n)
	var bytesPerRow float64
	for _, c := range n.Columns {
		size := c.LogicalSize
		if !c.Vector {
			size = 1
		}
		bytesPerRow += float64(size) * float64(componentWidth(c))
	}
	own := Cost{Disk: rows * diskPageCostPerRow * float64(len(n.Columns)), CPU: rows * cpuCostPerRow, Bytes: rows * bytesPerRow}
	return n.input.Cost().Add(own)
}

func componentWidth(c catalogue.ColumnDef) float64 {
	switch c.Kind {
	case value.Boolean, value.Byte:
		return 1
	case value.Short:
		return 2
	case value.Int, value.Float:
		return 4
	case value.Long, value.Double:
		return 8
	case value.Complex32:
		return 8
	case value.Complex64:
		return 16
	default:
		return 8 // string: a conservative flat estimate, true length is data-dependent
	}
}

// --- FilterPredicate ---

// Predicate is a boolean row predicate, evaluated by the executor against
// a record.Record; concrete predicates (comparison atoms, boolean
// combinators) live in package bind, which is what turns a wire filter
// tree into one of these.
type Predicate interface {
	Name() string
	Eval(record.Record) (bool, error)
}

type FilterPredicate struct {
	base
	Predicate  Predicate
	Selectivity float64 // estimated fraction of rows the predicate keeps, default 1.0 (unknown)
}

// NewFilterPredicate wraps input with a boolean predicate filter.
func NewFilterPredicate(input Node, pred Predicate, selectivity float64) *FilterPredicate {
	if selectivity <= 0 || selectivity > 1 {
		selectivity = 1.0
	}
	return &FilterPredicate{base: base{input: input, entity: input.Entity()}, Predicate: pred, Selectivity: selectivity}
}

func (n *FilterPredicate) Kind() Kind { return KindFilterPredicate }
func (n *FilterPredicate) Cost() Cost {
	rows := rowsAt(n.input)
	own := Cost{CPU: rows * cpuCostPerRow * 1.2} // predicate evaluation is a bit more than a row touch
	return n.input.Cost().Add(own)
}

// --- KnnPredicate ---

// KnnPredicate holds m independent query vectors (spec.md §4.8): the
// executor maintains one top-k heap per query, admitting every scanned row
// into all m heaps concurrently rather than binding m separate plans.
type KnnPredicate struct {
	base
	Column  catalogue.ColumnDef
	Queries []value.Value
	K       int
	Kernel  distance.Kernel
	Weights []value.Value // same length as Queries; value.Null() entries where unweighted
}

// NewKnnPredicate wraps input with a k-nearest-neighbors predicate against
// column, evaluated with kernel for each of queries independently.
func NewKnnPredicate(input Node, column catalogue.ColumnDef, queries []value.Value, k int, kernel distance.Kernel, weights []value.Value) *KnnPredicate {
	return &KnnPredicate{base: base{input: input, entity: input.Entity()}, Column: column, Queries: queries, K: k, Kernel: kernel, Weights: weights}
}

func (n *KnnPredicate) Kind() Kind { return KindKnnPredicate }
func (n *KnnPredicate) Cost() Cost {
	rows := rowsAt(n.input)
	dims := float64(n.Column.LogicalSize)
	m := float64(len(n.Queries))
	own := Cost{CPU: rows * dims * n.Kernel.Cost * m, Bytes: float64(n.K) * dims * 8 * m}
	return n.input.Cost().Add(own)
}

// --- Projection ---

// ProjectionKind distinguishes a plain column projection from an aggregate
// projection (COUNT/EXISTS/MIN/MAX/SUM/MEAN), spec.md §4.5.
type ProjectionKind uint8

const (
	ProjectColumns ProjectionKind = iota
	ProjectCount
	ProjectExists
	ProjectMin
	ProjectMax
	ProjectSum
	ProjectMean
	ProjectDistinct
)

type Projection struct {
	base
	ProjectionKind ProjectionKind
	Fields         []string
}

// NewProjection wraps input with a projection/aggregation.
func NewProjection(input Node, kind ProjectionKind, fields []string) *Projection {
	return &Projection{base: base{input: input, entity: input.Entity()}, ProjectionKind: kind, Fields: fields}
}

func (n *Projection) Kind() Kind { return KindProjection }
func (n *Projection) Cost() Cost {
	rows := rowsAt(n.input)
	own := Cost{CPU: rows * cpuCostPerRow * 0.5}
	return n.input.Cost().Add(own)
}

// --- Limit ---

type Limit struct {
	base
	N, Skip int
}

// NewLimit wraps input with a limit/skip.
func NewLimit(input Node, n, skip int) *Limit {
	return &Limit{base: base{input: input, entity: input.Entity()}, N: n, Skip: skip}
}

func (n *Limit) Kind() Kind { return KindLimit }
func (n *Limit) Cost() Cost {
	// A Limit doesn't reduce its input's cost (the input still has to
	// produce the skipped+limited rows in order), it only reduces the
	// cost observed downstream via rowsAt.
	return n.input.Cost()
}
