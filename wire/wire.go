// Package wire defines Cottontail's external request/response message
// shapes (spec.md §6). It is intentionally thin: a real deployment would
// generate these from a protobuf/gRPC schema the way the teacher's own
// wire types are generated from proto, but no transport is specified here
// (spec.md §1 keeps wire dispatch out of scope) — these are the Go-native
// structs package bind consumes, standing in for that generated layer.
package wire

import "github.com/gabuzi/cottontaildb/value"

// CompareOp is a predicate atom's comparison operator.
type CompareOp string

const (
	OpEq      CompareOp = "="
	OpNeq     CompareOp = "!="
	OpLt      CompareOp = "<"
	OpLte     CompareOp = "<="
	OpGt      CompareOp = ">"
	OpGte     CompareOp = ">="
	OpLike    CompareOp = "LIKE"
	OpIn      CompareOp = "IN"
	OpBetween CompareOp = "BETWEEN"
	OpIsNull  CompareOp = "IS NULL"
)

// FilterNode is one node of a boolean predicate tree: either a comparison
// atom (Column set, Op set) or a boolean combinator (And/Or/Not, Children
// set). Exactly one of the two shapes should be populated.
type FilterNode struct {
	// Atom fields.
	Column   string
	Op       CompareOp
	Literal  value.Value   // operand for =,!=,<,<=,>,>=,LIKE
	Literals []value.Value // operands for IN, or the two bounds for BETWEEN

	// Combinator fields.
	Combinator string // "AND", "OR", "NOT"; empty for an atom
	Children   []*FilterNode
}

// KnnSpec is a kNN predicate request: one or more query vectors, evaluated
// independently and merged into m groups of k rows each (spec.md §4.8).
type KnnSpec struct {
	Column      string
	K           int
	Distance    string
	Queries     []value.Value
	Weights     []value.Value // optional, same length as Queries if present
	Parallelism int           // not read: queries always use the Database's WithKnnWorkers degree
}

// ProjectionKind mirrors plan.ProjectionKind at the wire boundary so bind
// doesn't need to import plan's internal node types just to parse a
// request.
type ProjectionKind string

const (
	ProjectColumns  ProjectionKind = "COLUMNS"
	ProjectCount    ProjectionKind = "COUNT"
	ProjectExists   ProjectionKind = "EXISTS"
	ProjectMin      ProjectionKind = "MIN"
	ProjectMax      ProjectionKind = "MAX"
	ProjectSum      ProjectionKind = "SUM"
	ProjectMean     ProjectionKind = "MEAN"
	ProjectDistinct ProjectionKind = "DISTINCT"
)

// Projection is the requested output shape: which columns (or aggregate)
// and an optional rename map (wire column name -> output name).
type Projection struct {
	Kind    ProjectionKind
	Fields  []string
	Rename  map[string]string
}

// Query is a bound-query request, spec.md §6's "wire surface (request
// side)".
type Query struct {
	ID         string
	Schema     string
	Entity     string
	Projection Projection
	Filter     *FilterNode // nil if no boolean predicate
	Knn        *KnnSpec    // nil if no kNN predicate
	Limit      int         // -1 means unbounded
	Skip       int
}

// Page is one page of a streamed response, spec.md §6's "wire surface
// (response side)".
type Page struct {
	Index      int
	Size       int
	MaxPage    int
	TotalHits  int64
	Rows       [][]value.Value
	ColumnName []string
}

// Paginate slices rows into pages sized so each page's estimated byte
// footprint stays under maxMessageSize, following spec.md §6's
// `maxMessageSize / ceil_pow2(firstRowBytes)` formula.
func Paginate(columnNames []string, rows [][]value.Value, maxMessageSize int) []Page {
	if len(rows) == 0 {
		return []Page{{Index: 0, Size: 0, MaxPage: 0, TotalHits: 0, ColumnName: columnNames}}
	}

	firstRowBytes := rowBytes(rows[0])
	if firstRowBytes == 0 {
		firstRowBytes = 1
	}
	pageSize := maxMessageSize / ceilPow2(firstRowBytes)
	if pageSize <= 0 {
		pageSize = 1
	}

	total := len(rows)
	maxPage := (total - 1) / pageSize
	pages := make([]Page, 0, maxPage+1)
	for i := 0; i <= maxPage; i++ {
		lo := i * pageSize
		hi := lo + pageSize
		if hi > total {
			hi = total
		}
		pages = append(pages, Page{
			Index:      i,
			Size:       hi - lo,
			MaxPage:    maxPage,
			TotalHits:  int64(total),
			Rows:       rows[lo:hi],
			ColumnName: columnNames,
		})
	}
	return pages
}

func rowBytes(row []value.Value) int {
	n := 0
	for _, v := range row {
		n += v.StorageSize()
	}
	return n
}

func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
