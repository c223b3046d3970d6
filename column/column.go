// Package column implements Cottontail's physical column store: one column
// store per (entity, column) pair, backed by a page.BufferPool, with page 0
// holding the column's FileHeader and every following page holding that
// column's values.
//
// Fixed-width kinds (every kind except String, and vectors whose
// LogicalSize is fixed by the ColumnDef) are addressed directly: row r's
// byte offset is computed from r, the column's per-row width, and the
// page's data-area size, exactly the teacher's columnar.Store fixed-slot
// addressing. Variable-width values (String) are appended sequentially as
// length:i32 + bytes, per spec.md §6, and located through an in-memory
// offset index rebuilt by a sequential scan on Open — the same replay
// technique the teacher's wal.WAL uses to recover an index after reopening
// a log file.
package column

import (
	"context"
	"fmt"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/cterr"
	"github.com/gabuzi/cottontaildb/internal/bitmap"
	"github.com/gabuzi/cottontaildb/page"
	"github.com/gabuzi/cottontaildb/value"
)

const headerPageID = 0
const firstDataPageID = 1

// rowOffset locates one variable-width row within the data pages.
type rowOffset struct {
	pageID int64
	offset int
}

// Column is one physical column's on-disk storage.
type Column struct {
	def      catalogue.ColumnDef
	pool     *page.BufferPool
	header   *page.FileHeader
	pageSize int

	// rowWidth is the fixed per-row byte footprint, or 0 for String columns.
	rowWidth    int
	rowsPerPage int

	// deleted tracks tombstoned rows, a supplemental feature (spec.md's
	// data model has no delete operation) grounded on the teacher's
	// columnar.Store.deleted bitmap.
	deleted *bitmap.Bitmap

	// offsets locates each row of a String column; unused for fixed-width
	// columns.
	offsets []rowOffset
	// pageCursor/byteCursor track the append position for String columns.
	pageCursor int64
	byteCursor int
}

// Create initializes a brand-new column store at path for def.
func Create(path string, def catalogue.ColumnDef, pageSize int) (*Column, error) {
	pool, err := page.Open(path, pageSize, 256, nil, page.CompressionNone)
	if err != nil {
		return nil, err
	}

	hdr := page.NewFileHeader(def.Kind, def.Vector, def.Nullable, uint32(def.LogicalSize))

	c := &Column{def: def, pool: pool, header: hdr, pageSize: pageSize, deleted: bitmap.New()}
	c.computeRowWidth()

	ctx := context.Background()
	b, err := pool.Acquire(ctx, headerPageID, page.ModeWrite)
	if err != nil {
		return nil, err
	}
	defer b.Release()

	if err := hdr.WriteTo(b.Page()); err != nil {
		return nil, err
	}
	if err := pool.Flush(b.Page()); err != nil {
		return nil, err
	}

	c.pageCursor = firstDataPageID
	return c, nil
}

// Open opens an existing column store, validating its header and, for a
// String column, replaying its rows to rebuild the offset index.
func Open(path string, def catalogue.ColumnDef, pageSize int) (*Column, error) {
	pool, err := page.Open(path, pageSize, 256, nil, page.CompressionNone)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	b, err := pool.Acquire(ctx, headerPageID, page.ModeRead)
	if err != nil {
		return nil, err
	}
	hdr, err := page.ReadFrom(b.Page())
	b.Release()
	if err != nil {
		return nil, err
	}

	if hdr.ColumnKind != def.Kind {
		return nil, &cterr.TypeError{Column: def.QualifiedName(), Expected: def.Kind.String(), Actual: hdr.ColumnKind.String()}
	}

	c := &Column{def: def, pool: pool, header: hdr, pageSize: pageSize, deleted: bitmap.New()}
	c.computeRowWidth()

	if c.rowWidth == 0 {
		if err := c.rebuildOffsets(ctx); err != nil {
			return nil, err
		}
	} else {
		c.pageCursor = firstDataPageID + int64(hdr.RowCount)/int64(c.rowsPerPage)
	}

	return c, nil
}

func (c *Column) computeRowWidth() {
	if c.def.Kind == value.String {
		c.rowWidth = 0
		return
	}
	nullFlag := 0
	if c.def.Nullable {
		nullFlag = 1
	}
	logicalSize := c.def.LogicalSize
	if !c.def.Vector {
		logicalSize = 1
	}
	c.rowWidth = nullFlag + logicalSize*componentWidth(c.def.Kind)
	if c.rowWidth == 0 {
		c.rowWidth = 1
	}
	c.rowsPerPage = c.pageSize / c.rowWidth
	if c.rowsPerPage == 0 {
		c.rowsPerPage = 1
	}
}

// componentWidth mirrors value.Kind's unexported method of the same name;
// column needs it for row-width arithmetic but value.Kind's own
// componentWidth is package-private, so duplicate the (tiny, table-driven)
// mapping here rather than exporting an implementation detail of value's
// storage layout. A free function, since Go doesn't allow attaching methods
// to a type defined in another package.
func componentWidth(k value.Kind) int {
	switch k {
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
		return 0
	}
}

// Close flushes and closes the backing buffer pool.
func (c *Column) Close() error { return c.pool.Close() }

// RowCount returns the number of rows ever appended (including tombstoned
// ones; a tombstoned row still occupies a tuple id, it just never surfaces
// from a scan).
func (c *Column) RowCount() int64 { return int64(c.header.RowCount) }

// Delete tombstones a row so it is skipped by future scans.
func (c *Column) Delete(rowID int64) { c.deleted.Add(uint32(rowID)) }

// IsDeleted reports whether rowID has been tombstoned.
func (c *Column) IsDeleted(rowID int64) bool { return c.deleted.Contains(uint32(rowID)) }

func (c *Column) flushHeader(ctx context.Context) error {
	b, err := c.pool.Acquire(ctx, headerPageID, page.ModeWrite)
	if err != nil {
		return err
	}
	defer b.Release()
	if err := c.header.WriteTo(b.Page()); err != nil {
		return err
	}
	return c.pool.Flush(b.Page())
}

// checkValue reports a value whose kind or size does not match the
// column's declared shape.
func (c *Column) checkValue(v value.Value) error {
	if v.IsNull() {
		if !c.def.Nullable {
			return fmt.Errorf("column: %s is not nullable", c.def.QualifiedName())
		}
		return nil
	}
	if v.Kind() != c.def.Kind {
		return fmt.Errorf("column: %s: expected kind %s, got %s", c.def.QualifiedName(), c.def.Kind, v.Kind())
	}
	if c.def.Vector && v.LogicalSize() != c.def.LogicalSize {
		return fmt.Errorf("column: %s: expected logical size %d, got %d", c.def.QualifiedName(), c.def.LogicalSize, v.LogicalSize())
	}
	return nil
}
