package column

import (
	"context"
	"fmt"

	"github.com/gabuzi/cottontaildb/catalogue"
	"github.com/gabuzi/cottontaildb/page"
	"github.com/gabuzi/cottontaildb/value"
)

// Append writes v as the next row and returns its tuple id.
func (c *Column) Append(ctx context.Context, v value.Value) (int64, error) {
	if err := c.checkValue(v); err != nil {
		return 0, err
	}

	rowID := int64(c.header.RowCount)

	var err error
	if c.rowWidth > 0 {
		err = c.appendFixed(ctx, rowID, v)
	} else {
		err = c.appendVariable(ctx, rowID, v)
	}
	if err != nil {
		return 0, err
	}

	c.header.RowCount++
	if err := c.flushHeader(ctx); err != nil {
		return 0, err
	}
	return rowID, nil
}

// Get reads the value stored at rowID. It returns value.Null() for a
// tombstoned row.
func (c *Column) Get(ctx context.Context, rowID int64) (value.Value, error) {
	if c.IsDeleted(rowID) {
		return value.Null(), nil
	}
	if rowID < 0 || rowID >= int64(c.header.RowCount) {
		return value.Value{}, fmt.Errorf("column: row %d out of range (0..%d)", rowID, c.header.RowCount)
	}
	if c.rowWidth > 0 {
		return c.getFixed(ctx, rowID)
	}
	return c.getVariable(ctx, rowID)
}

func (c *Column) locateFixed(rowID int64) (pageID int64, offset int) {
	pageID = firstDataPageID + rowID/int64(c.rowsPerPage)
	offset = int(rowID%int64(c.rowsPerPage)) * c.rowWidth
	return
}

func (c *Column) appendFixed(ctx context.Context, rowID int64, v value.Value) error {
	pageID, offset := c.locateFixed(rowID)

	b, err := c.pool.Acquire(ctx, pageID, page.ModeWrite)
	if err != nil {
		return err
	}
	defer b.Release()

	nullFlagWidth := 0
	if c.def.Nullable {
		nullFlagWidth = 1
		isNull := byte(0)
		if v.IsNull() {
			isNull = 1
		}
		if err := b.Page().PutByte(offset, isNull); err != nil {
			return err
		}
	}

	if !v.IsNull() {
		if err := writeFixedValue(b.Page(), offset+nullFlagWidth, v); err != nil {
			return err
		}
	}

	return c.pool.Flush(b.Page())
}

func (c *Column) getFixed(ctx context.Context, rowID int64) (value.Value, error) {
	pageID, offset := c.locateFixed(rowID)

	b, err := c.pool.Acquire(ctx, pageID, page.ModeRead)
	if err != nil {
		return value.Value{}, err
	}
	defer b.Release()

	nullFlagWidth := 0
	if c.def.Nullable {
		flag, err := b.Page().GetByte(offset)
		if err != nil {
			return value.Value{}, err
		}
		if flag == 1 {
			return value.Null(), nil
		}
		nullFlagWidth = 1
	}

	return readFixedValue(b.Page(), offset+nullFlagWidth, c.def)
}

func writeFixedValue(p *page.Page, offset int, v value.Value) error {
	switch v.Kind() {
	case value.Boolean:
		b := byte(0)
		if v.Bool() {
			b = 1
		}
		return p.PutByte(offset, b)
	case value.Byte:
		return p.PutByte(offset, byte(v.Byte()))
	case value.Short:
		return p.PutShort(offset, v.Short())
	case value.Int:
		if v.IsVector() {
			return writeIntVector(p, offset, v.IntVector())
		}
		return p.PutInt(offset, v.Int())
	case value.Long:
		if v.IsVector() {
			return writeLongVector(p, offset, v.LongVector())
		}
		return p.PutLong(offset, v.Long())
	case value.Float:
		if v.IsVector() {
			return writeFloatVector(p, offset, v.FloatVector())
		}
		return p.PutFloat(offset, v.Float())
	case value.Double:
		if v.IsVector() {
			return writeDoubleVector(p, offset, v.DoubleVector())
		}
		return p.PutDouble(offset, v.Double())
	case value.Complex32:
		if v.IsVector() {
			return writeComplex32Vector(p, offset, v.Complex32Vector())
		}
		c := v.Complex32()
		if err := p.PutFloat(offset, real(c)); err != nil {
			return err
		}
		return p.PutFloat(offset+4, imag(c))
	case value.Complex64:
		if v.IsVector() {
			return writeComplex64Vector(p, offset, v.Complex64Vector())
		}
		c := v.Complex64()
		if err := p.PutDouble(offset, real(c)); err != nil {
			return err
		}
		return p.PutDouble(offset+8, imag(c))
	default:
		return fmt.Errorf("column: unsupported fixed-width kind %s", v.Kind())
	}
}

func readFixedValue(p *page.Page, offset int, def catalogue.ColumnDef) (value.Value, error) {
	kind, vector, size := def.Kind, def.Vector, def.LogicalSize
	switch kind {
	case value.Boolean:
		b, err := p.GetByte(offset)
		return value.NewBool(b == 1), err
	case value.Byte:
		b, err := p.GetByte(offset)
		return value.NewByte(int8(b)), err
	case value.Short:
		s, err := p.GetShort(offset)
		return value.NewShort(s), err
	case value.Int:
		if vector {
			out, err := readIntVector(p, offset, size)
			return value.NewIntVector(out), err
		}
		i, err := p.GetInt(offset)
		return value.NewInt(i), err
	case value.Long:
		if vector {
			out, err := readLongVector(p, offset, size)
			return value.NewLongVector(out), err
		}
		l, err := p.GetLong(offset)
		return value.NewLong(l), err
	case value.Float:
		if vector {
			out, err := readFloatVector(p, offset, size)
			return value.NewFloatVector(out), err
		}
		f, err := p.GetFloat(offset)
		return value.NewFloat(f), err
	case value.Double:
		if vector {
			out, err := readDoubleVector(p, offset, size)
			return value.NewDoubleVector(out), err
		}
		d, err := p.GetDouble(offset)
		return value.NewDouble(d), err
	case value.Complex32:
		if vector {
			out, err := readComplex32Vector(p, offset, size)
			return value.NewComplex32Vector(out), err
		}
		re, err := p.GetFloat(offset)
		if err != nil {
			return value.Value{}, err
		}
		im, err := p.GetFloat(offset + 4)
		return value.NewComplex32(complex(re, im)), err
	case value.Complex64:
		if vector {
			out, err := readComplex64Vector(p, offset, size)
			return value.NewComplex64Vector(out), err
		}
		re, err := p.GetDouble(offset)
		if err != nil {
			return value.Value{}, err
		}
		im, err := p.GetDouble(offset + 8)
		return value.NewComplex64(complex(re, im)), err
	default:
		return value.Value{}, fmt.Errorf("column: unsupported fixed-width kind %s", kind)
	}
}

func writeIntVector(p *page.Page, offset int, v []int32) error {
	for i, x := range v {
		if err := p.PutInt(offset+i*4, x); err != nil {
			return err
		}
	}
	return nil
}

func writeLongVector(p *page.Page, offset int, v []int64) error {
	for i, x := range v {
		if err := p.PutLong(offset+i*8, x); err != nil {
			return err
		}
	}
	return nil
}

func writeFloatVector(p *page.Page, offset int, v []float32) error {
	for i, x := range v {
		if err := p.PutFloat(offset+i*4, x); err != nil {
			return err
		}
	}
	return nil
}

func writeDoubleVector(p *page.Page, offset int, v []float64) error {
	for i, x := range v {
		if err := p.PutDouble(offset+i*8, x); err != nil {
			return err
		}
	}
	return nil
}

func writeComplex32Vector(p *page.Page, offset int, v []complex64) error {
	for i, x := range v {
		o := offset + i*8
		if err := p.PutFloat(o, real(x)); err != nil {
			return err
		}
		if err := p.PutFloat(o+4, imag(x)); err != nil {
			return err
		}
	}
	return nil
}

func writeComplex64Vector(p *page.Page, offset int, v []complex128) error {
	for i, x := range v {
		o := offset + i*16
		if err := p.PutDouble(o, real(x)); err != nil {
			return err
		}
		if err := p.PutDouble(o+8, imag(x)); err != nil {
			return err
		}
	}
	return nil
}

func readIntVector(p *page.Page, offset, n int) ([]int32, error) {
	out := make([]int32, n)
	for i := range out {
		v, err := p.GetInt(offset + i*4)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readLongVector(p *page.Page, offset, n int) ([]int64, error) {
	out := make([]int64, n)
	for i := range out {
		v, err := p.GetLong(offset + i*8)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readFloatVector(p *page.Page, offset, n int) ([]float32, error) {
	out := make([]float32, n)
	for i := range out {
		v, err := p.GetFloat(offset + i*4)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readDoubleVector(p *page.Page, offset, n int) ([]float64, error) {
	out := make([]float64, n)
	for i := range out {
		v, err := p.GetDouble(offset + i*8)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readComplex32Vector(p *page.Page, offset, n int) ([]complex64, error) {
	out := make([]complex64, n)
	for i := range out {
		o := offset + i*8
		re, err := p.GetFloat(o)
		if err != nil {
			return nil, err
		}
		im, err := p.GetFloat(o + 4)
		if err != nil {
			return nil, err
		}
		out[i] = complex(re, im)
	}
	return out, nil
}

func readComplex64Vector(p *page.Page, offset, n int) ([]complex128, error) {
	out := make([]complex128, n)
	for i := range out {
		o := offset + i*16
		re, err := p.GetDouble(o)
		if err != nil {
			return nil, err
		}
		im, err := p.GetDouble(o + 8)
		if err != nil {
			return nil, err
		}
		out[i] = complex(re, im)
	}
	return out, nil
}
