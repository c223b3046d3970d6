package column

import (
	"context"

	"github.com/gabuzi/cottontaildb/page"
	"github.com/gabuzi/cottontaildb/value"
)

// appendVariable appends a length-prefixed String value sequentially after
// the column's current write cursor, per spec.md §6's length:i32 + bytes
// layout.
func (c *Column) appendVariable(ctx context.Context, rowID int64, v value.Value) error {
	var payload []byte
	isNull := v.IsNull()
	if !isNull {
		payload = []byte(v.String())
	}

	need := 4 + len(payload)
	if c.byteCursor+need > c.pageSize {
		c.pageCursor++
		c.byteCursor = 0
	}

	b, err := c.pool.Acquire(ctx, c.pageCursor, page.ModeWrite)
	if err != nil {
		return err
	}
	defer b.Release()

	length := int32(len(payload))
	if isNull {
		length = -1
	}
	if err := b.Page().PutInt(c.byteCursor, length); err != nil {
		return err
	}
	if !isNull {
		if err := b.Page().PutBytes(c.byteCursor+4, payload); err != nil {
			return err
		}
	}
	if err := c.pool.Flush(b.Page()); err != nil {
		return err
	}

	c.offsets = append(c.offsets, rowOffset{pageID: c.pageCursor, offset: c.byteCursor})
	c.byteCursor += need
	return nil
}

func (c *Column) getVariable(ctx context.Context, rowID int64) (value.Value, error) {
	loc := c.offsets[rowID]

	b, err := c.pool.Acquire(ctx, loc.pageID, page.ModeRead)
	if err != nil {
		return value.Value{}, err
	}
	defer b.Release()

	length, err := b.Page().GetInt(loc.offset)
	if err != nil {
		return value.Value{}, err
	}
	if length < 0 {
		return value.Null(), nil
	}

	bytes, err := b.Page().GetBytes(loc.offset+4, int(length))
	if err != nil {
		return value.Value{}, err
	}
	return value.NewString(string(bytes)), nil
}

// rebuildOffsets replays every data page sequentially to reconstruct the
// in-memory offset index after reopening a String column, the same replay
// technique the teacher's WAL uses to rebuild its in-memory index after a
// restart.
func (c *Column) rebuildOffsets(ctx context.Context) error {
	rowCount := int64(c.header.RowCount)
	c.offsets = make([]rowOffset, 0, rowCount)

	pageID := int64(firstDataPageID)
	byteCursor := 0

	for int64(len(c.offsets)) < rowCount {
		b, err := c.pool.Acquire(ctx, pageID, page.ModeRead)
		if err != nil {
			return err
		}

		length, err := b.Page().GetInt(byteCursor)
		if err != nil {
			b.Release()
			return err
		}

		c.offsets = append(c.offsets, rowOffset{pageID: pageID, offset: byteCursor})

		advance := 4
		if length >= 0 {
			advance += int(length)
		}
		byteCursor += advance
		b.Release()

		if byteCursor+4 > c.pageSize {
			pageID++
			byteCursor = 0
		}
	}

	c.pageCursor = pageID
	c.byteCursor = byteCursor
	return nil
}
