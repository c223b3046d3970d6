// Package page implements Cottontail's fixed-size paged storage primitive:
// a Page is a raw byte buffer of a fixed size (4096 bytes by default) with
// bounds-checked typed accessors, and a BufferPool lends Pages to callers
// with a guaranteed release path.
package page

import (
	"encoding/binary"
	"math"

	"github.com/gabuzi/cottontaildb/cterr"
	"github.com/gabuzi/cottontaildb/internal/mem"
)

// DefaultSize is the default Page size in bytes: 4096, the common disk and
// OS virtual-memory page size, so a Page maps to one unit of real I/O.
const DefaultSize = 4096

// Page is a fixed-size byte buffer with typed, bounds-checked accessors.
// It is not safe for concurrent use; callers coordinate access through the
// BufferPool's borrow/release discipline.
type Page struct {
	id   int64
	buf  []byte
	dirt bool
}

// New allocates a zeroed Page of size bytes tagged with id.
func New(id int64, size int) *Page {
	return &Page{id: id, buf: mem.AllocAligned(size)}
}

// ID returns the page's identifier (its offset, in pages, within the
// backing file).
func (p *Page) ID() int64 { return p.id }

// Size returns the page's byte capacity.
func (p *Page) Size() int { return len(p.buf) }

// Dirty reports whether the page has been written since it was loaded or
// last flushed.
func (p *Page) Dirty() bool { return p.dirt }

// MarkClean clears the dirty flag, called by the buffer pool after a
// successful flush.
func (p *Page) MarkClean() { p.dirt = false }

// Bytes returns the page's raw backing buffer. Callers must not retain it
// past Release.
func (p *Page) Bytes() []byte { return p.buf }

func (p *Page) checkRange(offset, width int) error {
	if offset < 0 || width < 0 {
		return &cterr.BoundsError{Variant: cterr.OutOfRange, Offset: offset, Limit: len(p.buf)}
	}
	if offset+width > len(p.buf) {
		return &cterr.BoundsError{Variant: cterr.Overflow, Offset: offset, Limit: len(p.buf)}
	}
	return nil
}

// GetByte reads a single byte at offset.
func (p *Page) GetByte(offset int) (byte, error) {
	if err := p.checkRange(offset, 1); err != nil {
		return 0, err
	}
	return p.buf[offset], nil
}

// PutByte writes a single byte at offset.
func (p *Page) PutByte(offset int, v byte) error {
	if err := p.checkRange(offset, 1); err != nil {
		return err
	}
	p.buf[offset] = v
	p.dirt = true
	return nil
}

// GetShort reads a little-endian int16 at offset.
func (p *Page) GetShort(offset int) (int16, error) {
	if err := p.checkRange(offset, 2); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(p.buf[offset:])), nil
}

// PutShort writes a little-endian int16 at offset.
func (p *Page) PutShort(offset int, v int16) error {
	if err := p.checkRange(offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(p.buf[offset:], uint16(v))
	p.dirt = true
	return nil
}

// GetInt reads a little-endian int32 at offset.
func (p *Page) GetInt(offset int) (int32, error) {
	if err := p.checkRange(offset, 4); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(p.buf[offset:])), nil
}

// PutInt writes a little-endian int32 at offset.
func (p *Page) PutInt(offset int, v int32) error {
	if err := p.checkRange(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(p.buf[offset:], uint32(v))
	p.dirt = true
	return nil
}

// GetLong reads a little-endian int64 at offset.
func (p *Page) GetLong(offset int) (int64, error) {
	if err := p.checkRange(offset, 8); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(p.buf[offset:])), nil
}

// PutLong writes a little-endian int64 at offset.
func (p *Page) PutLong(offset int, v int64) error {
	if err := p.checkRange(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(p.buf[offset:], uint64(v))
	p.dirt = true
	return nil
}

// GetFloat reads a little-endian float32 at offset.
func (p *Page) GetFloat(offset int) (float32, error) {
	bits, err := p.GetInt(offset)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(bits)), nil
}

// PutFloat writes a little-endian float32 at offset.
func (p *Page) PutFloat(offset int, v float32) error {
	return p.PutInt(offset, int32(math.Float32bits(v)))
}

// GetDouble reads a little-endian float64 at offset.
func (p *Page) GetDouble(offset int) (float64, error) {
	bits, err := p.GetLong(offset)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(uint64(bits)), nil
}

// PutDouble writes a little-endian float64 at offset.
func (p *Page) PutDouble(offset int, v float64) error {
	return p.PutLong(offset, int64(math.Float64bits(v)))
}

// GetBytes reads a length-byte slice starting at offset. The returned slice
// aliases the page's backing buffer.
func (p *Page) GetBytes(offset, length int) ([]byte, error) {
	if err := p.checkRange(offset, length); err != nil {
		return nil, err
	}
	return p.buf[offset : offset+length], nil
}

// PutBytes writes v starting at offset.
func (p *Page) PutBytes(offset int, v []byte) error {
	if err := p.checkRange(offset, len(v)); err != nil {
		return err
	}
	copy(p.buf[offset:], v)
	p.dirt = true
	return nil
}
