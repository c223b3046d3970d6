package page

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/gabuzi/cottontaildb/value"
)

// magic tags a Cottontail column store file, letting Open reject a file
// that isn't one before trusting any other header field.
const magic uint32 = 0x43544c31 // "CTL1"

const formatVersion uint32 = 1

// headerSize is the fixed byte length of the header encoded below; the
// remainder of page 0 after headerSize is unused padding out to the page
// size.
const headerSize = 4 + 4 + 1 + 1 + 4 + 8 + 8 + 4 // magic,version,kind,flags,logicalSize,rowCount,freeListHead,checksum

// flag bits packed into FileHeader.Flags.
const (
	FlagVector   byte = 1 << 0
	FlagNullable byte = 1 << 1
)

// FileHeader is the contents of a column store's page 0, following the
// teacher's vectorstore/columnar/format.go: a magic-numbered, versioned,
// checksummed fixed layout rather than a self-describing/TLV format, since
// the column's type and shape never change after creation.
type FileHeader struct {
	Version      uint32
	ColumnKind   value.Kind
	Flags        byte
	LogicalSize  uint32 // 1 for a scalar column, vector length otherwise
	RowCount     uint64
	FreeListHead uint64
	Checksum     uint32
}

// NewFileHeader builds a header for a freshly created column.
func NewFileHeader(kind value.Kind, vector, nullable bool, logicalSize uint32) *FileHeader {
	var flags byte
	if vector {
		flags |= FlagVector
	}
	if nullable {
		flags |= FlagNullable
	}
	return &FileHeader{
		Version:     formatVersion,
		ColumnKind:  kind,
		Flags:       flags,
		LogicalSize: logicalSize,
	}
}

// IsVector reports whether FlagVector is set.
func (h *FileHeader) IsVector() bool { return h.Flags&FlagVector != 0 }

// IsNullable reports whether FlagNullable is set.
func (h *FileHeader) IsNullable() bool { return h.Flags&FlagNullable != 0 }

// WriteTo encodes the header into page 0, computing and storing its CRC32
// checksum over every field preceding it.
func (h *FileHeader) WriteTo(p *Page) error {
	buf := make([]byte, headerSize-4)
	binary.LittleEndian.PutUint32(buf[0:4], magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	buf[8] = byte(h.ColumnKind)
	buf[9] = h.Flags
	binary.LittleEndian.PutUint32(buf[10:14], h.LogicalSize)
	binary.LittleEndian.PutUint64(buf[14:22], h.RowCount)
	binary.LittleEndian.PutUint64(buf[22:30], h.FreeListHead)

	h.Checksum = crc32.ChecksumIEEE(buf)

	if err := p.PutBytes(0, buf); err != nil {
		return err
	}
	return p.PutInt(len(buf), int32(h.Checksum))
}

// ReadFrom decodes and checksum-validates a header from page 0.
func ReadFrom(p *Page) (*FileHeader, error) {
	buf, err := p.GetBytes(0, headerSize-4)
	if err != nil {
		return nil, err
	}

	gotMagic := binary.LittleEndian.Uint32(buf[0:4])
	if gotMagic != magic {
		return nil, fmt.Errorf("page: not a cottontail column store (bad magic %#x)", gotMagic)
	}

	storedChecksumRaw, err := p.GetInt(len(buf))
	if err != nil {
		return nil, err
	}
	storedChecksum := uint32(storedChecksumRaw)

	if gotChecksum := crc32.ChecksumIEEE(buf); gotChecksum != storedChecksum {
		return nil, &ChecksumMismatchError{Expected: storedChecksum, Actual: gotChecksum}
	}

	return &FileHeader{
		Version:      binary.LittleEndian.Uint32(buf[4:8]),
		ColumnKind:   value.Kind(buf[8]),
		Flags:        buf[9],
		LogicalSize:  binary.LittleEndian.Uint32(buf[10:14]),
		RowCount:     binary.LittleEndian.Uint64(buf[14:22]),
		FreeListHead: binary.LittleEndian.Uint64(buf[22:30]),
		Checksum:     storedChecksum,
	}, nil
}

// ChecksumMismatchError reports that a page's stored checksum didn't match
// its recomputed checksum, following the teacher's
// persistence.ChecksumMismatchError (a struct error carrying both values
// rather than a sentinel, so the caller can log the discrepancy).
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("page: checksum mismatch: expected %#x, got %#x", e.Expected, e.Actual)
}

// IsChecksumMismatch reports whether err is (or wraps) a
// *ChecksumMismatchError.
func IsChecksumMismatch(err error) bool {
	var target *ChecksumMismatchError
	return errors.As(err, &target)
}
