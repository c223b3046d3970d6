package page

import (
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionType selects how a cold page is compressed before it is
// flushed to the backing file, following the teacher's two-tier
// None/LZ4/ZSTD scheme (internal/segment/diskann/compression.go, wal/wal.go):
// LZ4 favors flush latency, ZSTD favors on-disk footprint.
type CompressionType byte

const (
	CompressionNone CompressionType = iota
	CompressionLZ4
	CompressionZSTD
)

var lz4Pool = sync.Pool{New: func() any { return &lz4Codec{} }}

type lz4Codec struct {
	compressor   lz4.Compressor
	decompressor struct{}
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil)
		return enc
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

// Compress compresses src according to kind. CompressionNone returns src
// unchanged.
func Compress(kind CompressionType, src []byte) ([]byte, error) {
	switch kind {
	case CompressionNone:
		return src, nil
	case CompressionLZ4:
		codec := lz4Pool.Get().(*lz4Codec)
		defer lz4Pool.Put(codec)

		dst := make([]byte, lz4.CompressBlockBound(len(src)))
		n, err := codec.compressor.CompressBlock(src, dst)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			// incompressible per lz4's convention; store raw with no savings.
			return src, nil
		}
		return dst[:n], nil
	case CompressionZSTD:
		enc := zstdEncoderPool.Get().(*zstd.Encoder)
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(src, nil), nil
	default:
		return src, nil
	}
}

// Decompress reverses Compress. dstSize must be the original uncompressed
// length (recorded alongside the compressed page) so LZ4 can pre-size its
// output buffer.
func Decompress(kind CompressionType, src []byte, dstSize int) ([]byte, error) {
	switch kind {
	case CompressionNone:
		return src, nil
	case CompressionLZ4:
		dst := make([]byte, dstSize)
		n, err := lz4.UncompressBlock(src, dst)
		if err != nil {
			return nil, err
		}
		return dst[:n], nil
	case CompressionZSTD:
		dec := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(dec)
		return dec.DecodeAll(src, make([]byte, 0, dstSize))
	default:
		return src, nil
	}
}
