// Package compress provides the {none, zlib, lz4, lz4hc, zstd} codecs XISF
// data blocks are compressed with.
//
// # Architecture
//
// Every codec implements the Codec interface. Compress takes the codec's
// level (-1 meaning "library default") and returns the compressed bytes plus,
// for codecs with a maximum single-call input size (zlib, lz4, lz4hc), the
// ordered list of sub-blocks the encoder had to split the input into.
// Decompress walks that sub-block list (or treats the whole input as one
// implicit sub-block when the list is empty) and decompresses each segment
// into the pre-sized output buffer.
//
// # Supported algorithms
//
//	None   - identity, no compression
//	Zlib   - compress/zlib-compatible DEFLATE, split at UINT32_MAX per call
//	LZ4    - github.com/pierrec/lz4/v4 block format, split at LZ4_MAX_INPUT_SIZE
//	LZ4HC  - same format, encoded with the high-compression variant
//	Zstd   - github.com/klauspost/compress/zstd (or gozstd under cgo), single call
package compress

import "fmt"

// Type identifies a compression algorithm by its on-the-wire XISF name.
type Type uint8

const (
	// None applies no compression; Compress/Decompress are identity.
	None Type = iota
	// Zlib is RFC 1950 zlib-wrapped DEFLATE.
	Zlib
	// LZ4 is the LZ4 block format at default compression effort.
	LZ4
	// LZ4HC is the LZ4 block format encoded with the high-compression variant.
	LZ4HC
	// Zstd is Zstandard.
	Zstd
)

// String returns the wire name used in the "compression" attribute grammar.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Zlib:
		return "zlib"
	case LZ4:
		return "lz4"
	case LZ4HC:
		return "lz4hc"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseType resolves a codec name as it appears on the wire. An unknown name
// is reported via the second return value so callers can distinguish
// "none" from "not recognized".
func ParseType(name string) (Type, bool) {
	switch name {
	case "zlib":
		return Zlib, true
	case "lz4":
		return LZ4, true
	case "lz4hc":
		return LZ4HC, true
	case "zstd":
		return Zstd, true
	default:
		return None, false
	}
}

// DefaultLevel requests the codec's own notion of a default compression
// level.
const DefaultLevel = -1

// SubBlock records one (compressedLen, decompressedLen) pair describing a
// chunk of a sub-blocked compressed stream.
type SubBlock struct {
	CompressedLen   uint64
	DecompressedLen uint64
}

// Codec compresses and decompresses one algorithm's payloads.
type Codec interface {
	// Compress compresses input at the given level (DefaultLevel for
	// "library default"). subBlocks is nil unless input exceeded the
	// codec's maximum single-call size.
	Compress(input []byte, level int) (output []byte, subBlocks []SubBlock, err error)

	// Decompress reverses Compress. expectedSize is the exact size of the
	// decompressed output (from the DataBlock's uncompressedSize). When
	// subBlocks is empty, input is treated as a single implicit sub-block.
	Decompress(input []byte, expectedSize int, subBlocks []SubBlock) ([]byte, error)
}

// Get returns the Codec implementation for t.
func Get(t Type) (Codec, error) {
	switch t {
	case None:
		return noneCodec{}, nil
	case Zlib:
		return zlibCodec{}, nil
	case LZ4:
		return lz4Codec{hc: false}, nil
	case LZ4HC:
		return lz4Codec{hc: true}, nil
	case Zstd:
		return zstdCodec{}, nil
	default:
		return nil, fmt.Errorf("compress: unsupported codec %v", t)
	}
}
