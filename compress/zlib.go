package compress

import (
	"bytes"
	"fmt"
	"io"

	stdzlib "compress/zlib"
)

// zlibMaxInput is zlib's uLong-bounded maximum single-call input size
// (UINT32_MAX). It is a var, not a const, so tests can shrink it to exercise
// the sub-block path without allocating gigabytes.
var zlibMaxInput uint64 = 1<<32 - 1

// zlibCodec wraps the standard library's zlib implementation. No pack
// example wraps RFC 1950 zlib in a third-party package (klauspost/compress
// ships flate/gzip/s2/zstd but not a zlib container); compress/zlib is the
// canonical Go implementation of the exact wire format XISF requires, so it
// is used directly rather than hand-rolling RFC 1950 framing. See DESIGN.md.
type zlibCodec struct{}

var _ Codec = zlibCodec{}

func (zlibCodec) Compress(input []byte, level int) ([]byte, []SubBlock, error) {
	if len(input) == 0 {
		return nil, nil, nil
	}
	if level == DefaultLevel {
		level = stdzlib.DefaultCompression
	}

	var out []byte
	var subBlocks []SubBlock

	for offset := 0; offset < len(input); {
		end := len(input)
		if uint64(end-offset) > zlibMaxInput {
			end = offset + int(zlibMaxInput)
		}
		chunk := input[offset:end]

		var buf bytes.Buffer
		w, err := stdzlib.NewWriterLevel(&buf, level)
		if err != nil {
			return nil, nil, fmt.Errorf("compress: zlib: %w", err)
		}
		if _, err := w.Write(chunk); err != nil {
			return nil, nil, fmt.Errorf("compress: zlib: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, nil, fmt.Errorf("compress: zlib: %w", err)
		}

		compressed := buf.Bytes()
		out = append(out, compressed...)
		subBlocks = append(subBlocks, SubBlock{
			CompressedLen:   uint64(len(compressed)),
			DecompressedLen: uint64(len(chunk)),
		})

		offset = end
	}

	if len(subBlocks) == 1 {
		// A single chunk never needed sub-blocking; let the caller decide
		// whether to record it (spec: decoder must accept single-chunk
		// streams with no sub-block list).
		return out, nil, nil
	}

	return out, subBlocks, nil
}

func (zlibCodec) Decompress(input []byte, expectedSize int, subBlocks []SubBlock) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}
	if len(subBlocks) == 0 {
		subBlocks = []SubBlock{{CompressedLen: uint64(len(input)), DecompressedLen: uint64(expectedSize)}}
	}

	out := make([]byte, 0, expectedSize)
	var cOffset uint64

	for _, sb := range subBlocks {
		if cOffset+sb.CompressedLen > uint64(len(input)) {
			return nil, fmt.Errorf("compress: zlib: sub-block exceeds input size")
		}
		chunk := input[cOffset : cOffset+sb.CompressedLen]

		r, err := stdzlib.NewReader(bytes.NewReader(chunk))
		if err != nil {
			return nil, fmt.Errorf("compress: zlib: %w", err)
		}

		decoded := make([]byte, sb.DecompressedLen)
		if _, err := io.ReadFull(r, decoded); err != nil {
			r.Close()

			return nil, fmt.Errorf("compress: zlib: %w", err)
		}
		r.Close()

		out = append(out, decoded...)
		cOffset += sb.CompressedLen
	}

	if len(out) != expectedSize {
		return nil, fmt.Errorf("compress: zlib: decompressed %d bytes, want %d", len(out), expectedSize)
	}

	return out, nil
}
