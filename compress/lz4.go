package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4MaxInput mirrors LZ4_MAX_INPUT_SIZE (0x7E000000, ~2GiB), the largest
// input pierrec/lz4's block API accepts in one call. A var, not a const, so
// tests can shrink it to exercise sub-blocking cheaply.
var lz4MaxInput uint64 = 0x7E000000

// lz4CompressorPool pools lz4.Compressor instances; mirrors mebo's
// compress/lz4.go pooling of the same type.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// lz4Codec implements both the "lz4" and "lz4hc" wire codecs; hc selects the
// high-compression encoder. Both share the same block format and decoder.
type lz4Codec struct {
	hc bool
}

var _ Codec = lz4Codec{}

func (c lz4Codec) Compress(input []byte, level int) ([]byte, []SubBlock, error) {
	if len(input) == 0 {
		return nil, nil, nil
	}

	var out []byte
	var subBlocks []SubBlock

	for offset := 0; offset < len(input); {
		end := len(input)
		if uint64(end-offset) > lz4MaxInput {
			end = offset + int(lz4MaxInput)
		}
		chunk := input[offset:end]

		compressed, err := c.compressBlock(chunk, level)
		if err != nil {
			return nil, nil, err
		}

		out = append(out, compressed...)
		subBlocks = append(subBlocks, SubBlock{
			CompressedLen:   uint64(len(compressed)),
			DecompressedLen: uint64(len(chunk)),
		})

		offset = end
	}

	if len(subBlocks) == 1 {
		return out, nil, nil
	}

	return out, subBlocks, nil
}

func (c lz4Codec) compressBlock(chunk []byte, level int) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(chunk)))

	if c.hc {
		hcLevel := lz4.Level9
		if level != DefaultLevel && level >= 0 {
			hcLevel = lz4.CompressionLevel(level)
		}

		n, err := lz4.CompressBlockHC(chunk, dst, hcLevel, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("compress: lz4hc: %w", err)
		}

		return dst[:n], nil
	}

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(chunk, dst)
	if err != nil {
		return nil, fmt.Errorf("compress: lz4: %w", err)
	}

	return dst[:n], nil
}

func (c lz4Codec) Decompress(input []byte, expectedSize int, subBlocks []SubBlock) ([]byte, error) {
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
			return nil, errors.New("compress: lz4: sub-block exceeds input size")
		}
		chunk := input[cOffset : cOffset+sb.CompressedLen]

		decoded := make([]byte, sb.DecompressedLen)
		n, err := lz4.UncompressBlock(chunk, decoded)
		if err != nil {
			return nil, fmt.Errorf("compress: lz4: %w", err)
		}
		if uint64(n) != sb.DecompressedLen {
			return nil, fmt.Errorf("compress: lz4: decoded %d bytes, want %d", n, sb.DecompressedLen)
		}

		out = append(out, decoded...)
		cOffset += sb.CompressedLen
	}

	if len(out) != expectedSize {
		return nil, fmt.Errorf("compress: lz4: decompressed %d bytes, want %d", len(out), expectedSize)
	}

	return out, nil
}
