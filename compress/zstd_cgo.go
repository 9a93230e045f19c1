//go:build cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

func (zstdCodec) Compress(input []byte, level int) ([]byte, []SubBlock, error) {
	if len(input) == 0 {
		return nil, nil, nil
	}
	if level == DefaultLevel {
		level = 3
	}

	return gozstd.CompressLevel(nil, input, level), nil, nil
}

func (zstdCodec) Decompress(input []byte, expectedSize int, _ []SubBlock) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(make([]byte, 0, expectedSize), input)
	if err != nil {
		return nil, fmt.Errorf("compress: zstd: %w", err)
	}

	return out, nil
}
