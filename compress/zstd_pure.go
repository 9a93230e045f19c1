//go:build !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdEncoderPool and zstdDecoderPool mirror mebo's compress/zstd_pure.go
// pooling strategy: klauspost/compress/zstd's encoders and decoders are
// explicitly designed for reuse after a warmup.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd encoder: %v", err))
		}

		return enc
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd decoder: %v", err))
		}

		return dec
	},
}

var zstdLevelByRequest = map[int]zstd.EncoderLevel{
	1: zstd.SpeedFastest,
	2: zstd.SpeedDefault,
	3: zstd.SpeedBetterCompression,
	4: zstd.SpeedBestCompression,
}

func (zstdCodec) Compress(input []byte, level int) ([]byte, []SubBlock, error) {
	if len(input) == 0 {
		return nil, nil, nil
	}

	if level == DefaultLevel {
		enc, _ := zstdEncoderPool.Get().(*zstd.Encoder)
		defer zstdEncoderPool.Put(enc)

		return enc.EncodeAll(input, nil), nil, nil
	}

	encLevel, ok := zstdLevelByRequest[level]
	if !ok {
		encLevel = zstd.SpeedDefault
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(encLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("compress: zstd: %w", err)
	}
	defer enc.Close()

	return enc.EncodeAll(input, nil), nil, nil
}

func (zstdCodec) Decompress(input []byte, expectedSize int, _ []SubBlock) ([]byte, error) {
	if expectedSize == 0 {
		return nil, nil
	}

	dec, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(input, make([]byte, 0, expectedSize))
	if err != nil {
		return nil, fmt.Errorf("compress: zstd: %w", err)
	}

	return out, nil
}
