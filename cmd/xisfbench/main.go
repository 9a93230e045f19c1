// Command xisfbench round-trips a synthetic image through every
// compression codec this module supports and reports the resulting file
// size and encode/decode time for each.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/xisf-go/libxisf/compress"
	"github.com/xisf-go/libxisf/image"
	"github.com/xisf-go/libxisf/xisf"
)

func main() {
	width := flag.Int("width", 4096, "image width")
	height := flag.Int("height", 4096, "image height")
	flag.Parse()

	if err := run(*width, *height); err != nil {
		log.Fatalf("xisfbench: %v", err)
	}
}

func run(width, height int) error {
	codecs := []compress.Type{compress.None, compress.Zlib, compress.LZ4, compress.LZ4HC, compress.Zstd}

	fmt.Printf("synthetic %dx%d UInt16 image\n", width, height)
	fmt.Printf("%-8s %12s %12s %12s\n", "codec", "bytes", "encode", "decode")

	for _, codec := range codecs {
		img, err := image.New(width, height, 1, image.UInt16)
		if err != nil {
			return err
		}

		fillSyntheticPixels(img)

		w := xisf.NewWriter(xisf.WithAttachments(true), xisf.WithCompression(codec))
		w.AddImage(img)

		var buf bytes.Buffer

		start := time.Now()
		if _, err := w.WriteTo(&buf); err != nil {
			return fmt.Errorf("%s: encode: %w", codec, err)
		}
		encodeElapsed := time.Since(start)

		start = time.Now()
		rd, err := xisf.Open(bytes.NewReader(buf.Bytes()))
		if err != nil {
			return fmt.Errorf("%s: open: %w", codec, err)
		}

		if _, err := rd.Image(0, true); err != nil {
			return fmt.Errorf("%s: decode: %w", codec, err)
		}
		decodeElapsed := time.Since(start)

		rd.Close()

		fmt.Printf("%-8s %12d %12s %12s\n", codec, buf.Len(), encodeElapsed, decodeElapsed)
	}

	return nil
}

func fillSyntheticPixels(img *image.Image) {
	pixels := img.Pixels.Data().Bytes()
	for i := range pixels {
		pixels[i] = byte((i * 2654435761) >> 24)
	}
}
