package datablock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xisf-go/libxisf/compress"
	"github.com/xisf-go/libxisf/xisferr"
)

// CompressionAttr is the parsed form of the `compression` attribute
// grammar:
//
//	compression := codecName ("+sh")? ":" uncompressedSize (":" itemSize)?
//	codecName   := "zlib" | "lz4" | "lz4hc" | "zstd"
//
// The "+sh" suffix requires itemSize; its absence with the suffix present
// is a structural error.
type CompressionAttr struct {
	Codec            compress.Type
	Shuffled         bool
	UncompressedSize uint64
	ItemSize         int // meaningful only when Shuffled
}

// String renders the compression attribute text.
func (c CompressionAttr) String() string {
	name := c.Codec.String()
	if c.Shuffled {
		name += "+sh"
	}

	s := fmt.Sprintf("%s:%d", name, c.UncompressedSize)
	if c.Shuffled {
		s += fmt.Sprintf(":%d", c.ItemSize)
	}

	return s
}

// ParseCompressionAttr parses the `compression` attribute grammar.
func ParseCompressionAttr(text string) (CompressionAttr, error) {
	codecPart, rest, ok := strings.Cut(text, ":")
	if !ok {
		return CompressionAttr{}, xisferr.Newf(xisferr.KindMalformedHeader, text, errMalformedCompression)
	}

	shuffled := strings.HasSuffix(codecPart, "+sh")
	codecName := strings.TrimSuffix(codecPart, "+sh")

	codec, ok := compress.ParseType(codecName)
	if !ok {
		return CompressionAttr{}, xisferr.Newf(xisferr.KindUnsupportedFeature, text, fmt.Errorf("unknown codec %q", codecName))
	}

	fields := strings.Split(rest, ":")

	size, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return CompressionAttr{}, xisferr.Newf(xisferr.KindMalformedHeader, text, err)
	}

	attr := CompressionAttr{Codec: codec, Shuffled: shuffled, UncompressedSize: size}

	if shuffled {
		if len(fields) != 2 {
			return CompressionAttr{}, xisferr.Newf(xisferr.KindMalformedHeader, text, errShuffleRequiresItemSize)
		}

		itemSize, err := strconv.Atoi(fields[1])
		if err != nil {
			return CompressionAttr{}, xisferr.Newf(xisferr.KindMalformedHeader, text, err)
		}

		attr.ItemSize = itemSize
	} else if len(fields) != 1 {
		return CompressionAttr{}, xisferr.Newf(xisferr.KindMalformedHeader, text, errMalformedCompression)
	}

	return attr, nil
}

// FormatSubBlocks renders the `subblocks` attribute: a ":"-separated list
// of "c,d" pairs.
func FormatSubBlocks(blocks []compress.SubBlock) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = fmt.Sprintf("%d,%d", b.CompressedLen, b.DecompressedLen)
	}

	return strings.Join(parts, ":")
}

// ParseSubBlocks parses the `subblocks` attribute. An empty string yields a
// nil slice, meaning "no explicit sub-blocks" (the read pipeline then
// constructs a single implicit entry).
func ParseSubBlocks(text string) ([]compress.SubBlock, error) {
	if text == "" {
		return nil, nil
	}

	parts := strings.Split(text, ":")
	blocks := make([]compress.SubBlock, len(parts))

	for i, p := range parts {
		c, d, ok := strings.Cut(p, ",")
		if !ok {
			return nil, xisferr.Newf(xisferr.KindMalformedHeader, text, errMalformedSubBlocks)
		}

		cLen, err := strconv.ParseUint(c, 10, 64)
		if err != nil {
			return nil, xisferr.Newf(xisferr.KindMalformedHeader, text, err)
		}

		dLen, err := strconv.ParseUint(d, 10, 64)
		if err != nil {
			return nil, xisferr.Newf(xisferr.KindMalformedHeader, text, err)
		}

		blocks[i] = compress.SubBlock{CompressedLen: cLen, DecompressedLen: dLen}
	}

	return blocks, nil
}

var (
	errMalformedCompression    = fmt.Errorf("malformed compression attribute")
	errShuffleRequiresItemSize = fmt.Errorf(`"+sh" suffix requires an explicit itemSize field`)
	errMalformedSubBlocks      = fmt.Errorf("malformed subblocks attribute")
)
