package datablock

import (
	"fmt"
	"io"

	"github.com/xisf-go/libxisf/bytebuf"
	"github.com/xisf-go/libxisf/compress"
	"github.com/xisf-go/libxisf/internal/xenv"
	"github.com/xisf-go/libxisf/shuffle"
	"github.com/xisf-go/libxisf/xisferr"
)

// maxIOChunk bounds a single read/write call against the backing stream,
// keeping large attachments friendly to I/O layers with 32-bit size limits.
const maxIOChunk = 1 << 30 // 1 GiB

// DataBlock is a located, optionally compressed and shuffled payload. It
// owns at most one of: in-memory plaintext data (once resident), or enough
// bookkeeping to fetch and decode it lazily from an attachment.
type DataBlock struct {
	Location         Location
	Compression       CompressionAttr
	HasCompression    bool // false means the block is stored uncompressed
	SubBlocks        []compress.SubBlock
	UncompressedSize uint64
	ShuffleItemSize  int // 0 or 1 disables byte shuffling

	data *bytebuf.Buffer // resident plaintext; nil until fetched/attached
}

// NewEmbedded wraps already-resident plaintext data at the embedded
// location; the caller may assign a different location before writing.
func NewEmbedded(data *bytebuf.Buffer) *DataBlock {
	return &DataBlock{Location: EmbeddedLocation(), UncompressedSize: uint64(data.Len()), data: data}
}

// IsResident reports whether the plaintext payload is currently in memory.
func (d *DataBlock) IsResident() bool { return d.data != nil }

// Data returns the resident plaintext payload. Callers must ensure
// residency first (NewEmbedded, or Reader.Image with readPixels set for
// attachment-backed blocks).
func (d *DataBlock) Data() *bytebuf.Buffer { return d.data }

// SetData replaces the resident plaintext payload and updates
// UncompressedSize accordingly.
func (d *DataBlock) SetData(data *bytebuf.Buffer) {
	d.data = data
	d.UncompressedSize = uint64(data.Len())
}

// PreparedPayload is the encoded bytes and metadata a DataBlock's write
// path produces, ready for the caller to place at a location.
type PreparedPayload struct {
	Bytes      []byte
	SubBlocks  []compress.SubBlock
	Compression CompressionAttr
	HasCompression bool
}

// PrepareWrite runs the write pipeline: shuffle forward, then compress. If
// a process-wide codec override is active (internal/xenv), it replaces the
// requested codec; the requested level is kept. Under an override a
// shuffleItemSize of 0 or 1 falls back to the block's own ShuffleItemSize,
// so a block whose ShuffleItemSize is unset is still written unshuffled.
//
// codec == compress.None disables compression regardless of override
// (callers that want an uncompressed block pass this explicitly).
func (d *DataBlock) PrepareWrite(codec compress.Type, level int, shuffleItemSize int) (PreparedPayload, error) {
	if d.data == nil {
		return PreparedPayload{}, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("datablock: PrepareWrite requires resident data"))
	}

	uncompressedSize := uint64(d.data.Len())

	if override, ok := xenv.CodecOverride(); ok && codec != compress.None {
		codec = override
		if shuffleItemSize <= 1 {
			shuffleItemSize = d.ShuffleItemSize
		}
	}

	raw := d.data.Bytes()
	if shuffleItemSize > 1 {
		raw = shuffle.Forward(raw, shuffleItemSize)
	}

	if codec == compress.None {
		return PreparedPayload{Bytes: raw, HasCompression: false}, nil
	}

	c, err := compress.Get(codec)
	if err != nil {
		return PreparedPayload{}, xisferr.New(xisferr.KindUnsupportedFeature, err)
	}

	compressed, subBlocks, err := c.Compress(raw, level)
	if err != nil {
		return PreparedPayload{}, xisferr.New(xisferr.KindCodecFailure, err)
	}

	attr := CompressionAttr{
		Codec:            codec,
		Shuffled:         shuffleItemSize > 1,
		UncompressedSize: uncompressedSize,
		ItemSize:         shuffleItemSize,
	}

	return PreparedPayload{
		Bytes:          compressed,
		SubBlocks:      subBlocks,
		Compression:    attr,
		HasCompression: true,
	}, nil
}

// ReadPayload decodes raw bytes already fetched from a block's location
// (transport-decoded if inline) back into resident plaintext, running
// decompress then unshuffle.
func ReadPayload(raw []byte, attr CompressionAttr, hasCompression bool, subBlocks []compress.SubBlock, shuffleItemSize int) (*bytebuf.Buffer, error) {
	plain := raw

	if hasCompression {
		c, err := compress.Get(attr.Codec)
		if err != nil {
			return nil, xisferr.New(xisferr.KindUnsupportedFeature, err)
		}

		if subBlocks == nil {
			subBlocks = []compress.SubBlock{{
				CompressedLen:   uint64(len(raw)),
				DecompressedLen: attr.UncompressedSize,
			}}
		}

		plain, err = c.Decompress(raw, int(attr.UncompressedSize), subBlocks)
		if err != nil {
			return nil, xisferr.New(xisferr.KindCodecFailure, err)
		}
	}

	if shuffleItemSize > 1 {
		plain = shuffle.Inverse(plain, shuffleItemSize)
	}

	return bytebuf.FromBytes(plain), nil
}

// DecodeTransport reverses the inline text encoding named by loc.Transport.
func DecodeTransport(loc Location, text string) ([]byte, error) {
	switch loc.Transport {
	case Base64:
		return bytebuf.DecodeBase64(text).Bytes(), nil
	case Base16:
		return bytebuf.DecodeBase16(text).Bytes(), nil
	default:
		return nil, xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("datablock: location has no inline transport"))
	}
}

// EncodeTransport renders data in the inline text encoding named by t.
func EncodeTransport(t Transport, data []byte) (string, error) {
	switch t {
	case Base64:
		return bytebuf.FromBytes(data).EncodeBase64(), nil
	case Base16:
		return bytebuf.FromBytes(data).EncodeBase16(), nil
	default:
		return "", xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("datablock: unknown inline transport"))
	}
}

// ReadAttachment reads exactly size bytes at pos from r, in chunks bounded
// by maxIOChunk.
func ReadAttachment(r io.ReaderAt, pos, size uint64) ([]byte, error) {
	out := make([]byte, size)
	var read uint64

	for read < size {
		chunk := size - read
		if chunk > maxIOChunk {
			chunk = maxIOChunk
		}

		n, err := r.ReadAt(out[read:read+chunk], int64(pos+read))
		if n > 0 {
			read += uint64(n)
		}

		if err != nil && !(err == io.EOF && read == size) {
			return nil, xisferr.New(xisferr.KindIO, err)
		}
	}

	return out, nil
}

// WriteChunked writes data to w in chunks bounded by maxIOChunk.
func WriteChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		chunk := len(data)
		if chunk > maxIOChunk {
			chunk = maxIOChunk
		}

		n, err := w.Write(data[:chunk])
		if err != nil {
			return xisferr.New(xisferr.KindIO, err)
		}

		data = data[n:]
	}

	return nil
}
