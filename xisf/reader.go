package xisf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/datablock"
	"github.com/xisf-go/libxisf/image"
	"github.com/xisf-go/libxisf/xisferr"
	"github.com/xisf-go/libxisf/xmlmap"
)

const signature = "XISF0100"

// state names a Reader's position in the Closed -> SignatureRead ->
// HeaderRead -> Ready progression.
type state int

const (
	stateClosed state = iota
	stateSignatureRead
	stateHeaderRead
	stateReady
)

// Reader parses an XISF file's signature and XML header eagerly, then
// leaves attachment-backed pixels, ICC profiles, and vector/matrix
// properties unresolved until Image is asked to materialize them.
type Reader struct {
	ra io.ReaderAt

	state      state
	headerSize uint32

	images       []*image.Image
	pendingProps [][]xmlmap.DecodedProperty
	fileProps    []image.Property
	thumbnail    *Thumbnail
}

type seekReaderAt struct {
	rs io.ReadSeeker
}

func (s *seekReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	return io.ReadFull(s.rs, p)
}

// Open reads and validates r's signature and header, decoding every
// <Image>, file-level <Property>, and optional <Thumbnail> child. Pixel
// data, ICC profiles, and vector/matrix properties stored as attachments
// are left unresolved until Image fetches them.
func Open(r io.ReadSeeker) (*Reader, error) {
	ra, ok := r.(io.ReaderAt)
	if !ok {
		ra = &seekReaderAt{rs: r}
	}

	rd := &Reader{ra: ra}

	if err := rd.readSignature(); err != nil {
		return nil, err
	}

	if err := rd.readHeader(); err != nil {
		return nil, err
	}

	rd.state = stateReady

	return rd, nil
}

func (rd *Reader) readSignature() error {
	var buf [16]byte

	if _, err := rd.ra.ReadAt(buf[:], 0); err != nil {
		return xisferr.New(xisferr.KindIO, err)
	}

	if string(buf[:8]) != signature {
		return xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("xisf: not an XISF 1.0 file (bad signature)"))
	}

	headerSize := binary.LittleEndian.Uint32(buf[8:12])
	if headerSize == 0 {
		return xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("xisf: zero-length header"))
	}

	rd.headerSize = headerSize
	rd.state = stateSignatureRead

	return nil
}

func (rd *Reader) readHeader() error {
	headerXML := make([]byte, rd.headerSize)

	if _, err := rd.ra.ReadAt(headerXML, 16); err != nil {
		return xisferr.New(xisferr.KindIO, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(headerXML); err != nil {
		return xisferr.New(xisferr.KindMalformedHeader, err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "xisf" {
		return xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("xisf: header root element is not <xisf>"))
	}

	if v := root.SelectAttrValue("version", ""); v != "1.0" {
		return xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("xisf: unsupported header version %q", v))
	}

	for _, child := range root.ChildElements() {
		switch child.Tag {
		case xmlmap.TagImage:
			decoded, err := xmlmap.DecodeImage(child)
			if err != nil {
				return err
			}

			rd.images = append(rd.images, decoded.Image)
			rd.pendingProps = append(rd.pendingProps, decoded.PendingProperties)
		case xmlmap.TagMetadata:
			props, err := xmlmap.DecodeMetadata(child)
			if err != nil {
				return err
			}

			rd.fileProps = append(rd.fileProps, props...)
		case xmlmap.TagProperty:
			decoded, err := xmlmap.DecodeProperty(child)
			if err != nil {
				return err
			}

			if decoded.Resolved {
				rd.fileProps = append(rd.fileProps, decoded.Property)
			}
		case tagThumbnail:
			thumb, err := decodeThumbnail(child)
			if err != nil {
				return err
			}

			rd.thumbnail = thumb
		}
	}

	rd.state = stateHeaderRead

	return nil
}

// NumImages returns the number of <Image> elements the header carried.
func (rd *Reader) NumImages() int { return len(rd.images) }

// FileProperties returns the file-level metadata properties parsed from
// the root <Metadata> element and any bare root-level <Property> elements.
func (rd *Reader) FileProperties() []image.Property { return rd.fileProps }

// Thumbnail returns the root-level thumbnail, or nil if the file carries
// none.
func (rd *Reader) Thumbnail() *Thumbnail { return rd.thumbnail }

// Image returns the i'th image. When readPixels is true, attachment-backed
// pixel data, ICC profile, and vector/matrix properties are fetched and
// decoded before returning; when false, the image is returned as parsed,
// possibly with non-resident DataBlocks the caller resolves later via
// another Image(i, true) call.
func (rd *Reader) Image(i int, readPixels bool) (*image.Image, error) {
	if i < 0 || i >= len(rd.images) {
		return nil, xisferr.New(xisferr.KindOutOfBounds, fmt.Errorf("xisf: image index %d out of range [0,%d)", i, len(rd.images)))
	}

	img := rd.images[i]

	if !readPixels {
		return img, nil
	}

	if err := rd.resolveBlock(img.Pixels); err != nil {
		return nil, err
	}

	if err := rd.resolveBlock(img.ICCProfile); err != nil {
		return nil, err
	}

	if err := rd.resolveProperties(img, i); err != nil {
		return nil, err
	}

	return img, nil
}

// ResolveThumbnail fetches the thumbnail's attachment-backed payload, if
// any. It is a no-op when the file carries no thumbnail or the
// thumbnail's DataBlock is already resident.
func (rd *Reader) ResolveThumbnail() error {
	if rd.thumbnail == nil {
		return nil
	}

	return rd.resolveBlock(rd.thumbnail.Block)
}

func (rd *Reader) resolveBlock(b *datablock.DataBlock) error {
	if b == nil || b.IsResident() || b.Location.Kind != datablock.Attachment {
		return nil
	}

	raw, err := datablock.ReadAttachment(rd.ra, b.Location.Pos, b.Location.Size)
	if err != nil {
		return err
	}

	shuffleItemSize := 0
	if b.HasCompression && b.Compression.Shuffled {
		shuffleItemSize = b.Compression.ItemSize
	}

	plain, err := datablock.ReadPayload(raw, b.Compression, b.HasCompression, b.SubBlocks, shuffleItemSize)
	if err != nil {
		return err
	}

	b.SetData(plain)
	b.ShuffleItemSize = shuffleItemSize

	return nil
}

func (rd *Reader) resolveProperties(img *image.Image, imageIndex int) error {
	pending := rd.pendingProps[imageIndex]
	if len(pending) == 0 {
		return nil
	}

	for _, dp := range pending {
		if dp.Location.Kind != datablock.Attachment {
			continue
		}

		raw, err := datablock.ReadAttachment(rd.ra, dp.Location.Pos, dp.Location.Size)
		if err != nil {
			return err
		}

		shuffleItemSize := 0
		if dp.HasCompression && dp.Compression.Shuffled {
			shuffleItemSize = dp.Compression.ItemSize
		}

		plain, err := datablock.ReadPayload(raw, dp.Compression, dp.HasCompression, dp.SubBlocks, shuffleItemSize)
		if err != nil {
			return err
		}

		prop, err := xmlmap.FinishAttachmentProperty(dp, plain.Bytes())
		if err != nil {
			return err
		}

		img.UpdateProperty(prop.ID, prop.Value, prop.Comment)
	}

	rd.pendingProps[imageIndex] = nil

	return nil
}

// Close drops the Reader's parsed state, returning it to Closed. The
// underlying stream is closed too if it implements io.Closer.
func (rd *Reader) Close() error {
	rd.images = nil
	rd.pendingProps = nil
	rd.fileProps = nil
	rd.thumbnail = nil
	rd.state = stateClosed

	if c, ok := rd.ra.(io.Closer); ok {
		return c.Close()
	}

	if sra, ok := rd.ra.(*seekReaderAt); ok {
		if c, ok := sra.rs.(io.Closer); ok {
			return c.Close()
		}
	}

	return nil
}
