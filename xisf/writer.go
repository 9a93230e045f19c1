package xisf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/bytebuf"
	"github.com/xisf-go/libxisf/compress"
	"github.com/xisf-go/libxisf/datablock"
	"github.com/xisf-go/libxisf/image"
	"github.com/xisf-go/libxisf/value"
	"github.com/xisf-go/libxisf/xisferr"
	"github.com/xisf-go/libxisf/xmlmap"
)

const (
	xisfNamespace = "http://www.pixinsight.com/xisf"
	xsiNamespace  = "http://www.w3.org/2001/XMLSchema-instance"
)

// Writer accumulates Images (and an optional Thumbnail) and serializes them
// as a complete XISF file: signature, XML header, attachment region.
type Writer struct {
	images    []*image.Image
	thumbnail *Thumbnail

	creatorApplication string
	creatorModule      string
	codec              compress.Type
	level              int
	useAttachments     bool
}

// WriterOption configures a Writer at construction time.
type WriterOption func(*Writer)

// WithCreatorApplication sets the XISF:CreatorApplication metadata value.
func WithCreatorApplication(name string) WriterOption {
	return func(w *Writer) { w.creatorApplication = name }
}

// WithCreatorModule sets the XISF:CreatorModule metadata value.
func WithCreatorModule(name string) WriterOption {
	return func(w *Writer) { w.creatorModule = name }
}

// WithCompression selects the codec every DataBlock this Writer emits is
// compressed with. compress.None (the default) disables compression.
func WithCompression(codec compress.Type) WriterOption {
	return func(w *Writer) { w.codec = codec }
}

// WithCompressionLevel sets the codec level passed to DataBlock.PrepareWrite.
func WithCompressionLevel(level int) WriterOption {
	return func(w *Writer) { w.level = level }
}

// WithAttachments selects whether DataBlocks are placed in the file's
// attachment region (true, the default) or embedded as base64 <Data>
// children inside the header (false).
func WithAttachments(enabled bool) WriterOption {
	return func(w *Writer) { w.useAttachments = enabled }
}

// NewWriter builds a Writer ready to accumulate images.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		creatorApplication: "libxisf-go",
		creatorModule:      "libxisf-go",
		codec:              compress.None,
		level:              compress.DefaultLevel,
		useAttachments:     true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// AddImage appends img to the set this Writer will serialize.
func (w *Writer) AddImage(img *image.Image) { w.images = append(w.images, img) }

// SetThumbnail attaches an optional root-level thumbnail.
func (w *Writer) SetThumbnail(t *Thumbnail) { w.thumbnail = t }

type attachmentPayload struct {
	bytes []byte
}

func (w *Writer) location(size uint64) datablock.Location {
	if w.useAttachments {
		return datablock.AttachmentLocation(datablock.AttachmentPlaceholder, size)
	}

	return datablock.EmbeddedLocation()
}

// WriteTo serializes every accumulated Image (and thumbnail, if set) to
// dst: a 16-byte signature, the XML header, then the concatenated
// attachment payloads in the order their locations were assigned.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("xisf")
	root.CreateAttr("version", "1.0")
	root.CreateAttr("xmlns", xisfNamespace)
	root.CreateAttr("xmlns:xsi", xsiNamespace)
	root.CreateAttr("xsi:schemaLocation", xisfNamespace+" "+xisfNamespace+"-1.0.xsd")

	var attachments []attachmentPayload

	for _, img := range w.images {
		elem, payloads, err := w.encodeImage(img)
		if err != nil {
			return 0, err
		}

		root.AddChild(elem)
		attachments = append(attachments, payloads...)
	}

	metaElem, err := xmlmap.EncodeMetadata(w.metadataProperties())
	if err != nil {
		return 0, err
	}

	root.AddChild(metaElem)

	if w.thumbnail != nil {
		if w.thumbnail.Block == nil || !w.thumbnail.Block.IsResident() {
			return 0, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("xisf: thumbnail must be resident before writing"))
		}

		prepared, err := w.thumbnail.Block.PrepareWrite(w.codec, w.level, 0)
		if err != nil {
			return 0, err
		}

		loc := w.location(uint64(len(prepared.Bytes)))

		thumbElem, err := encodeThumbnail(w.thumbnail, loc, prepared)
		if err != nil {
			return 0, err
		}

		root.AddChild(thumbElem)

		if loc.Kind == datablock.Attachment {
			attachments = append(attachments, attachmentPayload{bytes: prepared.Bytes})
		}
	}

	xmlBytes, err := doc.WriteToBytes()
	if err != nil {
		return 0, xisferr.New(xisferr.KindIO, err)
	}

	size := uint64(16 + len(xmlBytes))

	finalXML, err := backpatchAttachments(xmlBytes, size, attachments)
	if err != nil {
		return 0, err
	}

	if len(finalXML) > len(xmlBytes) {
		return 0, xisferr.New(xisferr.KindInvalidReference, fmt.Errorf("xisf: backpatched header grew past its placeholder length"))
	}

	if pad := len(xmlBytes) - len(finalXML); pad > 0 {
		finalXML = append(finalXML, make([]byte, pad)...)
	}

	var header [16]byte
	copy(header[:8], signature)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(finalXML)))

	var written int64

	n, err := dst.Write(header[:])
	written += int64(n)
	if err != nil {
		return written, xisferr.New(xisferr.KindIO, err)
	}

	n, err = dst.Write(finalXML)
	written += int64(n)
	if err != nil {
		return written, xisferr.New(xisferr.KindIO, err)
	}

	for _, a := range attachments {
		if err := datablock.WriteChunked(dst, a.bytes); err != nil {
			return written, err
		}

		written += int64(len(a.bytes))
	}

	return written, nil
}

func (w *Writer) encodeImage(img *image.Image) (*etree.Element, []attachmentPayload, error) {
	if img.Pixels == nil || !img.Pixels.IsResident() {
		return nil, nil, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("xisf: image pixel data must be resident before writing"))
	}

	var attachments []attachmentPayload

	shuffleItemSize := 0
	if w.codec != compress.None {
		if es := img.SampleFormat.ElementSize(); es > 1 {
			shuffleItemSize = es
		}
	}

	pixelsPrepared, err := img.Pixels.PrepareWrite(w.codec, w.level, shuffleItemSize)
	if err != nil {
		return nil, nil, err
	}

	pixelsLoc := w.location(uint64(len(pixelsPrepared.Bytes)))
	if pixelsLoc.Kind == datablock.Attachment {
		attachments = append(attachments, attachmentPayload{bytes: pixelsPrepared.Bytes})
	}

	var iccLoc datablock.Location

	var iccPrepared *datablock.PreparedPayload

	if img.ICCProfile != nil {
		if !img.ICCProfile.IsResident() {
			return nil, nil, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("xisf: image ICC profile must be resident before writing"))
		}

		prepared, err := img.ICCProfile.PrepareWrite(w.codec, w.level, 0)
		if err != nil {
			return nil, nil, err
		}

		iccLoc = w.location(uint64(len(prepared.Bytes)))
		iccPrepared = &prepared

		if iccLoc.Kind == datablock.Attachment {
			attachments = append(attachments, attachmentPayload{bytes: prepared.Bytes})
		}
	}

	propPlans := make(map[string]xmlmap.PropertyWritePlan)

	for _, p := range img.Properties() {
		kind := p.Value.Kind()
		if !kind.IsVector() && !kind.IsMatrix() {
			continue
		}

		raw := xmlmap.EncodePropertyPayloadBytes(p.Value)
		block := datablock.NewEmbedded(bytebuf.FromBytes(raw))

		prepared, err := block.PrepareWrite(w.codec, w.level, 0)
		if err != nil {
			return nil, nil, err
		}

		loc := w.location(uint64(len(prepared.Bytes)))
		propPlans[p.ID] = xmlmap.PropertyWritePlan{Location: loc, Prepared: prepared}

		if loc.Kind == datablock.Attachment {
			attachments = append(attachments, attachmentPayload{bytes: prepared.Bytes})
		}
	}

	elem, err := xmlmap.EncodeImage(img, pixelsLoc, pixelsPrepared, iccLoc, iccPrepared, propPlans)
	if err != nil {
		return nil, nil, err
	}

	return elem, attachments, nil
}

func (w *Writer) metadataProperties() []image.Property {
	return []image.Property{
		{ID: "XISF:CreationTime", Value: value.NewTimePoint(time.Now().UTC())},
		{ID: "XISF:CreatorApplication", Value: value.NewString(w.creatorApplication)},
		{ID: "XISF:CreatorModule", Value: value.NewString(w.creatorModule)},
	}
}

// backpatchAttachments replaces, in document order, each occurrence of the
// attachment placeholder prefix with the real offset computed from
// headerEnd (the file position the attachment region starts at) and the
// cumulative size of prior attachment payloads. It never searches the
// first 32 bytes of the header, which never carry a location attribute.
func backpatchAttachments(xmlBytes []byte, headerEnd uint64, attachments []attachmentPayload) ([]byte, error) {
	placeholderPrefix := []byte(fmt.Sprintf("attachment:%d:", datablock.AttachmentPlaceholder))

	var out bytes.Buffer

	pos := 0
	if len(xmlBytes) > 32 {
		out.Write(xmlBytes[:32])
		pos = 32
	}

	offset := headerEnd

	for _, a := range attachments {
		idx := bytes.Index(xmlBytes[pos:], placeholderPrefix)
		if idx < 0 {
			return nil, xisferr.New(xisferr.KindInvalidReference, fmt.Errorf("xisf: fewer attachment placeholders than prepared payloads"))
		}

		abs := pos + idx
		out.Write(xmlBytes[pos:abs])
		out.WriteString("attachment:" + strconv.FormatUint(offset, 10) + ":")
		pos = abs + len(placeholderPrefix)
		offset += uint64(len(a.bytes))
	}

	out.Write(xmlBytes[pos:])

	return out.Bytes(), nil
}
