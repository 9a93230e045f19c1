package xmlmap

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/compress"
	"github.com/xisf-go/libxisf/datablock"
	"github.com/xisf-go/libxisf/image"
	"github.com/xisf-go/libxisf/value"
	"github.com/xisf-go/libxisf/xisferr"
)

// EncodeProperty renders a Property as a <Property> element. Scalar/time
// values are carried as the "value" attribute; String is carried as inner
// text (never as an attribute, to keep the element's attribute set fixed
// regardless of content length); vectors and matrices carry their bytes in
// a nested <Data> child, located per loc.
func EncodeProperty(p image.Property, loc datablock.Location, comp datablock.CompressionAttr, hasComp bool, payload []byte, subBlocks []compress.SubBlock) (*etree.Element, error) {
	elem := etree.NewElement(TagProperty)
	elem.CreateAttr("id", p.ID)
	elem.CreateAttr("type", p.Value.Kind().String())

	if p.Comment != "" {
		elem.CreateAttr("comment", p.Comment)
	}

	kind := p.Value.Kind()

	switch {
	case kind == value.String:
		s, err := p.Value.AsString()
		if err != nil {
			return nil, err
		}

		elem.SetText(s)

		return elem, nil
	case kind.IsVector():
		elem.CreateAttr("length", strconv.Itoa(p.Value.Len()))

		return encodePropertyPayload(elem, loc, comp, hasComp, payload, subBlocks)
	case kind.IsMatrix():
		rows, cols := p.Value.Dims()
		elem.CreateAttr("rows", strconv.Itoa(rows))
		elem.CreateAttr("columns", strconv.Itoa(cols))

		return encodePropertyPayload(elem, loc, comp, hasComp, payload, subBlocks)
	default:
		text, err := p.Value.FormatText()
		if err != nil {
			return nil, err
		}

		elem.CreateAttr("value", text)

		return elem, nil
	}
}

func encodePropertyPayload(elem *etree.Element, loc datablock.Location, comp datablock.CompressionAttr, hasComp bool, payload []byte, subBlocks []compress.SubBlock) (*etree.Element, error) {
	switch loc.Kind {
	case datablock.Embedded:
		data := etree.NewElement(TagData)
		data.CreateAttr("encoding", "base64")
		encoded, err := datablock.EncodeTransport(datablock.Base64, payload)
		if err != nil {
			return nil, err
		}

		data.SetText(encoded)
		encodeDataAttrs(elem, loc, comp, hasComp, subBlocks)
		elem.AddChild(data)
	case datablock.Inline:
		encoded, err := datablock.EncodeTransport(loc.Transport, payload)
		if err != nil {
			return nil, err
		}

		elem.SetText(encoded)
		encodeDataAttrs(elem, loc, comp, hasComp, subBlocks)
	case datablock.Attachment:
		encodeDataAttrs(elem, loc, comp, hasComp, subBlocks)
	}

	return elem, nil
}

// DecodedProperty is the result of parsing a <Property> element: the
// scalar Property plus, for vector/matrix kinds, the location/compression
// metadata and any inline-resident bytes a caller needs to resolve
// residency (attachment fetch happens outside this package).
// Resolved is true once Property.Value holds real data: immediately for
// scalar/string/inline/embedded properties, or after a caller fetches an
// attachment and calls FinishAttachmentProperty.
type DecodedProperty struct {
	Property       image.Property
	Kind           value.Kind
	Resolved       bool
	Location       datablock.Location
	Compression    datablock.CompressionAttr
	HasCompression bool
	SubBlocks      []compress.SubBlock

	// Length is the vector element count (vector kinds only).
	Length int
	// Rows, Columns describe a matrix's shape (matrix kinds only).
	Rows, Columns int
}

// DecodeProperty parses a <Property> element.
func DecodeProperty(elem *etree.Element) (DecodedProperty, error) {
	id, err := requireAttr(elem, "id")
	if err != nil {
		return DecodedProperty{}, err
	}

	typeName, err := requireAttr(elem, "type")
	if err != nil {
		return DecodedProperty{}, err
	}

	kind, ok := value.ParseKind(typeName)
	if !ok {
		return DecodedProperty{}, xisferr.Newf(xisferr.KindInvalidValue, typeName, fmt.Errorf("unknown property type %q", typeName))
	}

	comment := elem.SelectAttrValue("comment", "")

	if kind == value.String {
		v := value.NewString(elem.Text())
		return DecodedProperty{Property: image.Property{ID: id, Value: v, Comment: comment}, Kind: kind, Resolved: true}, nil
	}

	if !kind.IsVector() && !kind.IsMatrix() {
		text, err := requireAttr(elem, "value")
		if err != nil {
			return DecodedProperty{}, err
		}

		v, err := value.ParseText(kind, text)
		if err != nil {
			return DecodedProperty{}, xisferr.Newf(xisferr.KindInvalidValue, id, err)
		}

		return DecodedProperty{Property: image.Property{ID: id, Value: v, Comment: comment}, Kind: kind, Resolved: true}, nil
	}

	loc, comp, hasComp, subBlocks, err := decodeDataAttrs(elem)
	if err != nil {
		return DecodedProperty{}, err
	}

	result := DecodedProperty{
		Kind: kind, Location: loc, Compression: comp, HasCompression: hasComp, SubBlocks: subBlocks,
	}
	result.Property.ID = id
	result.Property.Comment = comment

	if kind.IsVector() {
		length, err := requireIntAttr(elem, "length")
		if err != nil {
			return DecodedProperty{}, err
		}

		result.Length = length
	} else {
		rows, err := requireIntAttr(elem, "rows")
		if err != nil {
			return DecodedProperty{}, err
		}

		cols, err := requireIntAttr(elem, "columns")
		if err != nil {
			return DecodedProperty{}, err
		}

		result.Rows, result.Columns = rows, cols
	}

	var inlineBytes []byte

	switch loc.Kind {
	case datablock.Embedded:
		dataElem := elem.SelectElement(TagData)
		if dataElem == nil {
			return DecodedProperty{}, xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("embedded property %q missing <Data> child", id))
		}

		raw, err := datablock.DecodeTransport(datablock.InlineLocation(datablock.Base64), dataElem.Text())
		if err != nil {
			return DecodedProperty{}, err
		}

		inlineBytes = raw
	case datablock.Inline:
		raw, err := datablock.DecodeTransport(loc, elem.Text())
		if err != nil {
			return DecodedProperty{}, err
		}

		inlineBytes = raw
	default:
		// Attachment-backed: caller fetches the bytes and calls
		// FinishAttachmentProperty once resident.
		return result, nil
	}

	shuffleItemSize := 0
	if hasComp && comp.Shuffled {
		shuffleItemSize = comp.ItemSize
	}

	plain, err := datablock.ReadPayload(inlineBytes, comp, hasComp, subBlocks, shuffleItemSize)
	if err != nil {
		return DecodedProperty{}, err
	}

	v, err := buildVectorOrMatrixValueFromDims(kind, result.Length, result.Rows, result.Columns, plain.Bytes())
	if err != nil {
		return DecodedProperty{}, err
	}

	result.Property.Value = v
	result.Resolved = true

	return result, nil
}

// FinishAttachmentProperty completes a DecodedProperty whose payload lived
// in an attachment, once the caller has fetched and decoded it via the
// datablock read pipeline. dp must be the DecodedProperty DecodeProperty
// returned for the same element, with Resolved still false.
func FinishAttachmentProperty(dp DecodedProperty, plaintext []byte) (image.Property, error) {
	v, err := buildVectorOrMatrixValueFromDims(dp.Kind, dp.Length, dp.Rows, dp.Columns, plaintext)
	if err != nil {
		return image.Property{}, err
	}

	return image.Property{ID: dp.Property.ID, Value: v, Comment: dp.Property.Comment}, nil
}

func buildVectorOrMatrixValueFromDims(kind value.Kind, length, rows, cols int, plaintext []byte) (value.Value, error) {
	if kind.IsVector() {
		want := length * kind.ElementSize()
		if len(plaintext) != want {
			return value.Value{}, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("vector %v expects %d bytes, got %d", kind, want, len(plaintext)))
		}

		return value.VectorFromBytes(kind, plaintext)
	}

	want := rows * cols * kind.ElementSize()
	if len(plaintext) != want {
		return value.Value{}, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("matrix %v expects %d bytes, got %d", kind, want, len(plaintext)))
	}

	return value.MatrixFromBytes(kind, rows, cols, plaintext)
}

func requireIntAttr(elem *etree.Element, name string) (int, error) {
	text, err := requireAttr(elem, name)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, xisferr.New(xisferr.KindMalformedHeader, err)
	}

	return n, nil
}

// EncodePropertyPayloadBytes extracts the raw little-endian bytes backing
// a vector/matrix Property's Value, for the caller's write pipeline.
func EncodePropertyPayloadBytes(v value.Value) []byte {
	return v.RawBytes()
}
