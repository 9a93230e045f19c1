package xmlmap

import (
	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/compress"
	"github.com/xisf-go/libxisf/datablock"
)

// EncodeICCProfile renders an opaque ICC profile payload as an
// <ICCProfile> element, located per loc exactly like the Image's own
// pixel DataBlock.
func EncodeICCProfile(loc datablock.Location, comp datablock.CompressionAttr, hasComp bool, payload []byte, subBlocks []compress.SubBlock) (*etree.Element, error) {
	elem := etree.NewElement(TagICCProfile)

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

// DecodedICCProfile mirrors DecodedProperty's residency split: Resolved is
// true once Bytes holds the plaintext payload.
type DecodedICCProfile struct {
	Location       datablock.Location
	Compression    datablock.CompressionAttr
	HasCompression bool
	SubBlocks      []compress.SubBlock
	Bytes          []byte
	Resolved       bool
}

// DecodeICCProfile parses an <ICCProfile> element.
func DecodeICCProfile(elem *etree.Element) (DecodedICCProfile, error) {
	loc, comp, hasComp, subBlocks, err := decodeDataAttrs(elem)
	if err != nil {
		return DecodedICCProfile{}, err
	}

	result := DecodedICCProfile{Location: loc, Compression: comp, HasCompression: hasComp, SubBlocks: subBlocks}

	var raw []byte

	switch loc.Kind {
	case datablock.Embedded:
		dataElem := elem.SelectElement(TagData)
		if dataElem == nil {
			return result, nil
		}

		decoded, err := datablock.DecodeTransport(datablock.InlineLocation(datablock.Base64), dataElem.Text())
		if err != nil {
			return DecodedICCProfile{}, err
		}

		raw = decoded
	case datablock.Inline:
		decoded, err := datablock.DecodeTransport(loc, elem.Text())
		if err != nil {
			return DecodedICCProfile{}, err
		}

		raw = decoded
	default:
		return result, nil
	}

	shuffleItemSize := 0
	if hasComp && comp.Shuffled {
		shuffleItemSize = comp.ItemSize
	}

	plain, err := datablock.ReadPayload(raw, comp, hasComp, subBlocks, shuffleItemSize)
	if err != nil {
		return DecodedICCProfile{}, err
	}

	result.Bytes = plain.Bytes()
	result.Resolved = true

	return result, nil
}
