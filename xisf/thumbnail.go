package xisf

import (
	"errors"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/compress"
	"github.com/xisf-go/libxisf/datablock"
	"github.com/xisf-go/libxisf/xisferr"
)

const tagThumbnail = "Thumbnail"

var errThumbnailMissingData = errors.New("thumbnail: embedded location requires a <Data> child")

// Thumbnail is an opaque pass-through for the optional <Thumbnail> child of
// the root element. spec.md names its presence but not its shape; this
// module carries it as a located, optionally compressed DataBlock plus
// whatever other attributes the element carried (geometry, sampleFormat,
// and similar are preserved verbatim rather than interpreted), so a file
// that has one keeps the thumbnail's attribute values and payload bytes
// across a read/write cycle without this module assigning any pixel
// semantics to it. Attribute order, and the payload's location and
// compression, follow the Writer on output rather than the source file.
type Thumbnail struct {
	Attrs map[string]string
	Block *datablock.DataBlock
}

func decodeThumbnail(elem *etree.Element) (*Thumbnail, error) {
	loc, comp, hasComp, subBlocks, err := parseThumbnailDataAttrs(elem)
	if err != nil {
		return nil, err
	}

	attrs := make(map[string]string)
	for _, a := range elem.Attr {
		switch a.Key {
		case "location", "compression", "subblocks":
			continue
		default:
			attrs[a.Key] = a.Value
		}
	}

	block := &datablock.DataBlock{Location: loc, Compression: comp, HasCompression: hasComp, SubBlocks: subBlocks}

	var raw []byte

	switch loc.Kind {
	case datablock.Embedded:
		dataElem := elem.SelectElement("Data")
		if dataElem == nil {
			return nil, xisferr.New(xisferr.KindMalformedHeader, errThumbnailMissingData)
		}

		raw, err = datablock.DecodeTransport(datablock.InlineLocation(datablock.Base64), dataElem.Text())
		if err != nil {
			return nil, err
		}
	case datablock.Inline:
		raw, err = datablock.DecodeTransport(loc, elem.Text())
		if err != nil {
			return nil, err
		}
	default:
		if hasComp {
			block.UncompressedSize = comp.UncompressedSize
		} else {
			block.UncompressedSize = loc.Size
		}

		return &Thumbnail{Attrs: attrs, Block: block}, nil
	}

	shuffleItemSize := 0
	if hasComp && comp.Shuffled {
		shuffleItemSize = comp.ItemSize
	}

	plain, err := datablock.ReadPayload(raw, comp, hasComp, subBlocks, shuffleItemSize)
	if err != nil {
		return nil, err
	}

	block.SetData(plain)
	block.ShuffleItemSize = shuffleItemSize

	return &Thumbnail{Attrs: attrs, Block: block}, nil
}

func encodeThumbnail(t *Thumbnail, loc datablock.Location, prepared datablock.PreparedPayload) (*etree.Element, error) {
	elem := etree.NewElement(tagThumbnail)

	for k, v := range t.Attrs {
		elem.CreateAttr(k, v)
	}

	elem.CreateAttr("location", loc.String())

	if prepared.HasCompression {
		elem.CreateAttr("compression", prepared.Compression.String())

		if prepared.SubBlocks != nil {
			elem.CreateAttr("subblocks", datablock.FormatSubBlocks(prepared.SubBlocks))
		}
	}

	switch loc.Kind {
	case datablock.Embedded:
		data := etree.NewElement("Data")
		data.CreateAttr("encoding", "base64")
		encoded, err := datablock.EncodeTransport(datablock.Base64, prepared.Bytes)
		if err != nil {
			return nil, err
		}

		data.SetText(encoded)
		elem.AddChild(data)
	case datablock.Inline:
		encoded, err := datablock.EncodeTransport(loc.Transport, prepared.Bytes)
		if err != nil {
			return nil, err
		}

		elem.SetText(encoded)
	}

	return elem, nil
}

func parseThumbnailDataAttrs(elem *etree.Element) (datablock.Location, datablock.CompressionAttr, bool, []compress.SubBlock, error) {
	locText := elem.SelectAttrValue("location", "embedded")

	loc, err := datablock.ParseLocation(locText)
	if err != nil {
		return datablock.Location{}, datablock.CompressionAttr{}, false, nil, err
	}

	var (
		comp    datablock.CompressionAttr
		hasComp bool
		subs    []compress.SubBlock
	)

	if compAttr := elem.SelectAttr("compression"); compAttr != nil {
		comp, err = datablock.ParseCompressionAttr(compAttr.Value)
		if err != nil {
			return datablock.Location{}, datablock.CompressionAttr{}, false, nil, err
		}

		hasComp = true
	}

	if sbAttr := elem.SelectAttr("subblocks"); sbAttr != nil {
		subs, err = datablock.ParseSubBlocks(sbAttr.Value)
		if err != nil {
			return datablock.Location{}, datablock.CompressionAttr{}, false, nil, err
		}
	}

	return loc, comp, hasComp, subs, nil
}
