// Package xmlmap maps the Image/Property/FITSKeyword/ColorFilterArray/
// ICCProfile/Metadata/Resolution elements of the XISF header DOM onto the
// domain types in the value/datablock/image packages, using beevik/etree
// as the DOM the rest of the engine treats as an external collaborator.
//
// Every element type's attribute set is fixed here explicitly: a Writer
// built on this package never invents attributes a reader does not
// expect, and a Reader rejects nothing it does not recognize (unknown
// child elements are skipped, matching the container's own tolerance for
// forward-compatible extension).
package xmlmap

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/compress"
	"github.com/xisf-go/libxisf/datablock"
	"github.com/xisf-go/libxisf/xisferr"
)

// Element tag names.
const (
	TagImage            = "Image"
	TagProperty         = "Property"
	TagFITSKeyword      = "FITSKeyword"
	TagColorFilterArray = "ColorFilterArray"
	TagICCProfile       = "ICCProfile"
	TagMetadata         = "Metadata"
	TagResolution       = "Resolution"
	TagData             = "Data"
)

// encodeDataAttrs writes the location/compression/subblocks attributes a
// DataBlock-backed element shares, regardless of where the block's bytes
// sit: in the element's own text (inline), in a nested <Data> child
// (embedded), or in the attachment region.
func encodeDataAttrs(elem *etree.Element, loc datablock.Location, comp datablock.CompressionAttr, hasComp bool, subBlocks []compress.SubBlock) {
	elem.CreateAttr("location", loc.String())

	if hasComp {
		elem.CreateAttr("compression", comp.String())

		if subBlocks != nil {
			elem.CreateAttr("subblocks", datablock.FormatSubBlocks(subBlocks))
		}
	}
}

// decodeDataAttrs parses the location/compression/subblocks attributes
// shared by DataBlock-backed elements.
func decodeDataAttrs(elem *etree.Element) (loc datablock.Location, comp datablock.CompressionAttr, hasComp bool, subBlocks []compress.SubBlock, err error) {
	locText := elem.SelectAttrValue("location", "embedded")

	loc, err = datablock.ParseLocation(locText)
	if err != nil {
		return datablock.Location{}, datablock.CompressionAttr{}, false, nil, err
	}

	if compAttr := elem.SelectAttr("compression"); compAttr != nil {
		comp, err = datablock.ParseCompressionAttr(compAttr.Value)
		if err != nil {
			return datablock.Location{}, datablock.CompressionAttr{}, false, nil, err
		}

		hasComp = true
	}

	if sbAttr := elem.SelectAttr("subblocks"); sbAttr != nil {
		subBlocks, err = datablock.ParseSubBlocks(sbAttr.Value)
		if err != nil {
			return datablock.Location{}, datablock.CompressionAttr{}, false, nil, err
		}
	}

	return loc, comp, hasComp, subBlocks, nil
}

func requireAttr(elem *etree.Element, name string) (string, error) {
	attr := elem.SelectAttr(name)
	if attr == nil {
		return "", xisferr.Newf(xisferr.KindMalformedHeader, elem.Tag, fmt.Errorf("missing required attribute %q", name))
	}

	return attr.Value, nil
}
