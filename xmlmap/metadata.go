package xmlmap

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/datablock"
	"github.com/xisf-go/libxisf/image"
	"github.com/xisf-go/libxisf/xisferr"
)

// EncodeMetadata renders file-level properties as a <Metadata> element
// containing one <Property> child per entry. Every entry here is a
// scalar/string property (XISF:CreationTime, XISF:CreatorApplication,
// XISF:CreatorModule); none carry a DataBlock payload.
func EncodeMetadata(props []image.Property) (*etree.Element, error) {
	elem := etree.NewElement(TagMetadata)

	for _, p := range props {
		child, err := EncodeProperty(p, datablock.Location{}, datablock.CompressionAttr{}, false, nil, nil)
		if err != nil {
			return nil, err
		}

		elem.AddChild(child)
	}

	return elem, nil
}

// DecodeMetadata parses a <Metadata> element's <Property> children.
// Vector/matrix metadata properties are not meaningful at the file level;
// DecodeMetadata rejects them rather than accepting a zero-valued Property
// when one is attachment-backed and never fetched.
func DecodeMetadata(elem *etree.Element) ([]image.Property, error) {
	var props []image.Property

	for _, child := range elem.SelectElements(TagProperty) {
		decoded, err := DecodeProperty(child)
		if err != nil {
			return nil, err
		}

		if decoded.Kind.IsVector() || decoded.Kind.IsMatrix() {
			return nil, xisferr.New(xisferr.KindUnsupportedFeature, fmt.Errorf("metadata property %q: vector/matrix values are not valid at the file level", decoded.Property.ID))
		}

		props = append(props, decoded.Property)
	}

	return props, nil
}
