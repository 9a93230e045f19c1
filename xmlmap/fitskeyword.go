package xmlmap

import (
	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/image"
)

// EncodeFITSKeyword renders a FITSKeyword as a <FITSKeyword> element.
func EncodeFITSKeyword(k image.FITSKeyword) *etree.Element {
	elem := etree.NewElement(TagFITSKeyword)
	elem.CreateAttr("name", k.Name)
	elem.CreateAttr("value", k.Value)

	if k.Comment != "" {
		elem.CreateAttr("comment", k.Comment)
	}

	return elem
}

// DecodeFITSKeyword parses a <FITSKeyword> element.
func DecodeFITSKeyword(elem *etree.Element) (image.FITSKeyword, error) {
	name, err := requireAttr(elem, "name")
	if err != nil {
		return image.FITSKeyword{}, err
	}

	value, err := requireAttr(elem, "value")
	if err != nil {
		return image.FITSKeyword{}, err
	}

	comment := elem.SelectAttrValue("comment", "")

	return image.FITSKeyword{Name: name, Value: value, Comment: comment}, nil
}
