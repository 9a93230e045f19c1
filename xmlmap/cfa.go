package xmlmap

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/image"
	"github.com/xisf-go/libxisf/xisferr"
)

// EncodeColorFilterArray renders a ColorFilterArray as a
// <ColorFilterArray> element.
func EncodeColorFilterArray(cfa image.ColorFilterArray) *etree.Element {
	elem := etree.NewElement(TagColorFilterArray)
	elem.CreateAttr("width", strconv.Itoa(cfa.Width))
	elem.CreateAttr("height", strconv.Itoa(cfa.Height))
	elem.CreateAttr("pattern", cfa.Pattern)

	return elem
}

const cfaAlphabet = "0RGBWCMY"

// DecodeColorFilterArray parses a <ColorFilterArray> element.
func DecodeColorFilterArray(elem *etree.Element) (image.ColorFilterArray, error) {
	width, err := requireIntAttr(elem, "width")
	if err != nil {
		return image.ColorFilterArray{}, err
	}

	height, err := requireIntAttr(elem, "height")
	if err != nil {
		return image.ColorFilterArray{}, err
	}

	pattern, err := requireAttr(elem, "pattern")
	if err != nil {
		return image.ColorFilterArray{}, err
	}

	for _, r := range pattern {
		valid := false
		for _, a := range cfaAlphabet {
			if r == a {
				valid = true
				break
			}
		}

		if !valid {
			return image.ColorFilterArray{}, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("colorFilterArray: invalid pattern character %q", r))
		}
	}

	return image.ColorFilterArray{Width: width, Height: height, Pattern: pattern}, nil
}
