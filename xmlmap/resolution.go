package xmlmap

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/image"
	"github.com/xisf-go/libxisf/xisferr"
)

// EncodeResolution renders a Resolution as a <Resolution> element.
func EncodeResolution(r image.Resolution) *etree.Element {
	elem := etree.NewElement(TagResolution)
	elem.CreateAttr("horizontal", strconv.FormatFloat(r.X, 'g', -1, 64))
	elem.CreateAttr("vertical", strconv.FormatFloat(r.Y, 'g', -1, 64))
	elem.CreateAttr("unit", r.Unit)

	return elem
}

// DecodeResolution parses a <Resolution> element.
func DecodeResolution(elem *etree.Element) (image.Resolution, error) {
	x, err := requireFloatAttr(elem, "horizontal")
	if err != nil {
		return image.Resolution{}, err
	}

	y, err := requireFloatAttr(elem, "vertical")
	if err != nil {
		return image.Resolution{}, err
	}

	unit := elem.SelectAttrValue("unit", "inch")

	return image.Resolution{X: x, Y: y, Unit: unit}, nil
}

func requireFloatAttr(elem *etree.Element, name string) (float64, error) {
	text, err := requireAttr(elem, name)
	if err != nil {
		return 0, err
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, xisferr.New(xisferr.KindMalformedHeader, err)
	}

	return f, nil
}
