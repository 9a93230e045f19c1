package xmlmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/xisf-go/libxisf/bytebuf"
	"github.com/xisf-go/libxisf/datablock"
	"github.com/xisf-go/libxisf/image"
	"github.com/xisf-go/libxisf/xisferr"
)

// PropertyWritePlan supplies the location and (for vector/matrix kinds)
// prepared payload bytes a caller's write pipeline produced for one
// Image-level property.
type PropertyWritePlan struct {
	Location datablock.Location
	Prepared datablock.PreparedPayload
}

// EncodeImage renders an Image as an <Image> element. pixelsLoc/prepared
// describe the primary pixel DataBlock; iccPrepared is nil when the image
// carries no ICC profile; propPlans supplies write plans for vector/matrix
// properties, keyed by property id (scalar/string properties need none).
func EncodeImage(
	img *image.Image,
	pixelsLoc datablock.Location,
	pixelsPrepared datablock.PreparedPayload,
	iccLoc datablock.Location,
	iccPrepared *datablock.PreparedPayload,
	propPlans map[string]PropertyWritePlan,
) (*etree.Element, error) {
	elem := etree.NewElement(TagImage)
	elem.CreateAttr("geometry", fmt.Sprintf("%d:%d:%d", img.Geometry.Width, img.Geometry.Height, img.Geometry.Channels))
	elem.CreateAttr("sampleFormat", img.SampleFormat.String())
	elem.CreateAttr("colorSpace", img.ColorSpace.String())
	elem.CreateAttr("pixelStorage", img.PixelStorage.String())
	elem.CreateAttr("imageType", img.Type.String())

	if !img.Bounds.IsDefault() && img.SampleFormat.IsFloat() {
		elem.CreateAttr("bounds", fmt.Sprintf("%s:%s",
			strconv.FormatFloat(img.Bounds.Lo, 'g', -1, 64),
			strconv.FormatFloat(img.Bounds.Hi, 'g', -1, 64)))
	}

	encodeDataAttrs(elem, pixelsLoc, pixelsPrepared.Compression, pixelsPrepared.HasCompression, pixelsPrepared.SubBlocks)

	if pixelsLoc.Kind == datablock.Embedded {
		data := etree.NewElement(TagData)
		data.CreateAttr("encoding", "base64")
		encoded, err := datablock.EncodeTransport(datablock.Base64, pixelsPrepared.Bytes)
		if err != nil {
			return nil, err
		}

		data.SetText(encoded)
		elem.AddChild(data)
	} else if pixelsLoc.Kind == datablock.Inline {
		encoded, err := datablock.EncodeTransport(pixelsLoc.Transport, pixelsPrepared.Bytes)
		if err != nil {
			return nil, err
		}

		elem.SetText(encoded)
	}

	if img.Resolution != nil {
		elem.AddChild(EncodeResolution(*img.Resolution))
	}

	if img.CFA != nil {
		elem.AddChild(EncodeColorFilterArray(*img.CFA))
	}

	if img.ICCProfile != nil {
		if iccPrepared == nil {
			return nil, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("xmlmap: image has an ICC profile but no prepared payload was supplied"))
		}

		iccElem, err := EncodeICCProfile(iccLoc, iccPrepared.Compression, iccPrepared.HasCompression, iccPrepared.Bytes, iccPrepared.SubBlocks)
		if err != nil {
			return nil, err
		}

		elem.AddChild(iccElem)
	}

	for _, p := range img.Properties() {
		plan := propPlans[p.ID]

		propElem, err := EncodeProperty(p, plan.Location, plan.Prepared.Compression, plan.Prepared.HasCompression, plan.Prepared.Bytes, plan.Prepared.SubBlocks)
		if err != nil {
			return nil, err
		}

		elem.AddChild(propElem)
	}

	for _, k := range img.FITSKeywords() {
		elem.AddChild(EncodeFITSKeyword(k))
	}

	return elem, nil
}

// DecodedImage is the result of parsing an <Image> element. When Pixels or
// ICCProfile are attachment-backed, img.Pixels / img.ICCProfile carry their
// Location but no resident data (DataBlock.IsResident() is false); the
// caller fetches the attachment bytes and calls DataBlock.SetData after
// running them through the datablock read pipeline. PendingProperties
// lists vector/matrix properties that are similarly attachment-backed,
// completed via FinishAttachmentProperty.
type DecodedImage struct {
	Image             *image.Image
	PendingProperties []DecodedProperty
}

// DecodeImage parses an <Image> element.
func DecodeImage(elem *etree.Element) (DecodedImage, error) {
	geomText, err := requireAttr(elem, "geometry")
	if err != nil {
		return DecodedImage{}, err
	}

	width, height, channels, err := parseGeometry(geomText)
	if err != nil {
		return DecodedImage{}, err
	}

	sampleFormat := image.ParseSampleFormat(elem.SelectAttrValue("sampleFormat", "UInt16"))

	img, err := image.New(width, height, channels, sampleFormat,
		image.WithColorSpace(image.ParseColorSpace(elem.SelectAttrValue("colorSpace", "Gray"))),
		image.WithPixelStorage(image.ParsePixelStorage(elem.SelectAttrValue("pixelStorage", "Planar"))),
		image.WithType(image.ParseType(elem.SelectAttrValue("imageType", "Light"))),
	)
	if err != nil {
		return DecodedImage{}, err
	}

	if boundsAttr := elem.SelectAttr("bounds"); boundsAttr != nil {
		lo, hi, err := parseBounds(boundsAttr.Value)
		if err != nil {
			return DecodedImage{}, err
		}

		img.Bounds = image.Bounds{Lo: lo, Hi: hi}
	}

	loc, comp, hasComp, subBlocks, err := decodeDataAttrs(elem)
	if err != nil {
		return DecodedImage{}, err
	}

	result := DecodedImage{Image: img}

	img.Pixels = &datablock.DataBlock{Location: loc, Compression: comp, HasCompression: hasComp, SubBlocks: subBlocks}

	var raw []byte

	switch loc.Kind {
	case datablock.Embedded:
		dataElem := elem.SelectElement(TagData)
		if dataElem == nil {
			return DecodedImage{}, xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("embedded image missing <Data> child"))
		}

		decoded, err := datablock.DecodeTransport(datablock.InlineLocation(datablock.Base64), dataElem.Text())
		if err != nil {
			return DecodedImage{}, err
		}

		raw = decoded
	case datablock.Inline:
		decoded, err := datablock.DecodeTransport(loc, elem.Text())
		if err != nil {
			return DecodedImage{}, err
		}

		raw = decoded
	default:
		// Attachment-backed: img.Pixels.Location carries pos/size for the
		// caller to fetch lazily; UncompressedSize is still knowable now.
		if hasComp {
			img.Pixels.UncompressedSize = comp.UncompressedSize
		} else {
			img.Pixels.UncompressedSize = loc.Size
		}
	}

	if raw != nil {
		shuffleItemSize := 0
		if hasComp && comp.Shuffled {
			shuffleItemSize = comp.ItemSize
		}

		plain, err := datablock.ReadPayload(raw, comp, hasComp, subBlocks, shuffleItemSize)
		if err != nil {
			return DecodedImage{}, err
		}

		img.Pixels.SetData(plain)
		img.Pixels.ShuffleItemSize = shuffleItemSize
	}

	if resElem := elem.SelectElement(TagResolution); resElem != nil {
		res, err := DecodeResolution(resElem)
		if err != nil {
			return DecodedImage{}, err
		}

		img.Resolution = &res
	}

	if cfaElem := elem.SelectElement(TagColorFilterArray); cfaElem != nil {
		cfa, err := DecodeColorFilterArray(cfaElem)
		if err != nil {
			return DecodedImage{}, err
		}

		img.CFA = &cfa
	}

	if iccElem := elem.SelectElement(TagICCProfile); iccElem != nil {
		icc, err := DecodeICCProfile(iccElem)
		if err != nil {
			return DecodedImage{}, err
		}

		if icc.Resolved {
			img.ICCProfile = datablock.NewEmbedded(bytebuf.FromBytes(icc.Bytes))
		} else {
			// Attachment-backed: Location carries pos/size for the caller
			// to fetch lazily.
			uncompressedSize := icc.Location.Size
			if icc.HasCompression {
				uncompressedSize = icc.Compression.UncompressedSize
			}

			img.ICCProfile = &datablock.DataBlock{
				Location: icc.Location, Compression: icc.Compression, HasCompression: icc.HasCompression,
				SubBlocks: icc.SubBlocks, UncompressedSize: uncompressedSize,
			}
		}
	}

	for _, propElem := range elem.SelectElements(TagProperty) {
		decoded, err := DecodeProperty(propElem)
		if err != nil {
			return DecodedImage{}, err
		}

		if !decoded.Resolved {
			result.PendingProperties = append(result.PendingProperties, decoded)
			continue
		}

		img.UpdateProperty(decoded.Property.ID, decoded.Property.Value, decoded.Property.Comment)
	}

	for _, fkElem := range elem.SelectElements(TagFITSKeyword) {
		fk, err := DecodeFITSKeyword(fkElem)
		if err != nil {
			return DecodedImage{}, err
		}

		img.AddFITSKeyword(fk)
	}

	return result, nil
}

func parseGeometry(text string) (width, height, channels int, err error) {
	parts := strings.Split(text, ":")
	if len(parts) != 3 {
		return 0, 0, 0, xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("geometry %q must be W:H:C", text))
	}

	width, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, xisferr.New(xisferr.KindMalformedHeader, err)
	}

	height, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, xisferr.New(xisferr.KindMalformedHeader, err)
	}

	channels, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, xisferr.New(xisferr.KindMalformedHeader, err)
	}

	if width <= 0 || height <= 0 || channels <= 0 {
		return 0, 0, 0, xisferr.New(xisferr.KindInvalidValue, fmt.Errorf("geometry %q must have three positive integers", text))
	}

	return width, height, channels, nil
}

func parseBounds(text string) (lo, hi float64, err error) {
	parts := strings.Split(text, ":")
	if len(parts) != 2 {
		return 0, 0, xisferr.New(xisferr.KindMalformedHeader, fmt.Errorf("bounds %q must be lo:hi", text))
	}

	lo, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, xisferr.New(xisferr.KindMalformedHeader, err)
	}

	hi, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, xisferr.New(xisferr.KindMalformedHeader, err)
	}

	return lo, hi, nil
}
