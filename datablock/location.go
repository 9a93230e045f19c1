// Package datablock implements the location-aware, codec- and
// shuffle-driven payload descriptor at the center of the serialization
// engine: the `compression`/`location` attribute grammars, and the
// symmetric compress/shuffle write pipeline and decompress/unshuffle read
// pipeline that sit between them.
package datablock

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xisf-go/libxisf/xisferr"
)

// Transport names the inline text encoding used by Kind == Inline.
type Transport int

const (
	transportNone Transport = iota
	Base64
	Base16
)

func (t Transport) String() string {
	switch t {
	case Base64:
		return "base64"
	case Base16:
		return "base16"
	default:
		return "none"
	}
}

// LocationKind names one of the three persistent DataBlock locations.
type LocationKind int

const (
	Embedded LocationKind = iota
	Inline
	Attachment
)

// Location is the parsed form of the `location` attribute grammar:
//
//	location := "embedded"
//	          | "inline" ":" ("base64" | "base16")
//	          | "attachment" ":" byteOffset ":" byteLength
type Location struct {
	Kind      LocationKind
	Transport Transport // valid when Kind == Inline
	Pos, Size uint64    // valid when Kind == Attachment
}

// AttachmentPlaceholder is the sentinel attachment offset a Writer emits
// before the header size is known. Its decimal length (10 digits) exceeds
// any plausible real offset, leaving room for in-place substitution once
// the true offset is computed.
const AttachmentPlaceholder uint64 = 2147483648

// EmbeddedLocation, InlineLocation and AttachmentLocation construct each
// Location variant.
func EmbeddedLocation() Location { return Location{Kind: Embedded} }

func InlineLocation(transport Transport) Location {
	return Location{Kind: Inline, Transport: transport}
}

func AttachmentLocation(pos, size uint64) Location {
	return Location{Kind: Attachment, Pos: pos, Size: size}
}

// String renders the location attribute text.
func (l Location) String() string {
	switch l.Kind {
	case Embedded:
		return "embedded"
	case Inline:
		return "inline:" + l.Transport.String()
	case Attachment:
		return fmt.Sprintf("attachment:%d:%d", l.Pos, l.Size)
	default:
		return "embedded"
	}
}

// ParseLocation parses the `location` attribute grammar.
func ParseLocation(text string) (Location, error) {
	if text == "embedded" {
		return EmbeddedLocation(), nil
	}

	parts := strings.Split(text, ":")

	switch parts[0] {
	case "inline":
		if len(parts) != 2 {
			return Location{}, xisferr.Newf(xisferr.KindMalformedHeader, text, errMalformedLocation)
		}

		switch parts[1] {
		case "base64":
			return InlineLocation(Base64), nil
		case "base16":
			return InlineLocation(Base16), nil
		default:
			return Location{}, xisferr.Newf(xisferr.KindMalformedHeader, text, errMalformedLocation)
		}
	case "attachment":
		if len(parts) != 3 {
			return Location{}, xisferr.Newf(xisferr.KindMalformedHeader, text, errMalformedLocation)
		}

		pos, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return Location{}, xisferr.Newf(xisferr.KindMalformedHeader, text, err)
		}

		size, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return Location{}, xisferr.Newf(xisferr.KindMalformedHeader, text, err)
		}

		return AttachmentLocation(pos, size), nil
	default:
		return Location{}, xisferr.Newf(xisferr.KindMalformedHeader, text, errMalformedLocation)
	}
}

var errMalformedLocation = fmt.Errorf("malformed location attribute")
