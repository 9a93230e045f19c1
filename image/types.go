// Package image implements the in-memory Image model: geometry, sample
// format, color model, the ordered property table, the FITS keyword list,
// the optional CFA/ICC/Resolution sub-elements, and planar <-> normal pixel
// layout conversion.
package image

import "fmt"

// SampleFormat names the pixel element type.
type SampleFormat int

const (
	UInt8 SampleFormat = iota
	UInt16
	UInt32
	UInt64
	Float32
	Float64
	Complex32
	Complex64
)

var sampleFormatNames = [...]string{
	UInt8: "UInt8", UInt16: "UInt16", UInt32: "UInt32", UInt64: "UInt64",
	Float32: "Float32", Float64: "Float64", Complex32: "Complex32", Complex64: "Complex64",
}

func (f SampleFormat) String() string {
	if int(f) < len(sampleFormatNames) {
		return sampleFormatNames[f]
	}

	return fmt.Sprintf("SampleFormat(%d)", int(f))
}

// ElementSize returns the size in bytes of one sample.
func (f SampleFormat) ElementSize() int {
	switch f {
	case UInt8:
		return 1
	case UInt16:
		return 2
	case UInt32, Float32:
		return 4
	case UInt64, Float64, Complex32:
		return 8
	case Complex64:
		return 16
	default:
		panic(fmt.Sprintf("image: unknown sample format %v", f))
	}
}

// IsFloat reports whether f is a floating-point or complex format, the set
// of formats for which bounds are meaningful.
func (f SampleFormat) IsFloat() bool {
	switch f {
	case Float32, Float64, Complex32, Complex64:
		return true
	default:
		return false
	}
}

// ParseSampleFormat resolves a wire name, falling back to UInt16 (the spec
// default) for unknown names rather than failing the parse.
func ParseSampleFormat(name string) SampleFormat {
	for i, n := range sampleFormatNames {
		if n == name {
			return SampleFormat(i)
		}
	}

	return UInt16
}

// ColorSpace names the pixel color model.
type ColorSpace int

const (
	Gray ColorSpace = iota
	RGB
	CIELab
)

var colorSpaceNames = [...]string{Gray: "Gray", RGB: "RGB", CIELab: "CIELab"}

func (c ColorSpace) String() string {
	if int(c) < len(colorSpaceNames) {
		return colorSpaceNames[c]
	}

	return fmt.Sprintf("ColorSpace(%d)", int(c))
}

// ParseColorSpace resolves a wire name, falling back to Gray for unknown
// names.
func ParseColorSpace(name string) ColorSpace {
	for i, n := range colorSpaceNames {
		if n == name {
			return ColorSpace(i)
		}
	}

	return Gray
}

// PixelStorage names the sample interleaving layout.
type PixelStorage int

const (
	Planar PixelStorage = iota
	Normal
)

var pixelStorageNames = [...]string{Planar: "Planar", Normal: "Normal"}

func (p PixelStorage) String() string {
	if int(p) < len(pixelStorageNames) {
		return pixelStorageNames[p]
	}

	return fmt.Sprintf("PixelStorage(%d)", int(p))
}

// ParsePixelStorage resolves a wire name, falling back to Planar for
// unknown names.
func ParsePixelStorage(name string) PixelStorage {
	for i, n := range pixelStorageNames {
		if n == name {
			return PixelStorage(i)
		}
	}

	return Planar
}

// Type names the acquisition/calibration role of an image.
type Type int

const (
	Light Type = iota
	Bias
	Dark
	Flat
	MasterBias
	MasterDark
	MasterFlat
	DefectMap
	RejectionMapHigh
	RejectionMapLow
	BinaryRejectionMapHigh
	BinaryRejectionMapLow
	SlopeMap
	WeightMap
)

var imageTypeNames = [...]string{
	Light: "Light", Bias: "Bias", Dark: "Dark", Flat: "Flat",
	MasterBias: "MasterBias", MasterDark: "MasterDark", MasterFlat: "MasterFlat",
	DefectMap: "DefectMap", RejectionMapHigh: "RejectionMapHigh", RejectionMapLow: "RejectionMapLow",
	BinaryRejectionMapHigh: "BinaryRejectionMapHigh", BinaryRejectionMapLow: "BinaryRejectionMapLow",
	SlopeMap: "SlopeMap", WeightMap: "WeightMap",
}

func (t Type) String() string {
	if int(t) < len(imageTypeNames) {
		return imageTypeNames[t]
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType resolves a wire name, falling back to Light (the spec default)
// for unknown names.
func ParseType(name string) Type {
	for i, n := range imageTypeNames {
		if n == name {
			return Type(i)
		}
	}

	return Light
}

// Bounds is the (lo, hi) pixel value range, meaningful only for float
// sample formats. The spec default is (0.0, 1.0) and is serialized only
// when the pair differs from it.
type Bounds struct {
	Lo, Hi float64
}

// DefaultBounds is (0.0, 1.0).
var DefaultBounds = Bounds{Lo: 0, Hi: 1}

// IsDefault reports whether b equals the spec default.
func (b Bounds) IsDefault() bool { return b == DefaultBounds }

// ColorFilterArray describes the Bayer-like mosaic over a sensor.
type ColorFilterArray struct {
	Width, Height int
	Pattern       string // over the alphabet {0,R,G,B,W,C,M,Y}
}

// Resolution records horizontal/vertical pixel density. Not part of
// spec.md's data model; an Image carries it as an optional extra.
type Resolution struct {
	X, Y float64
	Unit string // e.g. "inch" or "cm"
}
