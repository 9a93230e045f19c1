package image

import (
	"fmt"

	"github.com/xisf-go/libxisf/bytebuf"
	"github.com/xisf-go/libxisf/datablock"
)

// Geometry is the pixel grid shape. All three fields must be positive.
type Geometry struct {
	Width, Height, Channels int
}

// Image is the in-memory model of one <Image> element: geometry, sample
// format, color model, an ordered property table, an ordered (not
// deduplicated) FITS keyword list, the optional CFA/ICC/Resolution
// sub-elements, and the pixel payload as a DataBlock.
type Image struct {
	Geometry     Geometry
	SampleFormat SampleFormat
	ColorSpace   ColorSpace
	PixelStorage PixelStorage
	Bounds       Bounds
	Type         Type

	// ICCProfile is the optional opaque color profile payload. It is nil
	// when the image has none, and is modeled as a DataBlock (rather than
	// a plain byte slice) so it can be placed as an attachment using the
	// same pipeline as Pixels.
	ICCProfile *datablock.DataBlock
	CFA        *ColorFilterArray
	Resolution *Resolution

	properties   propertyTable
	fitsKeywords []FITSKeyword

	Pixels *datablock.DataBlock
}

// Option configures an Image at construction time.
type Option func(*Image)

// WithColorSpace sets the color model.
func WithColorSpace(c ColorSpace) Option {
	return func(img *Image) { img.ColorSpace = c }
}

// WithPixelStorage sets the sample interleaving layout.
func WithPixelStorage(p PixelStorage) Option {
	return func(img *Image) { img.PixelStorage = p }
}

// WithType sets the acquisition/calibration role.
func WithType(t Type) Option {
	return func(img *Image) { img.Type = t }
}

// WithBounds sets the pixel value range.
func WithBounds(b Bounds) Option {
	return func(img *Image) { img.Bounds = b }
}

// New constructs an Image with zero-filled pixel data sized to
// width*height*channels*sizeOf(format), per the Image size invariant.
func New(width, height, channels int, format SampleFormat, opts ...Option) (*Image, error) {
	if width <= 0 || height <= 0 || channels <= 0 {
		return nil, fmt.Errorf("image: width, height and channels must all be positive, got %d,%d,%d", width, height, channels)
	}

	img := &Image{
		Geometry:     Geometry{Width: width, Height: height, Channels: channels},
		SampleFormat: format,
		ColorSpace:   Gray,
		PixelStorage: Planar,
		Bounds:       DefaultBounds,
		Type:         Light,
		properties:   newPropertyTable(),
	}

	size := width * height * channels * format.ElementSize()
	img.Pixels = datablock.NewEmbedded(bytebuf.New(size))

	for _, opt := range opts {
		opt(img)
	}

	return img, nil
}

// PixelDataSize returns the expected byte length of the pixel payload for
// the image's current geometry and sample format.
func (img *Image) PixelDataSize() int {
	return img.Geometry.Width * img.Geometry.Height * img.Geometry.Channels * img.SampleFormat.ElementSize()
}

// SetGeometry changes the pixel grid shape, rescaling the pixel buffer
// (zero-filled) and updating the shuffle item size if shuffling was
// active, per the spec's "setGeometry has the same rescale effect [as
// SetSampleFormat]" rule.
func (img *Image) SetGeometry(width, height, channels int) error {
	if width <= 0 || height <= 0 || channels <= 0 {
		return fmt.Errorf("image: width, height and channels must all be positive, got %d,%d,%d", width, height, channels)
	}

	img.Geometry = Geometry{Width: width, Height: height, Channels: channels}
	img.rescalePixels()

	return nil
}

// SetSampleFormat changes the sample element type, rescaling the pixel
// buffer and updating the shuffle item size if shuffling is active.
func (img *Image) SetSampleFormat(format SampleFormat) {
	img.SampleFormat = format
	img.rescalePixels()
}

func (img *Image) rescalePixels() {
	size := img.PixelDataSize()
	img.Pixels.SetData(bytebuf.New(size))

	if img.Pixels.ShuffleItemSize > 1 {
		img.Pixels.ShuffleItemSize = img.SampleFormat.ElementSize()
	}
}
