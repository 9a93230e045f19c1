package image

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xisf-go/libxisf/value"
)

func TestNew_Defaults(t *testing.T) {
	img, err := New(4, 3, 2, UInt16)
	require.NoError(t, err)

	assert.Equal(t, Geometry{Width: 4, Height: 3, Channels: 2}, img.Geometry)
	assert.Equal(t, Gray, img.ColorSpace)
	assert.Equal(t, Planar, img.PixelStorage)
	assert.Equal(t, Light, img.Type)
	assert.Equal(t, DefaultBounds, img.Bounds)
	assert.Equal(t, 4*3*2*2, img.Pixels.Data().Len())
}

func TestNew_RejectsNonPositiveGeometry(t *testing.T) {
	_, err := New(0, 3, 2, UInt16)
	assert.Error(t, err)

	_, err = New(4, -1, 2, UInt16)
	assert.Error(t, err)
}

func TestNew_WithOptions(t *testing.T) {
	img, err := New(2, 2, 3, Float32,
		WithColorSpace(RGB),
		WithPixelStorage(Normal),
		WithType(MasterFlat),
		WithBounds(Bounds{Lo: -1, Hi: 1}),
	)
	require.NoError(t, err)

	assert.Equal(t, RGB, img.ColorSpace)
	assert.Equal(t, Normal, img.PixelStorage)
	assert.Equal(t, MasterFlat, img.Type)
	assert.Equal(t, Bounds{Lo: -1, Hi: 1}, img.Bounds)
}

func TestSetGeometryRescales(t *testing.T) {
	img, err := New(2, 2, 1, UInt8)
	require.NoError(t, err)

	require.NoError(t, img.SetGeometry(4, 4, 1))
	assert.Equal(t, 16, img.Pixels.Data().Len())
}

func TestSetSampleFormatRescales(t *testing.T) {
	img, err := New(2, 2, 1, UInt8)
	require.NoError(t, err)

	img.SetSampleFormat(Float64)
	assert.Equal(t, 2*2*8, img.Pixels.Data().Len())
}

func TestPropertyTable_AddRejectsDuplicate(t *testing.T) {
	img, err := New(1, 1, 1, UInt8)
	require.NoError(t, err)

	require.NoError(t, img.AddProperty("Observation:Object:Name", value.NewString("M31"), ""))
	err = img.AddProperty("Observation:Object:Name", value.NewString("M42"), "")
	assert.Error(t, err)
}

func TestPropertyTable_UpdateUpserts(t *testing.T) {
	img, err := New(1, 1, 1, UInt8)
	require.NoError(t, err)

	img.UpdateProperty("Instrument:Camera:Gain", value.NewFloat32(1), "")
	img.UpdateProperty("Instrument:Camera:Gain", value.NewFloat32(2), "updated")

	p, ok := img.GetProperty("Instrument:Camera:Gain")
	require.True(t, ok)

	f, err := p.Value.AsFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(2), f)
	assert.Equal(t, "updated", p.Comment)
}

func TestPropertyTable_PreservesInsertionOrder(t *testing.T) {
	img, err := New(1, 1, 1, UInt8)
	require.NoError(t, err)

	require.NoError(t, img.AddProperty("B", value.NewInt32(2), ""))
	require.NoError(t, img.AddProperty("A", value.NewInt32(1), ""))

	props := img.Properties()
	require.Len(t, props, 2)
	assert.Equal(t, "B", props[0].ID)
	assert.Equal(t, "A", props[1].ID)
}

func TestPropertyTable_RemovePreservesOrder(t *testing.T) {
	img, err := New(1, 1, 1, UInt8)
	require.NoError(t, err)

	require.NoError(t, img.AddProperty("A", value.NewInt32(1), ""))
	require.NoError(t, img.AddProperty("B", value.NewInt32(2), ""))
	require.NoError(t, img.AddProperty("C", value.NewInt32(3), ""))

	img.RemoveProperty("B")

	props := img.Properties()
	require.Len(t, props, 2)
	assert.Equal(t, "A", props[0].ID)
	assert.Equal(t, "C", props[1].ID)

	_, ok := img.GetProperty("B")
	assert.False(t, ok)

	p, ok := img.GetProperty("C")
	require.True(t, ok)
	v, _ := p.Value.AsInt32()
	assert.Equal(t, int32(3), v)
}

func TestFITSKeywords_NotDeduplicated(t *testing.T) {
	img, err := New(1, 1, 1, UInt8)
	require.NoError(t, err)

	img.AddFITSKeyword(FITSKeyword{Name: "GAIN", Value: "1.0"})
	img.AddFITSKeyword(FITSKeyword{Name: "GAIN", Value: "2.0"})

	assert.Len(t, img.FITSKeywords(), 2)
}

func TestAddFITSKeywordAsProperty_KnownKeyword(t *testing.T) {
	img, err := New(1, 1, 1, UInt8)
	require.NoError(t, err)

	require.NoError(t, img.AddFITSKeywordAsProperty(FITSKeyword{Name: "EXPTIME", Value: "30.0"}))

	p, ok := img.GetProperty("Instrument:ExposureTime")
	require.True(t, ok)
	f, err := p.Value.AsFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(30), f)
}

func TestAddFITSKeywordAsProperty_UnknownKeywordIgnored(t *testing.T) {
	img, err := New(1, 1, 1, UInt8)
	require.NoError(t, err)

	require.NoError(t, img.AddFITSKeywordAsProperty(FITSKeyword{Name: "NOTREAL", Value: "x"}))
	assert.Empty(t, img.Properties())
}

func TestAddFITSKeywordAsProperty_AptdiaConversion(t *testing.T) {
	img, err := New(1, 1, 1, UInt8)
	require.NoError(t, err)

	require.NoError(t, img.AddFITSKeywordAsProperty(FITSKeyword{Name: "APTDIA", Value: "2000"}))

	p, ok := img.GetProperty("Instrument:Telescope:Aperture")
	require.True(t, ok)
	f, err := p.Value.AsFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(2), f)
}

func TestConvertPixelStorage_SingleChannelShortCircuits(t *testing.T) {
	img, err := New(2, 2, 1, UInt8)
	require.NoError(t, err)

	before := img.Pixels.Data().Bytes()
	img.ConvertPixelStorageTo(Normal)

	assert.Equal(t, Normal, img.PixelStorage)
	assert.Same(t, &before[0], &img.Pixels.Data().Bytes()[0])
}

func TestConvertPixelStorage_RoundTrip(t *testing.T) {
	img, err := New(2, 2, 3, UInt16)
	require.NoError(t, err)

	data := img.Pixels.Data().Bytes()
	for i := range data {
		data[i] = byte(i + 1)
	}
	original := append([]byte(nil), data...)

	img.ConvertPixelStorageTo(Normal)
	assert.Equal(t, Normal, img.PixelStorage)
	assert.NotEqual(t, original, img.Pixels.Data().Bytes())

	img.ConvertPixelStorageTo(Planar)
	assert.Equal(t, Planar, img.PixelStorage)
	assert.Equal(t, original, img.Pixels.Data().Bytes())
}

func TestConvertPixelStorage_KnownLayout(t *testing.T) {
	// 2 pixels, 2 channels, 1 byte/sample, planar: [c0p0,c0p1, c1p0,c1p1]
	planar := []byte{0xA0, 0xA1, 0xB0, 0xB1}
	normal := planarToNormal(planar, 2, 2, 1)
	assert.Equal(t, []byte{0xA0, 0xB0, 0xA1, 0xB1}, normal)

	back := normalToPlanar(normal, 2, 2, 1)
	assert.Equal(t, planar, back)
}
