package image

import "github.com/xisf-go/libxisf/bytebuf"

// ConvertPixelStorageTo performs the deep transpose between Planar layout
// ([c0[0..n], c1[0..n], ...]) and Normal layout ([p0_c0, p0_c1, ...,
// p1_c0, ...]), where n = width*height. Single-channel images short-circuit:
// there is nothing to transpose, so only the storage tag changes.
//
// The transpose operates on whole samples (elementSize bytes), dispatched
// on SampleFormat exactly as ByteShuffle dispatches on item size, but here
// the unit being moved is one sample rather than one byte.
func (img *Image) ConvertPixelStorageTo(target PixelStorage) {
	if img.PixelStorage == target {
		return
	}

	if img.Geometry.Channels == 1 {
		img.PixelStorage = target
		return
	}

	data := img.Pixels.Data().Bytes()
	elemSize := img.SampleFormat.ElementSize()
	pixels := img.Geometry.Width * img.Geometry.Height
	channels := img.Geometry.Channels

	var out []byte
	if target == Normal {
		out = planarToNormal(data, pixels, channels, elemSize)
	} else {
		out = normalToPlanar(data, pixels, channels, elemSize)
	}

	img.Pixels.SetData(bytebuf.FromBytes(out))
	img.PixelStorage = target
}

func planarToNormal(src []byte, pixels, channels, elemSize int) []byte {
	planeSize := pixels * elemSize
	out := make([]byte, len(src))

	for c := 0; c < channels; c++ {
		plane := src[c*planeSize : (c+1)*planeSize]
		for i := 0; i < pixels; i++ {
			srcOff := i * elemSize
			dstOff := (i*channels + c) * elemSize
			copy(out[dstOff:dstOff+elemSize], plane[srcOff:srcOff+elemSize])
		}
	}

	return out
}

func normalToPlanar(src []byte, pixels, channels, elemSize int) []byte {
	planeSize := pixels * elemSize
	out := make([]byte, len(src))

	for c := 0; c < channels; c++ {
		plane := out[c*planeSize : (c+1)*planeSize]
		for i := 0; i < pixels; i++ {
			srcOff := (i*channels + c) * elemSize
			dstOff := i * elemSize
			copy(plane[dstOff:dstOff+elemSize], src[srcOff:srcOff+elemSize])
		}
	}

	return out
}
