package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation selects the resampling kernel used by Resize.
type Interpolation int

const (
	// InterpolationLinear is bilinear sampling, OpenCV's INTER_LINEAR and
	// the default for frame reduction.
	InterpolationLinear Interpolation = iota

	// InterpolationArea uses Catmull-Rom, which is the closest x/image
	// scaler to INTER_AREA for heavy downscaling.
	InterpolationArea

	// InterpolationNearest picks the nearest source pixel.
	InterpolationNearest
)

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationArea:
		return draw.CatmullRom
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.BiLinear
	}
}

// Resize resamples img to exactly width x height. Resizing to the current
// size returns an unchanged copy.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	if img.Width() == width && img.Height() == height {
		return img.Clone()
	}

	dst := NewRGBAImage(width, height)
	interp.scaler().Scale(dst.RGBA, image.Rect(0, 0, width, height),
		img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}
