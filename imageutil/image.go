// Package imageutil holds the pure Go raster operations used by the frame
// pipeline: resampling, luminance, Canny edges and 8-bit blending.
//
// The operations follow OpenCV's semantics closely enough that the gocv
// backed analyzer in package opencv can be swapped in without changing the
// rendered output in any meaningful way.
package imageutil

import (
	"fmt"
	"image"
	"image/color"
)

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage is a video frame. Alpha is always 255.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage allocates a black, opaque frame.
func NewRGBAImage(width, height int) *RGBAImage {
	img := &RGBAImage{RGBA: image.NewRGBA(image.Rect(0, 0, width, height))}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

// RGBAImageFromImage copies any decoded image into a frame with its
// origin moved to (0, 0).
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	dst := NewRGBAImage(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dst.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return dst
}

// RGBAImageFromRGB24 builds a frame from packed RGB triplets, the layout
// ffmpeg emits for -pix_fmt rgb24.
func RGBAImageFromRGB24(width, height int, buf []byte) (*RGBAImage, error) {
	if want := width * height * 3; len(buf) != want {
		return nil, fmt.Errorf("rgb24 buffer is %d bytes, want %d", len(buf), want)
	}
	img := NewRGBAImage(width, height)
	for i, j := 0, 0; i < len(buf); i, j = i+3, j+4 {
		img.Pix[j] = buf[i]
		img.Pix[j+1] = buf[i+1]
		img.Pix[j+2] = buf[i+2]
	}
	return img, nil
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the color at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB sets the color at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// Clone returns a deep copy.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := &RGBAImage{RGBA: image.NewRGBA(image.Rect(0, 0, img.Width(), img.Height()))}
	for y := 0; y < img.Height(); y++ {
		src := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		copy(clone.Pix[y*clone.Stride:(y+1)*clone.Stride], src[:clone.Stride])
	}
	return clone
}

// GrayImage is a single channel 8-bit grid: intensities, edge maps and
// blended masks all use it.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage allocates a zeroed grid.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{Gray: image.NewGray(image.Rect(0, 0, width, height))}
}

// Width returns the grid width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the grid height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.GrayAt(x, y).Y
}

// SetGrayValue sets the value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.SetGray(x, y, color.Gray{Y: v})
}

// SameSize reports whether two grids can be combined cell by cell.
func (img *GrayImage) SameSize(other *GrayImage) bool {
	return img.Width() == other.Width() && img.Height() == other.Height()
}
