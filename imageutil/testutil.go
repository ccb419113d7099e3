package imageutil

import "math"

// Synthetic frames and comparison metrics shared by the tests of this
// module and the gocv comparison tests.

// CreateSolidImage returns a frame filled with c.
func CreateSolidImage(width, height int, c RGB) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGB(x, y, c)
		}
	}
	return img
}

// CreateGradientImage returns a left-to-right black to white ramp.
func CreateGradientImage(width, height int) *RGBAImage {
	img := NewRGBAImage(width, height)
	span := max(width-1, 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(255 * x / span)
			img.SetRGB(x, y, RGB{R: v, G: v, B: v})
		}
	}
	return img
}

// CreateCheckerboardImage alternates black and white squares of size square.
func CreateCheckerboardImage(width, height, square int) *RGBAImage {
	img := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/square)+(y/square))%2 == 0 {
				img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
			}
		}
	}
	return img
}

// CreateEdgeImage draws a white rectangle and a black diagonal on mid gray.
func CreateEdgeImage(width, height int) *RGBAImage {
	img := CreateSolidImage(width, height, RGB{R: 128, G: 128, B: 128})

	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.SetRGB(x, y, RGB{R: 255, G: 255, B: 255})
		}
	}
	for i := 0; i < min(width, height)/2; i++ {
		img.SetRGB(i, i, RGB{})
	}

	return img
}

// CalculateMSEGray is the mean squared error between two grids, or
// math.MaxFloat64 when their sizes differ.
func CalculateMSEGray(a, b *GrayImage) float64 {
	if !a.SameSize(b) {
		return math.MaxFloat64
	}
	var sum float64
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			d := float64(a.GetGray(x, y)) - float64(b.GetGray(x, y))
			sum += d * d
		}
	}
	return sum / float64(a.Width()*a.Height())
}

// CalculateJaccardIndex compares two binary edge maps: 1 is identical,
// 0 is disjoint. Two empty maps are identical.
func CalculateJaccardIndex(a, b *GrayImage) float64 {
	if !a.SameSize(b) {
		return 0
	}
	var intersection, union int
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			ea, eb := a.GetGray(x, y) > 128, b.GetGray(x, y) > 128
			if ea && eb {
				intersection++
			}
			if ea || eb {
				union++
			}
		}
	}
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}

// CountAbove counts cells strictly greater than v.
func CountAbove(img *GrayImage, v uint8) int {
	n := 0
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			if img.GetGray(x, y) > v {
				n++
			}
		}
	}
	return n
}
