package imageutil

import "math"

// Kernel is a square or rectangular convolution kernel, row major.
type Kernel struct {
	Values [][]float64
	Width  int
	Height int
}

// NewKernel wraps a 2D slice as a kernel.
func NewKernel(values [][]float64) *Kernel {
	width := 0
	if len(values) > 0 {
		width = len(values[0])
	}
	return &Kernel{Values: values, Width: width, Height: len(values)}
}

var (
	sobelX = NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelY = NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
)

// floatGrid is an unclamped working buffer for gradient math.
type floatGrid struct {
	width, height int
	v             []float64
}

func newFloatGrid(width, height int) *floatGrid {
	return &floatGrid{width: width, height: height, v: make([]float64, width*height)}
}

func floatGridFromGray(img *GrayImage) *floatGrid {
	g := newFloatGrid(img.Width(), img.Height())
	for y := 0; y < g.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+g.width]
		for x, p := range row {
			g.v[y*g.width+x] = float64(p)
		}
	}
	return g
}

func (g *floatGrid) at(x, y int) float64 {
	return g.v[y*g.width+x]
}

// convolve applies kernel with replicated borders and no clamping.
func (g *floatGrid) convolve(kernel *Kernel) *floatGrid {
	dst := newFloatGrid(g.width, g.height)
	halfW, halfH := kernel.Width/2, kernel.Height/2

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			var sum float64
			for ky := 0; ky < kernel.Height; ky++ {
				sy := clampInt(y+ky-halfH, 0, g.height-1)
				for kx := 0; kx < kernel.Width; kx++ {
					sx := clampInt(x+kx-halfW, 0, g.width-1)
					sum += g.at(sx, sy) * kernel.Values[ky][kx]
				}
			}
			dst.v[y*g.width+x] = sum
		}
	}

	return dst
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 rounds half to even and saturates, matching OpenCV's
// saturate_cast<uchar> for floating point input.
func clampUint8(v float64) uint8 {
	v = math.RoundToEven(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
