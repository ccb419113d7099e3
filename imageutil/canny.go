package imageutil

import "math"

const (
	// CannyLow is the hysteresis threshold at or below which gradients are dropped.
	CannyLow = 50
	// CannyHigh is the threshold above which gradients are edges outright.
	CannyHigh = 150
)

// Canny detects edges in a luminance grid and returns a grid of the same
// size holding 0 or 255.
//
// It follows cv::Canny with aperture 3 and L2gradient=false: 3x3 Sobel
// gradients with replicated borders, L1 magnitude |gx|+|gy|, non-maximum
// suppression along the quantized gradient direction, and hysteresis over
// 8-connected neighbours where strong pixels exceed high and weak ones
// exceed low. There is no pre-blur.
func Canny(gray *GrayImage, lowThreshold, highThreshold float64) *GrayImage {
	width, height := gray.Width(), gray.Height()
	src := floatGridFromGray(gray)

	gx := src.convolve(sobelX)
	gy := src.convolve(sobelY)

	magnitude := newFloatGrid(width, height)
	for i := range magnitude.v {
		magnitude.v[i] = math.Abs(gx.v[i]) + math.Abs(gy.v[i])
	}

	suppressed := nonMaxSuppression(magnitude, gx, gy)
	return hysteresis(suppressed, lowThreshold, highThreshold)
}

// CannyDefault runs Canny with the 50/150 thresholds the glyph pipeline is
// tuned for.
func CannyDefault(gray *GrayImage) *GrayImage {
	return Canny(gray, CannyLow, CannyHigh)
}

// atOrZero reads outside the grid as zero magnitude.
func (g *floatGrid) atOrZero(x, y int) float64 {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0
	}
	return g.at(x, y)
}

// nonMaxSuppression keeps a magnitude only where it is a local maximum
// across the gradient. On a plateau along the horizontal or vertical axis
// the pixel with the lower coordinate wins, so a one pixel step yields a
// one pixel line.
func nonMaxSuppression(magnitude, gx, gy *floatGrid) *floatGrid {
	width, height := magnitude.width, magnitude.height
	out := newFloatGrid(width, height)
	tan22 := math.Tan(22.5 * math.Pi / 180)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			mag := magnitude.at(x, y)
			if mag == 0 {
				continue
			}

			dx, dy := gx.at(x, y), gy.at(x, y)
			ax, ay := math.Abs(dx), math.Abs(dy)

			var keep bool
			switch {
			case ay < ax*tan22:
				keep = mag > magnitude.atOrZero(x-1, y) && mag >= magnitude.atOrZero(x+1, y)
			case ay > ax/tan22:
				keep = mag > magnitude.atOrZero(x, y-1) && mag >= magnitude.atOrZero(x, y+1)
			case (dx < 0) != (dy < 0):
				keep = mag > magnitude.atOrZero(x+1, y-1) && mag > magnitude.atOrZero(x-1, y+1)
			default:
				keep = mag > magnitude.atOrZero(x-1, y-1) && mag > magnitude.atOrZero(x+1, y+1)
			}

			if keep {
				out.v[y*width+x] = mag
			}
		}
	}

	return out
}

// hysteresis marks strong pixels and grows them into connected weak ones.
func hysteresis(suppressed *floatGrid, low, high float64) *GrayImage {
	width, height := suppressed.width, suppressed.height
	edges := NewGrayImage(width, height)

	stack := make([]int, 0, width*height/8+1)
	for i, v := range suppressed.v {
		if v > high {
			edges.Pix[(i/width)*edges.Stride+i%width] = 255
			stack = append(stack, i)
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := i%width, i/width

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := cx+dx, cy+dy
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				off := ny*edges.Stride + nx
				if edges.Pix[off] != 0 {
					continue
				}
				if suppressed.at(nx, ny) > low {
					edges.Pix[off] = 255
					stack = append(stack, ny*width+nx)
				}
			}
		}
	}

	return edges
}
