package imageutil

import "fmt"

// AddWeighted computes saturate(src1*alpha + src2*beta + gamma) per cell,
// with OpenCV's round-half-to-even conversion back to 8 bits.
func AddWeighted(src1 *GrayImage, alpha float64, src2 *GrayImage, beta, gamma float64) (*GrayImage, error) {
	if !src1.SameSize(src2) {
		return nil, fmt.Errorf("cannot blend %dx%d with %dx%d",
			src1.Width(), src1.Height(), src2.Width(), src2.Height())
	}

	width, height := src1.Width(), src1.Height()
	dst := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		a := src1.Pix[y*src1.Stride : y*src1.Stride+width]
		b := src2.Pix[y*src2.Stride : y*src2.Stride+width]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+width]
		for x := range out {
			out[x] = clampUint8(float64(a[x])*alpha + float64(b[x])*beta + gamma)
		}
	}
	return dst, nil
}

// ThresholdBinaryInv is OpenCV's THRESH_BINARY_INV: cells strictly above
// thresh become 0, the rest become maxVal.
func ThresholdBinaryInv(src *GrayImage, thresh, maxVal uint8) *GrayImage {
	width, height := src.Width(), src.Height()
	dst := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		in := src.Pix[y*src.Stride : y*src.Stride+width]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+width]
		for x, v := range in {
			if v <= thresh {
				out[x] = maxVal
			}
		}
	}
	return dst
}
