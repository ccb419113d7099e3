// Package opencv backs the pipeline with gocv: a VideoCapture frame source
// and an Analyzer that runs OpenCV's own grayscale, Canny, addWeighted and
// threshold. It needs OpenCV 4 installed to build.
package opencv

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/wbrown/vid2ansi/imageutil"
)

// MatToRGBA converts an 8-bit BGR Mat into a frame.
func MatToRGBA(mat gocv.Mat) (*imageutil.RGBAImage, error) {
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("expected 8UC3 mat, got %v", mat.Type())
	}
	rows, cols := mat.Rows(), mat.Cols()
	data, err := mat.DataPtrUint8()
	if err != nil {
		return nil, err
	}

	img := imageutil.NewRGBAImage(cols, rows)
	for i, j := 0, 0; i+2 < len(data) && j < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j] = data[i+2]
		img.Pix[j+1] = data[i+1]
		img.Pix[j+2] = data[i]
	}
	return img, nil
}

// RGBAToMat converts a frame into a new BGR Mat. The caller closes it.
func RGBAToMat(img *imageutil.RGBAImage) (gocv.Mat, error) {
	width, height := img.Width(), img.Height()
	buf := make([]byte, 0, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.GetRGB(x, y)
			buf = append(buf, c.B, c.G, c.R)
		}
	}
	return gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8UC3, buf)
}

// MatToGray copies a single channel 8-bit Mat into a grid.
func MatToGray(mat gocv.Mat) (*imageutil.GrayImage, error) {
	if mat.Type() != gocv.MatTypeCV8U {
		return nil, fmt.Errorf("expected 8U mat, got %v", mat.Type())
	}
	rows, cols := mat.Rows(), mat.Cols()
	gray := imageutil.NewGrayImage(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			gray.Pix[y*gray.Stride+x] = mat.GetUCharAt(y, x)
		}
	}
	return gray, nil
}

// GrayToMat converts a grid into a new 8U Mat. The caller closes it.
func GrayToMat(img *imageutil.GrayImage) (gocv.Mat, error) {
	width, height := img.Width(), img.Height()
	buf := make([]byte, 0, width*height)
	for y := 0; y < height; y++ {
		buf = append(buf, img.Pix[y*img.Stride:y*img.Stride+width]...)
	}
	return gocv.NewMatFromBytes(height, width, gocv.MatTypeCV8U, buf)
}
