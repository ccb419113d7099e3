package imageutil

// ToGrayscale converts a frame to luminance with the BT.601 weights that
// OpenCV's COLOR_BGR2GRAY uses: Y = 0.299*R + 0.587*G + 0.114*B, rounded.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		src := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+width]
		for x := range dst {
			r, g, b := int(src[x*4]), int(src[x*4+1]), int(src[x*4+2])
			dst[x] = uint8((299*r + 587*g + 114*b + 500) / 1000)
		}
	}

	return gray
}
