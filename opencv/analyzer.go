package opencv

import (
	"gocv.io/x/gocv"

	"github.com/wbrown/vid2ansi"
	"github.com/wbrown/vid2ansi/imageutil"
)

// Analyzer is a vid2ansi.Analyzer that calls OpenCV directly, for output
// identical to cv2's cvtColor/Canny/addWeighted/threshold chain.
type Analyzer struct{}

var _ vid2ansi.Analyzer = Analyzer{}

// Analyze extracts intensity, edges and the fused mask from a reduced frame.
func (Analyzer) Analyze(reduced *imageutil.RGBAImage) (vid2ansi.Features, error) {
	src, err := RGBAToMat(reduced)
	if err != nil {
		return vid2ansi.Features{}, err
	}
	defer src.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, imageutil.CannyLow, imageutil.CannyHigh)

	combined := gocv.NewMat()
	defer combined.Close()
	gocv.AddWeighted(edges, vid2ansi.EdgeWeight, gray, vid2ansi.IntensityWeight, 0, &combined)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(combined, &mask, vid2ansi.MaskCutoff-1, 255, gocv.ThresholdBinaryInv)

	intensity, err := MatToGray(gray)
	if err != nil {
		return vid2ansi.Features{}, err
	}
	edgeGrid, err := MatToGray(edges)
	if err != nil {
		return vid2ansi.Features{}, err
	}
	maskGrid, err := MatToGray(mask)
	if err != nil {
		return vid2ansi.Features{}, err
	}

	return vid2ansi.Features{
		Intensity: intensity,
		Edges:     edgeGrid,
		Mask:      vid2ansi.MaskFromGray(maskGrid),
	}, nil
}
