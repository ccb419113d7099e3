package vid2ansi

import (
	"github.com/wbrown/vid2ansi/imageutil"
)

// Features are the per-frame grids the glyph mapper reads. All three have
// the size of the reduced frame.
type Features struct {
	Intensity *imageutil.GrayImage
	Edges     *imageutil.GrayImage
	Mask      *Mask
}

// Analyzer extracts Features from a frame that is already reduced to the
// grid size.
type Analyzer interface {
	Analyze(reduced *imageutil.RGBAImage) (Features, error)
}

// PureAnalyzer is the default Analyzer, built on package imageutil.
type PureAnalyzer struct{}

// Analyze computes luminance, 50/150 Canny edges and the fused mask.
func (PureAnalyzer) Analyze(reduced *imageutil.RGBAImage) (Features, error) {
	intensity := imageutil.ToGrayscale(reduced)
	edges := imageutil.CannyDefault(intensity)
	mask, err := FuseMask(edges, intensity)
	if err != nil {
		return Features{}, err
	}
	return Features{Intensity: intensity, Edges: edges, Mask: mask}, nil
}
