package vid2ansi

import (
	"fmt"

	"github.com/wbrown/vid2ansi/imageutil"
)

// Mask marks the cells that belong to the subject.
type Mask struct {
	width, height int
	fg            []bool
}

// NewMask returns an all-background mask.
func NewMask(width, height int) *Mask {
	return &Mask{width: width, height: height, fg: make([]bool, width*height)}
}

// MaskFromGray reads a binary-inverse threshold output: any non-zero cell
// is foreground.
func MaskFromGray(img *imageutil.GrayImage) *Mask {
	m := NewMask(img.Width(), img.Height())
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.fg[y*m.width+x] = img.GetGray(x, y) > 0
		}
	}
	return m
}

func (m *Mask) Width() int  { return m.width }
func (m *Mask) Height() int { return m.height }

// Foreground reports whether (x, y) is part of the subject.
func (m *Mask) Foreground(x, y int) bool {
	return m.fg[y*m.width+x]
}

// Set marks (x, y) as foreground or background.
func (m *Mask) Set(x, y int, fg bool) {
	m.fg[y*m.width+x] = fg
}

// Count returns the number of foreground cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.fg {
		if v {
			n++
		}
	}
	return n
}

// FuseMask blends the edge map with half the intensity, saturating at 255,
// and classifies cells whose result is below MaskCutoff as foreground.
// Edges always saturate to background; darker flat regions become subject.
func FuseMask(edges, intensity *imageutil.GrayImage) (*Mask, error) {
	if !edges.SameSize(intensity) {
		return nil, fmt.Errorf("%w: edges %dx%d, intensity %dx%d", ErrSizeMismatch,
			edges.Width(), edges.Height(), intensity.Width(), intensity.Height())
	}

	combined, err := imageutil.AddWeighted(edges, EdgeWeight, intensity, IntensityWeight, 0)
	if err != nil {
		return nil, err
	}
	// THRESH_BINARY_INV keeps cells <= thresh, so MaskCutoff-1 keeps
	// exactly the cells below the cutoff.
	return MaskFromGray(imageutil.ThresholdBinaryInv(combined, MaskCutoff-1, 255)), nil
}
