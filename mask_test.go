package vid2ansi

import (
	"errors"
	"testing"

	"github.com/wbrown/vid2ansi/imageutil"
)

func grayOf(width, height int, v uint8) *imageutil.GrayImage {
	img := imageutil.NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestFuseMaskThreshold(t *testing.T) {
	tests := []struct {
		name            string
		edge, intensity uint8
		foreground      bool
	}{
		{"dark flat", 0, 0, true},
		{"mid flat", 0, 100, true},
		{"combined 127", 0, 254, true},
		{"combined exactly 128 is background", 0, 255, false},
		{"edge on black", 255, 0, false},
		{"edge saturates", 255, 255, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mask, err := FuseMask(grayOf(1, 1, tc.edge), grayOf(1, 1, tc.intensity))
			if err != nil {
				t.Fatalf("FuseMask failed: %v", err)
			}
			if got := mask.Foreground(0, 0); got != tc.foreground {
				t.Errorf("Expected foreground=%v, got %v", tc.foreground, got)
			}
		})
	}
}

func TestFuseMaskDeterministic(t *testing.T) {
	intensity := imageutil.ToGrayscale(imageutil.CreateEdgeImage(40, 30))
	edges := imageutil.CannyDefault(intensity)

	first, err := FuseMask(edges, intensity)
	if err != nil {
		t.Fatalf("FuseMask failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := FuseMask(edges, intensity)
		if err != nil {
			t.Fatalf("FuseMask failed: %v", err)
		}
		for y := 0; y < 30; y++ {
			for x := 0; x < 40; x++ {
				if again.Foreground(x, y) != first.Foreground(x, y) {
					t.Fatalf("Run %d differs at (%d,%d)", i, x, y)
				}
			}
		}
	}
}

func TestFuseMaskEdgesAreBackground(t *testing.T) {
	intensity := imageutil.ToGrayscale(imageutil.CreateEdgeImage(40, 30))
	edges := imageutil.CannyDefault(intensity)
	mask, err := FuseMask(edges, intensity)
	if err != nil {
		t.Fatalf("FuseMask failed: %v", err)
	}
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if edges.GetGray(x, y) == 255 && mask.Foreground(x, y) {
				t.Fatalf("Edge cell (%d,%d) classified as foreground", x, y)
			}
		}
	}
}

func TestFuseMaskSizeMismatch(t *testing.T) {
	_, err := FuseMask(grayOf(2, 2, 0), grayOf(3, 2, 0))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Expected ErrSizeMismatch, got %v", err)
	}
}

func TestMaskFromGray(t *testing.T) {
	img := imageutil.NewGrayImage(3, 1)
	img.SetGrayValue(1, 0, 255)
	m := MaskFromGray(img)
	if m.Foreground(0, 0) || !m.Foreground(1, 0) || m.Foreground(2, 0) {
		t.Error("Only the non-zero cell should be foreground")
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 foreground cell, got %d", m.Count())
	}
}
