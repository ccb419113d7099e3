package vid2ansi

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/wbrown/vid2ansi/imageutil"
)

func TestScaledSize(t *testing.T) {
	tests := []struct{ w, h, wantW, wantH int }{
		{90, 45, 54, 27},
		{100, 50, 60, 30},
		{1, 1, 0, 0},
	}
	for _, tc := range tests {
		w, h := ScaledSize(tc.w, tc.h)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("ScaledSize(%d,%d) = %dx%d, want %dx%d", tc.w, tc.h, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestNewConverterDefaults(t *testing.T) {
	c, err := NewConverter()
	if err != nil {
		t.Fatalf("NewConverter failed: %v", err)
	}
	if c.Width != 54 || c.Height != 27 {
		t.Errorf("Expected 54x27 grid, got %dx%d", c.Width, c.Height)
	}
}

func TestNewConverterInvalidSize(t *testing.T) {
	for _, opt := range []Option{WithSize(1, 45), WithGridSize(0, 10), WithGridSize(10, -1)} {
		if _, err := NewConverter(opt); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Expected ErrInvalidSize, got %v", err)
		}
	}
}

func TestConvertProducesGridOfConfiguredSize(t *testing.T) {
	c, err := NewConverter(WithSize(100, 50), WithRand(rand.New(rand.NewPCG(1, 1))))
	if err != nil {
		t.Fatalf("NewConverter failed: %v", err)
	}
	for _, frame := range []*imageutil.RGBAImage{
		imageutil.CreateEdgeImage(320, 240),
		imageutil.CreateGradientImage(640, 360),
		imageutil.CreateCheckerboardImage(31, 17, 3),
	} {
		grid, err := c.Convert(frame)
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		if grid.Width() != 60 || grid.Height() != 30 {
			t.Errorf("Expected 60x30 grid, got %dx%d", grid.Width(), grid.Height())
		}
	}
}

func TestAnalyzeSizes(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {2, 2}, {5, 3}, {54, 27}} {
		c, err := NewConverter(WithGridSize(size[0], size[1]))
		if err != nil {
			t.Fatal(err)
		}
		f, err := c.Analyze(imageutil.CreateEdgeImage(64, 48))
		if err != nil {
			t.Fatalf("Analyze failed: %v", err)
		}
		for name, g := range map[string]*imageutil.GrayImage{"intensity": f.Intensity, "edges": f.Edges} {
			if g.Width() != size[0] || g.Height() != size[1] {
				t.Errorf("%s is %dx%d, want %dx%d", name, g.Width(), g.Height(), size[0], size[1])
			}
		}
	}
}

func TestReduceIdempotent(t *testing.T) {
	frame := imageutil.CreateEdgeImage(12, 8)
	once, err := Reduce(frame, 12, 8, imageutil.InterpolationLinear)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Reduce(once, 12, 8, imageutil.InterpolationLinear)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			if twice.GetRGB(x, y) != frame.GetRGB(x, y) {
				t.Fatalf("Reduce changed pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestReduceRejectsEmptyFrame(t *testing.T) {
	if _, err := Reduce(imageutil.NewRGBAImage(0, 0), 4, 4, imageutil.InterpolationLinear); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("Expected ErrInvalidFrame, got %v", err)
	}
	if _, err := Reduce(nil, 4, 4, imageutil.InterpolationLinear); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("Expected ErrInvalidFrame for nil, got %v", err)
	}
}

func TestConvertSolidGrayScenario(t *testing.T) {
	// A flat 2x2 frame of intensity 100: no edges, combined 0+50 = 50 < 128,
	// so every cell is foreground at index floor(100/255*2) = 0.
	c, err := NewConverter(WithGridSize(2, 2), WithRand(rand.New(rand.NewPCG(3, 4))))
	if err != nil {
		t.Fatal(err)
	}
	frame := imageutil.CreateSolidImage(2, 2, imageutil.RGB{R: 100, G: 100, B: 100})

	f, err := c.Analyze(frame)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if imageutil.CountAbove(f.Edges, 0) != 0 {
		t.Error("Expected no edges")
	}
	if f.Mask.Count() != 4 {
		t.Errorf("Expected 4 foreground cells, got %d", f.Mask.Count())
	}

	grid, err := c.Convert(frame)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	palette := make(map[Color]bool)
	for _, col := range DefaultPalette {
		palette[col] = true
	}
	for y, row := range grid {
		for x, cell := range row {
			if cell.Char != 'C' {
				t.Errorf("Cell (%d,%d) is %q, want 'C'", x, y, cell.Char)
			}
			if !palette[cell.Color] {
				t.Errorf("Cell (%d,%d) color %+v not in palette", x, y, cell.Color)
			}
		}
	}
}

func TestConvertWhiteFrameIsBackground(t *testing.T) {
	c, err := NewConverter(WithGridSize(4, 3))
	if err != nil {
		t.Fatal(err)
	}
	grid, err := c.Convert(imageutil.CreateSolidImage(40, 30, imageutil.RGB{R: 255, G: 255, B: 255}))
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	for _, row := range grid {
		for _, cell := range row {
			if cell.Char != ' ' || cell.Color != NeutralWhite {
				t.Fatalf("Expected blank neutral cell, got %+v", cell)
			}
		}
	}
}

type stubAnalyzer struct{ calls int }

func (s *stubAnalyzer) Analyze(reduced *imageutil.RGBAImage) (Features, error) {
	s.calls++
	return PureAnalyzer{}.Analyze(reduced)
}

func TestWithAnalyzer(t *testing.T) {
	stub := &stubAnalyzer{}
	c, err := NewConverter(WithGridSize(3, 3), WithAnalyzer(stub))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Convert(imageutil.CreateGradientImage(9, 9)); err != nil {
		t.Fatal(err)
	}
	if stub.calls != 1 {
		t.Errorf("Expected analyzer to be called once, got %d", stub.calls)
	}
}
