// Package vid2ansi turns video frames into colored text art.
//
// Every frame goes through the same one-pass pipeline:
//
//  1. Reduce: bilinear resample to the character grid (W x H).
//  2. Analyze: BT.601 luminance and a 50/150 Canny edge map.
//  3. FuseMask: edge*1.0 + intensity*0.5, saturated to 8 bits; cells
//     below 128 are foreground (the subject), the rest are background.
//  4. Map: brightness picks a rune from the foreground alphabet or the
//     background alphabet; foreground cells get a random palette color,
//     background cells the neutral color.
//
// A Player drives the pipeline from a FrameSource to a Display, one frame
// at a time, and always releases the source when it stops.
package vid2ansi

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/wbrown/vid2ansi/imageutil"
)

const (
	ESC = "\u001b"

	// ScaleFactor shrinks the configured width and height to the grid
	// that is actually rendered, so 90x45 becomes 54x27.
	ScaleFactor = 0.6

	DefaultWidth  = 90
	DefaultHeight = 45

	// MaskCutoff separates foreground (combined < MaskCutoff) from
	// background.
	MaskCutoff = 128
	EdgeWeight = 1.0
	// IntensityWeight is applied to luminance before it is added to the
	// edge map.
	IntensityWeight = 0.5
)

var (
	ErrInvalidSize     = errors.New("grid size must be positive")
	ErrInvalidFrame    = errors.New("frame has no pixels")
	ErrSizeMismatch    = errors.New("grid sizes differ")
	ErrInvalidPalette  = errors.New("palette needs at least 4 colors")
	ErrInvalidAlphabet = errors.New("alphabet must not be empty")
)

// ScaledSize applies ScaleFactor to a configured width and height.
func ScaledSize(width, height int) (int, int) {
	return int(float64(width) * ScaleFactor), int(float64(height) * ScaleFactor)
}

// Converter turns one raw frame into a Grid. It keeps no state between
// frames apart from its random source.
type Converter struct {
	Width         int
	Height        int
	Interpolation imageutil.Interpolation

	analyzer   Analyzer
	foreground string
	background string
	palette    []Color
	neutral    Color
	rng        *rand.Rand

	mapper *GlyphMapper
}

// Option configures a Converter.
type Option func(*Converter)

// WithSize sets the configured size; the rendered grid is ScaledSize of it.
func WithSize(width, height int) Option {
	return func(c *Converter) {
		c.Width, c.Height = ScaledSize(width, height)
	}
}

// WithGridSize sets the rendered grid size directly, bypassing ScaleFactor.
func WithGridSize(width, height int) Option {
	return func(c *Converter) {
		c.Width, c.Height = width, height
	}
}

// WithAlphabet sets the runes used for foreground cells, darkest first.
func WithAlphabet(alphabet string) Option {
	return func(c *Converter) {
		c.foreground = alphabet
	}
}

// WithBackground sets the runes used for background cells.
func WithBackground(alphabet string) Option {
	return func(c *Converter) {
		c.background = alphabet
	}
}

// WithPalette sets the foreground colors.
func WithPalette(palette []Color) Option {
	return func(c *Converter) {
		c.palette = palette
	}
}

// WithNeutral sets the background color.
func WithNeutral(neutral Color) Option {
	return func(c *Converter) {
		c.neutral = neutral
	}
}

// WithRand sets the source for foreground color draws. Tests pass a fixed
// seed.
func WithRand(rng *rand.Rand) Option {
	return func(c *Converter) {
		c.rng = rng
	}
}

// WithAnalyzer replaces the pure Go feature extractor.
func WithAnalyzer(a Analyzer) Option {
	return func(c *Converter) {
		c.analyzer = a
	}
}

// WithInterpolation sets the resampling kernel used by Reduce.
func WithInterpolation(interp imageutil.Interpolation) Option {
	return func(c *Converter) {
		c.Interpolation = interp
	}
}

// NewConverter creates a Converter. Defaults: 90x45 configured (54x27
// rendered), bilinear reduction, alphabet "CAT", blank background,
// DefaultPalette, NeutralWhite and a clock-seeded random source.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		Interpolation: imageutil.InterpolationLinear,
		analyzer:      PureAnalyzer{},
		foreground:    DefaultAlphabet,
		background:    DefaultBackground,
		palette:       DefaultPalette,
		neutral:       NeutralWhite,
	}
	c.Width, c.Height = ScaledSize(DefaultWidth, DefaultHeight)

	for _, opt := range opts {
		opt(c)
	}

	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if c.rng == nil {
		seed := uint64(time.Now().UnixNano())
		c.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}

	mapper, err := NewGlyphMapper(c.foreground, c.background, c.palette, c.neutral, c.rng)
	if err != nil {
		return nil, err
	}
	c.mapper = mapper
	return c, nil
}

// Mapper returns the glyph mapper used for the last stage.
func (c *Converter) Mapper() *GlyphMapper {
	return c.mapper
}

// Reduce resamples frame to the converter's grid size.
func (c *Converter) Reduce(frame *imageutil.RGBAImage) (*imageutil.RGBAImage, error) {
	return Reduce(frame, c.Width, c.Height, c.Interpolation)
}

// Analyze reduces frame and runs the feature extractor and mask fuser.
func (c *Converter) Analyze(frame *imageutil.RGBAImage) (Features, error) {
	reduced, err := c.Reduce(frame)
	if err != nil {
		return Features{}, err
	}
	return c.analyzer.Analyze(reduced)
}

// Convert runs the whole pipeline on one frame.
func (c *Converter) Convert(frame *imageutil.RGBAImage) (Grid, error) {
	features, err := c.Analyze(frame)
	if err != nil {
		return nil, err
	}
	return c.mapper.Map(features)
}

// Reduce resamples frame to exactly width x height.
func Reduce(frame *imageutil.RGBAImage, width, height int, interp imageutil.Interpolation) (*imageutil.RGBAImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if frame == nil || frame.Width() <= 0 || frame.Height() <= 0 {
		return nil, ErrInvalidFrame
	}
	return imageutil.Resize(frame, width, height, interp), nil
}
