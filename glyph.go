package vid2ansi

import (
	"fmt"
	"math/rand/v2"

	"github.com/wbrown/vid2ansi/imageutil"
)

const (
	DefaultAlphabet   = "CAT"
	DefaultBackground = " "
)

// Color is a 16-color SGR foreground code together with the RGB it is
// drawn as in PNG snapshots.
type Color struct {
	Name string
	Code int
	RGB  imageutil.RGB
}

var (
	BrightRed     = Color{"red", 91, imageutil.RGB{R: 0xFF, G: 0x40, B: 0x50}}
	BrightGreen   = Color{"green", 92, imageutil.RGB{R: 0x4F, G: 0xC4, B: 0x14}}
	BrightYellow  = Color{"yellow", 93, imageutil.RGB{R: 0xE5, G: 0xBF, B: 0x00}}
	BrightBlue    = Color{"blue", 94, imageutil.RGB{R: 0x1F, G: 0xB0, B: 0xFF}}
	BrightMagenta = Color{"magenta", 95, imageutil.RGB{R: 0xED, G: 0x7E, B: 0xED}}
	BrightCyan    = Color{"cyan", 96, imageutil.RGB{R: 0x00, G: 0xE5, B: 0xE5}}
	NeutralWhite  = Color{"white", 97, imageutil.RGB{R: 0xFF, G: 0xFF, B: 0xFF}}

	// DefaultPalette holds the foreground colors, drawn uniformly per cell.
	DefaultPalette = []Color{
		BrightRed, BrightGreen, BrightBlue,
		BrightYellow, BrightMagenta, BrightCyan,
	}
)

// Cell is one rendered character.
type Cell struct {
	Char  rune
	Color Color
}

// GlyphMapper picks a rune and a color for each cell. Rune selection is a
// pure function of brightness and classification; only foreground colors
// are random.
type GlyphMapper struct {
	foreground []rune
	background []rune
	palette    []Color
	neutral    Color
	rng        *rand.Rand
}

// NewGlyphMapper validates the alphabets and palette. The background
// alphabet may be empty, in which case background cells are blank.
func NewGlyphMapper(foreground, background string, palette []Color, neutral Color, rng *rand.Rand) (*GlyphMapper, error) {
	if foreground == "" {
		return nil, fmt.Errorf("foreground %w", ErrInvalidAlphabet)
	}
	if len(palette) < 4 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidPalette, len(palette))
	}
	if background == "" {
		background = DefaultBackground
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &GlyphMapper{
		foreground: []rune(foreground),
		background: []rune(background),
		palette:    append([]Color(nil), palette...),
		neutral:    neutral,
		rng:        rng,
	}, nil
}

// Palette returns a copy of the foreground colors.
func (g *GlyphMapper) Palette() []Color {
	return append([]Color(nil), g.palette...)
}

// Neutral returns the background color.
func (g *GlyphMapper) Neutral() Color {
	return g.neutral
}

// Char maps brightness to floor(b/255 * (len(alphabet)-1)) in the
// foreground or background alphabet.
func (g *GlyphMapper) Char(brightness uint8, foreground bool) rune {
	alphabet := g.background
	if foreground {
		alphabet = g.foreground
	}
	idx := int(float64(brightness) / 255 * float64(len(alphabet)-1))
	idx = max(0, min(idx, len(alphabet)-1))
	return alphabet[idx]
}

// Color draws a palette color for foreground cells and returns the
// neutral color otherwise.
func (g *GlyphMapper) Color(foreground bool) Color {
	if !foreground {
		return g.neutral
	}
	return g.palette[g.rng.IntN(len(g.palette))]
}

// Cell combines Char and Color.
func (g *GlyphMapper) Cell(brightness uint8, foreground bool) Cell {
	return Cell{Char: g.Char(brightness, foreground), Color: g.Color(foreground)}
}

// Map builds the Grid for one frame's features.
func (g *GlyphMapper) Map(f Features) (Grid, error) {
	width, height := f.Intensity.Width(), f.Intensity.Height()
	if f.Mask == nil || f.Mask.Width() != width || f.Mask.Height() != height {
		return nil, ErrSizeMismatch
	}

	grid := make(Grid, height)
	for y := range grid {
		row := make([]Cell, width)
		for x := range row {
			row[x] = g.Cell(f.Intensity.GetGray(x, y), f.Mask.Foreground(x, y))
		}
		grid[y] = row
	}
	return grid, nil
}
