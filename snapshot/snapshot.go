// Package snapshot rasterizes rendered grids to PNG files, so a playback
// can be inspected without a terminal.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/vid2ansi"
	"github.com/wbrown/vid2ansi/imageutil"
)

// DefaultFontSize is the glyph size in points at 72 DPI.
const DefaultFontSize = 12

// Recorder is a vid2ansi.Display that writes frame_00001.png,
// frame_00002.png, ... into a directory.
type Recorder struct {
	// Every keeps one frame in Every; 0 and 1 keep all of them.
	Every int

	dir    string
	font   *truetype.Font
	size   float64
	cellW  int
	cellH  int
	ascent int
	shown  int
	saved  int
}

// New creates dir if needed and prepares the Go Mono font at size points.
func New(dir string, size float64) (*Recorder, error) {
	if size <= 0 {
		size = DefaultFontSize
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir: %w", err)
	}

	ttf, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	advance, _ := face.GlyphAdvance('M')
	metrics := face.Metrics()

	return &Recorder{
		dir:    dir,
		font:   ttf,
		size:   size,
		cellW:  advance.Ceil(),
		cellH:  metrics.Height.Ceil(),
		ascent: metrics.Ascent.Ceil(),
	}, nil
}

// CellSize returns the pixel size of one character cell.
func (r *Recorder) CellSize() (int, int) {
	return r.cellW, r.cellH
}

// Saved returns the number of PNG files written.
func (r *Recorder) Saved() int {
	return r.saved
}

// Render draws grid on black, each glyph in its cell color.
func (r *Recorder) Render(grid vid2ansi.Grid) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, grid.Width()*r.cellW, grid.Height()*r.cellH))
	draw.Draw(img, img.Bounds(), image.Black, image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(r.font)
	ctx.SetFontSize(r.size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetHinting(font.HintingFull)

	for y, row := range grid {
		for x, cell := range row {
			if cell.Char == ' ' {
				continue
			}
			ctx.SetSrc(image.NewUniform(cell.Color.RGB.ToColor()))
			pt := freetype.Pt(x*r.cellW, y*r.cellH+r.ascent)
			if _, err := ctx.DrawString(string(cell.Char), pt); err != nil {
				return nil, fmt.Errorf("drawing %q at %d,%d: %w", cell.Char, x, y, err)
			}
		}
	}
	return img, nil
}

// Show renders and saves grid, honoring Every.
func (r *Recorder) Show(_ context.Context, grid vid2ansi.Grid) error {
	r.shown++
	if r.Every > 1 && (r.shown-1)%r.Every != 0 {
		return nil
	}

	img, err := r.Render(grid)
	if err != nil {
		return err
	}
	r.saved++
	path := filepath.Join(r.dir, fmt.Sprintf("frame_%05d.png", r.saved))
	return imageutil.SavePNG(img, path)
}
