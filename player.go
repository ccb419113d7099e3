package vid2ansi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wbrown/vid2ansi/imageutil"
)

// FrameSource yields raw frames in arrival order. Next returns io.EOF once
// the stream is exhausted. Close releases the underlying video handle.
type FrameSource interface {
	Next() (*imageutil.RGBAImage, error)
	Close() error
}

// Display consumes rendered frames. Show is expected to pace itself; the
// terminal display sleeps a fixed interval after each frame.
type Display interface {
	Show(ctx context.Context, grid Grid) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(ctx context.Context, grid Grid) error

func (f DisplayFunc) Show(ctx context.Context, grid Grid) error {
	return f(ctx, grid)
}

type tee []Display

// Tee shows every grid on each display in order and stops at the first
// error.
func Tee(displays ...Display) Display {
	return tee(displays)
}

func (t tee) Show(ctx context.Context, grid Grid) error {
	for _, d := range t {
		if err := d.Show(ctx, grid); err != nil {
			return err
		}
	}
	return nil
}

// Stats summarizes one playback.
type Stats struct {
	Frames  int
	Elapsed time.Duration
}

// Player runs the stream loop.
type Player struct {
	converter *Converter
	display   Display
	logger    *log.Logger
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) PlayerOption {
	return func(p *Player) {
		p.logger = l
	}
}

// NewPlayer creates a Player that renders with c and shows on d.
func NewPlayer(c *Converter, d Display, opts ...PlayerOption) *Player {
	p := &Player{
		converter: c,
		display:   d,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play pulls frames from src until it is exhausted, converting and showing
// each one. A read error ends playback the same way exhaustion does. src is
// closed on every return path.
//
// The returned error is non-nil only when conversion or display failed, ctx
// was cancelled, or closing the source failed.
func (p *Player) Play(ctx context.Context, src FrameSource) (stats Stats, err error) {
	start := time.Now()
	defer func() {
		stats.Elapsed = time.Since(start)
		if cerr := src.Close(); cerr != nil {
			p.logger.Warn("closing frame source", "err", cerr)
			if err == nil {
				err = fmt.Errorf("closing frame source: %w", cerr)
			}
		}
		p.logger.Debug("playback stopped", "frames", stats.Frames,
			"elapsed", stats.Elapsed.Round(time.Millisecond))
	}()

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		frame, rerr := src.Next()
		if errors.Is(rerr, io.EOF) {
			return stats, nil
		}
		if rerr != nil {
			p.logger.Warn("frame source failed, stopping", "frame", stats.Frames, "err", rerr)
			return stats, nil
		}

		grid, cerr := p.converter.Convert(frame)
		if cerr != nil {
			return stats, fmt.Errorf("converting frame %d: %w", stats.Frames, cerr)
		}
		if derr := p.display.Show(ctx, grid); derr != nil {
			return stats, fmt.Errorf("showing frame %d: %w", stats.Frames, derr)
		}
		stats.Frames++
	}
}
