// Package terminal shows rendered grids on an ANSI terminal.
package terminal

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/wbrown/vid2ansi"
)

// DefaultInterval is the pause after each frame.
const DefaultInterval = 30 * time.Millisecond

// Display clears the screen, writes a grid and then waits Interval before
// returning.
type Display struct {
	Interval time.Duration

	w *bufio.Writer
}

// New returns a Display writing to w with DefaultInterval pacing.
func New(w io.Writer) *Display {
	return &Display{Interval: DefaultInterval, w: bufio.NewWriterSize(w, 64*1024)}
}

// Show writes ESC c followed by one line per grid row, flushes, then
// sleeps. It returns early with ctx.Err() if ctx is cancelled while
// waiting.
func (d *Display) Show(ctx context.Context, grid vid2ansi.Grid) error {
	if _, err := d.w.WriteString(vid2ansi.ClearScreen); err != nil {
		return err
	}
	for _, line := range grid.Lines() {
		if _, err := d.w.WriteString(line); err != nil {
			return err
		}
		if err := d.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := d.w.Flush(); err != nil {
		return err
	}

	if d.Interval <= 0 {
		return nil
	}
	timer := time.NewTimer(d.Interval)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
