package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/wbrown/vid2ansi"
)

func testGrid() vid2ansi.Grid {
	return vid2ansi.Grid{
		{{Char: 'C', Color: vid2ansi.BrightRed}, {Char: ' ', Color: vid2ansi.NeutralWhite}},
		{{Char: 'A', Color: vid2ansi.BrightCyan}, {Char: 'T', Color: vid2ansi.BrightBlue}},
	}
}

func TestShowWritesClearAndLines(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf)
	d.Interval = 0

	if err := d.Show(context.Background(), testGrid()); err != nil {
		t.Fatalf("Show failed: %v", err)
	}

	want := "\x1bc" +
		"\x1b[91mC\x1b[0m\x1b[97m \x1b[0m\n" +
		"\x1b[96mA\x1b[0m\x1b[94mT\x1b[0m\n"
	if got := buf.String(); got != want {
		t.Errorf("Unexpected output:\n got %q\nwant %q", got, want)
	}
}

func TestShowEachFrameClears(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf)
	d.Interval = 0

	for i := 0; i < 3; i++ {
		if err := d.Show(context.Background(), testGrid()); err != nil {
			t.Fatalf("Show %d failed: %v", i, err)
		}
	}
	if n := strings.Count(buf.String(), vid2ansi.ClearScreen); n != 3 {
		t.Errorf("Expected 3 clears, got %d", n)
	}
}

func TestShowWaitsInterval(t *testing.T) {
	d := New(&bytes.Buffer{})
	d.Interval = 20 * time.Millisecond

	start := time.Now()
	if err := d.Show(context.Background(), testGrid()); err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < d.Interval {
		t.Errorf("Show returned after %v, want at least %v", elapsed, d.Interval)
	}
}

func TestShowCancelled(t *testing.T) {
	d := New(&bytes.Buffer{})
	d.Interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Show(ctx, testGrid()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("terminal gone") }

func TestShowWriteError(t *testing.T) {
	d := New(failingWriter{})
	d.Interval = 0
	if err := d.Show(context.Background(), testGrid()); err == nil {
		t.Error("Expected write error to surface")
	}
}
