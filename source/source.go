// Package source opens the frame streams the player reads from.
//
// Every source returns io.EOF from Next once it has no more frames and
// must be closed by its caller. Paths that cannot be opened fail in the
// Open function with ErrUnreadable instead of producing an empty stream.
package source

import (
	"errors"
	"io"

	"github.com/wbrown/vid2ansi/imageutil"
)

// ErrUnreadable means the input could not be opened as a frame stream.
var ErrUnreadable = errors.New("video source unreadable")

// Images is an in-memory source. It is mostly useful in tests.
type Images struct {
	frames []*imageutil.RGBAImage
	pos    int
	closed bool
}

// FromImages returns a source that yields frames in order.
func FromImages(frames ...*imageutil.RGBAImage) *Images {
	return &Images{frames: frames}
}

// Next returns the next frame or io.EOF.
func (s *Images) Next() (*imageutil.RGBAImage, error) {
	if s.closed {
		return nil, io.ErrClosedPipe
	}
	if s.pos >= len(s.frames) {
		return nil, io.EOF
	}
	frame := s.frames[s.pos]
	s.pos++
	return frame, nil
}

// Close marks the source closed.
func (s *Images) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (s *Images) Closed() bool {
	return s.closed
}
