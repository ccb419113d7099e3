package opencv

import (
	"fmt"
	"io"
	"os"

	"gocv.io/x/gocv"

	"github.com/wbrown/vid2ansi/imageutil"
	"github.com/wbrown/vid2ansi/source"
)

// Capture reads frames with cv::VideoCapture.
type Capture struct {
	vc     *gocv.VideoCapture
	mat    gocv.Mat
	closed bool
}

// OpenCapture opens a video file. Missing files and files OpenCV cannot
// open return source.ErrUnreadable.
func OpenCapture(path string) (*Capture, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrUnreadable, err)
	}
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrUnreadable, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: cannot open %s", source.ErrUnreadable, path)
	}
	return &Capture{vc: vc, mat: gocv.NewMat()}, nil
}

// Size returns the stream's frame size as reported by the container.
func (c *Capture) Size() (int, int) {
	return int(c.vc.Get(gocv.VideoCaptureFrameWidth)), int(c.vc.Get(gocv.VideoCaptureFrameHeight))
}

// Next decodes one frame. A failed read is the end of the stream.
func (c *Capture) Next() (*imageutil.RGBAImage, error) {
	if c.closed {
		return nil, io.ErrClosedPipe
	}
	if ok := c.vc.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, io.EOF
	}
	return MatToRGBA(c.mat)
}

// Close releases the Mat and the capture.
func (c *Capture) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.mat.Close(); err != nil {
		c.vc.Close()
		return err
	}
	return c.vc.Close()
}
