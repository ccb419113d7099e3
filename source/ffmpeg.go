package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/wbrown/vid2ansi/imageutil"
)

// FFmpeg streams decoded frames from an ffmpeg child process as packed
// rgb24 over a pipe.
type FFmpeg struct {
	args          []string
	width, height int

	r      *io.PipeReader
	buf    []byte
	stderr *bytes.Buffer
	cancel context.CancelFunc
	done   chan error
	closed bool
}

// VideoInfo is the part of ffprobe's output the decoder needs. Width and
// Height are the size of decoded frames, after ffmpeg applies the stream's
// rotation.
type VideoInfo struct {
	Width    int
	Height   int
	Codec    string
	Rotation int
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Tags      struct {
			Rotate string `json:"rotate"`
		} `json:"tags"`
		SideDataList []struct {
			SideDataType string  `json:"side_data_type"`
			Rotation     float64 `json:"rotation"`
		} `json:"side_data_list"`
	} `json:"streams"`
}

// Probe asks ffprobe for the first video stream of path.
func Probe(path string) (VideoInfo, error) {
	data, err := ffmpeg.Probe(path)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("%w: probing %s: %w", ErrUnreadable, path, err)
	}
	return parseProbe(data)
}

func parseProbe(data string) (VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return VideoInfo{}, fmt.Errorf("%w: decoding probe output: %w", ErrUnreadable, err)
	}
	for _, s := range out.Streams {
		if s.CodecType != "video" {
			continue
		}
		if s.Width <= 0 || s.Height <= 0 {
			return VideoInfo{}, fmt.Errorf("%w: video stream is %dx%d", ErrUnreadable, s.Width, s.Height)
		}
		info := VideoInfo{Width: s.Width, Height: s.Height, Codec: s.CodecName}

		// Newer ffprobe reports a display matrix, older builds a rotate tag.
		for _, sd := range s.SideDataList {
			if sd.SideDataType == "Display Matrix" {
				info.Rotation = int(math.Round(sd.Rotation))
			}
		}
		if info.Rotation == 0 && s.Tags.Rotate != "" {
			if r, err := strconv.Atoi(s.Tags.Rotate); err == nil {
				info.Rotation = r
			}
		}
		// ffmpeg autorotates, so quarter turns swap the decoded size.
		if ((info.Rotation%180)+180)%180 == 90 {
			info.Width, info.Height = info.Height, info.Width
		}
		return info, nil
	}
	return VideoInfo{}, fmt.Errorf("%w: no video stream", ErrUnreadable)
}

// decodeStream describes an ffmpeg run that writes path as packed rgb24 to
// stdout. The compiled command is not echoed through the standard logger;
// callers log Args themselves.
func decodeStream(ctx context.Context, path string) *ffmpeg.Stream {
	stream := ffmpeg.Input(path).
		Output("pipe:1", ffmpeg.KwArgs{
			"format":   "rawvideo",
			"pix_fmt":  "rgb24",
			"loglevel": "error",
		}).
		Silent(true)
	stream.Context = ctx
	return stream
}

// OpenFFmpeg probes path and starts decoding it. Cancelling ctx stops the
// decoder; Close must still be called.
func OpenFFmpeg(ctx context.Context, path string) (*FFmpeg, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	info, err := Probe(path)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	r, w := io.Pipe()
	stderr := &bytes.Buffer{}

	cmd := decodeStream(ctx, path).WithOutput(w).WithErrorOutput(stderr).Compile()

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("%w: starting ffmpeg: %w", ErrUnreadable, err)
	}

	done := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		if err != nil && ctx.Err() == nil {
			err = fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
			w.CloseWithError(err)
		} else {
			w.Close()
		}
		done <- err
	}()

	return &FFmpeg{
		args:   cmd.Args,
		width:  info.Width,
		height: info.Height,
		r:      r,
		buf:    make([]byte, info.Width*info.Height*3),
		stderr: stderr,
		cancel: cancel,
		done:   done,
	}, nil
}

// Args returns the ffmpeg command line, program name first.
func (s *FFmpeg) Args() []string {
	return s.args
}

// Size returns the decoded frame size.
func (s *FFmpeg) Size() (int, int) {
	return s.width, s.height
}

// Next reads one full frame. A truncated trailing frame counts as the end
// of the stream.
func (s *FFmpeg) Next() (*imageutil.RGBAImage, error) {
	if s.closed {
		return nil, io.ErrClosedPipe
	}
	if _, err := io.ReadFull(s.r, s.buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	return imageutil.RGBAImageFromRGB24(s.width, s.height, s.buf)
}

// Close stops ffmpeg if it is still running and waits for it to exit.
func (s *FFmpeg) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()
	s.r.Close()
	<-s.done
	return nil
}
