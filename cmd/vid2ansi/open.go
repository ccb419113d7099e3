package main

import (
	"context"
	"fmt"

	"github.com/wbrown/vid2ansi"
	"github.com/wbrown/vid2ansi/opencv"
	"github.com/wbrown/vid2ansi/source"
)

const (
	backendFFmpeg = "ffmpeg"
	backendOpenCV = "opencv"
	backendFrames = "frames"
)

var backends = []string{backendFFmpeg, backendOpenCV, backendFrames}

// openSource opens path with the named backend. Every backend fails fast
// with source.ErrUnreadable when path cannot be read.
func openSource(ctx context.Context, backend, path string) (vid2ansi.FrameSource, error) {
	var (
		src vid2ansi.FrameSource
		err error
	)
	switch backend {
	case backendFFmpeg:
		src, err = source.OpenFFmpeg(ctx, path)
	case backendOpenCV:
		src, err = opencv.OpenCapture(path)
	case backendFrames:
		src, err = source.OpenSequence(path)
	default:
		return nil, fmt.Errorf("unknown backend %q (want one of %v)", backend, backends)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

// analyzerFor returns the feature extractor matching backend. The opencv
// backend keeps the whole pipeline inside OpenCV.
func analyzerFor(backend string) vid2ansi.Analyzer {
	if backend == backendOpenCV {
		return opencv.Analyzer{}
	}
	return vid2ansi.PureAnalyzer{}
}
