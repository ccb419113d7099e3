package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wbrown/vid2ansi/imageutil"
)

var sequenceExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".tif": true, ".tiff": true,
}

// Sequence reads a directory of still images, sorted by file name, as
// frames. ffmpeg's image2 muxer produces such directories.
type Sequence struct {
	paths []string
	pos   int
}

// OpenSequence lists dir. A missing directory or one without any image
// files is unreadable.
func OpenSequence(dir string) (*Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !sequenceExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no image files in %s", ErrUnreadable, dir)
	}
	sort.Strings(paths)

	return &Sequence{paths: paths}, nil
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	return len(s.paths)
}

// Next decodes the next file.
func (s *Sequence) Next() (*imageutil.RGBAImage, error) {
	if s.pos >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.pos]
	s.pos++
	return imageutil.LoadImage(path)
}

// Close drops the file list.
func (s *Sequence) Close() error {
	s.paths = nil
	return nil
}
