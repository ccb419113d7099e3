package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wbrown/vid2ansi"
	"github.com/wbrown/vid2ansi/imageutil"
	"github.com/wbrown/vid2ansi/opencv"
	"github.com/wbrown/vid2ansi/source"
)

func TestOpenSourceMissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	for _, backend := range []string{backendFFmpeg, backendFrames} {
		t.Run(backend, func(t *testing.T) {
			_, err := openSource(context.Background(), backend, missing)
			if !errors.Is(err, source.ErrUnreadable) {
				t.Errorf("Expected ErrUnreadable, got %v", err)
			}
		})
	}
}

func TestOpenSourceUnknownBackend(t *testing.T) {
	if _, err := openSource(context.Background(), "vhs", "x.mp4"); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestAnalyzerFor(t *testing.T) {
	if _, ok := analyzerFor(backendOpenCV).(opencv.Analyzer); !ok {
		t.Error("Expected opencv analyzer for opencv backend")
	}
	if _, ok := analyzerFor(backendFFmpeg).(vid2ansi.PureAnalyzer); !ok {
		t.Error("Expected pure analyzer for ffmpeg backend")
	}
}

func TestRootCmdDefaults(t *testing.T) {
	cmd := newRootCmd(io.Discard, io.Discard)
	for flag, want := range map[string]string{
		"width":          "90",
		"height":         "45",
		"interval":       "30ms",
		"backend":        "ffmpeg",
		"alphabet":       "CAT",
		"seed":           "0",
		"snapshot-every": "1",
	} {
		if got := cmd.Flags().Lookup(flag).DefValue; got != want {
			t.Errorf("--%s default = %q, want %q", flag, got, want)
		}
	}
}

func TestRunInvalidSize(t *testing.T) {
	var buf bytes.Buffer
	opts := options{width: 1, height: 1, backend: backendFrames, alphabet: "CAT"}
	err := run(context.Background(), newLogger(&buf, log.DebugLevel), io.Discard, "x", opts)
	if !errors.Is(err, vid2ansi.ErrInvalidSize) {
		t.Errorf("Expected ErrInvalidSize, got %v", err)
	}
}

func TestExecuteUnreadableLogsAndFails(t *testing.T) {
	snapDir := filepath.Join(t.TempDir(), "snaps")
	missing := filepath.Join(t.TempDir(), "missing")
	var stdout, stderr bytes.Buffer

	code := execute(context.Background(),
		[]string{"--backend", backendFrames, "--snapshot-dir", snapDir, missing},
		&stdout, &stderr)

	if code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "ERRO") || !strings.Contains(stderr.String(), "unreadable") {
		t.Errorf("Expected an error log line, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected no terminal output, got %q", stdout.String())
	}
	if _, err := os.Stat(snapDir); !os.IsNotExist(err) {
		t.Error("Snapshot directory should not be created for an unreadable input")
	}
}

func TestExecuteMissingArgument(t *testing.T) {
	var stderr bytes.Buffer
	if code := execute(context.Background(), nil, io.Discard, &stderr); code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "ERRO") {
		t.Errorf("Expected an error log line, got %q", stderr.String())
	}
}

func TestExecuteCancelled(t *testing.T) {
	dir := writeFrames(t, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code := execute(ctx, []string{"--backend", backendFrames, dir}, io.Discard, io.Discard)
	if code != 130 {
		t.Errorf("Expected exit code 130, got %d", code)
	}
}

func writeFrames(t *testing.T, n int) string {
	t.Helper()
	dir := t.TempDir()
	for i := 0; i < n; i++ {
		name := filepath.Join(dir, "frame_"+string(rune('a'+i))+".png")
		if err := imageutil.SavePNG(imageutil.CreateEdgeImage(40, 20), name); err != nil {
			t.Fatalf("SavePNG failed: %v", err)
		}
	}
	return dir
}

func TestExecuteSnapshotEvery(t *testing.T) {
	frames := writeFrames(t, 5)
	snapDir := filepath.Join(t.TempDir(), "snaps")
	var stdout bytes.Buffer

	code := execute(context.Background(), []string{
		"--backend", backendFrames,
		"--width", "20", "--height", "10",
		"--interval", "0s",
		"--seed", "7",
		"--snapshot-dir", snapDir,
		"--snapshot-every", "2",
		frames,
	}, &stdout, io.Discard)
	if code != 0 {
		t.Fatalf("Expected exit code 0, got %d", code)
	}

	if n := strings.Count(stdout.String(), vid2ansi.ClearScreen); n != 5 {
		t.Errorf("Expected 5 frames on the terminal, got %d", n)
	}
	saved, err := filepath.Glob(filepath.Join(snapDir, "frame_*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(saved) != 3 {
		t.Errorf("Expected 3 snapshots for every=2 over 5 frames, got %d", len(saved))
	}
}
