// Command vid2ansi plays a video file as colored text art in the terminal.
//
//	vid2ansi [flags] <video>
//
// Press Ctrl-C to stop playback early.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wbrown/vid2ansi"
	"github.com/wbrown/vid2ansi/snapshot"
	"github.com/wbrown/vid2ansi/source"
	"github.com/wbrown/vid2ansi/terminal"
)

type options struct {
	width         int
	height        int
	interval      time.Duration
	backend       string
	snapshotDir   string
	snapshotEvery int
	alphabet      string
	seed          uint64
	verbose       bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code: 0 on
// success, 130 when interrupted and 1 for any other failure, which is
// logged to stderr.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		newLogger(stderr, log.InfoLevel).Error("vid2ansi failed", "err", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "vid2ansi [flags] <video>",
		Short: "Play a video as colored text art",
		Long: `vid2ansi decodes a video frame by frame, finds the subject with an
edge and brightness mask and draws it with colored letters on a blank
background, one terminal screen per frame.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			return run(cmd.Context(), newLogger(stderr, level), stdout, args[0], opts)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.IntVar(&opts.width, "width", vid2ansi.DefaultWidth, "configured width; the grid is 0.6 of it")
	f.IntVar(&opts.height, "height", vid2ansi.DefaultHeight, "configured height; the grid is 0.6 of it")
	f.DurationVar(&opts.interval, "interval", terminal.DefaultInterval, "pause after each frame")
	f.StringVar(&opts.backend, "backend", backendFFmpeg, fmt.Sprintf("frame source, one of %v", backends))
	f.StringVar(&opts.snapshotDir, "snapshot-dir", "", "also write frames as PNGs into this directory")
	f.IntVar(&opts.snapshotEvery, "snapshot-every", 1, "keep one snapshot every N frames")
	f.StringVar(&opts.alphabet, "alphabet", vid2ansi.DefaultAlphabet, "foreground letters, darkest first")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for foreground colors (0 uses the clock)")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

func run(ctx context.Context, logger *log.Logger, stdout io.Writer, path string, opts options) error {
	convOpts := []vid2ansi.Option{
		vid2ansi.WithSize(opts.width, opts.height),
		vid2ansi.WithAlphabet(opts.alphabet),
		vid2ansi.WithAnalyzer(analyzerFor(opts.backend)),
	}
	if opts.seed != 0 {
		convOpts = append(convOpts, vid2ansi.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed))))
	}
	conv, err := vid2ansi.NewConverter(convOpts...)
	if err != nil {
		return err
	}

	src, err := openSource(ctx, opts.backend, path)
	if err != nil {
		if errors.Is(err, source.ErrUnreadable) {
			return fmt.Errorf("cannot open %s: %w", path, err)
		}
		return err
	}
	if ff, ok := src.(*source.FFmpeg); ok {
		logger.Debug("started ffmpeg", "args", strings.Join(ff.Args(), " "))
	}

	term := terminal.New(stdout)
	term.Interval = opts.interval
	var display vid2ansi.Display = term
	if opts.snapshotDir != "" {
		rec, err := snapshot.New(opts.snapshotDir, snapshot.DefaultFontSize)
		if err != nil {
			src.Close()
			return err
		}
		rec.Every = opts.snapshotEvery
		display = vid2ansi.Tee(term, rec)
		logger.Debug("recording snapshots", "dir", opts.snapshotDir, "every", opts.snapshotEvery)
	}

	logger.Debug("playing", "path", path, "backend", opts.backend,
		"grid", fmt.Sprintf("%dx%d", conv.Width, conv.Height))

	p := newProgress(logger)
	stats, err := vid2ansi.NewPlayer(conv, display, vid2ansi.WithLogger(logger)).Play(ctx, src)
	p.done("playback finished", "frames", stats.Frames)
	return err
}
