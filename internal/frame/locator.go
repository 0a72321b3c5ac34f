package frame

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/vidseek/vidseek/internal/logging"
	"github.com/vidseek/vidseek/internal/probe"
)

// DefaultBinary is the ffmpeg executable looked up on PATH.
const DefaultBinary = "ffmpeg"

// FPSFunc obtains the frames-per-second of one file.
type FPSFunc func(path string) (float64, error)

// ExtractFunc decodes one frame index from a file.
type ExtractFunc func(path string, index int) (image.Image, error)

// Locator converts an elapsed time inside a matched video into a decoded
// frame.
type Locator struct {
	// FPS and Extract default to ffprobe/ffmpeg; tests swap them out.
	FPS     FPSFunc
	Extract ExtractFunc
	Offset  int

	log zerolog.Logger
}

// New creates a locator backed by ffprobe for frame rates and ffmpeg for
// frame decoding.
func New(client *probe.Client, ffmpegBinary string, timeout time.Duration, offset int) *Locator {
	if ffmpegBinary == "" {
		ffmpegBinary = DefaultBinary
	}
	return &Locator{
		FPS: client.FrameRate,
		Extract: func(path string, index int) (image.Image, error) {
			return extractFrame(ffmpegBinary, timeout, path, index)
		},
		Offset: offset,
		log:    logging.New("frame"),
	}
}

// At decodes the frame at the given elapsed time into the video. The frame
// index is floor(elapsed*fps)+offset with no bounds check; an out-of-range
// index surfaces as the decoder's own failure. "No frame" is a first-class
// outcome, not an error.
func (l *Locator) At(path string, elapsed time.Duration) (image.Image, bool) {
	fps, err := l.FPS(path)
	if err != nil {
		l.log.Error().Str("path", path).Err(err).Msg("Error retrieving frame")
		return nil, false
	}

	index := FrameIndex(elapsed, fps, l.Offset)
	img, err := l.Extract(path, index)
	if err != nil {
		l.log.Error().Str("path", path).Int("frame", index).Err(err).Msg("Error retrieving frame")
		return nil, false
	}

	return img, true
}

// FrameIndex computes the frame number for an elapsed time at the given
// frame rate, shifted by the offset.
func FrameIndex(elapsed time.Duration, fps float64, offset int) int {
	return int(math.Floor(elapsed.Seconds()*fps)) + offset
}

// extractFrame asks ffmpeg for exactly one frame by index, encoded as PNG
// on stdout.
func extractFrame(binary string, timeout time.Duration, path string, index int) (image.Image, error) {
	if timeout <= 0 {
		timeout = probe.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-i", path,
		"-vf", fmt.Sprintf("select=eq(n\\,%d)", index),
		"-vsync", "0",
		"-frames:v", "1",
		"-f", "image2pipe",
		"-c:v", "png",
		"-",
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg failed for %s: %w", path, err)
	}
	if len(output) == 0 {
		return nil, fmt.Errorf("no frame %d in %s", index, path)
	}

	img, err := png.Decode(bytes.NewReader(output))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}

	return img, nil
}

// SavePNG writes a decoded frame to disk as a PNG image.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// Display hands a saved frame image to the platform's default viewer.
// On-screen rendering itself stays outside this tool.
func Display(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open viewer: %w", err)
	}
	return nil
}
