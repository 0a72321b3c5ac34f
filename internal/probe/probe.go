package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/vidseek/vidseek/internal/models"
)

const (
	// DefaultBinary is the ffprobe executable looked up on PATH.
	DefaultBinary = "ffprobe"
	// DefaultTimeout bounds a single probe invocation.
	DefaultTimeout = 30 * time.Second
)

// Client wraps the ffprobe executable.
type Client struct {
	binary  string
	timeout time.Duration
}

// Result is the typed outcome of probing one container. Absent fields are
// nil; the extractor decides what to do with them.
type Result struct {
	Duration         *float64
	CreationDate     *time.Time
	DateTimeOriginal *time.Time
	DateTime         *time.Time
}

// NewClient creates a new ffprobe client.
func NewClient(binary string, timeout time.Duration) *Client {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{binary: binary, timeout: timeout}
}

// IsAvailable checks if the ffprobe binary can be found on PATH.
func IsAvailable(binary string) bool {
	if binary == "" {
		binary = DefaultBinary
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

// File probes a single container and returns its typed metadata.
func (c *Client) File(path string) (Result, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return Result{}, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	return parseProbeJSON(output)
}

// FrameRate returns the frames-per-second of the first video stream.
func (c *Client) FrameRate(path string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=avg_frame_rate,r_frame_rate",
		"-print_format", "json",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var raw probeOutput
	if err := json.Unmarshal(output, &raw); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	for _, stream := range raw.Streams {
		if fps, ok := parseFrameRate(stream.AvgFrameRate); ok {
			return fps, nil
		}
		if fps, ok := parseFrameRate(stream.RFrameRate); ok {
			return fps, nil
		}
	}

	return 0, fmt.Errorf("no frame rate found in %s", path)
}

// probeOutput mirrors the parts of ffprobe's JSON output we consume.
type probeOutput struct {
	Format struct {
		Duration string            `json:"duration"`
		Tags     map[string]string `json:"tags"`
	} `json:"format"`
	Streams []struct {
		CodecType    string            `json:"codec_type"`
		AvgFrameRate string            `json:"avg_frame_rate"`
		RFrameRate   string            `json:"r_frame_rate"`
		Tags         map[string]string `json:"tags"`
	} `json:"streams"`
}

// Container tag names feeding each creation time source. ffprobe spells
// these differently per muxer, so each source tries a handful of keys.
var (
	creationDateTags     = []string{"creation_time", "com.apple.quicktime.creationdate"}
	dateTimeOriginalTags = []string{"date_time_original", "DateTimeOriginal"}
	dateTimeTags         = []string{"date", "date_time", "DateTime"}
)

func parseProbeJSON(data []byte) (Result, error) {
	var raw probeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var res Result

	if raw.Format.Duration != "" {
		if d, err := strconv.ParseFloat(raw.Format.Duration, 64); err == nil {
			res.Duration = &d
		}
	}

	// Stream tags back the format tags up; format tags win on conflict.
	tags := make(map[string]string)
	for _, stream := range raw.Streams {
		for k, v := range stream.Tags {
			tags[k] = v
		}
	}
	for k, v := range raw.Format.Tags {
		tags[k] = v
	}

	res.CreationDate = lookupTagTime(tags, creationDateTags)
	res.DateTimeOriginal = lookupTagTime(tags, dateTimeOriginalTags)
	res.DateTime = lookupTagTime(tags, dateTimeTags)

	return res, nil
}

func lookupTagTime(tags map[string]string, keys []string) *time.Time {
	for _, key := range keys {
		if v, ok := tags[key]; ok {
			if t, err := parseTagTime(v); err == nil {
				return &t
			}
		}
	}
	return nil
}

// tagTimeLayouts covers the datetime spellings seen across container
// formats: ISO with and without zone, EXIF colons, plain wall clock.
var tagTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006:01:02 15:04:05",
}

func parseTagTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range tagTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Naive(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

func parseFrameRate(fraction string) (float64, bool) {
	num, den, ok := strings.Cut(fraction, "/")
	if !ok {
		if v, err := strconv.ParseFloat(fraction, 64); err == nil && v > 0 {
			return v, true
		}
		return 0, false
	}

	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 || n == 0 {
		return 0, false
	}
	return n / d, true
}
