package config

import (
	"time"

	"github.com/spf13/viper"
)

// CacheFile returns the path of the cache artifact.
func CacheFile() string {
	return viper.GetString("cache.file")
}

// Extensions returns the video extensions included in a scan.
func Extensions() []string {
	return viper.GetStringSlice("scan.extensions")
}

// AdjustCreationTime returns whether mtime-derived creation times are
// shifted back by the video duration.
func AdjustCreationTime() bool {
	return viper.GetBool("scan.adjust_creation_time")
}

// FFprobePath returns the ffprobe binary to invoke.
func FFprobePath() string {
	return viper.GetString("tools.ffprobe")
}

// FFmpegPath returns the ffmpeg binary to invoke.
func FFmpegPath() string {
	return viper.GetString("tools.ffmpeg")
}

// ProbeTimeout returns the per-invocation timeout for ffprobe/ffmpeg calls.
func ProbeTimeout() time.Duration {
	return time.Duration(viper.GetInt("probe.timeout_seconds")) * time.Second
}
