package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidseek/vidseek/internal/logging"
	"github.com/vidseek/vidseek/internal/scan"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vidseek",
	Short: "Index video files by recording interval and seek frames by wall-clock time",
	Long: `vidseek indexes a directory tree of video files by their real-world
recording interval (start timestamp, duration) and answers the question
"which video, and which frame inside it, corresponds to this point in time?"

It is built for archival and surveillance footage split across many files
with unreliable or missing embedded timestamps: creation times are taken
from container metadata with a fallback chain ending at the file mtime,
and the resulting index is cached between runs.

Requires ffprobe and ffmpeg on PATH (or configured via tools.ffprobe /
tools.ffmpeg).`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/vidseek/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show per-file extraction diagnostics")
}

func initConfig() {
	logging.Setup(verbose)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "vidseek")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("cache.file", "video_metadata_cache.json")
	viper.SetDefault("scan.extensions", scan.DefaultExtensions)
	viper.SetDefault("scan.adjust_creation_time", false)
	viper.SetDefault("tools.ffprobe", "ffprobe")
	viper.SetDefault("tools.ffmpeg", "ffmpeg")
	viper.SetDefault("probe.timeout_seconds", 30)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
