package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vidseek/vidseek/internal/cache"
	"github.com/vidseek/vidseek/internal/config"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the cache artifact",
	Long: `Delete the cached index. The next scan or seek rebuilds it from the
video files.

Example:
  vidseek clear`,
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	c := cache.New(config.CacheFile())

	if !c.Exists() {
		fmt.Println("No cache to clear")
		return nil
	}

	if err := c.Clear(); err != nil {
		return err
	}

	fmt.Printf("Removed %s\n", c.Path)
	return nil
}
