package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovenlight/toastctl/internal/toast"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Remove the cached token and menu data",
	RunE: func(cmd *cobra.Command, args []string) error {
		tokenCache := toast.NewTokenCache(cfg.TokenCacheFile, logger)
		if err := tokenCache.Clear(); err != nil {
			return err
		}
		menuCache := toast.NewDataCache(cfg.MenuCacheFile, logger)
		if err := menuCache.Clear(); err != nil {
			return err
		}
		fmt.Println("Caches cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCacheCmd)
}
