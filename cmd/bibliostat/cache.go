package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lmartins/bibliostat/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local search cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached search results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cacheDir, _ := cmd.Flags().GetString("cache-dir")

		s, err := store.Open(cacheDir)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Search cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().String("cache-dir", defaultCacheDir, "directory for the search cache database")

	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
