// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibliostat CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lmartins/bibliostat/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the bibliostat CLI.
var rootCmd = &cobra.Command{
	Use:   "bibliostat",
	Short: "Bibliometric analysis over the Scopus Search API",
	Long: `bibliostat queries the Elsevier Scopus Search API, paginates through the
matching documents, and computes descriptive statistics: citation totals,
publications per year, and top-N tables for authors, venues, and title
terms. Record sets can be saved to YAML snapshots and exported to CSV or
XLSX.

An Elsevier API key is required. It is read from the --api-key flag, the
BIBLIOSTAT_API_KEY environment variable, the config file, or
.secrets/scopus-api-key, in that order.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibliostat.yaml or ~/.config/bibliostat/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibliostat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibliostat"))
		}
	}

	viper.SetEnvPrefix("BIBLIOSTAT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
