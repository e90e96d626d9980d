// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the salary-engine CLI. It wraps the
// recommendation engine with a command surface: recommend, sources, history,
// and version.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meshintel/salary-engine/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the salary-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "salary-engine",
	Short: "Multi-source salary recommendation engine",
	Long: `salary-engine recommends a target salary and range for a job by blending
observations from independent market-data sources into a weighted percentile
distribution, with a confidence rating and named pricing scenarios.

Sources are configured in salary-engine.yaml: HTTP observation endpoints and
a directory of survey batch files. API keys live in .secrets/, one file per
key.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./salary-engine.yaml or ~/.config/salary-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("salary-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "salary-engine"))
		}
	}

	viper.SetEnvPrefix("SALARY_ENGINE")
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
