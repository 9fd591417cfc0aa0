// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the classlist CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// defaultAllowedCourses is the built-in course allow-list, overridable
// from the settings file. An explicitly empty list disables filtering.
var defaultAllowedCourses = []string{
	"170", "221", "223", "240", "242", "244",
	"246", "248", "252", "254", "260", "265",
	"266", "267", "270", "280A",
}

// rootCmd is the base command for the classlist CLI.
var rootCmd = &cobra.Command{
	Use:   "classlist",
	Short: "Parse Banner class-list PDFs into spreadsheets and a roster index",
	Long: `classlist extracts student enrollment records from Banner SIS class-list
PDFs and reorganizes them by class section.

Each pipeline stage is a subcommand: parse reads a PDF and writes an
Excel workbook plus a records file, store ingests records files into a
SQLite roster index, and retrieve/export query that index.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "settings file (default: ./classlist.yaml or ~/.config/classlist/classlist.yaml)")
}

func initConfig() {
	viper.SetDefault("allowed_courses", defaultAllowedCourses)
	viper.SetDefault("department_prefix", "")
	viper.SetDefault("email_domain", "@pcc.edu")
	viper.SetDefault("output_name_prefix", "GEO_Class_Lists")
	viper.SetDefault("output_dir", "output")
	viper.SetDefault("roster_dir", "roster")
	viper.SetDefault("interleave_passes", false)
	viper.SetDefault("max_results", 20)

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("classlist")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "classlist"))
		}
	}

	viper.SetEnvPrefix("CLASSLIST")
	viper.AutomaticEnv()

	// An unreadable or malformed settings file is reported and the
	// defaults apply; it never aborts the run.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "Could not load settings (%v); using defaults.\n", err)
		}
	} else {
		fmt.Fprintln(os.Stderr, "Using settings file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
