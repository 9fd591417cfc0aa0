// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/classlist/internal/store"
	"github.com/pdiddy/classlist/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest parsed records into the roster index",
	Long: `Store reads records YAML files from roster/records/, ingests them into
a SQLite index with full-text search over student names, and skips
files unchanged since the last run.`,
	RunE: runStore,
}

func runStore(cmd *cobra.Command, args []string) error {
	s, err := store.NewStore(storeSettings(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d roster file(s) failed indexing", summary.Failed)
	}
	return nil
}

// storeSettings builds the index configuration shared by the store,
// retrieve, and export commands.
func storeSettings(cmd *cobra.Command) types.StoreConfig {
	cfg := types.StoreConfig{
		RosterDir:  viper.GetString("roster_dir"),
		MaxResults: viper.GetInt("max_results"),
	}
	if dir, _ := cmd.Flags().GetString("roster-dir"); dir != "" {
		cfg.RosterDir = dir
	}
	return cfg
}

func init() {
	storeCmd.Flags().String("roster-dir", "", "base directory for pipeline data (default from settings)")

	rootCmd.AddCommand(storeCmd)
}
