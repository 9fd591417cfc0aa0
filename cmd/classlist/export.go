// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/classlist/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roster index to YAML or JSON",
	Long: `Export writes the full roster index (or a filtered subset) to
roster/index/export.yaml or export.json. Supports the same filter
flags as retrieve for partial exports.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg := storeSettings(cmd)
	s, err := store.NewStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := s.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(cfg.RosterDir, "index", "export.yaml"))
	case "json":
		if err := s.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to", filepath.Join(cfg.RosterDir, "index", "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

func init() {
	exportCmd.Flags().String("roster-dir", "", "base directory for pipeline data (default from settings)")
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("query", "", "full-text name filter for partial export")
	exportCmd.Flags().String("class", "", "filter by class label for partial export")
	exportCmd.Flags().String("crn", "", "filter by CRN for partial export")
	exportCmd.Flags().String("term", "", "filter by term label for partial export")
	exportCmd.Flags().String("gnumber", "", "filter by student identifier for partial export")
	exportCmd.Flags().Int("limit", 0, "maximum records to export (0 = all)")

	rootCmd.AddCommand(exportCmd)
}
