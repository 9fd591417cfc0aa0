// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/classlist/internal/pdfio"
	"github.com/pdiddy/classlist/internal/report"
	"github.com/pdiddy/classlist/internal/roster"
	"github.com/pdiddy/classlist/pkg/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Extract student records from class-list PDFs",
	Long: `Parse reads Banner class-list PDFs (or pre-extracted text files with
form-feed page breaks), extracts student enrollment records grouped by
class section, and writes an Excel workbook with a Combined sheet plus
one sheet per class/CRN. A records YAML file is written alongside for
the store stage.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := parseSettings(cmd)

	recDir := filepath.Join(cfg.RosterDir, "records")
	for _, dir := range []string{cfg.OutputDir, recDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	walkCfg := roster.NewConfig(cfg)
	verbose, _ := cmd.Flags().GetBool("diagnostics")

	failed := 0
	takenStems := make(map[string]bool)
	for _, path := range args {
		if err := parseOne(path, cfg, walkCfg, takenStems, verbose, os.Stdout); err != nil {
			fmt.Fprintf(os.Stdout, "failed  %s: %v\n", path, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed parsing", failed)
	}
	return nil
}

// parseOne runs the full parse pipeline for a single source document.
// takenStems carries the workbook stems already used in this batch so
// same-term documents do not overwrite each other.
func parseOne(path string, cfg types.ParseConfig, walkCfg roster.Config, takenStems map[string]bool, verbose bool, w io.Writer) error {
	pages, err := pdfio.ForPath(path).ReadPages(path)
	if err != nil {
		return err
	}

	res := roster.Parse(pages, walkCfg)
	groups := roster.GroupRecords(res.Records)

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem := report.DisambiguateStem(
		report.Stem(cfg.OutputNamePrefix, res.Term), report.SafeFilename(base), takenStems)

	wbPath := filepath.Join(cfg.OutputDir, stem+".xlsx")
	if err := report.WriteWorkbook(wbPath, res.Records); err != nil {
		return err
	}
	recPath := filepath.Join(cfg.RosterDir, "records", report.SafeFilename(base)+"-records.yaml")
	r := types.Roster{
		Source:   path,
		Term:     res.Term,
		ParsedAt: time.Now().UTC(),
		Records:  res.Records,
	}
	if err := report.WriteRecordsYAML(recPath, r); err != nil {
		return err
	}

	fmt.Fprintf(w, "parsed  %s: %d records in %d classes", path, len(res.Records), len(groups))
	if res.Term != "" {
		fmt.Fprintf(w, " (%s)", res.Term)
	}
	fmt.Fprintln(w)

	if n := len(res.Diagnostics); n > 0 {
		fmt.Fprintf(w, "        %d line(s) degraded or skipped\n", n)
		if verbose {
			for _, d := range res.Diagnostics {
				fmt.Fprintf(w, "        %s\n", d)
			}
		}
	}

	fmt.Fprintf(w, "wrote   %s\n", wbPath)
	fmt.Fprintf(w, "wrote   %s\n", recPath)
	return nil
}

// parseSettings builds the parse stage configuration from the settings
// file, environment, and flags.
func parseSettings(cmd *cobra.Command) types.ParseConfig {
	cfg := types.ParseConfig{
		AllowedCourses:   viper.GetStringSlice("allowed_courses"),
		DepartmentPrefix: viper.GetString("department_prefix"),
		EmailDomain:      viper.GetString("email_domain"),
		InterleavePasses: viper.GetBool("interleave_passes"),
		OutputNamePrefix: viper.GetString("output_name_prefix"),
		OutputDir:        viper.GetString("output_dir"),
		RosterDir:        viper.GetString("roster_dir"),
	}

	// An explicitly empty list in the settings file means "accept all
	// course numbers".
	if len(cfg.AllowedCourses) == 0 {
		cfg.AllowedCourses = nil
	}
	if all, _ := cmd.Flags().GetBool("all-courses"); all {
		cfg.AllowedCourses = nil
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if dir, _ := cmd.Flags().GetString("roster-dir"); dir != "" {
		cfg.RosterDir = dir
	}
	if interleave, _ := cmd.Flags().GetBool("interleave"); interleave {
		cfg.InterleavePasses = true
	}

	return cfg
}

func init() {
	parseCmd.Flags().String("output-dir", "", "directory for Excel workbooks (default from settings)")
	parseCmd.Flags().String("roster-dir", "", "base directory for pipeline data (default from settings)")
	parseCmd.Flags().Bool("all-courses", false, "ignore the course allow-list and accept every class")
	parseCmd.Flags().Bool("interleave", false, "apply headers line by line instead of resolving a whole page of headers first")
	parseCmd.Flags().Bool("diagnostics", false, "print each degraded or skipped line")

	rootCmd.AddCommand(parseCmd)
}
