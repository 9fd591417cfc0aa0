// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report serializes parse output: the Excel workbook handed to
// instructors and the records YAML file the store stage ingests.
package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/classlist/internal/roster"
	"github.com/pdiddy/classlist/pkg/types"
)

// columns is the fixed workbook column layout. Downstream consumers
// depend on these headers verbatim.
var columns = []string{
	"First Name",
	"Last Name",
	"G Number",
	"PCC email address",
	"Non-PCC email",
	"Class",
	"CRN",
}

// combinedSheet holds every record; per-class sheets follow it.
const combinedSheet = "Combined"

// sheetNameLimit is the Excel sheet name length limit.
const sheetNameLimit = 31

// ErrDestinationLocked marks a workbook write refused because the
// destination file is held open by another program (typically Excel).
var ErrDestinationLocked = errors.New("output file is locked by another program")

// WriteWorkbook writes records to an Excel workbook at path: a Combined
// sheet with all records, then one sheet per (class, CRN) group named
// "<class>_<CRN>" truncated to the Excel limit.
func WriteWorkbook(path string, records []types.StudentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", combinedSheet); err != nil {
		return fmt.Errorf("naming combined sheet: %w", err)
	}
	if err := writeSheet(f, combinedSheet, records); err != nil {
		return err
	}

	for _, g := range roster.GroupRecords(records) {
		name := sheetName(g.Key())
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, g.Records); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: close %s and run again", ErrDestinationLocked, path)
		}
		return fmt.Errorf("writing workbook %s: %w", path, err)
	}
	return nil
}

// writeSheet fills one sheet with the header row and one row per record.
func writeSheet(f *excelize.File, sheet string, records []types.StudentRecord) error {
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header on %q: %w", sheet, err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d on %q: %w", i+2, sheet, err)
		}
		row := []interface{}{
			rec.FirstName, rec.LastName, rec.GNumber,
			rec.Email, rec.AltEmail, rec.Class, rec.CRN,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d on %q: %w", i+2, sheet, err)
		}
	}
	return nil
}

// sheetName truncates a group key to the Excel sheet name limit.
func sheetName(key string) string {
	if len(key) > sheetNameLimit {
		return key[:sheetNameLimit]
	}
	return key
}

// WriteRecordsYAML writes the roster hand-off file for the store stage.
func WriteRecordsYAML(path string, r types.Roster) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling roster: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9 _\-]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

// SafeFilename strips characters outside letters, digits, spaces,
// underscores, and hyphens, and collapses whitespace runs to single
// spaces.
func SafeFilename(s string) string {
	s = strings.TrimSpace(s)
	s = unsafeChars.ReplaceAllString(s, "")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Stem combines the configured filename prefix with the detected term.
// An empty term is omitted rather than leaving a dangling separator.
func Stem(prefix, term string) string {
	if term == "" {
		return SafeFilename(prefix)
	}
	return SafeFilename(prefix + "_" + term)
}

// DisambiguateStem keeps workbook names unique within one batch. Two
// documents with the same detected term would otherwise overwrite each
// other's workbook. A taken stem gets the source name appended, then a
// numeric suffix if that is taken too. The chosen stem is recorded in
// taken.
func DisambiguateStem(stem, sourceBase string, taken map[string]bool) string {
	candidate := stem
	if taken[candidate] {
		candidate = SafeFilename(stem + "_" + sourceBase)
	}
	base := candidate
	for i := 2; taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s %d", base, i)
	}
	taken[candidate] = true
	return candidate
}
