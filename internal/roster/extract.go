// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pdiddy/classlist/pkg/types"
)

// Config holds the settings the walk consults. The zero value scans
// every course and recognizes no email lines.
type Config struct {
	// AllowedCourses restricts which course numbers open an active
	// context. Nil disables filtering. A header whose course number is
	// missing from a non-nil set clears the context, dropping the
	// students that follow until the next qualifying header.
	AllowedCourses map[string]bool

	// EmailDomain is the substring that marks the line after an
	// identifier line as an institutional email line.
	EmailDomain string

	// Interleave switches the walk to single-pass header/identifier
	// interleaving. The default is the two-pass-per-page ordering of
	// the source tool: all headers on a page are resolved before any
	// identifier on that page is processed, so a header printed after
	// a student row still governs it.
	Interleave bool
}

// NewConfig builds a walk Config from stage settings.
func NewConfig(cfg types.ParseConfig) Config {
	c := Config{
		EmailDomain: cfg.EmailDomain,
		Interleave:  cfg.InterleavePasses,
	}
	if cfg.AllowedCourses != nil {
		c.AllowedCourses = make(map[string]bool, len(cfg.AllowedCourses))
		for _, n := range cfg.AllowedCourses {
			c.AllowedCourses[n] = true
		}
	}
	return c
}

// DiagnosticKind classifies a soft failure noticed during the walk.
type DiagnosticKind string

const (
	// DiagNoContext marks an identifier line skipped because no class
	// context was active.
	DiagNoContext DiagnosticKind = "no-context"

	// DiagBadName marks a record emitted with blank names because its
	// name region could not be split into last and first.
	DiagBadName DiagnosticKind = "bad-name"
)

// Diagnostic is one soft-failure note. The walk never aborts on
// malformed input; it degrades and records what it saw.
type Diagnostic struct {
	// Page and Line locate the offending line, both 1-based.
	Page int
	Line int

	Kind DiagnosticKind

	// Text is the offending line, trimmed.
	Text string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("page %d line %d: %s: %q", d.Page, d.Line, d.Kind, d.Text)
}

// Result accumulates the output of one document walk.
type Result struct {
	// Records lists extracted student records in page order, then
	// in-page discovery order.
	Records []types.StudentRecord

	// Term is the academic term label detected on the first page, or "".
	Term string

	// Diagnostics lists the soft failures encountered.
	Diagnostics []Diagnostic
}

// Parse walks the ordered page texts and extracts student records. The
// active class context is local to the walk and persists across page
// boundaries; it is never package-level state.
func Parse(pages []string, cfg Config) Result {
	var res Result
	var ctx *types.ClassSection

	for i, text := range pages {
		if i == 0 {
			res.Term = DetectTerm(text)
		}
		lines := strings.Split(text, "\n")
		if cfg.Interleave {
			ctx = walkInterleaved(lines, i+1, ctx, cfg, &res)
		} else {
			ctx = walkTwoPass(lines, i+1, ctx, cfg, &res)
		}
	}

	return res
}

// walkTwoPass resolves every header on the page, then scans the same
// lines again for identifiers under the final context ordering of the
// source tool.
func walkTwoPass(lines []string, page int, ctx *types.ClassSection, cfg Config, res *Result) *types.ClassSection {
	for _, line := range lines {
		if sec, ok := matchHeader(line); ok {
			ctx = acceptHeader(sec, cfg)
		}
	}

	idx := 0
	for idx < len(lines) {
		idx += extractAt(lines, idx, page, ctx, cfg, res)
	}
	return ctx
}

// walkInterleaved applies headers and identifiers in a single pass over
// the page, line by line. A line recognized as a header is never also
// scanned for an identifier.
func walkInterleaved(lines []string, page int, ctx *types.ClassSection, cfg Config, res *Result) *types.ClassSection {
	idx := 0
	for idx < len(lines) {
		if sec, ok := matchHeader(lines[idx]); ok {
			ctx = acceptHeader(sec, cfg)
			idx++
			continue
		}
		idx += extractAt(lines, idx, page, ctx, cfg, res)
	}
	return ctx
}

// acceptHeader applies the allow-list filter to a matched header. A
// passing header replaces the context wholesale; a failing one clears it.
func acceptHeader(sec types.ClassSection, cfg Config) *types.ClassSection {
	if cfg.AllowedCourses != nil && !cfg.AllowedCourses[sec.CourseNumber] {
		return nil
	}
	return &sec
}

// extractAt attempts a record at lines[idx] and returns how many lines
// were consumed: 1 when the line holds no identifier or no context is
// active, 2 when a record was emitted. The line after an identifier
// line is always consumed along with it, whether or not it held an
// email.
func extractAt(lines []string, idx, page int, ctx *types.ClassSection, cfg Config, res *Result) int {
	line := lines[idx]

	id := findIdentifier(line)
	if id == "" {
		return 1
	}
	if ctx == nil {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Page: page, Line: idx + 1, Kind: DiagNoContext, Text: strings.TrimSpace(line),
		})
		return 1
	}

	first, last, ok := splitName(strings.SplitN(line, id, 2)[0])
	if !ok {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Page: page, Line: idx + 1, Kind: DiagBadName, Text: strings.TrimSpace(line),
		})
	}

	email := ""
	if idx+1 < len(lines) && cfg.EmailDomain != "" {
		next := strings.TrimSpace(lines[idx+1])
		if strings.Contains(next, cfg.EmailDomain) {
			if fields := strings.Fields(next); len(fields) > 0 {
				email = fields[0]
			}
		}
	}

	res.Records = append(res.Records, types.StudentRecord{
		FirstName: first,
		LastName:  last,
		GNumber:   id,
		Email:     email,
		Class:     ctx.Label(),
		CRN:       ctx.CRN,
	})
	return 2
}

// splitName parses the name region before the identifier: discard the
// leading token (the roster row number), then split the remainder on
// the first comma into last and first. Any failure degrades to blank
// names; the record is still emitted.
func splitName(region string) (first, last string, ok bool) {
	trimmed := strings.TrimSpace(region)
	i := strings.IndexFunc(trimmed, unicode.IsSpace)
	if i < 0 {
		return "", "", false
	}
	rest := trimmed[i+1:]

	j := strings.Index(rest, ",")
	if j < 0 {
		return "", "", false
	}
	return strings.TrimSpace(rest[j+1:]), strings.TrimSpace(rest[:j]), true
}

// Group is the ordered set of records for one (class label, CRN) pair.
type Group struct {
	Class   string
	CRN     string
	Records []types.StudentRecord
}

// Key returns the sheet-name key for the group, "<class>_<CRN>".
func (g Group) Key() string {
	return g.Class + "_" + g.CRN
}

// GroupRecords partitions records by (class label, CRN). Groups appear
// in first-appearance order and keep their records in input order.
func GroupRecords(records []types.StudentRecord) []Group {
	index := make(map[string]int)
	var groups []Group

	for _, rec := range records {
		key := rec.Class + "_" + rec.CRN
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Class: rec.Class, CRN: rec.CRN})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	return groups
}
