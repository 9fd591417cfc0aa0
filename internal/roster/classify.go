// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster reconstructs student enrollment records from the
// linearized text of a Banner class-list document. Scanning is
// line-oriented: class header lines open a section context, identifier
// lines emit records tagged with the context active at that point, and
// everything else is ignored.
package roster

import (
	"regexp"
	"strings"

	"github.com/pdiddy/classlist/pkg/types"
)

// headerRE matches a class header line at line start (leading whitespace
// tolerated): CRN, subject code, course number with optional trailing
// uppercase letter, single-digit section, then the course title.
var headerRE = regexp.MustCompile(`^\s*(\d{5})\s+(\w+)\s+(\d+[A-Z]?)\s+(\d)\s+(.*)`)

// gNumberRE matches a student identifier anywhere in a line: the letter
// "G" followed by exactly 8 digits.
var gNumberRE = regexp.MustCompile(`G\d{8}`)

// matchHeader reports whether line is a class header, returning the
// captured section fields. The course title is whitespace-trimmed by
// the trailing capture plus TrimSpace.
func matchHeader(line string) (types.ClassSection, bool) {
	m := headerRE.FindStringSubmatch(line)
	if m == nil {
		return types.ClassSection{}, false
	}
	return types.ClassSection{
		CRN:          m[1],
		Subject:      m[2],
		CourseNumber: m[3],
		Section:      m[4],
		CourseName:   strings.TrimSpace(m[5]),
	}, true
}

// findIdentifier returns the first student identifier substring in
// line, or "" when the line carries none.
func findIdentifier(line string) string {
	return gNumberRE.FindString(line)
}
