// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ClassSection holds the fields captured from one class header line.
type ClassSection struct {
	// CRN is the 5-digit Course Reference Number for the section.
	CRN string `json:"crn" yaml:"crn"`

	// Subject is the subject code (e.g. "GEO").
	Subject string `json:"subject" yaml:"subject"`

	// CourseNumber is the course number token, digits with an optional
	// trailing uppercase letter (e.g. "170", "280A").
	CourseNumber string `json:"course_number" yaml:"course_number"`

	// Section is the single-digit section number.
	Section string `json:"section" yaml:"section"`

	// CourseName is the free-text course title, whitespace-trimmed.
	CourseName string `json:"course_name" yaml:"course_name"`
}

// Label returns the class label used to tag student records (e.g. "GEO 170").
func (c ClassSection) Label() string {
	return c.Subject + " " + c.CourseNumber
}

// StudentRecord is one extracted enrollment row. Records are immutable
// once emitted; Class and CRN always name the section that was active
// when the record was created.
type StudentRecord struct {
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`

	// GNumber is the institutional student identifier: "G" followed by
	// exactly 8 digits, captured verbatim.
	GNumber string `json:"g_number" yaml:"g_number"`

	// Email is the institutional email from the line following the
	// identifier line, or empty if none was found there.
	Email string `json:"email" yaml:"email"`

	// AltEmail is reserved for a non-institutional address. Always empty
	// today; it exists so the output column layout stays stable.
	AltEmail string `json:"alt_email,omitempty" yaml:"alt_email,omitempty"`

	// Class is the section label, subject plus course number.
	Class string `json:"class" yaml:"class"`

	// CRN is the section's Course Reference Number.
	CRN string `json:"crn" yaml:"crn"`
}

// Roster is the parsed output for one source document, written as the
// records YAML hand-off between the parse and store stages.
type Roster struct {
	// Source is the path of the document the roster was parsed from.
	Source string `json:"source" yaml:"source"`

	// Term is the detected academic term label (e.g. "Fall 2025"),
	// empty when no term information was found.
	Term string `json:"term,omitempty" yaml:"term,omitempty"`

	// ParsedAt is when the parse ran.
	ParsedAt time.Time `json:"parsed_at" yaml:"parsed_at"`

	// Records lists the extracted student records in discovery order.
	Records []StudentRecord `json:"records" yaml:"records"`
}
