// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ParseConfig holds settings for the parse stage.
type ParseConfig struct {
	// AllowedCourses restricts which course numbers produce an active
	// class context. Nil disables filtering entirely; a header whose
	// course number is absent from a non-nil list clears the context
	// and drops the students that follow it.
	AllowedCourses []string `json:"allowed_courses" yaml:"allowed_courses"`

	// DepartmentPrefix is a subject-code setting kept for settings-file
	// compatibility. It is loaded and carried but never consulted during
	// extraction.
	DepartmentPrefix string `json:"department_prefix,omitempty" yaml:"department_prefix,omitempty"`

	// EmailDomain is the substring that marks a follow-on line as an
	// institutional email line (e.g. "@pcc.edu").
	EmailDomain string `json:"email_domain" yaml:"email_domain"`

	// InterleavePasses selects single-pass header/identifier
	// interleaving instead of the default two-pass-per-page ordering,
	// where every header on a page is resolved before any identifier
	// on that page is processed.
	InterleavePasses bool `json:"interleave_passes" yaml:"interleave_passes"`

	// OutputNamePrefix is the workbook filename prefix; the detected
	// term is appended when non-empty.
	OutputNamePrefix string `json:"output_name_prefix" yaml:"output_name_prefix"`

	// OutputDir is the directory for Excel workbooks.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// RosterDir is the base directory for pipeline data
	// (contains records/, index/).
	RosterDir string `json:"roster_dir" yaml:"roster_dir"`
}

// StoreConfig holds settings for the roster index stage.
type StoreConfig struct {
	// RosterDir is the base directory for pipeline data
	// (contains records/, index/).
	RosterDir string `json:"roster_dir" yaml:"roster_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
