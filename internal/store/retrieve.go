// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/classlist/pkg/types"
)

// QueryOptions holds parameters for roster index queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over student names.
	Query string

	// Class filters by class label (e.g. "GEO 170").
	Class string

	// CRN filters by Course Reference Number.
	CRN string

	// Term filters by academic term label.
	Term string

	// GNumber filters by student identifier.
	GNumber string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Class == "" && q.CRN == "" && q.Term == "" && q.GNumber == ""
}

// QueryResult is a StudentRecord with its roster provenance.
type QueryResult struct {
	types.StudentRecord `yaml:",inline"`
	Term                string `json:"term" yaml:"term"`
	Source              string `json:"source" yaml:"source"`
}

// Retrieve queries the roster index with optional full-text name search
// and structured filters. Full-text queries are ranked by relevance;
// structured-only queries are ordered by class, CRN, then last name.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT st.first_name, st.last_name, st.g_number, st.email,
				st.class, st.crn, st.term, st.source, students_fts.rank
			FROM students_fts
			JOIN students st ON st.rowid = students_fts.rowid
			WHERE students_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT st.first_name, st.last_name, st.g_number, st.email,
				st.class, st.crn, st.term, st.source, 0 AS rank
			FROM students st
			WHERE 1=1`)
	}

	if opts.Class != "" {
		qb.WriteString(` AND st.class = ?`)
		args = append(args, opts.Class)
	}
	if opts.CRN != "" {
		qb.WriteString(` AND st.crn = ?`)
		args = append(args, opts.CRN)
	}
	if opts.Term != "" {
		qb.WriteString(` AND st.term = ?`)
		args = append(args, opts.Term)
	}
	if opts.GNumber != "" {
		qb.WriteString(` AND st.g_number = ?`)
		args = append(args, opts.GNumber)
	}

	if useFTS {
		qb.WriteString(` ORDER BY students_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY st.class, st.crn, st.last_name, st.first_name`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying roster index: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr   QueryResult
			rank float64
		)
		if err := rows.Scan(
			&qr.FirstName, &qr.LastName, &qr.GNumber, &qr.Email,
			&qr.Class, &qr.CRN, &qr.Term, &qr.Source, &rank,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, qr)
	}

	return results, rows.Err()
}
