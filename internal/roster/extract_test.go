package roster

import (
	"strings"
	"testing"

	"github.com/pdiddy/classlist/pkg/types"
)

func testConfig() Config {
	return Config{EmailDomain: "@pcc.edu"}
}

func geoContext() *types.ClassSection {
	return &types.ClassSection{
		CRN: "12345", Subject: "GEO", CourseNumber: "170",
		Section: "1", CourseName: "Intro to Geography",
	}
}

// --- splitName ---

func TestSplitName(t *testing.T) {
	tests := []struct {
		name   string
		region string
		first  string
		last   string
		ok     bool
	}{
		{
			name:   "row number then last comma first",
			region: "1 Doe, Jane ",
			first:  "Jane",
			last:   "Doe",
			ok:     true,
		},
		{
			name:   "extra whitespace between tokens",
			region: "  12   Smith ,  John  ",
			first:  "John",
			last:   "Smith",
			ok:     true,
		},
		{
			name:   "suffix after a second comma stays with the first name",
			region: "3 Doe, Jane, Jr",
			first:  "Jane, Jr",
			last:   "Doe",
			ok:     true,
		},
		{
			name:   "no comma",
			region: "1 Doe Jane",
			ok:     false,
		},
		{
			name:   "only the row marker",
			region: "1 ",
			ok:     false,
		},
		{
			name:   "empty region",
			region: "",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, ok := splitName(tt.region)
			if ok != tt.ok {
				t.Fatalf("splitName(%q) ok = %v, want %v", tt.region, ok, tt.ok)
			}
			if first != tt.first || last != tt.last {
				t.Errorf("splitName(%q) = (%q, %q), want (%q, %q)",
					tt.region, first, last, tt.first, tt.last)
			}
		})
	}
}

// --- extractAt ---

func TestExtractAtNoIdentifier(t *testing.T) {
	var res Result
	n := extractAt([]string{"just a heading row"}, 0, 1, geoContext(), testConfig(), &res)
	if n != 1 {
		t.Errorf("consumed %d lines, want 1", n)
	}
	if len(res.Records) != 0 {
		t.Errorf("got %d records, want 0", len(res.Records))
	}
}

func TestExtractAtNoContext(t *testing.T) {
	var res Result
	n := extractAt([]string{"1 Doe, Jane G12345678"}, 0, 1, nil, testConfig(), &res)
	if n != 1 {
		t.Errorf("consumed %d lines, want 1", n)
	}
	if len(res.Records) != 0 {
		t.Errorf("got %d records, want 0", len(res.Records))
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagNoContext {
		t.Errorf("diagnostics = %v, want one %s", res.Diagnostics, DiagNoContext)
	}
}

func TestExtractAtAlwaysConsumesFollowLine(t *testing.T) {
	// The line after an identifier line is consumed whether or not it
	// holds an email.
	tests := []struct {
		name      string
		follow    string
		wantEmail string
	}{
		{"email follow line", "jdoe@pcc.edu", "jdoe@pcc.edu"},
		{"email with extra whitespace and text", "  jdoe@pcc.edu  extra text", "jdoe@pcc.edu"},
		{"unrelated follow line", "totals: 24 enrolled", ""},
		{"wrong domain", "jdoe@gmail.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []string{"1 Doe, Jane G12345678", tt.follow}
			var res Result
			n := extractAt(lines, 0, 1, geoContext(), testConfig(), &res)
			if n != 2 {
				t.Errorf("consumed %d lines, want 2", n)
			}
			if len(res.Records) != 1 {
				t.Fatalf("got %d records, want 1", len(res.Records))
			}
			if res.Records[0].Email != tt.wantEmail {
				t.Errorf("email = %q, want %q", res.Records[0].Email, tt.wantEmail)
			}
		})
	}
}

func TestExtractAtLastLineOfPage(t *testing.T) {
	var res Result
	n := extractAt([]string{"1 Doe, Jane G12345678"}, 0, 1, geoContext(), testConfig(), &res)
	if n != 2 {
		t.Errorf("consumed %d lines, want 2", n)
	}
	if len(res.Records) != 1 || res.Records[0].Email != "" {
		t.Errorf("records = %+v, want one record with empty email", res.Records)
	}
}

func TestExtractAtMalformedNameStillEmits(t *testing.T) {
	var res Result
	n := extractAt([]string{"G12345678 no name region at all"}, 0, 2, geoContext(), testConfig(), &res)
	if n != 2 {
		t.Errorf("consumed %d lines, want 2", n)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	rec := res.Records[0]
	if rec.FirstName != "" || rec.LastName != "" {
		t.Errorf("names = (%q, %q), want blank", rec.FirstName, rec.LastName)
	}
	if rec.GNumber != "G12345678" {
		t.Errorf("GNumber = %q, want G12345678", rec.GNumber)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagBadName {
		t.Errorf("diagnostics = %v, want one %s", res.Diagnostics, DiagBadName)
	}
}

// --- allow-list filtering ---

func TestAllowListClearsContext(t *testing.T) {
	page := strings.Join([]string{
		"12345 GEO 221 1 Advanced Geo",
		"1 Doe, Jane G12345678",
		"jdoe@pcc.edu",
	}, "\n")

	cfg := testConfig()
	cfg.AllowedCourses = map[string]bool{"170": true}

	res := Parse([]string{page}, cfg)
	if len(res.Records) != 0 {
		t.Errorf("got %d records, want 0: course 221 is not allowed", len(res.Records))
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagNoContext {
		t.Errorf("diagnostics = %v, want one %s", res.Diagnostics, DiagNoContext)
	}
}

func TestNilAllowListAcceptsEverything(t *testing.T) {
	page := "12345 GEO 999 1 Unlisted Course\n1 Doe, Jane G12345678"
	res := Parse([]string{page}, testConfig())
	if len(res.Records) != 1 {
		t.Errorf("got %d records, want 1", len(res.Records))
	}
}

// --- full walk ---

func TestParseTwoPageScenario(t *testing.T) {
	page1 := strings.Join([]string{
		"Geography Class List Fall 2025",
		"12345 GEO 170 1 Intro to Geography",
		"1 Doe, Jane G12345678",
		"jdoe@pcc.edu",
	}, "\n")
	page2 := strings.Join([]string{
		"54321 GEO 221 2 Advanced Geo",
		"2 Smith, John G87654321",
		"page totals: 1",
	}, "\n")

	res := Parse([]string{page1, page2}, testConfig())

	if res.Term != "Fall 2025" {
		t.Errorf("Term = %q, want %q", res.Term, "Fall 2025")
	}
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}

	want := []types.StudentRecord{
		{FirstName: "Jane", LastName: "Doe", GNumber: "G12345678", Email: "jdoe@pcc.edu", Class: "GEO 170", CRN: "12345"},
		{FirstName: "John", LastName: "Smith", GNumber: "G87654321", Email: "", Class: "GEO 221", CRN: "54321"},
	}
	for i, w := range want {
		if res.Records[i] != w {
			t.Errorf("record[%d] = %+v, want %+v", i, res.Records[i], w)
		}
	}
}

func TestContextPersistsAcrossPages(t *testing.T) {
	page1 := "12345 GEO 170 1 Intro to Geography"
	page2 := "1 Doe, Jane G12345678"

	res := Parse([]string{page1, page2}, testConfig())
	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if res.Records[0].CRN != "12345" {
		t.Errorf("CRN = %q, want 12345", res.Records[0].CRN)
	}
}

// TestPassOrdering pins the divergence between the two walk modes: when
// a header appears after a student row on the same page, the two-pass
// walk applies it retroactively, the interleaved walk does not.
func TestPassOrdering(t *testing.T) {
	page := strings.Join([]string{
		"1 Doe, Jane G12345678",
		"",
		"12345 GEO 170 1 Intro to Geography",
	}, "\n")

	twoPass := Parse([]string{page}, testConfig())
	if len(twoPass.Records) != 1 {
		t.Fatalf("two-pass: got %d records, want 1", len(twoPass.Records))
	}
	if twoPass.Records[0].Class != "GEO 170" {
		t.Errorf("two-pass: class = %q, want GEO 170", twoPass.Records[0].Class)
	}

	cfg := testConfig()
	cfg.Interleave = true
	interleaved := Parse([]string{page}, cfg)
	if len(interleaved.Records) != 0 {
		t.Errorf("interleaved: got %d records, want 0 (no context yet at the student row)", len(interleaved.Records))
	}
}

func TestInterleavedHeaderLineNotScannedForIdentifier(t *testing.T) {
	// A pathological line matching both shapes counts as a header only.
	page := strings.Join([]string{
		"12345 GEO 170 1 Intro G88888888",
		"1 Doe, Jane G12345678",
	}, "\n")

	cfg := testConfig()
	cfg.Interleave = true
	res := Parse([]string{page}, cfg)

	if len(res.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(res.Records))
	}
	if res.Records[0].GNumber != "G12345678" {
		t.Errorf("GNumber = %q, want G12345678", res.Records[0].GNumber)
	}
}

func TestParseEmptyInput(t *testing.T) {
	res := Parse(nil, testConfig())
	if len(res.Records) != 0 || res.Term != "" {
		t.Errorf("Parse(nil) = %+v, want empty result", res)
	}
}

// --- grouping ---

func TestGroupRecords(t *testing.T) {
	records := []types.StudentRecord{
		{LastName: "Doe", Class: "GEO 170", CRN: "12345"},
		{LastName: "Smith", Class: "GEO 221", CRN: "54321"},
		{LastName: "Nguyen", Class: "GEO 170", CRN: "12345"},
	}

	groups := GroupRecords(records)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	if groups[0].Key() != "GEO 170_12345" || groups[1].Key() != "GEO 221_54321" {
		t.Errorf("group keys = %q, %q; want first-appearance order", groups[0].Key(), groups[1].Key())
	}
	if len(groups[0].Records) != 2 || len(groups[1].Records) != 1 {
		t.Errorf("group sizes = %d, %d; want 2, 1", len(groups[0].Records), len(groups[1].Records))
	}
	if groups[0].Records[0].LastName != "Doe" || groups[0].Records[1].LastName != "Nguyen" {
		t.Errorf("group records out of input order: %+v", groups[0].Records)
	}
}

func TestGroupRecordsEmpty(t *testing.T) {
	if groups := GroupRecords(nil); len(groups) != 0 {
		t.Errorf("GroupRecords(nil) = %v, want none", groups)
	}
}

// --- config conversion ---

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(types.ParseConfig{
		AllowedCourses:   []string{"170", "221"},
		EmailDomain:      "@pcc.edu",
		InterleavePasses: true,
	})
	if !cfg.AllowedCourses["170"] || !cfg.AllowedCourses["221"] || cfg.AllowedCourses["999"] {
		t.Errorf("AllowedCourses = %v", cfg.AllowedCourses)
	}
	if !cfg.Interleave || cfg.EmailDomain != "@pcc.edu" {
		t.Errorf("cfg = %+v", cfg)
	}

	open := NewConfig(types.ParseConfig{EmailDomain: "@pcc.edu"})
	if open.AllowedCourses != nil {
		t.Errorf("nil course list should disable filtering, got %v", open.AllowedCourses)
	}
}
