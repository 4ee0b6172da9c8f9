package service

import (
	"strings"
	"testing"
)

const sampleExport = `DisplayName,UserPrincipalName,Department,JobTitle
Alice Ng,alice@corp.example,Engineering,Backend Engineer
Bob Tan,bob@corp.example,Sales
`

func TestParseImportCSVHeaders(t *testing.T) {
	rows, err := parseImportCSV(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0]["userprincipalname"] != "alice@corp.example" {
		t.Fatalf("headers must be lowercased, got %+v", rows[0])
	}
	if rows[0]["displayname"] != "Alice Ng" || rows[0]["department"] != "Engineering" {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
}

func TestParseImportCSVRaggedRow(t *testing.T) {
	rows, err := parseImportCSV(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// Bob 的行少了 JobTitle 列，补空值而不是报错
	if rows[1]["jobtitle"] != "" {
		t.Fatalf("short row must pad missing columns, got %q", rows[1]["jobtitle"])
	}
	if rows[1]["displayname"] != "Bob Tan" {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestParseImportCSVHeaderOnly(t *testing.T) {
	rows, err := parseImportCSV(strings.NewReader("DisplayName,Email\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if rows != nil {
		t.Fatalf("header-only file should yield no rows, got %+v", rows)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "fallback", "last"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
