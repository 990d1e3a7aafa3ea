package main

import (
	"strings"
	"testing"

	"github.com/dewansh3255/SPARK/internal/navigator"
)

func TestColorizeRespectsNoColor(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	if got := colorize(colorGreen, "hello"); strings.Contains(got, "\033") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", got)
	}

	noColor = false
	if got := colorize(colorGreen, "hello"); !strings.Contains(got, "\033") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", got)
	}
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := renderTable(navigator.Table{
		Columns: []string{"Name", "Company"},
		Rows: [][]string{
			{"Jane Doe", "Innovate Inc."},
			{"Jon", "DataWorks"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, rule, and 2 rows:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Name") || !strings.Contains(lines[0], "Company") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "---") {
		t.Errorf("rule line = %q", lines[1])
	}
	// Company column starts at the same offset in every row.
	want := strings.Index(lines[0], "Company")
	if got := strings.Index(lines[2], "Innovate"); got != want {
		t.Errorf("company column at %d in row, want %d:\n%s", got, want, out)
	}
}
