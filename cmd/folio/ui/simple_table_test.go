package ui

import (
	"strings"
	"testing"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Subjects", []string{"Code", "Subject", "T/P/N"})
	table.AddRow("20204-2105", "Spreadsheet Applications", "1-2-2")

	view := table.View(NewStyles(LightTheme()))
	t.Logf("View:\n%s", view)

	if !strings.Contains(view, "Subjects") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "Spreadsheet Applications") {
		t.Error("View missing cell content")
	}
	if strings.HasSuffix(view, "\n") {
		t.Error("View should not end with a newline")
	}
}

func TestSimpleTable_Empty(t *testing.T) {
	table := NewSimpleTable("Subjects", []string{"Code"})
	if got := table.View(NewStyles(LightTheme())); got != "" {
		t.Errorf("expected empty view, got %q", got)
	}
}
