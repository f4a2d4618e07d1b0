package envfile

import (
	"errors"
	"reflect"
	"testing"
)

func TestExportLineSafeValueUnquoted(t *testing.T) {
	got := ExportLine("B", "2")
	if got != "export B=2" {
		t.Errorf("Expected 'export B=2', got %q", got)
	}
}

func TestExportLineQuoting(t *testing.T) {
	tests := []struct {
		key   string
		value string
		want  string
	}{
		{"A", `it's a "test"`, `export A='it'\''s a "test"'`},
		{"B", "has space", "export B='has space'"},
		{"C", "$HOME", "export C='$HOME'"},
		{"D", "`whoami`", "export D='`whoami`'"},
		{"E", `back\slash`, `export E='back\slash'`},
		{"F", "line1\nline2", "export F='line1\nline2'"},
		{"G", "", "export G=''"},
		{"H", "/usr/local/bin:@v1.2+x,y%z", "export H=/usr/local/bin:@v1.2+x,y%z"},
	}

	for _, tt := range tests {
		got := ExportLine(tt.key, tt.value)
		if got != tt.want {
			t.Errorf("ExportLine(%q, %q) = %q, want %q", tt.key, tt.value, got, tt.want)
		}
	}
}

func TestProjectAll(t *testing.T) {
	entries := Entries{
		Variable{Key: "A", Value: "1"},
		Comment{Text: "ignored"},
		Variable{Key: "B", Value: "2"},
		Variable{Key: "A", Value: "3"},
	}

	lines, err := Project(entries, "")
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	want := []string{"export A=1", "export B=2", "export A=3"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Expected %v, got %v", want, lines)
	}
}

func TestProjectSelector(t *testing.T) {
	entries := Entries{
		Variable{Key: "A", Value: "1"},
		Variable{Key: "B", Value: "2"},
	}

	lines, err := Project(entries, "B")
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"export B=2"}) {
		t.Errorf("Expected [export B=2], got %v", lines)
	}
}

func TestProjectSelectorMiss(t *testing.T) {
	entries := Entries{Variable{Key: "A", Value: "1"}}

	if _, err := Project(entries, "C"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestProjectSelectorFirstOccurrence(t *testing.T) {
	entries := Entries{
		Variable{Key: "A", Value: "first"},
		Variable{Key: "A", Value: "second"},
	}

	lines, err := Project(entries, "A")
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"export A=first"}) {
		t.Errorf("Selector lookup should use first occurrence, got %v", lines)
	}
}
