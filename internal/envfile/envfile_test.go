package envfile

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func TestParseCommentAttachment(t *testing.T) {
	entries := Parse([]byte("# note\nKEY=val\n"))

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	v, ok := entries[0].(Variable)
	if !ok {
		t.Fatalf("Expected a Variable, got %T", entries[0])
	}
	if v.Key != "KEY" || v.Value != "val" {
		t.Errorf("Unexpected variable: %q=%q", v.Key, v.Value)
	}
	if len(v.Leading) != 1 || v.Leading[0].Text != "note" {
		t.Errorf("Expected leading comment [note], got %v", v.Leading)
	}
}

func TestParseOrphanCommentDropped(t *testing.T) {
	entries := Parse([]byte("KEY=val\n\n# orphan\n"))

	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	v := entries[0].(Variable)
	if v.Key != "KEY" || v.Value != "val" {
		t.Errorf("Unexpected variable: %q=%q", v.Key, v.Value)
	}
	if len(v.Leading) != 0 {
		t.Errorf("Expected no leading comments, got %v", v.Leading)
	}
}

func TestParseBlankLineResetsCommentBuffer(t *testing.T) {
	entries := Parse([]byte("# detached\n\nKEY=val\n"))

	v := entries[0].(Variable)
	if len(v.Leading) != 0 {
		t.Errorf("Blank line should discard pending comments, got %v", v.Leading)
	}
}

func TestParseConsecutiveCommentsCoalesce(t *testing.T) {
	entries := Parse([]byte("# first\n# second\nKEY=val\n"))

	v := entries[0].(Variable)
	want := []Comment{{Text: "first"}, {Text: "second"}}
	if !reflect.DeepEqual(v.Leading, want) {
		t.Errorf("Expected %v, got %v", want, v.Leading)
	}
}

func TestParseSplitsOnFirstEquals(t *testing.T) {
	entries := Parse([]byte("DATABASE_URL=postgres://u:p@host/db?sslmode=disable\n"))

	v := entries[0].(Variable)
	if v.Value != "postgres://u:p@host/db?sslmode=disable" {
		t.Errorf("Value should keep embedded '=': got %q", v.Value)
	}
}

func TestParseQuoteStripping(t *testing.T) {
	tests := []struct {
		line  string
		value string
		quote byte
	}{
		{`KEY="hello world"`, "hello world", '"'},
		{`KEY='hello world'`, "hello world", '\''},
		{`KEY=plain`, "plain", 0},
		{`KEY=""quoted""`, `"quoted"`, '"'},
		{`KEY="mismatched'`, `"mismatched'`, 0},
		{`KEY="`, `"`, 0},
		{`KEY=`, "", 0},
	}

	for _, tt := range tests {
		entries := Parse([]byte(tt.line + "\n"))
		if len(entries) != 1 {
			t.Fatalf("%s: expected 1 entry, got %d", tt.line, len(entries))
		}
		v := entries[0].(Variable)
		if v.Value != tt.value {
			t.Errorf("%s: expected value %q, got %q", tt.line, tt.value, v.Value)
		}
		if v.Quote != tt.quote {
			t.Errorf("%s: expected quote %q, got %q", tt.line, tt.quote, v.Quote)
		}
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	input := "no equals sign here\n=value without key\nGOOD=1\n"
	entries := Parse([]byte(input))

	if len(entries) != 1 {
		t.Fatalf("Expected malformed lines to be skipped, got %d entries", len(entries))
	}
	v := entries[0].(Variable)
	if v.Key != "GOOD" || v.Value != "1" {
		t.Errorf("Unexpected surviving variable: %q=%q", v.Key, v.Value)
	}
}

func TestParseMalformedLineKeepsCommentBuffer(t *testing.T) {
	entries := Parse([]byte("# kept\nnot an assignment\nKEY=val\n"))

	v := entries[0].(Variable)
	if len(v.Leading) != 1 || v.Leading[0].Text != "kept" {
		t.Errorf("Skipped line should not disturb pending comments, got %v", v.Leading)
	}
}

func TestParseTrimsWhitespace(t *testing.T) {
	entries := Parse([]byte("  KEY  =  val  \n"))

	v := entries[0].(Variable)
	if v.Key != "KEY" || v.Value != "val" {
		t.Errorf("Expected trimmed KEY=val, got %q=%q", v.Key, v.Value)
	}
}

func TestParseDuplicateKeysFirstWinsOnLookup(t *testing.T) {
	entries := Parse([]byte("A=1\nA=2\n"))

	if len(entries) != 2 {
		t.Fatalf("Expected both duplicate entries preserved, got %d", len(entries))
	}

	v, err := entries.Lookup("A")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if v.Value != "1" {
		t.Errorf("Lookup should return first occurrence, got %q", v.Value)
	}
}

func TestLookupMiss(t *testing.T) {
	entries := Parse([]byte("A=1\n"))

	if _, err := entries.Lookup("B"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestSerializeRestoresQuotes(t *testing.T) {
	entries := Parse([]byte("SINGLE='a b'\nDOUBLE=\"c d\"\nPLAIN=e\n"))

	got := string(Serialize(entries))
	want := "SINGLE='a b'\nDOUBLE=\"c d\"\nPLAIN=e\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestSerializeBareComment(t *testing.T) {
	entries := Entries{Comment{Text: "standalone"}, Variable{Key: "A", Value: "1"}}

	got := string(Serialize(entries))
	want := "# standalone\nA=1\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"# db settings\nDB_HOST=localhost\nDB_PORT=5432\n",
		"A=1\n\n# section\n# more\nB='x y'\nC=\"z\"\n",
		"TOKEN=abc=def=ghi\nEMPTY=\n",
	}

	for _, input := range inputs {
		first := Parse([]byte(input))
		second := Parse(Serialize(first))
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Round trip changed entries for %q:\nfirst:  %#v\nsecond: %#v", input, first, second)
		}
	}
}

func TestSerializeDropsBlankLines(t *testing.T) {
	entries := Parse([]byte("A=1\n\n\nB=2\n"))

	if bytes.Contains(Serialize(entries), []byte("\n\n")) {
		t.Error("Serialized form should be compacted, found blank line")
	}
}
