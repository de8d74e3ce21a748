package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeDictionary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dictionary: %v", err)
	}
	return path
}

func TestLoadRecords(t *testing.T) {
	path := writeDictionary(t, strings.Join([]string{
		"EN-DICT v1",
		"cat;",
		"n;",
		"A small domestic feline;  Also: a person;  ",
		"",
		"run;extra ignored",
		"v;ignored too",
		"To move quickly",
		"anything goes here",
	}, "\n"))

	dict, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if dict.Header != "EN-DICT v1" {
		t.Fatalf("unexpected header %q", dict.Header)
	}
	if dict.Path != path {
		t.Fatalf("expected path %q, got %q", path, dict.Path)
	}
	want := []Entry{
		{Name: "cat", Category: Category{Kind: Noun, Raw: "n"}, Definition: "A small domestic feline;  Also: a person;  "},
		{Name: "run", Category: Category{Kind: Verb, Raw: "v"}, Definition: "To move quickly"},
	}
	if !reflect.DeepEqual(dict.Entries, want) {
		t.Fatalf("unexpected entries:\n got %#v\nwant %#v", dict.Entries, want)
	}
}

func TestParseSkipsBlankLinesBeforeName(t *testing.T) {
	input := "header\n\n\n\nfoo;\nadj;\nbar\n\n\n\nbaz;\nzz;\nqux\n"
	dict, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dict.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", dict.Len())
	}
	if dict.Entries[1].Name != "baz" || dict.Entries[1].Category.Kind != Unknown {
		t.Fatalf("unexpected second entry %#v", dict.Entries[1])
	}
}

func TestParseWhitespaceLineStartsRecord(t *testing.T) {
	dict, err := Parse(strings.NewReader("h\n   \nn;\nspaced out\n\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dict.Len() != 1 || dict.Entries[0].Name != "   " || dict.Entries[0].Definition != "spaced out" {
		t.Fatalf("expected whitespace-only name line to start a record, got %#v", dict.Entries)
	}
}

func TestParseTruncatedRecordDropped(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  int
	}{
		{name: "name only", input: "h\na;\nn;\ndef\n\nb;\n", want: 1},
		{name: "name and category", input: "h\na;\nn;\ndef\n\nb;\nv;\n", want: 1},
		{name: "missing separator kept", input: "h\na;\nn;\ndef\n\nb;\nv;\ndef b", want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dict, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if dict.Len() != tc.want {
				t.Fatalf("expected %d entries, got %d", tc.want, dict.Len())
			}
		})
	}
}

func TestParseHeaderOnly(t *testing.T) {
	dict, err := Parse(strings.NewReader("just a header\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if dict.Header != "just a header" || dict.Len() != 0 {
		t.Fatalf("unexpected dictionary %#v", dict)
	}
}

func TestParseCRLF(t *testing.T) {
	dict, err := Parse(strings.NewReader("h\r\nword;\r\npn;\r\nA name\r\n\r\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	entry, ok := dict.At(0)
	if !ok {
		t.Fatalf("expected entry")
	}
	if entry.Name != "word" || entry.Category.Kind != ProperNoun || entry.Definition != "A name" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeDictionary(t, "")
	if _, err := Load(path); !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLoadDirectoryUnreadable(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrFileUnreadable) {
		t.Fatalf("expected ErrFileUnreadable, got %v", err)
	}
}

func TestLoadIdempotent(t *testing.T) {
	path := writeDictionary(t, "h\na;\nn;\none\n\nb;\nv;\ntwo\n\na;\nadj;\nthree\n\n")
	first, err := Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated loads differ")
	}
	if first.Len() != 3 {
		t.Fatalf("duplicates must be kept, got %d entries", first.Len())
	}
}
