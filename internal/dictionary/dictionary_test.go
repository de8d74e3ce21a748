package dictionary

import (
	"reflect"
	"testing"
)

func TestFormatCategory(t *testing.T) {
	cases := map[string]string{
		"n":       "Noun (n.)",
		"v":       "Verb (v.)",
		"adv":     "Adverb (adv.)",
		"adj":     "Adjective (adj.)",
		"prep":    "Preposition (prep.)",
		"misc":    "MiscWords (misc.)",
		"pn":      "ProperNoun (pn.)",
		"n_and_v": "NounAndVerb (n. v.)",
		"N":       "Unknown type: (N)",
		"":        "Unknown type: ()",
		"verb":    "Unknown type: (verb)",
	}
	for token, want := range cases {
		if got := FormatCategory(token); got != want {
			t.Fatalf("FormatCategory(%q) = %q, want %q", token, got, want)
		}
	}
}

func TestParseCategoryKeepsRawToken(t *testing.T) {
	c := ParseCategory("interj")
	if c.Kind != Unknown || c.Raw != "interj" {
		t.Fatalf("unexpected category %#v", c)
	}
	if c.String() != "Unknown type: (interj)" {
		t.Fatalf("unexpected label %q", c.String())
	}
}

func TestSplitDefinitions(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{in: "A;  B;  C", want: []string{"A", "B", "C"}},
		{in: "no delimiter; here", want: []string{"no delimiter; here"}},
		{in: "", want: []string{""}},
		{in: "A;  ", want: []string{"A", ""}},
		{in: "A;   B", want: []string{"A", " B"}},
	}
	for _, tc := range cases {
		if got := SplitDefinitions(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("SplitDefinitions(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFindCaseInsensitiveExact(t *testing.T) {
	dict := &Dictionary{Entries: []Entry{
		{Name: "category", Definition: "first"},
		{Name: "cat", Definition: "second"},
		{Name: "CAT", Definition: "third"},
	}}
	entry, ok := dict.Find("Cat")
	if !ok {
		t.Fatalf("expected match")
	}
	if entry.Definition != "second" {
		t.Fatalf("expected first exact match, got %q", entry.Definition)
	}
	if _, ok := dict.Find("ca"); ok {
		t.Fatalf("prefix must not match")
	}
}

func TestFindASCIIOnlyFolding(t *testing.T) {
	dict := &Dictionary{Entries: []Entry{{Name: "École"}}}
	if _, ok := dict.Find("école"); ok {
		t.Fatalf("non-ASCII letters must not be folded")
	}
	if _, ok := dict.Find("ÉCOLE"); !ok {
		t.Fatalf("expected ASCII letters to fold")
	}
}

func TestNilDictionary(t *testing.T) {
	var dict *Dictionary
	if dict.Len() != 0 {
		t.Fatalf("expected zero length")
	}
	if _, ok := dict.Find("x"); ok {
		t.Fatalf("expected no match")
	}
	if _, ok := dict.At(0); ok {
		t.Fatalf("expected no entry")
	}
}
