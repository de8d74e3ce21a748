// Package dictionary loads flat-file word lists and looks entries up.
package dictionary

// Entry is a single dictionary record.
type Entry struct {
	Name       string
	Category   Category
	Definition string
}

// Definitions returns the sub-definitions of the entry.
func (e Entry) Definitions() []string {
	return SplitDefinitions(e.Definition)
}

// Dictionary is an ordered list of entries plus the header line of its source file.
type Dictionary struct {
	Path    string
	Header  string
	Entries []Entry
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// Find returns the first entry whose name equals term, ignoring ASCII case.
func (d *Dictionary) Find(term string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	needle := asciiLower(term)
	for _, entry := range d.Entries {
		if asciiLower(entry.Name) == needle {
			return entry, true
		}
	}
	return Entry{}, false
}

// At returns the entry at index i.
func (d *Dictionary) At(i int) (Entry, bool) {
	if d == nil || i < 0 || i >= len(d.Entries) {
		return Entry{}, false
	}
	return d.Entries[i], true
}
