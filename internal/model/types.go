// Package model defines shared data structures.
package model

import "time"

// Config defines interactive session settings.
type Config struct {
	File    string
	Seed    int64
	HasSeed bool
	History bool
	Width   int
}

// HistoryConfig defines filters for the lookup history report.
type HistoryConfig struct {
	Since *time.Time
	Last  int
	Top   int
}

// LookupKind tells how an entry was requested.
type LookupKind string

const (
	// LookupSearch is an exact-name search.
	LookupSearch LookupKind = "search"
	// LookupRandom is a random draw.
	LookupRandom LookupKind = "random"
)

// Lookup records one search or random draw.
type Lookup struct {
	ID             int64
	LookedUpAt     time.Time
	DictionaryPath string
	Kind           LookupKind
	Term           string
	Found          bool
	EntryName      string
}

// TermAggregate counts searches for a single normalized term.
type TermAggregate struct {
	Term     string
	Searches int
	Hits     int
}

// LookupTotals counts lookups by kind and outcome.
type LookupTotals struct {
	Lookups  int
	Searches int
	Hits     int
	Random   int
}
