package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/tuidict/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "tuidict.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestInsertAndListLookups(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	lookups := []model.Lookup{
		{LookedUpAt: base, DictionaryPath: "d.txt", Kind: model.LookupSearch, Term: "Cat", Found: true, EntryName: "cat"},
		{LookedUpAt: base.Add(time.Minute), DictionaryPath: "d.txt", Kind: model.LookupSearch, Term: "dog"},
		{LookedUpAt: base.Add(2 * time.Minute), DictionaryPath: "d.txt", Kind: model.LookupRandom, Found: true, EntryName: "emu"},
	}
	for _, l := range lookups {
		if err := st.Record(ctx, l); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	all, err := st.ListLookups(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 lookups, got %d", len(all))
	}
	if all[0].Term != "Cat" || !all[0].Found || all[0].EntryName != "cat" {
		t.Fatalf("unexpected first lookup %#v", all[0])
	}
	if !all[0].LookedUpAt.Equal(base) {
		t.Fatalf("timestamp not preserved: %v", all[0].LookedUpAt)
	}
	if all[2].Kind != model.LookupRandom {
		t.Fatalf("expected random lookup last, got %q", all[2].Kind)
	}

	last, err := st.ListLookups(ctx, model.HistoryConfig{Last: 2})
	if err != nil {
		t.Fatalf("list last: %v", err)
	}
	if len(last) != 2 || last[0].Term != "dog" {
		t.Fatalf("expected the two most recent lookups oldest first, got %#v", last)
	}

	since := base.Add(90 * time.Second)
	recent, err := st.ListLookups(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(recent) != 1 || recent[0].EntryName != "emu" {
		t.Fatalf("unexpected since filter result %#v", recent)
	}
}

func TestTermAggregates(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	now := time.Now()
	for _, l := range []model.Lookup{
		{LookedUpAt: now, Kind: model.LookupSearch, Term: "Cat", Found: true},
		{LookedUpAt: now, Kind: model.LookupSearch, Term: "cat", Found: true},
		{LookedUpAt: now, Kind: model.LookupSearch, Term: "CAT"},
		{LookedUpAt: now, Kind: model.LookupSearch, Term: "dog"},
		{LookedUpAt: now, Kind: model.LookupRandom, Found: true, EntryName: "cat"},
	} {
		if _, err := st.InsertLookup(ctx, l); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	aggs, err := st.TermAggregates(ctx, model.HistoryConfig{})
	if err != nil {
		t.Fatalf("aggregates: %v", err)
	}
	byTerm := map[string]model.TermAggregate{}
	for _, agg := range aggs {
		byTerm[agg.Term] = agg
	}
	if len(byTerm) != 2 {
		t.Fatalf("expected 2 terms, got %#v", aggs)
	}
	if got := byTerm["cat"]; got.Searches != 3 || got.Hits != 2 {
		t.Fatalf("unexpected cat aggregate %#v", got)
	}
	if got := byTerm["dog"]; got.Searches != 1 || got.Hits != 0 {
		t.Fatalf("unexpected dog aggregate %#v", got)
	}
}

func TestTotalsIgnoreLast(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i, l := range []model.Lookup{
		{Kind: model.LookupSearch, Term: "cat", Found: true},
		{Kind: model.LookupSearch, Term: "emu"},
		{Kind: model.LookupRandom, Found: true, EntryName: "dog"},
		{Kind: model.LookupSearch, Term: "dog", Found: true},
	} {
		l.LookedUpAt = base.Add(time.Duration(i) * time.Hour)
		if err := st.Record(ctx, l); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	totals, err := st.Totals(ctx, model.HistoryConfig{Last: 1})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	want := model.LookupTotals{Lookups: 4, Searches: 3, Hits: 2, Random: 1}
	if totals != want {
		t.Fatalf("unexpected totals %+v", totals)
	}

	since := base.Add(90 * time.Minute)
	totals, err = st.Totals(ctx, model.HistoryConfig{Since: &since})
	if err != nil {
		t.Fatalf("totals since: %v", err)
	}
	want = model.LookupTotals{Lookups: 2, Searches: 1, Hits: 1, Random: 1}
	if totals != want {
		t.Fatalf("unexpected totals since %+v", totals)
	}
}

func TestTotalsEmpty(t *testing.T) {
	st := openTestStore(t)
	totals, err := st.Totals(context.Background(), model.HistoryConfig{})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals != (model.LookupTotals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}
