// Package stats summarizes and renders lookup history.
package stats

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/tuidict/internal/model"
)

const (
	recentTimeLayout = "2006-01-02 15:04"
	termCellMax      = 32
)

var (
	topColumns = []column{
		{Title: "Term", Max: termCellMax},
		{Title: "Searches", Right: true},
		{Title: "Hits", Right: true},
	}
	recentColumns = []column{
		{Title: "When"},
		{Title: "Kind"},
		{Title: "Term", Max: termCellMax},
		{Title: "Result", Max: termCellMax},
	}
)

// Source provides lookup history.
type Source interface {
	ListLookups(ctx context.Context, cfg model.HistoryConfig) ([]model.Lookup, error)
	TermAggregates(ctx context.Context, cfg model.HistoryConfig) ([]model.TermAggregate, error)
	Totals(ctx context.Context, cfg model.HistoryConfig) (model.LookupTotals, error)
}

// Summary counts lookups by outcome.
type Summary struct {
	Total    int
	Searches int
	Hits     int
	Misses   int
	Random   int
}

// HitRate returns the share of searches that found an entry.
func (s Summary) HitRate() float64 {
	if s.Searches == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Searches)
}

// Report contains precomputed data for history rendering.
type Report struct {
	Summary  Summary
	TopTerms []model.TermAggregate
	Recent   []model.Lookup
}

// BuildReport loads and prepares data for history rendering. The summary and
// top terms cover the whole Since window; Last bounds only the recent list.
func BuildReport(ctx context.Context, src Source, cfg model.HistoryConfig) (Report, error) {
	totals, err := src.Totals(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to count lookups: %w", err)
	}
	lookups, err := src.ListLookups(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list lookups: %w", err)
	}
	aggs, err := src.TermAggregates(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to aggregate terms: %w", err)
	}
	return Report{
		Summary:  Summarize(totals),
		TopTerms: TopTerms(aggs, cfg.Top),
		Recent:   lookups,
	}, nil
}

// Summarize converts store totals into a Summary.
func Summarize(totals model.LookupTotals) Summary {
	return Summary{
		Total:    totals.Lookups,
		Searches: totals.Searches,
		Hits:     totals.Hits,
		Misses:   totals.Searches - totals.Hits,
		Random:   totals.Random,
	}
}

// RenderReport prints the summary, top terms and recent lookups.
func RenderReport(w io.Writer, report Report) error {
	if report.Summary.Total == 0 {
		_, err := fmt.Fprintln(w, "No lookups found.")
		return err
	}
	s := report.Summary
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Lookups: %d\n", s.Total); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Searches: %d (%d found, %d not found)\n", s.Searches, s.Hits, s.Misses); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Random draws: %d\n", s.Random); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Hit rate: %.2f%%\n", s.HitRate()*100); err != nil {
		return err
	}

	if len(report.TopTerms) > 0 {
		rows := make([][]string, 0, len(report.TopTerms))
		for _, agg := range report.TopTerms {
			rows = append(rows, []string{agg.Term, strconv.Itoa(agg.Searches), strconv.Itoa(agg.Hits)})
		}
		if err := writeSection(w, "Top searched", renderTable(topColumns, rows)); err != nil {
			return err
		}
	}

	if len(report.Recent) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(report.Recent))
	for _, l := range report.Recent {
		rows = append(rows, []string{
			l.LookedUpAt.Local().Format(recentTimeLayout),
			string(l.Kind),
			l.Term,
			outcome(l),
		})
	}
	return writeSection(w, fmt.Sprintf("Recent lookups (last %d)", len(report.Recent)), renderTable(recentColumns, rows))
}

func writeSection(w io.Writer, title string, lines []string) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", title); err != nil {
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func outcome(l model.Lookup) string {
	if !l.Found {
		return "not found"
	}
	return l.EntryName
}
