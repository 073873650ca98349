package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lmartins/bibliostat/pkg/types"
)

// printReport renders the fetch statistics, the summary tables, and the
// record list as human-readable text.
func printReport(w io.Writer, out types.FetchOutput, s types.Summary) {
	if len(out.Records) == 0 {
		fmt.Fprintln(w, "No documents returned for this search.")
		return
	}

	fmt.Fprintf(w, "Documents: %d (total in Scopus: %d)\n", s.TotalCount, out.TotalMatches)
	fmt.Fprintf(w, "Citations: %d total, %.2f average\n", s.TotalCitations, s.AverageCitations)
	if s.YearFrom != types.YearUnknown {
		fmt.Fprintf(w, "Period: %d-%d", s.YearFrom, s.YearTo)
		if s.UnknownYearCount > 0 {
			fmt.Fprintf(w, " (%d without year)", s.UnknownYearCount)
		}
		fmt.Fprintln(w)
	}
	if out.Skipped > 0 || out.DupsRemoved > 0 {
		fmt.Fprintf(w, "Dropped: %d unidentifiable, %d duplicates\n", out.Skipped, out.DupsRemoved)
	}

	printYearTable(w, s.CountsByYear)
	printFreqTable(w, "Top authors", s.TopAuthors)
	printFreqTable(w, "Top venues", s.TopVenues)
	printFreqTable(w, "Top title terms", s.TopTerms)
	printRecords(w, out.Records)
}

func printYearTable(w io.Writer, counts map[int]int) {
	if len(counts) == 0 {
		return
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)

	fmt.Fprintln(w, "\nPublications per year")
	for _, y := range years {
		fmt.Fprintf(w, "  %d  %d\n", y, counts[y])
	}
}

func printFreqTable(w io.Writer, title string, entries []types.FreqEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, e := range entries {
		fmt.Fprintf(w, "  %-50s  %d\n", truncate(e.Value, 50), e.Count)
	}
}

func printRecords(w io.Writer, records []types.Record) {
	fmt.Fprintf(w, "\n%-4s  %-60s  %-24s  %-4s  %s\n",
		"Rank", "Title", "Authors", "Year", "Cites")
	fmt.Fprintln(w, strings.Repeat("-", 104))

	for i, r := range records {
		year := ""
		if r.Year != types.YearUnknown {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-24s  %-4s  %d\n",
			i+1, truncate(r.Title, 60), formatAuthors(r.Authors), year, r.CitationCount)
	}
	fmt.Fprintf(w, "\n%d records\n", len(records))
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 24)
	default:
		return truncate(authors[0], 16) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
