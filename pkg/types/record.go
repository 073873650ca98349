// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the bibliostat pipeline:
// normalized document records, fetch output, and derived summaries.
package types

import "time"

// YearUnknown is the sentinel for records whose publication year could not
// be determined from the raw API entry.
const YearUnknown = 0

// Record is a normalized Scopus document. Every field is total: absent or
// malformed raw fields map to the zero value, never to a parse failure.
type Record struct {
	// ID is the canonical Scopus identifier (dc:identifier with the
	// SCOPUS_ID: prefix stripped), falling back to the EID or DOI.
	ID string `json:"id" yaml:"id"`

	// Title is the document title as returned by the API.
	Title string `json:"title" yaml:"title"`

	// Authors lists individual author names in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Year is the publication year, or YearUnknown.
	Year int `json:"year" yaml:"year"`

	// Venue is the publication name (journal, conference proceedings).
	Venue string `json:"venue" yaml:"venue"`

	// DocType is the Scopus subtype description (e.g. "Article", "Review").
	DocType string `json:"doc_type,omitempty" yaml:"doc_type,omitempty"`

	// CitationCount is the citedby count, always >= 0.
	CitationCount int `json:"citation_count" yaml:"citation_count"`

	// DOI is the document DOI when present.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the Scopus abstract URL when present.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Date is the full cover date when the raw entry carried one.
	Date time.Time `json:"date,omitempty" yaml:"date,omitempty"`
}

// FetchOutput holds the result of one paginated search: the deduplicated
// records in API return order plus fetch statistics.
type FetchOutput struct {
	// Records is the deduplicated record set, insertion order preserved.
	Records []Record `json:"records" yaml:"records"`

	// TotalMatches is the match count declared by the API, which may exceed
	// the number of records actually fetched.
	TotalMatches int `json:"total_matches" yaml:"total_matches"`

	// Skipped counts raw entries dropped because no identifier could be
	// derived from them.
	Skipped int `json:"skipped" yaml:"skipped"`

	// DupsRemoved counts entries discarded because their ID was already seen.
	DupsRemoved int `json:"dups_removed" yaml:"dups_removed"`
}

// FreqEntry is one row of a top-N frequency table.
type FreqEntry struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Summary holds descriptive statistics derived from a record set. It is
// always recomputed in full; no field is updated incrementally.
type Summary struct {
	// TotalCount is the number of records summarized.
	TotalCount int `json:"total_count" yaml:"total_count"`

	// TotalCitations is the sum of citation counts.
	TotalCitations int `json:"total_citations" yaml:"total_citations"`

	// AverageCitations is TotalCitations / TotalCount, 0 for an empty set.
	AverageCitations float64 `json:"average_citations" yaml:"average_citations"`

	// YearFrom and YearTo bound the known publication years; both are
	// YearUnknown when no record has a known year.
	YearFrom int `json:"year_from" yaml:"year_from"`
	YearTo   int `json:"year_to" yaml:"year_to"`

	// CountsByYear maps each known publication year to its record count.
	CountsByYear map[int]int `json:"counts_by_year" yaml:"counts_by_year"`

	// UnknownYearCount is the number of records with no known year; they do
	// not appear in CountsByYear.
	UnknownYearCount int `json:"unknown_year_count" yaml:"unknown_year_count"`

	// TopAuthors, TopVenues, and TopTerms are frequency tables sorted by
	// descending count, ties broken by first appearance in the record set.
	TopAuthors []FreqEntry `json:"top_authors" yaml:"top_authors"`
	TopVenues  []FreqEntry `json:"top_venues" yaml:"top_venues"`
	TopTerms   []FreqEntry `json:"top_terms" yaml:"top_terms"`
}
