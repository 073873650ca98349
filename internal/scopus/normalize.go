// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/lmartins/bibliostat/pkg/types"
)

// rawEntry is one document record as returned by the Scopus Search API.
// Field types are never trusted at use sites: numeric values arrive as
// strings and every field may be absent.
type rawEntry struct {
	Error              string          `json:"error"`
	Identifier         string          `json:"dc:identifier"`
	EID                string          `json:"eid"`
	Title              string          `json:"dc:title"`
	Creator            string          `json:"dc:creator"`
	CoverDate          string          `json:"prism:coverDate"`
	PublicationName    string          `json:"prism:publicationName"`
	SubtypeDescription string          `json:"subtypeDescription"`
	CitedByCount       json.RawMessage `json:"citedby-count"`
	DOI                string          `json:"prism:doi"`
	URL                string          `json:"prism:url"`
	Authors            []rawAuthor     `json:"author"`
}

type rawAuthor struct {
	AuthName string `json:"authname"`
}

// normalizeEntry maps one raw entry to a Record. The mapping is total:
// missing or malformed subfields become explicit zero sentinels. The only
// rejection is an entry with no usable identifier, reported via ok=false.
func normalizeEntry(e rawEntry) (types.Record, bool) {
	id := strings.TrimPrefix(e.Identifier, "SCOPUS_ID:")
	if id == "" {
		id = e.EID
	}
	if id == "" {
		id = e.DOI
	}
	if id == "" {
		return types.Record{}, false
	}

	rec := types.Record{
		ID:      id,
		Title:   e.Title,
		Authors: entryAuthors(e),
		Venue:   e.PublicationName,
		DocType: e.SubtypeDescription,
		DOI:     e.DOI,
		URL:     e.URL,
	}

	rec.Year, rec.Date = parseCoverDate(e.CoverDate)

	if n, ok := looseInt(e.CitedByCount); ok && n > 0 {
		rec.CitationCount = n
	}

	return rec, true
}

// entryAuthors prefers the author array; older responses carry only the
// dc:creator string, which may list several names separated by ";".
func entryAuthors(e rawEntry) []string {
	var authors []string
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.AuthName); name != "" {
			authors = append(authors, name)
		}
	}
	if len(authors) > 0 {
		return authors
	}
	return SplitAuthors(e.Creator)
}

// SplitAuthors splits a multi-author field into individual names.
func SplitAuthors(s string) []string {
	var authors []string
	for _, part := range strings.Split(s, ";") {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// parseCoverDate extracts the year and, when possible, the full date from a
// prism:coverDate value ("2020-01-15" or just "2020").
func parseCoverDate(s string) (int, time.Time) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Year(), t
	}
	if len(s) >= 4 {
		if year, err := strconv.Atoi(s[:4]); err == nil && year > 0 {
			return year, time.Time{}
		}
	}
	return types.YearUnknown, time.Time{}
}

// looseInt parses a JSON value that may be a number, a quoted number, or
// garbage. ok is false when no integer could be extracted.
func looseInt(raw json.RawMessage) (int, bool) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}
