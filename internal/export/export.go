// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes record sets to tabular formats (CSV, XLSX)
// and to YAML snapshot files that later runs can reload without
// re-querying the API. Output is deterministic: the same record set
// always produces byte-identical files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lmartins/bibliostat/pkg/types"
)

// Columns is the fixed export column order, shared by CSV and XLSX.
var Columns = []string{
	"id", "title", "authors", "year", "venue", "doc_type",
	"citations", "doi", "url",
}

// authorSep joins multi-valued author fields into a single cell.
const authorSep = "; "

// Row flattens a record into one cell per export column. An unknown year
// becomes an empty cell.
func Row(r types.Record) []string {
	year := ""
	if r.Year != types.YearUnknown {
		year = strconv.Itoa(r.Year)
	}
	return []string{
		r.ID,
		r.Title,
		JoinAuthors(r.Authors),
		year,
		r.Venue,
		r.DocType,
		strconv.Itoa(r.CitationCount),
		r.DOI,
		r.URL,
	}
}

// JoinAuthors flattens an author list into a single delimited string.
func JoinAuthors(authors []string) string {
	out := ""
	for i, a := range authors {
		if i > 0 {
			out += authorSep
		}
		out += a
	}
	return out
}

// WriteCSV writes records as UTF-8 CSV with a header row.
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
