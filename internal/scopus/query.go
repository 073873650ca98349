// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"fmt"
	"strings"
)

// Query holds the search parameters. Immutable once submitted to a search.
type Query struct {
	// Expression is the search text: either a bare phrase or a full Scopus
	// boolean expression with field qualifiers.
	Expression string `yaml:"expression"`

	// YearFrom and YearTo bound the publication year (inclusive); zero
	// means unbounded.
	YearFrom int `yaml:"year_from,omitempty"`
	YearTo   int `yaml:"year_to,omitempty"`

	// DocType restricts results to a Scopus document type code (e.g. "ar").
	DocType string `yaml:"doc_type,omitempty"`

	// OpenAccessOnly restricts results to open-access documents.
	OpenAccessOnly bool `yaml:"open_access_only,omitempty"`
}

// fieldCodes are the Scopus field qualifiers recognized when deciding
// whether an expression is already field-qualified.
var fieldCodes = []string{
	"TITLE-ABS-KEY", "TITLE", "ABS", "KEY", "AUTH", "AUTHOR-NAME",
	"SRCTITLE", "AFFIL", "DOI", "PUBYEAR", "ALL", "DOCTYPE",
}

// IsEmpty reports whether the query contains no searchable expression.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Expression) == ""
}

// Build returns the canonical Scopus query string. A bare phrase is wrapped
// in TITLE-ABS-KEY(...); an expression that already uses a field qualifier
// is passed through unchanged. Filters are appended as AND clauses.
func (q Query) Build() string {
	expr := strings.TrimSpace(q.Expression)
	if expr == "" {
		return ""
	}
	if !isFieldQualified(expr) {
		expr = "TITLE-ABS-KEY(" + expr + ")"
	}

	var clauses []string
	clauses = append(clauses, expr)
	// PUBYEAR comparisons are exclusive in Scopus syntax.
	if q.YearFrom > 0 {
		clauses = append(clauses, fmt.Sprintf("PUBYEAR > %d", q.YearFrom-1))
	}
	if q.YearTo > 0 {
		clauses = append(clauses, fmt.Sprintf("PUBYEAR < %d", q.YearTo+1))
	}
	if q.DocType != "" {
		clauses = append(clauses, fmt.Sprintf("DOCTYPE(%s)", q.DocType))
	}
	if q.OpenAccessOnly {
		clauses = append(clauses, "OPENACCESS(1)")
	}
	return strings.Join(clauses, " AND ")
}

// CacheKey returns a stable key for caching the output of this query under
// the given record cap.
func (q Query) CacheKey(maxRecords int) string {
	return fmt.Sprintf("%s|max=%d", q.Build(), maxRecords)
}

// isFieldQualified reports whether expr already contains a Scopus field
// qualifier such as TITLE-ABS-KEY( or AUTH(.
func isFieldQualified(expr string) bool {
	for _, code := range fieldCodes {
		if strings.Contains(expr, code+"(") {
			return true
		}
	}
	return strings.Contains(expr, "PUBYEAR ")
}
