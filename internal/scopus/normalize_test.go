// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scopus

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/lmartins/bibliostat/pkg/types"
)

// --- Identifier derivation ---

func TestNormalizeIdentifierPreference(t *testing.T) {
	tests := []struct {
		name   string
		entry  rawEntry
		wantID string
		wantOK bool
	}{
		{
			"dc:identifier with prefix stripped",
			rawEntry{Identifier: "SCOPUS_ID:85012345678", EID: "2-s2.0-85012345678"},
			"85012345678",
			true,
		},
		{
			"eid fallback",
			rawEntry{EID: "2-s2.0-85012345678", DOI: "10.1000/x"},
			"2-s2.0-85012345678",
			true,
		},
		{
			"doi fallback",
			rawEntry{DOI: "10.1000/x"},
			"10.1000/x",
			true,
		},
		{
			"no identifier drops the record",
			rawEntry{Title: "orphan"},
			"",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := normalizeEntry(tt.entry)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && rec.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", rec.ID, tt.wantID)
			}
		})
	}
}

// --- Year and date ---

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		name      string
		coverDate string
		wantYear  int
	}{
		{"full date", "2020-06-15", 2020},
		{"bare year", "2019", 2019},
		{"missing", "", types.YearUnknown},
		{"garbage", "unknown", types.YearUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := normalizeEntry(rawEntry{Identifier: "SCOPUS_ID:1", CoverDate: tt.coverDate})
			if !ok {
				t.Fatal("entry unexpectedly dropped")
			}
			if rec.Year != tt.wantYear {
				t.Errorf("Year = %d, want %d", rec.Year, tt.wantYear)
			}
		})
	}
}

func TestNormalizeFullDateKept(t *testing.T) {
	rec, _ := normalizeEntry(rawEntry{Identifier: "SCOPUS_ID:1", CoverDate: "2021-03-09"})
	want := time.Date(2021, time.March, 9, 0, 0, 0, 0, time.UTC)
	if !rec.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", rec.Date, want)
	}
}

// --- Citation count ---

func TestNormalizeCitationCount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"quoted number", `"12"`, 12},
		{"bare number", `7`, 7},
		{"negative clamped to zero", `"-3"`, 0},
		{"missing", ``, 0},
		{"null", `null`, 0},
		{"garbage", `"many"`, 0},
		{"float truncated", `"4.0"`, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := rawEntry{Identifier: "SCOPUS_ID:1"}
			if tt.raw != "" {
				e.CitedByCount = json.RawMessage(tt.raw)
			}
			rec, ok := normalizeEntry(e)
			if !ok {
				t.Fatal("entry unexpectedly dropped")
			}
			if rec.CitationCount != tt.want {
				t.Errorf("CitationCount = %d, want %d", rec.CitationCount, tt.want)
			}
			if rec.CitationCount < 0 {
				t.Error("CitationCount must never be negative")
			}
		})
	}
}

// --- Authors ---

func TestNormalizeAuthors(t *testing.T) {
	tests := []struct {
		name  string
		entry rawEntry
		want  []string
	}{
		{
			"author array preferred",
			rawEntry{
				Identifier: "SCOPUS_ID:1",
				Creator:    "Silva A.",
				Authors:    []rawAuthor{{AuthName: "Silva A."}, {AuthName: "Costa B."}},
			},
			[]string{"Silva A.", "Costa B."},
		},
		{
			"creator fallback split on semicolons",
			rawEntry{Identifier: "SCOPUS_ID:1", Creator: "Silva A.; Costa B. ; "},
			[]string{"Silva A.", "Costa B."},
		},
		{
			"single creator",
			rawEntry{Identifier: "SCOPUS_ID:1", Creator: "Silva A."},
			[]string{"Silva A."},
		},
		{
			"no authors at all",
			rawEntry{Identifier: "SCOPUS_ID:1"},
			nil,
		},
		{
			"blank authname entries ignored",
			rawEntry{
				Identifier: "SCOPUS_ID:1",
				Creator:    "Fallback C.",
				Authors:    []rawAuthor{{AuthName: "  "}},
			},
			[]string{"Fallback C."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := normalizeEntry(tt.entry)
			if !ok {
				t.Fatal("entry unexpectedly dropped")
			}
			if !reflect.DeepEqual(rec.Authors, tt.want) {
				t.Errorf("Authors = %v, want %v", rec.Authors, tt.want)
			}
		})
	}
}

// --- Remaining fields ---

func TestNormalizeFieldMapping(t *testing.T) {
	e := rawEntry{
		Identifier:         "SCOPUS_ID:42",
		Title:              "AI and Libraries",
		PublicationName:    "Journal of Information Science",
		SubtypeDescription: "Article",
		DOI:                "10.1000/jis.42",
		URL:                "https://api.elsevier.com/content/abstract/scopus_id/42",
	}
	rec, ok := normalizeEntry(e)
	if !ok {
		t.Fatal("entry unexpectedly dropped")
	}
	if rec.Title != e.Title {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Venue != e.PublicationName {
		t.Errorf("Venue = %q", rec.Venue)
	}
	if rec.DocType != "Article" {
		t.Errorf("DocType = %q", rec.DocType)
	}
	if rec.DOI != e.DOI || rec.URL != e.URL {
		t.Errorf("DOI/URL = %q/%q", rec.DOI, rec.URL)
	}
}

func TestLooseInt(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{"quoted", `"250"`, 250, true},
		{"bare", `250`, 250, true},
		{"empty", ``, 0, false},
		{"null", `null`, 0, false},
		{"word", `"lots"`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := looseInt(json.RawMessage(tt.raw))
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("looseInt(%s) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
