// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes descriptive statistics over a record set:
// citation totals, per-year counts, and top-N frequency tables for
// authors, venues, and title terms. Summarize is a pure function of its
// input and is always recomputed in full.
package stats

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lmartins/bibliostat/pkg/types"
)

const (
	defaultTopN       = 10
	defaultTermTopN   = 20
	defaultMinTermLen = 3
)

// stopwords excludes common Portuguese and English words from the
// title-term table.
var stopwords = map[string]struct{}{
	"a": {}, "as": {}, "o": {}, "os": {}, "de": {}, "da": {}, "das": {},
	"do": {}, "dos": {}, "e": {}, "em": {}, "no": {}, "na": {}, "nos": {},
	"nas": {}, "um": {}, "uma": {}, "para": {}, "por": {}, "com": {},
	"the": {}, "and": {}, "for": {}, "in": {}, "on": {}, "of": {}, "to": {},
}

// Summarize derives a Summary from records. An empty record set is valid
// and yields zero counts and empty tables.
func Summarize(records []types.Record, cfg types.StatsConfig) types.Summary {
	if cfg.TopN <= 0 {
		cfg.TopN = defaultTopN
	}
	if cfg.TermTopN <= 0 {
		cfg.TermTopN = defaultTermTopN
	}
	if cfg.MinTermLen <= 0 {
		cfg.MinTermLen = defaultMinTermLen
	}

	s := types.Summary{
		TotalCount:   len(records),
		CountsByYear: make(map[int]int),
	}

	authors := newFreqCounter()
	venues := newFreqCounter()
	terms := newFreqCounter()

	for _, r := range records {
		s.TotalCitations += r.CitationCount

		if r.Year == types.YearUnknown {
			s.UnknownYearCount++
		} else {
			s.CountsByYear[r.Year]++
			if s.YearFrom == types.YearUnknown || r.Year < s.YearFrom {
				s.YearFrom = r.Year
			}
			if r.Year > s.YearTo {
				s.YearTo = r.Year
			}
		}

		for _, a := range r.Authors {
			authors.add(a)
		}
		if r.Venue != "" {
			venues.add(r.Venue)
		}
		for _, tok := range Tokenize(r.Title, cfg.MinTermLen) {
			terms.add(tok)
		}
	}

	if s.TotalCount > 0 {
		s.AverageCitations = float64(s.TotalCitations) / float64(s.TotalCount)
	}

	s.TopAuthors = authors.top(cfg.TopN)
	s.TopVenues = venues.top(cfg.TopN)
	s.TopTerms = terms.top(cfg.TermTopN)
	return s
}

// Tokenize splits a title into lowercase terms: maximal runs of Unicode
// letters, at least minLen runes long, with stop words removed.
func Tokenize(title string, minLen int) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := b.String()
		b.Reset()
		if len([]rune(tok)) < minLen {
			return
		}
		if _, stop := stopwords[tok]; stop {
			return
		}
		tokens = append(tokens, tok)
	}
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// freqCounter counts value frequencies and remembers first-appearance
// order for deterministic tie-breaking.
type freqCounter struct {
	counts map[string]int
	first  map[string]int
	n      int
}

func newFreqCounter() *freqCounter {
	return &freqCounter{
		counts: make(map[string]int),
		first:  make(map[string]int),
	}
}

func (c *freqCounter) add(value string) {
	if _, ok := c.counts[value]; !ok {
		c.first[value] = c.n
	}
	c.counts[value]++
	c.n++
}

// top returns the n most frequent values, sorted by descending count with
// ties broken by first appearance.
func (c *freqCounter) top(n int) []types.FreqEntry {
	entries := make([]types.FreqEntry, 0, len(c.counts))
	for v, count := range c.counts {
		entries = append(entries, types.FreqEntry{Value: v, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return c.first[entries[i].Value] < c.first[entries[j].Value]
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
