// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/lmartins/bibliostat/internal/scopus"
	"github.com/lmartins/bibliostat/pkg/types"
)

// ResultFile is the on-disk snapshot of one search: the query, the fetched
// records, and fetch statistics. The stats and export commands read it back
// so a search need not be repeated against the API.
type ResultFile struct {
	Query   scopus.Query   `yaml:"query"`
	Fetch   FetchStats     `yaml:"fetch"`
	Records []types.Record `yaml:"records"`
}

// FetchStats stores the fetch statistics and a timestamp.
type FetchStats struct {
	TotalMatches int       `yaml:"total_matches"`
	Fetched      int       `yaml:"fetched"`
	Skipped      int       `yaml:"skipped,omitempty"`
	DupsRemoved  int       `yaml:"dups_removed,omitempty"`
	Timestamp    time.Time `yaml:"timestamp"`
}

// WriteResultFile saves a query and its fetch output to a YAML file.
func WriteResultFile(path string, q scopus.Query, out types.FetchOutput) error {
	rf := ResultFile{
		Query: q,
		Fetch: FetchStats{
			TotalMatches: out.TotalMatches,
			Fetched:      len(out.Records),
			Skipped:      out.Skipped,
			DupsRemoved:  out.DupsRemoved,
			Timestamp:    time.Now(),
		},
		Records: out.Records,
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved result file from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
