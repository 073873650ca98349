// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bibliostat/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScopusConfig holds settings for the Scopus search client.
type ScopusConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Elsevier API key sent in the X-ELS-APIKey header.
	// Loaded once at startup; a missing key is a construction-time error.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// PageSize is the number of records requested per page (default 25,
	// clamped to the API maximum of 200).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxRecords caps the number of records fetched across all pages
	// (default 200).
	MaxRecords int `json:"max_records" yaml:"max_records"`

	// MaxRetries is the number of retry attempts on HTTP 429. Zero means
	// a rate-limit response fails the search immediately.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StatsConfig holds settings for summary computation.
type StatsConfig struct {
	// TopN is the length cap for the author and venue tables (default 10).
	TopN int `json:"top_n" yaml:"top_n"`

	// TermTopN is the length cap for the title-term table (default 20).
	TermTopN int `json:"term_top_n" yaml:"term_top_n"`

	// MinTermLen is the minimum token length for title terms (default 3).
	MinTermLen int `json:"min_term_len" yaml:"min_term_len"`
}

// ExportFormat selects the tabular export format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)
