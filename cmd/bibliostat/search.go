package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lmartins/bibliostat/internal/export"
	"github.com/lmartins/bibliostat/internal/scopus"
	"github.com/lmartins/bibliostat/internal/stats"
	"github.com/lmartins/bibliostat/internal/store"
	"github.com/lmartins/bibliostat/pkg/types"
)

const (
	defaultTimeout   = 40 * time.Second
	defaultUserAgent = "bibliostat/0.1"
	defaultCacheDir  = "cache"
)

var searchCmd = &cobra.Command{
	Use:   "search [expression]",
	Short: "Search Scopus and print bibliometric statistics",
	Long: `Search runs a query against the Scopus Search API, fetching every
matching record up to --max-records, and prints a bibliometric report:
citation totals, publications per year, and top authors, venues, and
title terms.

A bare expression is wrapped in TITLE-ABS-KEY(...); expressions that
already carry Scopus field qualifiers are sent unchanged. Use --save to
snapshot the record set for later stats or export runs, and --cache to
reuse results of an identical earlier search.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("query", "q", "", "Scopus search expression")
	searchCmd.Flags().Int("year-from", 0, "earliest publication year (inclusive)")
	searchCmd.Flags().Int("year-to", 0, "latest publication year (inclusive)")
	searchCmd.Flags().String("doctype", "", "restrict to a Scopus document type code (e.g. ar, re, cp)")
	searchCmd.Flags().Bool("open-access", false, "restrict to open-access documents")
	searchCmd.Flags().Int("page-size", 0, "records per page request (default 25, max 200)")
	searchCmd.Flags().Int("max-records", 0, "maximum records to fetch across all pages (default 200)")
	searchCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout (default 40s)")
	searchCmd.Flags().Int("retries", 0, "retry attempts on HTTP 429 (default 0: fail immediately)")
	searchCmd.Flags().String("api-key", "", "Elsevier API key (overrides env, config, and secrets)")
	searchCmd.Flags().Bool("json", false, "output records and summary as JSON")
	searchCmd.Flags().String("save", "", "save the record set to a YAML snapshot file")
	searchCmd.Flags().Bool("cache", false, "reuse cached results for an identical search")
	searchCmd.Flags().String("cache-dir", defaultCacheDir, "directory for the search cache database")
	addStatsFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := queryFromFlags(cmd, args)
	if query.IsEmpty() {
		return fmt.Errorf("query is empty: provide a search expression")
	}

	cfg, err := scopusConfigFromFlags(cmd)
	if err != nil {
		return err
	}

	useCache, _ := cmd.Flags().GetBool("cache")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")

	out, err := fetchResults(cmd.Context(), cfg, query, useCache, cacheDir)
	if err != nil {
		return err
	}

	summary := stats.Summarize(out.Records, statsConfigFromFlags(cmd))

	if save, _ := cmd.Flags().GetString("save"); save != "" {
		if err := export.WriteResultFile(save, query, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %d records to %s\n", len(out.Records), save)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSONReport(os.Stdout, out, summary)
	}
	printReport(os.Stdout, out, summary)
	return nil
}

// fetchResults runs the paginated fetch, going through the local cache
// when requested.
func fetchResults(ctx context.Context, cfg types.ScopusConfig, query scopus.Query, useCache bool, cacheDir string) (types.FetchOutput, error) {
	if !useCache {
		client, err := scopus.NewClient(cfg)
		if err != nil {
			return types.FetchOutput{}, err
		}
		return client.Search(ctx, query)
	}

	s, err := store.Open(cacheDir)
	if err != nil {
		return types.FetchOutput{}, err
	}
	defer s.Close()

	key := query.CacheKey(cfg.MaxRecords)
	if out, ok, err := s.Load(ctx, key); err != nil {
		return types.FetchOutput{}, err
	} else if ok {
		fmt.Fprintf(os.Stderr, "Using cached results (%d records)\n", len(out.Records))
		return out, nil
	}

	client, err := scopus.NewClient(cfg)
	if err != nil {
		return types.FetchOutput{}, err
	}
	out, err := client.Search(ctx, query)
	if err != nil {
		return types.FetchOutput{}, err
	}
	if err := s.Save(ctx, key, out); err != nil {
		return types.FetchOutput{}, err
	}
	return out, nil
}

func queryFromFlags(cmd *cobra.Command, args []string) scopus.Query {
	expression, _ := cmd.Flags().GetString("query")
	if expression == "" && len(args) > 0 {
		expression = strings.Join(args, " ")
	}
	yearFrom, _ := cmd.Flags().GetInt("year-from")
	yearTo, _ := cmd.Flags().GetInt("year-to")
	docType, _ := cmd.Flags().GetString("doctype")
	openAccess, _ := cmd.Flags().GetBool("open-access")

	return scopus.Query{
		Expression:     expression,
		YearFrom:       yearFrom,
		YearTo:         yearTo,
		DocType:        docType,
		OpenAccessOnly: openAccess,
	}
}

func scopusConfigFromFlags(cmd *cobra.Command) (types.ScopusConfig, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	apiKey = resolveAPIKey(apiKey)
	if apiKey == "" {
		return types.ScopusConfig{}, fmt.Errorf(
			"no API key configured: set --api-key, BIBLIOSTAT_API_KEY, or .secrets/scopus-api-key")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	pageSize, _ := cmd.Flags().GetInt("page-size")
	maxRecords, _ := cmd.Flags().GetInt("max-records")
	retries, _ := cmd.Flags().GetInt("retries")

	return types.ScopusConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIKey:     apiKey,
		PageSize:   pageSize,
		MaxRecords: maxRecords,
		MaxRetries: retries,
	}, nil
}

// resolveAPIKey applies the key precedence: flag, then env/config via
// viper, then the secrets directory.
func resolveAPIKey(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := viper.GetString("api_key"); v != "" {
		return v
	}
	return secretDefault("scopus-api-key", "")
}

func addStatsFlags(cmd *cobra.Command) {
	cmd.Flags().Int("top", 0, "length of the author and venue tables (default 10)")
	cmd.Flags().Int("term-top", 0, "length of the title-term table (default 20)")
	cmd.Flags().Int("min-term-len", 0, "minimum title-term token length (default 3)")
}

func statsConfigFromFlags(cmd *cobra.Command) types.StatsConfig {
	topN, _ := cmd.Flags().GetInt("top")
	termTopN, _ := cmd.Flags().GetInt("term-top")
	minTermLen, _ := cmd.Flags().GetInt("min-term-len")
	return types.StatsConfig{
		TopN:       topN,
		TermTopN:   termTopN,
		MinTermLen: minTermLen,
	}
}

// jsonReport is the --json output shape shared by search and stats.
type jsonReport struct {
	TotalMatches int            `json:"total_matches"`
	Skipped      int            `json:"skipped"`
	DupsRemoved  int            `json:"dups_removed"`
	Summary      types.Summary  `json:"summary"`
	Records      []types.Record `json:"records"`
}

func writeJSONReport(w io.Writer, out types.FetchOutput, summary types.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		TotalMatches: out.TotalMatches,
		Skipped:      out.Skipped,
		DupsRemoved:  out.DupsRemoved,
		Summary:      summary,
		Records:      out.Records,
	})
}
