package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lmartins/bibliostat/internal/export"
	"github.com/lmartins/bibliostat/internal/stats"
	"github.com/lmartins/bibliostat/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats <snapshot.yaml>",
	Short: "Recompute statistics from a saved snapshot",
	Long: `Stats reads a YAML snapshot produced by search --save, recomputes the
bibliometric summary from the stored records, and prints the report. The
summary is always derived from the records in full; nothing is carried
over from the original search run.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Bool("json", false, "output records and summary as JSON")
	addStatsFlags(statsCmd)

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	rf, err := export.ReadResultFile(args[0])
	if err != nil {
		return err
	}

	out := types.FetchOutput{
		Records:      rf.Records,
		TotalMatches: rf.Fetch.TotalMatches,
		Skipped:      rf.Fetch.Skipped,
		DupsRemoved:  rf.Fetch.DupsRemoved,
	}
	summary := stats.Summarize(out.Records, statsConfigFromFlags(cmd))

	fmt.Fprintf(os.Stderr, "Snapshot: %s (query: %s)\n", args[0], rf.Query.Build())

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return writeJSONReport(os.Stdout, out, summary)
	}
	printReport(os.Stdout, out, summary)
	return nil
}
