package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lmartins/bibliostat/internal/export"
	"github.com/lmartins/bibliostat/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <snapshot.yaml>",
	Short: "Export a saved snapshot to CSV or XLSX",
	Long: `Export reads a YAML snapshot produced by search --save and writes the
record set as a tabular file. Columns are fixed (id, title, authors, year,
venue, doc_type, citations, doi, url); author lists are flattened into a
single "; "-delimited cell.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "csv", "export format: csv or xlsx")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: snapshot name with the format extension)")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	rf, err := export.ReadResultFile(args[0])
	if err != nil {
		return err
	}

	if output == "" {
		base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
		output = base + "." + format
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer f.Close()

	switch types.ExportFormat(format) {
	case types.FormatCSV:
		err = export.WriteCSV(f, rf.Records)
	case types.FormatXLSX:
		err = export.WriteXLSX(f, rf.Records)
	default:
		return fmt.Errorf("unsupported format %q: use csv or xlsx", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d records to %s\n", len(rf.Records), output)
	return nil
}
