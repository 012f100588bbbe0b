package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nesthunt/nesthunt/internal/rent"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var datasetCmd = &cobra.Command{
	Use:   "dataset-status",
	Short: "Show rent dataset availability and resolution tallies",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := rent.NewResolver(cfg.Rent.CSVPath)
		loaded, areaCount := resolver.Loaded()

		status := struct {
			Path   string            `json:"path"`
			Loaded bool              `json:"loaded"`
			Areas  int               `json:"areas"`
			Mock   int               `json:"mockAreas"`
			Counts rent.MethodCounts `json:"counts"`
		}{
			Path:   cfg.Rent.CSVPath,
			Loaded: loaded,
			Areas:  areaCount,
			Mock:   len(rent.MockTable()),
			Counts: resolver.Counts(),
		}

		if !loaded {
			fmt.Fprintln(os.Stderr, "rent dataset not loaded; serving from the mock table")
		}
		return printJSON(os.Stdout, status)
	},
}

func init() {
	rootCmd.AddCommand(datasetCmd)
}
