package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/nesthunt/nesthunt/internal/model"
)

var (
	suggestAddress    string
	suggestCommuteMax int
	suggestModes      []string
	suggestBudget     float64
	suggestHomeType   string
	suggestJSON       bool
)

var (
	goodFit = color.New(color.FgGreen, color.Bold)
	okFit   = color.New(color.FgYellow)
	poorFit = color.New(color.FgHiBlack)
)

func fitLabel(fitScore int) string {
	switch {
	case fitScore >= 70:
		return goodFit.Sprint("strong")
	case fitScore >= 40:
		return okFit.Sprint("fair")
	default:
		return poorFit.Sprint("weak")
	}
}

func formatRent(m model.AreaMetrics) string {
	if m.RentWeekly == nil {
		return "unknown"
	}
	return fmt.Sprintf("$%.0f/wk (%s)", *m.RentWeekly, m.Sources.Rent.Method)
}

func formatCommute(m model.AreaMetrics) string {
	if m.CommuteMin == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d min", *m.CommuteMin)
}

func formatSafety(m model.AreaMetrics) string {
	if m.SafetyPct == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.0f%%", *m.SafetyPct)
}

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Rank residential areas for a workplace address",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := model.UserRequest{
			Address:    suggestAddress,
			CommuteMax: suggestCommuteMax,
			HomeType:   model.HomeType(suggestHomeType),
			Weights:    model.Weights{Rent: 0.4, Commute: 0.3, Safety: 0.18, Lifestyle: 0.12},
		}
		for _, m := range suggestModes {
			req.TransportModes = append(req.TransportModes, model.TransportMode(strings.TrimSpace(m)))
		}
		if suggestBudget > 0 {
			req.Budget = &suggestBudget
		}
		if err := req.Validate(); err != nil {
			return err
		}

		env, err := initPipeline()
		if err != nil {
			return err
		}

		resp, err := env.service.Suggest(cmd.Context(), req)
		if err != nil {
			return eris.Wrap(err, "suggest")
		}

		if suggestJSON {
			return printJSON(os.Stdout, resp)
		}

		fmt.Printf("Workplace: %s (confidence %.2f)\n", resp.Company.NormalizedAddress, resp.Company.Confidence)
		if len(resp.Warnings) > 0 {
			fmt.Printf("Warnings: %s\n", strings.Join(resp.Warnings, ", "))
		}
		fmt.Println()

		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"Rank", "Area", "Fit", "Label", "Rent", "Commute", "Safety", "Summary"})
		var data [][]string
		for i, a := range resp.Areas {
			data = append(data, []string{
				fmt.Sprintf("%d", i+1),
				a.Name,
				fmt.Sprintf("%d", a.FitScore),
				fitLabel(a.FitScore),
				formatRent(a.Metrics),
				formatCommute(a.Metrics),
				formatSafety(a.Metrics),
				a.FitSummary,
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(resp.Meta.Disclaimer.Safety)
		return nil
	},
}

func init() {
	suggestCmd.Flags().StringVar(&suggestAddress, "address", "", "workplace address (required)")
	suggestCmd.Flags().IntVar(&suggestCommuteMax, "commute-max", 30, "maximum one-way commute in minutes")
	suggestCmd.Flags().StringSliceVar(&suggestModes, "modes", []string{"driving"}, "transport modes: driving, public transport, walking")
	suggestCmd.Flags().Float64Var(&suggestBudget, "budget", 0, "weekly rent budget")
	suggestCmd.Flags().StringVar(&suggestHomeType, "home-type", "", "home type (studio, 1 bed apartment, ... house)")
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "emit raw JSON instead of a table")
	suggestCmd.MarkFlagRequired("address")
	rootCmd.AddCommand(suggestCmd)
}
