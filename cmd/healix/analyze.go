package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/healix-app/healix-be/internal/assistant"
	"github.com/healix-app/healix-be/internal/diagnosis"
	"github.com/healix-app/healix-be/internal/fallback"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [symptoms...]",
	Short: "Rank conditions for a symptom description",
	Long: `Extract symptoms from the description, rank matching conditions and
print the composed reply.

Examples:
  healix analyze "I have a runny nose, sneezing, and congestion"
  healix analyze severe chest pain --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "Output format (text, json)")
}

// analysis is the JSON output of analyze
type analysis struct {
	CatalogVersion string             `json:"catalog_version"`
	Symptoms       []string           `json:"symptoms"`
	Matches        []diagnosis.Match  `json:"matches"`
	Kind           assistant.Kind     `json:"kind"`
	Action         fallback.Action    `json:"action"`
	Insight        *diagnosis.Insight `json:"insight,omitempty"`
	Reply          string             `json:"reply"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFormat != "text" && analyzeFormat != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", analyzeFormat)
	}

	catalog, err := diagnosis.OpenCatalog(catalogPath)
	if err != nil {
		return err
	}

	a := analyze(catalog, strings.Join(args, " "))

	if analyzeFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(a)
	}
	printAnalysis(cmd.OutOrStdout(), a)
	return nil
}

func analyze(catalog *diagnosis.Catalog, text string) analysis {
	matches := diagnosis.NewAnalyzer(catalog).Analyze(text)
	resp := assistant.Compose(matches, text)

	if matches == nil {
		matches = []diagnosis.Match{}
	}
	return analysis{
		CatalogVersion: catalog.Version(),
		Symptoms:       diagnosis.ExtractSymptoms(text).Sorted(),
		Matches:        matches,
		Kind:           resp.Kind,
		Action:         resp.Action,
		Insight:        resp.Insight,
		Reply:          resp.Text,
	}
}

func printAnalysis(w io.Writer, a analysis) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	_, _ = bold.Fprintln(w, "SYMPTOMS")
	if len(a.Symptoms) == 0 {
		_, _ = dim.Fprintln(w, "  none recognised")
	}
	for _, s := range a.Symptoms {
		fmt.Fprintf(w, "  %s\n", s)
	}
	fmt.Fprintln(w)

	_, _ = bold.Fprintln(w, "MATCHES")
	if len(a.Matches) == 0 {
		_, _ = dim.Fprintln(w, "  no catalog condition matched")
	}
	for i, m := range a.Matches {
		fmt.Fprintf(w, "  %2d. %-40s ", i+1, m.Condition.Name)
		printConfidenceBar(w, m.Confidence)
		_, _ = severityColor(m.Condition.Severity).Fprintf(w, " %s", m.Condition.Severity)
		_, _ = dim.Fprintf(w, " [%s]\n", strings.Join(m.MatchedSymptoms, ", "))
	}
	fmt.Fprintln(w)

	_, _ = bold.Fprintf(w, "REPLY (%s)\n", a.Kind)
	fmt.Fprintln(w, a.Reply)
}

func printConfidenceBar(w io.Writer, confidence int) {
	const barWidth = 20
	filled := min(confidence*barWidth/100, barWidth)

	var barColor *color.Color
	switch {
	case confidence >= 70:
		barColor = color.New(color.FgGreen)
	case confidence >= 40:
		barColor = color.New(color.FgYellow)
	default:
		barColor = color.New(color.FgRed)
	}

	_, _ = barColor.Fprint(w, strings.Repeat("█", filled)+strings.Repeat("░", barWidth-filled))
	fmt.Fprintf(w, " %3d%%", confidence)
}

func severityColor(s diagnosis.Severity) *color.Color {
	switch s {
	case diagnosis.SeveritySevere:
		return color.New(color.FgRed, color.Bold)
	case diagnosis.SeverityModerate:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
