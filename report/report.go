package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/landing-analyzer/backend/analyzer"
)

// Formats lists the supported output formats.
var Formats = []string{"json", "yaml", "text"}

// Write renders r to w in the given format.
func Write(w io.Writer, r *analyzer.Result, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "text":
		return writeText(w, r)
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

func writeText(w io.Writer, r *analyzer.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", r.URL)
	fmt.Fprintf(&b, "Source: %s\n", r.Source)
	if r.FallbackReason != "" {
		fmt.Fprintf(&b, "Fallback reason: %s\n", r.FallbackReason)
	}
	if r.Page != nil {
		if r.Page.Title != "" {
			fmt.Fprintf(&b, "Title: %s\n", r.Page.Title)
		}
		if r.Page.Language != "" {
			fmt.Fprintf(&b, "Language: %s\n", r.Page.Language)
		}
	}
	fmt.Fprintf(&b, "Score: %.1f (%s)\n\n", r.FinalScore, r.Grade)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Category", "Score")
	for i, label := range r.ChartData.Labels {
		if err := table.Append(label, fmt.Sprintf("%.1f", r.ChartData.Values[i])); err != nil {
			return fmt.Errorf("category table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("category table: %w", err)
	}

	sections := []struct {
		title    string
		marker   string
		messages []string
	}{
		{"Strengths", "+", r.Feedback.Positive},
		{"Warnings", "!", r.Feedback.Warning},
		{"Problems", "-", r.Feedback.Negative},
	}
	for _, s := range sections {
		if len(s.messages) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "\n%s:\n", s.title); err != nil {
			return err
		}
		for _, msg := range s.messages {
			if _, err := fmt.Fprintf(w, "  %s %s\n", s.marker, msg); err != nil {
				return err
			}
		}
	}
	return nil
}
