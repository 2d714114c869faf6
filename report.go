package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// OutputError represents a failure writing the report file
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("writing report to %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}

// BuildReport assembles the final report from the run's results
func BuildReport(username string, keywords []string, totalFetched int, results []ClassificationResult) *Report {
	controversial := 0
	for _, result := range results {
		if result.Analysis.IsControversial {
			controversial++
		}
	}

	if results == nil {
		results = []ClassificationResult{}
	}

	return &Report{
		Username:          username,
		GeneratedAt:       time.Now().UTC(),
		KeywordsSearched:  keywords,
		TotalPostsFetched: totalFetched,
		Results:           results,
		Summary: Summary{
			TotalAnalyzed:    len(results),
			Controversial:    controversial,
			NonControversial: len(results) - controversial,
		},
	}
}

// PrintReport writes the human-readable summary to w
func PrintReport(w io.Writer, report *Report) {
	divider := strings.Repeat("=", 60)

	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintln(w, "Analysis report")
	fmt.Fprintf(w, "%s\n\n", divider)

	fmt.Fprintf(w, "Profile: @%s\n", report.Username)
	fmt.Fprintf(w, "Analysis date: %s\n", report.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "\nKeywords searched: %d\n", len(report.KeywordsSearched))
	fmt.Fprintf(w, "Total posts fetched: %d\n", report.TotalPostsFetched)
	fmt.Fprintf(w, "Posts analyzed: %d\n", report.Summary.TotalAnalyzed)
	fmt.Fprintf(w, "Controversial posts: %d\n", report.Summary.Controversial)
	fmt.Fprintf(w, "Non-controversial posts: %d\n", report.Summary.NonControversial)

	if report.Summary.Controversial == 0 {
		fmt.Fprintf(w, "\n%s\n", divider)
		fmt.Fprintln(w, "No controversial posts found.")
		fmt.Fprintf(w, "%s\n", divider)
		return
	}

	fmt.Fprintf(w, "\n%s\n", divider)
	fmt.Fprintln(w, "Controversial posts")
	fmt.Fprintf(w, "%s\n\n", divider)

	idx := 0
	for _, result := range report.Results {
		if !result.Analysis.IsControversial {
			continue
		}
		idx++

		fmt.Fprintf(w, "[%d] Post ID: %s\n", idx, result.Post.ID)
		fmt.Fprintf(w, "    Keywords: %s\n", strings.Join(result.MatchedKeywords, ", "))
		fmt.Fprintf(w, "    Date: %s\n", result.Post.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "    Controversy score: %d/10\n", result.Analysis.ControversyScore)
		fmt.Fprintf(w, "    Topics: %s\n", joinOrNA(result.Analysis.Topics))
		fmt.Fprintf(w, "    Reasons: %s\n", joinOrNA(result.Analysis.Reasons))
		fmt.Fprintf(w, "    Text: %s\n", truncate(result.Post.Text, 200))
		fmt.Fprintf(w, "    Metrics: likes=%d, retweets=%d\n\n",
			result.Post.PublicMetrics.LikeCount, result.Post.PublicMetrics.RetweetCount)
	}
}

// SaveReport serializes the report to a JSON file, overwriting any existing
// file at path.
func SaveReport(path string, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return &OutputError{Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &OutputError{Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &OutputError{Path: path, Err: err}
	}

	return nil
}

func joinOrNA(items []string) string {
	if len(items) == 0 {
		return "N/A"
	}
	return strings.Join(items, ", ")
}

// truncate shortens s to max runes, never splitting a multibyte character
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
