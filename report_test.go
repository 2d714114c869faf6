package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func sampleResults() []ClassificationResult {
	return []ClassificationResult{
		{
			Post: Post{
				ID:        "100",
				Text:      "This policy is highly controversial and divisive",
				CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
				Author:    "jack",
				PublicMetrics: PublicMetrics{
					LikeCount:    42,
					RetweetCount: 7,
				},
			},
			MatchedKeywords: []string{"controversial"},
			Analysis: Analysis{
				IsControversial:  true,
				ControversyScore: 8,
				Reasons:          []string{"inflammatory rhetoric"},
				Topics:           []string{"politics"},
			},
		},
		{
			Post: Post{
				ID:        "101",
				Text:      "Getting my vaccine today",
				CreatedAt: time.Date(2024, 5, 2, 11, 0, 0, 0, time.UTC),
				Author:    "jack",
			},
			MatchedKeywords: []string{"vaccine"},
			Analysis: Analysis{
				IsControversial:  false,
				ControversyScore: 1,
				Reasons:          []string{"personal statement"},
				Topics:           []string{"health"},
			},
		},
	}
}

func TestBuildReport(t *testing.T) {
	results := sampleResults()
	keywords := []string{"controversial", "vaccine"}

	report := BuildReport("jack", keywords, 50, results)

	if report.Username != "jack" {
		t.Errorf("Username = %q, want %q", report.Username, "jack")
	}
	if report.TotalPostsFetched != 50 {
		t.Errorf("TotalPostsFetched = %d, want 50", report.TotalPostsFetched)
	}
	if len(report.Results) != len(results) {
		t.Errorf("len(Results) = %d, want %d", len(report.Results), len(results))
	}
	if report.Summary.TotalAnalyzed != 2 {
		t.Errorf("Summary.TotalAnalyzed = %d, want 2", report.Summary.TotalAnalyzed)
	}
	if report.Summary.Controversial != 1 {
		t.Errorf("Summary.Controversial = %d, want 1", report.Summary.Controversial)
	}
	if report.Summary.NonControversial != 1 {
		t.Errorf("Summary.NonControversial = %d, want 1", report.Summary.NonControversial)
	}
	if report.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport("quiet", []string{"vaccine"}, 0, nil)

	if report.Results == nil {
		t.Error("Results should be an empty slice, not nil, so JSON emits an array")
	}
	if report.Summary.TotalAnalyzed != 0 || report.Summary.Controversial != 0 {
		t.Errorf("unexpected summary for empty run: %+v", report.Summary)
	}
}

func TestSaveReportRoundTrip(t *testing.T) {
	report := BuildReport("jack", []string{"controversial", "vaccine"}, 50, sampleResults())
	report.GeneratedAt = time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)

	path := filepath.Join(t.TempDir(), "out.json")

	if err := SaveReport(path, report); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved report: %v", err)
	}

	var parsed Report
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("parsing saved report: %v", err)
	}

	if !reflect.DeepEqual(&parsed, report) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", &parsed, report)
	}
}

func TestSaveReportOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	if err := os.WriteFile(path, []byte("stale contents"), 0644); err != nil {
		t.Fatal(err)
	}

	report := BuildReport("jack", []string{"vaccine"}, 0, nil)
	if err := SaveReport(path, report); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "stale contents") {
		t.Error("SaveReport() did not overwrite existing file")
	}
}

func TestSaveReportEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	report := BuildReport("quiet", []string{"vaccine"}, 0, nil)
	if err := SaveReport(path, report); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}

	var parsed struct {
		Results []ClassificationResult `json:"results"`
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("empty report is not valid JSON: %v", err)
	}
	if parsed.Results == nil || len(parsed.Results) != 0 {
		t.Errorf("empty run should serialize an empty results array, got %v", parsed.Results)
	}
}

func TestSaveReportError(t *testing.T) {
	// Parent "directory" is a regular file, so the write must fail
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	report := BuildReport("jack", []string{"vaccine"}, 0, nil)
	err := SaveReport(filepath.Join(blocker, "out.json"), report)

	if err == nil {
		t.Fatal("SaveReport() expected error when path is not writable")
	}
	if _, ok := err.(*OutputError); !ok {
		t.Errorf("SaveReport() error type = %T, want *OutputError", err)
	}
}

func TestPrintReport(t *testing.T) {
	report := BuildReport("jack", []string{"controversial", "vaccine"}, 50, sampleResults())

	var buf bytes.Buffer
	PrintReport(&buf, report)
	out := buf.String()

	for _, want := range []string{
		"Profile: @jack",
		"Total posts fetched: 50",
		"Posts analyzed: 2",
		"Controversial posts: 1",
		"[1] Post ID: 100",
		"Controversy score: 8/10",
		"Topics: politics",
		"Reasons: inflammatory rhetoric",
		"Metrics: likes=42, retweets=7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("PrintReport() output missing %q", want)
		}
	}

	// The non-controversial post gets no detail entry
	if strings.Contains(out, "Post ID: 101") {
		t.Error("PrintReport() should not detail non-controversial posts")
	}
}

func TestPrintReportEmpty(t *testing.T) {
	report := BuildReport("quiet", []string{"vaccine"}, 0, nil)

	var buf bytes.Buffer
	PrintReport(&buf, report)
	out := buf.String()

	if !strings.Contains(out, "No controversial posts found.") {
		t.Error("PrintReport() missing empty-run message")
	}
	if strings.Contains(out, "Post ID:") {
		t.Error("PrintReport() printed per-post lines for an empty run")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hello..."},
		{"multibyte boundary", "日本語のテキスト", 3, "日本語..."},
		{"multibyte short", "héllo", 10, "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.max)
			if got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.input, tt.max)
			}
		})
	}
}
