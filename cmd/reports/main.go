package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// report is the subset of the analyzer's output format this tool reads
type report struct {
	Username    string    `json:"username"`
	GeneratedAt time.Time `json:"generated_at"`
	Summary     struct {
		TotalAnalyzed    int `json:"total_analyzed"`
		Controversial    int `json:"controversial"`
		NonControversial int `json:"non_controversial"`
	} `json:"summary"`
}

type reportFile struct {
	path   string
	report report
}

func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: reports <summarize|prune-duplicates> <reports-directory>")
	}

	command := os.Args[1]
	reportsDir := os.Args[2]

	switch command {
	case "summarize":
		if err := summarize(reportsDir); err != nil {
			log.Fatal(err)
		}
	case "prune-duplicates":
		if err := pruneDuplicates(reportsDir); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("Unknown command %q", command)
	}
}

// loadReports reads every .json report in dir, skipping unparsable files
func loadReports(dir string) ([]reportFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}

	var reports []reportFile
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", path, err)
			continue
		}

		var r report
		if err := json.Unmarshal(data, &r); err != nil || r.Username == "" {
			log.Printf("Skipping %s: not an analysis report", path)
			continue
		}

		reports = append(reports, reportFile{path: path, report: r})
	}

	return reports, nil
}

// summarize prints aggregate counts per analyzed username
func summarize(dir string) error {
	reports, err := loadReports(dir)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		return fmt.Errorf("no reports found in %s", dir)
	}

	type totals struct {
		runs          int
		analyzed      int
		controversial int
		latest        time.Time
	}
	byUser := make(map[string]*totals)
	for _, rf := range reports {
		t, ok := byUser[rf.report.Username]
		if !ok {
			t = &totals{}
			byUser[rf.report.Username] = t
		}
		t.runs++
		t.analyzed += rf.report.Summary.TotalAnalyzed
		t.controversial += rf.report.Summary.Controversial
		if rf.report.GeneratedAt.After(t.latest) {
			t.latest = rf.report.GeneratedAt
		}
	}

	usernames := make([]string, 0, len(byUser))
	for username := range byUser {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	fmt.Printf("%d report(s) in %s\n\n", len(reports), dir)
	for _, username := range usernames {
		t := byUser[username]
		fmt.Printf("@%s: %d run(s), %d post(s) analyzed, %d controversial, last run %s\n",
			username, t.runs, t.analyzed, t.controversial, t.latest.Format("2006-01-02"))
	}

	return nil
}

// pruneDuplicates deletes all but the newest report per username
func pruneDuplicates(dir string) error {
	reports, err := loadReports(dir)
	if err != nil {
		return err
	}

	newest := make(map[string]reportFile)
	for _, rf := range reports {
		current, ok := newest[rf.report.Username]
		if !ok || rf.report.GeneratedAt.After(current.report.GeneratedAt) {
			newest[rf.report.Username] = rf
		}
	}

	removed := 0
	for _, rf := range reports {
		if newest[rf.report.Username].path == rf.path {
			continue
		}
		if err := os.Remove(rf.path); err != nil {
			log.Printf("Error removing %s: %v", rf.path, err)
			continue
		}
		log.Printf("Removed %s (superseded %s report for @%s)",
			rf.path, rf.report.GeneratedAt.Format("2006-01-02"), rf.report.Username)
		removed++
	}

	kept := make([]string, 0, len(newest))
	for username := range newest {
		kept = append(kept, "@"+username)
	}
	sort.Strings(kept)
	log.Printf("Removed %d report(s), kept newest for %s", removed, strings.Join(kept, ", "))

	return nil
}
