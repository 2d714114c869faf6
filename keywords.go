package main

import (
	"fmt"
	"strings"
)

// KeywordSet is the fixed list of flag terms posts are filtered against.
// Keywords are stored lowercased in insertion order.
type KeywordSet struct {
	keywords []string
}

// NewKeywordSet parses a keyword list, one term per line. Blank lines and
// lines starting with # are skipped; terms are lowercased and deduplicated.
func NewKeywordSet(raw string) (*KeywordSet, error) {
	seen := make(map[string]bool)
	var keywords []string

	for _, line := range strings.Split(raw, "\n") {
		term := strings.ToLower(strings.TrimSpace(line))
		if term == "" || strings.HasPrefix(term, "#") {
			continue
		}
		if seen[term] {
			continue
		}
		seen[term] = true
		keywords = append(keywords, term)
	}

	if len(keywords) == 0 {
		return nil, fmt.Errorf("keyword list is empty")
	}

	return &KeywordSet{keywords: keywords}, nil
}

// Keywords returns the terms in set order
func (ks *KeywordSet) Keywords() []string {
	out := make([]string, len(ks.keywords))
	copy(out, ks.keywords)
	return out
}

// Len returns the number of keywords in the set
func (ks *KeywordSet) Len() int {
	return len(ks.keywords)
}

// Match returns the keywords appearing in text as case-insensitive
// substrings, in set order. Returns nil when nothing matches.
func (ks *KeywordSet) Match(text string) []string {
	lowered := strings.ToLower(text)

	var matched []string
	for _, keyword := range ks.keywords {
		if strings.Contains(lowered, keyword) {
			matched = append(matched, keyword)
		}
	}
	return matched
}

// FilterPosts retains posts whose text contains at least one keyword.
// Pure and order-preserving; the input slice is not modified.
func (ks *KeywordSet) FilterPosts(posts []Post) []MatchedPost {
	var filtered []MatchedPost
	for _, post := range posts {
		if matched := ks.Match(post.Text); len(matched) > 0 {
			filtered = append(filtered, MatchedPost{
				Post:            post,
				MatchedKeywords: matched,
			})
		}
	}
	return filtered
}
