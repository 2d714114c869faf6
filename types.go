package main

import "time"

// PublicMetrics holds the engagement counters the platform reports per post.
type PublicMetrics struct {
	LikeCount    int `json:"like_count"`
	RetweetCount int `json:"retweet_count"`
	ReplyCount   int `json:"reply_count"`
	QuoteCount   int `json:"quote_count"`
}

// Post is a single post fetched from the analyzed profile. Immutable once
// fetched.
type Post struct {
	ID            string        `json:"id"`
	Text          string        `json:"text"`
	CreatedAt     time.Time     `json:"created_at"`
	Author        string        `json:"author"`
	PublicMetrics PublicMetrics `json:"public_metrics"`
}

// MatchedPost pairs a post with the keywords that flagged it during
// filtering, before classification.
type MatchedPost struct {
	Post            Post
	MatchedKeywords []string
}

// Analysis is the model's controversy judgment for one post.
type Analysis struct {
	IsControversial  bool     `json:"is_controversial"`
	ControversyScore int      `json:"controversy_score"`
	Reasons          []string `json:"reasons"`
	Topics           []string `json:"topics"`
}

// ClassificationResult is the final record for one flagged post. Immutable
// after the classifier produces it.
type ClassificationResult struct {
	Post            Post     `json:"post"`
	MatchedKeywords []string `json:"matched_keywords"`
	Analysis        Analysis `json:"analysis"`
}

// Summary aggregates the outcome counts for one run.
type Summary struct {
	TotalAnalyzed    int `json:"total_analyzed"`
	Controversial    int `json:"controversial"`
	NonControversial int `json:"non_controversial"`
}

// Report is the full result set for one run, written once at program end.
type Report struct {
	Username          string                 `json:"username"`
	GeneratedAt       time.Time              `json:"generated_at"`
	KeywordsSearched  []string               `json:"keywords_searched"`
	TotalPostsFetched int                    `json:"total_posts_fetched"`
	Results           []ClassificationResult `json:"results"`
	Summary           Summary                `json:"summary"`
}
