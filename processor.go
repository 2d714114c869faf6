// processor.go
package main

import (
	"fmt"
	"log"
)

// PostFetcher retrieves a profile's recent posts
type PostFetcher interface {
	FetchUserPosts(username string) ([]Post, error)
}

// Classifier judges a single post's controversy
type Classifier interface {
	Classify(post Post) (*Analysis, error)
}

// ProfileAnalyzer runs the fetch, filter, classify, report pipeline
type ProfileAnalyzer struct {
	fetcher    PostFetcher
	classifier Classifier
	keywords   *KeywordSet
	settings   *Settings
}

// NewProfileAnalyzer creates an analyzer wired to the real platform and
// model APIs.
func NewProfileAnalyzer(bearerToken, apiKey string, overrides *ConfigOverrides) (*ProfileAnalyzer, error) {
	config, err := NewConfig(overrides)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	keywords, err := config.KeywordSet()
	if err != nil {
		return nil, fmt.Errorf("loading keywords: %w", err)
	}

	classifier, err := NewControversyClassifier(apiKey, config)
	if err != nil {
		return nil, err
	}

	return &ProfileAnalyzer{
		fetcher:    NewTwitterClient(bearerToken, config.Settings.MaxPosts),
		classifier: classifier,
		keywords:   keywords,
		settings:   config.Settings,
	}, nil
}

// Analyze runs the pipeline for one username. Stages run strictly in
// sequence; the first failure aborts the run.
func (pa *ProfileAnalyzer) Analyze(username string) (*Report, error) {
	log.Printf("Analyzing profile: @%s", username)

	log.Printf("→ Fetching posts...")
	posts, err := pa.fetcher.FetchUserPosts(username)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Fetched %d posts", len(posts))

	log.Printf("→ Filtering against %d keywords...", pa.keywords.Len())
	matched := pa.keywords.FilterPosts(posts)
	log.Printf("✓ %d posts matched", len(matched))

	results := make([]ClassificationResult, 0, len(matched))
	for i, mp := range matched {
		log.Printf("[%d/%d] Classifying post %s...", i+1, len(matched), mp.Post.ID)

		analysis, err := pa.classifier.Classify(mp.Post)
		if err != nil {
			return nil, err
		}

		if analysis.IsControversial {
			log.Printf("Controversial (score: %d/10)", analysis.ControversyScore)
		} else {
			log.Printf("Not controversial (score: %d/10)", analysis.ControversyScore)
		}

		results = append(results, ClassificationResult{
			Post:            mp.Post,
			MatchedKeywords: mp.MatchedKeywords,
			Analysis:        *analysis,
		})
	}

	return BuildReport(username, pa.keywords.Keywords(), len(posts), results), nil
}
