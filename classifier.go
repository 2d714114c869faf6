package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

// ClassificationError represents a failure getting a controversy judgment
// for one post, either an API failure or an unparsable response.
type ClassificationError struct {
	PostID string
	Err    error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classifying post %s: %v", e.PostID, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// ControversyClassifier judges posts with a language-model call using
// structured output.
type ControversyClassifier struct {
	apiKey       string
	systemPrompt string
	schema       string
	settings     AgentSettings
}

// NewControversyClassifier creates a classifier using the configured model settings
func NewControversyClassifier(apiKey string, config *Config) (*ControversyClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("creating classifier: API key is required")
	}

	return &ControversyClassifier{
		apiKey:       apiKey,
		systemPrompt: config.ClassifierSystemPrompt(),
		schema:       config.ClassifierSchema(),
		settings:     config.Settings.Agents.Classifier,
	}, nil
}

// Classify sends one post's text to the model and parses the judgment.
// Blocks until the API responds.
func (cc *ControversyClassifier) Classify(post Post) (*Analysis, error) {
	prompt := fmt.Sprintf("Post:\n%s", post.Text)

	response, err := anthropic.PromptWithSettings(cc.systemPrompt, prompt, cc.schema, cc.apiKey, cc.requestSettings())
	if err != nil {
		return nil, &ClassificationError{PostID: post.ID, Err: err}
	}

	if len(response.Content) == 0 {
		return nil, &ClassificationError{PostID: post.ID, Err: fmt.Errorf("no content in response")}
	}

	analysis, err := parseAnalysis(response.Content[0].Text)
	if err != nil {
		return nil, &ClassificationError{PostID: post.ID, Err: err}
	}

	return analysis, nil
}

// requestSettings maps the configured agent settings onto the API request
func (cc *ControversyClassifier) requestSettings() types.RequestSettings {
	return types.RequestSettings{
		Model:       cc.settings.Model,
		MaxTokens:   cc.settings.MaxTokens,
		Temperature: cc.settings.Temperature,
	}
}

// parseAnalysis parses the model's JSON judgment, tolerating markdown code
// fences around the object.
func parseAnalysis(raw string) (*Analysis, error) {
	cleaned := stripCodeFences(raw)

	var analysis Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("parsing analysis JSON: %w", err)
	}

	if analysis.ControversyScore < 0 || analysis.ControversyScore > 10 {
		return nil, fmt.Errorf("controversy_score %d out of range 0-10", analysis.ControversyScore)
	}

	return &analysis, nil
}

// stripCodeFences removes a surrounding ``` or ```json fence if present
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
