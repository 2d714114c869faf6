package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultTwitterAPIBase = "https://api.twitter.com/2"

// Page size for the tweets endpoint. The API accepts 5-100.
const tweetsPageSize = 100

var debugEnabled bool

// SetDebugMode enables or disables debug logging
func SetDebugMode(enabled bool) {
	debugEnabled = enabled
}

func debugLog(format string, args ...interface{}) {
	if debugEnabled {
		log.Printf("[DEBUG] "+format, args...)
	}
}

// FetchError represents a failure retrieving posts from the platform API.
// StatusCode is zero for transport-level failures.
type FetchError struct {
	Username   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching posts for @%s: HTTP %d: %v", e.Username, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetching posts for @%s: %v", e.Username, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// TwitterClient fetches a user's recent posts from the Twitter/X v2 API.
type TwitterClient struct {
	baseURL     string
	bearerToken string
	client      *http.Client
	maxPosts    int
}

// NewTwitterClient creates a client authenticated with the given bearer
// token. maxPosts caps how many posts pagination will accumulate.
func NewTwitterClient(bearerToken string, maxPosts int) *TwitterClient {
	return &TwitterClient{
		baseURL:     defaultTwitterAPIBase,
		bearerToken: bearerToken,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxPosts: maxPosts,
	}
}

// userResponse mirrors the users/by/username payload
type userResponse struct {
	Data *struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// tweetsResponse mirrors the users/:id/tweets payload
type tweetsResponse struct {
	Data []struct {
		ID            string        `json:"id"`
		Text          string        `json:"text"`
		CreatedAt     time.Time     `json:"created_at"`
		PublicMetrics PublicMetrics `json:"public_metrics"`
	} `json:"data"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

// ValidateUser resolves a username to a user ID. Returns a FetchError when
// the account doesn't exist, is private, or the API rejects the call.
func (c *TwitterClient) ValidateUser(username string) (string, error) {
	endpoint := fmt.Sprintf("%s/users/by/username/%s", c.baseURL, url.PathEscape(username))

	var user userResponse
	if err := c.getJSON(endpoint, nil, username, &user); err != nil {
		return "", err
	}

	if user.Data == nil || user.Data.ID == "" {
		detail := "user not found or account is private"
		if len(user.Errors) > 0 && user.Errors[0].Detail != "" {
			detail = user.Errors[0].Detail
		}
		return "", &FetchError{Username: username, Err: fmt.Errorf("%s", detail)}
	}

	return user.Data.ID, nil
}

// FetchUserPosts returns the user's recent posts, following pagination until
// the API is exhausted or maxPosts is reached. Order is as returned by the
// API (newest first).
func (c *TwitterClient) FetchUserPosts(username string) ([]Post, error) {
	userID, err := c.ValidateUser(username)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/users/%s/tweets", c.baseURL, url.PathEscape(userID))

	var posts []Post
	nextToken := ""
	for {
		params := url.Values{}
		params.Set("max_results", strconv.Itoa(tweetsPageSize))
		params.Set("tweet.fields", "created_at,public_metrics")
		if nextToken != "" {
			params.Set("pagination_token", nextToken)
		}

		var page tweetsResponse
		if err := c.getJSON(endpoint, params, username, &page); err != nil {
			return nil, err
		}

		debugLog("fetched page with %d posts (next_token=%q)", len(page.Data), page.Meta.NextToken)

		for _, tweet := range page.Data {
			posts = append(posts, Post{
				ID:            tweet.ID,
				Text:          tweet.Text,
				CreatedAt:     tweet.CreatedAt,
				Author:        username,
				PublicMetrics: tweet.PublicMetrics,
			})
			if c.maxPosts > 0 && len(posts) >= c.maxPosts {
				return posts, nil
			}
		}

		nextToken = page.Meta.NextToken
		if nextToken == "" {
			return posts, nil
		}
	}
}

// getJSON performs an authenticated GET and decodes the JSON response into out
func (c *TwitterClient) getJSON(endpoint string, params url.Values, username string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{Username: username, Err: err}
	}
	if params != nil {
		req.URL.RawQuery = params.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return &FetchError{Username: username, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Username: username, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return &FetchError{
			Username:   username,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", http.StatusText(resp.StatusCode)),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{Username: username, StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	return nil
}
