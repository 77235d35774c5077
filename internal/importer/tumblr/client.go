// Package tumblr imports posts from a Tumblr blog into a fresh database
// through the Tumblr v2 API. Only text posts are imported; other post types
// are counted and skipped.
package tumblr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

const (
	// DefaultBaseURL is the public Tumblr API endpoint.
	DefaultBaseURL = "https://api.tumblr.com"

	pageLimit = 20
)

// Client talks to the Tumblr v2 API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a Client for the public API.
func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// blogInfo is the subset of the /info response we consume.
type blogInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// apiPost is the subset of a post object we consume.
type apiPost struct {
	Type      string   `json:"type"`
	Slug      string   `json:"slug"`
	Timestamp int64    `json:"timestamp"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags"`
}

type infoResponse struct {
	Blog blogInfo `json:"blog"`
}

type postsResponse struct {
	TotalPosts int       `json:"total_posts"`
	Posts      []apiPost `json:"posts"`
}

// Info fetches blog metadata for hostname.
func (c *Client) Info(ctx context.Context, hostname string) (blogInfo, error) {
	var resp infoResponse
	if err := c.get(ctx, hostname, "info", nil, &resp); err != nil {
		return blogInfo{}, err
	}
	return resp.Blog, nil
}

// PostsPage fetches one page of raw-filtered posts starting at offset.
func (c *Client) PostsPage(ctx context.Context, hostname string, offset int) (postsResponse, error) {
	params := url.Values{}
	params.Set("filter", "raw")
	params.Set("offset", fmt.Sprintf("%d", offset))
	params.Set("limit", fmt.Sprintf("%d", pageLimit))

	var resp postsResponse
	if err := c.get(ctx, hostname, "posts", params, &resp); err != nil {
		return postsResponse{}, err
	}
	return resp, nil
}

// get performs one API call and decodes the "response" envelope into out.
func (c *Client) get(ctx context.Context, hostname, method string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.APIKey)

	endpoint := fmt.Sprintf("%s/v2/blog/%s/%s?%s", c.BaseURL, hostname, method, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, errors.CategoryImport, errors.SeverityFatal, "build tumblr request")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CategoryImport, errors.SeverityFatal, fmt.Sprintf("tumblr %s request", method))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.CategoryImport, errors.SeverityFatal,
			fmt.Sprintf("tumblr %s request failed with status %d", method, resp.StatusCode))
	}

	var envelope struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrap(err, errors.CategoryImport, errors.SeverityFatal, "decode tumblr response")
	}
	if err := json.Unmarshal(envelope.Response, out); err != nil {
		return errors.Wrap(err, errors.CategoryImport, errors.SeverityFatal, "decode tumblr response payload")
	}
	return nil
}
