package dupfinder

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/domain/interfaces"
	"github.com/remedian-lab/remedian/pkg/utils/safe"
)

// Client queries a vector search service for records similar to the given
// text. It implements interfaces.DuplicateAdvisor; results are advisory only
// and the caller decides what to do with them.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ interfaces.DuplicateAdvisor = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient overrides the HTTP client. Intended for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAPIKey sets the bearer token sent with each request
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// New creates a client for the vector search service at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerr.New("vector search base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid vector search base URL", goerr.V("baseURL", baseURL))
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type searchRequest struct {
	Query      string `json:"query"`
	RecordType string `json:"record_type"`
	Limit      int    `json:"limit"`
}

type searchResponse struct {
	Results []struct {
		RecordID string  `json:"record_id"`
		Title    string  `json:"title"`
		Score    float64 `json:"score"`
	} `json:"results"`
}

// Search returns up to limit records of the given type similar to text,
// sorted by descending score as returned by the service.
func (c *Client) Search(ctx context.Context, text string, recordType string, limit int) ([]interfaces.Candidate, error) {
	body, err := json.Marshal(searchRequest{
		Query:      text,
		RecordType: recordType,
		Limit:      limit,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal search request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/search", bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create search request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call vector search service",
			goerr.V("recordType", recordType))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, goerr.New("vector search service returned non-OK status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(data)))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode search response")
	}

	candidates := make([]interfaces.Candidate, 0, len(result.Results))
	for _, r := range result.Results {
		candidates = append(candidates, interfaces.Candidate{
			ID:    r.RecordID,
			Title: r.Title,
			Score: r.Score,
		})
	}
	return candidates, nil
}
