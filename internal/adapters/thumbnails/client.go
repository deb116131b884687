package thumbnails

// Package thumbnails fetches image URLs from the platform thumbnail API.
// Responses are JSON envelopes; the image URL is pulled out with a JMESPath
// expression so the envelope shape stays configurable.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
)

const defaultBaseURL = "https://thumbnails.roblox.com"

// defaultExtract matches the thumbnail API envelope: {"data":[{"imageUrl":...}]}.
const defaultExtract = "data[0].imageUrl"

// Config holds configuration for the thumbnail client.
type Config struct {
	BaseURL    string       // optional, defaults to the public thumbnail API
	Extract    string       // optional JMESPath for the image URL
	HTTPClient *http.Client // optional, defaults to a 30s-timeout client
}

// Client resolves thumbnail lookup URLs to final image URLs.
type Client struct {
	baseURL    string
	extract    string
	httpClient *http.Client
}

// NewClient creates a thumbnail client. The extract expression is validated
// up front so a bad configuration fails at startup, not per request.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	extract := strings.TrimSpace(cfg.Extract)
	if extract == "" {
		extract = defaultExtract
	}
	if _, err := jmespath.Compile(extract); err != nil {
		return nil, fmt.Errorf("compile extract expression: %w", err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: baseURL, extract: extract, httpClient: httpClient}, nil
}

// GameIconURL builds the lookup URL for a place's game icon at the fixed
// 512x512 size.
func (c *Client) GameIconURL(placeID int64) string {
	return fmt.Sprintf(
		"%s/v1/places/gameicons?placeIds=%d&size=512x512&format=Png&isCircular=false",
		c.baseURL, placeID,
	)
}

// Resolve GETs a thumbnail lookup URL and extracts the image URL from the
// response envelope. A missing or empty image URL is an error; callers
// decide whether to fall back.
func (c *Client) Resolve(ctx context.Context, lookupURL string) (string, error) {
	if lookupURL == "" {
		return "", errors.New("lookup URL is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch thumbnail: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch thumbnail: status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode thumbnail response: %w", err)
	}

	out, err := jmespath.Search(c.extract, payload)
	if err != nil {
		return "", fmt.Errorf("extract image URL: %w", err)
	}
	imageURL, ok := out.(string)
	if !ok || imageURL == "" {
		return "", errors.New("thumbnail response has no image URL")
	}
	return imageURL, nil
}
