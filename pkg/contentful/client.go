package contentful

// CONTENT DELIVERY API CLIENT

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://cdn.contentful.com"

// maxEntries is the largest page the Delivery API returns.
const maxEntries = 1000

var ErrNotConfigured = errors.New("contentful: space id and access token are required")

type Client struct {
	baseURL     string
	spaceID     string
	environment string
	token       string
	httpClient  *http.Client
	logger      *zap.Logger
}

type Sys struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	LinkType string `json:"linkType,omitempty"`
}

// Link is a reference from an entry field to an asset or another entry.
type Link struct {
	Sys Sys `json:"sys"`
}

type Entry struct {
	Sys    Sys             `json:"sys"`
	Fields json.RawMessage `json:"fields"`
}

type ImageDetails struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type File struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Details     struct {
		Size  int           `json:"size"`
		Image *ImageDetails `json:"image,omitempty"`
	} `json:"details"`
}

type Asset struct {
	Sys    Sys `json:"sys"`
	Fields struct {
		Title string `json:"title"`
		File  *File  `json:"file,omitempty"`
	} `json:"fields"`
}

type EntriesResponse struct {
	Total    int     `json:"total"`
	Skip     int     `json:"skip"`
	Limit    int     `json:"limit"`
	Items    []Entry `json:"items"`
	Includes struct {
		Asset []Asset `json:"Asset"`
	} `json:"includes"`
}

// Asset resolves a linked asset from the response includes.
func (r *EntriesResponse) Asset(link *Link) (Asset, bool) {
	if link == nil {
		return Asset{}, false
	}
	for _, a := range r.Includes.Asset {
		if a.Sys.ID == link.Sys.ID {
			return a, true
		}
	}
	return Asset{}, false
}

type apiError struct {
	Message string `json:"message"`
	Sys     Sys    `json:"sys"`
}

func NewClient(baseURL, spaceID, environment, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if environment == "" {
		environment = "master"
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		spaceID:     spaceID,
		environment: environment,
		token:       token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Entries lists entries of one content type with linked assets included.
func (c *Client) Entries(ctx context.Context, contentType string) (*EntriesResponse, error) {
	if c.spaceID == "" || c.token == "" {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("content_type", contentType)
	q.Set("include", "1")
	q.Set("limit", strconv.Itoa(maxEntries))

	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.baseURL,
		url.PathEscape(c.spaceID),
		url.PathEscape(c.environment),
		q.Encode(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("unexpected status: %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var entries EntriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("Fetched contentful entries",
		zap.String("content_type", contentType),
		zap.Int("items", len(entries.Items)),
		zap.Int("total", entries.Total))

	return &entries, nil
}
