package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const serperURL = "https://google.serper.dev/search"

// SearchResult is one organic result from the search API.
type SearchResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
	Date    string `json:"date,omitempty"`
}

type serperRequest struct {
	Query     string `json:"q"`
	Country   string `json:"gl"`
	Language  string `json:"hl"`
	Num       int    `json:"num"`
	Freshness string `json:"tbs,omitempty"`
}

type serperResponse struct {
	Organic []SearchResult `json:"organic"`
}

// SerperClient searches Google via Serper.dev, locked to Brazilian
// Portuguese results.
type SerperClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

func NewSerperClient(apiKey string) *SerperClient {
	return &SerperClient{
		apiKey: apiKey,
		apiURL: serperURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Search runs one query. lastWeek restricts results to the past week (the
// scheduled job's default); num caps the returned results.
func (c *SerperClient) Search(ctx context.Context, query string, num int, lastWeek bool) ([]SearchResult, error) {
	body := serperRequest{
		Query:    query,
		Country:  "br",
		Language: "pt-br",
		Num:      num,
	}
	if lastWeek {
		body.Freshness = "qdr:w"
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("serper error (status %d): %s", resp.StatusCode, string(raw))
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	return parsed.Organic, nil
}
