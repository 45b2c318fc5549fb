package govuk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rickchristie/reagent/config"
)

// SearchToolName is the action name of [SearchTool].
const SearchToolName = "search_govuk"

// NoResults is returned when a search matches nothing.
const NoResults = "No results found."

// SearchTool searches GOV.UK through the Google Custom Search JSON API and
// returns the main text of the top results.
type SearchTool struct {
	client     *http.Client
	fetcher    *PageFetcher
	baseURL    string
	apiKey     string
	engineID   string
	minResults int
}

// NewSearchTool creates the search tool. A nil client gets one with the
// configured timeout.
func NewSearchTool(cfg config.SearchConfig, client *http.Client) *SearchTool {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	minResults := cfg.MinResults
	if minResults < 1 {
		minResults = config.DefaultMinResults
	}
	return &SearchTool{
		client:     client,
		fetcher:    NewPageFetcher(client, cfg.Concurrency),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		engineID:   cfg.EngineID,
		minResults: minResults,
	}
}

// WithLogger sets the logger for result pages that could not be fetched.
func (t *SearchTool) WithLogger(logger *slog.Logger) *SearchTool {
	t.fetcher.WithLogger(logger)
	return t
}

func (t *SearchTool) Name() string { return SearchToolName }

func (t *SearchTool) Description() string {
	return "Searches the GOV.UK website for official UK government information. " +
		"Action Input is the search query."
}

type searchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
}

// Call runs the search. A non-200 answer from Google is returned as the
// observation "Google Search error: <status>" rather than as an error, so the
// model can decide to rephrase.
func (t *SearchTool) Call(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("search query is empty")
	}

	params := url.Values{}
	params.Set("key", t.apiKey)
	params.Set("cx", t.engineID)
	params.Set("q", query)

	resp, err := get(ctx, t.client, t.baseURL+"?"+params.Encode())
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			return fmt.Sprintf("Google Search error: %d", statusErr.Code), nil
		}
		return "", fmt.Errorf("google search: %w", err)
	}
	defer resp.Body.Close()

	var results searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("decode google search response: %w", err)
	}
	if len(results.Items) == 0 {
		return NoResults, nil
	}

	items := results.Items[:min(t.minResults, len(results.Items))]
	links := make([]string, len(items))
	for i, item := range items {
		links[i] = item.Link
	}
	contents := t.fetcher.FetchAll(ctx, links)

	blocks := make([]string, len(items))
	for i, item := range items {
		blocks[i] = fmt.Sprintf("Title: %s\n Content: %s\n URL: %s", item.Title, contents[item.Link], item.Link)
	}
	return strings.Join(blocks, "\n\n"), nil
}
