package tools

import (
	"context"
	"fmt"
	"net/http"
)

// searchResult is the normalized shape all web search tools return.
type searchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

func searchResults(name string, results []searchResult) Result {
	return Result{
		"source":  name,
		"results": results,
	}
}

// --- SearchAPI.io ---

type SearchAPITool struct {
	apiKey string
	client *http.Client
}

func NewSearchAPITool(apiKey string) *SearchAPITool {
	return &SearchAPITool{apiKey: apiKey, client: newHTTPClient()}
}

func (t *SearchAPITool) Name() string     { return "searchapi" }
func (t *SearchAPITool) Category() string { return CategorySearch }
func (t *SearchAPITool) Description() string {
	return "Google web search results for general queries and current events"
}
func (t *SearchAPITool) Enabled() bool { return t.apiKey != "" }

func (t *SearchAPITool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("searchapi requires a 'query' parameter")
	}

	var resp struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	url := "https://www.searchapi.io/api/v1/search?engine=google&q=" + queryEscape(query)
	headers := map[string]string{"Authorization": "Bearer " + t.apiKey}
	if err := getJSON(ctx, t.client, url, headers, &resp); err != nil {
		return nil, fmt.Errorf("searchapi: %w", err)
	}

	results := make([]searchResult, 0, len(resp.OrganicResults))
	for _, r := range resp.OrganicResults {
		results = append(results, searchResult{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}
	return searchResults(t.Name(), results), nil
}

// --- Serper (google.serper.dev) ---

type SerperTool struct {
	apiKey string
	client *http.Client
}

func NewSerperTool(apiKey string) *SerperTool {
	return &SerperTool{apiKey: apiKey, client: newHTTPClient()}
}

func (t *SerperTool) Name() string     { return "google_serper" }
func (t *SerperTool) Category() string { return CategorySearch }
func (t *SerperTool) Description() string {
	return "Google web search results for general queries and current events"
}
func (t *SerperTool) Enabled() bool { return t.apiKey != "" }

func (t *SerperTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("google_serper requires a 'query' parameter")
	}

	var resp struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	headers := map[string]string{"X-API-KEY": t.apiKey}
	payload := map[string]string{"q": query}
	if err := postJSON(ctx, t.client, "https://google.serper.dev/search", headers, payload, &resp); err != nil {
		return nil, fmt.Errorf("google_serper: %w", err)
	}

	results := make([]searchResult, 0, len(resp.Organic))
	for _, r := range resp.Organic {
		results = append(results, searchResult{Title: r.Title, URL: r.Link, Snippet: r.Snippet})
	}
	return searchResults(t.Name(), results), nil
}

// --- Tavily ---

type TavilyTool struct {
	apiKey string
	client *http.Client
}

func NewTavilyTool(apiKey string) *TavilyTool {
	return &TavilyTool{apiKey: apiKey, client: newHTTPClient()}
}

func (t *TavilyTool) Name() string     { return "tavily_search" }
func (t *TavilyTool) Category() string { return CategorySearch }
func (t *TavilyTool) Description() string {
	return "Research-oriented web search that can return a synthesized answer"
}
func (t *TavilyTool) Enabled() bool { return t.apiKey != "" }

func (t *TavilyTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("tavily_search requires a 'query' parameter")
	}

	var resp struct {
		Answer  string `json:"answer"`
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	headers := map[string]string{"Authorization": "Bearer " + t.apiKey}
	payload := map[string]interface{}{
		"query":       query,
		"max_results": params.Int("max_results", 5),
	}
	if err := postJSON(ctx, t.client, "https://api.tavily.com/search", headers, payload, &resp); err != nil {
		return nil, fmt.Errorf("tavily_search: %w", err)
	}

	results := make([]searchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, searchResult{Title: r.Title, URL: r.URL, Snippet: r.Content})
	}
	out := searchResults(t.Name(), results)
	if resp.Answer != "" {
		out["answer"] = resp.Answer
	}
	return out, nil
}

// --- Brave Search ---

type BraveSearchTool struct {
	apiKey string
	client *http.Client
}

func NewBraveSearchTool(apiKey string) *BraveSearchTool {
	return &BraveSearchTool{apiKey: apiKey, client: newHTTPClient()}
}

func (t *BraveSearchTool) Name() string     { return "brave_search" }
func (t *BraveSearchTool) Category() string { return CategorySearch }
func (t *BraveSearchTool) Description() string {
	return "Privacy-focused web search for general queries"
}
func (t *BraveSearchTool) Enabled() bool { return t.apiKey != "" }

func (t *BraveSearchTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("brave_search requires a 'query' parameter")
	}

	var resp struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	url := "https://api.search.brave.com/res/v1/web/search?q=" + queryEscape(query)
	headers := map[string]string{"X-Subscription-Token": t.apiKey}
	if err := getJSON(ctx, t.client, url, headers, &resp); err != nil {
		return nil, fmt.Errorf("brave_search: %w", err)
	}

	results := make([]searchResult, 0, len(resp.Web.Results))
	for _, r := range resp.Web.Results {
		results = append(results, searchResult{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	return searchResults(t.Name(), results), nil
}

// --- DuckDuckGo Instant Answer (keyless) ---

type DuckDuckGoTool struct {
	client *http.Client
}

func NewDuckDuckGoTool() *DuckDuckGoTool {
	return &DuckDuckGoTool{client: newHTTPClient()}
}

func (t *DuckDuckGoTool) Name() string     { return "duckduckgo" }
func (t *DuckDuckGoTool) Category() string { return CategorySearch }
func (t *DuckDuckGoTool) Description() string {
	return "Instant-answer summaries for well-known topics, no API key required"
}
func (t *DuckDuckGoTool) Enabled() bool { return true }

func (t *DuckDuckGoTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("duckduckgo requires a 'query' parameter")
	}

	var resp struct {
		AbstractText  string `json:"AbstractText"`
		AbstractURL   string `json:"AbstractURL"`
		RelatedTopics []struct {
			Text     string `json:"Text"`
			FirstURL string `json:"FirstURL"`
		} `json:"RelatedTopics"`
	}
	url := "https://api.duckduckgo.com/?format=json&no_html=1&q=" + queryEscape(query)
	if err := getJSON(ctx, t.client, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("duckduckgo: %w", err)
	}

	var results []searchResult
	if resp.AbstractText != "" {
		results = append(results, searchResult{Title: query, URL: resp.AbstractURL, Snippet: resp.AbstractText})
	}
	for _, topic := range resp.RelatedTopics {
		if topic.Text == "" {
			continue
		}
		results = append(results, searchResult{Title: topic.Text, URL: topic.FirstURL, Snippet: topic.Text})
		if len(results) >= 5 {
			break
		}
	}
	return searchResults(t.Name(), results), nil
}
