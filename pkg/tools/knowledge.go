package tools

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// --- Wikipedia (keyless) ---

type WikipediaTool struct {
	client *http.Client
}

func NewWikipediaTool() *WikipediaTool {
	return &WikipediaTool{client: newHTTPClient()}
}

func (t *WikipediaTool) Name() string     { return "wikipedia" }
func (t *WikipediaTool) Category() string { return CategoryKnowledge }
func (t *WikipediaTool) Description() string {
	return "Encyclopedia article search for established factual topics"
}
func (t *WikipediaTool) Enabled() bool { return true }

func (t *WikipediaTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("wikipedia requires a 'query' parameter")
	}

	var resp struct {
		Query struct {
			Search []struct {
				Title   string `json:"title"`
				Snippet string `json:"snippet"`
			} `json:"search"`
		} `json:"query"`
	}
	url := "https://en.wikipedia.org/w/api.php?action=query&list=search&format=json&srlimit=5&srsearch=" + queryEscape(query)
	if err := getJSON(ctx, t.client, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("wikipedia: %w", err)
	}

	results := make([]searchResult, 0, len(resp.Query.Search))
	for _, r := range resp.Query.Search {
		results = append(results, searchResult{
			Title:   r.Title,
			URL:     "https://en.wikipedia.org/wiki/" + queryEscape(strings.ReplaceAll(r.Title, " ", "_")),
			Snippet: stripTags(r.Snippet),
		})
	}
	return searchResults(t.Name(), results), nil
}

// stripTags drops the <span> highlight markup the search API embeds.
func stripTags(s string) string {
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// --- Wikidata entity search (keyless) ---

type WikidataTool struct {
	client *http.Client
}

func NewWikidataTool() *WikidataTool {
	return &WikidataTool{client: newHTTPClient()}
}

func (t *WikidataTool) Name() string     { return "wikidata" }
func (t *WikidataTool) Category() string { return CategoryKnowledge }
func (t *WikidataTool) Description() string {
	return "Structured entity lookup for people, places, and concepts"
}
func (t *WikidataTool) Enabled() bool { return true }

func (t *WikidataTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("wikidata requires a 'query' parameter")
	}

	var resp struct {
		Search []struct {
			ID          string `json:"id"`
			Label       string `json:"label"`
			Description string `json:"description"`
			ConceptURI  string `json:"concepturi"`
		} `json:"search"`
	}
	url := "https://www.wikidata.org/w/api.php?action=wbsearchentities&language=en&format=json&limit=5&search=" + queryEscape(query)
	if err := getJSON(ctx, t.client, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("wikidata: %w", err)
	}

	results := make([]searchResult, 0, len(resp.Search))
	for _, r := range resp.Search {
		results = append(results, searchResult{
			Title:   r.Label + " (" + r.ID + ")",
			URL:     r.ConceptURI,
			Snippet: r.Description,
		})
	}
	return searchResults(t.Name(), results), nil
}

// --- arXiv (keyless, Atom feed) ---

type ArxivTool struct {
	client *http.Client
}

func NewArxivTool() *ArxivTool {
	return &ArxivTool{client: newHTTPClient()}
}

func (t *ArxivTool) Name() string     { return "arxiv" }
func (t *ArxivTool) Category() string { return CategoryKnowledge }
func (t *ArxivTool) Description() string {
	return "Academic paper search for scientific and technical questions"
}
func (t *ArxivTool) Enabled() bool { return true }

type arxivFeed struct {
	Entries []struct {
		ID      string `xml:"id"`
		Title   string `xml:"title"`
		Summary string `xml:"summary"`
	} `xml:"entry"`
}

func (t *ArxivTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("arxiv requires a 'query' parameter")
	}

	url := "https://export.arxiv.org/api/query?max_results=5&search_query=all:" + queryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("arxiv: create request: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("arxiv: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv: unexpected status %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("arxiv: decode feed: %w", err)
	}

	results := make([]searchResult, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		results = append(results, searchResult{
			Title:   strings.TrimSpace(e.Title),
			URL:     e.ID,
			Snippet: truncate(strings.TrimSpace(e.Summary), 300),
		})
	}
	return searchResults(t.Name(), results), nil
}

// --- YouTube Data API ---

type YouTubeTool struct {
	apiKey string
	client *http.Client
}

func NewYouTubeTool(apiKey string) *YouTubeTool {
	return &YouTubeTool{apiKey: apiKey, client: newHTTPClient()}
}

func (t *YouTubeTool) Name() string     { return "youtube" }
func (t *YouTubeTool) Category() string { return CategoryKnowledge }
func (t *YouTubeTool) Description() string {
	return "Video search for tutorials and lectures"
}
func (t *YouTubeTool) Enabled() bool { return t.apiKey != "" }

func (t *YouTubeTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("youtube requires a 'query' parameter")
	}

	var resp struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title       string `json:"title"`
				Description string `json:"description"`
			} `json:"snippet"`
		} `json:"items"`
	}
	url := "https://www.googleapis.com/youtube/v3/search?part=snippet&type=video&maxResults=5&key=" + queryEscape(t.apiKey) + "&q=" + queryEscape(query)
	if err := getJSON(ctx, t.client, url, nil, &resp); err != nil {
		return nil, fmt.Errorf("youtube: %w", err)
	}

	results := make([]searchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, searchResult{
			Title:   item.Snippet.Title,
			URL:     "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Snippet: item.Snippet.Description,
		})
	}
	return searchResults(t.Name(), results), nil
}
