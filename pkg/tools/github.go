package tools

import (
	"context"
	"fmt"
	"net/http"
)

// GitHubTool searches repositories via the GitHub REST API.
type GitHubTool struct {
	token  string
	client *http.Client
}

func NewGitHubTool(token string) *GitHubTool {
	return &GitHubTool{token: token, client: newHTTPClient()}
}

func (t *GitHubTool) Name() string     { return "github" }
func (t *GitHubTool) Category() string { return CategoryData }
func (t *GitHubTool) Description() string {
	return "Repository search for code examples and libraries"
}
func (t *GitHubTool) Enabled() bool { return t.token != "" }

func (t *GitHubTool) Invoke(ctx context.Context, params Params) (Result, error) {
	query := params.String("query")
	if query == "" {
		return nil, fmt.Errorf("github requires a 'query' parameter")
	}

	var resp struct {
		TotalCount int `json:"total_count"`
		Items      []struct {
			FullName    string `json:"full_name"`
			HTMLURL     string `json:"html_url"`
			Description string `json:"description"`
			Stars       int    `json:"stargazers_count"`
		} `json:"items"`
	}
	url := "https://api.github.com/search/repositories?per_page=5&q=" + queryEscape(query)
	headers := map[string]string{
		"Authorization": "Bearer " + t.token,
		"Accept":        "application/vnd.github+json",
	}
	if err := getJSON(ctx, t.client, url, headers, &resp); err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}

	results := make([]searchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, searchResult{
			Title:   fmt.Sprintf("%s (%d stars)", item.FullName, item.Stars),
			URL:     item.HTMLURL,
			Snippet: item.Description,
		})
	}
	out := searchResults(t.Name(), results)
	out["total_count"] = resp.TotalCount
	return out, nil
}
