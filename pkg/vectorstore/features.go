package vectorstore

import "strings"

// ContentFeatures is a small record of content-type signals computed once
// at ingestion and consulted by the adaptive ranker.
type ContentFeatures struct {
	HasExamples bool `json:"has_examples"`
	HasTheory   bool `json:"has_theory"`
	HasSteps    bool `json:"has_steps"`
	HasOverview bool `json:"has_overview"`
	IsDetailed  bool `json:"is_detailed"`
	IsConcise   bool `json:"is_concise"`
}

var (
	exampleMarkers  = []string{"example", "for instance", "such as"}
	theoryMarkers   = []string{"theory", "principle", "concept", "framework"}
	stepMarkers     = []string{"step 1", "first", "second", "then", "finally"}
	overviewMarkers = []string{"overview", "summary", "introduction", "overall"}
)

// ComputeFeatures classifies a chunk's content by keyword presence and length.
func ComputeFeatures(content string) ContentFeatures {
	lower := strings.ToLower(content)
	wordCount := len(strings.Fields(content))

	return ContentFeatures{
		HasExamples: containsAny(lower, exampleMarkers),
		HasTheory:   containsAny(lower, theoryMarkers),
		HasSteps:    containsAny(lower, stepMarkers),
		HasOverview: containsAny(lower, overviewMarkers),
		IsDetailed:  wordCount > 200,
		IsConcise:   wordCount < 100,
	}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
