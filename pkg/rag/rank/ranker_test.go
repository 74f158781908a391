package rank

import (
	"testing"

	"edu-assist-be/pkg/learner"
	"edu-assist-be/pkg/vectorstore"
)

func hit(content, sessionID, documentID string, score float32, features vectorstore.ContentFeatures) vectorstore.Hit {
	return vectorstore.Hit{
		Chunk: vectorstore.Chunk{
			Content: content,
			Metadata: vectorstore.ChunkMetadata{
				SessionID:  sessionID,
				DocumentID: documentID,
				Features:   features,
			},
		},
		Score: score,
	}
}

func TestRankPriorityOrdering(t *testing.T) {
	// Identical semantic scores and features; only scope boosts differ
	hits := []vectorstore.Hit{
		hit("unrelated", "s9", "d9", 0.8, vectorstore.ContentFeatures{}),
		hit("same session", "s1", "d8", 0.8, vectorstore.ContentFeatures{}),
		hit("explicit doc", "s9", "d1", 0.8, vectorstore.ContentFeatures{}),
	}

	ranked := Rank(hits, learner.Style{}, Options{SessionID: "s1", DocumentIDs: []string{"d1"}})

	if len(ranked) != 3 {
		t.Fatalf("len(ranked) = %d, want 3", len(ranked))
	}
	wantOrder := []string{"explicit doc", "same session", "unrelated"}
	for i, want := range wantOrder {
		if ranked[i].Chunk.Content != want {
			t.Errorf("rank %d = %q, want %q", i, ranked[i].Chunk.Content, want)
		}
	}
	wantMultipliers := []float64{2.0, 1.5, 1.0}
	for i, want := range wantMultipliers {
		if ranked[i].PriorityMultiplier != want {
			t.Errorf("rank %d multiplier = %f, want %f", i, ranked[i].PriorityMultiplier, want)
		}
	}
}

func TestRankStrictExcludesUnscoped(t *testing.T) {
	hits := []vectorstore.Hit{
		hit("unrelated", "s9", "d9", 0.99, vectorstore.ContentFeatures{}),
		hit("explicit doc", "s9", "d1", 0.5, vectorstore.ContentFeatures{}),
	}

	ranked := Rank(hits, learner.Style{}, Options{
		SessionID:   "s1",
		DocumentIDs: []string{"d1"},
		Strict:      true,
	})

	if len(ranked) != 1 {
		t.Fatalf("len(ranked) = %d, want 1", len(ranked))
	}
	if ranked[0].Chunk.Content != "explicit doc" {
		t.Errorf("survivor = %q, want the explicitly selected document", ranked[0].Chunk.Content)
	}
}

func TestRankStableOnTies(t *testing.T) {
	hits := []vectorstore.Hit{
		hit("first inserted", "", "", 0.7, vectorstore.ContentFeatures{}),
		hit("second inserted", "", "", 0.7, vectorstore.ContentFeatures{}),
	}

	ranked := Rank(hits, learner.Style{}, Options{})
	if ranked[0].Chunk.Content != "first inserted" {
		t.Errorf("tie broke insertion order: got %q first", ranked[0].Chunk.Content)
	}
}

func TestRankTopK(t *testing.T) {
	hits := []vectorstore.Hit{
		hit("a", "", "", 0.9, vectorstore.ContentFeatures{}),
		hit("b", "", "", 0.8, vectorstore.ContentFeatures{}),
		hit("c", "", "", 0.7, vectorstore.ContentFeatures{}),
	}
	ranked := Rank(hits, learner.Style{}, Options{TopK: 2})
	if len(ranked) != 2 {
		t.Errorf("len(ranked) = %d, want 2", len(ranked))
	}
}

func TestStyleScore(t *testing.T) {
	sensing := learner.Style{
		Perception: learner.Preference{Pole: learner.PoleSensing, Strength: learner.StrengthModerate},
	}
	active := learner.Style{
		Processing: learner.Preference{Pole: learner.PoleActive, Strength: learner.StrengthStrong},
	}
	sequential := learner.Style{
		Understanding: learner.Preference{Pole: learner.PoleSequential, Strength: learner.StrengthModerate},
	}

	tests := []struct {
		name     string
		features vectorstore.ContentFeatures
		style    learner.Style
		want     float64
	}{
		{
			name:  "neutral baseline",
			style: learner.Style{},
			want:  0.5,
		},
		{
			name:     "sensing with examples and detail",
			features: vectorstore.ContentFeatures{HasExamples: true, IsDetailed: true},
			style:    sensing,
			want:     0.8, // 0.5 + 0.2 + 0.1
		},
		{
			name:     "active with concise examples",
			features: vectorstore.ContentFeatures{IsConcise: true, HasExamples: true},
			style:    active,
			want:     0.7, // 0.5 + 0.1 + 0.1
		},
		{
			name:     "sequential with steps",
			features: vectorstore.ContentFeatures{HasSteps: true},
			style:    sequential,
			want:     0.65,
		},
		{
			name:     "unmatched features add nothing",
			features: vectorstore.ContentFeatures{HasTheory: true, HasOverview: true},
			style:    sensing,
			want:     0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StyleScore(tt.features, tt.style)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("StyleScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestStyleScoreCapped(t *testing.T) {
	style := learner.Style{
		Processing:    learner.Preference{Pole: learner.PoleActive, Strength: learner.StrengthStrong},
		Perception:    learner.Preference{Pole: learner.PoleSensing, Strength: learner.StrengthStrong},
		Understanding: learner.Preference{Pole: learner.PoleSequential, Strength: learner.StrengthStrong},
	}
	features := vectorstore.ContentFeatures{
		HasExamples: true,
		HasSteps:    true,
		IsDetailed:  true,
		IsConcise:   true,
	}
	if got := StyleScore(features, style); got > 1.0 {
		t.Errorf("StyleScore() = %f, want capped at 1.0", got)
	}
}
