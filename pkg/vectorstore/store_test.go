package vectorstore

import (
	"math"
	"testing"
)

func TestSearchEmptyIndex(t *testing.T) {
	index := NewVectorIndex()

	hits := index.Search([]float32{1, 0, 0}, 5, nil)
	if hits != nil {
		t.Errorf("Search on empty index = %v, want nil", hits)
	}
}

func TestSearchSelfQuery(t *testing.T) {
	index := NewVectorIndex()
	index.Add(
		[]Chunk{
			{Content: "alpha", Metadata: ChunkMetadata{DocumentID: "d1"}},
			{Content: "beta", Metadata: ChunkMetadata{DocumentID: "d2"}},
		},
		[][]float32{
			{3, 0, 0},
			{0, 5, 0},
		},
	)

	hits := index.Search([]float32{1, 0, 0}, 1, nil)
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].Chunk.Content != "alpha" {
		t.Errorf("top hit = %q, want %q", hits[0].Chunk.Content, "alpha")
	}
	// Normalization makes the self-match score exactly cosine 1
	if math.Abs(float64(hits[0].Score)-1.0) > 1e-5 {
		t.Errorf("self-query score = %f, want ~1.0", hits[0].Score)
	}
}

func TestSearchRanksByCosineNotMagnitude(t *testing.T) {
	index := NewVectorIndex()
	index.Add(
		[]Chunk{
			{Content: "long but off-topic"},
			{Content: "short and aligned"},
		},
		[][]float32{
			{100, 100, 0}, // large magnitude, 45 degrees off
			{1, 0, 0},     // unit-ish, exact direction
		},
	)

	hits := index.Search([]float32{1, 0, 0}, 2, nil)
	if hits[0].Chunk.Content != "short and aligned" {
		t.Errorf("top hit = %q, want the direction-aligned chunk", hits[0].Chunk.Content)
	}
}

func TestSearchAddMismatchedInputIgnored(t *testing.T) {
	index := NewVectorIndex()
	index.Add([]Chunk{{Content: "a"}, {Content: "b"}}, [][]float32{{1, 0}})

	if index.Len() != 0 {
		t.Errorf("Len after mismatched Add = %d, want 0", index.Len())
	}
}

func TestSearchStrictFilter(t *testing.T) {
	index := NewVectorIndex()
	index.Add(
		[]Chunk{
			{Content: "explicit doc", Metadata: ChunkMetadata{DocumentID: "d1", SessionID: "s2"}},
			{Content: "same session", Metadata: ChunkMetadata{DocumentID: "d9", SessionID: "s1"}},
			{Content: "unrelated", Metadata: ChunkMetadata{DocumentID: "d3", SessionID: "s3"}},
		},
		[][]float32{
			{0.9, 0.1, 0},
			{0.8, 0.2, 0},
			{1, 0, 0}, // best semantic match but filtered out
		},
	)

	filter := &Filter{SessionID: "s1", DocumentIDs: []string{"d1"}}
	hits := index.Search([]float32{1, 0, 0}, 5, filter)

	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2 (non-matching chunk must be dropped)", len(hits))
	}
	for _, h := range hits {
		if h.Chunk.Content == "unrelated" {
			t.Errorf("filtered search returned non-matching chunk %q", h.Chunk.Content)
		}
	}
	// The explicit document matches even though its session differs
	found := false
	for _, h := range hits {
		if h.Chunk.Metadata.DocumentID == "d1" {
			found = true
		}
	}
	if !found {
		t.Error("chunk from explicitly selected document d1 missing from results")
	}
}

func TestSearchFilterCanReturnFewerThanK(t *testing.T) {
	index := NewVectorIndex()
	index.Add(
		[]Chunk{
			{Content: "only match", Metadata: ChunkMetadata{SessionID: "s1"}},
			{Content: "other", Metadata: ChunkMetadata{SessionID: "s2"}},
		},
		[][]float32{
			{1, 0},
			{0, 1},
		},
	)

	hits := index.Search([]float32{1, 0}, 5, &Filter{SessionID: "s1"})
	if len(hits) != 1 {
		t.Errorf("len(hits) = %d, want 1 even though k=5", len(hits))
	}
}
